package gmtstamp

import (
	"github.com/kballard/go-shellquote"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// A single GMT option such as -T or -U+jBL.
type Option struct {
	Name  string
	Value string

	// A switch is emitted as the bare flag (-T) and Value is ignored.
	Switch bool
}

func (o Option) Arg() string {
	if o.Switch {
		return "-" + o.Name
	}
	return "-" + o.Name + o.Value
}

// Invocation is one call of a GMT module, ready to be handed to a Session.
type Invocation struct {
	Module  string
	Options []Option

	// GMT defaults overridden for this call only (--KEY=value).
	Config map[string]string
}

func (inv Invocation) Lookup(name string) (Option, bool) {
	for _, option := range inv.Options {
		if option.Name == name {
			return option, true
		}
	}
	return Option{}, false
}

// Args returns the argument list without the module name. Config entries come
// first, sorted by key so the output is stable, followed by the options in
// the order they were added.
func (inv Invocation) Args() []string {
	args := make([]string, 0, len(inv.Config)+len(inv.Options))

	keys := maps.Keys(inv.Config)
	slices.Sort(keys)
	for _, key := range keys {
		args = append(args, "--"+key+"="+inv.Config[key])
	}

	for _, option := range inv.Options {
		args = append(args, option.Arg())
	}

	return args
}

// String renders the invocation the way it would be typed after `gmt`.
func (inv Invocation) String() string {
	return shellquote.Join(append([]string{inv.Module}, inv.Args()...)...)
}

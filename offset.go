package gmtstamp

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Offset moves the anchor point of the timestamp. It is either a single
// length applied to both axes or an explicit (x, y) pair. Lengths keep their
// GMT unit suffix, e.g. "-54p" or "1c".
type Offset struct {
	x      string
	y      string
	paired bool
}

func SingleOffset(value string) Offset {
	return Offset{x: value}
}

func PairOffset(x, y string) Offset {
	return Offset{x: x, y: y, paired: true}
}

func defaultOffset() Offset {
	return PairOffset("-54p", "-54p")
}

func (o Offset) IsZero() bool {
	return o == Offset{}
}

func (o Offset) IsPair() bool {
	return o.paired
}

// Returns the value after +o. GMT <= 6.4.0 does not apply a single value to
// both axes, so it is spelled out as a pair there.
func (o Offset) modifier(version EngineVersion) string {
	if o.paired {
		return o.x + "/" + o.y
	}

	if !strings.Contains(o.x, "/") && version.AtMost(lastVersionWithSingleOffsetBug) {
		return o.x + "/" + o.x
	}

	return o.x
}

func (o Offset) String() string {
	if o.paired {
		return o.x + "/" + o.y
	}
	return o.x
}

// UnmarshalYAML accepts either a scalar ("10p") or a two element sequence
// (["-54p", "-54p"]).
func (o *Offset) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*o = SingleOffset(node.Value)
		return nil
	case yaml.SequenceNode:
		var values []string
		if err := node.Decode(&values); err != nil {
			return err
		}
		if len(values) != 2 {
			return newError(KindInvalidValue, fmt.Sprintf("offset needs exactly 2 values, got %d", len(values)), nil)
		}
		*o = PairOffset(values[0], values[1])
		return nil
	default:
		return newError(KindInvalidValue, fmt.Sprintf("offset must be a string or a list of 2 strings (line %d)", node.Line), nil)
	}
}

func (o Offset) MarshalYAML() (interface{}, error) {
	if o.paired {
		return []string{o.x, o.y}, nil
	}
	return o.x, nil
}

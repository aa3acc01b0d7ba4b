package gmtstamp

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/ncruces/go-strftime"
)

const (
	plotModule = "plot"

	// GMT truncates longer +t strings.
	maxTimestampTextLength = 64

	defaultJustification = "BL"
	defaultFont          = "Helvetica,black"
	defaultTimeFormat    = "%Y %b %d %H:%M:%S"
)

// TimestampRequest holds the parameters of the GMT timestamp logo. Zero
// valued fields fall back to the GMT/PyGMT defaults, so TimestampRequest{}
// plots the stock logo.
type TimestampRequest struct {
	// Replaces the UNIX time in the logo. Needs GMT >= 6.5.0 and at most 64
	// characters. nil keeps the time.
	Text *string `yaml:"text,omitempty"`

	// Shown after the logo.
	Label string `yaml:"label,omitempty"`

	// Two character anchor code, horizontal (L, C, R) then vertical (T, M, B).
	// GMT validates it.
	Justification string `yaml:"justification,omitempty"`

	Offset Offset `yaml:"offset,omitempty"`

	// Font of the logo and label. GMT <= 6.4.0 ignores the color part.
	Font string `yaml:"font,omitempty"`

	// strftime(3) format of the UNIX time.
	TimeFormat string `yaml:"timefmt,omitempty"`
}

func DefaultTimestampRequest() TimestampRequest {
	return TimestampRequest{
		Justification: defaultJustification,
		Offset:        defaultOffset(),
		Font:          defaultFont,
		TimeFormat:    defaultTimeFormat,
	}
}

func (r TimestampRequest) withDefaults() TimestampRequest {
	defaults := DefaultTimestampRequest()
	if r.Justification == "" {
		r.Justification = defaults.Justification
	}
	if r.Offset.IsZero() {
		r.Offset = defaults.Offset
	}
	if r.Font == "" {
		r.Font = defaults.Font
	}
	if r.TimeFormat == "" {
		r.TimeFormat = defaults.TimeFormat
	}
	return r
}

// BuildTimestamp validates the request against the engine version and
// assembles the plot invocation that draws the logo. GMT parses the -U
// modifiers positionally, so they are always emitted as
// [label]+j<justification>+o<offset>[+t<text>].
func BuildTimestamp(req TimestampRequest, version EngineVersion) (Invocation, error) {
	req = req.withDefaults()

	logo := req.Label
	logo += "+j" + req.Justification
	logo += "+o" + req.Offset.modifier(version)

	if req.Text != nil {
		if version.Compare(firstVersionWithTimestampText) < 0 {
			return Invocation{}, newError(
				KindUnsupportedFeature,
				fmt.Sprintf("the parameter 'text' requires GMT>=%s, got %s", firstVersionWithTimestampText, version),
				nil,
			)
		}
		if utf8.RuneCountInString(*req.Text) > maxTimestampTextLength {
			return Invocation{}, newError(
				KindInvalidValue,
				fmt.Sprintf("the parameter 'text' must be at most %d characters", maxTimestampTextLength),
				nil,
			)
		}
		logo += "+t" + *req.Text
	}

	return Invocation{
		Module: plotModule,
		Options: []Option{
			{Name: "T", Switch: true},
			{Name: "U", Value: logo},
		},
		Config: map[string]string{
			"FONT_LOGO":         req.Font,
			"FORMAT_TIME_STAMP": req.TimeFormat,
		},
	}, nil
}

// PreviewTimeFormat renders timefmt locally. GMT formats the real stamp
// itself, this is only for logs and dry runs.
func PreviewTimeFormat(timefmt string, t time.Time) string {
	if timefmt == "" {
		timefmt = defaultTimeFormat
	}
	return strftime.Format(timefmt, t)
}

func Ptr[T any](v T) *T {
	return &v
}

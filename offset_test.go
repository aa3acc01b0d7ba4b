package gmtstamp

import (
	"testing"

	"gopkg.in/yaml.v3"
)

func TestOffset(t *testing.T) {
	t.Run("zero", func(t *testing.T) {
		if !(Offset{}).IsZero() {
			t.Fatalf("zero offset should report IsZero")
		}
		if !SingleOffset("").IsZero() {
			t.Fatalf("empty single offset is indistinguishable from unset")
		}
		if PairOffset("", "").IsZero() {
			t.Fatalf("a pair is never zero")
		}
	})

	t.Run("string", func(t *testing.T) {
		if got := SingleOffset("10p").String(); got != "10p" {
			t.Fatalf("got %q", got)
		}
		if got := PairOffset("1c", "-2c").String(); got != "1c/-2c" {
			t.Fatalf("got %q", got)
		}
	})

	t.Run("yaml scalar", func(t *testing.T) {
		var o Offset
		if err := yaml.Unmarshal([]byte(`"10p"`), &o); err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
		if o != SingleOffset("10p") {
			t.Fatalf("got %#v", o)
		}
	})

	t.Run("yaml pair", func(t *testing.T) {
		var o Offset
		if err := yaml.Unmarshal([]byte(`["-54p", "-54p"]`), &o); err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
		if o != PairOffset("-54p", "-54p") {
			t.Fatalf("got %#v", o)
		}
	})

	t.Run("yaml wrong length", func(t *testing.T) {
		var o Offset
		err := yaml.Unmarshal([]byte(`["1c", "2c", "3c"]`), &o)
		if !IsInvalidValue(err) {
			t.Fatalf("expected invalid value error, got %v", err)
		}
	})

	t.Run("yaml mapping", func(t *testing.T) {
		var o Offset
		err := yaml.Unmarshal([]byte(`{x: 1c}`), &o)
		if !IsInvalidValue(err) {
			t.Fatalf("expected invalid value error, got %v", err)
		}
	})

	t.Run("yaml round trip keeps shape", func(t *testing.T) {
		for _, want := range []Offset{SingleOffset("10p"), PairOffset("1c", "2c")} {
			data, err := yaml.Marshal(want)
			if err != nil {
				t.Fatalf("marshal %v: %v", want, err)
			}
			var got Offset
			if err := yaml.Unmarshal(data, &got); err != nil {
				t.Fatalf("unmarshal %q: %v", data, err)
			}
			if got != want {
				t.Fatalf("got %#v want %#v", got, want)
			}
		}
	})
}

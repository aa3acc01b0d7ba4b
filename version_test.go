package gmtstamp

import "testing"

func TestParseEngineVersion(t *testing.T) {
	cases := []struct {
		raw  string
		want EngineVersion
	}{
		{"6.5.0", EngineVersion{6, 5, 0}},
		{"6.5.0\n", EngineVersion{6, 5, 0}},
		{"  6.4.0  ", EngineVersion{6, 4, 0}},
		{"6.6.0_8a7c1e9_2024.11.20", EngineVersion{6, 6, 0}},
		{"v6.4", EngineVersion{6, 4, 0}},
		{"6.10.2", EngineVersion{6, 10, 2}},
	}

	for _, c := range cases {
		got, err := ParseEngineVersion(c.raw)
		if err != nil {
			t.Fatalf("ParseEngineVersion(%q) returned error %v", c.raw, err)
		}
		if got != c.want {
			t.Fatalf("ParseEngineVersion(%q) = %v, want %v", c.raw, got, c.want)
		}
	}

	for _, raw := range []string{"", "gmt", "six.five", "6"} {
		_, err := ParseEngineVersion(raw)
		if !IsInvalidValue(err) {
			t.Fatalf("ParseEngineVersion(%q): expected invalid value error, got %v", raw, err)
		}
	}
}

func TestEngineVersionCompare(t *testing.T) {
	t.Run("ordering", func(t *testing.T) {
		cases := []struct {
			a, b string
			want int
		}{
			{"6.4.0", "6.5.0", -1},
			{"6.5.0", "6.5.0", 0},
			{"6.5.1", "6.5.0", 1},
			{"6.10.0", "6.9.0", 1},
			{"5.4.5", "6.0.0", -1},
		}

		for _, c := range cases {
			got := MustParseEngineVersion(c.a).Compare(MustParseEngineVersion(c.b))
			if got != c.want {
				t.Fatalf("%s.Compare(%s) = %d, want %d", c.a, c.b, got, c.want)
			}
		}
	})

	t.Run("gates", func(t *testing.T) {
		if !gmt640.AtMost(lastVersionWithSingleOffsetBug) {
			t.Fatalf("6.4.0 should still have the single offset bug")
		}
		if gmt650.AtMost(lastVersionWithSingleOffsetBug) {
			t.Fatalf("6.5.0 should not have the single offset bug")
		}
		if gmt640.AtLeast(firstVersionWithTimestampText) {
			t.Fatalf("6.4.0 should not support +t")
		}
		if !gmt650.AtLeast(firstVersionWithTimestampText) {
			t.Fatalf("6.5.0 should support +t")
		}
	})

	t.Run("string", func(t *testing.T) {
		if got := MustParseEngineVersion("v6.4").String(); got != "6.4.0" {
			t.Fatalf("String() = %q, want 6.4.0", got)
		}
	})

	t.Run("must parse panics", func(t *testing.T) {
		defer func() {
			if r := recover(); r == nil {
				t.Fatalf("expected panic for unparsable version")
			}
		}()
		MustParseEngineVersion("not a version")
	})
}

package transform

import "testing"

func TestRunUnknownOperationIsNoOp(t *testing.T) {
	pipeline := Pipeline{
		{Kind: KindFormat, Op: "nonexistent"},
		{Kind: "mystery", Op: "phone"},
	}
	got := Run("raw value", pipeline)
	if got != "raw value" {
		t.Errorf("expected pass-through, got %q", got)
	}
}

func TestRunAppliesRulesInOrder(t *testing.T) {
	pipeline := Pipeline{
		{Kind: KindNormalize, Op: "whitespace"},
		{Kind: KindFormat, Op: "uppercase"},
	}
	got := Run("  hello   world  ", pipeline)
	if got != "HELLO WORLD" {
		t.Errorf("got %q, want %q", got, "HELLO WORLD")
	}
}

func TestRunEmptyPipeline(t *testing.T) {
	if got := Run("unchanged", nil); got != "unchanged" {
		t.Errorf("got %q", got)
	}
}

// Every operation must return a value for any input, including empty,
// whitespace-only, and non-ASCII strings.
func TestOperationsAreTotal(t *testing.T) {
	inputs := []string{"", "   ", "héllo wörld", "123", "!@#$%^&*()", "\t\n", "日本語"}
	for kind, ops := range operations {
		for op := range ops {
			for _, in := range inputs {
				rule := Rule{Kind: kind, Op: op}
				_ = Apply(in, rule)
			}
		}
	}
}

func TestParamsString(t *testing.T) {
	p := Params{"s": "x", "n": 3, "f": 2.5, "b": true}
	if got := p.String("s", "d"); got != "x" {
		t.Errorf("string param: got %q", got)
	}
	if got := p.String("n", "d"); got != "3" {
		t.Errorf("int param: got %q", got)
	}
	if got := p.String("missing", "d"); got != "d" {
		t.Errorf("missing param: got %q", got)
	}
}

func TestParamsInt(t *testing.T) {
	p := Params{"i": 2, "f": 4.0, "s": "7", "bad": "x"}
	cases := []struct {
		key  string
		want int
	}{
		{"i", 2},
		{"f", 4},
		{"s", 7},
		{"bad", -1},
		{"missing", -1},
	}
	for _, tc := range cases {
		if got := p.Int(tc.key, -1); got != tc.want {
			t.Errorf("Int(%q): got %d, want %d", tc.key, got, tc.want)
		}
	}
}

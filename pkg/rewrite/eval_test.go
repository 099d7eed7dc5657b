package rewrite

import (
	"math"
	"reflect"
	"testing"
)

func TestRewriteSource(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"positional refs", "$1 + $2", "__match_1 + __match_2"},
		{"named ref", "$total * 2", "__match_total * 2"},
		{"escaped ref stays literal", `\$1 + 2`, "$1 + 2"},
		{"escape stripped", `len("a\)b")`, `len("a)b")`},
		{"bare sigil preserved", "$( 1", "$( 1"},
		{"leading zeros normalize to one key", "$01 + $1", "__match_1 + __match_1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rewriteSource(tt.raw); got != tt.want {
				t.Errorf("rewriteSource(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestParseExpression(t *testing.T) {
	prog, refs, err := parseExpression("ceil($1 / $2)")
	if err != nil {
		t.Fatalf("parseExpression returned error: %v", err)
	}
	if prog.Source() != "ceil(__match_1 / __match_2)" {
		t.Errorf("Source() = %q", prog.Source())
	}
	if len(refs) != 2 {
		t.Errorf("len(refs) = %d, want 2", len(refs))
	}

	if _, _, err := parseExpression("foo bar"); err == nil {
		t.Error("expected syntax error for 'foo bar'")
	}
}

func TestScanIdents(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{"free identifiers in order", "rate * __match_1", []string{"rate", "__match_1"}},
		{"builtins excluded", "ceil(x / 2)", []string{"x"}},
		{"duplicates collapse", "a + a * a", []string{"a"}},
		{"literals only", "1 + 2", nil},
		{"let declarations excluded", "let y = x; y + 1", []string{"x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scanIdents(tt.src); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("scanIdents(%q) = %v, want %v", tt.src, got, tt.want)
			}
		})
	}
}

func TestRunRejectsUnboundIdentifier(t *testing.T) {
	prog, _, err := parseExpression("missing + 1")
	if err != nil {
		t.Fatalf("parseExpression: %v", err)
	}
	if _, err := prog.run(map[string]interface{}{}); err == nil {
		t.Error("run succeeded with an unbound identifier")
	}
	if _, err := prog.run(map[string]interface{}{"missing": 2.0}); err != nil {
		t.Errorf("run failed with the identifier bound: %v", err)
	}
}

func TestBuildEnv(t *testing.T) {
	r := MustNew(`(\w+) (\w+)`, "$0",
		WithMath(true),
		WithVariable("rate", 1.5),
	)

	refs := []GroupRef{{Index: 1, Raw: "1"}, {Index: 2, Raw: "2"}}
	env := r.buildEnv(refs, map[string]string{
		"__match_1": "42",
		"__match_2": "fish",
	})

	// Numeric capture text binds as a number, the rest as raw text.
	if got, ok := env["__match_1"].(float64); !ok || got != 42 {
		t.Errorf("env[__match_1] = %#v, want float64 42", env["__match_1"])
	}
	if got, ok := env["__match_2"].(string); !ok || got != "fish" {
		t.Errorf("env[__match_2] = %#v, want string fish", env["__match_2"])
	}

	// User variables and the math namespace are both present.
	if got, ok := env["rate"].(float64); !ok || got != 1.5 {
		t.Errorf("env[rate] = %#v, want 1.5", env["rate"])
	}
	if got, ok := env["pi"].(float64); !ok || got != math.Pi {
		t.Errorf("env[pi] = %#v, want pi", env["pi"])
	}
}

func TestBuildEnvWithoutMath(t *testing.T) {
	r := MustNew(`x`, "y")
	env := r.buildEnv(nil, nil)
	if _, ok := env["pi"]; ok {
		t.Error("math namespace leaked into env with math disabled")
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		want string
	}{
		{"integral float drops fraction", 1.0, "1"},
		{"negative integral float", -3.0, "-3"},
		{"fractional float", 2.5, "2.5"},
		{"int", 4, "4"},
		{"int64", int64(-7), "-7"},
		{"string", "fish", "fish"},
		{"bool", true, "true"},
		{"nil", nil, ""},
		{"infinity", math.Inf(1), "+Inf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatValue(tt.in); got != tt.want {
				t.Errorf("formatValue(%#v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestMathNamespace(t *testing.T) {
	names := []string{
		"e", "pi", "ln2", "ln10", "log2e", "log10e", "sqrt1_2", "sqrt2",
		"sin", "cos", "tan", "asin", "acos", "atan", "atan2",
		"exp", "log", "pow", "sqrt",
		"max", "abs", "round", "ceil", "floor",
	}
	for _, name := range names {
		if !isMathName(name) {
			t.Errorf("isMathName(%q) = false", name)
		}
	}
	if isMathName("rate") {
		t.Error("isMathName(rate) = true")
	}
}

func TestCapKey(t *testing.T) {
	tests := []struct {
		ref  GroupRef
		want string
	}{
		{GroupRef{Index: 3, Raw: "3"}, "__match_3"},
		{GroupRef{Index: 3, Raw: "003"}, "__match_3"},
		{GroupRef{Name: "word", Raw: "word"}, "__match_word"},
	}
	for _, tt := range tests {
		if got := capKey(tt.ref); got != tt.want {
			t.Errorf("capKey(%+v) = %q, want %q", tt.ref, got, tt.want)
		}
	}
}

package nodeedit

import (
	"testing"

	jsonpatch "github.com/evanphx/json-patch/v5"
)

func TestCoerceValueStrictJSONFirst(t *testing.T) {
	cases := []string{
		`{"name":"Ann","age":30}`,
		`[1,2,3]`,
		`"quoted"`,
		`42`,
		`-1.5`,
		`true`,
		`null`,
	}
	for _, c := range cases {
		got := CoerceValue(c)
		if !jsonpatch.Equal(mustJSON(t, got), []byte(c)) {
			t.Fatalf("CoerceValue(%q) = %#v, want JSON-equal value", c, got)
		}
	}
}

func TestCoerceValueBooleanLiterals(t *testing.T) {
	if v, ok := CoerceValue("true").(bool); !ok || v != true {
		t.Fatalf("true: got %#v", CoerceValue("true"))
	}
	if v, ok := CoerceValue("false").(bool); !ok || v != false {
		t.Fatalf("false: got %#v", CoerceValue("false"))
	}
}

func TestCoerceValueNumberLiteral(t *testing.T) {
	if v, ok := CoerceValue("42").(float64); !ok || v != 42 {
		t.Fatalf("42: got %#v", CoerceValue("42"))
	}
}

func TestCoerceValueBareStringFallback(t *testing.T) {
	cases := []string{
		"hello",
		"hello world",
		"not: json",
		"{broken",
		"",
	}
	for _, c := range cases {
		if got := CoerceValue(c); got != c {
			t.Fatalf("CoerceValue(%q) = %#v, want the raw string", c, got)
		}
	}
}

func TestCoerceValueRejectsNonFiniteNumbers(t *testing.T) {
	// ParseFloat accepts Inf/NaN spellings; the coercer must keep them as
	// strings so the document stays JSON-serializable.
	for _, c := range []string{"Inf", "-Inf", "NaN", "+Inf"} {
		if got := CoerceValue(c); got != c {
			t.Fatalf("CoerceValue(%q) = %#v, want the raw string", c, got)
		}
	}
}

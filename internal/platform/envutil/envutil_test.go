package envutil

import "testing"

func TestParsers(t *testing.T) {
	t.Setenv("EU_STR", "  value ")
	t.Setenv("EU_INT", "42")
	t.Setenv("EU_BAD_INT", "x")
	t.Setenv("EU_BOOL", "off")
	t.Setenv("EU_FLOAT", "0.5")
	t.Setenv("EU_LIST", "a, ,b,")

	if got := String("EU_STR", "d"); got != "value" {
		t.Fatalf("String: %q", got)
	}
	if got := String("EU_MISSING", "d"); got != "d" {
		t.Fatalf("String default: %q", got)
	}
	if got := Int("EU_INT", 1); got != 42 {
		t.Fatalf("Int: %d", got)
	}
	if got := Int("EU_BAD_INT", 7); got != 7 {
		t.Fatalf("Int fallback: %d", got)
	}
	if Bool("EU_BOOL", true) {
		t.Fatalf("Bool: expected false")
	}
	if got := Float("EU_FLOAT", 0.1); got != 0.5 {
		t.Fatalf("Float: %v", got)
	}
	if got := List("EU_LIST", nil); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("List: %v", got)
	}
}

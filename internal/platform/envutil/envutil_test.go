package envutil

import (
	"testing"
	"time"
)

func TestParsers(t *testing.T) {
	t.Setenv("ENVUTIL_INT", " 42 ")
	t.Setenv("ENVUTIL_BAD_INT", "forty")
	t.Setenv("ENVUTIL_BOOL", "Yes")
	t.Setenv("ENVUTIL_BAD_BOOL", "maybe")
	t.Setenv("ENVUTIL_DUR", "250ms")
	t.Setenv("ENVUTIL_SECS", "3")
	t.Setenv("ENVUTIL_FLOAT", "0.25")
	t.Setenv("ENVUTIL_BLANK", "   ")

	if got := Int("ENVUTIL_INT", 1); got != 42 {
		t.Fatalf("Int=%d", got)
	}
	if got := Int("ENVUTIL_BAD_INT", 7); got != 7 {
		t.Fatalf("Int fallback=%d", got)
	}
	if !Bool("ENVUTIL_BOOL", false) {
		t.Fatalf("Bool: expected true")
	}
	if !Bool("ENVUTIL_BAD_BOOL", true) {
		t.Fatalf("Bool fallback: expected default true")
	}
	if got := Duration("ENVUTIL_DUR", time.Second); got != 250*time.Millisecond {
		t.Fatalf("Duration=%v", got)
	}
	if got := Duration("ENVUTIL_SECS", time.Second); got != 3*time.Second {
		t.Fatalf("Duration seconds=%v", got)
	}
	if got := Float("ENVUTIL_FLOAT", 1); got != 0.25 {
		t.Fatalf("Float=%v", got)
	}
	if _, ok := String("ENVUTIL_BLANK"); ok {
		t.Fatalf("blank value should count as unset")
	}
	if got := Int("ENVUTIL_UNSET_NAME", 5); got != 5 {
		t.Fatalf("unset Int=%d", got)
	}
}

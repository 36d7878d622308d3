package log

import "testing"

func TestAppendInt64(t *testing.T) {
	got := string(appendInt64(nil, -42))
	if got != "-42" {
		t.Errorf("appendInt64(-42) = %q, want %q", got, "-42")
	}
}

func TestAppendUint64(t *testing.T) {
	got := string(appendUint64(nil, 42, false))
	if got != "42" {
		t.Errorf("appendUint64(42) = %q, want %q", got, "42")
	}
}

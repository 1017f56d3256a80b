package helpers

import (
	"math"
	"testing"
	"time"
)

func TestSafeFloat64(t *testing.T) {
	cases := []struct {
		in   any
		want float64
	}{
		{64000.5, 64000.5},
		{int64(42), 42},
		{"3.14", 3.14},
		{[]byte("2.5"), 2.5},
	}
	for _, c := range cases {
		if got := SafeFloat64(c.in); got != c.want {
			t.Errorf("SafeFloat64(%v) = %v, want %v", c.in, got, c.want)
		}
	}

	if !math.IsNaN(SafeFloat64(nil)) {
		t.Error("nil must coerce to NaN so it renders as a placeholder")
	}
	if !math.IsNaN(SafeFloat64("not a number")) {
		t.Error("garbage must coerce to NaN")
	}
}

func TestSafeBool(t *testing.T) {
	truthy := []any{true, int64(1), "true", []byte("true"), 1.0}
	for _, v := range truthy {
		if !SafeBool(v) {
			t.Errorf("SafeBool(%v) = false, want true", v)
		}
	}
	falsy := []any{false, int64(0), "false", nil, "garbage"}
	for _, v := range falsy {
		if SafeBool(v) {
			t.Errorf("SafeBool(%v) = true, want false", v)
		}
	}
}

func TestSafeTime(t *testing.T) {
	want := time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)

	if got := SafeTime(want); !got.Equal(want) {
		t.Fatalf("time.Time passthrough failed: %v", got)
	}
	if got := SafeTime("2025-06-01T12:30:00Z"); !got.Equal(want) {
		t.Fatalf("RFC3339 parse failed: %v", got)
	}
	// SQLite's datetime() output
	if got := SafeTime("2025-06-01 12:30:00"); !got.Equal(want) {
		t.Fatalf("sqlite layout parse failed: %v", got)
	}
	if got := SafeTime(want.Unix()); !got.Equal(want) {
		t.Fatalf("epoch parse failed: %v", got)
	}
	if got := SafeTime("garbage"); !got.IsZero() {
		t.Fatalf("garbage must yield zero time, got %v", got)
	}
}

func TestConfigurationErrorMessageListsKeys(t *testing.T) {
	err := NewConfigurationError([]string{"A", "B"})
	if err.Error() != "missing required configuration: A, B" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

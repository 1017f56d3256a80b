package server

import (
	"testing"

	"crypto-insight/src/models"
)

var testBounds = models.MDashboardConfig{DefaultHoursBack: 48, MinHoursBack: 6, MaxHoursBack: 96}

func TestNormalizeSessionDefaults(t *testing.T) {
	symbols := []string{"BTC-USD", "ETH-USD"}

	state, ok := NormalizeSession(symbols, models.MSessionState{}, testBounds)
	if !ok {
		t.Fatal("expected ok with non-empty symbols")
	}
	if state.Symbol != "BTC-USD" {
		t.Fatalf("expected first symbol as default, got %q", state.Symbol)
	}
	if state.HoursBack != 48 {
		t.Fatalf("expected default lookback 48, got %d", state.HoursBack)
	}
}

func TestNormalizeSessionKeepsValidSelection(t *testing.T) {
	symbols := []string{"BTC-USD", "ETH-USD", "SOL-USD"}
	requested := models.MSessionState{Symbol: "ETH-USD", HoursBack: 24}

	state, _ := NormalizeSession(symbols, requested, testBounds)
	if state.Symbol != "ETH-USD" || state.HoursBack != 24 {
		t.Fatalf("valid selection must be preserved, got %+v", state)
	}
}

func TestNormalizeSessionUnknownSymbolFallsBack(t *testing.T) {
	symbols := []string{"BTC-USD", "ETH-USD"}
	requested := models.MSessionState{Symbol: "DOGE-USD"}

	state, _ := NormalizeSession(symbols, requested, testBounds)
	if state.Symbol != "BTC-USD" {
		t.Fatalf("unknown symbol must fall back to first, got %q", state.Symbol)
	}
}

func TestNormalizeSessionClampsHours(t *testing.T) {
	symbols := []string{"BTC-USD"}
	cases := []struct {
		in   int
		want int
	}{
		{1, 6},
		{6, 6},
		{96, 96},
		{500, 96},
		{-10, 6},
	}
	for _, c := range cases {
		state, _ := NormalizeSession(symbols, models.MSessionState{HoursBack: c.in}, testBounds)
		if state.HoursBack != c.want {
			t.Errorf("hours %d: expected clamp to %d, got %d", c.in, c.want, state.HoursBack)
		}
	}
}

func TestNormalizeSessionNoSymbols(t *testing.T) {
	if _, ok := NormalizeSession(nil, models.MSessionState{Symbol: "BTC-USD"}, testBounds); ok {
		t.Fatal("expected not-ok with empty symbol list")
	}
}

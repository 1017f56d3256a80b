package server

import (
	"crypto-insight/src/models"
)

// -----------------------------------------------------------------------------
// Selection state normalization.
// The symbol must be a member of the discovered symbol list (default: first
// element); the lookback is clamped to the configured [min, max] window.
// -----------------------------------------------------------------------------

// NormalizeSession resolves a requested selection against the available
// symbols and the dashboard bounds. ok is false when no symbols exist, in
// which case there is nothing to render.
func NormalizeSession(symbols []string, requested models.MSessionState, cfg models.MDashboardConfig) (state models.MSessionState, ok bool) {
	if len(symbols) == 0 {
		return models.MSessionState{}, false
	}

	state.Symbol = symbols[0]
	for _, sym := range symbols {
		if sym == requested.Symbol {
			state.Symbol = sym
			break
		}
	}

	state.HoursBack = requested.HoursBack
	if state.HoursBack == 0 {
		state.HoursBack = cfg.DefaultHoursBack
	}
	if state.HoursBack < cfg.MinHoursBack {
		state.HoursBack = cfg.MinHoursBack
	}
	if state.HoursBack > cfg.MaxHoursBack {
		state.HoursBack = cfg.MaxHoursBack
	}

	return state, true
}

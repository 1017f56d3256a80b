package models

// MSessionState is one user's current selection. It is passed into every
// render, never read from ambient state.
type MSessionState struct {
	Symbol    string `json:"symbol"`
	HoursBack int    `json:"hours_back"`
}

// MClientAction is an inbound websocket message from a dashboard client.
type MClientAction struct {
	// Action is one of "select_symbol", "set_hours", "refresh".
	Action    string `json:"action"`
	Symbol    string `json:"symbol,omitempty"`
	HoursBack int    `json:"hours_back,omitempty"`
}

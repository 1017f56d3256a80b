package models

import "time"

// -----------------------------------------------------------------------------
// Dashboard view models.
// Built by the render package from already-fetched rows; everything here is
// display-ready (formatted strings, placeholders) plus the raw rows so API
// consumers keep the unrounded values.
// -----------------------------------------------------------------------------

// MKPICell is a single KPI card: a label, a formatted value and an optional caption.
type MKPICell struct {
	Label   string `json:"label"`
	Value   string `json:"value"`
	Caption string `json:"caption,omitempty"`
}

// MChartSeries is one named line of the chart, aligned with the shared time axis.
type MChartSeries struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

// MChartPayload is the full chart: one time axis and the overlaid series.
type MChartPayload struct {
	Timestamps []string       `json:"timestamps"`
	Series     []MChartSeries `json:"series"`
}

// MTableView is a small rendered table. Placeholder is set instead of rows
// when there is no data.
type MTableView struct {
	Columns     []string   `json:"columns"`
	Rows        [][]string `json:"rows"`
	Placeholder string     `json:"placeholder,omitempty"`
}

// MDashboardView is everything one render pass produces for a selection.
type MDashboardView struct {
	Symbol    string `json:"symbol"`
	HoursBack int    `json:"hours_back"`

	KPIPrice  MKPICell `json:"kpi_price"`
	KPIChange MKPICell `json:"kpi_change"`
	KPISignal MKPICell `json:"kpi_signal"`

	// Chart is nil when the series window is empty; ChartPlaceholder carries
	// the informational message instead.
	Chart            *MChartPayload `json:"chart,omitempty"`
	ChartPlaceholder string         `json:"chart_placeholder,omitempty"`

	SignalTable  MTableView `json:"signal_table"`
	SummaryTable MTableView `json:"summary_table"`

	// Raw rows, unrounded, for API consumers.
	Price   *MPricePoint `json:"price,omitempty"`
	Summary *MSummary24h `json:"summary,omitempty"`
	Signal  *MSignalRow  `json:"signal,omitempty"`

	GeneratedAt time.Time `json:"generated_at"`
}

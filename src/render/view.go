package render

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"crypto-insight/src/models"
)

// -----------------------------------------------------------------------------

// Placeholder messages for empty results. Empty data is not an error; every
// element renders one of these instead of failing.
const (
	PlaceholderValue   = "-"
	PlaceholderSeries  = "No data in the selected time window."
	PlaceholderSignal  = "No signal rows."
	PlaceholderSummary = "No summary rows."
)

var signalTableColumns = []string{"symbol", "cross_signal", "above_ma200", "bucket_start"}
var summaryTableColumns = []string{"symbol", "last_price", "avg_price_24h", "abs_change_24h", "pct_change_24h"}

// -----------------------------------------------------------------------------

// BuildDashboardView assembles the display model for one selection from
// already-fetched rows. It performs no I/O and accepts no query parameters.
func BuildDashboardView(state models.MSessionState, price *models.MPricePoint, summary *models.MSummary24h, signal *models.MSignalRow, series []models.MSeriesPoint) *models.MDashboardView {
	view := &models.MDashboardView{
		Symbol:      state.Symbol,
		HoursBack:   state.HoursBack,
		Price:       price,
		Summary:     summary,
		Signal:      signal,
		GeneratedAt: time.Now().UTC(),
	}

	view.KPIPrice = priceKPI(state.Symbol, price)
	view.KPIChange = changeKPI(state.Symbol, summary)
	view.KPISignal = signalKPI(state.Symbol, signal)

	if len(series) == 0 {
		view.ChartPlaceholder = PlaceholderSeries
	} else {
		view.Chart = chartPayload(series)
	}

	view.SignalTable = signalTable(signal)
	view.SummaryTable = summaryTable(summary)

	return view
}

// -----------------------------------------------------------------------------
// KPI cells
// -----------------------------------------------------------------------------

func priceKPI(symbol string, price *models.MPricePoint) models.MKPICell {
	cell := models.MKPICell{Label: symbol, Value: PlaceholderValue}
	if price == nil {
		return cell
	}
	cell.Value = FormatPrice(price.LastPrice)
	if !price.LastTS.IsZero() {
		cell.Caption = "Updated: " + price.LastTS.Format(time.RFC3339)
	}
	return cell
}

func changeKPI(symbol string, summary *models.MSummary24h) models.MKPICell {
	cell := models.MKPICell{Label: symbol, Value: PlaceholderValue}
	if summary != nil {
		cell.Value = FormatPct(summary.PctChange24h)
	}
	return cell
}

func signalKPI(symbol string, signal *models.MSignalRow) models.MKPICell {
	cell := models.MKPICell{Label: symbol, Value: PlaceholderValue}
	if signal != nil && signal.CrossSignal != "" {
		cell.Value = signal.CrossSignal
	}
	return cell
}

// -----------------------------------------------------------------------------
// Chart
// -----------------------------------------------------------------------------

func chartPayload(series []models.MSeriesPoint) *models.MChartPayload {
	payload := &models.MChartPayload{
		Timestamps: make([]string, len(series)),
		Series: []models.MChartSeries{
			{Name: "avg_price", Values: make([]float64, len(series))},
			{Name: "ma_50", Values: make([]float64, len(series))},
			{Name: "ma_200", Values: make([]float64, len(series))},
		},
	}
	for i, p := range series {
		payload.Timestamps[i] = p.TS.Format(time.RFC3339)
		payload.Series[0].Values[i] = p.AvgPrice
		payload.Series[1].Values[i] = p.MA50
		payload.Series[2].Values[i] = p.MA200
	}
	return payload
}

// -----------------------------------------------------------------------------
// Tables
// -----------------------------------------------------------------------------

func signalTable(signal *models.MSignalRow) models.MTableView {
	if signal == nil {
		return models.MTableView{Columns: signalTableColumns, Placeholder: PlaceholderSignal}
	}
	return models.MTableView{
		Columns: signalTableColumns,
		Rows: [][]string{{
			signal.Symbol,
			signal.CrossSignal,
			strconv.FormatBool(signal.AboveMA200),
			signal.BucketStart.Format(time.RFC3339),
		}},
	}
}

// summaryTable rounds pct_change_24h to 2 decimals for display only; the
// unrounded value stays on the view's Summary field.
func summaryTable(summary *models.MSummary24h) models.MTableView {
	if summary == nil {
		return models.MTableView{Columns: summaryTableColumns, Placeholder: PlaceholderSummary}
	}
	return models.MTableView{
		Columns: summaryTableColumns,
		Rows: [][]string{{
			summary.Symbol,
			FormatFloat(summary.LastPrice),
			FormatFloat(summary.AvgPrice24h),
			FormatFloat(summary.AbsChange24h),
			FormatPct(summary.PctChange24h),
		}},
	}
}

// -----------------------------------------------------------------------------
// Formatting
// -----------------------------------------------------------------------------

// FormatPrice renders a price with thousands grouping and 2 decimals, or the
// placeholder for non-finite values.
func FormatPrice(v float64) string {
	if !isFinite(v) {
		return PlaceholderValue
	}
	return groupThousands(fmt.Sprintf("%.2f", v))
}

// FormatPct renders a percentage with 2 decimals, or the placeholder.
func FormatPct(v float64) string {
	if !isFinite(v) {
		return PlaceholderValue
	}
	return fmt.Sprintf("%.2f", v)
}

// FormatFloat renders a value without imposed rounding, or the placeholder.
func FormatFloat(v float64) string {
	if !isFinite(v) {
		return PlaceholderValue
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// groupThousands inserts comma separators into the integer part of an
// already-formatted decimal string.
func groupThousands(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, fracPart, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, d := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}

	out := b.String()
	if fracPart != "" {
		out += "." + fracPart
	}
	if neg {
		out = "-" + out
	}
	return out
}

package models

import "time"

// MPricePoint is the latest known price for a symbol, re-fetched per cache interval.
type MPricePoint struct {
	Symbol    string    `json:"symbol"`
	LastPrice float64   `json:"last_price"`
	LastTS    time.Time `json:"last_ts"`
}

// MSummary24h is one row of the 24h summary view for a symbol.
type MSummary24h struct {
	Symbol       string  `json:"symbol"`
	LastPrice    float64 `json:"last_price"`
	AvgPrice24h  float64 `json:"avg_price_24h"`
	AbsChange24h float64 `json:"abs_change_24h"`
	PctChange24h float64 `json:"pct_change_24h"`
}

// MSignalRow is the most recent signal bucket for a symbol.
type MSignalRow struct {
	Symbol      string    `json:"symbol"`
	CrossSignal string    `json:"cross_signal"`
	AboveMA200  bool      `json:"above_ma200"`
	BucketStart time.Time `json:"bucket_start"`
}

// MSeriesPoint is one bucket of the price/moving-average series, ordered by TS.
type MSeriesPoint struct {
	Symbol   string    `json:"symbol"`
	TS       time.Time `json:"ts"`
	AvgPrice float64   `json:"avg_price"`
	MA50     float64   `json:"ma_50"`
	MA200    float64   `json:"ma_200"`
}

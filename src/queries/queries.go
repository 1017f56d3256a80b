package queries

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"crypto-insight/src/helpers"
	"crypto-insight/src/interfaces"
	"crypto-insight/src/logger"
	"crypto-insight/src/models"
)

// -----------------------------------------------------------------------------

// Source view names, always referenced as <catalog>.<schema>.<view>.
const (
	viewLatestPrice = "v_latest_price"
	viewSummary24h  = "v_summary_24h"
	viewSignals     = "v_signals"
)

// -----------------------------------------------------------------------------

// Service is the cached query layer: five named operations, each a pure
// function of its arguments plus cache state. Results are cached per argument
// tuple for the configured TTL.
type Service struct {
	Warehouse interfaces.IWarehouse
	Logger    *logger.Logger

	catalog string
	schema  string

	symbols   *TTLCache
	prices    *TTLCache
	summaries *TTLCache
	signals   *TTLCache
	series    *TTLCache
}

// -----------------------------------------------------------------------------

// NewService creates the cached query layer with the wall clock.
func NewService(cfg *models.MConfig, wh interfaces.IWarehouse, log *logger.Logger) *Service {
	return NewServiceWithClock(cfg, wh, log, time.Now)
}

// NewServiceWithClock is NewService with an injectable clock for tests.
func NewServiceWithClock(cfg *models.MConfig, wh interfaces.IWarehouse, log *logger.Logger, now Clock) *Service {
	ttl := time.Duration(cfg.Cache.TTLSeconds) * time.Second
	return &Service{
		Warehouse: wh,
		Logger:    log,
		catalog:   cfg.Warehouse.Catalog,
		schema:    cfg.Warehouse.Schema,
		symbols:   NewTTLCache(ttl, now),
		prices:    NewTTLCache(ttl, now),
		summaries: NewTTLCache(ttl, now),
		signals:   NewTTLCache(ttl, now),
		series:    NewTTLCache(ttl, now),
	}
}

// -----------------------------------------------------------------------------

func (s *Service) view(name string) string {
	return s.Warehouse.QualifiedView(s.catalog, s.schema, name)
}

// -----------------------------------------------------------------------------

// ListSymbols returns the distinct symbols from the latest-price view, sorted
// ascending and deduplicated.
func (s *Service) ListSymbols(ctx context.Context) ([]string, error) {
	if cached, ok := s.symbols.Get("all"); ok {
		return cached.([]string), nil
	}

	q := fmt.Sprintf("SELECT DISTINCT symbol FROM %s", s.view(viewLatestPrice))
	table, err := s.Warehouse.Query(ctx, q)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(table.Rows))
	var symbols []string
	for i := range table.Rows {
		sym := helpers.SafeString(table.Value(i, "symbol"))
		if sym == "" {
			continue
		}
		if _, dup := seen[sym]; dup {
			continue
		}
		seen[sym] = struct{}{}
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols)

	s.symbols.Put("all", symbols)
	return symbols, nil
}

// -----------------------------------------------------------------------------

// LatestPrice returns the latest-price row for the symbol, or nil when the
// view has none.
func (s *Service) LatestPrice(ctx context.Context, symbol string) (*models.MPricePoint, error) {
	if cached, ok := s.prices.Get(symbol); ok {
		return cached.(*models.MPricePoint), nil
	}

	q := fmt.Sprintf(`
		SELECT symbol, last_price, last_ts
		FROM %s
		WHERE symbol = ?`, s.view(viewLatestPrice))
	table, err := s.Warehouse.Query(ctx, q, symbol)
	if err != nil {
		return nil, err
	}

	var point *models.MPricePoint
	if !table.Empty() {
		point = &models.MPricePoint{
			Symbol:    helpers.SafeString(table.Value(0, "symbol")),
			LastPrice: helpers.SafeFloat64(table.Value(0, "last_price")),
			LastTS:    helpers.SafeTime(table.Value(0, "last_ts")),
		}
	}

	s.prices.Put(symbol, point)
	return point, nil
}

// -----------------------------------------------------------------------------

// Summary24h returns the 24h summary row for the symbol, or nil.
func (s *Service) Summary24h(ctx context.Context, symbol string) (*models.MSummary24h, error) {
	if cached, ok := s.summaries.Get(symbol); ok {
		return cached.(*models.MSummary24h), nil
	}

	q := fmt.Sprintf(`
		SELECT symbol, last_price, avg_price_24h, abs_change_24h, pct_change_24h
		FROM %s
		WHERE symbol = ?`, s.view(viewSummary24h))
	table, err := s.Warehouse.Query(ctx, q, symbol)
	if err != nil {
		return nil, err
	}

	var summary *models.MSummary24h
	if !table.Empty() {
		summary = &models.MSummary24h{
			Symbol:       helpers.SafeString(table.Value(0, "symbol")),
			LastPrice:    helpers.SafeFloat64(table.Value(0, "last_price")),
			AvgPrice24h:  helpers.SafeFloat64(table.Value(0, "avg_price_24h")),
			AbsChange24h: helpers.SafeFloat64(table.Value(0, "abs_change_24h")),
			PctChange24h: helpers.SafeFloat64(table.Value(0, "pct_change_24h")),
		}
	}

	s.summaries.Put(symbol, summary)
	return summary, nil
}

// -----------------------------------------------------------------------------

// LatestSignal returns the signal row with the greatest bucket_start for the
// symbol, or nil. On an exact bucket_start tie, cross_signal ascending makes
// rank 1 deterministic.
func (s *Service) LatestSignal(ctx context.Context, symbol string) (*models.MSignalRow, error) {
	if cached, ok := s.signals.Get(symbol); ok {
		return cached.(*models.MSignalRow), nil
	}

	q := fmt.Sprintf(`
		WITH ranked AS (
		  SELECT symbol, cross_signal, above_ma200, bucket_start,
		         ROW_NUMBER() OVER (PARTITION BY symbol ORDER BY bucket_start DESC, cross_signal ASC) AS rn
		  FROM %s
		  WHERE symbol = ?
		)
		SELECT symbol, cross_signal, above_ma200, bucket_start
		FROM ranked WHERE rn = 1`, s.view(viewSignals))
	table, err := s.Warehouse.Query(ctx, q, symbol)
	if err != nil {
		return nil, err
	}

	var signal *models.MSignalRow
	if !table.Empty() {
		signal = &models.MSignalRow{
			Symbol:      helpers.SafeString(table.Value(0, "symbol")),
			CrossSignal: helpers.SafeString(table.Value(0, "cross_signal")),
			AboveMA200:  helpers.SafeBool(table.Value(0, "above_ma200")),
			BucketStart: helpers.SafeTime(table.Value(0, "bucket_start")),
		}
	}

	s.signals.Put(symbol, signal)
	return signal, nil
}

// -----------------------------------------------------------------------------

// ValidateHoursBack is the single gate in front of the textual interval
// substitution: only positive integers pass.
func ValidateHoursBack(hours int) error {
	if hours <= 0 {
		return helpers.NewValidationError(fmt.Sprintf("hours back must be a positive integer, got %d", hours))
	}
	return nil
}

// -----------------------------------------------------------------------------

// SeriesWindow returns the trailing hoursBack hours of series points for the
// symbol, ascending by timestamp.
func (s *Service) SeriesWindow(ctx context.Context, symbol string, hoursBack int) ([]models.MSeriesPoint, error) {
	if err := ValidateHoursBack(hoursBack); err != nil {
		return nil, err
	}

	key := symbol + "|" + strconv.Itoa(hoursBack)
	if cached, ok := s.series.Get(key); ok {
		return cached.([]models.MSeriesPoint), nil
	}

	q := fmt.Sprintf(`
		SELECT symbol, bucket_start AS ts, avg_price, ma_50, ma_200
		FROM %s
		WHERE symbol = ?
		  AND %s
		ORDER BY ts`,
		s.view(viewSignals),
		s.Warehouse.WindowPredicate("bucket_start", hoursBack))
	table, err := s.Warehouse.Query(ctx, q, symbol)
	if err != nil {
		return nil, err
	}

	points := make([]models.MSeriesPoint, 0, len(table.Rows))
	for i := range table.Rows {
		points = append(points, models.MSeriesPoint{
			Symbol:   helpers.SafeString(table.Value(i, "symbol")),
			TS:       helpers.SafeTime(table.Value(i, "ts")),
			AvgPrice: helpers.SafeFloat64(table.Value(i, "avg_price")),
			MA50:     helpers.SafeFloat64(table.Value(i, "ma_50")),
			MA200:    helpers.SafeFloat64(table.Value(i, "ma_200")),
		})
	}

	s.series.Put(key, points)
	return points, nil
}

// -----------------------------------------------------------------------------

// InvalidateAll clears all five cache namespaces unconditionally. The next
// call of every operation goes back to the warehouse.
func (s *Service) InvalidateAll() {
	s.symbols.Clear()
	s.prices.Clear()
	s.summaries.Clear()
	s.signals.Clear()
	s.series.Clear()
	if s.Logger != nil {
		s.Logger.Info("All query caches invalidated")
	}
}

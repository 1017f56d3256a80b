package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"crypto-insight/src/helpers"
	"crypto-insight/src/logger"
	"crypto-insight/src/models"
)

// -----------------------------------------------------------------------------
// Stub query layer
// -----------------------------------------------------------------------------

type stubQueries struct {
	symbols     []string
	invalidated int
	calls       int
	err         error
}

func (q *stubQueries) ListSymbols(ctx context.Context) ([]string, error) {
	q.calls++
	if q.err != nil {
		return nil, q.err
	}
	return q.symbols, nil
}

func (q *stubQueries) LatestPrice(ctx context.Context, symbol string) (*models.MPricePoint, error) {
	q.calls++
	return &models.MPricePoint{Symbol: symbol, LastPrice: 64000.5, LastTS: time.Now()}, nil
}

func (q *stubQueries) Summary24h(ctx context.Context, symbol string) (*models.MSummary24h, error) {
	q.calls++
	return &models.MSummary24h{Symbol: symbol, PctChange24h: 3.14159}, nil
}

func (q *stubQueries) LatestSignal(ctx context.Context, symbol string) (*models.MSignalRow, error) {
	q.calls++
	return &models.MSignalRow{Symbol: symbol, CrossSignal: "GOLDEN", BucketStart: time.Now()}, nil
}

func (q *stubQueries) SeriesWindow(ctx context.Context, symbol string, hoursBack int) ([]models.MSeriesPoint, error) {
	q.calls++
	return nil, nil
}

func (q *stubQueries) InvalidateAll() { q.invalidated++ }

// -----------------------------------------------------------------------------

func newTestServer(q *stubQueries) *DashboardServer {
	cfg := &models.MConfig{
		Name:      "test",
		LogLevel:  "ERROR",
		Dashboard: models.MDashboardConfig{DefaultHoursBack: 48, MinHoursBack: 6, MaxHoursBack: 96},
	}
	return NewDashboardServer(cfg, q, logger.NewLogger(cfg.LogLevel, cfg.Name))
}

func doRequest(s *DashboardServer, method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	s.engine.ServeHTTP(rec, req)
	return rec
}

// -----------------------------------------------------------------------------

func TestGetSymbols(t *testing.T) {
	s := newTestServer(&stubQueries{symbols: []string{"BTC-USD", "ETH-USD"}})

	rec := doRequest(s, http.MethodGet, "/api/symbols")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body struct {
		Symbols []string `json:"symbols"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(body.Symbols) != 2 {
		t.Fatalf("expected 2 symbols, got %v", body.Symbols)
	}
}

func TestGetDashboardRendersView(t *testing.T) {
	s := newTestServer(&stubQueries{symbols: []string{"BTC-USD", "ETH-USD"}})

	rec := doRequest(s, http.MethodGet, "/api/dashboard?symbol=ETH-USD&hours=24")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var view models.MDashboardView
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if view.Symbol != "ETH-USD" || view.HoursBack != 24 {
		t.Fatalf("unexpected selection in view: %s/%d", view.Symbol, view.HoursBack)
	}
	if view.KPIChange.Value != "3.14" {
		t.Fatalf("expected formatted pct change, got %q", view.KPIChange.Value)
	}
	if view.ChartPlaceholder == "" {
		t.Fatal("empty series must produce a chart placeholder")
	}
}

func TestGetDashboardRejectsNonIntegerHours(t *testing.T) {
	q := &stubQueries{symbols: []string{"BTC-USD"}}
	s := newTestServer(q)

	rec := doRequest(s, http.MethodGet, "/api/dashboard?hours=abc")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if q.calls != 0 {
		t.Fatalf("invalid input must not trigger queries, got %d calls", q.calls)
	}
}

func TestRefreshInvalidatesThenRerenders(t *testing.T) {
	q := &stubQueries{symbols: []string{"BTC-USD"}}
	s := newTestServer(q)

	rec := doRequest(s, http.MethodPost, "/api/refresh")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if q.invalidated != 1 {
		t.Fatalf("expected one InvalidateAll, got %d", q.invalidated)
	}
	if q.calls == 0 {
		t.Fatal("refresh must re-run the full query flow")
	}
}

func TestConnectionErrorMapsToBadGateway(t *testing.T) {
	q := &stubQueries{err: helpers.NewConnectionError("warehouse unreachable", nil)}
	s := newTestServer(q)

	rec := doRequest(s, http.MethodGet, "/api/dashboard")
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
}

func TestNoSymbolsRendersMessage(t *testing.T) {
	s := newTestServer(&stubQueries{})

	rec := doRequest(s, http.MethodGet, "/api/dashboard")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body map[string]string
	json.Unmarshal(rec.Body.Bytes(), &body)
	if body["message"] != "No symbols available." {
		t.Fatalf("expected no-symbols message, got %v", body)
	}
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(&stubQueries{})

	rec := doRequest(s, http.MethodGet, "/api/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["status"] != "ok" {
		t.Fatalf("expected ok status, got %v", body["status"])
	}
}

package interfaces

import (
	"context"

	"crypto-insight/src/models"
)

// -----------------------------------------------------------------------------
// IDashboardQueries defines the cached query layer consumed by the server.
// Single-row operations return nil (not an error) on empty results.
// -----------------------------------------------------------------------------

type IDashboardQueries interface {

	// -----------------------------------------------------------------------------

	// ListSymbols returns the distinct symbols, sorted ascending.
	ListSymbols(ctx context.Context) ([]string, error)

	// -----------------------------------------------------------------------------

	// LatestPrice returns the most recent price row for a symbol, if any.
	LatestPrice(ctx context.Context, symbol string) (*models.MPricePoint, error)

	// -----------------------------------------------------------------------------

	// Summary24h returns the 24h summary row for a symbol, if any.
	Summary24h(ctx context.Context, symbol string) (*models.MSummary24h, error)

	// -----------------------------------------------------------------------------

	// LatestSignal returns at most one row: the signal with the greatest
	// bucket_start for the symbol.
	LatestSignal(ctx context.Context, symbol string) (*models.MSignalRow, error)

	// -----------------------------------------------------------------------------

	// SeriesWindow returns the trailing hoursBack hours of series points,
	// ascending by timestamp. hoursBack must be a positive integer.
	SeriesWindow(ctx context.Context, symbol string, hoursBack int) ([]models.MSeriesPoint, error)

	// -----------------------------------------------------------------------------

	// InvalidateAll clears every cache namespace unconditionally.
	InvalidateAll()
}

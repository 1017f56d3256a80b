package interfaces

import (
	"context"

	"crypto-insight/src/models"
)

// -----------------------------------------------------------------------------
// IWarehouse defines the contract for the query executor.
// -----------------------------------------------------------------------------

type IWarehouse interface {

	// -----------------------------------------------------------------------------

	// Query executes one statement with server-side parameter binding and
	// returns column names plus all rows in server order. Errors are
	// *helpers.ConnectionError or *helpers.QueryError; callers do not retry.
	Query(ctx context.Context, stmt string, args ...any) (*models.MResultTable, error)

	// -----------------------------------------------------------------------------

	// QualifiedView renders <catalog>.<schema>.<view> in the dialect of the
	// backend (sqlite has no catalogs and uses the bare view name).
	QualifiedView(catalog, schema, view string) string

	// -----------------------------------------------------------------------------

	// WindowPredicate renders the trailing-window filter on a timestamp
	// column. hours must already be validated; it is substituted textually
	// because interval literals cannot be parameter-bound.
	WindowPredicate(column string, hours int) string

	// -----------------------------------------------------------------------------

	// Close the warehouse connection pool
	Close() error
}

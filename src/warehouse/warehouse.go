package warehouse

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"crypto-insight/src/helpers"
	"crypto-insight/src/logger"
	"crypto-insight/src/models"

	_ "github.com/databricks/databricks-sql-go"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// -----------------------------------------------------------------------------

// Conn is the query executor over one warehouse backend. The *sql.DB is a
// pool; every Query releases its rows on all exit paths.
type Conn struct {
	Config *models.MConfig
	DB     *sql.DB
	Driver string
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

// Open dials the configured warehouse and verifies the connection. Credential
// or host failures surface as *helpers.ConnectionError.
func Open(cfg *models.MConfig, log *logger.Logger) (*Conn, error) {
	driver, dsn, err := buildDSN(&cfg.Warehouse)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, helpers.NewConnectionError("failed to open warehouse connection", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, helpers.NewConnectionError("warehouse unreachable", err)
	}

	c := &Conn{
		Config: cfg,
		DB:     db,
		Driver: cfg.Warehouse.Driver,
		Logger: log,
	}
	log.Info("Warehouse connected (driver: %s)", c.Driver)
	return c, nil
}

// -----------------------------------------------------------------------------

func buildDSN(w *models.MWarehouseConfig) (driver string, dsn string, err error) {
	switch w.Driver {
	case "databricks":
		// token:<pat>@<host>:443<http-path>
		return "databricks", fmt.Sprintf("token:%s@%s:443%s", w.AccessToken, w.ServerHostname, w.HTTPPath), nil
	case "postgres":
		return "postgres", w.DSN, nil
	case "sqlite":
		return "sqlite", w.DBPath, nil
	default:
		return "", "", fmt.Errorf("unsupported warehouse driver: %q", w.Driver)
	}
}

// -----------------------------------------------------------------------------

// Query executes one parameterized statement and materializes the full result.
// Statements are written with ?-style placeholders and rebound per dialect.
func (c *Conn) Query(ctx context.Context, stmt string, args ...any) (*models.MResultTable, error) {
	rows, err := c.DB.QueryContext(ctx, c.rebind(stmt), args...)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, helpers.NewQueryError("failed to read result columns", err)
	}

	table := &models.MResultTable{Columns: cols}
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, helpers.NewQueryError("failed to scan result row", err)
		}
		table.Rows = append(table.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err)
	}

	return table, nil
}

// -----------------------------------------------------------------------------

// rebind converts ?-placeholders to the dialect's positional form. Question
// marks inside single-quoted literals are left alone.
func (c *Conn) rebind(stmt string) string {
	if c.Driver != "postgres" {
		return stmt
	}

	var b strings.Builder
	n := 0
	inLiteral := false
	for _, r := range stmt {
		switch {
		case r == '\'':
			inLiteral = !inLiteral
			b.WriteRune(r)
		case r == '?' && !inLiteral:
			n++
			fmt.Fprintf(&b, "$%d", n)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// -----------------------------------------------------------------------------

// QualifiedView renders the namespaced view reference. SQLite has no
// catalog/schema namespaces, so the demo warehouse uses bare view names.
func (c *Conn) QualifiedView(catalog, schema, view string) string {
	if c.Driver == "sqlite" {
		return view
	}
	return fmt.Sprintf("%s.%s.%s", catalog, schema, view)
}

// -----------------------------------------------------------------------------

// WindowPredicate renders the trailing-window filter. The hours value is
// substituted textually (interval literals cannot be parameter-bound); it is
// typed int and validated upstream, which bounds the injection surface to
// this one function.
func (c *Conn) WindowPredicate(column string, hours int) string {
	switch c.Driver {
	case "postgres":
		return fmt.Sprintf("%s >= now() - INTERVAL '%d hours'", column, hours)
	case "sqlite":
		return fmt.Sprintf("%s >= datetime('now', '-%d hours')", column, hours)
	default:
		return fmt.Sprintf("%s >= now() - INTERVAL %d HOURS", column, hours)
	}
}

// -----------------------------------------------------------------------------

// classify sorts driver errors into the connection/query taxonomy. Transport
// and auth failures read differently per driver, so this is heuristic by
// message; anything else is a query error.
func classify(err error) error {
	msg := strings.ToLower(err.Error())
	for _, marker := range []string{
		"connection refused", "no such host", "dial tcp", "timeout",
		"authentication", "invalid access token", "password", "handshake",
		"connection reset", "bad connection", "driver: bad",
	} {
		if strings.Contains(msg, marker) {
			return helpers.NewConnectionError("warehouse connection failed", err)
		}
	}
	return helpers.NewQueryError("warehouse query failed", err)
}

// -----------------------------------------------------------------------------

// Close the connection pool
func (c *Conn) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}

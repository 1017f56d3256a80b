package warehouse

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"crypto-insight/src/helpers"
	"crypto-insight/src/models"
)

// -----------------------------------------------------------------------------
// Dialect rendering
// -----------------------------------------------------------------------------

func TestRebindPostgres(t *testing.T) {
	c := &Conn{Driver: "postgres"}

	got := c.rebind("SELECT a FROM t WHERE x = ? AND y = ?")
	want := "SELECT a FROM t WHERE x = $1 AND y = $2"
	if got != want {
		t.Fatalf("rebind = %q, want %q", got, want)
	}
}

func TestRebindSkipsQuotedLiterals(t *testing.T) {
	c := &Conn{Driver: "postgres"}

	got := c.rebind("SELECT '?' AS q FROM t WHERE x = ?")
	want := "SELECT '?' AS q FROM t WHERE x = $1"
	if got != want {
		t.Fatalf("rebind = %q, want %q", got, want)
	}
}

func TestRebindPassthroughForNativePlaceholders(t *testing.T) {
	for _, driver := range []string{"databricks", "sqlite"} {
		c := &Conn{Driver: driver}
		stmt := "SELECT a FROM t WHERE x = ?"
		if got := c.rebind(stmt); got != stmt {
			t.Fatalf("%s: rebind must be a no-op, got %q", driver, got)
		}
	}
}

func TestWindowPredicatePerDialect(t *testing.T) {
	cases := []struct {
		driver string
		want   string
	}{
		{"databricks", "bucket_start >= now() - INTERVAL 48 HOURS"},
		{"postgres", "bucket_start >= now() - INTERVAL '48 hours'"},
		{"sqlite", "bucket_start >= datetime('now', '-48 hours')"},
	}
	for _, c := range cases {
		conn := &Conn{Driver: c.driver}
		if got := conn.WindowPredicate("bucket_start", 48); got != c.want {
			t.Errorf("%s: predicate = %q, want %q", c.driver, got, c.want)
		}
	}
}

func TestQualifiedView(t *testing.T) {
	if got := (&Conn{Driver: "databricks"}).QualifiedView("demo_catalog", "demo_schema", "v_signals"); got != "demo_catalog.demo_schema.v_signals" {
		t.Fatalf("databricks view = %q", got)
	}
	if got := (&Conn{Driver: "sqlite"}).QualifiedView("demo_catalog", "demo_schema", "v_signals"); got != "v_signals" {
		t.Fatalf("sqlite view = %q", got)
	}
}

// -----------------------------------------------------------------------------
// DSN building
// -----------------------------------------------------------------------------

func TestBuildDSN(t *testing.T) {
	driver, dsn, err := buildDSN(&models.MWarehouseConfig{
		Driver:         "databricks",
		ServerHostname: "dbc-123.cloud.example.com",
		HTTPPath:       "/sql/1.0/warehouses/abc",
		AccessToken:    "dapi-secret",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if driver != "databricks" {
		t.Fatalf("driver = %q", driver)
	}
	if dsn != "token:dapi-secret@dbc-123.cloud.example.com:443/sql/1.0/warehouses/abc" {
		t.Fatalf("dsn = %q", dsn)
	}

	if _, _, err := buildDSN(&models.MWarehouseConfig{Driver: "oracle"}); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

// -----------------------------------------------------------------------------
// Error classification
// -----------------------------------------------------------------------------

func TestClassify(t *testing.T) {
	connCases := []string{
		"dial tcp 10.0.0.1:443: connection refused",
		"invalid access token",
		"driver: bad connection",
	}
	for _, msg := range connCases {
		var connErr *helpers.ConnectionError
		if !errors.As(classify(errors.New(msg)), &connErr) {
			t.Errorf("%q: expected ConnectionError", msg)
		}
	}

	var qErr *helpers.QueryError
	if !errors.As(classify(errors.New("table or view not found: v_nope")), &qErr) {
		t.Error("unknown object should classify as QueryError")
	}
}

// -----------------------------------------------------------------------------
// Executor against a real (in-memory sqlite) backend
// -----------------------------------------------------------------------------

func newSQLiteConn(t *testing.T) *Conn {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return &Conn{DB: db, Driver: "sqlite"}
}

func TestQueryReturnsColumnsAndRowsInOrder(t *testing.T) {
	c := newSQLiteConn(t)
	ctx := context.Background()

	if _, err := c.DB.Exec(`CREATE TABLE v_latest_price (symbol TEXT, last_price REAL)`); err != nil {
		t.Fatalf("ddl: %v", err)
	}
	for _, row := range [][]any{{"ETH-USD", 3200.5}, {"BTC-USD", 64000.25}} {
		if _, err := c.DB.Exec(`INSERT INTO v_latest_price VALUES (?, ?)`, row...); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	table, err := c.Query(ctx, `SELECT symbol, last_price FROM v_latest_price WHERE last_price > ? ORDER BY symbol`, 1000.0)
	if err != nil {
		t.Fatalf("query: %v", err)
	}

	if len(table.Columns) != 2 || table.Columns[0] != "symbol" || table.Columns[1] != "last_price" {
		t.Fatalf("unexpected columns: %v", table.Columns)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(table.Rows))
	}
	if helpers.SafeString(table.Value(0, "symbol")) != "BTC-USD" {
		t.Fatalf("server order not preserved: %v", table.Rows)
	}
	if helpers.SafeFloat64(table.Value(1, "last_price")) != 3200.5 {
		t.Fatalf("unexpected value: %v", table.Value(1, "last_price"))
	}
}

func TestQueryEmptyResultIsNotAnError(t *testing.T) {
	c := newSQLiteConn(t)

	if _, err := c.DB.Exec(`CREATE TABLE t (a TEXT)`); err != nil {
		t.Fatalf("ddl: %v", err)
	}

	table, err := c.Query(context.Background(), `SELECT a FROM t`)
	if err != nil {
		t.Fatalf("empty result must not error: %v", err)
	}
	if !table.Empty() {
		t.Fatalf("expected empty table, got %v", table.Rows)
	}
}

func TestQueryUnknownObjectIsQueryError(t *testing.T) {
	c := newSQLiteConn(t)

	_, err := c.Query(context.Background(), `SELECT a FROM missing_view`)

	var qErr *helpers.QueryError
	if !errors.As(err, &qErr) {
		t.Fatalf("expected QueryError, got %v", err)
	}
}

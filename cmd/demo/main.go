// Demo mode: seeds an in-memory SQLite warehouse with the three source views
// and a few days of sample data, then serves the dashboard against it. Useful
// for trying the UI without warehouse credentials.
package main

import (
	"database/sql"
	"fmt"
	"math"
	"os"
	"os/signal"
	"syscall"

	"crypto-insight/src/logger"
	"crypto-insight/src/models"
	"crypto-insight/src/queries"
	"crypto-insight/src/server"
	"crypto-insight/src/warehouse"

	_ "modernc.org/sqlite"
)

// Shared-cache memory DSN so the seeding connection and the server's pool see
// the same database.
const demoDSN = "file:crypto_insight_demo?mode=memory&cache=shared"

// -----------------------------------------------------------------------------

func main() {
	cfg := &models.MConfig{
		Name:     "crypto-insight-demo",
		Host:     "127.0.0.1",
		Port:     8090,
		LogLevel: "DEBUG",
		Warehouse: models.MWarehouseConfig{
			Driver:  "sqlite",
			DBPath:  demoDSN,
			Catalog: "demo_catalog",
			Schema:  "demo_schema",
		},
		Cache:     models.MCacheConfig{TTLSeconds: 60},
		Dashboard: models.MDashboardConfig{DefaultHoursBack: 48, MinHoursBack: 6, MaxHoursBack: 96},
	}

	appLogger := logger.NewLogger(cfg.LogLevel, cfg.Name)

	// Keep one seeding connection open for the lifetime of the process so the
	// shared in-memory database is not dropped.
	seedDB, err := sql.Open("sqlite", demoDSN)
	if err != nil {
		appLogger.Critical("Failed to open demo database: %v", err)
	}
	defer seedDB.Close()

	if err := seed(seedDB); err != nil {
		appLogger.Critical("Failed to seed demo warehouse: %v", err)
	}
	appLogger.Info("Demo warehouse seeded")

	wh, err := warehouse.Open(cfg, appLogger)
	if err != nil {
		appLogger.Critical("Failed to open warehouse: %v", err)
	}
	defer wh.Close()

	queryService := queries.NewService(cfg, wh, appLogger)
	srv := server.NewDashboardServer(cfg, queryService, appLogger)

	go func() {
		if err := srv.Start(); err != nil {
			appLogger.Critical("Server failed: %v", err)
		}
	}()
	appLogger.Info("Demo dashboard on http://%s:%d", cfg.Host, cfg.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down...")
	srv.Stop()
}

// -----------------------------------------------------------------------------

// seed creates the three views as plain tables (SQLite has no catalogs, so
// the dashboard references them by bare name) and fills 96 hours of hourly
// buckets per symbol.
func seed(db *sql.DB) error {
	ddl := []string{
		`CREATE TABLE v_latest_price (
			symbol TEXT,
			last_price REAL,
			last_ts TEXT
		)`,
		`CREATE TABLE v_summary_24h (
			symbol TEXT,
			last_price REAL,
			avg_price_24h REAL,
			abs_change_24h REAL,
			pct_change_24h REAL
		)`,
		`CREATE TABLE v_signals (
			symbol TEXT,
			cross_signal TEXT,
			above_ma200 INTEGER,
			bucket_start TEXT,
			avg_price REAL,
			ma_50 REAL,
			ma_200 REAL
		)`,
	}
	for _, stmt := range ddl {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("ddl failed: %w", err)
		}
	}

	bases := map[string]float64{
		"BTC-USD": 64000,
		"ETH-USD": 3200,
		"SOL-USD": 150,
	}

	for symbol, base := range bases {
		var last, dayAgo float64
		var daySum float64

		for h := 96; h >= 0; h-- {
			// Gentle sine wave around the base price
			price := base * (1 + 0.03*math.Sin(float64(96-h)/9.0))
			ma50 := base * (1 + 0.02*math.Sin(float64(96-h-4)/9.0))
			ma200 := base

			cross := "NEUTRAL"
			if ma50 > ma200 {
				cross = "GOLDEN"
			} else if ma50 < ma200 {
				cross = "DEATH"
			}
			above := 0
			if price > ma200 {
				above = 1
			}

			_, err := db.Exec(
				`INSERT INTO v_signals (symbol, cross_signal, above_ma200, bucket_start, avg_price, ma_50, ma_200)
				 VALUES (?, ?, ?, datetime('now', ?), ?, ?, ?)`,
				symbol, cross, above, fmt.Sprintf("-%d hours", h), price, ma50, ma200,
			)
			if err != nil {
				return fmt.Errorf("seed signals failed: %w", err)
			}

			last = price
			if h == 24 {
				dayAgo = price
			}
			if h < 24 {
				daySum += price
			}
		}

		if _, err := db.Exec(
			`INSERT INTO v_latest_price (symbol, last_price, last_ts) VALUES (?, ?, datetime('now'))`,
			symbol, last,
		); err != nil {
			return fmt.Errorf("seed latest price failed: %w", err)
		}

		abs := last - dayAgo
		if _, err := db.Exec(
			`INSERT INTO v_summary_24h (symbol, last_price, avg_price_24h, abs_change_24h, pct_change_24h)
			 VALUES (?, ?, ?, ?, ?)`,
			symbol, last, daySum/24, abs, abs/dayAgo*100,
		); err != nil {
			return fmt.Errorf("seed summary failed: %w", err)
		}
	}

	return nil
}

package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"crypto-insight/src/config"
	"crypto-insight/src/helpers"
	"crypto-insight/src/logger"
	"crypto-insight/src/queries"
	"crypto-insight/src/server"
	"crypto-insight/src/warehouse"
)

// -----------------------------------------------------------------------------

func main() {

	// Parse command line flags
	configPath := flag.String("config", "config/default.yaml", "path to config file")
	flag.Parse()

	// Load config from YAML file + environment
	cfg, err := config.NewConfig(*configPath)
	if err != nil {
		// Missing connection settings halt before any query runs; report
		// exactly which keys are absent.
		var cfgErr *helpers.ConfigurationError
		if errors.As(err, &cfgErr) {
			fmt.Printf("Missing required configuration: %s\n", strings.Join(cfgErr.Missing, ", "))
		} else {
			fmt.Printf("Error loading config: %v\n", err)
		}
		os.Exit(1)
	}

	// Setup logger
	appLogger := logger.NewLogger(cfg.LogLevel, cfg.Name)

	// Open warehouse connection
	wh, err := warehouse.Open(cfg.MConfig, appLogger)
	if err != nil {
		appLogger.Critical("Failed to open warehouse: %v", err)
	}
	defer wh.Close()

	// Cached query layer + server
	queryService := queries.NewService(cfg.MConfig, wh, appLogger)
	srv := server.NewDashboardServer(cfg.MConfig, queryService, appLogger)

	go func() {
		if err := srv.Start(); err != nil {
			appLogger.Critical("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down...")
	srv.Stop()
}

// Package main implements a one-shot recurring-task sweep.
//
// The in-session sweep only fires while the MCP server is running and does
// not backfill missed days. Operators who want generation regardless of
// session uptime can run this binary from cron instead.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/planify/planify/internal/config"
	"github.com/planify/planify/internal/logger"
	"github.com/planify/planify/internal/storage"
	"github.com/planify/planify/internal/sweep"
	"github.com/planify/planify/internal/tracker"
)

func run() int {
	configPath := flag.String("config", "planify.yml", "path to the YAML config file")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		return 1
	}

	zlog, err := logger.New(cfg.Logging.Development)
	if err != nil {
		log.Printf("Failed to build logger: %v", err)
		return 1
	}
	defer func() { _ = zlog.Sync() }()

	backend, err := storage.GetBackend(cfg.DataDir)
	if err != nil {
		zlog.Error("failed to open storage backend", zap.Error(err))
		return 1
	}

	store := tracker.NewStore(backend, tracker.WithLogger(zlog))
	sweep.New(store, cfg.Sweep.Interval, zlog).Sweep()

	return 0
}

func main() {
	os.Exit(run())
}

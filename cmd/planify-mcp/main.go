// Package main implements the planify MCP server.
//
// The server exposes the tracker store as MCP tools over stdio JSON-RPC.
// On startup it loads the persisted snapshot through the configured storage
// backend, fires a one-shot fetch of the remote update feed, and starts the
// recurring-task sweep for the lifetime of the session.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/planify/planify/internal/config"
	"github.com/planify/planify/internal/feed"
	"github.com/planify/planify/internal/logger"
	"github.com/planify/planify/internal/mcpserver"
	"github.com/planify/planify/internal/storage"
	"github.com/planify/planify/internal/sweep"
	"github.com/planify/planify/internal/tracker"
)

func run() int {
	configPath := flag.String("config", "planify.yml", "path to the YAML config file")
	flag.Parse()

	// Optional .env for local development; absence is fine.
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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Fire-and-forget feed refresh; a dead feed just means zero updates.
	if cfg.Feed.URL != "" {
		go feed.NewFetcher(cfg.Feed.URL, nil, zlog).Fetch(store)
	}

	go sweep.New(store, cfg.Sweep.Interval, zlog).Run(ctx)

	errLogger := log.New(os.Stderr, "[planify-mcp] ", log.LstdFlags)
	srv := mcpserver.NewServer(store)
	if err := server.ServeStdio(srv, server.WithErrorLogger(errLogger)); err != nil {
		errLogger.Printf("Server error: %v", err)
		return 1
	}

	return 0
}

func main() {
	os.Exit(run())
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Dan9191/calc-service/internal/app"
	"github.com/Dan9191/calc-service/internal/config"
)

func main() {
	// Initialize logger
	logger := app.NewLogger(os.Getenv("LOG_LEVEL"))

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	logger = app.NewLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize layers
	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("Failed to initialize: %v", err)
	}
	defer a.Close()

	// Start server
	if err := a.Serve(ctx); err != nil {
		logger.Fatalf("Server failed: %v", err)
	}
}

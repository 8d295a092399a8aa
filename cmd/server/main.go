package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/mmynk/retailbill/internal/config"
	"github.com/mmynk/retailbill/internal/server"
	"github.com/mmynk/retailbill/pkg/logging"
)

func main() {
	logger := logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Serve(ctx, cfg, logger); err != nil {
		logger.Error("Server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("Server stopped")
}

package main

import (
	"context"
	"log/slog"
	"os"

	"paperquery/internal/app"
	"paperquery/internal/config"
	"paperquery/internal/logger"
)

func main() {
	handler := logger.NewContextHandler(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(slog.New(handler))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	store, err := app.Bootstrap(ctx, cfg)
	if err != nil {
		slog.Error("failed to bootstrap vector store", "error", err)
		os.Exit(1)
	}

	a, err := app.New(ctx, cfg, store)
	if err != nil {
		slog.Error("failed to assemble application", "error", err)
		os.Exit(1)
	}

	a.Run(ctx, os.Stdin, os.Stdout)
}

package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/staysuite/staysuite-backend/internal/store"
	"github.com/staysuite/staysuite-backend/pkg/config"
	"github.com/staysuite/staysuite-backend/pkg/logger"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "staysuite"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "staysuite",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	registry := prometheus.NewRegistry()
	s, err := store.Open(ctx, cfg, logg, registry)
	if err != nil {
		logg.Error(ctx, "failed to open entity store", err)
		os.Exit(1)
	}
	defer func() {
		if err := s.Close(); err != nil {
			logg.Error(context.Background(), "error closing entity store", err)
		}
	}()

	counts, err := s.Counts(ctx)
	if err != nil {
		logg.Error(ctx, "failed to count entities", err)
		os.Exit(1)
	}

	fields := make(map[string]any, len(counts)+1)
	fields["env"] = cfg.App.Env
	for table, count := range counts {
		fields[table] = count
	}
	logg.Info(logg.WithFields(ctx, fields), "entity store ready")

	<-ctx.Done()
	logg.Info(context.Background(), "shutting down")
}

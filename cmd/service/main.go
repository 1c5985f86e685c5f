package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/distance-matrix-service/internal/adapter/distancematrix"
	httpadapter "github.com/couchcryptid/distance-matrix-service/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/distance-matrix-service/internal/adapter/kafka"
	"github.com/couchcryptid/distance-matrix-service/internal/config"
	"github.com/couchcryptid/distance-matrix-service/internal/observability"
	"github.com/couchcryptid/distance-matrix-service/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	opts := cfg.DistanceMatrixOptions
	client, err := distancematrix.NewClient(distancematrix.Settings{
		APIKey:  cfg.DistanceMatrixAPIKey,
		BaseURL: cfg.DistanceMatrixBaseURL,
		Timeout: cfg.DistanceMatrixTimeout,
		Options: opts,
	}, logger, metrics)
	if err != nil {
		logger.Error("failed to create distance matrix client", "error", err)
		os.Exit(1)
	}
	logger.Info("distance matrix client configured",
		"mode", opts.Mode(),
		"units", opts.Units(),
		"language", opts.Language(),
		"output", opts.Output(),
		"timeout", cfg.DistanceMatrixTimeout,
	)

	reader := kafkaadapter.NewReader(cfg, logger)
	writer := kafkaadapter.NewWriter(cfg, logger)
	transformer := pipeline.NewTransformer(client, logger)

	p := pipeline.New(reader, transformer, writer, logger, metrics, cfg.BatchSize)

	srv := httpadapter.NewServer(cfg.HTTPAddr, client, p, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start lookup pipeline.
	go func() {
		if err := p.Run(ctx); err != nil {
			logger.Error("pipeline error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := reader.Close(); err != nil {
		logger.Error("kafka reader close error", "error", err)
	}
	if err := writer.Close(); err != nil {
		logger.Error("kafka writer close error", "error", err)
	}

	logger.Info("shutdown complete")
}

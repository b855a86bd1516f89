// Package main provides the entry point for the paper content service.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/paperdash/content-service/internal/arxiv"
	"github.com/paperdash/content-service/internal/cache"
	"github.com/paperdash/content-service/internal/config"
	"github.com/paperdash/content-service/internal/download"
	"github.com/paperdash/content-service/internal/extract"
	"github.com/paperdash/content-service/internal/fetcher"
	"github.com/paperdash/content-service/internal/observability"
	"github.com/paperdash/content-service/internal/qa"
	httpserver "github.com/paperdash/content-service/internal/server/http"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := observability.NewLogger(observability.LoggingConfig{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		Output:     cfg.Logging.Output,
		AddSource:  cfg.Logging.AddSource,
		TimeFormat: cfg.Logging.TimeFormat,
	})
	logger = logger.With().Str("component", "server").Logger()
	logger.Info().Msg("paper content service starting")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var metrics *observability.Metrics
	if cfg.Metrics.Enabled {
		metrics = observability.NewMetrics(cfg.Metrics.Namespace)
	}

	arxivClient := arxiv.New(arxiv.Config{
		BaseURL:    cfg.ArXiv.BaseURL,
		Timeout:    cfg.ArXiv.Timeout,
		RateLimit:  cfg.ArXiv.RateLimit,
		BurstSize:  cfg.ArXiv.BurstSize,
		MaxResults: cfg.ArXiv.MaxResults,
	})
	paperFetcher := fetcher.New(arxivClient, logger, metrics)

	downloader := download.New(download.Config{
		Timeout:   cfg.PDF.Timeout,
		MaxSize:   cfg.PDF.MaxSize,
		UserAgent: cfg.PDF.UserAgent,
	})
	extractor := extract.New(downloader, cfg.Extract.MinContentLength, logger)

	store := cache.NewInMemory(metrics)
	preparer := qa.New(store, cfg.QA.MaxContentLength)

	httpCfg := httpserver.Config{
		Address:           cfg.Server.Address(),
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ShutdownTimeout:   cfg.Server.ShutdownTimeout,
		DefaultMaxResults: 6,
		MaxResults:        cfg.ArXiv.MaxResults,
		PreviewLength:     cfg.QA.PreviewLength,
	}
	if cfg.Metrics.Enabled {
		httpCfg.MetricsPath = cfg.Metrics.Path
	}

	srv := httpserver.NewServer(
		httpCfg,
		paperFetcher,
		extractor,
		store,
		preparer,
		logger,
		metrics,
	)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	logger.Info().
		Str("address", httpCfg.Address).
		Bool("metrics_enabled", cfg.Metrics.Enabled).
		Msg("paper content service is ready")

	select {
	case <-ctx.Done():
		logger.Info().Msg("received shutdown signal")
	case err := <-errCh:
		logger.Error().Err(err).Msg("server error")
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("HTTP server shutdown error")
	}

	logger.Info().Msg("paper content service shutdown complete")
	return nil
}

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadapter "github.com/halocline/station-map-etl/internal/adapter/http"
	kafkaadapter "github.com/halocline/station-map-etl/internal/adapter/kafka"
	"github.com/halocline/station-map-etl/internal/adapter/zonesapi"
	"github.com/halocline/station-map-etl/internal/config"
	"github.com/halocline/station-map-etl/internal/domain"
	"github.com/halocline/station-map-etl/internal/observability"
	"github.com/halocline/station-map-etl/internal/pipeline"
	"github.com/halocline/station-map-etl/internal/zones"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize zone enrichment (feature-flagged via ZONES_ENABLED).
	var locator domain.ZoneLocator
	var inventory httpadapter.ZoneInventory
	if cfg.ZonesEnabled {
		set, err := loadZones(ctx, cfg, logger, metrics)
		if err != nil {
			logger.Error("failed to load management zones", "error", err)
			os.Exit(1)
		}
		locator = set
		inventory = set
		metrics.ZonesEnabled.Set(1)
		metrics.ZonesIndexed.Set(float64(set.Len()))
		logger.Info("zone enrichment enabled", "zones", set.Len(), "labels", set.Labels())
	} else {
		logger.Info("zone enrichment disabled")
	}

	reader := kafkaadapter.NewReader(cfg, logger)
	writer := kafkaadapter.NewWriter(cfg, logger)

	opts := domain.ParseOptions{Separator: cfg.CoordSeparator, Convention: cfg.Convention}
	transformer := pipeline.NewStationTransformer(locator, opts, logger, metrics)

	p := pipeline.New(reader, transformer, writer, logger, metrics, cfg.BatchSize)

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, inventory, logger)

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start ETL pipeline.
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

// loadZones fetches the configured zone polygons and builds the spatial index.
func loadZones(ctx context.Context, cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) (*zones.Set, error) {
	client := zonesapi.NewClient(cfg.ZonesURL, cfg.ZonesTimeout, logger)
	fetcher := zonesapi.NewCachedFetcher(client, cfg.ZonesCacheSize)

	start := time.Now()
	set, err := zones.LoadRemote(ctx, fetcher, cfg.ZoneLabels, cfg.ZoneLabelProperty)
	if err != nil {
		return nil, err
	}
	metrics.ZoneFetchDuration.Observe(time.Since(start).Seconds())
	return set, nil
}

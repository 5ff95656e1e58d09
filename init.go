package main

import (
	"context"
	"fmt"

	"github.com/pharmos/gateway/internal/auth"
	"github.com/pharmos/gateway/internal/config"
	"github.com/pharmos/gateway/internal/graphql"
	"github.com/pharmos/gateway/internal/pubsub"
	"github.com/pharmos/gateway/internal/telemetry"
	"github.com/pharmos/gateway/pkg/predictor/mock"
	"github.com/pharmos/gateway/pkg/store"
	"github.com/pharmos/gateway/pkg/store/memory"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

func loadConfig() (*config.Config, error) {
	return config.Load()
}

func initLogger(level string) (*otelzap.Logger, error) {
	return telemetry.NewLogger(level)
}

func initTracer(ctx context.Context, cfg *config.Config) (func(context.Context) error, error) {
	if !cfg.OTELEnabled {
		return func(context.Context) error { return nil }, nil
	}

	_, shutdown, err := telemetry.InitTracer(ctx, cfg.OTELEndpoint, cfg.ServiceName, cfg.Version)
	return shutdown, err
}

// initStores builds the in-memory repositories, seeded from the data dir
// when one is configured and from the built-in demo fixtures otherwise.
func initStores(ctx context.Context, cfg *config.Config, logger *otelzap.Logger) (*store.Stores, error) {
	stores := memory.New()

	if cfg.DataDir != "" {
		if err := memory.LoadDir(ctx, cfg.DataDir, stores); err != nil {
			return nil, fmt.Errorf("loading data from %s: %w", cfg.DataDir, err)
		}
		logger.Info("Loaded data", zap.String("dir", cfg.DataDir))
		return stores, nil
	}

	if err := memory.SeedDemo(ctx, stores); err != nil {
		return nil, fmt.Errorf("seeding demo data: %w", err)
	}
	logger.Info("Seeded demo fixtures")
	return stores, nil
}

func initSchema(cfg *config.Config, stores *store.Stores, logger *otelzap.Logger) (*graphql.Schema, *auth.Verifier, *telemetry.Metrics, error) {
	verifier, err := auth.NewVerifier(cfg.JWTSecret, cfg.TokenCacheSize)
	if err != nil {
		return nil, nil, nil, err
	}

	metrics := telemetry.NewMetrics()
	bus := pubsub.New(cfg.SubscriberBuffer, pubsub.WithHooks(
		func(topic string) { metrics.EventsPublished.WithLabelValues(topic).Inc() },
		func(topic string) { metrics.EventsDropped.WithLabelValues(topic).Inc() },
		func(delta int) { metrics.ActiveSubscribers.Add(float64(delta)) },
	))

	schema, err := graphql.NewSchema(graphql.Deps{
		Stores:    stores,
		Bus:       bus,
		Predictor: mock.New(),
		Logger:    logger,
		Metrics:   metrics,
	})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("building schema: %w", err)
	}
	return schema, verifier, metrics, nil
}

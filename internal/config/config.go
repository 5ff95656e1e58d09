package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"go.opentelemetry.io/otel/attribute"
)

// Config holds all configuration for the service.
type Config struct {
	// Server
	Port     int    `envconfig:"PORT" default:"8080"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Auth
	JWTSecret      string `envconfig:"JWT_SECRET" default:"pharmos-dev-secret"`
	TokenCacheSize int    `envconfig:"TOKEN_CACHE_SIZE" default:"1024"`

	// Data. Empty means the built-in demo fixtures.
	DataDir string `envconfig:"DATA_DIR" default:""`

	// Batching
	LoaderWait     time.Duration `envconfig:"LOADER_WAIT" default:"1ms"`
	LoaderMaxBatch int           `envconfig:"LOADER_MAX_BATCH" default:"100"`

	// Subscriptions
	SubscriberBuffer int `envconfig:"SUBSCRIBER_BUFFER" default:"16"`

	// Telemetry
	OTELEnabled  bool   `envconfig:"OTEL_ENABLED" default:"false"`
	OTELEndpoint string `envconfig:"OTEL_ENDPOINT" default:"http://localhost:4318"`
	ServiceName  string `envconfig:"SERVICE_NAME" default:"pharmos-gateway"`
	Version      string `envconfig:"SERVICE_VERSION" default:"0.1.0"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return &cfg, nil
}

// Attributes returns OpenTelemetry attributes for this configuration.
func (c *Config) Attributes() []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("service.name", c.ServiceName),
		attribute.String("service.version", c.Version),
		attribute.Int("loader.max_batch", c.LoaderMaxBatch),
		attribute.Int("subscriber.buffer", c.SubscriberBuffer),
	}
}

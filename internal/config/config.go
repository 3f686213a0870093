// Package config loads service settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap/zapcore"
)

// Config holds the service settings.
type Config struct {
	HTTPAddr        string
	ServiceName     string
	ShutdownTimeout time.Duration

	Log struct {
		Level  string // debug, info, warn, error
		Format string // json or console
	}

	// Telemetry toggles the OTLP exporters. Each is off unless enabled, so the
	// service runs without a collector.
	Telemetry struct {
		Traces  bool
		Metrics bool
		Logs    bool
	}
}

// Load reads the configuration from environment variables, applying defaults
// for anything unset.
func Load() (*Config, error) {
	cfg := &Config{}

	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":8080")
	cfg.ServiceName = getEnv("OTEL_SERVICE_NAME", "inflatable-compliance")

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	if _, err := zapcore.ParseLevel(cfg.Log.Level); err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")
	if cfg.Log.Format != "json" && cfg.Log.Format != "console" {
		return nil, fmt.Errorf("LOG_FORMAT: unsupported format %q", cfg.Log.Format)
	}

	var err error
	if cfg.Telemetry.Traces, err = getBool("OTEL_TRACES_ENABLED", false); err != nil {
		return nil, err
	}
	if cfg.Telemetry.Metrics, err = getBool("OTEL_METRICS_ENABLED", false); err != nil {
		return nil, err
	}
	if cfg.Telemetry.Logs, err = getBool("OTEL_LOGS_ENABLED", false); err != nil {
		return nil, err
	}

	cfg.ShutdownTimeout = 5 * time.Second
	if v := os.Getenv("SHUTDOWN_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("SHUTDOWN_TIMEOUT: invalid duration %q", v)
		}
		cfg.ShutdownTimeout = d
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: invalid boolean %q", key, v)
	}
	return b, nil
}

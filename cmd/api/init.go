package main

import (
	"context"
	"errors"
	"fmt"

	"inflatable-compliance/internal/calculator"
	"inflatable-compliance/internal/config"
	"inflatable-compliance/internal/inspection"
	"inflatable-compliance/internal/observability"
)

// initTelemetry starts the enabled OTLP exporters and registers the domain
// metric instruments. Instruments are registered even when metrics export is
// off; they then record into the no-op provider. The returned shutdown is
// always safe to call.
func initTelemetry(ctx context.Context, cfg *config.Config) (func(context.Context) error, error) {
	var shutdowns []func(context.Context) error
	shutdown := func(ctx context.Context) error {
		var errs []error
		for i := len(shutdowns) - 1; i >= 0; i-- {
			errs = append(errs, shutdowns[i](ctx))
		}
		return errors.Join(errs...)
	}

	if cfg.Telemetry.Traces {
		s, err := observability.InitTracing(ctx, cfg.ServiceName)
		if err != nil {
			return shutdown, fmt.Errorf("init tracing: %w", err)
		}
		shutdowns = append(shutdowns, s)
	}

	if cfg.Telemetry.Metrics {
		s, err := observability.InitMetrics(ctx, cfg.ServiceName)
		if err != nil {
			return shutdown, fmt.Errorf("init metrics: %w", err)
		}
		shutdowns = append(shutdowns, s)
	}

	if cfg.Telemetry.Logs {
		s, err := observability.InitLogging(ctx, cfg.ServiceName)
		if err != nil {
			return shutdown, fmt.Errorf("init log export: %w", err)
		}
		shutdowns = append(shutdowns, s)
	}

	if err := calculator.InitMetrics(); err != nil {
		return shutdown, err
	}
	if err := inspection.InitMetrics(); err != nil {
		return shutdown, err
	}

	return shutdown, nil
}

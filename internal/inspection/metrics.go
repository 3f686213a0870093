package inspection

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// Metric instruments, initialized once via InitMetrics().
var (
	evalCounter       metric.Int64Counter
	evalHistogram     metric.Float64Histogram
	criticalCounter   metric.Int64Counter
	completionPercent metric.Int64Histogram
	errorCounter      metric.Int64Counter
)

// InitMetrics registers the inspection evaluation instruments.
// Call this once at startup (after observability.InitMetrics).
func InitMetrics() error {
	meter := otel.Meter("inspection")

	var err error

	evalCounter, err = meter.Int64Counter("compliance.evaluations.total",
		metric.WithDescription("Total number of inspection evaluations"),
		metric.WithUnit("{evaluation}"),
	)
	if err != nil {
		return fmt.Errorf("creating evaluation counter: %w", err)
	}

	evalHistogram, err = meter.Float64Histogram("compliance.evaluation.duration",
		metric.WithDescription("Duration of inspection evaluations in milliseconds"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(0.05, 0.1, 0.5, 1, 5, 10, 50),
	)
	if err != nil {
		return fmt.Errorf("creating evaluation histogram: %w", err)
	}

	criticalCounter, err = meter.Int64Counter("compliance.critical_failures.total",
		metric.WithDescription("Evaluated inspections with at least one critical failure"),
		metric.WithUnit("{inspection}"),
	)
	if err != nil {
		return fmt.Errorf("creating critical failure counter: %w", err)
	}

	completionPercent, err = meter.Int64Histogram("compliance.completion.percentage",
		metric.WithDescription("Completion percentage of evaluated assessments"),
		metric.WithUnit("%"),
		metric.WithExplicitBucketBoundaries(0, 25, 50, 75, 90, 100),
	)
	if err != nil {
		return fmt.Errorf("creating completion histogram: %w", err)
	}

	errorCounter, err = meter.Int64Counter("compliance.inspection.errors.total",
		metric.WithDescription("Total number of rejected inspection requests"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return fmt.Errorf("creating error counter: %w", err)
	}

	return nil
}

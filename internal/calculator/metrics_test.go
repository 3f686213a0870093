package calculator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestCalculationDurationBuckets(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	oldProvider := otel.GetMeterProvider()
	otel.SetMeterProvider(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)))
	t.Cleanup(func() { otel.SetMeterProvider(oldProvider) })

	require.NoError(t, InitMetrics())
	recordCalculation(context.Background(), "anchors", 8, 0.004)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	var hist *metricdata.Histogram[float64]
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name == "compliance.calculation.duration" {
				h, ok := m.Data.(metricdata.Histogram[float64])
				require.True(t, ok)
				hist = &h
			}
		}
	}
	require.NotNil(t, hist, "duration histogram not collected")
	require.Len(t, hist.DataPoints, 1)

	dp := hist.DataPoints[0]
	assert.Equal(t, durationBuckets, dp.Bounds)
	// 0.004ms falls in (0.0025, 0.005].
	assert.Equal(t, uint64(1), dp.BucketCounts[2])
	assert.Equal(t, uint64(1), dp.Count)
}

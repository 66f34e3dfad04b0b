package oteladapters_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/AntonStoeckl/library-lending/eventstore/oteladapters"
)

func Test_MetricsCollector_RecordDuration(t *testing.T) {
	// arrange
	reader, collector := givenMetricsCollector(t)

	// act
	collector.RecordDuration("eventstore_query_duration_seconds", 150*time.Millisecond, map[string]string{
		"operation": "query",
		"status":    "success",
	})

	// assert
	histogram, ok := findMetric(t, reader, "eventstore_query_duration_seconds").Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, histogram.DataPoints, 1)
	assert.Equal(t, uint64(1), histogram.DataPoints[0].Count)
	assert.InDelta(t, 0.15, histogram.DataPoints[0].Sum, 0.001)

	expected := attribute.NewSet(attribute.String("operation", "query"), attribute.String("status", "success"))
	assert.True(t, histogram.DataPoints[0].Attributes.Equals(&expected))
}

func Test_MetricsCollector_IncrementCounter(t *testing.T) {
	// arrange
	reader, collector := givenMetricsCollector(t)
	labels := map[string]string{"operation": "append"}

	// act
	collector.IncrementCounter("eventstore_concurrency_conflicts_total", labels)
	collector.IncrementCounterContext(t.Context(), "eventstore_concurrency_conflicts_total", labels)

	// assert
	sum, ok := findMetric(t, reader, "eventstore_concurrency_conflicts_total").Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, sum.DataPoints, 1)
	assert.Equal(t, int64(2), sum.DataPoints[0].Value)
}

func Test_MetricsCollector_RecordValue(t *testing.T) {
	// arrange
	reader, collector := givenMetricsCollector(t)

	// act
	collector.RecordValue("eventstore_events_queried_total", 3, nil)
	collector.RecordValueContext(t.Context(), "eventstore_events_queried_total", 7, nil)

	// assert
	gauge, ok := findMetric(t, reader, "eventstore_events_queried_total").Data.(metricdata.Gauge[float64])
	require.True(t, ok)
	require.Len(t, gauge.DataPoints, 1)
	assert.InDelta(t, 7.0, gauge.DataPoints[0].Value, 0.0001)
}

func Test_MetricsCollector_IsSafeForConcurrentUse(t *testing.T) {
	// arrange
	reader, collector := givenMetricsCollector(t)
	var wg sync.WaitGroup

	// act
	for range 50 {
		wg.Add(1)

		go func() {
			defer wg.Done()
			collector.IncrementCounter("commandhandler_requests_total", map[string]string{"command_type": "BorrowBook"})
		}()
	}

	wg.Wait()

	// assert
	sum, ok := findMetric(t, reader, "commandhandler_requests_total").Data.(metricdata.Sum[int64])
	require.True(t, ok)
	assert.Equal(t, int64(50), sum.DataPoints[0].Value)
}

func givenMetricsCollector(t *testing.T) (*sdkmetric.ManualReader, *oteladapters.MetricsCollector) {
	t.Helper()

	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	return reader, oteladapters.NewMetricsCollector(provider.Meter("test"))
}

func findMetric(t *testing.T, reader *sdkmetric.ManualReader, name string) metricdata.Metrics {
	t.Helper()

	var resourceMetrics metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &resourceMetrics))

	for _, scopeMetrics := range resourceMetrics.ScopeMetrics {
		for _, m := range scopeMetrics.Metrics {
			if m.Name == name {
				return m
			}
		}
	}

	t.Fatalf("metric %s not found", name)

	return metricdata.Metrics{}
}

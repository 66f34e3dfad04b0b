package testdoubles

import (
	"context"
	"maps"
	"sync"
	"time"
)

// MetricRecord is one captured metrics call, Value is the duration in seconds for durations and 1 for counters.
type MetricRecord struct {
	Kind   string
	Metric string
	Value  float64
	Labels map[string]string
}

const (
	KindDuration = "duration"
	KindCounter  = "counter"
	KindValue    = "value"
)

// MetricsCollectorSpy captures MetricsCollector and ContextualMetricsCollector calls.
type MetricsCollectorSpy struct {
	records []MetricRecord
	mu      sync.Mutex
}

func NewMetricsCollectorSpy() *MetricsCollectorSpy {
	return &MetricsCollectorSpy{records: make([]MetricRecord, 0)}
}

func (s *MetricsCollectorSpy) record(kind, metric string, value float64, labels map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, MetricRecord{Kind: kind, Metric: metric, Value: value, Labels: maps.Clone(labels)})
}

func (s *MetricsCollectorSpy) RecordDuration(metric string, duration time.Duration, labels map[string]string) {
	s.record(KindDuration, metric, duration.Seconds(), labels)
}

func (s *MetricsCollectorSpy) IncrementCounter(metric string, labels map[string]string) {
	s.record(KindCounter, metric, 1, labels)
}

func (s *MetricsCollectorSpy) RecordValue(metric string, value float64, labels map[string]string) {
	s.record(KindValue, metric, value, labels)
}

func (s *MetricsCollectorSpy) RecordDurationContext(_ context.Context, metric string, duration time.Duration, labels map[string]string) {
	s.RecordDuration(metric, duration, labels)
}

func (s *MetricsCollectorSpy) IncrementCounterContext(_ context.Context, metric string, labels map[string]string) {
	s.IncrementCounter(metric, labels)
}

func (s *MetricsCollectorSpy) RecordValueContext(_ context.Context, metric string, value float64, labels map[string]string) {
	s.RecordValue(metric, value, labels)
}

// RecordsOf returns the captured records of metric.
func (s *MetricsCollectorSpy) RecordsOf(metric string) []MetricRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := make([]MetricRecord, 0)

	for _, r := range s.records {
		if r.Metric == metric {
			found = append(found, r)
		}
	}

	return found
}

// HasRecord reports whether metric was recorded with all of the given labels.
func (s *MetricsCollectorSpy) HasRecord(metric string, labels map[string]string) bool {
	for _, r := range s.RecordsOf(metric) {
		matched := true

		for k, v := range labels {
			if r.Labels[k] != v {
				matched = false
				break
			}
		}

		if matched {
			return true
		}
	}

	return false
}

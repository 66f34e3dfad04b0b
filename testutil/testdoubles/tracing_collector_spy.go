package testdoubles

import (
	"context"
	"maps"
	"sync"

	"github.com/AntonStoeckl/library-lending/eventstore"
)

// SpanContextSpy is a SpanContext that keeps status and attributes.
type SpanContextSpy struct {
	status     string
	attributes map[string]string
	mu         sync.Mutex
}

func (c *SpanContextSpy) SetStatus(status string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.status = status
}

func (c *SpanContextSpy) AddAttribute(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.attributes[key] = value
}

// SpanRecord is a started span, Status and EndAttributes are set once it finished.
type SpanRecord struct {
	Name            string
	StartAttributes map[string]string
	Status          string
	EndAttributes   map[string]string
	Finished        bool
}

// TracingCollectorSpy captures TracingCollector calls.
type TracingCollectorSpy struct {
	spans []*SpanRecord
	index map[*SpanContextSpy]*SpanRecord
	mu    sync.Mutex
}

func NewTracingCollectorSpy() *TracingCollectorSpy {
	return &TracingCollectorSpy{index: make(map[*SpanContextSpy]*SpanRecord)}
}

func (s *TracingCollectorSpy) StartSpan(
	ctx context.Context,
	name string,
	attrs map[string]string,
) (context.Context, eventstore.SpanContext) {

	s.mu.Lock()
	defer s.mu.Unlock()

	spanCtx := &SpanContextSpy{attributes: make(map[string]string)}
	record := &SpanRecord{Name: name, StartAttributes: maps.Clone(attrs)}
	s.spans = append(s.spans, record)
	s.index[spanCtx] = record

	return ctx, spanCtx
}

func (s *TracingCollectorSpy) FinishSpan(spanCtx eventstore.SpanContext, status string, attrs map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	spy, ok := spanCtx.(*SpanContextSpy)
	if !ok {
		return
	}

	if record, found := s.index[spy]; found {
		record.Status = status
		record.EndAttributes = maps.Clone(attrs)
		record.Finished = true
	}
}

// SpansNamed returns copies of the spans with name.
func (s *TracingCollectorSpy) SpansNamed(name string) []SpanRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := make([]SpanRecord, 0)

	for _, span := range s.spans {
		if span.Name == name {
			found = append(found, *span)
		}
	}

	return found
}

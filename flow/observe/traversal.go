// Package observe records traversal activity as OpenTelemetry metrics.
package observe

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// Instrument names.
const (
	ElementsName = "treeflow.traversal.elements"
	LevelsName   = "treeflow.traversal.levels"
	FailuresName = "treeflow.traversal.failures"
	PendingName  = "treeflow.traversal.pending"
	DepthName    = "treeflow.traversal.depth"
)

// TraversalMetrics holds the instruments updated by a recursive traversal.
// A nil *TraversalMetrics records nothing.
type TraversalMetrics struct {
	elements metric.Int64Counter
	levels   metric.Int64Counter
	failures metric.Int64Counter
	pending  metric.Int64UpDownCounter
	depth    metric.Int64Histogram

	attrs metric.MeasurementOption
}

// NewTraversalMetrics creates the traversal instruments on meter. A nil
// meter falls back to the no-op provider.
func NewTraversalMetrics(meter metric.Meter, attrs ...attribute.KeyValue) (*TraversalMetrics, error) {
	if meter == nil {
		meter = noop.NewMeterProvider().Meter("treeflow")
	}

	var (
		m   TraversalMetrics
		err error
	)
	m.elements, err = meter.Int64Counter(ElementsName,
		metric.WithDescription("elements yielded by recursive traversals"),
		metric.WithUnit("{element}"))
	if err != nil {
		return nil, fmt.Errorf("create %s counter: %w", ElementsName, err)
	}
	m.levels, err = meter.Int64Counter(LevelsName,
		metric.WithDescription("nested sequences started by recursive traversals"),
		metric.WithUnit("{sequence}"))
	if err != nil {
		return nil, fmt.Errorf("create %s counter: %w", LevelsName, err)
	}
	m.failures, err = meter.Int64Counter(FailuresName,
		metric.WithDescription("recursive traversals ended by an upstream failure"))
	if err != nil {
		return nil, fmt.Errorf("create %s counter: %w", FailuresName, err)
	}
	m.pending, err = meter.Int64UpDownCounter(PendingName,
		metric.WithDescription("nested sequences queued and not yet exhausted"),
		metric.WithUnit("{sequence}"))
	if err != nil {
		return nil, fmt.Errorf("create %s counter: %w", PendingName, err)
	}
	m.depth, err = meter.Int64Histogram(DepthName,
		metric.WithDescription("expansion depth of yielded elements"))
	if err != nil {
		return nil, fmt.Errorf("create %s histogram: %w", DepthName, err)
	}
	m.attrs = metric.WithAttributes(attrs...)
	return &m, nil
}

// Enqueued records n sequences added to the pending queue.
func (m *TraversalMetrics) Enqueued(ctx context.Context, n int) {
	if m == nil || n == 0 {
		return
	}
	m.pending.Add(ctx, int64(n), m.attrs)
}

// Released records n sequences leaving the pending queue, either exhausted
// or discarded.
func (m *TraversalMetrics) Released(ctx context.Context, n int) {
	if m == nil || n == 0 {
		return
	}
	m.pending.Add(ctx, -int64(n), m.attrs)
}

// LevelOpened records the first pull from a nested sequence.
func (m *TraversalMetrics) LevelOpened(ctx context.Context) {
	if m == nil {
		return
	}
	m.levels.Add(ctx, 1, m.attrs)
}

// Yielded records an element handed to the consumer at the given depth.
func (m *TraversalMetrics) Yielded(ctx context.Context, depth int) {
	if m == nil {
		return
	}
	m.elements.Add(ctx, 1, m.attrs)
	m.depth.Record(ctx, int64(depth), m.attrs)
}

// Failed records a traversal terminated by an upstream failure.
func (m *TraversalMetrics) Failed(ctx context.Context) {
	if m == nil {
		return
	}
	m.failures.Add(ctx, 1, m.attrs)
}

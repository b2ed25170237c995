package raptordb

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordNodeInsert is called after each AddNode.
	RecordNodeInsert(duration time.Duration, err error)

	// RecordEdgeInsert is called after each AddEdge.
	RecordEdgeInsert(duration time.Duration, err error)

	// RecordDelete is called after each node or edge deletion. cascaded is the
	// number of edges removed along with a node.
	RecordDelete(cascaded int, err error)

	// RecordValidationFailure is called whenever submitted fields do not
	// match their property type.
	RecordValidationFailure()

	// RecordCompare is called after each structural equivalence check.
	RecordCompare(duration time.Duration, equal bool)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordNodeInsert(time.Duration, error) {}
func (NoopMetricsCollector) RecordEdgeInsert(time.Duration, error) {}
func (NoopMetricsCollector) RecordDelete(int, error)               {}
func (NoopMetricsCollector) RecordValidationFailure()              {}
func (NoopMetricsCollector) RecordCompare(time.Duration, bool)     {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	NodeInsertCount    atomic.Int64
	NodeInsertErrors   atomic.Int64
	EdgeInsertCount    atomic.Int64
	EdgeInsertErrors   atomic.Int64
	InsertTotalNanos   atomic.Int64
	DeleteCount        atomic.Int64
	DeleteErrors       atomic.Int64
	CascadedEdges      atomic.Int64
	ValidationFailures atomic.Int64
	CompareCount       atomic.Int64
	CompareEqual       atomic.Int64
	CompareTotalNanos  atomic.Int64
}

// RecordNodeInsert implements MetricsCollector.
func (b *BasicMetricsCollector) RecordNodeInsert(duration time.Duration, err error) {
	b.NodeInsertCount.Add(1)
	b.InsertTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.NodeInsertErrors.Add(1)
	}
}

// RecordEdgeInsert implements MetricsCollector.
func (b *BasicMetricsCollector) RecordEdgeInsert(duration time.Duration, err error) {
	b.EdgeInsertCount.Add(1)
	b.InsertTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.EdgeInsertErrors.Add(1)
	}
}

// RecordDelete implements MetricsCollector.
func (b *BasicMetricsCollector) RecordDelete(cascaded int, err error) {
	b.DeleteCount.Add(1)
	if err != nil {
		b.DeleteErrors.Add(1)
		return
	}
	b.CascadedEdges.Add(int64(cascaded))
}

// RecordValidationFailure implements MetricsCollector.
func (b *BasicMetricsCollector) RecordValidationFailure() {
	b.ValidationFailures.Add(1)
}

// RecordCompare implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCompare(duration time.Duration, equal bool) {
	b.CompareCount.Add(1)
	b.CompareTotalNanos.Add(duration.Nanoseconds())
	if equal {
		b.CompareEqual.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		NodeInsertCount:    b.NodeInsertCount.Load(),
		NodeInsertErrors:   b.NodeInsertErrors.Load(),
		EdgeInsertCount:    b.EdgeInsertCount.Load(),
		EdgeInsertErrors:   b.EdgeInsertErrors.Load(),
		InsertAvgNanos:     b.getAvgInsertNanos(),
		DeleteCount:        b.DeleteCount.Load(),
		DeleteErrors:       b.DeleteErrors.Load(),
		CascadedEdges:      b.CascadedEdges.Load(),
		ValidationFailures: b.ValidationFailures.Load(),
		CompareCount:       b.CompareCount.Load(),
		CompareEqual:       b.CompareEqual.Load(),
		CompareAvgNanos:    b.getAvgCompareNanos(),
	}
}

func (b *BasicMetricsCollector) getAvgInsertNanos() int64 {
	count := b.NodeInsertCount.Load() + b.EdgeInsertCount.Load()
	if count == 0 {
		return 0
	}
	return b.InsertTotalNanos.Load() / count
}

func (b *BasicMetricsCollector) getAvgCompareNanos() int64 {
	count := b.CompareCount.Load()
	if count == 0 {
		return 0
	}
	return b.CompareTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	NodeInsertCount    int64
	NodeInsertErrors   int64
	EdgeInsertCount    int64
	EdgeInsertErrors   int64
	InsertAvgNanos     int64
	DeleteCount        int64
	DeleteErrors       int64
	CascadedEdges      int64
	ValidationFailures int64
	CompareCount       int64
	CompareEqual       int64
	CompareAvgNanos    int64
}

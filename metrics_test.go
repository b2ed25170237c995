package raptordb

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBasicMetricsCollector(t *testing.T) {
	m := &BasicMetricsCollector{}

	m.RecordNodeInsert(10*time.Nanosecond, nil)
	m.RecordNodeInsert(20*time.Nanosecond, errors.New("boom"))
	m.RecordEdgeInsert(30*time.Nanosecond, nil)
	m.RecordDelete(3, nil)
	m.RecordDelete(5, errors.New("boom"))
	m.RecordValidationFailure()
	m.RecordCompare(40*time.Nanosecond, true)
	m.RecordCompare(60*time.Nanosecond, false)

	stats := m.GetStats()
	assert.Equal(t, int64(2), stats.NodeInsertCount)
	assert.Equal(t, int64(1), stats.NodeInsertErrors)
	assert.Equal(t, int64(1), stats.EdgeInsertCount)
	assert.Equal(t, int64(20), stats.InsertAvgNanos)
	assert.Equal(t, int64(2), stats.DeleteCount)
	assert.Equal(t, int64(1), stats.DeleteErrors)
	assert.Equal(t, int64(3), stats.CascadedEdges)
	assert.Equal(t, int64(1), stats.ValidationFailures)
	assert.Equal(t, int64(2), stats.CompareCount)
	assert.Equal(t, int64(1), stats.CompareEqual)
	assert.Equal(t, int64(50), stats.CompareAvgNanos)
}

func TestBasicMetricsCollectorEmpty(t *testing.T) {
	stats := (&BasicMetricsCollector{}).GetStats()
	assert.Zero(t, stats.InsertAvgNanos)
	assert.Zero(t, stats.CompareAvgNanos)
}

func TestNoopMetricsCollector(t *testing.T) {
	var m MetricsCollector = NoopMetricsCollector{}
	m.RecordNodeInsert(time.Second, nil)
	m.RecordCompare(time.Second, true)
}

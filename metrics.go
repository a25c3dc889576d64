package recstore

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems; the
// metric/prometheus package provides a Prometheus implementation.
type MetricsCollector interface {
	// RecordInsert is called after each single-record insert.
	// inserted is false when the key already existed; err is nil unless the
	// record was rejected.
	RecordInsert(duration time.Duration, inserted bool, err error)

	// RecordBatchInsert is called after each batch insert.
	// count is the number of records attempted, inserted the number stored;
	// err is nil unless the batch was rejected or canceled.
	RecordBatchInsert(count, inserted int, duration time.Duration, err error)

	// RecordQuery is called after each query.
	// column is a schema column name, or UnknownColumnLabel when the query
	// named a column the schema does not declare. results is the number of
	// records returned, err is nil if successful.
	RecordQuery(column string, results int, duration time.Duration, err error)
}

// UnknownColumnLabel stands in for the column name of queries against a
// column the schema does not declare, keeping the set of reported column
// names bounded by the schema.
const UnknownColumnLabel = "unknown"

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordInsert(time.Duration, bool, error)          {}
func (NoopMetricsCollector) RecordBatchInsert(int, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordQuery(string, int, time.Duration, error)    {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	InsertCount           atomic.Int64
	InsertDuplicates      atomic.Int64
	InsertErrors          atomic.Int64
	InsertTotalNanos      atomic.Int64
	BatchInsertCount      atomic.Int64
	BatchInsertErrors     atomic.Int64
	BatchInsertItems      atomic.Int64
	BatchInsertStored     atomic.Int64
	BatchInsertTotalNanos atomic.Int64
	QueryCount            atomic.Int64
	QueryErrors           atomic.Int64
	QueryResults          atomic.Int64
	QueryTotalNanos       atomic.Int64
}

// RecordInsert implements MetricsCollector.
func (b *BasicMetricsCollector) RecordInsert(duration time.Duration, inserted bool, err error) {
	b.InsertCount.Add(1)
	b.InsertTotalNanos.Add(duration.Nanoseconds())
	switch {
	case err != nil:
		b.InsertErrors.Add(1)
	case !inserted:
		b.InsertDuplicates.Add(1)
	}
}

// RecordBatchInsert implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBatchInsert(count, inserted int, duration time.Duration, err error) {
	b.BatchInsertCount.Add(1)
	b.BatchInsertTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.BatchInsertErrors.Add(1)
	}
	b.BatchInsertItems.Add(int64(count))
	b.BatchInsertStored.Add(int64(inserted))
}

// RecordQuery implements MetricsCollector.
func (b *BasicMetricsCollector) RecordQuery(column string, results int, duration time.Duration, err error) {
	b.QueryCount.Add(1)
	b.QueryTotalNanos.Add(duration.Nanoseconds())
	b.QueryResults.Add(int64(results))
	if err != nil {
		b.QueryErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		InsertCount:         b.InsertCount.Load(),
		InsertDuplicates:    b.InsertDuplicates.Load(),
		InsertErrors:        b.InsertErrors.Load(),
		InsertAvgNanos:      avg(b.InsertTotalNanos.Load(), b.InsertCount.Load()),
		BatchInsertCount:    b.BatchInsertCount.Load(),
		BatchInsertErrors:   b.BatchInsertErrors.Load(),
		BatchInsertItems:    b.BatchInsertItems.Load(),
		BatchInsertStored:   b.BatchInsertStored.Load(),
		BatchInsertAvgNanos: avg(b.BatchInsertTotalNanos.Load(), b.BatchInsertCount.Load()),
		QueryCount:          b.QueryCount.Load(),
		QueryErrors:         b.QueryErrors.Load(),
		QueryResults:        b.QueryResults.Load(),
		QueryAvgNanos:       avg(b.QueryTotalNanos.Load(), b.QueryCount.Load()),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	InsertCount         int64
	InsertDuplicates    int64
	InsertErrors        int64
	InsertAvgNanos      int64
	BatchInsertCount    int64
	BatchInsertErrors   int64
	BatchInsertItems    int64
	BatchInsertStored   int64
	BatchInsertAvgNanos int64
	QueryCount          int64
	QueryErrors         int64
	QueryResults        int64
	QueryAvgNanos       int64
}

// Package prometheus exports collection metrics to Prometheus.
//
//	reg := prom.NewRegistry()
//	mc, _ := prometheus.New(prometheus.WithRegisterer(reg))
//	c, _ := recstore.New(schema.Default(), recstore.WithMetricsCollector(mc))
package prometheus

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// Collector implements recstore.MetricsCollector with Prometheus metrics.
type Collector struct {
	opLatency    *prom.HistogramVec
	inserts      *prom.CounterVec
	batchRecords *prom.CounterVec
	queryResults *prom.HistogramVec
}

type options struct {
	namespace  string
	registerer prom.Registerer
	buckets    []float64
}

// Option configures a Collector.
type Option func(*options)

// WithNamespace sets the metric namespace. Defaults to "recstore".
func WithNamespace(ns string) Option {
	return func(o *options) { o.namespace = ns }
}

// WithRegisterer registers the metrics with r instead of
// prometheus.DefaultRegisterer.
func WithRegisterer(r prom.Registerer) Option {
	return func(o *options) {
		if r != nil {
			o.registerer = r
		}
	}
}

// WithBuckets sets the latency histogram buckets, in seconds.
func WithBuckets(b []float64) Option {
	return func(o *options) {
		if len(b) > 0 {
			o.buckets = b
		}
	}
}

// New creates a Collector and registers its metrics.
func New(optFns ...Option) (*Collector, error) {
	o := options{
		namespace:  "recstore",
		registerer: prom.DefaultRegisterer,
		buckets:    prom.ExponentialBuckets(1e-6, 4, 10),
	}
	for _, fn := range optFns {
		fn(&o)
	}

	c := &Collector{
		opLatency: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: o.namespace,
			Name:      "operation_latency_seconds",
			Help:      "Latency of collection operations",
			Buckets:   o.buckets,
		}, []string{"op", "status"}),
		inserts: prom.NewCounterVec(prom.CounterOpts{
			Namespace: o.namespace,
			Name:      "inserts_total",
			Help:      "Single-record inserts by outcome",
		}, []string{"outcome"}),
		batchRecords: prom.NewCounterVec(prom.CounterOpts{
			Namespace: o.namespace,
			Name:      "batch_records_total",
			Help:      "Records submitted to and stored by batch inserts",
		}, []string{"outcome"}),
		queryResults: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: o.namespace,
			Name:      "query_results",
			Help:      "Number of records returned per query",
			Buckets:   prom.ExponentialBuckets(1, 4, 8),
		}, []string{"column"}),
	}

	for _, m := range []prom.Collector{c.opLatency, c.inserts, c.batchRecords, c.queryResults} {
		if err := o.registerer.Register(m); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// MustNew is like New but panics if registration fails.
func MustNew(optFns ...Option) *Collector {
	c, err := New(optFns...)
	if err != nil {
		panic(err)
	}
	return c
}

// RecordInsert implements recstore.MetricsCollector.
func (c *Collector) RecordInsert(d time.Duration, inserted bool, err error) {
	outcome := "inserted"
	switch {
	case err != nil:
		outcome = "error"
	case !inserted:
		outcome = "duplicate"
	}
	c.opLatency.WithLabelValues("insert", status(err)).Observe(d.Seconds())
	c.inserts.WithLabelValues(outcome).Inc()
}

// RecordBatchInsert implements recstore.MetricsCollector.
func (c *Collector) RecordBatchInsert(count, inserted int, d time.Duration, err error) {
	c.opLatency.WithLabelValues("batch_insert", status(err)).Observe(d.Seconds())
	c.batchRecords.WithLabelValues("submitted").Add(float64(count))
	c.batchRecords.WithLabelValues("stored").Add(float64(inserted))
}

// RecordQuery implements recstore.MetricsCollector. The collection reports
// unknown columns under a single label, so the column label is bounded by
// the schema.
func (c *Collector) RecordQuery(column string, results int, d time.Duration, err error) {
	c.opLatency.WithLabelValues("query", status(err)).Observe(d.Seconds())
	if err == nil {
		c.queryResults.WithLabelValues(column).Observe(float64(results))
	}
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

package recstore

import (
	"fmt"
	"log/slog"

	"github.com/hupe1980/recstore/codec"
)

type options struct {
	codec            codec.Codec
	codecName        string
	metricsCollector MetricsCollector
	logger           *Logger
	strictColumns    bool
}

// Option configures Collection constructor behavior.
type Option func(*options)

// WithCodec configures the codec used by Import to decode lines.
//
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithCodecName selects a built-in codec by name ("json" or "go-json"),
// for example from a configuration file. New fails with an error wrapping
// codec.ErrUnknown for any other name.
func WithCodecName(name string) Option {
	return func(o *options) {
		o.codecName = name
	}
}

// WithStrictColumns makes queries against unknown column names fail with
// ErrUnknownColumn instead of returning an empty result.
func WithStrictColumns() Option {
	return func(o *options) {
		o.strictColumns = true
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &recstore.BasicMetricsCollector{}
//	c, _ := recstore.New(schema.Default(), recstore.WithMetricsCollector(metrics))
//	// ... use c ...
//	stats := metrics.GetStats()
//	fmt.Printf("Inserts: %d, Avg query latency: %dns\n", stats.InsertCount, stats.QueryAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := recstore.NewJSONLogger(slog.LevelInfo)
//	c, _ := recstore.New(schema.Default(), recstore.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		codec:            codec.Default,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}

// resolveCodec applies WithCodecName on top of WithCodec.
func (o *options) resolveCodec() error {
	if o.codecName == "" {
		return nil
	}
	c, ok := codec.ByName(o.codecName)
	if !ok {
		return fmt.Errorf("recstore: %w: %q", codec.ErrUnknown, o.codecName)
	}
	o.codec = c
	return nil
}

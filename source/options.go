package source

import (
	"go.uber.org/zap"

	"github.com/jaeyoung0509/orderedbatch"
)

// DefaultConcurrency is the number of ordering groups processed at once when
// WithConcurrency is not given.
const DefaultConcurrency = 10

// Option configures an adapter.
type Option func(*options)

type options struct {
	concurrency int
	mode        orderedbatch.Mode
	logger      *zap.Logger
	metrics     *orderedbatch.Metrics
	bodyKeyPath string
	engineOpts  []orderedbatch.Option
}

func defaultOptions() options {
	return options{
		concurrency: DefaultConcurrency,
		mode:        orderedbatch.ModePartial,
		logger:      zap.NewNop(),
	}
}

func buildOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// WithConcurrency limits how many ordering groups run at the same time.
func WithConcurrency(n int) Option {
	if n < 1 {
		panic("source: concurrency must be at least 1")
	}

	return func(o *options) {
		o.concurrency = n
	}
}

// WithMode selects fail-fast or partial batch responses. Default is partial.
func WithMode(mode orderedbatch.Mode) Option {
	return func(o *options) {
		o.mode = mode
	}
}

// WithLogger sets the adapter logger. Each batch logs with a batch_id field.
func WithLogger(logger *zap.Logger) Option {
	if logger == nil {
		panic("source: logger cannot be nil")
	}

	return func(o *options) {
		o.logger = logger
	}
}

// WithMetrics records every batch into m.
func WithMetrics(m *orderedbatch.Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithBodyKeyPath sets a gjson path used as ordering key for SQS messages that
// have no MessageGroupId, for example "order.id".
func WithBodyKeyPath(path string) Option {
	return func(o *options) {
		o.bodyKeyPath = path
	}
}

// WithEngineOptions passes extra options to orderedbatch.ProcessOrdered.
func WithEngineOptions(opts ...orderedbatch.Option) Option {
	return func(o *options) {
		o.engineOpts = append(o.engineOpts, opts...)
	}
}

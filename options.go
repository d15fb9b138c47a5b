package orderedbatch

import (
	"time"

	"go.uber.org/zap"
)

// Option configures a ProcessOrdered invocation.
type Option func(*config)

type config struct {
	panicToError bool
	logger       *zap.Logger
	metrics      *Metrics
	now          func() time.Time
}

func defaultConfig() config {
	return config{
		panicToError: true,
		logger:       zap.NewNop(),
		now:          time.Now,
	}
}

// WithPanicToError converts panics raised by the process function into item errors.
func WithPanicToError(enabled bool) Option {
	return func(c *config) {
		c.panicToError = enabled
	}
}

// WithLogger sets the logger used for batch and group events.
func WithLogger(logger *zap.Logger) Option {
	if logger == nil {
		panic("orderedbatch: logger cannot be nil")
	}

	return func(c *config) {
		c.logger = logger
	}
}

// WithMetrics records batch outcomes into m.
// A nil m disables metrics.
func WithMetrics(m *Metrics) Option {
	return func(c *config) {
		c.metrics = m
	}
}

// withClock overrides the time source used for Stats.Duration.
func withClock(now func() time.Time) Option {
	return func(c *config) {
		c.now = now
	}
}

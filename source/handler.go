package source

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jaeyoung0509/orderedbatch"
)

// Callback handles one parsed entity.
type Callback[T any] func(ctx context.Context, entity T) error

// handler holds what the adapters share: R is the raw upstream record and T
// the entity produced by parse.
type handler[R, T any] struct {
	name     string
	opts     options
	parse    func(R) (T, error)
	keyOf    orderedbatch.KeyFunc[R]
	identify orderedbatch.IdentifyFunc[R]

	mu        sync.RWMutex
	callbacks []Callback[T]
}

func newHandler[R, T any](
	name string,
	opts options,
	parse func(R) (T, error),
	keyOf orderedbatch.KeyFunc[R],
	identify orderedbatch.IdentifyFunc[R],
) *handler[R, T] {
	if parse == nil {
		panic(fmt.Sprintf("source: %s: nil parse func", name))
	}

	return &handler[R, T]{
		name:     name,
		opts:     opts,
		parse:    parse,
		keyOf:    keyOf,
		identify: identify,
	}
}

// Register adds cb after the callbacks registered so far. Callbacks run in
// registration order for every record.
func (h *handler[R, T]) Register(cb Callback[T]) {
	if cb == nil {
		panic(fmt.Sprintf("source: %s: nil callback", h.name))
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.callbacks = append(h.callbacks, cb)
}

func (h *handler[R, T]) snapshot() []Callback[T] {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return append([]Callback[T](nil), h.callbacks...)
}

func (h *handler[R, T]) process(ctx context.Context, rec R, callbacks []Callback[T]) error {
	entity, err := h.parse(rec)
	if err != nil {
		return fmt.Errorf("parse record %s: %w", h.identify(rec), err)
	}

	for _, cb := range callbacks {
		if err := cb(ctx, entity); err != nil {
			return err
		}
	}
	return nil
}

// handle runs one batch and returns the identifiers the upstream should
// redeliver. In fail-fast mode a failed batch is returned as an error instead.
func (h *handler[R, T]) handle(ctx context.Context, records []R) ([]string, error) {
	logger := h.opts.logger.With(
		zap.String("source", h.name),
		zap.String("batch_id", uuid.NewString()),
	)
	callbacks := h.snapshot()

	engineOpts := append([]orderedbatch.Option{
		orderedbatch.WithLogger(logger),
		orderedbatch.WithMetrics(h.opts.metrics),
	}, h.opts.engineOpts...)

	res, err := orderedbatch.ProcessOrdered(ctx, records, h.keyOf, h.opts.concurrency,
		func(ctx context.Context, rec R) error {
			return h.process(ctx, rec, callbacks)
		},
		engineOpts...,
	)
	if err != nil {
		return nil, fmt.Errorf("source: %s: %w", h.name, err)
	}

	resp, err := orderedbatch.Finalize(res, h.identify, h.opts.mode)
	if err != nil {
		logger.Error("batch failed", zap.Int("records", len(records)), zap.Error(err))
		return nil, err
	}

	if len(resp.FailedIdentifiers) > 0 {
		logger.Info("batch partially failed",
			zap.Int("records", len(records)),
			zap.Strings("failed", resp.FailedIdentifiers),
		)
	}
	return resp.FailedIdentifiers, nil
}

package orderedbatch

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// ProcessOrdered processes items with process, running items that share a key
// sequentially and different keys concurrently, at most concurrency groups at
// a time.
//
// Item failures are never returned as an error. A failure stops the rest of
// its group and is recorded in the result together with the items it blocked.
// The returned error is non-nil only for invalid arguments.
//
// ctx is passed to every process call as is. ProcessOrdered does not cancel
// or time out running groups.
func ProcessOrdered[T any](
	ctx context.Context,
	items []T,
	keyOf KeyFunc[T],
	concurrency int,
	process ProcessFunc[T],
	opts ...Option,
) (BatchResult[T], error) {
	if keyOf == nil {
		return BatchResult[T]{}, ErrNilKeyFunc
	}
	if process == nil {
		return BatchResult[T]{}, ErrNilProcessFunc
	}
	if concurrency < 1 {
		return BatchResult[T]{}, fmt.Errorf("%w: got %d", ErrInvalidConcurrency, concurrency)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	start := cfg.now()
	groups := GroupBy(items, keyOf)
	cfg.logger.Debug("batch grouped",
		zap.Int("items", len(items)),
		zap.Int("groups", len(groups)),
		zap.Int("concurrency", concurrency),
	)

	state := newScheduler(concurrency, process, cfg).run(ctx, groups)

	result := BatchResult[T]{Unprocessed: aggregate(state.outcomes)}
	result.Stats = Stats{
		Items:        len(items),
		Groups:       len(groups),
		PeakInFlight: state.peakInflight,
		Duration:     cfg.now().Sub(start),
	}
	for _, out := range state.outcomes {
		result.Stats.Processed += out.processed
		if out.err != nil {
			result.Stats.FailedGroups++
		}
	}
	result.Stats.Skipped = len(result.Unprocessed) - result.Stats.FailedGroups

	cfg.metrics.observeBatch(result.Stats.Duration)
	cfg.logger.Debug("batch processed",
		zap.Int("processed", result.Stats.Processed),
		zap.Int("unprocessed", len(result.Unprocessed)),
		zap.Int("failed_groups", result.Stats.FailedGroups),
		zap.Int("peak_in_flight", result.Stats.PeakInFlight),
		zap.Duration("duration", result.Stats.Duration),
	)

	return result, nil
}

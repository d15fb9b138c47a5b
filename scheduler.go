package orderedbatch

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ProcessFunc processes one value. A non-nil error stops the value's group:
// later values with the same key are not attempted.
type ProcessFunc[T any] func(context.Context, T) error

// groupOutcome is what one group reports back to the manager loop.
// processed counts the leading items that succeeded; when err is non-nil the
// item at Items[processed] is the one that failed.
type groupOutcome[T any] struct {
	group     Group[T]
	processed int
	err       error
}

type groupStartedEvent struct{}

type groupFinishedEvent[T any] struct {
	outcome groupOutcome[T]
}

type managerState[T any] struct {
	inflight     int
	peakInflight int
	outcomes     []groupOutcome[T]
}

// scheduler runs the groups of one batch. It is created per invocation and
// all of its progress state is owned by the manager goroutine.
type scheduler[T any] struct {
	eg      *errgroup.Group
	cfg     config
	process ProcessFunc[T]

	evtCh  chan any
	doneCh chan managerState[T]
}

func newScheduler[T any](concurrency int, process ProcessFunc[T], cfg config) *scheduler[T] {
	eg := new(errgroup.Group)
	eg.SetLimit(concurrency)

	return &scheduler[T]{
		eg:      eg,
		cfg:     cfg,
		process: process,
		evtCh:   make(chan any),
		doneCh:  make(chan managerState[T], 1),
	}
}

// run blocks until every group has either finished or stopped on its first
// failure. Groups are started in slice order as slots become free.
func (s *scheduler[T]) run(ctx context.Context, groups []Group[T]) managerState[T] {
	go s.runManager(len(groups))

	for _, g := range groups {
		s.eg.Go(func() error {
			s.evtCh <- groupStartedEvent{}
			s.evtCh <- groupFinishedEvent[T]{outcome: s.runGroup(ctx, g)}
			return nil
		})
	}

	// Group goroutines never return errors; failures travel as outcomes.
	_ = s.eg.Wait()
	close(s.evtCh)

	return <-s.doneCh
}

func (s *scheduler[T]) runGroup(ctx context.Context, g Group[T]) groupOutcome[T] {
	out := groupOutcome[T]{group: g}
	for _, item := range g.Items {
		if err := s.invoke(ctx, item.Value); err != nil {
			out.err = err
			return out
		}
		out.processed++
	}
	return out
}

func (s *scheduler[T]) invoke(ctx context.Context, v T) (err error) {
	if s.cfg.panicToError {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("orderedbatch: panic recovered: %v", r)
			}
		}()
	}

	return s.process(ctx, v)
}

func (s *scheduler[T]) runManager(groups int) {
	state := managerState[T]{
		outcomes: make([]groupOutcome[T], 0, groups),
	}

	for raw := range s.evtCh {
		switch evt := raw.(type) {
		case groupStartedEvent:
			state.inflight++
			if state.inflight > state.peakInflight {
				state.peakInflight = state.inflight
			}
			s.cfg.metrics.groupStarted()

		case groupFinishedEvent[T]:
			if state.inflight > 0 {
				state.inflight--
			}
			state.outcomes = append(state.outcomes, evt.outcome)
			s.cfg.metrics.groupFinished(evt.outcome.processed, len(evt.outcome.group.Items), evt.outcome.err != nil)

			if evt.outcome.err != nil {
				failed := evt.outcome.group.Items[evt.outcome.processed]
				s.cfg.logger.Warn("group stopped on failure",
					zap.String("key", evt.outcome.group.Key),
					zap.Int("index", failed.Index),
					zap.Int("skipped", len(evt.outcome.group.Items)-evt.outcome.processed-1),
					zap.Error(evt.outcome.err),
				)
			}
		}
	}

	s.doneCh <- state
}

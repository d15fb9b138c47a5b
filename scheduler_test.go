package orderedbatch

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSchedulerRunsGroupItemsSequentially(t *testing.T) {
	t.Parallel()

	groups := GroupBy([]int{1, 2, 3, 4, 5}, func(int) string { return "same" })

	var (
		running    int32
		maxRunning int32
		mu         sync.Mutex
		seen       []int
	)
	process := func(_ context.Context, v int) error {
		curr := atomic.AddInt32(&running, 1)
		for {
			prev := atomic.LoadInt32(&maxRunning)
			if curr <= prev || atomic.CompareAndSwapInt32(&maxRunning, prev, curr) {
				break
			}
		}

		time.Sleep(5 * time.Millisecond)
		mu.Lock()
		seen = append(seen, v)
		mu.Unlock()

		atomic.AddInt32(&running, -1)
		return nil
	}

	state := newScheduler(4, process, defaultConfig()).run(context.Background(), groups)

	require.Len(t, state.outcomes, 1)
	require.NoError(t, state.outcomes[0].err)
	require.Equal(t, 5, state.outcomes[0].processed)
	require.Equal(t, []int{1, 2, 3, 4, 5}, seen)
	require.EqualValues(t, 1, atomic.LoadInt32(&maxRunning))
}

func TestSchedulerStopsGroupOnFirstFailure(t *testing.T) {
	t.Parallel()

	errBoom := errors.New("boom")
	groups := GroupBy([]int{1, 2, 3, 4}, func(int) string { return "g" })

	var calls []int
	process := func(_ context.Context, v int) error {
		calls = append(calls, v)
		if v == 2 {
			return errBoom
		}
		return nil
	}

	state := newScheduler(1, process, defaultConfig()).run(context.Background(), groups)

	require.Equal(t, []int{1, 2}, calls)
	require.Len(t, state.outcomes, 1)
	require.Equal(t, 1, state.outcomes[0].processed)
	require.ErrorIs(t, state.outcomes[0].err, errBoom)
}

func TestSchedulerPanicToError(t *testing.T) {
	t.Parallel()

	groups := GroupBy([]string{"a", "b"}, func(s string) string { return s })
	process := func(_ context.Context, v string) error {
		if v == "a" {
			panic("kaboom")
		}
		return nil
	}

	state := newScheduler(2, process, defaultConfig()).run(context.Background(), groups)
	require.Len(t, state.outcomes, 2)

	var failed int
	for _, out := range state.outcomes {
		if out.err == nil {
			continue
		}
		failed++
		require.Equal(t, "a", out.group.Key)
		if !strings.Contains(out.err.Error(), "panic recovered: kaboom") {
			t.Fatalf("unexpected panic error: %v", out.err)
		}
	}
	require.Equal(t, 1, failed)
}

func TestSchedulerMaxConcurrency(t *testing.T) {
	t.Parallel()

	const limit = int32(2)
	const total = 10

	items := make([]int, total)
	for i := range items {
		items[i] = i
	}
	groups := GroupBy(items, func(v int) string { return string(rune('a' + v)) })

	var running int32
	var maxRunning int32
	process := func(context.Context, int) error {
		curr := atomic.AddInt32(&running, 1)
		for {
			prev := atomic.LoadInt32(&maxRunning)
			if curr <= prev || atomic.CompareAndSwapInt32(&maxRunning, prev, curr) {
				break
			}
		}

		time.Sleep(20 * time.Millisecond)
		atomic.AddInt32(&running, -1)
		return nil
	}

	state := newScheduler(int(limit), process, defaultConfig()).run(context.Background(), groups)

	if len(state.outcomes) != total {
		t.Fatalf("expected %d outcomes, got %d", total, len(state.outcomes))
	}
	if got := atomic.LoadInt32(&maxRunning); got > limit {
		t.Fatalf("max concurrency exceeded: got %d, limit %d", got, limit)
	}
	if state.peakInflight > int(limit) || state.peakInflight < 1 {
		t.Fatalf("peak in flight out of range: got %d, limit %d", state.peakInflight, limit)
	}
	require.Zero(t, state.inflight)
}

func TestSchedulerNoGroups(t *testing.T) {
	t.Parallel()

	process := func(context.Context, int) error {
		t.Fatal("process must not be called")
		return nil
	}

	state := newScheduler(3, process, defaultConfig()).run(context.Background(), nil)
	require.Empty(t, state.outcomes)
	require.Zero(t, state.peakInflight)
}

func TestWithLoggerPanicsForNilInput(t *testing.T) {
	t.Parallel()

	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic for nil logger")
		}
	}()

	_ = WithLogger(nil)
}

package orderedbatch

import (
	"cmp"
	"slices"
	"time"

	"go.uber.org/multierr"
)

// IdentifyFunc returns the delivery identifier of a value, as understood by the
// upstream redelivery mechanism.
type IdentifyFunc[T any] func(T) string

// UnprocessedRecord is an item that was not processed successfully.
//
// Err is set on the item whose processing failed. Items queued behind it in
// the same group were never attempted and have a nil Err.
type UnprocessedRecord[T any] struct {
	Item Item[T]
	Key  string
	Err  error
}

// Stats summarizes one invocation.
type Stats struct {
	Items        int
	Groups       int
	Processed    int
	FailedGroups int
	// Skipped counts items never attempted because an earlier item of their
	// group failed.
	Skipped      int
	PeakInFlight int
	Duration     time.Duration
}

// BatchResult is the outcome of ProcessOrdered.
// Unprocessed is ordered by Item.Index.
type BatchResult[T any] struct {
	Unprocessed []UnprocessedRecord[T]
	Stats       Stats
}

func aggregate[T any](outcomes []groupOutcome[T]) []UnprocessedRecord[T] {
	records := make([]UnprocessedRecord[T], 0)
	for _, out := range outcomes {
		records = append(records, track(out)...)
	}

	slices.SortFunc(records, func(a, b UnprocessedRecord[T]) int {
		return cmp.Compare(a.Item.Index, b.Item.Index)
	})
	return records
}

// OK reports whether every item was processed.
func (r BatchResult[T]) OK() bool {
	return len(r.Unprocessed) == 0
}

// Err returns nil when every item was processed. Otherwise it returns a
// *BatchError wrapping one *ItemError per failed group, in batch order.
func (r BatchResult[T]) Err() error {
	if r.OK() {
		return nil
	}

	var err error
	for _, rec := range r.Unprocessed {
		if rec.Err == nil {
			continue
		}
		err = multierr.Append(err, &ItemError{Index: rec.Item.Index, Key: rec.Key, Err: rec.Err})
	}

	return &BatchError{
		Unprocessed: len(r.Unprocessed),
		Items:       r.Stats.Items,
		err:         err,
	}
}

// FailedIdentifiers returns the identifier of every unprocessed item in batch
// order, including items that were skipped behind a failure.
func (r BatchResult[T]) FailedIdentifiers(identify IdentifyFunc[T]) []string {
	ids := make([]string, 0, len(r.Unprocessed))
	for _, rec := range r.Unprocessed {
		ids = append(ids, identify(rec.Item.Value))
	}
	return ids
}

package orderedbatch

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
)

var (
	// ErrNilKeyFunc is returned by ProcessOrdered when keyOf is nil.
	ErrNilKeyFunc = errors.New("orderedbatch: nil key func")

	// ErrNilProcessFunc is returned by ProcessOrdered when process is nil.
	ErrNilProcessFunc = errors.New("orderedbatch: nil process func")

	// ErrInvalidConcurrency is returned by ProcessOrdered when concurrency is below 1.
	ErrInvalidConcurrency = errors.New("orderedbatch: concurrency must be at least 1")

	// ErrNilIdentifyFunc is returned by Finalize in partial mode when identify is nil.
	ErrNilIdentifyFunc = errors.New("orderedbatch: nil identify func")

	// ErrUnknownMode is returned for a Mode that is neither ModeFailFast nor ModePartial.
	ErrUnknownMode = errors.New("orderedbatch: unknown mode")
)

// ItemError is the error that stopped one group.
type ItemError struct {
	// Index is the position of the failing item in the input batch.
	Index int
	Key   string
	Err   error
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("item %d (key %q): %v", e.Index, e.Key, e.Err)
}

func (e *ItemError) Unwrap() error {
	return e.Err
}

// BatchError reports a batch with unprocessed items. It unwraps to one
// *ItemError per failed group, so errors.Is and errors.As reach the causes.
type BatchError struct {
	// Unprocessed counts failed and skipped items.
	Unprocessed int
	Items       int

	err error
}

func (e *BatchError) Error() string {
	msg := fmt.Sprintf("orderedbatch: %d of %d items unprocessed", e.Unprocessed, e.Items)
	if e.err == nil {
		return msg
	}
	return msg + ": " + e.err.Error()
}

// Errors returns the wrapped item errors in batch order.
func (e *BatchError) Errors() []error {
	return multierr.Errors(e.err)
}

func (e *BatchError) Unwrap() []error {
	return e.Errors()
}

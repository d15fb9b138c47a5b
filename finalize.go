package orderedbatch

import (
	"fmt"
)

// Mode selects how Finalize reports unprocessed items.
type Mode int

const (
	// ModeFailFast fails the whole batch with a *BatchError.
	ModeFailFast Mode = iota
	// ModePartial reports the identifiers of unprocessed items and succeeds.
	ModePartial
)

func (m Mode) String() string {
	switch m {
	case ModeFailFast:
		return "fail-fast"
	case ModePartial:
		return "partial"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses "fail-fast" or "partial".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "fail-fast":
		return ModeFailFast, nil
	case "partial":
		return ModePartial, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

func (m Mode) MarshalText() ([]byte, error) {
	if m != ModeFailFast && m != ModePartial {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, int(m))
	}
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// PartialResponse lists the items the upstream should redeliver.
type PartialResponse struct {
	FailedIdentifiers []string
}

// Finalize turns a BatchResult into the caller-visible outcome.
//
// In ModeFailFast it returns result.Err(). In ModePartial it never returns an
// item error; the unprocessed items, failed and skipped alike, are listed in
// the response instead. Side effects of processed items are kept either way.
func Finalize[T any](result BatchResult[T], identify IdentifyFunc[T], mode Mode) (PartialResponse, error) {
	switch mode {
	case ModeFailFast:
		return PartialResponse{}, result.Err()

	case ModePartial:
		if identify == nil {
			return PartialResponse{}, ErrNilIdentifyFunc
		}
		return PartialResponse{FailedIdentifiers: result.FailedIdentifiers(identify)}, nil

	default:
		return PartialResponse{}, fmt.Errorf("%w: %d", ErrUnknownMode, int(mode))
	}
}

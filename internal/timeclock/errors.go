package timeclock

import (
	"errors"
	"fmt"

	"github.com/shiftclock/shiftclock/internal/store"
)

// Error kinds. Every error returned by this package wraps exactly one kind,
// so callers branch with errors.Is and the transport layer maps kinds to
// status codes without inspecting messages.
var (
	// ErrValidation is malformed or out-of-range input. Never retried.
	ErrValidation = errors.New("validation error")

	// ErrConflict means a state invariant would be violated (double start,
	// self-demotion). The caller must change the request.
	ErrConflict = errors.New("conflict")

	// ErrNotFound covers both truly absent records and records outside the
	// caller's organization; the two are deliberately indistinguishable so
	// cross-organization existence doesn't leak.
	ErrNotFound = errors.New("not found")

	// ErrDenied is an authorization failure, reported as a generic denial.
	ErrDenied = errors.New("access denied")

	// ErrClockSkew means a stop produced an end instant before the session's
	// start. The stop is rejected; durations are never clamped.
	ErrClockSkew = errors.New("clock skew detected")

	// ErrStorage wraps persistence failures. Opaque to business logic.
	ErrStorage = errors.New("storage error")
)

// Specific errors, each wrapping its kind.
var (
	ErrSessionActive    = fmt.Errorf("%w: session already active", ErrConflict)
	ErrNoActiveSession  = fmt.Errorf("%w: no active session found", ErrNotFound)
	ErrCannotDemoteSelf = fmt.Errorf("%w: cannot demote self", ErrConflict)
	ErrWorkerNotFound   = fmt.Errorf("%w: worker not found", ErrNotFound)
	ErrInvalidPeriod    = fmt.Errorf("%w: period start is after period end", ErrValidation)
)

// mapStoreError translates store sentinels into this package's taxonomy.
// Anything unrecognized is a storage failure, never a business outcome.
func mapStoreError(err error) error {
	switch {
	case errors.Is(err, store.ErrWorkerNotFound):
		return ErrWorkerNotFound
	case errors.Is(err, store.ErrSessionActive):
		return ErrSessionActive
	case errors.Is(err, store.ErrNoOpenSession):
		return ErrNoActiveSession
	case errors.Is(err, store.ErrClockSkew):
		return fmt.Errorf("%w: session end before start", ErrClockSkew)
	default:
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// WorkSession represents a single stretch of tracked work for one worker.
//
// A session is open while EndedAt is nil. At most one open session may exist
// per worker at any time; the store enforces this with a uniqueness constraint
// rather than a read-then-write check. Once closed a session is append-only
// history and is never mutated again.
type WorkSession struct {
	SessionID uuid.UUID // UUIDv7
	WorkerID  uuid.UUID // UUIDv7, FK to workers
	StartedAt time.Time
	EndedAt   *time.Time // nil means the session is still open

	// DurationMillis is derived, never authoritative: for a closed session it
	// is exactly EndedAt - StartedAt in milliseconds, and 0 while open.
	DurationMillis int64
}

// Open reports whether the session is still running.
func (s *WorkSession) Open() bool {
	return s.EndedAt == nil
}

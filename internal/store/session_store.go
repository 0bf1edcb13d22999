package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shiftclock/shiftclock/internal/models"
)

// Sentinel errors for session store operations
var (
	ErrSessionActive = errors.New("session already active")
	ErrNoOpenSession = errors.New("no active session")
	ErrClockSkew     = errors.New("session end before start")
)

// SessionWithWorker pairs a session with display fields of its owner, for
// organization-wide listings.
type SessionWithWorker struct {
	Session  *models.WorkSession
	Username string
	Role     models.Role
}

// SessionStore defines the interface for work session storage operations.
//
// The start and stop transitions must be atomic with respect to concurrent
// calls for the same worker: implementations enforce at-most-one-open-session
// with a uniqueness constraint on (worker_id, open), not a read-then-write.
type SessionStore interface {
	// StartSession persists a new open session.
	// Returns ErrSessionActive if the worker already has an open session.
	StartSession(ctx context.Context, session *models.WorkSession) error

	// CloseOpenSession atomically closes the worker's open session, setting
	// EndedAt and the derived duration, and returns the closed session.
	// Returns ErrNoOpenSession if the worker has no open session, and
	// ErrClockSkew if endedAt is before the session's start; in both cases
	// nothing is mutated.
	CloseOpenSession(ctx context.Context, workerID uuid.UUID, endedAt time.Time) (*models.WorkSession, error)

	// GetOpenSession returns the worker's open session.
	// Returns ErrNoOpenSession if there isn't one.
	GetOpenSession(ctx context.Context, workerID uuid.UUID) (*models.WorkSession, error)

	// ListByWorker returns all sessions for a worker, newest start first.
	ListByWorker(ctx context.Context, workerID uuid.UUID) ([]*models.WorkSession, error)

	// ListInOrg returns all sessions for every worker in an organization,
	// newest start first, with owner display fields attached.
	ListInOrg(ctx context.Context, orgID uuid.UUID) ([]*SessionWithWorker, error)

	// ListClosedInRange returns the worker's closed sessions whose start falls
	// within [from, to] inclusive, ordered by start ascending. Open sessions
	// are never included.
	ListClosedInRange(ctx context.Context, workerID uuid.UUID, from, to time.Time) ([]*models.WorkSession, error)
}

package timeclock

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shiftclock/shiftclock/internal/auth"
	"github.com/shiftclock/shiftclock/internal/models"
	"github.com/shiftclock/shiftclock/internal/store"
	"github.com/shiftclock/shiftclock/internal/telemetry"
)

// Service is the work-session lifecycle engine. Each worker is either Idle
// (no open session) or Open (exactly one open session); Start and Stop are the
// only transitions, and the store makes them atomic per worker.
type Service struct {
	workers  store.WorkerStore
	sessions store.SessionStore
	now      func() time.Time
}

// NewService creates a lifecycle service backed by the given stores.
func NewService(workers store.WorkerStore, sessions store.SessionStore) *Service {
	return &Service{
		workers:  workers,
		sessions: sessions,
		now:      time.Now,
	}
}

// WithClock overrides the time source. Tests use this to make durations and
// skew handling deterministic.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// resolveTarget authorizes the caller against the target worker and returns
// the worker record. All lookups are scoped to the caller's organization, so
// a valid ID from another organization resolves the same way as a missing one.
func (s *Service) resolveTarget(ctx context.Context, caller auth.Identity, workerID uuid.UUID) (*models.Worker, error) {
	switch auth.Effective(caller, workerID) {
	case auth.PermSelf, auth.PermManagerOfOrg:
		worker, err := s.workers.GetInOrg(ctx, caller.OrgID, workerID)
		if err != nil {
			return nil, mapStoreError(err)
		}
		return worker, nil
	default:
		return nil, ErrDenied
	}
}

// Start opens a new work session for the target worker. Fails with a conflict
// if the worker already has an open session; the check and the insert are one
// atomic store operation, so concurrent starts cannot both succeed.
func (s *Service) Start(ctx context.Context, caller auth.Identity, workerID uuid.UUID) (*models.WorkSession, error) {
	worker, err := s.resolveTarget(ctx, caller, workerID)
	if err != nil {
		return nil, err
	}

	session := &models.WorkSession{
		SessionID: uuid.Must(uuid.NewV7()),
		WorkerID:  worker.WorkerID,
		StartedAt: s.now(),
	}

	if err := s.sessions.StartSession(ctx, session); err != nil {
		return nil, mapStoreError(err)
	}

	telemetry.GetMetrics().SessionsStartedTotal.Add(ctx, 1)
	log.Info().
		Str("session_id", session.SessionID.String()).
		Str("worker_id", worker.WorkerID.String()).
		Msg("Work session started")

	return session, nil
}

// Stop closes the target worker's open session, deriving the duration from
// the recorded start and the current instant. An end instant before the start
// (clock skew) rejects the stop; the session stays open and nothing is
// persisted.
func (s *Service) Stop(ctx context.Context, caller auth.Identity, workerID uuid.UUID) (*models.WorkSession, error) {
	worker, err := s.resolveTarget(ctx, caller, workerID)
	if err != nil {
		return nil, err
	}

	session, err := s.sessions.CloseOpenSession(ctx, worker.WorkerID, s.now())
	if err != nil {
		if errors.Is(err, store.ErrClockSkew) {
			telemetry.GetMetrics().ClockSkewRejectionsTotal.Add(ctx, 1)
		}
		return nil, mapStoreError(err)
	}

	telemetry.GetMetrics().SessionsStoppedTotal.Add(ctx, 1)
	telemetry.GetMetrics().SessionDuration.Record(ctx, float64(session.DurationMillis))
	log.Info().
		Str("session_id", session.SessionID.String()).
		Str("worker_id", worker.WorkerID.String()).
		Int64("duration_ms", session.DurationMillis).
		Msg("Work session stopped")

	return session, nil
}

// List returns all of the target worker's sessions, open and closed, newest
// start first. Pure read.
func (s *Service) List(ctx context.Context, caller auth.Identity, workerID uuid.UUID) ([]*models.WorkSession, error) {
	worker, err := s.resolveTarget(ctx, caller, workerID)
	if err != nil {
		return nil, err
	}

	sessions, err := s.sessions.ListByWorker(ctx, worker.WorkerID)
	if err != nil {
		return nil, mapStoreError(err)
	}

	return sessions, nil
}

// Active returns the target worker's open session, or nil when the worker is
// idle. An idle worker is a normal outcome, not an error, so clients can
// render clock state idempotently.
func (s *Service) Active(ctx context.Context, caller auth.Identity, workerID uuid.UUID) (*models.WorkSession, error) {
	worker, err := s.resolveTarget(ctx, caller, workerID)
	if err != nil {
		return nil, err
	}

	session, err := s.sessions.GetOpenSession(ctx, worker.WorkerID)
	if err != nil {
		if errors.Is(err, store.ErrNoOpenSession) {
			return nil, nil
		}
		return nil, mapStoreError(err)
	}

	return session, nil
}

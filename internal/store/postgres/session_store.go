package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
	"github.com/shiftclock/shiftclock/internal/models"
	"github.com/shiftclock/shiftclock/internal/store"
)

const sessionColumns = `session_id, worker_id, started_at, ended_at, duration_ms`

// SessionStore implements store.SessionStore using PostgreSQL.
//
// The at-most-one-open-session invariant is enforced by the partial unique
// index idx_work_sessions_open, so concurrent starts for the same worker
// resolve inside the database rather than in application code.
type SessionStore struct {
	pool *pgxpool.Pool
}

// NewSessionStore creates a new PostgreSQL-backed session store.
func NewSessionStore(pool *pgxpool.Pool) *SessionStore {
	return &SessionStore{
		pool: pool,
	}
}

// StartSession persists a new open session.
func (s *SessionStore) StartSession(ctx context.Context, session *models.WorkSession) error {
	query := `
		INSERT INTO work_sessions (
			session_id, worker_id, started_at, ended_at, duration_ms
		) VALUES (
			$1, $2, $3, NULL, 0
		)
	`

	_, err := s.pool.Exec(ctx, query,
		session.SessionID,
		session.WorkerID,
		session.StartedAt,
	)

	if err != nil {
		mapped := mapPostgresError(err)
		if errors.Is(mapped, store.ErrSessionActive) {
			return store.ErrSessionActive
		}
		return fmt.Errorf("failed to start session: %w", mapped)
	}

	log.Debug().
		Str("session_id", session.SessionID.String()).
		Str("worker_id", session.WorkerID.String()).
		Msg("Started work session")

	return nil
}

// CloseOpenSession atomically closes the worker's open session. The end
// timestamp, worker id, and open flag are all conditions of a single UPDATE,
// so a replayed stop or a concurrent stop finds no row to close.
func (s *SessionStore) CloseOpenSession(ctx context.Context, workerID uuid.UUID, endedAt time.Time) (*models.WorkSession, error) {
	query := `
		UPDATE work_sessions SET
			ended_at = $2,
			duration_ms = (EXTRACT(EPOCH FROM ($2::timestamptz - started_at)) * 1000)::bigint
		WHERE worker_id = $1 AND ended_at IS NULL AND started_at <= $2
		RETURNING ` + sessionColumns

	session, err := scanSession(s.pool.QueryRow(ctx, query, workerID, endedAt))
	if err == nil {
		log.Debug().
			Str("session_id", session.SessionID.String()).
			Str("worker_id", workerID.String()).
			Int64("duration_ms", session.DurationMillis).
			Msg("Closed work session")
		return session, nil
	}

	if !errors.Is(err, store.ErrNoOpenSession) {
		return nil, err
	}

	// No row matched: either there is no open session, or the open session
	// started after the requested end (clock skew). Distinguish the two.
	if _, openErr := s.GetOpenSession(ctx, workerID); openErr == nil {
		return nil, store.ErrClockSkew
	}

	return nil, store.ErrNoOpenSession
}

// GetOpenSession returns the worker's open session, if any.
func (s *SessionStore) GetOpenSession(ctx context.Context, workerID uuid.UUID) (*models.WorkSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM work_sessions WHERE worker_id = $1 AND ended_at IS NULL`

	session, err := scanSession(s.pool.QueryRow(ctx, query, workerID))
	if err != nil {
		return nil, err
	}
	return session, nil
}

// ListByWorker returns all sessions for a worker, newest start first.
func (s *SessionStore) ListByWorker(ctx context.Context, workerID uuid.UUID) ([]*models.WorkSession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM work_sessions
		WHERE worker_id = $1
		ORDER BY started_at DESC
	`

	return s.list(ctx, query, workerID)
}

// ListClosedInRange returns the worker's closed sessions whose start falls
// within [from, to] inclusive, ordered by start ascending.
func (s *SessionStore) ListClosedInRange(ctx context.Context, workerID uuid.UUID, from, to time.Time) ([]*models.WorkSession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM work_sessions
		WHERE worker_id = $1
		  AND ended_at IS NOT NULL
		  AND started_at >= $2
		  AND started_at <= $3
		ORDER BY started_at ASC
	`

	return s.list(ctx, query, workerID, from, to)
}

func (s *SessionStore) list(ctx context.Context, query string, args ...any) ([]*models.WorkSession, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", mapPostgresError(err))
	}
	defer rows.Close()

	var sessions []*models.WorkSession
	for rows.Next() {
		var session models.WorkSession
		if err := rows.Scan(
			&session.SessionID,
			&session.WorkerID,
			&session.StartedAt,
			&session.EndedAt,
			&session.DurationMillis,
		); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, &session)
	}

	return sessions, rows.Err()
}

// ListInOrg returns all sessions for workers in an organization, newest start
// first, with owner display fields attached. The organization filter is part
// of the join, not applied after the fact.
func (s *SessionStore) ListInOrg(ctx context.Context, orgID uuid.UUID) ([]*store.SessionWithWorker, error) {
	query := `
		SELECT s.session_id, s.worker_id, s.started_at, s.ended_at, s.duration_ms,
		       w.username, w.role
		FROM work_sessions s
		JOIN workers w ON w.worker_id = s.worker_id
		WHERE w.org_id = $1
		ORDER BY s.started_at DESC
	`

	rows, err := s.pool.Query(ctx, query, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list org sessions: %w", mapPostgresError(err))
	}
	defer rows.Close()

	var out []*store.SessionWithWorker
	for rows.Next() {
		var session models.WorkSession
		var item store.SessionWithWorker
		if err := rows.Scan(
			&session.SessionID,
			&session.WorkerID,
			&session.StartedAt,
			&session.EndedAt,
			&session.DurationMillis,
			&item.Username,
			&item.Role,
		); err != nil {
			return nil, fmt.Errorf("failed to scan org session: %w", err)
		}
		item.Session = &session
		out = append(out, &item)
	}

	return out, rows.Err()
}

func scanSession(row pgx.Row) (*models.WorkSession, error) {
	var session models.WorkSession
	err := row.Scan(
		&session.SessionID,
		&session.WorkerID,
		&session.StartedAt,
		&session.EndedAt,
		&session.DurationMillis,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNoOpenSession
		}
		return nil, fmt.Errorf("failed to scan session: %w", mapPostgresError(err))
	}

	return &session, nil
}

package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shiftclock/shiftclock/internal/models"
	"github.com/shiftclock/shiftclock/internal/store"
)

// SessionStore implements store.SessionStore using in-memory storage.
// Data is lost on restart; intended for tests and local development.
//
// The openByWorker index mirrors the partial unique index the postgres store
// uses: at most one entry per worker, checked and written under one lock so
// concurrent starts cannot both succeed.
type SessionStore struct {
	mu sync.RWMutex

	sessions         map[uuid.UUID]*models.WorkSession // session_id -> WorkSession
	sessionsByWorker map[uuid.UUID][]uuid.UUID         // worker_id -> []session_id
	openByWorker     map[uuid.UUID]uuid.UUID           // worker_id -> open session_id

	// Workers resolves owner display fields for ListInOrg. Optional; when nil
	// ListInOrg returns nothing.
	Workers *WorkerStore
}

// NewSessionStore creates a new in-memory session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions:         make(map[uuid.UUID]*models.WorkSession),
		sessionsByWorker: make(map[uuid.UUID][]uuid.UUID),
		openByWorker:     make(map[uuid.UUID]uuid.UUID),
	}
}

// StartSession persists a new open session.
func (s *SessionStore) StartSession(ctx context.Context, session *models.WorkSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.openByWorker[session.WorkerID]; exists {
		return store.ErrSessionActive
	}

	// Clone to avoid external modifications
	clone := *session
	s.sessions[session.SessionID] = &clone
	s.sessionsByWorker[session.WorkerID] = append(
		s.sessionsByWorker[session.WorkerID],
		session.SessionID,
	)
	s.openByWorker[session.WorkerID] = session.SessionID

	return nil
}

// CloseOpenSession atomically closes the worker's open session.
func (s *SessionStore) CloseOpenSession(ctx context.Context, workerID uuid.UUID, endedAt time.Time) (*models.WorkSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessionID, exists := s.openByWorker[workerID]
	if !exists {
		return nil, store.ErrNoOpenSession
	}

	session := s.sessions[sessionID]
	if endedAt.Before(session.StartedAt) {
		return nil, store.ErrClockSkew
	}

	ended := endedAt
	session.EndedAt = &ended
	session.DurationMillis = endedAt.Sub(session.StartedAt).Milliseconds()
	delete(s.openByWorker, workerID)

	clone := *session
	return &clone, nil
}

// GetOpenSession returns the worker's open session.
func (s *SessionStore) GetOpenSession(ctx context.Context, workerID uuid.UUID) (*models.WorkSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessionID, exists := s.openByWorker[workerID]
	if !exists {
		return nil, store.ErrNoOpenSession
	}

	clone := *s.sessions[sessionID]
	return &clone, nil
}

// ListByWorker returns all sessions for a worker, newest start first.
func (s *SessionStore) ListByWorker(ctx context.Context, workerID uuid.UUID) ([]*models.WorkSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.sessionsByWorker[workerID]
	sessions := make([]*models.WorkSession, 0, len(ids))
	for _, id := range ids {
		clone := *s.sessions[id]
		sessions = append(sessions, &clone)
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].StartedAt.After(sessions[j].StartedAt)
	})

	return sessions, nil
}

// ListInOrg returns all sessions for workers in an organization, newest first.
func (s *SessionStore) ListInOrg(ctx context.Context, orgID uuid.UUID) ([]*store.SessionWithWorker, error) {
	if s.Workers == nil {
		return nil, nil
	}

	workers, err := s.Workers.ListInOrg(ctx, orgID)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*store.SessionWithWorker
	for _, worker := range workers {
		for _, id := range s.sessionsByWorker[worker.WorkerID] {
			clone := *s.sessions[id]
			out = append(out, &store.SessionWithWorker{
				Session:  &clone,
				Username: worker.Username,
				Role:     worker.Role,
			})
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Session.StartedAt.After(out[j].Session.StartedAt)
	})

	return out, nil
}

// ListClosedInRange returns closed sessions starting within [from, to], ascending.
func (s *SessionStore) ListClosedInRange(ctx context.Context, workerID uuid.UUID, from, to time.Time) ([]*models.WorkSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var sessions []*models.WorkSession
	for _, id := range s.sessionsByWorker[workerID] {
		session := s.sessions[id]
		if session.EndedAt == nil {
			continue
		}
		if session.StartedAt.Before(from) || session.StartedAt.After(to) {
			continue
		}
		clone := *session
		sessions = append(sessions, &clone)
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].StartedAt.Before(sessions[j].StartedAt)
	})

	return sessions, nil
}

package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shiftclock/shiftclock/internal/models"
	"github.com/shiftclock/shiftclock/internal/store"
)

// WorkerStore implements store.WorkerStore using in-memory storage.
// Data is lost on restart; intended for tests and local development.
type WorkerStore struct {
	mu sync.RWMutex

	workers    map[uuid.UUID]*models.Worker // worker_id -> Worker
	byUsername map[string]uuid.UUID         // lower(username) -> worker_id
}

// NewWorkerStore creates a new in-memory worker store.
func NewWorkerStore() *WorkerStore {
	return &WorkerStore{
		workers:    make(map[uuid.UUID]*models.Worker),
		byUsername: make(map[string]uuid.UUID),
	}
}

// Create creates a new worker in memory.
func (s *WorkerStore) Create(ctx context.Context, worker *models.Worker) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(worker.Username)
	if _, exists := s.byUsername[key]; exists {
		return store.ErrWorkerAlreadyExists
	}

	// Clone to avoid external modifications
	clone := *worker
	s.workers[worker.WorkerID] = &clone
	s.byUsername[key] = worker.WorkerID

	return nil
}

// Get retrieves a worker by ID without organization scoping.
func (s *WorkerStore) Get(ctx context.Context, workerID uuid.UUID) (*models.Worker, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	worker, exists := s.workers[workerID]
	if !exists {
		return nil, store.ErrWorkerNotFound
	}

	clone := *worker
	return &clone, nil
}

// GetByUsername retrieves a worker by username.
func (s *WorkerStore) GetByUsername(ctx context.Context, username string) (*models.Worker, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	workerID, exists := s.byUsername[strings.ToLower(username)]
	if !exists {
		return nil, store.ErrWorkerNotFound
	}

	clone := *s.workers[workerID]
	return &clone, nil
}

// GetInOrg retrieves a worker scoped to an organization.
func (s *WorkerStore) GetInOrg(ctx context.Context, orgID, workerID uuid.UUID) (*models.Worker, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.getInOrgLocked(orgID, workerID)
}

func (s *WorkerStore) getInOrgLocked(orgID, workerID uuid.UUID) (*models.Worker, error) {
	worker, exists := s.workers[workerID]
	if !exists || worker.OrgID != orgID {
		// Out-of-org lookups are indistinguishable from missing workers.
		return nil, store.ErrWorkerNotFound
	}

	clone := *worker
	return &clone, nil
}

// ListInOrg returns all workers in an organization, ordered by username.
func (s *WorkerStore) ListInOrg(ctx context.Context, orgID uuid.UUID) ([]*models.Worker, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var workers []*models.Worker
	for _, worker := range s.workers {
		if worker.OrgID != orgID {
			continue
		}
		clone := *worker
		workers = append(workers, &clone)
	}

	sort.Slice(workers, func(i, j int) bool {
		return workers[i].Username < workers[j].Username
	})

	return workers, nil
}

// UpdateRole sets a worker's role, scoped to an organization.
func (s *WorkerStore) UpdateRole(ctx context.Context, orgID, workerID uuid.UUID, role models.Role) (*models.Worker, error) {
	return s.update(orgID, workerID, func(w *models.Worker) {
		w.Role = role
	})
}

// UpdateStatus sets a worker's membership status, scoped to an organization.
func (s *WorkerStore) UpdateStatus(ctx context.Context, orgID, workerID uuid.UUID, status models.Status) (*models.Worker, error) {
	return s.update(orgID, workerID, func(w *models.Worker) {
		w.Status = status
	})
}

// UpdateHourlyRate sets a worker's hourly rate, scoped to an organization.
func (s *WorkerStore) UpdateHourlyRate(ctx context.Context, orgID, workerID uuid.UUID, rate float64) (*models.Worker, error) {
	return s.update(orgID, workerID, func(w *models.Worker) {
		w.HourlyRate = rate
	})
}

func (s *WorkerStore) update(orgID, workerID uuid.UUID, mutate func(*models.Worker)) (*models.Worker, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	worker, exists := s.workers[workerID]
	if !exists || worker.OrgID != orgID {
		return nil, store.ErrWorkerNotFound
	}

	mutate(worker)
	worker.UpdatedAt = time.Now()

	clone := *worker
	return &clone, nil
}

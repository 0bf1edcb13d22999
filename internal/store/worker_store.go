package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shiftclock/shiftclock/internal/models"
)

// Sentinel errors for worker store operations
var (
	ErrWorkerNotFound      = errors.New("worker not found")
	ErrWorkerAlreadyExists = errors.New("worker already exists")
)

// WorkerStore defines the interface for worker storage operations.
//
// Every cross-worker read or mutation takes the caller's organization ID as a
// filter. A worker outside that organization is reported as ErrWorkerNotFound,
// deliberately indistinguishable from a worker that doesn't exist at all.
type WorkerStore interface {
	// Create creates a new worker.
	// Returns ErrWorkerAlreadyExists if the username is already taken.
	Create(ctx context.Context, worker *models.Worker) error

	// Get retrieves a worker by ID with no organization scoping. Only the
	// auth layer uses this, to resolve an authenticated identity.
	Get(ctx context.Context, workerID uuid.UUID) (*models.Worker, error)

	// GetByUsername retrieves a worker by username, for login.
	GetByUsername(ctx context.Context, username string) (*models.Worker, error)

	// GetInOrg retrieves a worker scoped to an organization.
	// Returns ErrWorkerNotFound if the worker doesn't exist or belongs to a
	// different organization.
	GetInOrg(ctx context.Context, orgID, workerID uuid.UUID) (*models.Worker, error)

	// ListInOrg returns all workers in an organization, ordered by username.
	ListInOrg(ctx context.Context, orgID uuid.UUID) ([]*models.Worker, error)

	// UpdateRole sets a worker's role, scoped to an organization.
	UpdateRole(ctx context.Context, orgID, workerID uuid.UUID, role models.Role) (*models.Worker, error)

	// UpdateStatus sets a worker's membership status, scoped to an organization.
	UpdateStatus(ctx context.Context, orgID, workerID uuid.UUID, status models.Status) (*models.Worker, error)

	// UpdateHourlyRate sets a worker's hourly rate, scoped to an organization.
	UpdateHourlyRate(ctx context.Context, orgID, workerID uuid.UUID, rate float64) (*models.Worker, error)
}

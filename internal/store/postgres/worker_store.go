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

const workerColumns = `worker_id, org_id, username, password_hash, role, status, hourly_rate, created_at, updated_at`

// WorkerStore implements store.WorkerStore using PostgreSQL.
type WorkerStore struct {
	pool *pgxpool.Pool
}

// NewWorkerStore creates a new PostgreSQL-backed worker store.
func NewWorkerStore(pool *pgxpool.Pool) *WorkerStore {
	return &WorkerStore{
		pool: pool,
	}
}

// Create creates a new worker in the database.
func (s *WorkerStore) Create(ctx context.Context, worker *models.Worker) error {
	query := `
		INSERT INTO workers (
			worker_id, org_id, username, password_hash, role, status, hourly_rate, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		)
	`

	_, err := s.pool.Exec(ctx, query,
		worker.WorkerID,
		worker.OrgID,
		worker.Username,
		worker.PasswordHash,
		worker.Role,
		worker.Status,
		worker.HourlyRate,
		worker.CreatedAt,
		worker.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrWorkerAlreadyExists
		}
		return fmt.Errorf("failed to create worker: %w", mapPostgresError(err))
	}

	log.Debug().
		Str("worker_id", worker.WorkerID.String()).
		Str("org_id", worker.OrgID.String()).
		Str("username", worker.Username).
		Msg("Created worker")

	return nil
}

// Get retrieves a worker by ID without organization scoping.
func (s *WorkerStore) Get(ctx context.Context, workerID uuid.UUID) (*models.Worker, error) {
	query := `SELECT ` + workerColumns + ` FROM workers WHERE worker_id = $1`

	return scanWorker(s.pool.QueryRow(ctx, query, workerID))
}

// GetByUsername retrieves a worker by username.
func (s *WorkerStore) GetByUsername(ctx context.Context, username string) (*models.Worker, error) {
	query := `SELECT ` + workerColumns + ` FROM workers WHERE lower(username) = lower($1)`

	return scanWorker(s.pool.QueryRow(ctx, query, username))
}

// GetInOrg retrieves a worker scoped to an organization. A worker in another
// organization is reported as not found.
func (s *WorkerStore) GetInOrg(ctx context.Context, orgID, workerID uuid.UUID) (*models.Worker, error) {
	query := `SELECT ` + workerColumns + ` FROM workers WHERE org_id = $1 AND worker_id = $2`

	return scanWorker(s.pool.QueryRow(ctx, query, orgID, workerID))
}

// ListInOrg returns all workers in an organization, ordered by username.
func (s *WorkerStore) ListInOrg(ctx context.Context, orgID uuid.UUID) ([]*models.Worker, error) {
	query := `SELECT ` + workerColumns + ` FROM workers WHERE org_id = $1 ORDER BY username`

	rows, err := s.pool.Query(ctx, query, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list workers: %w", mapPostgresError(err))
	}
	defer rows.Close()

	var workers []*models.Worker
	for rows.Next() {
		worker, err := scanWorker(rows)
		if err != nil {
			return nil, err
		}
		workers = append(workers, worker)
	}

	return workers, rows.Err()
}

// UpdateRole sets a worker's role, scoped to an organization.
func (s *WorkerStore) UpdateRole(ctx context.Context, orgID, workerID uuid.UUID, role models.Role) (*models.Worker, error) {
	query := `
		UPDATE workers SET role = $3, updated_at = $4
		WHERE org_id = $1 AND worker_id = $2
		RETURNING ` + workerColumns

	return scanWorker(s.pool.QueryRow(ctx, query, orgID, workerID, role, time.Now()))
}

// UpdateStatus sets a worker's membership status, scoped to an organization.
func (s *WorkerStore) UpdateStatus(ctx context.Context, orgID, workerID uuid.UUID, status models.Status) (*models.Worker, error) {
	query := `
		UPDATE workers SET status = $3, updated_at = $4
		WHERE org_id = $1 AND worker_id = $2
		RETURNING ` + workerColumns

	return scanWorker(s.pool.QueryRow(ctx, query, orgID, workerID, status, time.Now()))
}

// UpdateHourlyRate sets a worker's hourly rate, scoped to an organization.
func (s *WorkerStore) UpdateHourlyRate(ctx context.Context, orgID, workerID uuid.UUID, rate float64) (*models.Worker, error) {
	query := `
		UPDATE workers SET hourly_rate = $3, updated_at = $4
		WHERE org_id = $1 AND worker_id = $2
		RETURNING ` + workerColumns

	return scanWorker(s.pool.QueryRow(ctx, query, orgID, workerID, rate, time.Now()))
}

func scanWorker(row pgx.Row) (*models.Worker, error) {
	var worker models.Worker
	err := row.Scan(
		&worker.WorkerID,
		&worker.OrgID,
		&worker.Username,
		&worker.PasswordHash,
		&worker.Role,
		&worker.Status,
		&worker.HourlyRate,
		&worker.CreatedAt,
		&worker.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrWorkerNotFound
		}
		return nil, fmt.Errorf("failed to scan worker: %w", mapPostgresError(err))
	}

	return &worker, nil
}

package timeclock

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shiftclock/shiftclock/internal/auth"
	"github.com/shiftclock/shiftclock/internal/models"
	"github.com/shiftclock/shiftclock/internal/store"
)

// Manager-facing worker administration. Every operation here requires an
// active manager and is scoped to the caller's organization by construction:
// the store queries take the caller's org as a filter, so a worker ID from
// another organization behaves exactly like an unknown ID.

// ListWorkers returns all workers in the caller's organization.
func (s *Service) ListWorkers(ctx context.Context, caller auth.Identity) ([]*models.Worker, error) {
	if !auth.Manager(caller) {
		return nil, ErrDenied
	}

	workers, err := s.workers.ListInOrg(ctx, caller.OrgID)
	if err != nil {
		return nil, mapStoreError(err)
	}

	return workers, nil
}

// ListOrgSessions returns every session in the caller's organization, newest
// start first, with the owning worker's display fields attached.
func (s *Service) ListOrgSessions(ctx context.Context, caller auth.Identity) ([]*store.SessionWithWorker, error) {
	if !auth.Manager(caller) {
		return nil, ErrDenied
	}

	sessions, err := s.sessions.ListInOrg(ctx, caller.OrgID)
	if err != nil {
		return nil, mapStoreError(err)
	}

	return sessions, nil
}

// UpdateRole sets a worker's role. A manager demoting themself to member is
// rejected; demoting another manager is allowed.
func (s *Service) UpdateRole(ctx context.Context, caller auth.Identity, workerID uuid.UUID, role models.Role) (*models.Worker, error) {
	if !auth.Manager(caller) {
		return nil, ErrDenied
	}

	if !role.Valid() {
		return nil, fmt.Errorf("%w: invalid role %q", ErrValidation, role)
	}

	if caller.WorkerID == workerID && role == models.RoleMember {
		return nil, ErrCannotDemoteSelf
	}

	worker, err := s.workers.UpdateRole(ctx, caller.OrgID, workerID, role)
	if err != nil {
		return nil, mapStoreError(err)
	}

	log.Info().
		Str("worker_id", workerID.String()).
		Str("role", string(role)).
		Msg("Updated worker role")

	return worker, nil
}

// UpdateStatus approves or rejects a worker's membership.
func (s *Service) UpdateStatus(ctx context.Context, caller auth.Identity, workerID uuid.UUID, status models.Status) (*models.Worker, error) {
	if !auth.Manager(caller) {
		return nil, ErrDenied
	}

	if !status.Valid() {
		return nil, fmt.Errorf("%w: invalid status %q", ErrValidation, status)
	}

	worker, err := s.workers.UpdateStatus(ctx, caller.OrgID, workerID, status)
	if err != nil {
		return nil, mapStoreError(err)
	}

	log.Info().
		Str("worker_id", workerID.String()).
		Str("status", string(status)).
		Msg("Updated worker status")

	return worker, nil
}

// UpdateHourlyRate sets a worker's hourly rate.
func (s *Service) UpdateHourlyRate(ctx context.Context, caller auth.Identity, workerID uuid.UUID, rate float64) (*models.Worker, error) {
	if !auth.Manager(caller) {
		return nil, ErrDenied
	}

	if rate < 0 {
		return nil, fmt.Errorf("%w: hourly rate must be non-negative", ErrValidation)
	}

	worker, err := s.workers.UpdateHourlyRate(ctx, caller.OrgID, workerID, rate)
	if err != nil {
		return nil, mapStoreError(err)
	}

	log.Info().
		Str("worker_id", workerID.String()).
		Float64("hourly_rate", rate).
		Msg("Updated worker hourly rate")

	return worker, nil
}

package account

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shiftclock/shiftclock/internal/auth"
	"github.com/shiftclock/shiftclock/internal/models"
	"github.com/shiftclock/shiftclock/internal/store"
	"github.com/shiftclock/shiftclock/internal/telemetry"
	"github.com/shiftclock/shiftclock/internal/timeclock"
	"golang.org/x/crypto/bcrypt"
)

// RegistrationType selects between founding a new organization and joining an
// existing one.
type RegistrationType string

const (
	RegistrationCreate RegistrationType = "create"
	RegistrationJoin   RegistrationType = "join"
)

// ErrInvalidCredentials is returned for unknown usernames and wrong passwords
// alike, so login failures don't reveal which half was wrong.
var ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", timeclock.ErrDenied)

// ErrAccountNotActive is returned when a pending or rejected worker tries to
// log in.
var ErrAccountNotActive = fmt.Errorf("%w: account is not active", timeclock.ErrDenied)

// Service handles registration, login, and identity lookup.
type Service struct {
	workers store.WorkerStore
	orgs    store.OrganizationStore
	tokens  *auth.TokenManager
}

// NewService creates an account service.
func NewService(workers store.WorkerStore, orgs store.OrganizationStore, tokens *auth.TokenManager) *Service {
	return &Service{
		workers: workers,
		orgs:    orgs,
		tokens:  tokens,
	}
}

// RegisterParams are the inputs to Register.
type RegisterParams struct {
	Username string
	Password string
	Type     RegistrationType
	OrgName  string    // required for create
	OrgID    uuid.UUID // required for join
}

// RegisterResult is the outcome of a successful registration.
type RegisterResult struct {
	Worker *models.Worker
	Token  string
}

// Register creates a worker account.
//
// The create flow founds a new organization; its first worker becomes an
// active manager and the organization owner. The join flow adds a pending
// member to an existing organization, to be approved or rejected by a
// manager. The worker record is never persisted without an organization.
func (s *Service) Register(ctx context.Context, params RegisterParams) (*RegisterResult, error) {
	if params.Username == "" || params.Password == "" {
		return nil, fmt.Errorf("%w: username and password are required", timeclock.ErrValidation)
	}

	now := time.Now()
	worker := &models.Worker{
		WorkerID:  uuid.Must(uuid.NewV7()),
		Username:  params.Username,
		Role:      models.RoleMember,
		Status:    models.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	var org *models.Organization

	switch params.Type {
	case RegistrationCreate:
		if params.OrgName == "" {
			return nil, fmt.Errorf("%w: organization name is required", timeclock.ErrValidation)
		}
		org = &models.Organization{
			OrgID:     uuid.Must(uuid.NewV7()),
			Name:      params.OrgName,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.orgs.Create(ctx, org); err != nil {
			if errors.Is(err, store.ErrOrganizationAlreadyExists) {
				return nil, fmt.Errorf("%w: organization already exists", timeclock.ErrConflict)
			}
			return nil, fmt.Errorf("%w: %v", timeclock.ErrStorage, err)
		}
		worker.Role = models.RoleManager
		worker.Status = models.StatusActive

	case RegistrationJoin:
		if params.OrgID == uuid.Nil {
			return nil, fmt.Errorf("%w: organization selection is required", timeclock.ErrValidation)
		}
		existing, err := s.orgs.Get(ctx, params.OrgID)
		if err != nil {
			if errors.Is(err, store.ErrOrganizationNotFound) {
				return nil, fmt.Errorf("%w: organization not found", timeclock.ErrNotFound)
			}
			return nil, fmt.Errorf("%w: %v", timeclock.ErrStorage, err)
		}
		org = existing

	default:
		return nil, fmt.Errorf("%w: invalid registration type %q", timeclock.ErrValidation, params.Type)
	}

	worker.OrgID = org.OrgID

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	worker.PasswordHash = string(hash)

	if err := s.workers.Create(ctx, worker); err != nil {
		if errors.Is(err, store.ErrWorkerAlreadyExists) {
			return nil, fmt.Errorf("%w: username already taken", timeclock.ErrConflict)
		}
		return nil, fmt.Errorf("%w: %v", timeclock.ErrStorage, err)
	}

	if params.Type == RegistrationCreate {
		ownerID := worker.WorkerID
		org.OwnerWorkerID = &ownerID
		if err := s.orgs.Update(ctx, org); err != nil {
			return nil, fmt.Errorf("%w: %v", timeclock.ErrStorage, err)
		}
	}

	token, err := s.tokens.Issue(worker)
	if err != nil {
		return nil, err
	}

	telemetry.GetMetrics().RegistrationsTotal.Add(ctx, 1)
	log.Info().
		Str("worker_id", worker.WorkerID.String()).
		Str("org_id", org.OrgID.String()).
		Str("type", string(params.Type)).
		Msg("Worker registered")

	return &RegisterResult{Worker: worker, Token: token}, nil
}

// Login verifies credentials and issues a token. Pending and rejected
// accounts are refused even with correct credentials.
func (s *Service) Login(ctx context.Context, username, password string) (*RegisterResult, error) {
	worker, err := s.workers.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrWorkerNotFound) {
			telemetry.GetMetrics().LoginFailuresTotal.Add(ctx, 1)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%w: %v", timeclock.ErrStorage, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(worker.PasswordHash), []byte(password)); err != nil {
		telemetry.GetMetrics().LoginFailuresTotal.Add(ctx, 1)
		return nil, ErrInvalidCredentials
	}

	if worker.Status != models.StatusActive {
		telemetry.GetMetrics().LoginFailuresTotal.Add(ctx, 1)
		return nil, ErrAccountNotActive
	}

	token, err := s.tokens.Issue(worker)
	if err != nil {
		return nil, err
	}

	telemetry.GetMetrics().LoginsTotal.Add(ctx, 1)
	log.Info().
		Str("worker_id", worker.WorkerID.String()).
		Msg("Worker logged in")

	return &RegisterResult{Worker: worker, Token: token}, nil
}

// Me returns the caller's own worker record.
func (s *Service) Me(ctx context.Context, caller auth.Identity) (*models.Worker, error) {
	worker, err := s.workers.Get(ctx, caller.WorkerID)
	if err != nil {
		if errors.Is(err, store.ErrWorkerNotFound) {
			return nil, timeclock.ErrWorkerNotFound
		}
		return nil, fmt.Errorf("%w: %v", timeclock.ErrStorage, err)
	}
	return worker, nil
}

// Organizations lists all organizations for the public join-an-organization
// flow.
func (s *Service) Organizations(ctx context.Context) ([]*models.Organization, error) {
	orgs, err := s.orgs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", timeclock.ErrStorage, err)
	}
	return orgs, nil
}

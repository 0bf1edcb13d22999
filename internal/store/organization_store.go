package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shiftclock/shiftclock/internal/models"
)

// Sentinel errors for organization store operations
var (
	ErrOrganizationNotFound      = errors.New("organization not found")
	ErrOrganizationAlreadyExists = errors.New("organization already exists")
)

// OrganizationStore defines the interface for organization storage operations.
// Organizations are tenants; all worker and session queries are scoped to one.
type OrganizationStore interface {
	// Create creates a new organization.
	// Returns ErrOrganizationAlreadyExists if the name is already taken.
	Create(ctx context.Context, org *models.Organization) error

	// Get retrieves an organization by ID.
	// Returns ErrOrganizationNotFound if the organization doesn't exist.
	Get(ctx context.Context, orgID uuid.UUID) (*models.Organization, error)

	// GetByName retrieves an organization by its unique name.
	// Returns ErrOrganizationNotFound if the organization doesn't exist.
	GetByName(ctx context.Context, name string) (*models.Organization, error)

	// Update updates an existing organization.
	// Returns ErrOrganizationNotFound if the organization doesn't exist.
	Update(ctx context.Context, org *models.Organization) error

	// List returns all organizations ordered by name. Used by the public
	// join-an-organization flow, so it only needs id and name populated.
	List(ctx context.Context) ([]*models.Organization, error)
}

package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/shiftclock/shiftclock/internal/models"
	"github.com/shiftclock/shiftclock/internal/store"
)

// OrganizationStore implements store.OrganizationStore using in-memory storage.
// Data is lost on restart; intended for tests and local development.
type OrganizationStore struct {
	mu sync.RWMutex

	orgs   map[uuid.UUID]*models.Organization // org_id -> Organization
	byName map[string]uuid.UUID               // lower(name) -> org_id
}

// NewOrganizationStore creates a new in-memory organization store.
func NewOrganizationStore() *OrganizationStore {
	return &OrganizationStore{
		orgs:   make(map[uuid.UUID]*models.Organization),
		byName: make(map[string]uuid.UUID),
	}
}

// Create creates a new organization in memory.
func (s *OrganizationStore) Create(ctx context.Context, org *models.Organization) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(org.Name)
	if _, exists := s.byName[key]; exists {
		return store.ErrOrganizationAlreadyExists
	}
	if _, exists := s.orgs[org.OrgID]; exists {
		return store.ErrOrganizationAlreadyExists
	}

	// Clone to avoid external modifications
	clone := *org
	s.orgs[org.OrgID] = &clone
	s.byName[key] = org.OrgID

	return nil
}

// Get retrieves an organization by ID.
func (s *OrganizationStore) Get(ctx context.Context, orgID uuid.UUID) (*models.Organization, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	org, exists := s.orgs[orgID]
	if !exists {
		return nil, store.ErrOrganizationNotFound
	}

	clone := *org
	return &clone, nil
}

// GetByName retrieves an organization by its unique name.
func (s *OrganizationStore) GetByName(ctx context.Context, name string) (*models.Organization, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	orgID, exists := s.byName[strings.ToLower(name)]
	if !exists {
		return nil, store.ErrOrganizationNotFound
	}

	clone := *s.orgs[orgID]
	return &clone, nil
}

// Update updates an existing organization.
func (s *OrganizationStore) Update(ctx context.Context, org *models.Organization) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.orgs[org.OrgID]
	if !exists {
		return store.ErrOrganizationNotFound
	}

	delete(s.byName, strings.ToLower(existing.Name))
	clone := *org
	s.orgs[org.OrgID] = &clone
	s.byName[strings.ToLower(org.Name)] = org.OrgID

	return nil
}

// List returns all organizations ordered by name.
func (s *OrganizationStore) List(ctx context.Context) ([]*models.Organization, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	orgs := make([]*models.Organization, 0, len(s.orgs))
	for _, org := range s.orgs {
		clone := *org
		orgs = append(orgs, &clone)
	}

	sort.Slice(orgs, func(i, j int) bool {
		return orgs[i].Name < orgs[j].Name
	})

	return orgs, nil
}

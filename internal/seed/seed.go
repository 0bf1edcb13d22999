package seed

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shiftclock/shiftclock/internal/models"
	"github.com/shiftclock/shiftclock/internal/store"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

// File is the YAML seed file format: one organization and its first manager
// account, applied when the server starts.
type File struct {
	Organization string `yaml:"organization"`
	Manager      struct {
		Username   string  `yaml:"username"`
		Password   string  `yaml:"password"`
		HourlyRate float64 `yaml:"hourlyRate"`
	} `yaml:"manager"`
}

// Load reads and validates a seed file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}

	if f.Organization == "" || f.Manager.Username == "" || f.Manager.Password == "" {
		return nil, fmt.Errorf("seed file requires organization, manager.username, and manager.password")
	}

	return &f, nil
}

// Apply creates the seed organization and manager account if they don't
// already exist. An existing username is left untouched, so re-running the
// server with the same seed file is safe.
func Apply(ctx context.Context, f *File, orgs store.OrganizationStore, workers store.WorkerStore) error {
	if _, err := workers.GetByUsername(ctx, f.Manager.Username); err == nil {
		log.Info().Str("username", f.Manager.Username).Msg("Seed manager already exists, skipping")
		return nil
	} else if !errors.Is(err, store.ErrWorkerNotFound) {
		return fmt.Errorf("failed to check seed manager: %w", err)
	}

	now := time.Now()

	org, err := orgs.GetByName(ctx, f.Organization)
	if errors.Is(err, store.ErrOrganizationNotFound) {
		org = &models.Organization{
			OrgID:     uuid.Must(uuid.NewV7()),
			Name:      f.Organization,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := orgs.Create(ctx, org); err != nil {
			return fmt.Errorf("failed to create seed organization: %w", err)
		}
	} else if err != nil {
		return fmt.Errorf("failed to look up seed organization: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(f.Manager.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	manager := &models.Worker{
		WorkerID:     uuid.Must(uuid.NewV7()),
		OrgID:        org.OrgID,
		Username:     f.Manager.Username,
		PasswordHash: string(hash),
		Role:         models.RoleManager,
		Status:       models.StatusActive,
		HourlyRate:   f.Manager.HourlyRate,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := workers.Create(ctx, manager); err != nil {
		return fmt.Errorf("failed to create seed manager: %w", err)
	}

	if org.OwnerWorkerID == nil {
		ownerID := manager.WorkerID
		org.OwnerWorkerID = &ownerID
		if err := orgs.Update(ctx, org); err != nil {
			return fmt.Errorf("failed to set seed organization owner: %w", err)
		}
	}

	log.Info().
		Str("organization", f.Organization).
		Str("username", f.Manager.Username).
		Msg("Seeded organization and manager account")

	return nil
}

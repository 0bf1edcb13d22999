package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/shiftclock/shiftclock/internal/models"
	"github.com/shiftclock/shiftclock/internal/store/memory"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func writeSeedFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("valid file", func(t *testing.T) {
		path := writeSeedFile(t, `
organization: Acme
manager:
  username: boss
  password: hunter22
  hourlyRate: 50
`)
		f, err := Load(path)
		require.NoError(t, err)
		require.Equal(t, "Acme", f.Organization)
		require.Equal(t, "boss", f.Manager.Username)
		require.Equal(t, "hunter22", f.Manager.Password)
		require.Equal(t, 50.0, f.Manager.HourlyRate)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := writeSeedFile(t, "organization: [unclosed")
		_, err := Load(path)
		require.Error(t, err)
	})

	t.Run("missing required fields", func(t *testing.T) {
		path := writeSeedFile(t, "organization: Acme\n")
		_, err := Load(path)
		require.Error(t, err)
	})
}

func TestApply(t *testing.T) {
	seedFile := &File{Organization: "Acme"}
	seedFile.Manager.Username = "boss"
	seedFile.Manager.Password = "hunter22"
	seedFile.Manager.HourlyRate = 50

	t.Run("creates the organization and manager", func(t *testing.T) {
		orgs := memory.NewOrganizationStore()
		workers := memory.NewWorkerStore()
		ctx := context.Background()

		require.NoError(t, Apply(ctx, seedFile, orgs, workers))

		org, err := orgs.GetByName(ctx, "Acme")
		require.NoError(t, err)

		manager, err := workers.GetByUsername(ctx, "boss")
		require.NoError(t, err)
		require.Equal(t, org.OrgID, manager.OrgID)
		require.Equal(t, models.RoleManager, manager.Role)
		require.Equal(t, models.StatusActive, manager.Status)
		require.Equal(t, 50.0, manager.HourlyRate)

		require.NotNil(t, org.OwnerWorkerID)
		require.Equal(t, manager.WorkerID, *org.OwnerWorkerID)

		// Password is stored as a bcrypt hash of the seed value.
		require.NoError(t, bcrypt.CompareHashAndPassword([]byte(manager.PasswordHash), []byte("hunter22")))
	})

	t.Run("second apply is a no-op", func(t *testing.T) {
		orgs := memory.NewOrganizationStore()
		workers := memory.NewWorkerStore()
		ctx := context.Background()

		require.NoError(t, Apply(ctx, seedFile, orgs, workers))

		first, err := workers.GetByUsername(ctx, "boss")
		require.NoError(t, err)

		require.NoError(t, Apply(ctx, seedFile, orgs, workers))

		second, err := workers.GetByUsername(ctx, "boss")
		require.NoError(t, err)
		require.Equal(t, first.WorkerID, second.WorkerID)

		all, err := orgs.List(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
	})

	t.Run("existing organization is reused", func(t *testing.T) {
		orgs := memory.NewOrganizationStore()
		workers := memory.NewWorkerStore()
		ctx := context.Background()

		existing := &models.Organization{
			OrgID: uuid.Must(uuid.NewV7()),
			Name:  "Acme",
		}
		require.NoError(t, orgs.Create(ctx, existing))

		require.NoError(t, Apply(ctx, seedFile, orgs, workers))

		manager, err := workers.GetByUsername(ctx, "boss")
		require.NoError(t, err)
		require.Equal(t, existing.OrgID, manager.OrgID)
	})
}

package memory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shiftclock/shiftclock/internal/models"
	"github.com/shiftclock/shiftclock/internal/store"
	"github.com/stretchr/testify/require"
)

func testOrg(name string) *models.Organization {
	return &models.Organization{
		OrgID: uuid.Must(uuid.NewV7()),
		Name:  name,
	}
}

func TestOrganizationStore(t *testing.T) {
	t.Run("create and get", func(t *testing.T) {
		s := NewOrganizationStore()
		ctx := context.Background()

		org := testOrg("Acme")
		require.NoError(t, s.Create(ctx, org))

		got, err := s.Get(ctx, org.OrgID)
		require.NoError(t, err)
		require.Equal(t, "Acme", got.Name)

		byName, err := s.GetByName(ctx, "acme")
		require.NoError(t, err)
		require.Equal(t, org.OrgID, byName.OrgID)
	})

	t.Run("names are unique case-insensitively", func(t *testing.T) {
		s := NewOrganizationStore()
		ctx := context.Background()

		require.NoError(t, s.Create(ctx, testOrg("Acme")))

		err := s.Create(ctx, testOrg("ACME"))
		require.ErrorIs(t, err, store.ErrOrganizationAlreadyExists)
	})

	t.Run("get missing", func(t *testing.T) {
		s := NewOrganizationStore()
		ctx := context.Background()

		_, err := s.Get(ctx, uuid.Must(uuid.NewV7()))
		require.ErrorIs(t, err, store.ErrOrganizationNotFound)
	})

	t.Run("update sets the owner", func(t *testing.T) {
		s := NewOrganizationStore()
		ctx := context.Background()

		org := testOrg("Acme")
		require.NoError(t, s.Create(ctx, org))

		ownerID := uuid.Must(uuid.NewV7())
		org.OwnerWorkerID = &ownerID
		require.NoError(t, s.Update(ctx, org))

		got, err := s.Get(ctx, org.OrgID)
		require.NoError(t, err)
		require.NotNil(t, got.OwnerWorkerID)
		require.Equal(t, ownerID, *got.OwnerWorkerID)
	})

	t.Run("list is ordered by name", func(t *testing.T) {
		s := NewOrganizationStore()
		ctx := context.Background()

		require.NoError(t, s.Create(ctx, testOrg("Globex")))
		require.NoError(t, s.Create(ctx, testOrg("Acme")))

		orgs, err := s.List(ctx)
		require.NoError(t, err)
		require.Len(t, orgs, 2)
		require.Equal(t, "Acme", orgs[0].Name)
		require.Equal(t, "Globex", orgs[1].Name)
	})
}

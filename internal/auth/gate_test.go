package auth

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shiftclock/shiftclock/internal/models"
	"github.com/stretchr/testify/require"
)

func TestEffective(t *testing.T) {
	self := uuid.Must(uuid.NewV7())
	other := uuid.Must(uuid.NewV7())

	tests := []struct {
		name   string
		role   models.Role
		status models.Status
		target uuid.UUID
		want   Permission
	}{
		{"active member targeting self", models.RoleMember, models.StatusActive, self, PermSelf},
		{"active member targeting other", models.RoleMember, models.StatusActive, other, PermDenied},
		{"active manager targeting self", models.RoleManager, models.StatusActive, self, PermSelf},
		{"active manager targeting other", models.RoleManager, models.StatusActive, other, PermManagerOfOrg},
		{"pending member targeting self", models.RoleMember, models.StatusPending, self, PermDenied},
		{"pending manager targeting other", models.RoleManager, models.StatusPending, other, PermDenied},
		{"rejected member targeting self", models.RoleMember, models.StatusRejected, self, PermDenied},
		{"rejected manager targeting self", models.RoleManager, models.StatusRejected, self, PermDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			identity := Identity{
				WorkerID: self,
				OrgID:    uuid.Must(uuid.NewV7()),
				Role:     tt.role,
				Status:   tt.status,
			}
			require.Equal(t, tt.want, Effective(identity, tt.target))
		})
	}
}

func TestManager(t *testing.T) {
	require.True(t, Manager(Identity{Role: models.RoleManager, Status: models.StatusActive}))
	require.False(t, Manager(Identity{Role: models.RoleMember, Status: models.StatusActive}))
	require.False(t, Manager(Identity{Role: models.RoleManager, Status: models.StatusPending}))
	require.False(t, Manager(Identity{Role: models.RoleManager, Status: models.StatusRejected}))
}

func TestPermissionString(t *testing.T) {
	require.Equal(t, "self", PermSelf.String())
	require.Equal(t, "manager-of-org", PermManagerOfOrg.String())
	require.Equal(t, "denied", PermDenied.String())
}

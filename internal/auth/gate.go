package auth

import (
	"github.com/google/uuid"
	"github.com/shiftclock/shiftclock/internal/models"
)

// Permission is the effective permission of a caller for a target worker.
// It is a closed set: every operation branches on exactly these three values
// instead of ad-hoc role string checks.
type Permission int

const (
	// PermDenied covers every case that isn't explicitly granted, including
	// pending or rejected membership regardless of role.
	PermDenied Permission = iota

	// PermSelf is granted when the caller targets their own worker record.
	PermSelf

	// PermManagerOfOrg is granted to active managers. It only authorizes
	// operations scoped to the caller's own organization; the target's
	// membership is checked by org-scoped store queries, never here.
	PermManagerOfOrg
)

func (p Permission) String() string {
	switch p {
	case PermSelf:
		return "self"
	case PermManagerOfOrg:
		return "manager-of-org"
	default:
		return "denied"
	}
}

// Effective derives the caller's permission for an operation targeting the
// given worker. Inactive callers are always denied, even for their own
// records.
func Effective(identity Identity, targetWorkerID uuid.UUID) Permission {
	if identity.Status != models.StatusActive {
		return PermDenied
	}

	if identity.WorkerID == targetWorkerID {
		return PermSelf
	}

	if identity.Role == models.RoleManager {
		return PermManagerOfOrg
	}

	return PermDenied
}

// Manager reports whether the caller is an active manager, for operations
// that are manager-only regardless of target (listings, reports, worker
// administration).
func Manager(identity Identity) bool {
	return identity.Role == models.RoleManager && identity.Status == models.StatusActive
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies what a worker is allowed to do within their organization.
type Role string

const (
	RoleMember  Role = "member"
	RoleManager Role = "manager"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	return r == RoleMember || r == RoleManager
}

// Status tracks a worker's membership state within their organization.
// Workers join as pending and are approved or rejected by a manager.
type Status string

const (
	StatusPending  Status = "pending"
	StatusActive   Status = "active"
	StatusRejected Status = "rejected"
)

// Valid reports whether the status is one of the known values.
func (s Status) Valid() bool {
	return s == StatusPending || s == StatusActive || s == StatusRejected
}

// Worker represents an identity in the system. The password hash is opaque
// to everything outside the auth service.
type Worker struct {
	WorkerID     uuid.UUID // UUIDv7
	OrgID        uuid.UUID // UUIDv7, FK to organizations
	Username     string    // unique across the system
	PasswordHash string
	Role         Role
	Status       Status
	HourlyRate   float64 // non-negative, currency units per hour, default 0

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CanActForOrg reports whether the worker is an active manager of the given
// organization.
func (w *Worker) CanActForOrg(orgID uuid.UUID) bool {
	return w.Role == RoleManager && w.Status == StatusActive && w.OrgID == orgID
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// Organization represents a tenant in the system. Every worker belongs to
// exactly one organization once their membership is active.
type Organization struct {
	OrgID         uuid.UUID // UUIDv7
	Name          string
	OwnerWorkerID *uuid.UUID // set once the creating manager is registered
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

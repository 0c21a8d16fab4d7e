package role

import (
	"time"

	"github.com/google/uuid"
)

// Role groups users under one permission set.
type Role struct {
	ID          uuid.UUID
	Name        string
	Description string
	UserCount   int // derived on read from users.role_id
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

package user

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

func (s Status) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

// User is an operator of the application. PasswordHash never leaves the service layer.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Name         string
	Status       Status
	RoleID       uuid.UUID
	RoleName     string // Loaded via JOIN
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}

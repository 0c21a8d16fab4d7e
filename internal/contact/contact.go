package contact

import (
	"time"

	"github.com/google/uuid"
)

// Kind separates the two counterparties of the ledger.
type Kind string

const (
	KindCustomer Kind = "customer"
	KindVendor   Kind = "vendor"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

func (s Status) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

// Contact is a customer or a vendor. Names are unique per kind.
type Contact struct {
	ID        uuid.UUID
	Kind      Kind
	Name      string
	Status    Status
	CreatedAt time.Time
	UpdatedAt *time.Time
}

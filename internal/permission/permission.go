package permission

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/tally/internal/apperr"
)

// Kind is one of the four capabilities a role can hold.
type Kind string

const (
	KindRead   Kind = "read"
	KindCreate Kind = "create"
	KindUpdate Kind = "update"
	KindDelete Kind = "delete"
)

// ParseKind accepts both the short form ("create") and the column-style form ("canCreate").
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "read", "canread", "can_read":
		return KindRead, nil
	case "create", "cancreate", "can_create":
		return KindCreate, nil
	case "update", "canupdate", "can_update":
		return KindUpdate, nil
	case "delete", "candelete", "can_delete":
		return KindDelete, nil
	}

	return "", fmt.Errorf("%w: unknown permission %q", apperr.ErrBadRequest, s)
}

// Set is the effective capability set of a role.
type Set struct {
	Read   bool `json:"read"`
	Create bool `json:"create"`
	Update bool `json:"update"`
	Delete bool `json:"delete"`
}

// DefaultSet is what a role gets until someone grants it more.
func DefaultSet() Set {
	return Set{Read: true}
}

// Allows reports whether the set grants k.
func (s Set) Allows(k Kind) bool {
	switch k {
	case KindRead:
		return s.Read
	case KindCreate:
		return s.Create
	case KindUpdate:
		return s.Update
	case KindDelete:
		return s.Delete
	}

	return false
}

// With returns a copy of s with k set to v.
func (s Set) With(k Kind, v bool) Set {
	switch k {
	case KindRead:
		s.Read = v
	case KindCreate:
		s.Create = v
	case KindUpdate:
		s.Update = v
	case KindDelete:
		s.Delete = v
	}

	return s
}

// Patch is a partial update of a Set. Nil fields are left alone.
type Patch struct {
	Read   *bool `json:"read,omitempty"`
	Create *bool `json:"create,omitempty"`
	Update *bool `json:"update,omitempty"`
	Delete *bool `json:"delete,omitempty"`
}

// Apply overlays the patch on base.
func (p Patch) Apply(base Set) Set {
	if p.Read != nil {
		base.Read = *p.Read
	}

	if p.Create != nil {
		base.Create = *p.Create
	}

	if p.Update != nil {
		base.Update = *p.Update
	}

	if p.Delete != nil {
		base.Delete = *p.Delete
	}

	return base
}

// RolePermission is the persisted permission row of a role. There is at most one per role.
type RolePermission struct {
	ID        uuid.UUID
	RoleID    uuid.UUID
	Set       Set
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// UserRole is the user → role join the resolver walks.
type UserRole struct {
	UserID   uuid.UUID
	RoleID   uuid.UUID
	RoleName string
	Inactive bool
}

// Effective is the resolved capability set of a user.
type Effective struct {
	UserID      uuid.UUID
	RoleID      uuid.UUID
	RoleName    string
	Role        RoleName
	Permissions Set
}

// RoleListing is one line of the permission matrix.
type RoleListing struct {
	RoleID       uuid.UUID
	RoleName     string
	Permissions  Set
	Materialized bool
}

// Package access decides whether an authenticated user may perform an operation.
//
// A Requirement has two optional gates. The role gate admits only the listed
// role names and is checked first; a user outside the set is refused whatever
// their permission flags say. The permission gate then requires one capability
// of the user's role to be enabled. A requirement with neither gate admits any
// authenticated user.
package access

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/tally/internal/apperr"
	"github.com/MrJamesThe3rd/tally/internal/permission"
)

//go:generate mockgen -source=guard.go -destination=resolver_mock.go -package=access
type Resolver interface {
	ResolveForUser(ctx context.Context, userID uuid.UUID) (*permission.Effective, error)
}

type Requirement struct {
	Roles      permission.RoleSet
	Permission *permission.Kind
}

// Need builds a permission-only requirement.
func Need(kind permission.Kind) Requirement {
	return Requirement{Permission: &kind}
}

// AdminNeed builds a requirement gated on AdminRoles and kind.
func AdminNeed(kind permission.Kind) Requirement {
	return Requirement{Roles: permission.AdminRoles, Permission: &kind}
}

func (r Requirement) empty() bool {
	return len(r.Roles) == 0 && r.Permission == nil
}

type Guard struct {
	resolver Resolver
}

func NewGuard(resolver Resolver) *Guard {
	return &Guard{resolver: resolver}
}

// Authorize returns nil when the user satisfies req and an error wrapping
// apperr.ErrForbidden when they do not. An unknown user is forbidden.
func (g *Guard) Authorize(ctx context.Context, userID uuid.UUID, req Requirement) error {
	if req.empty() {
		return nil
	}

	eff, err := g.resolver.ResolveForUser(ctx, userID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return fmt.Errorf("%w: unknown user %s", apperr.ErrForbidden, userID)
		}

		return err
	}

	if len(req.Roles) > 0 && !req.Roles.Contains(eff.Role) {
		return fmt.Errorf("%w: role %q may not perform this operation", apperr.ErrForbidden, eff.RoleName)
	}

	if req.Permission != nil && !eff.Permissions.Allows(*req.Permission) {
		return fmt.Errorf("%w: role %q lacks %s permission", apperr.ErrForbidden, eff.RoleName, *req.Permission)
	}

	return nil
}

func (g *Guard) Allowed(ctx context.Context, userID uuid.UUID, req Requirement) (bool, error) {
	err := g.Authorize(ctx, userID, req)
	if errors.Is(err, apperr.ErrForbidden) {
		return false, nil
	}

	if err != nil {
		return false, err
	}

	return true, nil
}

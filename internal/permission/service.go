package permission

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/tally/internal/apperr"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=permission
type Repository interface {
	// GetByRole returns apperr.ErrNotFound when the role has no permission row yet.
	GetByRole(ctx context.Context, roleID uuid.UUID) (*RolePermission, error)
	// CreateDefault inserts the row unless one exists and returns whatever row is stored afterwards.
	// A role that does not exist yields apperr.ErrNotFound.
	CreateDefault(ctx context.Context, roleID uuid.UUID, set Set) (*RolePermission, error)
	UpdateSet(ctx context.Context, roleID uuid.UUID, set Set) (*RolePermission, error)
	Flip(ctx context.Context, roleID uuid.UUID, kind Kind) (*RolePermission, error)

	UserRole(ctx context.Context, userID uuid.UUID) (*UserRole, error)
	List(ctx context.Context) ([]RoleListing, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Resolve returns the capability set of a role, materializing the default row on first use.
func (s *Service) Resolve(ctx context.Context, roleID uuid.UUID) (Set, error) {
	rp, err := s.ensure(ctx, roleID)
	if err != nil {
		return Set{}, err
	}

	return rp.Set, nil
}

// ResolveForUser walks user → role → permissions.
func (s *Service) ResolveForUser(ctx context.Context, userID uuid.UUID) (*Effective, error) {
	ur, err := s.repo.UserRole(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("resolving role of user %s: %w", userID, err)
	}

	if ur.Inactive {
		return nil, fmt.Errorf("%w: user %s is inactive", apperr.ErrNotFound, userID)
	}

	set, err := s.Resolve(ctx, ur.RoleID)
	if err != nil {
		return nil, err
	}

	return &Effective{
		UserID:      ur.UserID,
		RoleID:      ur.RoleID,
		RoleName:    ur.RoleName,
		Role:        ParseRoleName(ur.RoleName),
		Permissions: set,
	}, nil
}

// Toggle inverts a single capability of the role.
func (s *Service) Toggle(ctx context.Context, roleID uuid.UUID, kind Kind) (Set, error) {
	kind, err := ParseKind(string(kind))
	if err != nil {
		return Set{}, err
	}

	if _, err := s.ensure(ctx, roleID); err != nil {
		return Set{}, err
	}

	rp, err := s.repo.Flip(ctx, roleID, kind)
	if err != nil {
		return Set{}, fmt.Errorf("toggling %s on role %s: %w", kind, roleID, err)
	}

	return rp.Set, nil
}

// SetAll upserts the role's permissions. Unspecified fields take the defaults on
// first creation and keep their stored value afterwards.
func (s *Service) SetAll(ctx context.Context, roleID uuid.UUID, patch Patch) (Set, error) {
	rp, err := s.repo.GetByRole(ctx, roleID)
	if err != nil {
		if !errors.Is(err, apperr.ErrNotFound) {
			return Set{}, fmt.Errorf("getting permissions of role %s: %w", roleID, err)
		}

		created, err := s.repo.CreateDefault(ctx, roleID, patch.Apply(DefaultSet()))
		if err != nil {
			return Set{}, fmt.Errorf("creating permissions of role %s: %w", roleID, err)
		}

		return created.Set, nil
	}

	updated, err := s.repo.UpdateSet(ctx, roleID, patch.Apply(rp.Set))
	if err != nil {
		return Set{}, fmt.Errorf("updating permissions of role %s: %w", roleID, err)
	}

	return updated.Set, nil
}

// List returns the permission matrix. Roles without a row show the default set
// and are not materialized.
func (s *Service) List(ctx context.Context) ([]RoleListing, error) {
	return s.repo.List(ctx)
}

func (s *Service) ensure(ctx context.Context, roleID uuid.UUID) (*RolePermission, error) {
	rp, err := s.repo.GetByRole(ctx, roleID)
	if err == nil {
		return rp, nil
	}

	if !errors.Is(err, apperr.ErrNotFound) {
		return nil, fmt.Errorf("getting permissions of role %s: %w", roleID, err)
	}

	rp, err = s.repo.CreateDefault(ctx, roleID, DefaultSet())
	if err != nil {
		return nil, fmt.Errorf("materializing permissions of role %s: %w", roleID, err)
	}

	return rp, nil
}

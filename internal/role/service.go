package role

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/tally/internal/apperr"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=role
type Repository interface {
	CreateRole(ctx context.Context, r *Role) error
	GetRole(ctx context.Context, id uuid.UUID) (*Role, error)
	ListRoles(ctx context.Context) ([]*Role, error)
	UpdateRole(ctx context.Context, r *Role) error
	DeleteRole(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Name        string
	Description string
}

type UpdateParams struct {
	Name        *string
	Description *string
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Role, error) {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: role name is required", apperr.ErrBadRequest)
	}

	r := &Role{Name: name, Description: strings.TrimSpace(params.Description)}
	if err := s.repo.CreateRole(ctx, r); err != nil {
		return nil, err
	}

	return r, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Role, error) {
	return s.repo.GetRole(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Role, error) {
	return s.repo.ListRoles(ctx)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*Role, error) {
	r, err := s.repo.GetRole(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		name := strings.TrimSpace(*params.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: role name is required", apperr.ErrBadRequest)
		}

		r.Name = name
	}

	if params.Description != nil {
		r.Description = strings.TrimSpace(*params.Description)
	}

	if err := s.repo.UpdateRole(ctx, r); err != nil {
		return nil, err
	}

	return r, nil
}

// Delete refuses to remove a role that still has users assigned.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	r, err := s.repo.GetRole(ctx, id)
	if err != nil {
		return err
	}

	if r.UserCount > 0 {
		return fmt.Errorf("%w: role %q still has %d user(s)", apperr.ErrConflict, r.Name, r.UserCount)
	}

	return s.repo.DeleteRole(ctx, id)
}

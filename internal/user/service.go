package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/tally/internal/apperr"
	"github.com/MrJamesThe3rd/tally/internal/auth"
)

const minPasswordLength = 8

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=user
type Repository interface {
	CreateUser(ctx context.Context, u *User) error
	GetUser(ctx context.Context, id uuid.UUID) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	ListUsers(ctx context.Context, filter ListFilter) ([]*User, int, error)
	UpdateUser(ctx context.Context, u *User) error
	DeleteUser(ctx context.Context, id uuid.UUID) error

	RoleExists(ctx context.Context, roleID uuid.UUID) (bool, error)
	RoleIDByName(ctx context.Context, name string) (uuid.UUID, error)
	CountUsers(ctx context.Context) (int, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Email    string
	Password string
	Name     string
	Status   Status
	RoleID   uuid.UUID
}

// BootstrapParams describes the first account of a fresh installation.
type BootstrapParams struct {
	Email    string
	Password string
	Name     string
	RoleName string
}

type UpdateParams struct {
	Email    *string
	Password *string
	Name     *string
	Status   *Status
	RoleID   *uuid.UUID
}

type ListFilter struct {
	Search string
	Status *Status
	RoleID *uuid.UUID
	Page   int
	Limit  int
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*User, error) {
	if params.Status == "" {
		params.Status = StatusActive
	}

	if !params.Status.Valid() {
		return nil, fmt.Errorf("%w: invalid status %q", apperr.ErrBadRequest, params.Status)
	}

	if len(params.Password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", apperr.ErrBadRequest, minPasswordLength)
	}

	if err := s.checkRole(ctx, params.RoleID); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(params.Password)
	if err != nil {
		return nil, err
	}

	u := &User{
		Email:        normalizeEmail(params.Email),
		PasswordHash: hash,
		Name:         strings.TrimSpace(params.Name),
		Status:       params.Status,
		RoleID:       params.RoleID,
	}
	if err := s.repo.CreateUser(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

// Bootstrap creates the first user under the named role while the users table is
// empty. It returns nil without error once any user exists.
func (s *Service) Bootstrap(ctx context.Context, params BootstrapParams) (*User, error) {
	n, err := s.repo.CountUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting users: %w", err)
	}

	if n > 0 {
		return nil, nil
	}

	roleID, err := s.repo.RoleIDByName(ctx, params.RoleName)
	if err != nil {
		return nil, fmt.Errorf("looking up role %q: %w", params.RoleName, err)
	}

	u, err := s.Create(ctx, CreateParams{
		Email:    params.Email,
		Password: params.Password,
		Name:     params.Name,
		Status:   StatusActive,
		RoleID:   roleID,
	})
	if errors.Is(err, apperr.ErrConflict) {
		// another instance won the race
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("creating first user: %w", err)
	}

	return u, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.GetUser(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*User, int, error) {
	return s.repo.ListUsers(ctx, filter)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*User, error) {
	u, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Email != nil {
		u.Email = normalizeEmail(*params.Email)
	}

	if params.Name != nil {
		u.Name = strings.TrimSpace(*params.Name)
	}

	if params.Status != nil {
		if !params.Status.Valid() {
			return nil, fmt.Errorf("%w: invalid status %q", apperr.ErrBadRequest, *params.Status)
		}

		u.Status = *params.Status
	}

	if params.RoleID != nil {
		if err := s.checkRole(ctx, *params.RoleID); err != nil {
			return nil, err
		}

		u.RoleID = *params.RoleID
	}

	if params.Password != nil {
		if len(*params.Password) < minPasswordLength {
			return nil, fmt.Errorf("%w: password must be at least %d characters", apperr.ErrBadRequest, minPasswordLength)
		}

		hash, err := auth.HashPassword(*params.Password)
		if err != nil {
			return nil, err
		}

		u.PasswordHash = hash
	}

	if err := s.repo.UpdateUser(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteUser(ctx, id)
}

// Authenticate checks email/password credentials. Every failure mode returns the
// same Unauthorized error so callers cannot probe for registered emails.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	u, err := s.repo.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid credentials", apperr.ErrUnauthorized)
	}

	if u.Status != StatusActive || !auth.CheckPassword(u.PasswordHash, password) {
		return nil, fmt.Errorf("%w: invalid credentials", apperr.ErrUnauthorized)
	}

	return u, nil
}

func (s *Service) checkRole(ctx context.Context, roleID uuid.UUID) error {
	ok, err := s.repo.RoleExists(ctx, roleID)
	if err != nil {
		return fmt.Errorf("checking role: %w", err)
	}

	if !ok {
		return fmt.Errorf("%w: role %s does not exist", apperr.ErrBadRequest, roleID)
	}

	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

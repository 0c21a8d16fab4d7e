package contact

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/tally/internal/apperr"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=contact
type Repository interface {
	CreateContact(ctx context.Context, c *Contact) error
	GetContact(ctx context.Context, kind Kind, id uuid.UUID) (*Contact, error)
	ListContacts(ctx context.Context, kind Kind, filter ListFilter) ([]*Contact, int, error)
	UpdateContact(ctx context.Context, c *Contact) error
	DeleteContact(ctx context.Context, kind Kind, id uuid.UUID) error
}

// Invalidator is told about every contact write, since reports group by contact name.
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

// Service manages one kind of contact; the API wires one for customers and one for vendors.
type Service struct {
	repo        Repository
	kind        Kind
	invalidator Invalidator
}

type Option func(*Service)

func WithInvalidator(inv Invalidator) Option {
	return func(s *Service) { s.invalidator = inv }
}

func NewService(repo Repository, kind Kind, opts ...Option) *Service {
	s := &Service{repo: repo, kind: kind}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Service) Kind() Kind {
	return s.kind
}

type CreateParams struct {
	Name   string
	Status Status
}

type UpdateParams struct {
	Name   *string
	Status *Status
}

type ListFilter struct {
	Search string
	Status *Status
	Page   int
	Limit  int
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Contact, error) {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: %s name is required", apperr.ErrBadRequest, s.kind)
	}

	if params.Status == "" {
		params.Status = StatusActive
	}

	if !params.Status.Valid() {
		return nil, fmt.Errorf("%w: invalid status %q", apperr.ErrBadRequest, params.Status)
	}

	c := &Contact{Kind: s.kind, Name: name, Status: params.Status}
	if err := s.repo.CreateContact(ctx, c); err != nil {
		return nil, err
	}

	s.invalidate(ctx)

	return c, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Contact, error) {
	return s.repo.GetContact(ctx, s.kind, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Contact, int, error) {
	return s.repo.ListContacts(ctx, s.kind, filter)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*Contact, error) {
	c, err := s.repo.GetContact(ctx, s.kind, id)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		name := strings.TrimSpace(*params.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: %s name is required", apperr.ErrBadRequest, s.kind)
		}

		c.Name = name
	}

	if params.Status != nil {
		if !params.Status.Valid() {
			return nil, fmt.Errorf("%w: invalid status %q", apperr.ErrBadRequest, *params.Status)
		}

		c.Status = *params.Status
	}

	if err := s.repo.UpdateContact(ctx, c); err != nil {
		return nil, err
	}

	s.invalidate(ctx)

	return c, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteContact(ctx, s.kind, id); err != nil {
		return err
	}

	s.invalidate(ctx)

	return nil
}

func (s *Service) invalidate(ctx context.Context) {
	if s.invalidator == nil {
		return
	}

	if err := s.invalidator.Invalidate(ctx); err != nil {
		slog.Warn("failed to invalidate report cache", "kind", s.kind, "error", err)
	}
}

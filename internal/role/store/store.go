package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/tally/internal/apperr"
	"github.com/MrJamesThe3rd/tally/internal/database"
	"github.com/MrJamesThe3rd/tally/internal/role"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

// Expected column order: id, name, description, user_count, created_at, updated_at
func scanRole(s scanner) (*role.Role, error) {
	var r role.Role
	if err := s.Scan(&r.ID, &r.Name, &r.Description, &r.UserCount, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return nil, err
	}

	return &r, nil
}

const selectRoleColumns = `
	r.id, r.name, r.description,
	(SELECT COUNT(*) FROM users u WHERE u.role_id = r.id) AS user_count,
	r.created_at, r.updated_at
`

func (s *Store) CreateRole(ctx context.Context, r *role.Role) error {
	query := `
		INSERT INTO roles (name, description, created_at)
		VALUES ($1, $2, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query, r.Name, r.Description).Scan(&r.ID, &r.CreatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return fmt.Errorf("%w: role %q already exists", apperr.ErrConflict, r.Name)
		}

		return fmt.Errorf("creating role: %w", err)
	}

	return nil
}

func (s *Store) GetRole(ctx context.Context, id uuid.UUID) (*role.Role, error) {
	query := `SELECT ` + selectRoleColumns + ` FROM roles r WHERE r.id = $1`

	r, err := scanRole(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: role %s", apperr.ErrNotFound, id)
		}

		return nil, fmt.Errorf("getting role: %w", err)
	}

	return r, nil
}

func (s *Store) ListRoles(ctx context.Context) ([]*role.Role, error) {
	query := `SELECT ` + selectRoleColumns + ` FROM roles r ORDER BY r.name ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing roles: %w", err)
	}
	defer rows.Close()

	var roles []*role.Role

	for rows.Next() {
		r, err := scanRole(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning role: %w", err)
		}

		roles = append(roles, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating roles: %w", err)
	}

	return roles, nil
}

func (s *Store) UpdateRole(ctx context.Context, r *role.Role) error {
	query := `
		UPDATE roles
		SET name = $1, description = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING updated_at
	`

	err := s.db.QueryRowContext(ctx, query, r.Name, r.Description, r.ID).Scan(&r.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: role %s", apperr.ErrNotFound, r.ID)
		}

		if database.IsUniqueViolation(err) {
			return fmt.Errorf("%w: role %q already exists", apperr.ErrConflict, r.Name)
		}

		return fmt.Errorf("updating role: %w", err)
	}

	return nil
}

// DeleteRole leans on the users.role_id foreign key: a user assigned between the
// service's count check and this statement makes the delete fail with Conflict.
func (s *Store) DeleteRole(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM roles WHERE id = $1`, id)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return fmt.Errorf("%w: role %s still has users", apperr.ErrConflict, id)
		}

		return fmt.Errorf("deleting role: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting role: %w", err)
	}

	if n == 0 {
		return fmt.Errorf("%w: role %s", apperr.ErrNotFound, id)
	}

	return nil
}

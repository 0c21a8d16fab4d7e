package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/tally/internal/apperr"
	"github.com/MrJamesThe3rd/tally/internal/database"
	"github.com/MrJamesThe3rd/tally/internal/pagination"
	"github.com/MrJamesThe3rd/tally/internal/user"
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

// Expected column order: id, email, password_hash, name, status, role_id, role_name, created_at, updated_at
func scanUser(s scanner) (*user.User, error) {
	var u user.User

	var status string

	if err := s.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Name, &status, &u.RoleID, &u.RoleName,
		&u.CreatedAt, &u.UpdatedAt,
	); err != nil {
		return nil, err
	}

	u.Status = user.Status(status)

	return &u, nil
}

const selectUserColumns = `
	u.id, u.email, u.password_hash, u.name, u.status, u.role_id, r.name AS role_name,
	u.created_at, u.updated_at
`

func (s *Store) CreateUser(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (email, password_hash, name, status, role_id, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at, (SELECT name FROM roles WHERE id = $5)
	`

	err := s.db.QueryRowContext(ctx, query, u.Email, u.PasswordHash, u.Name, u.Status, u.RoleID).
		Scan(&u.ID, &u.CreatedAt, &u.RoleName)
	if err != nil {
		return mapWriteError(err, u)
	}

	return nil
}

func (s *Store) GetUser(ctx context.Context, id uuid.UUID) (*user.User, error) {
	query := `SELECT ` + selectUserColumns + `
		FROM users u
		JOIN roles r ON r.id = u.role_id
		WHERE u.id = $1`

	u, err := scanUser(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: user %s", apperr.ErrNotFound, id)
		}

		return nil, fmt.Errorf("getting user: %w", err)
	}

	return u, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*user.User, error) {
	query := `SELECT ` + selectUserColumns + `
		FROM users u
		JOIN roles r ON r.id = u.role_id
		WHERE u.email = $1`

	u, err := scanUser(s.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: user %s", apperr.ErrNotFound, email)
		}

		return nil, fmt.Errorf("getting user by email: %w", err)
	}

	return u, nil
}

func (s *Store) ListUsers(ctx context.Context, filter user.ListFilter) ([]*user.User, int, error) {
	where := ` WHERE 1 = 1`

	var args []any

	argIdx := 1

	if filter.Search != "" {
		where += fmt.Sprintf(" AND (u.name ILIKE $%d OR u.email ILIKE $%d)", argIdx, argIdx)

		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}

	if filter.Status != nil {
		where += fmt.Sprintf(" AND u.status = $%d", argIdx)

		args = append(args, *filter.Status)
		argIdx++
	}

	if filter.RoleID != nil {
		where += fmt.Sprintf(" AND u.role_id = $%d", argIdx)

		args = append(args, *filter.RoleID)
		argIdx++
	}

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users u`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting users: %w", err)
	}

	page, limit := pagination.Normalize(filter.Page, filter.Limit)
	query := `SELECT ` + selectUserColumns + `
		FROM users u
		JOIN roles r ON r.id = u.role_id` + where +
		fmt.Sprintf(" ORDER BY u.created_at DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)

	args = append(args, limit, pagination.Offset(page, limit))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	var users []*user.User

	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scanning user: %w", err)
		}

		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating users: %w", err)
	}

	return users, total, nil
}

func (s *Store) UpdateUser(ctx context.Context, u *user.User) error {
	query := `
		UPDATE users
		SET email = $1, password_hash = $2, name = $3, status = $4, role_id = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING updated_at, (SELECT name FROM roles WHERE id = $5)
	`

	err := s.db.QueryRowContext(ctx, query, u.Email, u.PasswordHash, u.Name, u.Status, u.RoleID, u.ID).
		Scan(&u.UpdatedAt, &u.RoleName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: user %s", apperr.ErrNotFound, u.ID)
		}

		return mapWriteError(err, u)
	}

	return nil
}

func (s *Store) DeleteUser(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}

	if n == 0 {
		return fmt.Errorf("%w: user %s", apperr.ErrNotFound, id)
	}

	return nil
}

func (s *Store) RoleExists(ctx context.Context, roleID uuid.UUID) (bool, error) {
	var exists bool
	if err := s.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM roles WHERE id = $1)`, roleID).Scan(&exists); err != nil {
		return false, fmt.Errorf("checking role: %w", err)
	}

	return exists, nil
}

func (s *Store) RoleIDByName(ctx context.Context, name string) (uuid.UUID, error) {
	var id uuid.UUID

	err := s.db.QueryRowContext(ctx, `SELECT id FROM roles WHERE LOWER(name) = LOWER($1)`, name).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return uuid.Nil, fmt.Errorf("%w: role %q", apperr.ErrNotFound, name)
		}

		return uuid.Nil, fmt.Errorf("getting role by name: %w", err)
	}

	return id, nil
}

func (s *Store) CountUsers(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting users: %w", err)
	}

	return n, nil
}

func mapWriteError(err error, u *user.User) error {
	switch {
	case database.IsUniqueViolation(err):
		return fmt.Errorf("%w: email %q is already registered", apperr.ErrConflict, u.Email)
	case database.IsForeignKeyViolation(err):
		return fmt.Errorf("%w: role %s does not exist", apperr.ErrBadRequest, u.RoleID)
	default:
		return fmt.Errorf("saving user: %w", err)
	}
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/tally/internal/apperr"
	"github.com/MrJamesThe3rd/tally/internal/database"
	"github.com/MrJamesThe3rd/tally/internal/permission"
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

const selectColumns = `id, role_id, can_read, can_create, can_update, can_delete, created_at, updated_at`

func scanRolePermission(s scanner) (*permission.RolePermission, error) {
	var rp permission.RolePermission

	if err := s.Scan(
		&rp.ID, &rp.RoleID,
		&rp.Set.Read, &rp.Set.Create, &rp.Set.Update, &rp.Set.Delete,
		&rp.CreatedAt, &rp.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &rp, nil
}

func (s *Store) GetByRole(ctx context.Context, roleID uuid.UUID) (*permission.RolePermission, error) {
	query := `SELECT ` + selectColumns + ` FROM role_permissions WHERE role_id = $1`

	rp, err := scanRolePermission(s.db.QueryRowContext(ctx, query, roleID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: permissions of role %s", apperr.ErrNotFound, roleID)
		}

		return nil, fmt.Errorf("getting role permissions: %w", err)
	}

	return rp, nil
}

// CreateDefault relies on the unique role_id constraint: two concurrent first
// calls both succeed and both read back the single stored row.
func (s *Store) CreateDefault(ctx context.Context, roleID uuid.UUID, set permission.Set) (*permission.RolePermission, error) {
	query := `
		INSERT INTO role_permissions (role_id, can_read, can_create, can_update, can_delete, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (role_id) DO NOTHING
	`

	if _, err := s.db.ExecContext(ctx, query, roleID, set.Read, set.Create, set.Update, set.Delete); err != nil {
		if database.IsForeignKeyViolation(err) {
			return nil, fmt.Errorf("%w: role %s", apperr.ErrNotFound, roleID)
		}

		return nil, fmt.Errorf("creating role permissions: %w", err)
	}

	return s.GetByRole(ctx, roleID)
}

func (s *Store) UpdateSet(ctx context.Context, roleID uuid.UUID, set permission.Set) (*permission.RolePermission, error) {
	query := `
		UPDATE role_permissions
		SET can_read = $1, can_create = $2, can_update = $3, can_delete = $4, updated_at = NOW()
		WHERE role_id = $5
		RETURNING ` + selectColumns

	rp, err := scanRolePermission(s.db.QueryRowContext(ctx, query, set.Read, set.Create, set.Update, set.Delete, roleID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: permissions of role %s", apperr.ErrNotFound, roleID)
		}

		return nil, fmt.Errorf("updating role permissions: %w", err)
	}

	return rp, nil
}

var kindColumns = map[permission.Kind]string{
	permission.KindRead:   "can_read",
	permission.KindCreate: "can_create",
	permission.KindUpdate: "can_update",
	permission.KindDelete: "can_delete",
}

// Flip negates one column in place so concurrent toggles never lose an update.
func (s *Store) Flip(ctx context.Context, roleID uuid.UUID, kind permission.Kind) (*permission.RolePermission, error) {
	col, ok := kindColumns[kind]
	if !ok {
		return nil, fmt.Errorf("%w: unknown permission %q", apperr.ErrBadRequest, kind)
	}

	query := fmt.Sprintf(`
		UPDATE role_permissions
		SET %[1]s = NOT %[1]s, updated_at = NOW()
		WHERE role_id = $1
		RETURNING %[2]s`, col, selectColumns)

	rp, err := scanRolePermission(s.db.QueryRowContext(ctx, query, roleID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: permissions of role %s", apperr.ErrNotFound, roleID)
		}

		return nil, fmt.Errorf("flipping role permission: %w", err)
	}

	return rp, nil
}

func (s *Store) UserRole(ctx context.Context, userID uuid.UUID) (*permission.UserRole, error) {
	query := `
		SELECT u.id, r.id, r.name, u.status <> 'active'
		FROM users u
		JOIN roles r ON r.id = u.role_id
		WHERE u.id = $1
	`

	var ur permission.UserRole

	err := s.db.QueryRowContext(ctx, query, userID).Scan(&ur.UserID, &ur.RoleID, &ur.RoleName, &ur.Inactive)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: user %s", apperr.ErrNotFound, userID)
		}

		return nil, fmt.Errorf("getting user role: %w", err)
	}

	return &ur, nil
}

func (s *Store) List(ctx context.Context) ([]permission.RoleListing, error) {
	query := `
		SELECT r.id, r.name,
			COALESCE(p.can_read, TRUE), COALESCE(p.can_create, FALSE),
			COALESCE(p.can_update, FALSE), COALESCE(p.can_delete, FALSE),
			p.id IS NOT NULL
		FROM roles r
		LEFT JOIN role_permissions p ON p.role_id = r.id
		ORDER BY r.name ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing role permissions: %w", err)
	}
	defer rows.Close()

	var out []permission.RoleListing

	for rows.Next() {
		var l permission.RoleListing
		if err := rows.Scan(
			&l.RoleID, &l.RoleName,
			&l.Permissions.Read, &l.Permissions.Create, &l.Permissions.Update, &l.Permissions.Delete,
			&l.Materialized,
		); err != nil {
			return nil, fmt.Errorf("scanning role permissions: %w", err)
		}

		out = append(out, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating role permissions: %w", err)
	}

	return out, nil
}

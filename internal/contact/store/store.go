package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/tally/internal/apperr"
	"github.com/MrJamesThe3rd/tally/internal/contact"
	"github.com/MrJamesThe3rd/tally/internal/database"
	"github.com/MrJamesThe3rd/tally/internal/pagination"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// table returns the backing table of a kind. Only these two literals ever reach SQL.
func table(kind contact.Kind) (string, error) {
	switch kind {
	case contact.KindCustomer:
		return "customers", nil
	case contact.KindVendor:
		return "vendors", nil
	}

	return "", fmt.Errorf("unknown contact kind %q", kind)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanContact(s scanner, kind contact.Kind) (*contact.Contact, error) {
	c := contact.Contact{Kind: kind}

	var status string
	if err := s.Scan(&c.ID, &c.Name, &status, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}

	c.Status = contact.Status(status)

	return &c, nil
}

const selectContactColumns = `id, name, status, created_at, updated_at`

func (s *Store) CreateContact(ctx context.Context, c *contact.Contact) error {
	tbl, err := table(c.Kind)
	if err != nil {
		return err
	}

	query := `INSERT INTO ` + tbl + ` (name, status, created_at)
		VALUES ($1, $2, NOW())
		RETURNING id, created_at`

	if err := s.db.QueryRowContext(ctx, query, c.Name, c.Status).Scan(&c.ID, &c.CreatedAt); err != nil {
		if database.IsUniqueViolation(err) {
			return fmt.Errorf("%w: %s %q already exists", apperr.ErrConflict, c.Kind, c.Name)
		}

		return fmt.Errorf("creating %s: %w", c.Kind, err)
	}

	return nil
}

func (s *Store) GetContact(ctx context.Context, kind contact.Kind, id uuid.UUID) (*contact.Contact, error) {
	tbl, err := table(kind)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + selectContactColumns + ` FROM ` + tbl + ` WHERE id = $1`

	c, err := scanContact(s.db.QueryRowContext(ctx, query, id), kind)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s %s", apperr.ErrNotFound, kind, id)
		}

		return nil, fmt.Errorf("getting %s: %w", kind, err)
	}

	return c, nil
}

func (s *Store) ListContacts(ctx context.Context, kind contact.Kind, filter contact.ListFilter) ([]*contact.Contact, int, error) {
	tbl, err := table(kind)
	if err != nil {
		return nil, 0, err
	}

	where := ` WHERE 1 = 1`

	var args []any

	argIdx := 1

	if filter.Search != "" {
		where += fmt.Sprintf(" AND name ILIKE $%d", argIdx)

		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}

	if filter.Status != nil {
		where += fmt.Sprintf(" AND status = $%d", argIdx)

		args = append(args, *filter.Status)
		argIdx++
	}

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+tbl+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting %ss: %w", kind, err)
	}

	page, limit := pagination.Normalize(filter.Page, filter.Limit)
	query := `SELECT ` + selectContactColumns + ` FROM ` + tbl + where +
		fmt.Sprintf(" ORDER BY name ASC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)

	args = append(args, limit, pagination.Offset(page, limit))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("listing %ss: %w", kind, err)
	}
	defer rows.Close()

	var out []*contact.Contact

	for rows.Next() {
		c, err := scanContact(rows, kind)
		if err != nil {
			return nil, 0, fmt.Errorf("scanning %s: %w", kind, err)
		}

		out = append(out, c)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating %ss: %w", kind, err)
	}

	return out, total, nil
}

func (s *Store) UpdateContact(ctx context.Context, c *contact.Contact) error {
	tbl, err := table(c.Kind)
	if err != nil {
		return err
	}

	query := `UPDATE ` + tbl + `
		SET name = $1, status = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING updated_at`

	if err := s.db.QueryRowContext(ctx, query, c.Name, c.Status, c.ID).Scan(&c.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: %s %s", apperr.ErrNotFound, c.Kind, c.ID)
		}

		if database.IsUniqueViolation(err) {
			return fmt.Errorf("%w: %s %q already exists", apperr.ErrConflict, c.Kind, c.Name)
		}

		return fmt.Errorf("updating %s: %w", c.Kind, err)
	}

	return nil
}

// DeleteContact removes the row physically. Any transaction, soft-deleted or not,
// still references it through a foreign key and blocks the delete.
func (s *Store) DeleteContact(ctx context.Context, kind contact.Kind, id uuid.UUID) error {
	tbl, err := table(kind)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM `+tbl+` WHERE id = $1`, id)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return fmt.Errorf("%w: %s %s has transactions", apperr.ErrConflict, kind, id)
		}

		return fmt.Errorf("deleting %s: %w", kind, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting %s: %w", kind, err)
	}

	if n == 0 {
		return fmt.Errorf("%w: %s %s", apperr.ErrNotFound, kind, id)
	}

	return nil
}

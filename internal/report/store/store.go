package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MrJamesThe3rd/tally/internal/report"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Amounts are coalesced so a NULL never reaches the builders.
const selectEntryColumns = `
	t.id, t.transaction_type, COALESCE(t.customer_id, t.vendor_id), COALESCE(c.name, v.name, ''),
	t.item_purchased, COALESCE(t.quantity, 0), t.reference_number,
	COALESCE(t.price_ngn, 0), COALESCE(t.price_usd, 0), COALESCE(t.total_ngn, 0), COALESCE(t.total_usd, 0),
	COALESCE(t.amount_paid, 0), COALESCE(t.outstanding_balance, 0), t.payment_status,
	t.transaction_date, t.created_at, t.deleted_at
`

const fromEntries = `
	FROM transactions t
	LEFT JOIN customers c ON t.customer_id = c.id
	LEFT JOIN vendors v ON t.vendor_id = v.id
	WHERE t.deleted_at IS NULL`

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (report.Entry, error) {
	var e report.Entry

	var typeStr, statusStr string

	err := s.Scan(
		&e.ID, &typeStr, &e.CounterpartyID, &e.CounterpartyName,
		&e.ItemPurchased, &e.Quantity, &e.ReferenceNumber,
		&e.PriceNGN, &e.PriceUSD, &e.TotalNGN, &e.TotalUSD,
		&e.AmountPaid, &e.OutstandingBalance, &statusStr,
		&e.TransactionDate, &e.CreatedAt, &e.DeletedAt,
	)

	e.Type = transaction.Type(typeStr)
	e.PaymentStatus = transaction.PaymentStatus(statusStr)

	return e, err
}

// rangeClause appends the bounds of r to where as transaction_date predicates.
func rangeClause(where string, args []any, r report.Range) (string, []any) {
	if r.From != nil {
		args = append(args, *r.From)
		where += fmt.Sprintf(" AND t.transaction_date >= $%d", len(args))
	}

	if r.To != nil {
		args = append(args, *r.To)
		where += fmt.Sprintf(" AND t.transaction_date < $%d", len(args))
	}

	return where, args
}

func (s *Store) CountContacts(ctx context.Context) (int, int, error) {
	var customers, vendors int

	query := `SELECT (SELECT COUNT(*) FROM customers), (SELECT COUNT(*) FROM vendors)`
	if err := s.db.QueryRowContext(ctx, query).Scan(&customers, &vendors); err != nil {
		return 0, 0, fmt.Errorf("counting contacts: %w", err)
	}

	return customers, vendors, nil
}

func (s *Store) CountTransactions(ctx context.Context, typ transaction.Type, r report.Range) (int, error) {
	where, args := rangeClause(` WHERE t.deleted_at IS NULL AND t.transaction_type = $1`, []any{typ}, r)

	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions t`+where, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting %s transactions: %w", typ, err)
	}

	return n, nil
}

func (s *Store) Entries(ctx context.Context, filter report.EntryFilter) ([]report.Entry, error) {
	where := fromEntries

	var args []any

	if filter.Type != nil {
		args = append(args, *filter.Type)
		where += fmt.Sprintf(" AND t.transaction_type = $%d", len(args))
	}

	where, args = rangeClause(where, args, filter.Range)

	return s.queryEntries(ctx, `SELECT `+selectEntryColumns+where+` ORDER BY t.transaction_date ASC`, args...)
}

func (s *Store) RecentEntries(ctx context.Context, typ transaction.Type, limit int) ([]report.Entry, error) {
	query := `SELECT ` + selectEntryColumns + fromEntries + `
		AND t.transaction_type = $1
		ORDER BY t.transaction_date DESC, t.created_at DESC, t.id DESC
		LIMIT $2`

	return s.queryEntries(ctx, query, typ, limit)
}

func (s *Store) queryEntries(ctx context.Context, query string, args ...any) ([]report.Entry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying ledger entries: %w", err)
	}
	defer rows.Close()

	var entries []report.Entry

	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning ledger entry: %w", err)
		}

		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating ledger entries: %w", err)
	}

	return entries, nil
}

func (s *Store) Customers(ctx context.Context, status string) ([]report.Party, error) {
	query := `SELECT id, name, status FROM customers`

	var args []any
	if status != "" {
		query += ` WHERE status = $1`

		args = append(args, status)
	}

	query += ` ORDER BY name ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing customers: %w", err)
	}
	defer rows.Close()

	var parties []report.Party

	for rows.Next() {
		var p report.Party
		if err := rows.Scan(&p.ID, &p.Name, &p.Status); err != nil {
			return nil, fmt.Errorf("scanning customer: %w", err)
		}

		parties = append(parties, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating customers: %w", err)
	}

	return parties, nil
}

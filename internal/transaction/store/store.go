package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/apperr"
	"github.com/MrJamesThe3rd/tally/internal/pagination"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanTransaction expects the column order of selectTransactionColumns.
func scanTransaction(s scanner) (*transaction.Transaction, error) {
	var tx transaction.Transaction

	var typeStr, statusStr string

	var party sql.NullString

	if err := s.Scan(
		&tx.ID, &typeStr, &tx.CustomerID, &tx.VendorID, &party,
		&tx.ItemPurchased, &tx.Quantity, &tx.TransactionDate, &tx.ReferenceNumber,
		&tx.PriceNGN, &tx.PriceUSD, &tx.ExchangeRate, &tx.OtherExpensesNGN, &tx.OtherExpensesUSD,
		&tx.TotalNGN, &tx.TotalUSD, &tx.AmountPaid, &tx.OutstandingBalance, &statusStr,
		&tx.CreatedBy, &tx.UpdatedBy, &tx.CreatedAt, &tx.UpdatedAt, &tx.DeletedAt,
	); err != nil {
		return nil, err
	}

	tx.Type = transaction.Type(typeStr)
	tx.PaymentStatus = transaction.PaymentStatus(statusStr)
	tx.CounterpartyName = party.String

	return &tx, nil
}

const selectTransactionColumns = `
	t.id, t.transaction_type, t.customer_id, t.vendor_id, COALESCE(c.name, v.name) AS party,
	t.item_purchased, t.quantity, t.transaction_date, t.reference_number,
	t.price_ngn, t.price_usd, t.exchange_rate, t.other_expenses_ngn, t.other_expenses_usd,
	t.total_ngn, t.total_usd, t.amount_paid, t.outstanding_balance, t.payment_status,
	t.created_by, t.updated_by, t.created_at, t.updated_at, t.deleted_at
`

const fromTransactions = `
	FROM transactions t
	LEFT JOIN customers c ON t.customer_id = c.id
	LEFT JOIN vendors v ON t.vendor_id = v.id`

const insertTransaction = `
	INSERT INTO transactions (
		transaction_type, customer_id, vendor_id, item_purchased, quantity, transaction_date, reference_number,
		price_ngn, price_usd, exchange_rate, other_expenses_ngn, other_expenses_usd,
		total_ngn, total_usd, amount_paid, outstanding_balance, payment_status, created_by, updated_by, created_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, NOW())
	RETURNING id, created_at
`

func insert(ctx context.Context, q querier, tx *transaction.Transaction) error {
	return q.QueryRowContext(ctx, insertTransaction,
		tx.Type, tx.CustomerID, tx.VendorID, tx.ItemPurchased, tx.Quantity, tx.TransactionDate, tx.ReferenceNumber,
		tx.PriceNGN, tx.PriceUSD, tx.ExchangeRate, tx.OtherExpensesNGN, tx.OtherExpensesUSD,
		tx.TotalNGN, tx.TotalUSD, tx.AmountPaid, tx.OutstandingBalance, tx.PaymentStatus, tx.CreatedBy, tx.UpdatedBy,
	).Scan(&tx.ID, &tx.CreatedAt)
}

func counterpartyTable(typ transaction.Type) (string, error) {
	switch typ {
	case transaction.TypeCustomer:
		return "customers", nil
	case transaction.TypeVendor:
		return "vendors", nil
	}

	return "", fmt.Errorf("%w: unknown transaction type %q", apperr.ErrBadRequest, typ)
}

func (s *Store) CounterpartyExists(ctx context.Context, typ transaction.Type, id uuid.UUID) (bool, error) {
	tbl, err := counterpartyTable(typ)
	if err != nil {
		return false, err
	}

	var exists bool
	if err := s.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM `+tbl+` WHERE id = $1)`, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("checking %s: %w", typ, err)
	}

	return exists, nil
}

func (s *Store) FindCustomerByName(ctx context.Context, name string) (uuid.UUID, error) {
	return findByName(ctx, s.db, transaction.TypeCustomer, name)
}

func findByName(ctx context.Context, q querier, typ transaction.Type, name string) (uuid.UUID, error) {
	tbl, err := counterpartyTable(typ)
	if err != nil {
		return uuid.Nil, err
	}

	var id uuid.UUID
	if err := q.QueryRowContext(ctx, `SELECT id FROM `+tbl+` WHERE name = $1`, name).Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return uuid.Nil, fmt.Errorf("%w: %s %q", apperr.ErrNotFound, typ, name)
		}

		return uuid.Nil, fmt.Errorf("finding %s by name: %w", typ, err)
	}

	return id, nil
}

func (s *Store) CreateTransaction(ctx context.Context, tx *transaction.Transaction) error {
	if err := insert(ctx, s.db, tx); err != nil {
		return fmt.Errorf("creating transaction: %w", err)
	}

	return nil
}

func (s *Store) GetTransaction(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + fromTransactions + `
		WHERE t.id = $1 AND t.deleted_at IS NULL`

	tx, err := scanTransaction(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: transaction %s", apperr.ErrNotFound, id)
		}

		return nil, fmt.Errorf("getting transaction: %w", err)
	}

	return tx, nil
}

func (s *Store) ListTransactions(ctx context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, int, error) {
	where := ` WHERE t.deleted_at IS NULL`

	var args []any

	argIdx := 1

	if filter.Type != nil {
		where += fmt.Sprintf(" AND t.transaction_type = $%d", argIdx)

		args = append(args, *filter.Type)
		argIdx++
	}

	if filter.CustomerID != nil {
		where += fmt.Sprintf(" AND t.customer_id = $%d", argIdx)

		args = append(args, *filter.CustomerID)
		argIdx++
	}

	if filter.VendorID != nil {
		where += fmt.Sprintf(" AND t.vendor_id = $%d", argIdx)

		args = append(args, *filter.VendorID)
		argIdx++
	}

	if filter.PaymentStatus != nil {
		where += fmt.Sprintf(" AND t.payment_status = $%d", argIdx)

		args = append(args, *filter.PaymentStatus)
		argIdx++
	}

	if filter.StartDate != nil {
		where += fmt.Sprintf(" AND t.transaction_date >= $%d", argIdx)

		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil {
		where += fmt.Sprintf(" AND t.transaction_date < $%d", argIdx)

		args = append(args, *filter.EndDate)
		argIdx++
	}

	if filter.Search != "" {
		where += fmt.Sprintf(" AND (t.item_purchased ILIKE $%d OR t.reference_number ILIKE $%d)", argIdx, argIdx)

		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions t`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting transactions: %w", err)
	}

	page, limit := pagination.Normalize(filter.Page, filter.Limit)
	query := `SELECT ` + selectTransactionColumns + fromTransactions + where +
		fmt.Sprintf(" ORDER BY t.transaction_date DESC, t.created_at DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)

	args = append(args, limit, pagination.Offset(page, limit))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var txs []*transaction.Transaction

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating transactions: %w", err)
	}

	return txs, total, nil
}

func (s *Store) UpdateTransaction(ctx context.Context, tx *transaction.Transaction) error {
	query := `
		UPDATE transactions
		SET item_purchased = $1, quantity = $2, transaction_date = $3, reference_number = $4,
			price_ngn = $5, price_usd = $6, exchange_rate = $7, other_expenses_ngn = $8, other_expenses_usd = $9,
			total_ngn = $10, total_usd = $11, amount_paid = $12, outstanding_balance = $13, payment_status = $14,
			updated_by = $15, updated_at = NOW()
		WHERE id = $16 AND deleted_at IS NULL
		RETURNING updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		tx.ItemPurchased, tx.Quantity, tx.TransactionDate, tx.ReferenceNumber,
		tx.PriceNGN, tx.PriceUSD, tx.ExchangeRate, tx.OtherExpensesNGN, tx.OtherExpensesUSD,
		tx.TotalNGN, tx.TotalUSD, tx.AmountPaid, tx.OutstandingBalance, tx.PaymentStatus,
		tx.UpdatedBy, tx.ID,
	).Scan(&tx.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: transaction %s", apperr.ErrNotFound, tx.ID)
		}

		return fmt.Errorf("updating transaction: %w", err)
	}

	return nil
}

func (s *Store) SoftDeleteTransaction(ctx context.Context, id uuid.UUID, actor *uuid.UUID) error {
	query := `
		UPDATE transactions
		SET deleted_at = NOW(), updated_by = COALESCE($2, updated_by)
		WHERE id = $1 AND deleted_at IS NULL
	`

	res, err := s.db.ExecContext(ctx, query, id, actor)
	if err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}

	if n == 0 {
		return fmt.Errorf("%w: transaction %s", apperr.ErrNotFound, id)
	}

	return nil
}

func (s *Store) SumOutstanding(ctx context.Context, customerID uuid.UUID) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(outstanding_balance), 0)
		FROM transactions
		WHERE customer_id = $1 AND deleted_at IS NULL
	`

	var sum decimal.Decimal
	if err := s.db.QueryRowContext(ctx, query, customerID).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("summing outstanding balance: %w", err)
	}

	return sum, nil
}

// LatestForCustomer returns nil without error when the customer has no live rows.
func (s *Store) LatestForCustomer(ctx context.Context, customerID uuid.UUID) (*transaction.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + fromTransactions + `
		WHERE t.customer_id = $1 AND t.deleted_at IS NULL
		ORDER BY t.transaction_date DESC, t.created_at DESC, t.id DESC
		LIMIT 1`

	tx, err := scanTransaction(s.db.QueryRowContext(ctx, query, customerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("getting latest transaction: %w", err)
	}

	return tx, nil
}

type importTx struct {
	tx *sql.Tx
}

func (s *Store) BeginImport(ctx context.Context) (transaction.ImportTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning import tx: %w", err)
	}

	return &importTx{tx: dbTx}, nil
}

func (itx *importTx) Commit() error   { return itx.tx.Commit() }
func (itx *importTx) Rollback() error { return itx.tx.Rollback() }

func (itx *importTx) ResolveCounterparty(ctx context.Context, typ transaction.Type, name string) (uuid.UUID, error) {
	return findByName(ctx, itx.tx, typ, name)
}

func (itx *importTx) CreateTransactions(ctx context.Context, txs []*transaction.Transaction) error {
	for _, tx := range txs {
		if err := insert(ctx, itx.tx, tx); err != nil {
			return fmt.Errorf("creating transaction %s: %w", tx.ReferenceNumber, err)
		}
	}

	return nil
}

package transaction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/apperr"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	CounterpartyExists(ctx context.Context, typ Type, id uuid.UUID) (bool, error)
	FindCustomerByName(ctx context.Context, name string) (uuid.UUID, error)

	CreateTransaction(ctx context.Context, tx *Transaction) error
	GetTransaction(ctx context.Context, id uuid.UUID) (*Transaction, error)
	UpdateTransaction(ctx context.Context, tx *Transaction) error
	SoftDeleteTransaction(ctx context.Context, id uuid.UUID, actor *uuid.UUID) error
	ListTransactions(ctx context.Context, filter ListFilter) ([]*Transaction, int, error)

	SumOutstanding(ctx context.Context, customerID uuid.UUID) (decimal.Decimal, error)
	LatestForCustomer(ctx context.Context, customerID uuid.UUID) (*Transaction, error)

	BeginImport(ctx context.Context) (ImportTx, error)
}

// ImportTx creates a batch of rows inside one database transaction.
type ImportTx interface {
	ResolveCounterparty(ctx context.Context, typ Type, name string) (uuid.UUID, error)
	CreateTransactions(ctx context.Context, txs []*Transaction) error
	Commit() error
	Rollback() error
}

// Invalidator is told about every ledger write. The report cache implements it.
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

type Service struct {
	repo        Repository
	invalidator Invalidator
	now         func() time.Time
}

type Option func(*Service)

func WithInvalidator(inv Invalidator) Option {
	return func(s *Service) { s.invalidator = inv }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{repo: repo, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// CreateParams carries client-supplied fields. TransactionDate is raw text and goes
// through NormalizeDate. Nil Quantity means 1; nil OutstandingBalance is derived as
// PriceNGN - AmountPaid.
type CreateParams struct {
	ItemPurchased      string
	Quantity           *decimal.Decimal
	TransactionDate    string
	ReferenceNumber    string
	PriceNGN           decimal.Decimal
	PriceUSD           decimal.Decimal
	ExchangeRate       decimal.Decimal
	OtherExpensesNGN   decimal.Decimal
	OtherExpensesUSD   decimal.Decimal
	TotalNGN           decimal.Decimal
	TotalUSD           decimal.Decimal
	AmountPaid         decimal.Decimal
	OutstandingBalance *decimal.Decimal
	PaymentStatus      PaymentStatus
}

type UpdateParams struct {
	ItemPurchased      *string
	Quantity           *decimal.Decimal
	TransactionDate    *string
	ReferenceNumber    *string
	PriceNGN           *decimal.Decimal
	PriceUSD           *decimal.Decimal
	ExchangeRate       *decimal.Decimal
	OtherExpensesNGN   *decimal.Decimal
	OtherExpensesUSD   *decimal.Decimal
	TotalNGN           *decimal.Decimal
	TotalUSD           *decimal.Decimal
	AmountPaid         *decimal.Decimal
	OutstandingBalance *decimal.Decimal
	PaymentStatus      *PaymentStatus
}

// ListFilter narrows List. StartDate is inclusive and EndDate exclusive.
type ListFilter struct {
	Type          *Type
	CustomerID    *uuid.UUID
	VendorID      *uuid.UUID
	PaymentStatus *PaymentStatus
	StartDate     *time.Time
	EndDate       *time.Time
	Search        string
	Page          int
	Limit         int
}

// ImportRow is one ledger row whose counterparty is given by name.
type ImportRow struct {
	Line   int
	Type   Type
	Party  string
	Params CreateParams
}

func (s *Service) CreateCustomerTransaction(ctx context.Context, customerID uuid.UUID, params CreateParams, actor *uuid.UUID) (*Transaction, error) {
	return s.create(ctx, TypeCustomer, customerID, params, actor)
}

func (s *Service) CreateVendorTransaction(ctx context.Context, vendorID uuid.UUID, params CreateParams, actor *uuid.UUID) (*Transaction, error) {
	return s.create(ctx, TypeVendor, vendorID, params, actor)
}

func (s *Service) create(ctx context.Context, typ Type, counterpartyID uuid.UUID, params CreateParams, actor *uuid.UUID) (*Transaction, error) {
	ok, err := s.repo.CounterpartyExists(ctx, typ, counterpartyID)
	if err != nil {
		return nil, err
	}

	if !ok {
		return nil, fmt.Errorf("%w: %s %s does not exist", apperr.ErrBadRequest, typ, counterpartyID)
	}

	tx, err := s.build(typ, counterpartyID, params, actor)
	if err != nil {
		return nil, err
	}

	if err := s.repo.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	s.invalidate(ctx)

	// Reload for the joined counterparty name and database defaults.
	created, err := s.repo.GetTransaction(ctx, tx.ID)
	if err != nil {
		slog.Warn("failed to reload created transaction", "id", tx.ID, "error", err)
		return tx, nil
	}

	return created, nil
}

// build validates params and applies defaults. It does not touch the repository.
func (s *Service) build(typ Type, counterpartyID uuid.UUID, params CreateParams, actor *uuid.UUID) (*Transaction, error) {
	now := s.now()

	date, err := NormalizeDate(params.TransactionDate, now)
	if err != nil {
		return nil, err
	}

	quantity := decimal.NewFromInt(1)
	if params.Quantity != nil {
		quantity = *params.Quantity
	}

	if !quantity.IsPositive() {
		return nil, fmt.Errorf("%w: quantity must be positive", apperr.ErrBadRequest)
	}

	status := params.PaymentStatus
	if status == "" {
		status = PaymentUnpaid
	}

	if !status.Valid() {
		return nil, fmt.Errorf("%w: invalid payment status %q", apperr.ErrBadRequest, status)
	}

	reference := params.ReferenceNumber
	if reference == "" {
		reference = NewReference(now)
	}

	outstanding := params.PriceNGN.Sub(params.AmountPaid)
	if params.OutstandingBalance != nil {
		outstanding = *params.OutstandingBalance
	}

	tx := &Transaction{
		Type:               typ,
		ItemPurchased:      strings.TrimSpace(params.ItemPurchased),
		Quantity:           quantity,
		TransactionDate:    date,
		ReferenceNumber:    reference,
		PriceNGN:           params.PriceNGN,
		PriceUSD:           params.PriceUSD,
		ExchangeRate:       params.ExchangeRate,
		OtherExpensesNGN:   params.OtherExpensesNGN,
		OtherExpensesUSD:   params.OtherExpensesUSD,
		TotalNGN:           params.TotalNGN,
		TotalUSD:           params.TotalUSD,
		AmountPaid:         params.AmountPaid,
		OutstandingBalance: outstanding,
		PaymentStatus:      status,
		CreatedBy:          actor,
		UpdatedBy:          actor,
	}

	id := counterpartyID
	if typ == TypeCustomer {
		tx.CustomerID = &id
	} else {
		tx.VendorID = &id
	}

	return tx, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	return s.repo.GetTransaction(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Transaction, int, error) {
	return s.repo.ListTransactions(ctx, filter)
}

// Update merges the supplied fields into a live row. OutstandingBalance is stored
// as given and never recomputed from the other amounts.
func (s *Service) Update(ctx context.Context, id uuid.UUID, params UpdateParams, actor *uuid.UUID) (*Transaction, error) {
	tx, err := s.repo.GetTransaction(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.TransactionDate != nil {
		date, err := NormalizeDate(*params.TransactionDate, s.now())
		if err != nil {
			return nil, err
		}

		tx.TransactionDate = date
	}

	if params.PaymentStatus != nil {
		if !params.PaymentStatus.Valid() {
			return nil, fmt.Errorf("%w: invalid payment status %q", apperr.ErrBadRequest, *params.PaymentStatus)
		}

		tx.PaymentStatus = *params.PaymentStatus
	}

	if params.Quantity != nil {
		if !params.Quantity.IsPositive() {
			return nil, fmt.Errorf("%w: quantity must be positive", apperr.ErrBadRequest)
		}

		tx.Quantity = *params.Quantity
	}

	if params.ItemPurchased != nil {
		tx.ItemPurchased = strings.TrimSpace(*params.ItemPurchased)
	}

	if params.ReferenceNumber != nil && *params.ReferenceNumber != "" {
		tx.ReferenceNumber = *params.ReferenceNumber
	}

	setDecimal(&tx.PriceNGN, params.PriceNGN)
	setDecimal(&tx.PriceUSD, params.PriceUSD)
	setDecimal(&tx.ExchangeRate, params.ExchangeRate)
	setDecimal(&tx.OtherExpensesNGN, params.OtherExpensesNGN)
	setDecimal(&tx.OtherExpensesUSD, params.OtherExpensesUSD)
	setDecimal(&tx.TotalNGN, params.TotalNGN)
	setDecimal(&tx.TotalUSD, params.TotalUSD)
	setDecimal(&tx.AmountPaid, params.AmountPaid)
	setDecimal(&tx.OutstandingBalance, params.OutstandingBalance)

	tx.UpdatedBy = actor

	if err := s.repo.UpdateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	s.invalidate(ctx)

	return tx, nil
}

func setDecimal(dst *decimal.Decimal, v *decimal.Decimal) {
	if v != nil {
		*dst = *v
	}
}

// SoftDelete marks a live row as deleted. Deleting it twice yields NotFound.
func (s *Service) SoftDelete(ctx context.Context, id uuid.UUID, actor *uuid.UUID) error {
	if err := s.repo.SoftDeleteTransaction(ctx, id, actor); err != nil {
		return err
	}

	s.invalidate(ctx)

	return nil
}

// BalanceForCustomer sums OutstandingBalance over the customer's live rows.
func (s *Service) BalanceForCustomer(ctx context.Context, customerID uuid.UUID) (decimal.Decimal, error) {
	ok, err := s.repo.CounterpartyExists(ctx, TypeCustomer, customerID)
	if err != nil {
		return decimal.Zero, err
	}

	if !ok {
		return decimal.Zero, fmt.Errorf("%w: customer %s", apperr.ErrNotFound, customerID)
	}

	return s.repo.SumOutstanding(ctx, customerID)
}

// LastTransactionSnapshot looks a customer up by exact name and reports the state of
// their most recent live transaction.
func (s *Service) LastTransactionSnapshot(ctx context.Context, customerName string) (*Snapshot, error) {
	customerID, err := s.repo.FindCustomerByName(ctx, customerName)
	if err != nil {
		return nil, err
	}

	last, err := s.repo.LatestForCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{CustomerID: customerID, OutstandingBalance: decimal.Zero}
	if last == nil {
		return snap, nil
	}

	status := last.PaymentStatus
	date := last.TransactionDate

	snap.OutstandingBalance = last.OutstandingBalance
	snap.PaymentStatus = &status
	snap.LastTransactionDate = &date
	snap.HasTransactions = true

	return snap, nil
}

// ImportBatch creates every row or none. An unknown counterparty or invalid row
// aborts the whole batch.
func (s *Service) ImportBatch(ctx context.Context, rows []ImportRow, actor *uuid.UUID) ([]*Transaction, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	itx, err := s.repo.BeginImport(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	defer itx.Rollback()

	ids := make(map[Type]map[string]uuid.UUID, 2)
	txs := make([]*Transaction, 0, len(rows))

	for _, row := range rows {
		if !row.Type.Valid() {
			return nil, fmt.Errorf("%w: line %d: invalid type %q", apperr.ErrBadRequest, row.Line, row.Type)
		}

		name := strings.TrimSpace(row.Party)

		id, ok := ids[row.Type][name]
		if !ok {
			id, err = itx.ResolveCounterparty(ctx, row.Type, name)
			if errors.Is(err, apperr.ErrNotFound) {
				return nil, fmt.Errorf("%w: line %d: unknown %s %q", apperr.ErrBadRequest, row.Line, row.Type, name)
			}

			if err != nil {
				return nil, fmt.Errorf("resolve counterparty: %w", err)
			}

			if ids[row.Type] == nil {
				ids[row.Type] = make(map[string]uuid.UUID)
			}

			ids[row.Type][name] = id
		}

		tx, err := s.build(row.Type, id, row.Params, actor)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", row.Line, err)
		}

		txs = append(txs, tx)
	}

	if err := itx.CreateTransactions(ctx, txs); err != nil {
		return nil, fmt.Errorf("create transactions: %w", err)
	}

	if err := itx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}

	s.invalidate(ctx)

	return txs, nil
}

func (s *Service) invalidate(ctx context.Context) {
	if s.invalidator == nil {
		return
	}

	if err := s.invalidator.Invalidate(ctx); err != nil {
		slog.Warn("failed to invalidate report cache", "error", err)
	}
}

package transaction

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Type partitions the ledger: customer rows are sales, vendor rows are purchases.
type Type string

const (
	TypeCustomer Type = "customer"
	TypeVendor   Type = "vendor"
)

func (t Type) Valid() bool {
	return t == TypeCustomer || t == TypeVendor
}

type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "paid"
	PaymentPartial PaymentStatus = "partial"
	PaymentUnpaid  PaymentStatus = "unpaid"
	PaymentOverdue PaymentStatus = "overdue"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPaid, PaymentPartial, PaymentUnpaid, PaymentOverdue:
		return true
	}

	return false
}

// Transaction is one ledger row. Exactly one of CustomerID and VendorID is set,
// matching Type.
type Transaction struct {
	ID                 uuid.UUID
	Type               Type
	CustomerID         *uuid.UUID
	VendorID           *uuid.UUID
	CounterpartyName   string // Loaded via JOIN
	ItemPurchased      string
	Quantity           decimal.Decimal
	TransactionDate    time.Time
	ReferenceNumber    string
	PriceNGN           decimal.Decimal
	PriceUSD           decimal.Decimal
	ExchangeRate       decimal.Decimal
	OtherExpensesNGN   decimal.Decimal
	OtherExpensesUSD   decimal.Decimal
	TotalNGN           decimal.Decimal
	TotalUSD           decimal.Decimal
	AmountPaid         decimal.Decimal
	OutstandingBalance decimal.Decimal
	PaymentStatus      PaymentStatus
	CreatedBy          *uuid.UUID
	UpdatedBy          *uuid.UUID
	CreatedAt          time.Time
	UpdatedAt          *time.Time
	DeletedAt          *time.Time
}

// CounterpartyID returns whichever of CustomerID or VendorID the row is linked to.
func (t *Transaction) CounterpartyID() uuid.UUID {
	if t.Type == TypeVendor && t.VendorID != nil {
		return *t.VendorID
	}

	if t.CustomerID != nil {
		return *t.CustomerID
	}

	return uuid.Nil
}

// Snapshot is the state of a customer's most recent transaction.
type Snapshot struct {
	CustomerID          uuid.UUID
	OutstandingBalance  decimal.Decimal
	PaymentStatus       *PaymentStatus
	LastTransactionDate *time.Time
	HasTransactions     bool
}

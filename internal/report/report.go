package report

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/apperr"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

// Entry is the slice of a ledger row the reports read. Amounts are never null.
type Entry struct {
	ID                 uuid.UUID
	Type               transaction.Type
	CounterpartyID     uuid.UUID
	CounterpartyName   string
	ItemPurchased      string
	Quantity           decimal.Decimal
	ReferenceNumber    string
	PriceNGN           decimal.Decimal
	PriceUSD           decimal.Decimal
	TotalNGN           decimal.Decimal
	TotalUSD           decimal.Decimal
	AmountPaid         decimal.Decimal
	OutstandingBalance decimal.Decimal
	PaymentStatus      transaction.PaymentStatus
	TransactionDate    time.Time
	CreatedAt          time.Time
	DeletedAt          *time.Time
}

// Party is a customer as listed in the balances report.
type Party struct {
	ID     uuid.UUID
	Name   string
	Status string
}

// Range bounds a report by transaction date. From is inclusive, To exclusive.
// Nil ends are open.
type Range struct {
	From *time.Time `json:"from,omitempty"`
	To   *time.Time `json:"to,omitempty"`
}

// ParseRange reads YYYY-MM-DD bounds. The end date is inclusive, so To is set to
// the following midnight.
func ParseRange(start, end string) (Range, error) {
	var r Range

	if start != "" {
		from, err := time.Parse(time.DateOnly, start)
		if err != nil {
			return Range{}, fmt.Errorf("%w: invalid startDate %q", apperr.ErrBadRequest, start)
		}

		r.From = &from
	}

	if end != "" {
		to, err := time.Parse(time.DateOnly, end)
		if err != nil {
			return Range{}, fmt.Errorf("%w: invalid endDate %q", apperr.ErrBadRequest, end)
		}

		to = to.AddDate(0, 0, 1)
		r.To = &to
	}

	if r.From != nil && r.To != nil && !r.From.Before(*r.To) {
		return Range{}, fmt.Errorf("%w: startDate is after endDate", apperr.ErrBadRequest)
	}

	return r, nil
}

func (r Range) Contains(t time.Time) bool {
	if r.From != nil && t.Before(*r.From) {
		return false
	}

	if r.To != nil && !t.Before(*r.To) {
		return false
	}

	return true
}

type Summary struct {
	TotalCustomers    int    `json:"totalCustomers"`
	TotalVendors      int    `json:"totalVendors"`
	TotalInvoices     int    `json:"totalInvoices"`
	TotalBills        int    `json:"totalBills"`
	InvoicesThisMonth int    `json:"invoicesThisMonth"`
	InvoicesLastMonth int    `json:"invoicesLastMonth"`
	BillsThisMonth    int    `json:"billsThisMonth"`
	BillsLastMonth    int    `json:"billsLastMonth"`
	InvoiceChange     string `json:"invoiceChange"`
	BillChange        string `json:"billChange"`
}

type Window struct {
	Income    decimal.Decimal `json:"income"`
	Expense   decimal.Decimal `json:"expense"`
	NetProfit decimal.Decimal `json:"netProfit"`
}

// MonthPoint is one month of a trend. Month is YYYY-MM; Label is the short month
// name for display.
type MonthPoint struct {
	Month   string          `json:"month"`
	Label   string          `json:"label"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
}

type IncomeExpense struct {
	Today     Window       `json:"today"`
	ThisMonth Window       `json:"thisMonth"`
	Trend     []MonthPoint `json:"trend"`
}

type Cashflow struct {
	Year   int          `json:"year"`
	Months []MonthPoint `json:"months"`
}

type RecentTransaction struct {
	ID                 uuid.UUID                 `json:"id"`
	ReferenceNumber    string                    `json:"referenceNumber"`
	CounterpartyID     uuid.UUID                 `json:"counterpartyId"`
	CounterpartyName   string                    `json:"counterpartyName"`
	ItemPurchased      string                    `json:"itemPurchased"`
	TransactionDate    time.Time                 `json:"transactionDate"`
	PriceNGN           decimal.Decimal           `json:"priceNGN"`
	PriceUSD           decimal.Decimal           `json:"priceUSD"`
	TotalNGN           decimal.Decimal           `json:"totalNGN"`
	AmountPaid         decimal.Decimal           `json:"amountPaid"`
	OutstandingBalance decimal.Decimal           `json:"outstandingBalance"`
	PaymentStatus      transaction.PaymentStatus `json:"paymentStatus"`
}

type CustomerBalance struct {
	CustomerID          uuid.UUID       `json:"customerId"`
	Name                string          `json:"name"`
	Status              string          `json:"status"`
	TotalPurchased      decimal.Decimal `json:"totalPurchased"`
	TotalPaid           decimal.Decimal `json:"totalPaid"`
	OutstandingBalance  decimal.Decimal `json:"outstandingBalance"`
	LastTransactionDate *time.Time      `json:"lastTransactionDate"`
}

type BalanceSummary struct {
	TotalOutstanding     decimal.Decimal `json:"totalOutstanding"`
	TotalPurchased       decimal.Decimal `json:"totalPurchased"`
	TotalPaid            decimal.Decimal `json:"totalPaid"`
	CustomersWithBalance int             `json:"customersWithBalance"`
}

type CustomerBalances struct {
	Customers []CustomerBalance `json:"customers"`
	Summary   BalanceSummary    `json:"summary"`
}

type VendorSpend struct {
	VendorID    uuid.UUID       `json:"vendorId"`
	Name        string          `json:"name"`
	TotalSpent  decimal.Decimal `json:"totalSpent"`
	TotalUnpaid decimal.Decimal `json:"totalUnpaid"`
}

type VendorPurchases struct {
	VendorCount     int                 `json:"vendorCount"`
	TotalSpent      decimal.Decimal     `json:"totalSpent"`
	TotalUnpaid     decimal.Decimal     `json:"totalUnpaid"`
	TopVendors      []VendorSpend       `json:"topVendors"`
	RecentPurchases []RecentTransaction `json:"recentPurchases"`
}

type ItemSales struct {
	Item     string          `json:"item"`
	TotalNGN decimal.Decimal `json:"totalNGN"`
	TotalUSD decimal.Decimal `json:"totalUSD"`
	Quantity decimal.Decimal `json:"quantity"`
}

type MonthlySales struct {
	Month    string          `json:"month"`
	TotalNGN decimal.Decimal `json:"totalNGN"`
	TotalUSD decimal.Decimal `json:"totalUSD"`
	Count    int             `json:"count"`
}

type SalesSummary struct {
	TotalNGN    decimal.Decimal     `json:"totalNGN"`
	TotalUSD    decimal.Decimal     `json:"totalUSD"`
	ByItem      []ItemSales         `json:"byItem"`
	Monthly     []MonthlySales      `json:"monthly"`
	RecentSales []RecentTransaction `json:"recentSales"`
}

type MonthlyProfit struct {
	Month    string          `json:"month"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Profit   decimal.Decimal `json:"profit"`
}

type ProfitSummary struct {
	Month        string          `json:"month"`
	Income       decimal.Decimal `json:"income"`
	Expenses     decimal.Decimal `json:"expenses"`
	Profit       decimal.Decimal `json:"profit"`
	ProfitMargin decimal.Decimal `json:"profitMargin"`
}

type ExpenseCategory struct {
	Item       string          `json:"item"`
	Amount     decimal.Decimal `json:"amount"`
	Percentage decimal.Decimal `json:"percentage"`
}

type ProfitLoss struct {
	Monthly          []MonthlyProfit   `json:"monthly"`
	CurrentMonth     ProfitSummary     `json:"currentMonth"`
	ExpenseBreakdown []ExpenseCategory `json:"expenseBreakdown"`
	TotalIncome      decimal.Decimal   `json:"totalIncome"`
	TotalExpenses    decimal.Decimal   `json:"totalExpenses"`
	NetProfit        decimal.Decimal   `json:"netProfit"`
}

type OutstandingItem struct {
	RecentTransaction
	DaysOverdue int `json:"daysOverdue"`
}

type OutstandingPayments struct {
	VendorBills              []OutstandingItem `json:"vendorBills"`
	CustomerPayments         []OutstandingItem `json:"customerPayments"`
	TotalVendorOutstanding   decimal.Decimal   `json:"totalVendorOutstanding"`
	TotalCustomerOutstanding decimal.Decimal   `json:"totalCustomerOutstanding"`
}

package report

import (
	"context"
	"time"

	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

// EntryFilter narrows the rows Entries returns. Zero value means every live row.
type EntryFilter struct {
	Type  *transaction.Type
	Range Range
}

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=report
type Repository interface {
	CountContacts(ctx context.Context) (customers int, vendors int, err error)
	CountTransactions(ctx context.Context, typ transaction.Type, r Range) (int, error)
	Entries(ctx context.Context, filter EntryFilter) ([]Entry, error)
	RecentEntries(ctx context.Context, typ transaction.Type, limit int) ([]Entry, error)
	Customers(ctx context.Context, status string) ([]Party, error)
}

// Reports is the read API served to the dashboard. Service computes it from the
// ledger; Cached memoizes it.
type Reports interface {
	SummaryCards(ctx context.Context) (*Summary, error)
	IncomeExpense(ctx context.Context) (*IncomeExpense, error)
	CashflowTrend(ctx context.Context, year int) (*Cashflow, error)
	RecentInvoices(ctx context.Context) ([]RecentTransaction, error)
	RecentBills(ctx context.Context) ([]RecentTransaction, error)
	CustomerBalances(ctx context.Context, status string) (*CustomerBalances, error)
	VendorPurchases(ctx context.Context, r Range) (*VendorPurchases, error)
	SalesSummary(ctx context.Context, r Range) (*SalesSummary, error)
	ProfitLoss(ctx context.Context, r Range) (*ProfitLoss, error)
	OutstandingPayments(ctx context.Context, r Range) (*OutstandingPayments, error)
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// WithClock returns a copy of the service that reads the time from now.
func (s *Service) WithClock(now func() time.Time) *Service {
	return &Service{repo: s.repo, now: now}
}

var (
	customerType = transaction.TypeCustomer
	vendorType   = transaction.TypeVendor
)

func (s *Service) SummaryCards(ctx context.Context) (*Summary, error) {
	customers, vendors, err := s.repo.CountContacts(ctx)
	if err != nil {
		return nil, err
	}

	thisMonth := monthStart(s.now())
	nextMonth := thisMonth.AddDate(0, 1, 0)
	lastMonth := thisMonth.AddDate(0, -1, 0)

	out := &Summary{TotalCustomers: customers, TotalVendors: vendors}

	counts := []struct {
		dst *int
		typ transaction.Type
		r   Range
	}{
		{&out.TotalInvoices, transaction.TypeCustomer, Range{}},
		{&out.TotalBills, transaction.TypeVendor, Range{}},
		{&out.InvoicesThisMonth, transaction.TypeCustomer, Range{From: &thisMonth, To: &nextMonth}},
		{&out.InvoicesLastMonth, transaction.TypeCustomer, Range{From: &lastMonth, To: &thisMonth}},
		{&out.BillsThisMonth, transaction.TypeVendor, Range{From: &thisMonth, To: &nextMonth}},
		{&out.BillsLastMonth, transaction.TypeVendor, Range{From: &lastMonth, To: &thisMonth}},
	}

	for _, c := range counts {
		n, err := s.repo.CountTransactions(ctx, c.typ, c.r)
		if err != nil {
			return nil, err
		}

		*c.dst = n
	}

	out.InvoiceChange = PercentChange(out.InvoicesThisMonth, out.InvoicesLastMonth)
	out.BillChange = PercentChange(out.BillsThisMonth, out.BillsLastMonth)

	return out, nil
}

func (s *Service) IncomeExpense(ctx context.Context) (*IncomeExpense, error) {
	now := s.now()
	from := monthStart(now).AddDate(0, -(trendMonths - 1), 0)

	entries, err := s.repo.Entries(ctx, EntryFilter{Range: Range{From: &from}})
	if err != nil {
		return nil, err
	}

	out := BuildIncomeExpense(entries, now)

	return &out, nil
}

// CashflowTrend reports year month by month. Year 0 means the current year.
func (s *Service) CashflowTrend(ctx context.Context, year int) (*Cashflow, error) {
	if year == 0 {
		year = s.now().UTC().Year()
	}

	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, 0)

	entries, err := s.repo.Entries(ctx, EntryFilter{Range: Range{From: &from, To: &to}})
	if err != nil {
		return nil, err
	}

	out := BuildCashflow(entries, year)

	return &out, nil
}

func (s *Service) RecentInvoices(ctx context.Context) ([]RecentTransaction, error) {
	return s.recent(ctx, transaction.TypeCustomer)
}

func (s *Service) RecentBills(ctx context.Context) ([]RecentTransaction, error) {
	return s.recent(ctx, transaction.TypeVendor)
}

func (s *Service) recent(ctx context.Context, typ transaction.Type) ([]RecentTransaction, error) {
	entries, err := s.repo.RecentEntries(ctx, typ, recentLimit)
	if err != nil {
		return nil, err
	}

	return Recent(entries, recentLimit), nil
}

// CustomerBalances covers customers with the given status, or all when status is empty.
func (s *Service) CustomerBalances(ctx context.Context, status string) (*CustomerBalances, error) {
	parties, err := s.repo.Customers(ctx, status)
	if err != nil {
		return nil, err
	}

	entries, err := s.repo.Entries(ctx, EntryFilter{Type: &customerType})
	if err != nil {
		return nil, err
	}

	out := BuildCustomerBalances(parties, entries)

	return &out, nil
}

func (s *Service) VendorPurchases(ctx context.Context, r Range) (*VendorPurchases, error) {
	entries, err := s.repo.Entries(ctx, EntryFilter{Type: &vendorType, Range: r})
	if err != nil {
		return nil, err
	}

	out := BuildVendorPurchases(entries)

	return &out, nil
}

func (s *Service) SalesSummary(ctx context.Context, r Range) (*SalesSummary, error) {
	entries, err := s.repo.Entries(ctx, EntryFilter{Type: &customerType, Range: r})
	if err != nil {
		return nil, err
	}

	out := BuildSalesSummary(entries)

	return &out, nil
}

func (s *Service) ProfitLoss(ctx context.Context, r Range) (*ProfitLoss, error) {
	entries, err := s.repo.Entries(ctx, EntryFilter{Range: r})
	if err != nil {
		return nil, err
	}

	out := BuildProfitLoss(entries, s.now())

	return &out, nil
}

func (s *Service) OutstandingPayments(ctx context.Context, r Range) (*OutstandingPayments, error) {
	entries, err := s.repo.Entries(ctx, EntryFilter{Range: r})
	if err != nil {
		return nil, err
	}

	out := BuildOutstanding(entries)

	return &out, nil
}

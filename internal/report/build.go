package report

import (
	"cmp"
	"maps"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

const (
	recentLimit     = 5
	topVendorLimit  = 5
	recentListLimit = 10
	trendMonths     = 6
)

var hundred = decimal.NewFromInt(100)

func monthKey(t time.Time) string {
	return t.UTC().Format("2006-01")
}

func monthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func dayStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// live drops soft-deleted rows. Stores already filter them; the builders do not rely on it.
func live(entries []Entry) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.DeletedAt == nil {
			out = append(out, e)
		}
	}

	return out
}

func ofType(entries []Entry, typ transaction.Type) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.DeletedAt == nil && e.Type == typ {
			out = append(out, e)
		}
	}

	return out
}

// newestFirst orders by transaction date, then insertion time, then id.
func newestFirst(a, b Entry) int {
	if c := b.TransactionDate.Compare(a.TransactionDate); c != 0 {
		return c
	}

	if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
		return c
	}

	return cmp.Compare(b.ID.String(), a.ID.String())
}

func toRecent(e Entry) RecentTransaction {
	return RecentTransaction{
		ID:                 e.ID,
		ReferenceNumber:    e.ReferenceNumber,
		CounterpartyID:     e.CounterpartyID,
		CounterpartyName:   e.CounterpartyName,
		ItemPurchased:      e.ItemPurchased,
		TransactionDate:    e.TransactionDate,
		PriceNGN:           e.PriceNGN,
		PriceUSD:           e.PriceUSD,
		TotalNGN:           e.TotalNGN,
		AmountPaid:         e.AmountPaid,
		OutstandingBalance: e.OutstandingBalance,
		PaymentStatus:      e.PaymentStatus,
	}
}

// Recent returns up to n live entries, newest first.
func Recent(entries []Entry, n int) []RecentTransaction {
	sorted := live(entries)
	slices.SortFunc(sorted, newestFirst)

	out := make([]RecentTransaction, 0, min(n, len(sorted)))
	for _, e := range sorted[:min(n, len(sorted))] {
		out = append(out, toRecent(e))
	}

	return out
}

// window sums AmountPaid of customer (income) and vendor (expense) rows dated in [from, to).
func window(entries []Entry, from, to time.Time) Window {
	w := Window{Income: decimal.Zero, Expense: decimal.Zero}

	for _, e := range entries {
		if e.TransactionDate.Before(from) || !e.TransactionDate.Before(to) {
			continue
		}

		switch e.Type {
		case transaction.TypeCustomer:
			w.Income = w.Income.Add(e.AmountPaid)
		case transaction.TypeVendor:
			w.Expense = w.Expense.Add(e.AmountPaid)
		}
	}

	w.NetProfit = w.Income.Sub(w.Expense)

	return w
}

// monthSeries buckets AmountPaid into the given consecutive months.
func monthSeries(entries []Entry, first time.Time, months int) []MonthPoint {
	points := make([]MonthPoint, months)
	index := make(map[string]int, months)

	for i := range months {
		m := first.AddDate(0, i, 0)
		points[i] = MonthPoint{
			Month:   monthKey(m),
			Label:   m.Format("Jan"),
			Income:  decimal.Zero,
			Expense: decimal.Zero,
		}
		index[points[i].Month] = i
	}

	for _, e := range entries {
		i, ok := index[monthKey(e.TransactionDate)]
		if !ok {
			continue
		}

		switch e.Type {
		case transaction.TypeCustomer:
			points[i].Income = points[i].Income.Add(e.AmountPaid)
		case transaction.TypeVendor:
			points[i].Expense = points[i].Expense.Add(e.AmountPaid)
		}
	}

	for i := range points {
		points[i].Net = points[i].Income.Sub(points[i].Expense)
	}

	return points
}

// BuildIncomeExpense covers today, the current calendar month and the trailing six
// months (oldest first), all in UTC.
func BuildIncomeExpense(entries []Entry, now time.Time) IncomeExpense {
	entries = live(entries)

	today := dayStart(now)
	month := monthStart(now)

	return IncomeExpense{
		Today:     window(entries, today, today.AddDate(0, 0, 1)),
		ThisMonth: window(entries, month, month.AddDate(0, 1, 0)),
		Trend:     monthSeries(entries, month.AddDate(0, -(trendMonths-1), 0), trendMonths),
	}
}

// BuildCashflow returns all twelve months of year, zero-filled.
func BuildCashflow(entries []Entry, year int) Cashflow {
	first := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)

	return Cashflow{
		Year:   year,
		Months: monthSeries(live(entries), first, 12),
	}
}

// BuildCustomerBalances aggregates customer rows per party. Parties without rows are
// listed with zero totals.
func BuildCustomerBalances(parties []Party, entries []Entry) CustomerBalances {
	byID := make(map[uuid.UUID]*CustomerBalance, len(parties))
	out := CustomerBalances{
		Customers: make([]CustomerBalance, 0, len(parties)),
		Summary: BalanceSummary{
			TotalOutstanding: decimal.Zero,
			TotalPurchased:   decimal.Zero,
			TotalPaid:        decimal.Zero,
		},
	}

	for _, p := range parties {
		out.Customers = append(out.Customers, CustomerBalance{
			CustomerID:         p.ID,
			Name:               p.Name,
			Status:             p.Status,
			TotalPurchased:     decimal.Zero,
			TotalPaid:          decimal.Zero,
			OutstandingBalance: decimal.Zero,
		})
	}

	for i := range out.Customers {
		byID[out.Customers[i].CustomerID] = &out.Customers[i]
	}

	for _, e := range ofType(entries, transaction.TypeCustomer) {
		b, ok := byID[e.CounterpartyID]
		if !ok {
			continue
		}

		b.TotalPurchased = b.TotalPurchased.Add(e.TotalNGN)
		b.TotalPaid = b.TotalPaid.Add(e.AmountPaid)
		b.OutstandingBalance = b.OutstandingBalance.Add(e.OutstandingBalance)

		if b.LastTransactionDate == nil || e.TransactionDate.After(*b.LastTransactionDate) {
			d := e.TransactionDate
			b.LastTransactionDate = &d
		}
	}

	for _, b := range out.Customers {
		out.Summary.TotalOutstanding = out.Summary.TotalOutstanding.Add(b.OutstandingBalance)
		out.Summary.TotalPurchased = out.Summary.TotalPurchased.Add(b.TotalPurchased)
		out.Summary.TotalPaid = out.Summary.TotalPaid.Add(b.TotalPaid)

		if b.OutstandingBalance.IsPositive() {
			out.Summary.CustomersWithBalance++
		}
	}

	return out
}

// BuildVendorPurchases measures spend in PriceUSD, the currency purchases are made in.
func BuildVendorPurchases(entries []Entry) VendorPurchases {
	purchases := ofType(entries, transaction.TypeVendor)

	out := VendorPurchases{TotalSpent: decimal.Zero, TotalUnpaid: decimal.Zero}
	byVendor := make(map[uuid.UUID]*VendorSpend)

	for _, e := range purchases {
		out.TotalSpent = out.TotalSpent.Add(e.PriceUSD)
		out.TotalUnpaid = out.TotalUnpaid.Add(e.OutstandingBalance)

		v, ok := byVendor[e.CounterpartyID]
		if !ok {
			v = &VendorSpend{VendorID: e.CounterpartyID, Name: e.CounterpartyName, TotalSpent: decimal.Zero, TotalUnpaid: decimal.Zero}
			byVendor[e.CounterpartyID] = v
		}

		v.TotalSpent = v.TotalSpent.Add(e.PriceUSD)
		v.TotalUnpaid = v.TotalUnpaid.Add(e.OutstandingBalance)
	}

	out.VendorCount = len(byVendor)

	vendors := make([]VendorSpend, 0, len(byVendor))
	for _, v := range byVendor {
		vendors = append(vendors, *v)
	}

	slices.SortFunc(vendors, func(a, b VendorSpend) int {
		if c := b.TotalSpent.Cmp(a.TotalSpent); c != 0 {
			return c
		}

		return cmp.Compare(a.Name, b.Name)
	})

	out.TopVendors = vendors[:min(topVendorLimit, len(vendors))]
	out.RecentPurchases = Recent(purchases, recentListLimit)

	return out
}

func BuildSalesSummary(entries []Entry) SalesSummary {
	sales := ofType(entries, transaction.TypeCustomer)

	out := SalesSummary{TotalNGN: decimal.Zero, TotalUSD: decimal.Zero}
	byItem := make(map[string]*ItemSales)
	byMonth := make(map[string]*MonthlySales)

	for _, e := range sales {
		out.TotalNGN = out.TotalNGN.Add(e.PriceNGN)
		out.TotalUSD = out.TotalUSD.Add(e.PriceUSD)

		it, ok := byItem[e.ItemPurchased]
		if !ok {
			it = &ItemSales{Item: e.ItemPurchased, TotalNGN: decimal.Zero, TotalUSD: decimal.Zero, Quantity: decimal.Zero}
			byItem[e.ItemPurchased] = it
		}

		it.TotalNGN = it.TotalNGN.Add(e.PriceNGN)
		it.TotalUSD = it.TotalUSD.Add(e.PriceUSD)
		it.Quantity = it.Quantity.Add(e.Quantity)

		key := monthKey(e.TransactionDate)

		m, ok := byMonth[key]
		if !ok {
			m = &MonthlySales{Month: key, TotalNGN: decimal.Zero, TotalUSD: decimal.Zero}
			byMonth[key] = m
		}

		m.TotalNGN = m.TotalNGN.Add(e.PriceNGN)
		m.TotalUSD = m.TotalUSD.Add(e.PriceUSD)
		m.Count++
	}

	out.ByItem = make([]ItemSales, 0, len(byItem))
	for _, it := range byItem {
		out.ByItem = append(out.ByItem, *it)
	}

	slices.SortFunc(out.ByItem, func(a, b ItemSales) int {
		if c := b.TotalNGN.Cmp(a.TotalNGN); c != 0 {
			return c
		}

		return cmp.Compare(a.Item, b.Item)
	})

	out.Monthly = make([]MonthlySales, 0, len(byMonth))
	for _, key := range slices.Sorted(maps.Keys(byMonth)) {
		out.Monthly = append(out.Monthly, *byMonth[key])
	}

	out.RecentSales = Recent(sales, recentListLimit)

	return out
}

// BuildProfitLoss accrues on TotalNGN: customer rows are income, vendor rows expenses.
// CurrentMonth is the month containing now; its margin is 0 when there is no income.
func BuildProfitLoss(entries []Entry, now time.Time) ProfitLoss {
	out := ProfitLoss{TotalIncome: decimal.Zero, TotalExpenses: decimal.Zero}
	byMonth := make(map[string]*MonthlyProfit)
	byItem := make(map[string]decimal.Decimal)

	for _, e := range live(entries) {
		key := monthKey(e.TransactionDate)

		m, ok := byMonth[key]
		if !ok {
			m = &MonthlyProfit{Month: key, Income: decimal.Zero, Expenses: decimal.Zero}
			byMonth[key] = m
		}

		switch e.Type {
		case transaction.TypeCustomer:
			m.Income = m.Income.Add(e.TotalNGN)
			out.TotalIncome = out.TotalIncome.Add(e.TotalNGN)
		case transaction.TypeVendor:
			m.Expenses = m.Expenses.Add(e.TotalNGN)
			out.TotalExpenses = out.TotalExpenses.Add(e.TotalNGN)
			byItem[e.ItemPurchased] = byItem[e.ItemPurchased].Add(e.TotalNGN)
		}
	}

	out.NetProfit = out.TotalIncome.Sub(out.TotalExpenses)

	out.Monthly = make([]MonthlyProfit, 0, len(byMonth))
	for _, key := range slices.Sorted(maps.Keys(byMonth)) {
		m := byMonth[key]
		m.Profit = m.Income.Sub(m.Expenses)
		out.Monthly = append(out.Monthly, *m)
	}

	current := ProfitSummary{Month: monthKey(now), Income: decimal.Zero, Expenses: decimal.Zero}
	if m, ok := byMonth[current.Month]; ok {
		current.Income = m.Income
		current.Expenses = m.Expenses
	}

	current.Profit = current.Income.Sub(current.Expenses)
	current.ProfitMargin = ProfitMargin(current.Profit, current.Income)
	out.CurrentMonth = current

	out.ExpenseBreakdown = make([]ExpenseCategory, 0, len(byItem))
	for item, amount := range byItem {
		out.ExpenseBreakdown = append(out.ExpenseBreakdown, ExpenseCategory{
			Item:       item,
			Amount:     amount,
			Percentage: share(amount, out.TotalExpenses),
		})
	}

	slices.SortFunc(out.ExpenseBreakdown, func(a, b ExpenseCategory) int {
		if c := b.Amount.Cmp(a.Amount); c != 0 {
			return c
		}

		return cmp.Compare(a.Item, b.Item)
	})

	return out
}

// ProfitMargin is profit as a percentage of income, rounded to two places.
func ProfitMargin(profit, income decimal.Decimal) decimal.Decimal {
	if income.IsZero() {
		return decimal.Zero
	}

	return profit.Div(income).Mul(hundred).Round(2)
}

func share(part, total decimal.Decimal) decimal.Decimal {
	if total.IsZero() {
		return decimal.Zero
	}

	return part.Div(total).Mul(hundred).Round(2)
}

// BuildOutstanding lists rows that still owe money, newest first. Due dates are not
// tracked so DaysOverdue is always 0.
func BuildOutstanding(entries []Entry) OutstandingPayments {
	sorted := live(entries)
	slices.SortFunc(sorted, newestFirst)

	out := OutstandingPayments{
		VendorBills:              []OutstandingItem{},
		CustomerPayments:         []OutstandingItem{},
		TotalVendorOutstanding:   decimal.Zero,
		TotalCustomerOutstanding: decimal.Zero,
	}

	for _, e := range sorted {
		if !e.OutstandingBalance.IsPositive() {
			continue
		}

		item := OutstandingItem{RecentTransaction: toRecent(e)}

		switch e.Type {
		case transaction.TypeVendor:
			out.VendorBills = append(out.VendorBills, item)
			out.TotalVendorOutstanding = out.TotalVendorOutstanding.Add(e.OutstandingBalance)
		case transaction.TypeCustomer:
			out.CustomerPayments = append(out.CustomerPayments, item)
			out.TotalCustomerOutstanding = out.TotalCustomerOutstanding.Add(e.OutstandingBalance)
		}
	}

	return out
}

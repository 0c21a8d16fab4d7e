package report

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/MrJamesThe3rd/tally/internal/cache"
)

// Cached serves Reports from Redis, falling through to the wrapped implementation on
// a miss or on any cache failure. Invalidate must be called after ledger writes.
type Cached struct {
	next    Reports
	cache   *cache.Cache
	group   singleflight.Group
	logger  *slog.Logger
	now     func() time.Time
	observe func(result string)
}

type CachedOption func(*Cached)

// WithLookupObserver reports every lookup as "hit", "miss" or "error".
func WithLookupObserver(fn func(result string)) CachedOption {
	return func(c *Cached) { c.observe = fn }
}

func NewCached(next Reports, c *cache.Cache, logger *slog.Logger, opts ...CachedOption) *Cached {
	cached := &Cached{next: next, cache: c, logger: logger, now: time.Now, observe: func(string) {}}
	for _, opt := range opts {
		opt(cached)
	}

	return cached
}

func (c *Cached) Invalidate(ctx context.Context) error {
	return c.cache.Bump(ctx)
}

// fetch runs load at most once per key across concurrent callers and stores its
// result. Reports relative to "now" carry the current day in their key.
func fetch[T any](ctx context.Context, c *Cached, load func(context.Context) (T, error), parts ...string) (T, error) {
	var zero T

	key, err := c.cache.Key(ctx, parts...)
	if err != nil {
		c.logger.Warn("report cache unavailable", "error", err)
		c.observe("error")

		return load(ctx)
	}

	var hit T

	found, err := c.cache.Get(ctx, key, &hit)
	if err != nil {
		c.logger.Warn("report cache read failed", "key", key, "error", err)
		c.observe("error")
	}

	if found {
		c.observe("hit")
		return hit, nil
	}

	c.observe("miss")

	// Every caller waiting on key shares this load, so the leader's cancellation must not end it.
	shared := context.WithoutCancel(ctx)

	v, err, _ := c.group.Do(key, func() (any, error) {
		res, err := load(shared)
		if err != nil {
			return nil, err
		}

		if err := c.cache.Set(shared, key, res); err != nil {
			c.logger.Warn("report cache write failed", "key", key, "error", err)
		}

		return res, nil
	})
	if err != nil {
		return zero, err
	}

	return v.(T), nil
}

func (c *Cached) today() string {
	return c.now().UTC().Format(time.DateOnly)
}

func rangeKey(r Range) string {
	from, to := "-", "-"
	if r.From != nil {
		from = r.From.UTC().Format(time.DateOnly)
	}

	if r.To != nil {
		to = r.To.UTC().Format(time.DateOnly)
	}

	return fmt.Sprintf("%s_%s", from, to)
}

func (c *Cached) SummaryCards(ctx context.Context) (*Summary, error) {
	return fetch(ctx, c, c.next.SummaryCards, "summary", c.today())
}

func (c *Cached) IncomeExpense(ctx context.Context) (*IncomeExpense, error) {
	return fetch(ctx, c, c.next.IncomeExpense, "income-expense", c.today())
}

func (c *Cached) CashflowTrend(ctx context.Context, year int) (*Cashflow, error) {
	if year == 0 {
		year = c.now().UTC().Year()
	}

	return fetch(ctx, c, func(ctx context.Context) (*Cashflow, error) {
		return c.next.CashflowTrend(ctx, year)
	}, "cashflow", strconv.Itoa(year))
}

func (c *Cached) RecentInvoices(ctx context.Context) ([]RecentTransaction, error) {
	return fetch(ctx, c, c.next.RecentInvoices, "recent-invoices")
}

func (c *Cached) RecentBills(ctx context.Context) ([]RecentTransaction, error) {
	return fetch(ctx, c, c.next.RecentBills, "recent-bills")
}

func (c *Cached) CustomerBalances(ctx context.Context, status string) (*CustomerBalances, error) {
	return fetch(ctx, c, func(ctx context.Context) (*CustomerBalances, error) {
		return c.next.CustomerBalances(ctx, status)
	}, "customer-balances", "status="+status)
}

func (c *Cached) VendorPurchases(ctx context.Context, r Range) (*VendorPurchases, error) {
	return fetch(ctx, c, func(ctx context.Context) (*VendorPurchases, error) {
		return c.next.VendorPurchases(ctx, r)
	}, "vendor-purchases", rangeKey(r))
}

func (c *Cached) SalesSummary(ctx context.Context, r Range) (*SalesSummary, error) {
	return fetch(ctx, c, func(ctx context.Context) (*SalesSummary, error) {
		return c.next.SalesSummary(ctx, r)
	}, "sales-summary", rangeKey(r))
}

func (c *Cached) ProfitLoss(ctx context.Context, r Range) (*ProfitLoss, error) {
	return fetch(ctx, c, func(ctx context.Context) (*ProfitLoss, error) {
		return c.next.ProfitLoss(ctx, r)
	}, "profit-loss", rangeKey(r), c.today())
}

func (c *Cached) OutstandingPayments(ctx context.Context, r Range) (*OutstandingPayments, error) {
	return fetch(ctx, c, func(ctx context.Context) (*OutstandingPayments, error) {
		return c.next.OutstandingPayments(ctx, r)
	}, "outstanding", rangeKey(r))
}

var (
	_ Reports = (*Service)(nil)
	_ Reports = (*Cached)(nil)
)

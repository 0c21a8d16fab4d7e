package report_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/tally/internal/cache"
	"github.com/MrJamesThe3rd/tally/internal/report"
)

func newCached(t *testing.T, next report.Reports) (*report.Cached, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return report.NewCached(next, cache.New(client, "reports", time.Minute), logger), mr
}

func TestCached_HitAndInvalidate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	next := report.NewMockReports(ctrl)
	cached, _ := newCached(t, next)
	ctx := context.Background()

	first := &report.Summary{TotalCustomers: 1, InvoiceChange: "0%", BillChange: "0%"}
	second := &report.Summary{TotalCustomers: 2, InvoiceChange: "+100%", BillChange: "0%"}

	gomock.InOrder(
		next.EXPECT().SummaryCards(gomock.Any()).Return(first, nil).Times(1),
		next.EXPECT().SummaryCards(gomock.Any()).Return(second, nil).Times(1),
	)

	got, err := cached.SummaryCards(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, got)

	got, err = cached.SummaryCards(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, got)

	require.NoError(t, cached.Invalidate(ctx))

	got, err = cached.SummaryCards(ctx)
	require.NoError(t, err)
	assert.Equal(t, second, got)
}

func TestCached_KeysByParams(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	next := report.NewMockReports(ctrl)
	cached, _ := newCached(t, next)
	ctx := context.Background()

	jan, err := report.ParseRange("2024-01-01", "2024-01-31")
	require.NoError(t, err)

	feb, err := report.ParseRange("2024-02-01", "2024-02-29")
	require.NoError(t, err)

	next.EXPECT().VendorPurchases(gomock.Any(), jan).Return(&report.VendorPurchases{VendorCount: 1}, nil).Times(1)
	next.EXPECT().VendorPurchases(gomock.Any(), feb).Return(&report.VendorPurchases{VendorCount: 2}, nil).Times(1)

	for range 2 {
		got, err := cached.VendorPurchases(ctx, jan)
		require.NoError(t, err)
		assert.Equal(t, 1, got.VendorCount)

		got, err = cached.VendorPurchases(ctx, feb)
		require.NoError(t, err)
		assert.Equal(t, 2, got.VendorCount)
	}
}

func TestCached_FallsThroughWhenRedisDown(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	next := report.NewMockReports(ctrl)
	cached, mr := newCached(t, next)
	mr.Close()

	next.EXPECT().RecentBills(gomock.Any()).Return([]report.RecentTransaction{{ReferenceNumber: "TXN-1-aaaaaa"}}, nil)

	got, err := cached.RecentBills(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
}

func TestCached_ObservesLookups(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	next := report.NewMockReports(ctrl)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	var results []string

	cached := report.NewCached(next, cache.New(client, "reports", time.Minute),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		report.WithLookupObserver(func(result string) { results = append(results, result) }),
	)

	next.EXPECT().RecentInvoices(gomock.Any()).Return([]report.RecentTransaction{}, nil).Times(1)

	for range 2 {
		_, err := cached.RecentInvoices(context.Background())
		require.NoError(t, err)
	}

	assert.Equal(t, []string{"miss", "hit"}, results)
}

func TestCached_LoadOutlivesCanceledCaller(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	next := report.NewMockReports(ctrl)
	cached, _ := newCached(t, next)

	started := make(chan struct{})
	release := make(chan struct{})

	next.EXPECT().RecentBills(gomock.Any()).DoAndReturn(func(ctx context.Context) ([]report.RecentTransaction, error) {
		close(started)
		<-release

		if err := ctx.Err(); err != nil {
			return nil, err
		}

		return []report.RecentTransaction{{ReferenceNumber: "TXN-1-aaaaaa"}}, nil
	}).Times(1)

	ctx, cancel := context.WithCancel(context.Background())

	type result struct {
		rows []report.RecentTransaction
		err  error
	}

	done := make(chan result, 1)
	go func() {
		rows, err := cached.RecentBills(ctx)
		done <- result{rows: rows, err: err}
	}()

	<-started
	cancel()
	close(release)

	res := <-done
	require.NoError(t, res.err)
	require.Len(t, res.rows, 1)

	got, err := cached.RecentBills(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "TXN-1-aaaaaa", got[0].ReferenceNumber)
}

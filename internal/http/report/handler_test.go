package report_test

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/tally/internal/access"
	httpreport "github.com/MrJamesThe3rd/tally/internal/http/report"
	"github.com/MrJamesThe3rd/tally/internal/report"
)

func allow(access.Requirement) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler { return next }
}

func newRouter(t *testing.T) (*report.MockReports, chi.Router) {
	t.Helper()

	reports := report.NewMockReports(gomock.NewController(t))
	h := httpreport.NewHandler(reports, allow, slog.New(slog.NewTextHandler(io.Discard, nil)))

	r := chi.NewRouter()
	r.Route("/dashboard", h.DashboardRoutes)
	r.Route("/reports", h.ReportRoutes)

	return reports, r
}

func get(r http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	return rec
}

func TestHandler_Summary(t *testing.T) {
	reports, r := newRouter(t)

	reports.EXPECT().SummaryCards(gomock.Any()).Return(&report.Summary{
		TotalCustomers: 3,
		InvoiceChange:  "+50%",
		BillChange:     "0%",
	}, nil)

	rec := get(r, "/dashboard/summary")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"totalCustomers":3`)
	assert.Contains(t, rec.Body.String(), `"invoiceChange":"+50%"`)
}

func TestHandler_Cashflow(t *testing.T) {
	t.Run("explicit year", func(t *testing.T) {
		reports, r := newRouter(t)
		reports.EXPECT().CashflowTrend(gomock.Any(), 2023).Return(&report.Cashflow{Year: 2023}, nil)

		assert.Equal(t, http.StatusOK, get(r, "/dashboard/cashflow?year=2023").Code)
	})

	t.Run("default year", func(t *testing.T) {
		reports, r := newRouter(t)
		reports.EXPECT().CashflowTrend(gomock.Any(), 0).Return(&report.Cashflow{Year: 2024}, nil)

		assert.Equal(t, http.StatusOK, get(r, "/dashboard/cashflow").Code)
	})

	t.Run("bad year", func(t *testing.T) {
		_, r := newRouter(t)

		assert.Equal(t, http.StatusBadRequest, get(r, "/dashboard/cashflow?year=soon").Code)
	})
}

func TestHandler_RangedReports(t *testing.T) {
	t.Run("passes parsed range", func(t *testing.T) {
		reports, r := newRouter(t)

		want, err := report.ParseRange("2024-01-01", "2024-03-31")
		require.NoError(t, err)

		reports.EXPECT().ProfitLoss(gomock.Any(), want).Return(&report.ProfitLoss{}, nil)

		assert.Equal(t, http.StatusOK, get(r, "/reports/profit-loss?startDate=2024-01-01&endDate=2024-03-31").Code)
	})

	t.Run("inverted range", func(t *testing.T) {
		_, r := newRouter(t)

		assert.Equal(t, http.StatusBadRequest, get(r, "/reports/sales-summary?startDate=2024-04-01&endDate=2024-03-01").Code)
	})

	t.Run("backend failure", func(t *testing.T) {
		reports, r := newRouter(t)
		reports.EXPECT().OutstandingPayments(gomock.Any(), report.Range{}).Return(nil, errors.New("db down"))

		rec := get(r, "/reports/outstanding-payments")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "db down")
	})
}

func TestHandler_CustomerBalances(t *testing.T) {
	reports, r := newRouter(t)
	reports.EXPECT().CustomerBalances(gomock.Any(), "active").Return(&report.CustomerBalances{}, nil)

	assert.Equal(t, http.StatusOK, get(r, "/reports/customer-balances?status=active").Code)
}

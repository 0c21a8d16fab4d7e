package report

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/tally/internal/access"
	"github.com/MrJamesThe3rd/tally/internal/http/httpx"
	mw "github.com/MrJamesThe3rd/tally/internal/http/middleware"
	"github.com/MrJamesThe3rd/tally/internal/permission"
	"github.com/MrJamesThe3rd/tally/internal/report"
)

// Handler serves the dashboard widgets and the report pages. Every route needs
// the read permission.
type Handler struct {
	reports report.Reports
	gate    mw.Gate
	logger  *slog.Logger
}

func NewHandler(reports report.Reports, gate mw.Gate, logger *slog.Logger) *Handler {
	return &Handler{reports: reports, gate: gate, logger: logger}
}

func (h *Handler) DashboardRoutes(r chi.Router) {
	r.Use(h.gate(access.Need(permission.KindRead)))

	r.Get("/summary", h.summary)
	r.Get("/income-expense", h.incomeExpense)
	r.Get("/cashflow", h.cashflow)
	r.Get("/recent-invoices", h.recentInvoices)
	r.Get("/recent-bills", h.recentBills)
}

func (h *Handler) ReportRoutes(r chi.Router) {
	r.Use(h.gate(access.Need(permission.KindRead)))

	r.Get("/customer-balances", h.customerBalances)
	r.Get("/vendor-purchases", ranged(h, h.reports.VendorPurchases))
	r.Get("/sales-summary", ranged(h, h.reports.SalesSummary))
	r.Get("/profit-loss", ranged(h, h.reports.ProfitLoss))
	r.Get("/outstanding-payments", ranged(h, h.reports.OutstandingPayments))
}

// respond writes {"data": v} or maps err.
func respond[T any](w http.ResponseWriter, r *http.Request, h *Handler, v T, err error) {
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}

	httpx.Data(w, http.StatusOK, v)
}

// ranged adapts a report over a startDate/endDate window.
func ranged[T any](h *Handler, fn func(ctx context.Context, rng report.Range) (T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rng, err := report.ParseRange(r.URL.Query().Get("startDate"), r.URL.Query().Get("endDate"))
		if err != nil {
			httpx.RespondError(w, r, h.logger, err)
			return
		}

		v, err := fn(r.Context(), rng)
		respond(w, r, h, v, err)
	}
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	v, err := h.reports.SummaryCards(r.Context())
	respond(w, r, h, v, err)
}

func (h *Handler) incomeExpense(w http.ResponseWriter, r *http.Request) {
	v, err := h.reports.IncomeExpense(r.Context())
	respond(w, r, h, v, err)
}

func (h *Handler) cashflow(w http.ResponseWriter, r *http.Request) {
	year, err := httpx.QueryInt(r, "year", 0)
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}

	v, err := h.reports.CashflowTrend(r.Context(), year)
	respond(w, r, h, v, err)
}

func (h *Handler) recentInvoices(w http.ResponseWriter, r *http.Request) {
	v, err := h.reports.RecentInvoices(r.Context())
	respond(w, r, h, v, err)
}

func (h *Handler) recentBills(w http.ResponseWriter, r *http.Request) {
	v, err := h.reports.RecentBills(r.Context())
	respond(w, r, h, v, err)
}

func (h *Handler) customerBalances(w http.ResponseWriter, r *http.Request) {
	v, err := h.reports.CustomerBalances(r.Context(), r.URL.Query().Get("status"))
	respond(w, r, h, v, err)
}

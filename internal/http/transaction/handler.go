package transaction

import (
	"bytes"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/access"
	"github.com/MrJamesThe3rd/tally/internal/http/httpx"
	mw "github.com/MrJamesThe3rd/tally/internal/http/middleware"
	"github.com/MrJamesThe3rd/tally/internal/invoice"
	"github.com/MrJamesThe3rd/tally/internal/pagination"
	"github.com/MrJamesThe3rd/tally/internal/permission"
	"github.com/MrJamesThe3rd/tally/internal/report"
	"github.com/MrJamesThe3rd/tally/internal/settings"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

type Handler struct {
	svc      *transaction.Service
	settings *settings.Service
	gate     mw.Gate
	logger   *slog.Logger
}

func NewHandler(svc *transaction.Service, settingsSvc *settings.Service, gate mw.Gate, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, settings: settingsSvc, gate: gate, logger: logger}
}

// Routes mounts the ledger-wide routes under /transactions.
func (h *Handler) Routes(r chi.Router) {
	r.With(h.gate(access.Need(permission.KindRead))).Get("/", h.list)
	r.With(h.gate(access.Need(permission.KindRead))).Get("/{id}", h.get)
	r.With(h.gate(access.Need(permission.KindRead))).Get("/{id}/invoice.pdf", h.invoicePDF)
	r.With(
		h.gate(access.Need(permission.KindUpdate)),
		middleware.AllowContentType("application/json"),
	).Put("/{id}", h.update)
	r.With(h.gate(access.Need(permission.KindDelete))).Delete("/{id}", h.delete)
}

// CounterpartyRoutes mounts /customers/{id}/transactions or /vendors/{id}/transactions.
func (h *Handler) CounterpartyRoutes(typ transaction.Type) func(r chi.Router) {
	return func(r chi.Router) {
		r.With(h.gate(access.Need(permission.KindRead))).Get("/", h.listFor(typ))
		r.With(
			h.gate(access.Need(permission.KindCreate)),
			middleware.AllowContentType("application/json"),
		).Post("/", h.createFor(typ))
	}
}

type createTransactionRequest struct {
	ItemPurchased      string                    `json:"itemPurchased" validate:"required"`
	Quantity           *decimal.Decimal          `json:"quantity"`
	TransactionDate    dateInput                 `json:"transactionDate"`
	ReferenceNumber    string                    `json:"referenceNumber"`
	PriceNGN           decimal.Decimal           `json:"priceNgn"`
	PriceUSD           decimal.Decimal           `json:"priceUsd"`
	ExchangeRate       decimal.Decimal           `json:"exchangeRate"`
	OtherExpensesNGN   decimal.Decimal           `json:"otherExpensesNgn"`
	OtherExpensesUSD   decimal.Decimal           `json:"otherExpensesUsd"`
	TotalNGN           decimal.Decimal           `json:"totalNgn"`
	TotalUSD           decimal.Decimal           `json:"totalUsd"`
	AmountPaid         decimal.Decimal           `json:"amountPaid"`
	OutstandingBalance *decimal.Decimal          `json:"outstandingBalance"`
	PaymentStatus      transaction.PaymentStatus `json:"paymentStatus" validate:"omitempty,oneof=paid partial unpaid overdue"`
}

func (h *Handler) createFor(typ transaction.Type) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		counterpartyID, err := httpx.IDParam(r, "id")
		if err != nil {
			httpx.RespondError(w, r, h.logger, err)
			return
		}

		var req createTransactionRequest
		if err := httpx.Decode(w, r, &req); err != nil {
			httpx.RespondError(w, r, h.logger, err)
			return
		}

		params := transaction.CreateParams{
			ItemPurchased:      req.ItemPurchased,
			Quantity:           req.Quantity,
			TransactionDate:    string(req.TransactionDate),
			ReferenceNumber:    req.ReferenceNumber,
			PriceNGN:           req.PriceNGN,
			PriceUSD:           req.PriceUSD,
			ExchangeRate:       req.ExchangeRate,
			OtherExpensesNGN:   req.OtherExpensesNGN,
			OtherExpensesUSD:   req.OtherExpensesUSD,
			TotalNGN:           req.TotalNGN,
			TotalUSD:           req.TotalUSD,
			AmountPaid:         req.AmountPaid,
			OutstandingBalance: req.OutstandingBalance,
			PaymentStatus:      req.PaymentStatus,
		}

		var tx *transaction.Transaction
		if typ == transaction.TypeVendor {
			tx, err = h.svc.CreateVendorTransaction(r.Context(), counterpartyID, params, httpx.Actor(r))
		} else {
			tx, err = h.svc.CreateCustomerTransaction(r.Context(), counterpartyID, params, httpx.Actor(r))
		}

		if err != nil {
			httpx.RespondError(w, r, h.logger, err)
			return
		}

		httpx.Data(w, http.StatusCreated, toResponse(tx))
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}

	if t := r.URL.Query().Get("type"); t != "" {
		v := transaction.Type(t)
		filter.Type = &v
	}

	h.respondList(w, r, filter)
}

func (h *Handler) listFor(typ transaction.Type) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		counterpartyID, err := httpx.IDParam(r, "id")
		if err != nil {
			httpx.RespondError(w, r, h.logger, err)
			return
		}

		filter, err := parseFilter(r)
		if err != nil {
			httpx.RespondError(w, r, h.logger, err)
			return
		}

		filter.Type = &typ
		if typ == transaction.TypeVendor {
			filter.VendorID = &counterpartyID
		} else {
			filter.CustomerID = &counterpartyID
		}

		h.respondList(w, r, filter)
	}
}

func (h *Handler) respondList(w http.ResponseWriter, r *http.Request, filter transaction.ListFilter) {
	txs, total, err := h.svc.List(r.Context(), filter)
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}

	httpx.List(w, toResponseList(txs), filter.Page, filter.Limit, total)
}

func parseFilter(r *http.Request) (transaction.ListFilter, error) {
	q := r.URL.Query()

	page, limit, err := httpx.Page(r)
	if err != nil {
		return transaction.ListFilter{}, err
	}

	page, limit = pagination.Normalize(page, limit)

	rng, err := report.ParseRange(q.Get("startDate"), q.Get("endDate"))
	if err != nil {
		return transaction.ListFilter{}, err
	}

	filter := transaction.ListFilter{
		StartDate: rng.From,
		EndDate:   rng.To,
		Search:    q.Get("search"),
		Page:      page,
		Limit:     limit,
	}

	if s := q.Get("paymentStatus"); s != "" {
		v := transaction.PaymentStatus(s)
		filter.PaymentStatus = &v
	}

	return filter, nil
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}

	tx, err := h.svc.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}

	httpx.Data(w, http.StatusOK, toResponse(tx))
}

type updateTransactionRequest struct {
	ItemPurchased      *string                    `json:"itemPurchased,omitempty"`
	Quantity           *decimal.Decimal           `json:"quantity,omitempty"`
	TransactionDate    *dateInput                 `json:"transactionDate,omitempty"`
	ReferenceNumber    *string                    `json:"referenceNumber,omitempty"`
	PriceNGN           *decimal.Decimal           `json:"priceNgn,omitempty"`
	PriceUSD           *decimal.Decimal           `json:"priceUsd,omitempty"`
	ExchangeRate       *decimal.Decimal           `json:"exchangeRate,omitempty"`
	OtherExpensesNGN   *decimal.Decimal           `json:"otherExpensesNgn,omitempty"`
	OtherExpensesUSD   *decimal.Decimal           `json:"otherExpensesUsd,omitempty"`
	TotalNGN           *decimal.Decimal           `json:"totalNgn,omitempty"`
	TotalUSD           *decimal.Decimal           `json:"totalUsd,omitempty"`
	AmountPaid         *decimal.Decimal           `json:"amountPaid,omitempty"`
	OutstandingBalance *decimal.Decimal           `json:"outstandingBalance,omitempty"`
	PaymentStatus      *transaction.PaymentStatus `json:"paymentStatus,omitempty" validate:"omitempty,oneof=paid partial unpaid overdue"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}

	var req updateTransactionRequest
	if err := httpx.Decode(w, r, &req); err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}

	tx, err := h.svc.Update(r.Context(), id, transaction.UpdateParams{
		ItemPurchased:      req.ItemPurchased,
		Quantity:           req.Quantity,
		TransactionDate:    (*string)(req.TransactionDate),
		ReferenceNumber:    req.ReferenceNumber,
		PriceNGN:           req.PriceNGN,
		PriceUSD:           req.PriceUSD,
		ExchangeRate:       req.ExchangeRate,
		OtherExpensesNGN:   req.OtherExpensesNGN,
		OtherExpensesUSD:   req.OtherExpensesUSD,
		TotalNGN:           req.TotalNGN,
		TotalUSD:           req.TotalUSD,
		AmountPaid:         req.AmountPaid,
		OutstandingBalance: req.OutstandingBalance,
		PaymentStatus:      req.PaymentStatus,
	}, httpx.Actor(r))
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}

	httpx.Data(w, http.StatusOK, toResponse(tx))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}

	if err := h.svc.SoftDelete(r.Context(), id, httpx.Actor(r)); err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}

	httpx.NoContent(w)
}

func (h *Handler) invoicePDF(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}

	tx, err := h.svc.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}

	biz, err := h.settings.Business(r.Context())
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}

	var buf bytes.Buffer
	if err := invoice.Render(&buf, tx, *biz); err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+invoice.Filename(tx)+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))

	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Error("failed to write invoice", "id", id, "error", err)
	}
}

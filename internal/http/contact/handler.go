package contact

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/access"
	"github.com/MrJamesThe3rd/tally/internal/apperr"
	"github.com/MrJamesThe3rd/tally/internal/contact"
	"github.com/MrJamesThe3rd/tally/internal/http/httpx"
	mw "github.com/MrJamesThe3rd/tally/internal/http/middleware"
	"github.com/MrJamesThe3rd/tally/internal/pagination"
	"github.com/MrJamesThe3rd/tally/internal/permission"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

// Handler serves one kind of contact. Customers additionally expose their ledger
// balance and last-transaction snapshot.
type Handler struct {
	svc    *contact.Service
	ledger *transaction.Service
	gate   mw.Gate
	logger *slog.Logger
}

func NewHandler(svc *contact.Service, ledger *transaction.Service, gate mw.Gate, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, ledger: ledger, gate: gate, logger: logger}
}

func (h *Handler) Routes(r chi.Router) {
	read := h.gate(access.Need(permission.KindRead))
	jsonBody := middleware.AllowContentType("application/json")

	r.With(read).Get("/", h.list)
	r.With(h.gate(access.Need(permission.KindCreate)), jsonBody).Post("/", h.create)

	if h.svc.Kind() == contact.KindCustomer {
		r.With(read).Get("/last-transaction", h.lastTransaction)
		r.With(read).Get("/{id}/balance", h.balance)
	}

	r.With(read).Get("/{id}", h.get)
	r.With(h.gate(access.Need(permission.KindUpdate)), jsonBody).Put("/{id}", h.update)
	r.With(h.gate(access.Need(permission.KindDelete))).Delete("/{id}", h.delete)
}

type contactResponse struct {
	ID        uuid.UUID      `json:"id"`
	Name      string         `json:"name"`
	Status    contact.Status `json:"status"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt *time.Time     `json:"updatedAt,omitempty"`
}

func toResponse(c *contact.Contact) contactResponse {
	return contactResponse{
		ID:        c.ID,
		Name:      c.Name,
		Status:    c.Status,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

type createContactRequest struct {
	Name   string         `json:"name" validate:"required"`
	Status contact.Status `json:"status" validate:"omitempty,oneof=active inactive"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createContactRequest
	if err := httpx.Decode(w, r, &req); err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}

	c, err := h.svc.Create(r.Context(), contact.CreateParams{Name: req.Name, Status: req.Status})
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}

	httpx.Data(w, http.StatusCreated, toResponse(c))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	page, limit, err := httpx.Page(r)
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}

	page, limit = pagination.Normalize(page, limit)

	filter := contact.ListFilter{
		Search: r.URL.Query().Get("search"),
		Page:   page,
		Limit:  limit,
	}

	if s := r.URL.Query().Get("status"); s != "" {
		v := contact.Status(s)
		filter.Status = &v
	}

	contacts, total, err := h.svc.List(r.Context(), filter)
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}

	resp := make([]contactResponse, len(contacts))
	for i, c := range contacts {
		resp[i] = toResponse(c)
	}

	httpx.List(w, resp, page, limit, total)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}

	c, err := h.svc.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}

	httpx.Data(w, http.StatusOK, toResponse(c))
}

type updateContactRequest struct {
	Name   *string         `json:"name,omitempty"`
	Status *contact.Status `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}

	var req updateContactRequest
	if err := httpx.Decode(w, r, &req); err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}

	c, err := h.svc.Update(r.Context(), id, contact.UpdateParams{Name: req.Name, Status: req.Status})
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}

	httpx.Data(w, http.StatusOK, toResponse(c))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}

	httpx.NoContent(w)
}

type balanceResponse struct {
	CustomerID uuid.UUID       `json:"customerId"`
	Balance    decimal.Decimal `json:"balance"`
}

func (h *Handler) balance(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}

	balance, err := h.ledger.BalanceForCustomer(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}

	httpx.Data(w, http.StatusOK, balanceResponse{CustomerID: id, Balance: balance})
}

type snapshotResponse struct {
	CustomerID          uuid.UUID                  `json:"customerId"`
	OutstandingBalance  decimal.Decimal            `json:"outstandingBalance"`
	PaymentStatus       *transaction.PaymentStatus `json:"paymentStatus"`
	LastTransactionDate *time.Time                 `json:"lastTransactionDate"`
	HasTransactions     bool                       `json:"hasTransactions"`
}

func (h *Handler) lastTransaction(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		httpx.RespondError(w, r, h.logger, fmt.Errorf("%w: name is required", apperr.ErrBadRequest))
		return
	}

	snap, err := h.ledger.LastTransactionSnapshot(r.Context(), name)
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}

	httpx.Data(w, http.StatusOK, snapshotResponse{
		CustomerID:          snap.CustomerID,
		OutstandingBalance:  snap.OutstandingBalance,
		PaymentStatus:       snap.PaymentStatus,
		LastTransactionDate: snap.LastTransactionDate,
		HasTransactions:     snap.HasTransactions,
	})
}

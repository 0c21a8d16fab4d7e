package settings

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/access"
	"github.com/MrJamesThe3rd/tally/internal/http/httpx"
	mw "github.com/MrJamesThe3rd/tally/internal/http/middleware"
	"github.com/MrJamesThe3rd/tally/internal/permission"
	"github.com/MrJamesThe3rd/tally/internal/settings"
)

type Handler struct {
	svc    *settings.Service
	gate   mw.Gate
	logger *slog.Logger
}

func NewHandler(svc *settings.Service, gate mw.Gate, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, gate: gate, logger: logger}
}

func (h *Handler) Routes(r chi.Router) {
	read := h.gate(access.Need(permission.KindRead))
	write := h.gate(access.AdminNeed(permission.KindUpdate))

	r.With(read).Get("/exchange-rate", h.getExchangeRate)
	r.With(write).Put("/exchange-rate", h.putExchangeRate)
	r.With(read).Get("/business", h.getBusiness)
	r.With(write).Put("/business", h.putBusiness)
}

type exchangeRateBody struct {
	BuyRate   decimal.Decimal `json:"buyRate"`
	SellRate  decimal.Decimal `json:"sellRate"`
	UpdatedAt *time.Time      `json:"updatedAt,omitempty"`
}

func toExchangeRate(rate *settings.ExchangeRate) exchangeRateBody {
	body := exchangeRateBody{BuyRate: rate.BuyRate, SellRate: rate.SellRate}
	if !rate.UpdatedAt.IsZero() {
		body.UpdatedAt = &rate.UpdatedAt
	}

	return body
}

type businessBody struct {
	Name               string              `json:"name"`
	Email              string              `json:"email"`
	DefaultCurrency    settings.Currency   `json:"defaultCurrency"`
	ExchangeUpdateMode settings.UpdateMode `json:"exchangeUpdateMode"`
	UpdatedAt          *time.Time          `json:"updatedAt,omitempty"`
}

func toBusiness(b *settings.Business) businessBody {
	body := businessBody{
		Name:               b.Name,
		Email:              b.Email,
		DefaultCurrency:    b.DefaultCurrency,
		ExchangeUpdateMode: b.ExchangeUpdateMode,
	}
	if !b.UpdatedAt.IsZero() {
		body.UpdatedAt = &b.UpdatedAt
	}

	return body
}

func (h *Handler) getExchangeRate(w http.ResponseWriter, r *http.Request) {
	rate, err := h.svc.ExchangeRate(r.Context())
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}

	httpx.Data(w, http.StatusOK, toExchangeRate(rate))
}

type putExchangeRateRequest struct {
	BuyRate  *decimal.Decimal `json:"buyRate,omitempty"`
	SellRate *decimal.Decimal `json:"sellRate,omitempty"`
}

func (h *Handler) putExchangeRate(w http.ResponseWriter, r *http.Request) {
	var req putExchangeRateRequest
	if err := httpx.Decode(w, r, &req); err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}

	rate, err := h.svc.SetExchangeRate(r.Context(), settings.ExchangeRateParams{
		BuyRate:  req.BuyRate,
		SellRate: req.SellRate,
	})
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}

	httpx.Data(w, http.StatusOK, toExchangeRate(rate))
}

func (h *Handler) getBusiness(w http.ResponseWriter, r *http.Request) {
	b, err := h.svc.Business(r.Context())
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}

	httpx.Data(w, http.StatusOK, toBusiness(b))
}

type putBusinessRequest struct {
	Name               *string              `json:"name,omitempty"`
	Email              *string              `json:"email,omitempty" validate:"omitempty,email"`
	DefaultCurrency    *settings.Currency   `json:"defaultCurrency,omitempty" validate:"omitempty,oneof=NGN USD"`
	ExchangeUpdateMode *settings.UpdateMode `json:"exchangeUpdateMode,omitempty" validate:"omitempty,oneof=manual automatic"`
}

func (h *Handler) putBusiness(w http.ResponseWriter, r *http.Request) {
	var req putBusinessRequest
	if err := httpx.Decode(w, r, &req); err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}

	b, err := h.svc.SetBusiness(r.Context(), settings.BusinessParams{
		Name:               req.Name,
		Email:              req.Email,
		DefaultCurrency:    req.DefaultCurrency,
		ExchangeUpdateMode: req.ExchangeUpdateMode,
	})
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}

	httpx.Data(w, http.StatusOK, toBusiness(b))
}

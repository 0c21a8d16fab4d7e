package export

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/tally/internal/access"
	"github.com/MrJamesThe3rd/tally/internal/apperr"
	"github.com/MrJamesThe3rd/tally/internal/export"
	"github.com/MrJamesThe3rd/tally/internal/http/httpx"
	mw "github.com/MrJamesThe3rd/tally/internal/http/middleware"
	"github.com/MrJamesThe3rd/tally/internal/permission"
	"github.com/MrJamesThe3rd/tally/internal/report"
	"github.com/MrJamesThe3rd/tally/internal/settings"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

type Handler struct {
	svc      *export.Service
	settings *settings.Service
	gate     mw.Gate
	logger   *slog.Logger
	now      func() time.Time
}

func NewHandler(svc *export.Service, settingsSvc *settings.Service, gate mw.Gate, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, settings: settingsSvc, gate: gate, logger: logger, now: time.Now}
}

func (h *Handler) Routes(r chi.Router) {
	r.With(h.gate(access.Need(permission.KindRead))).Get("/", h.download)
}

// download streams the rows matching type/startDate/endDate as ?format=csv
// (default) or ?format=zip.
func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	rng, err := report.ParseRange(q.Get("startDate"), q.Get("endDate"))
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}

	filter := transaction.ListFilter{StartDate: rng.From, EndDate: rng.To}
	if t := q.Get("type"); t != "" {
		v := transaction.Type(t)
		filter.Type = &v
	}

	format := q.Get("format")
	if format == "" {
		format = "csv"
	}

	if format != "csv" && format != "zip" {
		httpx.RespondError(w, r, h.logger, fmt.Errorf("%w: format must be csv or zip", apperr.ErrBadRequest))
		return
	}

	txs, err := h.svc.Collect(r.Context(), filter)
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}

	var (
		buf         bytes.Buffer
		contentType string
	)

	switch format {
	case "zip":
		biz, err := h.settings.Business(r.Context())
		if err != nil {
			httpx.RespondError(w, r, h.logger, err)
			return
		}

		contentType = "application/zip"
		err = h.svc.WriteArchive(&buf, txs, *biz)
		if err != nil {
			httpx.RespondError(w, r, h.logger, err)
			return
		}
	default:
		contentType = "text/csv; charset=utf-8"
		if err := h.svc.WriteCSV(&buf, txs); err != nil {
			httpx.RespondError(w, r, h.logger, err)
			return
		}
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=\"ledger_%s.%s\"", h.now().Format("20060102"), format))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))

	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Error("failed to write export", "error", err)
	}
}

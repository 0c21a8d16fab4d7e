package importcsv

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/tally/internal/access"
	"github.com/MrJamesThe3rd/tally/internal/apperr"
	"github.com/MrJamesThe3rd/tally/internal/http/httpx"
	mw "github.com/MrJamesThe3rd/tally/internal/http/middleware"
	"github.com/MrJamesThe3rd/tally/internal/importer"
	"github.com/MrJamesThe3rd/tally/internal/permission"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

const maxUploadBytes = 10 << 20

type Handler struct {
	importSvc *importer.Service
	txSvc     *transaction.Service
	gate      mw.Gate
	logger    *slog.Logger
}

func NewHandler(importSvc *importer.Service, txSvc *transaction.Service, gate mw.Gate, logger *slog.Logger) *Handler {
	return &Handler{
		importSvc: importSvc,
		txSvc:     txSvc,
		gate:      gate,
		logger:    logger,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.With(h.gate(access.Need(permission.KindCreate))).Post("/", h.importCSV)
}

type importedRow struct {
	ID              uuid.UUID        `json:"id"`
	TransactionType transaction.Type `json:"transactionType"`
	ReferenceNumber string           `json:"referenceNumber"`
}

type importResponse struct {
	Imported     int           `json:"imported"`
	Transactions []importedRow `json:"transactions"`
}

// importCSV takes a multipart "file" field and an optional "format" field.
// The whole file is stored or nothing is.
func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		httpx.RespondError(w, r, h.logger, fmt.Errorf("%w: failed to parse form: %v", apperr.ErrBadRequest, err))
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		httpx.RespondError(w, r, h.logger, fmt.Errorf("%w: file field is required", apperr.ErrBadRequest))
		return
	}
	defer file.Close()

	rows, err := h.importSvc.Import(importer.Format(r.FormValue("format")), file)
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}

	if len(rows) == 0 {
		httpx.RespondError(w, r, h.logger, fmt.Errorf("%w: file contains no rows", apperr.ErrBadRequest))
		return
	}

	txs, err := h.txSvc.ImportBatch(r.Context(), rows, httpx.Actor(r))
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}

	resp := importResponse{
		Imported:     len(txs),
		Transactions: make([]importedRow, 0, len(txs)),
	}
	for _, tx := range txs {
		resp.Transactions = append(resp.Transactions, importedRow{
			ID:              tx.ID,
			TransactionType: tx.Type,
			ReferenceNumber: tx.ReferenceNumber,
		})
	}

	httpx.Data(w, http.StatusCreated, resp)
}

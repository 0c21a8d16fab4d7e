package role

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/tally/internal/access"
	"github.com/MrJamesThe3rd/tally/internal/http/httpx"
	mw "github.com/MrJamesThe3rd/tally/internal/http/middleware"
	"github.com/MrJamesThe3rd/tally/internal/permission"
	"github.com/MrJamesThe3rd/tally/internal/role"
)

type Handler struct {
	svc    *role.Service
	gate   mw.Gate
	logger *slog.Logger
}

func NewHandler(svc *role.Service, gate mw.Gate, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, gate: gate, logger: logger}
}

func (h *Handler) Routes(r chi.Router) {
	r.With(h.gate(access.AdminNeed(permission.KindRead))).Get("/", h.list)
	r.With(h.gate(access.AdminNeed(permission.KindCreate))).Post("/", h.create)
	r.With(h.gate(access.AdminNeed(permission.KindRead))).Get("/{id}", h.get)
	r.With(h.gate(access.AdminNeed(permission.KindUpdate))).Put("/{id}", h.update)
	r.With(h.gate(access.AdminNeed(permission.KindDelete))).Delete("/{id}", h.delete)
}

type roleResponse struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	UserCount   int        `json:"userCount"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

func toResponse(r *role.Role) roleResponse {
	return roleResponse{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		UserCount:   r.UserCount,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

type createRoleRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createRoleRequest
	if err := httpx.Decode(w, r, &req); err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}

	created, err := h.svc.Create(r.Context(), role.CreateParams{Name: req.Name, Description: req.Description})
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}

	httpx.Data(w, http.StatusCreated, toResponse(created))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	roles, err := h.svc.List(r.Context())
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}

	resp := make([]roleResponse, len(roles))
	for i, rl := range roles {
		resp[i] = toResponse(rl)
	}

	httpx.Data(w, http.StatusOK, resp)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}

	found, err := h.svc.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}

	httpx.Data(w, http.StatusOK, toResponse(found))
}

type updateRoleRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}

	var req updateRoleRequest
	if err := httpx.Decode(w, r, &req); err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}

	updated, err := h.svc.Update(r.Context(), id, role.UpdateParams{Name: req.Name, Description: req.Description})
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}

	httpx.Data(w, http.StatusOK, toResponse(updated))
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

package user

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/tally/internal/access"
	"github.com/MrJamesThe3rd/tally/internal/http/httpx"
	mw "github.com/MrJamesThe3rd/tally/internal/http/middleware"
	"github.com/MrJamesThe3rd/tally/internal/pagination"
	"github.com/MrJamesThe3rd/tally/internal/permission"
	"github.com/MrJamesThe3rd/tally/internal/user"
)

type Handler struct {
	svc    *user.Service
	gate   mw.Gate
	logger *slog.Logger
}

func NewHandler(svc *user.Service, gate mw.Gate, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, gate: gate, logger: logger}
}

func (h *Handler) Routes(r chi.Router) {
	r.With(h.gate(access.AdminNeed(permission.KindRead))).Get("/", h.list)
	r.With(h.gate(access.AdminNeed(permission.KindCreate))).Post("/", h.create)
	r.With(h.gate(access.AdminNeed(permission.KindRead))).Get("/{id}", h.get)
	r.With(h.gate(access.AdminNeed(permission.KindUpdate))).Put("/{id}", h.update)
	r.With(h.gate(access.AdminNeed(permission.KindDelete))).Delete("/{id}", h.delete)
}

type userResponse struct {
	ID        uuid.UUID   `json:"id"`
	Email     string      `json:"email"`
	Name      string      `json:"name"`
	Status    user.Status `json:"status"`
	RoleID    uuid.UUID   `json:"roleId"`
	RoleName  string      `json:"roleName,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt *time.Time  `json:"updatedAt,omitempty"`
}

func toResponse(u *user.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Status:    u.Status,
		RoleID:    u.RoleID,
		RoleName:  u.RoleName,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type createUserRequest struct {
	Email    string      `json:"email" validate:"required,email"`
	Password string      `json:"password" validate:"required"`
	Name     string      `json:"name" validate:"required"`
	Status   user.Status `json:"status" validate:"omitempty,oneof=active inactive"`
	RoleID   uuid.UUID   `json:"roleId" validate:"required"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := httpx.Decode(w, r, &req); err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}

	u, err := h.svc.Create(r.Context(), user.CreateParams{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Status:   req.Status,
		RoleID:   req.RoleID,
	})
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}

	httpx.Data(w, http.StatusCreated, toResponse(u))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	page, limit, err := httpx.Page(r)
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}

	roleID, err := httpx.QueryUUID(r, "roleId")
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}

	page, limit = pagination.Normalize(page, limit)

	filter := user.ListFilter{
		Search: r.URL.Query().Get("search"),
		RoleID: roleID,
		Page:   page,
		Limit:  limit,
	}

	if s := r.URL.Query().Get("status"); s != "" {
		v := user.Status(s)
		filter.Status = &v
	}

	users, total, err := h.svc.List(r.Context(), filter)
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}

	resp := make([]userResponse, len(users))
	for i, u := range users {
		resp[i] = toResponse(u)
	}

	httpx.List(w, resp, page, limit, total)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}

	u, err := h.svc.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}

	httpx.Data(w, http.StatusOK, toResponse(u))
}

type updateUserRequest struct {
	Email    *string      `json:"email,omitempty" validate:"omitempty,email"`
	Password *string      `json:"password,omitempty"`
	Name     *string      `json:"name,omitempty"`
	Status   *user.Status `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
	RoleID   *uuid.UUID   `json:"roleId,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}

	var req updateUserRequest
	if err := httpx.Decode(w, r, &req); err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}

	u, err := h.svc.Update(r.Context(), id, user.UpdateParams{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Status:   req.Status,
		RoleID:   req.RoleID,
	})
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}

	httpx.Data(w, http.StatusOK, toResponse(u))
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

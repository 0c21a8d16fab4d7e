package permission

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/tally/internal/access"
	"github.com/MrJamesThe3rd/tally/internal/auth"
	"github.com/MrJamesThe3rd/tally/internal/http/httpx"
	mw "github.com/MrJamesThe3rd/tally/internal/http/middleware"
	"github.com/MrJamesThe3rd/tally/internal/permission"
)

type Handler struct {
	svc    *permission.Service
	gate   mw.Gate
	logger *slog.Logger
}

func NewHandler(svc *permission.Service, gate mw.Gate, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, gate: gate, logger: logger}
}

// Routes mounts the permission matrix. /me is open to every authenticated user;
// everything else is restricted to admin roles.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/me", h.me)
	r.With(h.gate(access.AdminNeed(permission.KindRead))).Get("/", h.list)
	r.With(h.gate(access.AdminNeed(permission.KindRead))).Get("/{roleId}", h.get)
	r.With(h.gate(access.AdminNeed(permission.KindUpdate))).Put("/{roleId}", h.set)
	r.With(h.gate(access.AdminNeed(permission.KindUpdate))).Patch("/{roleId}/toggle", h.toggle)
}

type rolePermissionsResponse struct {
	RoleID      uuid.UUID      `json:"roleId"`
	RoleName    string         `json:"roleName,omitempty"`
	Permissions permission.Set `json:"permissions"`
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}

	eff, err := h.svc.ResolveForUser(r.Context(), userID)
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}

	httpx.Data(w, http.StatusOK, rolePermissionsResponse{
		RoleID:      eff.RoleID,
		RoleName:    eff.RoleName,
		Permissions: eff.Permissions,
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	listing, err := h.svc.List(r.Context())
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}

	resp := make([]rolePermissionsResponse, len(listing))
	for i, l := range listing {
		resp[i] = rolePermissionsResponse{RoleID: l.RoleID, RoleName: l.RoleName, Permissions: l.Permissions}
	}

	httpx.Data(w, http.StatusOK, resp)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	roleID, err := httpx.IDParam(r, "roleId")
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}

	set, err := h.svc.Resolve(r.Context(), roleID)
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}

	httpx.Data(w, http.StatusOK, rolePermissionsResponse{RoleID: roleID, Permissions: set})
}

func (h *Handler) set(w http.ResponseWriter, r *http.Request) {
	roleID, err := httpx.IDParam(r, "roleId")
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}

	var patch permission.Patch
	if err := httpx.Decode(w, r, &patch); err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}

	set, err := h.svc.SetAll(r.Context(), roleID, patch)
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}

	httpx.Data(w, http.StatusOK, rolePermissionsResponse{RoleID: roleID, Permissions: set})
}

type toggleRequest struct {
	Permission string `json:"permission" validate:"required"`
}

func (h *Handler) toggle(w http.ResponseWriter, r *http.Request) {
	roleID, err := httpx.IDParam(r, "roleId")
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}

	var req toggleRequest
	if err := httpx.Decode(w, r, &req); err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}

	kind, err := permission.ParseKind(req.Permission)
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}

	set, err := h.svc.Toggle(r.Context(), roleID, kind)
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}

	httpx.Data(w, http.StatusOK, rolePermissionsResponse{RoleID: roleID, Permissions: set})
}

package auth

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/tally/internal/auth"
	"github.com/MrJamesThe3rd/tally/internal/http/httpx"
	"github.com/MrJamesThe3rd/tally/internal/permission"
	"github.com/MrJamesThe3rd/tally/internal/user"
)

const (
	loginAttempts = 10
	loginWindow   = time.Minute
)

type Handler struct {
	users       *user.Service
	permissions *permission.Service
	tokens      *auth.Tokens
	logger      *slog.Logger
}

func NewHandler(users *user.Service, permissions *permission.Service, tokens *auth.Tokens, logger *slog.Logger) *Handler {
	return &Handler{users: users, permissions: permissions, tokens: tokens, logger: logger}
}

// PublicRoutes mounts the unauthenticated login route, limited per client IP.
func (h *Handler) PublicRoutes(r chi.Router) {
	limiter := httprate.Limit(loginAttempts, loginWindow,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, _ *http.Request) {
			httpx.Problem(w, http.StatusTooManyRequests, "Too Many Requests", "too many login attempts")
		}),
	)

	r.With(limiter).Post("/login", h.login)
}

// Routes mounts the routes that need a bearer token.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/me", h.me)
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type sessionUser struct {
	ID       uuid.UUID   `json:"id"`
	Email    string      `json:"email"`
	Name     string      `json:"name"`
	Status   user.Status `json:"status"`
	RoleID   uuid.UUID   `json:"roleId"`
	RoleName string      `json:"roleName"`
}

type loginResponse struct {
	Token       string         `json:"token"`
	ExpiresAt   time.Time      `json:"expiresAt"`
	User        sessionUser    `json:"user"`
	Permissions permission.Set `json:"permissions"`
}

type meResponse struct {
	User        sessionUser    `json:"user"`
	Permissions permission.Set `json:"permissions"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpx.Decode(w, r, &req); err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}

	u, err := h.users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}

	eff, err := h.permissions.ResolveForUser(r.Context(), u.ID)
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}

	token, expiresAt, err := h.tokens.Issue(u.ID)
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}

	h.logger.Info("user logged in", "user_id", u.ID, "role", eff.RoleName)

	httpx.Data(w, http.StatusOK, loginResponse{
		Token:       token,
		ExpiresAt:   expiresAt,
		User:        toSessionUser(u, eff.RoleName),
		Permissions: eff.Permissions,
	})
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}

	u, err := h.users.Get(r.Context(), userID)
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}

	eff, err := h.permissions.ResolveForUser(r.Context(), userID)
	if err != nil {
		httpx.RespondError(w, r, h.logger, err)
		return
	}

	httpx.Data(w, http.StatusOK, meResponse{
		User:        toSessionUser(u, eff.RoleName),
		Permissions: eff.Permissions,
	})
}

func toSessionUser(u *user.User, roleName string) sessionUser {
	return sessionUser{
		ID:       u.ID,
		Email:    u.Email,
		Name:     u.Name,
		Status:   u.Status,
		RoleID:   u.RoleID,
		RoleName: roleName,
	}
}

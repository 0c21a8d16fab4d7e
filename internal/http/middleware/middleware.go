// Package middleware authenticates bearer tokens and enforces access requirements.
package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/tally/internal/access"
	"github.com/MrJamesThe3rd/tally/internal/apperr"
	"github.com/MrJamesThe3rd/tally/internal/auth"
	"github.com/MrJamesThe3rd/tally/internal/http/httpx"
)

type TokenParser interface {
	Parse(token string) (uuid.UUID, error)
}

type Authorizer interface {
	Authorize(ctx context.Context, userID uuid.UUID, req access.Requirement) error
}

// Authenticate rejects requests without a valid bearer token and stores the
// token subject in the request context.
func Authenticate(tokens TokenParser, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearer(r)
			if !ok {
				httpx.RespondError(w, r, logger, fmt.Errorf("%w: missing bearer token", apperr.ErrUnauthorized))
				return
			}

			userID, err := tokens.Parse(raw)
			if err != nil {
				httpx.RespondError(w, r, logger, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithUserID(r.Context(), userID)))
		})
	}
}

func bearer(r *http.Request) (string, bool) {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)

	return token, token != ""
}

// Require runs the guard for req before the handler. It must sit behind Authenticate.
func Require(guard Authorizer, req access.Requirement, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := auth.UserIDFromContext(r.Context())
			if err != nil {
				httpx.RespondError(w, r, logger, err)
				return
			}

			if err := guard.Authorize(r.Context(), userID, req); err != nil {
				httpx.RespondError(w, r, logger, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// Gate turns a requirement into route middleware. Handlers receive one so they
// can guard each route with the capability it needs.
type Gate func(req access.Requirement) func(http.Handler) http.Handler

func NewGate(guard Authorizer, logger *slog.Logger) Gate {
	return func(req access.Requirement) func(http.Handler) http.Handler {
		return Require(guard, req, logger)
	}
}

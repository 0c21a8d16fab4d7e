package user_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/tally/internal/access"
	"github.com/MrJamesThe3rd/tally/internal/apperr"
	httpuser "github.com/MrJamesThe3rd/tally/internal/http/user"
	"github.com/MrJamesThe3rd/tally/internal/user"
)

func allow(access.Requirement) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler { return next }
}

func newRouter(t *testing.T) (*user.MockRepository, chi.Router) {
	t.Helper()

	repo := user.NewMockRepository(gomock.NewController(t))
	h := httpuser.NewHandler(user.NewService(repo), allow, slog.New(slog.NewTextHandler(io.Discard, nil)))

	r := chi.NewRouter()
	r.Route("/users", h.Routes)

	return repo, r
}

func serve(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, target, rd))

	return rec
}

func TestHandler_Create(t *testing.T) {
	repo, r := newRouter(t)
	roleID := uuid.New()

	repo.EXPECT().RoleExists(gomock.Any(), roleID).Return(true, nil)
	repo.EXPECT().CreateUser(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, u *user.User) error {
		assert.Equal(t, "ada@example.com", u.Email)
		assert.NotEqual(t, "s3cret-pass", u.PasswordHash)
		u.ID = uuid.New()
		return nil
	})

	rec := serve(r, http.MethodPost, "/users",
		`{"email":"ADA@example.com","password":"s3cret-pass","name":"Ada","roleId":"`+roleID.String()+`"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	assert.Contains(t, rec.Body.String(), `"status":"active"`)
	assert.NotContains(t, rec.Body.String(), "s3cret-pass")
	assert.NotContains(t, strings.ToLower(rec.Body.String()), "hash")
}

func TestHandler_Create_Rejected(t *testing.T) {
	roleID := uuid.New()

	tests := []struct {
		name       string
		body       string
		setup      func(repo *user.MockRepository)
		wantStatus int
	}{
		{
			name:       "ShortPassword",
			body:       `{"email":"a@b.co","password":"short","name":"A","roleId":"` + roleID.String() + `"}`,
			setup:      func(*user.MockRepository) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "MissingRole",
			body:       `{"email":"a@b.co","password":"long-enough","name":"A"}`,
			setup:      func(*user.MockRepository) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "UnknownRole",
			body: `{"email":"a@b.co","password":"long-enough","name":"A","roleId":"` + roleID.String() + `"}`,
			setup: func(repo *user.MockRepository) {
				repo.EXPECT().RoleExists(gomock.Any(), roleID).Return(false, nil)
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "DuplicateEmail",
			body: `{"email":"a@b.co","password":"long-enough","name":"A","roleId":"` + roleID.String() + `"}`,
			setup: func(repo *user.MockRepository) {
				repo.EXPECT().RoleExists(gomock.Any(), roleID).Return(true, nil)
				repo.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(apperr.ErrConflict)
			},
			wantStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, r := newRouter(t)
			tt.setup(repo)

			rec := serve(r, http.MethodPost, "/users", tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandler_List(t *testing.T) {
	repo, r := newRouter(t)

	repo.EXPECT().ListUsers(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, f user.ListFilter) ([]*user.User, int, error) {
		assert.Equal(t, "ada", f.Search)
		require.NotNil(t, f.Status)
		assert.Equal(t, user.StatusInactive, *f.Status)
		assert.Equal(t, 2, f.Page)
		return []*user.User{{ID: uuid.New(), Name: "Ada", Status: user.StatusInactive}}, 11, nil
	})

	rec := serve(r, http.MethodGet, "/users?search=ada&status=inactive&page=2&limit=10", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	assert.Contains(t, rec.Body.String(), `"pagination":{"page":2,"limit":10,"total":11}`)
}

func TestHandler_Delete(t *testing.T) {
	repo, r := newRouter(t)
	id := uuid.New()

	repo.EXPECT().DeleteUser(gomock.Any(), id).Return(nil)

	rec := serve(r, http.MethodDelete, "/users/"+id.String(), "")

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestHandler_Get_BadID(t *testing.T) {
	_, r := newRouter(t)

	rec := serve(r, http.MethodGet, "/users/not-a-uuid", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

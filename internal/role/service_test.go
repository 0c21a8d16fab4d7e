package role_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/tally/internal/apperr"
	"github.com/MrJamesThe3rd/tally/internal/role"
)

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		params    role.CreateParams
		setupMock func(m *role.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name:   "Success",
			params: role.CreateParams{Name: "  Accountant ", Description: "Books"},
			setupMock: func(m *role.MockRepository) {
				m.EXPECT().CreateRole(gomock.Any(), &role.Role{Name: "Accountant", Description: "Books"}).
					DoAndReturn(func(_ context.Context, r *role.Role) error {
						r.ID = uuid.New()
						return nil
					})
			},
		},
		{
			name:    "BlankName",
			params:  role.CreateParams{Name: "   "},
			wantErr: apperr.ErrBadRequest,
		},
		{
			name:   "Duplicate",
			params: role.CreateParams{Name: "Admin"},
			setupMock: func(m *role.MockRepository) {
				m.EXPECT().CreateRole(gomock.Any(), gomock.Any()).Return(apperr.ErrConflict)
			},
			wantErr: apperr.ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := role.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			got, err := role.NewService(repo).Create(context.Background(), tt.params)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, got.ID)
		})
	}
}

func TestService_Delete(t *testing.T) {
	id := uuid.New()

	type testCase struct {
		name      string
		setupMock func(m *role.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "NoUsers",
			setupMock: func(m *role.MockRepository) {
				m.EXPECT().GetRole(gomock.Any(), id).Return(&role.Role{ID: id, Name: "Intern"}, nil)
				m.EXPECT().DeleteRole(gomock.Any(), id).Return(nil)
			},
		},
		{
			name: "BlockedWhileUsersAssigned",
			setupMock: func(m *role.MockRepository) {
				m.EXPECT().GetRole(gomock.Any(), id).Return(&role.Role{ID: id, Name: "Sales Rep", UserCount: 2}, nil)
			},
			wantErr: apperr.ErrConflict,
		},
		{
			name: "Missing",
			setupMock: func(m *role.MockRepository) {
				m.EXPECT().GetRole(gomock.Any(), id).Return(nil, apperr.ErrNotFound)
			},
			wantErr: apperr.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := role.NewMockRepository(ctrl)
			tt.setupMock(repo)

			err := role.NewService(repo).Delete(context.Background(), id)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := role.NewMockRepository(ctrl)
	id := uuid.New()
	desc := "Handles purchasing"

	repo.EXPECT().GetRole(gomock.Any(), id).Return(&role.Role{ID: id, Name: "Buyer", Description: "old"}, nil)
	repo.EXPECT().UpdateRole(gomock.Any(), &role.Role{ID: id, Name: "Buyer", Description: desc}).Return(nil)

	got, err := role.NewService(repo).Update(context.Background(), id, role.UpdateParams{Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, "Buyer", got.Name)
	assert.Equal(t, desc, got.Description)
}

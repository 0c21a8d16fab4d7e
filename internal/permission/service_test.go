package permission_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/tally/internal/apperr"
	"github.com/MrJamesThe3rd/tally/internal/permission"
)

func TestService_Resolve_MaterializesDefaultOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := permission.NewMockRepository(ctrl)
	svc := permission.NewService(repo)

	roleID := uuid.New()
	stored := &permission.RolePermission{ID: uuid.New(), RoleID: roleID, Set: permission.DefaultSet()}

	gomock.InOrder(
		repo.EXPECT().GetByRole(gomock.Any(), roleID).Return(nil, apperr.ErrNotFound),
		repo.EXPECT().CreateDefault(gomock.Any(), roleID, permission.DefaultSet()).Return(stored, nil).Times(1),
		repo.EXPECT().GetByRole(gomock.Any(), roleID).Return(stored, nil),
	)

	first, err := svc.Resolve(context.Background(), roleID)
	require.NoError(t, err)

	second, err := svc.Resolve(context.Background(), roleID)
	require.NoError(t, err)

	want := permission.Set{Read: true, Create: false, Update: false, Delete: false}
	assert.Equal(t, want, first)
	assert.Equal(t, want, second)
}

func TestService_Resolve(t *testing.T) {
	roleID := uuid.New()

	type testCase struct {
		name      string
		setupMock func(m *permission.MockRepository)
		want      permission.Set
		wantErr   error
	}

	tests := []testCase{
		{
			name: "ExistingRow",
			setupMock: func(m *permission.MockRepository) {
				m.EXPECT().GetByRole(gomock.Any(), roleID).Return(&permission.RolePermission{
					RoleID: roleID,
					Set:    permission.Set{Read: true, Create: true, Delete: true},
				}, nil)
			},
			want: permission.Set{Read: true, Create: true, Delete: true},
		},
		{
			name: "UnknownRole",
			setupMock: func(m *permission.MockRepository) {
				m.EXPECT().GetByRole(gomock.Any(), roleID).Return(nil, apperr.ErrNotFound)
				m.EXPECT().CreateDefault(gomock.Any(), roleID, gomock.Any()).Return(nil, apperr.ErrNotFound)
			},
			wantErr: apperr.ErrNotFound,
		},
		{
			name: "StoreFailure",
			setupMock: func(m *permission.MockRepository) {
				m.EXPECT().GetByRole(gomock.Any(), roleID).Return(nil, errors.New("connection reset"))
			},
			wantErr: errors.New("connection reset"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := permission.NewMockRepository(ctrl)
			tt.setupMock(repo)

			got, err := permission.NewService(repo).Resolve(context.Background(), roleID)
			if tt.wantErr != nil {
				require.Error(t, err)

				if errors.Is(tt.wantErr, apperr.ErrNotFound) {
					assert.ErrorIs(t, err, apperr.ErrNotFound)
				}

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_ResolveForUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := permission.NewMockRepository(ctrl)
	svc := permission.NewService(repo)

	userID, roleID := uuid.New(), uuid.New()

	repo.EXPECT().UserRole(gomock.Any(), userID).
		Return(&permission.UserRole{UserID: userID, RoleID: roleID, RoleName: "Sales Rep"}, nil)
	repo.EXPECT().GetByRole(gomock.Any(), roleID).
		Return(&permission.RolePermission{RoleID: roleID, Set: permission.Set{Read: true, Create: true}}, nil)

	eff, err := svc.ResolveForUser(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, roleID, eff.RoleID)
	assert.Equal(t, permission.RoleSalesRep, eff.Role)
	assert.True(t, eff.Permissions.Allows(permission.KindCreate))
	assert.False(t, eff.Permissions.Allows(permission.KindDelete))
}

func TestService_ResolveForUser_UnknownUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := permission.NewMockRepository(ctrl)
	userID := uuid.New()

	repo.EXPECT().UserRole(gomock.Any(), userID).Return(nil, apperr.ErrNotFound)

	_, err := permission.NewService(repo).ResolveForUser(context.Background(), userID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestService_ResolveForUser_InactiveUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := permission.NewMockRepository(ctrl)
	userID := uuid.New()

	repo.EXPECT().UserRole(gomock.Any(), userID).
		Return(&permission.UserRole{UserID: userID, RoleID: uuid.New(), RoleName: "Admin", Inactive: true}, nil)

	_, err := permission.NewService(repo).ResolveForUser(context.Background(), userID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestService_Toggle(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := permission.NewMockRepository(ctrl)
	svc := permission.NewService(repo)

	roleID := uuid.New()
	before := permission.Set{Read: true, Update: true}

	repo.EXPECT().GetByRole(gomock.Any(), roleID).Return(&permission.RolePermission{RoleID: roleID, Set: before}, nil)
	repo.EXPECT().Flip(gomock.Any(), roleID, permission.KindCreate).
		Return(&permission.RolePermission{RoleID: roleID, Set: before.With(permission.KindCreate, true)}, nil)

	got, err := svc.Toggle(context.Background(), roleID, permission.KindCreate)
	require.NoError(t, err)

	assert.True(t, got.Create)
	assert.Equal(t, before.Read, got.Read)
	assert.Equal(t, before.Update, got.Update)
	assert.Equal(t, before.Delete, got.Delete)
}

func TestService_Toggle_MaterializesFirst(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := permission.NewMockRepository(ctrl)
	roleID := uuid.New()

	gomock.InOrder(
		repo.EXPECT().GetByRole(gomock.Any(), roleID).Return(nil, apperr.ErrNotFound),
		repo.EXPECT().CreateDefault(gomock.Any(), roleID, permission.DefaultSet()).
			Return(&permission.RolePermission{RoleID: roleID, Set: permission.DefaultSet()}, nil),
		repo.EXPECT().Flip(gomock.Any(), roleID, permission.KindDelete).
			Return(&permission.RolePermission{RoleID: roleID, Set: permission.Set{Read: true, Delete: true}}, nil),
	)

	got, err := permission.NewService(repo).Toggle(context.Background(), roleID, permission.KindDelete)
	require.NoError(t, err)
	assert.Equal(t, permission.Set{Read: true, Delete: true}, got)
}

func TestService_Toggle_AcceptsFieldSpelling(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := permission.NewMockRepository(ctrl)
	roleID := uuid.New()

	repo.EXPECT().GetByRole(gomock.Any(), roleID).
		Return(&permission.RolePermission{RoleID: roleID, Set: permission.DefaultSet()}, nil)
	repo.EXPECT().Flip(gomock.Any(), roleID, permission.KindCreate).
		Return(&permission.RolePermission{RoleID: roleID, Set: permission.Set{Read: true, Create: true}}, nil)

	got, err := permission.NewService(repo).Toggle(context.Background(), roleID, permission.Kind("canCreate"))
	require.NoError(t, err)
	assert.Equal(t, permission.Set{Read: true, Create: true}, got)
}

func TestService_Toggle_UnknownKind(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := permission.NewMockRepository(ctrl)

	_, err := permission.NewService(repo).Toggle(context.Background(), uuid.New(), permission.Kind("approve"))
	assert.ErrorIs(t, err, apperr.ErrBadRequest)
}

func TestService_SetAll(t *testing.T) {
	roleID := uuid.New()
	yes := true
	no := false

	type testCase struct {
		name      string
		patch     permission.Patch
		setupMock func(m *permission.MockRepository)
		want      permission.Set
	}

	tests := []testCase{
		{
			name:  "FirstCreationUsesDefaults",
			patch: permission.Patch{Create: &yes},
			setupMock: func(m *permission.MockRepository) {
				m.EXPECT().GetByRole(gomock.Any(), roleID).Return(nil, apperr.ErrNotFound)
				m.EXPECT().CreateDefault(gomock.Any(), roleID, permission.Set{Read: true, Create: true}).
					DoAndReturn(func(_ context.Context, id uuid.UUID, set permission.Set) (*permission.RolePermission, error) {
						return &permission.RolePermission{RoleID: id, Set: set}, nil
					})
			},
			want: permission.Set{Read: true, Create: true},
		},
		{
			name:  "UpdateKeepsUnspecified",
			patch: permission.Patch{Read: &no},
			setupMock: func(m *permission.MockRepository) {
				m.EXPECT().GetByRole(gomock.Any(), roleID).Return(&permission.RolePermission{
					RoleID: roleID,
					Set:    permission.Set{Read: true, Update: true, Delete: true},
				}, nil)
				m.EXPECT().UpdateSet(gomock.Any(), roleID, permission.Set{Update: true, Delete: true}).
					DoAndReturn(func(_ context.Context, id uuid.UUID, set permission.Set) (*permission.RolePermission, error) {
						return &permission.RolePermission{RoleID: id, Set: set}, nil
					})
			},
			want: permission.Set{Update: true, Delete: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := permission.NewMockRepository(ctrl)
			tt.setupMock(repo)

			got, err := permission.NewService(repo).SetAll(context.Background(), roleID, tt.patch)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

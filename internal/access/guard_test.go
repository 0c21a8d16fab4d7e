package access_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/tally/internal/access"
	"github.com/MrJamesThe3rd/tally/internal/apperr"
	"github.com/MrJamesThe3rd/tally/internal/permission"
)

func effective(roleName string, set permission.Set) *permission.Effective {
	return &permission.Effective{
		RoleID:      uuid.New(),
		RoleName:    roleName,
		Role:        permission.ParseRoleName(roleName),
		Permissions: set,
	}
}

var allowAll = permission.Set{Read: true, Create: true, Update: true, Delete: true}

func TestGuard_Authorize(t *testing.T) {
	userID := uuid.New()

	type testCase struct {
		name      string
		req       access.Requirement
		setupMock func(m *access.MockResolver)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "NoRequirement",
			req:  access.Requirement{},
		},
		{
			name: "SalesRepDeniedAdminRouteDespiteFlags",
			req:  access.AdminNeed(permission.KindRead),
			setupMock: func(m *access.MockResolver) {
				m.EXPECT().ResolveForUser(gomock.Any(), userID).Return(effective("Sales Rep", allowAll), nil)
			},
			wantErr: apperr.ErrForbidden,
		},
		{
			name: "RoleOnlyGateDenied",
			req:  access.Requirement{Roles: permission.AdminRoles},
			setupMock: func(m *access.MockResolver) {
				m.EXPECT().ResolveForUser(gomock.Any(), userID).Return(effective("Sales Rep", allowAll), nil)
			},
			wantErr: apperr.ErrForbidden,
		},
		{
			name: "CustomRoleNeverMatchesRoleGate",
			req:  access.Requirement{Roles: permission.AdminRoles},
			setupMock: func(m *access.MockResolver) {
				m.EXPECT().ResolveForUser(gomock.Any(), userID).Return(effective("Warehouse", allowAll), nil)
			},
			wantErr: apperr.ErrForbidden,
		},
		{
			name: "AdminAllowed",
			req:  access.AdminNeed(permission.KindUpdate),
			setupMock: func(m *access.MockResolver) {
				m.EXPECT().ResolveForUser(gomock.Any(), userID).Return(effective("admin", allowAll), nil)
			},
		},
		{
			name: "AdminMissingFlag",
			req:  access.AdminNeed(permission.KindDelete),
			setupMock: func(m *access.MockResolver) {
				m.EXPECT().ResolveForUser(gomock.Any(), userID).Return(effective("Admin", permission.DefaultSet()), nil)
			},
			wantErr: apperr.ErrForbidden,
		},
		{
			name: "PermissionGranted",
			req:  access.Need(permission.KindRead),
			setupMock: func(m *access.MockResolver) {
				m.EXPECT().ResolveForUser(gomock.Any(), userID).Return(effective("Sales Rep", permission.DefaultSet()), nil)
			},
		},
		{
			name: "PermissionDenied",
			req:  access.Need(permission.KindCreate),
			setupMock: func(m *access.MockResolver) {
				m.EXPECT().ResolveForUser(gomock.Any(), userID).Return(effective("Sales Rep", permission.DefaultSet()), nil)
			},
			wantErr: apperr.ErrForbidden,
		},
		{
			name: "UnknownUser",
			req:  access.Need(permission.KindRead),
			setupMock: func(m *access.MockResolver) {
				m.EXPECT().ResolveForUser(gomock.Any(), userID).Return(nil, apperr.ErrNotFound)
			},
			wantErr: apperr.ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			resolver := access.NewMockResolver(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(resolver)
			}

			err := access.NewGuard(resolver).Authorize(context.Background(), userID, tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestGuard_Allowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	resolver := access.NewMockResolver(ctrl)
	guard := access.NewGuard(resolver)

	gomock.InOrder(
		resolver.EXPECT().ResolveForUser(gomock.Any(), userID).Return(effective("Sales Rep", permission.DefaultSet()), nil),
		resolver.EXPECT().ResolveForUser(gomock.Any(), userID).Return(nil, errors.New("db down")),
	)

	ok, err := guard.Allowed(context.Background(), userID, access.Need(permission.KindDelete))
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = guard.Allowed(context.Background(), userID, access.Need(permission.KindRead))
	assert.EqualError(t, err, "db down")
}

func TestGuard_Authorize_InactiveUserForbidden(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := permission.NewMockRepository(ctrl)
	userID := uuid.New()

	repo.EXPECT().UserRole(gomock.Any(), userID).
		Return(&permission.UserRole{UserID: userID, RoleID: uuid.New(), RoleName: "Super Admin", Inactive: true}, nil)

	guard := access.NewGuard(permission.NewService(repo))

	err := guard.Authorize(context.Background(), userID, access.Need(permission.KindRead))
	assert.ErrorIs(t, err, apperr.ErrForbidden)
}

package contact_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/tally/internal/apperr"
	"github.com/MrJamesThe3rd/tally/internal/contact"
)

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		kind      contact.Kind
		params    contact.CreateParams
		setupMock func(m *contact.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name:   "Customer",
			kind:   contact.KindCustomer,
			params: contact.CreateParams{Name: " Jane Doe "},
			setupMock: func(m *contact.MockRepository) {
				m.EXPECT().CreateContact(gomock.Any(), &contact.Contact{
					Kind:   contact.KindCustomer,
					Name:   "Jane Doe",
					Status: contact.StatusActive,
				}).Return(nil)
			},
		},
		{
			name:   "VendorInactive",
			kind:   contact.KindVendor,
			params: contact.CreateParams{Name: "Acme Supplies", Status: contact.StatusInactive},
			setupMock: func(m *contact.MockRepository) {
				m.EXPECT().CreateContact(gomock.Any(), &contact.Contact{
					Kind:   contact.KindVendor,
					Name:   "Acme Supplies",
					Status: contact.StatusInactive,
				}).Return(nil)
			},
		},
		{
			name:    "MissingName",
			kind:    contact.KindCustomer,
			params:  contact.CreateParams{},
			wantErr: apperr.ErrBadRequest,
		},
		{
			name:    "BadStatus",
			kind:    contact.KindCustomer,
			params:  contact.CreateParams{Name: "X", Status: "archived"},
			wantErr: apperr.ErrBadRequest,
		},
		{
			name:   "DuplicateName",
			kind:   contact.KindCustomer,
			params: contact.CreateParams{Name: "Jane Doe"},
			setupMock: func(m *contact.MockRepository) {
				m.EXPECT().CreateContact(gomock.Any(), gomock.Any()).Return(apperr.ErrConflict)
			},
			wantErr: apperr.ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := contact.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			got, err := contact.NewService(repo, tt.kind).Create(context.Background(), tt.params)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.kind, got.Kind)
		})
	}
}

func TestService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := contact.NewMockRepository(ctrl)
	id := uuid.New()
	inactive := contact.StatusInactive

	repo.EXPECT().GetContact(gomock.Any(), contact.KindVendor, id).
		Return(&contact.Contact{ID: id, Kind: contact.KindVendor, Name: "Acme", Status: contact.StatusActive}, nil)
	repo.EXPECT().UpdateContact(gomock.Any(), gomock.Any()).Return(nil)

	got, err := contact.NewService(repo, contact.KindVendor).Update(context.Background(), id, contact.UpdateParams{Status: &inactive})
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.Name)
	assert.Equal(t, contact.StatusInactive, got.Status)
}

func TestService_Get_UsesKind(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := contact.NewMockRepository(ctrl)
	id := uuid.New()

	repo.EXPECT().GetContact(gomock.Any(), contact.KindCustomer, id).Return(nil, apperr.ErrNotFound)

	_, err := contact.NewService(repo, contact.KindCustomer).Get(context.Background(), id)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestService_WritesInvalidateReports(t *testing.T) {
	id := uuid.New()
	renamed := "Acme Holdings"

	tests := []struct {
		name  string
		setup func(m *contact.MockRepository)
		write func(svc *contact.Service) error
	}{
		{
			name: "Create",
			setup: func(m *contact.MockRepository) {
				m.EXPECT().CreateContact(gomock.Any(), gomock.Any()).Return(nil)
			},
			write: func(svc *contact.Service) error {
				_, err := svc.Create(context.Background(), contact.CreateParams{Name: "Acme"})
				return err
			},
		},
		{
			name: "Update",
			setup: func(m *contact.MockRepository) {
				m.EXPECT().GetContact(gomock.Any(), contact.KindVendor, id).
					Return(&contact.Contact{ID: id, Kind: contact.KindVendor, Name: "Acme", Status: contact.StatusActive}, nil)
				m.EXPECT().UpdateContact(gomock.Any(), gomock.Any()).Return(nil)
			},
			write: func(svc *contact.Service) error {
				_, err := svc.Update(context.Background(), id, contact.UpdateParams{Name: &renamed})
				return err
			},
		},
		{
			name: "Delete",
			setup: func(m *contact.MockRepository) {
				m.EXPECT().DeleteContact(gomock.Any(), contact.KindVendor, id).Return(nil)
			},
			write: func(svc *contact.Service) error {
				return svc.Delete(context.Background(), id)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := contact.NewMockRepository(ctrl)
			inv := contact.NewMockInvalidator(ctrl)

			tt.setup(repo)
			inv.EXPECT().Invalidate(gomock.Any()).Return(nil).Times(1)

			svc := contact.NewService(repo, contact.KindVendor, contact.WithInvalidator(inv))
			require.NoError(t, tt.write(svc))
		})
	}
}

func TestService_Delete_FailureKeepsReports(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := contact.NewMockRepository(ctrl)
	inv := contact.NewMockInvalidator(ctrl)
	id := uuid.New()

	repo.EXPECT().DeleteContact(gomock.Any(), contact.KindCustomer, id).Return(apperr.ErrNotFound)

	err := contact.NewService(repo, contact.KindCustomer, contact.WithInvalidator(inv)).Delete(context.Background(), id)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/davitk/account-console/internal/mocks"
	"github.com/davitk/account-console/internal/model"
	"github.com/davitk/account-console/internal/service"
	"github.com/davitk/account-console/internal/testutil"
)

func newTestAccount(api *mocks.AccountAPI) *service.Account {
	return service.NewAccount(api, testutil.MakeNoopLogger())
}

func TestAccount_FetchDashboard(t *testing.T) {
	ctx := context.Background()
	api := &mocks.AccountAPI{}
	a := newTestAccount(api)

	data := model.UserData{ID: "user-1", Username: "davit", PrimaryEmail: "a@example.com"}
	api.On("GetUserData", mock.Anything, "token").Return(data, nil).Once()

	got, err := a.FetchDashboard(ctx, testCaller)
	require.NoError(t, err)
	assert.Equal(t, data, got)

	api.AssertExpectations(t)
}

func TestAccount_FetchDashboard_Error(t *testing.T) {
	ctx := context.Background()
	api := &mocks.AccountAPI{}
	a := newTestAccount(api)

	wantErr := errors.New("boom")
	api.On("GetUserData", mock.Anything, "token").Return(model.UserData{}, wantErr).Once()

	_, err := a.FetchDashboard(ctx, testCaller)
	require.ErrorIs(t, err, wantErr)
}

func TestAccount_ListMfaVerifications(t *testing.T) {
	ctx := context.Background()
	api := &mocks.AccountAPI{}
	a := newTestAccount(api)

	list := []model.MfaVerification{{ID: "mfa-1", Type: model.MfaTypeTotp}}
	api.On("GetMfaVerifications", mock.Anything, "token").Return(list, nil).Once()

	got, err := a.ListMfaVerifications(ctx, testCaller)
	require.NoError(t, err)
	assert.Equal(t, list, got)
}

func TestAccount_UpdateBasicInfo(t *testing.T) {
	ctx := context.Background()
	api := &mocks.AccountAPI{}
	a := newTestAccount(api)

	update := model.BasicInfoUpdate{Name: "Davit", Username: "davit"}
	api.On("UpdateBasicInfo", mock.Anything, "token", update).Return(nil).Once()

	require.NoError(t, a.UpdateBasicInfo(ctx, testCaller, update))
	api.AssertExpectations(t)
}

func TestAccount_UpdateBasicInfo_InvalidUsername(t *testing.T) {
	ctx := context.Background()
	api := &mocks.AccountAPI{}
	a := newTestAccount(api)

	err := a.UpdateBasicInfo(ctx, testCaller, model.BasicInfoUpdate{Username: "x"})
	require.ErrorIs(t, err, model.ErrPreconditionViolation)

	api.AssertNotCalled(t, "UpdateBasicInfo", mock.Anything, mock.Anything, mock.Anything)
}

func TestAccount_UpdateBasicInfo_InvalidAvatarURL(t *testing.T) {
	ctx := context.Background()
	api := &mocks.AccountAPI{}
	a := newTestAccount(api)

	err := a.UpdateBasicInfo(ctx, testCaller, model.BasicInfoUpdate{Avatar: "ftp://example.com/a.png"})
	require.ErrorIs(t, err, model.ErrPreconditionViolation)
}

func TestAccount_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	api := &mocks.AccountAPI{}
	a := newTestAccount(api)

	profile := model.UserProfile{GivenName: "Davit", FamilyName: "K"}
	api.On("UpdateProfile", mock.Anything, "token", profile).Return(nil).Once()

	require.NoError(t, a.UpdateProfile(ctx, testCaller, profile))
	api.AssertExpectations(t)
}

func TestAccount_UpdateCustomData(t *testing.T) {
	ctx := context.Background()
	api := &mocks.AccountAPI{}
	a := newTestAccount(api)

	data := map[string]any{"theme": "dark"}
	api.On("UpdateCustomData", mock.Anything, "token", data).Return(nil).Once()

	require.NoError(t, a.UpdateCustomData(ctx, testCaller, data))
	api.AssertExpectations(t)
}

func TestAccount_UpdateCustomData_Nil(t *testing.T) {
	ctx := context.Background()
	api := &mocks.AccountAPI{}
	a := newTestAccount(api)

	err := a.UpdateCustomData(ctx, testCaller, nil)
	require.ErrorIs(t, err, model.ErrPreconditionViolation)

	api.AssertNotCalled(t, "UpdateCustomData", mock.Anything, mock.Anything, mock.Anything)
}

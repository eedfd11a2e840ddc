package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/davitk/account-console/internal/model"
)

// AccountService is a testify mock for the account record service.
type AccountService struct {
	mock.Mock
}

func (m *AccountService) FetchDashboard(ctx context.Context, caller model.Caller) (model.UserData, error) {
	args := m.Called(ctx, caller)
	return args.Get(0).(model.UserData), args.Error(1)
}

func (m *AccountService) ListMfaVerifications(ctx context.Context, caller model.Caller) ([]model.MfaVerification, error) {
	args := m.Called(ctx, caller)
	if list := args.Get(0); list != nil {
		return list.([]model.MfaVerification), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *AccountService) UpdateBasicInfo(ctx context.Context, caller model.Caller, update model.BasicInfoUpdate) error {
	args := m.Called(ctx, caller, update)
	return args.Error(0)
}

func (m *AccountService) UpdateProfile(ctx context.Context, caller model.Caller, profile model.UserProfile) error {
	args := m.Called(ctx, caller, profile)
	return args.Error(0)
}

func (m *AccountService) UpdateCustomData(ctx context.Context, caller model.Caller, customData map[string]any) error {
	args := m.Called(ctx, caller, customData)
	return args.Error(0)
}

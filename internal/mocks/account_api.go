package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/davitk/account-console/internal/model"
)

// AccountAPI is a testify mock for the account service adapter. It covers
// both the verification and the account slices of the adapter.
type AccountAPI struct {
	mock.Mock
}

func (m *AccountAPI) VerifyPassword(ctx context.Context, accessToken, password string) (string, error) {
	args := m.Called(ctx, accessToken, password)
	return args.String(0), args.Error(1)
}

func (m *AccountAPI) SendVerificationCode(ctx context.Context, accessToken string, identifier model.Identifier) (string, error) {
	args := m.Called(ctx, accessToken, identifier)
	return args.String(0), args.Error(1)
}

func (m *AccountAPI) VerifyCode(ctx context.Context, accessToken string, identifier model.Identifier, verificationID, code string) (string, error) {
	args := m.Called(ctx, accessToken, identifier, verificationID, code)
	return args.String(0), args.Error(1)
}

func (m *AccountAPI) UpdatePrimaryEmail(ctx context.Context, accessToken, identityVerificationID, email, newIdentifierVerificationID string) error {
	args := m.Called(ctx, accessToken, identityVerificationID, email, newIdentifierVerificationID)
	return args.Error(0)
}

func (m *AccountAPI) UpdatePrimaryPhone(ctx context.Context, accessToken, identityVerificationID, phone, newIdentifierVerificationID string) error {
	args := m.Called(ctx, accessToken, identityVerificationID, phone, newIdentifierVerificationID)
	return args.Error(0)
}

func (m *AccountAPI) RemovePrimaryEmail(ctx context.Context, accessToken, identityVerificationID string) error {
	args := m.Called(ctx, accessToken, identityVerificationID)
	return args.Error(0)
}

func (m *AccountAPI) RemovePrimaryPhone(ctx context.Context, accessToken, identityVerificationID string) error {
	args := m.Called(ctx, accessToken, identityVerificationID)
	return args.Error(0)
}

func (m *AccountAPI) GenerateTotpSecret(ctx context.Context, accessToken string) (model.TotpSecret, error) {
	args := m.Called(ctx, accessToken)
	return args.Get(0).(model.TotpSecret), args.Error(1)
}

func (m *AccountAPI) AddMfaVerification(ctx context.Context, accessToken, identityVerificationID string, req model.AddMfaRequest) error {
	args := m.Called(ctx, accessToken, identityVerificationID, req)
	return args.Error(0)
}

func (m *AccountAPI) DeleteMfaVerification(ctx context.Context, accessToken, identityVerificationID, mfaID string) error {
	args := m.Called(ctx, accessToken, identityVerificationID, mfaID)
	return args.Error(0)
}

func (m *AccountAPI) GenerateBackupCodes(ctx context.Context, accessToken, identityVerificationID string) ([]string, error) {
	args := m.Called(ctx, accessToken, identityVerificationID)
	if codes := args.Get(0); codes != nil {
		return codes.([]string), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *AccountAPI) GetBackupCodes(ctx context.Context, accessToken, identityVerificationID string) ([]model.BackupCode, error) {
	args := m.Called(ctx, accessToken, identityVerificationID)
	if codes := args.Get(0); codes != nil {
		return codes.([]model.BackupCode), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *AccountAPI) GetUserData(ctx context.Context, accessToken string) (model.UserData, error) {
	args := m.Called(ctx, accessToken)
	return args.Get(0).(model.UserData), args.Error(1)
}

func (m *AccountAPI) GetMfaVerifications(ctx context.Context, accessToken string) ([]model.MfaVerification, error) {
	args := m.Called(ctx, accessToken)
	if list := args.Get(0); list != nil {
		return list.([]model.MfaVerification), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *AccountAPI) UpdateBasicInfo(ctx context.Context, accessToken string, update model.BasicInfoUpdate) error {
	args := m.Called(ctx, accessToken, update)
	return args.Error(0)
}

func (m *AccountAPI) UpdateProfile(ctx context.Context, accessToken string, profile model.UserProfile) error {
	args := m.Called(ctx, accessToken, profile)
	return args.Error(0)
}

func (m *AccountAPI) UpdateCustomData(ctx context.Context, accessToken string, customData map[string]any) error {
	args := m.Called(ctx, accessToken, customData)
	return args.Error(0)
}

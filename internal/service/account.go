package service

import (
	"context"
	"fmt"

	"github.com/davitk/account-console/internal/logger"
	"github.com/davitk/account-console/internal/model"
	"github.com/davitk/account-console/internal/validation"
)

// AccountAPI is the slice of the account service adapter used for the
// non-sensitive dashboard operations.
type AccountAPI interface {
	GetUserData(ctx context.Context, accessToken string) (model.UserData, error)
	GetMfaVerifications(ctx context.Context, accessToken string) ([]model.MfaVerification, error)
	UpdateBasicInfo(ctx context.Context, accessToken string, update model.BasicInfoUpdate) error
	UpdateProfile(ctx context.Context, accessToken string, profile model.UserProfile) error
	UpdateCustomData(ctx context.Context, accessToken string, customData map[string]any) error
}

// Account serves the dashboard operations that need no verification flow:
// reading the account record and editing its directly writable fields.
type Account struct {
	api    AccountAPI
	logger *logger.Logger
}

// NewAccount creates the account service.
func NewAccount(api AccountAPI, logger *logger.Logger) *Account {
	return &Account{api: api, logger: logger}
}

// FetchDashboard returns the full account record for rendering.
func (a *Account) FetchDashboard(ctx context.Context, caller model.Caller) (model.UserData, error) {
	a.logger.Debug("Account service: fetching dashboard data",
		"user_id", caller.UserID)

	data, err := a.api.GetUserData(ctx, caller.AccessToken)
	if err != nil {
		a.logger.Error("Account service: dashboard fetch failed",
			"user_id", caller.UserID,
			"error", err.Error())
		return model.UserData{}, fmt.Errorf("failed to fetch account data: %w", err)
	}

	return data, nil
}

// ListMfaVerifications returns the enrolled MFA factors.
func (a *Account) ListMfaVerifications(ctx context.Context, caller model.Caller) ([]model.MfaVerification, error) {
	verifications, err := a.api.GetMfaVerifications(ctx, caller.AccessToken)
	if err != nil {
		a.logger.Error("Account service: mfa list fetch failed",
			"user_id", caller.UserID,
			"error", err.Error())
		return nil, fmt.Errorf("failed to fetch mfa verifications: %w", err)
	}

	return verifications, nil
}

// UpdateBasicInfo validates and forwards the directly editable fields.
func (a *Account) UpdateBasicInfo(ctx context.Context, caller model.Caller, update model.BasicInfoUpdate) error {
	if err := validation.Username(update.Username); err != nil {
		return err
	}
	if err := validation.URL(update.Avatar); err != nil {
		return err
	}

	if err := a.api.UpdateBasicInfo(ctx, caller.AccessToken, update); err != nil {
		a.logger.Error("Account service: basic info update failed",
			"user_id", caller.UserID,
			"error", err.Error())
		return fmt.Errorf("failed to update basic info: %w", err)
	}

	a.logger.Info("Account service: basic info updated",
		"user_id", caller.UserID)

	return nil
}

// UpdateProfile forwards the structured name fields.
func (a *Account) UpdateProfile(ctx context.Context, caller model.Caller, profile model.UserProfile) error {
	if err := a.api.UpdateProfile(ctx, caller.AccessToken, profile); err != nil {
		a.logger.Error("Account service: profile update failed",
			"user_id", caller.UserID,
			"error", err.Error())
		return fmt.Errorf("failed to update profile: %w", err)
	}

	a.logger.Info("Account service: profile updated",
		"user_id", caller.UserID)

	return nil
}

// UpdateCustomData replaces the account's custom data object.
func (a *Account) UpdateCustomData(ctx context.Context, caller model.Caller, customData map[string]any) error {
	if customData == nil {
		return fmt.Errorf("%w: custom data must be a JSON object", model.ErrPreconditionViolation)
	}

	if err := a.api.UpdateCustomData(ctx, caller.AccessToken, customData); err != nil {
		a.logger.Error("Account service: custom data update failed",
			"user_id", caller.UserID,
			"error", err.Error())
		return fmt.Errorf("failed to update custom data: %w", err)
	}

	a.logger.Info("Account service: custom data updated",
		"user_id", caller.UserID)

	return nil
}

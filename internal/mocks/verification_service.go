package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/davitk/account-console/internal/model"
	"github.com/davitk/account-console/internal/service"
)

// VerificationService is a testify mock for the verification flow service.
type VerificationService struct {
	mock.Mock
}

func (m *VerificationService) Start(ctx context.Context, caller model.Caller, operation model.OperationKind, targetValue string) (model.VerificationSession, error) {
	args := m.Called(ctx, caller, operation, targetValue)
	return args.Get(0).(model.VerificationSession), args.Error(1)
}

func (m *VerificationService) SubmitPassword(ctx context.Context, caller model.Caller, password string) (service.StepResult, error) {
	args := m.Called(ctx, caller, password)
	return args.Get(0).(service.StepResult), args.Error(1)
}

func (m *VerificationService) SubmitProof(ctx context.Context, caller model.Caller, code string) (service.StepResult, error) {
	args := m.Called(ctx, caller, code)
	return args.Get(0).(service.StepResult), args.Error(1)
}

func (m *VerificationService) Cancel(ctx context.Context, caller model.Caller) error {
	args := m.Called(ctx, caller)
	return args.Error(0)
}

func (m *VerificationService) Current(ctx context.Context, caller model.Caller) (model.VerificationSession, bool, error) {
	args := m.Called(ctx, caller)
	return args.Get(0).(model.VerificationSession), args.Bool(1), args.Error(2)
}

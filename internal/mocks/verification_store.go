package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/davitk/account-console/internal/model"
)

// VerificationStore is a testify mock for model.VerificationStore.
type VerificationStore struct {
	mock.Mock
}

func (m *VerificationStore) Create(ctx context.Context, session model.VerificationSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *VerificationStore) GetByUserID(ctx context.Context, userID string) (model.VerificationSession, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(model.VerificationSession), args.Error(1)
}

func (m *VerificationStore) Update(ctx context.Context, session model.VerificationSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *VerificationStore) Delete(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

package model

import (
	"context"
	"time"
)

// PendingVerificationDuration is a TTL for in-flight verification sessions.
const PendingVerificationDuration = time.Minute * 10

// Step is the current position of a verification session in its flow.
type Step int

const (
	StepNone Step = iota
	StepAwaitingPassword
	StepAwaitingSecondaryProof
	StepComplete
)

// String returns the wire name of the step.
func (s Step) String() string {
	switch s {
	case StepAwaitingPassword:
		return "awaiting-password"
	case StepAwaitingSecondaryProof:
		return "awaiting-secondary-proof"
	case StepComplete:
		return "complete"
	default:
		return "none"
	}
}

// VerificationStore persists in-flight verification sessions, one per user.
type VerificationStore interface {
	Create(ctx context.Context, session VerificationSession) error
	GetByUserID(ctx context.Context, userID string) (VerificationSession, error)
	Update(ctx context.Context, session VerificationSession) error
	Delete(ctx context.Context, userID string) error
}

// VerificationSession describes one in-flight sensitive account operation.
// The operation kind is fixed at creation; tokens are filled in as proof
// steps succeed. Secret material (TOTP secret) lives only for the session
// lifetime and is discarded with it.
type VerificationSession struct {
	ID        string
	UserID    string
	Operation OperationKind
	Step      Step

	// TargetValue is the new email/phone for identifier changes, or the
	// MFA factor ID for removals.
	TargetValue string

	// IdentityVerificationID proves control of the account password. It is
	// required by every mutating call and set only after the password step
	// succeeds.
	IdentityVerificationID string

	// CodeVerificationID identifies the sent email/phone code so the
	// verify-code call can reference it.
	CodeVerificationID string

	// TotpSecret and TotpQRCode hold generated TOTP enrollment material.
	TotpSecret string
	TotpQRCode string

	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session has outlived its TTL.
func (s VerificationSession) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

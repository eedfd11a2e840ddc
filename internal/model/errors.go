package model

import "errors"

var (
	// ErrAuthenticationFailed means the account service rejected the
	// password. The session stays at the password step and may be retried.
	ErrAuthenticationFailed = errors.New("password verification failed")

	// ErrProofInvalid means the secondary code was rejected. The session
	// stays at the proof step and the identity verification is preserved.
	ErrProofInvalid = errors.New("verification code rejected")

	// ErrMutationFailed means the final mutating call failed after all
	// proofs succeeded. The session is torn down: verification records are
	// single-use and cannot be safely replayed.
	ErrMutationFailed = errors.New("account mutation failed")

	// ErrPreconditionViolation means a step was submitted out of order or
	// with malformed input. No network call is made.
	ErrPreconditionViolation = errors.New("precondition violation")

	// ErrTransport means the account service could not be reached or
	// answered outside its contract. Retryable at the step it occurred.
	ErrTransport = errors.New("account service unavailable")

	// ErrSessionNotFound means no verification session is in progress for
	// the user.
	ErrSessionNotFound = errors.New("verification session not found")

	// ErrSessionInFlight means the user already has an active verification
	// session. It must be cancelled before starting a new one.
	ErrSessionInFlight = errors.New("verification session already in progress")
)

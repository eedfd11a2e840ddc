package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/davitk/account-console/internal/accountapi"
	"github.com/davitk/account-console/internal/logger"
	"github.com/davitk/account-console/internal/model"
	"github.com/davitk/account-console/internal/validation"
)

// VerificationAPI is the slice of the account service adapter the
// orchestrator drives. Every method performs exactly one remote call.
type VerificationAPI interface {
	VerifyPassword(ctx context.Context, accessToken, password string) (string, error)
	SendVerificationCode(ctx context.Context, accessToken string, identifier model.Identifier) (string, error)
	VerifyCode(ctx context.Context, accessToken string, identifier model.Identifier, verificationID, code string) (string, error)
	UpdatePrimaryEmail(ctx context.Context, accessToken, identityVerificationID, email, newIdentifierVerificationID string) error
	UpdatePrimaryPhone(ctx context.Context, accessToken, identityVerificationID, phone, newIdentifierVerificationID string) error
	RemovePrimaryEmail(ctx context.Context, accessToken, identityVerificationID string) error
	RemovePrimaryPhone(ctx context.Context, accessToken, identityVerificationID string) error
	GenerateTotpSecret(ctx context.Context, accessToken string) (model.TotpSecret, error)
	AddMfaVerification(ctx context.Context, accessToken, identityVerificationID string, req model.AddMfaRequest) error
	DeleteMfaVerification(ctx context.Context, accessToken, identityVerificationID, mfaID string) error
	GenerateBackupCodes(ctx context.Context, accessToken, identityVerificationID string) ([]string, error)
	GetBackupCodes(ctx context.Context, accessToken, identityVerificationID string) ([]model.BackupCode, error)
}

// StepResult reports where a session landed after a submitted step, plus
// any material produced by that step. TOTP enrollment material and backup
// codes are returned exactly once, by the step that produced them.
type StepResult struct {
	Operation model.OperationKind
	Step      model.Step

	TotpSecret     *model.TotpSecret
	GeneratedCodes []string
	Codes          []model.BackupCode
}

// Verification drives sensitive account operations through their proof
// steps. The mutating call never fires before every proof the operation
// kind requires has succeeded.
type Verification struct {
	store  model.VerificationStore
	api    VerificationAPI
	logger *logger.Logger
	now    func() time.Time
}

// NewVerification creates the verification orchestrator.
func NewVerification(store model.VerificationStore, api VerificationAPI, logger *logger.Logger) *Verification {
	return &Verification{
		store:  store,
		api:    api,
		logger: logger,
		now:    time.Now,
	}
}

// Start opens a verification session in the password step. A user with a
// session already in flight must cancel it first; Start never silently
// replaces live state.
func (v *Verification) Start(ctx context.Context, caller model.Caller, operation model.OperationKind, targetValue string) (model.VerificationSession, error) {
	v.logger.Debug("Verification service: starting operation",
		"user_id", caller.UserID,
		"operation", operation.String())

	if operation == model.OperationUnknown {
		return model.VerificationSession{}, fmt.Errorf("%w: unknown operation", model.ErrPreconditionViolation)
	}

	if err := validateTarget(operation, targetValue); err != nil {
		return model.VerificationSession{}, err
	}

	now := v.now()
	session := model.VerificationSession{
		ID:          uuid.NewString(),
		UserID:      caller.UserID,
		Operation:   operation,
		Step:        model.StepAwaitingPassword,
		TargetValue: targetValue,
		CreatedAt:   now,
		ExpiresAt:   now.Add(model.PendingVerificationDuration),
	}

	if err := v.store.Create(ctx, session); err != nil {
		if errors.Is(err, model.ErrSessionInFlight) {
			return model.VerificationSession{}, err
		}
		return model.VerificationSession{}, fmt.Errorf("failed to create verification session: %w", err)
	}

	v.logger.Info("Verification service: operation started",
		"user_id", caller.UserID,
		"operation", operation.String(),
		"session_id", session.ID)

	return session, nil
}

// SubmitPassword performs the password proof step. On success it either
// issues the secondary challenge or, for operations needing no secondary
// proof, performs the final call immediately. A rejected password leaves
// the session at the password step with no identity verification recorded.
func (v *Verification) SubmitPassword(ctx context.Context, caller model.Caller, password string) (StepResult, error) {
	if err := validation.Password(password); err != nil {
		return StepResult{}, err
	}

	session, err := v.store.GetByUserID(ctx, caller.UserID)
	if err != nil {
		return StepResult{}, err
	}

	if session.Step != model.StepAwaitingPassword {
		// Double submit: the password was already accepted. Do not call
		// the service again.
		return StepResult{}, fmt.Errorf("%w: password already verified", model.ErrPreconditionViolation)
	}

	v.logger.Debug("Verification service: verifying password",
		"user_id", caller.UserID,
		"session_id", session.ID,
		"operation", session.Operation.String())

	identityVerificationID, err := v.api.VerifyPassword(ctx, caller.AccessToken, password)
	if err != nil {
		v.logger.Info("Verification service: password verification failed",
			"user_id", caller.UserID,
			"session_id", session.ID,
			"error", err.Error())
		return StepResult{}, classifyStepError(err, model.ErrAuthenticationFailed)
	}

	session.IdentityVerificationID = identityVerificationID

	if session.Operation.RequiresSecondaryProof() {
		return v.issueSecondaryChallenge(ctx, caller, session)
	}

	return v.performMutation(ctx, caller, session, "")
}

// issueSecondaryChallenge sends the operation's secondary challenge and
// advances the session. A failed challenge tears the session down: the
// challenge material must never be silently re-issued within a session.
func (v *Verification) issueSecondaryChallenge(ctx context.Context, caller model.Caller, session model.VerificationSession) (StepResult, error) {
	result := StepResult{Operation: session.Operation, Step: model.StepAwaitingSecondaryProof}

	switch session.Operation {
	case model.OperationChangeEmail, model.OperationChangePhone:
		identifier := model.Identifier{Type: session.Operation.IdentifierType(), Value: session.TargetValue}
		codeVerificationID, err := v.api.SendVerificationCode(ctx, caller.AccessToken, identifier)
		if err != nil {
			return v.tearDown(ctx, caller.UserID, session, classifyStepError(err, model.ErrTransport))
		}
		session.CodeVerificationID = codeVerificationID

	case model.OperationEnrollTotp:
		secret, err := v.api.GenerateTotpSecret(ctx, caller.AccessToken)
		if err != nil {
			return v.tearDown(ctx, caller.UserID, session, classifyStepError(err, model.ErrTransport))
		}
		session.TotpSecret = secret.Secret
		session.TotpQRCode = secret.SecretQRCode
		result.TotpSecret = &secret

	default:
		return v.tearDown(ctx, caller.UserID, session, fmt.Errorf("%w: operation %s has no secondary challenge", model.ErrPreconditionViolation, session.Operation))
	}

	session.Step = model.StepAwaitingSecondaryProof
	if err := v.store.Update(ctx, session); err != nil {
		return v.tearDown(ctx, caller.UserID, session, fmt.Errorf("failed to update verification session: %w", err))
	}

	v.logger.Info("Verification service: secondary challenge issued",
		"user_id", caller.UserID,
		"session_id", session.ID,
		"operation", session.Operation.String())

	return result, nil
}

// SubmitProof performs the secondary proof step and, on success, the
// final call. A rejected code leaves the session at the proof step with
// the identity verification intact, so the password need not be retyped.
func (v *Verification) SubmitProof(ctx context.Context, caller model.Caller, code string) (StepResult, error) {
	if err := validation.VerificationCode(code); err != nil {
		return StepResult{}, err
	}

	session, err := v.store.GetByUserID(ctx, caller.UserID)
	if err != nil {
		return StepResult{}, err
	}

	if session.Step != model.StepAwaitingSecondaryProof {
		return StepResult{}, fmt.Errorf("%w: session is not awaiting a verification code", model.ErrPreconditionViolation)
	}

	v.logger.Debug("Verification service: verifying secondary proof",
		"user_id", caller.UserID,
		"session_id", session.ID,
		"operation", session.Operation.String())

	switch session.Operation {
	case model.OperationChangeEmail, model.OperationChangePhone:
		identifier := model.Identifier{Type: session.Operation.IdentifierType(), Value: session.TargetValue}
		newIdentifierVerificationID, err := v.api.VerifyCode(ctx, caller.AccessToken, identifier, session.CodeVerificationID, code)
		if err != nil {
			v.logger.Info("Verification service: code verification failed",
				"user_id", caller.UserID,
				"session_id", session.ID,
				"error", err.Error())
			return StepResult{}, classifyStepError(err, model.ErrProofInvalid)
		}
		return v.performMutation(ctx, caller, session, newIdentifierVerificationID)

	case model.OperationEnrollTotp:
		// The enrollment call consumes the code directly: it is both the
		// proof verification and the mutation.
		err := v.api.AddMfaVerification(ctx, caller.AccessToken, session.IdentityVerificationID, model.AddMfaRequest{
			Type:   model.MfaTypeTotp,
			Secret: session.TotpSecret,
			Code:   code,
		})
		if err != nil {
			v.logger.Info("Verification service: totp enrollment rejected",
				"user_id", caller.UserID,
				"session_id", session.ID,
				"error", err.Error())
			return StepResult{}, classifyStepError(err, model.ErrProofInvalid)
		}
		return v.complete(ctx, caller.UserID, session, StepResult{Operation: session.Operation, Step: model.StepComplete})

	default:
		return StepResult{}, fmt.Errorf("%w: operation %s takes no verification code", model.ErrPreconditionViolation, session.Operation)
	}
}

// performMutation issues the final call for the session's operation. All
// required verification records are present by the time it runs. Any
// failure tears the session down: verification records are single-use and
// replaying them is not safe.
func (v *Verification) performMutation(ctx context.Context, caller model.Caller, session model.VerificationSession, newIdentifierVerificationID string) (StepResult, error) {
	result := StepResult{Operation: session.Operation, Step: model.StepComplete}

	var err error
	switch session.Operation {
	case model.OperationChangeEmail:
		err = v.api.UpdatePrimaryEmail(ctx, caller.AccessToken, session.IdentityVerificationID, session.TargetValue, newIdentifierVerificationID)
	case model.OperationChangePhone:
		err = v.api.UpdatePrimaryPhone(ctx, caller.AccessToken, session.IdentityVerificationID, session.TargetValue, newIdentifierVerificationID)
	case model.OperationRemoveEmail:
		err = v.api.RemovePrimaryEmail(ctx, caller.AccessToken, session.IdentityVerificationID)
	case model.OperationRemovePhone:
		err = v.api.RemovePrimaryPhone(ctx, caller.AccessToken, session.IdentityVerificationID)
	case model.OperationRemoveMfaFactor:
		err = v.api.DeleteMfaVerification(ctx, caller.AccessToken, session.IdentityVerificationID, session.TargetValue)
	case model.OperationGenerateBackupCodes:
		result.GeneratedCodes, err = v.api.GenerateBackupCodes(ctx, caller.AccessToken, session.IdentityVerificationID)
	case model.OperationViewBackupCodes:
		result.Codes, err = v.api.GetBackupCodes(ctx, caller.AccessToken, session.IdentityVerificationID)
	default:
		err = fmt.Errorf("%w: operation %s has no final call", model.ErrPreconditionViolation, session.Operation)
	}

	if err != nil {
		v.logger.Error("Verification service: final call failed",
			"user_id", caller.UserID,
			"session_id", session.ID,
			"operation", session.Operation.String(),
			"error", err.Error())
		return v.tearDown(ctx, caller.UserID, session, mutationError(err))
	}

	return v.complete(ctx, caller.UserID, session, result)
}

// Cancel discards the session and everything it holds. No network call is
// made; outstanding verification records expire on the service side.
// Cancelling with nothing in flight is a no-op.
func (v *Verification) Cancel(ctx context.Context, caller model.Caller) error {
	if err := v.store.Delete(ctx, caller.UserID); err != nil {
		return fmt.Errorf("failed to delete verification session: %w", err)
	}

	v.logger.Info("Verification service: session cancelled",
		"user_id", caller.UserID)

	return nil
}

// Current returns the user's in-flight session, if any.
func (v *Verification) Current(ctx context.Context, caller model.Caller) (model.VerificationSession, bool, error) {
	session, err := v.store.GetByUserID(ctx, caller.UserID)
	if errors.Is(err, model.ErrSessionNotFound) {
		return model.VerificationSession{}, false, nil
	}
	if err != nil {
		return model.VerificationSession{}, false, fmt.Errorf("failed to get verification session: %w", err)
	}

	return session, true, nil
}

func (v *Verification) complete(ctx context.Context, userID string, session model.VerificationSession, result StepResult) (StepResult, error) {
	if err := v.store.Delete(ctx, userID); err != nil {
		return StepResult{}, fmt.Errorf("failed to clear verification session: %w", err)
	}

	v.logger.Info("Verification service: operation completed",
		"user_id", userID,
		"session_id", session.ID,
		"operation", session.Operation.String())

	return result, nil
}

func (v *Verification) tearDown(ctx context.Context, userID string, session model.VerificationSession, cause error) (StepResult, error) {
	if err := v.store.Delete(ctx, userID); err != nil {
		v.logger.Error("Verification service: failed to clear session during teardown",
			"user_id", userID,
			"session_id", session.ID,
			"error", err.Error())
	}

	return StepResult{}, cause
}

func validateTarget(operation model.OperationKind, targetValue string) error {
	if !operation.RequiresTarget() {
		return nil
	}

	switch operation {
	case model.OperationChangeEmail:
		return validation.Email(targetValue)
	case model.OperationChangePhone:
		return validation.Phone(targetValue)
	default:
		if targetValue == "" {
			return fmt.Errorf("%w: operation %s requires a target", model.ErrPreconditionViolation, operation)
		}
		return nil
	}
}

// classifyStepError maps an adapter failure at a proof step onto the
// error taxonomy: a 4xx answer means the submitted proof was rejected,
// everything else is a transport-level failure retryable at the same step.
func classifyStepError(err error, rejected error) error {
	var apiErr *accountapi.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Status >= 400 && apiErr.Status < 500 {
			return fmt.Errorf("%w: %s", rejected, validation.SanitizeServiceError(apiErr.Body))
		}
		return fmt.Errorf("%w: %s", model.ErrTransport, validation.SanitizeServiceError(apiErr.Body))
	}
	if errors.Is(err, model.ErrTransport) {
		return err
	}
	return fmt.Errorf("%w: %v", model.ErrTransport, err)
}

func mutationError(err error) error {
	if errors.Is(err, model.ErrPreconditionViolation) {
		return err
	}

	var apiErr *accountapi.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%w: %s", model.ErrMutationFailed, validation.SanitizeServiceError(apiErr.Body))
	}
	return fmt.Errorf("%w: %v", model.ErrMutationFailed, err)
}

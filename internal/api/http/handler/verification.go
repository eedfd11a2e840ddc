package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/davitk/account-console/internal/logger"
	"github.com/davitk/account-console/internal/model"
	"github.com/davitk/account-console/internal/service"
)

// VerificationService drives verification sessions through their steps.
type VerificationService interface {
	Start(ctx context.Context, caller model.Caller, operation model.OperationKind, targetValue string) (model.VerificationSession, error)
	SubmitPassword(ctx context.Context, caller model.Caller, password string) (service.StepResult, error)
	SubmitProof(ctx context.Context, caller model.Caller, code string) (service.StepResult, error)
	Cancel(ctx context.Context, caller model.Caller) error
	Current(ctx context.Context, caller model.Caller) (model.VerificationSession, bool, error)
}

// Verification handles the HTTP endpoints of the verification flow.
type Verification struct {
	service        VerificationService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewVerification creates a new Verification handler.
func NewVerification(service VerificationService, contextManager model.ContextManager, logger *logger.Logger) *Verification {
	return &Verification{
		service:        service,
		contextManager: contextManager,
		logger:         logger,
	}
}

type startRequest struct {
	Operation string `json:"operation"`
	Target    string `json:"target,omitempty"`
}

type sessionResponse struct {
	SessionID string `json:"sessionId"`
	Operation string `json:"operation"`
	Step      string `json:"step"`
	Target    string `json:"target,omitempty"`
}

type currentResponse struct {
	Active    bool   `json:"active"`
	Operation string `json:"operation,omitempty"`
	Step      string `json:"step,omitempty"`
	Target    string `json:"target,omitempty"`
}

type passwordRequest struct {
	Password string `json:"password"`
}

type proofRequest struct {
	Code string `json:"code"`
}

type stepResponse struct {
	Operation      string             `json:"operation"`
	Step           string             `json:"step"`
	TotpSecret     *model.TotpSecret  `json:"totpSecret,omitempty"`
	GeneratedCodes []string           `json:"generatedCodes,omitempty"`
	Codes          []model.BackupCode `json:"codes,omitempty"`
}

// Start opens a verification session for a sensitive operation.
func (h *Verification) Start(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.contextManager.CallerFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	var req startRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", false)
		return
	}

	operation, err := model.ParseOperationKind(req.Operation)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), false)
		return
	}

	h.logger.Debug("Verification handler: processing start request",
		"user_id", caller.UserID,
		"operation", operation.String())

	session, err := h.service.Start(r.Context(), caller, operation, req.Target)
	if err != nil {
		h.logger.Info("Verification handler: start failed",
			"user_id", caller.UserID,
			"operation", operation.String(),
			"error", err.Error())
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, sessionResponse{
		SessionID: session.ID,
		Operation: session.Operation.String(),
		Step:      session.Step.String(),
		Target:    session.TargetValue,
	})
}

// SubmitPassword performs the password proof step.
func (h *Verification) SubmitPassword(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.contextManager.CallerFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	var req passwordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", false)
		return
	}

	result, err := h.service.SubmitPassword(r.Context(), caller, req.Password)
	if err != nil {
		h.logger.Info("Verification handler: password step failed",
			"user_id", caller.UserID,
			"error", err.Error())
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stepResponseFrom(result))
}

// SubmitProof performs the secondary proof step.
func (h *Verification) SubmitProof(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.contextManager.CallerFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	var req proofRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", false)
		return
	}

	result, err := h.service.SubmitProof(r.Context(), caller, req.Code)
	if err != nil {
		h.logger.Info("Verification handler: proof step failed",
			"user_id", caller.UserID,
			"error", err.Error())
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stepResponseFrom(result))
}

// Cancel discards the in-flight session.
func (h *Verification) Cancel(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.contextManager.CallerFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	if err := h.service.Cancel(r.Context(), caller); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Current reports the in-flight session's step without exposing any
// verification record or secret material.
func (h *Verification) Current(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.contextManager.CallerFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	session, active, err := h.service.Current(r.Context(), caller)
	if err != nil {
		handleError(w, err)
		return
	}

	if !active {
		writeJSON(w, http.StatusOK, currentResponse{Active: false})
		return
	}

	writeJSON(w, http.StatusOK, currentResponse{
		Active:    true,
		Operation: session.Operation.String(),
		Step:      session.Step.String(),
		Target:    session.TargetValue,
	})
}

func stepResponseFrom(result service.StepResult) stepResponse {
	return stepResponse{
		Operation:      result.Operation.String(),
		Step:           result.Step.String(),
		TotpSecret:     result.TotpSecret,
		GeneratedCodes: result.GeneratedCodes,
		Codes:          result.Codes,
	}
}

package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/davitk/account-console/internal/logger"
	"github.com/davitk/account-console/internal/model"
	"github.com/davitk/account-console/internal/validation"
)

// AccountService serves the dashboard operations that need no
// verification flow.
type AccountService interface {
	FetchDashboard(ctx context.Context, caller model.Caller) (model.UserData, error)
	ListMfaVerifications(ctx context.Context, caller model.Caller) ([]model.MfaVerification, error)
	UpdateBasicInfo(ctx context.Context, caller model.Caller, update model.BasicInfoUpdate) error
	UpdateProfile(ctx context.Context, caller model.Caller, profile model.UserProfile) error
	UpdateCustomData(ctx context.Context, caller model.Caller, customData map[string]any) error
}

// Account handles the HTTP endpoints for the account record.
type Account struct {
	service        AccountService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAccount creates a new Account handler.
func NewAccount(service AccountService, contextManager model.ContextManager, logger *logger.Logger) *Account {
	return &Account{
		service:        service,
		contextManager: contextManager,
		logger:         logger,
	}
}

type customDataRequest struct {
	CustomData json.RawMessage `json:"customData"`
}

// Dashboard returns the full account record.
func (h *Account) Dashboard(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.contextManager.CallerFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	data, err := h.service.FetchDashboard(r.Context(), caller)
	if err != nil {
		h.logger.Error("Account handler: dashboard fetch failed",
			"user_id", caller.UserID,
			"error", err.Error())
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, data)
}

// MfaVerifications lists the enrolled MFA factors.
func (h *Account) MfaVerifications(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.contextManager.CallerFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	verifications, err := h.service.ListMfaVerifications(r.Context(), caller)
	if err != nil {
		handleError(w, err)
		return
	}

	if verifications == nil {
		verifications = []model.MfaVerification{}
	}
	writeJSON(w, http.StatusOK, verifications)
}

// UpdateBasicInfo patches the directly editable account fields.
func (h *Account) UpdateBasicInfo(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.contextManager.CallerFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	var update model.BasicInfoUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", false)
		return
	}

	if err := h.service.UpdateBasicInfo(r.Context(), caller, update); err != nil {
		h.logger.Info("Account handler: basic info update failed",
			"user_id", caller.UserID,
			"error", err.Error())
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UpdateProfile patches the structured name fields.
func (h *Account) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.contextManager.CallerFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	var profile model.UserProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", false)
		return
	}

	if err := h.service.UpdateProfile(r.Context(), caller, profile); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UpdateCustomData replaces the custom data object.
func (h *Account) UpdateCustomData(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.contextManager.CallerFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	var req customDataRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", false)
		return
	}

	customData, err := validation.JSONObject(string(req.CustomData))
	if err != nil {
		handleError(w, err)
		return
	}

	if err := h.service.UpdateCustomData(r.Context(), caller, customData); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

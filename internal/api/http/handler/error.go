package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/davitk/account-console/internal/accountapi"
	"github.com/davitk/account-console/internal/model"
	"github.com/davitk/account-console/internal/validation"
)

type errorResponse struct {
	Error            string `json:"error"`
	SessionDiscarded bool   `json:"sessionDiscarded,omitempty"`
}

// handleError maps a domain error onto an HTTP status and a sanitized
// body. Failure kinds that tear the session down say so, so the client
// clears its input state.
func handleError(w http.ResponseWriter, err error) {
	var apiErr *accountapi.APIError

	switch {
	case errors.Is(err, model.ErrPreconditionViolation):
		writeError(w, http.StatusBadRequest, err.Error(), false)
	case errors.Is(err, model.ErrAuthenticationFailed):
		writeError(w, http.StatusUnauthorized, err.Error(), false)
	case errors.Is(err, model.ErrProofInvalid):
		writeError(w, http.StatusUnprocessableEntity, err.Error(), false)
	case errors.Is(err, model.ErrSessionInFlight):
		writeError(w, http.StatusConflict, err.Error(), false)
	case errors.Is(err, model.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, err.Error(), false)
	case errors.Is(err, model.ErrMutationFailed):
		writeError(w, http.StatusBadGateway, err.Error(), true)
	case errors.Is(err, model.ErrTransport):
		writeError(w, http.StatusBadGateway, err.Error(), false)
	case errors.As(err, &apiErr):
		writeError(w, apiErr.Status, validation.SanitizeServiceError(apiErr.Body), false)
	default:
		writeError(w, http.StatusInternalServerError, "internal server error", false)
	}
}

func writeError(w http.ResponseWriter, status int, message string, sessionDiscarded bool) {
	writeJSON(w, status, errorResponse{Error: message, SessionDiscarded: sessionDiscarded})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

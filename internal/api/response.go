package api

import (
	"encoding/json"
	"net/http"

	apperrors "stellar-forge/internal/shared/errors"
)

// ErrorResponse is the JSON body of every failed request
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

func (api *API) fail(w http.ResponseWriter, r *http.Request, err error) {
	errorType := apperrors.GetType(err)
	status := statusFor(errorType)

	logger := api.logger.With("method", r.Method, "path", r.URL.Path, "error_type", errorType)
	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", "error", err)
	} else {
		logger.Debug("Request rejected", "error", err)
	}
	respondError(w, status, string(errorType), err.Error())
}

func statusFor(t apperrors.ErrorType) int {
	switch t {
	case apperrors.ErrorTypeNotFound, apperrors.ErrorTypeUnknownSystemClass:
		return http.StatusNotFound
	case apperrors.ErrorTypeValidation, apperrors.ErrorTypeInvalidConfig,
		apperrors.ErrorTypeEvolutionInput, apperrors.ErrorTypeNumericDomain:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Helper functions for JSON responses
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, errorType, message string) {
	respondJSON(w, status, ErrorResponse{Error: errorType, Message: message, Code: status})
}

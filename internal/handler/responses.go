package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/pondside/AnglerBot_Go/internal/domain"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// mapServiceErrorToStatus translates domain errors to HTTP status codes.
// The error message is passed through: domain errors carry no internal
// detail beyond what callers may see.
func mapServiceErrorToStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrPoolNotFound),
		errors.Is(err, domain.ErrInstanceNotFound),
		errors.Is(err, domain.ErrTemplateNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInsufficientFunds),
		errors.Is(err, domain.ErrInstanceEquipped):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrPoolEmpty):
		return http.StatusBadRequest
	default:
		var busy *domain.BusyError
		if errors.As(err, &busy) {
			return http.StatusConflict
		}
		return http.StatusInternalServerError
	}
}

// respondServiceError logs a failed service call and writes the mapped
// error response.
func respondServiceError(w http.ResponseWriter, err error) {
	status := mapServiceErrorToStatus(err)
	if status == http.StatusInternalServerError {
		respondError(w, status, ErrMsgInternal)
		return
	}
	respondError(w, status, err.Error())
}

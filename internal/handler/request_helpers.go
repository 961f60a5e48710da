package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pondside/AnglerBot_Go/internal/logger"
)

// DecodeAndValidateRequest decodes a JSON request body and validates it.
// If it returns an error the response has already been written and the
// handler should return.
func DecodeAndValidateRequest(r *http.Request, w http.ResponseWriter, req interface{}, actionName string) error {
	log := logger.FromContext(r.Context())

	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		log.Error(fmt.Sprintf("Failed to decode %s request", actionName), "error", err)
		http.Error(w, ErrMsgInvalidRequest, http.StatusBadRequest)
		return err
	}

	if err := GetValidator().ValidateStruct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Fields: FormatValidationError(err),
		})
		return err
	}

	return nil
}

// ValidationErrorResponse defines the response structure for validation errors
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// GetQueryParam retrieves a required query parameter. If ok is false the
// response has already been written.
func GetQueryParam(r *http.Request, w http.ResponseWriter, paramName string) (string, bool) {
	value := r.URL.Query().Get(paramName)
	if value == "" {
		logger.FromContext(r.Context()).Warn(fmt.Sprintf("Missing %s query parameter", paramName))
		http.Error(w, fmt.Sprintf(ErrMsgMissingQueryParam, paramName), http.StatusBadRequest)
		return "", false
	}
	return value, true
}

// GetOptionalQueryParam retrieves an optional query parameter, falling
// back to defaultValue when absent.
func GetOptionalQueryParam(r *http.Request, paramName string, defaultValue string) string {
	value := r.URL.Query().Get(paramName)
	if value == "" {
		return defaultValue
	}
	return value
}

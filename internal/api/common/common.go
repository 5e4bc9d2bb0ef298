// Package common provides shared response helpers for the parrot API.
package common

import (
	"encoding/json"
	"net/http"
)

// WriteJSONResponse writes a JSON response with the given data
func WriteJSONResponse(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// WriteErrorResponse writes a standardized error response
func WriteErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	errorResp := map[string]string{
		"error": message,
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(errorResp); err != nil {
		http.Error(w, "Failed to encode error response", http.StatusInternalServerError)
	}
}

// ValidationError describes a single rejected request field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// WriteValidationError writes a 422 response for a request that failed
// field validation at the boundary. Domain logic never sees such requests.
func WriteValidationError(w http.ResponseWriter, field, message string) {
	resp := map[string]interface{}{
		"detail": []ValidationError{
			{Field: field, Message: message},
		},
	}
	WriteJSONResponse(w, resp, http.StatusUnprocessableEntity)
}

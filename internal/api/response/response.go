package response

import (
	"encoding/json"
	"net/http"
	"time"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Success   bool         `json:"success"`
	Error     *ErrorDetail `json:"error"`
	Timestamp string       `json:"timestamp"`
}

type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		fallback := errorBody("ENCODING_ERROR", "Failed to encode response", nil)
		_ = json.NewEncoder(w).Encode(fallback)
	}
}

func errorBody(code, message string, details map[string]string) ErrorResponse {
	return ErrorResponse{
		Success: false,
		Error: &ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// Success responses

// OK writes the payload as the whole response body
func OK(w http.ResponseWriter, payload interface{}) {
	writeJSON(w, http.StatusOK, payload)
}

// Error responses
func BadRequest(w http.ResponseWriter, message string, details map[string]string) {
	writeJSON(w, http.StatusBadRequest, errorBody("BAD_REQUEST", message, details))
}

func ConfigurationError(w http.ResponseWriter, message string, details map[string]string) {
	writeJSON(w, http.StatusUnprocessableEntity, errorBody("CONFIGURATION_ERROR", message, details))
}

func PayloadTooLarge(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusRequestEntityTooLarge, errorBody("PAYLOAD_TOO_LARGE", message, nil))
}

func UnsupportedMediaType(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusUnsupportedMediaType, errorBody("UNSUPPORTED_MEDIA_TYPE", message, nil))
}

func NotFound(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusNotFound, errorBody("NOT_FOUND", message, nil))
}

func ServiceUnavailable(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusServiceUnavailable, errorBody("SERVICE_UNAVAILABLE", message, nil))
}

func InternalServerError(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusInternalServerError, errorBody("INTERNAL_SERVER_ERROR", message, nil))
}

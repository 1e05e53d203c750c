package httpx

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the body of every failed request. Message is always set.
type ErrorResponse struct {
	Message   string            `json:"message"`
	Code      string            `json:"code,omitempty"`
	Details   map[string]string `json:"details,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
}

// MessageResponse is a bare confirmation body.
type MessageResponse struct {
	Message string `json:"message"`
}

// JSON writes data as the whole response body.
func JSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// JSONMessage writes {"message": message}.
func JSONMessage(w http.ResponseWriter, statusCode int, message string) {
	JSON(w, statusCode, MessageResponse{Message: message})
}

// JSONError writes an ErrorResponse tagged with the request ID, when known.
func JSONError(w http.ResponseWriter, r *http.Request, statusCode int, code, message string, details map[string]string) {
	resp := ErrorResponse{
		Message: message,
		Code:    code,
		Details: details,
	}
	if r != nil {
		resp.RequestID = RequestIDFrom(r)
	}
	JSON(w, statusCode, resp)
}

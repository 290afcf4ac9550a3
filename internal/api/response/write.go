package response

import (
	"encoding/json"
	"net/http"
)

// JSON writes a JSON response with the given status code
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// ErrorBody is the error response envelope
type ErrorBody struct {
	Error APIError `json:"error"`
}

// APIError carries a machine code and a human message
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error writes a JSON error response
func Error(w http.ResponseWriter, status int, code, message string) {
	JSON(w, status, ErrorBody{Error: APIError{Code: code, Message: message}})
}

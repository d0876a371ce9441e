// Package apierrors provides the structured error body returned by every
// HTTP service: {timestamp, status, error, message, path}.
package apierrors

import (
	"net/http"
	"time"
)

// ErrorResponse is the wire format for failed requests.
type ErrorResponse struct {
	Timestamp string `json:"timestamp"`
	Status    int    `json:"status"`
	Error     string `json:"error"`
	Message   string `json:"message,omitempty"`
	Path      string `json:"path,omitempty"`
}

// New builds an ErrorResponse for the given status using the standard
// HTTP status text as the error label.
func New(status int, message string) ErrorResponse {
	return ErrorResponse{
		Timestamp: time.Now().Format(time.RFC3339),
		Status:    status,
		Error:     http.StatusText(status),
		Message:   message,
	}
}

// WithPath returns a copy carrying the request path.
func (e ErrorResponse) WithPath(path string) ErrorResponse {
	e.Path = path
	return e
}

// BadRequest builds a 400 response.
func BadRequest(message string) ErrorResponse {
	return New(http.StatusBadRequest, message)
}

// NotFound builds a 404 response.
func NotFound(message string) ErrorResponse {
	return New(http.StatusNotFound, message)
}

// Internal builds a 500 response. The message is intentionally generic;
// internal details stay in the logs.
func Internal() ErrorResponse {
	return New(http.StatusInternalServerError, "An unexpected error occurred")
}

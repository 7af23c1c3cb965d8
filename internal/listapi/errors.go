package listapi

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError classifies a failed remote call. Status is zero when no response
// was received at all.
type APIError struct {
	Status  int
	Message string
	Method  string
	Path    string
	Err     error
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Network reports whether the call failed before a response arrived.
func (e *APIError) Network() bool {
	return e.Status == 0
}

// StatusOf returns the HTTP status carried by err, or 0 when err is not an
// *APIError or represents a transport failure.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

func networkError(method, path string, err error) *APIError {
	msg := "Network request failed"
	if err != nil {
		msg = err.Error()
	}
	return &APIError{Status: 0, Message: msg, Method: method, Path: path, Err: err}
}

func statusError(method, path string, status int, body ErrorBody) *APIError {
	msg := body.Message
	if msg == "" {
		msg = fmt.Sprintf("HTTP %d: %s", status, http.StatusText(status))
	}
	return &APIError{Status: status, Message: msg, Method: method, Path: path}
}

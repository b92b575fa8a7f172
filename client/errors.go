package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrNotFound is matched by any HTTPError with status 404.
var ErrNotFound = errors.New("not found")

// HTTPError is a non-2xx backend response
type HTTPError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
}

func (e *HTTPError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

func newHTTPError(method, path string, status int, body []byte) *HTTPError {
	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	msg := ""
	if err := json.Unmarshal(body, &envelope); err == nil {
		msg = envelope.Message
		if msg == "" {
			msg = envelope.Error
		}
	}
	return &HTTPError{Method: method, Path: path, StatusCode: status, Message: strings.TrimSpace(msg)}
}

// Package apperror defines the error taxonomy shared by the services and
// the HTTP layer. Controllers map these types onto status codes; everything
// else is treated as an internal error.
package apperror

import (
	"fmt"
	"strings"
)

// ConfigurationError reports required environment values missing at startup.
type ConfigurationError struct {
	Missing []string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("missing required configuration: %s", strings.Join(e.Missing, ", "))
}

// UpstreamAuthError reports a rejected client-credentials token exchange.
type UpstreamAuthError struct {
	Err error
}

func (e *UpstreamAuthError) Error() string {
	return fmt.Sprintf("upstream token exchange failed: %v", e.Err)
}

func (e *UpstreamAuthError) Unwrap() error {
	return e.Err
}

// UpstreamRequestError reports a non-2xx or malformed response from a remote
// service, with enough context to show the operator which call failed.
type UpstreamRequestError struct {
	Op         string
	InstanceID string
	StatusCode int
	Detail     string
}

func (e *UpstreamRequestError) Error() string {
	msg := fmt.Sprintf("%s failed", e.Op)
	if e.InstanceID != "" {
		msg += fmt.Sprintf(" for instance %s", e.InstanceID)
	}
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// ValidationError reports malformed input at a boundary, rejected before any
// network call is made.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidation(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

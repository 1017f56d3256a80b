package helpers

import (
	"fmt"
	"strings"
)

// -----------------------------------------------------------------------------
// Custom Error Types
// -----------------------------------------------------------------------------

type DashboardError struct {
	Message string
	Cause   error
}

func (e *DashboardError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DashboardError) Unwrap() error {
	return e.Cause
}

// -----------------------------------------------------------------------------

// ConnectionError: the warehouse host/credentials are unreachable or invalid.
type ConnectionError struct{ DashboardError }

// QueryError: a statement is malformed or references unknown objects.
type QueryError struct{ DashboardError }

// ValidationError: a caller-supplied argument failed validation.
type ValidationError struct{ DashboardError }

// ConfigurationError: required connection settings are absent. Missing holds
// the exact key names so the failure message can list them.
type ConfigurationError struct {
	DashboardError
	Missing []string
}

// -----------------------------------------------------------------------------

func NewConnectionError(msg string, cause error) *ConnectionError {
	return &ConnectionError{DashboardError{Message: msg, Cause: cause}}
}

func NewQueryError(msg string, cause error) *QueryError {
	return &QueryError{DashboardError{Message: msg, Cause: cause}}
}

func NewValidationError(msg string) *ValidationError {
	return &ValidationError{DashboardError{Message: msg}}
}

func NewConfigurationError(missing []string) *ConfigurationError {
	return &ConfigurationError{
		DashboardError: DashboardError{
			Message: fmt.Sprintf("missing required configuration: %s", strings.Join(missing, ", ")),
		},
		Missing: missing,
	}
}

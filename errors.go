// Package pwa exposes browser platform capabilities (clipboard, connectivity,
// fullscreen, geolocation, language, permissions, visibility) to JavaScript
// from a Go WebAssembly module.
//
// This package holds the error types shared by every layer. All error types
// support unwrapping via errors.As() and errors.Is().
package pwa

import (
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/remix-pwa/pwa-client/domain/entities"
	"github.com/remix-pwa/pwa-client/wireformat"
)

// ErrorDetail is re-exported from wireformat.
type ErrorDetail = wireformat.ErrorDetail

// AbortError reports a failed precondition (no window, no document, an
// unguarded capability). The call cannot produce any result.
type AbortError struct {
	Operation string // Entry point name, e.g. "get_type"
	Message   string // Host-facing abort message
	Err       error  // Optional cause
}

func (e *AbortError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s aborted: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s aborted: %s", e.Operation, e.Message)
}

func (e *AbortError) Unwrap() error {
	return e.Err
}

// CapabilityError reports a host capability that is not available.
type CapabilityError struct {
	Capability string // "clipboard", "connection", "geolocation", "permissions", "document_element"
}

func (e *CapabilityError) Error() string {
	return fmt.Sprintf("capability unavailable: %s", e.Capability)
}

// ResponseError carries an error-flavored ClientResponse. Wrappers that
// report failures as values return it alongside that value.
type ResponseError struct {
	Operation string
	Response  entities.ClientResponse
	Err       error // Underlying cause
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Operation, e.Response.Message())
}

func (e *ResponseError) Unwrap() error {
	return e.Err
}

// RejectedError reports a host operation that completed with a failure.
// Reason holds the raw host value (for example a JS exception object) so it
// can be handed back to the caller unchanged.
type RejectedError struct {
	Operation string
	Reason    any
	Err       error
}

func (e *RejectedError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("%s rejected: %v", e.Operation, e.Err)
	case e.Reason != nil:
		return fmt.Sprintf("%s rejected: %v", e.Operation, e.Reason)
	default:
		return fmt.Sprintf("%s rejected", e.Operation)
	}
}

func (e *RejectedError) Unwrap() error {
	return e.Err
}

// ValidationError reports arguments that do not match an entry point's
// input schema.
type ValidationError struct {
	Operation string
	Field     string // Optional: offending parameter
	Err       error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid arguments for %s (%s): %v", e.Operation, e.Field, e.Err)
	}
	return fmt.Sprintf("invalid arguments for %s: %v", e.Operation, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field string // Field name that failed validation
	Err   error  // Underlying validation error
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config validation failed for field '%s': %v", e.Field, e.Err)
	}
	return fmt.Sprintf("config validation failed: %v", e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// SchemaError represents a schema generation or compilation error.
type SchemaError struct {
	Type string // Go type that failed schema generation
	Err  error  // Underlying error
}

func (e *SchemaError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("schema error for type %s: %v", e.Type, e.Err)
	}
	return fmt.Sprintf("schema error: %v", e.Err)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

// PanicError wraps a value recovered from a panicking entry point.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// NewPanicError captures the current stack for a recovered value.
func NewPanicError(v any) *PanicError {
	return &PanicError{Value: v, Stack: debug.Stack()}
}

// ToErrorDetail converts a Go error to a structured ErrorDetail.
// It recognizes the error types of this package and categorizes them.
func ToErrorDetail(err error) *ErrorDetail {
	if err == nil {
		return nil
	}

	// If the error is already a *wireformat.ErrorDetail, use it directly.
	var wfError *wireformat.ErrorDetail
	if errors.As(err, &wfError) {
		return wfError
	}

	var (
		panicErr      *PanicError
		responseErr   *ResponseError
		abortErr      *AbortError
		rejectedErr   *RejectedError
		capabilityErr *CapabilityError
		validationErr *ValidationError
		configErr     *ConfigError
		schemaErr     *SchemaError
	)

	// Order matters: outer categories win over the causes they wrap.
	switch {
	case errors.As(err, &panicErr):
		return &ErrorDetail{Message: err.Error(), Type: "panic", Stack: panicErr.Stack}
	case errors.As(err, &responseErr):
		return &ErrorDetail{
			Message: responseErr.Response.Message(),
			Type:    "response",
			Code:    responseErr.Operation,
			Wrapped: ToErrorDetail(responseErr.Err),
		}
	case errors.As(err, &abortErr):
		return &ErrorDetail{
			Message: abortErr.Message,
			Type:    "abort",
			Code:    abortErr.Operation,
			Wrapped: ToErrorDetail(abortErr.Err),
		}
	case errors.As(err, &rejectedErr):
		msg := "rejected"
		if rejectedErr.Err != nil {
			msg = rejectedErr.Err.Error()
		} else if rejectedErr.Reason != nil {
			msg = fmt.Sprintf("%v", rejectedErr.Reason)
		}
		return &ErrorDetail{Message: msg, Type: "rejected", Code: rejectedErr.Operation}
	case errors.As(err, &capabilityErr):
		return &ErrorDetail{Message: err.Error(), Type: "capability", Code: capabilityErr.Capability}
	case errors.As(err, &validationErr):
		return &ErrorDetail{Message: err.Error(), Type: "validation", Code: validationErr.Operation}
	case errors.As(err, &configErr):
		return &ErrorDetail{Message: err.Error(), Type: "config"}
	case errors.As(err, &schemaErr):
		return &ErrorDetail{Message: err.Error(), Type: "internal", Code: "schema"}
	default:
		return &ErrorDetail{Message: err.Error(), Type: "internal"}
	}
}

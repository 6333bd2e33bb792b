// Package wireformat defines the JSON structures that cross the boundary
// between the Go module and its JavaScript host. These types must remain
// stable and backward compatible as they are observed by page scripts.
package wireformat

import (
	"fmt"
	"time"
)

// ResponseWire is the JSON shape of a status/message response.
type ResponseWire struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ResultWire is the JSON envelope for a single entry point invocation, used
// by non-browser callers that cannot receive a Promise.
type ResultWire struct {
	RequestID string       `json:"request_id"`
	Operation string       `json:"operation"`
	Value     any          `json:"value,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
}

// LogMessageWire is the JSON wire format for a log record forwarded to the
// host console.
type LogMessageWire struct {
	RequestID string        `json:"request_id,omitempty"` // For log correlation
	Level     string        `json:"level"`
	Message   string        `json:"message"`
	Timestamp time.Time     `json:"timestamp"`
	Attrs     []LogAttrWire `json:"attrs,omitempty"`
}

// LogAttrWire represents a single slog attribute for wire transfer.
type LogAttrWire struct {
	Key   string `json:"key"`
	Type  string `json:"type"`  // "string", "int64", "bool", "float64", "time", "error", "json", "any"
	Value string `json:"value"` // String representation of the value
}

// ErrorDetail provides structured error information for rejected calls.
// Error Types: "abort", "response", "rejected", "capability", "validation", "config", "panic", "internal"
type ErrorDetail struct {
	Message string       `json:"message"`
	Type    string       `json:"type"`
	Code    string       `json:"code,omitempty"` // Operation or capability name
	Wrapped *ErrorDetail `json:"wrapped,omitempty"`
	Stack   []byte       `json:"stack,omitempty"` // Stack trace for panic errors
}

// Error implements the error interface for ErrorDetail.
func (e *ErrorDetail) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Message
	if e.Type != "" && e.Type != "internal" {
		msg = fmt.Sprintf("%s: %s", e.Type, msg)
	}
	if e.Code != "" {
		msg = fmt.Sprintf("%s [%s]", msg, e.Code)
	}
	if e.Wrapped != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Wrapped.Error())
	}
	return msg
}

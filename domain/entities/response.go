// Package entities provides the value types exchanged between the browser
// capability wrappers and their callers.
package entities

import (
	"encoding/json"

	"github.com/remix-pwa/pwa-client/wireformat"
)

// ResponseStatus is the conventional status of a ClientResponse.
type ResponseStatus = string

const (
	StatusSuccess ResponseStatus = "success"
	StatusError   ResponseStatus = "error"
)

// ClientResponse is an immutable status/message pair returned by wrappers
// that report their outcome as a value. Any status string is accepted.
type ClientResponse struct {
	status  string
	message string
}

// NewClientResponse builds a response from the given status and message.
// The arguments are stored exactly as given.
func NewClientResponse(status, message string) ClientResponse {
	return ClientResponse{status: status, message: message}
}

// SuccessResponse is shorthand for NewClientResponse(StatusSuccess, message).
func SuccessResponse(message string) ClientResponse {
	return NewClientResponse(StatusSuccess, message)
}

// ErrorResponse is shorthand for NewClientResponse(StatusError, message).
func ErrorResponse(message string) ClientResponse {
	return NewClientResponse(StatusError, message)
}

// Status returns the status given at construction.
func (r ClientResponse) Status() string { return r.status }

// Message returns the message given at construction.
func (r ClientResponse) Message() string { return r.message }

// IsSuccess reports whether the status is StatusSuccess.
func (r ClientResponse) IsSuccess() bool { return r.status == StatusSuccess }

// Wire returns the JSON wire representation.
func (r ClientResponse) Wire() wireformat.ResponseWire {
	return wireformat.ResponseWire{Status: r.status, Message: r.message}
}

// MarshalJSON encodes the response as {"status": ..., "message": ...}.
func (r ClientResponse) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Wire())
}

// UnmarshalJSON decodes the {"status": ..., "message": ...} form.
func (r *ClientResponse) UnmarshalJSON(data []byte) error {
	var w wireformat.ResponseWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*r = NewClientResponse(w.Status, w.Message)
	return nil
}

// JSONSchemaAlias lets schema reflection describe the wire shape, since the
// fields themselves are unexported.
func (ClientResponse) JSONSchemaAlias() any {
	return wireformat.ResponseWire{}
}

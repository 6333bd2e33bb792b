package wasm

import (
	"errors"

	pwa "github.com/remix-pwa/pwa-client"
	"github.com/remix-pwa/pwa-client/domain/entities"
	"github.com/remix-pwa/pwa-client/domain/ports"
)

// Rejection describes how a failed entry point settles its Promise.
type Rejection struct {
	// Response is set when the entry point rejects with a ClientResponse.
	Response *entities.ClientResponse

	// Reason is the raw host value to reject with, when there is one.
	Reason any

	// Message is used for a fresh Error object when neither Response nor
	// Reason is set.
	Message string

	// Report marks failures that are also written to console.error.
	Report bool

	Detail *pwa.ErrorDetail
}

// RejectionFor maps an entry point error onto its rejection value.
func RejectionFor(err error) Rejection {
	r := Rejection{Message: err.Error(), Detail: pwa.ToErrorDetail(err)}

	var (
		respErr  *pwa.ResponseError
		abortErr *pwa.AbortError
		rejErr   *pwa.RejectedError
		panicErr *pwa.PanicError
	)
	switch {
	case errors.As(err, &respErr):
		resp := respErr.Response
		r.Response = &resp
	case errors.As(err, &abortErr):
		r.Message = abortErr.Message
		r.Report = true
	case errors.As(err, &rejErr):
		r.Reason = rejErr.Reason
		if r.Reason == nil {
			r.Reason = ports.HostValue(err)
		}
	case errors.As(err, &panicErr):
		r.Report = true
	default:
		r.Report = true
	}
	return r
}

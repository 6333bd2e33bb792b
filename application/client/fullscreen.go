package client

import (
	"context"

	pwa "github.com/remix-pwa/pwa-client"
	"github.com/remix-pwa/pwa-client/domain/entities"
)

// RequestFullscreen puts the document element into fullscreen and waits for
// the host to confirm.
func (c *Client) RequestFullscreen(ctx context.Context) (entities.ClientResponse, error) {
	doc, err := c.document(ctx, OpRequestFullscreen)
	if err != nil {
		return entities.ClientResponse{}, err
	}

	el, ok := doc.DocumentElement()
	if !ok {
		return entities.ClientResponse{}, c.abort(ctx, OpRequestFullscreen, msgNoDocumentElement,
			&pwa.CapabilityError{Capability: "document_element"})
	}

	if err := el.RequestFullscreen(ctx); err != nil {
		resp := entities.ErrorResponse(MsgFullscreenFailed + err.Error())
		return resp, &pwa.ResponseError{
			Operation: OpRequestFullscreen,
			Response:  resp,
			Err:       c.rejected(OpRequestFullscreen, err),
		}
	}

	return entities.SuccessResponse(MsgFullscreenEnabled), nil
}

// ExitFullscreen leaves fullscreen. Host failures (for example when nothing
// is fullscreen) are logged and otherwise ignored.
func (c *Client) ExitFullscreen(ctx context.Context) error {
	doc, err := c.document(ctx, OpExitFullscreen)
	if err != nil {
		return err
	}
	if err := doc.ExitFullscreen(ctx); err != nil {
		c.logger.DebugContext(ctx, "pwa: exit fullscreen ignored", "error", err)
	}
	return nil
}

// IsFullscreen reports whether an element is currently fullscreen.
func (c *Client) IsFullscreen(ctx context.Context) (bool, error) {
	doc, err := c.document(ctx, OpIsFullscreen)
	if err != nil {
		return false, err
	}
	if doc == nil {
		return false, &pwa.RejectedError{Operation: OpIsFullscreen, Reason: MsgDocumentUndefined}
	}
	return doc.Fullscreen(), nil
}

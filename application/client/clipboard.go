package client

import (
	"context"

	pwa "github.com/remix-pwa/pwa-client"
	"github.com/remix-pwa/pwa-client/domain/entities"
)

// CopyToClipboard writes text to the clipboard. Failures are reported as an
// error-flavored ClientResponse, returned together with a *pwa.ResponseError.
func (c *Client) CopyToClipboard(ctx context.Context, text string) (entities.ClientResponse, error) {
	return c.writeClipboard(ctx, OpCopyToClipboard, text, MsgCopyFailed)
}

// CopyImageToClipboard writes a base64 PNG payload to the clipboard as a
// data URL. The payload is not validated. Browsers do not yet accept image
// data through writeText, so this stores the URL string.
func (c *Client) CopyImageToClipboard(ctx context.Context, image string) (entities.ClientResponse, error) {
	return c.writeClipboard(ctx, OpCopyImageToClipboard, ImageDataPrefix+image, MsgCopyImageFailed)
}

func (c *Client) writeClipboard(ctx context.Context, op, text, failure string) (entities.ClientResponse, error) {
	w, err := c.window(ctx, op, msgServerSideCall)
	if err != nil {
		return entities.ClientResponse{}, err
	}

	cb, ok := w.Navigator().Clipboard()
	if !ok {
		resp := entities.ErrorResponse(MsgClipboardUnavailable)
		return resp, &pwa.ResponseError{
			Operation: op,
			Response:  resp,
			Err:       &pwa.CapabilityError{Capability: "clipboard"},
		}
	}

	if err := cb.WriteText(ctx, text); err != nil {
		c.logger.ErrorContext(ctx, "pwa: clipboard write failed", "operation", op, "error", err)
		resp := entities.ErrorResponse(failure)
		return resp, &pwa.ResponseError{Operation: op, Response: resp, Err: c.rejected(op, err)}
	}

	return entities.SuccessResponse(MsgCopied), nil
}

// PasteFromClipboard reads text from the clipboard. It never fails once a
// window exists: when the clipboard is missing or the read is rejected, the
// error message itself is returned as the text.
func (c *Client) PasteFromClipboard(ctx context.Context) (string, error) {
	w, err := c.window(ctx, OpPasteFromClipboard, msgServerSideCall)
	if err != nil {
		return "", err
	}

	cb, ok := w.Navigator().Clipboard()
	if !ok {
		c.logger.ErrorContext(ctx, MsgClipboardUnavailable)
		return MsgClipboardUnavailable, nil
	}

	text, err := cb.ReadText(ctx)
	if err != nil {
		c.logger.ErrorContext(ctx, MsgPasteFailed, "error", err)
		return MsgPasteFailed, nil
	}

	c.logger.InfoContext(ctx, "Pasted text", "text", text)
	return text, nil
}

package client

import (
	"context"

	"github.com/remix-pwa/pwa-client/domain/entities"
)

// GetVisibilityState reports whether the document is visible.
func (c *Client) GetVisibilityState(ctx context.Context) (entities.VisibilityState, error) {
	doc, err := c.document(ctx, OpGetVisibilityState)
	if err != nil {
		return "", err
	}
	return doc.VisibilityState(), nil
}

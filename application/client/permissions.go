package client

import (
	"context"
	"errors"

	pwa "github.com/remix-pwa/pwa-client"
	"github.com/remix-pwa/pwa-client/domain/ports"
)

// GetPermissionStatus queries the named permission and returns the host
// status object unchanged.
func (c *Client) GetPermissionStatus(ctx context.Context, name string) (ports.PermissionStatus, error) {
	w, err := c.window(ctx, OpGetPermissionStatus, msgNoWindowInBrowser)
	if err != nil {
		return nil, err
	}

	perms, ok := w.Navigator().Permissions()
	if !ok {
		return nil, c.abort(ctx, OpGetPermissionStatus, msgNoPermissions, &pwa.CapabilityError{Capability: "permissions"})
	}

	status, err := perms.Query(ctx, name)
	switch {
	case errors.Is(err, ports.ErrNotInvoked):
		return nil, c.abort(ctx, OpGetPermissionStatus, msgNoPermissionStatus, err)
	case err != nil:
		return nil, c.rejected(OpGetPermissionStatus, err)
	}
	return status, nil
}

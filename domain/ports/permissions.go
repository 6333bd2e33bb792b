package ports

import (
	"context"

	"github.com/remix-pwa/pwa-client/domain/entities"
)

// Permissions answers permission status queries.
type Permissions interface {
	// Query resolves the status for the named permission. Errors wrapping
	// ErrNotInvoked mean the query itself was refused (for example an
	// unknown name); other errors carry the host rejection.
	Query(ctx context.Context, name string) (PermissionStatus, error)
}

// PermissionStatus is the host permission status object.
type PermissionStatus interface {
	Name() string
	State() entities.PermissionState
}

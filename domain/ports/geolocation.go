package ports

import "github.com/remix-pwa/pwa-client/domain/entities"

// Geolocation requests position fixes from the host.
type Geolocation interface {
	// GetCurrentPosition starts a single fix request. The host later calls
	// at most one of success or failure; failure may be nil. A returned error
	// means the request was never started.
	GetCurrentPosition(success func(entities.Position), failure func(*entities.PositionError), opts *entities.PositionOptions) error
}

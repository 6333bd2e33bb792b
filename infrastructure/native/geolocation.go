//go:build !js

package native

import (
	"context"
	"errors"
	"time"

	"googlemaps.github.io/maps"

	"github.com/remix-pwa/pwa-client/domain/entities"
)

// defaultFixTimeout bounds a position request without a timeout option.
const defaultFixTimeout = 10 * time.Second

// Locator resolves the position of the machine.
type Locator interface {
	Geolocate(ctx context.Context, r *maps.GeolocationRequest) (*maps.GeolocationResult, error)
}

// NewGoogleLocator creates a Locator backed by the Google Maps Geolocation
// API.
func NewGoogleLocator(apiKey string) (Locator, error) {
	c, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	return c, nil
}

type geolocation Host

// GetCurrentPosition answers from the cached fix when it is younger than
// opts.MaximumAge, and otherwise asks the locator on a new goroutine.
func (g *geolocation) GetCurrentPosition(success func(entities.Position), failure func(*entities.PositionError), opts *entities.PositionOptions) error {
	h := (*Host)(g)

	h.mu.Lock()
	cached := h.lastFix
	age := time.Since(h.lastFixAt)
	h.mu.Unlock()
	if maxAge := opts.MaximumAgeDuration(); cached != nil && maxAge > 0 && age <= maxAge {
		success(*cached)
		return nil
	}

	timeout, ok := opts.TimeoutDuration()
	if !ok {
		timeout = defaultFixTimeout
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		res, err := h.locator.Geolocate(ctx, &maps.GeolocationRequest{ConsiderIP: true})
		if err != nil {
			h.logger.Debug("native: geolocation failed", "error", err)
			if failure != nil {
				failure(positionError(ctx, err))
			}
			return
		}

		now := time.Now()
		pos := entities.Position{
			Coords: entities.Coordinates{
				Latitude:  res.Location.Lat,
				Longitude: res.Location.Lng,
				Accuracy:  res.Accuracy,
			},
			Timestamp: now.UnixMilli(),
		}

		h.mu.Lock()
		h.lastFix = &pos
		h.lastFixAt = now
		h.mu.Unlock()

		success(pos)
	}()
	return nil
}

func positionError(ctx context.Context, err error) *entities.PositionError {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &entities.PositionError{Code: entities.PositionTimeout, Message: "Timeout expired"}
	}
	return &entities.PositionError{Code: entities.PositionUnavailable, Message: err.Error()}
}

package entities

import (
	"fmt"
	"time"
)

// Coordinates holds the location part of a Position. Optional readings are
// nil when the host did not report them.
type Coordinates struct {
	Latitude         float64  `json:"latitude" yaml:"latitude"`
	Longitude        float64  `json:"longitude" yaml:"longitude"`
	Accuracy         float64  `json:"accuracy" yaml:"accuracy"` // Meters
	Altitude         *float64 `json:"altitude,omitempty" yaml:"altitude"`
	AltitudeAccuracy *float64 `json:"altitudeAccuracy,omitempty" yaml:"altitude_accuracy"`
	Heading          *float64 `json:"heading,omitempty" yaml:"heading"`
	Speed            *float64 `json:"speed,omitempty" yaml:"speed"`
}

// Position is a single geolocation fix.
type Position struct {
	Coords    Coordinates `json:"coords" yaml:"coords"`
	Timestamp int64       `json:"timestamp" yaml:"timestamp"` // Milliseconds since epoch

	// Raw is the host-native position object, when there is one.
	Raw any `json:"-" yaml:"-"`
}

// PositionOptions tunes a geolocation request. Nil fields leave the host
// defaults in place; a zero Timeout asks for an immediate answer.
type PositionOptions struct {
	EnableHighAccuracy bool   `json:"enableHighAccuracy,omitempty" yaml:"enable_high_accuracy"`
	Timeout            *int64 `json:"timeout,omitempty" yaml:"timeout" jsonschema:"minimum=0"`        // Milliseconds
	MaximumAge         *int64 `json:"maximumAge,omitempty" yaml:"maximum_age" jsonschema:"minimum=0"` // Milliseconds
}

// Millis returns a pointer to ms for PositionOptions fields.
func Millis(ms int64) *int64 {
	return &ms
}

// TimeoutDuration returns the requested timeout, if any.
func (o *PositionOptions) TimeoutDuration() (time.Duration, bool) {
	if o == nil || o.Timeout == nil {
		return 0, false
	}
	return time.Duration(*o.Timeout) * time.Millisecond, true
}

// MaximumAgeDuration returns the accepted age of a cached fix. It is zero
// when unset.
func (o *PositionOptions) MaximumAgeDuration() time.Duration {
	if o == nil || o.MaximumAge == nil {
		return 0
	}
	return time.Duration(*o.MaximumAge) * time.Millisecond
}

// Position error codes.
const (
	PositionPermissionDenied = 1
	PositionUnavailable      = 2
	PositionTimeout          = 3
)

// PositionError is delivered when the host could not produce a fix.
type PositionError struct {
	Code    int    `json:"code" yaml:"code"`
	Message string `json:"message" yaml:"message"`

	// Raw is the host-native error object, when there is one.
	Raw any `json:"-" yaml:"-"`
}

func (e *PositionError) Error() string {
	return fmt.Sprintf("geolocation error %d: %s", e.Code, e.Message)
}

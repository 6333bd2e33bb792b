//go:build !js

package native

import (
	"context"
	"fmt"

	"github.com/remix-pwa/pwa-client/domain/entities"
	"github.com/remix-pwa/pwa-client/domain/ports"
)

// knownPermissions are the permission names a browser accepts. Names that
// map to no local capability are denied.
var knownPermissions = map[string]bool{
	"accelerometer":      true,
	"background-sync":    true,
	"camera":             true,
	"clipboard-read":     true,
	"clipboard-write":    true,
	"geolocation":        true,
	"gyroscope":          true,
	"magnetometer":       true,
	"microphone":         true,
	"midi":               true,
	"notifications":      true,
	"persistent-storage": true,
	"push":               true,
}

type permissions Host

// Query derives a state from the capabilities the host actually has.
func (p *permissions) Query(_ context.Context, name string) (ports.PermissionStatus, error) {
	h := (*Host)(p)
	if !knownPermissions[name] {
		return nil, fmt.Errorf("%w: unknown permission %q", ports.ErrNotInvoked, name)
	}

	state := entities.PermissionDenied
	switch name {
	case "clipboard-read", "clipboard-write":
		if h.clipboard != nil {
			state = entities.PermissionGranted
		}
	case "geolocation":
		if h.locator != nil {
			state = entities.PermissionGranted
		}
	case "persistent-storage":
		state = entities.PermissionGranted
	}
	return permissionStatus{name: name, state: state}, nil
}

type permissionStatus struct {
	name  string
	state entities.PermissionState
}

func (s permissionStatus) Name() string { return s.name }
func (s permissionStatus) State() entities.PermissionState { return s.state }

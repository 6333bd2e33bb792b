// Package ports defines the host capabilities the wrappers depend on. Each
// browser API group sits behind its own small interface so that wrappers can
// run against the real browser, a native OS host or an in-memory fake.
package ports

import (
	"context"
	"errors"

	"github.com/remix-pwa/pwa-client/domain/entities"
)

// ErrNotInvoked marks a host operation that threw before it could start,
// as opposed to one that started and later rejected.
var ErrNotInvoked = errors.New("host operation could not be started")

// Host gives access to the global scope of the environment.
type Host interface {
	// Window returns the global window, or false outside a browser context.
	Window() (Window, bool)
}

// Window is the global browser scope.
type Window interface {
	Navigator() Navigator
	Document() (Document, bool)
	// AddConnectivityListener calls fn on every online/offline transition
	// until the returned function is called.
	AddConnectivityListener(fn func(online bool)) (remove func())
}

// Navigator exposes the user agent capabilities. Optional capabilities
// report false when the host does not provide them.
type Navigator interface {
	Clipboard() (Clipboard, bool)
	OnLine() bool
	Connection() (Connection, bool)
	Geolocation() (Geolocation, bool)
	Language() (string, bool)
	Languages() []string
	Permissions() (Permissions, bool)
}

// Document is the displayed page.
type Document interface {
	DocumentElement() (Element, bool)
	ExitFullscreen(ctx context.Context) error
	Fullscreen() bool
	VisibilityState() entities.VisibilityState
}

// Element is a node that can be put into fullscreen.
type Element interface {
	RequestFullscreen(ctx context.Context) error
}

// HostError is an error produced by the host. Value holds the raw host
// object (for example a JS exception) so callers can hand it back
// unchanged.
type HostError struct {
	Value   any
	Message string
	Err     error // Optional: ErrNotInvoked for synchronous throws
}

func (e *HostError) Error() string {
	return e.Message
}

func (e *HostError) Unwrap() error {
	return e.Err
}

// HostValue returns the raw host value behind err, or nil.
func HostValue(err error) any {
	var he *HostError
	if errors.As(err, &he) {
		return he.Value
	}
	return nil
}

// Package memory provides a deterministic in-memory browser host. It backs
// the wrapper tests and lets the probe CLI replay recorded browser profiles.
package memory

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/remix-pwa/pwa-client/domain/entities"
	"github.com/remix-pwa/pwa-client/domain/ports"
)

// Host is an in-memory browser. All handles read the shared profile under a
// lock, so mutations through the Set methods are seen by live handles.
type Host struct {
	mu        sync.Mutex
	profile   Profile
	listeners map[int]func(bool)
	nextID    int

	lastPositionOptions *entities.PositionOptions
}

var (
	_ ports.Host             = (*Host)(nil)
	_ ports.Window           = (*window)(nil)
	_ ports.Navigator        = (*navigator)(nil)
	_ ports.Document         = (*document)(nil)
	_ ports.Element          = (*element)(nil)
	_ ports.Clipboard        = (*clipboard)(nil)
	_ ports.Connection       = (*connection)(nil)
	_ ports.Geolocation      = (*geolocation)(nil)
	_ ports.Permissions      = (*permissions)(nil)
	_ ports.PermissionStatus = PermissionStatus{}
)

// NewHost creates a host in the given state.
func NewHost(p Profile) *Host {
	return &Host{profile: p, listeners: make(map[int]func(bool))}
}

// NewDefaultHost creates a host from DefaultProfile.
func NewDefaultHost() *Host {
	return NewHost(DefaultProfile())
}

// Window implements ports.Host.
func (h *Host) Window() (ports.Window, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.profile.Window {
		return nil, false
	}
	return &window{h: h}, true
}

// Profile returns a deep copy of the current state. Changing it does not
// affect the host; use Update for that.
func (h *Host) Profile() Profile {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.profile.Clone()
}

// Update applies fn to the state under the host lock.
func (h *Host) Update(fn func(p *Profile)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	fn(&h.profile)
}

// SetOnline changes the online flag and notifies connectivity listeners
// when it flips.
func (h *Host) SetOnline(online bool) {
	h.mu.Lock()
	changed := h.profile.Online != online
	h.profile.Online = online
	var notify []func(bool)
	if changed {
		for _, id := range slices.Sorted(maps.Keys(h.listeners)) {
			notify = append(notify, h.listeners[id])
		}
	}
	h.mu.Unlock()

	for _, fn := range notify {
		fn(online)
	}
}

// ClipboardText returns the clipboard contents, or false when the host has
// no clipboard.
func (h *Host) ClipboardText() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.profile.Clipboard == nil {
		return "", false
	}
	return h.profile.Clipboard.Text, true
}

// ListenerCount returns the number of registered connectivity listeners.
func (h *Host) ListenerCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.listeners)
}

// LastPositionOptions returns the options of the most recent geolocation
// request.
func (h *Host) LastPositionOptions() *entities.PositionOptions {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.lastPositionOptions
}

type window struct{ h *Host }

func (w *window) Navigator() ports.Navigator { return &navigator{h: w.h} }

func (w *window) Document() (ports.Document, bool) {
	w.h.mu.Lock()
	defer w.h.mu.Unlock()
	if !w.h.profile.Document {
		return nil, false
	}
	return &document{h: w.h}, true
}

func (w *window) AddConnectivityListener(fn func(online bool)) func() {
	w.h.mu.Lock()
	defer w.h.mu.Unlock()
	id := w.h.nextID
	w.h.nextID++
	w.h.listeners[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			w.h.mu.Lock()
			defer w.h.mu.Unlock()
			delete(w.h.listeners, id)
		})
	}
}

type navigator struct{ h *Host }

func (n *navigator) Clipboard() (ports.Clipboard, bool) {
	n.h.mu.Lock()
	defer n.h.mu.Unlock()
	if n.h.profile.Clipboard == nil {
		return nil, false
	}
	return &clipboard{h: n.h}, true
}

func (n *navigator) OnLine() bool {
	n.h.mu.Lock()
	defer n.h.mu.Unlock()
	return n.h.profile.Online
}

func (n *navigator) Connection() (ports.Connection, bool) {
	n.h.mu.Lock()
	defer n.h.mu.Unlock()
	if n.h.profile.Connection == nil {
		return nil, false
	}
	return &connection{info: *n.h.profile.Connection}, true
}

func (n *navigator) Geolocation() (ports.Geolocation, bool) {
	n.h.mu.Lock()
	defer n.h.mu.Unlock()
	if n.h.profile.Geolocation == nil {
		return nil, false
	}
	return &geolocation{h: n.h}, true
}

func (n *navigator) Language() (string, bool) {
	n.h.mu.Lock()
	defer n.h.mu.Unlock()
	return n.h.profile.Language, n.h.profile.Language != ""
}

func (n *navigator) Languages() []string {
	n.h.mu.Lock()
	defer n.h.mu.Unlock()
	return slices.Clone(n.h.profile.Languages)
}

func (n *navigator) Permissions() (ports.Permissions, bool) {
	n.h.mu.Lock()
	defer n.h.mu.Unlock()
	if n.h.profile.Permissions == nil {
		return nil, false
	}
	return &permissions{h: n.h}, true
}

type clipboard struct{ h *Host }

func (c *clipboard) WriteText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.h.mu.Lock()
	defer c.h.mu.Unlock()
	cb := c.h.profile.Clipboard
	if cb == nil {
		return errors.New("clipboard removed")
	}
	if cb.WriteError != "" {
		return errors.New(cb.WriteError)
	}
	cb.Text = text
	return nil
}

func (c *clipboard) ReadText(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	c.h.mu.Lock()
	defer c.h.mu.Unlock()
	cb := c.h.profile.Clipboard
	if cb == nil {
		return "", errors.New("clipboard removed")
	}
	if cb.ReadError != "" {
		return "", errors.New(cb.ReadError)
	}
	return cb.Text, nil
}

type connection struct{ info entities.NetworkInformation }

func (c *connection) Type() entities.ConnectionType { return c.info.Type }
func (c *connection) Info() entities.NetworkInformation { return c.info }

type geolocation struct{ h *Host }

// GetCurrentPosition answers synchronously from the profile.
func (g *geolocation) GetCurrentPosition(success func(entities.Position), failure func(*entities.PositionError), opts *entities.PositionOptions) error {
	g.h.mu.Lock()
	if opts != nil {
		o := *opts
		g.h.lastPositionOptions = &o
	} else {
		g.h.lastPositionOptions = nil
	}
	var gp GeolocationProfile
	if g.h.profile.Geolocation != nil {
		gp = *g.h.profile.Geolocation
	}
	g.h.mu.Unlock()

	if gp.Refuse != "" {
		return fmt.Errorf("%w: %s", ports.ErrNotInvoked, gp.Refuse)
	}

	switch {
	case gp.Error != nil:
		if failure != nil {
			e := *gp.Error
			failure(&e)
		}
	case gp.Position != nil:
		success(*gp.Position)
	default:
		if failure != nil {
			failure(&entities.PositionError{Code: entities.PositionUnavailable, Message: "Position unavailable"})
		}
	}
	return nil
}

type document struct{ h *Host }

func (d *document) DocumentElement() (ports.Element, bool) {
	d.h.mu.Lock()
	defer d.h.mu.Unlock()
	if !d.h.profile.DocumentElement {
		return nil, false
	}
	return &element{h: d.h}, true
}

func (d *document) ExitFullscreen(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d.h.mu.Lock()
	defer d.h.mu.Unlock()
	if !d.h.profile.Fullscreen {
		return errors.New("TypeError: Document not active")
	}
	d.h.profile.Fullscreen = false
	return nil
}

func (d *document) Fullscreen() bool {
	d.h.mu.Lock()
	defer d.h.mu.Unlock()
	return d.h.profile.Fullscreen
}

func (d *document) VisibilityState() entities.VisibilityState {
	d.h.mu.Lock()
	defer d.h.mu.Unlock()
	if d.h.profile.Visibility == "" {
		return entities.VisibilityVisible
	}
	return d.h.profile.Visibility
}

type element struct{ h *Host }

func (e *element) RequestFullscreen(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e.h.mu.Lock()
	defer e.h.mu.Unlock()
	if e.h.profile.FullscreenError != "" {
		return errors.New(e.h.profile.FullscreenError)
	}
	e.h.profile.Fullscreen = true
	return nil
}

type permissions struct{ h *Host }

func (p *permissions) Query(ctx context.Context, name string) (ports.PermissionStatus, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.h.mu.Lock()
	defer p.h.mu.Unlock()
	if msg, ok := p.h.profile.PermissionErrors[name]; ok {
		return nil, errors.New(msg)
	}
	state, ok := p.h.profile.Permissions[name]
	if !ok {
		return nil, fmt.Errorf("%w: TypeError: %q is not a valid value for enumeration PermissionName", ports.ErrNotInvoked, name)
	}
	return PermissionStatus{PermissionName: name, PermissionState: state}, nil
}

// PermissionStatus is the in-memory permission status.
type PermissionStatus struct {
	PermissionName  string                   `json:"name"`
	PermissionState entities.PermissionState `json:"state"`
}

// Name implements ports.PermissionStatus.
func (s PermissionStatus) Name() string { return s.PermissionName }

// State implements ports.PermissionStatus.
func (s PermissionStatus) State() entities.PermissionState { return s.PermissionState }

//go:build !js

// Package native implements the host ports on top of the operating system,
// so entry points can run in command-line tools. There is no document:
// fullscreen and visibility behave as outside a browser.
package native

import (
	"context"
	"log/slog"
	"os"
	"slices"
	"sync"
	"time"

	"github.com/remix-pwa/pwa-client/domain/entities"
	"github.com/remix-pwa/pwa-client/domain/ports"
)

// Host reads capabilities from the local machine.
type Host struct {
	logger       *slog.Logger
	getenv       func(string) string
	interfaces   InterfaceLister
	clipboard    ports.Clipboard
	locator      Locator
	pollInterval time.Duration

	mu        sync.Mutex
	listeners map[int]func(bool)
	nextID    int
	stopPoll  context.CancelFunc
	lastFix   *entities.Position
	lastFixAt time.Time
}

// Option configures a Host.
type Option func(*Host)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(h *Host) {
		h.logger = l
	}
}

// WithGetenv replaces os.Getenv for locale lookups.
func WithGetenv(fn func(string) string) Option {
	return func(h *Host) {
		h.getenv = fn
	}
}

// WithInterfaces replaces the network interface lister.
func WithInterfaces(fn InterfaceLister) Option {
	return func(h *Host) {
		h.interfaces = fn
	}
}

// WithClipboard replaces the system clipboard. A nil clipboard reports the
// capability as absent.
func WithClipboard(c ports.Clipboard) Option {
	return func(h *Host) {
		h.clipboard = c
	}
}

// WithLocator enables geolocation through l.
func WithLocator(l Locator) Option {
	return func(h *Host) {
		h.locator = l
	}
}

// WithPollInterval sets how often connectivity listeners re-check the
// network interfaces. Defaults to two seconds.
func WithPollInterval(d time.Duration) Option {
	return func(h *Host) {
		if d > 0 {
			h.pollInterval = d
		}
	}
}

// NewHost creates a native host. Geolocation stays unavailable unless a
// locator is configured (see NewGoogleLocator).
func NewHost(opts ...Option) *Host {
	h := &Host{
		logger:       slog.Default(),
		getenv:       os.Getenv,
		interfaces:   SystemInterfaces,
		pollInterval: 2 * time.Second,
		listeners:    make(map[int]func(bool)),
	}
	if systemClipboardAvailable() {
		h.clipboard = systemClipboard{}
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Window always succeeds; the machine itself plays the role of the window.
func (h *Host) Window() (ports.Window, bool) {
	return (*window)(h), true
}

type window Host

func (w *window) host() *Host { return (*Host)(w) }

func (w *window) Navigator() ports.Navigator { return (*navigator)(w) }

func (w *window) Document() (ports.Document, bool) { return nil, false }

// AddConnectivityListener polls the interfaces while at least one listener
// is registered.
func (w *window) AddConnectivityListener(fn func(online bool)) func() {
	h := w.host()

	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.listeners[id] = fn
	if h.stopPoll == nil {
		ctx, cancel := context.WithCancel(context.Background())
		h.stopPoll = cancel
		go h.poll(ctx, h.status().online)
	}
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.listeners, id)
			if len(h.listeners) == 0 && h.stopPoll != nil {
				h.stopPoll()
				h.stopPoll = nil
			}
		})
	}
}

func (h *Host) poll(ctx context.Context, online bool) {
	ticker := time.NewTicker(h.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		now := h.status().online
		if now == online {
			continue
		}
		online = now
		h.logger.Debug("native: connectivity changed", "online", online)

		h.mu.Lock()
		ids := make([]int, 0, len(h.listeners))
		for id := range h.listeners {
			ids = append(ids, id)
		}
		slices.Sort(ids)
		notify := make([]func(bool), 0, len(ids))
		for _, id := range ids {
			notify = append(notify, h.listeners[id])
		}
		h.mu.Unlock()

		for _, fn := range notify {
			fn(online)
		}
	}
}

type navigator Host

func (n *navigator) host() *Host { return (*Host)(n) }

func (n *navigator) Clipboard() (ports.Clipboard, bool) {
	c := n.host().clipboard
	return c, c != nil
}

func (n *navigator) OnLine() bool {
	return n.host().status().online
}

func (n *navigator) Connection() (ports.Connection, bool) {
	return connection{info: entities.NetworkInformation{Type: n.host().status().connType}}, true
}

func (n *navigator) Geolocation() (ports.Geolocation, bool) {
	if n.host().locator == nil {
		return nil, false
	}
	return (*geolocation)(n), true
}

func (n *navigator) Language() (string, bool) {
	langs := n.Languages()
	if len(langs) == 0 {
		return "", false
	}
	return langs[0], true
}

func (n *navigator) Languages() []string {
	return PreferredLanguages(n.host().getenv)
}

func (n *navigator) Permissions() (ports.Permissions, bool) {
	return (*permissions)(n), true
}

type connection struct {
	info entities.NetworkInformation
}

func (c connection) Type() entities.ConnectionType { return c.info.Type }
func (c connection) Info() entities.NetworkInformation { return c.info }

type linkStatus struct {
	online   bool
	connType entities.ConnectionType
}

func (h *Host) status() linkStatus {
	ifaces, err := h.interfaces()
	if err != nil {
		h.logger.Debug("native: listing interfaces failed", "error", err)
		return linkStatus{connType: entities.ConnectionUnknown}
	}
	return summarize(ifaces)
}

//go:build !js

// Package playwright implements the host ports by driving a real browser
// page. Every port call evaluates a small script in the page, so entry
// points can be exercised against Chromium from native tests and tools.
package playwright

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	pw "github.com/playwright-community/playwright-go"

	"github.com/remix-pwa/pwa-client/application/config"
	"github.com/remix-pwa/pwa-client/domain/entities"
	"github.com/remix-pwa/pwa-client/domain/ports"
)

// Evaluator runs a script in a page. playwright.Page satisfies it.
type Evaluator interface {
	Evaluate(expression string, arg ...interface{}) (interface{}, error)
}

// Host answers the ports from an Evaluator.
type Host struct {
	page         Evaluator
	logger       *slog.Logger
	timeout      time.Duration
	pollInterval time.Duration
	closers      []func() error

	mu        sync.Mutex
	listeners map[int]func(bool)
	nextID    int
	stopPoll  context.CancelFunc
}

// Option configures a Host.
type Option func(*Host)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(h *Host) {
		h.logger = l
	}
}

// WithTimeout bounds each evaluation. Defaults to 30 seconds.
func WithTimeout(d time.Duration) Option {
	return func(h *Host) {
		if d > 0 {
			h.timeout = d
		}
	}
}

// WithPollInterval sets how often connectivity listeners re-read
// navigator.onLine. Defaults to one second.
func WithPollInterval(d time.Duration) Option {
	return func(h *Host) {
		if d > 0 {
			h.pollInterval = d
		}
	}
}

// NewHost wraps an existing page.
func NewHost(page Evaluator, opts ...Option) *Host {
	h := &Host{
		page:         page,
		logger:       slog.Default(),
		timeout:      30 * time.Second,
		pollInterval: time.Second,
		listeners:    make(map[int]func(bool)),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Launch starts Playwright, opens a Chromium page at cfg.URL and wraps it.
// Close releases the browser.
func Launch(cfg config.BrowserConfig, opts ...Option) (*Host, error) {
	driver, err := pw.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	browser, err := driver.Chromium.Launch(pw.BrowserTypeLaunchOptions{
		Headless: pw.Bool(cfg.Headless),
	})
	if err != nil {
		_ = driver.Stop()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	page, err := browser.NewPage()
	if err != nil {
		_ = browser.Close()
		_ = driver.Stop()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}
	if cfg.TimeoutMs > 0 {
		page.SetDefaultTimeout(float64(cfg.TimeoutMs))
	}

	if cfg.URL != "" {
		if _, err := page.Goto(cfg.URL); err != nil {
			_ = browser.Close()
			_ = driver.Stop()
			return nil, fmt.Errorf("failed to open %s: %w", cfg.URL, err)
		}
	}

	if cfg.TimeoutMs > 0 {
		opts = append([]Option{WithTimeout(time.Duration(cfg.TimeoutMs) * time.Millisecond)}, opts...)
	}
	h := NewHost(page, opts...)
	h.closers = append(h.closers,
		func() error { return browser.Close() },
		driver.Stop,
	)
	return h, nil
}

// Close stops connectivity polling and releases the browser, if the host
// launched one.
func (h *Host) Close() error {
	h.mu.Lock()
	if h.stopPoll != nil {
		h.stopPoll()
		h.stopPoll = nil
	}
	closers := h.closers
	h.closers = nil
	h.mu.Unlock()

	var firstErr error
	for _, c := range closers {
		if err := c(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// eval runs a script, giving up when ctx ends. The evaluation itself keeps
// running in the page.
func (h *Host) eval(ctx context.Context, expr string, args ...any) (any, error) {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	type result struct {
		v   any
		err error
	}
	ch := make(chan result, 1)
	go func() {
		v, err := h.page.Evaluate(expr, args...)
		ch <- result{v: v, err: err}
	}()

	select {
	case r := <-ch:
		if r.err != nil {
			return nil, &ports.HostError{Value: r.err.Error(), Message: r.err.Error(), Err: r.err}
		}
		return r.v, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// evalInto decodes the evaluation result into dst through JSON.
func (h *Host) evalInto(ctx context.Context, dst any, expr string, args ...any) error {
	v, err := h.eval(ctx, expr, args...)
	if err != nil {
		return err
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("unexpected evaluation result %T: %w", v, err)
	}
	return json.Unmarshal(b, dst)
}

// check evaluates a boolean probe. Failures count as false.
func (h *Host) check(expr string) bool {
	var ok bool
	if err := h.evalInto(context.Background(), &ok, expr); err != nil {
		h.logger.Debug("playwright: probe failed", "expression", expr, "error", err)
		return false
	}
	return ok
}

// Window reports the page window.
func (h *Host) Window() (ports.Window, bool) {
	if !h.check(exprHasWindow) {
		return nil, false
	}
	return (*window)(h), true
}

type window Host

func (w *window) host() *Host { return (*Host)(w) }

func (w *window) Navigator() ports.Navigator { return (*navigator)(w) }

func (w *window) Document() (ports.Document, bool) {
	if !w.host().check(exprHasDocument) {
		return nil, false
	}
	return (*document)(w), true
}

// AddConnectivityListener polls navigator.onLine while at least one
// listener is registered.
func (w *window) AddConnectivityListener(fn func(online bool)) func() {
	h := w.host()

	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.listeners[id] = fn
	if h.stopPoll == nil {
		ctx, cancel := context.WithCancel(context.Background())
		h.stopPoll = cancel
		go h.poll(ctx, h.check(exprOnLine))
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

		now := h.check(exprOnLine)
		if now == online {
			continue
		}
		online = now

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

type document Host

func (d *document) host() *Host { return (*Host)(d) }

func (d *document) DocumentElement() (ports.Element, bool) {
	if !d.host().check(exprHasElement) {
		return nil, false
	}
	return (*element)(d), true
}

func (d *document) ExitFullscreen(ctx context.Context) error {
	_, err := d.host().eval(ctx, fnExitFullscreen)
	return err
}

func (d *document) Fullscreen() bool {
	return d.host().check(exprFullscreen)
}

func (d *document) VisibilityState() entities.VisibilityState {
	var state string
	if err := d.host().evalInto(context.Background(), &state, exprVisibility); err != nil || state == "" {
		return entities.VisibilityVisible
	}
	return entities.VisibilityState(state)
}

type element Host

func (e *element) RequestFullscreen(ctx context.Context) error {
	_, err := (*Host)(e).eval(ctx, fnRequestFullscreen)
	return err
}

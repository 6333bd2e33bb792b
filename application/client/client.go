// Package client implements the browser capability wrappers. Each wrapper
// forwards to a single host API through the ports, awaits it when it is
// asynchronous, and maps the outcome into a result or a typed error from the
// pwa package.
package client

import (
	"context"
	"log/slog"

	pwa "github.com/remix-pwa/pwa-client"
	"github.com/remix-pwa/pwa-client/domain/ports"
)

// Client wraps a host. It holds no state of its own and is safe for
// concurrent use when the host is.
type Client struct {
	host   ports.Host
	logger *slog.Logger
}

// Option configures a Client.
type Option func(*clientConfig)

type clientConfig struct {
	logger *slog.Logger
}

// WithLogger sets the logger used for wrapper diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *clientConfig) {
		c.logger = l
	}
}

// New creates a Client over the given host.
func New(host ports.Host, opts ...Option) *Client {
	cfg := clientConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	return &Client{host: host, logger: cfg.logger}
}

// Host returns the host the client talks to.
func (c *Client) Host() ports.Host {
	return c.host
}

// window resolves the global scope or aborts with the wrapper's own message.
func (c *Client) window(ctx context.Context, op, missing string) (ports.Window, error) {
	w, ok := c.host.Window()
	if !ok {
		return nil, c.abort(ctx, op, missing, nil)
	}
	return w, nil
}

// document resolves window and document for the fullscreen and visibility
// wrappers, which share their abort messages.
func (c *Client) document(ctx context.Context, op string) (ports.Document, error) {
	w, err := c.window(ctx, op, msgWindowMissing)
	if err != nil {
		return nil, err
	}
	doc, ok := w.Document()
	if !ok {
		return nil, c.abort(ctx, op, msgDocumentMissing, nil)
	}
	return doc, nil
}

func (c *Client) abort(ctx context.Context, op, msg string, cause error) error {
	c.logger.ErrorContext(ctx, "pwa: call aborted", "operation", op, "reason", msg)
	return &pwa.AbortError{Operation: op, Message: msg, Err: cause}
}

func (c *Client) rejected(op string, err error) error {
	return &pwa.RejectedError{Operation: op, Reason: ports.HostValue(err), Err: err}
}

package client

import (
	"context"
	"errors"

	pwa "github.com/remix-pwa/pwa-client"
	"github.com/remix-pwa/pwa-client/domain/entities"
	"github.com/remix-pwa/pwa-client/domain/ports"
)

// IsOnline reports the host online flag.
func (c *Client) IsOnline(ctx context.Context) (bool, error) {
	w, err := c.window(ctx, OpIsOnline, msgNoWindow)
	if err != nil {
		return false, err
	}
	return w.Navigator().OnLine(), nil
}

// CheckConnectivity calls online when the host reports it is online and
// offline otherwise. Exactly one callback is invoked, once.
func (c *Client) CheckConnectivity(ctx context.Context, online, offline func()) error {
	if online == nil || offline == nil {
		return &pwa.ValidationError{Operation: OpCheckConnectivity, Err: errors.New("both callbacks are required")}
	}

	w, err := c.window(ctx, OpCheckConnectivity, msgNoWindow)
	if err != nil {
		return err
	}
	if w.Navigator().OnLine() {
		online()
	} else {
		offline()
	}
	return nil
}

// ListenConnectivity calls fn on every online/offline transition until the
// returned function is called or ctx is done.
func (c *Client) ListenConnectivity(ctx context.Context, fn func(online bool)) (func(), error) {
	if fn == nil {
		return nil, &pwa.ValidationError{Operation: OpListenConnectivity, Err: errors.New("callback is required")}
	}

	w, err := c.window(ctx, OpListenConnectivity, msgNoWindow)
	if err != nil {
		return nil, err
	}

	remove := w.AddConnectivityListener(fn)
	stop := context.AfterFunc(ctx, remove)
	return func() {
		stop()
		remove()
	}, nil
}

// GetNetworkInformation returns the host connection object unchanged.
func (c *Client) GetNetworkInformation(ctx context.Context) (ports.Connection, error) {
	return c.connection(ctx, OpGetNetworkInformation)
}

// GetType returns the kind of network link.
func (c *Client) GetType(ctx context.Context) (entities.ConnectionType, error) {
	conn, err := c.connection(ctx, OpGetType)
	if err != nil {
		return "", err
	}
	return conn.Type(), nil
}

func (c *Client) connection(ctx context.Context, op string) (ports.Connection, error) {
	w, err := c.window(ctx, op, msgNoWindow)
	if err != nil {
		return nil, err
	}
	conn, ok := w.Navigator().Connection()
	if !ok {
		return nil, c.abort(ctx, op, msgNoConnection, &pwa.CapabilityError{Capability: "connection"})
	}
	return conn, nil
}

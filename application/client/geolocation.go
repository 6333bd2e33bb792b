package client

import (
	"context"
	"errors"

	pwa "github.com/remix-pwa/pwa-client"
	"github.com/remix-pwa/pwa-client/domain/entities"
	"github.com/remix-pwa/pwa-client/domain/ports"
)

// GetGeolocationObject returns the host geolocation object unchanged.
func (c *Client) GetGeolocationObject(ctx context.Context) (ports.Geolocation, error) {
	return c.geolocation(ctx, OpGetGeolocationObject)
}

// GetCurrentPosition starts a position request and returns once the host has
// accepted it. success is called later, at most once, if a fix arrives.
func (c *Client) GetCurrentPosition(ctx context.Context, success func(entities.Position)) error {
	return c.GetCurrentPositionWithOptions(ctx, nil, success, nil)
}

// GetCurrentPositionWithOptions is GetCurrentPosition with request options
// and a failure callback. Either may be nil.
func (c *Client) GetCurrentPositionWithOptions(
	ctx context.Context,
	opts *entities.PositionOptions,
	success func(entities.Position),
	failure func(*entities.PositionError),
) error {
	op := OpGetCurrentPosition
	if opts != nil || failure != nil {
		op = OpGetCurrentPositionWithOptions
	}
	if success == nil {
		return &pwa.ValidationError{Operation: op, Field: "success_callback", Err: errors.New("callback is required")}
	}

	geo, err := c.geolocation(ctx, op)
	if err != nil {
		return err
	}

	if err := geo.GetCurrentPosition(success, failure, opts); err != nil {
		c.logger.ErrorContext(ctx, "Error getting current position", "error", err)
		return c.rejected(op, err)
	}
	return nil
}

// CurrentPosition requests a single fix and waits for it. A host failure is
// returned as a *pwa.RejectedError wrapping the *entities.PositionError.
func (c *Client) CurrentPosition(ctx context.Context, opts *entities.PositionOptions) (entities.Position, error) {
	type outcome struct {
		pos entities.Position
		err *entities.PositionError
	}
	done := make(chan outcome, 1)
	deliver := func(o outcome) {
		select {
		case done <- o:
		default:
		}
	}

	err := c.GetCurrentPositionWithOptions(ctx, opts,
		func(p entities.Position) { deliver(outcome{pos: p}) },
		func(e *entities.PositionError) { deliver(outcome{err: e}) },
	)
	if err != nil {
		return entities.Position{}, err
	}

	select {
	case o := <-done:
		if o.err != nil {
			return entities.Position{}, &pwa.RejectedError{Operation: OpGetCurrentPositionWithOptions, Reason: o.err.Raw, Err: o.err}
		}
		return o.pos, nil
	case <-ctx.Done():
		return entities.Position{}, ctx.Err()
	}
}

func (c *Client) geolocation(ctx context.Context, op string) (ports.Geolocation, error) {
	w, err := c.window(ctx, op, msgNoWindow)
	if err != nil {
		return nil, err
	}
	geo, ok := w.Navigator().Geolocation()
	if !ok {
		return nil, c.abort(ctx, op, msgNoGeolocation, &pwa.CapabilityError{Capability: "geolocation"})
	}
	return geo, nil
}

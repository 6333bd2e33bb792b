//go:build js && wasm

package browser

import (
	"sync"
	"syscall/js"

	"github.com/remix-pwa/pwa-client/domain/entities"
	"github.com/remix-pwa/pwa-client/internal/jsbridge"
)

type geolocation struct {
	v js.Value
}

func (g *geolocation) JSValue() js.Value { return g.v }

// GetCurrentPosition calls navigator.geolocation.getCurrentPosition. The
// callbacks are released once the browser has answered.
func (g *geolocation) GetCurrentPosition(success func(entities.Position), failure func(*entities.PositionError), opts *entities.PositionOptions) error {
	var (
		once      sync.Once
		onSuccess js.Func
		onError   js.Func
	)
	release := func() {
		once.Do(func() {
			onSuccess.Release()
			onError.Release()
		})
	}

	onSuccess = js.FuncOf(func(_ js.Value, args []js.Value) any {
		defer release()
		if len(args) > 0 {
			success(toPosition(args[0]))
		}
		return nil
	})
	onError = js.FuncOf(func(_ js.Value, args []js.Value) any {
		defer release()
		if failure != nil && len(args) > 0 {
			failure(toPositionError(args[0]))
		}
		return nil
	})

	err := jsbridge.Try(func() {
		g.v.Call("getCurrentPosition", onSuccess, onError, positionOptions(opts))
	})
	if err != nil {
		release()
	}
	return err
}

func positionOptions(opts *entities.PositionOptions) any {
	if opts == nil {
		return js.Undefined()
	}
	o := js.Global().Get("Object").New()
	o.Set("enableHighAccuracy", opts.EnableHighAccuracy)
	if opts.Timeout != nil {
		o.Set("timeout", *opts.Timeout)
	}
	if opts.MaximumAge != nil {
		o.Set("maximumAge", *opts.MaximumAge)
	}
	return o
}

func toPosition(v js.Value) entities.Position {
	c := v.Get("coords")
	pos := entities.Position{Raw: v}
	if jsbridge.Defined(c) {
		pos.Coords = entities.Coordinates{
			Latitude:         c.Get("latitude").Float(),
			Longitude:        c.Get("longitude").Float(),
			Accuracy:         c.Get("accuracy").Float(),
			Altitude:         jsbridge.Float(c, "altitude"),
			AltitudeAccuracy: jsbridge.Float(c, "altitudeAccuracy"),
			Heading:          jsbridge.Float(c, "heading"),
			Speed:            jsbridge.Float(c, "speed"),
		}
	}
	if ts := v.Get("timestamp"); ts.Type() == js.TypeNumber {
		pos.Timestamp = int64(ts.Float())
	}
	return pos
}

func toPositionError(v js.Value) *entities.PositionError {
	e := &entities.PositionError{Raw: v, Message: jsbridge.ErrorMessage(v)}
	if code := v.Get("code"); code.Type() == js.TypeNumber {
		e.Code = code.Int()
	}
	return e
}

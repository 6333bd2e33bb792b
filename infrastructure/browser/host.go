//go:build js && wasm

// Package browser implements the host ports on top of the JavaScript global
// scope. Handles keep the underlying JavaScript objects so they can be
// returned to page scripts unchanged.
package browser

import (
	"context"
	"syscall/js"

	"github.com/remix-pwa/pwa-client/domain/entities"
	"github.com/remix-pwa/pwa-client/domain/ports"
	"github.com/remix-pwa/pwa-client/internal/jsbridge"
)

// Host reads capabilities from a JavaScript global object.
type Host struct {
	global js.Value
}

// NewHost binds to globalThis.
func NewHost() *Host {
	return &Host{global: js.Global()}
}

// NewHostFor binds to an arbitrary global object, such as a test double.
func NewHostFor(global js.Value) *Host {
	return &Host{global: global}
}

// Window returns globalThis.window. Workers have none.
func (h *Host) Window() (ports.Window, bool) {
	w := h.global.Get("window")
	if !jsbridge.Defined(w) {
		return nil, false
	}
	return &window{v: w}, true
}

type window struct {
	v js.Value
}

func (w *window) JSValue() js.Value { return w.v }

func (w *window) Navigator() ports.Navigator {
	return &navigator{v: w.v.Get("navigator")}
}

func (w *window) Document() (ports.Document, bool) {
	d := w.v.Get("document")
	if !jsbridge.Defined(d) {
		return nil, false
	}
	return &document{v: d}, true
}

// AddConnectivityListener subscribes to the window online and offline
// events.
func (w *window) AddConnectivityListener(fn func(online bool)) func() {
	onOnline := js.FuncOf(func(js.Value, []js.Value) any {
		fn(true)
		return nil
	})
	onOffline := js.FuncOf(func(js.Value, []js.Value) any {
		fn(false)
		return nil
	})
	w.v.Call("addEventListener", "online", onOnline)
	w.v.Call("addEventListener", "offline", onOffline)

	return func() {
		w.v.Call("removeEventListener", "online", onOnline)
		w.v.Call("removeEventListener", "offline", onOffline)
		onOnline.Release()
		onOffline.Release()
	}
}

type document struct {
	v js.Value
}

func (d *document) JSValue() js.Value { return d.v }

func (d *document) DocumentElement() (ports.Element, bool) {
	el := d.v.Get("documentElement")
	if !jsbridge.Defined(el) {
		return nil, false
	}
	return &element{v: el}, true
}

func (d *document) ExitFullscreen(ctx context.Context) error {
	return callAndAwait(ctx, d.v, "exitFullscreen")
}

func (d *document) Fullscreen() bool {
	return jsbridge.Defined(d.v.Get("fullscreenElement"))
}

func (d *document) VisibilityState() entities.VisibilityState {
	if s := d.v.Get("visibilityState"); s.Type() == js.TypeString {
		return entities.VisibilityState(s.String())
	}
	return entities.VisibilityVisible
}

type element struct {
	v js.Value
}

func (e *element) JSValue() js.Value { return e.v }

func (e *element) RequestFullscreen(ctx context.Context) error {
	return callAndAwait(ctx, e.v, "requestFullscreen")
}

// callAndAwait calls a method that may throw or return a Promise.
func callAndAwait(ctx context.Context, target js.Value, method string, args ...any) error {
	_, err := callAwaitValue(ctx, target, method, args...)
	return err
}

func callAwaitValue(ctx context.Context, target js.Value, method string, args ...any) (js.Value, error) {
	if target.Get(method).Type() != js.TypeFunction {
		return js.Undefined(), &ports.HostError{
			Value:   jsbridge.NewError(method + " is not a function"),
			Message: method + " is not a function",
			Err:     ports.ErrNotInvoked,
		}
	}

	var promise js.Value
	if err := jsbridge.Try(func() { promise = target.Call(method, args...) }); err != nil {
		return js.Undefined(), err
	}
	return jsbridge.Await(ctx, promise)
}

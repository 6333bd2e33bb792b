//go:build js && wasm

package wasm

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"syscall/js"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pwa "github.com/remix-pwa/pwa-client"
	"github.com/remix-pwa/pwa-client/application/client"
	"github.com/remix-pwa/pwa-client/application/exports"
	"github.com/remix-pwa/pwa-client/application/policy"
	"github.com/remix-pwa/pwa-client/domain/ports"
	"github.com/remix-pwa/pwa-client/infrastructure/browser"
	"github.com/remix-pwa/pwa-client/internal/jsbridge"
)

const testNamespace = "pwaClientTest"

// fakeWindow is a browser window with every capability the wrappers use.
const fakeWindow = `({
	listeners: { online: [], offline: [] },
	addEventListener(type, fn) { this.listeners[type].push(fn); },
	removeEventListener(type, fn) {
		this.listeners[type] = this.listeners[type].filter((f) => f !== fn);
	},
	navigator: {
		onLine: true,
		language: "en-US",
		languages: ["en-US", "en"],
		connection: { type: "wifi", effectiveType: "4g", downlink: 10, rtt: 50, saveData: false },
		clipboard: {
			text: "",
			writeText(text) { this.text = text; return Promise.resolve(); },
			readText() { return Promise.resolve(this.text); },
		},
		permissions: {
			query(desc) {
				if (desc.name === "telepathy") throw new TypeError("unknown permission");
				if (desc.name === "push") return Promise.reject("NotSupportedError");
				return Promise.resolve({ name: desc.name, state: "granted" });
			},
		},
		geolocation: {
			getCurrentPosition(success, failure, options) {
				this.lastOptions = options;
				success({ coords: { latitude: 51.5, longitude: -0.12, accuracy: 20 }, timestamp: 1700000000000 });
			},
		},
	},
	document: {
		visibilityState: "hidden",
		fullscreenElement: null,
		documentElement: {
			requestFullscreen() { return Promise.reject(new TypeError("Permissions check failed")); },
		},
		exitFullscreen() { return Promise.resolve(); },
	},
})`

// recorder is a JavaScript function that keeps the arguments of each call.
const recorder = `(() => { const f = (...a) => { f.calls.push(a); }; f.calls = []; return f; })()`

func evalJS(src string) js.Value {
	return js.Global().Get("Function").New("return (" + src + ");").Invoke()
}

type harness struct {
	t       *testing.T
	window  js.Value
	ns      js.Value
	console js.Value
}

// newHarness registers the catalog against a fresh fake window. mutate, when
// set, is a JavaScript function applied to the window first.
func newHarness(t *testing.T, mutate string, opts ...policy.ExposeCheckerOption) *harness {
	t.Helper()

	window := evalJS(fakeWindow)
	if mutate != "" {
		evalJS(mutate).Invoke(window)
	}
	global := js.Global().Get("Object").New()
	global.Set("window", window)

	discard := slog.New(slog.NewTextHandler(io.Discard, nil))
	checker, err := policy.NewExposeChecker([]string{"**"}, append(opts, policy.WithExposeLogger(discard))...)
	require.NoError(t, err)

	c := client.New(browser.NewHostFor(global), client.WithLogger(discard))
	return register(t, exports.Catalog(), c, checker, window)
}

func register(t *testing.T, def *exports.Definition, c *client.Client, checker *policy.ExposeChecker, window js.Value) *harness {
	t.Helper()

	console := js.Global().Get("console")
	original := console.Get("error")
	errorsSeen := evalJS(recorder)
	console.Set("error", errorsSeen)

	discard := slog.New(slog.NewTextHandler(io.Discard, nil))
	e := Register(def, c, checker, WithNamespace(testNamespace), WithLogger(discard))
	t.Cleanup(func() {
		e.Release()
		js.Global().Delete(testNamespace)
		console.Set("error", original)
	})

	return &harness{t: t, window: window, ns: js.Global().Get(testNamespace), console: errorsSeen}
}

func (h *harness) call(name string, args ...any) js.Value {
	h.t.Helper()
	fn := h.ns.Get(name)
	require.Equal(h.t, js.TypeFunction, fn.Type(), "%s is not exported", name)
	return fn.Invoke(args...)
}

// resolve calls an entry point and returns the value its Promise resolves to.
func (h *harness) resolve(name string, args ...any) js.Value {
	h.t.Helper()
	v, err := h.settle(h.call(name, args...))
	require.NoError(h.t, err, "%s rejected", name)
	return v
}

// reject calls an entry point and returns the value its Promise rejects with.
func (h *harness) reject(name string, args ...any) js.Value {
	h.t.Helper()
	_, err := h.settle(h.call(name, args...))
	var hostErr *ports.HostError
	require.True(h.t, errors.As(err, &hostErr), "%s resolved", name)
	reason, ok := hostErr.Value.(js.Value)
	require.True(h.t, ok)
	return reason
}

func (h *harness) settle(promise js.Value) (js.Value, error) {
	h.t.Helper()
	require.True(h.t, promise.InstanceOf(js.Global().Get("Promise")), "expected a Promise")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return jsbridge.Await(ctx, promise)
}

func (h *harness) consoleErrors() []string {
	calls := h.console.Get("calls")
	out := make([]string, 0, calls.Length())
	for i := 0; i < calls.Length(); i++ {
		out = append(out, calls.Index(i).Index(0).String())
	}
	return out
}

func assertResponse(t *testing.T, v js.Value, status, message string) {
	t.Helper()
	require.Equal(t, js.TypeObject, v.Type())
	assert.Equal(t, status, v.Get("status").String())
	assert.Equal(t, message, v.Get("message").String())
	assert.Equal(t, status, v.Get("getStatus").String())
	assert.Equal(t, message, v.Get("getMessage").String())
	assert.True(t, js.Global().Get("Object").Call("isFrozen", v).Bool())
}

func TestClientResponseConstructor(t *testing.T) {
	h := newHarness(t, "")

	resp := h.ns.Get("ClientResponse").New("success", "Copied to clipboard!")
	assertResponse(t, resp, "success", "Copied to clipboard!")

	empty := h.ns.Get("ClientResponse").New()
	assertResponse(t, empty, "", "")
}

func TestCopyToClipboard(t *testing.T) {
	t.Run("resolves with a success response", func(t *testing.T) {
		h := newHarness(t, "")
		assertResponse(t, h.resolve(client.OpCopyToClipboard, "hello"), "success", client.MsgCopied)
		assert.Equal(t, "hello", h.window.Get("navigator").Get("clipboard").Get("text").String())
	})

	t.Run("missing clipboard rejects with an error response", func(t *testing.T) {
		h := newHarness(t, `(w) => { delete w.navigator.clipboard; }`)
		assertResponse(t, h.reject(client.OpCopyToClipboard, "hello"), "error", client.MsgClipboardUnavailable)
		assert.Empty(t, h.consoleErrors())
	})

	t.Run("rejected write", func(t *testing.T) {
		h := newHarness(t, `(w) => { w.navigator.clipboard.writeText = () => Promise.reject(new Error("denied")); }`)
		assertResponse(t, h.reject(client.OpCopyImageToClipboard, "iVBORw0KGgo="), "error", client.MsgCopyImageFailed)
	})

	t.Run("bad argument is a validation error", func(t *testing.T) {
		h := newHarness(t, "")
		reason := h.reject(client.OpCopyToClipboard, 42)
		assert.True(t, reason.InstanceOf(js.Global().Get("Error")))
		assert.Equal(t, "validation", reason.Get("detail").Get("type").String())
		assert.Len(t, h.consoleErrors(), 1)
	})
}

func TestPasteFromClipboard(t *testing.T) {
	t.Run("resolves with the clipboard text", func(t *testing.T) {
		h := newHarness(t, `(w) => { w.navigator.clipboard.text = "pasted"; }`)
		assert.Equal(t, "pasted", h.resolve(client.OpPasteFromClipboard).String())
	})

	t.Run("missing clipboard resolves with the message", func(t *testing.T) {
		h := newHarness(t, `(w) => { delete w.navigator.clipboard; }`)
		assert.Equal(t, client.MsgClipboardUnavailable, h.resolve(client.OpPasteFromClipboard).String())
	})
}

func TestConnectivity(t *testing.T) {
	t.Run("offline calls only the offline callback", func(t *testing.T) {
		h := newHarness(t, `(w) => { w.navigator.onLine = false; }`)
		online, offline := evalJS(recorder), evalJS(recorder)

		v := h.resolve(client.OpCheckConnectivity, online, offline)
		assert.True(t, v.IsUndefined())
		assert.Equal(t, 0, online.Get("calls").Length())
		assert.Equal(t, 1, offline.Get("calls").Length())
	})

	t.Run("is_online", func(t *testing.T) {
		h := newHarness(t, "")
		assert.True(t, h.resolve(client.OpIsOnline).Bool())
	})

	t.Run("listener follows window events until unsubscribed", func(t *testing.T) {
		h := newHarness(t, "")
		listener := evalJS(recorder)

		unsubscribe := h.resolve(client.OpListenConnectivity, listener)
		require.Equal(t, js.TypeFunction, unsubscribe.Type())

		offlineListeners := h.window.Get("listeners").Get("offline")
		require.Equal(t, 1, offlineListeners.Length())
		offlineListeners.Index(0).Invoke()

		calls := listener.Get("calls")
		require.Equal(t, 1, calls.Length())
		assert.False(t, calls.Index(0).Index(0).Bool())

		unsubscribe.Invoke()
		unsubscribe.Invoke()
		assert.Equal(t, 0, h.window.Get("listeners").Get("offline").Length())
		assert.Equal(t, 0, h.window.Get("listeners").Get("online").Length())
	})

	t.Run("network information is the raw object", func(t *testing.T) {
		h := newHarness(t, "")
		info := h.resolve(client.OpGetNetworkInformation)
		assert.True(t, info.Equal(h.window.Get("navigator").Get("connection")))
		assert.Equal(t, "wifi", h.resolve(client.OpGetType).String())
	})
}

func TestAbortIsReportedToConsole(t *testing.T) {
	h := newHarness(t, `(w) => { delete w.navigator.connection; }`)

	reason := h.reject(client.OpGetType)
	require.True(t, reason.InstanceOf(js.Global().Get("Error")))
	assert.Equal(t, "no `connection` object found on navigator", reason.Get("message").String())
	assert.Equal(t, "abort", reason.Get("detail").Get("type").String())
	assert.Equal(t, []string{"no `connection` object found on navigator"}, h.consoleErrors())
}

func TestFullscreen(t *testing.T) {
	t.Run("host rejection becomes an error response", func(t *testing.T) {
		h := newHarness(t, "")
		assertResponse(t, h.reject(client.OpRequestFullscreen), "error",
			client.MsgFullscreenFailed+"Permissions check failed")
	})

	t.Run("is fullscreen follows the document", func(t *testing.T) {
		h := newHarness(t, "")
		assert.False(t, h.resolve(client.OpIsFullscreen).Bool())

		h.window.Get("document").Set("fullscreenElement", js.Global().Get("Object").New())
		assert.True(t, h.resolve(client.OpIsFullscreen).Bool())

		assert.True(t, h.resolve(client.OpExitFullscreen).IsUndefined())
	})
}

func TestLanguages(t *testing.T) {
	h := newHarness(t, "")
	assert.Equal(t, []string{"en-US", "en"}, jsbridge.Strings(h.resolve(client.OpGetLanguages)))
	assert.Equal(t, "en-US", h.resolve(client.OpGetLanguage).String())
}

func TestPermissionStatus(t *testing.T) {
	h := newHarness(t, "")

	t.Run("resolves with the status object", func(t *testing.T) {
		status := h.resolve(client.OpGetPermissionStatus, "geolocation")
		assert.Equal(t, "geolocation", status.Get("name").String())
		assert.Equal(t, "granted", status.Get("state").String())
	})

	t.Run("host rejection passes the raw reason", func(t *testing.T) {
		reason := h.reject(client.OpGetPermissionStatus, "push")
		assert.Equal(t, js.TypeString, reason.Type())
		assert.Equal(t, "NotSupportedError", reason.String())
	})

	t.Run("synchronous throw aborts", func(t *testing.T) {
		reason := h.reject(client.OpGetPermissionStatus, "telepathy")
		assert.Equal(t, "no permission status found", reason.Get("message").String())
	})
}

func TestGeolocation(t *testing.T) {
	t.Run("options reach the browser unchanged", func(t *testing.T) {
		h := newHarness(t, "")
		success := evalJS(recorder)
		options := evalJS(`({ enableHighAccuracy: true, timeout: 0 })`)

		v := h.resolve(client.OpGetCurrentPositionWithOptions, success, js.Null(), options)
		assert.True(t, v.IsUndefined())

		geo := h.window.Get("navigator").Get("geolocation")
		sent := geo.Get("lastOptions")
		assert.True(t, sent.Get("enableHighAccuracy").Bool())
		assert.Equal(t, js.TypeNumber, sent.Get("timeout").Type())
		assert.Equal(t, 0, sent.Get("timeout").Int())
		assert.True(t, sent.Get("maximumAge").IsUndefined())

		calls := success.Get("calls")
		require.Equal(t, 1, calls.Length())
		assert.InDelta(t, 51.5, calls.Index(0).Index(0).Get("coords").Get("latitude").Float(), 1e-9)
	})

	t.Run("geolocation object is the raw handle", func(t *testing.T) {
		h := newHarness(t, "")
		geo := h.resolve(client.OpGetGeolocationObject)
		assert.True(t, geo.Equal(h.window.Get("navigator").Get("geolocation")))
	})
}

func TestVisibilityStateIsSynchronous(t *testing.T) {
	t.Run("returns the state directly", func(t *testing.T) {
		h := newHarness(t, "")
		v := h.call(client.OpGetVisibilityState)
		assert.Equal(t, js.TypeString, v.Type())
		assert.Equal(t, "hidden", v.String())
	})

	t.Run("missing document returns undefined and reports", func(t *testing.T) {
		h := newHarness(t, `(w) => { delete w.document; }`)
		v := h.call(client.OpGetVisibilityState)
		assert.True(t, v.IsUndefined())
		assert.Equal(t, []string{"type `Document` doesn't exist in the current scope!"}, h.consoleErrors())
	})
}

func TestDescribe(t *testing.T) {
	h := newHarness(t, "")
	manifest := h.call("describe")
	assert.Equal(t, pwa.ModuleName, manifest.Get("name").String())
	assert.Equal(t, 3, manifest.Get("services").Get("clipboard").Get("operations").Length())
}

func TestDeniedEntryPointsAreNotExported(t *testing.T) {
	h := newHarness(t, "", policy.WithDeny("clipboard/**"))
	assert.True(t, h.ns.Get(client.OpCopyToClipboard).IsUndefined())
	assert.Equal(t, js.TypeFunction, h.ns.Get(client.OpGetLanguages).Type())
	assert.Equal(t, js.TypeFunction, h.ns.Get("ClientResponse").Type())
}

func TestRelease(t *testing.T) {
	discard := slog.New(slog.NewTextHandler(io.Discard, nil))
	c := client.New(browser.NewHostFor(js.Global().Get("Object").New()), client.WithLogger(discard))
	e := Register(exports.Catalog(), c, mustChecker(t), WithNamespace("pwaClientRelease"), WithLogger(discard))
	defer js.Global().Delete("pwaClientRelease")

	ns := js.Global().Get("pwaClientRelease")
	require.Equal(t, js.TypeFunction, ns.Get(client.OpGetLanguages).Type())

	e.Release()
	e.Release()
	assert.True(t, ns.Get(client.OpGetLanguages).IsUndefined())
	assert.True(t, ns.Get("describe").IsUndefined())
}

func mustChecker(t *testing.T) *policy.ExposeChecker {
	t.Helper()
	checker, err := policy.NewExposeChecker([]string{"**"}, policy.WithExposeLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	require.NoError(t, err)
	return checker
}

func TestPanicsBecomeRejections(t *testing.T) {
	svc := exports.ServiceDef{Name: "faulty"}
	def := exports.Define(exports.Def{Name: "faulty", Version: "0.0.0"})
	exports.MustRegisterOp(def, svc, exports.Op[exports.NoInput, exports.Void]{
		Name: "explode",
		Handler: func(context.Context, *client.Client, exports.NoInput) (exports.Void, error) {
			panic("kaboom")
		},
	})
	exports.MustRegisterOp(def, svc, exports.Op[exports.NoInput, string]{
		Name: "explodeNow",
		Sync: true,
		Handler: func(context.Context, *client.Client, exports.NoInput) (string, error) {
			panic("kaboom")
		},
	})

	c := client.New(browser.NewHostFor(js.Global().Get("Object").New()),
		client.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	h := register(t, def, c, mustChecker(t), js.Undefined())

	reason := h.reject("explode")
	require.True(t, reason.InstanceOf(js.Global().Get("Error")))
	assert.Equal(t, "panic", reason.Get("detail").Get("type").String())

	assert.True(t, h.call("explodeNow").IsUndefined())
	assert.Len(t, h.consoleErrors(), 2)
}

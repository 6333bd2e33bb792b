//go:build js && wasm

// Package wasm publishes the entry point registry to page scripts.
package wasm

import (
	"context"
	"log/slog"
	"runtime/debug"
	"sync"
	"syscall/js"

	"github.com/google/uuid"

	pwa "github.com/remix-pwa/pwa-client"
	"github.com/remix-pwa/pwa-client/application/client"
	"github.com/remix-pwa/pwa-client/application/exports"
	"github.com/remix-pwa/pwa-client/application/policy"
	"github.com/remix-pwa/pwa-client/domain/entities"
	"github.com/remix-pwa/pwa-client/internal/jsbridge"
	"github.com/remix-pwa/pwa-client/log"
)

// Exporter owns the JavaScript functions installed on a target object.
type Exporter struct {
	def     *exports.Definition
	client  *client.Client
	checker *policy.ExposeChecker
	logger  *slog.Logger
	target  js.Value

	mu    sync.Mutex
	names []string
	funcs []js.Func
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(e *Exporter) {
		e.logger = l
	}
}

// WithNamespace attaches the exports to globalThis[name] instead of the
// global scope. The object is created when missing.
func WithNamespace(name string) Option {
	return func(e *Exporter) {
		if name == "" {
			return
		}
		ns := js.Global().Get(name)
		if !jsbridge.Defined(ns) {
			ns = js.Global().Get("Object").New()
			js.Global().Set(name, ns)
		}
		e.target = ns
	}
}

// Register installs every exposed entry point of def, together with the
// ClientResponse constructor, describe() and initConsolePanic().
func Register(def *exports.Definition, c *client.Client, checker *policy.ExposeChecker, opts ...Option) *Exporter {
	e := &Exporter{
		def:     def,
		client:  c,
		checker: checker,
		logger:  slog.Default(),
		target:  js.Global(),
	}
	for _, opt := range opts {
		opt(e)
	}

	for _, op := range def.Operations() {
		if !checker.Allowed(op.Service, op.Name) {
			e.logger.Debug("pwa: entry point not exposed", "service", op.Service, "operation", op.Name)
			continue
		}
		e.set(op.Name, e.entryPoint(op))
	}

	e.set("ClientResponse", js.FuncOf(newClientResponse))
	e.set("describe", js.FuncOf(e.describe))
	e.set("initConsolePanic", js.FuncOf(initConsolePanic))

	e.logger.Debug("pwa: exports registered", "count", len(e.names))
	return e
}

// Release removes the installed functions from the target and frees them.
func (e *Exporter) Release() {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, name := range e.names {
		e.target.Delete(name)
	}
	for _, fn := range e.funcs {
		fn.Release()
	}
	e.names, e.funcs = nil, nil
}

func (e *Exporter) set(name string, fn js.Func) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.target.Set(name, fn)
	e.names = append(e.names, name)
	e.funcs = append(e.funcs, fn)
}

// entryPoint adapts an operation to a JavaScript function. Asynchronous
// operations run on their own goroutine and return a Promise; synchronous
// ones run inline and return their value.
func (e *Exporter) entryPoint(op exports.OperationInfo) js.Func {
	return js.FuncOf(func(_ js.Value, args []js.Value) any {
		inv := &exports.Invocation{Client: e.client, Args: make([]any, len(args))}
		for i, a := range args {
			inv.Args[i] = jsbridge.FromJS(a)
		}

		if op.Sync {
			result, err := e.call(op, inv)
			if err != nil {
				// A Go callback cannot throw into its JavaScript caller.
				e.report(op.Name, RejectionFor(err))
				return js.Undefined()
			}
			return e.resultValue(result)
		}

		return jsbridge.NewPromise(func(resolve, reject func(any)) {
			result, err := e.call(op, inv)
			if err != nil {
				reject(e.rejectionValue(op.Name, RejectionFor(err)))
				return
			}
			resolve(e.resultValue(result))
		})
	})
}

// call runs a handler with a fresh request id and converts panics into
// errors so the Go runtime survives a failing entry point.
func (e *Exporter) call(op exports.OperationInfo, inv *exports.Invocation) (result any, err error) {
	ctx := log.WithRequestID(context.Background(), uuid.NewString())

	defer func() {
		if r := recover(); r != nil {
			err = pwa.NewPanicError(r)
			e.logger.ErrorContext(ctx, "pwa: entry point panic recovered", "operation", op.Name, "error", err)
		}
	}()

	e.logger.DebugContext(ctx, "pwa: entry point called", "operation", op.Name, "args", len(inv.Args))
	result, err = op.Handler(ctx, inv)
	if err != nil {
		e.logger.DebugContext(ctx, "pwa: entry point failed", "operation", op.Name, "error", err)
	}
	return result, err
}

func (e *Exporter) resultValue(v any) js.Value {
	switch x := v.(type) {
	case exports.Void:
		return js.Undefined()
	case entities.ClientResponse:
		return responseObject(x)
	case *exports.Subscription:
		// The function stays valid for the page lifetime; calling it again
		// is a no-op.
		var once sync.Once
		return js.FuncOf(func(js.Value, []js.Value) any {
			once.Do(x.Cancel)
			return nil
		}).Value
	default:
		return jsbridge.ToJS(v)
	}
}

func (e *Exporter) rejectionValue(op string, r Rejection) js.Value {
	switch {
	case r.Response != nil:
		return responseObject(*r.Response)
	case r.Reason != nil:
		return jsbridge.ToJS(r.Reason)
	}

	e.report(op, r)
	errVal := jsbridge.NewError(r.Message)
	if r.Detail != nil {
		// ErrorDetail is itself an error; keep its fields.
		errVal.Set("detail", jsbridge.JSON(r.Detail))
	}
	return errVal
}

func (e *Exporter) report(op string, r Rejection) {
	if !r.Report {
		return
	}
	js.Global().Get("console").Call("error", r.Message)
	e.logger.Debug("pwa: failure reported to console", "operation", op, "type", r.Detail.Type)
}

func (e *Exporter) describe(js.Value, []js.Value) any {
	return jsbridge.JSON(e.def.Manifest())
}

// responseObject builds the frozen JavaScript form of a ClientResponse.
// getStatus and getMessage keep the names page scripts already read;
// status and message mirror the JSON shape.
func responseObject(resp entities.ClientResponse) js.Value {
	obj := js.Global().Get("Object").New()
	obj.Set("status", resp.Status())
	obj.Set("message", resp.Message())
	obj.Set("getStatus", resp.Status())
	obj.Set("getMessage", resp.Message())
	return js.Global().Get("Object").Call("freeze", obj)
}

// newClientResponse backs `new ClientResponse(status, message)`.
func newClientResponse(_ js.Value, args []js.Value) any {
	var status, message string
	if len(args) > 0 && args[0].Type() == js.TypeString {
		status = args[0].String()
	}
	if len(args) > 1 && args[1].Type() == js.TypeString {
		message = args[1].String()
	}
	return responseObject(entities.NewClientResponse(status, message))
}

var panicHookOnce sync.Once

// initConsolePanic makes Go stack traces include every goroutine, so panic
// reports in the console carry the full picture.
func initConsolePanic(js.Value, []js.Value) any {
	panicHookOnce.Do(func() {
		debug.SetTraceback("all")
	})
	return nil
}

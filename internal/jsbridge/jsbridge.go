//go:build js && wasm

// Package jsbridge moves values across the JavaScript boundary and turns
// Promises into blocking calls for code running on a goroutine.
package jsbridge

import (
	"context"
	"encoding/json"
	"fmt"
	"syscall/js"

	"github.com/remix-pwa/pwa-client/domain/entities"
	"github.com/remix-pwa/pwa-client/domain/ports"
)

// Valuer is implemented by host handles that wrap a JavaScript object.
// ToJS hands the object back unchanged.
type Valuer interface {
	JSValue() js.Value
}

// Defined reports whether v is neither undefined nor null.
func Defined(v js.Value) bool {
	return !v.IsUndefined() && !v.IsNull()
}

// Try runs fn and converts a JavaScript exception thrown during it into a
// *ports.HostError wrapping ports.ErrNotInvoked. Other panics propagate.
func Try(fn func()) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if jsErr, ok := r.(js.Error); ok {
			err = &ports.HostError{Value: jsErr.Value, Message: ErrorMessage(jsErr.Value), Err: ports.ErrNotInvoked}
			return
		}
		panic(r)
	}()
	fn()
	return nil
}

// Await blocks until promise settles. A rejection is returned as a
// *ports.HostError carrying the rejection reason. Await must not be called
// from inside a js.Func callback.
func Await(ctx context.Context, promise js.Value) (js.Value, error) {
	if promise.Type() != js.TypeObject || promise.Get("then").Type() != js.TypeFunction {
		return promise, nil
	}

	type settled struct {
		value js.Value
		err   error
	}
	ch := make(chan settled, 1)

	onResolve := js.FuncOf(func(_ js.Value, args []js.Value) any {
		ch <- settled{value: arg(args, 0)}
		return nil
	})
	onReject := js.FuncOf(func(_ js.Value, args []js.Value) any {
		reason := arg(args, 0)
		ch <- settled{err: &ports.HostError{Value: reason, Message: ErrorMessage(reason)}}
		return nil
	})
	release := func() {
		onResolve.Release()
		onReject.Release()
	}

	promise.Call("then", onResolve, onReject)

	select {
	case s := <-ch:
		release()
		return s.value, s.err
	case <-ctx.Done():
		// The promise can still settle; keep the callbacks alive until it does.
		go func() {
			<-ch
			release()
		}()
		return js.Undefined(), ctx.Err()
	}
}

// NewPromise returns a Promise whose executor runs on its own goroutine.
// Values passed to resolve and reject go through ToJS.
func NewPromise(executor func(resolve, reject func(any))) js.Value {
	handler := js.FuncOf(func(_ js.Value, args []js.Value) any {
		resolveFn, rejectFn := args[0], args[1]
		go executor(
			func(v any) { resolveFn.Invoke(ToJS(v)) },
			func(v any) { rejectFn.Invoke(ToJS(v)) },
		)
		return nil
	})
	defer handler.Release()
	return js.Global().Get("Promise").New(handler)
}

// NewError constructs a JavaScript Error with msg.
func NewError(msg string) js.Value {
	return js.Global().Get("Error").New(msg)
}

// ErrorMessage extracts a readable message from a thrown or rejected value.
func ErrorMessage(v js.Value) string {
	if v.Type() == js.TypeObject {
		if msg := v.Get("message"); msg.Type() == js.TypeString {
			return msg.String()
		}
	}
	return js.Global().Get("String").Invoke(v).String()
}

// ToJS converts a Go value for a JavaScript caller. Host handles and
// results carrying their original JavaScript object convert back to that
// object; other values are rebuilt from their JSON encoding.
func ToJS(v any) js.Value {
	switch x := v.(type) {
	case nil:
		return js.Undefined()
	case js.Value:
		return x
	case js.Func:
		return x.Value
	case Valuer:
		return x.JSValue()
	case entities.Position:
		if raw, ok := x.Raw.(js.Value); ok {
			return raw
		}
	case *entities.PositionError:
		if x == nil {
			return js.Null()
		}
		if raw, ok := x.Raw.(js.Value); ok {
			return raw
		}
	case string, bool, float64, float32, int, int32, int64, uint, uint32, uint64:
		return js.ValueOf(x)
	case error:
		return NewError(x.Error())
	}
	return JSON(v)
}

// JSON rebuilds v in JavaScript from its JSON encoding, bypassing the
// special cases of ToJS. Values without a JSON form become an Error.
func JSON(v any) js.Value {
	b, err := json.Marshal(v)
	if err != nil {
		return NewError(fmt.Sprintf("value not representable in JavaScript: %v", err))
	}
	return js.Global().Get("JSON").Call("parse", string(b))
}

// FromJS converts a JavaScript argument into a Go value. Functions become
// func(...any) that call back into JavaScript; objects are decoded through
// JSON. Objects JSON cannot represent are returned as js.Value.
func FromJS(v js.Value) any {
	switch v.Type() {
	case js.TypeUndefined, js.TypeNull:
		return nil
	case js.TypeBoolean:
		return v.Bool()
	case js.TypeNumber:
		return v.Float()
	case js.TypeString:
		return v.String()
	case js.TypeFunction:
		return func(args ...any) {
			jsArgs := make([]any, len(args))
			for i, a := range args {
				jsArgs[i] = ToJS(a)
			}
			v.Invoke(jsArgs...)
		}
	}

	raw, err := Stringify(v)
	if err != nil {
		return v
	}
	var out any
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return v
	}
	return out
}

// Stringify runs JSON.stringify on v.
func Stringify(v js.Value) (string, error) {
	var s js.Value
	if err := Try(func() { s = js.Global().Get("JSON").Call("stringify", v) }); err != nil {
		return "", err
	}
	if s.Type() != js.TypeString {
		return "", fmt.Errorf("value of type %s has no JSON form", v.Type())
	}
	return s.String(), nil
}

// Strings reads a JavaScript array of strings.
func Strings(v js.Value) []string {
	if !Defined(v) {
		return nil
	}
	n := v.Length()
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		if item := v.Index(i); item.Type() == js.TypeString {
			out = append(out, item.String())
		}
	}
	return out
}

// Float reads a numeric property, returning nil when it is absent.
func Float(v js.Value, key string) *float64 {
	p := v.Get(key)
	if p.Type() != js.TypeNumber {
		return nil
	}
	f := p.Float()
	return &f
}

func arg(args []js.Value, i int) js.Value {
	if i < len(args) {
		return args[i]
	}
	return js.Undefined()
}

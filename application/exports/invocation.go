package exports

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	pwa "github.com/remix-pwa/pwa-client"
	"github.com/remix-pwa/pwa-client/application/client"
	"github.com/remix-pwa/pwa-client/domain/entities"
	"github.com/remix-pwa/pwa-client/domain/ports"
)

// Invocation is a single call of an entry point.
type Invocation struct {
	Client *client.Client

	// Args are positional arguments. Values are JSON-compatible (string,
	// float64, bool, nil, []any, map[string]any) or Callback.
	Args []any

	// Raw holds named arguments as a JSON object. When set it takes
	// precedence over Args, and callbacks come from Callbacks.
	Raw       json.RawMessage
	Callbacks map[string]Callback
}

// HandlerFunc is the type-erased form of an operation handler. A non-nil
// value may accompany a non-nil error (for example an error response).
type HandlerFunc func(ctx context.Context, inv *Invocation) (any, error)

// decodeInput builds the typed input from an invocation: plain arguments
// are validated against the input schema and decoded through JSON, callback
// arguments are assigned directly.
func decodeInput[I any](d *Definition, op string, params []param, inv *Invocation) (I, error) {
	var in I
	rv := reflect.ValueOf(&in).Elem()

	values := make(map[string]any)
	if len(inv.Raw) > 0 {
		if err := json.Unmarshal(inv.Raw, &values); err != nil {
			return in, &pwa.ValidationError{Operation: op, Err: fmt.Errorf("arguments must be a JSON object: %w", err)}
		}
	}

	for pos, p := range params {
		var arg any
		if len(inv.Raw) > 0 {
			if p.callback {
				if cb, ok := inv.Callbacks[p.name]; ok {
					arg = cb
				}
			}
		} else if pos < len(inv.Args) {
			arg = inv.Args[pos]
		}

		if p.callback {
			if arg == nil && p.optional {
				continue
			}
			cb, err := asCallback(arg)
			if err != nil {
				return in, &pwa.ValidationError{Operation: op, Field: p.name, Err: fmt.Errorf("argument %d: %w", pos, err)}
			}
			rv.Field(p.field).Set(reflect.ValueOf(cb))
			continue
		}

		if len(inv.Raw) == 0 && arg != nil {
			values[p.name] = arg
		}
	}

	if err := d.validator.Validate(op, values); err != nil {
		return in, err
	}

	b, err := json.Marshal(values)
	if err != nil {
		return in, &pwa.ValidationError{Operation: op, Err: err}
	}
	if err := json.Unmarshal(b, &in); err != nil {
		return in, &pwa.ValidationError{Operation: op, Err: err}
	}
	return in, nil
}

func asCallback(arg any) (Callback, error) {
	switch fn := arg.(type) {
	case Callback:
		if fn == nil {
			return nil, errors.New("callback is required")
		}
		return fn, nil
	case func(args ...any):
		if fn == nil {
			return nil, errors.New("callback is required")
		}
		return Callback(fn), nil
	case nil:
		return nil, errors.New("callback is required")
	default:
		return nil, fmt.Errorf("expected a function, got %T", arg)
	}
}

// Snapshot converts host handles into plain values that can be serialised
// for callers without access to the host objects.
func Snapshot(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case Void:
		return nil
	case *Subscription:
		return map[string]bool{"subscribed": x != nil}
	case ports.Connection:
		return x.Info()
	case ports.PermissionStatus:
		return entities.PermissionStatusInfo{Name: x.Name(), State: x.State()}
	case ports.Geolocation:
		return map[string]bool{"available": true}
	default:
		return v
	}
}

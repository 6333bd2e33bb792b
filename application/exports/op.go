package exports

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/remix-pwa/pwa-client/application/client"
	"github.com/remix-pwa/pwa-client/application/schema"
	"github.com/remix-pwa/pwa-client/domain/entities"
)

// Callback is a caller-supplied function, typically a JavaScript function
// passed as an argument.
type Callback func(args ...any)

// Void is the output of entry points that return nothing.
type Void struct{}

// NoInput is the input of entry points that take no arguments.
type NoInput struct{}

// Subscription is returned by entry points that install a long-lived host
// listener. Cancel removes the listener.
type Subscription struct {
	cancel func()
}

// NewSubscription wraps a cancel function.
func NewSubscription(cancel func()) *Subscription {
	return &Subscription{cancel: cancel}
}

// Cancel removes the listener. It is safe to call more than once.
func (s *Subscription) Cancel() {
	if s != nil && s.cancel != nil {
		s.cancel()
	}
}

// Op defines a typed entry point.
// I is the input struct; its fields are the positional arguments in
// declaration order. Callback fields take their name from the `arg` tag
// (`arg:"name,optional"` allows omitting them), other fields from the
// `json` tag.
// O is the value resolved to the caller.
type Op[I, O any] struct {
	// Name is the entry point name seen by page scripts.
	Name        string
	Description string
	// Sync entry points return their value directly instead of a Promise.
	Sync     bool
	Handler  func(ctx context.Context, c *client.Client, in I) (O, error)
	Examples []Example[I, O]
}

// Example defines a sample input/output pair for documentation and testing.
type Example[I, O any] struct {
	// Name is a short identifier (e.g., "basic", "error_case")
	Name string

	// Description explains what this example demonstrates
	Description string

	// Input is the example input data
	Input I

	// ExpectedOutput is the expected output (nil if not verifying output)
	ExpectedOutput *O

	// ExpectedError is set if this example should produce an error
	ExpectedError string
}

// param is one positional argument.
type param struct {
	field    int
	name     string
	callback bool
	optional bool
}

var callbackType = reflect.TypeOf(Callback(nil))

// RegisterOp captures the operation's types, generates its schemas and adds
// it to the definition under svc.
func RegisterOp[I, O any](d *Definition, svc ServiceDef, op Op[I, O]) error {
	if op.Name == "" || op.Handler == nil {
		return fmt.Errorf("service %s: operation needs a name and a handler", svc.Name)
	}

	inputType := reflect.TypeOf((*I)(nil)).Elem()
	outputType := reflect.TypeOf((*O)(nil)).Elem()

	params, err := extractParams(inputType)
	if err != nil {
		return fmt.Errorf("service %s, operation %s: %w", svc.Name, op.Name, err)
	}

	inputSchema, err := schema.GenerateSchemaFromType(inputType)
	if err != nil {
		return fmt.Errorf("service %s, operation %s: %w", svc.Name, op.Name, err)
	}
	outputSchema, err := schema.GenerateSchemaFromType(outputType)
	if err != nil {
		return fmt.Errorf("service %s, operation %s: %w", svc.Name, op.Name, err)
	}
	if err := d.validator.Register(op.Name, inputSchema); err != nil {
		return fmt.Errorf("service %s, operation %s: %w", svc.Name, op.Name, err)
	}

	handler := func(ctx context.Context, inv *Invocation) (any, error) {
		in, err := decodeInput[I](d, op.Name, params, inv)
		if err != nil {
			return nil, err
		}
		return op.Handler(ctx, inv.Client, in)
	}

	return d.register(svc, &operationEntry{
		handler:      handler,
		name:         op.Name,
		description:  op.Description,
		sync:         op.Sync,
		params:       params,
		inputSchema:  inputSchema,
		outputSchema: outputSchema,
		examples:     convertExamples(op.Examples),
	})
}

// MustRegisterOp is RegisterOp that panics on error.
func MustRegisterOp[I, O any](d *Definition, svc ServiceDef, op Op[I, O]) {
	if err := RegisterOp(d, svc, op); err != nil {
		panic(fmt.Sprintf("failed to register operation: %v", err))
	}
}

// extractParams lists the positional arguments of an input struct.
func extractParams(t reflect.Type) ([]param, error) {
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("input must be a struct, got %s", t)
	}

	var params []param
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		if field.Type == callbackType {
			name, opt, _ := strings.Cut(field.Tag.Get("arg"), ",")
			if name == "" {
				return nil, fmt.Errorf("callback field %s needs an `arg` tag", field.Name)
			}
			params = append(params, param{field: i, name: name, callback: true, optional: opt == "optional"})
			continue
		}

		jsonTag := field.Tag.Get("json")
		if jsonTag == "-" {
			continue
		}
		name := strings.Split(jsonTag, ",")[0]
		if name == "" {
			name = field.Name
		}
		params = append(params, param{field: i, name: name})
	}
	return params, nil
}

func paramNames(params []param) []string {
	if len(params) == 0 {
		return nil
	}
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.name
	}
	return names
}

// convertExamples converts typed examples to manifest format.
func convertExamples[I, O any](examples []Example[I, O]) []entities.OperationExample {
	if len(examples) == 0 {
		return nil
	}

	result := make([]entities.OperationExample, 0, len(examples))
	for _, ex := range examples {
		inputJSON, _ := json.Marshal(ex.Input)

		var outputJSON json.RawMessage
		if ex.ExpectedOutput != nil {
			outputJSON, _ = json.Marshal(Snapshot(*ex.ExpectedOutput))
		}

		result = append(result, entities.OperationExample{
			Name:           ex.Name,
			Description:    ex.Description,
			Input:          inputJSON,
			ExpectedOutput: outputJSON,
			ExpectedError:  ex.ExpectedError,
		})
	}
	return result
}

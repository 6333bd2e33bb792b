package exports

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"strings"
	"testing"

	"github.com/remix-pwa/pwa-client/application/client"
	"github.com/remix-pwa/pwa-client/domain/entities"
	"github.com/remix-pwa/pwa-client/domain/ports"
)

// GenerateExampleTests runs every registered example against a host.
// Call it from a test file to keep the examples in the manifest honest.
//
// Example usage:
//
//	func TestExamples(t *testing.T) {
//	    exports.GenerateExampleTests(t, exports.Catalog(), func() ports.Host {
//	        return memory.NewDefaultHost()
//	    })
//	}
func GenerateExampleTests(t *testing.T, def *Definition, newHost func() ports.Host) {
	t.Helper()

	manifest := def.Manifest()
	for svcName, svc := range manifest.Services {
		for _, op := range svc.Operations {
			for _, ex := range op.Examples {
				testName := fmt.Sprintf("%s/%s/%s", svcName, op.Name, ex.Name)
				t.Run(testName, func(t *testing.T) {
					runExampleTest(t, def, svcName, op.Name, ex, newHost())
				})
			}
		}
	}
}

// runExampleTest executes a single example.
func runExampleTest(t *testing.T, def *Definition, svcName, opName string, ex entities.OperationExample, host ports.Host) {
	t.Helper()

	handler, ok := def.GetHandler(svcName, opName)
	if !ok {
		t.Fatalf("handler not found: %s/%s", svcName, opName)
	}

	inv := &Invocation{
		Client: client.New(host, client.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))),
		Raw:    ex.Input,
	}
	result, err := handler(context.Background(), inv)

	if ex.ExpectedError != "" {
		if err == nil {
			t.Errorf("expected error containing %q, got success", ex.ExpectedError)
			return
		}
		if !strings.Contains(err.Error(), ex.ExpectedError) {
			t.Errorf("expected error containing %q, got %q", ex.ExpectedError, err.Error())
		}
		return
	}

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(ex.ExpectedOutput) > 0 {
		var expected any
		if err := json.Unmarshal(ex.ExpectedOutput, &expected); err != nil {
			t.Fatalf("failed to parse expected output: %v", err)
		}

		data, err := json.Marshal(Snapshot(result))
		if err != nil {
			t.Fatalf("failed to serialise output: %v", err)
		}
		var actual any
		if err := json.Unmarshal(data, &actual); err != nil {
			t.Fatalf("failed to parse output: %v", err)
		}

		if !reflect.DeepEqual(expected, actual) {
			t.Errorf("expected output %s, got %s", ex.ExpectedOutput, data)
		}
	}
}

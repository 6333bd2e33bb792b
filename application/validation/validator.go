// Package validation checks entry point arguments against their JSON
// schemas before they are decoded.
package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	pwa "github.com/remix-pwa/pwa-client"
)

// ArgumentValidator holds compiled input schemas keyed by entry point name.
type ArgumentValidator struct {
	mu       sync.RWMutex
	compiler *jsonschema.Compiler
	schemas  map[string]*jsonschema.Schema
}

// NewArgumentValidator creates an empty validator.
func NewArgumentValidator() *ArgumentValidator {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	return &ArgumentValidator{
		compiler: c,
		schemas:  make(map[string]*jsonschema.Schema),
	}
}

// Register compiles schema under name. Registering a name twice replaces
// nothing and returns an error.
func (v *ArgumentValidator) Register(name string, schema []byte) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if _, ok := v.schemas[name]; ok {
		return &pwa.SchemaError{Type: name, Err: errors.New("already registered")}
	}

	// 1. Add resource under a private URL
	url := "mem://pwa-client/" + name + ".json"
	if err := v.compiler.AddResource(url, bytes.NewReader(schema)); err != nil {
		return &pwa.SchemaError{Type: name, Err: err}
	}

	// 2. Compile
	sch, err := v.compiler.Compile(url)
	if err != nil {
		return &pwa.SchemaError{Type: name, Err: err}
	}
	v.schemas[name] = sch
	return nil
}

// Validate checks args against the schema registered for name. Names with
// no schema accept anything.
func (v *ArgumentValidator) Validate(name string, args map[string]any) error {
	v.mu.RLock()
	sch, ok := v.schemas[name]
	v.mu.RUnlock()
	if !ok {
		return nil
	}

	// Normalize through JSON so that numbers and nested values have the
	// shapes the validator expects.
	b, err := json.Marshal(args)
	if err != nil {
		return &pwa.ValidationError{Operation: name, Err: fmt.Errorf("arguments are not serialisable: %w", err)}
	}
	var obj any
	if err := json.Unmarshal(b, &obj); err != nil {
		return &pwa.ValidationError{Operation: name, Err: err}
	}

	if err := sch.Validate(obj); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			leaf := deepestCause(ve)
			return &pwa.ValidationError{
				Operation: name,
				Field:     strings.TrimPrefix(leaf.InstanceLocation, "/"),
				Err:       errors.New(leaf.Message),
			}
		}
		return &pwa.ValidationError{Operation: name, Err: err}
	}
	return nil
}

func deepestCause(ve *jsonschema.ValidationError) *jsonschema.ValidationError {
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return ve
}

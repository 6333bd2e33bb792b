// Package schema generates JSON schemas for entry point inputs and outputs.
package schema

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/invopop/jsonschema"

	pwa "github.com/remix-pwa/pwa-client"
)

// GenerateSchema returns the JSON schema of v's type.
func GenerateSchema(v any) ([]byte, error) {
	if v == nil {
		return nil, &pwa.SchemaError{Err: fmt.Errorf("cannot generate schema for nil")}
	}
	return GenerateSchemaFromType(reflect.TypeOf(v))
}

// GenerateSchemaFromType returns the JSON schema of t. Interface types
// produce the permissive empty schema.
func GenerateSchemaFromType(t reflect.Type) ([]byte, error) {
	r := &jsonschema.Reflector{DoNotReference: true}

	s := r.ReflectFromType(t)
	data, err := json.Marshal(s)
	if err != nil {
		return nil, &pwa.SchemaError{Type: t.String(), Err: err}
	}
	return data, nil
}

package entities

import "encoding/json"

// Manifest describes every entry point the module can expose to the host.
type Manifest struct {
	Name        string                     `json:"name" yaml:"name"`
	Version     string                     `json:"version" yaml:"version"`
	Description string                     `json:"description,omitempty" yaml:"description,omitempty"`
	SDKVersion  string                     `json:"sdk_version" yaml:"sdk_version"`
	Services    map[string]ServiceManifest `json:"services" yaml:"services"`
}

// ServiceManifest describes a service and its operations.
type ServiceManifest struct {
	Name        string              `json:"name" yaml:"name"`
	Description string              `json:"description,omitempty" yaml:"description,omitempty"`
	Operations  []OperationManifest `json:"operations" yaml:"operations"`
}

// OperationManifest describes a single entry point.
type OperationManifest struct {
	Name         string             `json:"name" yaml:"name"`
	Description  string             `json:"description,omitempty" yaml:"description,omitempty"`
	Params       []string           `json:"params,omitempty" yaml:"params,omitempty"`
	Sync         bool               `json:"sync,omitempty" yaml:"sync,omitempty"`
	InputSchema  json.RawMessage    `json:"input_schema,omitempty" yaml:"-"`
	OutputSchema json.RawMessage    `json:"output_schema,omitempty" yaml:"-"`
	Examples     []OperationExample `json:"examples,omitempty" yaml:"examples,omitempty"`
}

// OperationExample provides a sample input/output pair.
type OperationExample struct {
	Name           string          `json:"name" yaml:"name"`
	Description    string          `json:"description,omitempty" yaml:"description,omitempty"`
	Input          json.RawMessage `json:"input,omitempty" yaml:"-"`
	ExpectedOutput json.RawMessage `json:"expected_output,omitempty" yaml:"-"`
	ExpectedError  string          `json:"expected_error,omitempty" yaml:"expected_error,omitempty"`
}

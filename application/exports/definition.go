// Package exports holds the registry of entry points the module publishes to
// page scripts. Each entry point is a typed operation whose input is decoded
// from positional JavaScript arguments (or named JSON) and whose output is
// handed back to the caller.
package exports

import (
	"cmp"
	"encoding/json"
	"fmt"
	"slices"
	"sync"

	pwa "github.com/remix-pwa/pwa-client"
	"github.com/remix-pwa/pwa-client/application/validation"
	"github.com/remix-pwa/pwa-client/domain/entities"
)

// Def defines module identity.
type Def struct {
	Name        string
	Version     string
	Description string
}

// ServiceDef groups related entry points.
type ServiceDef struct {
	Name        string
	Description string
}

// Definition holds the registered services and their operations.
type Definition struct {
	def       Def
	services  map[string]*serviceEntry
	byName    map[string]*operationEntry
	validator *validation.ArgumentValidator
	mu        sync.RWMutex
}

// serviceEntry holds a registered service.
type serviceEntry struct {
	operations  map[string]*operationEntry
	name        string
	description string
}

// operationEntry holds a registered operation.
type operationEntry struct {
	handler      HandlerFunc
	service      string
	name         string
	description  string
	sync         bool
	params       []param
	inputSchema  json.RawMessage
	outputSchema json.RawMessage
	examples     []entities.OperationExample
}

// OperationInfo describes a registered operation for the export layers.
type OperationInfo struct {
	Service     string
	Name        string
	Description string
	Sync        bool
	Params      []string
	Handler     HandlerFunc
}

// Define creates an empty definition.
func Define(def Def) *Definition {
	return &Definition{
		def:       def,
		services:  make(map[string]*serviceEntry),
		byName:    make(map[string]*operationEntry),
		validator: validation.NewArgumentValidator(),
	}
}

// register stores an operation. Entry point names must be unique across
// services because page scripts see them in a single namespace.
func (d *Definition) register(svc ServiceDef, op *operationEntry) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.byName[op.name]; exists {
		return fmt.Errorf("entry point %q already registered", op.name)
	}

	entry, ok := d.services[svc.Name]
	if !ok {
		entry = &serviceEntry{
			name:        svc.Name,
			description: svc.Description,
			operations:  make(map[string]*operationEntry),
		}
		d.services[svc.Name] = entry
	}

	op.service = svc.Name
	entry.operations[op.name] = op
	d.byName[op.name] = op
	return nil
}

// GetHandler returns the handler for the given service/operation.
func (d *Definition) GetHandler(serviceName, opName string) (HandlerFunc, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	svc, ok := d.services[serviceName]
	if !ok {
		return nil, false
	}
	op, ok := svc.operations[opName]
	if !ok {
		return nil, false
	}
	return op.handler, true
}

// Lookup finds an operation by entry point name.
func (d *Definition) Lookup(name string) (OperationInfo, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	op, ok := d.byName[name]
	if !ok {
		return OperationInfo{}, false
	}
	return op.info(), true
}

// Operations lists every operation ordered by service, then name.
func (d *Definition) Operations() []OperationInfo {
	d.mu.RLock()
	defer d.mu.RUnlock()

	ops := make([]OperationInfo, 0, len(d.byName))
	for _, op := range d.byName {
		ops = append(ops, op.info())
	}
	slices.SortFunc(ops, func(a, b OperationInfo) int {
		return cmp.Or(cmp.Compare(a.Service, b.Service), cmp.Compare(a.Name, b.Name))
	})
	return ops
}

// Manifest returns the complete manifest.
func (d *Definition) Manifest() *entities.Manifest {
	d.mu.RLock()
	defer d.mu.RUnlock()

	services := make(map[string]entities.ServiceManifest, len(d.services))
	for name, svc := range d.services {
		ops := make([]entities.OperationManifest, 0, len(svc.operations))
		for _, op := range svc.operations {
			ops = append(ops, entities.OperationManifest{
				Name:         op.name,
				Description:  op.description,
				Params:       paramNames(op.params),
				Sync:         op.sync,
				InputSchema:  op.inputSchema,
				OutputSchema: op.outputSchema,
				Examples:     op.examples,
			})
		}
		slices.SortFunc(ops, func(a, b entities.OperationManifest) int { return cmp.Compare(a.Name, b.Name) })

		services[name] = entities.ServiceManifest{
			Name:        svc.name,
			Description: svc.description,
			Operations:  ops,
		}
	}

	return &entities.Manifest{
		Name:        d.def.Name,
		Version:     d.def.Version,
		Description: d.def.Description,
		SDKVersion:  pwa.Version,
		Services:    services,
	}
}

func (op *operationEntry) info() OperationInfo {
	return OperationInfo{
		Service:     op.service,
		Name:        op.name,
		Description: op.description,
		Sync:        op.sync,
		Params:      paramNames(op.params),
		Handler:     op.handler,
	}
}

package endpoint

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
)

type (
	// Operation handles one remote method with positional JSON args
	Operation func(ctx context.Context, args []json.RawMessage) (interface{}, error)

	// Resource resolves a static resource value
	Resource func(ctx context.Context) (string, error)

	// Raw represents a result written verbatim
	Raw struct {
		Status      int
		ContentType string
		Body        []byte
	}

	// Registry represents operations and resources exposed by the endpoint
	Registry struct {
		operations map[string]Operation
		resources  map[string]Resource
	}
)

// Register adds an operation, rejecting empty or duplicate names
func (r *Registry) Register(name string, operation Operation) error {
	if name == "" {
		return fmt.Errorf("operation name was empty")
	}
	if operation == nil {
		return fmt.Errorf("operation %v was nil", name)
	}
	if _, ok := r.operations[name]; ok {
		return fmt.Errorf("duplicate operation: %v", name)
	}
	r.operations[name] = operation
	return nil
}

// RegisterResource adds a named resource
func (r *Registry) RegisterResource(name string, resource Resource) error {
	if name == "" {
		return fmt.Errorf("resource name was empty")
	}
	if resource == nil {
		return fmt.Errorf("resource %v was nil", name)
	}
	if _, ok := r.resources[name]; ok {
		return fmt.Errorf("duplicate resource: %v", name)
	}
	r.resources[name] = resource
	return nil
}

// Operation returns a registered operation
func (r *Registry) Operation(name string) (Operation, bool) {
	ret, ok := r.operations[name]
	return ret, ok
}

// Resource returns a registered resource
func (r *Registry) Resource(name string) (Resource, bool) {
	ret, ok := r.resources[name]
	return ret, ok
}

// ResourceNames returns sorted resource names
func (r *Registry) ResourceNames() []string {
	var ret = make([]string, 0, len(r.resources))
	for name := range r.resources {
		ret = append(ret, name)
	}
	sort.Strings(ret)
	return ret
}

// Static creates a resource with a fixed value
func Static(value string) Resource {
	return func(ctx context.Context) (string, error) {
		return value, nil
	}
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{operations: map[string]Operation{}, resources: map[string]Resource{}}
}

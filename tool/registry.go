package tool

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/viant/mcp-protocol/schema"
	"github.com/viant/mcprpc/contract"
)

// Registry represents the table of invocable operations
type Registry struct {
	methods []*contract.Method
	index   map[string]*contract.Method
}

// Register adds a method, rejecting invalid or duplicate names
func (r *Registry) Register(method *contract.Method) error {
	if method == nil {
		return fmt.Errorf("method was nil")
	}
	if err := validateName(method.Name); err != nil {
		return err
	}
	if _, ok := r.index[method.Name]; ok {
		return fmt.Errorf("duplicate tool: %v", method.Name)
	}
	for _, param := range method.Params {
		if param == nil || param.Name == "" {
			return fmt.Errorf("tool %v: unnamed parameter", method.Name)
		}
	}
	r.methods = append(r.methods, method)
	r.index[method.Name] = method
	return nil
}

func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("tool name was empty")
	}
	if strings.IndexFunc(name, func(r rune) bool { return unicode.IsSpace(r) || unicode.IsControl(r) }) != -1 {
		return fmt.Errorf("invalid tool name: %q", name)
	}
	return nil
}

// Lookup returns a registered method
func (r *Registry) Lookup(name string) (*contract.Method, bool) {
	method, ok := r.index[name]
	return method, ok
}

// Methods returns registered methods in registration order
func (r *Registry) Methods() []*contract.Method {
	return r.methods
}

// Tools returns tool descriptors in registration order
func (r *Registry) Tools() []schema.Tool {
	var ret = make([]schema.Tool, 0, len(r.methods))
	for _, method := range r.methods {
		ret = append(ret, Descriptor(method))
	}
	return ret
}

// Descriptor builds a tool descriptor with one property per parameter
func Descriptor(method *contract.Method) schema.Tool {
	properties := make(schema.ToolInputSchemaProperties)
	for _, param := range method.Params {
		properties[param.Name] = map[string]interface{}{
			"description": param.Description,
			"type":        param.Type,
		}
	}
	description := method.Description
	return schema.Tool{
		Name:        method.Name,
		Description: &description,
		InputSchema: schema.ToolInputSchema{
			Type:       "object",
			Properties: properties,
			Required:   method.Required(),
		},
	}
}

// Args orders keyed arguments by declared parameters, missing ones are nil
func Args(method *contract.Method, arguments map[string]interface{}) []interface{} {
	var ret = make([]interface{}, len(method.Params))
	for i, param := range method.Params {
		ret[i] = arguments[param.Name]
	}
	return ret
}

// NewRegistry creates a registry for supplied methods
func NewRegistry(methods ...*contract.Method) (*Registry, error) {
	ret := &Registry{index: map[string]*contract.Method{}}
	for _, method := range methods {
		if err := ret.Register(method); err != nil {
			return nil, err
		}
	}
	return ret, nil
}

// FromContract creates a registry for all contract methods
func FromContract(entry *contract.Contract) (*Registry, error) {
	if entry == nil {
		return nil, fmt.Errorf("contract was nil")
	}
	return NewRegistry(entry.Methods...)
}

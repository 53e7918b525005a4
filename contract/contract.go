package contract

import "sort"

// DefaultExport is the exported name of a module's default export.
const DefaultExport = "default"

// UnknownType is the type tag used when an annotation does not name exactly one type.
const UnknownType = "unknown"

type (
	// Contract represents the callable surface of one exported class.
	Contract struct {
		ExportedAs  *string                    `json:"exported_as"`
		Description *string                    `json:"description"`
		Methods     []*Method                  `json:"methods"`
		Statics     map[string][]*StaticMember `json:"statics"`
	}

	// Method represents one documented, invocable method.
	Method struct {
		Name        string   `json:"name"`
		Description string   `json:"description"`
		Params      []*Param `json:"params"`
		Returns     *Return  `json:"returns"`
		Examples    []string `json:"examples,omitempty"`
	}

	// Param represents a method parameter; declaration order is significant.
	Param struct {
		Name        string `json:"name"`
		Type        string `json:"type"`
		Description string `json:"description"`
		Optional    bool   `json:"optional"`
	}

	// Return represents a method return value.
	Return struct {
		Type        string `json:"type"`
		Description string `json:"description"`
	}

	// StaticMember represents non-invocable metadata nested under a static property.
	StaticMember struct {
		Name        string `json:"name"`
		Type        string `json:"type"`
		Description string `json:"description"`
	}

	// Contracts maps class name to its contract.
	Contracts map[string]*Contract
)

// New creates an empty contract
func New(exportedAs string, description string) *Contract {
	ret := &Contract{Methods: []*Method{}, Statics: map[string][]*StaticMember{}}
	ret.SetExportedAs(exportedAs)
	if description != "" {
		ret.Description = &description
	}
	return ret
}

// SetExportedAs sets the exported alias, empty value clears it
func (c *Contract) SetExportedAs(name string) {
	if name == "" {
		c.ExportedAs = nil
		return
	}
	c.ExportedAs = &name
}

// IsDefault returns true if contract is the module default export
func (c *Contract) IsDefault() bool {
	return c.ExportedAs != nil && *c.ExportedAs == DefaultExport
}

// Method returns a method by name
func (c *Contract) Method(name string) *Method {
	for _, method := range c.Methods {
		if method.Name == name {
			return method
		}
	}
	return nil
}

// Required returns non-optional parameter names in declaration order
func (m *Method) Required() []string {
	var ret = make([]string, 0, len(m.Params))
	for _, param := range m.Params {
		if !param.Optional {
			ret = append(ret, param.Name)
		}
	}
	return ret
}

// Default returns the default exported contract or nil
func (c Contracts) Default() *Contract {
	for _, name := range c.Names() {
		if c[name].IsDefault() {
			return c[name]
		}
	}
	return nil
}

// Names returns sorted class names
func (c Contracts) Names() []string {
	var ret = make([]string, 0, len(c))
	for name := range c {
		ret = append(ret, name)
	}
	sort.Strings(ret)
	return ret
}

package extractor

import (
	"fmt"
	"strings"
)

// CompilationError reports a documented declaration that cannot be compiled into a contract
type CompilationError struct {
	Kind     string
	Name     string
	Owner    string
	Line     int
	Doc      string
	Exported []string
	Reason   string
}

func (e *CompilationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%v %v (line %v): %v", e.Kind, e.Name, e.Line, e.Reason)
	}
	owner := e.Owner
	if owner == "" {
		owner = "<unresolved>"
	}
	return fmt.Sprintf("missing owner %v for %v %v (line %v), exported classes: [%v], doc: %v",
		owner, e.Kind, e.Name, e.Line, strings.Join(e.Exported, ", "), e.Doc)
}

// Warning reports non fatal data quality issue
type Warning struct {
	Name    string
	Line    int
	Message string
}

func (w *Warning) String() string {
	return fmt.Sprintf("%v (line %v): %v", w.Name, w.Line, w.Message)
}

package extractor

import (
	"fmt"
	"sort"
	"strings"

	"github.com/viant/mcprpc/contract"
)

// DefaultExportName is the key and exported name of an anonymous default export
const DefaultExportName = contract.DefaultExport

// Result represents compiled contracts with collected warnings
type Result struct {
	Contracts contract.Contracts
	Warnings  []*Warning
}

type compiler struct {
	*module
	result   *Result
	exported map[string]string
	classes  map[string]*classDecl
	defaults *classDecl
	points   []*docPoint
}

// Extract compiles annotated source into contracts keyed by exported class name
func Extract(source []byte) (*Result, error) {
	c := &compiler{
		module:   parseModule(string(source)),
		result:   &Result{Contracts: contract.Contracts{}},
		exported: map[string]string{},
		classes:  map[string]*classDecl{},
	}
	if err := c.resolveExports(); err != nil {
		return nil, err
	}
	c.indexPoints()
	for _, point := range c.points {
		var err error
		switch {
		case point.kind == kindMethod:
			err = c.addMethod(point)
		case point.kind == kindField && point.static && c.isStaticSource(point):
			err = c.addStatic(point)
		}
		if err != nil {
			return nil, err
		}
	}
	return c.result, nil
}

func (c *compiler) warn(name string, line int, format string, args ...interface{}) {
	c.result.Warnings = append(c.result.Warnings, &Warning{Name: name, Line: line, Message: fmt.Sprintf(format, args...)})
}

// resolveExports builds the exported class set from declarations and export specifiers
func (c *compiler) resolveExports() error {
	for _, cls := range c.module.classes {
		c.classes[cls.key] = cls
		switch cls.mode {
		case exportNamed:
			c.exported[cls.key] = cls.key
		case exportDefault:
			c.exported[cls.key] = DefaultExportName
		}
	}
	for _, spec := range c.exports {
		if _, ok := c.classes[spec.local]; !ok {
			c.warn(spec.exported, spec.line, "couldn't find which class to export for %v", spec.local)
			continue
		}
		if c.exported[spec.local] == DefaultExportName {
			continue
		}
		c.exported[spec.local] = spec.exported
	}
	for key, exportedAs := range c.exported {
		if exportedAs != DefaultExportName {
			continue
		}
		if c.defaults != nil {
			return &CompilationError{Kind: kindClass.String(), Name: key, Line: c.lineOf(c.classes[key].start),
				Reason: fmt.Sprintf("second default export, %v is already the default", c.defaults.key)}
		}
		c.defaults = c.classes[key]
	}
	for key, exportedAs := range c.exported {
		cls := c.classes[key]
		description := ""
		if cls.doc != nil && !cls.doc.comment.Ignore {
			description = cls.doc.comment.ClassDesc
			if description == "" {
				description = cls.doc.comment.Description
			}
		}
		c.result.Contracts[key] = contract.New(exportedAs, description)
	}
	return nil
}

func (c *compiler) lineOf(offset int) int {
	return strings.Count(c.source[:offset], "\n") + 1
}

// indexPoints drops ignored points and orders the rest by range start
func (c *compiler) indexPoints() {
	for _, point := range c.module.points {
		if point.comment.Ignore {
			continue
		}
		c.points = append(c.points, point)
	}
	sort.SliceStable(c.points, func(i, j int) bool {
		return c.points[i].start < c.points[j].start
	})
}

// owner resolves the owning contract by lexical scope or containment in the default export
func (c *compiler) owner(point *docPoint) (string, *contract.Contract) {
	name := point.scope
	if name == "" && c.defaults != nil && within(point, c.defaults.start, c.defaults.end) {
		name = c.defaults.key
	}
	return name, c.result.Contracts[name]
}

func (c *compiler) missingOwner(point *docPoint, owner string) error {
	return &CompilationError{
		Kind:     point.kind.String(),
		Name:     point.name,
		Owner:    owner,
		Line:     point.line,
		Doc:      point.raw,
		Exported: c.result.Contracts.Names(),
	}
}

func (c *compiler) addMethod(point *docPoint) error {
	owner, entry := c.owner(point)
	if entry == nil {
		return c.missingOwner(point, owner)
	}
	if entry.Method(point.name) != nil {
		return &CompilationError{Kind: point.kind.String(), Name: point.name, Owner: owner, Line: point.line,
			Reason: fmt.Sprintf("duplicate method in %v", owner)}
	}
	doc := point.comment
	method := &contract.Method{Name: point.name, Description: doc.Description, Params: []*contract.Param{}, Examples: doc.Examples}
	seenOptional := false
	for _, param := range doc.Params {
		if strings.Contains(param.Name, ".") {
			continue //property of a preceding object parameter
		}
		typeName := c.typeName(param.Type, point, "param "+param.Name)
		if !param.Optional && seenOptional {
			c.warn(point.name, point.line, "required param %v follows an optional param", param.Name)
		}
		seenOptional = seenOptional || param.Optional
		method.Params = append(method.Params, &contract.Param{
			Name:        param.Name,
			Type:        typeName,
			Description: param.Description,
			Optional:    param.Optional,
		})
	}
	if len(doc.Returns) > 0 {
		if len(doc.Returns) > 1 {
			c.warn(point.name, point.line, "unexpected returns value: %v @returns tags", len(doc.Returns))
		}
		ret := doc.Returns[0]
		method.Returns = &contract.Return{Type: c.typeName(ret.Type, point, "returns"), Description: ret.Description}
	}
	entry.Methods = append(entry.Methods, method)
	return nil
}

// typeName normalizes an annotation to exactly one type tag
func (c *compiler) typeName(expr *typeExpr, point *docPoint, subject string) string {
	if expr == nil || len(expr.Names) != 1 {
		raw := ""
		if expr != nil {
			raw = expr.Raw
		}
		c.warn(point.name, point.line, "unexpected %v type {%v}, expected exactly one type", subject, raw)
		return contract.UnknownType
	}
	return expr.Names[0]
}

func (c *compiler) isStaticSource(point *docPoint) bool {
	text := strings.TrimLeft(c.source[point.start:point.end], " \t\r\n")
	return strings.HasPrefix(text, "static") && len(text) > len("static") && strings.ContainsAny(text[len("static"):len("static")+1], " \t\r\n")
}

// addStatic collects points contained in the static field range as bucket members
func (c *compiler) addStatic(point *docPoint) error {
	owner, entry := c.owner(point)
	if entry == nil {
		return c.missingOwner(point, owner)
	}
	var members = make([]*contract.StaticMember, 0)
	for _, sub := range c.contained(point) {
		members = append(members, &contract.StaticMember{
			Name:        sub.name,
			Type:        c.staticType(sub),
			Description: sub.comment.Description,
		})
	}
	entry.Statics[point.name] = members
	return nil
}

// contained returns points strictly inside the outer range using the start ordered index
func (c *compiler) contained(outer *docPoint) []*docPoint {
	var ret []*docPoint
	from := sort.Search(len(c.points), func(i int) bool {
		return c.points[i].start >= outer.start
	})
	for i := from; i < len(c.points) && c.points[i].start < outer.end; i++ {
		if candidate := c.points[i]; candidate != outer && within(candidate, outer.start, outer.end) {
			ret = append(ret, candidate)
		}
	}
	return ret
}

func (c *compiler) staticType(point *docPoint) string {
	doc := point.comment
	switch {
	case doc.Type != nil:
		return c.typeName(doc.Type, point, "type")
	case point.literal != "":
		return point.literal
	case len(doc.Returns) > 0:
		return c.typeName(doc.Returns[0].Type, point, "returns")
	}
	return contract.UnknownType
}

func within(point *docPoint, start, end int) bool {
	return point.start >= start && point.end <= end && (point.start != start || point.end != end)
}

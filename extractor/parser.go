package extractor

import (
	"strings"
)

type kind int

const (
	kindOther kind = iota
	kindClass
	kindMethod
	kindField
	kindMember
)

func (k kind) String() string {
	switch k {
	case kindClass:
		return "class"
	case kindMethod:
		return "method"
	case kindField:
		return "field"
	case kindMember:
		return "member"
	}
	return "other"
}

const (
	exportNone = iota
	exportNamed
	exportDefault
)

type (
	// docPoint represents a documentation comment attached to a declaration
	docPoint struct {
		raw     string
		comment *comment
		kind    kind
		name    string
		scope   string //enclosing class, empty when it has no lexical identity
		static  bool
		start   int //declaration byte range
		end     int
		literal string
		line    int
	}

	classDecl struct {
		name  string
		key   string
		mode  int
		start int
		end   int
		doc   *docPoint
		scope string
	}

	exportSpec struct {
		local    string
		exported string
		line     int
	}

	module struct {
		source  string
		points  []*docPoint
		classes []*classDecl
		exports []*exportSpec
	}

	parser struct {
		*module
		tokens []*token
		i      int
	}
)

var memberModifiers = map[string]bool{
	"static": true, "async": true, "public": true, "private": true, "protected": true, "readonly": true,
	"override": true, "abstract": true, "declare": true, "accessor": true, "get": true, "set": true,
}

func parseModule(source string) *module {
	p := &parser{module: &module{source: source}, tokens: tokenize(source)}
	p.parse()
	return p.module
}

func (p *parser) tok() *token {
	if p.i >= len(p.tokens) {
		return &token{kind: tokenPunct, start: len(p.source), end: len(p.source)}
	}
	return p.tokens[p.i]
}

func (p *parser) peek(offset int) *token {
	if p.i+offset >= len(p.tokens) {
		return &token{kind: tokenPunct, start: len(p.source), end: len(p.source)}
	}
	return p.tokens[p.i+offset]
}

func (p *parser) lineOf(offset int) int {
	return strings.Count(p.source[:offset], "\n") + 1
}

func (p *parser) addPoint(doc *token, kind kind, name, scope string, static bool, start, end int) *docPoint {
	if doc == nil {
		return nil
	}
	ret := &docPoint{
		raw:     doc.text,
		comment: parseComment(doc.text),
		kind:    kind,
		name:    name,
		scope:   scope,
		static:  static,
		start:   start,
		end:     end,
		line:    p.lineOf(doc.start),
	}
	p.points = append(p.points, ret)
	return ret
}

func (p *parser) detached(doc *token) {
	if doc == nil {
		return
	}
	p.addPoint(doc, kindOther, "", "", false, doc.start, doc.end)
}

func (p *parser) parse() {
	var pending *token
	for p.i < len(p.tokens) {
		tok := p.tok()
		if tok.kind == tokenDoc {
			if pending != nil {
				p.detached(pending)
			}
			pending = tok
			p.i++
			continue
		}
		if tok.isPunct("@") {
			p.skipDecorators() //doc stays with the decorated declaration
			continue
		}
		doc := pending
		pending = nil
		start := p.i
		switch {
		case tok.is(tokenIdent, "export"):
			p.exportStatement(doc)
		case p.isClassAt(p.i):
			p.classDeclaration(doc, start, "", exportNone)
		case p.isClassExpressionAt(p.i):
			name := p.peek(1).text
			p.i += 3
			p.classDeclaration(doc, start, name, exportNone)
		case isOpening(tok):
			p.detached(doc)
			p.skipBalanced()
		default:
			p.detached(doc)
			p.i++
		}
	}
	if pending != nil {
		p.detached(pending)
	}
}

func (p *parser) isClassAt(i int) bool {
	if i >= len(p.tokens) {
		return false
	}
	tok := p.tokens[i]
	if tok.is(tokenIdent, "abstract") || tok.is(tokenIdent, "declare") {
		return i+1 < len(p.tokens) && p.tokens[i+1].is(tokenIdent, "class")
	}
	return tok.is(tokenIdent, "class")
}

// isClassExpressionAt matches const Name = class ...
func (p *parser) isClassExpressionAt(i int) bool {
	if i+3 >= len(p.tokens) {
		return false
	}
	switch p.tokens[i].text {
	case "const", "let", "var":
	default:
		return false
	}
	return p.tokens[i].kind == tokenIdent && p.tokens[i+1].kind == tokenIdent &&
		p.tokens[i+2].isPunct("=") && p.isClassAt(i+3)
}

func (p *parser) exportStatement(doc *token) {
	start := p.i
	p.i++
	p.skipDecorators()
	next := p.tok()
	switch {
	case next.is(tokenIdent, "default"):
		p.i++
		p.skipDecorators()
		switch target := p.tok(); {
		case p.isClassAt(p.i):
			p.classDeclaration(doc, start, "", exportDefault)
		case target.kind == tokenIdent && !isDeclarationKeyword(target.text) && p.endsStatement(p.i+1):
			p.exports = append(p.exports, &exportSpec{local: target.text, exported: DefaultExportName, line: p.lineOf(target.start)})
			p.detached(doc)
			p.i++
		default:
			p.detached(doc)
		}
	case p.isClassAt(p.i):
		p.classDeclaration(doc, start, "", exportNamed)
	case p.isClassExpressionAt(p.i):
		name := p.peek(1).text
		p.i += 3
		p.classDeclaration(doc, start, name, exportNamed)
	case next.isPunct("{"):
		p.detached(doc)
		p.exportSpecifiers()
	default:
		p.detached(doc)
	}
}

// exportSpecifiers parses export { a, b as c } [from '...']
func (p *parser) exportSpecifiers() {
	var specs []*exportSpec
	p.i++
	for p.i < len(p.tokens) && !p.tok().isPunct("}") {
		tok := p.tok()
		if tok.kind != tokenIdent && tok.kind != tokenString {
			p.i++
			continue
		}
		spec := &exportSpec{local: unquote(tok), line: p.lineOf(tok.start)}
		spec.exported = spec.local
		p.i++
		if p.tok().is(tokenIdent, "as") {
			p.i++
			spec.exported = unquote(p.tok())
			p.i++
		}
		specs = append(specs, spec)
	}
	p.i++
	if p.tok().is(tokenIdent, "from") {
		p.i += 2 //re-export from another module cannot be resolved here
		return
	}
	p.exports = append(p.exports, specs...)
}

func (p *parser) endsStatement(i int) bool {
	if i >= len(p.tokens) {
		return true
	}
	tok := p.tokens[i]
	return tok.isPunct(";") || tok.newline || tok.kind == tokenDoc
}

// classDeclaration parses class header and body, p.i points at 'class' or its modifier
func (p *parser) classDeclaration(doc *token, start int, binding string, mode int) {
	for p.tok().is(tokenIdent, "abstract") || p.tok().is(tokenIdent, "declare") {
		p.i++
	}
	p.i++ //class
	cls := &classDecl{name: binding, mode: mode, start: p.tokens[start].start}
	if tok := p.tok(); tok.kind == tokenIdent && tok.text != "extends" && tok.text != "implements" {
		cls.name = tok.text
		cls.scope = tok.text
		p.i++
	}
	if binding != "" {
		cls.name = binding
		cls.scope = binding
	}
	cls.key = cls.name
	if cls.key == "" && mode == exportDefault {
		cls.key = DefaultExportName
	}
	angle := 0
	for p.i < len(p.tokens) {
		tok := p.tok()
		if tok.isPunct("{") && angle == 0 {
			break
		}
		switch {
		case tok.isPunct("<"):
			angle++
		case tok.isPunct(">"):
			angle--
		case tok.isPunct("("):
			p.skipBalanced()
			continue
		case tok.isPunct("{"):
			p.skipBalanced()
			continue
		}
		p.i++
	}
	cls.doc = p.addPoint(doc, kindClass, cls.key, "", false, cls.start, cls.start)
	p.classBody(cls)
	if cls.doc != nil {
		cls.doc.end = cls.end
	}
	if cls.key != "" {
		p.classes = append(p.classes, cls)
	}
}

func (p *parser) classBody(cls *classDecl) {
	if !p.tok().isPunct("{") {
		cls.end = p.tok().start
		return
	}
	p.i++
	var pending *token
	for p.i < len(p.tokens) {
		tok := p.tok()
		switch {
		case tok.kind == tokenDoc:
			if pending != nil {
				p.detached(pending)
			}
			pending = tok
			p.i++
			continue
		case tok.isPunct("}"):
			if pending != nil {
				p.detached(pending)
			}
			cls.end = tok.end
			p.i++
			return
		case tok.isPunct(";"):
			p.i++
			continue
		}
		before := p.i
		p.member(cls.scope, pending)
		pending = nil
		if p.i == before {
			p.i++
		}
	}
	cls.end = len(p.source)
}

func (p *parser) skipDecorators() {
	for p.tok().isPunct("@") {
		p.i++
		for p.tok().kind == tokenIdent || p.tok().isPunct(".") {
			p.i++
		}
		if p.tok().isPunct("(") {
			p.skipBalanced()
		}
	}
}

func (p *parser) member(scope string, doc *token) {
	p.skipDecorators()
	start := p.tok()
	if start.is(tokenIdent, "static") && p.peek(1).isPunct("{") {
		p.i++
		p.skipBalanced()
		p.detached(doc)
		return
	}
	static, accessor := false, false
	for p.tok().kind == tokenIdent && memberModifiers[p.tok().text] && startsName(p.peek(1)) && !p.peek(1).newline {
		switch p.tok().text {
		case "static":
			static = true
		case "get", "set":
			accessor = true
		}
		p.i++
	}
	if p.tok().isPunct("*") {
		p.i++
	}
	nameTok := p.tok()
	name := unquote(nameTok)
	if nameTok.isPunct("[") {
		p.skipBalanced()
		name = p.source[nameTok.start:p.tokens[p.i-1].end]
	} else {
		p.i++
	}
	if p.tok().isPunct("?") || p.tok().isPunct("!") {
		p.i++
	}
	if p.tok().isPunct("(") || p.tok().isPunct("<") {
		p.skipAngles()
		if p.tok().isPunct("(") {
			p.skipBalanced()
		}
		p.skipReturnType()
		if p.tok().isPunct("{") {
			p.skipBalanced()
		} else if p.tok().isPunct(";") {
			p.i++
		}
		end := p.tokens[p.i-1].end
		memberKind := kindMethod
		switch {
		case accessor:
			memberKind = kindMember
		case name == "constructor" || strings.HasPrefix(name, "#"):
			memberKind = kindOther
		}
		p.addPoint(doc, memberKind, name, scope, static, start.start, end)
		return
	}
	p.field(doc, name, scope, static, start)
}

// field scans a class property up to ';', the closing class brace or a statement ending line break
func (p *parser) field(doc *token, name, scope string, static bool, start *token) {
	depth := 0
	assign := -1
	end := p.tokens[p.i-1].end
	for p.i < len(p.tokens) {
		tok := p.tok()
		if depth == 0 {
			if tok.isPunct(";") {
				p.i++
				break
			}
			if tok.isPunct("}") {
				break
			}
			if tok.newline && !continues(p.tokens[p.i-1], tok) {
				break
			}
			if tok.isPunct("=") && assign == -1 {
				assign = p.i
			}
		}
		switch {
		case tok.kind == tokenDoc:
			p.nestedMember(scope)
			p.i++
			continue
		case isOpening(tok):
			depth++
		case isClosing(tok):
			depth--
		}
		end = tok.end
		p.i++
	}
	point := p.addPoint(doc, kindField, name, scope, static, start.start, end)
	if point != nil && assign != -1 {
		point.literal = p.literalBetween(assign+1, end)
	}
}

// nestedMember records a documented property found inside an initializer, p.i points at the doc
func (p *parser) nestedMember(scope string) {
	doc := p.tok()
	j := p.i + 1
	for j < len(p.tokens) && p.tokens[j].kind == tokenDoc {
		j++
	}
	if j >= len(p.tokens) || isClosing(p.tokens[j]) {
		p.detached(doc)
		return
	}
	first := p.tokens[j]
	k := j
	for k+1 < len(p.tokens) && p.tokens[k].kind == tokenIdent && memberModifiers[p.tokens[k].text] && startsName(p.tokens[k+1]) {
		k++
	}
	if p.tokens[k].isPunct("*") {
		k++
	}
	name := unquote(p.tokens[min(k, len(p.tokens)-1)])
	depth := 0
	end := first.end
	assign := -1
	for ; j < len(p.tokens); j++ {
		tok := p.tokens[j]
		if depth == 0 && (tok.isPunct(",") || tok.isPunct(";")) {
			break
		}
		if depth == 0 && assign == -1 && (tok.isPunct(":") || tok.isPunct("=")) {
			assign = j
		}
		switch {
		case isOpening(tok):
			depth++
		case isClosing(tok):
			depth--
		}
		if depth < 0 {
			break
		}
		if tok.kind != tokenDoc {
			end = tok.end
		}
	}
	point := p.addPoint(doc, kindMember, name, scope, false, first.start, end)
	if assign != -1 {
		point.literal = p.literalBetween(assign+1, end)
	}
}

// literalBetween returns the literal kind when tokens from index up to end form a single literal
func (p *parser) literalBetween(from int, end int) string {
	var value []*token
	for j := from; j < len(p.tokens) && p.tokens[j].end <= end; j++ {
		if p.tokens[j].kind == tokenDoc {
			continue
		}
		value = append(value, p.tokens[j])
	}
	if len(value) == 2 && value[0].isPunct("-") && value[1].kind == tokenNumber {
		return "number"
	}
	if len(value) != 1 {
		return ""
	}
	switch value[0].kind {
	case tokenString, tokenTemplate:
		return "string"
	case tokenNumber:
		return "number"
	case tokenIdent:
		if value[0].text == "true" || value[0].text == "false" {
			return "boolean"
		}
	}
	return ""
}

// skipBalanced skips a bracketed group starting at the current opening token
func (p *parser) skipBalanced() {
	depth := 0
	for p.i < len(p.tokens) {
		tok := p.tok()
		p.i++
		switch {
		case isOpening(tok):
			depth++
		case isClosing(tok):
			depth--
			if depth <= 0 {
				return
			}
		}
	}
}

// skipAngles skips a generic parameter list
func (p *parser) skipAngles() {
	if !p.tok().isPunct("<") {
		return
	}
	depth := 0
	for p.i < len(p.tokens) {
		tok := p.tok()
		p.i++
		switch {
		case tok.isPunct("<"):
			depth++
		case tok.isPunct(">") && !p.isArrow(p.i-1):
			depth--
			if depth == 0 {
				return
			}
		}
	}
}

// skipReturnType skips ': Type' up to the method body or ';'
func (p *parser) skipReturnType() {
	if !p.tok().isPunct(":") {
		return
	}
	p.i++
	angle := 0
	for p.i < len(p.tokens) {
		tok := p.tok()
		switch {
		case tok.isPunct(";") && angle == 0:
			return
		case tok.isPunct("{"):
			if angle == 0 && !p.typeContinues(p.i-1) {
				return
			}
			p.skipBalanced()
			continue
		case tok.isPunct("(") || tok.isPunct("["):
			p.skipBalanced()
			continue
		case tok.isPunct("<"):
			angle++
		case tok.isPunct(">") && !p.isArrow(p.i):
			angle--
		}
		p.i++
	}
}

func (p *parser) isArrow(i int) bool {
	return i > 0 && i < len(p.tokens) && p.tokens[i].isPunct(">") && p.tokens[i-1].isPunct("=") && p.tokens[i-1].end == p.tokens[i].start
}

// typeContinues reports whether a brace after token i opens an object type rather than a body
func (p *parser) typeContinues(i int) bool {
	prev := p.tokens[i]
	if prev.kind == tokenIdent {
		return prev.text == "keyof" || prev.text == "typeof"
	}
	if prev.kind != tokenPunct {
		return false
	}
	switch prev.text {
	case ":", "|", "&", "<", ",", "=", "?":
		return true
	case ">":
		return p.isArrow(i)
	}
	return false
}

// continues reports whether a line break between prev and next keeps an expression open
func continues(prev, next *token) bool {
	if prev.kind == tokenPunct {
		switch prev.text {
		case "=", "+", "-", "*", "/", "%", "&", "|", "^", "!", "~", "?", ":", ",", ".", "<", ">", "(", "[", "{":
			return true
		}
	}
	if next.kind == tokenPunct {
		switch next.text {
		case ".", "?", "=", "+", "*", "/", "%", "&", "|", "^", ":", ">", "<", ")", "]":
			return true
		}
	}
	return false
}

func startsName(tok *token) bool {
	switch tok.kind {
	case tokenIdent, tokenString, tokenNumber:
		return true
	case tokenPunct:
		return tok.text == "[" || tok.text == "*"
	}
	return false
}

func isOpening(tok *token) bool {
	return tok.kind == tokenPunct && (tok.text == "{" || tok.text == "(" || tok.text == "[")
}

func isClosing(tok *token) bool {
	return tok.kind == tokenPunct && (tok.text == "}" || tok.text == ")" || tok.text == "]")
}

func isDeclarationKeyword(text string) bool {
	switch text {
	case "function", "async", "class", "abstract", "new", "const", "let", "var", "interface", "enum":
		return true
	}
	return false
}

func unquote(tok *token) string {
	if tok.kind == tokenString && len(tok.text) >= 2 {
		return tok.text[1 : len(tok.text)-1]
	}
	return tok.text
}

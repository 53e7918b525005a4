package extractor

import (
	"strings"
)

type (
	// comment represents a parsed documentation comment
	comment struct {
		Description string
		ClassDesc   string
		Params      []*tag
		Returns     []*tag
		Examples    []string
		Type        *typeExpr
		Ignore      bool
	}

	// tag represents @param, @returns or @type content
	tag struct {
		Name        string
		Type        *typeExpr
		Description string
		Optional    bool
		Default     string
	}

	// typeExpr represents a {type} annotation; Names holds top level alternatives
	typeExpr struct {
		Raw      string
		Names    []string
		Optional bool
	}
)

// parseComment parses /** ... */ text into description and block tags
func parseComment(text string) *comment {
	ret := &comment{}
	text = strings.TrimPrefix(text, "/**")
	text = strings.TrimSuffix(text, "*/")
	var blocks []string
	var current []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, " \t\r")
		trimmed := strings.TrimLeft(line, " \t")
		if strings.HasPrefix(trimmed, "*") {
			trimmed = strings.TrimPrefix(trimmed, "*")
			trimmed = strings.TrimPrefix(trimmed, " ")
		}
		if strings.HasPrefix(strings.TrimSpace(trimmed), "@") && !strings.HasPrefix(strings.TrimSpace(trimmed), "@{") {
			blocks = append(blocks, strings.Join(current, "\n"))
			current = nil
			trimmed = strings.TrimSpace(trimmed)
		}
		current = append(current, trimmed)
	}
	blocks = append(blocks, strings.Join(current, "\n"))

	ret.Description = strings.TrimSpace(blocks[0])
	for _, block := range blocks[1:] {
		name, body := splitTag(block)
		switch name {
		case "param", "arg", "argument":
			ret.Params = append(ret.Params, parseParamTag(body))
		case "returns", "return":
			ret.Returns = append(ret.Returns, parseReturnTag(body))
		case "example":
			ret.Examples = append(ret.Examples, trimExample(body))
		case "type":
			expr, _ := parseTypeExpr(strings.TrimSpace(body))
			ret.Type = expr
		case "ignore":
			ret.Ignore = true
		case "description", "desc":
			ret.Description = strings.TrimSpace(body)
		case "classdesc":
			ret.ClassDesc = strings.TrimSpace(body)
		}
	}
	return ret
}

func splitTag(block string) (string, string) {
	block = strings.TrimPrefix(block, "@")
	end := strings.IndexAny(block, " \t\n")
	if end == -1 {
		return block, ""
	}
	return block[:end], block[end+1:]
}

func parseParamTag(body string) *tag {
	ret := &tag{}
	body = strings.TrimSpace(body)
	ret.Type, body = parseTypeExpr(body)
	body = strings.TrimSpace(body)
	if strings.HasPrefix(body, "[") {
		end := matchingBracket(body, '[', ']')
		inner := body[1:end]
		body = body[min(end+1, len(body)):]
		ret.Optional = true
		if idx := strings.Index(inner, "="); idx != -1 {
			ret.Default = strings.TrimSpace(inner[idx+1:])
			inner = inner[:idx]
		}
		ret.Name = strings.TrimSpace(inner)
	} else {
		end := strings.IndexAny(body, " \t\n")
		if end == -1 {
			end = len(body)
		}
		ret.Name = body[:end]
		body = body[end:]
	}
	if ret.Type != nil && ret.Type.Optional {
		ret.Optional = true
	}
	ret.Description = trimDescription(body)
	return ret
}

func parseReturnTag(body string) *tag {
	ret := &tag{}
	ret.Type, body = parseTypeExpr(strings.TrimSpace(body))
	ret.Description = trimDescription(body)
	return ret
}

func trimDescription(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "-")
	return strings.TrimSpace(text)
}

func trimExample(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Trim(strings.Join(lines, "\n"), "\n ")
}

// parseTypeExpr parses a leading {type} and returns the remaining text
func parseTypeExpr(text string) (*typeExpr, string) {
	if !strings.HasPrefix(text, "{") {
		return nil, text
	}
	end := matchingBracket(text, '{', '}')
	if end == len(text) {
		return &typeExpr{Raw: text[1:]}, ""
	}
	raw := strings.TrimSpace(text[1:end])
	ret := &typeExpr{Raw: raw}
	expr := raw
	if strings.HasSuffix(expr, "=") {
		ret.Optional = true
		expr = strings.TrimSuffix(expr, "=")
	}
	expr = strings.TrimPrefix(expr, "...")
	expr = strings.TrimLeft(expr, "?!")
	expr = strings.TrimRight(expr, "?!")
	expr = strings.TrimSpace(expr)
	if strings.HasPrefix(expr, "(") && matchingBracket(expr, '(', ')') == len(expr)-1 {
		expr = expr[1 : len(expr)-1]
	}
	for _, name := range splitUnion(expr) {
		if name = strings.TrimSpace(name); name != "" {
			ret.Names = append(ret.Names, name)
		}
	}
	return ret, text[end+1:]
}

// splitUnion splits a type expression on top level '|'
func splitUnion(expr string) []string {
	var ret []string
	depth := 0
	start := 0
	for i := 0; i < len(expr); i++ {
		switch expr[i] {
		case '<', '(', '[', '{':
			depth++
		case '>', ')', ']', '}':
			depth--
		case '|':
			if depth == 0 {
				ret = append(ret, expr[start:i])
				start = i + 1
			}
		}
	}
	return append(ret, expr[start:])
}

// matchingBracket returns index of bracket closing text[0], or len(text) when unbalanced
func matchingBracket(text string, open, closing byte) int {
	depth := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case open:
			depth++
		case closing:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return len(text)
}

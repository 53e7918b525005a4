package extractor

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokenKind int

const (
	tokenIdent tokenKind = iota
	tokenPunct
	tokenString
	tokenTemplate
	tokenNumber
	tokenRegex
	tokenDoc
)

// token represents a lexical token with its byte range in source
type token struct {
	kind    tokenKind
	text    string
	start   int
	end     int
	newline bool //preceded by a line break
}

func (t *token) is(kind tokenKind, text string) bool {
	return t.kind == kind && t.text == text
}

func (t *token) isPunct(text string) bool {
	return t.is(tokenPunct, text)
}

// regexPrefix lists keywords after which a slash starts a regular expression
var regexPrefix = map[string]bool{
	"return": true, "typeof": true, "case": true, "do": true, "else": true, "in": true, "of": true,
	"new": true, "delete": true, "void": true, "throw": true, "instanceof": true, "yield": true, "await": true,
}

// scanner splits JavaScript/TypeScript source into tokens, dropping plain comments
// but keeping /** doc */ comments as tokens.
type scanner struct {
	src     string
	pos     int
	newline bool
	tokens  []*token
}

func (s *scanner) scan() []*token {
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		switch {
		case c == '\n':
			s.newline = true
			s.pos++
		case c == ' ' || c == '\t' || c == '\r' || c == '\f' || c == '\v':
			s.pos++
		case strings.HasPrefix(s.src[s.pos:], "/*"):
			s.blockComment()
		case strings.HasPrefix(s.src[s.pos:], "//"):
			s.lineComment()
		case c == '\'' || c == '"':
			start := s.pos
			s.pos = s.skipString(s.pos)
			s.emit(tokenString, start)
		case c == '`':
			start := s.pos
			s.pos = s.skipTemplate(s.pos)
			s.emit(tokenTemplate, start)
		case c == '/' && s.regexAllowed():
			start := s.pos
			s.pos = s.skipRegex(s.pos)
			s.emit(tokenRegex, start)
		case c >= '0' && c <= '9' || c == '.' && s.pos+1 < len(s.src) && isDigit(s.src[s.pos+1]):
			start := s.pos
			for s.pos < len(s.src) && (isIdentPart(rune(s.src[s.pos])) || s.src[s.pos] == '.') {
				s.pos++
			}
			s.emit(tokenNumber, start)
		default:
			r, size := utf8.DecodeRuneInString(s.src[s.pos:])
			if isIdentStart(r) {
				start := s.pos
				s.pos += size
				for s.pos < len(s.src) {
					r, size = utf8.DecodeRuneInString(s.src[s.pos:])
					if !isIdentPart(r) {
						break
					}
					s.pos += size
				}
				s.emit(tokenIdent, start)
				continue
			}
			start := s.pos
			s.pos += size
			s.emit(tokenPunct, start)
		}
	}
	return s.tokens
}

func (s *scanner) emit(kind tokenKind, start int) {
	s.tokens = append(s.tokens, &token{kind: kind, text: s.src[start:s.pos], start: start, end: s.pos, newline: s.newline})
	s.newline = false
}

func (s *scanner) blockComment() {
	start := s.pos
	end := strings.Index(s.src[s.pos+2:], "*/")
	if end == -1 {
		s.pos = len(s.src)
	} else {
		s.pos += end + 4
	}
	text := s.src[start:s.pos]
	if strings.HasPrefix(text, "/**") && text != "/**/" && !strings.HasPrefix(text, "/***") {
		s.emit(tokenDoc, start)
		return
	}
	if strings.Contains(text, "\n") {
		s.newline = true
	}
}

func (s *scanner) lineComment() {
	end := strings.IndexByte(s.src[s.pos:], '\n')
	if end == -1 {
		s.pos = len(s.src)
		return
	}
	s.pos += end
}

func (s *scanner) skipString(pos int) int {
	quote := s.src[pos]
	pos++
	for pos < len(s.src) {
		switch s.src[pos] {
		case '\\':
			pos += 2
			continue
		case quote:
			return pos + 1
		case '\n':
			return pos //unterminated
		}
		pos++
	}
	return len(s.src)
}

// skipTemplate skips a template literal including nested ${} expressions
func (s *scanner) skipTemplate(pos int) int {
	pos++
	for pos < len(s.src) {
		switch c := s.src[pos]; {
		case c == '\\':
			pos += 2
			continue
		case c == '`':
			return pos + 1
		case c == '$' && pos+1 < len(s.src) && s.src[pos+1] == '{':
			pos = s.skipExpression(pos + 2)
			continue
		}
		pos++
	}
	return len(s.src)
}

// skipExpression skips a template substitution up to and including its closing brace
func (s *scanner) skipExpression(pos int) int {
	depth := 1
	for pos < len(s.src) {
		switch c := s.src[pos]; c {
		case '\'', '"':
			pos = s.skipString(pos)
			continue
		case '`':
			pos = s.skipTemplate(pos)
			continue
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return pos + 1
			}
		}
		pos++
	}
	return len(s.src)
}

func (s *scanner) skipRegex(pos int) int {
	pos++
	inClass := false
	for pos < len(s.src) {
		switch c := s.src[pos]; c {
		case '\\':
			pos += 2
			continue
		case '[':
			inClass = true
		case ']':
			inClass = false
		case '\n':
			return pos
		case '/':
			if !inClass {
				pos++
				for pos < len(s.src) && isIdentPart(rune(s.src[pos])) {
					pos++
				}
				return pos
			}
		}
		pos++
	}
	return len(s.src)
}

func (s *scanner) regexAllowed() bool {
	for i := len(s.tokens) - 1; i >= 0; i-- {
		prev := s.tokens[i]
		switch prev.kind {
		case tokenDoc:
			continue
		case tokenIdent:
			return regexPrefix[prev.text]
		case tokenPunct:
			return prev.text != ")" && prev.text != "]" && prev.text != "}"
		default:
			return false
		}
	}
	return true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentStart(r rune) bool {
	return r == '_' || r == '$' || r == '#' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func tokenize(source string) []*token {
	s := &scanner{src: source}
	return s.scan()
}

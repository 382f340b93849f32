package token

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/wippyai/esmconv/errors"
)

type Type int

const (
	EOF Type = iota
	Ident
	String
	Number
	Punct
	Regex
	// Template is a literal without substitutions. A literal with them is
	// split into a TemplateHead, TemplateMiddle parts and a TemplateTail;
	// each holds the raw text between its delimiters.
	Template
	TemplateHead
	TemplateMiddle
	TemplateTail
)

func (t Type) String() string {
	switch t {
	case EOF:
		return "end of input"
	case Ident:
		return "identifier"
	case String:
		return "string"
	case Number:
		return "number"
	case Punct:
		return "punctuator"
	case Regex:
		return "regular expression"
	case Template, TemplateHead, TemplateMiddle, TemplateTail:
		return "template"
	}
	return "unknown"
}

// Token is one lexical unit. For strings Value holds the decoded value and
// Raw the quoted source text; for everything else the two are equal.
type Token struct {
	Value string
	Raw   string
	Type  Type
	Line  int
	Col   int
	// NewlineBefore is set when a line terminator separates this token from
	// the previous one. The parser uses it for automatic semicolon insertion.
	NewlineBefore bool
}

// Is reports whether t is the punctuator or word v.
func (t Token) Is(v string) bool {
	return (t.Type == Punct || t.Type == Ident) && t.Value == v
}

// Longest first so that prefix operators do not shadow longer ones.
var puncts = []string{
	">>>=", "...", "===", "!==", "**=", "<<=", ">>=", ">>>", "??=", "||=", "&&=",
	"=>", "==", "!=", "<=", ">=", "&&", "||", "??", "?.", "++", "--",
	"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "**", "<<", ">>",
	"{", "}", "(", ")", "[", "]", ";", ",", "<", ">", "+", "-", "*", "/",
	"%", "&", "|", "^", "!", "~", "?", ":", "=", ".",
}

type lexer struct {
	src    string
	tokens []Token
	// braces records, per open brace, whether it opened a template
	// substitution.
	braces  []bool
	pos     int
	line    int
	lineOff int
	newline bool
}

// beforeExpression lists the words after which a slash starts a regular
// expression rather than a division.
var beforeExpression = map[string]bool{
	"return": true, "typeof": true, "instanceof": true, "in": true, "of": true,
	"new": true, "delete": true, "void": true, "throw": true, "case": true,
	"do": true, "else": true, "yield": true, "await": true, "extends": true,
}

// Tokenize splits source into tokens, ending with a single EOF token.
func Tokenize(input string) ([]Token, error) {
	l := &lexer{src: input, line: 1}
	for {
		if err := l.skipTrivia(); err != nil {
			return nil, err
		}
		if l.pos >= len(l.src) {
			l.emit(Token{Type: EOF, Line: l.line, Col: l.col()})
			return l.tokens, nil
		}
		if err := l.scan(); err != nil {
			return nil, err
		}
	}
}

func (l *lexer) col() int {
	return l.pos - l.lineOff + 1
}

func (l *lexer) emit(t Token) {
	t.NewlineBefore = l.newline
	l.newline = false
	l.tokens = append(l.tokens, t)
}

func (l *lexer) newLine() {
	l.line++
	l.lineOff = l.pos + 1
	l.newline = true
}

func (l *lexer) skipTrivia() error {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == '\n':
			l.newLine()
			l.pos++
		case c == ' ' || c == '\t' || c == '\r' || c == '\f' || c == '\v':
			l.pos++
		case c == '/' && l.peekAt(1) == '/':
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.pos++
			}
		case c == '/' && l.peekAt(1) == '*':
			line, col := l.line, l.col()
			l.pos += 2
			closed := false
			for l.pos < len(l.src) {
				if l.src[l.pos] == '*' && l.peekAt(1) == '/' {
					l.pos += 2
					closed = true
					break
				}
				if l.src[l.pos] == '\n' {
					l.newLine()
				}
				l.pos++
			}
			if !closed {
				return errors.Unterminated(line, col, "block comment")
			}
		case c >= utf8.RuneSelf:
			r, size := utf8.DecodeRuneInString(l.src[l.pos:])
			if r == '\u2028' || r == '\u2029' {
				l.newLine()
				l.pos += size
				continue
			}
			if !unicode.IsSpace(r) && r != '\ufeff' {
				return nil
			}
			l.pos += size
		default:
			return nil
		}
	}
	return nil
}

func (l *lexer) peekAt(off int) byte {
	if l.pos+off < len(l.src) {
		return l.src[l.pos+off]
	}
	return 0
}

func (l *lexer) scan() error {
	c := l.src[l.pos]
	switch {
	case c == '"' || c == '\'':
		return l.scanString(c)
	case c == '`':
		return l.scanTemplate(true)
	case c == '}' && len(l.braces) > 0 && l.braces[len(l.braces)-1]:
		l.braces = l.braces[:len(l.braces)-1]
		return l.scanTemplate(false)
	case c == '/' && l.regexAllowed():
		return l.scanRegex()
	case c == '?' && l.peekAt(1) == '.' && isDigit(l.peekAt(2)):
		// a?.5:b is a conditional, not an optional chain.
		l.emit(Token{Value: "?", Raw: "?", Type: Punct, Line: l.line, Col: l.col()})
		l.pos++
		return nil
	case isDigit(c) || (c == '.' && isDigit(l.peekAt(1))):
		return l.scanNumber()
	case isIdentStart(l.runeAt()):
		l.scanIdent()
		return nil
	}

	for _, p := range puncts {
		if strings.HasPrefix(l.src[l.pos:], p) {
			switch p {
			case "{":
				l.braces = append(l.braces, false)
			case "}":
				if len(l.braces) > 0 {
					l.braces = l.braces[:len(l.braces)-1]
				}
			}
			l.emit(Token{Value: p, Raw: p, Type: Punct, Line: l.line, Col: l.col()})
			l.pos += len(p)
			return nil
		}
	}

	r, _ := utf8.DecodeRuneInString(l.src[l.pos:])
	return errors.New(errors.PhaseParse, errors.KindSyntax).
		At(l.line, l.col()).Token(string(r)).Detail("invalid character").Build()
}

// regexAllowed decides from the previous token whether a slash opens a
// regular expression.
func (l *lexer) regexAllowed() bool {
	if len(l.tokens) == 0 {
		return true
	}
	prev := l.tokens[len(l.tokens)-1]
	switch prev.Type {
	case TemplateHead, TemplateMiddle:
		return true
	case Ident:
		return beforeExpression[prev.Value]
	case Punct:
		switch prev.Value {
		case ")", "]", "++", "--":
			return false
		}
		return true
	}
	return false
}

func (l *lexer) scanRegex() error {
	start, col := l.pos, l.col()
	l.pos++
	inClass := false
body:
	for {
		if l.pos >= len(l.src) || l.src[l.pos] == '\n' {
			return errors.Unterminated(l.line, col, "regular expression")
		}
		c := l.src[l.pos]
		l.pos++
		switch c {
		case '\\':
			if l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.pos++
			}
		case '[':
			inClass = true
		case ']':
			inClass = false
		case '/':
			if !inClass {
				break body
			}
		}
	}
	for l.pos < len(l.src) {
		r, size := utf8.DecodeRuneInString(l.src[l.pos:])
		if !isIdentPart(r) {
			break
		}
		l.pos += size
	}
	raw := l.src[start:l.pos]
	l.emit(Token{Value: raw, Raw: raw, Type: Regex, Line: l.line, Col: col})
	return nil
}

// scanTemplate scans template text starting at a backtick, or at the brace
// closing a substitution when head is false.
func (l *lexer) scanTemplate(head bool) error {
	line, col := l.line, l.col()
	newline := l.newline
	l.pos++
	start := l.pos
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == '`':
			raw := l.src[start:l.pos]
			l.pos++
			typ := TemplateTail
			if head {
				typ = Template
			}
			l.newline = newline
			l.emit(Token{Value: raw, Raw: raw, Type: typ, Line: line, Col: col})
			return nil
		case c == '$' && l.peekAt(1) == '{':
			raw := l.src[start:l.pos]
			l.pos += 2
			l.braces = append(l.braces, true)
			typ := TemplateMiddle
			if head {
				typ = TemplateHead
			}
			l.newline = newline
			l.emit(Token{Value: raw, Raw: raw, Type: typ, Line: line, Col: col})
			return nil
		case c == '\\':
			l.pos++
			if l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.pos++
			}
		case c == '\n':
			l.newLine()
			l.pos++
		default:
			l.pos++
		}
	}
	return errors.Unterminated(line, col, "template literal")
}

func (l *lexer) runeAt() rune {
	r, _ := utf8.DecodeRuneInString(l.src[l.pos:])
	return r
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentStart(r rune) bool {
	return r == '$' || r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r) || r == '\u200c' || r == '\u200d'
}

func (l *lexer) scanIdent() {
	start, col := l.pos, l.col()
	for l.pos < len(l.src) {
		r, size := utf8.DecodeRuneInString(l.src[l.pos:])
		if !isIdentPart(r) {
			break
		}
		l.pos += size
	}
	word := l.src[start:l.pos]
	l.emit(Token{Value: word, Raw: word, Type: Ident, Line: l.line, Col: col})
}

func (l *lexer) scanNumber() error {
	start, col := l.pos, l.col()

	if l.src[l.pos] == '0' && l.pos+1 < len(l.src) {
		switch l.src[l.pos+1] {
		case 'x', 'X', 'o', 'O', 'b', 'B':
			l.pos += 2
			for l.pos < len(l.src) && (isHex(l.src[l.pos]) || l.src[l.pos] == '_') {
				l.pos++
			}
			return l.emitNumber(start, col)
		}
	}

	for l.pos < len(l.src) && (isDigit(l.src[l.pos]) || l.src[l.pos] == '_') {
		l.pos++
	}
	if l.pos < len(l.src) && l.src[l.pos] == '.' {
		l.pos++
		for l.pos < len(l.src) && (isDigit(l.src[l.pos]) || l.src[l.pos] == '_') {
			l.pos++
		}
	}
	if l.pos < len(l.src) && (l.src[l.pos] == 'e' || l.src[l.pos] == 'E') {
		l.pos++
		if l.pos < len(l.src) && (l.src[l.pos] == '+' || l.src[l.pos] == '-') {
			l.pos++
		}
		for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			l.pos++
		}
	}
	return l.emitNumber(start, col)
}

func (l *lexer) emitNumber(start, col int) error {
	raw := l.src[start:l.pos]
	if l.pos < len(l.src) && isIdentStart(l.runeAt()) {
		return errors.New(errors.PhaseParse, errors.KindSyntax).
			At(l.line, col).Token(raw).Detail("identifier starts immediately after numeric literal").Build()
	}
	if _, err := ParseNumber(raw); err != nil {
		return errors.New(errors.PhaseParse, errors.KindSyntax).
			At(l.line, col).Token(raw).Detail("invalid numeric literal").Cause(err).Build()
	}
	l.emit(Token{Value: raw, Raw: raw, Type: Number, Line: l.line, Col: col})
	return nil
}

func isHex(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// ParseNumber converts numeric literal source text to its value.
func ParseNumber(raw string) (float64, error) {
	s := strings.ReplaceAll(raw, "_", "")
	if len(s) > 2 && s[0] == '0' {
		base := 0
		switch s[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			v, err := strconv.ParseUint(s[2:], base, 64)
			return float64(v), err
		}
	}
	return strconv.ParseFloat(s, 64)
}

func (l *lexer) scanString(quote byte) error {
	start, line, col := l.pos, l.line, l.col()
	l.pos++

	var b strings.Builder
	for {
		if l.pos >= len(l.src) || l.src[l.pos] == '\n' {
			return errors.Unterminated(line, col, "string literal")
		}
		c := l.src[l.pos]
		if c == quote {
			l.pos++
			break
		}
		if c != '\\' {
			b.WriteByte(c)
			l.pos++
			continue
		}

		l.pos++
		if l.pos >= len(l.src) {
			return errors.Unterminated(line, col, "string literal")
		}
		esc := l.src[l.pos]
		l.pos++
		switch esc {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'v':
			b.WriteByte('\v')
		case '0':
			b.WriteByte(0)
		case '\r':
			if l.pos < len(l.src) && l.src[l.pos] == '\n' {
				l.pos++
			}
			l.line++
			l.lineOff = l.pos
		case '\n':
			l.line++
			l.lineOff = l.pos
		case 'x':
			r, err := l.hexEscape(2)
			if err != nil {
				return err
			}
			b.WriteRune(r)
		case 'u':
			r, err := l.unicodeEscape()
			if err != nil {
				return err
			}
			b.WriteRune(r)
		default:
			b.WriteByte(esc)
		}
	}

	l.emit(Token{Value: b.String(), Raw: l.src[start:l.pos], Type: String, Line: line, Col: col})
	return nil
}

func (l *lexer) hexEscape(n int) (rune, error) {
	if l.pos+n > len(l.src) {
		return 0, errors.Syntax(l.line, l.col(), "invalid hexadecimal escape sequence")
	}
	v, err := strconv.ParseUint(l.src[l.pos:l.pos+n], 16, 32)
	if err != nil {
		return 0, errors.Syntax(l.line, l.col(), "invalid hexadecimal escape sequence")
	}
	l.pos += n
	return rune(v), nil
}

func (l *lexer) unicodeEscape() (rune, error) {
	if l.pos < len(l.src) && l.src[l.pos] == '{' {
		end := strings.IndexByte(l.src[l.pos:], '}')
		if end < 0 {
			return 0, errors.Syntax(l.line, l.col(), "invalid unicode escape sequence")
		}
		v, err := strconv.ParseUint(l.src[l.pos+1:l.pos+end], 16, 32)
		if err != nil || v > unicode.MaxRune {
			return 0, errors.Syntax(l.line, l.col(), "invalid unicode escape sequence")
		}
		l.pos += end + 1
		return rune(v), nil
	}
	return l.hexEscape(4)
}

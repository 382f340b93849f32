package parser

import (
	"github.com/wippyai/esmconv/ast"
	"github.com/wippyai/esmconv/errors"
	"github.com/wippyai/esmconv/js/internal/token"
)

type Parser struct {
	tokens     []token.Token
	pos        int
	sourceType ast.SourceType
	// noIn keeps the in operator from ending a for statement's head.
	noIn        bool
	inAsync     bool
	inGenerator bool
}

// New creates a parser over tokens, which must end with an EOF token.
func New(tokens []token.Token) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != token.EOF {
		tokens = append(tokens, token.Token{Type: token.EOF})
	}
	return &Parser{tokens: tokens}
}

func (p *Parser) Parse() (*ast.Program, error) {
	prog := &ast.Program{}
	for p.peek().Type != token.EOF {
		stmt, err := p.parseStatement(true)
		if err != nil {
			return nil, err
		}
		prog.Body = append(prog.Body, stmt)
	}
	prog.SourceType = p.sourceType
	return prog, nil
}

func (p *Parser) peek() token.Token {
	return p.tokens[p.pos]
}

func (p *Parser) peekAt(off int) token.Token {
	if p.pos+off < len(p.tokens) {
		return p.tokens[p.pos+off]
	}
	return p.tokens[len(p.tokens)-1]
}

func (p *Parser) next() token.Token {
	t := p.tokens[p.pos]
	if t.Type != token.EOF {
		p.pos++
	}
	return t
}

func (p *Parser) at(v string) bool {
	return p.peek().Is(v)
}

func (p *Parser) eat(v string) bool {
	if p.at(v) {
		p.next()
		return true
	}
	return false
}

func (p *Parser) expect(v string) (token.Token, error) {
	t := p.peek()
	if !t.Is(v) {
		return t, p.unexpected(t, "'"+v+"'")
	}
	return p.next(), nil
}

func (p *Parser) unexpected(t token.Token, expected string) error {
	if t.Type == token.EOF {
		b := errors.New(errors.PhaseParse, errors.KindUnexpectedToken).At(t.Line, t.Col)
		if expected != "" {
			return b.Detail("unexpected end of input, expected %s", expected).Build()
		}
		return b.Detail("unexpected end of input").Build()
	}
	return errors.UnexpectedToken(t.Line, t.Col, t.Raw, expected)
}

func (p *Parser) unsupported(t token.Token, what string) error {
	return errors.New(errors.PhaseParse, errors.KindUnsupported).
		At(t.Line, t.Col).Token(t.Raw).Detail("%s are not supported", what).Build()
}

// withIn enables the in operator until the returned func runs, as inside
// any bracketed construct.
func (p *Parser) withIn() func() {
	saved := p.noIn
	p.noIn = false
	return func() { p.noIn = saved }
}

// isKeyStart reports whether the token at off can begin a property key.
func (p *Parser) isKeyStart(off int) bool {
	t := p.peekAt(off)
	return t.Type == token.Ident || t.Type == token.String || t.Type == token.Number || t.Is("[")
}

// consumeSemicolon applies automatic semicolon insertion: an explicit ';',
// a closing brace, end of input, or a preceding line break all terminate
// the statement.
func (p *Parser) consumeSemicolon() error {
	if p.eat(";") {
		return nil
	}
	t := p.peek()
	if t.Is("}") || t.Type == token.EOF || t.NewlineBefore {
		return nil
	}
	return p.unexpected(t, "';'")
}

var reserved = map[string]bool{
	"break": true, "case": true, "catch": true, "class": true, "const": true,
	"continue": true, "debugger": true, "default": true, "delete": true,
	"do": true, "else": true, "export": true, "extends": true, "false": true,
	"finally": true, "for": true, "function": true, "if": true, "import": true,
	"in": true, "instanceof": true, "new": true, "null": true, "return": true,
	"super": true, "switch": true, "this": true, "throw": true, "true": true,
	"try": true, "typeof": true, "var": true, "void": true, "while": true,
	"with": true,
}

// IsReserved reports whether word cannot be used as a binding name.
func IsReserved(word string) bool {
	return reserved[word]
}

func (p *Parser) parseBindingIdent() (*ast.Identifier, error) {
	t := p.peek()
	if t.Type != token.Ident || reserved[t.Value] {
		return nil, p.unexpected(t, "identifier")
	}
	p.next()
	return &ast.Identifier{Name: t.Value}, nil
}

// parsePropertyKey parses an object or class member key and reports
// whether it was computed.
func (p *Parser) parsePropertyKey() (ast.Expression, bool, error) {
	t := p.peek()
	switch {
	case t.Type == token.Ident:
		p.next()
		return &ast.Identifier{Name: t.Value}, false, nil
	case t.Type == token.String:
		p.next()
		return &ast.StringLiteral{Value: t.Value, Raw: t.Raw}, false, nil
	case t.Type == token.Number:
		p.next()
		v, err := token.ParseNumber(t.Raw)
		if err != nil {
			return nil, false, errors.Syntax(t.Line, t.Col, "invalid numeric literal")
		}
		return &ast.NumericLiteral{Value: v, Raw: t.Raw}, false, nil
	case t.Is("["):
		p.next()
		restore := p.withIn()
		key, err := p.parseAssignment()
		restore()
		if err != nil {
			return nil, false, err
		}
		if _, err := p.expect("]"); err != nil {
			return nil, false, err
		}
		return key, true, nil
	}
	return nil, false, p.unexpected(t, "property name")
}

// parsePropertyName accepts any word, reserved or not, as in a.default.
func (p *Parser) parsePropertyName() (*ast.Identifier, error) {
	t := p.peek()
	if t.Type != token.Ident {
		return nil, p.unexpected(t, "property name")
	}
	p.next()
	return &ast.Identifier{Name: t.Value}, nil
}

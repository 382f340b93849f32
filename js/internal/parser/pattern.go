package parser

import (
	"github.com/wippyai/esmconv/ast"
	"github.com/wippyai/esmconv/js/internal/token"
)

// parseBindingTarget parses an identifier or a destructuring pattern.
func (p *Parser) parseBindingTarget() (ast.Pattern, error) {
	switch {
	case p.at("{"):
		return p.parseObjectPattern()
	case p.at("["):
		return p.parseArrayPattern()
	}
	id, err := p.parseBindingIdent()
	if err != nil {
		return nil, err
	}
	return id, nil
}

// parseBindingElement parses a binding target with an optional default.
func (p *Parser) parseBindingElement() (ast.Pattern, error) {
	target, err := p.parseBindingTarget()
	if err != nil {
		return nil, err
	}
	if !p.eat("=") {
		return target, nil
	}
	restore := p.withIn()
	def, err := p.parseAssignment()
	restore()
	if err != nil {
		return nil, err
	}
	return &ast.AssignmentPattern{Left: target, Right: def}, nil
}

func (p *Parser) parseRestElement() (*ast.RestElement, error) {
	p.next()
	target, err := p.parseBindingTarget()
	if err != nil {
		return nil, err
	}
	return &ast.RestElement{Argument: target}, nil
}

func (p *Parser) parseObjectPattern() (*ast.ObjectPattern, error) {
	p.next()
	pat := &ast.ObjectPattern{}
	for !p.at("}") {
		if p.at("...") {
			p.next()
			id, err := p.parseBindingIdent()
			if err != nil {
				return nil, err
			}
			pat.Properties = append(pat.Properties, &ast.RestElement{Argument: id})
			break
		}
		prop, err := p.parsePatternProperty()
		if err != nil {
			return nil, err
		}
		pat.Properties = append(pat.Properties, prop)
		if !p.eat(",") {
			break
		}
	}
	if _, err := p.expect("}"); err != nil {
		return nil, err
	}
	return pat, nil
}

func (p *Parser) parsePatternProperty() (*ast.Property, error) {
	t := p.peek()
	if t.Type == token.Ident && !reserved[t.Value] && !p.peekAt(1).Is(":") {
		p.next()
		prop := &ast.Property{Key: &ast.Identifier{Name: t.Value}, Shorthand: true}
		var value ast.Pattern = &ast.Identifier{Name: t.Value}
		if p.eat("=") {
			restore := p.withIn()
			def, err := p.parseAssignment()
			restore()
			if err != nil {
				return nil, err
			}
			value = &ast.AssignmentPattern{Left: value, Right: def}
		}
		prop.Value = value
		return prop, nil
	}

	key, computed, err := p.parsePropertyKey()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(":"); err != nil {
		return nil, err
	}
	value, err := p.parseBindingElement()
	if err != nil {
		return nil, err
	}
	return &ast.Property{Key: key, Value: value, Computed: computed}, nil
}

func (p *Parser) parseArrayPattern() (*ast.ArrayPattern, error) {
	p.next()
	pat := &ast.ArrayPattern{}
	for !p.at("]") {
		if p.eat(",") {
			pat.Elements = append(pat.Elements, nil)
			continue
		}
		if p.at("...") {
			rest, err := p.parseRestElement()
			if err != nil {
				return nil, err
			}
			pat.Elements = append(pat.Elements, rest)
			break
		}
		el, err := p.parseBindingElement()
		if err != nil {
			return nil, err
		}
		pat.Elements = append(pat.Elements, el)
		if !p.eat(",") {
			break
		}
	}
	if _, err := p.expect("]"); err != nil {
		return nil, err
	}
	return pat, nil
}

// parseParams parses a parenthesized parameter list.
func (p *Parser) parseParams() ([]ast.Pattern, error) {
	if _, err := p.expect("("); err != nil {
		return nil, err
	}
	defer p.withIn()()
	var params []ast.Pattern
	for !p.at(")") {
		if p.at("...") {
			rest, err := p.parseRestElement()
			if err != nil {
				return nil, err
			}
			params = append(params, rest)
			break
		}
		param, err := p.parseBindingElement()
		if err != nil {
			return nil, err
		}
		params = append(params, param)
		if !p.eat(",") {
			break
		}
	}
	if _, err := p.expect(")"); err != nil {
		return nil, err
	}
	return params, nil
}

// parseFunctionBody parses a block in a fresh function context.
func (p *Parser) parseFunctionBody(async, generator bool) (*ast.BlockStatement, error) {
	savedAsync, savedGen, savedIn := p.inAsync, p.inGenerator, p.noIn
	p.inAsync, p.inGenerator, p.noIn = async, generator, false
	defer func() { p.inAsync, p.inGenerator, p.noIn = savedAsync, savedGen, savedIn }()
	return p.parseBlock()
}

func (p *Parser) parseFunctionRest(async, generator bool) ([]ast.Pattern, *ast.BlockStatement, error) {
	params, err := p.parseParams()
	if err != nil {
		return nil, nil, err
	}
	body, err := p.parseFunctionBody(async, generator)
	if err != nil {
		return nil, nil, err
	}
	return params, body, nil
}

// arrowAhead reports whether the cursor starts an arrow function: an
// optional async, then a parameter name or a parenthesized list, then =>.
func (p *Parser) arrowAhead() bool {
	off := 0
	if nt := p.peekAt(1); p.at("async") && !nt.NewlineBefore && (nt.Type == token.Ident || nt.Is("(")) {
		off = 1
	}
	t := p.peekAt(off)
	switch {
	case t.Type == token.Ident && !reserved[t.Value]:
		arrow := p.peekAt(off + 1)
		return arrow.Is("=>") && !arrow.NewlineBefore
	case t.Is("("):
		end := p.matchingParen(off)
		if end < 0 {
			return false
		}
		arrow := p.peekAt(end + 1)
		return arrow.Is("=>") && !arrow.NewlineBefore
	}
	return false
}

// matchingParen returns the offset of the parenthesis closing the one at
// off, or -1.
func (p *Parser) matchingParen(off int) int {
	depth := 0
	for i := p.pos + off; i < len(p.tokens); i++ {
		t := p.tokens[i]
		if t.Type != token.Punct {
			continue
		}
		switch t.Value {
		case "(", "[", "{":
			depth++
		case ")", "]", "}":
			depth--
			if depth == 0 {
				if t.Value == ")" {
					return i - p.pos
				}
				return -1
			}
		}
	}
	return -1
}

func (p *Parser) parseArrow() (*ast.ArrowFunctionExpression, error) {
	fn := &ast.ArrowFunctionExpression{}
	if p.at("async") && !p.peekAt(1).Is("=>") {
		p.next()
		fn.Async = true
	}
	if p.at("(") {
		params, err := p.parseParams()
		if err != nil {
			return nil, err
		}
		fn.Params = params
	} else {
		id, err := p.parseBindingIdent()
		if err != nil {
			return nil, err
		}
		fn.Params = []ast.Pattern{id}
	}
	if _, err := p.expect("=>"); err != nil {
		return nil, err
	}

	if p.at("{") {
		body, err := p.parseFunctionBody(fn.Async, false)
		if err != nil {
			return nil, err
		}
		fn.Body = body
		return fn, nil
	}
	savedAsync, savedGen := p.inAsync, p.inGenerator
	p.inAsync, p.inGenerator = fn.Async, false
	body, err := p.parseAssignment()
	p.inAsync, p.inGenerator = savedAsync, savedGen
	if err != nil {
		return nil, err
	}
	fn.Body = body
	return fn, nil
}

package parser

import (
	"github.com/wippyai/esmconv/ast"
	"github.com/wippyai/esmconv/errors"
	"github.com/wippyai/esmconv/js/internal/token"
)

func (p *Parser) parseStatement(topLevel bool) (ast.Statement, error) {
	t := p.peek()

	if t.Type == token.Punct {
		switch t.Value {
		case "{":
			return p.parseBlock()
		case ";":
			p.next()
			return &ast.EmptyStatement{}, nil
		}
	}

	if t.Type == token.Ident {
		switch t.Value {
		case "var", "const":
			return p.parseVariableDeclaration()
		case "let":
			if p.letDeclaration() {
				return p.parseVariableDeclaration()
			}
		case "async":
			if nt := p.peekAt(1); nt.Is("function") && !nt.NewlineBefore {
				return p.parseFunctionDeclaration(false)
			}
		case "function":
			return p.parseFunctionDeclaration(false)
		case "class":
			return p.parseClassDeclaration(false)
		case "return":
			return p.parseReturn()
		case "if":
			return p.parseIf()
		case "for":
			return p.parseFor()
		case "while":
			return p.parseWhile()
		case "do":
			return p.parseDoWhile()
		case "try":
			return p.parseTry()
		case "throw":
			return p.parseThrow()
		case "break", "continue":
			return p.parseJump()
		case "switch":
			return p.parseSwitch()
		case "debugger":
			p.next()
			if err := p.consumeSemicolon(); err != nil {
				return nil, err
			}
			return &ast.DebuggerStatement{}, nil
		case "export":
			if !topLevel {
				return nil, errors.New(errors.PhaseParse, errors.KindSyntax).
					At(t.Line, t.Col).Token(t.Raw).Detail("export is only valid at the top level").Build()
			}
			return p.parseExport()
		case "import":
			return nil, p.unsupported(t, "import declarations")
		case "with":
			return nil, p.unsupported(t, "with statements")
		}
		if !reserved[t.Value] && p.peekAt(1).Is(":") {
			p.next()
			p.next()
			body, err := p.parseStatement(false)
			if err != nil {
				return nil, err
			}
			return &ast.LabeledStatement{Label: t.Value, Body: body}, nil
		}
	}

	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.consumeSemicolon(); err != nil {
		return nil, err
	}
	return &ast.ExpressionStatement{Expression: expr}, nil
}

// letDeclaration tells a let declaration from let used as an identifier.
func (p *Parser) letDeclaration() bool {
	nt := p.peekAt(1)
	return p.at("let") && ((nt.Type == token.Ident && !reserved[nt.Value]) || nt.Is("[") || nt.Is("{"))
}

func (p *Parser) parseBlock() (*ast.BlockStatement, error) {
	if _, err := p.expect("{"); err != nil {
		return nil, err
	}
	block := &ast.BlockStatement{}
	for !p.at("}") {
		if p.peek().Type == token.EOF {
			return nil, p.unexpected(p.peek(), "'}'")
		}
		stmt, err := p.parseStatement(false)
		if err != nil {
			return nil, err
		}
		block.Body = append(block.Body, stmt)
	}
	p.next()
	return block, nil
}

func (p *Parser) parseVariableDeclaration() (*ast.VariableDeclaration, error) {
	decl, err := p.parseDeclarators(false)
	if err != nil {
		return nil, err
	}
	if err := p.consumeSemicolon(); err != nil {
		return nil, err
	}
	return decl, nil
}

// parseDeclarators parses a declaration keyword and its declarator list.
// In a for head initializers stay optional until the loop kind is known.
func (p *Parser) parseDeclarators(inFor bool) (*ast.VariableDeclaration, error) {
	kw := p.next()
	decl := &ast.VariableDeclaration{}
	switch kw.Value {
	case "let":
		decl.DeclKind = ast.DeclLet
	case "const":
		decl.DeclKind = ast.DeclConst
	default:
		decl.DeclKind = ast.DeclVar
	}

	for {
		id, err := p.parseBindingTarget()
		if err != nil {
			return nil, err
		}
		d := &ast.VariableDeclarator{ID: id}
		if p.eat("=") {
			init, err := p.parseAssignment()
			if err != nil {
				return nil, err
			}
			d.Init = init
		} else if !inFor {
			if err := p.checkInitializer(decl, d); err != nil {
				return nil, err
			}
		}
		decl.Declarations = append(decl.Declarations, d)
		if !p.eat(",") {
			break
		}
	}
	return decl, nil
}

// checkInitializer rejects a const or destructuring declarator that has no
// initializer.
func (p *Parser) checkInitializer(decl *ast.VariableDeclaration, d *ast.VariableDeclarator) error {
	if d.Init != nil {
		return nil
	}
	t := p.peek()
	if decl.DeclKind == ast.DeclConst {
		return errors.Syntax(t.Line, t.Col, "missing initializer in const declaration")
	}
	if _, ok := d.ID.(*ast.Identifier); !ok {
		return errors.Syntax(t.Line, t.Col, "missing initializer in destructuring declaration")
	}
	return nil
}

// parseFunctionDeclaration parses `[async] function [*] name(params) { ... }`.
// The name is optional only for `export default function () {}`.
func (p *Parser) parseFunctionDeclaration(anonymous bool) (*ast.FunctionDeclaration, error) {
	decl := &ast.FunctionDeclaration{}
	if p.eat("async") {
		decl.Async = true
	}
	p.next()
	if p.eat("*") {
		decl.Generator = true
	}
	if !anonymous || !p.at("(") {
		id, err := p.parseBindingIdent()
		if err != nil {
			return nil, err
		}
		decl.ID = id
	}
	params, body, err := p.parseFunctionRest(decl.Async, decl.Generator)
	if err != nil {
		return nil, err
	}
	decl.Params, decl.Body = params, body
	return decl, nil
}

func (p *Parser) parseClassDeclaration(anonymous bool) (*ast.ClassDeclaration, error) {
	p.next()
	decl := &ast.ClassDeclaration{}
	if !anonymous || (!p.at("{") && !p.at("extends")) {
		id, err := p.parseBindingIdent()
		if err != nil {
			return nil, err
		}
		decl.ID = id
	}
	super, body, err := p.parseClassTail()
	if err != nil {
		return nil, err
	}
	decl.SuperClass, decl.Body = super, body
	return decl, nil
}

// parseClassTail parses the optional heritage and the class body.
func (p *Parser) parseClassTail() (ast.Expression, []*ast.ClassMethod, error) {
	var super ast.Expression
	if p.eat("extends") {
		expr, err := p.parseLeftHandSide()
		if err != nil {
			return nil, nil, err
		}
		super = expr
	}
	if _, err := p.expect("{"); err != nil {
		return nil, nil, err
	}
	var body []*ast.ClassMethod
	for !p.at("}") {
		if p.eat(";") {
			continue
		}
		m, err := p.parseClassMethod()
		if err != nil {
			return nil, nil, err
		}
		body = append(body, m)
	}
	p.next()
	return super, body, nil
}

func (p *Parser) parseClassMethod() (*ast.ClassMethod, error) {
	m := &ast.ClassMethod{}
	if p.at("static") && p.peekAt(1).Is("{") {
		return nil, p.unsupported(p.peek(), "static blocks")
	}
	if p.at("static") && (p.isKeyStart(1) || p.peekAt(1).Is("*")) {
		p.next()
		m.Static = true
	}
	if nt := p.peekAt(1); p.at("async") && !nt.NewlineBefore && (p.isKeyStart(1) || nt.Is("*")) {
		p.next()
		m.Async = true
	}
	if p.eat("*") {
		m.Generator = true
	}
	if !m.Async && !m.Generator && (p.at("get") || p.at("set")) && p.isKeyStart(1) {
		m.MethodKind = ast.MethodGet
		if p.next().Value == "set" {
			m.MethodKind = ast.MethodSet
		}
	}
	key, computed, err := p.parsePropertyKey()
	if err != nil {
		return nil, err
	}
	if !p.at("(") {
		return nil, p.unsupported(p.peek(), "class fields")
	}
	m.Key, m.Computed = key, computed
	params, body, err := p.parseFunctionRest(m.Async, m.Generator)
	if err != nil {
		return nil, err
	}
	m.Params, m.Body = params, body
	return m, nil
}

func (p *Parser) parseReturn() (*ast.ReturnStatement, error) {
	p.next()
	ret := &ast.ReturnStatement{}
	t := p.peek()
	if !t.Is(";") && !t.Is("}") && t.Type != token.EOF && !t.NewlineBefore {
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		ret.Argument = arg
	}
	if err := p.consumeSemicolon(); err != nil {
		return nil, err
	}
	return ret, nil
}

// parseParenExpression parses `( expression )`.
func (p *Parser) parseParenExpression() (ast.Expression, error) {
	if _, err := p.expect("("); err != nil {
		return nil, err
	}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(")"); err != nil {
		return nil, err
	}
	return expr, nil
}

func (p *Parser) parseIf() (*ast.IfStatement, error) {
	p.next()
	test, err := p.parseParenExpression()
	if err != nil {
		return nil, err
	}
	cons, err := p.parseStatement(false)
	if err != nil {
		return nil, err
	}
	stmt := &ast.IfStatement{Test: test, Consequent: cons}
	if p.eat("else") {
		alt, err := p.parseStatement(false)
		if err != nil {
			return nil, err
		}
		stmt.Alternate = alt
	}
	return stmt, nil
}

func (p *Parser) parseFor() (ast.Statement, error) {
	p.next()
	if p.at("await") {
		return nil, p.unsupported(p.peek(), "for await loops")
	}
	if _, err := p.expect("("); err != nil {
		return nil, err
	}

	var init ast.Node
	if !p.at(";") {
		var err error
		p.noIn = true
		if p.at("var") || p.at("const") || p.letDeclaration() {
			init, err = p.parseDeclarators(true)
		} else {
			init, err = p.parseExpression()
		}
		p.noIn = false
		if err != nil {
			return nil, err
		}
		if p.at("in") || p.at("of") {
			return p.parseForIn(init)
		}
		if decl, ok := init.(*ast.VariableDeclaration); ok {
			for _, d := range decl.Declarations {
				if err := p.checkInitializer(decl, d); err != nil {
					return nil, err
				}
			}
		}
	}

	stmt := &ast.ForStatement{Init: init}
	if _, err := p.expect(";"); err != nil {
		return nil, err
	}
	if !p.at(";") {
		test, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		stmt.Test = test
	}
	if _, err := p.expect(";"); err != nil {
		return nil, err
	}
	if !p.at(")") {
		update, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		stmt.Update = update
	}
	if _, err := p.expect(")"); err != nil {
		return nil, err
	}
	body, err := p.parseStatement(false)
	if err != nil {
		return nil, err
	}
	stmt.Body = body
	return stmt, nil
}

func (p *Parser) parseForIn(left ast.Node) (*ast.ForInStatement, error) {
	kw := p.next()
	stmt := &ast.ForInStatement{Left: left, Of: kw.Value == "of"}
	switch l := left.(type) {
	case *ast.VariableDeclaration:
		if len(l.Declarations) != 1 || l.Declarations[0].Init != nil {
			return nil, errors.Syntax(kw.Line, kw.Col, "invalid left-hand side in for-"+kw.Value+" loop")
		}
	case *ast.Identifier, *ast.MemberExpression:
	default:
		return nil, errors.Syntax(kw.Line, kw.Col, "invalid left-hand side in for-"+kw.Value+" loop")
	}

	var right ast.Expression
	var err error
	if stmt.Of {
		right, err = p.parseAssignment()
	} else {
		right, err = p.parseExpression()
	}
	if err != nil {
		return nil, err
	}
	stmt.Right = right
	if _, err := p.expect(")"); err != nil {
		return nil, err
	}
	body, err := p.parseStatement(false)
	if err != nil {
		return nil, err
	}
	stmt.Body = body
	return stmt, nil
}

func (p *Parser) parseWhile() (*ast.WhileStatement, error) {
	p.next()
	test, err := p.parseParenExpression()
	if err != nil {
		return nil, err
	}
	body, err := p.parseStatement(false)
	if err != nil {
		return nil, err
	}
	return &ast.WhileStatement{Test: test, Body: body}, nil
}

func (p *Parser) parseDoWhile() (*ast.DoWhileStatement, error) {
	p.next()
	body, err := p.parseStatement(false)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect("while"); err != nil {
		return nil, err
	}
	test, err := p.parseParenExpression()
	if err != nil {
		return nil, err
	}
	// The semicolon after do-while is always optional.
	p.eat(";")
	return &ast.DoWhileStatement{Body: body, Test: test}, nil
}

func (p *Parser) parseTry() (*ast.TryStatement, error) {
	p.next()
	block, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	stmt := &ast.TryStatement{Block: block}
	if p.eat("catch") {
		h := &ast.CatchClause{}
		if p.eat("(") {
			param, err := p.parseBindingTarget()
			if err != nil {
				return nil, err
			}
			h.Param = param
			if _, err := p.expect(")"); err != nil {
				return nil, err
			}
		}
		body, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		h.Body = body
		stmt.Handler = h
	}
	if p.eat("finally") {
		fin, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		stmt.Finalizer = fin
	}
	if stmt.Handler == nil && stmt.Finalizer == nil {
		return nil, p.unexpected(p.peek(), "'catch' or 'finally'")
	}
	return stmt, nil
}

func (p *Parser) parseThrow() (*ast.ThrowStatement, error) {
	p.next()
	if t := p.peek(); t.NewlineBefore {
		return nil, errors.Syntax(t.Line, t.Col, "illegal newline after throw")
	}
	arg, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.consumeSemicolon(); err != nil {
		return nil, err
	}
	return &ast.ThrowStatement{Argument: arg}, nil
}

// parseJump parses break and continue with an optional same-line label.
func (p *Parser) parseJump() (ast.Statement, error) {
	kw := p.next()
	var label string
	if t := p.peek(); t.Type == token.Ident && !reserved[t.Value] && !t.NewlineBefore {
		p.next()
		label = t.Value
	}
	if err := p.consumeSemicolon(); err != nil {
		return nil, err
	}
	if kw.Value == "break" {
		return &ast.BreakStatement{Label: label}, nil
	}
	return &ast.ContinueStatement{Label: label}, nil
}

func (p *Parser) parseSwitch() (*ast.SwitchStatement, error) {
	p.next()
	disc, err := p.parseParenExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect("{"); err != nil {
		return nil, err
	}
	stmt := &ast.SwitchStatement{Discriminant: disc}
	for !p.at("}") {
		c := &ast.SwitchCase{}
		switch t := p.peek(); {
		case p.eat("case"):
			test, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			c.Test = test
		case p.eat("default"):
		default:
			return nil, p.unexpected(t, "'case' or 'default'")
		}
		if _, err := p.expect(":"); err != nil {
			return nil, err
		}
		for !p.at("case") && !p.at("default") && !p.at("}") {
			if p.peek().Type == token.EOF {
				return nil, p.unexpected(p.peek(), "'}'")
			}
			s, err := p.parseStatement(false)
			if err != nil {
				return nil, err
			}
			c.Consequent = append(c.Consequent, s)
		}
		stmt.Cases = append(stmt.Cases, c)
	}
	p.next()
	return stmt, nil
}

func (p *Parser) asyncFunctionAhead() bool {
	nt := p.peekAt(1)
	return p.at("async") && nt.Is("function") && !nt.NewlineBefore
}

func (p *Parser) parseExport() (ast.Statement, error) {
	p.next()
	p.sourceType = ast.SourceModule
	t := p.peek()

	if p.eat("default") {
		switch {
		case p.at("function"), p.asyncFunctionAhead():
			decl, err := p.parseFunctionDeclaration(true)
			if err != nil {
				return nil, err
			}
			return &ast.ExportDefaultDeclaration{Declaration: decl}, nil
		case p.at("class"):
			decl, err := p.parseClassDeclaration(true)
			if err != nil {
				return nil, err
			}
			return &ast.ExportDefaultDeclaration{Declaration: decl}, nil
		}
		expr, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		if err := p.consumeSemicolon(); err != nil {
			return nil, err
		}
		return &ast.ExportDefaultDeclaration{Declaration: expr}, nil
	}

	var decl ast.Statement
	var err error
	switch {
	case t.Is("var"), t.Is("let"), t.Is("const"):
		decl, err = p.parseVariableDeclaration()
	case t.Is("function"), p.asyncFunctionAhead():
		decl, err = p.parseFunctionDeclaration(false)
	case t.Is("class"):
		decl, err = p.parseClassDeclaration(false)
	case t.Is("{"), t.Is("*"):
		return nil, p.unsupported(t, "export lists")
	default:
		return nil, p.unexpected(t, "declaration")
	}
	if err != nil {
		return nil, err
	}
	return &ast.ExportNamedDeclaration{Declaration: decl}, nil
}

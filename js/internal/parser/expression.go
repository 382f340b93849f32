package parser

import (
	"strings"

	"github.com/wippyai/esmconv/ast"
	"github.com/wippyai/esmconv/errors"
	"github.com/wippyai/esmconv/js/internal/token"
)

var assignOps = map[string]bool{
	"=": true, "+=": true, "-=": true, "*=": true, "/=": true, "%=": true,
	"**=": true, "<<=": true, ">>=": true, ">>>=": true, "&=": true,
	"|=": true, "^=": true, "&&=": true, "||=": true, "??=": true,
}

// BinaryPrecedence returns the binding power of a binary or logical
// operator, or 0 if op is not one.
func BinaryPrecedence(op string) int {
	switch op {
	case "??":
		return 1
	case "||":
		return 2
	case "&&":
		return 3
	case "|":
		return 4
	case "^":
		return 5
	case "&":
		return 6
	case "==", "!=", "===", "!==":
		return 7
	case "<", ">", "<=", ">=", "instanceof", "in":
		return 8
	case "<<", ">>", ">>>":
		return 9
	case "+", "-":
		return 10
	case "*", "/", "%":
		return 11
	case "**":
		return 12
	}
	return 0
}

// IsLogical reports whether op builds a LogicalExpression.
func IsLogical(op string) bool {
	return op == "&&" || op == "||" || op == "??"
}

func (p *Parser) parseExpression() (ast.Expression, error) {
	expr, err := p.parseAssignment()
	if err != nil {
		return nil, err
	}
	if !p.at(",") {
		return expr, nil
	}
	seq := &ast.SequenceExpression{Expressions: []ast.Expression{expr}}
	for p.eat(",") {
		e, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		seq.Expressions = append(seq.Expressions, e)
	}
	return seq, nil
}

func (p *Parser) parseAssignment() (ast.Expression, error) {
	if p.inGenerator && p.at("yield") {
		return p.parseYield()
	}
	if p.arrowAhead() {
		arrow, err := p.parseArrow()
		if err != nil {
			return nil, err
		}
		return arrow, nil
	}

	start := p.peek()
	left, err := p.parseConditional()
	if err != nil {
		return nil, err
	}

	t := p.peek()
	if t.Type != token.Punct || !assignOps[t.Value] {
		return left, nil
	}
	switch left.(type) {
	case *ast.Identifier, *ast.MemberExpression:
	case *ast.ObjectExpression, *ast.ArrayExpression:
		return nil, p.unsupported(start, "destructuring assignments")
	default:
		return nil, errors.Syntax(start.Line, start.Col, "invalid assignment target")
	}
	p.next()
	right, err := p.parseAssignment()
	if err != nil {
		return nil, err
	}
	return &ast.AssignmentExpression{Operator: t.Value, Left: left, Right: right}, nil
}

func (p *Parser) parseYield() (*ast.YieldExpression, error) {
	p.next()
	y := &ast.YieldExpression{}
	t := p.peek()
	if t.Is("*") && !t.NewlineBefore {
		p.next()
		y.Delegate = true
	} else if t.NewlineBefore || !startsOperand(t) {
		return y, nil
	}
	arg, err := p.parseAssignment()
	if err != nil {
		return nil, err
	}
	y.Argument = arg
	return y, nil
}

// startsOperand reports whether t can begin the argument of a yield.
func startsOperand(t token.Token) bool {
	switch t.Type {
	case token.EOF, token.TemplateMiddle, token.TemplateTail:
		return false
	case token.Punct:
		switch t.Value {
		case ")", "]", "}", ",", ";", ":", "?", "=>":
			return false
		}
	case token.Ident:
		return t.Value != "in" && t.Value != "of" && t.Value != "instanceof"
	}
	return true
}

func (p *Parser) parseConditional() (ast.Expression, error) {
	test, err := p.parseBinary(1)
	if err != nil {
		return nil, err
	}
	if !p.eat("?") {
		return test, nil
	}
	restore := p.withIn()
	cons, err := p.parseAssignment()
	restore()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(":"); err != nil {
		return nil, err
	}
	alt, err := p.parseAssignment()
	if err != nil {
		return nil, err
	}
	return &ast.ConditionalExpression{Test: test, Consequent: cons, Alternate: alt}, nil
}

func (p *Parser) binaryOp() (string, int) {
	t := p.peek()
	if t.Type != token.Punct && !(t.Type == token.Ident && (t.Value == "in" || t.Value == "instanceof")) {
		return "", 0
	}
	if p.noIn && t.Value == "in" {
		return "", 0
	}
	return t.Value, BinaryPrecedence(t.Value)
}

func (p *Parser) parseBinary(minPrec int) (ast.Expression, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		op, prec := p.binaryOp()
		if prec == 0 || prec < minPrec {
			return left, nil
		}
		p.next()
		nextMin := prec + 1
		if op == "**" {
			nextMin = prec
		}
		right, err := p.parseBinary(nextMin)
		if err != nil {
			return nil, err
		}
		if IsLogical(op) {
			left = &ast.LogicalExpression{Operator: op, Left: left, Right: right}
		} else {
			left = &ast.BinaryExpression{Operator: op, Left: left, Right: right}
		}
	}
}

func (p *Parser) parseUnary() (ast.Expression, error) {
	t := p.peek()
	switch {
	case t.Type == token.Punct && (t.Value == "!" || t.Value == "-" || t.Value == "+" || t.Value == "~"),
		t.Type == token.Ident && (t.Value == "typeof" || t.Value == "void" || t.Value == "delete"):
		p.next()
		arg, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpression{Operator: t.Value, Argument: arg}, nil
	case t.Is("await") && p.inAsync:
		p.next()
		arg, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.AwaitExpression{Argument: arg}, nil
	case t.Is("++"), t.Is("--"):
		p.next()
		arg, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		if !isSimpleTarget(arg) {
			return nil, errors.Syntax(t.Line, t.Col, "invalid update target")
		}
		return &ast.UpdateExpression{Operator: t.Value, Argument: arg, Prefix: true}, nil
	}

	expr, err := p.parseLeftHandSide()
	if err != nil {
		return nil, err
	}
	if nt := p.peek(); (nt.Is("++") || nt.Is("--")) && !nt.NewlineBefore {
		if !isSimpleTarget(expr) {
			return nil, errors.Syntax(nt.Line, nt.Col, "invalid update target")
		}
		p.next()
		return &ast.UpdateExpression{Operator: nt.Value, Argument: expr}, nil
	}
	return expr, nil
}

func isSimpleTarget(e ast.Expression) bool {
	switch e := e.(type) {
	case *ast.Identifier:
		return true
	case *ast.MemberExpression:
		return !e.Optional
	}
	return false
}

// parseLeftHandSide parses member access, calls and new expressions.
func (p *Parser) parseLeftHandSide() (ast.Expression, error) {
	var expr ast.Expression
	var err error
	if p.at("new") {
		expr, err = p.parseNew()
	} else {
		expr, err = p.parsePrimary()
	}
	if err != nil {
		return nil, err
	}
	return p.parseSuffixes(expr, true)
}

func (p *Parser) parseNew() (ast.Expression, error) {
	p.next()
	if p.at(".") {
		return nil, p.unsupported(p.peek(), "meta properties")
	}
	var callee ast.Expression
	var err error
	if p.at("new") {
		callee, err = p.parseNew()
	} else {
		callee, err = p.parsePrimary()
	}
	if err != nil {
		return nil, err
	}
	callee, err = p.parseSuffixes(callee, false)
	if err != nil {
		return nil, err
	}
	ne := &ast.NewExpression{Callee: callee}
	if p.at("(") {
		args, err := p.parseArguments()
		if err != nil {
			return nil, err
		}
		ne.Arguments = args
	}
	return ne, nil
}

func (p *Parser) parseSuffixes(expr ast.Expression, allowCall bool) (ast.Expression, error) {
	for {
		t := p.peek()
		switch {
		case t.Is("."):
			p.next()
			prop, err := p.parsePropertyName()
			if err != nil {
				return nil, err
			}
			expr = &ast.MemberExpression{Object: expr, Property: prop}
		case t.Is("["):
			prop, err := p.parseComputedMember()
			if err != nil {
				return nil, err
			}
			expr = &ast.MemberExpression{Object: expr, Property: prop, Computed: true}
		case t.Is("(") && allowCall:
			args, err := p.parseArguments()
			if err != nil {
				return nil, err
			}
			expr = &ast.CallExpression{Callee: expr, Arguments: args}
		case t.Is("?."):
			if !allowCall {
				return nil, p.unexpected(t, "")
			}
			p.next()
			switch {
			case p.at("("):
				args, err := p.parseArguments()
				if err != nil {
					return nil, err
				}
				expr = &ast.CallExpression{Callee: expr, Arguments: args, Optional: true}
			case p.at("["):
				prop, err := p.parseComputedMember()
				if err != nil {
					return nil, err
				}
				expr = &ast.MemberExpression{Object: expr, Property: prop, Computed: true, Optional: true}
			default:
				prop, err := p.parsePropertyName()
				if err != nil {
					return nil, err
				}
				expr = &ast.MemberExpression{Object: expr, Property: prop, Optional: true}
			}
		case t.Type == token.Template || t.Type == token.TemplateHead:
			quasi, err := p.parseTemplate()
			if err != nil {
				return nil, err
			}
			expr = &ast.TaggedTemplateExpression{Tag: expr, Quasi: quasi}
		default:
			return expr, nil
		}
	}
}

func (p *Parser) parseComputedMember() (ast.Expression, error) {
	p.next()
	defer p.withIn()()
	prop, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect("]"); err != nil {
		return nil, err
	}
	return prop, nil
}

func (p *Parser) parseArguments() ([]ast.Expression, error) {
	p.next()
	defer p.withIn()()
	var args []ast.Expression
	for !p.at(")") {
		arg, err := p.parseElement()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if !p.eat(",") {
			break
		}
	}
	if _, err := p.expect(")"); err != nil {
		return nil, err
	}
	return args, nil
}

// parseElement parses an argument or array element, which may be spread.
func (p *Parser) parseElement() (ast.Expression, error) {
	if !p.eat("...") {
		return p.parseAssignment()
	}
	arg, err := p.parseAssignment()
	if err != nil {
		return nil, err
	}
	return &ast.SpreadElement{Argument: arg}, nil
}

func (p *Parser) parseTemplate() (*ast.TemplateLiteral, error) {
	t := p.next()
	tpl := &ast.TemplateLiteral{Quasis: []string{t.Value}}
	if t.Type == token.Template {
		return tpl, nil
	}
	defer p.withIn()()
	for {
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		tpl.Expressions = append(tpl.Expressions, expr)
		part := p.peek()
		switch part.Type {
		case token.TemplateMiddle:
			p.next()
			tpl.Quasis = append(tpl.Quasis, part.Value)
		case token.TemplateTail:
			p.next()
			tpl.Quasis = append(tpl.Quasis, part.Value)
			return tpl, nil
		default:
			return nil, p.unexpected(part, "'}'")
		}
	}
}

func (p *Parser) parsePrimary() (ast.Expression, error) {
	t := p.peek()
	switch t.Type {
	case token.Number:
		p.next()
		v, err := token.ParseNumber(t.Raw)
		if err != nil {
			return nil, errors.Syntax(t.Line, t.Col, "invalid numeric literal")
		}
		return &ast.NumericLiteral{Value: v, Raw: t.Raw}, nil

	case token.String:
		p.next()
		return &ast.StringLiteral{Value: t.Value, Raw: t.Raw}, nil

	case token.Regex:
		p.next()
		end := strings.LastIndexByte(t.Raw, '/')
		return &ast.RegExpLiteral{Pattern: t.Raw[1:end], Flags: t.Raw[end+1:]}, nil

	case token.Template, token.TemplateHead:
		return p.parseTemplate()

	case token.Ident:
		switch t.Value {
		case "function":
			return p.parseFunctionExpression()
		case "async":
			if p.asyncFunctionAhead() {
				return p.parseFunctionExpression()
			}
		case "class":
			return p.parseClassExpression()
		case "this":
			p.next()
			return &ast.ThisExpression{}, nil
		case "super":
			p.next()
			return &ast.Super{}, nil
		case "true", "false":
			p.next()
			return &ast.BooleanLiteral{Value: t.Value == "true"}, nil
		case "null":
			p.next()
			return &ast.NullLiteral{}, nil
		case "import":
			return nil, p.unsupported(t, "import expressions")
		}
		if reserved[t.Value] {
			return nil, p.unexpected(t, "expression")
		}
		p.next()
		return &ast.Identifier{Name: t.Value}, nil

	case token.Punct:
		switch t.Value {
		case "(":
			p.next()
			restore := p.withIn()
			expr, err := p.parseExpression()
			restore()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(")"); err != nil {
				return nil, err
			}
			return expr, nil
		case "[":
			return p.parseArray()
		case "{":
			return p.parseObject()
		}
	}

	return nil, p.unexpected(t, "expression")
}

func (p *Parser) parseFunctionExpression() (*ast.FunctionExpression, error) {
	fn := &ast.FunctionExpression{}
	if p.eat("async") {
		fn.Async = true
	}
	p.next()
	if p.eat("*") {
		fn.Generator = true
	}
	if !p.at("(") {
		id, err := p.parseBindingIdent()
		if err != nil {
			return nil, err
		}
		fn.ID = id
	}
	params, body, err := p.parseFunctionRest(fn.Async, fn.Generator)
	if err != nil {
		return nil, err
	}
	fn.Params, fn.Body = params, body
	return fn, nil
}

func (p *Parser) parseClassExpression() (*ast.ClassExpression, error) {
	p.next()
	class := &ast.ClassExpression{}
	if !p.at("{") && !p.at("extends") {
		id, err := p.parseBindingIdent()
		if err != nil {
			return nil, err
		}
		class.ID = id
	}
	super, body, err := p.parseClassTail()
	if err != nil {
		return nil, err
	}
	class.SuperClass, class.Body = super, body
	return class, nil
}

func (p *Parser) parseArray() (*ast.ArrayExpression, error) {
	p.next()
	defer p.withIn()()
	arr := &ast.ArrayExpression{}
	for !p.at("]") {
		if p.at(",") {
			p.next()
			arr.Elements = append(arr.Elements, nil)
			continue
		}
		el, err := p.parseElement()
		if err != nil {
			return nil, err
		}
		arr.Elements = append(arr.Elements, el)
		if !p.eat(",") {
			break
		}
	}
	if _, err := p.expect("]"); err != nil {
		return nil, err
	}
	return arr, nil
}

func (p *Parser) parseObject() (*ast.ObjectExpression, error) {
	p.next()
	defer p.withIn()()
	obj := &ast.ObjectExpression{}
	for !p.at("}") {
		m, err := p.parseObjectMember()
		if err != nil {
			return nil, err
		}
		obj.Properties = append(obj.Properties, m)
		if !p.eat(",") {
			break
		}
	}
	if _, err := p.expect("}"); err != nil {
		return nil, err
	}
	return obj, nil
}

func (p *Parser) parseObjectMember() (ast.ObjectMember, error) {
	if p.eat("...") {
		arg, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		return &ast.SpreadElement{Argument: arg}, nil
	}

	prop := &ast.Property{}
	var async, generator bool
	if nt := p.peekAt(1); p.at("async") && !nt.NewlineBefore && (p.isKeyStart(1) || nt.Is("*")) {
		p.next()
		async = true
	}
	if p.eat("*") {
		generator = true
	}
	if !async && !generator && (p.at("get") || p.at("set")) && p.isKeyStart(1) {
		prop.MethodKind = ast.MethodGet
		if p.next().Value == "set" {
			prop.MethodKind = ast.MethodSet
		}
	}

	t := p.peek()
	plain := !async && !generator && prop.MethodKind == ast.MethodPlain
	if nt := p.peekAt(1); plain && t.Type == token.Ident && !reserved[t.Value] && (nt.Is(",") || nt.Is("}")) {
		p.next()
		prop.Key = &ast.Identifier{Name: t.Value}
		prop.Value = &ast.Identifier{Name: t.Value}
		prop.Shorthand = true
		return prop, nil
	}

	key, computed, err := p.parsePropertyKey()
	if err != nil {
		return nil, err
	}
	prop.Key, prop.Computed = key, computed

	if !plain || p.at("(") {
		params, body, err := p.parseFunctionRest(async, generator)
		if err != nil {
			return nil, err
		}
		prop.Method = true
		prop.Value = &ast.FunctionExpression{Params: params, Body: body, Async: async, Generator: generator}
		return prop, nil
	}
	if _, err := p.expect(":"); err != nil {
		return nil, err
	}
	value, err := p.parseAssignment()
	if err != nil {
		return nil, err
	}
	prop.Value = value
	return prop, nil
}

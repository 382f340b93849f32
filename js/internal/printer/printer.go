package printer

import (
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/wippyai/esmconv/ast"
	"github.com/wippyai/esmconv/js/internal/parser"
)

// Expression precedence levels. Binary operators sit between
// precConditional and precUnary, offset by parser.BinaryPrecedence.
const (
	precLowest      = 0
	precAssign      = 1
	precConditional = 2
	precBinaryBase  = 2
	precUnary       = 15
	precPostfix     = 16
	precCall        = 17
	precMember      = 18
	precPrimary     = 20
)

// Print renders a whole program, one top-level statement per line.
func Print(prog *ast.Program) string {
	p := &printer{buf: newBuffer("  ")}
	for _, s := range prog.Body {
		p.stmt(s)
		p.buf.Newline()
	}
	return p.buf.String()
}

// PrintNode renders a single statement, expression or pattern without a
// trailing newline.
func PrintNode(n ast.Node) string {
	p := &printer{buf: newBuffer("  ")}
	switch n := n.(type) {
	case *ast.Program:
		return Print(n)
	case ast.Statement:
		p.stmt(n)
	case ast.Expression:
		p.expr(n, precLowest)
	case ast.Pattern:
		p.pattern(n)
	case *ast.VariableDeclarator:
		p.declarator(n)
	case *ast.Property:
		p.property(n)
	case *ast.ClassMethod:
		p.method(n)
	}
	return p.buf.String()
}

type printer struct {
	buf *Buffer
	// noIn parenthesizes the in operator inside a for statement's head.
	noIn bool
}

func (p *printer) w(s string) { p.buf.WriteString(s) }

func (p *printer) stmt(s ast.Statement) {
	switch s := s.(type) {
	case *ast.ExpressionStatement:
		if startsAmbiguous(s.Expression) {
			p.w("(")
			p.expr(s.Expression, precLowest)
			p.w(")")
		} else {
			p.expr(s.Expression, precLowest)
		}
		p.w(";")

	case *ast.BlockStatement:
		p.block(s)

	case *ast.ReturnStatement:
		p.w("return")
		if s.Argument != nil {
			p.w(" ")
			p.expr(s.Argument, precLowest)
		}
		p.w(";")

	case *ast.IfStatement:
		p.w("if (")
		p.expr(s.Test, precLowest)
		p.w(") ")
		p.stmt(s.Consequent)
		if s.Alternate != nil {
			p.w(" else ")
			p.stmt(s.Alternate)
		}

	case *ast.EmptyStatement:
		p.w(";")

	case *ast.VariableDeclaration:
		p.varDecl(s)
		p.w(";")

	case *ast.FunctionDeclaration:
		p.function(s.ID, s.Params, s.Body, s.Async, s.Generator)

	case *ast.ClassDeclaration:
		p.class(s.ID, s.SuperClass, s.Body)

	case *ast.ExportDefaultDeclaration:
		p.w("export default ")
		switch d := s.Declaration.(type) {
		case *ast.FunctionDeclaration:
			p.function(d.ID, d.Params, d.Body, d.Async, d.Generator)
		case *ast.ClassDeclaration:
			p.class(d.ID, d.SuperClass, d.Body)
		case ast.Expression:
			if startsAmbiguous(d) {
				p.w("(")
				p.expr(d, precLowest)
				p.w(")")
			} else {
				p.expr(d, precAssign)
			}
			p.w(";")
		}

	case *ast.ExportNamedDeclaration:
		p.w("export ")
		p.stmt(s.Declaration)

	case *ast.ForStatement:
		p.w("for (")
		p.noIn = true
		switch init := s.Init.(type) {
		case *ast.VariableDeclaration:
			p.varDecl(init)
		case ast.Expression:
			p.expr(init, precLowest)
		}
		p.noIn = false
		p.w(";")
		if s.Test != nil {
			p.w(" ")
			p.expr(s.Test, precLowest)
		}
		p.w(";")
		if s.Update != nil {
			p.w(" ")
			p.expr(s.Update, precLowest)
		}
		p.w(") ")
		p.stmt(s.Body)

	case *ast.ForInStatement:
		p.w("for (")
		switch left := s.Left.(type) {
		case *ast.VariableDeclaration:
			p.varDecl(left)
		case ast.Expression:
			p.expr(left, precCall)
		}
		if s.Of {
			p.w(" of ")
			p.expr(s.Right, precAssign)
		} else {
			p.w(" in ")
			p.expr(s.Right, precLowest)
		}
		p.w(") ")
		p.stmt(s.Body)

	case *ast.WhileStatement:
		p.w("while (")
		p.expr(s.Test, precLowest)
		p.w(") ")
		p.stmt(s.Body)

	case *ast.DoWhileStatement:
		p.w("do ")
		p.stmt(s.Body)
		p.w(" while (")
		p.expr(s.Test, precLowest)
		p.w(");")

	case *ast.TryStatement:
		p.w("try ")
		p.block(s.Block)
		if h := s.Handler; h != nil {
			p.w(" catch ")
			if h.Param != nil {
				p.w("(")
				p.pattern(h.Param)
				p.w(") ")
			}
			p.block(h.Body)
		}
		if s.Finalizer != nil {
			p.w(" finally ")
			p.block(s.Finalizer)
		}

	case *ast.ThrowStatement:
		p.w("throw ")
		p.expr(s.Argument, precLowest)
		p.w(";")

	case *ast.BreakStatement:
		p.jump("break", s.Label)

	case *ast.ContinueStatement:
		p.jump("continue", s.Label)

	case *ast.SwitchStatement:
		p.switchStmt(s)

	case *ast.LabeledStatement:
		p.w(s.Label)
		p.w(": ")
		p.stmt(s.Body)

	case *ast.DebuggerStatement:
		p.w("debugger;")
	}
}

func (p *printer) jump(keyword, label string) {
	p.w(keyword)
	if label != "" {
		p.w(" ")
		p.w(label)
	}
	p.w(";")
}

func (p *printer) switchStmt(s *ast.SwitchStatement) {
	p.w("switch (")
	p.expr(s.Discriminant, precLowest)
	p.w(") ")
	if len(s.Cases) == 0 {
		p.w("{}")
		return
	}
	p.w("{")
	p.buf.Newline()
	p.buf.Indent()
	for _, c := range s.Cases {
		if c.Test != nil {
			p.w("case ")
			p.expr(c.Test, precLowest)
			p.w(":")
		} else {
			p.w("default:")
		}
		p.buf.Newline()
		p.buf.Indent()
		for _, st := range c.Consequent {
			p.stmt(st)
			p.buf.Newline()
		}
		p.buf.Dedent()
	}
	p.buf.Dedent()
	p.w("}")
}

func (p *printer) block(b *ast.BlockStatement) {
	if len(b.Body) == 0 {
		p.w("{}")
		return
	}
	p.w("{")
	p.buf.Newline()
	p.buf.Indent()
	for _, s := range b.Body {
		p.stmt(s)
		p.buf.Newline()
	}
	p.buf.Dedent()
	p.w("}")
}

func (p *printer) varDecl(d *ast.VariableDeclaration) {
	p.w(d.DeclKind.String())
	p.w(" ")
	for i, decl := range d.Declarations {
		if i > 0 {
			p.w(", ")
		}
		p.declarator(decl)
	}
}

func (p *printer) declarator(d *ast.VariableDeclarator) {
	p.pattern(d.ID)
	if d.Init != nil {
		p.w(" = ")
		p.expr(d.Init, precAssign)
	}
}

func (p *printer) function(id *ast.Identifier, params []ast.Pattern, body *ast.BlockStatement, async, generator bool) {
	if async {
		p.w("async ")
	}
	p.w("function")
	if generator {
		p.w("*")
	}
	p.w(" ")
	if id != nil {
		p.w(id.Name)
	}
	p.params(params)
	p.w(" ")
	p.block(body)
}

func (p *printer) params(params []ast.Pattern) {
	p.w("(")
	for i, param := range params {
		if i > 0 {
			p.w(", ")
		}
		p.pattern(param)
	}
	p.w(")")
}

func (p *printer) pattern(n ast.Node) {
	switch n := n.(type) {
	case *ast.Identifier:
		p.w(n.Name)
	case *ast.AssignmentPattern:
		p.pattern(n.Left)
		p.w(" = ")
		p.expr(n.Right, precAssign)
	case *ast.RestElement:
		p.w("...")
		p.pattern(n.Argument)
	case *ast.ArrayPattern:
		p.w("[")
		for i, el := range n.Elements {
			if i > 0 {
				p.w(", ")
			}
			if el != nil {
				p.pattern(el)
			}
		}
		if k := len(n.Elements); k > 0 && n.Elements[k-1] == nil {
			p.w(",")
		}
		p.w("]")
	case *ast.ObjectPattern:
		p.members(n.Properties)
	case ast.Expression:
		p.expr(n, precAssign)
	}
}

func (p *printer) class(id *ast.Identifier, super ast.Expression, body []*ast.ClassMethod) {
	p.w("class")
	if id != nil {
		p.w(" ")
		p.w(id.Name)
	}
	if super != nil {
		p.w(" extends ")
		p.expr(super, precCall)
	}
	if len(body) == 0 {
		p.w(" {}")
		return
	}
	p.w(" {")
	p.buf.Newline()
	p.buf.Indent()
	for _, m := range body {
		p.method(m)
		p.buf.Newline()
	}
	p.buf.Dedent()
	p.w("}")
}

func (p *printer) method(m *ast.ClassMethod) {
	if m.Static {
		p.w("static ")
	}
	p.methodHead(m.MethodKind, m.Async, m.Generator)
	p.key(m.Key, m.Computed)
	p.params(m.Params)
	p.w(" ")
	p.block(m.Body)
}

func (p *printer) methodHead(kind ast.MethodKind, async, generator bool) {
	if kind != ast.MethodPlain {
		p.w(kind.String())
		p.w(" ")
	}
	if async {
		p.w("async ")
	}
	if generator {
		p.w("*")
	}
}

func (p *printer) key(k ast.Expression, computed bool) {
	if computed {
		p.w("[")
		p.expr(k, precAssign)
		p.w("]")
		return
	}
	p.exprInner(k)
}

func precOf(e ast.Expression) int {
	switch e := e.(type) {
	case *ast.SequenceExpression:
		return precLowest
	case *ast.AssignmentExpression, *ast.ArrowFunctionExpression, *ast.YieldExpression:
		return precAssign
	case *ast.ConditionalExpression:
		return precConditional
	case *ast.BinaryExpression:
		return precBinaryBase + parser.BinaryPrecedence(e.Operator)
	case *ast.LogicalExpression:
		return precBinaryBase + parser.BinaryPrecedence(e.Operator)
	case *ast.UnaryExpression, *ast.AwaitExpression:
		return precUnary
	case *ast.UpdateExpression:
		if e.Prefix {
			return precUnary
		}
		return precPostfix
	case *ast.CallExpression, *ast.NewExpression, *ast.TaggedTemplateExpression:
		return precCall
	case *ast.MemberExpression:
		return precMember
	}
	return precPrimary
}

func (p *printer) expr(e ast.Expression, minPrec int) {
	b, isBinary := e.(*ast.BinaryExpression)
	if precOf(e) < minPrec || (p.noIn && isBinary && b.Operator == "in") {
		p.w("(")
		p.exprInner(e)
		p.w(")")
		return
	}
	p.exprInner(e)
}

func (p *printer) exprInner(e ast.Expression) {
	switch e := e.(type) {
	case *ast.Identifier:
		p.w(e.Name)

	case *ast.StringLiteral:
		if e.Raw != "" {
			p.w(e.Raw)
		} else {
			p.w(Quote(e.Value))
		}

	case *ast.NumericLiteral:
		if e.Raw != "" {
			p.w(e.Raw)
		} else {
			p.w(formatNumber(e.Value))
		}

	case *ast.BooleanLiteral:
		p.w(strconv.FormatBool(e.Value))

	case *ast.NullLiteral:
		p.w("null")

	case *ast.RegExpLiteral:
		p.w("/")
		p.w(e.Pattern)
		p.w("/")
		p.w(e.Flags)

	case *ast.TemplateLiteral:
		p.template(e)

	case *ast.TaggedTemplateExpression:
		p.expr(e.Tag, precCall)
		p.template(e.Quasi)

	case *ast.ThisExpression:
		p.w("this")

	case *ast.Super:
		p.w("super")

	case *ast.FunctionExpression:
		p.function(e.ID, e.Params, e.Body, e.Async, e.Generator)

	case *ast.ArrowFunctionExpression:
		if e.Async {
			p.w("async ")
		}
		p.params(e.Params)
		p.w(" => ")
		switch body := e.Body.(type) {
		case *ast.BlockStatement:
			p.block(body)
		case ast.Expression:
			if startsAmbiguous(body) {
				p.w("(")
				p.expr(body, precLowest)
				p.w(")")
			} else {
				p.expr(body, precAssign)
			}
		}

	case *ast.ClassExpression:
		p.class(e.ID, e.SuperClass, e.Body)

	case *ast.CallExpression:
		p.expr(e.Callee, precCall)
		if e.Optional {
			p.w("?.")
		}
		p.args(e.Arguments)

	case *ast.NewExpression:
		p.w("new ")
		if containsCall(e.Callee) {
			p.w("(")
			p.expr(e.Callee, precLowest)
			p.w(")")
		} else {
			p.expr(e.Callee, precMember)
		}
		p.args(e.Arguments)

	case *ast.MemberExpression:
		if num, ok := e.Object.(*ast.NumericLiteral); ok && !e.Computed && !e.Optional && isPlainInteger(num) {
			p.w("(")
			p.exprInner(num)
			p.w(")")
		} else {
			p.expr(e.Object, precCall)
		}
		switch {
		case e.Computed:
			if e.Optional {
				p.w("?.")
			}
			p.w("[")
			p.expr(e.Property, precLowest)
			p.w("]")
		case e.Optional:
			p.w("?.")
			p.exprInner(e.Property)
		default:
			p.w(".")
			p.exprInner(e.Property)
		}

	case *ast.BinaryExpression:
		p.binary(e.Operator, e.Left, e.Right)

	case *ast.LogicalExpression:
		p.binary(e.Operator, e.Left, e.Right)

	case *ast.UnaryExpression:
		p.w(e.Operator)
		switch e.Operator {
		case "typeof", "void", "delete":
			p.w(" ")
		case "-", "+":
			if startsWithSign(e.Argument, e.Operator[0]) {
				p.w(" ")
			}
		}
		p.expr(e.Argument, precUnary)

	case *ast.UpdateExpression:
		if e.Prefix {
			p.w(e.Operator)
			p.expr(e.Argument, precUnary)
		} else {
			p.expr(e.Argument, precPostfix)
			p.w(e.Operator)
		}

	case *ast.AwaitExpression:
		p.w("await ")
		p.expr(e.Argument, precUnary)

	case *ast.YieldExpression:
		p.w("yield")
		if e.Delegate {
			p.w("*")
		}
		if e.Argument != nil {
			p.w(" ")
			p.expr(e.Argument, precAssign)
		}

	case *ast.AssignmentExpression:
		p.expr(e.Left, precCall)
		p.w(" ")
		p.w(e.Operator)
		p.w(" ")
		p.expr(e.Right, precAssign)

	case *ast.ConditionalExpression:
		p.expr(e.Test, precConditional+1)
		p.w(" ? ")
		p.expr(e.Consequent, precAssign)
		p.w(" : ")
		p.expr(e.Alternate, precAssign)

	case *ast.SequenceExpression:
		for i, x := range e.Expressions {
			if i > 0 {
				p.w(", ")
			}
			p.expr(x, precAssign)
		}

	case *ast.SpreadElement:
		p.w("...")
		p.expr(e.Argument, precAssign)

	case *ast.ArrayExpression:
		p.w("[")
		for i, el := range e.Elements {
			if i > 0 {
				p.w(", ")
			}
			if el != nil {
				p.expr(el, precAssign)
			}
		}
		if n := len(e.Elements); n > 0 && e.Elements[n-1] == nil {
			p.w(",")
		}
		p.w("]")

	case *ast.ObjectExpression:
		p.members(e.Properties)
	}
}

func (p *printer) template(t *ast.TemplateLiteral) {
	p.w("`")
	for i, q := range t.Quasis {
		p.w(q)
		if i < len(t.Expressions) {
			p.w("${")
			p.expr(t.Expressions[i], precLowest)
			p.w("}")
		}
	}
	p.w("`")
}

// startsWithSign reports whether e prints with a leading + or - that would
// fuse with a preceding sign into ++ or --.
func startsWithSign(e ast.Expression, sign byte) bool {
	switch e := e.(type) {
	case *ast.UnaryExpression:
		return e.Operator[0] == sign
	case *ast.UpdateExpression:
		return e.Prefix && e.Operator[0] == sign
	}
	return false
}

func (p *printer) members(ms []ast.ObjectMember) {
	if len(ms) == 0 {
		p.w("{}")
		return
	}
	p.w("{ ")
	for i, m := range ms {
		if i > 0 {
			p.w(", ")
		}
		switch m := m.(type) {
		case *ast.Property:
			p.property(m)
		case *ast.SpreadElement:
			p.w("...")
			p.expr(m.Argument, precAssign)
		case *ast.RestElement:
			p.pattern(m)
		}
	}
	p.w(" }")
}

func (p *printer) args(args []ast.Expression) {
	p.w("(")
	for i, a := range args {
		if i > 0 {
			p.w(", ")
		}
		p.expr(a, precAssign)
	}
	p.w(")")
}

func (p *printer) binary(op string, left, right ast.Expression) {
	prec := precBinaryBase + parser.BinaryPrecedence(op)
	leftMin, rightMin := prec, prec+1
	if op == "**" {
		leftMin, rightMin = precUnary+1, prec
	}
	p.operand(op, left, leftMin)
	p.w(" ")
	p.w(op)
	p.w(" ")
	p.operand(op, right, rightMin)
}

// operand parenthesizes mixes of ?? with && or ||, which JavaScript
// rejects without explicit grouping.
func (p *printer) operand(op string, e ast.Expression, minPrec int) {
	if l, ok := e.(*ast.LogicalExpression); ok && (op == "??") != (l.Operator == "??") && parser.IsLogical(op) {
		p.w("(")
		p.exprInner(e)
		p.w(")")
		return
	}
	p.expr(e, minPrec)
}

// property prints a literal or pattern member. A shorthand is kept only
// while the key still names its value, so renaming the value expands it.
func (p *printer) property(prop *ast.Property) {
	if prop.Shorthand && !prop.Computed {
		if k, ok := prop.Key.(*ast.Identifier); ok {
			switch v := prop.Value.(type) {
			case *ast.Identifier:
				if k.Name == v.Name {
					p.w(v.Name)
					return
				}
			case *ast.AssignmentPattern:
				if l, ok := v.Left.(*ast.Identifier); ok && l.Name == k.Name {
					p.pattern(v)
					return
				}
			}
		}
	}
	if fn, ok := prop.Value.(*ast.FunctionExpression); ok && prop.Method {
		p.methodHead(prop.MethodKind, fn.Async, fn.Generator)
		p.key(prop.Key, prop.Computed)
		p.params(fn.Params)
		p.w(" ")
		p.block(fn.Body)
		return
	}
	p.key(prop.Key, prop.Computed)
	p.w(": ")
	if e, ok := prop.Value.(ast.Expression); ok {
		p.expr(e, precAssign)
		return
	}
	p.pattern(prop.Value)
}

// startsAmbiguous reports whether printing e at statement start would make
// it parse as a declaration or block.
func startsAmbiguous(e ast.Expression) bool {
	for {
		switch n := e.(type) {
		case *ast.FunctionExpression, *ast.ObjectExpression, *ast.ClassExpression:
			return true
		case *ast.CallExpression:
			e = n.Callee
		case *ast.MemberExpression:
			e = n.Object
		case *ast.TaggedTemplateExpression:
			e = n.Tag
		case *ast.BinaryExpression:
			e = n.Left
		case *ast.LogicalExpression:
			e = n.Left
		case *ast.AssignmentExpression:
			e = n.Left
		case *ast.ConditionalExpression:
			e = n.Test
		case *ast.SequenceExpression:
			e = n.Expressions[0]
		case *ast.UpdateExpression:
			if n.Prefix {
				return false
			}
			e = n.Argument
		default:
			return false
		}
	}
}

func containsCall(e ast.Expression) bool {
	for {
		switch n := e.(type) {
		case *ast.CallExpression:
			return true
		case *ast.MemberExpression:
			e = n.Object
		default:
			return false
		}
	}
}

func isPlainInteger(n *ast.NumericLiteral) bool {
	raw := n.Raw
	if raw == "" {
		raw = formatNumber(n.Value)
	}
	for i := 0; i < len(raw); i++ {
		if raw[i] < '0' || raw[i] > '9' {
			return false
		}
	}
	return true
}

func formatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == math.Trunc(v) && math.Abs(v) < 1e21:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Quote renders s as a double-quoted JavaScript string literal.
func Quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		case '\v':
			b.WriteString(`\v`)
		case '\u2028', '\u2029':
			writeUnicodeEscape(&b, r)
		default:
			if r < 0x20 || r == 0x7f {
				b.WriteString(`\x`)
				if r < 0x10 {
					b.WriteByte('0')
				}
				b.WriteString(strconv.FormatInt(int64(r), 16))
			} else if r == utf8.RuneError && size == 1 {
				b.WriteString(`\ufffd`)
			} else if !unicode.IsPrint(r) {
				writeUnicodeEscape(&b, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}

// writeUnicodeEscape uses \uXXXX forms only, splitting astral code points
// into surrogate pairs, so the output stays valid ES5.
func writeUnicodeEscape(b *strings.Builder, r rune) {
	if r > 0xFFFF {
		r1, r2 := utf16.EncodeRune(r)
		writeUnicodeEscape(b, r1)
		writeUnicodeEscape(b, r2)
		return
	}
	hex := strconv.FormatInt(int64(r), 16)
	b.WriteString(`\u`)
	b.WriteString(strings.Repeat("0", 4-len(hex)))
	b.WriteString(hex)
}

package match

import "github.com/wippyai/esmconv/ast"

// Slot names a capture point inside a pattern.
type Slot string

// Pattern describes a tree shape. Patterns are immutable once built and may
// be shared between goroutines and reused for any number of matches.
type Pattern interface {
	match(n ast.Node, c captures) bool
}

// Result is the outcome of matching one node against one pattern.
// Captured values are only present when Matched is true.
type Result struct {
	values  map[Slot]string
	nodes   map[Slot]ast.Node
	Matched bool
}

// Value returns the string captured for slot: the name of an identifier,
// the value of a string literal or the raw text of a numeric literal.
func (r Result) Value(slot Slot) (string, bool) {
	v, ok := r.values[slot]
	return v, ok
}

// Node returns the node captured for slot, or nil.
func (r Result) Node(slot Slot) ast.Node {
	return r.nodes[slot]
}

// Match tests n against p. Sub-patterns are evaluated left to right and
// matching stops at the first failure.
func Match(p Pattern, n ast.Node) Result {
	c := newCaptures()
	if !p.match(n, c) {
		return Result{}
	}
	return Result{Matched: true, values: c.values, nodes: c.nodes}
}

type captures struct {
	values map[Slot]string
	nodes  map[Slot]ast.Node
}

func newCaptures() captures {
	return captures{values: make(map[Slot]string), nodes: make(map[Slot]ast.Node)}
}

func (c captures) merge(other captures) {
	for k, v := range other.values {
		c.values[k] = v
	}
	for k, v := range other.nodes {
		c.nodes[k] = v
	}
}

// Any matches every non-nil node without capturing.
func Any() Pattern { return anyPattern{} }

type anyPattern struct{}

func (anyPattern) match(n ast.Node, _ captures) bool {
	return n != nil
}

// Ident matches an identifier with exactly the given name.
func Ident(name string) Pattern { return identPattern{name: name} }

// AnyIdent matches any identifier.
func AnyIdent() Pattern { return identPattern{any: true} }

type identPattern struct {
	name string
	any  bool
}

func (p identPattern) match(n ast.Node, _ captures) bool {
	id, ok := n.(*ast.Identifier)
	if !ok || id == nil {
		return false
	}
	return p.any || id.Name == p.name
}

// String matches a string literal with exactly the given value.
func String(value string) Pattern { return stringPattern{value: value} }

// AnyString matches any string literal.
func AnyString() Pattern { return stringPattern{any: true} }

type stringPattern struct {
	value string
	any   bool
}

func (p stringPattern) match(n ast.Node, _ captures) bool {
	s, ok := n.(*ast.StringLiteral)
	if !ok {
		return false
	}
	return p.any || s.Value == p.value
}

// ExprStmt matches an expression statement whose expression matches expr.
func ExprStmt(expr Pattern) Pattern { return exprStmtPattern{expr: expr} }

type exprStmtPattern struct {
	expr Pattern
}

func (p exprStmtPattern) match(n ast.Node, c captures) bool {
	s, ok := n.(*ast.ExpressionStatement)
	if !ok {
		return false
	}
	return p.expr.match(s.Expression, c)
}

// Call matches a call expression with exactly len(args) arguments, each
// matching the pattern at the same position.
func Call(callee Pattern, args ...Pattern) Pattern {
	return callPattern{callee: callee, args: args}
}

type callPattern struct {
	callee Pattern
	args   []Pattern
}

func (p callPattern) match(n ast.Node, c captures) bool {
	call, ok := n.(*ast.CallExpression)
	if !ok {
		return false
	}
	if len(call.Arguments) != len(p.args) {
		return false
	}
	if !p.callee.match(call.Callee, c) {
		return false
	}
	for i, arg := range p.args {
		if !arg.match(call.Arguments[i], c) {
			return false
		}
	}
	return true
}

// ConstMember matches object.property where the property is a plain,
// non-computed name. Computed access such as object[prop] never matches.
func ConstMember(object Pattern, property string) Pattern {
	return memberPattern{object: object, property: property}
}

type memberPattern struct {
	object   Pattern
	property string
}

func (p memberPattern) match(n ast.Node, c captures) bool {
	m, ok := n.(*ast.MemberExpression)
	if !ok || m.Computed {
		return false
	}
	prop, ok := m.Property.(*ast.Identifier)
	if !ok || prop.Name != p.property {
		return false
	}
	return p.object.match(m.Object, c)
}

// Func matches a plain function expression. A nil id accepts any name
// including none; params must match positionally with the same count.
// Async functions and generators never match.
func Func(id Pattern, params []Pattern, body Pattern) Pattern {
	return funcPattern{id: id, params: params, body: body}
}

type funcPattern struct {
	id     Pattern
	body   Pattern
	params []Pattern
}

func (p funcPattern) match(n ast.Node, c captures) bool {
	fn, ok := n.(*ast.FunctionExpression)
	if !ok || fn.Async || fn.Generator {
		return false
	}
	if p.id != nil && (fn.ID == nil || !p.id.match(fn.ID, c)) {
		return false
	}
	if len(fn.Params) != len(p.params) {
		return false
	}
	for i, param := range p.params {
		if !param.match(fn.Params[i], c) {
			return false
		}
	}
	return fn.Body != nil && p.body.match(fn.Body, c)
}

// Block matches a block statement with exactly len(stmts) statements.
func Block(stmts ...Pattern) Pattern { return blockPattern{stmts: stmts} }

type blockPattern struct {
	stmts []Pattern
}

func (p blockPattern) match(n ast.Node, c captures) bool {
	b, ok := n.(*ast.BlockStatement)
	if !ok || b == nil {
		return false
	}
	if len(b.Body) != len(p.stmts) {
		return false
	}
	for i, s := range p.stmts {
		if !s.match(b.Body[i], c) {
			return false
		}
	}
	return true
}

// Return matches a return statement. A nil arg matches only a bare return.
func Return(arg Pattern) Pattern { return returnPattern{arg: arg} }

type returnPattern struct {
	arg Pattern
}

func (p returnPattern) match(n ast.Node, c captures) bool {
	r, ok := n.(*ast.ReturnStatement)
	if !ok {
		return false
	}
	if p.arg == nil {
		return r.Argument == nil
	}
	return r.Argument != nil && p.arg.match(r.Argument, c)
}

// Capture matches inner and, on success, records the matched node and its
// string value under slot.
func Capture(slot Slot, inner Pattern) Pattern {
	return capturePattern{slot: slot, inner: inner}
}

type capturePattern struct {
	inner Pattern
	slot  Slot
}

func (p capturePattern) match(n ast.Node, c captures) bool {
	if !p.inner.match(n, c) {
		return false
	}
	c.values[p.slot] = valueOf(n)
	c.nodes[p.slot] = n
	return true
}

func valueOf(n ast.Node) string {
	switch v := n.(type) {
	case *ast.Identifier:
		return v.Name
	case *ast.StringLiteral:
		return v.Value
	case *ast.NumericLiteral:
		return v.Raw
	}
	return ""
}

// OneOf matches if any alternative matches, trying them in order. Only the
// captures of the alternative that matched are kept.
func OneOf(alts ...Pattern) Pattern { return oneOfPattern{alts: alts} }

type oneOfPattern struct {
	alts []Pattern
}

func (p oneOfPattern) match(n ast.Node, c captures) bool {
	for _, alt := range p.alts {
		scratch := newCaptures()
		if alt.match(n, scratch) {
			c.merge(scratch)
			return true
		}
	}
	return false
}

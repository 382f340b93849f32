package match

import (
	"testing"

	"github.com/wippyai/esmconv/ast"
)

func id(name string) *ast.Identifier { return &ast.Identifier{Name: name} }

func str(v string) *ast.StringLiteral { return &ast.StringLiteral{Value: v, Raw: `"` + v + `"`} }

func member(obj, prop string) *ast.MemberExpression {
	return &ast.MemberExpression{Object: id(obj), Property: id(prop)}
}

func call(callee ast.Expression, args ...ast.Expression) *ast.CallExpression {
	return &ast.CallExpression{Callee: callee, Arguments: args}
}

func getter(ret ast.Expression) *ast.FunctionExpression {
	return &ast.FunctionExpression{
		Body: &ast.BlockStatement{Body: []ast.Statement{&ast.ReturnStatement{Argument: ret}}},
	}
}

// definer mirrors the shape the converter looks for.
var definer = ExprStmt(Call(
	ConstMember(Ident("require"), "d"),
	AnyIdent(),
	Capture("exported", AnyString()),
	Func(nil, nil, Block(Return(Capture("returned", AnyIdent())))),
))

func TestMatchDefiner(t *testing.T) {
	stmt := &ast.ExpressionStatement{Expression: call(member("require", "d"), id("exports"), str("counter"), getter(id("f")))}

	r := Match(definer, stmt)
	if !r.Matched {
		t.Fatal("expected match")
	}
	if v, ok := r.Value("exported"); !ok || v != "counter" {
		t.Errorf("exported = %q, %v", v, ok)
	}
	if v, _ := r.Value("returned"); v != "f" {
		t.Errorf("returned = %q", v)
	}
	if n, ok := r.Node("returned").(*ast.Identifier); !ok || n.Name != "f" {
		t.Errorf("returned node = %#v", r.Node("returned"))
	}
}

func TestMatchRejects(t *testing.T) {
	tests := []struct {
		name string
		stmt ast.Statement
	}{
		{
			"wrong namespace",
			&ast.ExpressionStatement{Expression: call(member("other", "d"), id("exports"), str("x"), getter(id("f")))},
		},
		{
			"wrong method",
			&ast.ExpressionStatement{Expression: call(member("require", "r"), id("exports"), str("x"), getter(id("f")))},
		},
		{
			"computed member",
			&ast.ExpressionStatement{Expression: call(
				&ast.MemberExpression{Object: id("require"), Property: str("d"), Computed: true},
				id("exports"), str("x"), getter(id("f")))},
		},
		{
			"too few args",
			&ast.ExpressionStatement{Expression: call(member("require", "d"), id("exports"), str("x"))},
		},
		{
			"too many args",
			&ast.ExpressionStatement{Expression: call(member("require", "d"), id("exports"), str("x"), getter(id("f")), id("extra"))},
		},
		{
			"numeric export name",
			&ast.ExpressionStatement{Expression: call(member("require", "d"), id("exports"),
				&ast.NumericLiteral{Value: 1, Raw: "1"}, getter(id("f")))},
		},
		{
			"getter returns member",
			&ast.ExpressionStatement{Expression: call(member("require", "d"), id("exports"), str("x"), getter(member("a", "b")))},
		},
		{
			"getter with params",
			&ast.ExpressionStatement{Expression: call(member("require", "d"), id("exports"), str("x"),
				&ast.FunctionExpression{
					Params: []ast.Pattern{id("p")},
					Body:   &ast.BlockStatement{Body: []ast.Statement{&ast.ReturnStatement{Argument: id("f")}}},
				})},
		},
		{
			"getter with extra statement",
			&ast.ExpressionStatement{Expression: call(member("require", "d"), id("exports"), str("x"),
				&ast.FunctionExpression{Body: &ast.BlockStatement{Body: []ast.Statement{
					&ast.EmptyStatement{},
					&ast.ReturnStatement{Argument: id("f")},
				}}})},
		},
		{
			"bare return",
			&ast.ExpressionStatement{Expression: call(member("require", "d"), id("exports"), str("x"), getter(nil))},
		},
		{
			"not an expression statement",
			&ast.ReturnStatement{Argument: call(member("require", "d"), id("exports"), str("x"), getter(id("f")))},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Match(definer, tt.stmt)
			if r.Matched {
				t.Fatal("unexpected match")
			}
			if _, ok := r.Value("exported"); ok {
				t.Error("failed match leaked a capture")
			}
		})
	}
}

func TestOneOf(t *testing.T) {
	ns := OneOf(
		Capture("ns", Ident("require")),
		Capture("ns", Ident("__webpack_require__")),
	)
	p := ExprStmt(Call(ConstMember(ns, "r"), AnyIdent()))

	tests := []struct {
		name   string
		object string
		want   bool
	}{
		{"first alternative", "require", true},
		{"second alternative", "__webpack_require__", true},
		{"no alternative", "req", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt := &ast.ExpressionStatement{Expression: call(member(tt.object, "r"), id("exports"))}
			r := Match(p, stmt)
			if r.Matched != tt.want {
				t.Fatalf("Matched = %v, want %v", r.Matched, tt.want)
			}
			if tt.want {
				if v, _ := r.Value("ns"); v != tt.object {
					t.Errorf("ns = %q, want %q", v, tt.object)
				}
			}
		})
	}
}

func TestOneOfDiscardsFailedCaptures(t *testing.T) {
	// The first alternative captures "a" before failing on the argument.
	p := OneOf(
		Call(Capture("a", AnyIdent()), String("never")),
		Call(AnyIdent(), AnyString()),
	)
	r := Match(p, call(id("f"), str("x")))
	if !r.Matched {
		t.Fatal("expected match")
	}
	if _, ok := r.Value("a"); ok {
		t.Error("capture from failed alternative survived")
	}
}

func TestFuncNamePattern(t *testing.T) {
	named := &ast.FunctionExpression{
		ID:   id("get"),
		Body: &ast.BlockStatement{Body: []ast.Statement{&ast.ReturnStatement{}}},
	}
	anonymous := &ast.FunctionExpression{
		Body: &ast.BlockStatement{Body: []ast.Statement{&ast.ReturnStatement{}}},
	}
	async := &ast.FunctionExpression{
		Body:  &ast.BlockStatement{Body: []ast.Statement{&ast.ReturnStatement{}}},
		Async: true,
	}
	generator := &ast.FunctionExpression{
		Body:      &ast.BlockStatement{Body: []ast.Statement{&ast.ReturnStatement{}}},
		Generator: true,
	}

	tests := []struct {
		name string
		p    Pattern
		n    ast.Node
		want bool
	}{
		{"nil id accepts named", Func(nil, nil, Block(Return(nil))), named, true},
		{"nil id accepts anonymous", Func(nil, nil, Block(Return(nil))), anonymous, true},
		{"id pattern requires name", Func(AnyIdent(), nil, Block(Return(nil))), anonymous, false},
		{"id pattern matches name", Func(Ident("get"), nil, Block(Return(nil))), named, true},
		{"id pattern rejects other name", Func(Ident("set"), nil, Block(Return(nil))), named, false},
		{"not a function", Func(nil, nil, Any()), id("x"), false},
		{"async function", Func(nil, nil, Block(Return(nil))), async, false},
		{"generator", Func(nil, nil, Block(Return(nil))), generator, false},
		{"arrow", Func(nil, nil, Any()), &ast.ArrowFunctionExpression{Body: id("x")}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Match(tt.p, tt.n).Matched; got != tt.want {
				t.Errorf("Matched = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCaptureValues(t *testing.T) {
	tests := []struct {
		name string
		n    ast.Node
		want string
	}{
		{"identifier", id("foo"), "foo"},
		{"string", str("bar"), "bar"},
		{"number", &ast.NumericLiteral{Value: 16, Raw: "0x10"}, "0x10"},
		{"other", &ast.NullLiteral{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Match(Capture("v", Any()), tt.n)
			if !r.Matched {
				t.Fatal("expected match")
			}
			if v, _ := r.Value("v"); v != tt.want {
				t.Errorf("value = %q, want %q", v, tt.want)
			}
			if r.Node("v") != tt.n {
				t.Error("captured node differs")
			}
		})
	}
}

func TestAnyRejectsNil(t *testing.T) {
	if Match(Any(), nil).Matched {
		t.Error("Any matched nil")
	}
}

func TestPatternReuse(t *testing.T) {
	a := &ast.ExpressionStatement{Expression: call(member("require", "d"), id("exports"), str("a"), getter(id("x")))}
	b := &ast.ExpressionStatement{Expression: call(member("require", "d"), id("exports"), str("b"), getter(id("y")))}

	ra := Match(definer, a)
	rb := Match(definer, b)
	if v, _ := ra.Value("exported"); v != "a" {
		t.Errorf("first result changed: %q", v)
	}
	if v, _ := rb.Value("exported"); v != "b" {
		t.Errorf("second result = %q", v)
	}
}

package scope

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/wippyai/esmconv/ast"
	"github.com/wippyai/esmconv/js"
)

func analyze(t *testing.T, src string) (*ast.Program, *Info) {
	t.Helper()
	prog, err := js.Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return prog, Analyze(prog)
}

// firstFunction returns the first function expression in prog.
func firstFunction(prog *ast.Program) *ast.FunctionExpression {
	var fn *ast.FunctionExpression
	ast.Inspect(prog, func(n ast.Node) bool {
		if f, ok := n.(*ast.FunctionExpression); ok && fn == nil {
			fn = f
		}
		return fn == nil
	})
	return fn
}

func TestTopLevelBindings(t *testing.T) {
	_, info := analyze(t, `
var a = 1;
let b = a;
const c = b;
function f(x) { return x + a; }
class K {}
`)
	tests := []struct {
		name string
		kind BindingKind
		refs int
	}{
		{"a", BindingVar, 2},
		{"b", BindingLet, 1},
		{"c", BindingConst, 0},
		{"f", BindingFunction, 0},
		{"K", BindingClass, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := info.Root.FindBinding(tt.name)
			if b == nil {
				t.Fatal("binding not found")
			}
			if b.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", b.Kind, tt.kind)
			}
			if len(b.References) != tt.refs {
				t.Errorf("got %d references, want %d", len(b.References), tt.refs)
			}
			if !b.IsTopLevel() {
				t.Error("IsTopLevel = false")
			}
			if b.DeclaringStatement() == nil {
				t.Error("DeclaringStatement = nil")
			}
		})
	}

	if info.Root.FindBinding("x") != nil {
		t.Error("parameter leaked into program scope")
	}
}

func TestHoisting(t *testing.T) {
	prog, info := analyze(t, `
function outer() {
  if (cond) {
    var hoisted = 1;
    let local = 2;
  }
  return hoisted;
}
`)
	outer := prog.Body[0].(*ast.FunctionDeclaration)
	fs := info.ScopeOf(outer)
	if fs == nil || fs.Kind != KindFunction {
		t.Fatalf("function scope = %v", fs)
	}
	if fs.Lookup("hoisted") == nil {
		t.Error("var did not hoist to function scope")
	}
	if fs.Lookup("local") != nil {
		t.Error("let escaped its block")
	}
	if b := fs.Lookup("hoisted"); b != nil && len(b.References) != 1 {
		t.Errorf("hoisted has %d references, want 1", len(b.References))
	}
	if info.ScopeOf(outer.Body) != fs {
		t.Error("function body does not share the function scope")
	}

	var unresolved []string
	for _, r := range info.Unresolved {
		unresolved = append(unresolved, r.Identifier.Name)
	}
	if len(unresolved) != 1 || unresolved[0] != "cond" {
		t.Errorf("Unresolved = %v, want [cond]", unresolved)
	}
}

func TestReferenceBeforeDeclaration(t *testing.T) {
	_, info := analyze(t, `
require.d(exports, "default", function () { return f; });
function f() {}
`)
	b := info.Root.FindBinding("f")
	if b == nil {
		t.Fatal("f not declared")
	}
	if len(b.References) != 1 {
		t.Fatalf("got %d references, want 1", len(b.References))
	}
	if b.References[0].Scope == info.Root {
		t.Error("reference scope should be the getter's scope")
	}
}

func TestFindBindingFromNestedScope(t *testing.T) {
	prog, info := analyze(t, `
var f = 1;
require.d(exports, "x", function () { return f; });
`)
	getter := firstFunction(prog)
	s := info.ScopeOf(getter)
	if s == nil {
		t.Fatal("no scope for getter")
	}
	b := s.FindBinding("f")
	if b == nil || b != info.Root.Lookup("f") {
		t.Fatalf("FindBinding(f) = %v", b)
	}
	if s.FindBinding("missing") != nil {
		t.Error("FindBinding(missing) != nil")
	}
}

func TestShadowing(t *testing.T) {
	prog, info := analyze(t, `
var f = 1;
function g(f) { return f; }
`)
	outer := info.Root.Lookup("f")
	if len(outer.References) != 0 {
		t.Errorf("outer f has %d references, want 0", len(outer.References))
	}
	g := prog.Body[1].(*ast.FunctionDeclaration)
	param := info.ScopeOf(g).Lookup("f")
	if param == nil || param.Kind != BindingParam {
		t.Fatalf("param = %v", param)
	}
	if len(param.References) != 1 {
		t.Errorf("param has %d references, want 1", len(param.References))
	}
	if param.DeclaringStatement() != nil {
		t.Error("parameter has a declaring statement")
	}
	if param.IsTopLevel() {
		t.Error("parameter reported as top level")
	}
}

func TestNotReferences(t *testing.T) {
	_, info := analyze(t, `
var a = 1;
x.a;
var o = { a: 2 };
class C { a() {} }
`)
	if refs := info.Root.Lookup("a").References; len(refs) != 0 {
		t.Errorf("a has %d references, want 0", len(refs))
	}
}

func TestComputedAndShorthand(t *testing.T) {
	prog, info := analyze(t, `
var a = 1;
x[a];
var o = { a };
var p = { [a]: 1 };
`)
	b := info.Root.Lookup("a")
	if len(b.References) != 3 {
		t.Fatalf("got %d references, want 3", len(b.References))
	}

	// The shorthand key is a separate node and not a reference.
	obj := prog.Body[2].(*ast.VariableDeclaration).Declarations[0].Init.(*ast.ObjectExpression)
	prop := obj.Properties[0].(*ast.Property)
	if info.BindingOf(prop.Key.(*ast.Identifier)) != nil {
		t.Error("shorthand key resolved as a reference")
	}
	if info.BindingOf(prop.Value.(*ast.Identifier)) != b {
		t.Error("shorthand value not resolved")
	}
}

func TestDeclaringStatementContainers(t *testing.T) {
	prog, info := analyze(t, `
export var exported = 1;
if (x) { var nested = 2; }
export default function named() {}
`)
	tests := []struct {
		name     string
		topLevel bool
		exported bool
	}{
		{"exported", false, true},
		{"nested", false, false},
		{"named", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := info.Root.Lookup(tt.name)
			if b == nil {
				t.Fatal("binding not found")
			}
			if b.IsTopLevel() != tt.topLevel {
				t.Errorf("IsTopLevel = %v", b.IsTopLevel())
			}
			if b.IsExported() != tt.exported {
				t.Errorf("IsExported = %v", b.IsExported())
			}
		})
	}

	if got := info.Root.Lookup("exported").DeclaringStatement(); got != prog.Body[0].(*ast.ExportNamedDeclaration).Declaration {
		t.Errorf("DeclaringStatement = %T", got)
	}
}

func TestRedeclaration(t *testing.T) {
	_, info := analyze(t, `
var a = 1;
var a = 2;
a;
`)
	b := info.Root.Lookup("a")
	if len(info.Root.Bindings()) != 1 {
		t.Fatalf("got %d bindings, want 1", len(info.Root.Bindings()))
	}
	// The second declaring identifier plus the read.
	if len(b.References) != 2 {
		t.Errorf("got %d references, want 2", len(b.References))
	}
}

func TestNamedFunctionExpression(t *testing.T) {
	prog, info := analyze(t, `var v = function self() { return self; };`)
	fn := firstFunction(prog)
	b := info.ScopeOf(fn).Lookup("self")
	if b == nil || b.Kind != BindingFunctionName {
		t.Fatalf("self = %v", b)
	}
	if len(b.References) != 1 {
		t.Errorf("got %d references, want 1", len(b.References))
	}
	if info.Root.Lookup("self") != nil {
		t.Error("function expression name leaked")
	}
}

func TestScopeTree(t *testing.T) {
	prog, info := analyze(t, `
function f() { { let x = 1; } }
var g = function () {};
`)
	if len(info.Root.Children) != 2 {
		t.Fatalf("root has %d children, want 2", len(info.Root.Children))
	}
	fs := info.ScopeOf(prog.Body[0])
	if len(fs.Children) != 1 || fs.Children[0].Kind != KindBlock {
		t.Fatalf("function scope children = %v", fs.Children)
	}
	if !info.Root.Contains(fs.Children[0]) {
		t.Error("root does not contain nested block")
	}
	if fs.Children[0].Contains(info.Root) {
		t.Error("block contains root")
	}
}

func TestDestructuredBindings(t *testing.T) {
	_, info := analyze(t, `
var { a, b: [c, , ...d], [k]: e = a, ...f } = src;
function g({ p = c }, [q], ...r) { return p + q + r; }
`)
	for _, name := range []string{"a", "c", "d", "e", "f"} {
		b := info.Root.Lookup(name)
		if b == nil {
			t.Errorf("%s not declared", name)
			continue
		}
		if b.Kind != BindingVar {
			t.Errorf("%s Kind = %v, want var", name, b.Kind)
		}
		if _, ok := b.DeclaringStatement().(*ast.VariableDeclaration); !ok {
			t.Errorf("%s DeclaringStatement = %T", name, b.DeclaringStatement())
		}
	}
	if info.Root.Lookup("b") != nil {
		t.Error("property key declared as a binding")
	}
	// The default a = ... and the parameter default p = c are reads.
	if got := len(info.Root.Lookup("a").References); got != 1 {
		t.Errorf("a has %d references, want 1", got)
	}
	if got := len(info.Root.Lookup("c").References); got != 1 {
		t.Errorf("c has %d references, want 1", got)
	}

	var unresolved []string
	for _, r := range info.Unresolved {
		unresolved = append(unresolved, r.Identifier.Name)
	}
	if diff := cmp.Diff([]string{"k", "src"}, unresolved); diff != "" {
		t.Errorf("Unresolved mismatch (-want +got):\n%s", diff)
	}
}

func TestStatementScopes(t *testing.T) {
	tests := []struct {
		name string
		src  string
		// owner picks the node whose scope should declare want.
		owner func(*ast.Program) ast.Node
		want  string
		kind  BindingKind
	}{
		{
			name:  "for let",
			src:   "for (let i = 0; i < n; i++) { i; }",
			owner: func(p *ast.Program) ast.Node { return p.Body[0] },
			want:  "i",
			kind:  BindingLet,
		},
		{
			name:  "for of const",
			src:   "for (const v of list) v;",
			owner: func(p *ast.Program) ast.Node { return p.Body[0] },
			want:  "v",
			kind:  BindingConst,
		},
		{
			name:  "catch param",
			src:   "try { f(); } catch ({ message }) { message; }",
			owner: func(p *ast.Program) ast.Node { return p.Body[0].(*ast.TryStatement).Handler },
			want:  "message",
			kind:  BindingCatch,
		},
		{
			name:  "switch let",
			src:   "switch (x) { case 1: let y = 2; y; }",
			owner: func(p *ast.Program) ast.Node { return p.Body[0] },
			want:  "y",
			kind:  BindingLet,
		},
		{
			name: "arrow param",
			src:  "var h = (a, b = a) => a + b;",
			owner: func(p *ast.Program) ast.Node {
				return p.Body[0].(*ast.VariableDeclaration).Declarations[0].Init
			},
			want: "a",
			kind: BindingParam,
		},
		{
			name: "class expression name",
			src:  "var K = class Inner { m() { return Inner; } };",
			owner: func(p *ast.Program) ast.Node {
				return p.Body[0].(*ast.VariableDeclaration).Declarations[0].Init
			},
			want: "Inner",
			kind: BindingClassName,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog, info := analyze(t, tt.src)
			s := info.ScopeOf(tt.owner(prog))
			if s == nil {
				t.Fatal("no scope")
			}
			b := s.Lookup(tt.want)
			if b == nil {
				t.Fatalf("%s not declared in %v scope", tt.want, s.Kind)
			}
			if b.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", b.Kind, tt.kind)
			}
			if len(b.References) == 0 {
				t.Error("binding has no references")
			}
			if info.Root.Lookup(tt.want) != nil {
				t.Errorf("%s leaked into the program scope", tt.want)
			}
		})
	}
}

func TestLoopVarHoists(t *testing.T) {
	_, info := analyze(t, `
for (var i = 0; i < 3; i++) {}
for (var k in o) {}
while (i) { do { i--; } while (k); }
`)
	for _, name := range []string{"i", "k"} {
		b := info.Root.Lookup(name)
		if b == nil {
			t.Fatalf("%s did not hoist", name)
		}
		if b.IsTopLevel() {
			t.Errorf("%s reported as top level", name)
		}
	}
	if got := len(info.Root.Lookup("i").References); got != 4 {
		t.Errorf("i has %d references, want 4", got)
	}
}

func TestExpressionReferences(t *testing.T) {
	_, info := analyze(t, `
var a = 1;
async function* g() {
  yield a;
  await a;
  tag`+"`${a}`"+`;
  [...a];
  ({ ...a, [a]: a, m() { return a; } });
  a?.b, a++;
}
`)
	if got := len(info.Root.Lookup("a").References); got != 10 {
		t.Errorf("a has %d references, want 10", got)
	}
}

package scope

import (
	"github.com/wippyai/esmconv/ast"
)

type pendingRef struct {
	id    *ast.Identifier
	scope *Scope
}

type analyzer struct {
	info *Info
	refs []pendingRef
}

// Analyze builds the scope tree of prog and resolves every identifier
// reference. Resolution runs after the whole tree is walked, so references
// that precede their declaration resolve the way hoisting does at runtime.
func Analyze(prog *ast.Program) *Info {
	a := &analyzer{info: &Info{
		scopes: make(map[ast.Node]*Scope),
		idents: make(map[*ast.Identifier]*Binding),
	}}
	root := newScope(KindProgram, prog, nil)
	a.info.Root = root
	a.info.scopes[prog] = root

	for _, s := range prog.Body {
		a.stmt(s, root, prog)
	}
	a.resolve()
	return a.info
}

func (a *analyzer) resolve() {
	for _, r := range a.refs {
		b := r.scope.FindBinding(r.id.Name)
		ref := Reference{Identifier: r.id, Scope: r.scope, Binding: b}
		r.scope.refs = append(r.scope.refs, ref)
		if b == nil {
			a.info.Unresolved = append(a.info.Unresolved, ref)
			continue
		}
		b.References = append(b.References, ref)
		a.info.idents[r.id] = b
	}
}

// declare adds id to target. loc is the scope the identifier appears in,
// which differs from target for hoisted declarations.
func (a *analyzer) declare(target, loc *Scope, id *ast.Identifier, kind BindingKind, decl ast.Statement, container ast.Node) {
	if existing, ok := target.bindings[id.Name]; ok {
		// var redeclaration or a var reusing a parameter name: same binding.
		ref := Reference{Identifier: id, Scope: loc, Binding: existing}
		existing.References = append(existing.References, ref)
		loc.refs = append(loc.refs, ref)
		a.info.idents[id] = existing
		return
	}
	b := &Binding{
		Name:       id.Name,
		Kind:       kind,
		Identifier: id,
		Scope:      target,
		decl:       decl,
		container:  container,
	}
	target.bindings[id.Name] = b
	target.order = append(target.order, b)
	a.info.idents[id] = b
}

func (a *analyzer) ref(id *ast.Identifier, s *Scope) {
	a.refs = append(a.refs, pendingRef{id: id, scope: s})
}

// stmt analyzes a statement whose enclosing node is container.
func (a *analyzer) stmt(n ast.Statement, s *Scope, container ast.Node) {
	switch n := n.(type) {
	case *ast.ExpressionStatement:
		a.expr(n.Expression, s)

	case *ast.BlockStatement:
		bs := newScope(KindBlock, n, s)
		a.info.scopes[n] = bs
		a.stmts(n.Body, bs, n)

	case *ast.ReturnStatement:
		if n.Argument != nil {
			a.expr(n.Argument, s)
		}

	case *ast.IfStatement:
		a.expr(n.Test, s)
		a.stmt(n.Consequent, s, n)
		if n.Alternate != nil {
			a.stmt(n.Alternate, s, n)
		}

	case *ast.VariableDeclaration:
		target, kind := s, BindingLet
		switch n.DeclKind {
		case ast.DeclVar:
			target, kind = s.hoistTarget(), BindingVar
		case ast.DeclConst:
			kind = BindingConst
		}
		for _, d := range n.Declarations {
			a.declarePattern(target, s, d.ID, kind, n, container)
			if d.Init != nil {
				a.expr(d.Init, s)
			}
		}

	case *ast.FunctionDeclaration:
		a.function(n, s, container)

	case *ast.ClassDeclaration:
		if n.ID != nil {
			a.declare(s, s, n.ID, BindingClass, n, container)
		}
		a.class(n.SuperClass, n.Body, s)

	case *ast.ExportNamedDeclaration:
		a.stmt(n.Declaration, s, n)

	case *ast.ExportDefaultDeclaration:
		switch d := n.Declaration.(type) {
		case *ast.FunctionDeclaration:
			a.function(d, s, n)
		case *ast.ClassDeclaration:
			a.stmt(d, s, n)
		case ast.Expression:
			a.expr(d, s)
		}

	case *ast.ForStatement:
		// Loop heads get their own scope so let bindings stay per loop.
		ls := newScope(KindBlock, n, s)
		a.info.scopes[n] = ls
		switch init := n.Init.(type) {
		case *ast.VariableDeclaration:
			a.stmt(init, ls, n)
		case ast.Expression:
			a.expr(init, ls)
		}
		if n.Test != nil {
			a.expr(n.Test, ls)
		}
		if n.Update != nil {
			a.expr(n.Update, ls)
		}
		a.stmt(n.Body, ls, n)

	case *ast.ForInStatement:
		ls := newScope(KindBlock, n, s)
		a.info.scopes[n] = ls
		switch left := n.Left.(type) {
		case *ast.VariableDeclaration:
			a.stmt(left, ls, n)
		case ast.Expression:
			a.expr(left, ls)
		}
		a.expr(n.Right, ls)
		a.stmt(n.Body, ls, n)

	case *ast.WhileStatement:
		a.expr(n.Test, s)
		a.stmt(n.Body, s, n)

	case *ast.DoWhileStatement:
		a.stmt(n.Body, s, n)
		a.expr(n.Test, s)

	case *ast.TryStatement:
		a.stmt(n.Block, s, n)
		if h := n.Handler; h != nil {
			cs := newScope(KindBlock, h, s)
			a.info.scopes[h] = cs
			if h.Param != nil {
				a.declarePattern(cs, cs, h.Param, BindingCatch, nil, nil)
			}
			a.stmt(h.Body, cs, h)
		}
		if n.Finalizer != nil {
			a.stmt(n.Finalizer, s, n)
		}

	case *ast.ThrowStatement:
		a.expr(n.Argument, s)

	case *ast.SwitchStatement:
		a.expr(n.Discriminant, s)
		// All clauses share one block.
		ss := newScope(KindBlock, n, s)
		a.info.scopes[n] = ss
		for _, c := range n.Cases {
			if c.Test != nil {
				a.expr(c.Test, ss)
			}
			a.stmts(c.Consequent, ss, c)
		}

	case *ast.LabeledStatement:
		a.stmt(n.Body, s, n)
	}
}

func (a *analyzer) stmts(list []ast.Statement, s *Scope, container ast.Node) {
	for _, st := range list {
		a.stmt(st, s, container)
	}
}

func (a *analyzer) function(fn *ast.FunctionDeclaration, s *Scope, container ast.Node) {
	if fn.ID != nil {
		a.declare(s.hoistTarget(), s, fn.ID, BindingFunction, fn, container)
	}
	fs := a.functionScope(fn, fn.Params, s)
	a.body(fn.Body, fs)
}

// class analyzes the heritage and methods of a class in s.
func (a *analyzer) class(super ast.Expression, methods []*ast.ClassMethod, s *Scope) {
	if super != nil {
		a.expr(super, s)
	}
	for _, m := range methods {
		if m.Computed {
			a.expr(m.Key, s)
		}
		fs := a.functionScope(m, m.Params, s)
		a.body(m.Body, fs)
	}
}

// functionScope creates the scope of a function-like node and declares its
// parameters. Defaults are evaluated in the new scope.
func (a *analyzer) functionScope(owner ast.Node, params []ast.Pattern, parent *Scope) *Scope {
	fs := newScope(KindFunction, owner, parent)
	a.info.scopes[owner] = fs
	for _, p := range params {
		a.declarePattern(fs, fs, p, BindingParam, nil, nil)
	}
	return fs
}

// body analyzes a function body in fs. The block shares the function's
// scope, so var declarations in the body land next to the parameters.
func (a *analyzer) body(body *ast.BlockStatement, fs *Scope) {
	if body == nil {
		return
	}
	a.info.scopes[body] = fs
	a.stmts(body.Body, fs, body)
}

// declarePattern declares every name pat binds in target. Default values
// and computed keys are references evaluated in loc.
func (a *analyzer) declarePattern(target, loc *Scope, pat ast.Node, kind BindingKind, decl ast.Statement, container ast.Node) {
	switch p := pat.(type) {
	case *ast.Identifier:
		a.declare(target, loc, p, kind, decl, container)
	case *ast.AssignmentPattern:
		a.declarePattern(target, loc, p.Left, kind, decl, container)
		a.expr(p.Right, loc)
	case *ast.RestElement:
		a.declarePattern(target, loc, p.Argument, kind, decl, container)
	case *ast.ArrayPattern:
		for _, el := range p.Elements {
			if el != nil {
				a.declarePattern(target, loc, el, kind, decl, container)
			}
		}
	case *ast.ObjectPattern:
		for _, m := range p.Properties {
			switch m := m.(type) {
			case *ast.Property:
				if m.Computed {
					a.expr(m.Key, loc)
				}
				a.declarePattern(target, loc, m.Value, kind, decl, container)
			case *ast.RestElement:
				a.declarePattern(target, loc, m.Argument, kind, decl, container)
			}
		}
	}
}

func (a *analyzer) exprs(list []ast.Expression, s *Scope) {
	for _, e := range list {
		if e != nil {
			a.expr(e, s)
		}
	}
}

func (a *analyzer) expr(e ast.Expression, s *Scope) {
	switch e := e.(type) {
	case *ast.Identifier:
		a.ref(e, s)

	case *ast.MemberExpression:
		a.expr(e.Object, s)
		if e.Computed {
			a.expr(e.Property, s)
		}

	case *ast.CallExpression:
		a.expr(e.Callee, s)
		a.exprs(e.Arguments, s)

	case *ast.NewExpression:
		a.expr(e.Callee, s)
		a.exprs(e.Arguments, s)

	case *ast.FunctionExpression:
		fs := a.functionScope(e, e.Params, s)
		// A parameter with the same name shadows the function's own name.
		if e.ID != nil && fs.bindings[e.ID.Name] == nil {
			a.declare(fs, fs, e.ID, BindingFunctionName, nil, nil)
		}
		a.body(e.Body, fs)

	case *ast.ArrowFunctionExpression:
		fs := a.functionScope(e, e.Params, s)
		switch body := e.Body.(type) {
		case *ast.BlockStatement:
			a.body(body, fs)
		case ast.Expression:
			a.expr(body, fs)
		}

	case *ast.ClassExpression:
		cs := s
		if e.ID != nil {
			cs = newScope(KindBlock, e, s)
			a.info.scopes[e] = cs
			a.declare(cs, cs, e.ID, BindingClassName, nil, nil)
		}
		a.class(e.SuperClass, e.Body, cs)

	case *ast.BinaryExpression:
		a.expr(e.Left, s)
		a.expr(e.Right, s)

	case *ast.LogicalExpression:
		a.expr(e.Left, s)
		a.expr(e.Right, s)

	case *ast.UnaryExpression:
		a.expr(e.Argument, s)

	case *ast.UpdateExpression:
		a.expr(e.Argument, s)

	case *ast.AssignmentExpression:
		a.expr(e.Left, s)
		a.expr(e.Right, s)

	case *ast.ConditionalExpression:
		a.expr(e.Test, s)
		a.expr(e.Consequent, s)
		a.expr(e.Alternate, s)

	case *ast.SequenceExpression:
		a.exprs(e.Expressions, s)

	case *ast.ArrayExpression:
		a.exprs(e.Elements, s)

	case *ast.ObjectExpression:
		for _, m := range e.Properties {
			switch m := m.(type) {
			case *ast.Property:
				if m.Computed {
					a.expr(m.Key, s)
				}
				if v, ok := m.Value.(ast.Expression); ok {
					a.expr(v, s)
				}
			case *ast.SpreadElement:
				a.expr(m.Argument, s)
			}
		}

	case *ast.SpreadElement:
		a.expr(e.Argument, s)

	case *ast.TemplateLiteral:
		a.exprs(e.Expressions, s)

	case *ast.TaggedTemplateExpression:
		a.expr(e.Tag, s)
		a.exprs(e.Quasi.Expressions, s)

	case *ast.AwaitExpression:
		a.expr(e.Argument, s)

	case *ast.YieldExpression:
		if e.Argument != nil {
			a.expr(e.Argument, s)
		}
	}
}

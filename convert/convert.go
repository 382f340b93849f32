package convert

import (
	"go.uber.org/zap"

	"github.com/wippyai/esmconv/ast"
	"github.com/wippyai/esmconv/js"
	"github.com/wippyai/esmconv/match"
	"github.com/wippyai/esmconv/rename"
	"github.com/wippyai/esmconv/scope"
)

const (
	slotExported match.Slot = "exported"
	slotReturned match.Slot = "returned"
	slotGetter   match.Slot = "getter"
)

// Converter recovers module syntax from bundled programs. Patterns are
// built once in New; a Converter is safe for concurrent use on distinct
// programs.
type Converter struct {
	marker  match.Pattern
	definer match.Pattern
	cfg     Config
}

// New builds a converter for cfg. An invalid cfg yields a converter that
// matches nothing.
func New(cfg Config) *Converter {
	alts := make([]match.Pattern, len(cfg.Namespaces))
	for i, ns := range cfg.Namespaces {
		alts[i] = match.Ident(ns)
	}
	ns := match.OneOf(alts...)

	return &Converter{
		cfg: cfg,
		// ns.r(exports)
		marker: match.ExprStmt(match.Call(
			match.ConstMember(ns, cfg.Marker),
			match.AnyIdent(),
		)),
		// ns.d(exports, "name", function () { return local; })
		definer: match.ExprStmt(match.Call(
			match.ConstMember(ns, cfg.Definer),
			match.AnyIdent(),
			match.Capture(slotExported, match.AnyString()),
			match.Capture(slotGetter, match.Func(nil, nil, match.Block(
				match.Return(match.Capture(slotReturned, match.AnyIdent())),
			))),
		)),
	}
}

var defaultConverter = New(DefaultConfig())

// ConvertModuleSyntax rewrites webpack export helpers at the top level of
// prog into module syntax, in place, using DefaultConfig. Statements it
// cannot convert safely are left unchanged.
func ConvertModuleSyntax(prog *ast.Program) {
	defaultConverter.Run(prog)
}

// Run converts prog in place and reports what it did. Only direct children
// of the program body are examined, in source order.
func (c *Converter) Run(prog *ast.Program) *Report {
	rep := &Report{}
	log := Logger()

	for i := 0; i < len(prog.Body); {
		stmt := prog.Body[i]

		if match.Match(c.marker, stmt).Matched {
			prog.SourceType = ast.SourceModule
			prog.Remove(i)
			rep.Markers++
			log.Debug("removed module marker", zap.Int("index", i))
			continue
		}

		r := match.Match(c.definer, stmt)
		if !r.Matched {
			i++
			continue
		}

		exported, _ := r.Value(slotExported)
		local, _ := r.Value(slotReturned)
		getter := r.Node(slotGetter)

		reason, form := c.export(prog, getter, exported, local)
		if reason != "" {
			rep.Skipped = append(rep.Skipped, Skip{Name: exported, Local: local, Reason: reason})
			log.Debug("left export definition unchanged",
				zap.String("export", exported),
				zap.String("local", local),
				zap.String("reason", string(reason)))
			i++
			continue
		}

		// Splitting a declaration may have shifted the definer.
		i = prog.IndexOf(stmt)
		prog.Remove(i)
		rep.Converted = append(rep.Converted, Export{Name: exported, Local: local, Form: form})
		log.Debug("converted export definition",
			zap.String("export", exported),
			zap.String("local", local),
			zap.String("form", string(form)))
	}

	rep.Module = prog.SourceType == ast.SourceModule
	return rep
}

// export rewrites the declaration behind one matched definer call. It
// returns a skip reason when the program was left unchanged.
func (c *Converter) export(prog *ast.Program, getter ast.Node, exported, local string) (SkipReason, ExportForm) {
	// Earlier rewrites invalidate any previous analysis.
	info := scope.Analyze(prog)
	s := info.ScopeOf(getter)
	if s == nil {
		return SkipUnresolved, ""
	}
	b := s.FindBinding(local)
	if b == nil {
		return SkipUnresolved, ""
	}
	decl := b.DeclaringStatement()
	if decl == nil {
		return SkipNoDeclaration, ""
	}
	if b.IsExported() {
		return SkipAlreadyExported, ""
	}
	if !b.IsTopLevel() {
		return SkipNotTopLevel, ""
	}
	at := prog.IndexOf(decl)
	if at < 0 {
		return SkipNotTopLevel, ""
	}
	vd, isVar := decl.(*ast.VariableDeclaration)
	if isVar && declaratorIndex(vd, b.Identifier) < 0 {
		return SkipDestructured, ""
	}

	if exported == "default" {
		if !canUnwrapDefault(decl, b, getter) {
			return SkipSharedDefault, ""
		}
	} else {
		if !isIdentifierName(exported) {
			return SkipInvalidName, ""
		}
		if c.cfg.CheckCollisions {
			if conflicts := rename.Conflicts(b, exported); len(conflicts) > 0 {
				return SkipCollision, ""
			}
		}
	}

	if isVar {
		decl, at = isolate(prog, at, vd, declaratorIndex(vd, b.Identifier))
	}

	if exported == "default" {
		prog.Replace(at, defaultExport(decl))
		return "", FormDefault
	}
	rename.Fast(b, exported)
	prog.Replace(at, &ast.ExportNamedDeclaration{Declaration: decl})
	return "", FormNamed
}

// canUnwrapDefault reports whether decl can become a default export. A
// variable is unwrapped to its initializer, which drops the local name, so
// it needs an initializer and the getter must be the sole reader.
func canUnwrapDefault(decl ast.Statement, b *scope.Binding, getter ast.Node) bool {
	switch d := decl.(type) {
	case *ast.FunctionDeclaration, *ast.ClassDeclaration:
		return true
	case *ast.VariableDeclaration:
		k := declaratorIndex(d, b.Identifier)
		if k < 0 || d.Declarations[k].Init == nil {
			return false
		}
		for _, r := range b.References {
			if !within(r.Identifier, getter) {
				return false
			}
		}
		return true
	}
	return false
}

// defaultExport wraps a function or class declaration, or unwraps a
// single-declarator variable declaration to its initializer.
func defaultExport(decl ast.Statement) *ast.ExportDefaultDeclaration {
	if d, ok := decl.(*ast.VariableDeclaration); ok {
		return &ast.ExportDefaultDeclaration{Declaration: d.Declarations[0].Init}
	}
	return &ast.ExportDefaultDeclaration{Declaration: decl}
}

// declaratorIndex returns the declarator whose target is exactly id, or -1
// when id is bound inside a destructuring pattern.
func declaratorIndex(d *ast.VariableDeclaration, id *ast.Identifier) int {
	for i, decl := range d.Declarations {
		if decl.ID == id {
			return i
		}
	}
	return -1
}

// isolate splits the declaration at index at so that declarator k stands in
// a declaration of its own. Declarators before and after it keep their
// order in separate declarations of the same kind. It returns the new
// declaration and its index.
func isolate(prog *ast.Program, at int, d *ast.VariableDeclaration, k int) (*ast.VariableDeclaration, int) {
	if len(d.Declarations) == 1 {
		return d, at
	}
	own := &ast.VariableDeclaration{DeclKind: d.DeclKind, Declarations: []*ast.VariableDeclarator{d.Declarations[k]}}
	var stmts []ast.Statement
	pos := at
	if k > 0 {
		stmts = append(stmts, &ast.VariableDeclaration{DeclKind: d.DeclKind, Declarations: d.Declarations[:k:k]})
		pos++
	}
	stmts = append(stmts, own)
	if k < len(d.Declarations)-1 {
		stmts = append(stmts, &ast.VariableDeclaration{DeclKind: d.DeclKind, Declarations: d.Declarations[k+1:]})
	}
	prog.Splice(at, stmts...)
	return own, pos
}

// within reports whether id occurs in the subtree rooted at root.
func within(id *ast.Identifier, root ast.Node) bool {
	found := false
	ast.Inspect(root, func(n ast.Node) bool {
		if n == ast.Node(id) {
			found = true
		}
		return !found
	})
	return found
}

func isIdentifierName(name string) bool {
	if name == "" || js.IsReserved(name) {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_' || r == '$':
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}

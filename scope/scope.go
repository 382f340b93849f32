package scope

import (
	"github.com/wippyai/esmconv/ast"
)

// Kind distinguishes scopes that hoist var and function declarations from
// plain block scopes.
type Kind uint8

const (
	KindProgram Kind = iota
	KindFunction
	KindBlock
)

func (k Kind) String() string {
	switch k {
	case KindProgram:
		return "program"
	case KindFunction:
		return "function"
	}
	return "block"
}

// BindingKind records how a name was introduced.
type BindingKind uint8

const (
	BindingVar BindingKind = iota
	BindingLet
	BindingConst
	BindingFunction
	BindingClass
	BindingParam
	// BindingFunctionName is the self name of a named function expression.
	BindingFunctionName
	// BindingClassName is the inner name of a named class expression.
	BindingClassName
	BindingCatch
)

var bindingKindNames = [...]string{
	BindingVar:          "var",
	BindingLet:          "let",
	BindingConst:        "const",
	BindingFunction:     "function",
	BindingClass:        "class",
	BindingParam:        "param",
	BindingFunctionName: "function-name",
	BindingClassName:    "class-name",
	BindingCatch:        "catch",
}

func (k BindingKind) String() string {
	if int(k) < len(bindingKindNames) {
		return bindingKindNames[k]
	}
	return "unknown"
}

// Reference is one identifier occurrence that reads or writes a name.
type Reference struct {
	Identifier *ast.Identifier
	// Scope is the scope the occurrence appears in.
	Scope *Scope
	// Binding is nil for names with no declaration in the program.
	Binding *Binding
}

// Binding is a declared name together with every occurrence that refers
// to it.
type Binding struct {
	// Identifier is the first declaring occurrence.
	Identifier *ast.Identifier
	Scope      *Scope
	decl       ast.Statement
	container  ast.Node
	Name       string
	// References excludes Identifier itself. Repeated declarations of the
	// same var are recorded here.
	References []Reference
	Kind       BindingKind
}

// DeclaringStatement returns the VariableDeclaration, FunctionDeclaration or
// ClassDeclaration that introduced the binding. Parameters, catch bindings
// and the self names of function and class expressions have none.
func (b *Binding) DeclaringStatement() ast.Statement {
	return b.decl
}

// Container returns the node whose statement list or declaration slot holds
// the declaring statement: the Program, a BlockStatement, a SwitchCase, a
// loop or other compound statement, or an export declaration. It is nil when DeclaringStatement is nil.
func (b *Binding) Container() ast.Node {
	return b.container
}

// IsTopLevel reports whether the declaring statement sits directly in the
// program body.
func (b *Binding) IsTopLevel() bool {
	_, ok := b.container.(*ast.Program)
	return ok
}

// IsExported reports whether the declaring statement is already wrapped in
// an export declaration.
func (b *Binding) IsExported() bool {
	switch b.container.(type) {
	case *ast.ExportNamedDeclaration, *ast.ExportDefaultDeclaration:
		return true
	}
	return false
}

// Scope is one lexical scope. Function bodies share the scope of their
// function; other blocks get their own.
type Scope struct {
	Node     ast.Node
	Parent   *Scope
	bindings map[string]*Binding
	Children []*Scope
	order    []*Binding
	refs     []Reference
	Kind     Kind
}

func newScope(kind Kind, node ast.Node, parent *Scope) *Scope {
	s := &Scope{Kind: kind, Node: node, Parent: parent, bindings: make(map[string]*Binding)}
	if parent != nil {
		parent.Children = append(parent.Children, s)
	}
	return s
}

// Lookup returns the binding declared directly in s, or nil.
func (s *Scope) Lookup(name string) *Binding {
	return s.bindings[name]
}

// FindBinding resolves name from s outward. It returns nil when no
// enclosing scope declares the name.
func (s *Scope) FindBinding(name string) *Binding {
	for cur := s; cur != nil; cur = cur.Parent {
		if b, ok := cur.bindings[name]; ok {
			return b
		}
	}
	return nil
}

// Bindings returns the bindings declared directly in s in declaration
// order.
func (s *Scope) Bindings() []*Binding {
	return s.order
}

// References returns the identifier occurrences that appear directly in s,
// resolved or not.
func (s *Scope) References() []Reference {
	return s.refs
}

// Contains reports whether other is s or nested inside it.
func (s *Scope) Contains(other *Scope) bool {
	for cur := other; cur != nil; cur = cur.Parent {
		if cur == s {
			return true
		}
	}
	return false
}

// hoistTarget is the nearest function or program scope.
func (s *Scope) hoistTarget() *Scope {
	cur := s
	for cur.Kind == KindBlock && cur.Parent != nil {
		cur = cur.Parent
	}
	return cur
}

// Info is the result of analyzing one program. It is a snapshot: any
// mutation of the tree makes it stale and the program must be analyzed
// again.
type Info struct {
	Root       *Scope
	scopes     map[ast.Node]*Scope
	idents     map[*ast.Identifier]*Binding
	Unresolved []Reference
}

// ScopeOf returns the scope created by a Program, a function-like node, a
// BlockStatement, a for loop, a CatchClause, a SwitchStatement or a named
// ClassExpression, or nil. A function body block maps to its function's
// scope.
func (i *Info) ScopeOf(n ast.Node) *Scope {
	return i.scopes[n]
}

// BindingOf returns the binding an identifier declares or refers to. It
// returns nil for free names and for identifiers that are not references,
// such as property keys.
func (i *Info) BindingOf(id *ast.Identifier) *Binding {
	return i.idents[id]
}

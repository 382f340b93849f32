// Package rename rewrites every occurrence of a resolved binding.
package rename

import (
	"github.com/wippyai/esmconv/ast"
	"github.com/wippyai/esmconv/scope"
)

// Fast renames b to name by rewriting its declaring identifier and every
// recorded reference in place. It does not check whether the new name
// collides with or shadows another binding; use Conflicts for that.
func Fast(b *scope.Binding, name string) {
	if b == nil || b.Name == name {
		return
	}
	b.Identifier.Name = name
	for _, r := range b.References {
		r.Identifier.Name = name
	}
	b.Name = name
}

// Conflict is one reason renaming a binding would change what a name
// refers to.
type Conflict struct {
	// Binding is the existing binding involved. It is nil when the captured
	// reference is a free name such as a global.
	Binding *scope.Binding
	// Reference is the occurrence whose resolution would change, or nil when
	// the new name is already declared in the binding's own scope.
	Reference *ast.Identifier
}

// Conflicts reports every way renaming b to name would alter the program:
//
//   - name is already declared in b's scope
//   - a reference to b sits under an inner scope that declares name, so
//     the inner declaration would capture it
//   - a reference to an outer or free name sits inside b's scope, so the
//     renamed b would shadow it
//
// The analysis behind b must be current.
func Conflicts(b *scope.Binding, name string) []Conflict {
	if b == nil || b.Name == name {
		return nil
	}
	var out []Conflict

	if existing := b.Scope.Lookup(name); existing != nil {
		out = append(out, Conflict{Binding: existing})
	}

	for _, r := range b.References {
		for s := r.Scope; s != nil && s != b.Scope; s = s.Parent {
			if inner := s.Lookup(name); inner != nil {
				out = append(out, Conflict{Binding: inner, Reference: r.Identifier})
				break
			}
		}
	}

	var visit func(s *scope.Scope)
	visit = func(s *scope.Scope) {
		for _, r := range s.References() {
			if r.Identifier.Name != name {
				continue
			}
			// Names bound inside b's subtree keep resolving there; a same
			// scope binding was reported above.
			if r.Binding == nil || !b.Scope.Contains(r.Binding.Scope) {
				out = append(out, Conflict{Binding: r.Binding, Reference: r.Identifier})
			}
		}
		for _, c := range s.Children {
			visit(c)
		}
	}
	visit(b.Scope)

	return out
}

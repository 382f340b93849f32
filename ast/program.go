package ast

// IndexOf returns the position of s in the top-level body, or -1.
func (p *Program) IndexOf(s Statement) int {
	for i, st := range p.Body {
		if st == s {
			return i
		}
	}
	return -1
}

// Replace swaps the top-level statement at i for s.
func (p *Program) Replace(i int, s Statement) {
	p.Body[i] = s
}

// Splice replaces the top-level statement at i with stmts, in order.
func (p *Program) Splice(i int, stmts ...Statement) {
	rest := append([]Statement(nil), p.Body[i+1:]...)
	p.Body = append(append(p.Body[:i], stmts...), rest...)
}

// Remove deletes the top-level statement at i, keeping sibling order.
func (p *Program) Remove(i int) {
	copy(p.Body[i:], p.Body[i+1:])
	p.Body[len(p.Body)-1] = nil
	p.Body = p.Body[:len(p.Body)-1]
}

// DeclaredNames returns the binding names a declaration statement
// introduces in its own scope.
func DeclaredNames(s Statement) []string {
	switch d := s.(type) {
	case *VariableDeclaration:
		var names []string
		for _, decl := range d.Declarations {
			for _, id := range PatternIdentifiers(decl.ID) {
				names = append(names, id.Name)
			}
		}
		return names
	case *FunctionDeclaration:
		if d.ID != nil {
			return []string{d.ID.Name}
		}
	case *ClassDeclaration:
		if d.ID != nil {
			return []string{d.ID.Name}
		}
	}
	return nil
}

// PatternIdentifiers returns the identifiers a binding pattern declares, in
// source order. Default values are not searched.
func PatternIdentifiers(p Pattern) []*Identifier {
	var out []*Identifier
	var walk func(Node)
	walk = func(n Node) {
		switch n := n.(type) {
		case *Identifier:
			out = append(out, n)
		case *AssignmentPattern:
			walk(n.Left)
		case *RestElement:
			walk(n.Argument)
		case *ArrayPattern:
			for _, e := range n.Elements {
				if e != nil {
					walk(e)
				}
			}
		case *ObjectPattern:
			for _, m := range n.Properties {
				switch m := m.(type) {
				case *Property:
					walk(m.Value)
				case *RestElement:
					walk(m)
				}
			}
		}
	}
	if !isNil(p) {
		walk(p)
	}
	return out
}

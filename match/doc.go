// Package match provides declarative tree-shape matching over ast nodes.
//
// A Pattern mirrors a subset of the node kinds and can embed named capture
// points:
//
//	ret := match.Slot("returned")
//	p := match.Func(nil, nil, match.Block(
//	    match.Return(match.Capture(ret, match.AnyIdent())),
//	))
//
//	if r := match.Match(p, node); r.Matched {
//	    name, _ := r.Value(ret)
//	    ...
//	}
//
// Captures come back in the Result instead of being written to shared
// cells, so a failed match never exposes partial captures.
//
// Patterns never match dynamically computed access: ConstMember only
// accepts object.property with a literal property name.
package match

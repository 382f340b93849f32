// Package ast defines the JavaScript syntax tree rewritten by esmconv.
//
// The tree covers the script grammar that bundler output is built from:
// declarations with destructuring patterns, loops, try and switch, arrow,
// async and generator functions, classes, template and regular expression
// literals, plus the two export forms the converter produces.
//
// Node is a closed sum type. Consumers switch on the concrete type or on
// Kind():
//
//	switch n := node.(type) {
//	case *ast.CallExpression:
//	    ...
//	case *ast.Identifier:
//	    ...
//	}
//
// Every node exclusively owns its children and the tree never contains
// cycles. Identifiers are shared by pointer between the tree and any
// analysis built over it, so renaming an *Identifier renames that site in
// the tree.
package ast

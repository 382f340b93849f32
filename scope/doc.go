// Package scope resolves identifier references to their declarations.
//
// Analyze walks a program once and builds a tree of scopes:
//
//   - the program scope
//   - one function scope per function declaration, function expression,
//     arrow function and class method, shared with the function's body block
//   - one block scope per other block statement, for loop head, catch
//     clause and switch body
//   - one block scope holding the inner name of a named class expression
//
// Destructuring patterns declare every name they bind. Defaults and
// computed keys inside a pattern are ordinary references.
//
// var and function declarations hoist to the nearest function or program
// scope. let, const and class declarations stay in the block they appear in.
// Non-computed member properties, object keys and method names are not
// references.
//
// The result is a snapshot of the tree at analysis time. After the tree is
// edited, call Analyze again before trusting any binding it reports.
package scope

package js

import (
	"github.com/wippyai/esmconv/ast"
	"github.com/wippyai/esmconv/js/internal/parser"
	"github.com/wippyai/esmconv/js/internal/printer"
	"github.com/wippyai/esmconv/js/internal/token"
)

// Parse parses source into a program. The program is a module when it
// contains export declarations and a script otherwise.
func Parse(source string) (*ast.Program, error) {
	tokens, err := token.Tokenize(source)
	if err != nil {
		return nil, err
	}
	return parser.New(tokens).Parse()
}

// Print renders prog as source text, one top-level statement per line.
func Print(prog *ast.Program) string {
	return printer.Print(prog)
}

// PrintNode renders a single node.
func PrintNode(n ast.Node) string {
	return printer.PrintNode(n)
}

// Quote renders s as a double-quoted string literal.
func Quote(s string) string {
	return printer.Quote(s)
}

// IsReserved reports whether word cannot be used as a binding name.
func IsReserved(word string) bool {
	return parser.IsReserved(word)
}

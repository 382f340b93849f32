// Package esmconv turns webpack-bundled modules back into ES module source.
//
// Webpack compiles `export` declarations into calls on its runtime helper.
// esmconv recognizes those calls at the top level of a module and rewrites
// them into the export syntax they came from, leaving anything it cannot
// prove safe untouched.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	esmconv/        Root package with the one-call Convert API
//	├── ast/        Syntax tree for the supported JavaScript subset
//	├── js/         Tokenizer, parser and printer
//	├── match/      Declarative tree-shape patterns with captures
//	├── scope/      Scope analysis and binding resolution
//	├── rename/     Binding rename and collision checks
//	├── convert/    Module syntax recovery pipeline and its config
//	├── eval/       Export comparison on an embedded JavaScript VM
//	├── errors/     Structured error types for debugging
//	└── cmd/        esmconv command line tool
//
// # Quick Start
//
// Convert a bundled module:
//
//	out, report, err := esmconv.Convert(src, convert.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	fmt.Print(out)
//	fmt.Println(report)
//
// Work on the tree directly:
//
//	prog, err := js.Parse(src)
//	if err != nil {
//	    return err
//	}
//	convert.ConvertModuleSyntax(prog)
//	fmt.Print(js.Print(prog))
//
// # Safety
//
// Conversion never fails on input it does not recognize. A definer call
// whose getter cannot be traced to a plain top-level declaration is left in
// place and listed in the report. ConvertVerified additionally executes the
// original and converted programs and compares their exports.
package esmconv

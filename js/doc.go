// Package js parses and prints the JavaScript subset that bundler runtime
// output is written in.
//
// Basic usage:
//
//	prog, err := js.Parse(`require.r(exports); var x = 1;`)
//	if err != nil {
//	    return err
//	}
//	fmt.Print(js.Print(prog))
//
// Supported syntax:
//   - var, let and const declarations with destructuring patterns
//   - function, async function, generator and class declarations
//   - function, arrow and class expressions; default and rest parameters
//   - if/else, for, for-in, for-of, while, do-while, switch, try/catch/finally,
//     throw, labeled statements, break and continue
//   - calls, new, member access, optional chaining and spread
//   - every unary, update, binary, logical, conditional, assignment and
//     comma operator, plus await and yield
//   - template, regular expression, array and object literals, including
//     methods, accessors and computed keys
//   - export default and export of declarations
//   - line and block comments, automatic semicolon insertion
//
// Not supported: imports and export lists, class fields and static blocks,
// destructuring assignment, for await and with. These produce an
// errors.KindUnsupported parse error.
//
// Printing is deterministic: two-space indentation, parentheses only where
// precedence requires them, and string literals keep their original quoting.
package js

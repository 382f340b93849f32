// Package errors provides structured error types for esmconv.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes rich context: file, line/column, offending token, and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseParse, errors.KindUnexpectedToken).
//		At(3, 14).
//		Token("}").
//		Detail("expected expression").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.Syntax(3, 14, "invalid assignment target")
//	err := errors.Unterminated(1, 9, "string literal")
//
// The conversion pipeline itself never fails; these errors come from the
// front end, configuration loading and the evaluator.
//
// All errors implement the standard error interface and support errors.Is/As.
package errors

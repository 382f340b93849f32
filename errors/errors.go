package errors

import (
	"fmt"
	"strconv"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseLoad    Phase = "load"    // reading source files
	PhaseConfig  Phase = "config"  // converter configuration
	PhaseParse   Phase = "parse"   // JavaScript parsing
	PhaseConvert Phase = "convert" // module syntax recovery
	PhasePrint   Phase = "print"   // printing a tree back to source
	PhaseEval    Phase = "eval"    // evaluating a program for exports
)

// Kind categorizes the error
type Kind string

const (
	KindSyntax          Kind = "syntax"
	KindUnexpectedToken Kind = "unexpected_token"
	KindUnterminated    Kind = "unterminated"
	KindUnsupported     Kind = "unsupported"
	KindInvalidInput    Kind = "invalid_input"
	KindNotFound        Kind = "not_found"
	KindRuntime         Kind = "runtime"
	KindMismatch        Kind = "mismatch"
)

// Error is the structured error type used throughout esmconv
type Error struct {
	Cause  error
	Phase  Phase
	Kind   Kind
	File   string
	Token  string
	Detail string
	Line   int
	Column int
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.File != "" || e.Line > 0 {
		b.WriteString(" at ")
		if e.File != "" {
			b.WriteString(e.File)
			if e.Line > 0 {
				b.WriteByte(':')
			}
		}
		if e.Line > 0 {
			b.WriteString(strconv.Itoa(e.Line))
			b.WriteByte(':')
			b.WriteString(strconv.Itoa(e.Column))
		}
	}

	if e.Token != "" {
		b.WriteString(": token ")
		b.WriteString(strconv.Quote(e.Token))
	}

	if e.Detail != "" {
		if e.Token != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// At sets the source position
func (b *Builder) At(line, column int) *Builder {
	b.err.Line = line
	b.err.Column = column
	return b
}

// File sets the source file name
func (b *Builder) File(name string) *Builder {
	b.err.File = name
	return b
}

// Token sets the offending token text
func (b *Builder) Token(tok string) *Builder {
	b.err.Token = tok
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// Syntax creates a syntax error at a source position
func Syntax(line, column int, detail string) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindSyntax,
		Line:   line,
		Column: column,
		Detail: detail,
	}
}

// UnexpectedToken creates an error for a token the parser cannot accept
func UnexpectedToken(line, column int, tok, expected string) *Error {
	e := &Error{
		Phase:  PhaseParse,
		Kind:   KindUnexpectedToken,
		Line:   line,
		Column: column,
		Token:  tok,
	}
	if expected != "" {
		e.Detail = "expected " + expected
	}
	return e
}

// Unterminated creates an error for an unclosed literal or comment
func Unterminated(line, column int, what string) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindUnterminated,
		Line:   line,
		Column: column,
		Detail: "unterminated " + what,
	}
}

// Unsupported creates an unsupported construct error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// Runtime creates an evaluation failure error
func Runtime(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseEval,
		Kind:   KindRuntime,
		Detail: detail,
		Cause:  cause,
	}
}

// Mismatch creates an error for programs whose exports differ
func Mismatch(detail string) *Error {
	return &Error{
		Phase:  PhaseEval,
		Kind:   KindMismatch,
		Detail: detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// Load creates a source loading error
func Load(file string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInvalidInput,
		File:   file,
		Detail: "read source",
		Cause:  cause,
	}
}

// WithFile returns err annotated with a file name when it is an *Error.
// Other errors are returned unchanged.
func WithFile(err error, file string) error {
	if e, ok := err.(*Error); ok && e.File == "" {
		cp := *e
		cp.File = file
		return &cp
	}
	return err
}

package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseParse,
				Kind:   KindUnexpectedToken,
				File:   "chunk.js",
				Line:   3,
				Column: 14,
				Token:  "}",
				Detail: "expected expression",
			},
			contains: []string{"[parse]", "unexpected_token", "chunk.js:3:14", `"}"`, "expected expression"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseConvert,
				Kind:  KindUnsupported,
			},
			contains: []string{"[convert]", "unsupported"},
		},
		{
			name: "position without file",
			err: &Error{
				Phase:  PhaseParse,
				Kind:   KindSyntax,
				Line:   7,
				Column: 1,
			},
			contains: []string{"at 7:1"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseEval,
				Kind:   KindRuntime,
				Detail: "run program",
				Cause:  errors.New("ReferenceError: x is not defined"),
			},
			contains: []string{"[eval]", "runtime", "run program", "caused by", "ReferenceError"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseLoad,
		Kind:  KindInvalidInput,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}

	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase: PhaseParse,
		Kind:  KindSyntax,
		Line:  2,
	}

	if !err.Is(&Error{Phase: PhaseParse, Kind: KindSyntax}) {
		t.Error("Is should match same phase and kind")
	}
	if err.Is(&Error{Phase: PhaseEval, Kind: KindSyntax}) {
		t.Error("Is should not match different phase")
	}
	if err.Is(&Error{Phase: PhaseParse, Kind: KindUnterminated}) {
		t.Error("Is should not match different kind")
	}

	target := &Error{Phase: PhaseParse, Kind: KindSyntax}
	if !errors.Is(err, target) {
		t.Error("errors.Is should match")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseParse, KindUnexpectedToken).
		File("main.js").
		At(4, 2).
		Token(")").
		Cause(cause).
		Detail("expected %s, got %s", "identifier", ")").
		Build()

	if err.Phase != PhaseParse {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseParse)
	}
	if err.Kind != KindUnexpectedToken {
		t.Errorf("Kind = %v, want %v", err.Kind, KindUnexpectedToken)
	}
	if err.File != "main.js" || err.Line != 4 || err.Column != 2 {
		t.Errorf("position = %s:%d:%d, want main.js:4:2", err.File, err.Line, err.Column)
	}
	if err.Token != ")" {
		t.Errorf("Token = %q, want ')'", err.Token)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "expected identifier, got )" {
		t.Errorf("Detail = %v, want 'expected identifier, got )'", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("Syntax", func(t *testing.T) {
		err := Syntax(1, 5, "invalid assignment target")
		if err.Kind != KindSyntax || err.Phase != PhaseParse {
			t.Errorf("got %v/%v, want parse/syntax", err.Phase, err.Kind)
		}
	})

	t.Run("UnexpectedToken", func(t *testing.T) {
		err := UnexpectedToken(2, 3, "else", "expression")
		if err.Detail != "expected expression" {
			t.Errorf("Detail = %q", err.Detail)
		}
		if err.Token != "else" {
			t.Errorf("Token = %q", err.Token)
		}
	})

	t.Run("Unterminated", func(t *testing.T) {
		err := Unterminated(1, 9, "string literal")
		if err.Kind != KindUnterminated {
			t.Errorf("Kind = %v, want %v", err.Kind, KindUnterminated)
		}
		if !strings.Contains(err.Detail, "string literal") {
			t.Errorf("Detail = %q", err.Detail)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		err := NotFound(PhaseConfig, "config file", "esmconv.toml")
		if err.Kind != KindNotFound {
			t.Errorf("Kind = %v, want %v", err.Kind, KindNotFound)
		}
		if !strings.Contains(err.Detail, `"esmconv.toml"`) {
			t.Errorf("Detail = %q", err.Detail)
		}
	})

	t.Run("Runtime", func(t *testing.T) {
		cause := errors.New("boom")
		err := Runtime("evaluate", cause)
		if err.Phase != PhaseEval || !errors.Is(err, cause) {
			t.Errorf("unexpected runtime error %v", err)
		}
	})

	t.Run("Load", func(t *testing.T) {
		err := Load("a.js", errors.New("permission denied"))
		if err.File != "a.js" || err.Phase != PhaseLoad {
			t.Errorf("unexpected load error %v", err)
		}
	})
}

func TestWithFile(t *testing.T) {
	orig := Syntax(1, 1, "bad")
	got := WithFile(orig, "x.js")

	var e *Error
	if !errors.As(got, &e) {
		t.Fatalf("WithFile returned %T", got)
	}
	if e.File != "x.js" {
		t.Errorf("File = %q, want x.js", e.File)
	}
	if orig.File != "" {
		t.Error("WithFile must not mutate the original error")
	}

	plain := errors.New("plain")
	if WithFile(plain, "x.js") != plain {
		t.Error("non-structured errors should pass through")
	}
}

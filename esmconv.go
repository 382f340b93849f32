package esmconv

import (
	"context"

	"github.com/wippyai/esmconv/ast"
	"github.com/wippyai/esmconv/convert"
	"github.com/wippyai/esmconv/errors"
	"github.com/wippyai/esmconv/eval"
	"github.com/wippyai/esmconv/js"
)

// Result is the outcome of converting one source unit.
type Result struct {
	Report *convert.Report
	// Program is the converted tree.
	Program *ast.Program
	Output  string
}

// Convert parses source, recovers its module syntax using cfg and prints
// the result.
func Convert(source string, cfg convert.Config) (string, *convert.Report, error) {
	res, err := ConvertSource(source, cfg)
	if err != nil {
		return "", nil, err
	}
	return res.Output, res.Report, nil
}

// ConvertSource is Convert returning the converted tree as well.
func ConvertSource(source string, cfg convert.Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	prog, err := js.Parse(source)
	if err != nil {
		return nil, err
	}
	rep := convert.New(cfg).Run(prog)
	return &Result{Program: prog, Report: rep, Output: js.Print(prog)}, nil
}

// ConvertVerified converts source and then runs the original and the
// converted program side by side, failing with a mismatch error if their
// exports differ.
func ConvertVerified(ctx context.Context, source string, cfg convert.Config) (*Result, error) {
	res, err := ConvertSource(source, cfg)
	if err != nil {
		return nil, err
	}
	if !res.Report.Changed() {
		return res, nil
	}
	before, err := js.Parse(source)
	if err != nil {
		return nil, err
	}
	if err := eval.Verify(ctx, before, res.Program); err != nil {
		return res, err
	}
	return res, nil
}

// IsMismatch reports whether err came from a failed export comparison.
func IsMismatch(err error) bool {
	e, ok := err.(*errors.Error)
	return ok && e.Phase == errors.PhaseEval && e.Kind == errors.KindMismatch
}

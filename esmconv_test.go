package esmconv

import (
	"context"
	"testing"

	"github.com/wippyai/esmconv/convert"
	"github.com/wippyai/esmconv/errors"
)

const bundled = `require.r(exports);
require.d(exports, "default", function () { return f; });
require.d(exports, "counter", function () { return g; });
let f = 1 + 2;
let g = 1;
`

func TestConvert(t *testing.T) {
	out, rep, err := Convert(bundled, convert.DefaultConfig())
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	want := "export default 1 + 2;\nexport let counter = 1;\n"
	if out != want {
		t.Errorf("got:\n%s\nwant:\n%s", out, want)
	}
	if !rep.Module || len(rep.Converted) != 2 {
		t.Errorf("report = %s", rep)
	}
}

func TestConvertErrors(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		cfg   convert.Config
		phase errors.Phase
	}{
		{"parse error", "var = 1;", convert.DefaultConfig(), errors.PhaseParse},
		{"invalid config", "var a = 1;", convert.Config{}, errors.PhaseConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Convert(tt.src, tt.cfg)
			e, ok := err.(*errors.Error)
			if !ok {
				t.Fatalf("got %v, want *errors.Error", err)
			}
			if e.Phase != tt.phase {
				t.Errorf("phase = %s, want %s", e.Phase, tt.phase)
			}
		})
	}
}

func TestConvertVerified(t *testing.T) {
	src := `require.r(exports);
require.d(exports, "add", function () { return a; });
function a(x, y) { return x + y; }
`
	res, err := ConvertVerified(context.Background(), src, convert.DefaultConfig())
	if err != nil {
		t.Fatalf("ConvertVerified: %v", err)
	}
	if want := "export function add(x, y) {\n  return x + y;\n}\n"; res.Output != want {
		t.Errorf("got:\n%s\nwant:\n%s", res.Output, want)
	}

	// Nothing to convert: the programs are not evaluated.
	res, err = ConvertVerified(context.Background(), "undefinedCall();", convert.DefaultConfig())
	if err != nil {
		t.Fatalf("ConvertVerified: %v", err)
	}
	if res.Report.Changed() {
		t.Error("unexpected change")
	}
}

func TestIsMismatch(t *testing.T) {
	if !IsMismatch(errors.Mismatch("x")) {
		t.Error("IsMismatch(mismatch) = false")
	}
	if IsMismatch(errors.Runtime("x", nil)) {
		t.Error("IsMismatch(runtime) = true")
	}
	if IsMismatch(nil) {
		t.Error("IsMismatch(nil) = true")
	}
}

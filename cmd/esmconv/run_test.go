package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/wippyai/esmconv/convert"
)

const bundledSource = `require.r(exports);
require.d(exports, "counter", function () { return f; });
var f = 1;
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestCollectInputs(t *testing.T) {
	dir := t.TempDir()
	b := writeFile(t, dir, "b.js", "")
	a := writeFile(t, dir, "a.js", "")
	writeFile(t, dir, "notes.txt", "")
	if err := os.Mkdir(filepath.Join(dir, "sub.js"), 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := collectInputs([]string{dir, "-"})
	if err != nil {
		t.Fatalf("collectInputs: %v", err)
	}
	if diff := cmp.Diff([]string{a, b, "-"}, got); diff != "" {
		t.Errorf("inputs mismatch (-want +got):\n%s", diff)
	}

	if _, err := collectInputs([]string{filepath.Join(dir, "missing.js")}); err == nil {
		t.Error("expected error for missing input")
	}
	empty := t.TempDir()
	if _, err := collectInputs([]string{empty}); err == nil {
		t.Error("expected error for directory without .js files")
	}
}

func TestRunOutputs(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "mod.js", bundledSource)

	tests := []struct {
		name     string
		opts     options
		contains []string
	}{
		{
			name:     "converted source",
			opts:     options{},
			contains: []string{"export var counter = 1;"},
		},
		{
			name:     "diff",
			opts:     options{diff: true},
			contains: []string{"--- " + path, "+export var counter = 1;", "-require.r(exports);"},
		},
		{
			name:     "report",
			opts:     options{report: true},
			contains: []string{"file = ", "markers = 1", "name = 'counter'", "form = 'named'"},
		},
		{
			name:     "ast dump",
			opts:     options{ast: true},
			contains: []string{"ExportNamedDeclaration"},
		},
		{
			name:     "verified",
			opts:     options{verify: true},
			contains: []string{"export var counter = 1;"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.opts.config = convert.DefaultConfig()
			var out bytes.Buffer
			if err := run([]string{path}, tt.opts, &out); err != nil {
				t.Fatalf("run: %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(out.String(), want) {
					t.Errorf("output missing %q:\n%s", want, out.String())
				}
			}
		})
	}
}

func TestRunWritesDirectory(t *testing.T) {
	in := t.TempDir()
	a := writeFile(t, in, "a.js", bundledSource)
	b := writeFile(t, in, "b.js", "foo();\n")
	out := filepath.Join(t.TempDir(), "out")

	opts := options{config: convert.DefaultConfig(), out: out, jobs: 2}
	var stdout bytes.Buffer
	if err := run([]string{a, b}, opts, &stdout); err != nil {
		t.Fatalf("run: %v", err)
	}
	if stdout.Len() != 0 {
		t.Errorf("unexpected stdout: %q", stdout.String())
	}

	got, err := os.ReadFile(filepath.Join(out, "a.js"))
	if err != nil {
		t.Fatal(err)
	}
	if want := "export var counter = 1;\n"; string(got) != want {
		t.Errorf("a.js = %q, want %q", got, want)
	}
	got, err = os.ReadFile(filepath.Join(out, "b.js"))
	if err != nil {
		t.Fatal(err)
	}
	if want := "foo();\n"; string(got) != want {
		t.Errorf("b.js = %q, want %q", got, want)
	}
}

func TestRunRejectsOutputClashes(t *testing.T) {
	root := t.TempDir()
	first := filepath.Join(root, "first")
	second := filepath.Join(root, "second")
	for _, dir := range []string{first, second} {
		if err := os.Mkdir(dir, 0o755); err != nil {
			t.Fatal(err)
		}
	}
	a := writeFile(t, first, "index.js", bundledSource)
	b := writeFile(t, second, "index.js", "foo();\n")

	out := filepath.Join(t.TempDir(), "out")
	opts := options{config: convert.DefaultConfig(), out: out}
	err := run([]string{a, b}, opts, &bytes.Buffer{})
	if err == nil || !strings.Contains(err.Error(), "would both be written") {
		t.Fatalf("error = %v, want a name clash", err)
	}
	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Error("output dir created despite the clash")
	}
}

func TestAssignOutputsRejectsStdin(t *testing.T) {
	results := []*fileResult{{name: "a.js"}, {name: stdinName}}
	err := assignOutputs(results, t.TempDir())
	if err == nil || !strings.Contains(err.Error(), "standard input") {
		t.Fatalf("error = %v, want stdin rejection", err)
	}
}

func TestAssignOutputs(t *testing.T) {
	dir := t.TempDir()
	results := []*fileResult{{name: filepath.Join("x", "a.js")}, {name: filepath.Join("y", "b.js")}}
	if err := assignOutputs(results, dir); err != nil {
		t.Fatalf("assignOutputs: %v", err)
	}
	want := []string{filepath.Join(dir, "a.js"), filepath.Join(dir, "b.js")}
	got := []string{results[0].out, results[1].out}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("outputs mismatch (-want +got):\n%s", diff)
	}
}

func TestRunParseError(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.js", bundledSource)
	bad := writeFile(t, dir, "bad.js", "var = ;")

	err := run([]string{good, bad}, options{config: convert.DefaultConfig()}, &bytes.Buffer{})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "bad.js") {
		t.Errorf("error %q does not name the failing file", err)
	}
}

package convert

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/wippyai/esmconv/ast"
	"github.com/wippyai/esmconv/js"
)

func parse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, err := js.Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return prog
}

func TestConvert(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		want   string
		module bool
	}{
		{
			name: "default export unwraps initializer",
			src: `require.r(exports);
require.d(exports, "default", function () { return f; });
let f = 1 + 2;`,
			want:   "export default 1 + 2;\n",
			module: true,
		},
		{
			name: "named export renames binding",
			src: `require.r(exports);
require.d(exports, "counter", function () { return f; });
let f = 1;`,
			want:   "export let counter = 1;\n",
			module: true,
		},
		{
			name: "default function keeps declaration",
			src: `require.d(exports, "default", function () { return main; });
function main() { return 1; }`,
			want: "export default function main() {\n  return 1;\n}\n",
		},
		{
			name: "webpack namespace and class",
			src: `__webpack_require__.r(__webpack_exports__);
__webpack_require__.d(__webpack_exports__, "Widget", function () { return W; });
class W {}`,
			want:   "export class Widget {}\n",
			module: true,
		},
		{
			name: "renames follow references",
			src: `require.r(exports);
require.d(exports, "add", function () { return a; });
require.d(exports, "total", function () { return t; });
function a(x, y) { return x + y; }
var t = a(1, 2);`,
			want:   "export function add(x, y) {\n  return x + y;\n}\nexport var total = add(1, 2);\n",
			module: true,
		},
		{
			name: "declaration before definer",
			src: `var f = 1;
require.d(exports, "one", function () { return f; });
log(f);`,
			want: "export var one = 1;\nlog(one);\n",
		},
		{
			name: "modern syntax around a named export",
			src: `require.r(exports);
require.d(exports, "sum", function () { return s; });
const s = (...xs) => { let t = 0; for (const x of xs) t += x; return t; };
var o = { s };`,
			want:   "export const sum = (...xs) => {\n  let t = 0;\n  for (const x of xs) t += x;\n  return t;\n};\nvar o = { s: sum };\n",
			module: true,
		},
		{
			name: "declarators split into separate exports",
			src: `require.r(exports);
require.d(exports, "x", function () { return f; });
require.d(exports, "y", function () { return g; });
let f = 1, g = 2;`,
			want:   "export let x = 1;\nexport let y = 2;\n",
			module: true,
		},
		{
			name: "const declarators keep their names",
			src: `require.r(exports);
require.d(exports, "a", function () { return a; });
require.d(exports, "b", function () { return b; });
const a = 1, b = 2;`,
			want:   "export const a = 1;\nexport const b = 2;\n",
			module: true,
		},
		{
			name: "middle declarator split before definer",
			src: `var a = 1, f = 2, c = 3;
require.d(exports, "x", function () { return f; });`,
			want: "var a = 1;\nexport var x = 2;\nvar c = 3;\n",
		},
		{
			name: "default unwraps one of several declarators",
			src: `require.d(exports, "default", function () { return f; });
var g = 1, f = 2;`,
			want: "var g = 1;\nexport default 2;\n",
		},
		{
			name:   "marker only",
			src:    "require.r(exports);\nvar a = 1;",
			want:   "var a = 1;\n",
			module: true,
		},
		{
			name: "other namespace untouched",
			src:  `other.d(exports, "x", function () { return f; });`,
			want: "other.d(exports, \"x\", function () {\n  return f;\n});\n",
		},
		{
			name: "computed helper untouched",
			src:  `require["r"](exports);`,
			want: "require[\"r\"](exports);\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog := parse(t, tt.src)
			ConvertModuleSyntax(prog)
			if diff := cmp.Diff(tt.want, js.Print(prog)); diff != "" {
				t.Errorf("output mismatch (-want +got):\n%s", diff)
			}
			if got := prog.SourceType == ast.SourceModule; got != tt.module {
				t.Errorf("module = %v, want %v", got, tt.module)
			}
		})
	}
}

func TestNestedStatementsUntouched(t *testing.T) {
	src := `function wrap() {
  require.r(exports);
  require.d(exports, "x", function () { return f; });
  var f = 1;
}`
	prog := parse(t, src)
	want := js.Print(parse(t, src))

	rep := New(DefaultConfig()).Run(prog)
	if got := js.Print(prog); got != want {
		t.Errorf("nested code changed:\n%s", got)
	}
	if prog.SourceType != ast.SourceScript {
		t.Error("nested marker switched the program to module mode")
	}
	if rep.Changed() || len(rep.Skipped) != 0 {
		t.Errorf("report = %s", rep)
	}
}

func TestSkips(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		reason SkipReason
	}{
		{
			name:   "undeclared name",
			src:    `require.d(exports, "x", function () { return undeclaredName; });`,
			reason: SkipUnresolved,
		},
		{
			name:   "function expression name",
			src:    `require.d(exports, "x", function g() { return g; });`,
			reason: SkipNoDeclaration,
		},
		{
			name:   "nested declaration",
			src:    "require.d(exports, \"x\", function () { return f; });\nif (c) { var f = 1; }",
			reason: SkipNotTopLevel,
		},
		{
			name:   "already exported",
			src:    "export var f = 1;\nrequire.d(exports, \"x\", function () { return f; });",
			reason: SkipAlreadyExported,
		},
		{
			name:   "default still assigned",
			src:    "require.d(exports, \"default\", function () { return f; });\nvar f = 1;\nf = 2;",
			reason: SkipSharedDefault,
		},
		{
			name:   "default read by a sibling declarator",
			src:    "require.d(exports, \"default\", function () { return f; });\nvar f = 1, g = f;",
			reason: SkipSharedDefault,
		},
		{
			name:   "default without initializer",
			src:    "require.d(exports, \"default\", function () { return f; });\nvar f;",
			reason: SkipSharedDefault,
		},
		{
			name:   "export name is not an identifier",
			src:    "require.d(exports, \"my-name\", function () { return f; });\nvar f = 1;",
			reason: SkipInvalidName,
		},
		{
			name:   "destructured binding",
			src:    "require.d(exports, \"x\", function () { return f; });\nvar { f } = o;",
			reason: SkipDestructured,
		},
		{
			name:   "destructured default",
			src:    "require.d(exports, \"default\", function () { return f; });\nvar [f] = o;",
			reason: SkipDestructured,
		},
		{
			name:   "loop variable",
			src:    "require.d(exports, \"x\", function () { return i; });\nfor (var i = 0; i < 3; i++) {}",
			reason: SkipNotTopLevel,
		},
		{
			name:   "export name is reserved",
			src:    "require.d(exports, \"class\", function () { return f; });\nvar f = 1;",
			reason: SkipInvalidName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog := parse(t, tt.src)
			want := js.Print(prog)

			rep := New(DefaultConfig()).Run(prog)
			if got := js.Print(prog); got != want {
				t.Errorf("program changed:\n%s", got)
			}
			if len(rep.Skipped) != 1 {
				t.Fatalf("got %d skips, want 1: %s", len(rep.Skipped), rep)
			}
			if rep.Skipped[0].Reason != tt.reason {
				t.Errorf("reason = %s, want %s", rep.Skipped[0].Reason, tt.reason)
			}
		})
	}
}

func TestDoubleExport(t *testing.T) {
	prog := parse(t, `require.d(exports, "a", function () { return f; });
require.d(exports, "b", function () { return f; });
var f = 1;`)

	rep := New(DefaultConfig()).Run(prog)
	want := "require.d(exports, \"b\", function () {\n  return a;\n});\nexport var a = 1;\n"
	if diff := cmp.Diff(want, js.Print(prog)); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
	wantRep := &Report{
		Converted: []Export{{Name: "a", Local: "f", Form: FormNamed}},
		Skipped:   []Skip{{Name: "b", Local: "a", Reason: SkipAlreadyExported}},
	}
	if diff := cmp.Diff(wantRep, rep); diff != "" {
		t.Errorf("report mismatch (-want +got):\n%s", diff)
	}
}

func TestIdempotent(t *testing.T) {
	src := `require.r(exports);
require.d(exports, "default", function () { return main; });
require.d(exports, "helper", function () { return h; });
require.d(exports, "missing", function () { return nothing; });
function main() { return h(); }
function h() { return 1; }`

	prog := parse(t, src)
	c := New(DefaultConfig())
	first := c.Run(prog)
	once := js.Print(prog)

	second := c.Run(prog)
	if twice := js.Print(prog); twice != once {
		t.Errorf("second pass changed output:\n%s\nvs\n%s", once, twice)
	}
	if second.Changed() {
		t.Errorf("second pass reported changes: %s", second)
	}
	if len(first.Converted) != 2 || first.Markers != 1 {
		t.Errorf("first report = %s", first)
	}
	if len(second.Skipped) != 1 || second.Skipped[0].Reason != SkipUnresolved {
		t.Errorf("second report = %s", second)
	}
}

func TestCheckCollisions(t *testing.T) {
	src := `require.d(exports, "b", function () { return a; });
var a = 1;
var b = 2;`

	cfg := DefaultConfig()
	cfg.CheckCollisions = true
	prog := parse(t, src)
	rep := New(cfg).Run(prog)
	if len(rep.Skipped) != 1 || rep.Skipped[0].Reason != SkipCollision {
		t.Fatalf("report = %s", rep)
	}

	// Without the check the rename goes ahead.
	prog = parse(t, src)
	rep = New(DefaultConfig()).Run(prog)
	if len(rep.Converted) != 1 {
		t.Fatalf("report = %s", rep)
	}
}

func TestCustomHelperNames(t *testing.T) {
	cfg := Config{Namespaces: []string{"__r"}, Marker: "m", Definer: "e"}
	prog := parse(t, `__r.m(x);
__r.e(x, "value", function () { return v; });
require.r(exports);
const v = 42;`)

	rep := New(cfg).Run(prog)
	want := "require.r(exports);\nexport const value = 42;\n"
	if diff := cmp.Diff(want, js.Print(prog)); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
	if !rep.Module || rep.Markers != 1 {
		t.Errorf("report = %s", rep)
	}
}

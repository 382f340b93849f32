package eval

import (
	"context"
	"sort"
	"strconv"

	"github.com/dop251/goja"
	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"

	"github.com/wippyai/esmconv/ast"
	"github.com/wippyai/esmconv/errors"
	"github.com/wippyai/esmconv/js"
)

const (
	exportsName = "__esm_exports__"
	defineName  = "__esm_define__"
)

// moduleRuntime holds the exports object that lowered export declarations
// define getters on.
const moduleRuntime = `
var __esm_exports__ = {};
var __esm_define__ = function (name, getter) {
  Object.defineProperty(__esm_exports__, name, { enumerable: true, get: getter });
};
`

// bundleRuntime provides the webpack helpers a bundled module calls. Export
// getters are enumerable like webpack's; the module flag is not. Module
// programs run without it, as real module code has no require or exports.
const bundleRuntime = `
var exports = __esm_exports__;
var require = {
  r: function (e) {
    Object.defineProperty(e, "__esModule", { value: true });
  },
  d: function (e, name, getter) {
    if (!Object.prototype.hasOwnProperty.call(e, name)) {
      Object.defineProperty(e, name, { enumerable: true, get: getter });
    }
  }
};
var __webpack_require__ = require;
var __webpack_exports__ = exports;
`

// Function stands in for an exported function value. Functions are compared
// by arity only, since renaming changes their name.
type Function struct {
	Length int64
}

// Undefined stands in for the JavaScript undefined value.
type Undefined struct{}

// Exports runs prog in a fresh VM and returns the values of its exports
// once the program has finished. Module syntax is lowered to definer calls
// first, so bundled and converted programs are observed the same way.
func Exports(ctx context.Context, prog *ast.Program) (map[string]any, error) {
	src, err := Lower(prog)
	if err != nil {
		return nil, err
	}

	vm := goja.New()
	stop := context.AfterFunc(ctx, func() {
		vm.Interrupt(ctx.Err())
	})
	defer stop()

	if _, err := vm.RunString(moduleRuntime); err != nil {
		return nil, errors.Runtime("install module runtime", err)
	}
	if prog.SourceType == ast.SourceScript {
		if _, err := vm.RunString(bundleRuntime); err != nil {
			return nil, errors.Runtime("install bundle runtime", err)
		}
	}
	Logger().Debug("evaluating program", zap.Int("bytes", len(src)))
	if _, err := vm.RunString(src); err != nil {
		return nil, errors.Runtime("run program", err)
	}

	obj := vm.GlobalObject().Get(exportsName).ToObject(vm)
	keys := obj.Keys()
	sort.Strings(keys)
	out := make(map[string]any, len(keys))
	for _, k := range keys {
		out[k] = normalize(vm, obj.Get(k))
	}
	return out, nil
}

// normalize converts a VM value into plain Go values that cmp can compare.
func normalize(vm *goja.Runtime, v goja.Value) any {
	if v == nil || goja.IsUndefined(v) {
		return Undefined{}
	}
	if goja.IsNull(v) {
		return nil
	}
	if _, ok := goja.AssertFunction(v); ok {
		return Function{Length: v.ToObject(vm).Get("length").ToInteger()}
	}
	if obj, ok := v.(*goja.Object); ok {
		if obj.ClassName() == "Array" {
			n := obj.Get("length").ToInteger()
			arr := make([]any, n)
			for i := int64(0); i < n; i++ {
				arr[i] = normalize(vm, obj.Get(strconv.FormatInt(i, 10)))
			}
			return arr
		}
		m := make(map[string]any)
		for _, k := range obj.Keys() {
			m[k] = normalize(vm, obj.Get(k))
		}
		return m
	}
	exported := v.Export()
	// Integral numbers export as int64; compare every number as float64.
	if n, ok := exported.(int64); ok {
		return float64(n)
	}
	return exported
}

// Diff evaluates both programs and returns a human-readable difference of
// their exports, or "" when they match.
func Diff(ctx context.Context, before, after *ast.Program) (string, error) {
	want, err := Exports(ctx, before)
	if err != nil {
		return "", err
	}
	got, err := Exports(ctx, after)
	if err != nil {
		return "", err
	}
	return cmp.Diff(want, got), nil
}

// Equivalent reports whether both programs export the same names with the
// same values.
func Equivalent(ctx context.Context, before, after *ast.Program) (bool, error) {
	d, err := Diff(ctx, before, after)
	if err != nil {
		return false, err
	}
	if d != "" {
		Logger().Debug("exports differ", zap.String("diff", d))
	}
	return d == "", nil
}

// Verify is Equivalent as an error: a *errors.Error of kind mismatch
// carrying the export diff when the programs disagree.
func Verify(ctx context.Context, before, after *ast.Program) error {
	d, err := Diff(ctx, before, after)
	if err != nil {
		return err
	}
	if d != "" {
		return errors.Mismatch("exports differ (-before +after):\n" + d)
	}
	return nil
}

// Lower rewrites the export declarations of prog into plain statements
// and definer calls and returns the result as script source. prog is not
// modified.
func Lower(prog *ast.Program) (string, error) {
	out := &ast.Program{Body: make([]ast.Statement, 0, len(prog.Body))}
	for _, stmt := range prog.Body {
		switch s := stmt.(type) {
		case *ast.VariableDeclaration:
			out.Body = append(out.Body, asVar(s))

		case *ast.ExportNamedDeclaration:
			decl := s.Declaration
			if v, ok := decl.(*ast.VariableDeclaration); ok {
				decl = asVar(v)
			}
			out.Body = append(out.Body, decl)
			for _, name := range ast.DeclaredNames(s.Declaration) {
				out.Body = append(out.Body, definerCall(name, name))
			}

		case *ast.ExportDefaultDeclaration:
			lowered, err := lowerDefault(s)
			if err != nil {
				return "", err
			}
			out.Body = append(out.Body, lowered...)

		default:
			out.Body = append(out.Body, stmt)
		}
	}
	return js.Print(out), nil
}

// asVar turns a top-level let or const into var. At program level they
// differ only in temporal dead zone checks, which converted code never
// relies on.
func asVar(d *ast.VariableDeclaration) *ast.VariableDeclaration {
	if d.DeclKind == ast.DeclVar {
		return d
	}
	return &ast.VariableDeclaration{DeclKind: ast.DeclVar, Declarations: d.Declarations}
}

func lowerDefault(s *ast.ExportDefaultDeclaration) ([]ast.Statement, error) {
	switch d := s.Declaration.(type) {
	case *ast.FunctionDeclaration:
		if d.ID != nil {
			return []ast.Statement{d, definerCall("default", d.ID.Name)}, nil
		}
		fn := &ast.FunctionExpression{Params: d.Params, Body: d.Body, Async: d.Async, Generator: d.Generator}
		return []ast.Statement{assignDefault(fn)}, nil
	case *ast.ClassDeclaration:
		if d.ID != nil {
			return []ast.Statement{d, definerCall("default", d.ID.Name)}, nil
		}
		return []ast.Statement{assignDefault(&ast.ClassExpression{SuperClass: d.SuperClass, Body: d.Body})}, nil
	case ast.Expression:
		return []ast.Statement{assignDefault(d)}, nil
	}
	return nil, errors.Unsupported(errors.PhaseEval, "default export of "+s.Declaration.Kind().String())
}

// definerCall builds __esm_define__("name", function () { return local; }).
func definerCall(name, local string) ast.Statement {
	return &ast.ExpressionStatement{Expression: &ast.CallExpression{
		Callee: &ast.Identifier{Name: defineName},
		Arguments: []ast.Expression{
			&ast.StringLiteral{Value: name},
			&ast.FunctionExpression{Body: &ast.BlockStatement{Body: []ast.Statement{
				&ast.ReturnStatement{Argument: &ast.Identifier{Name: local}},
			}}},
		},
	}}
}

// assignDefault builds __esm_exports__["default"] = value.
func assignDefault(value ast.Expression) ast.Statement {
	return &ast.ExpressionStatement{Expression: &ast.AssignmentExpression{
		Operator: "=",
		Left: &ast.MemberExpression{
			Object:   &ast.Identifier{Name: exportsName},
			Property: &ast.StringLiteral{Value: "default"},
			Computed: true,
		},
		Right: value,
	}}
}

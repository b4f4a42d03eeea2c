package interpreter

import (
	"testing"

	"github.com/CreadorLanda/NajaScript-sub000/pkg/ast"
	"github.com/CreadorLanda/NajaScript-sub000/pkg/runtime"
)

// registerPrint installs a print builtin that records its stringified arguments.
func registerPrint(interp *Interpreter, out *[]string) {
	interp.RegisterNative("print", -1, func(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
		line := ""
		for idx, arg := range args {
			if idx > 0 {
				line += " "
			}
			line += runtime.Stringify(arg)
		}
		*out = append(*out, line)
		return runtime.Null, nil
	})
}

func mustRun(t *testing.T, interp *Interpreter, body ...ast.Statement) runtime.Value {
	t.Helper()
	val, err := interp.Interpret(ast.Prog(body...))
	if err != nil {
		t.Fatalf("interpret failed: %v", err)
	}
	return val
}

func expectErrorKind(t *testing.T, interp *Interpreter, kind runtime.ErrorKind, body ...ast.Statement) *runtime.RuntimeError {
	t.Helper()
	_, err := interp.Interpret(ast.Prog(body...))
	if err == nil {
		t.Fatalf("expected %s error, got success", kind)
	}
	rerr, ok := runtime.AsRuntimeError(err)
	if !ok {
		t.Fatalf("expected runtime error, got %T: %v", err, err)
	}
	if rerr.Kind != kind {
		t.Fatalf("expected %s error, got %v", kind, rerr)
	}
	return rerr
}

func expectInt(t *testing.T, val runtime.Value, want int64) {
	t.Helper()
	iv, ok := val.(runtime.IntValue)
	if !ok {
		t.Fatalf("expected int %d, got %#v", want, val)
	}
	if iv.Val != want {
		t.Fatalf("expected %d, got %d", want, iv.Val)
	}
}

func expectString(t *testing.T, val runtime.Value, want string) {
	t.Helper()
	sv, ok := val.(runtime.StringValue)
	if !ok {
		t.Fatalf("expected string %q, got %#v", want, val)
	}
	if sv.Val != want {
		t.Fatalf("expected %q, got %q", want, sv.Val)
	}
}

func lookup(t *testing.T, interp *Interpreter, name string) runtime.Value {
	t.Helper()
	val, err := interp.ProgramEnvironment().Get(name)
	if err != nil {
		t.Fatalf("lookup %s: %v", name, err)
	}
	return val
}

// moduleTable serves pre-built programs by name and counts resolutions.
type moduleTable struct {
	programs map[string]*ast.Program
	resolved map[string]int
}

func newModuleTable(programs map[string]*ast.Program) *moduleTable {
	return &moduleTable{programs: programs, resolved: make(map[string]int)}
}

func (m *moduleTable) Resolve(name string) (ModuleSource, error) {
	program, ok := m.programs[name]
	if !ok {
		return ModuleSource{}, ErrModuleNotFound
	}
	m.resolved[name]++
	return ModuleSource{Name: name, Program: program, Origin: "memory"}, nil
}

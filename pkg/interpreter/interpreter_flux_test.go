package interpreter

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/CreadorLanda/NajaScript-sub000/pkg/ast"
	"github.com/CreadorLanda/NajaScript-sub000/pkg/runtime"
)

func TestFluxScenario(t *testing.T) {
	interp := New()
	mustRun(t, interp,
		ast.Var("int", "x", ast.Int(2)),
		ast.Const("int", "y", ast.Int(5)),
		ast.Flux("z", ast.Bin("+", ast.ID("x"), ast.ID("y"))),
	)
	expectInt(t, lookup(t, interp, "z"), 7)
	mustRun(t, interp, ast.Set("x", ast.Int(10)))
	expectInt(t, lookup(t, interp, "z"), 15)
	expectErrorKind(t, interp, runtime.ErrConstAssignment, ast.Set("y", ast.Int(1)))
	expectErrorKind(t, interp, runtime.ErrConstAssignment, ast.Set("z", ast.Int(0)))
	expectInt(t, lookup(t, interp, "z"), 15)
}

func TestFluxFollowsCompoundAndUpdateAssignments(t *testing.T) {
	interp := New()
	val := mustRun(t, interp,
		ast.Var("int", "n", ast.Int(1)),
		ast.Flux("double", ast.Bin("*", ast.ID("n"), ast.Int(2))),
		ast.Inc(ast.ID("n")),
		ast.AssignOp(ast.AssignmentMul, ast.ID("n"), ast.Int(5)),
		ast.ID("double"),
	)
	expectInt(t, val, 20)
}

func TestFluxDeclaredInsideFunctionTracksOuterState(t *testing.T) {
	interp := New()
	var out []string
	registerPrint(interp, &out)
	mustRun(t, interp,
		ast.Var("", "price", ast.Int(10)),
		ast.Fn("watch", ast.Params("qty"),
			ast.Flux("total", ast.Bin("*", ast.ID("price"), ast.ID("qty"))),
			ast.Ret(ast.Lambda(nil, ast.Ret(ast.ID("total")))),
		),
		ast.Var("", "read", ast.CallName("watch", ast.Int(3))),
		ast.CallName("print", ast.CallName("read")),
		ast.Set("price", ast.Int(20)),
		ast.CallName("print", ast.CallName("read")),
	)
	if diff := cmp.Diff([]string{"30", "60"}, out); diff != "" {
		t.Fatalf("flux output mismatch (-want +got):\n%s", diff)
	}
}

func TestFluxHandleExposesMetadata(t *testing.T) {
	interp := New()
	mustRun(t, interp,
		ast.Var("", "a", ast.Int(1)),
		ast.Var("", "b", ast.Int(2)),
		ast.Flux("sum", ast.Bin("+", ast.ID("a"), ast.ID("b"))),
	)
	handle, ok := interp.FluxHandle("sum", interp.ProgramEnvironment())
	if !ok {
		t.Fatalf("flux handle for sum not found")
	}
	interp.DefineGlobal("sumHandle", handle)
	deps := mustRun(t, interp, ast.Member(ast.ID("sumHandle"), "dependencies"))
	if runtime.Stringify(deps) != `["a", "b"]` {
		t.Fatalf("unexpected dependencies %s", runtime.Stringify(deps))
	}
	mustRun(t, interp, ast.Set("b", ast.Int(40)))
	expectInt(t, mustRun(t, interp, ast.Member(ast.ID("sumHandle"), "value")), 41)
	expectString(t, mustRun(t, interp, ast.Member(ast.ID("sumHandle"), "name")), "sum")
}

func TestFluxErrors(t *testing.T) {
	interp := New()
	expectErrorKind(t, interp, runtime.ErrFluxCycle, ast.Flux("loop", ast.Bin("+", ast.ID("loop"), ast.Int(1))))
	expectErrorKind(t, interp, runtime.ErrUndefinedName, ast.Flux("f", ast.ID("nothing")))

	interp = New()
	mustRun(t, interp,
		ast.Var("", "d", ast.Int(1)),
		ast.Flux("q", ast.Bin("/", ast.Int(10), ast.ID("d"))),
	)
	expectErrorKind(t, interp, runtime.ErrDivisionByZero, ast.Set("d", ast.Int(0)))
}

func TestFluxDoesNotReactToShadowingLocals(t *testing.T) {
	interp := New()
	val := mustRun(t, interp,
		ast.Var("", "x", ast.Int(1)),
		ast.Flux("f", ast.Bin("+", ast.ID("x"), ast.Int(100))),
		ast.Fn("local", nil,
			ast.Var("", "x", ast.Int(5)),
			ast.Set("x", ast.Int(6)),
		),
		ast.CallName("local"),
		ast.ID("f"),
	)
	expectInt(t, val, 101)
}

func TestFluxInLoopBodyIsReleasedPerIteration(t *testing.T) {
	interp := New()
	calls := 0
	interp.RegisterNative("tick", 1, func(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
		calls++
		return args[0], nil
	})
	mustRun(t, interp,
		ast.For(ast.Var("int", "i", ast.Int(0)), ast.Bin("<", ast.ID("i"), ast.Int(100)), ast.Inc(ast.ID("i")),
			ast.Flux("f", ast.CallName("tick", ast.ID("i"))),
		),
	)
	if calls != 100 {
		t.Fatalf("expected 100 evaluations, got %d", calls)
	}
	if n := interp.FluxGraph().Len(); n != 0 {
		t.Fatalf("expected loop fluxes to be released, %d left", n)
	}
}

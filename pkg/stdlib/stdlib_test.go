package stdlib

import (
	"bytes"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/CreadorLanda/NajaScript-sub000/pkg/ast"
	"github.com/CreadorLanda/NajaScript-sub000/pkg/interpreter"
	"github.com/CreadorLanda/NajaScript-sub000/pkg/runtime"
)

func newInterp(t *testing.T) (*interpreter.Interpreter, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	interp := interpreter.New()
	Register(interp, &out)
	return interp, &out
}

func TestPrintWritesStringifiedArguments(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "naja.stdlib")
	defer teardown()

	interp, out := newInterp(t)
	_, err := interp.Interpret(ast.Prog(
		ast.CallName("print", ast.Str("sum:"), ast.Int(3), ast.Flt(2), ast.List(ast.Str("a"), ast.Null())),
		ast.CallName("println", ast.Tuple(ast.Int(1))),
	))
	if err != nil {
		t.Fatalf("interpret: %v", err)
	}
	want := "sum: 3 2.0 [\"a\", null]\n(1,)\n"
	if diff := cmp.Diff(want, out.String()); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestConversions(t *testing.T) {
	cases := []struct {
		call ast.Expression
		want runtime.Value
	}{
		{ast.CallName("len", ast.Str("héllo")), runtime.IntValue{Val: 5}},
		{ast.CallName("len", ast.Dict(ast.Entry(ast.Int(1), ast.Int(2)))), runtime.IntValue{Val: 1}},
		{ast.CallName("type", ast.Flt(1)), runtime.StringValue{Val: "float"}},
		{ast.CallName("str", ast.Bool(true)), runtime.StringValue{Val: "true"}},
		{ast.CallName("int", ast.Str(" 42 ")), runtime.IntValue{Val: 42}},
		{ast.CallName("int", ast.Flt(3.9)), runtime.IntValue{Val: 3}},
		{ast.CallName("float", ast.Int(2)), runtime.FloatValue{Val: 2}},
		{ast.CallName("bool", ast.List()), runtime.BoolValue{Val: false}},
		{ast.CallName("abs", ast.Int(-4)), runtime.IntValue{Val: 4}},
		{ast.CallName("max", ast.Int(1), ast.Flt(2.5), ast.Int(2)), runtime.FloatValue{Val: 2.5}},
		{ast.CallName("min", ast.List(ast.Int(3), ast.Int(-1))), runtime.IntValue{Val: -1}},
		{ast.CallName("floor", ast.Flt(2.7)), runtime.IntValue{Val: 2}},
		{ast.CallName("round", ast.Flt(2.5)), runtime.IntValue{Val: 3}},
		{ast.CallName("sqrt", ast.Int(9)), runtime.FloatValue{Val: 3}},
	}
	for _, tc := range cases {
		interp, _ := newInterp(t)
		got, err := interp.Interpret(ast.Prog(tc.call))
		if err != nil {
			t.Fatalf("%s: %v", runtime.Repr(tc.want), err)
		}
		if got.Kind() != tc.want.Kind() || !runtime.Equal(got, tc.want) {
			t.Fatalf("expected %s, got %s", runtime.Repr(tc.want), runtime.Repr(got))
		}
	}
}

func TestRange(t *testing.T) {
	cases := map[string]struct {
		args []ast.Expression
		want string
	}{
		"stop":       {[]ast.Expression{ast.Int(3)}, "[0, 1, 2]"},
		"start stop": {[]ast.Expression{ast.Int(2), ast.Int(5)}, "[2, 3, 4]"},
		"negative":   {[]ast.Expression{ast.Int(3), ast.Int(0), ast.Int(-1)}, "[3, 2, 1]"},
		"empty":      {[]ast.Expression{ast.Int(0)}, "[]"},
		"near max":   {[]ast.Expression{ast.Int(math.MaxInt64 - 1), ast.Int(math.MaxInt64), ast.Int(2)}, "[9223372036854775806]"},
		"near min":   {[]ast.Expression{ast.Int(math.MinInt64 + 1), ast.Int(math.MinInt64), ast.Int(-2)}, "[-9223372036854775807]"},
	}
	for name, tc := range cases {
		interp, _ := newInterp(t)
		got, err := interp.Interpret(ast.Prog(ast.CallName("range", tc.args...)))
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if s := runtime.Stringify(got); s != tc.want {
			t.Fatalf("%s: expected %s, got %s", name, tc.want, s)
		}
	}
	interp, _ := newInterp(t)
	if _, err := interp.Interpret(ast.Prog(ast.CallName("range", ast.Int(1), ast.Int(2), ast.Int(0)))); !runtime.IsKind(err, runtime.ErrUnsupportedOperation) {
		t.Fatalf("expected UnsupportedOperation for zero step, got %v", err)
	}
}

func TestMapAndSetBuiltins(t *testing.T) {
	interp, out := newInterp(t)
	_, err := interp.Interpret(ast.Prog(
		ast.Var("", "m", ast.CallName("Map")),
		ast.CallMethod(ast.ID("m"), "set", ast.Tuple(ast.Int(1), ast.Int(2)), ast.Str("pair")),
		ast.CallMethod(ast.ID("m"), "set", ast.Str("k"), ast.Int(9)),
		ast.CallName("print", ast.CallMethod(ast.ID("m"), "get", ast.Tuple(ast.Int(1), ast.Int(2)))),
		ast.CallName("print", ast.CallMethod(ast.ID("m"), "has", ast.Str("nope"))),
		ast.CallMethod(ast.ID("m"), "delete", ast.Str("k")),
		ast.CallName("print", ast.CallMethod(ast.ID("m"), "size")),
		ast.Var("", "s", ast.CallName("Set", ast.List(ast.Int(3), ast.Int(1), ast.Int(3)))),
		ast.CallName("print", ast.ID("s")),
	))
	if err != nil {
		t.Fatalf("interpret: %v", err)
	}
	want := "pair\nfalse\n1\n{3, 1}\n"
	if diff := cmp.Diff(want, out.String()); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}

	_, err = interp.Interpret(ast.Prog(ast.CallMethod(ast.ID("m"), "get", ast.Str("missing"))))
	if !runtime.IsKind(err, runtime.ErrKeyNotFound) {
		t.Fatalf("expected KeyNotFound, got %v", err)
	}
}

func TestFluxOfReturnsHandle(t *testing.T) {
	interp, out := newInterp(t)
	_, err := interp.Interpret(ast.Prog(
		ast.Var("", "w", ast.Int(2)),
		ast.Flux("area", ast.Bin("*", ast.ID("w"), ast.ID("w"))),
		ast.Var("", "h", ast.CallName("fluxOf", ast.Str("area"))),
		ast.Set("w", ast.Int(3)),
		ast.CallName("print", ast.Member(ast.ID("h"), "name"), ast.Member(ast.ID("h"), "value"), ast.Member(ast.ID("h"), "dependencies")),
	))
	if err != nil {
		t.Fatalf("interpret: %v", err)
	}
	if got := out.String(); got != "area 9 [\"w\"]\n" {
		t.Fatalf("unexpected output %q", got)
	}
	if _, err := interp.Interpret(ast.Prog(ast.CallName("fluxOf", ast.Str("w")))); !runtime.IsKind(err, runtime.ErrUndefinedName) {
		t.Fatalf("expected UndefinedName for plain binding, got %v", err)
	}
}

func TestBuiltinArityIsChecked(t *testing.T) {
	interp, _ := newInterp(t)
	_, err := interp.Interpret(ast.Prog(ast.CallName("len")))
	if !runtime.IsKind(err, runtime.ErrWrongArgumentCount) {
		t.Fatalf("expected WrongArgumentCount, got %v", err)
	}
}

// Package stdlib is the default set of host builtins for NajaScript programs.
package stdlib

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/npillmayer/schuko/tracing"

	"github.com/CreadorLanda/NajaScript-sub000/pkg/interpreter"
	"github.com/CreadorLanda/NajaScript-sub000/pkg/runtime"
)

func tracer() tracing.Trace {
	return tracing.Select("naja.stdlib")
}

// Register installs the builtins into interp's global scope. print and
// println write to out.
func Register(interp *interpreter.Interpreter, out io.Writer) {
	b := &builtins{interp: interp, out: out}
	for _, fn := range b.table() {
		interp.RegisterNative(fn.Name, fn.Arity, fn.Impl)
	}
	interp.DefineGlobal("PI", runtime.FloatValue{Val: math.Pi})
	interp.DefineGlobal("E", runtime.FloatValue{Val: math.E})
	tracer().Debugf("registered %d builtins", len(b.table()))
}

type builtins struct {
	interp *interpreter.Interpreter
	out    io.Writer
}

func (b *builtins) table() []runtime.NativeFunctionValue {
	return []runtime.NativeFunctionValue{
		{Name: "print", Arity: -1, Impl: b.print},
		{Name: "println", Arity: -1, Impl: b.print},
		{Name: "len", Arity: 1, Impl: length},
		{Name: "type", Arity: 1, Impl: typeOf},
		{Name: "str", Arity: 1, Impl: toText},
		{Name: "int", Arity: 1, Impl: toInt},
		{Name: "float", Arity: 1, Impl: toFloat},
		{Name: "bool", Arity: 1, Impl: toBool},
		{Name: "range", Arity: -1, Impl: rangeList},
		{Name: "Map", Arity: 0, Impl: newMap},
		{Name: "Set", Arity: -1, Impl: newSet},
		{Name: "Tuple", Arity: -1, Impl: newTuple},
		{Name: "abs", Arity: 1, Impl: abs},
		{Name: "min", Arity: -1, Impl: extremum("min", "<")},
		{Name: "max", Arity: -1, Impl: extremum("max", ">")},
		{Name: "sqrt", Arity: 1, Impl: floatFunc("sqrt", math.Sqrt)},
		{Name: "floor", Arity: 1, Impl: roundingFunc("floor", math.Floor)},
		{Name: "ceil", Arity: 1, Impl: roundingFunc("ceil", math.Ceil)},
		{Name: "round", Arity: 1, Impl: roundingFunc("round", math.Round)},
		{Name: "fluxOf", Arity: 1, Impl: b.fluxOf},
	}
}

func (b *builtins) print(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
	parts := make([]string, len(args))
	for idx, arg := range args {
		parts[idx] = runtime.Stringify(arg)
	}
	if _, err := fmt.Fprintln(b.out, strings.Join(parts, " ")); err != nil {
		return nil, fmt.Errorf("writing output: %w", err)
	}
	return runtime.Null, nil
}

func (b *builtins) fluxOf(ctx *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
	name, ok := args[0].(runtime.StringValue)
	if !ok {
		return nil, runtime.NewError(runtime.ErrUnsupportedOperation, "fluxOf expects a name, got %s", runtime.TypeName(args[0]))
	}
	handle, ok := b.interp.FluxHandle(name.Val, ctx.Env)
	if !ok {
		return nil, runtime.NewError(runtime.ErrUndefinedName, "'%s' is not a flux binding", name.Val)
	}
	return handle, nil
}

func length(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
	n, ok := runtime.Length(args[0])
	if !ok {
		return nil, runtime.UnsupportedOperation("len", args[0], nil)
	}
	return runtime.IntValue{Val: int64(n)}, nil
}

func typeOf(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
	return runtime.StringValue{Val: runtime.TypeName(args[0])}, nil
}

func toText(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
	return runtime.StringValue{Val: runtime.Stringify(args[0])}, nil
}

func toInt(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
	switch v := args[0].(type) {
	case runtime.IntValue:
		return v, nil
	case runtime.FloatValue:
		return runtime.IntValue{Val: int64(v.Val)}, nil
	case runtime.BoolValue:
		if v.Val {
			return runtime.IntValue{Val: 1}, nil
		}
		return runtime.IntValue{Val: 0}, nil
	case runtime.StringValue:
		n, err := strconv.ParseInt(strings.TrimSpace(v.Val), 10, 64)
		if err != nil {
			return nil, runtime.NewError(runtime.ErrUnsupportedOperation, "cannot convert %q to int", v.Val)
		}
		return runtime.IntValue{Val: n}, nil
	}
	return nil, runtime.UnsupportedOperation("int", args[0], nil)
}

func toFloat(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
	if f, ok := runtime.ToFloat(args[0]); ok {
		return runtime.FloatValue{Val: f}, nil
	}
	if s, ok := args[0].(runtime.StringValue); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(s.Val), 64)
		if err != nil {
			return nil, runtime.NewError(runtime.ErrUnsupportedOperation, "cannot convert %q to float", s.Val)
		}
		return runtime.FloatValue{Val: f}, nil
	}
	return nil, runtime.UnsupportedOperation("float", args[0], nil)
}

func toBool(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
	return runtime.BoolValue{Val: runtime.Truthy(args[0])}, nil
}

// rangeList mirrors range(stop), range(start, stop) and range(start, stop, step).
func rangeList(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
	if len(args) == 0 || len(args) > 3 {
		return nil, runtime.NewError(runtime.ErrWrongArgumentCount, "range expects 1 to 3 arguments, got %d", len(args))
	}
	bounds := make([]int64, len(args))
	for idx, arg := range args {
		n, ok := arg.(runtime.IntValue)
		if !ok {
			return nil, runtime.NewError(runtime.ErrUnsupportedOperation, "range expects int arguments, got %s", runtime.TypeName(arg))
		}
		bounds[idx] = n.Val
	}
	start, stop, step := int64(0), bounds[0], int64(1)
	if len(bounds) > 1 {
		start, stop = bounds[0], bounds[1]
	}
	if len(bounds) == 3 {
		step = bounds[2]
	}
	if step == 0 {
		return nil, runtime.NewError(runtime.ErrUnsupportedOperation, "range step must not be zero")
	}
	var out []runtime.Value
	for n := start; (step > 0 && n < stop) || (step < 0 && n > stop); n += step {
		out = append(out, runtime.IntValue{Val: n})
		if (step > 0 && n > math.MaxInt64-step) || (step < 0 && n < math.MinInt64-step) {
			break
		}
	}
	return runtime.NewList(out), nil
}

func newMap(_ *runtime.NativeCallContext, _ []runtime.Value) (runtime.Value, error) {
	return runtime.NewMap(), nil
}

// newSet builds a set from its arguments; a single list argument is expanded.
func newSet(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
	if len(args) == 1 {
		if list, ok := args[0].(*runtime.ListValue); ok {
			args = list.Elements
		}
	}
	set := runtime.NewSet()
	for _, arg := range args {
		if _, err := set.Add(arg); err != nil {
			return nil, err
		}
	}
	return set, nil
}

func newTuple(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
	if len(args) == 1 {
		if list, ok := args[0].(*runtime.ListValue); ok {
			args = list.Elements
		}
	}
	elems := make([]runtime.Value, len(args))
	copy(elems, args)
	return runtime.NewTuple(elems), nil
}

func abs(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
	switch v := args[0].(type) {
	case runtime.IntValue:
		if v.Val < 0 {
			return runtime.IntValue{Val: -v.Val}, nil
		}
		return v, nil
	case runtime.FloatValue:
		return runtime.FloatValue{Val: math.Abs(v.Val)}, nil
	}
	return nil, runtime.UnsupportedOperation("abs", args[0], nil)
}

// extremum picks the smallest or largest argument; a single list argument is
// searched instead.
func extremum(name, op string) runtime.NativeFunc {
	return func(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
		if len(args) == 1 {
			if list, ok := args[0].(*runtime.ListValue); ok {
				args = list.Elements
			}
		}
		if len(args) == 0 {
			return nil, runtime.NewError(runtime.ErrWrongArgumentCount, "%s expects at least one value", name)
		}
		best := args[0]
		for _, arg := range args[1:] {
			bf, ok1 := runtime.ToFloat(best)
			af, ok2 := runtime.ToFloat(arg)
			if !ok1 || !ok2 {
				return nil, runtime.UnsupportedOperation(name, best, arg)
			}
			if (op == "<" && af < bf) || (op == ">" && af > bf) {
				best = arg
			}
		}
		if _, ok := runtime.ToFloat(best); !ok {
			return nil, runtime.UnsupportedOperation(name, best, nil)
		}
		return best, nil
	}
}

func floatFunc(name string, f func(float64) float64) runtime.NativeFunc {
	return func(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
		x, ok := runtime.ToFloat(args[0])
		if !ok {
			return nil, runtime.UnsupportedOperation(name, args[0], nil)
		}
		return runtime.FloatValue{Val: f(x)}, nil
	}
}

// roundingFunc returns Int for any numeric input.
func roundingFunc(name string, f func(float64) float64) runtime.NativeFunc {
	return func(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
		if n, ok := args[0].(runtime.IntValue); ok {
			return n, nil
		}
		x, ok := runtime.ToFloat(args[0])
		if !ok {
			return nil, runtime.UnsupportedOperation(name, args[0], nil)
		}
		return runtime.IntValue{Val: int64(f(x))}, nil
	}
}

package interpreter

import (
	"math"
	"strings"

	"github.com/CreadorLanda/NajaScript-sub000/pkg/runtime"
)

func applyUnary(op string, operand runtime.Value) (runtime.Value, error) {
	switch op {
	case "!", "not":
		return runtime.BoolValue{Val: !runtime.Truthy(operand)}, nil
	case "-":
		switch v := operand.(type) {
		case runtime.IntValue:
			return runtime.IntValue{Val: -v.Val}, nil
		case runtime.FloatValue:
			return runtime.FloatValue{Val: -v.Val}, nil
		}
	case "+":
		switch operand.(type) {
		case runtime.IntValue, runtime.FloatValue:
			return operand, nil
		}
	default:
		return nil, runtime.NewError(runtime.ErrUnsupportedOperation, "unknown unary operator '%s'", op)
	}
	return nil, runtime.UnsupportedOperation(op, operand, nil)
}

// maxRepeatLength bounds the result of Text * Int.
const maxRepeatLength = 1 << 28

func repeatText(s string, n int64) (runtime.Value, error) {
	if n <= 0 || s == "" {
		return runtime.StringValue{Val: ""}, nil
	}
	if int64(len(s)) > maxRepeatLength/n {
		return nil, runtime.NewError(runtime.ErrUnsupportedOperation, "repeating text of length %d %d times exceeds %d bytes", len(s), n, maxRepeatLength)
	}
	return runtime.StringValue{Val: strings.Repeat(s, int(n))}, nil
}

func applyBinary(op string, left, right runtime.Value) (runtime.Value, error) {
	left, right = unwrapFlux(left), unwrapFlux(right)
	switch op {
	case "+":
		if ls, ok := left.(runtime.StringValue); ok {
			return runtime.StringValue{Val: ls.Val + runtime.Stringify(right)}, nil
		}
		if rs, ok := right.(runtime.StringValue); ok {
			return runtime.StringValue{Val: runtime.Stringify(left) + rs.Val}, nil
		}
		if ll, ok := left.(*runtime.ListValue); ok {
			if rl, ok := right.(*runtime.ListValue); ok {
				elems := make([]runtime.Value, 0, len(ll.Elements)+len(rl.Elements))
				elems = append(elems, ll.Elements...)
				elems = append(elems, rl.Elements...)
				return runtime.NewList(elems), nil
			}
		}
		return arithmetic(op, left, right)
	case "*":
		if s, ok := left.(runtime.StringValue); ok {
			if n, ok := right.(runtime.IntValue); ok {
				return repeatText(s.Val, n.Val)
			}
		}
		return arithmetic(op, left, right)
	case "-", "/", "%", "**":
		return arithmetic(op, left, right)
	case "==":
		return runtime.BoolValue{Val: runtime.Equal(left, right)}, nil
	case "!=":
		return runtime.BoolValue{Val: !runtime.Equal(left, right)}, nil
	case "<", "<=", ">", ">=":
		return compare(op, left, right)
	case "in":
		found, err := contains(right, left)
		if err != nil {
			return nil, err
		}
		return runtime.BoolValue{Val: found}, nil
	case "instanceof":
		cls, ok := right.(*runtime.ClassValue)
		if !ok {
			return nil, runtime.UnsupportedOperation(op, left, right)
		}
		inst, ok := left.(*runtime.InstanceValue)
		return runtime.BoolValue{Val: ok && inst.Class.IsSubclassOf(cls)}, nil
	default:
		return nil, runtime.NewError(runtime.ErrUnsupportedOperation, "unknown binary operator '%s'", op)
	}
}

func unwrapFlux(v runtime.Value) runtime.Value {
	if fv, ok := v.(runtime.FluxValue); ok {
		return fv.Source.Current()
	}
	return v
}

// arithmetic keeps Int op Int in Int (except for negative powers) and
// promotes mixed operands to Float.
func arithmetic(op string, left, right runtime.Value) (runtime.Value, error) {
	li, lInt := left.(runtime.IntValue)
	ri, rInt := right.(runtime.IntValue)
	if lInt && rInt {
		return intArithmetic(op, li.Val, ri.Val)
	}
	lf, lok := runtime.ToFloat(left)
	rf, rok := runtime.ToFloat(right)
	if !lok || !rok {
		return nil, runtime.UnsupportedOperation(op, left, right)
	}
	switch op {
	case "+":
		return runtime.FloatValue{Val: lf + rf}, nil
	case "-":
		return runtime.FloatValue{Val: lf - rf}, nil
	case "*":
		return runtime.FloatValue{Val: lf * rf}, nil
	case "/":
		if rf == 0 {
			return nil, runtime.NewError(runtime.ErrDivisionByZero, "division by zero")
		}
		return runtime.FloatValue{Val: lf / rf}, nil
	case "%":
		if rf == 0 {
			return nil, runtime.NewError(runtime.ErrDivisionByZero, "modulo by zero")
		}
		return runtime.FloatValue{Val: math.Mod(lf, rf)}, nil
	case "**":
		return runtime.FloatValue{Val: math.Pow(lf, rf)}, nil
	}
	return nil, runtime.UnsupportedOperation(op, left, right)
}

func intArithmetic(op string, l, r int64) (runtime.Value, error) {
	switch op {
	case "+":
		return runtime.IntValue{Val: l + r}, nil
	case "-":
		return runtime.IntValue{Val: l - r}, nil
	case "*":
		return runtime.IntValue{Val: l * r}, nil
	case "/":
		if r == 0 {
			return nil, runtime.NewError(runtime.ErrDivisionByZero, "division by zero")
		}
		return runtime.IntValue{Val: l / r}, nil
	case "%":
		if r == 0 {
			return nil, runtime.NewError(runtime.ErrDivisionByZero, "modulo by zero")
		}
		return runtime.IntValue{Val: l % r}, nil
	case "**":
		if r < 0 {
			return runtime.FloatValue{Val: math.Pow(float64(l), float64(r))}, nil
		}
		result := int64(1)
		for base, exp := l, r; exp > 0; exp >>= 1 {
			if exp&1 == 1 {
				result *= base
			}
			base *= base
		}
		return runtime.IntValue{Val: result}, nil
	}
	return nil, runtime.NewError(runtime.ErrUnsupportedOperation, "unknown arithmetic operator '%s'", op)
}

func compare(op string, left, right runtime.Value) (runtime.Value, error) {
	var cmp int
	if ls, ok := left.(runtime.StringValue); ok {
		rs, ok := right.(runtime.StringValue)
		if !ok {
			return nil, runtime.UnsupportedOperation(op, left, right)
		}
		cmp = strings.Compare(ls.Val, rs.Val)
	} else {
		c, err := compareNumbers(op, left, right)
		if err != nil {
			return nil, err
		}
		cmp = c
	}
	var result bool
	switch op {
	case "<":
		result = cmp < 0
	case "<=":
		result = cmp <= 0
	case ">":
		result = cmp > 0
	case ">=":
		result = cmp >= 0
	}
	return runtime.BoolValue{Val: result}, nil
}

func compareNumbers(op string, left, right runtime.Value) (int, error) {
	if li, ok := left.(runtime.IntValue); ok {
		if ri, ok := right.(runtime.IntValue); ok {
			switch {
			case li.Val < ri.Val:
				return -1, nil
			case li.Val > ri.Val:
				return 1, nil
			}
			return 0, nil
		}
	}
	lf, lok := runtime.ToFloat(left)
	rf, rok := runtime.ToFloat(right)
	if !lok || !rok {
		return 0, runtime.UnsupportedOperation(op, left, right)
	}
	switch {
	case lf < rf:
		return -1, nil
	case lf > rf:
		return 1, nil
	}
	return 0, nil
}

// contains implements `needle in haystack`. Dicts and maps test keys.
func contains(haystack, needle runtime.Value) (bool, error) {
	switch h := haystack.(type) {
	case *runtime.ListValue:
		return indexOf(h.Elements, needle) >= 0, nil
	case *runtime.TupleValue:
		return indexOf(h.Elements, needle) >= 0, nil
	case *runtime.SetValue:
		return h.Has(needle)
	case *runtime.DictValue:
		_, found, err := h.Get(needle)
		return found, err
	case *runtime.MapValue:
		_, found, err := h.Get(needle)
		return found, err
	case runtime.StringValue:
		s, ok := needle.(runtime.StringValue)
		if !ok {
			return false, runtime.UnsupportedOperation("in", needle, haystack)
		}
		return strings.Contains(h.Val, s.Val), nil
	default:
		return false, runtime.UnsupportedOperation("in", needle, haystack)
	}
}

func indexOf(elems []runtime.Value, v runtime.Value) int {
	for idx, el := range elems {
		if runtime.Equal(el, v) {
			return idx
		}
	}
	return -1
}

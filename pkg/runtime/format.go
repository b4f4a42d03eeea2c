package runtime

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Stringify renders the textual form used by concatenation and print.
func Stringify(v Value) string {
	return stringify(v, false)
}

// Repr renders a value the way it appears nested inside a container.
func Repr(v Value) string {
	return stringify(v, true)
}

func stringify(v Value, quoted bool) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case IntValue:
		return strconv.FormatInt(val.Val, 10)
	case FloatValue:
		return formatFloat(val.Val)
	case StringValue:
		if quoted {
			return strconv.Quote(val.Val)
		}
		return val.Val
	case BoolValue:
		if val.Val {
			return "true"
		}
		return "false"
	case NullValue:
		return "null"
	case *ListValue:
		return "[" + joinRepr(val.Elements) + "]"
	case *TupleValue:
		if len(val.Elements) == 1 {
			return "(" + Repr(val.Elements[0]) + ",)"
		}
		return "(" + joinRepr(val.Elements) + ")"
	case *DictValue:
		return "{" + joinEntries(val.Entries()) + "}"
	case *MapValue:
		return "Map{" + joinEntries(val.Entries()) + "}"
	case *SetValue:
		return "{" + joinRepr(val.Elements()) + "}"
	case *FunctionValue:
		if val.Name == "" {
			return "<function>"
		}
		return "<function " + val.Name + ">"
	case NativeFunctionValue:
		return "<native function " + val.Name + ">"
	case BoundMethodValue:
		return "<method " + val.Method.Owner.Name + "." + val.Method.Name + ">"
	case NativeBoundMethodValue:
		return "<method " + TypeName(val.Receiver) + "." + val.Method.Name + ">"
	case *ClassValue:
		return "<class " + val.Name + ">"
	case *InstanceValue:
		return "<" + val.Class.Name + " instance>"
	case *ModuleValue:
		return "<module " + val.Name + ">"
	case FluxValue:
		return stringify(val.Source.Current(), quoted)
	case ErrorValue:
		return string(val.ErrKind) + ": " + val.Message
	default:
		return fmt.Sprintf("<%s>", v.Kind())
	}
}

func formatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case math.IsNaN(f):
		return "NaN"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

func joinRepr(values []Value) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = Repr(v)
	}
	return strings.Join(parts, ", ")
}

func joinEntries(entries []Entry) string {
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = Repr(e.Key) + ": " + Repr(e.Value)
	}
	return strings.Join(parts, ", ")
}

// Truthy: null, false, zero numbers, empty text and empty containers are false.
func Truthy(v Value) bool {
	switch val := v.(type) {
	case nil, NullValue:
		return false
	case BoolValue:
		return val.Val
	case IntValue:
		return val.Val != 0
	case FloatValue:
		return val.Val != 0
	case StringValue:
		return val.Val != ""
	case *ListValue:
		return len(val.Elements) > 0
	case *TupleValue:
		return len(val.Elements) > 0
	case *DictValue:
		return val.Len() > 0
	case *MapValue:
		return val.Len() > 0
	case *SetValue:
		return val.Len() > 0
	case FluxValue:
		return Truthy(val.Source.Current())
	default:
		return true
	}
}

// ToFloat widens numeric values.
func ToFloat(v Value) (float64, bool) {
	switch val := v.(type) {
	case IntValue:
		return float64(val.Val), true
	case FloatValue:
		return val.Val, true
	default:
		return 0, false
	}
}

// Equal is structural for scalars and containers and identity for objects.
func Equal(a, b Value) bool {
	if a == nil {
		a = Null
	}
	if b == nil {
		b = Null
	}
	switch av := a.(type) {
	case IntValue:
		switch bv := b.(type) {
		case IntValue:
			return av.Val == bv.Val
		case FloatValue:
			return float64(av.Val) == bv.Val
		}
		return false
	case FloatValue:
		if bf, ok := ToFloat(b); ok {
			return av.Val == bf
		}
		return false
	case StringValue:
		bv, ok := b.(StringValue)
		return ok && av.Val == bv.Val
	case BoolValue:
		bv, ok := b.(BoolValue)
		return ok && av.Val == bv.Val
	case NullValue:
		_, ok := b.(NullValue)
		return ok
	case *ListValue:
		bv, ok := b.(*ListValue)
		return ok && equalSlices(av.Elements, bv.Elements)
	case *TupleValue:
		bv, ok := b.(*TupleValue)
		return ok && equalSlices(av.Elements, bv.Elements)
	case *DictValue:
		bv, ok := b.(*DictValue)
		return ok && equalEntries(av.Entries(), bv.Len(), bv.Get)
	case *MapValue:
		bv, ok := b.(*MapValue)
		return ok && equalEntries(av.Entries(), bv.Len(), bv.Get)
	case *SetValue:
		bv, ok := b.(*SetValue)
		if !ok || av.Len() != bv.Len() {
			return false
		}
		for _, el := range av.Elements() {
			if has, err := bv.Has(el); err != nil || !has {
				return false
			}
		}
		return true
	case NativeFunctionValue:
		bv, ok := b.(NativeFunctionValue)
		return ok && av.Name == bv.Name
	case BoundMethodValue:
		bv, ok := b.(BoundMethodValue)
		return ok && av.Receiver == bv.Receiver && av.Method == bv.Method
	case NativeBoundMethodValue:
		bv, ok := b.(NativeBoundMethodValue)
		return ok && av.Method.Name == bv.Method.Name && Equal(av.Receiver, bv.Receiver)
	case ErrorValue:
		bv, ok := b.(ErrorValue)
		return ok && av.ErrKind == bv.ErrKind && av.Message == bv.Message && Equal(av.Payload, bv.Payload)
	case FluxValue:
		bv, ok := b.(FluxValue)
		return ok && av.Source == bv.Source
	default:
		return a == b
	}
}

func equalSlices(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

func equalEntries(entries []Entry, otherLen int, get func(Value) (Value, bool, error)) bool {
	if len(entries) != otherLen {
		return false
	}
	for _, e := range entries {
		other, found, err := get(e.Key)
		if err != nil || !found || !Equal(e.Value, other) {
			return false
		}
	}
	return true
}

// HashKey derives the canonical key used by Dict, Set and Map. Mutable
// containers are not hashable; objects hash by identity.
func HashKey(v Value) (string, error) {
	switch val := v.(type) {
	case nil, NullValue:
		return "n", nil
	case IntValue:
		return "i:" + strconv.FormatInt(val.Val, 10), nil
	case FloatValue:
		if val.Val == math.Trunc(val.Val) && math.Abs(val.Val) < 1<<53 {
			return "i:" + strconv.FormatInt(int64(val.Val), 10), nil
		}
		return "f:" + strconv.FormatFloat(val.Val, 'g', -1, 64), nil
	case StringValue:
		return "s:" + strconv.Itoa(len(val.Val)) + ":" + val.Val, nil
	case BoolValue:
		if val.Val {
			return "b:1", nil
		}
		return "b:0", nil
	case *TupleValue:
		var b strings.Builder
		b.WriteString("t(")
		for i, el := range val.Elements {
			k, err := HashKey(el)
			if err != nil {
				return "", err
			}
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.Itoa(len(k)))
			b.WriteByte(':')
			b.WriteString(k)
		}
		b.WriteByte(')')
		return b.String(), nil
	case *InstanceValue, *ClassValue, *FunctionValue, *ModuleValue:
		return fmt.Sprintf("o:%p", val), nil
	case NativeFunctionValue:
		return "nf:" + val.Name, nil
	case ErrorValue:
		return "e:" + string(val.ErrKind) + ":" + val.Message, nil
	case FluxValue:
		return HashKey(val.Source.Current())
	default:
		return "", NewError(ErrUnsupportedOperation, "unhashable type: %s", TypeName(v))
	}
}

// Length reports the element count of text (in runes) and containers.
func Length(v Value) (int, bool) {
	switch val := v.(type) {
	case StringValue:
		return utf8.RuneCountInString(val.Val), true
	case *ListValue:
		return len(val.Elements), true
	case *TupleValue:
		return len(val.Elements), true
	case *DictValue:
		return val.Len(), true
	case *MapValue:
		return val.Len(), true
	case *SetValue:
		return val.Len(), true
	case FluxValue:
		return Length(val.Source.Current())
	}
	return 0, false
}

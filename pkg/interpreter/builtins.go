package interpreter

import (
	"sort"
	"strings"

	"github.com/CreadorLanda/NajaScript-sub000/pkg/runtime"
)

// methodImpl is a builtin method of a text or container value. Arity counts
// arguments after the receiver; -1 means variadic.
type methodImpl struct {
	arity int
	fn    func(ctx *runtime.NativeCallContext, recv runtime.Value, args []runtime.Value) (runtime.Value, error)
}

var builtinMethods map[runtime.Kind]map[string]methodImpl

func init() {
	sizeMethod := methodImpl{0, func(_ *runtime.NativeCallContext, recv runtime.Value, _ []runtime.Value) (runtime.Value, error) {
		n, _ := runtime.Length(recv)
		return runtime.IntValue{Val: int64(n)}, nil
	}}
	containsMethod := methodImpl{1, func(_ *runtime.NativeCallContext, recv runtime.Value, args []runtime.Value) (runtime.Value, error) {
		found, err := contains(recv, args[0])
		return runtime.BoolValue{Val: found}, err
	}}
	builtinMethods = map[runtime.Kind]map[string]methodImpl{
		runtime.KindList:  listMethods(sizeMethod, containsMethod),
		runtime.KindTuple: {"length": sizeMethod, "size": sizeMethod, "contains": containsMethod, "indexOf": {1, tupleIndexOf}, "toList": {0, toList}},
		runtime.KindDict:  dictMethods(sizeMethod, containsMethod),
		runtime.KindMap:   mapMethods(sizeMethod, containsMethod),
		runtime.KindSet:   setMethods(sizeMethod, containsMethod),
		runtime.KindText:  textMethods(sizeMethod, containsMethod),
	}
}

// builtinMethod binds the named builtin method of obj, if any.
func builtinMethod(obj runtime.Value, name string) (runtime.Value, bool) {
	table, ok := builtinMethods[obj.Kind()]
	if !ok {
		return nil, false
	}
	m, ok := table[name]
	if !ok {
		return nil, false
	}
	fn := runtime.NativeFunctionValue{
		Name:  name,
		Arity: m.arity,
		Impl: func(ctx *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
			return m.fn(ctx, obj, args)
		},
	}
	return runtime.NativeBoundMethodValue{Receiver: obj, Method: fn}, true
}

func intArg(args []runtime.Value, at int, method string) (int64, error) {
	n, ok := args[at].(runtime.IntValue)
	if !ok {
		return 0, runtime.NewError(runtime.ErrUnsupportedOperation, "%s expects an int argument, got %s", method, runtime.TypeName(args[at]))
	}
	return n.Val, nil
}

func textArg(args []runtime.Value, at int, method string) (string, error) {
	s, ok := args[at].(runtime.StringValue)
	if !ok {
		return "", runtime.NewError(runtime.ErrUnsupportedOperation, "%s expects a string argument, got %s", method, runtime.TypeName(args[at]))
	}
	return s.Val, nil
}

// sliceBounds clamps [start, end) to length; end defaults to length.
func sliceBounds(args []runtime.Value, length int, method string) (int, int, error) {
	if len(args) == 0 || len(args) > 2 {
		return 0, 0, runtime.NewError(runtime.ErrWrongArgumentCount, "%s expects 1 or 2 arguments, got %d", method, len(args))
	}
	start, err := intArg(args, 0, method)
	if err != nil {
		return 0, 0, err
	}
	end := int64(length)
	if len(args) == 2 {
		if end, err = intArg(args, 1, method); err != nil {
			return 0, 0, err
		}
	}
	clamp := func(n int64) int {
		if n < 0 {
			n += int64(length)
		}
		if n < 0 {
			return 0
		}
		if n > int64(length) {
			return length
		}
		return int(n)
	}
	s, e := clamp(start), clamp(end)
	if e < s {
		e = s
	}
	return s, e, nil
}

func tupleIndexOf(_ *runtime.NativeCallContext, recv runtime.Value, args []runtime.Value) (runtime.Value, error) {
	return runtime.IntValue{Val: int64(indexOf(recv.(*runtime.TupleValue).Elements, args[0]))}, nil
}

func toList(_ *runtime.NativeCallContext, recv runtime.Value, _ []runtime.Value) (runtime.Value, error) {
	items, err := iterationItems(recv)
	if err != nil {
		return nil, err
	}
	return runtime.NewList(items), nil
}

func listMethods(size, has methodImpl) map[string]methodImpl {
	list := func(v runtime.Value) *runtime.ListValue { return v.(*runtime.ListValue) }
	return map[string]methodImpl{
		"length":   size,
		"size":     size,
		"contains": has,
		"append": {1, func(_ *runtime.NativeCallContext, recv runtime.Value, args []runtime.Value) (runtime.Value, error) {
			l := list(recv)
			l.Elements = append(l.Elements, args[0])
			return runtime.Null, nil
		}},
		"pop": {0, func(_ *runtime.NativeCallContext, recv runtime.Value, _ []runtime.Value) (runtime.Value, error) {
			l := list(recv)
			if len(l.Elements) == 0 {
				return nil, runtime.NewError(runtime.ErrIndexOutOfRange, "pop from empty list")
			}
			last := l.Elements[len(l.Elements)-1]
			l.Elements = l.Elements[:len(l.Elements)-1]
			return last, nil
		}},
		"insert": {2, func(_ *runtime.NativeCallContext, recv runtime.Value, args []runtime.Value) (runtime.Value, error) {
			l := list(recv)
			at, err := intArg(args, 0, "insert")
			if err != nil {
				return nil, err
			}
			if at < 0 || at > int64(len(l.Elements)) {
				return nil, runtime.NewError(runtime.ErrIndexOutOfRange, "insert index %d out of range for length %d", at, len(l.Elements))
			}
			l.Elements = append(l.Elements, nil)
			copy(l.Elements[at+1:], l.Elements[at:])
			l.Elements[at] = args[1]
			return runtime.Null, nil
		}},
		"remove": {1, func(_ *runtime.NativeCallContext, recv runtime.Value, args []runtime.Value) (runtime.Value, error) {
			l := list(recv)
			at := indexOf(l.Elements, args[0])
			if at < 0 {
				return runtime.BoolValue{Val: false}, nil
			}
			l.Elements = append(l.Elements[:at], l.Elements[at+1:]...)
			return runtime.BoolValue{Val: true}, nil
		}},
		"indexOf": {1, func(_ *runtime.NativeCallContext, recv runtime.Value, args []runtime.Value) (runtime.Value, error) {
			return runtime.IntValue{Val: int64(indexOf(list(recv).Elements, args[0]))}, nil
		}},
		"join": {1, func(_ *runtime.NativeCallContext, recv runtime.Value, args []runtime.Value) (runtime.Value, error) {
			sep, err := textArg(args, 0, "join")
			if err != nil {
				return nil, err
			}
			parts := make([]string, len(list(recv).Elements))
			for idx, el := range list(recv).Elements {
				parts[idx] = runtime.Stringify(el)
			}
			return runtime.StringValue{Val: strings.Join(parts, sep)}, nil
		}},
		"slice": {-1, func(_ *runtime.NativeCallContext, recv runtime.Value, args []runtime.Value) (runtime.Value, error) {
			l := list(recv)
			s, e, err := sliceBounds(args, len(l.Elements), "slice")
			if err != nil {
				return nil, err
			}
			out := make([]runtime.Value, e-s)
			copy(out, l.Elements[s:e])
			return runtime.NewList(out), nil
		}},
		"reverse": {0, func(_ *runtime.NativeCallContext, recv runtime.Value, _ []runtime.Value) (runtime.Value, error) {
			elems := list(recv).Elements
			for a, b := 0, len(elems)-1; a < b; a, b = a+1, b-1 {
				elems[a], elems[b] = elems[b], elems[a]
			}
			return runtime.Null, nil
		}},
		"sort": {0, func(_ *runtime.NativeCallContext, recv runtime.Value, _ []runtime.Value) (runtime.Value, error) {
			elems := list(recv).Elements
			var failure error
			sort.SliceStable(elems, func(a, b int) bool {
				less, err := compare("<", elems[a], elems[b])
				if err != nil {
					failure = err
					return false
				}
				return less.(runtime.BoolValue).Val
			})
			return runtime.Null, failure
		}},
		"clear": {0, func(_ *runtime.NativeCallContext, recv runtime.Value, _ []runtime.Value) (runtime.Value, error) {
			list(recv).Elements = nil
			return runtime.Null, nil
		}},
		"copy": {0, func(_ *runtime.NativeCallContext, recv runtime.Value, _ []runtime.Value) (runtime.Value, error) {
			return toList(nil, recv, nil)
		}},
		"map": {1, func(ctx *runtime.NativeCallContext, recv runtime.Value, args []runtime.Value) (runtime.Value, error) {
			elems := list(recv).Elements
			out := make([]runtime.Value, 0, len(elems))
			for _, el := range elems {
				v, err := ctx.Call(args[0], []runtime.Value{el})
				if err != nil {
					return nil, err
				}
				out = append(out, v)
			}
			return runtime.NewList(out), nil
		}},
		"filter": {1, func(ctx *runtime.NativeCallContext, recv runtime.Value, args []runtime.Value) (runtime.Value, error) {
			var out []runtime.Value
			for _, el := range list(recv).Elements {
				keep, err := ctx.Call(args[0], []runtime.Value{el})
				if err != nil {
					return nil, err
				}
				if runtime.Truthy(keep) {
					out = append(out, el)
				}
			}
			return runtime.NewList(out), nil
		}},
		"forEach": {1, func(ctx *runtime.NativeCallContext, recv runtime.Value, args []runtime.Value) (runtime.Value, error) {
			items, _ := iterationItems(recv)
			for _, el := range items {
				if _, err := ctx.Call(args[0], []runtime.Value{el}); err != nil {
					return nil, err
				}
			}
			return runtime.Null, nil
		}},
	}
}

type keyedTable interface {
	runtime.Value
	Set(key, value runtime.Value) error
	Get(key runtime.Value) (runtime.Value, bool, error)
	Delete(key runtime.Value) (bool, error)
	Entries() []runtime.Entry
	Keys() []runtime.Value
	Values() []runtime.Value
}

// tableMethods are shared by Dict and Map.
func tableMethods(size, has methodImpl) map[string]methodImpl {
	return map[string]methodImpl{
		"length":   size,
		"size":     size,
		"contains": has,
		"has":      has,
		"keys": {0, func(_ *runtime.NativeCallContext, recv runtime.Value, _ []runtime.Value) (runtime.Value, error) {
			return runtime.NewList(recv.(keyedTable).Keys()), nil
		}},
		"values": {0, func(_ *runtime.NativeCallContext, recv runtime.Value, _ []runtime.Value) (runtime.Value, error) {
			return runtime.NewList(recv.(keyedTable).Values()), nil
		}},
		"items": {0, func(_ *runtime.NativeCallContext, recv runtime.Value, _ []runtime.Value) (runtime.Value, error) {
			entries := recv.(keyedTable).Entries()
			out := make([]runtime.Value, len(entries))
			for idx, e := range entries {
				out[idx] = runtime.NewTuple([]runtime.Value{e.Key, e.Value})
			}
			return runtime.NewList(out), nil
		}},
		"set": {2, func(_ *runtime.NativeCallContext, recv runtime.Value, args []runtime.Value) (runtime.Value, error) {
			return runtime.Null, recv.(keyedTable).Set(args[0], args[1])
		}},
		"delete": {1, func(_ *runtime.NativeCallContext, recv runtime.Value, args []runtime.Value) (runtime.Value, error) {
			removed, err := recv.(keyedTable).Delete(args[0])
			return runtime.BoolValue{Val: removed}, err
		}},
	}
}

func dictMethods(size, has methodImpl) map[string]methodImpl {
	methods := tableMethods(size, has)
	methods["remove"] = methods["delete"]
	// get on a dict takes an optional fallback
	methods["get"] = methodImpl{-1, func(_ *runtime.NativeCallContext, recv runtime.Value, args []runtime.Value) (runtime.Value, error) {
		if len(args) == 0 || len(args) > 2 {
			return nil, runtime.NewError(runtime.ErrWrongArgumentCount, "get expects 1 or 2 arguments, got %d", len(args))
		}
		val, found, err := recv.(*runtime.DictValue).Get(args[0])
		if err != nil {
			return nil, err
		}
		if found {
			return val, nil
		}
		if len(args) == 2 {
			return args[1], nil
		}
		return runtime.Null, nil
	}}
	return methods
}

func mapMethods(size, has methodImpl) map[string]methodImpl {
	methods := tableMethods(size, has)
	methods["get"] = methodImpl{1, func(_ *runtime.NativeCallContext, recv runtime.Value, args []runtime.Value) (runtime.Value, error) {
		val, found, err := recv.(*runtime.MapValue).Get(args[0])
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, runtime.NewError(runtime.ErrKeyNotFound, "key %s not found", runtime.Repr(args[0]))
		}
		return val, nil
	}}
	return methods
}

func setMethods(size, has methodImpl) map[string]methodImpl {
	set := func(v runtime.Value) *runtime.SetValue { return v.(*runtime.SetValue) }
	combine := func(name string, keep func(inOther bool) bool, addOther bool) methodImpl {
		return methodImpl{1, func(_ *runtime.NativeCallContext, recv runtime.Value, args []runtime.Value) (runtime.Value, error) {
			other, ok := args[0].(*runtime.SetValue)
			if !ok {
				return nil, runtime.NewError(runtime.ErrUnsupportedOperation, "%s expects a set, got %s", name, runtime.TypeName(args[0]))
			}
			out := runtime.NewSet()
			for _, el := range set(recv).Elements() {
				inOther, err := other.Has(el)
				if err != nil {
					return nil, err
				}
				if keep(inOther) {
					if _, err := out.Add(el); err != nil {
						return nil, err
					}
				}
			}
			if addOther {
				for _, el := range other.Elements() {
					if _, err := out.Add(el); err != nil {
						return nil, err
					}
				}
			}
			return out, nil
		}}
	}
	return map[string]methodImpl{
		"length":   size,
		"size":     size,
		"contains": has,
		"has":      has,
		"add": {1, func(_ *runtime.NativeCallContext, recv runtime.Value, args []runtime.Value) (runtime.Value, error) {
			added, err := set(recv).Add(args[0])
			return runtime.BoolValue{Val: added}, err
		}},
		"remove": {1, func(_ *runtime.NativeCallContext, recv runtime.Value, args []runtime.Value) (runtime.Value, error) {
			removed, err := set(recv).Remove(args[0])
			return runtime.BoolValue{Val: removed}, err
		}},
		"toList":       {0, toList},
		"union":        combine("union", func(bool) bool { return true }, true),
		"intersection": combine("intersection", func(in bool) bool { return in }, false),
		"difference":   combine("difference", func(in bool) bool { return !in }, false),
	}
}

func textMethods(size, has methodImpl) map[string]methodImpl {
	text := func(v runtime.Value) string { return v.(runtime.StringValue).Val }
	str := func(s string) runtime.Value { return runtime.StringValue{Val: s} }
	unary := func(f func(string) string) methodImpl {
		return methodImpl{0, func(_ *runtime.NativeCallContext, recv runtime.Value, _ []runtime.Value) (runtime.Value, error) {
			return str(f(text(recv))), nil
		}}
	}
	predicate := func(name string, f func(string, string) bool) methodImpl {
		return methodImpl{1, func(_ *runtime.NativeCallContext, recv runtime.Value, args []runtime.Value) (runtime.Value, error) {
			arg, err := textArg(args, 0, name)
			if err != nil {
				return nil, err
			}
			return runtime.BoolValue{Val: f(text(recv), arg)}, nil
		}}
	}
	return map[string]methodImpl{
		"length":     size,
		"size":       size,
		"contains":   has,
		"upper":      unary(strings.ToUpper),
		"lower":      unary(strings.ToLower),
		"trim":       unary(strings.TrimSpace),
		"startsWith": predicate("startsWith", strings.HasPrefix),
		"endsWith":   predicate("endsWith", strings.HasSuffix),
		"split": {1, func(_ *runtime.NativeCallContext, recv runtime.Value, args []runtime.Value) (runtime.Value, error) {
			sep, err := textArg(args, 0, "split")
			if err != nil {
				return nil, err
			}
			parts := strings.Split(text(recv), sep)
			out := make([]runtime.Value, len(parts))
			for idx, p := range parts {
				out[idx] = str(p)
			}
			return runtime.NewList(out), nil
		}},
		"replace": {2, func(_ *runtime.NativeCallContext, recv runtime.Value, args []runtime.Value) (runtime.Value, error) {
			old, err := textArg(args, 0, "replace")
			if err != nil {
				return nil, err
			}
			repl, err := textArg(args, 1, "replace")
			if err != nil {
				return nil, err
			}
			return str(strings.ReplaceAll(text(recv), old, repl)), nil
		}},
		"indexOf": {1, func(_ *runtime.NativeCallContext, recv runtime.Value, args []runtime.Value) (runtime.Value, error) {
			needle, err := textArg(args, 0, "indexOf")
			if err != nil {
				return nil, err
			}
			runes := []rune(text(recv))
			target := []rune(needle)
			for at := 0; at+len(target) <= len(runes); at++ {
				if string(runes[at:at+len(target)]) == needle {
					return runtime.IntValue{Val: int64(at)}, nil
				}
			}
			return runtime.IntValue{Val: -1}, nil
		}},
		"substring": {-1, func(_ *runtime.NativeCallContext, recv runtime.Value, args []runtime.Value) (runtime.Value, error) {
			runes := []rune(text(recv))
			s, e, err := sliceBounds(args, len(runes), "substring")
			if err != nil {
				return nil, err
			}
			return str(string(runes[s:e])), nil
		}},
	}
}

package interpreter

import "github.com/CreadorLanda/NajaScript-sub000/pkg/runtime"

func (i *Interpreter) getMember(obj runtime.Value, name string, env *runtime.Environment) (runtime.Value, error) {
	switch v := obj.(type) {
	case *runtime.InstanceValue:
		return i.instanceMember(v, name, env)
	case *runtime.ClassValue:
		return i.staticMember(v, name, env)
	case *runtime.ModuleValue:
		return v.Export(name)
	case runtime.ErrorValue:
		switch name {
		case "kind":
			return runtime.StringValue{Val: string(v.ErrKind)}, nil
		case "message":
			return runtime.StringValue{Val: v.Message}, nil
		case "value":
			return v.Payload, nil
		}
	case runtime.FluxValue:
		switch name {
		case "name":
			return runtime.StringValue{Val: v.Source.Name()}, nil
		case "value":
			return v.Source.Current(), nil
		case "dependencies":
			deps := v.Source.Dependencies()
			out := make([]runtime.Value, len(deps))
			for idx, d := range deps {
				out[idx] = runtime.StringValue{Val: d}
			}
			return runtime.NewList(out), nil
		}
	default:
		if m, ok := builtinMethod(obj, name); ok {
			return m, nil
		}
	}
	return nil, runtime.NewError(runtime.ErrUndefinedName, "%s has no member '%s'", runtime.TypeName(obj), name)
}

func (i *Interpreter) setMember(obj runtime.Value, name string, value runtime.Value, env *runtime.Environment) error {
	switch v := obj.(type) {
	case *runtime.InstanceValue:
		return i.setInstanceMember(v, name, value, env)
	case *runtime.ClassValue:
		return i.setStaticMember(v, name, value, env)
	case *runtime.ModuleValue:
		return runtime.NewError(runtime.ErrUnsupportedOperation, "cannot assign to export '%s' of module %s", name, v.Name)
	default:
		return runtime.NewError(runtime.ErrUnsupportedOperation, "cannot set member '%s' on %s", name, runtime.TypeName(obj))
	}
}

func listIndex(idx runtime.Value, length int) (int, error) {
	n, ok := idx.(runtime.IntValue)
	if !ok {
		return 0, runtime.NewError(runtime.ErrUnsupportedOperation, "index must be int, got %s", runtime.TypeName(idx))
	}
	if n.Val < 0 || n.Val >= int64(length) {
		return 0, runtime.NewError(runtime.ErrIndexOutOfRange, "index %d out of range for length %d", n.Val, length)
	}
	return int(n.Val), nil
}

func getIndex(obj, idx runtime.Value) (runtime.Value, error) {
	switch v := obj.(type) {
	case *runtime.ListValue:
		at, err := listIndex(idx, len(v.Elements))
		if err != nil {
			return nil, err
		}
		return v.Elements[at], nil
	case *runtime.TupleValue:
		at, err := listIndex(idx, len(v.Elements))
		if err != nil {
			return nil, err
		}
		return v.Elements[at], nil
	case runtime.StringValue:
		runes := []rune(v.Val)
		at, err := listIndex(idx, len(runes))
		if err != nil {
			return nil, err
		}
		return runtime.StringValue{Val: string(runes[at])}, nil
	case *runtime.DictValue:
		val, found, err := v.Get(idx)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, runtime.NewError(runtime.ErrKeyNotFound, "key %s not found", runtime.Repr(idx))
		}
		return val, nil
	case runtime.FluxValue:
		return getIndex(v.Source.Current(), idx)
	default:
		return nil, runtime.NewError(runtime.ErrUnsupportedOperation, "value of type %s is not indexable", runtime.TypeName(obj))
	}
}

func setIndex(obj, idx, value runtime.Value) error {
	switch v := obj.(type) {
	case *runtime.ListValue:
		at, err := listIndex(idx, len(v.Elements))
		if err != nil {
			return err
		}
		v.Elements[at] = value
		return nil
	case *runtime.DictValue:
		return v.Set(idx, value)
	case *runtime.TupleValue, runtime.StringValue:
		return runtime.NewError(runtime.ErrUnsupportedOperation, "%s is immutable", runtime.TypeName(obj))
	default:
		return runtime.NewError(runtime.ErrUnsupportedOperation, "value of type %s does not support index assignment", runtime.TypeName(obj))
	}
}

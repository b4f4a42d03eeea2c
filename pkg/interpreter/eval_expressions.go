package interpreter

import (
	"github.com/CreadorLanda/NajaScript-sub000/pkg/ast"
	"github.com/CreadorLanda/NajaScript-sub000/pkg/runtime"
)

func (i *Interpreter) evaluateExpression(node ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.StringLiteral:
		return runtime.StringValue{Val: n.Value}, nil
	case *ast.IntegerLiteral:
		return runtime.IntValue{Val: n.Value}, nil
	case *ast.FloatLiteral:
		return runtime.FloatValue{Val: n.Value}, nil
	case *ast.BooleanLiteral:
		return runtime.BoolValue{Val: n.Value}, nil
	case *ast.NullLiteral:
		return runtime.Null, nil
	case *ast.ListLiteral:
		elems, err := i.evaluateAll(n.Elements, env)
		if err != nil {
			return nil, err
		}
		return runtime.NewList(elems), nil
	case *ast.TupleLiteral:
		elems, err := i.evaluateAll(n.Elements, env)
		if err != nil {
			return nil, err
		}
		return runtime.NewTuple(elems), nil
	case *ast.SetLiteral:
		elems, err := i.evaluateAll(n.Elements, env)
		if err != nil {
			return nil, err
		}
		set := runtime.NewSet()
		for _, el := range elems {
			if _, err := set.Add(el); err != nil {
				return nil, err
			}
		}
		return set, nil
	case *ast.DictLiteral:
		dict := runtime.NewDict()
		for _, entry := range n.Entries {
			key, err := i.evaluateExpression(entry.Key, env)
			if err != nil {
				return nil, err
			}
			val, err := i.evaluateExpression(entry.Value, env)
			if err != nil {
				return nil, err
			}
			if err := dict.Set(key, val); err != nil {
				return nil, err
			}
		}
		return dict, nil
	case *ast.Identifier:
		return env.Get(n.Name)
	case *ast.ThisExpression:
		frame := frameOf(env)
		if frame == nil || frame.this == nil {
			return nil, runtime.NewError(runtime.ErrUndefinedName, "'this' is only available inside instance methods")
		}
		return frame.this, nil
	case *ast.SuperExpression:
		return nil, runtime.NewError(runtime.ErrUnsupportedOperation, "'super' must be followed by a member access or a call")
	case *ast.UnaryExpression:
		operand, err := i.evaluateExpression(n.Operand, env)
		if err != nil {
			return nil, err
		}
		return applyUnary(n.Operator, operand)
	case *ast.BinaryExpression:
		return i.evaluateBinaryExpression(n, env)
	case *ast.AssignmentExpression:
		return i.evaluateAssignment(n, env)
	case *ast.UpdateExpression:
		return i.evaluateUpdate(n, env)
	case *ast.MemberAccessExpression:
		if _, ok := n.Object.(*ast.SuperExpression); ok {
			return i.superMember(n.Member.Name, env)
		}
		obj, err := i.evaluateExpression(n.Object, env)
		if err != nil {
			return nil, err
		}
		return i.getMember(obj, n.Member.Name, env)
	case *ast.IndexExpression:
		obj, err := i.evaluateExpression(n.Object, env)
		if err != nil {
			return nil, err
		}
		idx, err := i.evaluateExpression(n.Index, env)
		if err != nil {
			return nil, err
		}
		return getIndex(obj, idx)
	case *ast.FunctionCall:
		return i.evaluateCall(n, env)
	case *ast.NewExpression:
		return i.evaluateNew(n, env)
	case *ast.LambdaExpression:
		return newFunction("", n.Params, n.Body, env), nil
	case *ast.ConditionalExpression:
		cond, err := i.evaluateExpression(n.Condition, env)
		if err != nil {
			return nil, err
		}
		if runtime.Truthy(cond) {
			return i.evaluateExpression(n.Consequent, env)
		}
		return i.evaluateExpression(n.Alternate, env)
	case *ast.AwaitExpression:
		// evaluation is synchronous, so await yields its operand
		return i.evaluateExpression(n.Argument, env)
	default:
		return nil, runtime.NewError(runtime.ErrUnsupportedOperation, "unsupported expression %T", node)
	}
}

func (i *Interpreter) evaluateAll(exprs []ast.Expression, env *runtime.Environment) ([]runtime.Value, error) {
	out := make([]runtime.Value, 0, len(exprs))
	for _, e := range exprs {
		v, err := i.evaluateExpression(e, env)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (i *Interpreter) evaluateBinaryExpression(expr *ast.BinaryExpression, env *runtime.Environment) (runtime.Value, error) {
	left, err := i.evaluateExpression(expr.Left, env)
	if err != nil {
		return nil, err
	}
	switch expr.Operator {
	case "&&", "and":
		if !runtime.Truthy(left) {
			return left, nil
		}
		return i.evaluateExpression(expr.Right, env)
	case "||", "or":
		if runtime.Truthy(left) {
			return left, nil
		}
		return i.evaluateExpression(expr.Right, env)
	}
	right, err := i.evaluateExpression(expr.Right, env)
	if err != nil {
		return nil, err
	}
	return applyBinary(expr.Operator, left, right)
}

// place is a resolved assignment target; object and index expressions are
// evaluated once.
type place struct {
	get func() (runtime.Value, error)
	set func(runtime.Value) error
}

func (i *Interpreter) resolvePlace(target ast.AssignmentTarget, env *runtime.Environment) (*place, error) {
	switch t := target.(type) {
	case *ast.Identifier:
		return &place{
			get: func() (runtime.Value, error) { return env.Get(t.Name) },
			set: func(v runtime.Value) error { return env.Assign(t.Name, v) },
		}, nil
	case *ast.MemberAccessExpression:
		if _, ok := t.Object.(*ast.SuperExpression); ok {
			return nil, runtime.NewError(runtime.ErrUnsupportedOperation, "cannot assign through 'super'")
		}
		obj, err := i.evaluateExpression(t.Object, env)
		if err != nil {
			return nil, err
		}
		name := t.Member.Name
		return &place{
			get: func() (runtime.Value, error) { return i.getMember(obj, name, env) },
			set: func(v runtime.Value) error { return i.setMember(obj, name, v, env) },
		}, nil
	case *ast.IndexExpression:
		obj, err := i.evaluateExpression(t.Object, env)
		if err != nil {
			return nil, err
		}
		idx, err := i.evaluateExpression(t.Index, env)
		if err != nil {
			return nil, err
		}
		return &place{
			get: func() (runtime.Value, error) { return getIndex(obj, idx) },
			set: func(v runtime.Value) error { return setIndex(obj, idx, v) },
		}, nil
	default:
		return nil, runtime.NewError(runtime.ErrUnsupportedOperation, "invalid assignment target %T", target)
	}
}

func (i *Interpreter) evaluateAssignment(expr *ast.AssignmentExpression, env *runtime.Environment) (runtime.Value, error) {
	p, err := i.resolvePlace(expr.Left, env)
	if err != nil {
		return nil, err
	}
	var value runtime.Value
	if op, compound := expr.Operator.BinaryOperator(); compound {
		current, err := p.get()
		if err != nil {
			return nil, err
		}
		rhs, err := i.evaluateExpression(expr.Right, env)
		if err != nil {
			return nil, err
		}
		value, err = applyBinary(op, current, rhs)
		if err != nil {
			return nil, err
		}
	} else if expr.Operator == ast.AssignmentAssign || expr.Operator == "" {
		value, err = i.evaluateExpression(expr.Right, env)
		if err != nil {
			return nil, err
		}
	} else {
		return nil, runtime.NewError(runtime.ErrUnsupportedOperation, "unknown assignment operator '%s'", expr.Operator)
	}
	if err := p.set(value); err != nil {
		return nil, err
	}
	return value, nil
}

func (i *Interpreter) evaluateUpdate(expr *ast.UpdateExpression, env *runtime.Environment) (runtime.Value, error) {
	var op string
	switch expr.Operator {
	case "++":
		op = "+"
	case "--":
		op = "-"
	default:
		return nil, runtime.NewError(runtime.ErrUnsupportedOperation, "unknown update operator '%s'", expr.Operator)
	}
	p, err := i.resolvePlace(expr.Target, env)
	if err != nil {
		return nil, err
	}
	old, err := p.get()
	if err != nil {
		return nil, err
	}
	if _, ok := runtime.ToFloat(old); !ok {
		return nil, runtime.UnsupportedOperation(expr.Operator, old, nil)
	}
	updated, err := applyBinary(op, old, runtime.IntValue{Val: 1})
	if err != nil {
		return nil, err
	}
	if err := p.set(updated); err != nil {
		return nil, err
	}
	if expr.Prefix {
		return updated, nil
	}
	return old, nil
}

package interpreter

import (
	"unicode/utf8"

	"github.com/CreadorLanda/NajaScript-sub000/pkg/ast"
	"github.com/CreadorLanda/NajaScript-sub000/pkg/runtime"
)

func (i *Interpreter) execStatement(node ast.Statement, env *runtime.Environment) (signal, error) {
	switch n := node.(type) {
	case ast.Expression:
		val, err := i.evaluateExpression(n, env)
		if err != nil {
			return nil, err
		}
		return normalSignal{value: val}, nil
	case *ast.VariableDeclaration:
		return i.execVariableDeclaration(n, env)
	case *ast.FunctionDeclaration:
		fn := newFunction(n.ID.Name, n.Params, n.Body, env)
		if err := env.Define(n.ID.Name, fn, false); err != nil {
			return nil, err
		}
		return normalNull, nil
	case *ast.ClassDeclaration:
		if _, err := i.declareClass(n, env); err != nil {
			return nil, err
		}
		return normalNull, nil
	case *ast.FluxDeclaration:
		node, err := i.fluxes.Declare(n.ID.Name, n.Expression, env)
		if err != nil {
			return nil, err
		}
		return normalSignal{value: runtime.FluxValue{Source: node}}, nil
	case *ast.BlockStatement:
		return i.execScoped(n, env.Extend())
	case *ast.IfStatement:
		return i.execIf(n, env)
	case *ast.WhileLoop:
		return i.execWhile(n, env)
	case *ast.DoWhileLoop:
		return i.execDoWhile(n, env)
	case *ast.ForLoop:
		return i.execFor(n, env)
	case *ast.ForInLoop:
		return i.execForIn(n, env)
	case *ast.SwitchStatement:
		return i.execSwitch(n, env)
	case *ast.BreakStatement:
		return breakSignal{}, nil
	case *ast.ContinueStatement:
		return continueSignal{}, nil
	case *ast.ReturnStatement:
		if n.Argument == nil {
			return returnSignal{value: runtime.Null}, nil
		}
		val, err := i.evaluateExpression(n.Argument, env)
		if err != nil {
			return nil, err
		}
		return returnSignal{value: val}, nil
	case *ast.ThrowStatement:
		return nil, i.execThrow(n, env)
	case *ast.TryStatement:
		return i.execTry(n, env)
	case *ast.ImportStatement:
		if err := i.execImport(n, env); err != nil {
			return nil, err
		}
		return normalNull, nil
	case *ast.ExportStatement:
		return nil, runtime.NewError(runtime.ErrUnsupportedOperation, "export is only allowed at the top level of a module")
	default:
		return nil, runtime.NewError(runtime.ErrUnsupportedOperation, "unsupported statement %T", node)
	}
}

func (i *Interpreter) execVariableDeclaration(decl *ast.VariableDeclaration, env *runtime.Environment) (signal, error) {
	var val runtime.Value = runtime.Null
	if decl.Value != nil {
		v, err := i.evaluateExpression(decl.Value, env)
		if err != nil {
			return nil, err
		}
		val = v
	}
	if err := env.Define(decl.ID.Name, val, decl.IsConst); err != nil {
		return nil, err
	}
	return normalNull, nil
}

// execBlock runs statements in env (the caller decides whether env is a
// fresh scope) and stops at the first non-normal signal.
func (i *Interpreter) execBlock(block *ast.BlockStatement, env *runtime.Environment) (signal, error) {
	if block == nil {
		return normalNull, nil
	}
	for _, stmt := range block.Body {
		sig, err := i.execStatement(stmt, env)
		if err != nil {
			return nil, err
		}
		if _, ok := sig.(normalSignal); !ok {
			return sig, nil
		}
	}
	return normalNull, nil
}

// execScoped runs block in env, a scope owned by the block, and releases the
// flux bindings declared there once the block is left.
func (i *Interpreter) execScoped(block *ast.BlockStatement, env *runtime.Environment) (signal, error) {
	defer i.fluxes.Release(env)
	return i.execBlock(block, env)
}

func (i *Interpreter) execIf(stmt *ast.IfStatement, env *runtime.Environment) (signal, error) {
	cond, err := i.evaluateExpression(stmt.Condition, env)
	if err != nil {
		return nil, err
	}
	if runtime.Truthy(cond) {
		return i.execScoped(stmt.Consequent, env.Extend())
	}
	switch alt := stmt.Alternate.(type) {
	case nil:
		return normalNull, nil
	case *ast.IfStatement:
		return i.execIf(alt, env)
	case *ast.BlockStatement:
		return i.execScoped(alt, env.Extend())
	default:
		return i.execStatement(alt, env.Extend())
	}
}

// loopBody runs one iteration. It reports whether the loop should stop and
// the signal to propagate when it does.
func (i *Interpreter) loopBody(body *ast.BlockStatement, env *runtime.Environment) (stop bool, out signal, err error) {
	sig, err := i.execScoped(body, env)
	if err != nil {
		return true, nil, err
	}
	switch sig.(type) {
	case breakSignal:
		return true, normalNull, nil
	case returnSignal:
		return true, sig, nil
	default:
		// normal completion and continue both move on to the next iteration
		return false, nil, nil
	}
}

func (i *Interpreter) execWhile(loop *ast.WhileLoop, env *runtime.Environment) (signal, error) {
	for {
		cond, err := i.evaluateExpression(loop.Condition, env)
		if err != nil {
			return nil, err
		}
		if !runtime.Truthy(cond) {
			return normalNull, nil
		}
		if stop, sig, err := i.loopBody(loop.Body, env.Extend()); stop {
			return sig, err
		}
	}
}

func (i *Interpreter) execDoWhile(loop *ast.DoWhileLoop, env *runtime.Environment) (signal, error) {
	for {
		if stop, sig, err := i.loopBody(loop.Body, env.Extend()); stop {
			return sig, err
		}
		cond, err := i.evaluateExpression(loop.Condition, env)
		if err != nil {
			return nil, err
		}
		if !runtime.Truthy(cond) {
			return normalNull, nil
		}
	}
}

func (i *Interpreter) execFor(loop *ast.ForLoop, env *runtime.Environment) (signal, error) {
	loopEnv := env.Extend()
	defer i.fluxes.Release(loopEnv)
	if loop.Init != nil {
		if _, err := i.execStatement(loop.Init, loopEnv); err != nil {
			return nil, err
		}
	}
	for {
		if loop.Condition != nil {
			cond, err := i.evaluateExpression(loop.Condition, loopEnv)
			if err != nil {
				return nil, err
			}
			if !runtime.Truthy(cond) {
				return normalNull, nil
			}
		}
		if stop, sig, err := i.loopBody(loop.Body, loopEnv.Extend()); stop {
			return sig, err
		}
		if loop.Update != nil {
			if _, err := i.evaluateExpression(loop.Update, loopEnv); err != nil {
				return nil, err
			}
		}
	}
}

func (i *Interpreter) execForIn(loop *ast.ForInLoop, env *runtime.Environment) (signal, error) {
	iterable, err := i.evaluateExpression(loop.Iterable, env)
	if err != nil {
		return nil, err
	}
	items, err := iterationItems(iterable)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		iterEnv := env.Extend()
		if err := iterEnv.Define(loop.Variable.Name, item, false); err != nil {
			return nil, err
		}
		if stop, sig, err := i.loopBody(loop.Body, iterEnv); stop {
			return sig, err
		}
	}
	return normalNull, nil
}

// iterationItems snapshots the elements a for-in loop visits.
func iterationItems(v runtime.Value) ([]runtime.Value, error) {
	switch val := v.(type) {
	case *runtime.ListValue:
		out := make([]runtime.Value, len(val.Elements))
		copy(out, val.Elements)
		return out, nil
	case *runtime.TupleValue:
		return val.Elements, nil
	case *runtime.SetValue:
		return val.Elements(), nil
	case *runtime.DictValue:
		return val.Keys(), nil
	case *runtime.MapValue:
		return val.Keys(), nil
	case runtime.StringValue:
		out := make([]runtime.Value, 0, utf8.RuneCountInString(val.Val))
		for _, r := range val.Val {
			out = append(out, runtime.StringValue{Val: string(r)})
		}
		return out, nil
	default:
		return nil, runtime.NewError(runtime.ErrUnsupportedOperation, "value of type %s is not iterable", runtime.TypeName(v))
	}
}

// execSwitch falls through from the first matching case until a break.
func (i *Interpreter) execSwitch(stmt *ast.SwitchStatement, env *runtime.Environment) (signal, error) {
	disc, err := i.evaluateExpression(stmt.Discriminant, env)
	if err != nil {
		return nil, err
	}
	start := -1
	for idx, c := range stmt.Cases {
		if c.Test == nil {
			continue
		}
		test, err := i.evaluateExpression(c.Test, env)
		if err != nil {
			return nil, err
		}
		if runtime.Equal(disc, test) {
			start = idx
			break
		}
	}
	if start < 0 {
		for idx, c := range stmt.Cases {
			if c.Test == nil {
				start = idx
				break
			}
		}
	}
	if start < 0 {
		return normalNull, nil
	}
	switchEnv := env.Extend()
	defer i.fluxes.Release(switchEnv)
	for _, c := range stmt.Cases[start:] {
		sig, err := i.execBlock(ast.NewBlockStatement(c.Body), switchEnv)
		if err != nil {
			return nil, err
		}
		switch sig.(type) {
		case normalSignal:
			continue
		case breakSignal:
			return normalNull, nil
		default:
			return sig, nil
		}
	}
	return normalNull, nil
}

func (i *Interpreter) execThrow(stmt *ast.ThrowStatement, env *runtime.Environment) error {
	val, err := i.evaluateExpression(stmt.Argument, env)
	if err != nil {
		return err
	}
	if ev, ok := val.(runtime.ErrorValue); ok {
		// rethrowing a caught error keeps its kind
		return &runtime.RuntimeError{Kind: ev.ErrKind, Message: ev.Message, Value: ev.Payload}
	}
	return &runtime.RuntimeError{Kind: runtime.ErrThrown, Message: runtime.Stringify(val), Value: val}
}

func (i *Interpreter) execTry(stmt *ast.TryStatement, env *runtime.Environment) (signal, error) {
	sig, err := i.execScoped(stmt.Block, env.Extend())
	if err != nil && stmt.Handler != nil {
		if rerr, ok := runtime.AsRuntimeError(err); ok {
			handlerEnv := env.Extend()
			if stmt.CatchParam != nil {
				if defErr := handlerEnv.Define(stmt.CatchParam.Name, runtime.ErrorValueFrom(rerr), false); defErr != nil {
					return nil, defErr
				}
			}
			tracer().Debugf("caught %s", rerr.Kind)
			sig, err = i.execScoped(stmt.Handler, handlerEnv)
		}
	}
	if stmt.Finalizer != nil {
		finSig, finErr := i.execScoped(stmt.Finalizer, env.Extend())
		if finErr != nil {
			return nil, finErr
		}
		if _, ok := finSig.(normalSignal); !ok {
			return finSig, nil
		}
	}
	return sig, err
}

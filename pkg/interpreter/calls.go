package interpreter

import (
	"github.com/CreadorLanda/NajaScript-sub000/pkg/ast"
	"github.com/CreadorLanda/NajaScript-sub000/pkg/runtime"
)

const maxCallDepth = 4096

// callFrame is the class context of a running method. Plain functions and
// lambdas see the frame of the scope they were created in.
type callFrame struct {
	class *runtime.ClassValue
	this  *runtime.InstanceValue
}

// subject is the class whose members a super access reaches: the receiver's
// class, or the method's class when there is no receiver.
func (f *callFrame) subject() *runtime.ClassValue {
	if f.this != nil {
		return f.this.Class
	}
	return f.class
}

func frameOf(env *runtime.Environment) *callFrame {
	if frame, ok := env.RuntimeData().(*callFrame); ok {
		return frame
	}
	return nil
}

func classContext(env *runtime.Environment) *runtime.ClassValue {
	if frame := frameOf(env); frame != nil {
		return frame.class
	}
	return nil
}

func newFunction(name string, params []*ast.FunctionParameter, body *ast.BlockStatement, env *runtime.Environment) *runtime.FunctionValue {
	env.MarkCaptured()
	return &runtime.FunctionValue{Name: name, Params: params, Body: body, Closure: env}
}

func (i *Interpreter) evaluateCall(call *ast.FunctionCall, env *runtime.Environment) (runtime.Value, error) {
	if _, ok := call.Callee.(*ast.SuperExpression); ok {
		args, err := i.evaluateAll(call.Arguments, env)
		if err != nil {
			return nil, err
		}
		return i.callSuperConstructor(args, env)
	}
	callee, err := i.evaluateExpression(call.Callee, env)
	if err != nil {
		return nil, err
	}
	args, err := i.evaluateAll(call.Arguments, env)
	if err != nil {
		return nil, err
	}
	return i.callValue(callee, args, env)
}

// callValue invokes any callable value. env is the caller's scope and is
// handed to native functions.
func (i *Interpreter) callValue(callee runtime.Value, args []runtime.Value, env *runtime.Environment) (runtime.Value, error) {
	switch fn := callee.(type) {
	case *runtime.FunctionValue:
		return i.invokeFunction(fn, args, nil)
	case runtime.BoundMethodValue:
		return i.invokeMethod(fn.Receiver, fn.Method, args)
	case runtime.NativeFunctionValue:
		return i.invokeNative(fn, args, env)
	case runtime.NativeBoundMethodValue:
		return i.invokeNative(fn.Method, args, env)
	case runtime.FluxValue:
		return i.callValue(fn.Source.Current(), args, env)
	default:
		return nil, runtime.NotCallable(callee)
	}
}

func (i *Interpreter) invokeNative(fn runtime.NativeFunctionValue, args []runtime.Value, env *runtime.Environment) (runtime.Value, error) {
	if fn.Arity >= 0 && len(args) != fn.Arity {
		return nil, runtime.NewError(runtime.ErrWrongArgumentCount, "%s expects %d arguments, got %d", fn.Name, fn.Arity, len(args))
	}
	if env == nil {
		env = i.global
	}
	ctx := &runtime.NativeCallContext{
		Env: env,
		Call: func(callee runtime.Value, callArgs []runtime.Value) (runtime.Value, error) {
			return i.callValue(callee, callArgs, env)
		},
	}
	val, err := fn.Impl(ctx, args)
	if err != nil {
		if _, ok := runtime.AsRuntimeError(err); ok {
			return nil, err
		}
		return nil, runtime.NewError(runtime.ErrUnsupportedOperation, "%s: %v", fn.Name, err)
	}
	if val == nil {
		val = runtime.Null
	}
	return val, nil
}

func (i *Interpreter) invokeMethod(receiver *runtime.InstanceValue, method *runtime.MethodDescriptor, args []runtime.Value) (runtime.Value, error) {
	frame := &callFrame{class: method.Owner}
	if !method.IsStatic {
		frame.this = receiver
	}
	return i.invokeFunction(method.Function, args, frame)
}

// invokeFunction runs fn in a child of its closure. Missing arguments take
// their default or Null; extra arguments are an error.
func (i *Interpreter) invokeFunction(fn *runtime.FunctionValue, args []runtime.Value, frame *callFrame) (runtime.Value, error) {
	name := fn.Name
	if name == "" {
		name = "<lambda>"
	}
	if len(args) > len(fn.Params) {
		return nil, runtime.WrongArgumentCount(name, len(fn.Params), len(args))
	}
	if i.depth >= maxCallDepth {
		return nil, runtime.NewError(runtime.ErrCallDepthExceeded, "maximum call depth of %d exceeded in %s", maxCallDepth, name)
	}
	i.depth++
	defer func() { i.depth-- }()

	callEnv := fn.Closure.Extend()
	if frame != nil {
		callEnv.SetRuntimeData(frame)
	}
	for idx, param := range fn.Params {
		var val runtime.Value = runtime.Null
		switch {
		case idx < len(args):
			val = args[idx]
		case param.Default != nil:
			v, err := i.evaluateExpression(param.Default, callEnv)
			if err != nil {
				return nil, err
			}
			val = v
		}
		if err := callEnv.Define(param.Name.Name, val, false); err != nil {
			return nil, err
		}
	}
	sig, err := i.execScoped(fn.Body, callEnv)
	if err != nil {
		return nil, err
	}
	switch s := sig.(type) {
	case returnSignal:
		return s.value, nil
	case breakSignal:
		return nil, runtime.NewError(runtime.ErrUnsupportedOperation, "break outside of a loop in %s", name)
	case continueSignal:
		return nil, runtime.NewError(runtime.ErrUnsupportedOperation, "continue outside of a loop in %s", name)
	default:
		return runtime.Null, nil
	}
}

package interpreter

import (
	"github.com/npillmayer/schuko/tracing"

	"github.com/CreadorLanda/NajaScript-sub000/pkg/ast"
	"github.com/CreadorLanda/NajaScript-sub000/pkg/flux"
	"github.com/CreadorLanda/NajaScript-sub000/pkg/runtime"
)

func tracer() tracing.Trace {
	return tracing.Select("naja.interpreter")
}

// Interpreter is the runtime context for NajaScript programs: it owns the
// builtin scope, the program scope, the module cache and the flux graph.
// An Interpreter is not safe for concurrent use.
type Interpreter struct {
	global  *runtime.Environment
	program *runtime.Environment
	fluxes  *flux.Graph

	resolver ModuleResolver
	parser   Parser
	modules  map[string]*runtime.ModuleValue
	loading  []string

	depth int
}

// New returns an interpreter with an empty builtin scope.
func New() *Interpreter {
	i := &Interpreter{
		global:  runtime.NewEnvironment(nil),
		modules: make(map[string]*runtime.ModuleValue),
	}
	i.fluxes = flux.NewGraph(i)
	i.global.SetObserver(i.fluxes)
	i.program = i.global.Extend()
	return i
}

// GlobalEnvironment returns the scope holding host builtins. Modules and the
// program scope are children of it.
func (i *Interpreter) GlobalEnvironment() *runtime.Environment {
	return i.global
}

// ProgramEnvironment returns the scope Interpret executes top-level statements in.
func (i *Interpreter) ProgramEnvironment() *runtime.Environment {
	return i.program
}

// FluxGraph exposes the reactive graph, mainly for inspection by hosts.
func (i *Interpreter) FluxGraph() *flux.Graph {
	return i.fluxes
}

// FluxHandle returns the handle of the flux binding name as seen from env.
func (i *Interpreter) FluxHandle(name string, env *runtime.Environment) (runtime.FluxValue, bool) {
	node, ok := i.fluxes.Lookup(name, env)
	if !ok {
		return runtime.FluxValue{}, false
	}
	return runtime.FluxValue{Source: node}, true
}

// DefineGlobal binds a host value in the builtin scope.
func (i *Interpreter) DefineGlobal(name string, value runtime.Value) {
	// builtins are plain bindings; the scope is fresh so Define cannot fail
	_ = i.global.Define(name, value, false)
}

// RegisterNative binds a host function. arity < 0 accepts any number of arguments.
func (i *Interpreter) RegisterNative(name string, arity int, impl runtime.NativeFunc) {
	i.DefineGlobal(name, runtime.NativeFunctionValue{Name: name, Arity: arity, Impl: impl})
}

// Interpret executes program in the program scope and returns the value of
// the last expression statement. Errors are *runtime.RuntimeError.
func (i *Interpreter) Interpret(program *ast.Program) (runtime.Value, error) {
	if program == nil {
		return runtime.Null, nil
	}
	tracer().Debugf("interpreting program %q (%d statements)", program.Name, len(program.Body))
	val, err := i.runTopLevel(program.Body, i.program, nil)
	if err != nil {
		if rerr, ok := runtime.AsRuntimeError(err); ok {
			tracer().Infof("program failed: %v", rerr)
			return nil, rerr
		}
		return nil, runtime.NewError(runtime.ErrUnsupportedOperation, "%v", err)
	}
	return val, nil
}

// Evaluate implements flux.Evaluator.
func (i *Interpreter) Evaluate(expr ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	return i.evaluateExpression(expr, env)
}

// runTopLevel executes the statements of a program or module body. Exported
// names are recorded on module when it is non-nil.
func (i *Interpreter) runTopLevel(body []ast.Statement, env *runtime.Environment, module *runtime.ModuleValue) (runtime.Value, error) {
	var last runtime.Value = runtime.Null
	for _, stmt := range body {
		sig, err := i.execTopLevelStatement(stmt, env, module)
		if err != nil {
			return nil, err
		}
		switch s := sig.(type) {
		case normalSignal:
			if _, isExpr := stmt.(ast.Expression); isExpr {
				last = s.value
			}
		case returnSignal:
			return nil, runtime.NewError(runtime.ErrUnsupportedOperation, "return outside of a function")
		case breakSignal:
			return nil, runtime.NewError(runtime.ErrUnsupportedOperation, "break outside of a loop")
		case continueSignal:
			return nil, runtime.NewError(runtime.ErrUnsupportedOperation, "continue outside of a loop")
		}
	}
	return last, nil
}

func (i *Interpreter) execTopLevelStatement(stmt ast.Statement, env *runtime.Environment, module *runtime.ModuleValue) (signal, error) {
	export, ok := stmt.(*ast.ExportStatement)
	if !ok {
		return i.execStatement(stmt, env)
	}
	if module == nil {
		tracer().Debugf("export outside of a module is ignored")
	}
	if export.Declaration != nil {
		sig, err := i.execStatement(export.Declaration, env)
		if err != nil {
			return nil, err
		}
		if name, ok := ast.DeclaredName(export.Declaration); ok && module != nil {
			module.AddExport(name)
		}
		return sig, nil
	}
	for _, id := range export.Names {
		if !env.HasInCurrentScope(id.Name) {
			return nil, runtime.NewError(runtime.ErrUndefinedName, "cannot export undefined name '%s'", id.Name)
		}
		if module != nil {
			module.AddExport(id.Name)
		}
	}
	return normalSignal{value: runtime.Null}, nil
}

package runtime

import (
	"fmt"

	"github.com/CreadorLanda/NajaScript-sub000/pkg/ast"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindInt Kind = iota
	KindFloat
	KindText
	KindBool
	KindNull
	KindList
	KindDict
	KindSet
	KindMap
	KindTuple
	KindFunction
	KindNativeFunction
	KindBoundMethod
	KindNativeBoundMethod
	KindClass
	KindInstance
	KindModule
	KindFlux
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindText:
		return "string"
	case KindBool:
		return "bool"
	case KindNull:
		return "null"
	case KindList:
		return "list"
	case KindDict:
		return "dict"
	case KindSet:
		return "set"
	case KindMap:
		return "map"
	case KindTuple:
		return "tuple"
	case KindFunction:
		return "function"
	case KindNativeFunction:
		return "native_function"
	case KindBoundMethod:
		return "bound_method"
	case KindNativeBoundMethod:
		return "native_bound_method"
	case KindClass:
		return "class"
	case KindInstance:
		return "instance"
	case KindModule:
		return "module"
	case KindFlux:
		return "flux"
	case KindError:
		return "error"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values.
type Value interface {
	Kind() Kind
}

// TypeName is the type tag used in error messages; instances report their class.
func TypeName(v Value) string {
	if v == nil {
		return KindNull.String()
	}
	if inst, ok := v.(*InstanceValue); ok && inst.Class != nil {
		return inst.Class.Name
	}
	return v.Kind().String()
}

//-----------------------------------------------------------------------------
// Scalars
//-----------------------------------------------------------------------------

type IntValue struct {
	Val int64
}

func (v IntValue) Kind() Kind { return KindInt }

type FloatValue struct {
	Val float64
}

func (v FloatValue) Kind() Kind { return KindFloat }

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind { return KindText }

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }

type NullValue struct{}

func (NullValue) Kind() Kind { return KindNull }

// Null is the shared null value.
var Null Value = NullValue{}

//-----------------------------------------------------------------------------
// Sequences (dict, set and map live in containers.go)
//-----------------------------------------------------------------------------

type ListValue struct {
	Elements []Value
}

func NewList(elements []Value) *ListValue {
	if elements == nil {
		elements = []Value{}
	}
	return &ListValue{Elements: elements}
}

func (v *ListValue) Kind() Kind { return KindList }

// TupleValue is fixed-size; the evaluator never mutates Elements.
type TupleValue struct {
	Elements []Value
}

func NewTuple(elements []Value) *TupleValue {
	return &TupleValue{Elements: elements}
}

func (v *TupleValue) Kind() Kind { return KindTuple }

//-----------------------------------------------------------------------------
// Functions & closures
//-----------------------------------------------------------------------------

// FunctionValue is a closure: declaration parts plus the captured scope.
type FunctionValue struct {
	Name    string
	Params  []*ast.FunctionParameter
	Body    *ast.BlockStatement
	Closure *Environment
	// Owner is set for methods; it becomes the class context while the body runs.
	Owner *ClassValue
}

func (v *FunctionValue) Kind() Kind { return KindFunction }

// NativeCallContext gives host functions access to the caller's scope and
// a way to call back into script functions.
type NativeCallContext struct {
	Env  *Environment
	Call func(callee Value, args []Value) (Value, error)
}

type NativeFunc func(*NativeCallContext, []Value) (Value, error)

// NativeFunctionValue wraps a host function. Arity < 0 accepts any count.
type NativeFunctionValue struct {
	Name  string
	Arity int
	Impl  NativeFunc
}

func (v NativeFunctionValue) Kind() Kind { return KindNativeFunction }

// Bound methods capture `this` and a callable.
type BoundMethodValue struct {
	Receiver *InstanceValue
	Method   *MethodDescriptor
}

func (v BoundMethodValue) Kind() Kind { return KindBoundMethod }

// NativeBoundMethodValue is a builtin container or text method bound to its receiver.
type NativeBoundMethodValue struct {
	Receiver Value
	Method   NativeFunctionValue
}

func (v NativeBoundMethodValue) Kind() Kind { return KindNativeBoundMethod }

//-----------------------------------------------------------------------------
// Classes & instances
//-----------------------------------------------------------------------------

type PropertyDescriptor struct {
	Name       string
	Visibility ast.Visibility
	IsStatic   bool
	Default    ast.Expression
	Owner      *ClassValue
}

type MethodDescriptor struct {
	Name       string
	Visibility ast.Visibility
	IsStatic   bool
	Function   *FunctionValue
	Owner      *ClassValue
}

// ClassValue is a class descriptor. Member names are unique per descriptor.
type ClassValue struct {
	Name       string
	Parent     *ClassValue
	Properties []*PropertyDescriptor
	Methods    []*MethodDescriptor
	Env        *Environment
	Statics    map[string]*FieldSlot

	methodIndex map[string]*MethodDescriptor
}

func NewClass(name string, parent *ClassValue, env *Environment) *ClassValue {
	return &ClassValue{
		Name:        name,
		Parent:      parent,
		Env:         env,
		Statics:     make(map[string]*FieldSlot),
		methodIndex: make(map[string]*MethodDescriptor),
	}
}

func (v *ClassValue) Kind() Kind { return KindClass }

// AddProperty appends a property; false when the name is already declared here.
func (v *ClassValue) AddProperty(prop *PropertyDescriptor) bool {
	if v.declares(prop.Name) {
		return false
	}
	prop.Owner = v
	v.Properties = append(v.Properties, prop)
	return true
}

// AddMethod appends a method; false when the name is already declared here.
func (v *ClassValue) AddMethod(method *MethodDescriptor) bool {
	if v.declares(method.Name) {
		return false
	}
	method.Owner = v
	if method.Function != nil {
		method.Function.Owner = v
	}
	v.Methods = append(v.Methods, method)
	v.methodIndex[method.Name] = method
	return true
}

func (v *ClassValue) declares(name string) bool {
	if _, ok := v.methodIndex[name]; ok {
		return true
	}
	for _, prop := range v.Properties {
		if prop.Name == name {
			return true
		}
	}
	return false
}

// OwnMethod returns a method declared directly on this class.
func (v *ClassValue) OwnMethod(name string) (*MethodDescriptor, bool) {
	m, ok := v.methodIndex[name]
	return m, ok
}

// FindMethod walks the ancestor chain starting at v.
func (v *ClassValue) FindMethod(name string) (*MethodDescriptor, bool) {
	for cls := v; cls != nil; cls = cls.Parent {
		if m, ok := cls.methodIndex[name]; ok {
			return m, true
		}
	}
	return nil, false
}

// Chain lists the class followed by its ancestors, nearest first.
func (v *ClassValue) Chain() []*ClassValue {
	var out []*ClassValue
	for cls := v; cls != nil; cls = cls.Parent {
		out = append(out, cls)
	}
	return out
}

// IsSubclassOf reports whether v is other or descends from it.
func (v *ClassValue) IsSubclassOf(other *ClassValue) bool {
	for cls := v; cls != nil; cls = cls.Parent {
		if cls == other {
			return true
		}
	}
	return false
}

// FieldSlot stores one property of an instance (or a static property).
type FieldSlot struct {
	Value      Value
	Visibility ast.Visibility
	Owner      *ClassValue
}

type InstanceValue struct {
	Class  *ClassValue
	Fields map[string]*FieldSlot

	order []string
}

func NewInstance(class *ClassValue) *InstanceValue {
	return &InstanceValue{
		Class:  class,
		Fields: make(map[string]*FieldSlot),
	}
}

func (v *InstanceValue) Kind() Kind { return KindInstance }

// SetField defines or replaces a property slot, keeping first-definition order.
func (v *InstanceValue) SetField(name string, slot *FieldSlot) {
	if _, ok := v.Fields[name]; !ok {
		v.order = append(v.order, name)
	}
	v.Fields[name] = slot
}

// FieldNames returns property names in definition order.
func (v *InstanceValue) FieldNames() []string {
	out := make([]string, len(v.order))
	copy(out, v.order)
	return out
}

//-----------------------------------------------------------------------------
// Modules, flux handles & errors
//-----------------------------------------------------------------------------

type ModuleValue struct {
	Name string
	Env  *Environment

	exports map[string]struct{}
	order   []string
}

func NewModule(name string, env *Environment) *ModuleValue {
	return &ModuleValue{Name: name, Env: env, exports: make(map[string]struct{})}
}

func (v *ModuleValue) Kind() Kind { return KindModule }

func (v *ModuleValue) AddExport(name string) {
	if _, ok := v.exports[name]; ok {
		return
	}
	v.exports[name] = struct{}{}
	v.order = append(v.order, name)
}

func (v *ModuleValue) IsExported(name string) bool {
	_, ok := v.exports[name]
	return ok
}

// Exports lists exported names in declaration order.
func (v *ModuleValue) Exports() []string {
	out := make([]string, len(v.order))
	copy(out, v.order)
	return out
}

// Export reads the live value of an exported name.
func (v *ModuleValue) Export(name string) (Value, error) {
	if !v.IsExported(name) {
		return nil, NewError(ErrUnknownExport, "module '%s' does not export '%s'", v.Name, name)
	}
	return v.Env.Get(name)
}

// FluxSource is the view of a reactive node exposed through a flux handle.
type FluxSource interface {
	Name() string
	Current() Value
	Dependencies() []string
}

type FluxValue struct {
	Source FluxSource
}

func (v FluxValue) Kind() Kind { return KindFlux }

// ErrorValue is what a catch clause binds.
type ErrorValue struct {
	ErrKind ErrorKind
	Message string
	Payload Value
}

func (v ErrorValue) Kind() Kind { return KindError }

// ErrorValueFrom converts a runtime error into a catchable value.
func ErrorValueFrom(err *RuntimeError) ErrorValue {
	payload := err.Value
	if payload == nil {
		payload = Null
	}
	return ErrorValue{ErrKind: err.Kind, Message: err.Message, Payload: payload}
}

package interpreter

import (
	"github.com/CreadorLanda/NajaScript-sub000/pkg/ast"
	"github.com/CreadorLanda/NajaScript-sub000/pkg/runtime"
)

const constructorName = "constructor"

func (i *Interpreter) declareClass(decl *ast.ClassDeclaration, env *runtime.Environment) (*runtime.ClassValue, error) {
	var parent *runtime.ClassValue
	if decl.Parent != nil {
		pv, err := env.Get(decl.Parent.Name)
		if err != nil {
			return nil, err
		}
		cls, ok := pv.(*runtime.ClassValue)
		if !ok {
			return nil, runtime.NewError(runtime.ErrUnsupportedOperation, "class %s cannot extend %s of type %s", decl.ID.Name, decl.Parent.Name, runtime.TypeName(pv))
		}
		parent = cls
	}
	cls := runtime.NewClass(decl.ID.Name, parent, env)
	for _, prop := range decl.Properties {
		vis := prop.Visibility.Normalize()
		if !vis.IsValid() {
			return nil, runtime.NewError(runtime.ErrUnsupportedOperation, "invalid visibility '%s' on %s.%s", prop.Visibility, cls.Name, prop.Name.Name)
		}
		desc := &runtime.PropertyDescriptor{Name: prop.Name.Name, Visibility: vis, IsStatic: prop.IsStatic, Default: prop.Value}
		if !cls.AddProperty(desc) {
			return nil, runtime.NewError(runtime.ErrDuplicateMember, "duplicate member '%s' in class %s", prop.Name.Name, cls.Name)
		}
	}
	for _, method := range decl.Methods {
		vis := method.Visibility.Normalize()
		if !vis.IsValid() {
			return nil, runtime.NewError(runtime.ErrUnsupportedOperation, "invalid visibility '%s' on %s.%s", method.Visibility, cls.Name, method.Name())
		}
		fn := method.Function
		desc := &runtime.MethodDescriptor{
			Name:       fn.ID.Name,
			Visibility: vis,
			IsStatic:   method.IsStatic,
			Function:   newFunction(fn.ID.Name, fn.Params, fn.Body, env),
		}
		if !cls.AddMethod(desc) {
			return nil, runtime.NewError(runtime.ErrDuplicateMember, "duplicate member '%s' in class %s", fn.ID.Name, cls.Name)
		}
	}
	if err := env.Define(cls.Name, cls, false); err != nil {
		return nil, err
	}
	// static initializers run after the name is bound so they may refer to the class
	staticEnv := env.Extend()
	staticEnv.SetRuntimeData(&callFrame{class: cls})
	for _, prop := range cls.Properties {
		if !prop.IsStatic {
			continue
		}
		val, err := i.initialValue(prop.Default, staticEnv)
		if err != nil {
			return nil, err
		}
		cls.Statics[prop.Name] = &runtime.FieldSlot{Value: val, Visibility: prop.Visibility, Owner: cls}
	}
	tracer().Debugf("declared class %s (%d properties, %d methods)", cls.Name, len(cls.Properties), len(cls.Methods))
	return cls, nil
}

func (i *Interpreter) initialValue(expr ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	if expr == nil {
		return runtime.Null, nil
	}
	return i.evaluateExpression(expr, env)
}

func (i *Interpreter) evaluateNew(expr *ast.NewExpression, env *runtime.Environment) (runtime.Value, error) {
	target, err := i.evaluateExpression(expr.Class, env)
	if err != nil {
		return nil, err
	}
	cls, ok := target.(*runtime.ClassValue)
	if !ok {
		return nil, runtime.NewError(runtime.ErrNotCallable, "cannot instantiate value of type %s", runtime.TypeName(target))
	}
	args, err := i.evaluateAll(expr.Arguments, env)
	if err != nil {
		return nil, err
	}
	return i.instantiate(cls, args, env)
}

// instantiate creates the instance fields root class first, so subclasses can
// redeclare a property, and then runs the nearest constructor.
func (i *Interpreter) instantiate(cls *runtime.ClassValue, args []runtime.Value, env *runtime.Environment) (*runtime.InstanceValue, error) {
	inst := runtime.NewInstance(cls)
	chain := cls.Chain()
	for idx := len(chain) - 1; idx >= 0; idx-- {
		owner := chain[idx]
		initEnv := owner.Env.Extend()
		initEnv.SetRuntimeData(&callFrame{class: owner, this: inst})
		for _, prop := range owner.Properties {
			if prop.IsStatic {
				continue
			}
			val, err := i.initialValue(prop.Default, initEnv)
			if err != nil {
				return nil, err
			}
			inst.SetField(prop.Name, &runtime.FieldSlot{Value: val, Visibility: prop.Visibility, Owner: owner})
		}
	}
	ctor, ok := cls.FindMethod(constructorName)
	if !ok {
		if len(args) > 0 {
			return nil, runtime.WrongArgumentCount(cls.Name, 0, len(args))
		}
		return inst, nil
	}
	if err := checkAccess(ctor.Visibility, ctor.Owner, cls, classContext(env), constructorName); err != nil {
		return nil, err
	}
	if _, err := i.invokeMethod(inst, ctor, args); err != nil {
		return nil, err
	}
	return inst, nil
}

// checkAccess enforces member visibility from the class context ctx (nil
// outside any method). subject is the class of the instance being accessed,
// or the class itself for statics. Private members are visible only to their
// declaring class; protected members to the declaring class and to classes in
// the subject's ancestor chain.
func checkAccess(vis ast.Visibility, owner, subject, ctx *runtime.ClassValue, member string) error {
	switch vis.Normalize() {
	case ast.VisibilityPrivate:
		if ctx == owner {
			return nil
		}
	case ast.VisibilityProtected:
		if ctx != nil && (ctx == owner || subject.IsSubclassOf(ctx)) {
			return nil
		}
	default:
		return nil
	}
	return runtime.NewError(runtime.ErrVisibilityViolation, "cannot access %s member '%s' of %s", vis, member, subject.Name)
}

func (i *Interpreter) instanceMember(inst *runtime.InstanceValue, name string, env *runtime.Environment) (runtime.Value, error) {
	ctx := classContext(env)
	if slot, ok := inst.Fields[name]; ok {
		if err := checkAccess(slot.Visibility, slot.Owner, inst.Class, ctx, name); err != nil {
			return nil, err
		}
		return slot.Value, nil
	}
	if m, ok := inst.Class.FindMethod(name); ok {
		if err := checkAccess(m.Visibility, m.Owner, inst.Class, ctx, name); err != nil {
			return nil, err
		}
		return runtime.BoundMethodValue{Receiver: inst, Method: m}, nil
	}
	if slot, ok := findStatic(inst.Class, name); ok {
		if err := checkAccess(slot.Visibility, slot.Owner, inst.Class, ctx, name); err != nil {
			return nil, err
		}
		return slot.Value, nil
	}
	return nil, runtime.NewError(runtime.ErrUndefinedName, "%s has no member '%s'", inst.Class.Name, name)
}

func (i *Interpreter) setInstanceMember(inst *runtime.InstanceValue, name string, value runtime.Value, env *runtime.Environment) error {
	if slot, ok := inst.Fields[name]; ok {
		if err := checkAccess(slot.Visibility, slot.Owner, inst.Class, classContext(env), name); err != nil {
			return err
		}
		slot.Value = value
		return nil
	}
	if _, ok := inst.Class.FindMethod(name); ok {
		return runtime.NewError(runtime.ErrUnsupportedOperation, "cannot assign to method '%s' of %s", name, inst.Class.Name)
	}
	if slot, ok := findStatic(inst.Class, name); ok {
		if err := checkAccess(slot.Visibility, slot.Owner, inst.Class, classContext(env), name); err != nil {
			return err
		}
		slot.Value = value
		return nil
	}
	inst.SetField(name, &runtime.FieldSlot{Value: value, Visibility: ast.VisibilityPublic, Owner: inst.Class})
	return nil
}

func findStatic(cls *runtime.ClassValue, name string) (*runtime.FieldSlot, bool) {
	for c := cls; c != nil; c = c.Parent {
		if slot, ok := c.Statics[name]; ok {
			return slot, true
		}
	}
	return nil, false
}

func (i *Interpreter) staticMember(cls *runtime.ClassValue, name string, env *runtime.Environment) (runtime.Value, error) {
	ctx := classContext(env)
	if slot, ok := findStatic(cls, name); ok {
		if err := checkAccess(slot.Visibility, slot.Owner, cls, ctx, name); err != nil {
			return nil, err
		}
		return slot.Value, nil
	}
	if m, ok := cls.FindMethod(name); ok {
		if !m.IsStatic {
			return nil, runtime.NewError(runtime.ErrUnsupportedOperation, "method '%s' of %s is not static", name, cls.Name)
		}
		if err := checkAccess(m.Visibility, m.Owner, cls, ctx, name); err != nil {
			return nil, err
		}
		return runtime.BoundMethodValue{Method: m}, nil
	}
	return nil, runtime.NewError(runtime.ErrUndefinedName, "class %s has no static member '%s'", cls.Name, name)
}

func (i *Interpreter) setStaticMember(cls *runtime.ClassValue, name string, value runtime.Value, env *runtime.Environment) error {
	if slot, ok := findStatic(cls, name); ok {
		if err := checkAccess(slot.Visibility, slot.Owner, cls, classContext(env), name); err != nil {
			return err
		}
		slot.Value = value
		return nil
	}
	if _, ok := cls.FindMethod(name); ok {
		return runtime.NewError(runtime.ErrUnsupportedOperation, "cannot assign to method '%s' of %s", name, cls.Name)
	}
	cls.Statics[name] = &runtime.FieldSlot{Value: value, Visibility: ast.VisibilityPublic, Owner: cls}
	return nil
}

func superFrame(env *runtime.Environment) (*callFrame, *runtime.ClassValue, error) {
	frame := frameOf(env)
	if frame == nil || frame.class == nil {
		return nil, nil, runtime.NewError(runtime.ErrUnsupportedOperation, "'super' used outside of a method")
	}
	if frame.class.Parent == nil {
		return nil, nil, runtime.NewError(runtime.ErrUndefinedName, "class %s has no parent class", frame.class.Name)
	}
	return frame, frame.class.Parent, nil
}

// superMember resolves super.name starting at the parent of the class that
// declares the running method.
func (i *Interpreter) superMember(name string, env *runtime.Environment) (runtime.Value, error) {
	frame, parent, err := superFrame(env)
	if err != nil {
		return nil, err
	}
	m, ok := parent.FindMethod(name)
	if !ok {
		return nil, runtime.NewError(runtime.ErrUndefinedName, "%s has no method '%s'", parent.Name, name)
	}
	if err := checkAccess(m.Visibility, m.Owner, frame.subject(), frame.class, name); err != nil {
		return nil, err
	}
	if !m.IsStatic && frame.this == nil {
		return nil, runtime.NewError(runtime.ErrUnsupportedOperation, "super.%s requires an instance", name)
	}
	return runtime.BoundMethodValue{Receiver: frame.this, Method: m}, nil
}

func (i *Interpreter) callSuperConstructor(args []runtime.Value, env *runtime.Environment) (runtime.Value, error) {
	frame, parent, err := superFrame(env)
	if err != nil {
		return nil, err
	}
	if frame.this == nil {
		return nil, runtime.NewError(runtime.ErrUnsupportedOperation, "super constructor called outside of an instance method")
	}
	ctor, ok := parent.FindMethod(constructorName)
	if !ok {
		if len(args) > 0 {
			return nil, runtime.WrongArgumentCount(parent.Name, 0, len(args))
		}
		return runtime.Null, nil
	}
	if err := checkAccess(ctor.Visibility, ctor.Owner, frame.subject(), frame.class, constructorName); err != nil {
		return nil, err
	}
	if _, err := i.invokeMethod(frame.this, ctor, args); err != nil {
		return nil, err
	}
	return runtime.Null, nil
}

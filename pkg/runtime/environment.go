package runtime

// ChangeObserver is notified synchronously after a binding changes value.
// owner is the scope that holds the binding.
type ChangeObserver interface {
	BindingChanged(name string, owner *Environment) error
}

type binding struct {
	value   Value
	isConst bool
	isFlux  bool
}

// Environment provides lexical scoping for NajaScript runtime values.
type Environment struct {
	values   map[string]*binding
	order    []string
	parent   *Environment
	data     any
	observer ChangeObserver
	captured bool
}

// NewEnvironment creates a new environment, optionally nested under a parent.
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{
		values: make(map[string]*binding),
		parent: parent,
	}
}

// Parent exposes the lexical parent (nil when global).
func (e *Environment) Parent() *Environment {
	return e.parent
}

// Snapshot returns a copy of the current scope's bindings.
func (e *Environment) Snapshot() map[string]Value {
	out := make(map[string]Value, len(e.values))
	for k, b := range e.values {
		out[k] = b.value
	}
	return out
}

// Define inserts or shadows a binding in the current scope. Redefining a
// constant of the same scope fails.
func (e *Environment) Define(name string, value Value, isConst bool) error {
	return e.define(name, &binding{value: value, isConst: isConst})
}

// DefineFlux binds a reactive name; only Rebind may change it afterwards.
func (e *Environment) DefineFlux(name string, value Value) error {
	return e.define(name, &binding{value: value, isFlux: true})
}

func (e *Environment) define(name string, b *binding) error {
	if existing, ok := e.values[name]; ok {
		if existing.isConst {
			return NewError(ErrDuplicateConstant, "constant '%s' is already defined in this scope", name)
		}
	} else {
		e.order = append(e.order, name)
	}
	if b.value == nil {
		b.value = Null
	}
	e.values[name] = b
	return nil
}

// Assign updates the nearest existing binding and notifies the observer
// before returning.
func (e *Environment) Assign(name string, value Value) error {
	owner, b := e.lookup(name)
	if b == nil {
		return UndefinedName(name)
	}
	if b.isConst {
		return ConstAssignment(name)
	}
	if b.isFlux {
		return NewError(ErrConstAssignment, "cannot assign to flux '%s'", name)
	}
	if value == nil {
		value = Null
	}
	b.value = value
	return owner.notify(name)
}

// Rebind writes a new value into a flux binding without notifying the
// observer; the flux graph propagates to dependents itself. It reports false
// when name no longer refers to a flux binding (it was redefined).
func (e *Environment) Rebind(name string, value Value) bool {
	_, b := e.lookup(name)
	if b == nil || !b.isFlux {
		return false
	}
	if value == nil {
		value = Null
	}
	b.value = value
	return true
}

// Get retrieves a binding, searching outward through the scope chain.
func (e *Environment) Get(name string) (Value, error) {
	if _, b := e.lookup(name); b != nil {
		return b.value, nil
	}
	return nil, UndefinedName(name)
}

// Resolve returns the scope holding name, or nil.
func (e *Environment) Resolve(name string) *Environment {
	owner, _ := e.lookup(name)
	return owner
}

// IsConst reports whether the nearest binding for name is constant.
func (e *Environment) IsConst(name string) bool {
	_, b := e.lookup(name)
	return b != nil && b.isConst
}

// IsFlux reports whether the nearest binding for name is reactive.
func (e *Environment) IsFlux(name string) bool {
	_, b := e.lookup(name)
	return b != nil && b.isFlux
}

func (e *Environment) lookup(name string) (*Environment, *binding) {
	for env := e; env != nil; env = env.parent {
		if b, ok := env.values[name]; ok {
			return env, b
		}
	}
	return nil, nil
}

// Keys returns the current scope's names in definition order.
func (e *Environment) Keys() []string {
	out := make([]string, len(e.order))
	copy(out, e.order)
	return out
}

// Extend creates a child scope.
func (e *Environment) Extend() *Environment {
	return NewEnvironment(e)
}

// MarkCaptured records that a closure holds e, which keeps e and its
// ancestors reachable after their block exits.
func (e *Environment) MarkCaptured() {
	for env := e; env != nil && !env.captured; env = env.parent {
		env.captured = true
	}
}

// Captured reports whether a closure holds e or one of its descendants.
func (e *Environment) Captured() bool {
	return e.captured
}

// SetObserver installs the change observer for this scope and its descendants.
func (e *Environment) SetObserver(observer ChangeObserver) {
	e.observer = observer
}

func (e *Environment) notify(name string) error {
	for env := e; env != nil; env = env.parent {
		if env.observer != nil {
			return env.observer.BindingChanged(name, e)
		}
	}
	return nil
}

// SetRuntimeData attaches interpreter-specific metadata to the environment.
func (e *Environment) SetRuntimeData(data any) {
	e.data = data
}

// RuntimeData returns the metadata associated with this environment, falling back to parents.
func (e *Environment) RuntimeData() any {
	for env := e; env != nil; env = env.parent {
		if env.data != nil {
			return env.data
		}
	}
	return nil
}

// Has reports whether the binding exists anywhere in the scope chain.
func (e *Environment) Has(name string) bool {
	_, b := e.lookup(name)
	return b != nil
}

// HasInCurrentScope reports whether the binding exists in the current scope.
func (e *Environment) HasInCurrentScope(name string) bool {
	_, ok := e.values[name]
	return ok
}

package runtime

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

type recordingObserver struct {
	events []string
	owners []*Environment
	err    error
}

func (o *recordingObserver) BindingChanged(name string, owner *Environment) error {
	o.events = append(o.events, name)
	o.owners = append(o.owners, owner)
	return o.err
}

func TestEnvironmentDefineGetRoundTrip(t *testing.T) {
	env := NewEnvironment(nil)
	if err := env.Define("x", IntValue{Val: 2}, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	val, err := env.Get("x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if iv, ok := val.(IntValue); !ok || iv.Val != 2 {
		t.Fatalf("unexpected value %#v", val)
	}
}

func TestEnvironmentGetWalksParents(t *testing.T) {
	root := NewEnvironment(nil)
	_ = root.Define("greeting", StringValue{Val: "hello"}, false)
	child := root.Extend().Extend()
	val, err := child.Get("greeting")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sv, ok := val.(StringValue); !ok || sv.Val != "hello" {
		t.Fatalf("unexpected value %#v", val)
	}
	if child.HasInCurrentScope("greeting") {
		t.Fatalf("child scope should not own greeting")
	}
	if !child.Has("greeting") {
		t.Fatalf("expected greeting to be visible from child")
	}
}

func TestEnvironmentUndefinedName(t *testing.T) {
	env := NewEnvironment(nil)
	if _, err := env.Get("missing"); !IsKind(err, ErrUndefinedName) {
		t.Fatalf("expected UndefinedName, got %v", err)
	}
	if err := env.Assign("missing", Null); !IsKind(err, ErrUndefinedName) {
		t.Fatalf("expected UndefinedName, got %v", err)
	}
}

func TestEnvironmentConstRules(t *testing.T) {
	env := NewEnvironment(nil)
	if err := env.Define("y", IntValue{Val: 5}, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := env.Assign("y", IntValue{Val: 1}); !IsKind(err, ErrConstAssignment) {
		t.Fatalf("expected ConstAssignment, got %v", err)
	}
	val, _ := env.Get("y")
	if iv := val.(IntValue); iv.Val != 5 {
		t.Fatalf("const value changed to %d", iv.Val)
	}
	if err := env.Define("y", IntValue{Val: 6}, false); !IsKind(err, ErrDuplicateConstant) {
		t.Fatalf("expected DuplicateConstant, got %v", err)
	}
	// shadowing in a child scope is allowed
	child := env.Extend()
	if err := child.Define("y", IntValue{Val: 7}, true); err != nil {
		t.Fatalf("unexpected error shadowing const: %v", err)
	}
}

func TestEnvironmentAssignUpdatesOwningScope(t *testing.T) {
	root := NewEnvironment(nil)
	_ = root.Define("count", IntValue{Val: 0}, false)
	child := root.Extend()
	if err := child.Assign("count", IntValue{Val: 3}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if child.HasInCurrentScope("count") {
		t.Fatalf("assign must not create a binding in the child scope")
	}
	val, _ := root.Get("count")
	if iv := val.(IntValue); iv.Val != 3 {
		t.Fatalf("expected 3, got %d", iv.Val)
	}
}

func TestEnvironmentAssignNotifiesObserverWithOwner(t *testing.T) {
	root := NewEnvironment(nil)
	obs := &recordingObserver{}
	root.SetObserver(obs)
	module := root.Extend()
	_ = module.Define("x", IntValue{Val: 1}, false)
	inner := module.Extend()

	if err := inner.Assign("x", IntValue{Val: 2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"x"}, obs.events); diff != "" {
		t.Fatalf("observer events mismatch (-want +got):\n%s", diff)
	}
	if obs.owners[0] != module {
		t.Fatalf("expected owning scope to be reported")
	}

	if err := root.Define("z", Null, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_ = inner.Assign("z", IntValue{Val: 1})
	if len(obs.events) != 1 {
		t.Fatalf("failed assignment must not notify, got %v", obs.events)
	}
}

func TestEnvironmentObserverErrorSurfaces(t *testing.T) {
	root := NewEnvironment(nil)
	obs := &recordingObserver{err: NewError(ErrDivisionByZero, "boom")}
	root.SetObserver(obs)
	_ = root.Define("x", IntValue{Val: 1}, false)
	if err := root.Assign("x", IntValue{Val: 0}); !IsKind(err, ErrDivisionByZero) {
		t.Fatalf("expected observer error, got %v", err)
	}
}

func TestEnvironmentFluxBindings(t *testing.T) {
	env := NewEnvironment(nil)
	if err := env.DefineFlux("z", IntValue{Val: 7}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := env.Assign("z", IntValue{Val: 1}); !IsKind(err, ErrConstAssignment) {
		t.Fatalf("expected ConstAssignment for flux, got %v", err)
	}
	if ok := env.Extend().Rebind("z", IntValue{Val: 9}); !ok {
		t.Fatalf("rebind failed")
	}
	val, _ := env.Get("z")
	if iv := val.(IntValue); iv.Val != 9 {
		t.Fatalf("expected 9, got %d", iv.Val)
	}
	_ = env.Define("z", IntValue{Val: 0}, false)
	if ok := env.Rebind("z", IntValue{Val: 1}); ok {
		t.Fatalf("rebind of a redefined plain binding should report false")
	}
}

func TestEnvironmentKeysKeepDefinitionOrder(t *testing.T) {
	env := NewEnvironment(nil)
	for _, name := range []string{"b", "a", "c"} {
		_ = env.Define(name, Null, false)
	}
	_ = env.Define("a", IntValue{Val: 1}, false)
	if diff := cmp.Diff([]string{"b", "a", "c"}, env.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
}

func TestEnvironmentRuntimeDataFallsBackToParents(t *testing.T) {
	root := NewEnvironment(nil)
	root.SetRuntimeData("frame")
	child := root.Extend()
	if got := child.RuntimeData(); got != "frame" {
		t.Fatalf("expected parent runtime data, got %v", got)
	}
	child.SetRuntimeData("inner")
	if got := child.RuntimeData(); got != "inner" {
		t.Fatalf("expected child runtime data, got %v", got)
	}
}

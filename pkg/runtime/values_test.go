package runtime

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestStringifyForms(t *testing.T) {
	dict := NewDict()
	_ = dict.Set(StringValue{Val: "a"}, IntValue{Val: 1})
	_ = dict.Set(IntValue{Val: 2}, StringValue{Val: "two"})
	set := NewSet()
	_, _ = set.Add(IntValue{Val: 3})
	_, _ = set.Add(IntValue{Val: 1})

	cases := []struct {
		name string
		val  Value
		want string
	}{
		{"int", IntValue{Val: -4}, "-4"},
		{"integral float", FloatValue{Val: 5}, "5.0"},
		{"float", FloatValue{Val: 2.5}, "2.5"},
		{"text", StringValue{Val: "hi"}, "hi"},
		{"bool", BoolValue{Val: true}, "true"},
		{"null", Null, "null"},
		{"list", NewList([]Value{IntValue{Val: 1}, StringValue{Val: "x"}}), `[1, "x"]`},
		{"tuple single", NewTuple([]Value{IntValue{Val: 1}}), "(1,)"},
		{"tuple", NewTuple([]Value{IntValue{Val: 1}, BoolValue{Val: false}}), "(1, false)"},
		{"dict", dict, `{"a": 1, 2: "two"}`},
		{"set", set, "{3, 1}"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Stringify(tc.val); got != tc.want {
				t.Fatalf("Stringify = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestTruthiness(t *testing.T) {
	falsy := []Value{Null, BoolValue{}, IntValue{}, FloatValue{}, StringValue{}, NewList(nil), NewDict(), NewSet(), NewMap()}
	for _, v := range falsy {
		if Truthy(v) {
			t.Fatalf("%s should be falsy", Stringify(v))
		}
	}
	truthy := []Value{BoolValue{Val: true}, IntValue{Val: -1}, FloatValue{Val: 0.1}, StringValue{Val: "0"}, NewList([]Value{Null})}
	for _, v := range truthy {
		if !Truthy(v) {
			t.Fatalf("%s should be truthy", Stringify(v))
		}
	}
}

func TestEqualPromotesNumbersAndComparesStructurally(t *testing.T) {
	if !Equal(IntValue{Val: 1}, FloatValue{Val: 1}) {
		t.Fatalf("1 == 1.0 should hold")
	}
	if Equal(IntValue{Val: 1}, StringValue{Val: "1"}) {
		t.Fatalf("1 == \"1\" should not hold")
	}
	a := NewList([]Value{IntValue{Val: 1}, NewTuple([]Value{StringValue{Val: "x"}})})
	b := NewList([]Value{IntValue{Val: 1}, NewTuple([]Value{StringValue{Val: "x"}})})
	if !Equal(a, b) {
		t.Fatalf("structurally equal lists should compare equal")
	}
	cls := NewClass("Point", nil, NewEnvironment(nil))
	if Equal(NewInstance(cls), NewInstance(cls)) {
		t.Fatalf("distinct instances must not be equal")
	}
}

func TestDictKeepsInsertionOrderAndReplaces(t *testing.T) {
	d := NewDict()
	for _, k := range []string{"z", "a", "m"} {
		if err := d.Set(StringValue{Val: k}, IntValue{Val: 1}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	_ = d.Set(StringValue{Val: "a"}, IntValue{Val: 2})
	var keys []string
	for _, k := range d.Keys() {
		keys = append(keys, Stringify(k))
	}
	if diff := cmp.Diff([]string{"z", "a", "m"}, keys); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
	v, found, _ := d.Get(StringValue{Val: "a"})
	if !found || v.(IntValue).Val != 2 {
		t.Fatalf("expected replaced value 2, got %#v", v)
	}
	if _, _, err := d.Get(NewList(nil)); !IsKind(err, ErrUnsupportedOperation) {
		t.Fatalf("expected unhashable key error, got %v", err)
	}
}

func TestSetDeduplicatesAcrossNumericKinds(t *testing.T) {
	s := NewSet()
	added, _ := s.Add(IntValue{Val: 2})
	again, _ := s.Add(FloatValue{Val: 2})
	if !added || again {
		t.Fatalf("expected 2 and 2.0 to collapse, added=%v again=%v", added, again)
	}
	if s.Len() != 1 {
		t.Fatalf("expected one member, got %d", s.Len())
	}
	removed, _ := s.Remove(IntValue{Val: 2})
	if !removed || s.Len() != 0 {
		t.Fatalf("remove failed")
	}
}

func TestClassMembersAreUniquePerDescriptor(t *testing.T) {
	cls := NewClass("Animal", nil, NewEnvironment(nil))
	if !cls.AddProperty(&PropertyDescriptor{Name: "name"}) {
		t.Fatalf("first property should be accepted")
	}
	if cls.AddMethod(&MethodDescriptor{Name: "name"}) {
		t.Fatalf("method clashing with a property must be rejected")
	}
	dog := NewClass("Dog", cls, NewEnvironment(nil))
	if !dog.AddMethod(&MethodDescriptor{Name: "speak"}) {
		t.Fatalf("expected speak to be added")
	}
	if !dog.IsSubclassOf(cls) || cls.IsSubclassOf(dog) {
		t.Fatalf("unexpected subclass relation")
	}
	if _, ok := dog.FindMethod("speak"); !ok {
		t.Fatalf("expected to find speak")
	}
}

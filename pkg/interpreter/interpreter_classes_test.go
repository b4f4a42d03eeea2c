package interpreter

import (
	"testing"

	"github.com/CreadorLanda/NajaScript-sub000/pkg/ast"
	"github.com/CreadorLanda/NajaScript-sub000/pkg/runtime"
)

func animalClasses() []ast.Statement {
	animal := ast.Class("Animal", "",
		[]*ast.PropertyDeclaration{ast.Prop("name", ast.VisibilityPublic, nil)},
		ast.Method(ast.VisibilityPublic, "constructor", ast.Params("name"),
			ast.Assign(ast.Member(ast.This(), "name"), ast.ID("name")),
		),
		ast.Method(ast.VisibilityPublic, "speak", nil,
			ast.Ret(ast.Bin("+", ast.Member(ast.This(), "name"), ast.Str(" makes a sound"))),
		),
	)
	dog := ast.Class("Dog", "Animal", nil,
		ast.Method(ast.VisibilityPublic, "speak", nil,
			ast.Ret(ast.Bin("+", ast.Member(ast.This(), "name"), ast.Str(" says Woof"))),
		),
		ast.Method(ast.VisibilityPublic, "describe", nil,
			ast.Ret(ast.CallMethod(ast.Super(), "speak")),
		),
	)
	return []ast.Statement{animal, dog}
}

func TestOverrideDispatch(t *testing.T) {
	body := append(animalClasses(),
		ast.Var("", "d", ast.New("Dog", ast.Str("Rex"))),
		ast.CallMethod(ast.ID("d"), "speak"),
	)
	expectString(t, mustRun(t, New(), body...), "Rex says Woof")
}

func TestProtectedNameScenario(t *testing.T) {
	name := ast.Prop("name", ast.VisibilityProtected, nil)
	name.TypeName = "string"
	animal := ast.Class("Animal", "",
		[]*ast.PropertyDeclaration{name},
		ast.Method(ast.VisibilityPublic, "constructor", ast.Params("name"),
			ast.Assign(ast.Member(ast.This(), "name"), ast.ID("name")),
		),
		ast.Method(ast.VisibilityPublic, "speak", nil,
			ast.Ret(ast.Bin("+", ast.Member(ast.This(), "name"), ast.Str(" makes a sound"))),
		),
	)
	dog := ast.Class("Dog", "Animal", nil,
		ast.Method(ast.VisibilityPublic, "speak", nil,
			ast.Ret(ast.Bin("+", ast.Member(ast.This(), "name"), ast.Str(" says Woof"))),
		),
	)
	interp := New()
	val := mustRun(t, interp, animal, dog,
		ast.Var("", "d", ast.New("Dog", ast.Str("Rex"))),
		ast.CallMethod(ast.ID("d"), "speak"),
	)
	expectString(t, val, "Rex says Woof")
	expectErrorKind(t, interp, runtime.ErrVisibilityViolation, ast.Member(ast.ID("d"), "name"))
}

func TestSuperMethodKeepsThis(t *testing.T) {
	body := append(animalClasses(),
		ast.CallMethod(ast.New("Dog", ast.Str("Rex")), "describe"),
	)
	expectString(t, mustRun(t, New(), body...), "Rex makes a sound")
}

func TestInstanceofWalksChain(t *testing.T) {
	body := append(animalClasses(),
		ast.Var("", "d", ast.New("Dog", ast.Str("Rex"))),
		ast.Bin("&&",
			ast.Bin("instanceof", ast.ID("d"), ast.ID("Animal")),
			ast.Un("!", ast.Bin("instanceof", ast.New("Animal", ast.Str("x")), ast.ID("Dog"))),
		),
	)
	if val := mustRun(t, New(), body...); !runtime.Truthy(val) {
		t.Fatalf("instanceof chain check failed: %s", runtime.Repr(val))
	}
}

func TestSuperConstructorCall(t *testing.T) {
	puppy := ast.Class("Puppy", "Animal",
		[]*ast.PropertyDeclaration{ast.Prop("age", ast.VisibilityPublic, ast.Int(0))},
		ast.Method(ast.VisibilityPublic, "constructor", ast.Params("name", "age"),
			ast.Call(ast.Super(), ast.ID("name")),
			ast.Assign(ast.Member(ast.This(), "age"), ast.ID("age")),
		),
	)
	body := append(animalClasses(), puppy,
		ast.Var("", "p", ast.New("Puppy", ast.Str("Bo"), ast.Int(1))),
		ast.Bin("+", ast.Member(ast.ID("p"), "name"), ast.Member(ast.ID("p"), "age")),
	)
	expectString(t, mustRun(t, New(), body...), "Bo1")
}

func vaultClasses() []ast.Statement {
	vault := ast.Class("Vault", "",
		[]*ast.PropertyDeclaration{
			ast.Prop("secret", ast.VisibilityPrivate, ast.Str("gold")),
			ast.Prop("code", ast.VisibilityProtected, ast.Int(1234)),
		},
		ast.Method(ast.VisibilityPublic, "reveal", nil, ast.Ret(ast.Member(ast.This(), "secret"))),
		ast.Method(ast.VisibilityPrivate, "hidden", nil, ast.Ret(ast.Int(1))),
	)
	return []ast.Statement{vault}
}

func TestVisibility(t *testing.T) {
	t.Run("private readable inside declaring class", func(t *testing.T) {
		body := append(vaultClasses(), ast.CallMethod(ast.New("Vault"), "reveal"))
		expectString(t, mustRun(t, New(), body...), "gold")
	})
	t.Run("private field outside", func(t *testing.T) {
		body := append(vaultClasses(), ast.Member(ast.New("Vault"), "secret"))
		expectErrorKind(t, New(), runtime.ErrVisibilityViolation, body...)
	})
	t.Run("private method outside", func(t *testing.T) {
		body := append(vaultClasses(), ast.CallMethod(ast.New("Vault"), "hidden"))
		expectErrorKind(t, New(), runtime.ErrVisibilityViolation, body...)
	})
	t.Run("protected outside", func(t *testing.T) {
		body := append(vaultClasses(), ast.Assign(ast.Member(ast.New("Vault"), "code"), ast.Int(0)))
		expectErrorKind(t, New(), runtime.ErrVisibilityViolation, body...)
	})
	t.Run("protected from subclass, private is not", func(t *testing.T) {
		sub := ast.Class("SubVault", "Vault", nil,
			ast.Method(ast.VisibilityPublic, "peek", nil, ast.Ret(ast.Member(ast.This(), "code"))),
			ast.Method(ast.VisibilityPublic, "steal", nil, ast.Ret(ast.Member(ast.This(), "secret"))),
		)
		body := append(vaultClasses(), sub, ast.Var("", "s", ast.New("SubVault")))
		interp := New()
		mustRun(t, interp, body...)
		expectInt(t, mustRun(t, interp, ast.CallMethod(ast.ID("s"), "peek")), 1234)
		expectErrorKind(t, interp, runtime.ErrVisibilityViolation, ast.CallMethod(ast.ID("s"), "steal"))
	})
	t.Run("protected needs the instance's chain", func(t *testing.T) {
		pet := ast.Class("Pet", "",
			[]*ast.PropertyDeclaration{ast.Prop("tag", ast.VisibilityProtected, ast.Str("pet"))},
		)
		puppy := ast.Class("Puppy", "Pet", nil)
		kitten := ast.Class("Kitten", "Pet", nil,
			ast.Method(ast.VisibilityPublic, "peek", ast.Params("other"), ast.Ret(ast.Member(ast.ID("other"), "tag"))),
		)
		interp := New()
		mustRun(t, interp, pet, puppy, kitten, ast.Var("", "k", ast.New("Kitten")))
		expectString(t, mustRun(t, interp, ast.CallMethod(ast.ID("k"), "peek", ast.New("Kitten"))), "pet")
		expectErrorKind(t, interp, runtime.ErrVisibilityViolation, ast.CallMethod(ast.ID("k"), "peek", ast.New("Puppy")))
		expectErrorKind(t, interp, runtime.ErrVisibilityViolation, ast.CallMethod(ast.ID("k"), "peek", ast.New("Pet")))
	})
	t.Run("base class reads protected member of a subclass instance", func(t *testing.T) {
		base := ast.Class("Shape", "", nil,
			ast.Method(ast.VisibilityPublic, "sidesOf", ast.Params("other"), ast.Ret(ast.Member(ast.ID("other"), "sides"))),
		)
		square := ast.Class("Square", "Shape",
			[]*ast.PropertyDeclaration{ast.Prop("sides", ast.VisibilityProtected, ast.Int(4))},
		)
		val := mustRun(t, New(), base, square, ast.CallMethod(ast.New("Shape"), "sidesOf", ast.New("Square")))
		expectInt(t, val, 4)
	})
	t.Run("closures inside methods keep the class context", func(t *testing.T) {
		probe := ast.Class("Probe", "",
			[]*ast.PropertyDeclaration{ast.Prop("hidden", ast.VisibilityPrivate, ast.Int(7))},
			ast.Method(ast.VisibilityPublic, "getter", nil,
				ast.Ret(ast.Lambda(nil, ast.Ret(ast.Member(ast.This(), "hidden")))),
			),
		)
		val := mustRun(t, New(), probe, ast.Call(ast.CallMethod(ast.New("Probe"), "getter")))
		expectInt(t, val, 7)
	})
}

func TestDynamicPropertiesAndStatics(t *testing.T) {
	counter := ast.Class("Counter", "",
		[]*ast.PropertyDeclaration{ast.StaticProp("created", ast.VisibilityPublic, ast.Int(0))},
		ast.Method(ast.VisibilityPublic, "constructor", nil,
			ast.AssignOp(ast.AssignmentAdd, ast.Member(ast.ID("Counter"), "created"), ast.Int(1)),
		),
		ast.StaticMethod(ast.VisibilityPublic, "count", nil, ast.Ret(ast.Member(ast.ID("Counter"), "created"))),
	)
	interp := New()
	val := mustRun(t, interp,
		counter,
		ast.New("Counter"),
		ast.New("Counter"),
		ast.CallMethod(ast.ID("Counter"), "count"),
	)
	expectInt(t, val, 2)

	val = mustRun(t, New(),
		ast.Class("Bag", "", nil),
		ast.Var("", "b", ast.New("Bag")),
		ast.Assign(ast.Member(ast.ID("b"), "label"), ast.Str("misc")),
		ast.Member(ast.ID("b"), "label"),
	)
	expectString(t, val, "misc")
	expectErrorKind(t, New(), runtime.ErrUndefinedName, ast.Class("Bag", "", nil), ast.Member(ast.New("Bag"), "missing"))
}

func TestClassErrors(t *testing.T) {
	expectErrorKind(t, New(), runtime.ErrDuplicateMember,
		ast.Class("Twice", "",
			[]*ast.PropertyDeclaration{ast.Prop("x", ast.VisibilityPublic, nil)},
			ast.Method(ast.VisibilityPublic, "x", nil),
		),
	)
	expectErrorKind(t, New(), runtime.ErrWrongArgumentCount,
		ast.Class("Empty", "", nil),
		ast.New("Empty", ast.Int(1)),
	)
	expectErrorKind(t, New(), runtime.ErrUnsupportedOperation,
		ast.Var("", "notAClass", ast.Int(1)),
		ast.Class("Broken", "notAClass", nil),
	)
	expectErrorKind(t, New(), runtime.ErrUndefinedName, ast.This())
	expectErrorKind(t, New(), runtime.ErrUnsupportedOperation, ast.CallMethod(ast.Super(), "x"))
}

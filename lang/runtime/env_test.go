package runtime

import (
	"errors"
	"slices"
	"testing"
)

func TestDeclareRejectsRedeclaration(t *testing.T) {
	env := NewEnvironment()

	if err := env.Declare("x", Number(1), false); err != nil {
		t.Fatal(err)
	}

	if err := env.Declare("x", Number(2), false); !errors.Is(err, ErrAlreadyDeclared) {
		t.Errorf("Declare() = %v, want ErrAlreadyDeclared", err)
	}

	if v, _ := env.Resolve("x"); v != Number(1) {
		t.Errorf("x = %v, want original value", v)
	}
}

func TestChildShadows(t *testing.T) {
	root := NewEnvironment()
	_ = root.Declare("x", Number(1), true)

	child := root.Child()
	if err := child.Declare("x", String("inner"), false); err != nil {
		t.Fatalf("shadowing failed: %v", err)
	}

	if v, _ := child.Resolve("x"); v != String("inner") {
		t.Errorf("child x = %v", v)
	}

	if v, _ := root.Resolve("x"); v != Number(1) {
		t.Errorf("root x = %v", v)
	}

	if child.Parent() != root || root.Parent() != nil {
		t.Error("Parent() mismatch")
	}
}

func TestAssign(t *testing.T) {
	root := NewEnvironment()
	_ = root.Declare("v", Number(1), false)
	_ = root.Declare("c", Number(1), true)

	child := root.Child()

	if err := child.Assign("v", Number(5)); err != nil {
		t.Fatal(err)
	}

	if v, _ := root.Resolve("v"); v != Number(5) {
		t.Errorf("v = %v, want owner frame updated", v)
	}

	if child.Declared("v") {
		t.Error("Assign declared a binding in the child")
	}

	if err := child.Assign("c", Number(2)); !errors.Is(err, ErrConstant) {
		t.Errorf("Assign(const) = %v", err)
	}

	if !child.IsConstant("c") || child.IsConstant("v") || child.IsConstant("none") {
		t.Error("IsConstant mismatch")
	}

	if err := child.Assign("none", Number(2)); !errors.Is(err, ErrNotDeclared) {
		t.Errorf("Assign(undeclared) = %v", err)
	}
}

func TestMergeCopiesEveryBinding(t *testing.T) {
	lib := NewEnvironment()
	_ = lib.DeclareExported("pub", Number(1), true)
	_ = lib.Declare("priv", Number(2), false)

	env := NewEnvironment()
	env.Merge(lib)

	if !env.Has("pub") || !env.Has("priv") {
		t.Errorf("Names() = %v, want both bindings", env.Names())
	}

	if !env.IsConstant("pub") || !env.IsExported("pub") || env.IsExported("priv") {
		t.Error("flags not copied")
	}

	if got := lib.Exports(); !slices.Equal(got, []string{"pub"}) {
		t.Errorf("Exports() = %v", got)
	}

	_ = env.Assign("priv", Number(9))

	if v, _ := lib.Resolve("priv"); v != Number(2) {
		t.Error("Merge shares bindings with the source")
	}
}

func TestNames(t *testing.T) {
	root := NewEnvironment()
	_ = root.Declare("b", Null{}, false)
	child := root.Child()
	_ = child.Declare("a", Null{}, false)
	_ = child.Declare("b", Null{}, false)

	if got := child.Names(); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("Names() = %v", got)
	}
}

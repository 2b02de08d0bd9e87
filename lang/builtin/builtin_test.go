package builtin

import (
	"errors"
	"strings"
	"testing"

	"github.com/ardnew/pillar/lang/emit"
	"github.com/ardnew/pillar/lang/runtime"
)

func call(t *testing.T, lib, fn string, args ...runtime.Value) (emit.Node, error) {
	t.Helper()

	decls, ok := Declarations(lib)
	if !ok {
		t.Fatalf("Declarations(%q) not found", lib)
	}

	v, ok := decls[0].Value.Get(fn)
	if !ok {
		t.Fatalf("%s.%s not found", lib, fn)
	}

	n, ok := v.(*runtime.Native)
	if !ok {
		t.Fatalf("%s.%s is a %s", lib, fn, v.Kind())
	}

	return n.Fn(args)
}

func TestNatives(t *testing.T) {
	tests := []struct {
		name string
		lib  string
		fn   string
		args []runtime.Value
		want string
	}{
		{"write string", Process, "write", []runtime.Value{runtime.String("hi")}, "STRING hi"},
		{"write number", Process, "write", []runtime.Value{runtime.Number(42)}, "STRING 42"},
		{"write boolean", Process, "write", []runtime.Value{runtime.Boolean(true)}, "STRING true"},
		{"wait", Process, "wait", []runtime.Value{runtime.Number(500)}, "DELAY 500"},
		{"comment", Process, "comment", []runtime.Value{runtime.String("note")}, "REM note"},
		{"repeat", Process, "repeat", []runtime.Value{runtime.Number(3)}, "REPEAT 3"},
		{"default delay", Process, "defaultDelay", []runtime.Value{runtime.Number(100)}, "DEFAULTDELAY 100"},
		{"single key", Keyboard, "press", []runtime.Value{runtime.String("ENTER")}, "ENTER"},
		{"modifier", Keyboard, "press", []runtime.Value{runtime.String("GUI"), runtime.String("R")}, "GUI R"},
		{"numpad", Keyboard, "press", []runtime.Value{runtime.String("ALTCODE"), runtime.String("A")}, "ALTCODE A"},
		{"plain pair", Keyboard, "press", []runtime.Value{runtime.String("A"), runtime.String("B")}, "B"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := call(t, tt.lib, tt.fn, tt.args...)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got, _ := emit.Line(node); got != tt.want {
				t.Errorf("line = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNativesRejectArguments(t *testing.T) {
	tests := []struct {
		name string
		lib  string
		fn   string
		args []runtime.Value
	}{
		{"wait string", Process, "wait", []runtime.Value{runtime.String("500")}},
		{"wait nothing", Process, "wait", nil},
		{"write object", Process, "write", []runtime.Value{runtime.NewObject()}},
		{"press number", Keyboard, "press", []runtime.Value{runtime.Number(1)}},
		{"press too many", Keyboard, "press", []runtime.Value{
			runtime.String("A"), runtime.String("B"), runtime.String("C"),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := call(t, tt.lib, tt.fn, tt.args...)
			if !errors.Is(err, ErrArgument) {
				t.Errorf("error = %v, want ErrArgument", err)
			}

			if node != nil {
				t.Errorf("node = %v, want nil", node)
			}
		})
	}
}

func TestKeysObject(t *testing.T) {
	decls, ok := Declarations(Keyboard)
	if !ok || len(decls) != 2 || decls[1].Name != KeysName {
		t.Fatalf("Declarations(Keyboard) = %v", decls)
	}

	k := decls[1].Value
	names := k.Keys()

	if names[0] != "Shift" || names[len(names)-1] != "None" {
		t.Errorf("order = %v ... %v", names[0], names[len(names)-1])
	}

	for name, want := range map[string]string{
		"Gui": "GUI", "CtrlAlt": "CTRL-ALT", "BackSpace": "BACKSPACE",
		"F12": "F12", "Q": "Q", "None": "None", "AltString": "ALTSTRING",
	} {
		if v, _ := k.Get(name); v != runtime.String(want) {
			t.Errorf("Keys.%s = %v, want %q", name, v, want)
		}
	}

	if got, want := k.Len(), len(Keys()); got != want {
		t.Errorf("Len() = %d, want %d", got, want)
	}
}

func TestDeclarationsAreFresh(t *testing.T) {
	a, _ := Declarations(Process)
	b, _ := Declarations(Process)

	if a[0].Value == b[0].Value {
		t.Error("Declarations shares objects between calls")
	}
}

func TestLibraries(t *testing.T) {
	for _, name := range Libraries() {
		if !IsLibrary(name) {
			t.Errorf("IsLibrary(%q) = false", name)
		}
	}

	if IsLibrary("Keys") || IsLibrary("Linux") {
		t.Error("IsLibrary accepted a non-library")
	}

	if _, ok := Declarations(Windows); ok {
		t.Error("Windows has native declarations")
	}

	src, ok := Source(Windows)
	if !ok || !strings.Contains(src, "const Windows") {
		t.Error("Windows source missing")
	}

	for _, m := range Members(Windows) {
		if !strings.Contains(src, m+": fn(") {
			t.Errorf("member %q not defined in source", m)
		}
	}
}

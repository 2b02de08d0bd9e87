package builtin

import (
	_ "embed"
	"errors"
	"fmt"
	"slices"

	"github.com/ardnew/pillar/lang/emit"
	"github.com/ardnew/pillar/lang/runtime"
)

// Names of the importable libraries and the objects they declare.
const (
	Process  = "Process"
	Keyboard = "Keyboard"
	KeysName = "Keys"
	Windows  = "Windows"
)

// ErrArgument is returned by a native function given arguments it cannot
// use. Nothing is emitted when it is returned.
var ErrArgument = errors.New("invalid argument")

//go:embed windows.pill
var windowsSource string

// Libraries returns the names accepted by a bare import, sorted.
func Libraries() []string {
	return []string{Keyboard, Process, Windows}
}

// Source returns the Pillar source of a library implemented in Pillar.
func Source(name string) (string, bool) {
	if name == Windows {
		return windowsSource, true
	}

	return "", false
}

// Declarations returns the objects a bare import of name declares, in
// declaration order. It returns false for unknown names and for libraries
// that must be evaluated from [Source]. Every call builds new objects.
func Declarations(name string) ([]Declaration, bool) {
	switch name {
	case Process:
		return []Declaration{{Name: Process, Value: processObject()}}, true
	case Keyboard:
		return []Declaration{
			{Name: Keyboard, Value: keyboardObject()},
			{Name: KeysName, Value: keysObject()},
		}, true
	default:
		return nil, false
	}
}

// Declaration is a constant binding created by an import.
type Declaration struct {
	Value *runtime.Object
	Name  string
}

// Members returns the property names of the object declared as name, for
// completion.
func Members(name string) []string {
	switch name {
	case Process:
		return processObject().Keys()
	case Keyboard:
		return keyboardObject().Keys()
	case KeysName:
		return keysObject().Keys()
	case Windows:
		return []string{
			"powershell", "cmd", "explorer", "open", "shutdown", "restart",
			"lock", "sleep", "hibernate", "logoff", "volumeSet", "openApp",
		}
	default:
		return nil
	}
}

func native(name string, fn runtime.NativeFunc) *runtime.Native {
	return &runtime.Native{Name: name, Fn: fn}
}

func processObject() *runtime.Object {
	return runtime.NewObject().
		Set("write", native("write", text("STRING"))).
		Set("wait", native("wait", number("DELAY"))).
		Set("comment", native("comment", text("REM"))).
		Set("repeat", native("repeat", number("REPEAT"))).
		Set("defaultDelay", native("defaultDelay", number("DEFAULTDELAY")))
}

func keyboardObject() *runtime.Object {
	return runtime.NewObject().Set("press", native("press", press))
}

func keysObject() *runtime.Object {
	o := runtime.NewObject()
	for _, k := range keys {
		o.Set(k.Name, runtime.String(k.Value))
	}

	return o
}

// text emits the formatted first argument, which may be any primitive.
func text(instr string) runtime.NativeFunc {
	return func(args []runtime.Value) (emit.Node, error) {
		if len(args) == 0 || !runtime.Primitive(args[0]) {
			return nil, fmt.Errorf("%w: %s expects a value", ErrArgument, instr)
		}

		return emit.Call(instr, args[0].String()), nil
	}
}

// number emits the first argument, which must be a number.
func number(instr string) runtime.NativeFunc {
	return func(args []runtime.Value) (emit.Node, error) {
		if len(args) == 0 || args[0].Kind() != runtime.KindNumber {
			return nil, fmt.Errorf("%w: %s expects a number", ErrArgument, instr)
		}

		return emit.Call(instr, args[0].String()), nil
	}
}

func press(args []runtime.Value) (emit.Node, error) {
	if len(args) == 0 || len(args) > 2 {
		return nil, fmt.Errorf("%w: press expects 1 or 2 keys, got %d",
			ErrArgument, len(args))
	}

	names := make([]string, len(args))

	for i, a := range args {
		s, ok := a.(runtime.String)
		if !ok {
			return nil, fmt.Errorf("%w: key %d is a %s", ErrArgument, i+1, a.Kind())
		}

		names[i] = string(s)
	}

	if len(names) == 1 {
		return emit.Key(names[0]), nil
	}

	if Combines(names[0]) {
		return emit.Call(names[0], names[1]), nil
	}

	return emit.Key(names[1]), nil
}

// IsLibrary reports whether name is accepted by a bare import.
func IsLibrary(name string) bool { return slices.Contains(Libraries(), name) }

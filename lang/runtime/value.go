package runtime

import (
	"strconv"
	"strings"

	"github.com/ardnew/pillar/lang/emit"
	"github.com/ardnew/pillar/lang/syntax"
)

// Kind enumerates the value types.
type Kind int

const (
	KindNull Kind = iota
	KindBoolean
	KindNumber
	KindString
	KindObject
	KindFunction
	KindNative
	KindBreak
	KindContinue
	KindReturn
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindBoolean:
		return "Boolean"
	case KindNumber:
		return "Number"
	case KindString:
		return "String"
	case KindObject:
		return "Object"
	case KindFunction:
		return "Function"
	case KindNative:
		return "Native"
	case KindBreak:
		return "Break"
	case KindContinue:
		return "Continue"
	case KindReturn:
		return "Return"
	default:
		return "Unknown"
	}
}

// Value is the result of evaluating an expression or statement.
type Value interface {
	Kind() Kind
	// String formats the value the way it is written into a script.
	String() string
	value()
}

type (
	// Null is the absence of a value.
	Null struct{}

	Boolean bool

	Number float64

	String string

	// Break signals a break statement to the enclosing loop.
	Break struct{}

	// Continue signals a continue statement to the enclosing loop.
	Continue struct{}

	// Return carries the value of a return statement out of a function body.
	Return struct {
		Value Value
	}
)

// Function is a closure over a function declaration or expression.
type Function struct {
	Body    *syntax.BlockStmt
	Closure *Environment
	Name    string
	Params  []string
}

// NativeFunc implements a built-in function. It returns the instruction the
// call produces, or nil if it produces none. An error means the arguments
// were unacceptable and nothing should be emitted.
type NativeFunc func(args []Value) (emit.Node, error)

// Native is a built-in function provided by the host.
type Native struct {
	Fn   NativeFunc
	Name string
}

func (Null) Kind() Kind      { return KindNull }
func (Boolean) Kind() Kind   { return KindBoolean }
func (Number) Kind() Kind    { return KindNumber }
func (String) Kind() Kind    { return KindString }
func (*Object) Kind() Kind   { return KindObject }
func (*Function) Kind() Kind { return KindFunction }
func (*Native) Kind() Kind   { return KindNative }
func (Break) Kind() Kind     { return KindBreak }
func (Continue) Kind() Kind  { return KindContinue }
func (Return) Kind() Kind    { return KindReturn }

func (Null) String() string { return "null" }

func (b Boolean) String() string { return strconv.FormatBool(bool(b)) }

func (n Number) String() string {
	return strconv.FormatFloat(float64(n), 'f', -1, 64)
}

func (s String) String() string { return string(s) }

func (f *Function) String() string {
	return "fn " + f.Name + "(" + strings.Join(f.Params, ", ") + ")"
}

func (n *Native) String() string { return "native " + n.Name }

func (Break) String() string    { return "break" }
func (Continue) String() string { return "continue" }

func (r Return) String() string {
	if r.Value == nil {
		return "null"
	}

	return r.Value.String()
}

func (Null) value()      {}
func (Boolean) value()   {}
func (Number) value()    {}
func (String) value()    {}
func (*Object) value()   {}
func (*Function) value() {}
func (*Native) value()   {}
func (Break) value()     {}
func (Continue) value()  {}
func (Return) value()    {}

// Primitive reports whether v is null, a boolean, a number, or a string.
func Primitive(v Value) bool {
	switch v.Kind() {
	case KindNull, KindBoolean, KindNumber, KindString:
		return true
	default:
		return false
	}
}

// Equal compares two values of the same kind. The second result is false
// when the kinds differ and the values cannot be compared.
func Equal(a, b Value) (equal, ok bool) {
	if a.Kind() != b.Kind() {
		return false, false
	}

	switch a := a.(type) {
	case Null:
		return true, true
	case Boolean:
		return a == b.(Boolean), true
	case Number:
		return a == b.(Number), true
	case String:
		return a == b.(String), true
	case *Object:
		return a == b.(*Object), true
	case *Function:
		return a == b.(*Function), true
	case *Native:
		return a == b.(*Native), true
	default:
		return false, false
	}
}

// Unwrap returns the value carried by a [Return], or v itself.
func Unwrap(v Value) Value {
	if r, ok := v.(Return); ok {
		if r.Value == nil {
			return Null{}
		}

		return r.Value
	}

	return v
}

// FromGo converts a Go scalar to a value. It returns false for types that
// have no Pillar equivalent.
func FromGo(x any) (Value, bool) {
	switch x := x.(type) {
	case nil:
		return Null{}, true
	case bool:
		return Boolean(x), true
	case string:
		return String(x), true
	case int:
		return Number(x), true
	case int64:
		return Number(x), true
	case uint64:
		return Number(x), true
	case float32:
		return Number(x), true
	case float64:
		return Number(x), true
	default:
		return nil, false
	}
}

// ToGo converts primitive values and objects to Go values: nil, bool,
// float64, string, and map[string]any. Other kinds convert to their
// formatted text.
func ToGo(v Value) any {
	switch v := v.(type) {
	case Null:
		return nil
	case Boolean:
		return bool(v)
	case Number:
		return float64(v)
	case String:
		return string(v)
	case *Object:
		m := make(map[string]any, v.Len())
		for k, p := range v.All() {
			m[k] = ToGo(p)
		}

		return m
	default:
		return v.String()
	}
}

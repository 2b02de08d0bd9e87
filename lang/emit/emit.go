// Package emit defines the compiled instruction tree and writes it as a
// keystroke injection script.
//
// Instructions are recorded by native library functions while a program is
// evaluated. Each one becomes a single line of output:
//
//	STRING Hello
//	DELAY 500
//	GUI R
//	ENTER
package emit

import (
	"bufio"
	"io"
	"strings"
)

// Kind identifies a compiled node.
type Kind int

const (
	KindUnit Kind = iota
	KindCallMember
	KindName
	KindLiteral
)

func (k Kind) String() string {
	switch k {
	case KindUnit:
		return "CompilationUnit"
	case KindCallMember:
		return "CallMemberSyntax"
	case KindName:
		return "NameExpressionSyntax"
	case KindLiteral:
		return "LiteralExpressionSyntax"
	default:
		return "Unknown"
	}
}

// Node is a compiled instruction or one of its parts.
type Node interface {
	Kind() Kind
}

// Name is a bare instruction keyword or key name, such as ENTER.
type Name struct {
	Value any
	Text  string
}

// Literal is the argument of an instruction.
type Literal struct {
	Value any
	Text  string
}

// CallMember is an instruction with one argument, such as STRING text.
type CallMember struct {
	Argument Literal
	Callee   Name
}

// Unit is the ordered list of instructions produced by a program.
type Unit struct {
	Body []Node
}

func (*Unit) Kind() Kind       { return KindUnit }
func (*CallMember) Kind() Kind { return KindCallMember }
func (*Name) Kind() Kind       { return KindName }
func (*Literal) Kind() Kind    { return KindLiteral }

// Key returns a bare instruction.
func Key(name string) *Name {
	return &Name{Text: name, Value: name}
}

// Call returns an instruction with a single argument.
func Call(name, arg string) *CallMember {
	return &CallMember{
		Callee:   Name{Text: name, Value: name},
		Argument: Literal{Text: arg, Value: arg},
	}
}

// Append adds instructions in order.
func (u *Unit) Append(n ...Node) { u.Body = append(u.Body, n...) }

// Len returns the number of instructions.
func (u *Unit) Len() int {
	if u == nil {
		return 0
	}

	return len(u.Body)
}

// Newline terminates every emitted line.
const Newline = "\r\n"

// Line renders a single instruction without its terminator. It returns false
// for nodes that produce no output.
func Line(n Node) (string, bool) {
	switch n := n.(type) {
	case *CallMember:
		return n.Callee.Text + " " + n.Argument.Text, true
	case *Name:
		return n.Text, true
	default:
		return "", false
	}
}

// Lines renders every instruction of u without terminators.
func Lines(u *Unit) []string {
	if u == nil {
		return nil
	}

	out := make([]string, 0, len(u.Body))

	for _, n := range u.Body {
		if s, ok := Line(n); ok {
			out = append(out, s)
		}
	}

	return out
}

// Emitter writes compiled units as text.
type Emitter struct {
	newline string
}

// New returns an Emitter that terminates lines with [Newline].
func New() Emitter { return Emitter{newline: Newline} }

// Emit writes one line per instruction of u. An empty unit writes nothing.
func (e Emitter) Emit(w io.Writer, u *Unit) error {
	nl := e.newline
	if nl == "" {
		nl = Newline
	}

	bw := bufio.NewWriter(w)

	for _, s := range Lines(u) {
		if _, err := bw.WriteString(s + nl); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// String returns the emitted text of u.
func String(u *Unit) string {
	var sb strings.Builder

	_ = New().Emit(&sb, u)

	return sb.String()
}

// Records converts u to a list of maps suitable for JSON or YAML encoding.
func Records(u *Unit) []map[string]any {
	if u == nil {
		return nil
	}

	out := make([]map[string]any, 0, len(u.Body))

	for _, n := range u.Body {
		switch n := n.(type) {
		case *CallMember:
			out = append(out, map[string]any{
				"kind":     n.Kind().String(),
				"callee":   n.Callee.Text,
				"argument": n.Argument.Text,
			})
		case *Name:
			out = append(out, map[string]any{
				"kind": n.Kind().String(),
				"name": n.Text,
			})
		}
	}

	return out
}

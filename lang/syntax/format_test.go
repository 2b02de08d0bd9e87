package syntax_test

import (
	"testing"

	"github.com/ardnew/pillar/lang/parser"
	"github.com/ardnew/pillar/lang/syntax"
)

func TestFormat(t *testing.T) {
	tests := []struct{ src, want string }{
		{"a + b * 2", "a + b * 2"},
		{"-x", "-x"},
		{"!(a == b)", "!(a == b)"},
		{`Process.write("hi")`, `Process.write("hi")`},
		{"Keyboard.press(Keys.Gui, Keys.R)", "Keyboard.press(Keys.Gui, Keys.R)"},
		{"x += 1", "x += 1"},
		{"{ a: 1, b }", "{ a: 1, b }"},
		{"{}", "{}"},
		{"fn(a, b) { return a }", "fn(a, b) {...}"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			unit, _ := parser.Parse("let v = " + tt.src)

			decl := unit.Members[0].(*syntax.GlobalStmt).Statement.(*syntax.VarDecl)
			if got := syntax.Format(decl.Initializer); got != tt.want {
				t.Errorf("Format() = %q, want %q", got, tt.want)
			}
		})
	}
}

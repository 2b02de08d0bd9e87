package parser

import (
	"strings"
	"testing"

	"github.com/ardnew/pillar/lang/syntax"
)

func parseClean(t *testing.T, src string) *syntax.Unit {
	t.Helper()

	unit, bag := Parse(src)
	if bag.Len() != 0 {
		t.Fatalf("Parse(%q) diagnostics: %v", src, bag.Items())
	}

	return unit
}

func globalStmt(t *testing.T, unit *syntax.Unit, i int) syntax.Statement {
	t.Helper()

	if len(unit.Members) <= i {
		t.Fatalf("unit has %d members, want > %d", len(unit.Members), i)
	}

	g, ok := unit.Members[i].(*syntax.GlobalStmt)
	if !ok {
		t.Fatalf("member %d is %T, want *syntax.GlobalStmt", i, unit.Members[i])
	}

	return g.Statement
}

func TestConstDeclarationShape(t *testing.T) {
	unit := parseClean(t, "const x = 1")

	if len(unit.Members) != 1 {
		t.Fatalf("len(Members) = %d, want 1", len(unit.Members))
	}

	decl, ok := globalStmt(t, unit, 0).(*syntax.VarDecl)
	if !ok {
		t.Fatalf("statement is %T, want *syntax.VarDecl", globalStmt(t, unit, 0))
	}

	if !decl.Constant || decl.Keyword.Kind != syntax.ConstKeyword || decl.Keyword.Text != "const" {
		t.Errorf("keyword = %+v", decl.Keyword)
	}

	if decl.Identifier.Kind != syntax.IdentifierToken || decl.Identifier.Text != "x" {
		t.Errorf("identifier = %+v", decl.Identifier)
	}

	if decl.Equals == nil || decl.Equals.Kind != syntax.EqualsToken || decl.Equals.Text != "=" {
		t.Errorf("equals = %+v", decl.Equals)
	}

	lit, ok := decl.Initializer.(*syntax.LiteralExpr)
	if !ok {
		t.Fatalf("initializer is %T", decl.Initializer)
	}

	if lit.Literal.Kind != syntax.NumberLiteralToken || lit.Literal.Text != "1" || lit.Value != 1.0 {
		t.Errorf("literal = %+v", lit)
	}
}

func TestVarDeclarationLiterals(t *testing.T) {
	tests := []struct {
		src  string
		want any
	}{
		{`const x = "hello"`, "hello"},
		{`let x = 'hello'`, "hello"},
		{"let x = true", true},
		{"let x = false", false},
		{"let x = 2.5", 2.5},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			decl := globalStmt(t, parseClean(t, tt.src), 0).(*syntax.VarDecl)

			lit := decl.Initializer.(*syntax.LiteralExpr)
			if lit.Value != tt.want {
				t.Errorf("value = %#v, want %#v", lit.Value, tt.want)
			}
		})
	}
}

func TestConstWithoutInitializer(t *testing.T) {
	unit, bag := Parse("const x")

	if len(unit.Members) != 1 {
		t.Fatalf("len(Members) = %d", len(unit.Members))
	}

	items := bag.Items()
	if len(items) != 1 || items[0].Message != "Unexpected constant initializer 'x'." {
		t.Errorf("diagnostics = %v", items)
	}

	if _, bag := Parse("let x"); bag.Len() != 0 {
		t.Errorf("let without initializer reported %v", bag.Items())
	}
}

// render prints an expression fully parenthesized.
func render(e syntax.Expression) string {
	switch e := e.(type) {
	case *syntax.BinaryExpr:
		return "(" + render(e.Left) + " " + e.Operator.Text + " " + render(e.Right) + ")"
	case *syntax.UnaryExpr:
		return "(" + e.Operator.Text + render(e.Operand) + ")"
	case *syntax.LiteralExpr:
		return e.Literal.Text
	case *syntax.NameExpr:
		return e.Identifier.Text
	case *syntax.ParenExpr:
		return render(e.Expression)
	case *syntax.AssignExpr:
		return "(" + e.Identifier.Text + " " + e.Operator.Text + " " + render(e.Expression) + ")"
	case *syntax.CallExpr:
		args := make([]string, len(e.Arguments))
		for i, a := range e.Arguments {
			args[i] = render(a)
		}

		return e.Callee.Identifier.Text + "(" + strings.Join(args, ", ") + ")"
	case *syntax.MemberExpr:
		return e.Identifier.Text + "." + render(e.Expression)
	default:
		return "?"
	}
}

func TestPrecedence(t *testing.T) {
	tests := []struct {
		src, want string
	}{
		{"1 + 2 * 3", "(1 + (2 * 3))"},
		{"1 * 2 + 3", "((1 * 2) + 3)"},
		{"1 - 2 - 3", "((1 - 2) - 3)"},
		{"a == 1 && b < 2", "((a == 1) && (b < 2))"},
		{"a || b && c", "(a || (b && c))"},
		{"a | b ^ c", "((a | b) ^ c)"},
		{"-a * b", "((-a) * b)"},
		{"!a == b", "((!a) == b)"},
		{"~1 + 2", "((~1) + 2)"},
		{"(1 + 2) * 3", "((1 + 2) * 3)"},
		{"x = y = 3", "(x = (y = 3))"},
		{"x += 1 + 2", "(x += (1 + 2))"},
		{"x != true", "(x != true)"},
		{"f(1, a + 2)", "f(1, (a + 2))"},
		{"a.b.c(1)", "a.b.c(1)"},
		{"Keyboard.press(Keys.Gui, Keys.R)", "Keyboard.press(Keys.Gui, Keys.R)"},
		{"1 % 2 / 3", "((1 % 2) / 3)"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			stmt := globalStmt(t, parseClean(t, tt.src), 0).(*syntax.ExprStmt)
			if got := render(stmt.Expression); got != tt.want {
				t.Errorf("render = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestAssignmentOperators(t *testing.T) {
	for _, op := range []string{"=", "+=", "-=", "*=", "/=", "%=", "&=", "!=", "^=", "|="} {
		t.Run(op, func(t *testing.T) {
			stmt := globalStmt(t, parseClean(t, "x "+op+" 1"), 0).(*syntax.ExprStmt)

			a, ok := stmt.Expression.(*syntax.AssignExpr)
			if !ok {
				t.Fatalf("expression is %T, want *syntax.AssignExpr", stmt.Expression)
			}

			if a.Operator.Text != op {
				t.Errorf("operator = %q", a.Operator.Text)
			}
		})
	}
}

func TestStatements(t *testing.T) {
	src := `
fn add(a, b) {
	return a + b
}

let i = 0
while i < 3 {
	if i == 1 {
		continue
	} else if i == 2 {
		break
	} else {
		i += 1
	}
}

for (j = 0 to 3) {
	Process.write(j)
}

fn nothing() {
	return
}
`
	unit := parseClean(t, src)

	if len(unit.Members) != 5 {
		t.Fatalf("len(Members) = %d, want 5", len(unit.Members))
	}

	fd, ok := unit.Members[0].(*syntax.FuncDecl)
	if !ok {
		t.Fatalf("member 0 is %T", unit.Members[0])
	}

	if fd.Identifier.Text != "add" || len(fd.Parameters) != 2 || fd.Parameters[1].Identifier.Text != "b" {
		t.Errorf("function = %+v", fd)
	}

	ret := fd.Body.Statements[0].(*syntax.ReturnStmt)
	if render(ret.Expression) != "(a + b)" {
		t.Errorf("return = %s", render(ret.Expression))
	}

	w := globalStmt(t, unit, 2).(*syntax.WhileStmt)

	ifs := w.Body.Statements[0].(*syntax.IfStmt)
	if _, ok := ifs.Then.Statements[0].(*syntax.ContinueStmt); !ok {
		t.Errorf("then = %T", ifs.Then.Statements[0])
	}

	nested, ok := ifs.Else.Statement.(*syntax.IfStmt)
	if !ok {
		t.Fatalf("else = %T, want nested if", ifs.Else.Statement)
	}

	if _, ok := nested.Else.Statement.(*syntax.BlockStmt); !ok {
		t.Errorf("final else = %T", nested.Else.Statement)
	}

	f := globalStmt(t, unit, 3).(*syntax.ForStmt)
	if f.Identifier.Text != "j" || render(f.Lower) != "0" || render(f.Upper) != "3" {
		t.Errorf("for = %+v", f)
	}

	empty := unit.Members[4].(*syntax.FuncDecl)
	if r := empty.Body.Statements[0].(*syntax.ReturnStmt); r.Expression != nil {
		t.Errorf("bare return has expression %T", r.Expression)
	}
}

func TestImportExport(t *testing.T) {
	unit := parseClean(t, `import Keyboard
import "lib.pill"
export const name = "x"`)

	imp := unit.Members[0].(*syntax.ImportDecl)
	if n, ok := imp.Specifier.(*syntax.NameExpr); !ok || n.Identifier.Text != "Keyboard" {
		t.Errorf("specifier = %#v", imp.Specifier)
	}

	imp = unit.Members[1].(*syntax.ImportDecl)
	if l, ok := imp.Specifier.(*syntax.LiteralExpr); !ok || l.Value != "lib.pill" {
		t.Errorf("specifier = %#v", imp.Specifier)
	}

	exp := unit.Members[2].(*syntax.ExportDecl)
	if d, ok := exp.Statement.(*syntax.VarDecl); !ok || !d.Constant {
		t.Errorf("export statement = %#v", exp.Statement)
	}
}

func TestObjectLiteral(t *testing.T) {
	unit := parseClean(t, `const o = {
	a: 1,
	greet: fn(name) { return "hi " + name },
	nested: { b: true },
	a
}`)

	obj := globalStmt(t, unit, 0).(*syntax.VarDecl).Initializer.(*syntax.ObjectExpr)
	if len(obj.Properties) != 4 {
		t.Fatalf("len(Properties) = %d", len(obj.Properties))
	}

	if _, ok := obj.Properties[1].Value.(*syntax.FuncExpr); !ok {
		t.Errorf("greet = %T", obj.Properties[1].Value)
	}

	if _, ok := obj.Properties[2].Value.(*syntax.ObjectExpr); !ok {
		t.Errorf("nested = %T", obj.Properties[2].Value)
	}

	if obj.Properties[3].Colon != nil || obj.Properties[3].Value != nil {
		t.Errorf("shorthand = %+v", obj.Properties[3])
	}
}

func TestUnexpectedToken(t *testing.T) {
	unit, bag := Parse("fn (a) {}")

	if !bag.HasErrors() {
		t.Fatal("no diagnostics")
	}

	if msg := bag.Items()[0].Message; msg != "Unexpected token '(', expected 'IdentifierToken'." {
		t.Errorf("message = %q", msg)
	}

	fd := unit.Members[0].(*syntax.FuncDecl)
	if !fd.Identifier.Missing() {
		t.Errorf("identifier = %+v, want placeholder", fd.Identifier)
	}
}

func TestRecovery(t *testing.T) {
	tests := []string{
		"}",
		")))",
		"let = 5",
		"fn",
		"while {",
		"for (",
		"{ a: ",
		"a.",
		"import",
		"export",
		"if x { let y = ",
		"*(",
		"Process.write(*(1)",
		"f(*(*(",
		"{ a: *( }",
	}

	for _, src := range tests {
		t.Run(src, func(t *testing.T) {
			unit, bag := Parse(src)
			if unit == nil {
				t.Fatal("nil unit")
			}

			if !bag.HasErrors() {
				t.Error("expected diagnostics")
			}

			if unit.EOF.Kind != syntax.EndOfFileToken {
				t.Errorf("EOF = %v", unit.EOF.Kind)
			}
		})
	}
}

func TestSkippedText(t *testing.T) {
	p := New("let x = 1 @# let y = 2")

	unit, bag := p.Parse()
	if bag.Len() != 0 {
		t.Errorf("diagnostics = %v", bag.Items())
	}

	if len(unit.Members) != 2 {
		t.Fatalf("len(Members) = %d, want 2", len(unit.Members))
	}

	var skippedText []string

	for _, tok := range p.Tokens() {
		if tok.Kind == syntax.UnknownToken {
			t.Errorf("unknown token %q left in stream", tok.Text)
		}

		for _, tr := range tok.Leading {
			if tr.Kind == syntax.SkippedTextTrivia {
				skippedText = append(skippedText, tr.Text)
			}
		}
	}

	if strings.Join(skippedText, "") != "@#" {
		t.Errorf("skipped = %q", skippedText)
	}

	var sb strings.Builder
	for _, tok := range p.Tokens() {
		sb.WriteString(tok.Full())
	}

	if sb.String() != "let x = 1 @# let y = 2" {
		t.Errorf("round trip = %q", sb.String())
	}
}

func TestLexerDiagnosticsMerged(t *testing.T) {
	_, bag := Parse(`let x = 012`)

	if !bag.HasErrors() || bag.Items()[0].Message != "The number 012 is invalid." {
		t.Errorf("diagnostics = %v", bag.Items())
	}
}

func TestStrayTokenBeforeCall(t *testing.T) {
	unit, bag := Parse("Process.write(*(1)\nlet y = 2")

	if !bag.HasErrors() {
		t.Fatal("no diagnostics")
	}

	if msg := bag.Items()[0].Message; msg != "Unexpected token '*', expected 'IdentifierToken'." {
		t.Errorf("message = %q", msg)
	}

	// Parsing resumes with the declaration on the next line.
	last := unit.Members[len(unit.Members)-1]
	if decl, ok := last.(*syntax.VarDecl); !ok || decl.Identifier.Text != "y" {
		t.Errorf("last member = %#v, want declaration of y", last)
	}
}

package lexer

import (
	"strings"
	"testing"

	"github.com/ardnew/pillar/lang/syntax"
)

func kinds(toks []syntax.Token) []syntax.Kind {
	out := make([]syntax.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}

	return out
}

func equalKinds(a, b []syntax.Kind) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

func TestTokenKinds(t *testing.T) {
	tests := []struct {
		src  string
		want []syntax.Kind
	}{
		{"let x = 1", []syntax.Kind{
			syntax.LetKeyword, syntax.IdentifierToken, syntax.EqualsToken,
			syntax.NumberLiteralToken, syntax.EndOfFileToken,
		}},
		{`let s = "hi"`, []syntax.Kind{
			syntax.LetKeyword, syntax.IdentifierToken, syntax.EqualsToken,
			syntax.StringLiteralToken, syntax.EndOfFileToken,
		}},
		{"const b = true", []syntax.Kind{
			syntax.ConstKeyword, syntax.IdentifierToken, syntax.EqualsToken,
			syntax.TrueKeyword, syntax.EndOfFileToken,
		}},
		{"if (a == 1) {}", []syntax.Kind{
			syntax.IfKeyword, syntax.LeftParenthesisToken, syntax.IdentifierToken,
			syntax.EqualsEqualsToken, syntax.NumberLiteralToken,
			syntax.RightParenthesisToken, syntax.LeftBraceToken,
			syntax.RightBraceToken, syntax.EndOfFileToken,
		}},
		{"++ += -- -= *= /= %= == != && &= || |= ^= <= >=", []syntax.Kind{
			syntax.PlusPlusToken, syntax.PlusEqualsToken, syntax.MinusMinusToken,
			syntax.MinusEqualsToken, syntax.StarEqualsToken, syntax.SlashEqualsToken,
			syntax.PercentEqualsToken, syntax.EqualsEqualsToken, syntax.BangEqualsToken,
			syntax.AmpersandAmpersandToken, syntax.AmpersandEqualsToken,
			syntax.PipePipeToken, syntax.PipeEqualsToken, syntax.CaretEqualsToken,
			syntax.LessEqualsToken, syntax.GreaterEqualsToken, syntax.EndOfFileToken,
		}},
		{"( ) { } [ ] , . ; : ? ~", []syntax.Kind{
			syntax.LeftParenthesisToken, syntax.RightParenthesisToken,
			syntax.LeftBraceToken, syntax.RightBraceToken,
			syntax.LeftBracketToken, syntax.RightBracketToken,
			syntax.CommaToken, syntax.DotToken, syntax.SemicolonToken,
			syntax.ColonToken, syntax.QuestionToken, syntax.TildeToken,
			syntax.EndOfFileToken,
		}},
		{"for (i = 0 to 3) {}", []syntax.Kind{
			syntax.ForKeyword, syntax.LeftParenthesisToken, syntax.IdentifierToken,
			syntax.EqualsToken, syntax.NumberLiteralToken, syntax.ToKeyword,
			syntax.NumberLiteralToken, syntax.RightParenthesisToken,
			syntax.LeftBraceToken, syntax.RightBraceToken, syntax.EndOfFileToken,
		}},
		{"a @ b", []syntax.Kind{
			syntax.IdentifierToken, syntax.UnknownToken, syntax.IdentifierToken,
			syntax.EndOfFileToken,
		}},
		{"", []syntax.Kind{syntax.EndOfFileToken}},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			toks, _ := Tokens(tt.src)
			if got := kinds(toks); !equalKinds(got, tt.want) {
				t.Errorf("kinds = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		src     string
		want    float64
		text    string
		invalid bool
	}{
		{"0", 0, "0", false},
		{"42", 42, "42", false},
		{"3.25", 3.25, "3.25", false},
		{"0.5", 0.5, "0.5", false},
		{"012", 12, "012", true},
		{"007.5", 7.5, "007.5", true},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			toks, bag := Tokens(tt.src)

			tok := toks[0]
			if tok.Kind != syntax.NumberLiteralToken {
				t.Fatalf("kind = %v", tok.Kind)
			}

			if tok.Value != tt.want || tok.Text != tt.text {
				t.Errorf("token = (%q, %v), want (%q, %v)", tok.Text, tok.Value, tt.text, tt.want)
			}

			if bag.HasErrors() != tt.invalid {
				t.Errorf("HasErrors() = %v, want %v", bag.HasErrors(), tt.invalid)
			}

			if tt.invalid {
				msg := bag.Items()[0].Message
				if msg != "The number "+tt.src+" is invalid." {
					t.Errorf("message = %q", msg)
				}
			}
		})
	}
}

func TestTrailingDotIsNotFraction(t *testing.T) {
	toks, _ := Tokens("1.x")

	got := kinds(toks)

	want := []syntax.Kind{
		syntax.NumberLiteralToken, syntax.DotToken, syntax.IdentifierToken,
		syntax.EndOfFileToken,
	}
	if !equalKinds(got, want) {
		t.Errorf("kinds = %v, want %v", got, want)
	}
}

func TestStrings(t *testing.T) {
	tests := []struct {
		src          string
		want         string
		unterminated bool
	}{
		{`"hello"`, "hello", false},
		{`'hello'`, "hello", false},
		{`"it's"`, "it's", false},
		{`'say "hi"'`, `say "hi"`, false},
		{`"a""b"`, `a"b`, false},
		{`'don''t'`, "don't", false},
		{`""`, "", false},
		{`"open`, "open", true},
		{"\"line\nnext\"", "line", true},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			toks, bag := Tokens(tt.src)

			tok := toks[0]
			if tok.Kind != syntax.StringLiteralToken {
				t.Fatalf("kind = %v", tok.Kind)
			}

			if tok.Value != tt.want {
				t.Errorf("value = %q, want %q", tok.Value, tt.want)
			}

			if bag.HasErrors() != tt.unterminated {
				t.Errorf("HasErrors() = %v, want %v", bag.HasErrors(), tt.unterminated)
			}

			if tt.unterminated && bag.Items()[0].Message != "Unterminated string literal." {
				t.Errorf("message = %q", bag.Items()[0].Message)
			}
		})
	}
}

func TestTrivia(t *testing.T) {
	src := "  // lead\nlet /* mid */ x = 1 // tail\n\ty"

	toks, bag := Tokens(src)
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}

	let := toks[0]
	if let.Kind != syntax.LetKeyword {
		t.Fatalf("first token = %v", let.Kind)
	}

	wantLead := []syntax.Kind{
		syntax.WhitespaceTrivia, syntax.SingleLineCommentTrivia, syntax.BreakLineTrivia,
	}

	var gotLead []syntax.Kind
	for _, tr := range let.Leading {
		gotLead = append(gotLead, tr.Kind)
	}

	if !equalKinds(gotLead, wantLead) {
		t.Errorf("leading = %v, want %v", gotLead, wantLead)
	}

	one := toks[3]
	if one.Kind != syntax.NumberLiteralToken {
		t.Fatalf("fourth token = %v", one.Kind)
	}

	last := one.Trailing[len(one.Trailing)-1]
	if last.Kind != syntax.BreakLineTrivia {
		t.Errorf("trailing trivia ends with %v, want line break", last.Kind)
	}

	y := toks[4]
	if y.Location.Line != 3 || y.Location.Column != 2 {
		t.Errorf("y at line %d col %d, want 3:2", y.Location.Line, y.Location.Column)
	}

	var sb strings.Builder
	for _, tk := range toks {
		sb.WriteString(tk.Full())
	}

	if sb.String() != src {
		t.Errorf("round trip = %q, want %q", sb.String(), src)
	}
}

func TestLocations(t *testing.T) {
	toks, _ := Tokens("let x\r\n  = 10")

	tests := []struct {
		idx, line, col, start, length int
	}{
		{0, 1, 1, 0, 3},
		{1, 1, 5, 4, 1},
		{2, 2, 3, 9, 1},
		{3, 2, 5, 11, 2},
	}

	for _, tt := range tests {
		loc := toks[tt.idx].Location
		if loc.Line != tt.line || loc.Column != tt.col || loc.Start != tt.start || loc.Length != tt.length {
			t.Errorf("token %d at %+v, want line %d col %d start %d len %d",
				tt.idx, loc, tt.line, tt.col, tt.start, tt.length)
		}
	}
}

func TestUnterminatedComment(t *testing.T) {
	toks, bag := Tokens("/* never closed")

	if toks[0].Kind != syntax.EndOfFileToken {
		t.Errorf("kind = %v, want EOF", toks[0].Kind)
	}

	if !bag.HasErrors() || bag.Items()[0].Message != "Unterminated multi-line comment." {
		t.Errorf("diagnostics = %v", bag.Items())
	}
}

func TestUnknownCharacter(t *testing.T) {
	toks, bag := Tokens("$")

	if toks[0].Kind != syntax.UnknownToken || toks[0].Value != "$" || toks[0].Text != "$" {
		t.Errorf("token = %+v", toks[0])
	}

	if bag.Len() != 0 {
		t.Errorf("unknown characters are reported by the parser, got %v", bag.Items())
	}
}

func TestLexAfterEOF(t *testing.T) {
	l := New("x")

	l.Lex()

	if l.Done() {
		t.Fatal("Done() before EOF")
	}

	for range 3 {
		if k := l.Lex().Kind; k != syntax.EndOfFileToken {
			t.Errorf("Lex() = %v after end of input", k)
		}
	}

	if !l.Done() {
		t.Error("Done() = false after EOF")
	}
}

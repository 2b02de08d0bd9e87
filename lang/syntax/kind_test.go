package syntax

import "testing"

func TestKindString(t *testing.T) {
	for k := Kind(0); k < kindCount; k++ {
		if kindName[k] == "" {
			t.Errorf("Kind(%d) has no name", int(k))
		}
	}

	if got := Kind(-1).String(); got != "Kind(-1)" {
		t.Errorf("String() = %q", got)
	}
}

func TestKeyword(t *testing.T) {
	tests := []struct {
		text string
		want Kind
	}{
		{"break", BreakKeyword},
		{"while", WhileKeyword},
		{"const", ConstKeyword},
		{"let", LetKeyword},
		{"if", IfKeyword},
		{"else", ElseKeyword},
		{"continue", ContinueKeyword},
		{"false", FalseKeyword},
		{"for", ForKeyword},
		{"to", ToKeyword},
		{"fn", FunctionKeyword},
		{"return", ReturnKeyword},
		{"true", TrueKeyword},
		{"import", ImportKeyword},
		{"export", ExportKeyword},
		{"function", IdentifierToken},
		{"Const", IdentifierToken},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := Keyword(tt.text); got != tt.want {
				t.Errorf("Keyword(%q) = %v, want %v", tt.text, got, tt.want)
			}

			if tt.want.IsKeyword() {
				if s, ok := Text(tt.want); !ok || s != tt.text {
					t.Errorf("Text(%v) = %q, %v", tt.want, s, ok)
				}
			}
		})
	}

	if n := len(Keywords()); n != 15 {
		t.Errorf("len(Keywords()) = %d, want 15", n)
	}
}

func TestPrecedence(t *testing.T) {
	tests := []struct {
		kind          Kind
		unary, binary int
	}{
		{StarToken, 0, 5},
		{SlashToken, 0, 5},
		{PercentToken, 0, 5},
		{PlusToken, 6, 4},
		{MinusToken, 6, 4},
		{EqualsEqualsToken, 0, 3},
		{BangEqualsToken, 0, 3},
		{LessToken, 0, 3},
		{GreaterEqualsToken, 0, 3},
		{AmpersandToken, 0, 2},
		{AmpersandAmpersandToken, 0, 2},
		{PipeToken, 0, 1},
		{PipePipeToken, 0, 1},
		{CaretToken, 0, 1},
		{TildeToken, 6, 0},
		{BangToken, 6, 0},
		{EqualsToken, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			if got := UnaryPrecedence(tt.kind); got != tt.unary {
				t.Errorf("UnaryPrecedence() = %d, want %d", got, tt.unary)
			}

			if got := BinaryPrecedence(tt.kind); got != tt.binary {
				t.Errorf("BinaryPrecedence() = %d, want %d", got, tt.binary)
			}
		})
	}
}

func TestIsAssignment(t *testing.T) {
	for _, k := range []Kind{
		EqualsToken, PlusEqualsToken, MinusEqualsToken, StarEqualsToken,
		SlashEqualsToken, PercentEqualsToken, AmpersandEqualsToken,
		BangEqualsToken, CaretEqualsToken, PipeEqualsToken,
	} {
		if !k.IsAssignment() {
			t.Errorf("%v.IsAssignment() = false", k)
		}
	}

	if EqualsEqualsToken.IsAssignment() {
		t.Error("EqualsEqualsToken.IsAssignment() = true")
	}
}

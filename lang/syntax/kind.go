package syntax

import "strconv"

// Kind identifies a token, a trivia span, or an AST node.
type Kind int

const (
	UnknownToken Kind = iota
	EndOfFileToken

	// Single-character tokens.
	LeftParenthesisToken
	RightParenthesisToken
	LeftBraceToken
	RightBraceToken
	LeftBracketToken
	RightBracketToken
	CommaToken
	DotToken
	MinusToken
	PlusToken
	SemicolonToken
	SlashToken
	StarToken
	PercentToken
	CaretToken
	AmpersandToken
	PipeToken
	TildeToken
	BangToken
	QuestionToken
	ColonToken

	// One or two character tokens.
	BangEqualsToken
	EqualsEqualsToken
	EqualsToken
	PlusPlusToken
	MinusMinusToken
	PlusEqualsToken
	MinusEqualsToken
	StarEqualsToken
	SlashEqualsToken
	PercentEqualsToken
	CaretEqualsToken
	AmpersandEqualsToken
	PipeEqualsToken
	LessToken
	LessEqualsToken
	GreaterToken
	GreaterEqualsToken
	AmpersandAmpersandToken
	PipePipeToken

	// Literals.
	IdentifierToken
	StringLiteralToken
	NumberLiteralToken

	// Keywords.
	BreakKeyword
	WhileKeyword
	ConstKeyword
	LetKeyword
	IfKeyword
	ElseKeyword
	ContinueKeyword
	FalseKeyword
	ForKeyword
	FunctionKeyword
	ReturnKeyword
	TrueKeyword
	ToKeyword
	ImportKeyword
	ExportKeyword

	// Trivia.
	WhitespaceTrivia
	BreakLineTrivia
	SkippedTextTrivia
	SingleLineCommentTrivia
	MultiLineCommentTrivia

	// Members.
	CompilationUnit
	FunctionDeclaration
	Parameter
	ElseClause
	GlobalStatement
	ImportDeclaration
	ExportDeclaration

	// Statements.
	BlockStatement
	BreakStatement
	ContinueStatement
	ExpressionStatement
	ForStatement
	IfStatement
	ReturnStatement
	WhileStatement
	VariableDeclaration

	// Expressions.
	LiteralExpression
	ObjectLiteralExpression
	ObjectLiteralProperty
	BinaryExpression
	UnaryExpression
	CallExpression
	NameExpression
	AssignmentExpression
	ParenthesizedExpression
	MemberAccessExpression
	FunctionExpression

	kindCount
)

var kindName = [kindCount]string{
	UnknownToken:            "UnknownToken",
	EndOfFileToken:          "EndOfFileToken",
	LeftParenthesisToken:    "LeftParenthesisToken",
	RightParenthesisToken:   "RightParenthesisToken",
	LeftBraceToken:          "LeftBraceToken",
	RightBraceToken:         "RightBraceToken",
	LeftBracketToken:        "LeftBracketToken",
	RightBracketToken:       "RightBracketToken",
	CommaToken:              "CommaToken",
	DotToken:                "DotToken",
	MinusToken:              "MinusToken",
	PlusToken:               "PlusToken",
	SemicolonToken:          "SemicolonToken",
	SlashToken:              "SlashToken",
	StarToken:               "StarToken",
	PercentToken:            "PercentToken",
	CaretToken:              "CaretToken",
	AmpersandToken:          "AmpersandToken",
	PipeToken:               "PipeToken",
	TildeToken:              "TildeToken",
	BangToken:               "BangToken",
	QuestionToken:           "QuestionToken",
	ColonToken:              "ColonToken",
	BangEqualsToken:         "BangEqualsToken",
	EqualsEqualsToken:       "EqualsEqualsToken",
	EqualsToken:             "EqualsToken",
	PlusPlusToken:           "PlusPlusToken",
	MinusMinusToken:         "MinusMinusToken",
	PlusEqualsToken:         "PlusEqualsToken",
	MinusEqualsToken:        "MinusEqualsToken",
	StarEqualsToken:         "StarEqualsToken",
	SlashEqualsToken:        "SlashEqualsToken",
	PercentEqualsToken:      "PercentEqualsToken",
	CaretEqualsToken:        "CaretEqualsToken",
	AmpersandEqualsToken:    "AmpersandEqualsToken",
	PipeEqualsToken:         "PipeEqualsToken",
	LessToken:               "LessToken",
	LessEqualsToken:         "LessEqualsToken",
	GreaterToken:            "GreaterToken",
	GreaterEqualsToken:      "GreaterEqualsToken",
	AmpersandAmpersandToken: "AmpersandAmpersandToken",
	PipePipeToken:           "PipePipeToken",
	IdentifierToken:         "IdentifierToken",
	StringLiteralToken:      "StringLiteralToken",
	NumberLiteralToken:      "NumberLiteralToken",
	BreakKeyword:            "BreakKeyword",
	WhileKeyword:            "WhileKeyword",
	ConstKeyword:            "ConstKeyword",
	LetKeyword:              "LetKeyword",
	IfKeyword:               "IfKeyword",
	ElseKeyword:             "ElseKeyword",
	ContinueKeyword:         "ContinueKeyword",
	FalseKeyword:            "FalseKeyword",
	ForKeyword:              "ForKeyword",
	FunctionKeyword:         "FunctionKeyword",
	ReturnKeyword:           "ReturnKeyword",
	TrueKeyword:             "TrueKeyword",
	ToKeyword:               "ToKeyword",
	ImportKeyword:           "ImportKeyword",
	ExportKeyword:           "ExportKeyword",
	WhitespaceTrivia:        "WhitespaceTrivia",
	BreakLineTrivia:         "BreakLineTrivia",
	SkippedTextTrivia:       "SkippedTextTrivia",
	SingleLineCommentTrivia: "SingleLineCommentTrivia",
	MultiLineCommentTrivia:  "MultiLineCommentTrivia",
	CompilationUnit:         "CompilationUnit",
	FunctionDeclaration:     "FunctionDeclaration",
	Parameter:               "Parameter",
	ElseClause:              "ElseClause",
	GlobalStatement:         "GlobalStatement",
	ImportDeclaration:       "ImportDeclaration",
	ExportDeclaration:       "ExportDeclaration",
	BlockStatement:          "BlockStatement",
	BreakStatement:          "BreakStatement",
	ContinueStatement:       "ContinueStatement",
	ExpressionStatement:     "ExpressionStatement",
	ForStatement:            "ForStatement",
	IfStatement:             "IfStatement",
	ReturnStatement:         "ReturnStatement",
	WhileStatement:          "WhileStatement",
	VariableDeclaration:     "VariableDeclaration",
	LiteralExpression:       "LiteralExpression",
	ObjectLiteralExpression: "ObjectLiteralExpression",
	ObjectLiteralProperty:   "ObjectLiteralProperty",
	BinaryExpression:        "BinaryExpression",
	UnaryExpression:         "UnaryExpression",
	CallExpression:          "CallExpression",
	NameExpression:          "NameExpression",
	AssignmentExpression:    "AssignmentExpression",
	ParenthesizedExpression: "ParenthesizedExpression",
	MemberAccessExpression:  "MemberAccessExpression",
	FunctionExpression:      "FunctionExpression",
}

func (k Kind) String() string {
	if k >= 0 && k < kindCount {
		return kindName[k]
	}

	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// IsTrivia reports whether k classifies a trivia span.
func (k Kind) IsTrivia() bool {
	return k >= WhitespaceTrivia && k <= MultiLineCommentTrivia
}

// IsKeyword reports whether k is a reserved word.
func (k Kind) IsKeyword() bool {
	return k >= BreakKeyword && k <= ExportKeyword
}

// IsAssignment reports whether k is an operator that may follow an
// identifier in an assignment expression.
func (k Kind) IsAssignment() bool {
	switch k {
	case EqualsToken, PlusEqualsToken, MinusEqualsToken, StarEqualsToken,
		SlashEqualsToken, PercentEqualsToken, AmpersandEqualsToken,
		BangEqualsToken, CaretEqualsToken, PipeEqualsToken:
		return true
	default:
		return false
	}
}

var fixedText = map[Kind]string{
	LeftParenthesisToken:    "(",
	RightParenthesisToken:   ")",
	LeftBraceToken:          "{",
	RightBraceToken:         "}",
	LeftBracketToken:        "[",
	RightBracketToken:       "]",
	CommaToken:              ",",
	DotToken:                ".",
	MinusToken:              "-",
	PlusToken:               "+",
	SemicolonToken:          ";",
	SlashToken:              "/",
	StarToken:               "*",
	PercentToken:            "%",
	CaretToken:              "^",
	AmpersandToken:          "&",
	PipeToken:               "|",
	TildeToken:              "~",
	BangToken:               "!",
	QuestionToken:           "?",
	ColonToken:              ":",
	BangEqualsToken:         "!=",
	EqualsEqualsToken:       "==",
	EqualsToken:             "=",
	PlusPlusToken:           "++",
	MinusMinusToken:         "--",
	PlusEqualsToken:         "+=",
	MinusEqualsToken:        "-=",
	StarEqualsToken:         "*=",
	SlashEqualsToken:        "/=",
	PercentEqualsToken:      "%=",
	CaretEqualsToken:        "^=",
	AmpersandEqualsToken:    "&=",
	PipeEqualsToken:         "|=",
	LessToken:               "<",
	LessEqualsToken:         "<=",
	GreaterToken:            ">",
	GreaterEqualsToken:      ">=",
	AmpersandAmpersandToken: "&&",
	PipePipeToken:           "||",
	BreakKeyword:            "break",
	WhileKeyword:            "while",
	ConstKeyword:            "const",
	LetKeyword:              "let",
	IfKeyword:               "if",
	ElseKeyword:             "else",
	ContinueKeyword:         "continue",
	FalseKeyword:            "false",
	ForKeyword:              "for",
	ToKeyword:               "to",
	FunctionKeyword:         "fn",
	ReturnKeyword:           "return",
	TrueKeyword:             "true",
	ImportKeyword:           "import",
	ExportKeyword:           "export",
}

// Text returns the fixed spelling of punctuation and keyword kinds.
// It returns false for kinds whose text varies, such as identifiers.
func Text(k Kind) (string, bool) {
	s, ok := fixedText[k]

	return s, ok
}

var keywords = map[string]Kind{
	"break":    BreakKeyword,
	"while":    WhileKeyword,
	"const":    ConstKeyword,
	"let":      LetKeyword,
	"if":       IfKeyword,
	"else":     ElseKeyword,
	"continue": ContinueKeyword,
	"false":    FalseKeyword,
	"for":      ForKeyword,
	"to":       ToKeyword,
	"fn":       FunctionKeyword,
	"return":   ReturnKeyword,
	"true":     TrueKeyword,
	"import":   ImportKeyword,
	"export":   ExportKeyword,
}

// Keyword returns the keyword kind spelled by text, or [IdentifierToken].
func Keyword(text string) Kind {
	if k, ok := keywords[text]; ok {
		return k
	}

	return IdentifierToken
}

// Keywords returns every reserved word in declaration order.
func Keywords() []string {
	out := make([]string, 0, len(keywords))
	for k := BreakKeyword; k <= ExportKeyword; k++ {
		out = append(out, fixedText[k])
	}

	return out
}

// UnaryPrecedence returns the binding strength of k as a prefix operator,
// or 0 if k is not one.
func UnaryPrecedence(k Kind) int {
	switch k {
	case PlusToken, MinusToken, TildeToken, BangToken:
		return 6
	default:
		return 0
	}
}

// BinaryPrecedence returns the binding strength of k as an infix operator,
// or 0 if k is not one.
func BinaryPrecedence(k Kind) int {
	switch k {
	case StarToken, SlashToken, PercentToken:
		return 5
	case PlusToken, MinusToken:
		return 4
	case EqualsEqualsToken, BangEqualsToken, LessToken, LessEqualsToken,
		GreaterToken, GreaterEqualsToken:
		return 3
	case AmpersandToken, AmpersandAmpersandToken:
		return 2
	case PipeToken, PipePipeToken, CaretToken:
		return 1
	default:
		return 0
	}
}

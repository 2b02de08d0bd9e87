// Package lexer converts Pillar source text into a stream of tokens.
//
// Every byte of the input ends up either in a token or in one of the trivia
// spans attached to it. Malformed input never stops the scan: the lexer
// reports a diagnostic and produces the best token it can.
package lexer

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ardnew/pillar/lang/diag"
	"github.com/ardnew/pillar/lang/syntax"
)

const eof = -1

// Lexer scans a single source text. The zero value is not usable; create
// one with [New].
type Lexer struct {
	src  string
	diag diag.Bag
	pos  int
	line int
	col  int
	done bool
}

// New returns a lexer positioned at the start of src.
func New(src string) *Lexer {
	return &Lexer{src: src, line: 1, col: 1}
}

// Diagnostics returns the messages reported so far.
func (l *Lexer) Diagnostics() *diag.Bag { return &l.diag }

// Done reports whether the end-of-file token has been returned.
func (l *Lexer) Done() bool { return l.done }

// Tokens scans all of src, including the final end-of-file token.
func Tokens(src string) ([]syntax.Token, *diag.Bag) {
	l := New(src)

	var toks []syntax.Token
	for !l.done {
		toks = append(toks, l.Lex())
	}

	return toks, l.Diagnostics()
}

// Lex returns the next token. After the end of input it keeps returning
// end-of-file tokens.
func (l *Lexer) Lex() syntax.Token {
	leading := l.trivia(true)

	tok := l.token()

	tok.Leading = leading
	tok.Trailing = l.trivia(false)

	if tok.Kind == syntax.EndOfFileToken {
		l.done = true
	}

	return tok
}

type mark struct{ pos, line, col int }

func (l *Lexer) mark() mark { return mark{l.pos, l.line, l.col} }

func (l *Lexer) location(m mark) diag.Location {
	return diag.Span(l.src[m.pos:l.pos], m.pos, m.line, m.col)
}

func (l *Lexer) peek(offset int) rune {
	p := l.pos
	for ; offset > 0 && p < len(l.src); offset-- {
		_, n := utf8.DecodeRuneInString(l.src[p:])
		p += n
	}

	if p >= len(l.src) {
		return eof
	}

	r, _ := utf8.DecodeRuneInString(l.src[p:])

	return r
}

func (l *Lexer) current() rune { return l.peek(0) }
func (l *Lexer) next() rune    { return l.peek(1) }

// advance consumes n runes, keeping line and column current.
func (l *Lexer) advance(n int) {
	for ; n > 0 && l.pos < len(l.src); n-- {
		r, size := utf8.DecodeRuneInString(l.src[l.pos:])
		l.pos += size

		switch {
		case r == '\n':
			l.line++
			l.col = 1
		case r == '\r' && l.current() != '\n':
			l.line++
			l.col = 1
		case r == '\r':
			// the following '\n' starts the new line
		default:
			l.col++
		}
	}
}

// trivia collects whitespace, comments, and line breaks. Trailing trivia
// stops after the first line break so that the break belongs to the token
// that ends the line.
func (l *Lexer) trivia(leading bool) []syntax.Trivia {
	var out []syntax.Trivia

	for {
		start := l.mark()

		var kind syntax.Kind

		switch c := l.current(); {
		case c == '/' && l.next() == '/':
			l.lineComment()
			kind = syntax.SingleLineCommentTrivia

		case c == '/' && l.next() == '*':
			l.blockComment(start)
			kind = syntax.MultiLineCommentTrivia

		case c == '\r' || c == '\n':
			if c == '\r' && l.next() == '\n' {
				l.advance(2)
			} else {
				l.advance(1)
			}

			kind = syntax.BreakLineTrivia

		case c == ' ' || c == '\t':
			for l.current() == ' ' || l.current() == '\t' {
				l.advance(1)
			}

			kind = syntax.WhitespaceTrivia

		default:
			return out
		}

		loc := l.location(start)
		out = append(out, syntax.Trivia{Kind: kind, Text: loc.Text, Location: loc})

		if kind == syntax.BreakLineTrivia && !leading {
			return out
		}
	}
}

func (l *Lexer) lineComment() {
	for c := l.current(); c != eof && c != '\r' && c != '\n'; c = l.current() {
		l.advance(1)
	}
}

func (l *Lexer) blockComment(start mark) {
	l.advance(2)

	for {
		switch l.current() {
		case eof:
			l.diag.UnterminatedComment(l.location(start))

			return
		case '*':
			if l.next() == '/' {
				l.advance(2)

				return
			}
		}

		l.advance(1)
	}
}

// twoChar maps an operator's first character to its one-character kind and
// the kinds formed with each accepted second character.
var twoChar = map[rune]struct {
	single syntax.Kind
	double map[rune]syntax.Kind
}{
	'+': {syntax.PlusToken, map[rune]syntax.Kind{'+': syntax.PlusPlusToken, '=': syntax.PlusEqualsToken}},
	'-': {syntax.MinusToken, map[rune]syntax.Kind{'-': syntax.MinusMinusToken, '=': syntax.MinusEqualsToken}},
	'*': {syntax.StarToken, map[rune]syntax.Kind{'=': syntax.StarEqualsToken}},
	'/': {syntax.SlashToken, map[rune]syntax.Kind{'=': syntax.SlashEqualsToken}},
	'%': {syntax.PercentToken, map[rune]syntax.Kind{'=': syntax.PercentEqualsToken}},
	'=': {syntax.EqualsToken, map[rune]syntax.Kind{'=': syntax.EqualsEqualsToken}},
	'!': {syntax.BangToken, map[rune]syntax.Kind{'=': syntax.BangEqualsToken}},
	'&': {syntax.AmpersandToken, map[rune]syntax.Kind{'&': syntax.AmpersandAmpersandToken, '=': syntax.AmpersandEqualsToken}},
	'|': {syntax.PipeToken, map[rune]syntax.Kind{'|': syntax.PipePipeToken, '=': syntax.PipeEqualsToken}},
	'^': {syntax.CaretToken, map[rune]syntax.Kind{'=': syntax.CaretEqualsToken}},
	'<': {syntax.LessToken, map[rune]syntax.Kind{'=': syntax.LessEqualsToken}},
	'>': {syntax.GreaterToken, map[rune]syntax.Kind{'=': syntax.GreaterEqualsToken}},
}

var oneChar = map[rune]syntax.Kind{
	'~': syntax.TildeToken,
	'(': syntax.LeftParenthesisToken,
	')': syntax.RightParenthesisToken,
	'{': syntax.LeftBraceToken,
	'}': syntax.RightBraceToken,
	'[': syntax.LeftBracketToken,
	']': syntax.RightBracketToken,
	',': syntax.CommaToken,
	'.': syntax.DotToken,
	';': syntax.SemicolonToken,
	':': syntax.ColonToken,
	'?': syntax.QuestionToken,
}

func (l *Lexer) token() syntax.Token {
	start := l.mark()
	c := l.current()

	var (
		kind  syntax.Kind
		value any
	)

	if op, ok := twoChar[c]; ok {
		l.advance(1)

		kind = op.single
		if k, ok := op.double[l.current()]; ok {
			l.advance(1)

			kind = k
		}
	} else if k, ok := oneChar[c]; ok {
		l.advance(1)

		kind = k
	} else {
		switch {
		case c == eof:
			kind = syntax.EndOfFileToken
		case c == '"' || c == '\'':
			kind, value = syntax.StringLiteralToken, l.quoted(start)
		case isDigit(c):
			kind, value = syntax.NumberLiteralToken, l.number(start)
		case isLetter(c):
			for isLetter(l.current()) || isDigit(l.current()) {
				l.advance(1)
			}

			text := l.src[start.pos:l.pos]
			kind, value = syntax.Keyword(text), text
		default:
			l.advance(1)

			kind, value = syntax.UnknownToken, string(c)
		}
	}

	loc := l.location(start)

	text := loc.Text
	if fixed, ok := syntax.Text(kind); ok {
		text = fixed
	}

	if value == nil && kind.IsKeyword() {
		value = text
	}

	return syntax.Token{
		Kind:     kind,
		Text:     text,
		Value:    value,
		Location: loc,
	}
}

// quoted scans a string literal. The closing quote must match the opening
// one; doubling it inside the literal produces a single quote character.
func (l *Lexer) quoted(start mark) string {
	quote := l.current()
	l.advance(1)

	var sb strings.Builder

	for {
		switch c := l.current(); {
		case c == eof || c == '\r' || c == '\n':
			l.diag.UnterminatedString(l.location(start))

			return sb.String()

		case c == quote && l.next() == quote:
			sb.WriteRune(quote)
			l.advance(2)

		case c == quote:
			l.advance(1)

			return sb.String()

		default:
			sb.WriteRune(c)
			l.advance(1)
		}
	}
}

// number scans digits with an optional fraction. A leading zero followed by
// another digit is reported, but the value is still decoded.
func (l *Lexer) number(start mark) float64 {
	for isDigit(l.current()) {
		l.advance(1)
	}

	if l.current() == '.' && isDigit(l.next()) {
		l.advance(1)

		for isDigit(l.current()) {
			l.advance(1)
		}
	}

	text := l.src[start.pos:l.pos]
	if len(text) > 1 && text[0] == '0' && isDigit(rune(text[1])) {
		l.diag.InvalidNumber(l.location(start), text)
	}

	v, _ := strconv.ParseFloat(text, 64)

	return v
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isLetter(r rune) bool { return r == '_' || unicode.IsLetter(r) }

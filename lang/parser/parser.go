// Package parser builds a syntax tree from Pillar source.
//
// The parser is a recursive descent parser with precedence climbing for
// binary operators. It never fails: missing tokens are reported and replaced
// with empty placeholders, and unrecognized characters are folded into the
// trivia of the next token, so a tree is always produced alongside the
// diagnostics that describe what went wrong.
package parser

import (
	"github.com/ardnew/pillar/lang/diag"
	"github.com/ardnew/pillar/lang/lexer"
	"github.com/ardnew/pillar/lang/syntax"
)

// Parser holds the token stream of a single source text.
type Parser struct {
	tokens []syntax.Token
	diag   diag.Bag
	pos    int
}

// New scans src and returns a parser positioned at its first token.
func New(src string) *Parser {
	l := lexer.New(src)

	var (
		tokens []syntax.Token
		bad    []syntax.Token
	)

	for !l.Done() {
		tok := l.Lex()
		if tok.Kind == syntax.UnknownToken {
			bad = append(bad, tok)

			continue
		}

		if len(bad) > 0 {
			tok.Leading = skipped(bad, tok.Leading)
			bad = bad[:0]
		}

		tokens = append(tokens, tok)
	}

	p := &Parser{tokens: tokens}
	p.diag.Merge(l.Diagnostics())

	return p
}

// skipped converts a run of unknown tokens into trivia placed ahead of the
// leading trivia of the token that follows them.
func skipped(bad []syntax.Token, leading []syntax.Trivia) []syntax.Trivia {
	out := make([]syntax.Trivia, 0, len(leading)+3*len(bad))

	for _, b := range bad {
		out = append(out, b.Leading...)
		out = append(out, syntax.Trivia{
			Kind:     syntax.SkippedTextTrivia,
			Text:     b.Text,
			Location: b.Location,
		})
		out = append(out, b.Trailing...)
	}

	return append(out, leading...)
}

// Parse parses src as a compilation unit.
func Parse(src string) (*syntax.Unit, *diag.Bag) {
	return New(src).Parse()
}

// Parse parses the whole token stream. The returned bag includes the lexer's
// diagnostics.
func (p *Parser) Parse() (*syntax.Unit, *diag.Bag) {
	members := p.members()

	return &syntax.Unit{
		Members: members,
		EOF:     p.expect(syntax.EndOfFileToken),
	}, &p.diag
}

// Tokens returns the token stream with unknown characters folded into
// trivia.
func (p *Parser) Tokens() []syntax.Token { return p.tokens }

func (p *Parser) peek(offset int) syntax.Token {
	if i := p.pos + offset; i < len(p.tokens) {
		return p.tokens[i]
	}

	return p.tokens[len(p.tokens)-1]
}

func (p *Parser) current() syntax.Token { return p.peek(0) }

func (p *Parser) at(kind syntax.Kind) bool { return p.current().Kind == kind }

func (p *Parser) advance() syntax.Token {
	tok := p.current()
	if p.pos < len(p.tokens) {
		p.pos++
	}

	return tok
}

// expect consumes a token of the given kind. Otherwise it reports the
// mismatch and returns a placeholder without consuming anything.
func (p *Parser) expect(kind syntax.Kind) syntax.Token {
	if p.at(kind) {
		return p.advance()
	}

	cur := p.current()

	text := cur.Text
	if text == "" {
		text = cur.Kind.String()
	}

	p.diag.UnexpectedToken(cur.Location, text, kind.String())

	return syntax.Token{Kind: syntax.UnknownToken, Location: cur.Location}
}

func (p *Parser) members() []syntax.Member {
	var out []syntax.Member

	for !p.at(syntax.EndOfFileToken) {
		start := p.pos

		out = append(out, p.member())

		if p.pos == start {
			p.advance()
		}
	}

	return out
}

func (p *Parser) member() syntax.Member {
	switch p.current().Kind {
	case syntax.ImportKeyword:
		return &syntax.ImportDecl{
			Import:    p.advance(),
			Specifier: p.expression(),
		}

	case syntax.ExportKeyword:
		return &syntax.ExportDecl{
			Export:    p.advance(),
			Statement: p.statement(),
		}

	case syntax.FunctionKeyword:
		return p.funcDecl()

	default:
		return &syntax.GlobalStmt{Statement: p.statement()}
	}
}

func (p *Parser) funcDecl() *syntax.FuncDecl {
	n := &syntax.FuncDecl{
		Fn:         p.expect(syntax.FunctionKeyword),
		Identifier: p.expect(syntax.IdentifierToken),
		OpenParen:  p.expect(syntax.LeftParenthesisToken),
	}

	n.Parameters = p.params()
	n.CloseParen = p.expect(syntax.RightParenthesisToken)
	n.Body = p.block()

	return n
}

func (p *Parser) params() []syntax.Param {
	var out []syntax.Param

	for !p.at(syntax.RightParenthesisToken) && !p.at(syntax.EndOfFileToken) {
		out = append(out, syntax.Param{Identifier: p.expect(syntax.IdentifierToken)})

		if !p.at(syntax.CommaToken) {
			break
		}

		p.advance()
	}

	return out
}

func (p *Parser) statement() syntax.Statement {
	switch p.current().Kind {
	case syntax.FunctionKeyword:
		return p.funcDecl()
	case syntax.IfKeyword:
		return p.ifStmt()
	case syntax.WhileKeyword:
		return &syntax.WhileStmt{
			While:     p.advance(),
			Condition: p.expression(),
			Body:      p.block(),
		}
	case syntax.ForKeyword:
		return p.forStmt()
	case syntax.BreakKeyword:
		return &syntax.BreakStmt{Keyword: p.advance()}
	case syntax.ContinueKeyword:
		return &syntax.ContinueStmt{Keyword: p.advance()}
	case syntax.ReturnKeyword:
		n := &syntax.ReturnStmt{Keyword: p.advance()}
		if !p.at(syntax.RightBraceToken) {
			n.Expression = p.expression()
		}

		return n
	case syntax.ConstKeyword, syntax.LetKeyword:
		return p.varDecl()
	default:
		return &syntax.ExprStmt{Expression: p.expression()}
	}
}

func (p *Parser) block() *syntax.BlockStmt {
	n := &syntax.BlockStmt{Open: p.expect(syntax.LeftBraceToken)}

	for !p.at(syntax.RightBraceToken) && !p.at(syntax.EndOfFileToken) {
		start := p.pos

		n.Statements = append(n.Statements, p.statement())

		if p.pos == start {
			p.advance()
		}
	}

	n.Close = p.expect(syntax.RightBraceToken)

	return n
}

func (p *Parser) ifStmt() *syntax.IfStmt {
	n := &syntax.IfStmt{
		If:        p.expect(syntax.IfKeyword),
		Condition: p.expression(),
		Then:      p.block(),
	}

	if p.at(syntax.ElseKeyword) {
		e := &syntax.Else{Else: p.advance()}
		if p.at(syntax.IfKeyword) {
			e.Statement = p.ifStmt()
		} else {
			e.Statement = p.block()
		}

		n.Else = e
	}

	return n
}

func (p *Parser) forStmt() *syntax.ForStmt {
	n := &syntax.ForStmt{
		For:        p.expect(syntax.ForKeyword),
		OpenParen:  p.expect(syntax.LeftParenthesisToken),
		Identifier: p.expect(syntax.IdentifierToken),
		Equals:     p.expect(syntax.EqualsToken),
	}

	n.Lower = p.expression()
	n.To = p.expect(syntax.ToKeyword)
	n.Upper = p.expression()
	n.CloseParen = p.expect(syntax.RightParenthesisToken)
	n.Body = p.block()

	return n
}

func (p *Parser) varDecl() *syntax.VarDecl {
	n := &syntax.VarDecl{Constant: p.at(syntax.ConstKeyword)}

	n.Keyword = p.advance()
	n.Identifier = p.expect(syntax.IdentifierToken)

	if p.at(syntax.EqualsToken) {
		eq := p.advance()
		n.Equals = &eq
		n.Initializer = p.expression()
	}

	if n.Constant && n.Initializer == nil {
		p.diag.UnexpectedConstInitializer(n.Identifier.Location, n.Identifier.Text)
	}

	return n
}

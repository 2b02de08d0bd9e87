package parser

import "github.com/ardnew/pillar/lang/syntax"

func (p *Parser) expression() syntax.Expression {
	if p.at(syntax.IdentifierToken) && p.peek(1).Kind.IsAssignment() {
		return &syntax.AssignExpr{
			Identifier: p.advance(),
			Operator:   p.advance(),
			Expression: p.expression(),
		}
	}

	return p.binary(0)
}

// binary climbs operator precedence. An operator binds into the current
// subtree only if it is strictly stronger than the parent's.
func (p *Parser) binary(parent int) syntax.Expression {
	var left syntax.Expression

	if prec := syntax.UnaryPrecedence(p.current().Kind); prec != 0 && prec >= parent {
		op := p.advance()
		left = &syntax.UnaryExpr{Operator: op, Operand: p.binary(prec)}
	} else {
		left = p.primary()
	}

	for {
		prec := syntax.BinaryPrecedence(p.current().Kind)
		if prec == 0 || prec <= parent {
			return left
		}

		op := p.advance()
		left = &syntax.BinaryExpr{Left: left, Operator: op, Right: p.binary(prec)}
	}
}

func (p *Parser) primary() syntax.Expression {
	switch tok := p.current(); tok.Kind {
	case syntax.LeftBraceToken:
		return p.object()

	case syntax.TrueKeyword, syntax.FalseKeyword:
		return &syntax.LiteralExpr{
			Literal: p.advance(),
			Value:   tok.Kind == syntax.TrueKeyword,
		}

	case syntax.NumberLiteralToken, syntax.StringLiteralToken:
		return &syntax.LiteralExpr{Literal: p.advance(), Value: tok.Value}

	case syntax.LeftParenthesisToken:
		return &syntax.ParenExpr{
			Open:       p.advance(),
			Expression: p.expression(),
			Close:      p.expect(syntax.RightParenthesisToken),
		}

	case syntax.FunctionKeyword:
		return p.funcExpr()

	default:
		return p.nameChain()
	}
}

// nameChain parses a name, a call, or a member access. Member access is
// right recursive: a.b.c() is a -> (b -> c()).
func (p *Parser) nameChain() syntax.Expression {
	// Without a name there is nothing to call or access. Returning here
	// keeps a stray token from re-entering this production.
	if !p.at(syntax.IdentifierToken) {
		return &syntax.NameExpr{Identifier: p.expect(syntax.IdentifierToken)}
	}

	switch p.peek(1).Kind {
	case syntax.LeftParenthesisToken:
		return p.call()

	case syntax.DotToken:
		return &syntax.MemberExpr{
			Identifier: p.expect(syntax.IdentifierToken),
			Dot:        p.advance(),
			Expression: p.nameChain(),
		}

	default:
		return &syntax.NameExpr{Identifier: p.expect(syntax.IdentifierToken)}
	}
}

func (p *Parser) call() *syntax.CallExpr {
	n := &syntax.CallExpr{
		Callee:    &syntax.NameExpr{Identifier: p.expect(syntax.IdentifierToken)},
		OpenParen: p.expect(syntax.LeftParenthesisToken),
	}

	for !p.at(syntax.RightParenthesisToken) && !p.at(syntax.EndOfFileToken) {
		start := p.pos

		n.Arguments = append(n.Arguments, p.expression())

		if p.pos == start || !p.at(syntax.CommaToken) {
			break
		}

		p.advance()
	}

	n.CloseParen = p.expect(syntax.RightParenthesisToken)

	return n
}

func (p *Parser) object() *syntax.ObjectExpr {
	n := &syntax.ObjectExpr{Open: p.expect(syntax.LeftBraceToken)}

	for !p.at(syntax.RightBraceToken) && !p.at(syntax.EndOfFileToken) {
		prop := &syntax.Property{Identifier: p.expect(syntax.IdentifierToken)}

		if p.at(syntax.ColonToken) {
			colon := p.advance()
			prop.Colon = &colon

			if p.at(syntax.FunctionKeyword) {
				prop.Value = p.funcExpr()
			} else {
				prop.Value = p.expression()
			}
		}

		n.Properties = append(n.Properties, prop)

		if !p.at(syntax.CommaToken) {
			break
		}

		p.advance()
	}

	n.Close = p.expect(syntax.RightBraceToken)

	return n
}

func (p *Parser) funcExpr() *syntax.FuncExpr {
	n := &syntax.FuncExpr{
		Fn:        p.expect(syntax.FunctionKeyword),
		OpenParen: p.expect(syntax.LeftParenthesisToken),
	}

	n.Parameters = p.params()
	n.CloseParen = p.expect(syntax.RightParenthesisToken)
	n.Body = p.block()

	return n
}

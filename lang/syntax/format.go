package syntax

import "strings"

// Format renders an expression as compact source text. Statements and other
// nodes render as their kind.
func Format(n Node) string {
	var sb strings.Builder

	format(&sb, n)

	return sb.String()
}

func format(sb *strings.Builder, n Node) {
	switch n := n.(type) {
	case Token:
		sb.WriteString(n.Text)
	case *LiteralExpr:
		sb.WriteString(n.Literal.Text)
	case *NameExpr:
		sb.WriteString(n.Identifier.Text)
	case *BinaryExpr:
		format(sb, n.Left)
		sb.WriteString(" " + n.Operator.Text + " ")
		format(sb, n.Right)
	case *UnaryExpr:
		sb.WriteString(n.Operator.Text)
		format(sb, n.Operand)
	case *AssignExpr:
		sb.WriteString(n.Identifier.Text + " " + n.Operator.Text + " ")
		format(sb, n.Expression)
	case *ParenExpr:
		sb.WriteByte('(')
		format(sb, n.Expression)
		sb.WriteByte(')')
	case *CallExpr:
		format(sb, n.Callee)
		sb.WriteByte('(')

		for i, a := range n.Arguments {
			if i > 0 {
				sb.WriteString(", ")
			}

			format(sb, a)
		}

		sb.WriteByte(')')
	case *MemberExpr:
		sb.WriteString(n.Identifier.Text + ".")
		format(sb, n.Expression)
	case *ObjectExpr:
		if len(n.Properties) == 0 {
			sb.WriteString("{}")

			return
		}

		sb.WriteString("{ ")

		for i, p := range n.Properties {
			if i > 0 {
				sb.WriteString(", ")
			}

			sb.WriteString(p.Identifier.Text)

			if p.Value != nil {
				sb.WriteString(": ")
				format(sb, p.Value)
			}
		}

		sb.WriteString(" }")
	case *FuncExpr:
		sb.WriteString("fn(")

		for i, p := range n.Parameters {
			if i > 0 {
				sb.WriteString(", ")
			}

			sb.WriteString(p.Identifier.Text)
		}

		sb.WriteString(") {...}")
	case nil:
	default:
		sb.WriteString(n.NodeKind().String())
	}
}

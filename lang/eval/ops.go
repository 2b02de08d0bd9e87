package eval

import (
	"math"

	"github.com/ardnew/pillar/lang/runtime"
	"github.com/ardnew/pillar/lang/syntax"
)

func (e *Evaluator) unary(env *runtime.Environment, x *syntax.UnaryExpr) runtime.Value {
	v := e.expr(env, x.Operand)

	switch x.Operator.Kind {
	case syntax.MinusToken:
		if n, ok := v.(runtime.Number); ok {
			return -n
		}
	case syntax.PlusToken:
		if n, ok := v.(runtime.Number); ok {
			return n
		}
	case syntax.BangToken:
		if b, ok := v.(runtime.Boolean); ok {
			return !b
		}
	case syntax.TildeToken:
		if n, ok := v.(runtime.Number); ok {
			return runtime.Number(^toInt32(n))
		}
	}

	e.diag.InvalidUnary(x.Span())

	return runtime.Null{}
}

func (e *Evaluator) binary(env *runtime.Environment, x *syntax.BinaryExpr) runtime.Value {
	l := e.expr(env, x.Left)
	r := e.expr(env, x.Right)

	v, ok := binaryOp(x.Operator.Kind, l, r)
	if !ok {
		e.diag.InvalidBinary(x.Span(), syntax.Format(x))
	}

	return v
}

// binaryOp applies op to l and r. When the operands are unacceptable it
// returns false along with the value the expression still evaluates to.
func binaryOp(op syntax.Kind, l, r runtime.Value) (runtime.Value, bool) {
	switch op {
	case syntax.PlusToken:
		if l.Kind() == runtime.KindString || r.Kind() == runtime.KindString {
			return runtime.String(l.String() + r.String()), true
		}

	case syntax.EqualsEqualsToken:
		eq, ok := runtime.Equal(l, r)

		return runtime.Boolean(eq), ok

	case syntax.BangEqualsToken:
		eq, ok := runtime.Equal(l, r)

		return runtime.Boolean(!eq), ok

	case syntax.AmpersandAmpersandToken, syntax.PipePipeToken:
		a, lok := l.(runtime.Boolean)
		b, rok := r.(runtime.Boolean)

		if !lok || !rok {
			return runtime.Boolean(false), false
		}

		if op == syntax.AmpersandAmpersandToken {
			return a && b, true
		}

		return a || b, true
	}

	a, lok := l.(runtime.Number)
	b, rok := r.(runtime.Number)

	if !lok || !rok {
		switch op {
		case syntax.LessToken, syntax.LessEqualsToken,
			syntax.GreaterToken, syntax.GreaterEqualsToken:
			return runtime.Boolean(false), false
		default:
			return runtime.Null{}, false
		}
	}

	switch op {
	case syntax.PlusToken:
		return a + b, true
	case syntax.MinusToken:
		return a - b, true
	case syntax.StarToken:
		return a * b, true
	case syntax.SlashToken:
		return a / b, true
	case syntax.PercentToken:
		return runtime.Number(math.Mod(float64(a), float64(b))), true
	case syntax.LessToken:
		return runtime.Boolean(a < b), true
	case syntax.LessEqualsToken:
		return runtime.Boolean(a <= b), true
	case syntax.GreaterToken:
		return runtime.Boolean(a > b), true
	case syntax.GreaterEqualsToken:
		return runtime.Boolean(a >= b), true
	case syntax.AmpersandToken:
		return runtime.Number(toInt32(a) & toInt32(b)), true
	case syntax.PipeToken:
		return runtime.Number(toInt32(a) | toInt32(b)), true
	case syntax.CaretToken:
		return runtime.Number(toInt32(a) ^ toInt32(b)), true
	default:
		return runtime.Null{}, false
	}
}

// toInt32 truncates n and wraps it into the int32 range.
func toInt32(n runtime.Number) int32 {
	f := math.Trunc(float64(n))
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}

	return int32(uint32(int64(math.Mod(f, 1<<32))))
}

// compound maps a compound assignment operator to its binary operator.
var compound = map[syntax.Kind]syntax.Kind{
	syntax.PlusEqualsToken:      syntax.PlusToken,
	syntax.MinusEqualsToken:     syntax.MinusToken,
	syntax.StarEqualsToken:      syntax.StarToken,
	syntax.SlashEqualsToken:     syntax.SlashToken,
	syntax.PercentEqualsToken:   syntax.PercentToken,
	syntax.AmpersandEqualsToken: syntax.AmpersandToken,
	syntax.PipeEqualsToken:      syntax.PipeToken,
	syntax.CaretEqualsToken:     syntax.CaretToken,
}

func (e *Evaluator) assign(env *runtime.Environment, x *syntax.AssignExpr) runtime.Value {
	v := e.expr(env, x.Expression)
	name := x.Identifier.Text

	cur, ok := env.Resolve(name)
	if !ok {
		e.diag.NeverDeclared(x.Span(), name)

		return v
	}

	if env.IsConstant(name) {
		e.diag.ConstantReassigned(x.Span(), name)

		return cur
	}

	next, ok := assignOp(x.Operator.Kind, cur, v)
	if !ok {
		e.diag.InvalidAssignment(x.Span(), syntax.Format(x))

		return cur
	}

	// An object keeps its identity so that every reference sees the change.
	if dst, isObj := cur.(*runtime.Object); isObj {
		if src, ok := next.(*runtime.Object); ok {
			dst.Replace(src)

			return dst
		}
	}

	_ = env.Assign(name, next)

	return next
}

// assignOp computes the new value of a variable holding cur.
func assignOp(op syntax.Kind, cur, v runtime.Value) (runtime.Value, bool) {
	switch op {
	case syntax.EqualsToken:
		// A variable declared without an initializer accepts any kind.
		if cur.Kind() != v.Kind() && cur.Kind() != runtime.KindNull {
			return nil, false
		}

		return v, true

	case syntax.BangEqualsToken:
		_, cok := cur.(runtime.Boolean)
		b, vok := v.(runtime.Boolean)

		if !cok || !vok {
			return nil, false
		}

		return !b, true

	case syntax.PlusEqualsToken:
		if cur.Kind() == runtime.KindString {
			if v.Kind() != runtime.KindString && v.Kind() != runtime.KindNumber {
				return nil, false
			}

			return binaryOp(syntax.PlusToken, cur, v)
		}
	}

	bin, ok := compound[op]
	if !ok || cur.Kind() != runtime.KindNumber || v.Kind() != runtime.KindNumber {
		return nil, false
	}

	return binaryOp(bin, cur, v)
}

package eval

import (
	"log/slog"

	"github.com/ardnew/pillar/lang/diag"
	"github.com/ardnew/pillar/lang/runtime"
	"github.com/ardnew/pillar/lang/syntax"
)

func (e *Evaluator) expr(env *runtime.Environment, x syntax.Expression) runtime.Value {
	switch x := x.(type) {
	case *syntax.LiteralExpr:
		return e.literal(x)
	case *syntax.NameExpr:
		return e.name(env, x)
	case *syntax.ParenExpr:
		return e.expr(env, x.Expression)
	case *syntax.UnaryExpr:
		return e.unary(env, x)
	case *syntax.BinaryExpr:
		return e.binary(env, x)
	case *syntax.AssignExpr:
		return e.assign(env, x)
	case *syntax.CallExpr:
		callee, _ := env.Resolve(x.Callee.Identifier.Text)

		return e.call(env, callee, x)
	case *syntax.MemberExpr:
		return e.memberAccess(env, x)
	case *syntax.ObjectExpr:
		return e.object(env, x)
	case *syntax.FuncExpr:
		return &runtime.Function{
			Params:  params(x.Parameters),
			Body:    x.Body,
			Closure: env,
		}
	case nil:
		return runtime.Null{}
	default:
		e.diag.NotImplemented(x.Span(), x.NodeKind())

		return runtime.Null{}
	}
}

func (e *Evaluator) literal(x *syntax.LiteralExpr) runtime.Value {
	switch v := x.Value.(type) {
	case bool:
		return runtime.Boolean(v)
	case float64:
		return runtime.Number(v)
	case string:
		return runtime.String(v)
	default:
		e.diag.InvalidLiteral(x.Span())

		return runtime.Null{}
	}
}

func (e *Evaluator) name(env *runtime.Environment, x *syntax.NameExpr) runtime.Value {
	// A missing identifier was already reported by the parser.
	if x.Identifier.Missing() {
		return runtime.Null{}
	}

	v, ok := env.Resolve(x.Identifier.Text)
	if !ok {
		e.diag.UndefinedVariable(x.Span(), x.Identifier.Text)

		return runtime.Null{}
	}

	return v
}

func (e *Evaluator) object(env *runtime.Environment, x *syntax.ObjectExpr) runtime.Value {
	obj := runtime.NewObject()

	for _, p := range x.Properties {
		key := p.Identifier.Text
		if key == "" {
			continue
		}

		if obj.Has(key) {
			e.diag.DuplicateProperty(p.Identifier.Location, key)

			continue
		}

		var v runtime.Value

		if p.Value == nil {
			// Shorthand { name } copies the variable of the same name.
			v = e.name(env, &syntax.NameExpr{Identifier: p.Identifier})
		} else {
			v = e.expr(env, p.Value)
		}

		if f, ok := v.(*runtime.Function); ok && f.Name == "" {
			f.Name = key
		}

		obj.Set(key, v)
	}

	return obj
}

// call evaluates the arguments of x in env and applies callee to them.
// A nil callee means the name did not resolve.
func (e *Evaluator) call(
	env *runtime.Environment,
	callee runtime.Value,
	x *syntax.CallExpr,
) runtime.Value {
	name := x.Callee.Identifier.Text

	args := make([]runtime.Value, len(x.Arguments))
	for i, a := range x.Arguments {
		args[i] = e.expr(env, a)
	}

	switch f := callee.(type) {
	case nil:
		if !x.Callee.Identifier.Missing() {
			e.diag.UndefinedVariable(x.Span(), name)
		}

		return runtime.Null{}

	case *runtime.Native:
		node, err := f.Fn(args)
		if err != nil {
			e.logger.DebugContext(e.ctx, "native call rejected",
				slog.String("name", f.Name),
				slog.Any("error", err),
			)
			e.diag.InvalidCall(x.Span(), name)

			return runtime.Null{}
		}

		e.emit(node)

		return runtime.Null{}

	case *runtime.Function:
		return e.apply(f, args, x.Span())

	default:
		e.diag.InvalidCall(x.Span(), name)

		return runtime.Null{}
	}
}

// apply runs a user function in a new scope nested in its closure. Missing
// arguments bind to null and extra arguments are dropped.
func (e *Evaluator) apply(f *runtime.Function, args []runtime.Value, at diag.Location) runtime.Value {
	if e.depth >= e.maxDepth {
		e.diag.Errorf(at, "Maximum call depth %d exceeded calling '%s'.", e.maxDepth, f.Name)

		return runtime.Null{}
	}

	e.depth++
	defer func() { e.depth-- }()

	scope := f.Closure.Child()

	for i, p := range f.Params {
		var v runtime.Value = runtime.Null{}
		if i < len(args) {
			v = args[i]
		}

		if err := scope.Declare(p, v, false); err != nil {
			e.diag.AlreadyDeclared(at, p)
		}
	}

	switch r := e.block(scope, f.Body).(type) {
	case runtime.Return:
		return runtime.Unwrap(r)
	case runtime.Break, runtime.Continue:
		return runtime.Null{}
	default:
		return r
	}
}

// memberAccess evaluates a.b, a.b.c, and a.b(...). Each receiver along the
// chain must be an object.
func (e *Evaluator) memberAccess(env *runtime.Environment, x *syntax.MemberExpr) runtime.Value {
	recv, ok := env.Resolve(x.Identifier.Text)
	if !ok {
		e.diag.UndefinedVariable(x.Span(), x.Identifier.Text)

		return runtime.Null{}
	}

	obj, ok := recv.(*runtime.Object)
	if !ok {
		e.diag.InvalidMemberAccess(x.Span(), syntax.Format(x))

		return runtime.Null{}
	}

	for rest := x.Expression; ; {
		switch r := rest.(type) {
		case *syntax.MemberExpr:
			next, ok := obj.Get(r.Identifier.Text)
			if !ok {
				e.diag.InvalidMemberAccess(r.Span(), syntax.Format(x))

				return runtime.Null{}
			}

			if obj, ok = next.(*runtime.Object); !ok {
				e.diag.InvalidMemberAccess(r.Span(), syntax.Format(x))

				return runtime.Null{}
			}

			rest = r.Expression

		case *syntax.NameExpr:
			v, ok := obj.Get(r.Identifier.Text)
			if !ok {
				e.diag.InvalidMemberAccess(r.Span(), syntax.Format(x))

				return runtime.Null{}
			}

			return v

		case *syntax.CallExpr:
			v, ok := obj.Get(r.Callee.Identifier.Text)
			if !ok {
				e.diag.InvalidMemberAccess(r.Span(), syntax.Format(x))

				return runtime.Null{}
			}

			return e.call(env, v, r)

		default:
			e.diag.InvalidMemberAccess(x.Span(), syntax.Format(x))

			return runtime.Null{}
		}
	}
}

package eval

import (
	"github.com/ardnew/pillar/lang/runtime"
	"github.com/ardnew/pillar/lang/syntax"
)

func (e *Evaluator) stmt(env *runtime.Environment, s syntax.Statement) runtime.Value {
	switch s := s.(type) {
	case *syntax.BlockStmt:
		return e.block(env.Child(), s)
	case *syntax.IfStmt:
		return e.ifStmt(env, s)
	case *syntax.WhileStmt:
		return e.whileStmt(env, s)
	case *syntax.ForStmt:
		return e.forStmt(env, s)
	case *syntax.BreakStmt:
		return runtime.Break{}
	case *syntax.ContinueStmt:
		return runtime.Continue{}
	case *syntax.ReturnStmt:
		if s.Expression == nil {
			return runtime.Return{Value: runtime.Null{}}
		}

		return runtime.Return{Value: e.expr(env, s.Expression)}
	case *syntax.VarDecl:
		return e.varDecl(env, s, false)
	case *syntax.FuncDecl:
		return e.funcDecl(env, s)
	case *syntax.ExprStmt:
		return e.expr(env, s.Expression)
	default:
		e.diag.NotImplemented(s.Span(), s.NodeKind())

		return runtime.Null{}
	}
}

// block runs statements in env. Break, Continue, and Return stop the block
// and are passed up unchanged for the enclosing loop or call to handle.
func (e *Evaluator) block(env *runtime.Environment, b *syntax.BlockStmt) runtime.Value {
	var result runtime.Value = runtime.Null{}

	if b == nil {
		return result
	}

	for _, s := range b.Statements {
		result = e.stmt(env, s)

		switch result.(type) {
		case runtime.Break, runtime.Continue, runtime.Return:
			return result
		}
	}

	return result
}

func (e *Evaluator) ifStmt(env *runtime.Environment, s *syntax.IfStmt) runtime.Value {
	if cond, ok := e.expr(env, s.Condition).(runtime.Boolean); ok && bool(cond) {
		return e.block(env.Child(), s.Then)
	}

	if s.Else == nil {
		return runtime.Null{}
	}

	return e.stmt(env, s.Else.Statement)
}

func (e *Evaluator) whileStmt(env *runtime.Environment, s *syntax.WhileStmt) runtime.Value {
	for !e.canceled() {
		cond, ok := e.expr(env, s.Condition).(runtime.Boolean)
		if !ok {
			e.diag.InvalidWhile(s.Span())

			break
		}

		if !cond {
			break
		}

		switch r := e.block(env.Child(), s.Body).(type) {
		case runtime.Break:
			return runtime.Null{}
		case runtime.Return:
			return r
		}
	}

	return runtime.Null{}
}

func (e *Evaluator) forStmt(env *runtime.Environment, s *syntax.ForStmt) runtime.Value {
	name := s.Identifier.Text

	lower, lok := e.expr(env, s.Lower).(runtime.Number)
	upper, uok := e.expr(env, s.Upper).(runtime.Number)

	if !lok || !uok {
		e.diag.InvalidFor(s.Span(), name)

		return runtime.Null{}
	}

	scope := env.Child()
	_ = scope.Declare(name, lower, false)

	for !e.canceled() {
		i, ok := scope.Resolve(name)

		n, isNum := i.(runtime.Number)
		if !ok || !isNum {
			e.diag.InvalidFor(s.Identifier.Location, name)

			break
		}

		if n >= upper {
			break
		}

		switch r := e.block(scope.Child(), s.Body).(type) {
		case runtime.Break:
			return runtime.Null{}
		case runtime.Return:
			return r
		}

		// The body may have assigned the loop variable.
		if i, _ = scope.Resolve(name); i.Kind() == runtime.KindNumber {
			_ = scope.Assign(name, i.(runtime.Number)+1)
		}
	}

	return runtime.Null{}
}

func (e *Evaluator) varDecl(
	env *runtime.Environment,
	d *syntax.VarDecl,
	exported bool,
) runtime.Value {
	var v runtime.Value = runtime.Null{}

	if d.Initializer != nil {
		v = e.expr(env, d.Initializer)
	}

	name := d.Identifier.Text
	if name == "" {
		return v
	}

	if f, ok := v.(*runtime.Function); ok && f.Name == "" {
		f.Name = name
	}

	declare := env.Declare
	if exported {
		declare = env.DeclareExported
	}

	if err := declare(name, v, d.Constant); err != nil {
		e.diag.AlreadyDeclared(d.Identifier.Location, name)
	}

	return v
}

func (e *Evaluator) funcDecl(env *runtime.Environment, d *syntax.FuncDecl) runtime.Value {
	f := &runtime.Function{
		Name:    d.Identifier.Text,
		Params:  params(d.Parameters),
		Body:    d.Body,
		Closure: env,
	}

	if err := env.Declare(f.Name, f, false); err != nil {
		e.diag.AlreadyDeclared(d.Identifier.Location, f.Name)
	}

	return runtime.Null{}
}

func params(ps []syntax.Param) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Identifier.Text
	}

	return out
}

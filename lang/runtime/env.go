package runtime

import (
	"errors"
	"maps"
	"slices"
)

var (
	ErrAlreadyDeclared = errors.New("already declared")
	ErrNotDeclared     = errors.New("never declared")
	ErrConstant        = errors.New("constant cannot be reassigned")
)

type binding struct {
	value    Value
	constant bool
	exported bool
}

// Environment is one lexical scope. Lookups that miss in a scope continue in
// its parent.
type Environment struct {
	parent *Environment
	vars   map[string]*binding
}

// NewEnvironment returns an empty root scope.
func NewEnvironment() *Environment {
	return &Environment{vars: make(map[string]*binding)}
}

// Child returns a new scope nested in e.
func (e *Environment) Child() *Environment {
	return &Environment{parent: e, vars: make(map[string]*binding)}
}

// Parent returns the enclosing scope, or nil for a root scope.
func (e *Environment) Parent() *Environment { return e.parent }

// Declare binds name in this scope. Only this scope is checked for an
// existing binding, so a child scope may shadow its parents.
func (e *Environment) Declare(name string, v Value, constant bool) error {
	return e.declare(name, v, constant, false)
}

// DeclareExported binds name like [Environment.Declare] and marks it
// exported.
func (e *Environment) DeclareExported(name string, v Value, constant bool) error {
	return e.declare(name, v, constant, true)
}

func (e *Environment) declare(name string, v Value, constant, exported bool) error {
	if _, ok := e.vars[name]; ok {
		return ErrAlreadyDeclared
	}

	e.vars[name] = &binding{value: v, constant: constant, exported: exported}

	return nil
}

func (e *Environment) lookup(name string) *binding {
	for s := e; s != nil; s = s.parent {
		if b, ok := s.vars[name]; ok {
			return b
		}
	}

	return nil
}

// Resolve returns the value bound to name in the nearest scope.
func (e *Environment) Resolve(name string) (Value, bool) {
	if b := e.lookup(name); b != nil {
		return b.value, true
	}

	return nil, false
}

// Has reports whether name is visible from e.
func (e *Environment) Has(name string) bool { return e.lookup(name) != nil }

// Declared reports whether name is bound in this scope itself.
func (e *Environment) Declared(name string) bool {
	_, ok := e.vars[name]

	return ok
}

// IsConstant reports whether the nearest binding of name is constant.
func (e *Environment) IsConstant(name string) bool {
	b := e.lookup(name)

	return b != nil && b.constant
}

// IsExported reports whether the nearest binding of name is exported.
func (e *Environment) IsExported(name string) bool {
	b := e.lookup(name)

	return b != nil && b.exported
}

// Assign updates the binding of name in the scope that owns it.
func (e *Environment) Assign(name string, v Value) error {
	b := e.lookup(name)

	switch {
	case b == nil:
		return ErrNotDeclared
	case b.constant:
		return ErrConstant
	}

	b.value = v

	return nil
}

// Merge copies every binding of other's own scope into e, replacing any of
// the same name. Constant and exported flags are copied with the values.
func (e *Environment) Merge(other *Environment) {
	if other == nil || other == e {
		return
	}

	for name, b := range other.vars {
		cp := *b
		e.vars[name] = &cp
	}
}

// Names returns every name visible from e, sorted.
func (e *Environment) Names() []string {
	seen := make(map[string]struct{})

	for s := e; s != nil; s = s.parent {
		for name := range s.vars {
			seen[name] = struct{}{}
		}
	}

	return slices.Sorted(maps.Keys(seen))
}

// Exports returns the exported names of this scope, sorted.
func (e *Environment) Exports() []string {
	var out []string

	for name, b := range e.vars {
		if b.exported {
			out = append(out, name)
		}
	}

	slices.Sort(out)

	return out
}

package lang

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/ardnew/pillar/lang/diag"
	"github.com/ardnew/pillar/lang/emit"
	"github.com/ardnew/pillar/lang/eval"
	"github.com/ardnew/pillar/lang/runtime"
	"github.com/ardnew/pillar/lang/syntax"
	"github.com/ardnew/pillar/log"
)

// Option configures parsing and compilation.
type Option func(*options)

type options struct {
	env        *runtime.Environment
	logger     log.Logger
	dir        string
	defines    []Define
	processEnv []string
}

func makeOptions(opts ...Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithDir sets the directory relative imports resolve against when the
// source did not come from a file.
func WithDir(dir string) Option {
	return func(o *options) { o.dir = dir }
}

// WithEnvironment compiles into env, keeping every binding it already has.
func WithEnvironment(env *runtime.Environment) Option {
	return func(o *options) { o.env = env }
}

// WithDefines declares each define as a constant before compiling.
func WithDefines(defs ...Define) Option {
	return func(o *options) { o.defines = append(o.defines, defs...) }
}

// WithProcessEnv sets the variables visible to the env() function of define
// expressions. The format is []string{"KEY=VALUE", ...}. If nil, os.Environ()
// is used.
func WithProcessEnv(env []string) Option {
	return func(o *options) { o.processEnv = env }
}

// Result is the outcome of compiling a source.
type Result struct {
	Value        runtime.Value
	Environment  *runtime.Environment
	Instructions *emit.Unit
	Diagnostics  *diag.Bag
}

// Compile evaluates src and collects the instructions it produces. The
// result is returned even when compilation fails so that the caller can
// report its diagnostics; the error then wraps [ErrCompile].
func Compile(ctx context.Context, src *Source, opts ...Option) (*Result, error) {
	o := makeOptions(opts...)

	env := o.env
	if env == nil {
		env = runtime.NewEnvironment()
	}

	if err := Declare(env, o.processEnv, o.defines...); err != nil {
		return nil, err
	}

	dir := o.dir
	if dir == "" {
		dir = "."
	}

	e := eval.New(
		eval.WithEnvironment(env),
		eval.WithDir(dir),
		eval.WithLogger(o.logger),
		eval.WithLoader(loader(opts...)),
	)

	e.Diagnostics().Merge(src.Diagnostics())

	res := &Result{
		Value:        e.Evaluate(ctx, src.Unit),
		Environment:  env,
		Instructions: e.Instructions(),
		Diagnostics:  e.Diagnostics(),
	}

	o.logger.DebugContext(ctx, "compiled",
		slog.Int("instructions", res.Instructions.Len()),
		slog.Int("diagnostics", res.Diagnostics.Len()),
	)

	if err := ctx.Err(); err != nil {
		return res, ErrCompile.Wrap(context.Cause(ctx))
	}

	if res.Diagnostics.HasErrors() {
		return res, ErrCompile.With(slog.Int("diagnostics", res.Diagnostics.Len()))
	}

	return res, nil
}

// CompileFile loads the file at path and compiles it. Imports resolve
// relative to the file's directory.
func CompileFile(ctx context.Context, path string, opts ...Option) (*Result, error) {
	src, err := Load(ctx, path, opts...)
	if err != nil {
		return nil, err
	}

	return Compile(ctx, src, append(opts, WithDir(filepath.Dir(path)))...)
}

// loader reads imported files through the parse cache.
func loader(opts ...Option) eval.Loader {
	return func(ctx context.Context, path string) (*syntax.Unit, *diag.Bag, error) {
		src, err := Load(ctx, path, opts...)
		if err != nil {
			return nil, nil, err
		}

		return src.Unit, src.Diagnostics(), nil
	}
}

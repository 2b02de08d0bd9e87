package eval

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ardnew/pillar/lang/diag"
	"github.com/ardnew/pillar/lang/emit"
	"github.com/ardnew/pillar/lang/parser"
	"github.com/ardnew/pillar/lang/runtime"
	"github.com/ardnew/pillar/lang/syntax"
	"github.com/ardnew/pillar/log"
)

// DefaultMaxDepth limits the nesting of function calls.
const DefaultMaxDepth = 256

// Loader reads and parses the source file at path for an import.
type Loader func(ctx context.Context, path string) (*syntax.Unit, *diag.Bag, error)

// ReadFile is the default [Loader]. It reads path from disk and parses it.
func ReadFile(ctx context.Context, path string) (*syntax.Unit, *diag.Bag, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}

	unit, bag := parser.Parse(string(b))

	return unit, bag, nil
}

// Evaluator evaluates compilation units against a persistent environment.
// It is not safe for concurrent use.
type Evaluator struct {
	ctx       context.Context
	env       *runtime.Environment
	loader    Loader
	importing map[string]bool
	out       emit.Unit
	logger    log.Logger
	dir       string
	diag      diag.Bag
	depth     int
	maxDepth  int
}

// Option configures an [Evaluator].
type Option func(*Evaluator)

// WithLogger traces evaluation to logger.
func WithLogger(logger log.Logger) Option {
	return func(e *Evaluator) { e.logger = logger }
}

// WithEnvironment evaluates in env instead of a new root environment.
func WithEnvironment(env *runtime.Environment) Option {
	return func(e *Evaluator) {
		if env != nil {
			e.env = env
		}
	}
}

// WithDir sets the directory that relative file imports resolve against.
func WithDir(dir string) Option {
	return func(e *Evaluator) { e.dir = dir }
}

// WithLoader replaces [ReadFile] as the source of imported files.
func WithLoader(loader Loader) Option {
	return func(e *Evaluator) {
		if loader != nil {
			e.loader = loader
		}
	}
}

// WithMaxDepth limits the nesting of function calls.
func WithMaxDepth(depth int) Option {
	return func(e *Evaluator) {
		if depth > 0 {
			e.maxDepth = depth
		}
	}
}

// New returns an Evaluator with an empty root environment.
func New(opts ...Option) *Evaluator {
	e := &Evaluator{
		env:       runtime.NewEnvironment(),
		loader:    ReadFile,
		importing: make(map[string]bool),
		maxDepth:  DefaultMaxDepth,
		dir:       ".",
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Environment returns the root environment.
func (e *Evaluator) Environment() *runtime.Environment { return e.env }

// Diagnostics returns every problem reported so far.
func (e *Evaluator) Diagnostics() *diag.Bag { return &e.diag }

// Instructions returns every instruction recorded so far.
func (e *Evaluator) Instructions() *emit.Unit { return &e.out }

// Evaluate runs the members of unit in order and returns the value of the
// last one. Instructions and diagnostics accumulate across calls.
func (e *Evaluator) Evaluate(ctx context.Context, unit *syntax.Unit) runtime.Value {
	if ctx == nil {
		ctx = context.Background()
	}

	prev := e.ctx
	e.ctx = ctx

	defer func() { e.ctx = prev }()

	if unit == nil {
		return runtime.Null{}
	}

	e.logger.TraceContext(ctx, "evaluate",
		slog.Int("members", len(unit.Members)),
		slog.String("dir", e.dir),
	)

	before := e.out.Len()
	result := e.members(unit.Members)

	e.logger.DebugContext(ctx, "evaluated",
		slog.Int("instructions", e.out.Len()-before),
		slog.Int("diagnostics", e.diag.Len()),
		slog.String("result", result.Kind().String()),
	)

	return result
}

func (e *Evaluator) members(ms []syntax.Member) runtime.Value {
	var result runtime.Value = runtime.Null{}

	for _, m := range ms {
		if e.canceled() {
			break
		}

		result = runtime.Unwrap(e.member(m))
	}

	return result
}

func (e *Evaluator) member(m syntax.Member) runtime.Value {
	switch m := m.(type) {
	case *syntax.ImportDecl:
		return e.importDecl(m)

	case *syntax.ExportDecl:
		d, ok := m.Statement.(*syntax.VarDecl)
		if !ok {
			e.diag.InvalidExport(m.Statement.Span(), m.Statement.NodeKind())

			return runtime.Null{}
		}

		return e.varDecl(e.env, d, true)

	case *syntax.FuncDecl:
		return e.funcDecl(e.env, m)

	case *syntax.GlobalStmt:
		return e.stmt(e.env, m.Statement)

	default:
		e.diag.NotImplemented(m.Span(), m.NodeKind())

		return runtime.Null{}
	}
}

// canceled reports whether the evaluation context is done. Loops check it
// so that a runaway program can be interrupted.
func (e *Evaluator) canceled() bool {
	return e.ctx != nil && e.ctx.Err() != nil
}

// emit records an instruction produced by a native call.
func (e *Evaluator) emit(n emit.Node) {
	if n == nil {
		return
	}

	e.out.Append(n)

	if line, ok := emit.Line(n); ok {
		e.logger.TraceContext(e.ctx, "emit", slog.String("instruction", line))
	}
}

// resolveImport returns the absolute path of a file import.
func (e *Evaluator) resolveImport(path string) string {
	if !filepath.IsAbs(path) {
		path = filepath.Join(e.dir, path)
	}

	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}

	return filepath.Clean(path)
}

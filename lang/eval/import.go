package eval

import (
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/ardnew/pillar/lang/builtin"
	"github.com/ardnew/pillar/lang/parser"
	"github.com/ardnew/pillar/lang/runtime"
	"github.com/ardnew/pillar/lang/syntax"
	"github.com/ardnew/pillar/pkg"
)

func (e *Evaluator) importDecl(d *syntax.ImportDecl) runtime.Value {
	switch s := d.Specifier.(type) {
	case *syntax.NameExpr:
		e.importLibrary(s)

	case *syntax.LiteralExpr:
		path, ok := s.Value.(string)
		if !ok {
			e.diag.InvalidImport(s.Span(), s.Literal.Text)

			return runtime.Null{}
		}

		if !strings.HasSuffix(path, pkg.Extension) {
			e.diag.InvalidImport(s.Span(), path)

			return runtime.Null{}
		}

		e.importFile(s, path)

	case nil:
		e.diag.InvalidImport(d.Span(), "")

	default:
		e.diag.InvalidImportKind(s.Span(), s.NodeKind())
	}

	return runtime.Null{}
}

// importLibrary declares a built-in library. Importing a name that is
// already visible does nothing.
func (e *Evaluator) importLibrary(s *syntax.NameExpr) {
	name := s.Identifier.Text

	if !builtin.IsLibrary(name) {
		e.diag.InvalidImport(s.Span(), name)

		return
	}

	if e.env.Has(name) {
		return
	}

	e.logger.TraceContext(e.ctx, "import library", slog.String("name", name))

	if decls, ok := builtin.Declarations(name); ok {
		for _, d := range decls {
			if !e.env.Has(d.Name) {
				_ = e.env.Declare(d.Name, d.Value, true)
			}
		}

		return
	}

	src, _ := builtin.Source(name)
	unit, bag := parser.Parse(src)

	e.diag.Merge(bag)
	e.evaluateIn(unit, e.dir)
}

// importFile evaluates another source file and merges its bindings into the
// importing scope. A file is evaluated at most once per Evaluator.
func (e *Evaluator) importFile(s *syntax.LiteralExpr, path string) {
	abs := e.resolveImport(path)

	done, seen := e.importing[abs]

	switch {
	case seen && !done:
		e.diag.CircularImport(s.Span(), path)

		return
	case seen:
		return
	}

	e.logger.TraceContext(e.ctx, "import file", slog.String("path", abs))

	unit, bag, err := e.loader(e.ctx, abs)
	if err != nil {
		e.logger.DebugContext(e.ctx, "import failed",
			slog.String("path", abs),
			slog.Any("error", err),
		)
		e.diag.InvalidImport(s.Span(), path)

		return
	}

	e.importing[abs] = false
	defer func() { e.importing[abs] = true }()

	e.diag.Merge(bag)
	e.evaluateIn(unit, filepath.Dir(abs))
}

// evaluateIn runs unit in a child of the current environment, so the unit
// sees the importer's bindings. The child's own bindings are then copied
// into the current one. Instructions and diagnostics are recorded
// directly on e.
func (e *Evaluator) evaluateIn(unit *syntax.Unit, dir string) {
	env, prevDir := e.env, e.dir
	lib := env.Child()

	e.env, e.dir = lib, dir

	defer func() {
		e.env, e.dir = env, prevDir
		env.Merge(lib)
	}()

	e.members(unit.Members)
}

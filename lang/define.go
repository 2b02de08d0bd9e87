package lang

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/expr-lang/expr"

	pill "github.com/ardnew/pillar/lang/runtime"
	"github.com/ardnew/pillar/lang/syntax"
)

// Define is a constant supplied from outside the program, written
// NAME=EXPR. The expression is evaluated with expr-lang and may refer to
// earlier defines, the env() function, and the platform and arch strings.
type Define struct {
	Name string
	Expr string
}

// ParseDefine splits s at its first '='. The name must be a valid
// identifier that is not a keyword.
func ParseDefine(s string) (Define, error) {
	name, src, ok := strings.Cut(s, "=")
	name = strings.TrimSpace(name)

	if !ok || !isIdentifier(name) {
		return Define{}, ErrDefine.With(slog.String("define", s))
	}

	return Define{Name: name, Expr: strings.TrimSpace(src)}, nil
}

func (d Define) String() string { return d.Name + "=" + d.Expr }

func isIdentifier(s string) bool {
	if s == "" || syntax.Keyword(s) != syntax.IdentifierToken {
		return false
	}

	for i, r := range s {
		letter := r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		if !letter && (i == 0 || r < '0' || r > '9') {
			return false
		}
	}

	return true
}

// Declare evaluates defs in order and declares each as a constant in env.
// processEnv backs the env() function; if nil, os.Environ() is used.
func Declare(env *pill.Environment, processEnv []string, defs ...Define) error {
	if len(defs) == 0 {
		return nil
	}

	vars := map[string]any{
		"env":      envFunc(buildProcessEnvMap(processEnv)),
		"platform": runtime.GOOS,
		"arch":     runtime.GOARCH,
	}

	for _, d := range defs {
		out, err := expr.Eval(d.Expr, vars)
		if err != nil {
			return ErrDefine.Wrap(err).With(slog.String("define", d.String()))
		}

		v, ok := pill.FromGo(out)
		if !ok {
			return ErrDefineValue.With(
				slog.String("define", d.String()),
				slog.String("type", fmt.Sprintf("%T", out)),
			)
		}

		if err := env.Declare(d.Name, v, true); err != nil {
			return ErrDefine.Wrap(err).With(slog.String("define", d.String()))
		}

		vars[d.Name] = out
	}

	return nil
}

// buildProcessEnvMap converts a "KEY=VALUE" string slice to a map.
// If envList is nil, os.Environ() is used.
func buildProcessEnvMap(envList []string) map[string]string {
	if envList == nil {
		envList = os.Environ()
	}

	result := make(map[string]string, len(envList))

	for _, entry := range envList {
		if key, value, ok := strings.Cut(entry, "="); ok {
			result[key] = value
		}
	}

	return result
}

// envFunc returns the built-in env() function that provides
// process environment access to expr programs.
func envFunc(processEnv map[string]string) func(string) string {
	return func(key string) string {
		return processEnv[key]
	}
}

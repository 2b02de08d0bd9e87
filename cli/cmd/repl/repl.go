package repl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/ardnew/pillar/lang"
	"github.com/ardnew/pillar/lang/emit"
	"github.com/ardnew/pillar/log"
	"github.com/ardnew/pillar/pkg"
)

type config struct {
	in      io.Reader
	out     io.Writer
	err     io.Writer
	logger  log.Logger
	history string
	dir     string
	defines []lang.Define
	plain   bool
}

// Option configures a session and its frontend.
type Option func(*config)

func makeConfig(opts ...Option) config {
	c := config{in: os.Stdin, out: os.Stdout, err: os.Stderr, dir: "."}
	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}

	return c
}

// WithStreams sets the streams the frontend reads from and writes to. Nil
// arguments keep the process's standard streams.
func WithStreams(in io.Reader, out, err io.Writer) Option {
	return func(c *config) {
		if in != nil {
			c.in = in
		}

		if out != nil {
			c.out = out
		}

		if err != nil {
			c.err = err
		}
	}
}

// WithLogger sets the logger for trace-level debugging.
func WithLogger(logger log.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithHistory sets the file entered lines are saved to.
func WithHistory(path string) Option {
	return func(c *config) { c.history = path }
}

// WithDir sets the directory relative imports resolve against.
func WithDir(dir string) Option {
	return func(c *config) { c.dir = dir }
}

// WithDefines declares each define as a constant whenever the session's
// environment is created.
func WithDefines(defs ...lang.Define) Option {
	return func(c *config) { c.defines = append(c.defines, defs...) }
}

// WithPlain selects the line editor even on a terminal.
func WithPlain(plain bool) Option {
	return func(c *config) { c.plain = plain }
}

const (
	evalPrompt = "➜ "
	contPrompt = "… "
)

func banner() string {
	return fmt.Sprintf("%s REPL v%s\nType 'help' for commands, Ctrl+D to exit.\n",
		pkg.Name, pkg.Version)
}

func helpMessage() string {
	return `Commands:
  exit     Leave the session
  clear    Discard every binding and any pending input
  edit     Edit the session source in $EDITOR
  help     Print this message

Input is evaluated once every opened brace is closed.
`
}

// command returns the session command line consists of, if any. Commands
// are only recognized when no input is pending.
func (s *Session) command(line string) (string, bool) {
	if s.Pending() {
		return "", false
	}

	word := strings.TrimSpace(line)
	for _, c := range commands {
		if word == c {
			return c, true
		}
	}

	return "", false
}

// outcome splits the result of an evaluation into script lines and
// problems to show the user.
func outcome(res *lang.Result, err error) (lines, problems []string) {
	if res == nil {
		if err != nil {
			problems = append(problems, "error: "+err.Error())
		}

		return nil, problems
	}

	for d := range res.Diagnostics.All() {
		problems = append(problems, d.String())
	}

	return emit.Lines(res.Instructions), problems
}

// Run starts an interactive session. The full-screen editor is used when
// standard input is a terminal, unless [WithPlain] is given.
func Run(ctx context.Context, opts ...Option) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	c := makeConfig(opts...)

	s, err := NewSession(opts...)
	if err != nil {
		return err
	}

	history := NewHistory(c.history)
	if err := history.Load(); err != nil {
		c.logger.WarnContext(ctx, "could not load history",
			slog.String("path", c.history),
			slog.Any("error", err),
		)
	}

	c.logger.TraceContext(ctx, "repl start",
		slog.String("history", c.history),
		slog.Int("entries", history.Len()),
		slog.Bool("plain", c.plain),
	)

	if c.plain || !interactive(c.in) {
		return runLine(ctx, s, history, c)
	}

	return runTUI(ctx, s, history, c)
}

func interactive(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

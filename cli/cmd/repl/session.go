package repl

import (
	"context"
	"log/slog"
	"strings"

	"github.com/ardnew/pillar/lang"
	"github.com/ardnew/pillar/lang/lexer"
	"github.com/ardnew/pillar/lang/runtime"
	"github.com/ardnew/pillar/lang/syntax"
	"github.com/ardnew/pillar/log"
)

// Session evaluates input incrementally against one environment.
type Session struct {
	env     *runtime.Environment
	logger  log.Logger
	dir     string
	defines []lang.Define
	pending strings.Builder
	source  strings.Builder
}

// NewSession returns a session with an empty environment holding only the
// configured defines.
func NewSession(opts ...Option) (*Session, error) {
	c := makeConfig(opts...)

	s := &Session{logger: c.logger, dir: c.dir, defines: c.defines}

	return s, s.Reset()
}

// Reset discards every binding, the pending input, and the session source.
func (s *Session) Reset() error {
	s.pending.Reset()
	s.source.Reset()
	s.env = runtime.NewEnvironment()

	return lang.Declare(s.env, nil, s.defines...)
}

// Environment returns the environment input is evaluated in.
func (s *Session) Environment() *runtime.Environment { return s.env }

// Pending reports whether input is waiting for closing braces.
func (s *Session) Pending() bool { return s.pending.Len() > 0 }

// Source returns every chunk evaluated without errors since the last reset.
func (s *Session) Source() string { return s.source.String() }

// Feed appends one line of input. When the pending input is balanced it is
// evaluated and its result returned. Otherwise Feed returns nil, nil and
// keeps waiting.
func (s *Session) Feed(ctx context.Context, line string) (*lang.Result, error) {
	s.pending.WriteString(line)
	s.pending.WriteByte('\n')

	chunk := s.pending.String()
	if !Balanced(chunk) {
		return nil, nil
	}

	s.pending.Reset()

	if strings.TrimSpace(chunk) == "" {
		return nil, nil
	}

	return s.eval(ctx, chunk)
}

// Replace resets the session and evaluates text as its new source.
func (s *Session) Replace(ctx context.Context, text string) (*lang.Result, error) {
	if err := s.Reset(); err != nil {
		return nil, err
	}

	return s.eval(ctx, text)
}

func (s *Session) eval(ctx context.Context, chunk string) (*lang.Result, error) {
	src, err := lang.ParseString(ctx, chunk, lang.WithLogger(s.logger))
	if err != nil {
		return nil, err
	}

	res, err := lang.Compile(ctx, src,
		lang.WithEnvironment(s.env),
		lang.WithDir(s.dir),
		lang.WithLogger(s.logger),
	)
	if err == nil {
		s.source.WriteString(chunk)
	}

	s.logger.TraceContext(ctx, "repl eval",
		slog.Int("bytes", len(chunk)),
		slog.Bool("ok", err == nil),
	)

	return res, err
}

// Balanced reports whether every brace opened in text has been closed.
// Braces inside strings and comments do not count.
func Balanced(text string) bool {
	tokens, _ := lexer.Tokens(text)

	depth := 0

	for _, t := range tokens {
		switch t.Kind {
		case syntax.LeftBraceToken:
			depth++
		case syntax.RightBraceToken:
			depth--
		}
	}

	return depth <= 0
}

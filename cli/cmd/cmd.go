package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/ardnew/pillar/lang"
	"github.com/ardnew/pillar/log"
)

// contextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// Streams are the standard streams a command reads from and writes to.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

type streamsKey struct{}

// WithStreams returns a new context.Context whose commands use s instead of
// the process's standard streams. Nil fields keep their defaults.
func WithStreams(ctx context.Context, s Streams) context.Context {
	return context.WithValue(ctx, streamsKey{}, s)
}

// StreamsFrom returns the streams stored by [WithStreams], with the
// process's standard streams filling any that are unset.
func StreamsFrom(ctx context.Context) Streams {
	s, _ := ctx.Value(streamsKey{}).(Streams)

	if s.In == nil {
		s.In = os.Stdin
	}

	if s.Out == nil {
		s.Out = os.Stdout
	}

	if s.Err == nil {
		s.Err = os.Stderr
	}

	return s
}

type definesKey struct{}

// WithDefines returns a new context.Context carrying the constants declared
// with --define.
func WithDefines(ctx context.Context, defs []lang.Define) context.Context {
	return context.WithValue(ctx, definesKey{}, defs)
}

func definesFrom(ctx context.Context) []lang.Define {
	defs, _ := ctx.Value(definesKey{}).([]lang.Define)

	return defs
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// compileOptions returns the options shared by every command that compiles.
func compileOptions(ctx context.Context) []lang.Option {
	return []lang.Option{
		lang.WithLogger(log.Default()),
		lang.WithDefines(definesFrom(ctx)...),
	}
}

// load parses the named file, or standard input for "-".
func load(ctx context.Context, file string) (*lang.Source, error) {
	if file == stdinSource {
		return lang.ParseReader(ctx, StreamsFrom(ctx).In)
	}

	return lang.Load(ctx, file)
}

// compile compiles the named file, or standard input for "-". The result is
// non-nil whenever parsing succeeded, even if compilation reported errors.
func compile(ctx context.Context, file string) (*lang.Result, error) {
	opts := compileOptions(ctx)

	if file == stdinSource {
		src, err := load(ctx, file)
		if err != nil {
			return nil, err
		}

		dir, err := os.Getwd()
		if err != nil {
			dir = "."
		}

		return lang.Compile(ctx, src, append(opts, lang.WithDir(dir))...)
	}

	log.DebugContext(ctx, "compile", slog.String("file", file))

	return lang.CompileFile(ctx, file, opts...)
}

// report prints the diagnostics of res to the error stream.
func report(ctx context.Context, res *lang.Result) error {
	if res == nil || res.Diagnostics == nil {
		return nil
	}

	return res.Diagnostics.Print(StreamsFrom(ctx).Err)
}

// Package log is a small structured logging layer over [log/slog].
//
// A [Logger] is built once from functional options and never mutated:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatJSON),
//		log.WithTimeLayout("kitchen"))
//
//	logger.Info("compiled", slog.Int("instructions", 42))
//
// [Logger.Wrap] derives a logger with different settings and [Logger.With]
// derives one that carries extra attributes.
//
// # Levels
//
// Five levels are defined: [LevelTrace], [LevelDebug], [LevelInfo],
// [LevelWarn], and [LevelError]. Trace sits below slog's debug level and is
// used for per-node evaluator output.
//
// # Pretty output
//
// With [WithPretty] enabled (the default) records are colorized with
// lipgloss. Colors are chosen per output stream, so writing to a file or
// pipe produces plain text.
//
// # Package logger
//
// The package-level functions such as [Info] and [DebugContext] write to a
// shared logger that the CLI configures through [Config].
package log

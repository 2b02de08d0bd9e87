package log_test

import (
	"log/slog"
	"os"

	"github.com/ardnew/pillar/log"
)

func Example() {
	logger := log.Make(os.Stdout,
		log.WithPretty(false),
		log.WithTimeLayout("none"),
	)

	logger.Info("compiled", slog.String("file", "demo.pill"), slog.Int("instructions", 3))
	// Output:
	// level=INFO msg=compiled file=demo.pill instructions=3
}

func ExampleLogger_Wrap() {
	logger := log.Make(os.Stdout, log.WithPretty(false), log.WithTimeLayout("none"))
	quiet := logger.Wrap(log.WithLevel(log.LevelWarn))

	quiet.Info("dropped")
	quiet.Warn("kept")
	// Output:
	// level=WARN msg=kept
}

package cmd

import (
	"context"
	"os"

	"github.com/ardnew/pillar/cli/cmd/repl"
	"github.com/ardnew/pillar/log"
)

// Repl starts an interactive session.
type Repl struct {
	Plain bool `help:"Use the line editor even on a terminal."`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) error {
	s := StreamsFrom(ctx)

	dir, err := os.Getwd()
	if err != nil {
		dir = "."
	}

	var history string
	if ktx := kongContextFrom(ctx); ktx != nil {
		history = ktx.Model.Vars()[HistoryIdentifier]
	}

	return repl.Run(ctx,
		repl.WithStreams(s.In, s.Out, s.Err),
		repl.WithLogger(log.Default()),
		repl.WithHistory(history),
		repl.WithDir(dir),
		repl.WithDefines(definesFrom(ctx)...),
		repl.WithPlain(r.Plain),
	)
}

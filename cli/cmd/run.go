package cmd

import (
	"context"

	"github.com/ardnew/pillar/lang"
)

// Run compiles a script and prints its instructions.
type Run struct {
	File string `arg:"" default:"-" help:"Source file or '-' for stdin." name:"file" optional:""`
}

// Run executes the run command. Diagnostics go to the error stream; the
// script is only printed when there are no errors.
func (r *Run) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	res, err := compile(ctx, r.File)
	if perr := report(ctx, res); perr != nil {
		return perr
	}

	if err != nil {
		return err
	}

	return lang.WriteInstructions(ctx, StreamsFrom(ctx).Out, res.Instructions, lang.FormatText, 0)
}

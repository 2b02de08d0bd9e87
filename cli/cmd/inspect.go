package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/pillar/lang"
)

// Inspect prints the intermediate forms of a script.
type Inspect struct {
	Tokens       Tokens       `cmd:"" help:"Print the token stream."`
	AST          AST          `cmd:"" help:"Print the syntax tree."     name:"ast"`
	Instructions Instructions `cmd:"" help:"Print compiled instructions."`
}

// inspectFlags are shared by every inspect subcommand.
type inspectFlags struct {
	Format string `default:"text" enum:"${inspectFormatEnum}" help:"Output format (${enum})." short:"F"`
	Indent int    `default:"2"                               help:"Indent width of structured output."`

	File string `arg:"" default:"-" help:"Source file or '-' for stdin." name:"file" optional:""`
}

func (f *inspectFlags) format() (lang.Format, error) {
	return lang.ParseFormat(f.Format)
}

// source parses the file and prints any diagnostics. Inspection continues
// past syntax errors so that the partial result can be examined.
func (f *inspectFlags) source(ctx context.Context) (*lang.Source, error) {
	src, err := load(ctx, f.File)
	if err != nil {
		return nil, err
	}

	if err := src.Diagnostics().Print(StreamsFrom(ctx).Err); err != nil {
		return nil, err
	}

	return src, nil
}

// Tokens prints the token stream of a script.
type Tokens struct {
	Flags inspectFlags `embed:""`
}

// Run executes the tokens command.
func (t *Tokens) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	format, err := t.Flags.format()
	if err != nil {
		return err
	}

	src, err := t.Flags.source(ctx)
	if err != nil {
		return lang.WrapError(err).With(slog.String("command", "tokens"))
	}

	return lang.WriteTokens(ctx, StreamsFrom(ctx).Out, src.Tokens, format, t.Flags.Indent)
}

// AST prints the syntax tree of a script.
type AST struct {
	Flags inspectFlags `embed:""`
}

// Run executes the ast command.
func (a *AST) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	format, err := a.Flags.format()
	if err != nil {
		return err
	}

	src, err := a.Flags.source(ctx)
	if err != nil {
		return lang.WrapError(err).With(slog.String("command", "ast"))
	}

	return lang.WriteTree(ctx, StreamsFrom(ctx).Out, src.Unit, format, a.Flags.Indent)
}

// Instructions prints the compiled instructions of a script.
type Instructions struct {
	Flags inspectFlags `embed:""`
}

// Run executes the instructions command.
func (i *Instructions) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	format, err := i.Flags.format()
	if err != nil {
		return err
	}

	res, err := compile(ctx, i.Flags.File)
	if perr := report(ctx, res); perr != nil {
		return perr
	}

	if err != nil {
		return err
	}

	return lang.WriteInstructions(ctx, StreamsFrom(ctx).Out, res.Instructions, format, i.Flags.Indent)
}

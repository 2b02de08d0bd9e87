package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/ardnew/pillar/lang"
	"github.com/ardnew/pillar/log"
	"github.com/ardnew/pillar/pkg"
)

// Compile compiles a script and writes its instructions to a file.
type Compile struct {
	Input  string `help:"Source file or '-' for stdin."           required:"" short:"i" type:"path"`
	Output string `help:"Output script file."                      required:"" short:"o" type:"path"`
	Force  bool   `help:"Overwrite the output file without asking." short:"f"`
}

// Run executes the compile command. Nothing is written when compilation
// reports errors.
func (c *Compile) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	res, err := compile(ctx, c.Input)
	if perr := report(ctx, res); perr != nil {
		return perr
	}

	if err != nil {
		return err
	}

	if !c.Force {
		if _, err := os.Stat(c.Output); err == nil {
			ok, err := c.confirm(ctx, "File '%s' already exists. Overwrite? (y/n) ", c.Output)
			if err != nil {
				return ErrWriteOutput.With(slog.String("file", c.Output)).Wrap(err)
			}

			if !ok {
				return ErrWriteOutput.
					With(slog.String("file", c.Output), slog.Bool("exists", true)).
					Wrap(ErrFileExists)
			}
		}
	}

	if err := writeFile(ctx, c.Output, res); err != nil {
		return ErrWriteOutput.With(slog.String("file", c.Output)).Wrap(err)
	}

	log.InfoContext(ctx, "wrote script",
		slog.String("file", c.Output),
		slog.Int("instructions", res.Instructions.Len()),
	)

	return nil
}

func writeFile(ctx context.Context, path string, res *lang.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	err = lang.WriteInstructions(ctx, f, res.Instructions, lang.FormatText, 0)

	return pkg.JoinErrors(err, f.Close())
}

// openTerminal opens the controlling terminal. It answers the overwrite
// prompt when the script itself was read from standard input.
var openTerminal = func() (io.ReadCloser, error) {
	return os.Open("/dev/tty")
}

// confirm asks a yes/no question on the error stream. The answer is read
// from the input stream, or from the terminal if the input stream already
// supplied the script. Only y and yes confirm.
func (c *Compile) confirm(ctx context.Context, format string, args ...any) (bool, error) {
	s := StreamsFrom(ctx)

	in := s.In

	if c.Input == stdinSource {
		tty, err := openTerminal()
		if err != nil {
			return false, err
		}
		defer tty.Close()

		in = tty
	}

	if _, err := fmt.Fprintf(s.Err, format, args...); err != nil {
		return false, err
	}

	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

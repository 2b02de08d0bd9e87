package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/peterh/liner"

	"github.com/ardnew/pillar/lang"
)

// prompter reads one line of input after showing a prompt.
type prompter interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

// runLine drives s with a line editor. liner only reads the process's
// standard input, so any other reader is scanned line by line.
func runLine(ctx context.Context, s *Session, h *History, c config) error {
	fmt.Fprint(c.out, banner())

	if f, ok := c.in.(*os.File); !ok || f != os.Stdin {
		return loop(ctx, s, h, &scanPrompter{in: bufio.NewScanner(c.in), out: c.out}, c)
	}

	ln := liner.NewLiner()
	defer ln.Close()

	ln.SetCtrlCAborts(true)
	ln.SetTabCompletionStyle(liner.TabPrints)
	ln.SetWordCompleter(s.completeWord)

	for _, entry := range h.Entries() {
		ln.AppendHistory(entry)
	}

	return loop(ctx, s, h, ln, c)
}

func loop(ctx context.Context, s *Session, h *History, p prompter, c config) error {
	for {
		if ctx.Err() != nil {
			return context.Cause(ctx)
		}

		prompt := evalPrompt
		if s.Pending() {
			prompt = contPrompt
		}

		line, err := p.Prompt(prompt)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Fprintln(c.out)

			return nil
		}

		if err != nil {
			return err
		}

		if _, err := h.Write(line); err != nil {
			c.logger.WarnContext(ctx, "could not save history", slog.Any("error", err))
		}

		p.AppendHistory(line)

		cmd, ok := s.command(line)
		if !ok {
			res, err := s.Feed(ctx, line)
			show(c, res, err)

			continue
		}

		switch cmd {
		case "exit":
			return nil

		case "clear":
			if err := s.Reset(); err != nil {
				return err
			}

		case "help":
			fmt.Fprint(c.out, helpMessage())

		case "edit":
			text, err := edit(ctx, s.Source(), c.in, c.out, c.err)
			if errors.Is(err, ErrEditCancelled) {
				fmt.Fprintln(c.err, "edit cancelled")

				continue
			}

			if err != nil {
				fmt.Fprintln(c.err, "error:", err)

				continue
			}

			res, err := s.Replace(ctx, text)
			show(c, res, err)
		}
	}
}

// show writes problems to the error stream and script lines to the output.
func show(c config, res *lang.Result, err error) {
	lines, problems := outcome(res, err)

	for _, p := range problems {
		fmt.Fprintln(c.err, p)
	}

	for _, l := range lines {
		fmt.Fprintln(c.out, l)
	}
}

// scanPrompter reads lines from a reader that is not a terminal.
type scanPrompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func (p *scanPrompter) Prompt(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)

	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}

		return "", io.EOF
	}

	return p.in.Text(), nil
}

func (*scanPrompter) AppendHistory(string) {}

package repl

import (
	"context"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/ardnew/pillar/pkg"
)

const defaultEditor = "vi"

// editCommand implements [tea.ExecCommand]. It opens the user's editor on
// the session source and keeps whatever was saved.
type editCommand struct {
	ctx    context.Context
	text   string
	result string
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// SetStdin sets the stdin reader for the command.
func (c *editCommand) SetStdin(r io.Reader) { c.stdin = r }

// SetStdout sets the stdout writer for the command.
func (c *editCommand) SetStdout(w io.Writer) { c.stdout = w }

// SetStderr sets the stderr writer for the command.
func (c *editCommand) SetStderr(w io.Writer) { c.stderr = w }

// Run opens the editor and records the edited text.
func (c *editCommand) Run() (err error) {
	c.result, err = edit(c.ctx, c.text, c.stdin, c.stdout, c.stderr)

	return err
}

// edit writes text to a temporary source file, runs $EDITOR on it, and
// returns the saved content. Saving an empty file cancels the edit with
// [ErrEditCancelled].
func edit(
	ctx context.Context,
	text string,
	stdin io.Reader,
	stdout io.Writer,
	stderr io.Writer,
) (string, error) {
	f, err := os.CreateTemp("", pkg.Name+"-repl-*"+pkg.Extension)
	if err != nil {
		return "", err
	}

	path := f.Name()

	defer os.Remove(path)

	_, err = f.WriteString(text)
	if cerr := f.Close(); err == nil {
		err = cerr
	}

	if err != nil {
		return "", err
	}

	args := strings.Fields(os.Getenv("EDITOR"))
	if len(args) == 0 {
		args = []string{defaultEditor}
	}

	cmd := exec.CommandContext(ctx, args[0], append(args[1:], path)...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(string(data)) == "" {
		return "", ErrEditCancelled
	}

	return string(data), nil
}

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ardnew/pillar/lang"
	"github.com/ardnew/pillar/pkg"
)

const script = "import Process\nProcess.write(\"hi\")\nProcess.wait(5)\n"

const scriptOutput = "STRING hi\r\nDELAY 5\r\n"

// streams returns a context whose commands read in and write to the
// returned buffers.
func streams(in string) (context.Context, *bytes.Buffer, *bytes.Buffer) {
	var out, errs bytes.Buffer

	ctx := WithStreams(context.Background(), Streams{
		In:  strings.NewReader(in),
		Out: &out,
		Err: &errs,
	})

	return ctx, &out, &errs
}

func writeScript(t *testing.T, text string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "script"+pkg.Extension)
	if err := os.WriteFile(path, []byte(text), 0o600); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestStreamsFromDefaults(t *testing.T) {
	s := StreamsFrom(context.Background())
	if s.In != os.Stdin || s.Out != os.Stdout || s.Err != os.Stderr {
		t.Errorf("StreamsFrom() = %+v, want standard streams", s)
	}

	var out bytes.Buffer

	s = StreamsFrom(WithStreams(context.Background(), Streams{Out: &out}))
	if s.Out != &out || s.In != os.Stdin {
		t.Errorf("StreamsFrom() = %+v, want Out replaced only", s)
	}
}

func TestRun(t *testing.T) {
	tests := []struct {
		name    string
		file    func(t *testing.T) string
		stdin   string
		defines []string
		want    string
		wantErr string
	}{
		{
			name: "file",
			file: func(t *testing.T) string { return writeScript(t, script) },
			want: scriptOutput,
		},
		{
			name:  "stdin",
			file:  func(*testing.T) string { return stdinSource },
			stdin: script,
			want:  scriptOutput,
		},
		{
			name:    "define",
			file:    func(t *testing.T) string { return writeScript(t, "import Process\nProcess.wait(ms)\n") },
			defines: []string{"ms=250"},
			want:    "DELAY 250\r\n",
		},
		{
			name:    "errors print nothing",
			file:    func(t *testing.T) string { return writeScript(t, "import Process\nProcess.write(missing)\n") },
			wantErr: "Undefined variable 'missing'.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, out, errs := streams(tt.stdin)

			var defs []lang.Define

			for _, s := range tt.defines {
				d, err := lang.ParseDefine(s)
				if err != nil {
					t.Fatal(err)
				}

				defs = append(defs, d)
			}

			ctx = WithDefines(ctx, defs)

			err := (&Run{File: tt.file(t)}).Run(ctx)

			if tt.wantErr != "" {
				if !errors.Is(err, lang.ErrCompile) {
					t.Errorf("Run() error = %v, want ErrCompile", err)
				}

				if !strings.Contains(errs.String(), tt.wantErr) {
					t.Errorf("diagnostics = %q, want %q", errs.String(), tt.wantErr)
				}

				if out.Len() != 0 {
					t.Errorf("output = %q, want none", out.String())
				}

				return
			}

			if err != nil {
				t.Fatalf("Run() failed: %v", err)
			}

			if got := out.String(); got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRunMissingFile(t *testing.T) {
	ctx, _, _ := streams("")

	if err := (&Run{File: filepath.Join(t.TempDir(), "missing.pill")}).Run(ctx); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestCompile(t *testing.T) {
	tests := []struct {
		name     string
		existing bool
		force    bool
		answer   string
		want     string
		wantErr  error
	}{
		{name: "new file", want: scriptOutput},
		{name: "force", existing: true, force: true, want: scriptOutput},
		{name: "confirm yes", existing: true, answer: "y\n", want: scriptOutput},
		{name: "confirm long yes", existing: true, answer: "YES\n", want: scriptOutput},
		{name: "confirm no", existing: true, answer: "n\n", want: "old", wantErr: ErrFileExists},
		{name: "no answer", existing: true, answer: "", want: "old", wantErr: ErrFileExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, _, errs := streams(tt.answer)

			output := filepath.Join(t.TempDir(), "payload.txt")
			if tt.existing {
				if err := os.WriteFile(output, []byte("old"), 0o600); err != nil {
					t.Fatal(err)
				}
			}

			c := &Compile{Input: writeScript(t, script), Output: output, Force: tt.force}

			err := c.Run(ctx)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) || !errors.Is(err, ErrWriteOutput) {
					t.Errorf("Run() error = %v, want %v", err, tt.wantErr)
				}
			} else if err != nil {
				t.Fatalf("Run() failed: %v", err)
			}

			if tt.existing && !tt.force && !strings.Contains(errs.String(), "already exists. Overwrite? (y/n)") {
				t.Errorf("prompt = %q", errs.String())
			}

			data, err := os.ReadFile(output)
			if err != nil {
				t.Fatal(err)
			}

			if string(data) != tt.want {
				t.Errorf("file = %q, want %q", data, tt.want)
			}
		})
	}
}

func TestCompileErrorsWriteNothing(t *testing.T) {
	ctx, _, errs := streams("")

	output := filepath.Join(t.TempDir(), "payload.txt")
	c := &Compile{Input: writeScript(t, "const x = 1\nx = 2\n"), Output: output}

	if err := c.Run(ctx); !errors.Is(err, lang.ErrCompile) {
		t.Errorf("Run() error = %v, want ErrCompile", err)
	}

	if errs.Len() == 0 {
		t.Error("expected diagnostics")
	}

	if _, err := os.Stat(output); !os.IsNotExist(err) {
		t.Errorf("output file exists: %v", err)
	}
}

func TestInspect(t *testing.T) {
	tests := []struct {
		name   string
		run    func(ctx context.Context, f inspectFlags) error
		format string
		want   []string
	}{
		{
			name: "tokens text",
			run: func(ctx context.Context, f inspectFlags) error {
				return (&Tokens{Flags: f}).Run(ctx)
			},
			format: "text",
			want:   []string{"1:1\tImportKeyword\t\"import\""},
		},
		{
			name: "tokens yaml",
			run: func(ctx context.Context, f inspectFlags) error {
				return (&Tokens{Flags: f}).Run(ctx)
			},
			format: "yaml",
			want:   []string{"IdentifierToken"},
		},
		{
			name: "ast text",
			run: func(ctx context.Context, f inspectFlags) error {
				return (&AST{Flags: f}).Run(ctx)
			},
			format: "text",
			want:   []string{"CompilationUnit", "ImportDeclaration"},
		},
		{
			name: "instructions text",
			run: func(ctx context.Context, f inspectFlags) error {
				return (&Instructions{Flags: f}).Run(ctx)
			},
			format: "text",
			want:   []string{scriptOutput},
		},
		{
			name: "instructions yaml",
			run: func(ctx context.Context, f inspectFlags) error {
				return (&Instructions{Flags: f}).Run(ctx)
			},
			format: "yaml",
			want:   []string{"callee: STRING", "callee: DELAY"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, out, _ := streams("")

			f := inspectFlags{Format: tt.format, Indent: 2, File: writeScript(t, script)}
			if err := tt.run(ctx, f); err != nil {
				t.Fatalf("Run() failed: %v", err)
			}

			for _, want := range tt.want {
				if !strings.Contains(out.String(), want) {
					t.Errorf("output missing %q:\n%s", want, out.String())
				}
			}
		})
	}
}

func TestInspectInstructionsJSON(t *testing.T) {
	ctx, out, _ := streams(script)

	f := inspectFlags{Format: "json", Indent: 0, File: stdinSource}
	if err := (&Instructions{Flags: f}).Run(ctx); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	var records []map[string]string
	if err := json.Unmarshal(out.Bytes(), &records); err != nil {
		t.Fatalf("invalid JSON %q: %v", out.String(), err)
	}

	if len(records) != 2 || records[1]["argument"] != "5" {
		t.Errorf("records = %v", records)
	}
}

func TestInspectContinuesPastSyntaxErrors(t *testing.T) {
	ctx, out, errs := streams("")

	f := inspectFlags{Format: "text", File: writeScript(t, "const a\n")}
	if err := (&Tokens{Flags: f}).Run(ctx); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	if !strings.Contains(errs.String(), "Unexpected constant initializer 'a'.") {
		t.Errorf("diagnostics = %q", errs.String())
	}

	if !strings.Contains(out.String(), "ConstKeyword") {
		t.Errorf("tokens = %q", out.String())
	}
}

func TestInspectBadFormat(t *testing.T) {
	ctx, _, _ := streams("")

	f := inspectFlags{Format: "xml", File: stdinSource}
	if err := (&Tokens{Flags: f}).Run(ctx); !errors.Is(err, lang.ErrFormat) {
		t.Errorf("Run() error = %v, want ErrFormat", err)
	}
}

func TestVersion(t *testing.T) {
	ctx, out, _ := streams("")

	if err := (Version{}).Run(ctx); err != nil {
		t.Fatal(err)
	}

	if got, want := out.String(), pkg.Name+" v"+pkg.Version+"\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestError(t *testing.T) {
	err := ErrWriteOutput.With().Wrap(ErrFileExists)

	if !errors.Is(err, ErrWriteOutput) || !errors.Is(err, ErrFileExists) {
		t.Errorf("errors.Is failed for %v", err)
	}

	if errors.Is(err, ErrWriteConfig) {
		t.Error("unexpected match for ErrWriteConfig")
	}

	if errors.Is(err, NewError("")) {
		t.Error("empty sentinel must not match")
	}

	want := "write output file: file exists (use --force to overwrite)"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestCompileStdinAsksTerminal(t *testing.T) {
	tests := []struct {
		name    string
		open    func() (io.ReadCloser, error)
		want    string
		wantErr bool
	}{
		{
			name: "confirmed",
			open: func() (io.ReadCloser, error) { return io.NopCloser(strings.NewReader("y\n")), nil },
			want: scriptOutput,
		},
		{
			name:    "declined",
			open:    func() (io.ReadCloser, error) { return io.NopCloser(strings.NewReader("n\n")), nil },
			want:    "old",
			wantErr: true,
		},
		{
			name:    "no terminal",
			open:    func() (io.ReadCloser, error) { return nil, os.ErrNotExist },
			want:    "old",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prev := openTerminal
			openTerminal = tt.open

			t.Cleanup(func() { openTerminal = prev })

			// The script is the only thing on standard input.
			ctx, _, _ := streams(script)

			output := filepath.Join(t.TempDir(), "payload.txt")
			if err := os.WriteFile(output, []byte("old"), 0o600); err != nil {
				t.Fatal(err)
			}

			err := (&Compile{Input: stdinSource, Output: output}).Run(ctx)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Run() error = %v, wantErr %v", err, tt.wantErr)
			}

			if err != nil && !errors.Is(err, ErrWriteOutput) {
				t.Errorf("Run() error = %v, want ErrWriteOutput", err)
			}

			data, err := os.ReadFile(output)
			if err != nil {
				t.Fatal(err)
			}

			if string(data) != tt.want {
				t.Errorf("file = %q, want %q", data, tt.want)
			}
		})
	}
}

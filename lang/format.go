package lang

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/pillar/lang/emit"
	"github.com/ardnew/pillar/lang/syntax"
)

// Format selects how inspected structures are written.
type Format int

const (
	FormatText Format = iota
	FormatJSON
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// Formats returns an iterator over the names of all output formats.
func Formats() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, f := range []Format{FormatText, FormatJSON, FormatYAML} {
			if !yield(f.String()) {
				return
			}
		}
	}
}

// ParseFormat parses a format name, ignoring case.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return FormatText, ErrFormat.Wrap(fmt.Errorf("%q", s))
	}
}

// WriteTokens writes the token stream. The text format prints one token per
// line with its position.
func WriteTokens(ctx context.Context, w io.Writer, tokens []syntax.Token, f Format, indent int) error {
	if f == FormatText {
		for _, t := range tokens {
			_, err := fmt.Fprintf(w, "%d:%d\t%s\t%q\n",
				t.Location.Line, t.Location.Column, t.Kind, t.Text)
			if err != nil {
				return err
			}
		}

		return nil
	}

	list := make([]any, len(tokens))
	for i, t := range tokens {
		list[i] = syntax.Map(t)
	}

	return encode(ctx, w, list, f, indent)
}

// WriteTree writes the syntax tree rooted at n.
func WriteTree(ctx context.Context, w io.Writer, n syntax.Node, f Format, indent int) error {
	if f == FormatText {
		return syntax.Fprint(w, n)
	}

	return encode(ctx, w, syntax.Map(n), f, indent)
}

// WriteInstructions writes compiled instructions. The text format is the
// script itself.
func WriteInstructions(ctx context.Context, w io.Writer, u *emit.Unit, f Format, indent int) error {
	if f == FormatText {
		return emit.New().Emit(w, u)
	}

	records := emit.Records(u)
	if records == nil {
		records = []map[string]any{}
	}

	return encode(ctx, w, records, f, indent)
}

func encode(ctx context.Context, w io.Writer, v any, f Format, indent int) error {
	var (
		data []byte
		err  error
	)

	switch f {
	case FormatJSON:
		if indent > 0 {
			data, err = json.MarshalIndent(v, "", strings.Repeat(" ", indent))
		} else {
			data, err = json.Marshal(v)
		}

		if err == nil {
			data = append(data, '\n')
		}

	case FormatYAML:
		opts := []yaml.EncodeOption{yaml.Flow(true)}
		if indent > 0 {
			opts = []yaml.EncodeOption{yaml.Indent(indent)}
		}

		data, err = yaml.MarshalContext(ctx, v, opts...)

	default:
		return ErrFormat.Wrap(fmt.Errorf("%s", f))
	}

	if err != nil {
		return ErrEncode.Wrap(err)
	}

	_, err = w.Write(data)

	return err
}

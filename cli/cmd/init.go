package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/pillar/log"
	"github.com/ardnew/pillar/profile"
)

// defaultConfigIndent is the number of spaces to use for indentation
// when generating the default configuration file.
const defaultConfigIndent = 2

// ConfigFormats are the configuration file formats, in the order they are
// loaded. Each is also the file's extension.
var ConfigFormats = []string{"json", "yaml", "pill"}

// ConfigName is the identifier of the exported object a Pillar
// configuration file declares.
const ConfigName = "config"

// Init generates a configuration file with current flag values.
type Init struct {
	Format string `default:"pill" enum:"json,yaml,pill" help:"Configuration file format (${enum})."`
	Force  bool   `help:"Overwrite existing configuration file" short:"f"`
}

// setting is one flag value written to a configuration file.
type setting struct {
	value any
	name  string
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ktx := kongContextFrom(ctx)

	base, ok := ktx.Model.Vars()[ConfigIdentifier]
	if !ok {
		panic("internal error: config path undefined")
	}

	confPath := base + "." + i.Format

	_, err = os.Stat(confPath)
	if err == nil && !i.Force {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			With(slog.Bool("exists", true)).
			Wrap(ErrFileExists)
	}

	var buf bytes.Buffer

	if err := i.encode(&buf, settings(ktx)); err != nil {
		return err
	}

	if err := os.WriteFile(confPath, buf.Bytes(), 0o600); err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}

	log.DebugContext(ctx, "initialized configuration file",
		slog.String("path", confPath),
		slog.String("format", i.Format),
	)

	return nil
}

func (i *Init) encode(w io.Writer, s []setting) error {
	switch i.Format {
	case "json":
		data, err := json.MarshalIndent(flat(s), "", strings.Repeat(" ", defaultConfigIndent))
		if err != nil {
			return ErrJSONMarshal.Wrap(err)
		}

		_, err = w.Write(append(data, '\n'))

		return err

	case "yaml":
		data, err := yaml.MarshalWithOptions(flat(s), yaml.Indent(defaultConfigIndent))
		if err != nil {
			return ErrYAMLMarshal.Wrap(err)
		}

		_, err = w.Write(data)

		return err

	default:
		return writePill(w, s)
	}
}

// settings collects the global flags worth persisting, in declaration order.
// Help, profiling, and per-invocation defines are left out, as are unset
// values.
func settings(ktx *kong.Context) []setting {
	ignore := []string{"help", profile.Tag, "define"}

	var out []setting

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || slices.ContainsFunc(ignore, func(s string) bool {
			return strings.HasPrefix(flag.Name, s)
		}) {
			continue
		}

		switch v := ktx.FlagValue(flag).(type) {
		case nil:
		case string:
			if v != "" {
				out = append(out, setting{name: flag.Name, value: v})
			}
		case bool, int, int64, uint, uint64, float64:
			out = append(out, setting{name: flag.Name, value: v})
		default:
			out = append(out, setting{name: flag.Name, value: fmt.Sprint(v)})
		}
	}

	return out
}

func flat(s []setting) map[string]any {
	m := make(map[string]any, len(s))
	for _, e := range s {
		m[e.name] = e.value
	}

	return m
}

// writePill writes the settings as Pillar source exporting one object. A
// flag's first hyphen separates its group from its key, and the remaining
// hyphens become underscores, so log-time-layout is config.log.time_layout.
func writePill(w io.Writer, s []setting) error {
	type group struct {
		name    string
		entries []setting
	}

	var groups []*group

	for _, e := range s {
		name, key, ok := strings.Cut(e.name, "-")
		if !ok {
			name, key = "", e.name
		}

		i := slices.IndexFunc(groups, func(g *group) bool { return g.name == name })
		if i < 0 {
			groups = append(groups, &group{name: name})
			i = len(groups) - 1
		}

		groups[i].entries = append(groups[i].entries, setting{
			name:  strings.ReplaceAll(key, "-", "_"),
			value: e.value,
		})
	}

	var b strings.Builder

	indent := strings.Repeat(" ", defaultConfigIndent)

	b.WriteString("export const " + ConfigName + " = {\n")

	for _, g := range groups {
		depth := indent
		if g.name != "" {
			b.WriteString(indent + g.name + ": {\n")

			depth += indent
		}

		for _, e := range g.entries {
			b.WriteString(depth + e.name + ": " + pillLiteral(e.value) + ",\n")
		}

		if g.name != "" {
			b.WriteString(indent + "},\n")
		}
	}

	b.WriteString("}\n")

	_, err := io.WriteString(w, b.String())

	return err
}

// pillLiteral renders v as a Pillar literal. A quote inside a string is
// written twice.
func pillLiteral(v any) string {
	switch v := v.(type) {
	case bool:
		return strconv.FormatBool(v)
	case string:
		return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
	default:
		return fmt.Sprint(v)
	}
}

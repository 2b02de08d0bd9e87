package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/pillar/cli/cmd"
	"github.com/ardnew/pillar/lang"
	"github.com/ardnew/pillar/lang/runtime"
)

// config implements [kong.Resolver] over a flat map of flag names. Nested
// maps are flattened by joining keys with hyphens, and underscores in keys
// are read as hyphens, so {log: {time_layout: x}} sets --log-time-layout.
type config map[string]any

// Validate implements [kong.Resolver].
func (r config) Validate(*kong.Application) error {
	return nil
}

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	if value, ok := r[flag.Name]; ok {
		return value, nil
	}

	return nil, nil
}

// flatten copies m into r, prefixing each key with prefix.
func (r config) flatten(prefix string, m map[string]any) config {
	for key, value := range m {
		name := strings.ReplaceAll(key, "_", "-")
		if prefix != "" {
			name = prefix + "-" + name
		}

		switch v := value.(type) {
		case map[string]any:
			r.flatten(name, v)
		case nil:
		default:
			r[name] = scalar(v)
		}
	}

	return r
}

// scalar converts v to a value kong can parse. Kong requires numbers as
// strings.
func scalar(v any) any {
	switch v := v.(type) {
	case bool, string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// resolveYAML is a [kong.ConfigurationLoader] for YAML config files.
func resolveYAML(r io.Reader) (kong.Resolver, error) {
	var m map[string]any

	if err := yaml.NewDecoder(r).Decode(&m); err != nil {
		if err == io.EOF {
			return config{}, nil
		}

		return nil, err
	}

	return config{}.flatten("", m), nil
}

// resolvePill returns a [kong.ConfigurationLoader] for config files written
// in Pillar. The file is compiled and its exported config object supplies
// the flag values:
//
//	export const config = {
//	  log: {
//	    level: "debug",
//	    time_layout: "kitchen",
//	  },
//	}
//
// A file that fails to compile, or that exports no config object, sets
// nothing. Instructions it emits are discarded.
func resolvePill(ctx context.Context, dir string) kong.ConfigurationLoader {
	return func(r io.Reader) (kong.Resolver, error) {
		src, err := lang.ParseReader(ctx, r)
		if err != nil {
			return config{}, nil
		}

		res, err := lang.Compile(ctx, src, lang.WithDir(dir))
		if err != nil {
			return config{}, nil
		}

		env := res.Environment
		if !env.IsExported(cmd.ConfigName) {
			return config{}, nil
		}

		v, _ := env.Resolve(cmd.ConfigName)

		obj, ok := v.(*runtime.Object)
		if !ok {
			return config{}, nil
		}

		m, _ := runtime.ToGo(obj).(map[string]any)

		return config{}.flatten("", m), nil
	}
}

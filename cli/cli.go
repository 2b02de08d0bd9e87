package cli

import (
	"context"
	"path/filepath"
	"slices"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/pillar/cli/cmd"
	"github.com/ardnew/pillar/lang"
	"github.com/ardnew/pillar/pkg"
)

// CLI is the top-level command-line interface for pillar.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Define []string `help:"Declare a constant before the script runs (repeatable)." placeholder:"NAME=EXPR" sep:"none" short:"D"`

	Run     cmd.Run     `cmd:"" default:"withargs" help:"Compile a script and print its instructions"`
	Compile cmd.Compile `cmd:""                    help:"Compile a script to a file"`
	Inspect cmd.Inspect `cmd:""                    help:"Print the intermediate forms of a script"`
	Repl    cmd.Repl    `cmd:""                    help:"Start an interactive session"`
	Init    cmd.Init    `cmd:""                    help:"Initialize configuration file"`
	Version cmd.Version `cmd:""                    help:"Print version"`
}

// vars returns the interpolation variables shared by every command.
func (c *CLI) vars() kong.Vars {
	return kong.Vars{
		cmd.ConfigIdentifier:  configPath(baseConfig),
		cmd.CacheIdentifier:   cacheDir(),
		cmd.HistoryIdentifier: filepath.Join(cacheDir(), baseHistory),
		"inspectFormatEnum":   strings.Join(slices.Collect(lang.Formats()), ","),
	}.
		CloneWith(c.Log.vars()).
		CloneWith(c.Pprof.vars())
}

// defines parses every --define flag.
func (c *CLI) defines() ([]lang.Define, error) {
	defs := make([]lang.Define, 0, len(c.Define))

	for _, s := range c.Define {
		d, err := lang.ParseDefine(s)
		if err != nil {
			return nil, err
		}

		defs = append(defs, d)
	}

	return defs, nil
}

// loaders returns the configuration files in the order they are applied,
// each paired with the loader for its format.
func loaders(ctx context.Context) []kong.Option {
	load := map[string]kong.ConfigurationLoader{
		"json": kong.JSON,
		"yaml": resolveYAML,
		"pill": resolvePill(ctx, configDir()),
	}

	opts := make([]kong.Option, 0, len(cmd.ConfigFormats))

	for _, ext := range cmd.ConfigFormats {
		opts = append(opts, kong.Configuration(load[ext], configPath(baseConfig+"."+ext)))
	}

	return opts
}

// Run executes the pillar CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	err := mkdirAllRequired()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Pre-scan for logger flags to ensure early configuration regardless of
	// flag position. TextUnmarshaler on logFormat/logLevel handles those flags
	// during normal parsing, but this early scan also catches boolean flags
	// like --log-pretty.
	cli.Log.scan(args)

	streams := cmd.StreamsFrom(ctx)

	opts := append([]kong.Option{
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.Writers(streams.Out, streams.Err),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				FlagsLast:           false,
				NoAppSummary:        false,
				NoExpandSubcommands: true,
			}),
		cli.vars(),
	}, loaders(ctx)...)

	// Parse command line
	parser, err := kong.New(&cli, opts...)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	defs, err := cli.defines()
	if err != nil {
		return err
	}

	// Stuff additional context values for use by commands
	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithDefines(ctx, defs)

	// Finalize logger configuration with all parsed values including
	// TimeLayout and Caller which don't use TextUnmarshaler.
	defer cli.Log.start(ctx)()

	// [pprofConfig.start] is no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	// Execute the selected command
	return ktx.Run(ctx)
}

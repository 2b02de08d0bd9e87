// Package cli contains the command line interface for pillar.
//
// # Usage
//
//	pillar script.pill                 # same as: pillar run script.pill
//	pillar compile -i script.pill -o payload.txt
//	pillar inspect tokens --format json script.pill
//	pillar repl
//	pillar -D delay=250 run script.pill
//
// # Configuration
//
// Flag defaults are read from the configuration directory
// ($XDG_CONFIG_HOME/pillar, or the platform default) in this order:
//
//   - config.json: flat object keyed by flag name
//   - config.yaml: nested mappings, joined with hyphens
//   - config.pill: a Pillar script exporting an object named config
//
// Use "pillar init" to write the current flag values in any of these
// formats.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, Kitchen, none, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize log output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o pillar .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default:
//     $XDG_CACHE_HOME/pillar/pprof)
package cli

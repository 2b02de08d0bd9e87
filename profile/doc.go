// Package profile starts optional runtime profiling of the compiler using
// [github.com/pkg/profile].
//
// Profiling is compiled in only with the "pprof" build tag:
//
//	go build -tags pprof ./...
//	pillar --pprof-mode cpu compile -i payload.pill -o payload.txt
//
// Without the tag, [Modes] is empty and [Config.Start] returns a no-op.
package profile

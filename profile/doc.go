// Package profile provides optional runtime profiling for ilc.
//
// Profiling uses [github.com/pkg/profile] and is compiled in only with the
// "pprof" build tag. Without the tag every operation is a no-op and [Modes]
// is empty.
//
// # Modes
//
// allocs, block, clock, cpu, goroutine, heap, mem, mutex, thread and trace.
// Use [Modes] to list the modes available in the current build.
//
// # Usage
//
//	var cfg profile.Config = func() (string, string, bool) { return "", "", false }
//	cfg = profile.WithMode("cpu")(cfg)
//	cfg = profile.WithPath("/tmp/ilc")(cfg)
//	defer cfg.Start().Stop()
//
// With the ilc command:
//
//	go build -tags pprof ./
//	ilc --pprof-mode cpu compile main.yaml
//	go tool pprof -http=: "$XDG_CACHE_HOME/ilc/pprof/cpu.pprof"
//
// The pprof build also registers the [net/http/pprof] handlers on
// [net/http.DefaultServeMux].
package profile

// Package profile provides optional runtime profiling built on
// [github.com/pkg/profile].
//
// Profiling is compiled in only with the "pprof" build tag:
//
//	go build -tags pprof .
//	equex --pprof-mode cpu --pprof-dir ./profiles run zad.txt
//	go tool pprof -http=: ./profiles/cpu.pprof
//
// Without the tag, [Modes] is empty and [Profiler.Start] always returns a
// no-op [Stopper], so callers never need build constraints of their own.
// With the tag, the [net/http/pprof] handlers are also registered on the
// default HTTP mux.
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`

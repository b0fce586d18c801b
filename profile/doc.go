// Package profile provides optional runtime profiling for flowc.
//
// Profiling wraps [github.com/pkg/profile] and is compiled in only when
// building with the "pprof" build tag:
//
//	go build -tags pprof .
//
// Without the tag, [Modes] is empty and [Profiler.Start] always returns a
// no-op.
//
// # Modes
//
//   - allocs:    Memory allocation profiling (all allocations)
//   - block:     Block (synchronization) profiling
//   - clock:     Wall-clock profiling
//   - cpu:       CPU profiling
//   - goroutine: Goroutine profiling
//   - heap:      Heap memory profiling (live allocations)
//   - mem:       General memory profiling
//   - mutex:     Mutex contention profiling
//   - thread:    Thread creation profiling
//   - trace:     Execution trace profiling
//
// # Usage
//
//	p := profile.New(profile.WithMode("cpu"), profile.WithPath("/tmp/prof"))
//	defer p.Start().Stop()
//
// Profiles are written to the configured directory with names matching the
// mode (e.g., cpu.pprof). Analyze them with go tool pprof:
//
//	go tool pprof -http=: /tmp/prof/cpu.pprof
//
// The flowc command exposes the same settings as --pprof-mode and
// --pprof-dir, defaulting to a pprof directory in the user cache directory.
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`

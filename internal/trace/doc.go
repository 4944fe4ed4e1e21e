// Package trace records what the target registry does while the process
// starts up and while tools query it.
//
// # Usage
//
// Enable tracing via command-line flags:
//
//	targetinfo list --trace=- --trace-level=detail
//
// # Tracers
//
//   - Nop: zero-overhead tracer used when tracing is disabled
//   - StreamTracer: immediate write to output (file/stderr)
//   - RingTracer: circular buffer, dumped on demand
//   - MultiTracer: combines multiple tracers
//
// # Levels
//
//   - LevelOff: no tracing
//   - LevelError: only explicit dumps
//   - LevelPhase: driver operations and registry seal
//   - LevelDetail: per-family and per-target registration
//   - LevelDebug: everything, including individual lookups
//
// # Context Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopeDriver, "init-targets", 0)
//	defer span.End("")
package trace

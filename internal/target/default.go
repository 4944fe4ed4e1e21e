package target

import (
	"sync"

	"targetinfo/internal/trace"
	"targetinfo/internal/triple"
)

var defaultRegistry = sync.OnceValue(NewRegistry)

// Default returns the process-wide registry.
func Default() *Registry { return defaultRegistry() }

// RegisterTarget registers t in the process-wide registry.
func RegisterTarget(t *Target, name, shortDesc, backend string, match ArchMatcher, hasJIT bool) {
	Default().Register(t, name, shortDesc, backend, match, hasJIT)
}

// Seal seals the process-wide registry.
func Seal() { Default().Seal() }

// SetTracer routes events of the process-wide registry to t.
func SetTracer(t trace.Tracer) { Default().SetTracer(t) }

// Lookup looks name up in the process-wide registry.
func Lookup(name string) (*Target, bool) {
	return initialized("lookup", name).Lookup(name)
}

// LookupTriple looks tt up in the process-wide registry.
func LookupTriple(tt triple.Triple) (*Target, bool) {
	return initialized("lookup", tt.String()).LookupTriple(tt)
}

// Resolve resolves march and tt against the process-wide registry.
func Resolve(march string, tt triple.Triple) (*Target, triple.Triple, error) {
	return initialized("lookup", march).Resolve(march, tt)
}

// Targets lists the process-wide registry.
func Targets() []*Target {
	return initialized("lookup", "").Targets()
}

// initialized returns the process-wide registry, panicking when no target
// has been registered yet.
func initialized(op, name string) *Registry {
	r := Default()
	if r.Len() == 0 {
		fail(op, name, "registry queried before any target was registered")
	}
	return r
}

package target

import (
	"fmt"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"

	"targetinfo/internal/trace"
	"targetinfo/internal/triple"
)

// Registry maps target names to descriptors and keeps the registration
// order for triple matching.
//
// Registration takes the mutex. Once Seal has been called the registry is
// read-only and lookups no longer lock.
type Registry struct {
	mu       sync.RWMutex
	byName   map[string]*Target
	matchers []entry // registration order
	sealed   atomic.Bool
	tracer   atomic.Pointer[tracerBox]
}

type entry struct {
	match  ArchMatcher
	target *Target
}

type tracerBox struct{ t trace.Tracer }

// NewRegistry creates an empty, unsealed registry.
func NewRegistry() *Registry {
	return &Registry{
		byName:   make(map[string]*Target),
		matchers: make([]entry, 0, 8),
	}
}

// SetTracer routes registry events to t. A nil t disables tracing.
func (r *Registry) SetTracer(t trace.Tracer) {
	if t == nil {
		t = trace.Nop
	}
	r.tracer.Store(&tracerBox{t: t})
}

// Tracer returns the tracer set with SetTracer, or trace.Nop.
func (r *Registry) Tracer() trace.Tracer {
	if b := r.tracer.Load(); b != nil {
		return b.t
	}
	return trace.Nop
}

// Register fills in t and adds it under name. It panics with
// *RegistrationError if name is empty or taken, if t is nil or already
// registered, if match is nil, or if the registry is sealed; the registry is
// left untouched in every one of those cases.
func (r *Registry) Register(t *Target, name, shortDesc, backend string, match ArchMatcher, hasJIT bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch {
	case r.sealed.Load():
		fail("register", name, "registry is sealed")
	case name == "":
		fail("register", name, "empty target name")
	case t == nil:
		fail("register", name, "nil target")
	case match == nil:
		fail("register", name, "nil arch matcher")
	}
	if _, dup := r.byName[name]; dup {
		fail("register", name, "target already registered")
	}
	if prev := t.info.Load(); prev != nil {
		fail("register", name, fmt.Sprintf("descriptor already registered as %q", prev.name))
	}

	t.info.Store(&info{
		name:      name,
		shortDesc: shortDesc,
		backend:   backend,
		match:     match,
		hasJIT:    hasJIT,
	})
	r.byName[name] = t
	r.matchers = append(r.matchers, entry{match: match, target: t})

	trace.Point(r.Tracer(), trace.ScopeFamily, "register", name,
		"backend", backend, "jit", strconv.FormatBool(hasJIT))
}

// Seal makes the registry read-only. Calling it again has no effect.
func (r *Registry) Seal() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sealed.Swap(true) {
		return
	}
	trace.Point(r.Tracer(), trace.ScopeRegistry, "seal", "", "targets", strconv.Itoa(len(r.byName)))
}

// Sealed reports whether Seal has been called.
func (r *Registry) Sealed() bool { return r.sealed.Load() }

// Lookup returns the target registered under name.
func (r *Registry) Lookup(name string) (*Target, bool) {
	if !r.sealed.Load() {
		r.mu.RLock()
		defer r.mu.RUnlock()
	}
	t, ok := r.byName[name]
	trace.Point(r.Tracer(), trace.ScopeLookup, "lookup", name, "found", strconv.FormatBool(ok))
	return t, ok
}

// LookupTriple returns the first registered target whose matcher accepts the
// architecture of tt.
func (r *Registry) LookupTriple(tt triple.Triple) (*Target, bool) {
	if !r.sealed.Load() {
		r.mu.RLock()
		defer r.mu.RUnlock()
	}
	for _, e := range r.matchers {
		if e.match(tt.Arch) {
			trace.Point(r.Tracer(), trace.ScopeLookup, "lookup-triple", tt.String(), "target", e.target.Name())
			return e.target, true
		}
	}
	trace.Point(r.Tracer(), trace.ScopeLookup, "lookup-triple", tt.String(), "target", "")
	return nil, false
}

// Resolve picks the target for a compilation. A non-empty march names the
// target explicitly and, when tt has no known architecture, supplies one.
// Otherwise the target is chosen from tt. The possibly updated triple is
// returned alongside the target.
func (r *Registry) Resolve(march string, tt triple.Triple) (*Target, triple.Triple, error) {
	if march != "" {
		t, ok := r.Lookup(march)
		if !ok {
			return nil, tt, fmt.Errorf("%w %q", ErrUnknownArch, march)
		}
		if tt.Arch == triple.UnknownArch {
			if a := triple.ParseArch(march); a != triple.UnknownArch {
				tt = tt.WithArch(a)
			}
		}
		return t, tt, nil
	}

	t, ok := r.LookupTriple(tt)
	if !ok {
		return nil, tt, fmt.Errorf("%w %q", ErrNoTargetForTriple, tt.String())
	}
	return t, tt, nil
}

// Targets returns all registered targets sorted by name.
func (r *Registry) Targets() []*Target {
	if !r.sealed.Load() {
		r.mu.RLock()
		defer r.mu.RUnlock()
	}
	out := make([]*Target, 0, len(r.byName))
	for _, t := range r.byName {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// Len returns the number of registered targets.
func (r *Registry) Len() int {
	if !r.sealed.Load() {
		r.mu.RLock()
		defer r.mu.RUnlock()
	}
	return len(r.byName)
}

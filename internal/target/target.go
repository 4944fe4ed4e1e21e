package target

import (
	"sync"
	"sync/atomic"

	"targetinfo/internal/triple"
)

// ArchMatcher decides whether a target is the default choice for an
// architecture.
type ArchMatcher func(triple.ArchType) bool

// ArchIs returns a matcher that selects exactly one architecture.
func ArchIs(arch triple.ArchType) ArchMatcher {
	return func(a triple.ArchType) bool { return a == arch }
}

// NeverMatch never selects its target by triple; such a target is reachable
// only by name.
func NeverMatch(triple.ArchType) bool { return false }

// Target identifies one compilation target variant. A Target is created
// once per variant, filled in by registration and never modified again.
// Always handle it by pointer; `go vet` reports copies.
type Target struct {
	info atomic.Pointer[info]
}

type info struct {
	name      string
	shortDesc string
	backend   string
	match     ArchMatcher
	hasJIT    bool
}

// NewDescriptor returns an accessor that builds its Target on first call and
// returns the same instance on every later call, including concurrent first
// calls.
func NewDescriptor() func() *Target {
	return sync.OnceValue(func() *Target { return new(Target) })
}

func (t *Target) load() *info {
	if i := t.info.Load(); i != nil {
		return i
	}
	return &info{match: NeverMatch}
}

// Name returns the unique short name, e.g. "bpfel". Empty until registered.
func (t *Target) Name() string { return t.load().name }

// ShortDescription returns the human-readable name.
func (t *Target) ShortDescription() string { return t.load().shortDesc }

// BackendName returns the name of the backend family, e.g. "BPF".
func (t *Target) BackendName() string { return t.load().backend }

// HasJIT reports whether the target supports just-in-time compilation.
func (t *Target) HasJIT() bool { return t.load().hasJIT }

// MatchesArch reports whether the target is a default match for arch.
func (t *Target) MatchesArch(arch triple.ArchType) bool { return t.load().match(arch) }

// Registered reports whether the target has been registered.
func (t *Target) Registered() bool { return t.info.Load() != nil }

func (t *Target) String() string {
	if name := t.Name(); name != "" {
		return name
	}
	return "<unregistered target>"
}

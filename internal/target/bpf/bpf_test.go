package bpf

import (
	"testing"

	"golang.org/x/sync/errgroup"

	"targetinfo/internal/target"
	"targetinfo/internal/triple"
)

func freshFamily() (descriptors, *target.Registry) {
	d := descriptors{
		host: new(target.Target),
		le:   new(target.Target),
		be:   new(target.Target),
		sbf:  new(target.Target),
	}
	r := target.NewRegistry()
	d.register(r)
	return d, r
}

func TestDescriptorSingletons(t *testing.T) {
	for _, key := range []VariantKey{LittleEndian, BigEndian, HostEndian, SBF} {
		if Descriptor(key) != Descriptor(key) {
			t.Errorf("%s: expected the same instance twice", key)
		}
	}
	if TheBPFleTarget() != Descriptor(LittleEndian) || TheSBFTarget() != Descriptor(SBF) {
		t.Error("accessors and Descriptor disagree")
	}
	if TheBPFleTarget() == TheBPFbeTarget() || TheBPFTarget() == TheSBFTarget() {
		t.Error("variants must be distinct instances")
	}
}

func TestDescriptorUnknownKeyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for unknown variant")
		}
	}()
	Descriptor(VariantKey(42))
}

func TestDescriptorConcurrentFirstUse(t *testing.T) {
	const n = 32
	got := make([]*target.Target, n)
	var g errgroup.Group
	for i := 0; i < n; i++ {
		g.Go(func() error {
			got[i] = Descriptor(BigEndian)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
	for i := range got {
		if got[i] != got[0] {
			t.Fatalf("goroutine %d saw a different descriptor", i)
		}
	}
}

func TestRegisterAttributes(t *testing.T) {
	d, r := freshFamily()

	tests := []struct {
		name    string
		want    *target.Target
		desc    string
		backend string
	}{
		{"bpf", d.host, "BPF (host endian)", "BPF"},
		{"bpfel", d.le, "BPF (little endian)", "BPF"},
		{"bpfeb", d.be, "BPF (big endian)", "BPF"},
		{"sbf", d.sbf, "SBF (little endian)", "SBF"},
	}
	for _, tt := range tests {
		got, ok := r.Lookup(tt.name)
		if !ok || got != tt.want {
			t.Errorf("Lookup(%q): expected registered descriptor", tt.name)
			continue
		}
		if got.ShortDescription() != tt.desc {
			t.Errorf("%s: expected description %q, got %q", tt.name, tt.desc, got.ShortDescription())
		}
		if got.BackendName() != tt.backend {
			t.Errorf("%s: expected backend %q, got %q", tt.name, tt.backend, got.BackendName())
		}
		if !got.HasJIT() {
			t.Errorf("%s: expected JIT support", tt.name)
		}
	}
	if _, ok := r.Lookup("nonexistent"); ok {
		t.Error("expected no target for nonexistent name")
	}
}

func TestRegisterTripleMatching(t *testing.T) {
	d, r := freshFamily()

	tests := []struct {
		triple string
		want   *target.Target
	}{
		{"bpfel-unknown-none", d.le},
		{"bpfeb-unknown-none", d.be},
		{"sbf-solana-solana", d.sbf},
		{"x86_64-unknown-linux-gnu", nil},
	}
	for _, tt := range tests {
		got, ok := r.LookupTriple(triple.MustParse(tt.triple))
		if tt.want == nil {
			if ok {
				t.Errorf("%s: expected no match, got %s", tt.triple, got)
			}
			continue
		}
		if !ok || got != tt.want {
			t.Errorf("%s: expected %s, got %v", tt.triple, tt.want, got)
		}
	}

	// plain "bpf" in a triple resolves to the host-endian concrete variant,
	// never to the "bpf" alias target
	got, ok := r.LookupTriple(triple.MustParse("bpf-unknown-none"))
	if !ok || got == d.host {
		t.Errorf("expected a concrete endian target, got %v", got)
	}
	if d.host.MatchesArch(triple.BPFEL) || d.host.MatchesArch(triple.BPFEB) {
		t.Error("host-endian alias must never match by triple")
	}
}

func TestRegisterTwiceRejected(t *testing.T) {
	d, r := freshFamily()
	defer func() {
		rec := recover()
		if _, ok := rec.(*target.RegistrationError); !ok {
			t.Fatalf("expected *target.RegistrationError, got %v", rec)
		}
		if r.Len() != 4 {
			t.Errorf("expected 4 targets after rejected re-registration, got %d", r.Len())
		}
	}()
	d.register(r)
}

// Only this test touches the process-wide registry and the real singletons.
func TestInitializeTargetInfo(t *testing.T) {
	InitializeTargetInfo()

	seen := make(map[*target.Target]string)
	for _, name := range []string{"bpfel", "bpfeb", "bpf", "sbf"} {
		got, ok := target.Lookup(name)
		if !ok {
			t.Fatalf("Lookup(%q): not registered", name)
		}
		if prev, dup := seen[got]; dup {
			t.Errorf("%q and %q share a descriptor", prev, name)
		}
		seen[got] = name
	}
	if got, _ := target.Lookup("bpfel"); got != TheBPFleTarget() {
		t.Error("registered bpfel is not the singleton")
	}
	if _, ok := target.Lookup("nonexistent"); ok {
		t.Error("expected no target for nonexistent name")
	}

	defer func() {
		if _, ok := recover().(*target.RegistrationError); !ok {
			t.Error("second InitializeTargetInfo must be rejected")
		}
		if target.Default().Len() != 4 {
			t.Errorf("expected 4 targets, got %d", target.Default().Len())
		}
	}()
	InitializeTargetInfo()
}

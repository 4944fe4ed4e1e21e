// Package bpf declares the BPF target family: little-endian, big-endian and
// host-endian eBPF, plus the SBF derivative.
package bpf

import (
	"fmt"

	"targetinfo/internal/target"
	"targetinfo/internal/triple"
)

// VariantKey selects one of the family's descriptors.
type VariantKey uint8

const (
	LittleEndian VariantKey = iota
	BigEndian
	HostEndian
	SBF
)

func (k VariantKey) String() string {
	switch k {
	case LittleEndian:
		return "bpfel"
	case BigEndian:
		return "bpfeb"
	case HostEndian:
		return "bpf"
	case SBF:
		return "sbf"
	default:
		return fmt.Sprintf("VariantKey(%d)", uint8(k))
	}
}

var (
	theBPFle = target.NewDescriptor()
	theBPFbe = target.NewDescriptor()
	theBPF   = target.NewDescriptor()
	theSBF   = target.NewDescriptor()
)

// TheBPFleTarget returns the little-endian BPF target.
func TheBPFleTarget() *target.Target { return theBPFle() }

// TheBPFbeTarget returns the big-endian BPF target.
func TheBPFbeTarget() *target.Target { return theBPFbe() }

// TheBPFTarget returns the host-endian BPF target.
func TheBPFTarget() *target.Target { return theBPF() }

// TheSBFTarget returns the SBF target.
func TheSBFTarget() *target.Target { return theSBF() }

// Descriptor returns the singleton for key. It panics on an unknown key.
func Descriptor(key VariantKey) *target.Target {
	switch key {
	case LittleEndian:
		return TheBPFleTarget()
	case BigEndian:
		return TheBPFbeTarget()
	case HostEndian:
		return TheBPFTarget()
	case SBF:
		return TheSBFTarget()
	}
	panic(fmt.Sprintf("bpf: unknown variant %s", key))
}

// RegisterTargetInfo registers the family's descriptors in r. The
// descriptors are process-wide, so this succeeds at most once per process.
func RegisterTargetInfo(r *target.Registry) {
	descriptors{
		host: TheBPFTarget(),
		le:   TheBPFleTarget(),
		be:   TheBPFbeTarget(),
		sbf:  TheSBFTarget(),
	}.register(r)
}

type descriptors struct {
	host, le, be, sbf *target.Target
}

// register adds the family in its fixed order. The host-endian "bpf" target
// is never picked from a triple; it is only reachable by name.
func (d descriptors) register(r *target.Registry) {
	r.Register(d.host, "bpf", "BPF (host endian)", "BPF", target.NeverMatch, true)
	r.Register(d.le, "bpfel", "BPF (little endian)", "BPF", target.ArchIs(triple.BPFEL), true)
	r.Register(d.be, "bpfeb", "BPF (big endian)", "BPF", target.ArchIs(triple.BPFEB), true)
	r.Register(d.sbf, "sbf", "SBF (little endian)", "SBF", target.ArchIs(triple.SBF), true)
}

// InitializeTargetInfo registers the family in the process-wide registry.
// It must run exactly once; a second call panics.
func InitializeTargetInfo() {
	RegisterTargetInfo(target.Default())
}

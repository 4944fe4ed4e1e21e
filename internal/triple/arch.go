package triple

import (
	"fmt"

	"fortio.org/safecast"
	"golang.org/x/sys/cpu"
)

// ArchType identifies the architecture component of a triple.
type ArchType uint8

const (
	UnknownArch ArchType = iota
	X86
	X86_64
	AArch64
	AArch64BE
	ARM
	ARMEB
	RISCV32
	RISCV64
	MIPS
	MIPSEL
	PPC64
	PPC64LE
	SystemZ
	Wasm32
	Wasm64
	BPFEL // eBPF, little endian
	BPFEB // eBPF, big endian
	SBF   // eBPF derivative, little endian

	archCount
)

var archNames = [archCount]string{
	UnknownArch: "unknown",
	X86:         "x86",
	X86_64:      "x86_64",
	AArch64:     "aarch64",
	AArch64BE:   "aarch64_be",
	ARM:         "arm",
	ARMEB:       "armeb",
	RISCV32:     "riscv32",
	RISCV64:     "riscv64",
	MIPS:        "mips",
	MIPSEL:      "mipsel",
	PPC64:       "ppc64",
	PPC64LE:     "ppc64le",
	SystemZ:     "systemz",
	Wasm32:      "wasm32",
	Wasm64:      "wasm64",
	BPFEL:       "bpfel",
	BPFEB:       "bpfeb",
	SBF:         "sbf",
}

// String returns the canonical name of the architecture.
func (a ArchType) String() string {
	if a >= archCount {
		return fmt.Sprintf("ArchType(%d)", uint8(a))
	}
	return archNames[a]
}

// IsBPF reports whether a belongs to the BPF family.
func (a ArchType) IsBPF() bool {
	return a == BPFEL || a == BPFEB || a == SBF
}

// ArchTypeForName maps a canonical architecture name back to its ArchType.
// Aliases are not accepted here; use ParseArch for user input.
func ArchTypeForName(name string) ArchType {
	for i, n := range archNames {
		if i == int(UnknownArch) {
			continue
		}
		if n == name {
			return ArchType(i)
		}
	}
	return UnknownArch
}

// ParseArch parses the architecture component of a triple, accepting the
// common spellings in addition to canonical names.
func ParseArch(s string) ArchType {
	switch s {
	case "i386", "i486", "i586", "i686":
		return X86
	case "amd64", "x86-64":
		return X86_64
	case "arm64":
		return AArch64
	case "s390x":
		return SystemZ
	case "bpf":
		return hostBPF()
	case "bpf_le":
		return BPFEL
	case "bpf_be":
		return BPFEB
	}
	return ArchTypeForName(s)
}

// hostBPF picks the BPF variant whose byte order matches the host.
func hostBPF() ArchType {
	if cpu.IsBigEndian {
		return BPFEB
	}
	return BPFEL
}

// Ordinal converts a to its wire representation.
func Ordinal(a ArchType) uint8 { return uint8(a) }

// ArchFromOrdinal converts a wire integer back to an ArchType.
func ArchFromOrdinal(n int) (ArchType, error) {
	v, err := safecast.Conv[uint8](n)
	if err != nil {
		return UnknownArch, fmt.Errorf("arch ordinal %d: %w", n, err)
	}
	if v >= uint8(archCount) {
		return UnknownArch, fmt.Errorf("arch ordinal %d out of range", n)
	}
	return ArchType(v), nil
}

// Arches returns every known architecture, excluding UnknownArch.
func Arches() []ArchType {
	out := make([]ArchType, 0, archCount-1)
	for a := UnknownArch + 1; a < archCount; a++ {
		out = append(out, a)
	}
	return out
}

// Package triple models target triples of the form arch-vendor-os[-environment].
package triple

import (
	"errors"
	"runtime"
	"strings"
)

const unknown = "unknown"

// ErrEmpty is returned by Parse for an empty triple string.
var ErrEmpty = errors.New("empty target triple")

// Triple is a parsed target triple.
type Triple struct {
	Arch        ArchType
	ArchName    string // as spelled in the input, e.g. "bpf" for a host-endian BPF arch
	Vendor      string
	OS          string
	Environment string
}

// Parse splits s into its components. Missing components are "unknown";
// an unrecognised arch is kept verbatim in ArchName with Arch set to UnknownArch.
func Parse(s string) (Triple, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Triple{}, ErrEmpty
	}
	parts := strings.SplitN(s, "-", 4)
	for len(parts) < 3 {
		parts = append(parts, unknown)
	}
	t := Triple{
		Arch:     ParseArch(parts[0]),
		ArchName: parts[0],
		Vendor:   orUnknown(parts[1]),
		OS:       orUnknown(parts[2]),
	}
	if len(parts) == 4 {
		t.Environment = parts[3]
	}
	return t, nil
}

// MustParse is like Parse but panics on error. Intended for constants in tests
// and package initialization.
func MustParse(s string) Triple {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

// String renders the triple back to its textual form.
func (t Triple) String() string {
	arch := t.ArchName
	if arch == "" {
		arch = t.Arch.String()
	}
	var sb strings.Builder
	sb.WriteString(arch)
	sb.WriteByte('-')
	sb.WriteString(orUnknown(t.Vendor))
	sb.WriteByte('-')
	sb.WriteString(orUnknown(t.OS))
	if t.Environment != "" {
		sb.WriteByte('-')
		sb.WriteString(t.Environment)
	}
	return sb.String()
}

// WithArch returns a copy of t with the architecture replaced.
func (t Triple) WithArch(a ArchType) Triple {
	t.Arch = a
	t.ArchName = a.String()
	return t
}

// Host returns the triple of the running process.
func Host() Triple {
	arch := ParseArch(runtime.GOARCH)
	switch runtime.GOARCH {
	case "386":
		arch = X86
	case "mipsle":
		arch = MIPSEL
	case "wasm":
		arch = Wasm32
	}
	t := Triple{Arch: arch, Vendor: unknown, OS: runtime.GOOS}
	t.ArchName = arch.String()
	switch runtime.GOOS {
	case "linux":
		t.Environment = "gnu"
	case "darwin":
		t.Vendor = "apple"
	case "windows":
		t.Vendor = "pc"
		t.Environment = "msvc"
	}
	return t
}

func orUnknown(s string) string {
	if s == "" {
		return unknown
	}
	return s
}

// Package all wires every compiled-in target family into the process-wide
// registry.
package all

import (
	"strconv"

	"targetinfo/internal/target"
	"targetinfo/internal/target/bpf"
	"targetinfo/internal/trace"
)

type family struct {
	name string
	init func()
}

var families = []family{
	{"bpf", bpf.InitializeTargetInfo},
}

// Families returns the names of the compiled-in families in initialization
// order.
func Families() []string {
	names := make([]string, len(families))
	for i, f := range families {
		names[i] = f.name
	}
	return names
}

// InitializeAllTargetInfos registers every family and seals the registry.
// Call it once, before the first lookup.
func InitializeAllTargetInfos() {
	r := target.Default()
	span := trace.Begin(r.Tracer(), trace.ScopeDriver, "init-targets", 0)
	for _, f := range families {
		trace.Point(r.Tracer(), trace.ScopeFamily, "family", f.name)
		f.init()
	}
	r.Seal()
	span.WithExtra("targets", strconv.Itoa(r.Len())).End("")
}

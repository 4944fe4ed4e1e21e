// Package target holds the process-wide catalog of compilation targets.
//
// Each target family declares one descriptor per variant and registers them
// from a single entry point (see the bpf subpackage). The embedding program
// runs every family entry point once, seals the registry, and only then looks
// targets up by name or by triple:
//
//	all.InitializeAllTargetInfos()
//	t, ok := target.Lookup("bpfel")
//	t, ok = target.LookupTriple(triple.MustParse("bpfeb-unknown-none"))
//
// Registration faults (duplicate names, registering into a sealed registry)
// are programmer errors and panic with *RegistrationError. A missing target
// is ordinary control flow and is reported as (nil, false).
package target

package target

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownArch is returned by Resolve when an explicit target name is
	// not registered.
	ErrUnknownArch = errors.New("invalid target")
	// ErrNoTargetForTriple is returned by Resolve when no matcher accepts the
	// triple's architecture.
	ErrNoTargetForTriple = errors.New("no available targets are compatible with triple")
)

// RegistrationError describes a misuse of the registration API. It is raised
// with panic, never returned.
type RegistrationError struct {
	Op     string // "register" or "lookup"
	Name   string
	Reason string
}

func (e *RegistrationError) Error() string {
	return fmt.Sprintf("target registry: %s %q: %s", e.Op, e.Name, e.Reason)
}

func fail(op, name, reason string) {
	panic(&RegistrationError{Op: op, Name: name, Reason: reason})
}

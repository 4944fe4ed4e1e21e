package version

import (
	"strings"
	"testing"
)

func TestVersion_DefaultValues(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
}

func TestColored(t *testing.T) {
	orig := Version
	defer func() { Version = orig }()

	Version = "1.2.3-rc.1"
	if got := Colored(false); got != "1.2.3-rc.1" {
		t.Errorf("expected plain version, got %q", got)
	}

	got := Colored(true)
	if !strings.Contains(got, "\x1b[") {
		t.Errorf("expected escape sequences, got %q", got)
	}
	if !strings.HasSuffix(got, "-rc.1") {
		t.Errorf("expected suffix to be kept, got %q", got)
	}

	Version = "nightly"
	if got := Colored(true); got != "nightly" {
		t.Errorf("expected non-semver version unchanged, got %q", got)
	}

	Version = "  "
	if got := Colored(false); got != "dev" {
		t.Errorf("expected dev for empty version, got %q", got)
	}
}

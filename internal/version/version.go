package version

import (
	"strings"

	"github.com/fatih/color"
)

// Version information for the targetinfo CLI.
// These variables can be overridden at build time via -ldflags.

var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// GitMessage is an optional git commit message.
	GitMessage = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)
)

// Colored renders Version with the major, minor and patch numbers colorized.
// Versions that do not look like major.minor.patch are returned unchanged.
func Colored(enabled bool) string {
	v := strings.TrimSpace(Version)
	if v == "" {
		v = "dev"
	}
	if !enabled {
		return v
	}
	core, suffix := v, ""
	if i := strings.IndexAny(v, "-+"); i >= 0 {
		core, suffix = v[:i], v[i:]
	}
	parts := strings.Split(core, ".")
	if len(parts) != 3 {
		return v
	}
	paint := func(c *color.Color, s string) string {
		c.EnableColor()
		return c.Sprint(s)
	}
	return paint(versionMajorColor, parts[0]) + "." +
		paint(versionMinorColor, parts[1]) + "." +
		paint(versionPatchColor, parts[2]) + suffix
}

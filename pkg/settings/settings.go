// Package settings provides build metadata, per-run configuration, and the
// context helpers that carry them through a psfit invocation.
package settings

// CliBinaryName is the canonical binary name for this tool.
const CliBinaryName = "psfit"

// VersionInformation is populated at build time via ldflags and holds the
// commit hash, semantic version, and build timestamp of the running binary.
var VersionInformation = VersionInfo{
	Commit:       "unknown",
	BuildVersion: "v0.0.0-nightly",
	BuildTime:    "unknown",
}

// VersionInfo holds metadata about the build.
type VersionInfo struct {
	Commit       string
	BuildVersion string
	BuildTime    string
}

// Run holds the resolved settings for a single invocation: flags layered
// over the config file layered over the embedded defaults.
type Run struct {
	MinLogLevel int8
	// Width is the target line width in cells.
	Width int
	// Reserve is the expandable column baseline derived from the layout mode.
	Reserve int
	// Queries are the process-name substrings; empty means list only.
	Queries []string
	NoColor bool
}

// HasQueries reports whether any query was given, which enables the
// summary line.
func (r *Run) HasQueries() bool {
	return r != nil && len(r.Queries) > 0
}

// NewCliParams returns the settings a bare invocation starts from.
func NewCliParams() *Run {
	return &Run{
		MinLogLevel: 0,
		Width:       80,
		Reserve:     74,
	}
}

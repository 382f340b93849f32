package convert

import (
	"fmt"
	"strings"
)

// SkipReason explains why a recognized export definition was left as is.
type SkipReason string

const (
	SkipUnresolved      SkipReason = "unresolved"       // returned name has no declaration
	SkipNoDeclaration   SkipReason = "no-declaration"   // binding is a parameter or function name
	SkipNotTopLevel     SkipReason = "not-top-level"    // declaration is nested in a block
	SkipAlreadyExported SkipReason = "already-exported" // declaration was exported earlier
	SkipSharedDefault   SkipReason = "shared-default"   // default value is still read elsewhere
	SkipInvalidName     SkipReason = "invalid-name"     // export name is not a usable identifier
	SkipCollision       SkipReason = "collision"        // rename would capture or shadow a name
	SkipDestructured    SkipReason = "destructured"     // name is bound inside a destructuring pattern
)

// ExportForm is the module syntax an export definition became.
type ExportForm string

const (
	FormDefault ExportForm = "default"
	FormNamed   ExportForm = "named"
)

// Export records one export definition that was converted.
type Export struct {
	Name  string     `toml:"name"`
	Local string     `toml:"local"`
	Form  ExportForm `toml:"form"`
}

// Skip records one export definition that matched but was not converted.
type Skip struct {
	Name   string     `toml:"name"`
	Local  string     `toml:"local"`
	Reason SkipReason `toml:"reason"`
}

// Report summarizes one conversion pass.
type Report struct {
	Converted []Export `toml:"converted"`
	Skipped   []Skip   `toml:"skipped"`
	// Markers counts removed module marker calls.
	Markers int `toml:"markers"`
	// Module is true when the program ended up in module mode.
	Module bool `toml:"module"`
}

// Changed reports whether the pass modified the program.
func (r *Report) Changed() bool {
	return r.Markers > 0 || len(r.Converted) > 0
}

func (r *Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "markers=%d converted=%d skipped=%d", r.Markers, len(r.Converted), len(r.Skipped))
	for _, e := range r.Converted {
		fmt.Fprintf(&b, "\n  %s export %q from %s", e.Form, e.Name, e.Local)
	}
	for _, s := range r.Skipped {
		fmt.Fprintf(&b, "\n  skip %q (%s): %s", s.Name, s.Local, s.Reason)
	}
	return b.String()
}

// Package parse extracts sparse stats from the human-readable reports
// of the tools mixcheck drives. Every function here is best-effort: if
// an expected pattern is absent the corresponding field is simply not
// reported. Tool output formats drift between versions; a parse miss
// must never fail a stage.
package parse

import "github.com/acarl005/stripansi"

// Clean strips ANSI escape sequences before pattern matching. Most mix
// tools colorize their reports when they detect a terminal.
func Clean(s string) string {
	return stripansi.Strip(s)
}

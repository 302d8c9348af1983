package parse

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// `mix deps.unlock --check-unused` names offenders either inline
	// ("Unused dependencies: ex_doc, credo") or in an Elixir list.
	unusedDepsRe = regexp.MustCompile(`(?i)unused dependencies:?\s*\[?([^\]\n]+)\]?`)

	// mix_audit summarizes with "Found 2 vulnerabilities" or
	// "No vulnerabilities found".
	vulnCountRe = regexp.MustCompile(`(?i)found (\d+) vulnerabilit`)
)

// UnusedDeps returns the unused dependency names from a deps.unlock
// check report.
func UnusedDeps(output string) []string {
	m := unusedDepsRe.FindStringSubmatch(output)
	if m == nil {
		return nil
	}
	var deps []string
	for _, part := range strings.Split(m[1], ",") {
		name := strings.TrimSpace(part)
		name = strings.TrimPrefix(name, ":")
		name = strings.Trim(name, `"`)
		if name != "" {
			deps = append(deps, name)
		}
	}
	return deps
}

// Vulnerabilities returns the advisory count from a mix_audit report.
func Vulnerabilities(output string) (int, bool) {
	if m := vulnCountRe.FindStringSubmatch(output); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return 0, false
		}
		return n, true
	}
	if strings.Contains(strings.ToLower(output), "no vulnerabilities found") {
		return 0, true
	}
	return 0, false
}

package parse

import (
	"regexp"
	"strconv"
)

// Credo's summary line reads "172 mods/funs, found 12 issues." or
// "... found no issues."
var credoIssuesRe = regexp.MustCompile(`found (no|\d+) issues?`)

// CredoIssues returns the issue count from a credo report.
func CredoIssues(output string) (int, bool) {
	m := credoIssuesRe.FindStringSubmatch(output)
	if m == nil {
		return 0, false
	}
	if m[1] == "no" {
		return 0, true
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

package parse

import (
	"regexp"
	"strconv"
	"strings"
)

// dialyxir ends its run with "Total errors: 3, Skipped: 0, Unnecessary
// Skips: 0" on failure, or "done (passed successfully)" when clean.
var dialyzerErrorsRe = regexp.MustCompile(`(?m)^Total errors: (\d+)`)

// DialyzerWarnings returns the warning count from a dialyzer report.
func DialyzerWarnings(output string) (int, bool) {
	if m := dialyzerErrorsRe.FindStringSubmatch(output); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return 0, false
		}
		return n, true
	}
	if strings.Contains(output, "done (passed successfully)") {
		return 0, true
	}
	return 0, false
}

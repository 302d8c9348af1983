package parse

import (
	"regexp"
	"strconv"
)

// ExUnit's closing line has a handful of shapes:
//
//	12 tests, 0 failures
//	4 doctests, 12 tests, 2 failures, 3 excluded, 1 skipped
var exunitRe = regexp.MustCompile(`(?m)^(?:(\d+) doctests?, )?(\d+) tests?, (\d+) failures?(?:, (\d+) excluded)?(?:, (\d+) skipped)?`)

// ExCoveralls prints its aggregate as "[TOTAL]  87.5%".
var coverageRe = regexp.MustCompile(`(?m)^\[TOTAL\]\s+(\d+(?:\.\d+)?)%`)

// TestCounts holds the counts scraped from an ExUnit run. Doctests are
// folded into Tests, matching how ExUnit totals them.
type TestCounts struct {
	Tests    int
	Failures int
	Excluded int
	Skipped  int
}

// ExUnitCounts scrapes the ExUnit summary line.
func ExUnitCounts(output string) (TestCounts, bool) {
	m := exunitRe.FindStringSubmatch(output)
	if m == nil {
		return TestCounts{}, false
	}
	var c TestCounts
	c.Tests = atoi(m[1]) + atoi(m[2])
	c.Failures = atoi(m[3])
	c.Excluded = atoi(m[4])
	c.Skipped = atoi(m[5])
	return c, true
}

// Coverage scrapes the ExCoveralls total percentage.
func Coverage(output string) (float64, bool) {
	m := coverageRe.FindStringSubmatch(output)
	if m == nil {
		return 0, false
	}
	pct, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return pct, true
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// Package metrics reads machine-readable reports emitted by the host
// project's test tooling.
package metrics

import "github.com/joshdk/go-junit"

// TestReport aggregates counts across all suites of a JUnit XML file.
type TestReport struct {
	Tests    int
	Failures int
	Errors   int
	Skipped  int
	Seconds  float64
}

// ParseJUnitReport ingests a JUnit XML file, as written by
// junit_formatter when the host project configures it. The library
// handles the format's variants (single suite, nested testsuites,
// multiple roots).
func ParseJUnitReport(path string) (*TestReport, error) {
	suites, err := junit.IngestFile(path)
	if err != nil {
		return nil, err
	}

	var r TestReport
	for _, suite := range suites {
		r.Tests += len(suite.Tests)
		for _, test := range suite.Tests {
			switch test.Status {
			case junit.StatusFailed:
				r.Failures++
			case junit.StatusError:
				r.Errors++
			case junit.StatusSkipped:
				r.Skipped++
			}
			r.Seconds += test.Duration.Seconds()
		}
	}
	return &r, nil
}

// Package model defines the result types shared across mixcheck stages.
package model

// Status is the terminal classification of a completed stage.
type Status string

const (
	StatusOk      Status = "OK"
	StatusError   Status = "ERROR"
	StatusSkipped Status = "SKIPPED"
)

// Stats field vocabulary. A stage sets only the fields it actually
// computed; a missing key means not-applicable, never zero.
const (
	StatTests             = "tests"
	StatFailures          = "failures"
	StatExcluded          = "excluded"
	StatSkipped           = "skipped"
	StatCoverage          = "coverage"
	StatCoverageThreshold = "coverage_threshold"
	StatIssues            = "issues"
	StatWarnings          = "warnings"
	StatFilesFormatted    = "files_formatted"
	StatMissingDocs       = "missing_docs"
	StatStalePots         = "stale_pots"
	StatUnusedDeps        = "unused_deps"
	StatVulnerabilities   = "vulnerabilities"
)

// Stats is an open mapping over the fixed field vocabulary above.
type Stats map[string]any

// StageResult is the uniform record every stage produces exactly once.
// DurationMs is measured by the pipeline around the stage invocation,
// not by the external tool.
type StageResult struct {
	Name       string
	Status     Status
	Output     string
	Stats      Stats
	Summary    string
	DurationMs int64
}

package parse

import "regexp"

// `mix format --check-formatted` lists offenders as indented bullets:
//
//	The following files are not formatted:
//	  * lib/foo.ex
//	  * test/foo_test.exs
var bulletRe = regexp.MustCompile(`(?m)^\s+\* (.+?)\s*$`)

// UnformattedFiles returns the file list from a failed format check.
// An empty slice means the check output named no files.
func UnformattedFiles(output string) []string {
	var files []string
	for _, m := range bulletRe.FindAllStringSubmatch(output, -1) {
		files = append(files, m[1])
	}
	return files
}

package parse

import "strings"

// StalePotFiles returns the POT files a gettext.extract
// --check-up-to-date run reported as missing or out of date. The
// listing reuses the same bullet shape as the format check.
func StalePotFiles(output string) []string {
	if !strings.Contains(output, "out of date") && !strings.Contains(output, "not extracted") {
		return nil
	}
	return UnformattedFiles(output)
}

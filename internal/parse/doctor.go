package parse

import (
	"regexp"
	"strconv"
)

// mix doctor closes with a summary block:
//
//	Passed Modules: 18
//	Failed Modules: 3
var doctorFailedRe = regexp.MustCompile(`(?m)^Failed Modules:\s+(\d+)`)

// DoctorFailures returns the count of modules failing doc validation.
func DoctorFailures(output string) (int, bool) {
	m := doctorFailedRe.FindStringSubmatch(output)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

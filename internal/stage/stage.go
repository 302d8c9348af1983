// Package stage implements the units of pipeline work. Each stage
// wraps one external tool (or a fixed pair of invocations), scrapes
// the report into sparse stats, and returns a uniform result. Expected
// failures such as a missing tool or a non-zero exit never panic; they
// fold into an Error-status result.
package stage

import (
	"context"
	"fmt"

	"github.com/ewalker/mixcheck/internal/config"
	"github.com/ewalker/mixcheck/internal/model"
)

// Stage is one unit of pipeline work. Implementations read the shared
// config but mutate nothing outside their own return value, which is
// what makes the analysis fan-out safe.
type Stage interface {
	ID() string
	Name() string
	Run(ctx context.Context, cfg *config.Config) model.StageResult
}

// invocationError reports that a tool could not be started at all,
// distinct from the tool running and finding problems.
func invocationError(name string, err error) model.StageResult {
	return model.StageResult{
		Name:    name,
		Status:  model.StatusError,
		Summary: fmt.Sprintf("unable to run: %v", err),
	}
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

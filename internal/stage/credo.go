package stage

import (
	"context"
	"fmt"

	"github.com/ewalker/mixcheck/internal/config"
	"github.com/ewalker/mixcheck/internal/model"
	"github.com/ewalker/mixcheck/internal/parse"
)

// Credo runs the lint analysis.
type Credo struct {
	Runner Runner
	Dir    string
}

func (Credo) ID() string   { return "credo" }
func (Credo) Name() string { return "Credo" }

func (c Credo) Run(ctx context.Context, cfg *config.Config) model.StageResult {
	args := []string{"credo"}
	if cfg.Stages.Credo.Strict {
		args = append(args, "--strict")
	}
	args = append(args, cfg.Stages.Credo.Args...)

	out, code, err := c.Runner.Run(ctx, c.Dir, nil, cfg.Mix, args...)
	if err != nil {
		return invocationError(c.Name(), err)
	}

	clean := parse.Clean(out)
	res := model.StageResult{Name: c.Name(), Output: clean}
	issues, found := parse.CredoIssues(clean)
	if found {
		res.Stats = model.Stats{model.StatIssues: issues}
	}

	if code == 0 {
		res.Status = model.StatusOk
		res.Summary = "No issues found"
		return res
	}

	res.Status = model.StatusError
	if found {
		res.Summary = fmt.Sprintf("%d issue%s found", issues, plural(issues))
	} else {
		res.Summary = "credo reported problems"
	}
	return res
}

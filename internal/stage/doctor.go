package stage

import (
	"context"
	"fmt"

	"github.com/ewalker/mixcheck/internal/config"
	"github.com/ewalker/mixcheck/internal/model"
	"github.com/ewalker/mixcheck/internal/parse"
)

// Doctor runs the documentation coverage check.
type Doctor struct {
	Runner Runner
	Dir    string
}

func (Doctor) ID() string   { return "doctor" }
func (Doctor) Name() string { return "Doctor" }

func (d Doctor) Run(ctx context.Context, cfg *config.Config) model.StageResult {
	out, code, err := d.Runner.Run(ctx, d.Dir, nil, cfg.Mix, "doctor")
	if err != nil {
		return invocationError(d.Name(), err)
	}

	clean := parse.Clean(out)
	res := model.StageResult{Name: d.Name(), Output: clean}
	failed, found := parse.DoctorFailures(clean)
	if found {
		res.Stats = model.Stats{model.StatMissingDocs: failed}
	}

	if code == 0 {
		res.Status = model.StatusOk
		res.Summary = "Documentation coverage ok"
		return res
	}

	res.Status = model.StatusError
	if found {
		res.Summary = fmt.Sprintf("%d module%s failing doc validation", failed, plural(failed))
	} else {
		res.Summary = "doctor reported problems"
	}
	return res
}

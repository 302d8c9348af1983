package stage

import (
	"context"
	"fmt"

	"github.com/ewalker/mixcheck/internal/config"
	"github.com/ewalker/mixcheck/internal/model"
	"github.com/ewalker/mixcheck/internal/parse"
)

// Dialyzer runs the type analysis. The pipeline suppresses this stage
// entirely in quick mode; it is categorically slow.
type Dialyzer struct {
	Runner Runner
	Dir    string
}

func (Dialyzer) ID() string   { return "dialyzer" }
func (Dialyzer) Name() string { return "Dialyzer" }

func (d Dialyzer) Run(ctx context.Context, cfg *config.Config) model.StageResult {
	args := append([]string{"dialyzer"}, cfg.Stages.Dialyzer.Args...)

	out, code, err := d.Runner.Run(ctx, d.Dir, nil, cfg.Mix, args...)
	if err != nil {
		return invocationError(d.Name(), err)
	}

	clean := parse.Clean(out)
	res := model.StageResult{Name: d.Name(), Output: clean}
	warnings, found := parse.DialyzerWarnings(clean)
	if found {
		res.Stats = model.Stats{model.StatWarnings: warnings}
	}

	if code == 0 {
		res.Status = model.StatusOk
		res.Summary = "No type warnings"
		return res
	}

	res.Status = model.StatusError
	if found {
		res.Summary = fmt.Sprintf("%d type warning%s", warnings, plural(warnings))
	} else {
		res.Summary = "dialyzer reported problems"
	}
	return res
}

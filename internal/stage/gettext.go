package stage

import (
	"context"
	"fmt"

	"github.com/ewalker/mixcheck/internal/config"
	"github.com/ewalker/mixcheck/internal/model"
	"github.com/ewalker/mixcheck/internal/parse"
)

// Gettext verifies that extracted translation templates are current.
type Gettext struct {
	Runner Runner
	Dir    string
}

func (Gettext) ID() string   { return "gettext" }
func (Gettext) Name() string { return "Gettext" }

func (g Gettext) Run(ctx context.Context, cfg *config.Config) model.StageResult {
	out, code, err := g.Runner.Run(ctx, g.Dir, nil, cfg.Mix, "gettext.extract", "--check-up-to-date")
	if err != nil {
		return invocationError(g.Name(), err)
	}

	clean := parse.Clean(out)
	if code == 0 {
		return model.StageResult{
			Name:    g.Name(),
			Status:  model.StatusOk,
			Summary: "Translations up to date",
		}
	}

	res := model.StageResult{
		Name:    g.Name(),
		Status:  model.StatusError,
		Output:  clean,
		Summary: "translation templates out of date",
	}
	if stale := parse.StalePotFiles(clean); len(stale) > 0 {
		res.Stats = model.Stats{model.StatStalePots: len(stale)}
		res.Summary = fmt.Sprintf("%d stale POT file%s", len(stale), plural(len(stale)))
	}
	return res
}

package stage

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ewalker/mixcheck/internal/config"
	"github.com/ewalker/mixcheck/internal/metrics"
	"github.com/ewalker/mixcheck/internal/model"
	"github.com/ewalker/mixcheck/internal/parse"
)

// Tests runs the test suite. Exactly one of two invocations is chosen:
// the coverage-aware one when a coverage tool is available and quick
// mode is off, the plain one otherwise. Coverage thresholds are
// enforced by the coverage tool itself; this stage only reads the
// computed percentage for display.
type Tests struct {
	Runner Runner
	Dir    string
}

func (Tests) ID() string   { return "test" }
func (Tests) Name() string { return "Tests" }

func (t Tests) Run(ctx context.Context, cfg *config.Config) model.StageResult {
	task := "test"
	withCoverage := cfg.Stages.Test.Available && !cfg.Quick
	if withCoverage {
		task = "coveralls"
	}
	args := append([]string{task}, cfg.Stages.Test.Args...)

	out, code, err := t.Runner.Run(ctx, t.Dir, []string{"MIX_ENV=test"}, cfg.Mix, args...)
	if err != nil {
		return invocationError(t.Name(), err)
	}

	clean := parse.Clean(out)
	res := model.StageResult{Name: t.Name(), Output: clean, Stats: model.Stats{}}

	if counts, found := parse.ExUnitCounts(clean); found {
		res.Stats[model.StatTests] = counts.Tests
		res.Stats[model.StatFailures] = counts.Failures
		if counts.Excluded > 0 {
			res.Stats[model.StatExcluded] = counts.Excluded
		}
		if counts.Skipped > 0 {
			res.Stats[model.StatSkipped] = counts.Skipped
		}
	}
	if withCoverage {
		if pct, found := parse.Coverage(clean); found {
			res.Stats[model.StatCoverage] = pct
			if cfg.Stages.Test.CoverageThreshold > 0 {
				res.Stats[model.StatCoverageThreshold] = cfg.Stages.Test.CoverageThreshold
			}
		}
	}

	// A JUnit report, when the project writes one, has authoritative
	// counts; prefer it over the scraped summary line.
	if report := cfg.Stages.Test.JUnitReport; report != "" {
		if jr, err := metrics.ParseJUnitReport(filepath.Join(t.Dir, report)); err == nil {
			res.Stats[model.StatTests] = jr.Tests
			res.Stats[model.StatFailures] = jr.Failures + jr.Errors
			if jr.Skipped > 0 {
				res.Stats[model.StatSkipped] = jr.Skipped
			}
		}
	}

	res.Summary = t.summarize(res.Stats, code)
	if code == 0 {
		res.Status = model.StatusOk
	} else {
		res.Status = model.StatusError
	}
	return res
}

func (Tests) summarize(stats model.Stats, code int) string {
	var parts []string
	if tests, ok := stats[model.StatTests]; ok {
		parts = append(parts, fmt.Sprintf("%v tests, %v failures", tests, stats[model.StatFailures]))
	}
	if pct, ok := stats[model.StatCoverage]; ok {
		if threshold, has := stats[model.StatCoverageThreshold]; has {
			parts = append(parts, fmt.Sprintf("%.1f%% coverage (target %.1f%%)", pct, threshold))
		} else {
			parts = append(parts, fmt.Sprintf("%.1f%% coverage", pct))
		}
	}
	if len(parts) > 0 {
		return strings.Join(parts, ", ")
	}
	if code == 0 {
		return "Tests passed"
	}
	return "Tests failed"
}

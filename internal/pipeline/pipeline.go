// Package pipeline drives a check run: the fix stage first, then the
// compile gate, then a concurrent fan-out of every enabled analysis
// stage. Results print as stages finish; aggregation waits for all of
// them (no early cancellation of stragglers).
package pipeline

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ewalker/mixcheck/internal/config"
	"github.com/ewalker/mixcheck/internal/model"
	"github.com/ewalker/mixcheck/internal/printer"
	"github.com/ewalker/mixcheck/internal/stage"
)

// Outcome is the aggregate of one run.
type Outcome struct {
	Results []model.StageResult
	// CompileFailed marks the gate: analysis stages never ran.
	CompileFailed bool
}

// Ok reports whether every recorded stage finished without error.
func (o Outcome) Ok() bool {
	return o.Failed() == 0
}

// Failed counts Error-status results.
func (o Outcome) Failed() int {
	n := 0
	for _, r := range o.Results {
		if r.Status == model.StatusError {
			n++
		}
	}
	return n
}

// Pipeline owns the resolved config for the run's lifetime and hands
// read-only references to each stage task.
type Pipeline struct {
	cfg     *config.Config
	printer *printer.Printer
	runner  stage.Runner
	dir     string
}

// New builds a pipeline rooted at the Mix project directory.
func New(cfg *config.Config, pr *printer.Printer, runner stage.Runner, dir string) *Pipeline {
	return &Pipeline{cfg: cfg, printer: pr, runner: runner, dir: dir}
}

// Run executes the staged pipeline. Format always runs and never
// blocks progress. A compile failure aborts before any analysis stage
// starts; any other failure is recorded and siblings run to
// completion. Every stage runs exactly once, no retries.
func (p *Pipeline) Run(ctx context.Context) Outcome {
	var results []model.StageResult

	res := p.runStage(ctx, stage.Format{Runner: p.runner, Dir: p.dir})
	p.printer.PrintResult(res)
	results = append(results, res)

	res = p.runStage(ctx, stage.Compile{Runner: p.runner, Dir: p.dir})
	p.printer.PrintResult(res)
	results = append(results, res)
	if res.Status == model.StatusError {
		return Outcome{Results: results, CompileFailed: true}
	}

	stages := p.analysisStages()
	fanned := make([]model.StageResult, len(stages))
	var g errgroup.Group
	for i, st := range stages {
		g.Go(func() error {
			r := p.runStage(ctx, st)
			p.printer.PrintResult(r)
			fanned[i] = r
			return nil
		})
	}
	_ = g.Wait()

	results = append(results, fanned...)
	return Outcome{Results: results}
}

// analysisStages selects the concurrent phase. Optional stages follow
// their enabled tri-state; Dialyzer is additionally suppressed in
// quick mode regardless of availability; Tests always run.
func (p *Pipeline) analysisStages() []stage.Stage {
	s := p.cfg.Stages
	var out []stage.Stage

	if config.StageEnabled(s.Credo.StageSettings) {
		out = append(out, stage.Credo{Runner: p.runner, Dir: p.dir})
	}
	if !p.cfg.Quick && config.StageEnabled(s.Dialyzer.StageSettings) {
		out = append(out, stage.Dialyzer{Runner: p.runner, Dir: p.dir})
	}
	if config.StageEnabled(s.Doctor.StageSettings) {
		out = append(out, stage.Doctor{Runner: p.runner, Dir: p.dir})
	}
	if config.StageEnabled(s.Gettext.StageSettings) {
		out = append(out, stage.Gettext{Runner: p.runner, Dir: p.dir})
	}
	if config.StageEnabled(s.Audit.StageSettings) {
		out = append(out, stage.Audit{Runner: p.runner, Dir: p.dir})
	}
	out = append(out, stage.Tests{Runner: p.runner, Dir: p.dir})
	return out
}

// runStage times the stage around its invocation and folds a panicking
// stage into an Error result, so every selected stage yields exactly
// one record even on an internal fault.
func (p *Pipeline) runStage(ctx context.Context, st stage.Stage) (res model.StageResult) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			res = model.StageResult{
				Name:    st.Name(),
				Status:  model.StatusError,
				Summary: fmt.Sprintf("internal error: %v", r),
			}
		}
		res.DurationMs = time.Since(start).Milliseconds()
	}()
	return st.Run(ctx, p.cfg)
}

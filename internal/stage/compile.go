package stage

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/ewalker/mixcheck/internal/config"
	"github.com/ewalker/mixcheck/internal/model"
	"github.com/ewalker/mixcheck/internal/parse"
)

// compileProfiles fixes the declaration order that also decides which
// failure is reported when both profiles fail. Completion order does
// not matter, keeping the result deterministic.
var compileProfiles = [2]string{"dev", "test"}

// Compile is the gate between auto-fix and analysis: both build
// profiles must compile before any analysis stage starts. The two
// profile builds run concurrently.
type Compile struct {
	Runner Runner
	Dir    string
}

func (Compile) ID() string   { return "compile" }
func (Compile) Name() string { return "Compile" }

// Run compiles the dev and test profiles concurrently. A failure is
// attributed to its profile in the result name; when both fail, only
// the first declared profile is reported.
func (c Compile) Run(ctx context.Context, cfg *config.Config) model.StageResult {
	args := []string{"compile"}
	if cfg.Stages.Compile.WarningsAsErrors {
		args = append(args, "--warnings-as-errors")
	}

	type subResult struct {
		output string
		code   int
		err    error
	}
	var subs [2]subResult

	var g errgroup.Group
	for i, profile := range compileProfiles {
		g.Go(func() error {
			out, code, err := c.Runner.Run(ctx, c.Dir, []string{"MIX_ENV=" + profile}, cfg.Mix, args...)
			subs[i] = subResult{output: out, code: code, err: err}
			return nil
		})
	}
	_ = g.Wait()

	for i, profile := range compileProfiles {
		sub := subs[i]
		name := fmt.Sprintf("Compile (%s)", profile)
		if sub.err != nil {
			return invocationError(name, sub.err)
		}
		if sub.code != 0 {
			return model.StageResult{
				Name:    name,
				Status:  model.StatusError,
				Output:  parse.Clean(sub.output),
				Summary: fmt.Sprintf("compilation failed in the %s profile", profile),
			}
		}
	}

	return model.StageResult{
		Name:    c.Name(),
		Status:  model.StatusOk,
		Summary: "Compiled without warnings",
	}
}

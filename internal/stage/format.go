package stage

import (
	"context"
	"fmt"

	"github.com/ewalker/mixcheck/internal/config"
	"github.com/ewalker/mixcheck/internal/model"
	"github.com/ewalker/mixcheck/internal/parse"
)

// Format is the auto-fix stage and the only one with a side effect
// beyond reading: it rewrites source files in place. It runs before
// anything else sees the code and cannot fail on syntactically valid
// input; the sole Error case is failing to invoke the formatter.
type Format struct {
	Runner Runner
	Dir    string
}

func (Format) ID() string   { return "format" }
func (Format) Name() string { return "Format" }

// Run checks formatting first to learn which files need rewriting,
// then applies the fix. A clean check short-circuits.
func (f Format) Run(ctx context.Context, cfg *config.Config) model.StageResult {
	out, code, err := f.Runner.Run(ctx, f.Dir, nil, cfg.Mix, "format", "--check-formatted")
	if err != nil {
		return invocationError(f.Name(), err)
	}

	clean := parse.Clean(out)
	if code == 0 {
		return model.StageResult{
			Name:    f.Name(),
			Status:  model.StatusOk,
			Stats:   model.Stats{model.StatFilesFormatted: 0},
			Summary: "No changes needed",
		}
	}

	files := parse.UnformattedFiles(clean)
	fixOut, fixCode, err := f.Runner.Run(ctx, f.Dir, nil, cfg.Mix, "format")
	if err != nil {
		return invocationError(f.Name(), err)
	}
	if fixCode != 0 {
		// The check listed files but the rewrite refused; surface the
		// rewrite output, it names the offending file.
		return model.StageResult{
			Name:    f.Name(),
			Status:  model.StatusError,
			Output:  parse.Clean(fixOut),
			Summary: "mix format failed",
		}
	}

	return model.StageResult{
		Name:    f.Name(),
		Status:  model.StatusOk,
		Output:  clean,
		Stats:   model.Stats{model.StatFilesFormatted: len(files)},
		Summary: fmt.Sprintf("Formatted %d file%s", len(files), plural(len(files))),
	}
}

package stage

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/ewalker/mixcheck/internal/config"
	"github.com/ewalker/mixcheck/internal/model"
	"github.com/ewalker/mixcheck/internal/parse"
)

// Audit runs the two dependency checks (unused dependencies and known
// security advisories) concurrently. When both find problems, the
// result combines both reports under labeled sections instead of
// picking one.
type Audit struct {
	Runner Runner
	Dir    string
}

func (Audit) ID() string   { return "audit" }
func (Audit) Name() string { return "Deps audit" }

func (a Audit) Run(ctx context.Context, cfg *config.Config) model.StageResult {
	type subResult struct {
		output string
		code   int
		err    error
	}
	var unused, vulns subResult

	var g errgroup.Group
	g.Go(func() error {
		out, code, err := a.Runner.Run(ctx, a.Dir, nil, cfg.Mix, "deps.unlock", "--check-unused")
		unused = subResult{out, code, err}
		return nil
	})
	g.Go(func() error {
		out, code, err := a.Runner.Run(ctx, a.Dir, nil, cfg.Mix, "deps.audit")
		vulns = subResult{out, code, err}
		return nil
	})
	_ = g.Wait()

	if unused.err != nil {
		return invocationError(a.Name(), unused.err)
	}
	if vulns.err != nil {
		return invocationError(a.Name(), vulns.err)
	}

	res := model.StageResult{Name: a.Name(), Stats: model.Stats{}}
	var sections, problems []string

	if unused.code != 0 {
		clean := parse.Clean(unused.output)
		sections = append(sections, "== Unused dependencies ==\n"+strings.TrimRight(clean, "\n"))
		if deps := parse.UnusedDeps(clean); len(deps) > 0 {
			res.Stats[model.StatUnusedDeps] = len(deps)
			problems = append(problems, fmt.Sprintf("%d unused dep%s", len(deps), plural(len(deps))))
		} else {
			problems = append(problems, "unused deps")
		}
	}
	if vulns.code != 0 {
		clean := parse.Clean(vulns.output)
		sections = append(sections, "== Security advisories ==\n"+strings.TrimRight(clean, "\n"))
		if n, found := parse.Vulnerabilities(clean); found {
			res.Stats[model.StatVulnerabilities] = n
			problems = append(problems, fmt.Sprintf("%d vulnerabilit%s", n, pluralY(n)))
		} else {
			problems = append(problems, "vulnerabilities")
		}
	}

	if len(sections) == 0 {
		res.Status = model.StatusOk
		res.Summary = "Dependencies clean"
		if n, found := parse.Vulnerabilities(parse.Clean(vulns.output)); found {
			res.Stats[model.StatVulnerabilities] = n
		}
		return res
	}

	res.Status = model.StatusError
	res.Output = strings.Join(sections, "\n\n")
	res.Summary = strings.Join(problems, ", ")
	return res
}

func pluralY(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}

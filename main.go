// mixcheck - staged quality pipeline for Mix projects.
//
// Runs the formatter, gates on a clean compile of both build profiles,
// then fans out the enabled analysis tools concurrently.

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/ewalker/mixcheck/internal/config"
	"github.com/ewalker/mixcheck/internal/detect"
	"github.com/ewalker/mixcheck/internal/model"
	"github.com/ewalker/mixcheck/internal/pipeline"
	"github.com/ewalker/mixcheck/internal/printer"
	"github.com/ewalker/mixcheck/internal/stage"
)

const version = "0.3.0"

func main() {
	var (
		flagConfig  string
		flagQuick   bool
		flagVerbose bool
		flagNoColor bool
		flagVersion bool
	)

	flag.StringVar(&flagConfig, "config", "", "Path to config file (default: <project>/.mixcheck.toml)")
	flag.BoolVar(&flagQuick, "quick", false, "Quick mode: skip dialyzer, run tests without coverage")
	flag.BoolVar(&flagVerbose, "verbose", false, "Echo full tool output even on success")
	flag.BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	flag.BoolVar(&flagVersion, "version", false, "Print version and exit")

	skipFlags := map[string]*bool{}
	for _, id := range []string{"credo", "dialyzer", "doctor", "gettext", "audit"} {
		skipFlags[id] = flag.Bool("skip-"+id, false, "Skip the "+id+" stage")
	}
	flag.Parse()

	if flagVersion {
		fmt.Printf("mixcheck version %s\n", version)
		return
	}

	projectRoot, found := detect.ProjectRoot()
	if !found {
		fmt.Fprintln(os.Stderr, "ERROR: no mix.exs found; run mixcheck inside a Mix project")
		os.Exit(2)
	}

	avail := detect.Detect(projectRoot)
	opts := config.CLIOptions{
		ConfigPath: flagConfig,
		Quick:      flagQuick,
		Verbose:    flagVerbose,
		Skip:       collectSkips(skipFlags),
	}

	cfg, warnings, err := config.Resolve(projectRoot, avail, opts)
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "WARNING: %s\n", w)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(2)
	}

	pr := printer.New(os.Stdout, !flagNoColor && printer.ColorsEnabled(), cfg.Verbose)
	pr.Header(projectRoot, cfg.Quick)

	start := time.Now()
	outcome := pipeline.New(cfg, pr, stage.ExecRunner{}, projectRoot).Run(context.Background())
	totalMs := time.Since(start).Milliseconds()

	// Quick triage already printed per stage; now echo the complete
	// diagnostics for everything that failed.
	for _, r := range outcome.Results {
		if r.Status == model.StatusError && r.Output != "" {
			pr.PrintOutput(r)
		}
	}

	pr.Summary(outcome.Results, totalMs)
	os.Exit(verdict(pr, outcome))
}

// verdict prints the closing line and picks the process exit code. A
// compile failure gets its own fatal message, distinct from the
// generic count of failed checks.
func verdict(pr *printer.Printer, outcome pipeline.Outcome) int {
	colors := pr.Colors()
	switch {
	case outcome.CompileFailed:
		pr.Message("%s", colors.Red("mixcheck: compilation failed, analysis not run"))
		return 1
	case !outcome.Ok():
		n := outcome.Failed()
		pr.Message("%s", colors.Red(fmt.Sprintf("mixcheck: %d check%s failed", n, pluralS(n))))
		return 1
	default:
		pr.Message("%s", colors.Green("mixcheck: all checks passed"))
		return 0
	}
}

func collectSkips(skipFlags map[string]*bool) []string {
	var skips []string
	for id, set := range skipFlags {
		if *set {
			skips = append(skips, id)
		}
	}
	return skips
}

func pluralS(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

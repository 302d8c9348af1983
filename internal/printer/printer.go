// Package printer is the single output path for a run. Stages finish
// at arbitrary, overlapping times; the printer's mutex guarantees that
// the lines belonging to one result land contiguously in the stream.
package printer

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/ewalker/mixcheck/internal/model"
)

// Printer serializes console output across concurrently finishing
// stages. No stage writes to the terminal directly.
type Printer struct {
	mu      sync.Mutex
	out     io.Writer
	colors  *Colors
	verbose bool
}

// New creates a printer writing to out. Lifecycle is one run; the
// pipeline constructs it and hands it to each stage task by reference.
func New(out io.Writer, enableColors, verbose bool) *Printer {
	return &Printer{
		out:     out,
		colors:  NewColors(enableColors),
		verbose: verbose,
	}
}

// PrintResult emits the one-line synopsis for a completed stage.
// In verbose mode successful stages also echo their captured output;
// failed stages get their full echo after aggregation instead, so the
// diagnostics land below the synopsis lines.
func (p *Printer) PrintResult(res model.StageResult) {
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintf(p.out, "%s %s: %s (%s)\n",
		p.colors.StatusSymbol(res.Status), res.Name, res.Summary, FormatDuration(res.DurationMs))

	if p.verbose && res.Status != model.StatusError && res.Output != "" {
		fmt.Fprintln(p.out, strings.TrimRight(res.Output, "\n"))
	}
}

// PrintOutput echoes a stage's full captured output under a labeled
// divider. Used after aggregation for every failed stage.
func (p *Printer) PrintOutput(res model.StageResult) {
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintf(p.out, "\n%s\n", p.colors.Bold("── "+res.Name+" ──"))
	fmt.Fprintln(p.out, strings.TrimRight(res.Output, "\n"))
}

// Message prints a standalone line under the same gate.
func (p *Printer) Message(format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, format+"\n", args...)
}

// Header prints the run preamble.
func (p *Printer) Header(projectRoot string, quick bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	mode := "full"
	if quick {
		mode = "quick"
	}
	fmt.Fprintln(p.out, p.colors.Bold("mixcheck")+" ("+mode+")")
	fmt.Fprintf(p.out, "Project: %s\n\n", projectRoot)
}

// Summary prints the closing per-stage table and total wall time.
func (p *Printer) Summary(results []model.StageResult, totalMs int64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	nameWidth := 0
	for _, r := range results {
		if len(r.Name) > nameWidth {
			nameWidth = len(r.Name)
		}
	}

	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, p.colors.Bold("Summary:"))
	for _, r := range results {
		fmt.Fprintf(p.out, "  %s %-*s %s\n",
			p.colors.StatusSymbol(r.Status), nameWidth, r.Name, FormatDuration(r.DurationMs))
	}
	fmt.Fprintf(p.out, "\nTotal: %s\n", FormatDuration(totalMs))
}

// Colors exposes the color helpers for the final verdict lines.
func (p *Printer) Colors() *Colors {
	return p.colors
}

// FormatDuration renders milliseconds below one second as "842ms" and
// everything else as seconds to one decimal.
func FormatDuration(ms int64) string {
	if ms < 1000 {
		return fmt.Sprintf("%dms", ms)
	}
	return fmt.Sprintf("%.1fs", float64(ms)/1000.0)
}

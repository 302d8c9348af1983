package pipeline

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/ewalker/mixcheck/internal/config"
	"github.com/ewalker/mixcheck/internal/model"
	"github.com/ewalker/mixcheck/internal/printer"
	"github.com/ewalker/mixcheck/internal/stage"
)

type scriptedResponse struct {
	output string
	code   int
}

// scriptedRunner answers invocations by their joined env+args key and
// records what ran. Unscripted invocations succeed with empty output.
type scriptedRunner struct {
	mu        sync.Mutex
	responses map[string]scriptedResponse
	calls     []string
}

func newScriptedRunner() *scriptedRunner {
	return &scriptedRunner{responses: map[string]scriptedResponse{}}
}

func (s *scriptedRunner) on(key, output string, code int) {
	s.responses[key] = scriptedResponse{output: output, code: code}
}

func (s *scriptedRunner) Run(_ context.Context, _ string, env []string, _ string, args ...string) (string, int, error) {
	key := strings.Join(append(append([]string{}, env...), args...), " ")
	s.mu.Lock()
	s.calls = append(s.calls, key)
	s.mu.Unlock()

	if res, ok := s.responses[key]; ok {
		return res.output, res.code, nil
	}
	return "", 0, nil
}

func (s *scriptedRunner) called(substr string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.calls {
		if strings.Contains(c, substr) {
			return true
		}
	}
	return false
}

func enabled(b bool) *bool { return &b }

// allToolsConfig mimics a project declaring every optional tool.
func allToolsConfig() *config.Config {
	cfg := &config.Config{Mix: "mix"}
	cfg.Stages.Format.Enabled = enabled(true)
	cfg.Stages.Format.Available = true
	cfg.Stages.Compile.Enabled = enabled(true)
	cfg.Stages.Compile.Available = true
	cfg.Stages.Compile.WarningsAsErrors = true
	cfg.Stages.Credo.Available = true
	cfg.Stages.Dialyzer.Available = true
	cfg.Stages.Doctor.Available = true
	cfg.Stages.Gettext.Available = true
	cfg.Stages.Audit.Available = true
	cfg.Stages.Test.Enabled = enabled(true)
	cfg.Stages.Test.Available = true
	return cfg
}

func runPipeline(cfg *config.Config, runner stage.Runner) (Outcome, string) {
	var buf bytes.Buffer
	pr := printer.New(&buf, false, false)
	outcome := New(cfg, pr, runner, ".").Run(context.Background())
	return outcome, buf.String()
}

func resultNames(o Outcome) []string {
	names := make([]string, 0, len(o.Results))
	for _, r := range o.Results {
		names = append(names, r.Name)
	}
	return names
}

func TestRunAllStagesPass(t *testing.T) {
	runner := newScriptedRunner()
	runner.on("credo", "42 mods/funs, found no issues.", 0)
	runner.on("dialyzer", "done (passed successfully)", 0)
	runner.on("MIX_ENV=test coveralls", "12 tests, 0 failures\n[TOTAL]  91.2%", 0)

	outcome, _ := runPipeline(allToolsConfig(), runner)

	if !outcome.Ok() {
		t.Fatalf("expected a clean run, failures: %d", outcome.Failed())
	}
	if outcome.CompileFailed {
		t.Error("compile gate should have passed")
	}

	names := resultNames(outcome)
	if len(names) != 8 {
		t.Fatalf("expected all 8 stages in results, got %v", names)
	}
	for _, want := range []string{"Format", "Compile", "Credo", "Dialyzer", "Doctor", "Gettext", "Deps audit", "Tests"} {
		found := false
		for _, n := range names {
			if n == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("missing stage %q in %v", want, names)
		}
	}
}

func TestRunCompileGateShortCircuits(t *testing.T) {
	runner := newScriptedRunner()
	runner.on("MIX_ENV=test compile --warnings-as-errors", "== Compilation error in file test/support/helper.ex ==", 1)

	outcome, _ := runPipeline(allToolsConfig(), runner)

	if !outcome.CompileFailed {
		t.Fatal("compile gate should have failed")
	}
	names := resultNames(outcome)
	if len(names) != 2 {
		t.Fatalf("expected exactly [Format, Compile] results, got %v", names)
	}
	if names[1] != "Compile (test)" {
		t.Errorf("failure should name the test profile, got %q", names[1])
	}
	for _, tool := range []string{"credo", "dialyzer", "doctor", "gettext.extract", "deps.audit", "coveralls", " test"} {
		if runner.called(tool) {
			t.Errorf("no analysis tool may run after a compile failure, but %q ran", tool)
		}
	}
}

func TestRunQuickModeSuppressesDialyzer(t *testing.T) {
	cfg := allToolsConfig()
	cfg.Quick = true
	runner := newScriptedRunner()

	outcome, _ := runPipeline(cfg, runner)

	for _, n := range resultNames(outcome) {
		if n == "Dialyzer" {
			t.Error("quick mode must not invoke dialyzer at all")
		}
	}
	if runner.called("dialyzer") {
		t.Error("dialyzer command must not run in quick mode")
	}
	if runner.called("coveralls") {
		t.Error("quick mode tests must not collect coverage")
	}
	if len(outcome.Results) != 7 {
		t.Errorf("expected 7 results in quick mode, got %v", resultNames(outcome))
	}
}

func TestRunDisabledStageNotInvoked(t *testing.T) {
	cfg := allToolsConfig()
	cfg.Stages.Credo.Enabled = enabled(false)
	runner := newScriptedRunner()

	outcome, _ := runPipeline(cfg, runner)

	if runner.called("credo") {
		t.Error("a disabled stage must not be invoked")
	}
	for _, n := range resultNames(outcome) {
		if n == "Credo" {
			t.Error("a disabled stage must not appear in results")
		}
	}
}

func TestRunSiblingFailuresAllComplete(t *testing.T) {
	runner := newScriptedRunner()
	runner.on("credo", "9 mods/funs, found 3 issues.", 1)
	runner.on("MIX_ENV=test coveralls", "12 tests, 1 failure\n[TOTAL]  80.0%", 2)

	outcome, _ := runPipeline(allToolsConfig(), runner)

	if outcome.CompileFailed {
		t.Fatal("compile gate should have passed")
	}
	if got := outcome.Failed(); got != 2 {
		t.Errorf("failures = %d, want 2", got)
	}
	// siblings of a failed stage still report
	if len(outcome.Results) != 8 {
		t.Errorf("every selected stage must yield a result, got %v", resultNames(outcome))
	}
}

func TestRunEveryStagePrintsOneLine(t *testing.T) {
	runner := newScriptedRunner()
	outcome, out := runPipeline(allToolsConfig(), runner)

	for _, r := range outcome.Results {
		if !strings.Contains(out, r.Name+":") {
			t.Errorf("missing printed line for %s in:\n%s", r.Name, out)
		}
	}
}

func TestRunStageDurationAlwaysRecorded(t *testing.T) {
	runner := newScriptedRunner()
	runner.on("credo", "broken", 1)

	outcome, _ := runPipeline(allToolsConfig(), runner)

	for _, r := range outcome.Results {
		if r.DurationMs < 0 {
			t.Errorf("%s: negative duration %d", r.Name, r.DurationMs)
		}
	}
}

type panickyStage struct{}

func (panickyStage) ID() string   { return "panicky" }
func (panickyStage) Name() string { return "Panicky" }
func (panickyStage) Run(context.Context, *config.Config) model.StageResult {
	panic("regex blew up")
}

func TestRunStageFoldsPanicIntoResult(t *testing.T) {
	var buf bytes.Buffer
	p := New(allToolsConfig(), printer.New(&buf, false, false), newScriptedRunner(), ".")

	res := p.runStage(context.Background(), panickyStage{})

	if res.Status != model.StatusError {
		t.Fatalf("status = %s, want ERROR", res.Status)
	}
	if !strings.Contains(res.Summary, "internal error") {
		t.Errorf("summary = %q, want an internal-error note", res.Summary)
	}
	if res.Name != "Panicky" {
		t.Errorf("name = %q", res.Name)
	}
}

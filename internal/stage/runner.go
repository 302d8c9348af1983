package stage

import (
	"context"
	"errors"
	"os"
	"os/exec"
)

// Runner executes one external command and captures its combined
// output. The error is non-nil only when the command could not be
// started at all; a command that ran and exited non-zero comes back as
// (output, code, nil) so callers can tell tool-reported failures from
// invocation failures.
type Runner interface {
	Run(ctx context.Context, dir string, env []string, name string, args ...string) (string, int, error)
}

// ExecRunner runs commands through os/exec.
type ExecRunner struct{}

// Run implements Runner.
func (ExecRunner) Run(ctx context.Context, dir string, env []string, name string, args ...string) (string, int, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), env...)

	out, err := cmd.CombinedOutput()
	if err != nil {
		var ee *exec.ExitError
		if errors.As(err, &ee) {
			return string(out), ee.ExitCode(), nil
		}
		return string(out), -1, err
	}
	return string(out), 0, nil
}

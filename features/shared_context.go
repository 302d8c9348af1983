package features

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// mixStub is a stand-in for the real mix executable. It answers each
// task with canned, realistically shaped output, and marker files in
// the project directory flip individual tasks into failure mode.
const mixStub = `#!/bin/sh
cmd="$1"
case "$cmd" in
  format)
    exit 0 ;;
  compile)
    if [ "$MIX_ENV" = "test" ] && [ -f .fail-test-compile ]; then
      echo "== Compilation error in file test/support/helper.ex =="
      exit 1
    fi
    exit 0 ;;
  credo)
    echo "42 mods/funs, found no issues."
    exit 0 ;;
  dialyzer)
    echo "done (passed successfully)"
    exit 0 ;;
  doctor)
    echo "Passed Modules: 10"
    echo "Failed Modules: 0"
    exit 0 ;;
  gettext.extract)
    exit 0 ;;
  deps.unlock)
    if [ -f .unused-deps ]; then
      echo "** (Mix) Unused dependencies: ex_doc, earmark"
      exit 1
    fi
    exit 0 ;;
  deps.audit)
    if [ -f .vulnerable-deps ]; then
      echo "Found 2 vulnerabilities!"
      exit 1
    fi
    echo "No vulnerabilities found"
    exit 0 ;;
  coveralls)
    echo "12 tests, 0 failures"
    echo "[TOTAL]  87.5%"
    exit 0 ;;
  test)
    echo "12 tests, 0 failures"
    exit 0 ;;
esac
exit 0
`

const stubMixExs = `defmodule Sample.MixProject do
  use Mix.Project

  defp deps do
    [
      {:credo, "~> 1.7", only: [:dev, :test], runtime: false},
      {:dialyxir, "~> 1.4", only: [:dev], runtime: false},
      {:doctor, "~> 0.21", only: [:dev]},
      {:gettext, "~> 0.24"},
      {:mix_audit, "~> 2.1", only: [:dev, :test], runtime: false},
      {:excoveralls, "~> 0.18", only: :test}
    ]
  end
end
`

// sharedContext holds all per-scenario state.
type sharedContext struct {
	projectDir string
	binary     string
	output     string
	exitCode   int
}

// initBinary finds the mixcheck binary built next to this package.
func (c *sharedContext) initBinary() {
	wd, _ := os.Getwd()
	c.binary = filepath.Join(wd, "..", "mixcheck")
	if _, err := os.Stat(c.binary); os.IsNotExist(err) {
		c.binary = filepath.Join(wd, "mixcheck")
	}
}

func (c *sharedContext) binaryBuilt() bool {
	if c.binary == "" {
		c.initBinary()
	}
	_, err := os.Stat(c.binary)
	return err == nil
}

// setupProject lays down a fake Mix project wired to the stub.
func (c *sharedContext) setupProject(dir string) error {
	c.projectDir = dir

	files := map[string]string{
		"mix.exs":        stubMixExs,
		"mix.lock": `%{
  "credo": {:hex, :credo, "1.7.7"},
  "dialyxir": {:hex, :dialyxir, "1.4.3"},
  "doctor": {:hex, :doctor, "0.21.0"},
  "excoveralls": {:hex, :excoveralls, "0.18.1"},
  "gettext": {:hex, :gettext, "0.24.0"},
  "mix_audit": {:hex, :mix_audit, "2.1.4"},
}
`,
		".mixcheck.toml": "mix = \"./mix-stub\"\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			return err
		}
	}

	potDir := filepath.Join(dir, "priv", "gettext")
	if err := os.MkdirAll(potDir, 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(potDir, "default.pot"), []byte("msgid \"\"\n"), 0o644); err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, "mix-stub"), []byte(mixStub), 0o755)
}

func (c *sharedContext) touchMarker(name string) error {
	return os.WriteFile(filepath.Join(c.projectDir, name), nil, 0o644)
}

// runMixcheck executes the binary inside the stub project.
func (c *sharedContext) runMixcheck(flags ...string) error {
	if c.projectDir == "" {
		return fmt.Errorf("project not set up")
	}

	cmd := exec.Command(c.binary, flags...)
	cmd.Dir = c.projectDir
	out, err := cmd.CombinedOutput()
	c.output = string(out)
	c.exitCode = 0
	if err != nil {
		var ee *exec.ExitError
		if !errors.As(err, &ee) {
			return fmt.Errorf("run mixcheck: %w", err)
		}
		c.exitCode = ee.ExitCode()
	}
	return nil
}

// Package detect inspects a Mix project's declared dependencies to
// decide which optional checks are eligible to run.
package detect

import (
	"os"
	"path/filepath"
	"regexp"

	"github.com/bmatcuk/doublestar/v4"
)

// Availability reports which optional tools the host project declares.
// Computed once per run and consumed only by the config resolver.
type Availability struct {
	Credo    bool
	Dialyzer bool
	Doctor   bool
	Gettext  bool
	Audit    bool
	Coverage bool
	JUnit    bool
}

var (
	// mix.lock entries look like `"credo": {:hex, :credo, ...}`.
	lockEntryRe = regexp.MustCompile(`(?m)^\s*"([a-z0-9_]+)":`)
	// mix.exs dep entries look like `{:credo, "~> 1.7", only: :dev}`.
	depEntryRe = regexp.MustCompile(`\{\s*:([a-z0-9_]+)\s*,`)
)

// Detect scans mix.exs and mix.lock for the tools mixcheck knows about.
// Gettext additionally requires a POT file under priv/gettext, since a
// project can depend on gettext without extracting translations.
func Detect(projectRoot string) Availability {
	deps := declaredDeps(projectRoot)
	return Availability{
		Credo:    deps["credo"],
		Dialyzer: deps["dialyxir"],
		Doctor:   deps["doctor"],
		Gettext:  deps["gettext"] && hasPotFiles(projectRoot),
		Audit:    deps["mix_audit"],
		Coverage: deps["excoveralls"],
		JUnit:    deps["junit_formatter"],
	}
}

func declaredDeps(root string) map[string]bool {
	found := map[string]bool{}
	if data, err := os.ReadFile(filepath.Join(root, "mix.lock")); err == nil {
		for _, m := range lockEntryRe.FindAllStringSubmatch(string(data), -1) {
			found[m[1]] = true
		}
	}
	if data, err := os.ReadFile(filepath.Join(root, "mix.exs")); err == nil {
		for _, m := range depEntryRe.FindAllStringSubmatch(string(data), -1) {
			found[m[1]] = true
		}
	}
	return found
}

func hasPotFiles(root string) bool {
	matches, err := doublestar.Glob(os.DirFS(root), "priv/gettext/**/*.pot")
	return err == nil && len(matches) > 0
}

// ProjectRoot walks up from the working directory looking for mix.exs.
// Falls back to the working directory when no Mix project is found.
func ProjectRoot() (string, bool) {
	cwd, err := os.Getwd()
	if err != nil {
		return ".", false
	}
	for dir := cwd; ; {
		if _, err := os.Stat(filepath.Join(dir, "mix.exs")); err == nil {
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return cwd, false
		}
		dir = parent
	}
}

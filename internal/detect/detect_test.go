package detect

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleMixExs = `defmodule Sample.MixProject do
  use Mix.Project

  defp deps do
    [
      {:phoenix, "~> 1.7"},
      {:credo, "~> 1.7", only: [:dev, :test], runtime: false},
      {:dialyxir, "~> 1.4", only: [:dev], runtime: false},
      {:gettext, "~> 0.24"},
      {:excoveralls, "~> 0.18", only: :test}
    ]
  end
end
`

const sampleMixLock = `%{
  "credo": {:hex, :credo, "1.7.7", "abc", [:mix], [], "hexpm", "def"},
  "dialyxir": {:hex, :dialyxir, "1.4.3", "abc", [:mix], [], "hexpm", "def"},
  "mix_audit": {:hex, :mix_audit, "2.1.4", "abc", [:mix], [], "hexpm", "def"},
  "phoenix": {:hex, :phoenix, "1.7.14", "abc", [:mix], [], "hexpm", "def"},
}
`

func writeProject(t *testing.T, withPot bool) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "mix.exs"), []byte(sampleMixExs), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "mix.lock"), []byte(sampleMixLock), 0o644); err != nil {
		t.Fatal(err)
	}
	if withPot {
		potDir := filepath.Join(dir, "priv", "gettext")
		if err := os.MkdirAll(potDir, 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(potDir, "default.pot"), []byte("msgid \"\"\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestDetect(t *testing.T) {
	dir := writeProject(t, true)

	avail := Detect(dir)

	if !avail.Credo {
		t.Error("credo should be detected from mix.exs and mix.lock")
	}
	if !avail.Dialyzer {
		t.Error("dialyxir should be detected")
	}
	if !avail.Audit {
		t.Error("mix_audit should be detected from mix.lock alone")
	}
	if !avail.Coverage {
		t.Error("excoveralls should be detected from mix.exs alone")
	}
	if !avail.Gettext {
		t.Error("gettext should be detected when a POT file exists")
	}
	if avail.Doctor {
		t.Error("doctor is not declared and should not be detected")
	}
	if avail.JUnit {
		t.Error("junit_formatter is not declared and should not be detected")
	}
}

func TestDetectGettextNeedsPotFiles(t *testing.T) {
	dir := writeProject(t, false)

	avail := Detect(dir)

	if avail.Gettext {
		t.Error("gettext without POT files should not count as available")
	}
}

func TestDetectEmptyProject(t *testing.T) {
	avail := Detect(t.TempDir())

	if avail != (Availability{}) {
		t.Errorf("expected nothing detected, got %+v", avail)
	}
}

func TestProjectRootWalksUp(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "mix.exs"), []byte(sampleMixExs), 0o644); err != nil {
		t.Fatal(err)
	}
	nested := filepath.Join(root, "lib", "sample")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	t.Chdir(nested)

	got, found := ProjectRoot()
	if !found {
		t.Fatal("expected to find the project root")
	}
	// TempDir may sit behind a symlink (macOS); compare resolved paths.
	wantResolved, _ := filepath.EvalSymlinks(root)
	gotResolved, _ := filepath.EvalSymlinks(got)
	if gotResolved != wantResolved {
		t.Errorf("ProjectRoot() = %q, want %q", got, root)
	}
}

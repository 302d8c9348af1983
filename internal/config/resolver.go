package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	koanfmaps "github.com/knadh/koanf/maps"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/v2"

	"github.com/ewalker/mixcheck/internal/detect"
)

// CLIOptions is the flag-derived overlay, the last and strongest layer.
type CLIOptions struct {
	ConfigPath string
	Quick      bool
	Verbose    bool
	// Skip holds stage ids whose enabled tri-state is forced to false.
	Skip []string
}

// Resolve builds the configuration for one run. The returned warnings
// are user-facing notes (e.g. a malformed config file being ignored)
// that do not abort the run.
func Resolve(projectRoot string, avail detect.Availability, opts CLIOptions) (*Config, []string, error) {
	var warnings []string

	path := opts.ConfigPath
	if path == "" {
		path = filepath.Join(projectRoot, ConfigFileName)
	}
	fileLayer, warn := loadFileLayer(path, opts.ConfigPath != "")
	if warn != "" {
		warnings = append(warnings, warn)
	}

	layers := []map[string]any{
		defaults(),
		availabilityLayer(avail),
		fileLayer,
		cliLayer(opts),
	}

	cfg, err := resolveLayers(layers)
	if err != nil && fileLayer != nil {
		// The config file merged cleanly as a map but produced values
		// the typed config cannot hold. Lenient policy: drop the file
		// layer, warn, and carry on.
		warnings = append(warnings, fmt.Sprintf("ignoring %s: %v", path, err))
		layers[2] = nil
		cfg, err = resolveLayers(layers)
	}
	if err != nil {
		return nil, warnings, fmt.Errorf("resolve config: %w", err)
	}
	return cfg, warnings, nil
}

func resolveLayers(layers []map[string]any) (*Config, error) {
	k := koanf.New(".")
	for _, layer := range layers {
		if layer == nil {
			continue
		}
		if err := k.Load(confmap.Provider(layer, "."), nil); err != nil {
			return nil, err
		}
	}
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Merge deep-merges src over dst without mutating either: nested maps
// merge key-by-key, any other value (lists included) is replaced.
func Merge(dst, src map[string]any) map[string]any {
	out := koanfmaps.Copy(dst)
	koanfmaps.Merge(src, out)
	return out
}

// loadFileLayer reads the project config file into a nested map.
// A missing file is an empty overlay unless the user named it
// explicitly. A malformed file is also an empty overlay, with a
// warning rather than silence.
func loadFileLayer(path string, explicit bool) (map[string]any, string) {
	data, err := os.ReadFile(path)
	if err != nil {
		if explicit {
			return nil, fmt.Sprintf("config file not readable: %v", err)
		}
		return nil, ""
	}
	layer := map[string]any{}
	if err := toml.Unmarshal(data, &layer); err != nil {
		return nil, fmt.Sprintf("ignoring malformed %s: %v", filepath.Base(path), err)
	}
	return layer, ""
}

func defaults() map[string]any {
	return map[string]any{
		"quick":   false,
		"verbose": false,
		"mix":     "mix",
		"stages": map[string]any{
			"format": map[string]any{
				"enabled":   true,
				"available": true,
			},
			"compile": map[string]any{
				"enabled":            true,
				"available":          true,
				"warnings_as_errors": true,
			},
			"credo": map[string]any{
				"strict": false,
			},
			"test": map[string]any{
				"enabled": true,
			},
		},
	}
}

func availabilityLayer(avail detect.Availability) map[string]any {
	return map[string]any{
		"stages": map[string]any{
			"credo":    map[string]any{"available": avail.Credo},
			"dialyzer": map[string]any{"available": avail.Dialyzer},
			"doctor":   map[string]any{"available": avail.Doctor},
			"gettext":  map[string]any{"available": avail.Gettext},
			"audit":    map[string]any{"available": avail.Audit},
			"test":     map[string]any{"available": avail.Coverage},
		},
	}
}

func cliLayer(opts CLIOptions) map[string]any {
	layer := map[string]any{}
	if opts.Quick {
		layer["quick"] = true
	}
	if opts.Verbose {
		layer["verbose"] = true
	}
	if len(opts.Skip) > 0 {
		stages := map[string]any{}
		for _, id := range opts.Skip {
			stages[id] = map[string]any{"enabled": false}
		}
		layer["stages"] = stages
	}
	return layer
}

// Package config resolves the mixcheck configuration from four layers:
// compiled-in defaults, detected tool availability, the project's
// .mixcheck.toml, and CLI flags. Later layers win; nested tables merge
// key-by-key, everything else (lists included) is replaced wholesale.
package config

// ConfigFileName is the project-local config file, looked up in the
// Mix project root unless overridden with --config.
const ConfigFileName = ".mixcheck.toml"

// Config is the resolved, immutable configuration for one run.
// It is built once at startup and only read afterwards, so it is safe
// to share across concurrently running stages.
type Config struct {
	// Quick trades thoroughness for speed: Dialyzer is suppressed and
	// tests run without coverage.
	Quick   bool   `koanf:"quick"`
	Verbose bool   `koanf:"verbose"`
	Mix     string `koanf:"mix"`

	Stages StagesConfig `koanf:"stages"`
}

// StagesConfig holds the per-stage sub-tables. The stage set is closed;
// there is no runtime registration.
type StagesConfig struct {
	Format   FormatConfig   `koanf:"format"`
	Compile  CompileConfig  `koanf:"compile"`
	Credo    CredoConfig    `koanf:"credo"`
	Dialyzer DialyzerConfig `koanf:"dialyzer"`
	Doctor   DoctorConfig   `koanf:"doctor"`
	Gettext  GettextConfig  `koanf:"gettext"`
	Audit    AuditConfig    `koanf:"audit"`
	Test     TestConfig     `koanf:"test"`
}

// StageSettings is the minimum every stage sub-table carries.
// Enabled is tri-state: nil means auto (follow Available).
type StageSettings struct {
	Enabled   *bool `koanf:"enabled"`
	Available bool  `koanf:"available"`
}

// FormatConfig configures the auto-fix formatting stage.
type FormatConfig struct {
	StageSettings `koanf:",squash"`
}

// CompileConfig configures the compile gate.
type CompileConfig struct {
	StageSettings    `koanf:",squash"`
	WarningsAsErrors bool `koanf:"warnings_as_errors"`
}

// CredoConfig configures the lint stage.
type CredoConfig struct {
	StageSettings `koanf:",squash"`
	Strict        bool     `koanf:"strict"`
	Args          []string `koanf:"args"`
}

// DialyzerConfig configures the type-check stage.
type DialyzerConfig struct {
	StageSettings `koanf:",squash"`
	Args          []string `koanf:"args"`
}

// DoctorConfig configures the doc-coverage stage.
type DoctorConfig struct {
	StageSettings `koanf:",squash"`
}

// GettextConfig configures the translation freshness stage.
type GettextConfig struct {
	StageSettings `koanf:",squash"`
}

// AuditConfig configures the dependency audit stage.
type AuditConfig struct {
	StageSettings `koanf:",squash"`
}

// TestConfig configures the test stage. Available reflects whether a
// coverage tool (excoveralls) was detected; the stage itself always
// runs. CoverageThreshold is display-only, enforcement belongs to the
// coverage tool's own configuration.
type TestConfig struct {
	StageSettings     `koanf:",squash"`
	Args              []string `koanf:"args"`
	JUnitReport       string   `koanf:"junit_report"`
	CoverageThreshold float64  `koanf:"coverage_threshold"`
}

// StageEnabled resolves the enabled tri-state: auto follows detected
// availability, an explicit value wins outright.
func StageEnabled(s StageSettings) bool {
	if s.Enabled == nil {
		return s.Available
	}
	return *s.Enabled
}

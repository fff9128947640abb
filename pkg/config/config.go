// Package config defines core configuration types for luaguard.
// These types are pure data structures with no dependency on the loader.
package config

// Severity represents the severity level of a finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// OutputFormat specifies the output format for reports.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatJSON    OutputFormat = "json"
	FormatSummary OutputFormat = "summary"
)

// CheckConfig holds per-check configuration options. Only style checks
// (deprecated API, naming) are configurable: structural findings keep
// their intrinsic severity.
type CheckConfig struct {
	Enabled  *bool          `yaml:"enabled"`
	Severity *string        `yaml:"severity"`
	Options  map[string]any `yaml:"options"`
}

// HistoryConfig controls the undo store.
type HistoryConfig struct {
	// Capacity is the number of committed edits retained per file.
	Capacity int `yaml:"capacity"`

	// MaxFiles bounds how many files the store tracks at once.
	MaxFiles int `yaml:"max_files"`
}

// BackupsConfig controls sidecar backups when committing edits.
type BackupsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Config is the root configuration structure for luaguard.
type Config struct {
	// Checks contains per-check configuration keyed by check ID.
	Checks map[string]CheckConfig `yaml:"checks"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `yaml:"ignore"`

	// History configures the undo store.
	History HistoryConfig `yaml:"history"`

	// Backups configures sidecar backups on apply.
	Backups BackupsConfig `yaml:"backups"`

	// CLI-level options (not persisted to config files).

	// AutoFix enables the bounded missing-end repair attempt.
	AutoFix bool `yaml:"-"`

	// DryRun shows what would change without writing.
	DryRun bool `yaml:"-"`

	// Format specifies the output format.
	Format OutputFormat `yaml:"-"`

	// Jobs specifies the number of parallel workers for multi-file checks.
	Jobs int `yaml:"-"`

	// Strict makes warnings affect the exit code.
	Strict bool `yaml:"-"`
}

// DefaultHistoryCapacity is the number of undo entries kept per file.
const DefaultHistoryCapacity = 5

// DefaultHistoryMaxFiles is the number of files the undo store tracks.
const DefaultHistoryMaxFiles = 256

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Checks: make(map[string]CheckConfig),
		Ignore: nil,
		History: HistoryConfig{
			Capacity: DefaultHistoryCapacity,
			MaxFiles: DefaultHistoryMaxFiles,
		},
		Backups: BackupsConfig{Enabled: true},
		Format:  FormatText,
		Jobs:    0, // 0 means use GOMAXPROCS
	}
}

// CheckFor returns the configuration for a check ID, or nil if unset.
func (c *Config) CheckFor(id string) *CheckConfig {
	if c == nil || c.Checks == nil {
		return nil
	}
	if cc, ok := c.Checks[id]; ok {
		return &cc
	}
	return nil
}

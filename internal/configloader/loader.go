// Package configloader resolves the effective configuration from config
// files, environment variables, and command-line flags.
package configloader

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/JulianKerignard/Roblox-MCP-sub000/pkg/config"
)

// LoadOptions controls configuration loading.
type LoadOptions struct {
	// WorkingDir is where the project config search starts. Empty means
	// the process working directory.
	WorkingDir string

	// ExplicitPath is a config file named on the command line. When set,
	// project config discovery is skipped.
	ExplicitPath string

	// IgnoreSystemConfig, IgnoreUserConfig, and IgnoreProjectConfig skip
	// the respective layers.
	IgnoreSystemConfig  bool
	IgnoreUserConfig    bool
	IgnoreProjectConfig bool

	// IgnoreEnv skips LUAGUARD_* environment variables.
	IgnoreEnv bool
}

// LoadResult holds the resolved configuration and how it was assembled.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// Paths are the discovered configuration file locations.
	Paths *ConfigPaths

	// LoadedFrom lists the files actually loaded, lowest precedence first.
	LoadedFrom []string

	// Warnings holds non-fatal issues found while loading.
	Warnings []string
}

// Load resolves the configuration. Precedence, highest first:
//
//  1. Environment variables (LUAGUARD_*)
//  2. Explicit config file (--config)
//  3. Project config (.luaguard.yml, upward search)
//  4. User config ($XDG_CONFIG_HOME/luaguard/config.yaml)
//  5. System config (/etc/luaguard/config.yaml)
//  6. Defaults
//
// Command-line flags are applied by the caller on top of the result.
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	result := &LoadResult{}

	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, err
	}
	if opts.ExplicitPath != "" {
		paths.Explicit = opts.ExplicitPath
	}
	result.Paths = paths

	cfg := config.NewConfig()

	layer := func(path string) error {
		fc, err := loadConfigFile(path)
		if err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		fc.applyTo(cfg)
		result.LoadedFrom = append(result.LoadedFrom, path)
		return nil
	}

	if !opts.IgnoreSystemConfig && paths.System != "" {
		if err := layer(paths.System); err != nil {
			return nil, err
		}
	}
	if !opts.IgnoreUserConfig && paths.User != "" {
		if err := layer(paths.User); err != nil {
			return nil, err
		}
	}
	if !opts.IgnoreProjectConfig && paths.Explicit == "" && paths.Project != "" {
		if err := layer(paths.Project); err != nil {
			return nil, err
		}
	}
	if paths.Explicit != "" {
		if err := layer(paths.Explicit); err != nil {
			return nil, err
		}
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	validation := Validate(cfg)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Message)
	}

	result.Config = cfg
	return result, nil
}

// fileConfig is the YAML schema for config files. Pointer fields
// distinguish "absent" from "explicitly zero" so that lower-precedence
// values survive.
type fileConfig struct {
	Checks map[string]config.CheckConfig `yaml:"checks"`
	Ignore []string                      `yaml:"ignore"`

	History struct {
		Capacity *int `yaml:"capacity"`
		MaxFiles *int `yaml:"max_files"`
	} `yaml:"history"`

	Backups struct {
		Enabled *bool `yaml:"enabled"`
	} `yaml:"backups"`
}

func loadConfigFile(path string) (*fileConfig, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	fc := &fileConfig{}
	if err := yaml.Unmarshal(content, fc); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}
	return fc, nil
}

// applyTo overlays the file's settings onto cfg. Check entries replace
// whole entries per check ID; ignore patterns are appended.
func (fc *fileConfig) applyTo(cfg *config.Config) {
	for id, cc := range fc.Checks {
		if cfg.Checks == nil {
			cfg.Checks = make(map[string]config.CheckConfig)
		}
		cfg.Checks[id] = cc
	}
	cfg.Ignore = append(cfg.Ignore, fc.Ignore...)

	if fc.History.Capacity != nil {
		cfg.History.Capacity = *fc.History.Capacity
	}
	if fc.History.MaxFiles != nil {
		cfg.History.MaxFiles = *fc.History.MaxFiles
	}
	if fc.Backups.Enabled != nil {
		cfg.Backups.Enabled = *fc.Backups.Enabled
	}
}

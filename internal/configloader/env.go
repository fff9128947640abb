package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/JulianKerignard/Roblox-MCP-sub000/pkg/config"
)

// envVarPrefix is shared by all environment overrides.
const envVarPrefix = "LUAGUARD_"

type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeSlice
)

type envMapping struct {
	field string
	typ   envFieldType
}

//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"AUTO_FIX":          {field: "auto_fix", typ: envTypeBool},
	"DRY_RUN":           {field: "dry_run", typ: envTypeBool},
	"STRICT":            {field: "strict", typ: envTypeBool},
	"JOBS":              {field: "jobs", typ: envTypeInt},
	"FORMAT":            {field: "format", typ: envTypeString},
	"IGNORE":            {field: "ignore", typ: envTypeSlice},
	"HISTORY_CAPACITY":  {field: "history.capacity", typ: envTypeInt},
	"HISTORY_MAX_FILES": {field: "history.max_files", typ: envTypeInt},
	"BACKUPS_ENABLED":   {field: "backups.enabled", typ: envTypeBool},
}

// LoadFromEnv applies LUAGUARD_* environment overrides to cfg.
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for suffix, mapping := range envMappings {
		envVar := envVarPrefix + suffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}
		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}
	return nil
}

func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeSlice:
		return setSliceField(cfg, mapping.field, parseSliceValue(value))
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue splits a comma-separated value, trimming whitespace.
func parseSliceValue(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "format":
		cfg.Format = config.OutputFormat(value)
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "auto_fix":
		cfg.AutoFix = value
	case "dry_run":
		cfg.DryRun = value
	case "strict":
		cfg.Strict = value
	case "backups.enabled":
		cfg.Backups.Enabled = value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "jobs":
		cfg.Jobs = value
	case "history.capacity":
		cfg.History.Capacity = value
	case "history.max_files":
		cfg.History.MaxFiles = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "ignore":
		cfg.Ignore = append(cfg.Ignore, value...)
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// ListEnvVars describes the supported environment variables for help output.
func ListEnvVars() map[string]string {
	return map[string]string{
		"LUAGUARD_AUTO_FIX":          "Enable the bounded missing-end repair: true or false",
		"LUAGUARD_DRY_RUN":           "Dry-run mode: true or false",
		"LUAGUARD_STRICT":            "Treat warnings as failures: true or false",
		"LUAGUARD_JOBS":              "Number of parallel workers (0 = auto)",
		"LUAGUARD_FORMAT":            "Output format: text, json, or summary",
		"LUAGUARD_IGNORE":            "Comma-separated list of ignore patterns",
		"LUAGUARD_HISTORY_CAPACITY":  "Undo entries kept per file",
		"LUAGUARD_HISTORY_MAX_FILES": "Files tracked by the undo store",
		"LUAGUARD_BACKUPS_ENABLED":   "Sidecar backups on apply: true or false",
	}
}

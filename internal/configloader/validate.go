package configloader

import (
	"fmt"

	"github.com/JulianKerignard/Roblox-MCP-sub000/pkg/analyze"
	"github.com/JulianKerignard/Roblox-MCP-sub000/pkg/config"
)

// ValidationError is a fatal configuration problem.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Message)
}

// ValidationWarning is a non-fatal configuration problem.
type ValidationWarning struct {
	Field   string
	Message string
}

// ValidationResult collects validation output.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationWarning
}

// Valid reports whether no fatal problems were found.
func (r *ValidationResult) Valid() bool { return len(r.Errors) == 0 }

//nolint:gochecknoglobals // Read-only lookup table.
var knownCheckIDs = map[string]bool{
	analyze.CheckDeprecatedAPI:    true,
	analyze.CheckNamingConvention: true,
}

// Validate checks a resolved configuration for problems. Unknown check
// IDs and unknown severities warn rather than fail, so configs stay
// forward compatible.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}

	switch cfg.Format {
	case config.FormatText, config.FormatJSON, config.FormatSummary, "":
	default:
		result.Errors = append(result.Errors, ValidationError{
			Field:   "format",
			Message: fmt.Sprintf("unknown output format %q (expected text, json, or summary)", cfg.Format),
		})
	}

	if cfg.Jobs < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "jobs",
			Message: "must be zero or positive",
		})
	}
	if cfg.History.Capacity < 1 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "history.capacity",
			Message: "must be at least 1",
		})
	}
	if cfg.History.MaxFiles < 1 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "history.max_files",
			Message: "must be at least 1",
		})
	}

	for id, cc := range cfg.Checks {
		if !knownCheckIDs[id] {
			result.Warnings = append(result.Warnings, ValidationWarning{
				Field:   "checks." + id,
				Message: fmt.Sprintf("unknown check %q is ignored", id),
			})
		}
		if cc.Severity != nil {
			switch config.Severity(*cc.Severity) {
			case config.SeverityError, config.SeverityWarning, config.SeverityInfo:
			default:
				result.Warnings = append(result.Warnings, ValidationWarning{
					Field:   "checks." + id + ".severity",
					Message: fmt.Sprintf("unknown severity %q is ignored", *cc.Severity),
				})
			}
		}
	}

	return result
}

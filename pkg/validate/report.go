// Package validate orchestrates the scanner and analyzers over a candidate
// buffer and aggregates their findings into a single report.
package validate

import (
	"github.com/JulianKerignard/Roblox-MCP-sub000/pkg/analyze"
	"github.com/JulianKerignard/Roblox-MCP-sub000/pkg/config"
)

// Report is the aggregate result of validating one candidate buffer.
// It is a stable, serializable shape: callers outside this module render
// or transport it as-is.
type Report struct {
	// Valid is true iff Errors is empty. Warnings never affect it.
	Valid bool `json:"valid"`

	// Errors are the findings that make the candidate unacceptable.
	Errors []analyze.Finding `json:"errors"`

	// Warnings are advisory findings.
	Warnings []analyze.Finding `json:"warnings"`

	// Blocks is the block-balance analysis of the candidate.
	Blocks *analyze.BlockAnalysis `json:"blockAnalysis"`

	// Brackets is the bracket-balance analysis of the candidate.
	Brackets *analyze.BracketAnalysis `json:"bracketAnalysis"`

	// AutoFixed is true when the bounded repair attempt produced a clean
	// buffer. The report still describes the candidate as submitted.
	AutoFixed bool `json:"autoFixed,omitempty"`

	// FixedText is the repaired buffer when AutoFixed is true. The caller
	// must accept it explicitly; nothing is persisted here.
	FixedText string `json:"-"`
}

// ErrorCount returns the number of error findings.
func (r *Report) ErrorCount() int {
	return len(r.Errors)
}

// WarningCount returns the number of warning findings.
func (r *Report) WarningCount() int {
	return len(r.Warnings)
}

// Findings returns errors then warnings as one slice.
func (r *Report) Findings() []analyze.Finding {
	out := make([]analyze.Finding, 0, len(r.Errors)+len(r.Warnings))
	out = append(out, r.Errors...)
	out = append(out, r.Warnings...)
	return out
}

// add routes a finding to Errors or Warnings by its severity.
func (r *Report) add(f analyze.Finding) {
	if f.Severity == config.SeverityError {
		r.Errors = append(r.Errors, f)
		return
	}
	r.Warnings = append(r.Warnings, f)
}

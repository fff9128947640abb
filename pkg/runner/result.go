package runner

import "github.com/JulianKerignard/Roblox-MCP-sub000/pkg/validate"

// FileOutcome is the result of checking one file.
type FileOutcome struct {
	// Path is the checked file.
	Path string

	// Report holds the findings. Nil when the file could not be read.
	Report *validate.Report

	// Err is set when the file could not be processed.
	Err error
}

// Stats aggregates a whole run. It is part of the JSON report shape.
type Stats struct {
	// FilesDiscovered is how many files discovery found.
	FilesDiscovered int `json:"filesDiscovered"`

	// FilesChecked is how many files were checked successfully.
	FilesChecked int `json:"filesChecked"`

	// FilesErrored is how many files failed to process.
	FilesErrored int `json:"filesErrored"`

	// FilesWithFindings is how many checked files had at least one finding.
	FilesWithFindings int `json:"filesWithFindings"`

	// FilesFixable is how many invalid files the bounded auto-fix repaired.
	FilesFixable int `json:"filesFixable"`

	// ErrorsTotal and WarningsTotal count findings across all files.
	ErrorsTotal   int `json:"errorsTotal"`
	WarningsTotal int `json:"warningsTotal"`
}

// Result is the aggregate outcome of a run. Files are ordered by path.
type Result struct {
	Files []FileOutcome
	Stats Stats
}

// HasFailures reports whether any file had error findings or could not
// be processed.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.ErrorsTotal > 0 || r.Stats.FilesErrored > 0
}

// HasFindings reports whether any findings were produced at all.
func (r *Result) HasFindings() bool {
	if r == nil {
		return false
	}
	return r.Stats.ErrorsTotal > 0 || r.Stats.WarningsTotal > 0
}

// accumulate folds one outcome into the aggregate.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Err != nil {
		r.Stats.FilesErrored++
		return
	}
	if outcome.Report == nil {
		return
	}

	r.Stats.FilesChecked++
	r.Stats.ErrorsTotal += outcome.Report.ErrorCount()
	r.Stats.WarningsTotal += outcome.Report.WarningCount()
	if outcome.Report.ErrorCount() > 0 || outcome.Report.WarningCount() > 0 {
		r.Stats.FilesWithFindings++
	}
	if outcome.Report.AutoFixed {
		r.Stats.FilesFixable++
	}
}

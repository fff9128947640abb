package validate

import (
	"fmt"
	"strings"

	"github.com/JulianKerignard/Roblox-MCP-sub000/pkg/analyze"
	"github.com/JulianKerignard/Roblox-MCP-sub000/pkg/config"
	"github.com/JulianKerignard/Roblox-MCP-sub000/pkg/luasrc"
	"github.com/JulianKerignard/Roblox-MCP-sub000/pkg/patch"
)

// Validator runs the scan-then-analyze pipeline over candidate buffers.
// It holds no mutable state and never writes to storage.
type Validator struct {
	cfg *config.Config
}

// New creates a Validator with the given configuration.
func New(cfg *config.Config) *Validator {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &Validator{cfg: cfg}
}

// Validate simulates the edit against the original text and checks the
// resulting candidate. A *patch.RangeError from the simulator is returned
// as a Go error: it is a contract violation, not a content finding.
func (v *Validator) Validate(original string, edit patch.Edit) (*Report, error) {
	candidate, err := patch.Simulate(original, edit)
	if err != nil {
		return nil, fmt.Errorf("simulate edit: %w", err)
	}
	return v.Check(candidate), nil
}

// Check runs the full pipeline on a candidate buffer: one scan, block and
// bracket analysis on the scan result, then the style checks. Re-running
// Check on the same buffer yields an identical report.
func (v *Validator) Check(text string) *Report {
	report := v.analyzeOnce(text)

	if v.cfg.AutoFix && !report.Valid {
		v.tryAutoFix(text, report)
	}

	return report
}

func (v *Validator) analyzeOnce(text string) *Report {
	snap := luasrc.NewFileSnapshot("", []byte(text))
	scan := luasrc.Scan(snap)

	report := &Report{
		Blocks:   analyze.AnalyzeBlocks(snap, scan),
		Brackets: analyze.AnalyzeBrackets(snap, scan),
	}

	for _, f := range report.Blocks.Findings() {
		report.add(f)
	}
	bracketErrors := false
	for _, f := range report.Brackets.Findings() {
		bracketErrors = true
		report.add(f)
	}

	// An unterminated short string is recovered at end of line and starts
	// as a warning; when brackets are confused in the same buffer the
	// recovery likely caused it, so it escalates. Unterminated long
	// brackets swallow the rest of the file and are always errors.
	for _, u := range scan.Unterminated {
		f := unterminatedFinding(u)
		if u.Kind == luasrc.SpanString && bracketErrors {
			f.Severity = config.SeverityError
		}
		report.add(f)
	}

	for _, f := range analyze.RunStyleChecks(snap, scan, v.cfg) {
		report.add(f)
	}

	report.Valid = len(report.Errors) == 0
	return report
}

func unterminatedFinding(u luasrc.Unterminated) analyze.Finding {
	f := analyze.NewFinding(analyze.KindUnterminatedString, u.Line, u.Col, "")
	switch u.Kind {
	case luasrc.SpanString:
		f.Message = "string literal is not terminated before end of line"
		f.Suggestion = "Add the missing closing quote"
	case luasrc.SpanLongComment:
		f.Message = fmt.Sprintf("long comment opened at %d:%d is never closed", u.Line, u.Col)
		f.Severity = config.SeverityError
		f.Suggestion = fmt.Sprintf("Add the missing ']%s]'", strings.Repeat("=", u.Level))
	default:
		f.Message = fmt.Sprintf("long string opened at %d:%d is never closed", u.Line, u.Col)
		f.Severity = config.SeverityError
		f.Suggestion = fmt.Sprintf("Add the missing ']%s]'", strings.Repeat("=", u.Level))
	}
	return f
}

// tryAutoFix performs the single bounded repair attempt: when the buffer
// is short exactly N 'end' keywords and brackets are clean, append N
// closers and re-validate once. Anything else is left alone; iterating
// until convergence would mask unrelated errors.
func (v *Validator) tryAutoFix(text string, report *Report) {
	blocks := report.Blocks
	if blocks.ExpectedClosers <= blocks.FoundClosers {
		return
	}
	if !report.Brackets.Balanced() {
		return
	}
	if len(blocks.ExtraCloserLines) > 0 {
		return
	}

	missing := blocks.MissingEnds()
	if missing == 0 {
		return
	}

	fixed := text
	if fixed != "" && !strings.HasSuffix(fixed, "\n") {
		fixed += "\n"
	}
	fixed += strings.Repeat("end\n", missing)

	refixed := v.analyzeOnce(fixed)
	if !refixed.Valid {
		return
	}

	report.AutoFixed = true
	report.FixedText = fixed
}

// Package analyze provides the structural analyzers for luaguard: block
// balance, bracket balance, and style checks over scanned Lua source.
package analyze

import (
	"fmt"

	"github.com/JulianKerignard/Roblox-MCP-sub000/pkg/config"
)

// FindingKind identifies the category of a reported issue.
type FindingKind string

const (
	// KindUnterminatedString is a string or long bracket that never closes.
	KindUnterminatedString FindingKind = "unterminated-string"

	// KindUnclosedBlock is a block opener with no matching closer.
	KindUnclosedBlock FindingKind = "unclosed-block"

	// KindExtraCloser is an 'end' with no open block.
	KindExtraCloser FindingKind = "extra-closer"

	// KindMismatchedUntil is an 'until' whose innermost block is not a repeat.
	KindMismatchedUntil FindingKind = "mismatched-until"

	// KindBracketMismatch is a closing bracket of the wrong family.
	KindBracketMismatch FindingKind = "bracket-mismatch"

	// KindUnclosedBracket is an opening bracket with no closer.
	KindUnclosedBracket FindingKind = "unclosed-bracket"

	// KindUnexpectedCloser is a closing bracket with nothing open.
	KindUnexpectedCloser FindingKind = "unexpected-closer"

	// KindDeprecatedAPI flags calls to removed or deprecated library functions.
	KindDeprecatedAPI FindingKind = "deprecated-api"

	// KindNamingConvention flags identifiers that break naming conventions.
	KindNamingConvention FindingKind = "naming-convention"
)

// Severity returns the intrinsic severity of a finding kind. Structural
// problems are always errors; style findings are always warnings. An
// unterminated short string starts as a warning and may be escalated by
// the validator when brackets are confused downstream.
func (k FindingKind) Severity() config.Severity {
	switch k {
	case KindUnclosedBlock, KindExtraCloser, KindMismatchedUntil,
		KindBracketMismatch, KindUnclosedBracket, KindUnexpectedCloser:
		return config.SeverityError
	case KindUnterminatedString:
		return config.SeverityWarning
	case KindDeprecatedAPI, KindNamingConvention:
		return config.SeverityWarning
	default:
		return config.SeverityWarning
	}
}

// Finding represents a single reported issue in a candidate buffer.
type Finding struct {
	// Kind is the category of the issue.
	Kind FindingKind `json:"kind"`

	// Severity is error or warning. Errors make the buffer invalid.
	Severity config.Severity `json:"severity"`

	// Message is the human-readable description of the issue.
	Message string `json:"message"`

	// Line is the 1-based line number of the issue.
	Line int `json:"line"`

	// Column is the 1-based column number, or 0 when line-granular.
	Column int `json:"column,omitempty"`

	// OtherLine and OtherColumn carry a second source location where one
	// applies (e.g. the opener of a mismatched bracket pair).
	OtherLine   int `json:"otherLine,omitempty"`
	OtherColumn int `json:"otherColumn,omitempty"`

	// Suggestion is an optional human-readable remediation hint.
	Suggestion string `json:"suggestion,omitempty"`
}

// IsError returns true if the finding makes its buffer invalid.
func (f *Finding) IsError() bool {
	return f.Severity == config.SeverityError
}

// String formats the finding as "line:col kind: message".
func (f *Finding) String() string {
	if f.Column > 0 {
		return fmt.Sprintf("%d:%d %s: %s", f.Line, f.Column, f.Kind, f.Message)
	}
	return fmt.Sprintf("%d %s: %s", f.Line, f.Kind, f.Message)
}

// NewFinding creates a finding with the kind's intrinsic severity.
func NewFinding(kind FindingKind, line, col int, message string) Finding {
	return Finding{
		Kind:     kind,
		Severity: kind.Severity(),
		Message:  message,
		Line:     line,
		Column:   col,
	}
}

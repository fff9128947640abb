// Package patch provides edit descriptors and the pure patch simulator:
// given an original buffer and an edit, it materializes what the file
// would look like without touching the real file.
package patch

import "fmt"

// Op identifies the kind of edit.
type Op string

const (
	// OpInsert inserts new lines before StartLine.
	OpInsert Op = "insert"

	// OpReplace replaces lines [StartLine, EndLine] with new lines.
	OpReplace Op = "replace"

	// OpDelete removes lines [StartLine, EndLine].
	OpDelete Op = "delete"
)

// Edit describes a single line-range edit to a buffer.
// Line numbers are 1-based and inclusive.
type Edit struct {
	// Operation is insert, replace, or delete.
	Operation Op `json:"operation"`

	// StartLine is where the edit begins. For insert, the new text is
	// placed before this line; StartLine may be lineCount+1 to append.
	StartLine int `json:"lineStart"`

	// EndLine is where the edit ends (replace/delete only).
	// Zero defaults to StartLine.
	EndLine int `json:"lineEnd,omitempty"`

	// NewText is the text spliced in (insert/replace only). It may span
	// multiple lines.
	NewText string `json:"newText,omitempty"`
}

// RangeError reports an edit whose line range does not fit the buffer.
// It is a caller-contract violation, distinct from content findings.
type RangeError struct {
	Op        Op
	StartLine int
	EndLine   int
	LineCount int
	Reason    string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("invalid range for %s [%d:%d] in %d-line buffer: %s",
		e.Op, e.StartLine, e.EndLine, e.LineCount, e.Reason)
}

// normalized returns the edit with EndLine defaulted to StartLine.
func (e Edit) normalized() Edit {
	if e.EndLine == 0 {
		e.EndLine = e.StartLine
	}
	return e
}

// Validate checks the edit against a buffer of lineCount lines.
// Out-of-range edits fail with a *RangeError rather than clamping.
func (e Edit) Validate(lineCount int) error {
	ed := e.normalized()

	fail := func(reason string) error {
		return &RangeError{
			Op:        ed.Operation,
			StartLine: ed.StartLine,
			EndLine:   ed.EndLine,
			LineCount: lineCount,
			Reason:    reason,
		}
	}

	switch ed.Operation {
	case OpInsert:
		if ed.StartLine < 1 || ed.StartLine > lineCount+1 {
			return fail("insert position out of bounds")
		}
	case OpReplace, OpDelete:
		if ed.StartLine < 1 || ed.StartLine > lineCount {
			return fail("start line out of bounds")
		}
		if ed.EndLine < ed.StartLine {
			return fail("end line before start line")
		}
		if ed.EndLine > lineCount {
			return fail("end line out of bounds")
		}
	default:
		return fail(fmt.Sprintf("unknown operation %q", ed.Operation))
	}

	return nil
}

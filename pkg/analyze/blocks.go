package analyze

import (
	"fmt"

	"github.com/JulianKerignard/Roblox-MCP-sub000/pkg/luasrc"
)

// BlockKind identifies the opener keyword of a block.
type BlockKind string

const (
	BlockFunction BlockKind = "function"
	BlockIf       BlockKind = "if"
	BlockFor      BlockKind = "for"
	BlockWhile    BlockKind = "while"
	BlockDo       BlockKind = "do"
	BlockRepeat   BlockKind = "repeat"
)

// BlockMarker records one open block on the analysis stack.
type BlockMarker struct {
	// Kind is the opener keyword.
	Kind BlockKind

	// OpenLine is the 1-based line of the opener.
	OpenLine int

	// awaitingDo is set on for/while markers until their own 'do' arrives,
	// so that 'do' is not mistaken for a new do-block.
	awaitingDo bool
}

// BlockAnalysis is the result of walking the code spans for block keywords.
type BlockAnalysis struct {
	// ExpectedClosers counts pushed markers that are closed by 'end'.
	// Repeat blocks are closed by 'until' and are not counted here.
	ExpectedClosers int

	// FoundClosers counts every 'end' keyword encountered.
	FoundClosers int

	// Unclosed is the final state of the marker stack, outermost first.
	Unclosed []BlockMarker

	// ExtraCloserLines records every closing keyword met with an empty
	// stack, and every 'until' whose stack top was not a repeat.
	ExtraCloserLines []int

	findings []Finding
}

// MissingEnds returns how many 'end' keywords would balance the buffer.
// Unclosed repeat blocks need 'until', not 'end', and are excluded.
func (a *BlockAnalysis) MissingEnds() int {
	n := 0
	for _, m := range a.Unclosed {
		if m.Kind != BlockRepeat {
			n++
		}
	}
	return n
}

// Balanced returns true if no block problem was found.
func (a *BlockAnalysis) Balanced() bool {
	return len(a.Unclosed) == 0 && len(a.ExtraCloserLines) == 0
}

// Findings returns the findings derived from the analysis.
func (a *BlockAnalysis) Findings() []Finding {
	return a.findings
}

// AnalyzeBlocks walks the scan's code spans in order and tracks a stack of
// open block markers. Every 'end' pops the top regardless of its declared
// kind: verifying that a closer matches its opener's kind is a documented
// non-goal. 'until' pops only a repeat.
func AnalyzeBlocks(snap *luasrc.FileSnapshot, scan *luasrc.ScanResult) *BlockAnalysis {
	a := &BlockAnalysis{}
	var stack []BlockMarker

	push := func(kind BlockKind, line int, awaitingDo bool) {
		stack = append(stack, BlockMarker{Kind: kind, OpenLine: line, awaitingDo: awaitingDo})
		if kind != BlockRepeat {
			a.ExpectedClosers++
		}
	}

	forEachCodeWord(snap, scan, func(w word) {
		switch w.text {
		case "function":
			push(BlockFunction, w.line, false)
		case "if":
			push(BlockIf, w.line, false)
		case "for":
			push(BlockFor, w.line, true)
		case "while":
			push(BlockWhile, w.line, true)
		case "repeat":
			push(BlockRepeat, w.line, false)
		case "do":
			// The 'do' of an open for/while belongs to that marker.
			if n := len(stack); n > 0 && stack[n-1].awaitingDo {
				stack[n-1].awaitingDo = false
				return
			}
			push(BlockDo, w.line, false)
		case "end":
			a.FoundClosers++
			if len(stack) == 0 {
				a.ExtraCloserLines = append(a.ExtraCloserLines, w.line)
				f := NewFinding(KindExtraCloser, w.line, w.col,
					"'end' with no open block")
				f.Suggestion = "Remove this 'end' or add the missing opener"
				a.findings = append(a.findings, f)
				return
			}
			stack = stack[:len(stack)-1]
		case "until":
			if n := len(stack); n > 0 && stack[n-1].Kind == BlockRepeat {
				stack = stack[:n-1]
				return
			}
			a.ExtraCloserLines = append(a.ExtraCloserLines, w.line)
			f := NewFinding(KindMismatchedUntil, w.line, w.col,
				"'until' with no open repeat block")
			f.Suggestion = "Add the missing 'repeat' or remove this 'until'"
			a.findings = append(a.findings, f)
		}
	})

	a.Unclosed = stack

	for _, m := range a.Unclosed {
		closer := "end"
		if m.Kind == BlockRepeat {
			closer = "until"
		}
		f := NewFinding(KindUnclosedBlock, m.OpenLine, 0,
			fmt.Sprintf("'%s' block opened on line %d is never closed", m.Kind, m.OpenLine))
		f.Suggestion = fmt.Sprintf("Add the missing '%s'", closer)
		a.findings = append(a.findings, f)
	}

	return a
}

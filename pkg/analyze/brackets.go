package analyze

import (
	"fmt"

	"github.com/JulianKerignard/Roblox-MCP-sub000/pkg/luasrc"
)

// OpenBracket records one open bracket on the analysis stack.
type OpenBracket struct {
	// Char is the opening character: '(', '[' or '{'.
	Char byte

	// Line and Column are the 1-based location of the opener.
	Line   int
	Column int
}

// BracketMismatch pairs an opener with a closer of the wrong family.
type BracketMismatch struct {
	Open        OpenBracket
	CloseChar   byte
	CloseLine   int
	CloseColumn int
}

// BracketAnalysis is the result of walking the code spans for brackets.
// String and comment content is inert and never contributes.
type BracketAnalysis struct {
	// Mismatches lists closing brackets of the wrong kind, with both
	// source locations.
	Mismatches []BracketMismatch

	// UnexpectedClosers lists closing brackets met with an empty stack.
	UnexpectedClosers []OpenBracket

	// Unclosed is the final state of the stack, outermost first.
	Unclosed []OpenBracket

	findings []Finding
}

// Balanced returns true if no bracket problem was found.
func (a *BracketAnalysis) Balanced() bool {
	return len(a.Mismatches) == 0 && len(a.UnexpectedClosers) == 0 && len(a.Unclosed) == 0
}

// Findings returns the findings derived from the analysis.
func (a *BracketAnalysis) Findings() []Finding {
	return a.findings
}

func closerFor(open byte) byte {
	switch open {
	case '(':
		return ')'
	case '[':
		return ']'
	case '{':
		return '}'
	}
	return 0
}

// AnalyzeBrackets maintains one stack for all three bracket families over
// the scan's code spans. Long-bracket delimiters never appear here: the
// scanner classifies them as string or comment spans.
func AnalyzeBrackets(snap *luasrc.FileSnapshot, scan *luasrc.ScanResult) *BracketAnalysis {
	a := &BracketAnalysis{}
	var stack []OpenBracket

	for _, sp := range scan.Spans {
		if !sp.IsCode() {
			continue
		}

		text := sp.Text(snap.LineContent(sp.Line))
		for i, c := range text {
			col := sp.StartCol + i
			switch c {
			case '(', '[', '{':
				stack = append(stack, OpenBracket{Char: c, Line: sp.Line, Column: col})

			case ')', ']', '}':
				if len(stack) == 0 {
					a.UnexpectedClosers = append(a.UnexpectedClosers,
						OpenBracket{Char: c, Line: sp.Line, Column: col})
					f := NewFinding(KindUnexpectedCloser, sp.Line, col,
						fmt.Sprintf("unexpected '%c' with no open bracket", c))
					a.findings = append(a.findings, f)
					continue
				}

				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if closerFor(top.Char) != c {
					a.Mismatches = append(a.Mismatches, BracketMismatch{
						Open:        top,
						CloseChar:   c,
						CloseLine:   sp.Line,
						CloseColumn: col,
					})
					f := NewFinding(KindBracketMismatch, sp.Line, col,
						fmt.Sprintf("'%c' closed by '%c' (opened at %d:%d)",
							top.Char, c, top.Line, top.Column))
					f.OtherLine = top.Line
					f.OtherColumn = top.Column
					f.Suggestion = fmt.Sprintf("Expected '%c' here", closerFor(top.Char))
					a.findings = append(a.findings, f)
				}
			}
		}
	}

	a.Unclosed = stack

	for _, open := range a.Unclosed {
		f := NewFinding(KindUnclosedBracket, open.Line, open.Column,
			fmt.Sprintf("'%c' opened at %d:%d is never closed", open.Char, open.Line, open.Column))
		f.Suggestion = fmt.Sprintf("Add the missing '%c'", closerFor(open.Char))
		a.findings = append(a.findings, f)
	}

	return a
}

// Package history provides the bounded undo store for committed edits.
// Each commit is stored as a compact reverse diff: just enough line-indexed
// data to turn the committed text back into its predecessor.
package history

import (
	"sort"

	"github.com/JulianKerignard/Roblox-MCP-sub000/pkg/patch"
)

// DeletedLine is a line the edit removed, positioned in the before text.
type DeletedLine struct {
	// Line is the 1-based position the line held in the before text.
	Line int `json:"line"`

	// Text is the removed line content.
	Text string `json:"text"`
}

// ModifiedLine is a line the edit changed in place, positioned in the
// after text.
type ModifiedLine struct {
	// Line is the 1-based position of the line in the after text.
	Line int `json:"line"`

	// OldText is the line's content before the edit.
	OldText string `json:"oldText"`
}

// ReverseDiff records everything needed to undo one committed edit.
type ReverseDiff struct {
	// Additions lists 1-based line numbers in the after text that the
	// edit introduced. Undo removes them.
	Additions []int `json:"additions,omitempty"`

	// Deletions lists lines the edit removed. Undo re-inserts them at
	// their before positions.
	Deletions []DeletedLine `json:"deletions,omitempty"`

	// Modifications lists lines changed in place. Undo restores their
	// old content.
	Modifications []ModifiedLine `json:"modifications,omitempty"`

	// TrailingNewline records whether the before text ended with one.
	TrailingNewline bool `json:"trailingNewline"`
}

// SizeCost returns the byte cost of retaining this diff.
func (d *ReverseDiff) SizeCost() int {
	cost := 0
	for _, del := range d.Deletions {
		cost += len(del.Text)
	}
	for _, mod := range d.Modifications {
		cost += len(mod.OldText)
	}
	return cost
}

// Empty returns true when the diff records no changes.
func (d *ReverseDiff) Empty() bool {
	return len(d.Additions) == 0 && len(d.Deletions) == 0 && len(d.Modifications) == 0
}

// ComputeReverse builds the reverse diff that turns after back into before.
func ComputeReverse(before, after string) *ReverseDiff {
	beforeLines := patch.SplitLines(before)
	afterLines := patch.SplitLines(after)

	diff := &ReverseDiff{
		TrailingNewline: before == "" || before[len(before)-1] == '\n',
	}

	ops := buildDiffOps(beforeLines, afterLines)

	// Fold each run of removes immediately followed by adds into in-place
	// modifications, pairing them positionally. Leftovers stay pure
	// deletions or additions.
	i := 0
	for i < len(ops) {
		if ops[i].kind == opContext {
			i++
			continue
		}

		removeStart := i
		for i < len(ops) && ops[i].kind == opRemove {
			i++
		}
		removes := ops[removeStart:i]

		addStart := i
		for i < len(ops) && ops[i].kind == opAdd {
			i++
		}
		adds := ops[addStart:i]

		paired := min(len(removes), len(adds))
		for p := 0; p < paired; p++ {
			diff.Modifications = append(diff.Modifications, ModifiedLine{
				Line:    adds[p].modIdx + 1,
				OldText: removes[p].content,
			})
		}
		for _, op := range removes[paired:] {
			diff.Deletions = append(diff.Deletions, DeletedLine{
				Line: op.origIdx + 1,
				Text: op.content,
			})
		}
		for _, op := range adds[paired:] {
			diff.Additions = append(diff.Additions, op.modIdx+1)
		}
	}

	return diff
}

// Apply undoes one edit: given the after text, it reconstructs the before
// text. Modifications are restored first (after coordinates), added lines
// are then dropped, and deleted lines are re-inserted at their before
// positions in ascending order.
func (d *ReverseDiff) Apply(after string) string {
	lines := patch.SplitLines(after)

	for _, mod := range d.Modifications {
		if mod.Line >= 1 && mod.Line <= len(lines) {
			lines[mod.Line-1] = mod.OldText
		}
	}

	removed := make([]int, len(d.Additions))
	copy(removed, d.Additions)
	sort.Sort(sort.Reverse(sort.IntSlice(removed)))
	for _, line := range removed {
		if line >= 1 && line <= len(lines) {
			lines = append(lines[:line-1], lines[line:]...)
		}
	}

	inserts := make([]DeletedLine, len(d.Deletions))
	copy(inserts, d.Deletions)
	sort.Slice(inserts, func(a, b int) bool { return inserts[a].Line < inserts[b].Line })
	for _, del := range inserts {
		idx := del.Line - 1
		if idx < 0 {
			idx = 0
		}
		if idx > len(lines) {
			idx = len(lines)
		}
		lines = append(lines[:idx], append([]string{del.Text}, lines[idx:]...)...)
	}

	if len(lines) == 0 {
		return ""
	}

	joined := ""
	for i, line := range lines {
		if i > 0 {
			joined += "\n"
		}
		joined += line
	}
	if d.TrailingNewline {
		joined += "\n"
	}
	return joined
}

// diffOpKind classifies one step of the line diff.
type diffOpKind int

const (
	opContext diffOpKind = iota
	opAdd
	opRemove
)

// diffOp represents a single diff operation.
type diffOp struct {
	kind    diffOpKind
	content string
	origIdx int // before line index (-1 for adds)
	modIdx  int // after line index (-1 for removes)
}

// buildDiffOps builds an edit script from before to after using an
// LCS-based line diff.
func buildDiffOps(orig, mod []string) []diffOp {
	lcs := longestCommonSubsequence(orig, mod)

	var ops []diffOp
	origIdx, modIdx, lcsIdx := 0, 0, 0

	for origIdx < len(orig) || modIdx < len(mod) {
		if lcsIdx < len(lcs) &&
			origIdx < len(orig) && modIdx < len(mod) &&
			orig[origIdx] == lcs[lcsIdx] && mod[modIdx] == lcs[lcsIdx] {
			ops = append(ops, diffOp{
				kind:    opContext,
				content: orig[origIdx],
				origIdx: origIdx,
				modIdx:  modIdx,
			})
			origIdx++
			modIdx++
			lcsIdx++
			continue
		}

		for origIdx < len(orig) && (lcsIdx >= len(lcs) || orig[origIdx] != lcs[lcsIdx]) {
			ops = append(ops, diffOp{
				kind:    opRemove,
				content: orig[origIdx],
				origIdx: origIdx,
				modIdx:  -1,
			})
			origIdx++
		}

		for modIdx < len(mod) && (lcsIdx >= len(lcs) || mod[modIdx] != lcs[lcsIdx]) {
			ops = append(ops, diffOp{
				kind:    opAdd,
				content: mod[modIdx],
				origIdx: -1,
				modIdx:  modIdx,
			})
			modIdx++
		}
	}

	return ops
}

// longestCommonSubsequence computes the LCS of two string slices.
func longestCommonSubsequence(orig, mod []string) []string {
	origLen, modLen := len(orig), len(mod)
	if origLen == 0 || modLen == 0 {
		return nil
	}

	dp := make([][]int, origLen+1)
	for idx := range dp {
		dp[idx] = make([]int, modLen+1)
	}

	for row := 1; row <= origLen; row++ {
		for col := 1; col <= modLen; col++ {
			if orig[row-1] == mod[col-1] {
				dp[row][col] = dp[row-1][col-1] + 1
			} else {
				dp[row][col] = max(dp[row-1][col], dp[row][col-1])
			}
		}
	}

	lcsLen := dp[origLen][modLen]
	if lcsLen == 0 {
		return nil
	}

	lcs := make([]string, lcsLen)
	row, col, idx := origLen, modLen, lcsLen-1
	for row > 0 && col > 0 {
		switch {
		case orig[row-1] == mod[col-1]:
			lcs[idx] = orig[row-1]
			row--
			col--
			idx--
		case dp[row-1][col] > dp[row][col-1]:
			row--
		default:
			col--
		}
	}

	return lcs
}

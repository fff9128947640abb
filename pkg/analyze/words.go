package analyze

import (
	"github.com/JulianKerignard/Roblox-MCP-sub000/pkg/luasrc"
)

// word is an identifier-shaped token found in a code span.
type word struct {
	text string
	line int
	col  int // 1-based column of the first character
}

func isWordStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isWordChar(c byte) bool {
	return isWordStart(c) || (c >= '0' && c <= '9')
}

// forEachCodeWord calls fn for every identifier-shaped token inside the
// scan's code spans, in source order. String and comment content is never
// visited. Word boundaries are exact: 'end' inside 'bend' or 'end_of'
// does not match.
func forEachCodeWord(snap *luasrc.FileSnapshot, scan *luasrc.ScanResult, fn func(w word)) {
	for _, sp := range scan.Spans {
		if !sp.IsCode() {
			continue
		}

		text := sp.Text(snap.LineContent(sp.Line))
		i := 0
		for i < len(text) {
			if !isWordStart(text[i]) {
				i++
				continue
			}
			start := i
			for i < len(text) && isWordChar(text[i]) {
				i++
			}
			fn(word{
				text: string(text[start:i]),
				line: sp.Line,
				col:  sp.StartCol + start,
			})
		}
	}
}

package patch

import "strings"

// Simulate produces the candidate buffer that applying the edit to the
// original text would yield. It is a pure function: the original is never
// mutated, and out-of-range edits fail with *RangeError instead of
// clamping. The original's trailing-newline style is preserved.
func Simulate(original string, edit Edit) (string, error) {
	lines := SplitLines(original)

	if err := edit.Validate(len(lines)); err != nil {
		return "", err
	}
	ed := edit.normalized()

	var newLines []string
	if ed.Operation != OpDelete {
		newLines = SplitLines(ed.NewText)
	}

	start := ed.StartLine - 1
	end := ed.EndLine // exclusive splice bound for replace/delete
	if ed.Operation == OpInsert {
		end = start
	}

	result := make([]string, 0, len(lines)+len(newLines))
	result = append(result, lines[:start]...)
	result = append(result, newLines...)
	result = append(result, lines[end:]...)

	if len(result) == 0 {
		return "", nil
	}

	joined := strings.Join(result, "\n")
	if hasTrailingNewline(original) {
		joined += "\n"
	}
	return joined, nil
}

// SplitLines splits text into lines without their newlines. A single
// trailing newline does not produce a final empty line: "a\n" is one
// line, matching the snapshot line model.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	// Strip CR from CRLF endings.
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// hasTrailingNewline reports whether joined output should end with a
// newline. Empty buffers grow one so that committed files stay
// newline-terminated.
func hasTrailingNewline(original string) bool {
	if original == "" {
		return true
	}
	return strings.HasSuffix(original, "\n")
}

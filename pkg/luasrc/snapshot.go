// Package luasrc provides the source representation for luaguard.
// It defines a lossless, immutable view of Lua source files including:
// - FileSnapshot: the complete file representation with line metadata
// - Span stream: every character of every line classified
// - Scanner: the single-pass classifier producing that stream
package luasrc

// FileSnapshot is an immutable, lossless view of a Lua source file at a
// specific time. It holds the raw content and line metadata.
type FileSnapshot struct {
	// Path is the file path (may be empty for in-memory content).
	Path string

	// Content is the full file bytes.
	Content []byte

	// Lines contains metadata for each line in the file.
	Lines []LineInfo
}

// LineInfo holds metadata for a single line in a file.
type LineInfo struct {
	// StartOffset is the byte index of the line start.
	StartOffset int

	// NewlineStart is the byte index where newline characters begin.
	// For lines without a trailing newline (e.g., last line), this equals EndOffset.
	NewlineStart int

	// EndOffset is the byte index just after the newline (or end of file).
	EndOffset int
}

// NewFileSnapshot creates a new FileSnapshot from content.
// It builds the line index but does not scan (that is Scan's job).
func NewFileSnapshot(path string, content []byte) *FileSnapshot {
	return &FileSnapshot{
		Path:    path,
		Content: content,
		Lines:   BuildLines(content),
	}
}

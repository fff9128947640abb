package luasrc

// SpanKind classifies a region of a source line.
type SpanKind uint8

// Span kinds cover every character of a line, separating live code from
// inert string and comment content.
const (
	// SpanCode is executable source text.
	SpanCode SpanKind = iota

	// SpanString is a short string literal, including its quotes.
	SpanString

	// SpanLongString is a long-bracket string ([=*[ ... ]=*]), including
	// its delimiters.
	SpanLongString

	// SpanComment is a line comment (-- to end of line).
	SpanComment

	// SpanLongComment is a long-bracket comment (--[=*[ ... ]=*]).
	SpanLongComment
)

// String returns a human-readable name for the span kind.
func (k SpanKind) String() string {
	switch k {
	case SpanCode:
		return "code"
	case SpanString:
		return "string"
	case SpanLongString:
		return "long-string"
	case SpanComment:
		return "comment"
	case SpanLongComment:
		return "long-comment"
	default:
		return "unknown"
	}
}

// Span represents a classified region of a single source line.
// Spans are line-local: a long bracket crossing N lines yields N spans.
type Span struct {
	// Line is the 1-based line number.
	Line int

	// StartCol is the 1-based column where the span begins (inclusive).
	StartCol int

	// EndCol is the 1-based column where the span ends (exclusive).
	EndCol int

	// Kind classifies what this span contains.
	Kind SpanKind

	// Level is the count of '=' characters in the long-bracket delimiter.
	// A closing delimiter only matches an opener with an identical level.
	// Zero for non-long-bracket spans.
	Level int
}

// Len returns the length of this span in bytes.
func (s Span) Len() int {
	return s.EndCol - s.StartCol
}

// IsCode returns true if the span contains executable source text.
func (s Span) IsCode() bool {
	return s.Kind == SpanCode
}

// Text returns the span's source text from the given line content
// (the line without its trailing newline).
func (s Span) Text(line []byte) []byte {
	if s.StartCol < 1 || s.EndCol-1 > len(line) || s.StartCol > s.EndCol {
		return nil
	}
	return line[s.StartCol-1 : s.EndCol-1]
}

// ValidateSpans checks that the spans for one line are contiguous,
// non-overlapping, and cover [1, lineLen+1). Used by tests.
func ValidateSpans(spans []Span, lineLen int) bool {
	if len(spans) == 0 {
		return lineLen == 0
	}

	if spans[0].StartCol != 1 {
		return false
	}
	if spans[len(spans)-1].EndCol != lineLen+1 {
		return false
	}
	for i := 1; i < len(spans); i++ {
		if spans[i].StartCol != spans[i-1].EndCol {
			return false
		}
	}
	return true
}

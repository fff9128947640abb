package luasrc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanClassification(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantKinds []SpanKind
	}{
		{
			name:      "plain code",
			input:     "local x = 1\n",
			wantKinds: []SpanKind{SpanCode},
		},
		{
			name:      "code with short string",
			input:     `print("hello")` + "\n",
			wantKinds: []SpanKind{SpanCode, SpanString, SpanCode},
		},
		{
			name:      "single quoted string",
			input:     "local s = 'a'\n",
			wantKinds: []SpanKind{SpanCode, SpanString},
		},
		{
			name:      "line comment",
			input:     "x = 1 -- set x\n",
			wantKinds: []SpanKind{SpanCode, SpanComment},
		},
		{
			name:      "comment only line",
			input:     "-- nothing here\n",
			wantKinds: []SpanKind{SpanComment},
		},
		{
			name:      "long string same line",
			input:     "local s = [[raw]]\n",
			wantKinds: []SpanKind{SpanCode, SpanLongString},
		},
		{
			name:      "long comment same line",
			input:     "x = 1 --[[ why ]] + 2\n",
			wantKinds: []SpanKind{SpanCode, SpanLongComment, SpanCode},
		},
		{
			name:      "quote inside long string is inert",
			input:     `s = [[he said "hi]]` + "\n",
			wantKinds: []SpanKind{SpanCode, SpanLongString},
		},
		{
			name:      "comment marker inside string is inert",
			input:     `s = "a -- b"` + "\n",
			wantKinds: []SpanKind{SpanCode, SpanString},
		},
		{
			name:      "string after comment start is inert",
			input:     `-- "not a string` + "\n",
			wantKinds: []SpanKind{SpanComment},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ScanText(tt.input)
			require.Len(t, res.Spans, len(tt.wantKinds))
			for i, want := range tt.wantKinds {
				assert.Equal(t, want, res.Spans[i].Kind, "span %d", i)
			}
			assert.Empty(t, res.Unterminated)
		})
	}
}

func TestScanCoversEveryCharacter(t *testing.T) {
	inputs := []string{
		"local x = 1\n",
		`print("a \" b") -- trailing` + "\n",
		"s = [==[\nmultiline\n]==] .. 'tail'\n",
		"--[[ comment\nstill comment ]] code()\n",
		"",
		"\n\n\n",
	}

	for _, input := range inputs {
		snap := NewFileSnapshot("test.lua", []byte(input))
		res := Scan(snap)

		for line := 1; line <= snap.LineCount(); line++ {
			spans := res.SpansForLine(line)
			lineLen := len(snap.LineContent(line))
			if lineLen == 0 {
				assert.Empty(t, spans, "line %d of %q", line, input)
				continue
			}
			assert.True(t, ValidateSpans(spans, lineLen),
				"line %d of %q not fully covered: %+v", line, input, spans)
		}
	}
}

func TestScanEscapedQuotes(t *testing.T) {
	// The escaped quote must not end the string.
	res := ScanText(`s = "a \" b"` + "\n")
	require.Empty(t, res.Unterminated)

	var strings []Span
	for _, sp := range res.Spans {
		if sp.Kind == SpanString {
			strings = append(strings, sp)
		}
	}
	require.Len(t, strings, 1)
	assert.Equal(t, 5, strings[0].StartCol)
	assert.Equal(t, 13, strings[0].EndCol)
}

func TestScanEscapedBackslashThenQuote(t *testing.T) {
	// \\ is an escaped backslash, so the following quote really closes.
	res := ScanText(`s = "a\\" .. x` + "\n")
	require.Empty(t, res.Unterminated)

	var kinds []SpanKind
	for _, sp := range res.Spans {
		kinds = append(kinds, sp.Kind)
	}
	assert.Equal(t, []SpanKind{SpanCode, SpanString, SpanCode}, kinds)
}

func TestScanUnterminatedString(t *testing.T) {
	res := ScanText("x = \"oops\ny = 2\n")

	require.Len(t, res.Unterminated, 1)
	assert.Equal(t, 1, res.Unterminated[0].Line)
	assert.Equal(t, 5, res.Unterminated[0].Col)
	assert.Equal(t, SpanString, res.Unterminated[0].Kind)

	// Scanning recovers: line 2 is plain code.
	spans := res.SpansForLine(2)
	require.Len(t, spans, 1)
	assert.Equal(t, SpanCode, spans[0].Kind)
}

func TestScanLongBracketLevels(t *testing.T) {
	tests := []struct {
		name             string
		input            string
		wantUnterminated bool
	}{
		{
			name:             "matching level closes",
			input:            "[=[ a ]=]",
			wantUnterminated: false,
		},
		{
			name:             "lower level closer does not match",
			input:            "[=[ a ]]",
			wantUnterminated: true,
		},
		{
			name:             "higher level closer does not match",
			input:            "[[ a ]=]",
			wantUnterminated: true,
		},
		{
			name:             "level two",
			input:            "[==[ a ]=] b ]==]",
			wantUnterminated: false,
		},
		{
			name:             "level zero",
			input:            "[[ a ]]",
			wantUnterminated: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ScanText(tt.input)
			if tt.wantUnterminated {
				require.Len(t, res.Unterminated, 1)
				assert.Equal(t, SpanLongString, res.Unterminated[0].Kind)
			} else {
				assert.Empty(t, res.Unterminated)
			}
		})
	}
}

func TestScanMultilineLongComment(t *testing.T) {
	input := "before()\n--[=[\n\"quotes\" and -- markers\n]=]\nafter()\n"
	res := ScanText(input)

	assert.Empty(t, res.Unterminated)

	// Lines 2-4 are entirely comment.
	for line := 2; line <= 4; line++ {
		for _, sp := range res.SpansForLine(line) {
			assert.Equal(t, SpanLongComment, sp.Kind, "line %d", line)
			assert.Equal(t, 1, sp.Level)
		}
	}

	// Lines 1 and 5 are code.
	assert.Equal(t, SpanCode, res.SpansForLine(1)[0].Kind)
	assert.Equal(t, SpanCode, res.SpansForLine(5)[0].Kind)
}

func TestScanUnterminatedLongBracketAtEOF(t *testing.T) {
	res := ScanText("x = 1\ns = [[ never closed\n")

	require.Len(t, res.Unterminated, 1)
	got := res.Unterminated[0]
	assert.Equal(t, SpanLongString, got.Kind)
	assert.Equal(t, 2, got.Line)
	assert.Equal(t, 5, got.Col)
	assert.Equal(t, 0, got.Level)
}

func TestScanBracketAfterMinusStaysCode(t *testing.T) {
	// A single minus before [[ keeps it out of long-string territory.
	res := ScanText("a = b-[[x]]\n")
	for _, sp := range res.Spans {
		assert.Equal(t, SpanCode, sp.Kind)
	}
}

func TestBuildLines(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantCount int
	}{
		{name: "empty", input: "", wantCount: 0},
		{name: "single no newline", input: "abc", wantCount: 1},
		{name: "single with newline", input: "abc\n", wantCount: 1},
		{name: "two lines", input: "a\nb\n", wantCount: 2},
		{name: "crlf", input: "a\r\nb\r\n", wantCount: 2},
		{name: "trailing content", input: "a\nb", wantCount: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := NewFileSnapshot("", []byte(tt.input))
			assert.Equal(t, tt.wantCount, snap.LineCount())
		})
	}
}

func TestLineContentStripsCRLF(t *testing.T) {
	snap := NewFileSnapshot("", []byte("abc\r\ndef\r\n"))
	assert.Equal(t, "abc", string(snap.LineContent(1)))
	assert.Equal(t, "def", string(snap.LineContent(2)))
	assert.Nil(t, snap.LineContent(3))
	assert.Nil(t, snap.LineContent(0))
}

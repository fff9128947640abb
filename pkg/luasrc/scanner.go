package luasrc

// Unterminated records a string or long bracket that was never closed.
// Short strings are recovered at end of line; long brackets run to end
// of file, so an unterminated one swallows everything after its opener.
type Unterminated struct {
	// Line is the 1-based line of the opening delimiter.
	Line int

	// Col is the 1-based column of the opening delimiter.
	Col int

	// Kind is SpanString, SpanLongString, or SpanLongComment.
	Kind SpanKind

	// Level is the long-bracket level (zero for short strings).
	Level int
}

// ScanResult is the output of a single scan pass over a snapshot.
type ScanResult struct {
	// Spans classifies every character of every line, in order.
	Spans []Span

	// Unterminated lists unclosed strings and long brackets.
	Unterminated []Unterminated
}

// SpansForLine returns the spans belonging to a 1-based line number.
func (r *ScanResult) SpansForLine(line int) []Span {
	var out []Span
	for _, sp := range r.Spans {
		if sp.Line == line {
			out = append(out, sp)
		}
	}
	return out
}

// scanner holds the cross-line state of a scan in progress. Exactly three
// things persist between characters: the short-string state (line-local),
// the long-bracket state, and the position.
type scanner struct {
	res *ScanResult

	inLong      bool
	longLevel   int
	longComment bool
	longOpen    [2]int // line, col of the opening delimiter
}

// Scan classifies the snapshot's content into spans in a single
// left-to-right pass. It never fails on malformed input: unterminated
// constructs are recorded in the result and scanning continues.
func Scan(snap *FileSnapshot) *ScanResult {
	s := &scanner{res: &ScanResult{}}

	for lineNum := 1; lineNum <= snap.LineCount(); lineNum++ {
		s.scanLine(lineNum, snap.LineContent(lineNum))
	}

	if s.inLong {
		kind := SpanLongString
		if s.longComment {
			kind = SpanLongComment
		}
		s.res.Unterminated = append(s.res.Unterminated, Unterminated{
			Line:  s.longOpen[0],
			Col:   s.longOpen[1],
			Kind:  kind,
			Level: s.longLevel,
		})
	}

	return s.res
}

// ScanText is a convenience wrapper for in-memory content.
func ScanText(text string) *ScanResult {
	return Scan(NewFileSnapshot("", []byte(text)))
}

func (s *scanner) emit(line, startCol, endCol int, kind SpanKind, level int) {
	if endCol <= startCol {
		return
	}
	s.res.Spans = append(s.res.Spans, Span{
		Line:     line,
		StartCol: startCol,
		EndCol:   endCol,
		Kind:     kind,
		Level:    level,
	})
}

func (s *scanner) scanLine(lineNum int, line []byte) {
	n := len(line)
	i := 0

	// Inside a long bracket, only a closer of the same level is
	// interpreted. Quotes, comment markers, everything else is inert.
	if s.inLong {
		kind := SpanLongString
		if s.longComment {
			kind = SpanLongComment
		}
		after, closed := findLongCloser(line, 0, s.longLevel)
		if !closed {
			s.emit(lineNum, 1, n+1, kind, s.longLevel)
			return
		}
		s.emit(lineNum, 1, after+1, kind, s.longLevel)
		s.inLong = false
		i = after
	}

	codeStart := i

	for i < n {
		switch c := line[i]; {
		case c == '-' && i+1 < n && line[i+1] == '-':
			s.emit(lineNum, codeStart+1, i+1, SpanCode, 0)

			// --[=*[ opens a long comment; plain -- eats the rest of the line.
			if level, ok := longOpenerLevel(line, i+2); ok {
				resume, done := s.openLong(lineNum, line, i, i+2, level, true)
				if done {
					return
				}
				i = resume
				codeStart = i
				continue
			}
			s.emit(lineNum, i+1, n+1, SpanComment, 0)
			return

		case c == '[':
			level, ok := longOpenerLevel(line, i)
			if !ok || (i > 0 && line[i-1] == '-') {
				// Plain bracket, stays code.
				i++
				continue
			}
			s.emit(lineNum, codeStart+1, i+1, SpanCode, 0)
			resume, done := s.openLong(lineNum, line, i, i, level, false)
			if done {
				return
			}
			i = resume
			codeStart = i

		case c == '"' || c == '\'':
			s.emit(lineNum, codeStart+1, i+1, SpanCode, 0)
			after, closed := findQuoteEnd(line, i)
			if !closed {
				// Best-effort recovery: report it, close the string at
				// end of line, continue scanning on the next line.
				s.res.Unterminated = append(s.res.Unterminated, Unterminated{
					Line: lineNum,
					Col:  i + 1,
					Kind: SpanString,
				})
				s.emit(lineNum, i+1, n+1, SpanString, 0)
				return
			}
			s.emit(lineNum, i+1, after+1, SpanString, 0)
			i = after
			codeStart = i

		default:
			i++
		}
	}

	s.emit(lineNum, codeStart+1, n+1, SpanCode, 0)
}

// openLong handles a long-bracket opener found at delimStart (the '-' of a
// comment opener, or the '[' itself). bracketStart is where the '[' sits.
// When the bracket closes on the same line it returns the 0-based column
// scanning resumes at; done is true when the span ran to end of line.
func (s *scanner) openLong(lineNum int, line []byte, delimStart, bracketStart, level int, isComment bool) (resume int, done bool) {
	kind := SpanLongString
	if isComment {
		kind = SpanLongComment
	}

	contentStart := bracketStart + level + 2
	after, closed := findLongCloser(line, contentStart, level)
	if closed {
		s.emit(lineNum, delimStart+1, after+1, kind, level)
		return after, false
	}

	s.emit(lineNum, delimStart+1, len(line)+1, kind, level)
	s.inLong = true
	s.longLevel = level
	s.longComment = isComment
	s.longOpen = [2]int{lineNum, delimStart + 1}
	return 0, true
}

// longOpenerLevel reports whether a long-bracket opener starts at i,
// and its level: '[' followed by level '=' characters followed by '['.
func longOpenerLevel(line []byte, i int) (int, bool) {
	if i >= len(line) || line[i] != '[' {
		return 0, false
	}
	j := i + 1
	for j < len(line) && line[j] == '=' {
		j++
	}
	if j < len(line) && line[j] == '[' {
		return j - i - 1, true
	}
	return 0, false
}

// findLongCloser scans for a closing long bracket of exactly the given
// level starting at from. Returns the index just after the closer.
func findLongCloser(line []byte, from, level int) (int, bool) {
	for i := from; i+level+1 < len(line)+1; i++ {
		if line[i] != ']' {
			continue
		}
		j := i + 1
		for j < len(line) && line[j] == '=' {
			j++
		}
		if j-i-1 == level && j < len(line) && line[j] == ']' {
			return j + 1, true
		}
	}
	return 0, false
}

// findQuoteEnd scans for the closing quote of a short string opened at
// start. Backslash escapes are consumed in pairs, so a quote preceded by
// an odd number of backslashes does not close the string. Returns the
// index just after the closing quote.
func findQuoteEnd(line []byte, start int) (int, bool) {
	quote := line[start]
	i := start + 1
	for i < len(line) {
		switch line[i] {
		case '\\':
			i += 2
		case quote:
			return i + 1, true
		default:
			i++
		}
	}
	return 0, false
}

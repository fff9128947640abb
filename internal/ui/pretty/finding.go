package pretty

import (
	"fmt"
	"strings"

	"github.com/JulianKerignard/Roblox-MCP-sub000/pkg/analyze"
	"github.com/JulianKerignard/Roblox-MCP-sub000/pkg/config"
)

// FormatFinding renders one finding for terminal output. When sourceLine
// is non-empty it is shown beneath the finding with a caret at the
// reported column.
func (s *Styles) FormatFinding(path string, f analyze.Finding, sourceLine string) string {
	var b strings.Builder

	location := fmt.Sprintf("%s:%d:%d", s.FilePath.Render(path), f.Line, f.Column)
	kind := s.CheckID.Render("(" + string(f.Kind) + ")")

	b.WriteString(fmt.Sprintf("  %s  %s  %s  %s\n",
		location,
		s.FormatSeverity(f.Severity),
		s.Message.Render(f.Message),
		kind,
	))

	if sourceLine != "" {
		b.WriteString(s.FormatSourceContext(sourceLine, f.Column))
	}

	if f.OtherLine > 0 {
		b.WriteString("    " + s.Dim.Render(
			fmt.Sprintf("related: line %d, column %d", f.OtherLine, f.OtherColumn)) + "\n")
	}
	if f.Suggestion != "" {
		b.WriteString("    " + s.Dim.Render("suggestion:") + " " +
			s.Suggestion.Render(f.Suggestion) + "\n")
	}

	return b.String()
}

// FormatSeverity returns a styled severity label.
func (s *Styles) FormatSeverity(sev config.Severity) string {
	switch sev {
	case config.SeverityError:
		return s.Error.Render("error")
	case config.SeverityWarning:
		return s.Warning.Render("warning")
	default:
		return string(sev)
	}
}

// FormatSourceContext renders a source line with a caret under column.
func (s *Styles) FormatSourceContext(line string, column int) string {
	const indent = "        "

	var b strings.Builder
	b.WriteString(indent + s.SourceLine.Render(line) + "\n")
	if column > 0 {
		b.WriteString(indent + strings.Repeat(" ", column-1) + s.Caret.Render("^") + "\n")
	}
	return b.String()
}

// FormatFileHeader renders a file header for grouped finding output.
func (s *Styles) FormatFileHeader(path string, findingCount int) string {
	header := s.FilePath.Render(path)
	if findingCount > 0 {
		word := "findings"
		if findingCount == 1 {
			word = "finding"
		}
		header += s.Dim.Render(fmt.Sprintf(" (%d %s)", findingCount, word))
	}
	return header
}

// FormatDiff colorizes a unified diff produced for an edit preview.
func (s *Styles) FormatDiff(diff string) string {
	var b strings.Builder
	for _, trimmed := range strings.Split(strings.TrimSuffix(diff, "\n"), "\n") {
		switch {
		case strings.HasPrefix(trimmed, "+++"), strings.HasPrefix(trimmed, "---"):
			b.WriteString(s.DiffHeader.Render(trimmed))
		case strings.HasPrefix(trimmed, "@@"):
			b.WriteString(s.DiffHunk.Render(trimmed))
		case strings.HasPrefix(trimmed, "+"):
			b.WriteString(s.DiffAdd.Render(trimmed))
		case strings.HasPrefix(trimmed, "-"):
			b.WriteString(s.DiffRemove.Render(trimmed))
		default:
			b.WriteString(s.DiffContext.Render(trimmed))
		}
		b.WriteString("\n")
	}
	return b.String()
}

package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/JulianKerignard/Roblox-MCP-sub000/pkg/runner"
)

const summaryDividerWidth = 40

// FormatSummaryOneLine renders run statistics as one line, for example
// "5 findings (3 errors, 2 warnings) in 2 files".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	total := stats.ErrorsTotal + stats.WarningsTotal
	if total == 0 && stats.FilesErrored == 0 {
		return s.Success.Render("No problems found") +
			s.Dim.Render(fmt.Sprintf(" (%d files checked)", stats.FilesChecked)) + "\n"
	}

	var parts []string

	findingWord := "findings"
	if total == 1 {
		findingWord = "finding"
	}

	var severityParts []string
	if stats.ErrorsTotal > 0 {
		severityParts = append(severityParts, s.Error.Render(fmt.Sprintf("%d errors", stats.ErrorsTotal)))
	}
	if stats.WarningsTotal > 0 {
		severityParts = append(severityParts, s.Warning.Render(fmt.Sprintf("%d warnings", stats.WarningsTotal)))
	}

	if len(severityParts) > 0 {
		parts = append(parts, fmt.Sprintf("%d %s (%s)", total, findingWord, strings.Join(severityParts, ", ")))
	} else {
		parts = append(parts, fmt.Sprintf("%d %s", total, findingWord))
	}

	fileWord := "files"
	if stats.FilesWithFindings == 1 {
		fileWord = "file"
	}
	parts = append(parts, fmt.Sprintf("in %d %s", stats.FilesWithFindings, fileWord))

	if stats.FilesFixable > 0 {
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d auto-fixable", stats.FilesFixable)))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d unreadable", stats.FilesErrored)))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary renders run statistics as a block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(s.SummaryTitle.Render("Summary"))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("-", summaryDividerWidth))
	b.WriteString("\n")

	b.WriteString("  Files checked:       " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesChecked)) + "\n")
	if stats.FilesWithFindings > 0 {
		b.WriteString("  Files with findings: " +
			s.Failure.Render(strconv.Itoa(stats.FilesWithFindings)) + "\n")
	}
	if stats.FilesErrored > 0 {
		b.WriteString("  Files unreadable:    " +
			s.Failure.Render(strconv.Itoa(stats.FilesErrored)) + "\n")
	}
	if stats.FilesFixable > 0 {
		b.WriteString("  Files auto-fixable:  " +
			s.Success.Render(strconv.Itoa(stats.FilesFixable)) + "\n")
	}

	b.WriteString("\n")
	b.WriteString("  Total findings:      " +
		s.SummaryValue.Render(strconv.Itoa(stats.ErrorsTotal+stats.WarningsTotal)) + "\n")
	if stats.ErrorsTotal > 0 {
		b.WriteString("    Errors:            " +
			s.Error.Render(strconv.Itoa(stats.ErrorsTotal)) + "\n")
	}
	if stats.WarningsTotal > 0 {
		b.WriteString("    Warnings:          " +
			s.Warning.Render(strconv.Itoa(stats.WarningsTotal)) + "\n")
	}

	b.WriteString("\n")
	switch {
	case stats.ErrorsTotal > 0 || stats.FilesErrored > 0:
		b.WriteString(s.Failure.Render("Check failed"))
	case stats.WarningsTotal > 0:
		b.WriteString(s.Warning.Render("Check completed with warnings"))
	default:
		b.WriteString(s.Success.Render("Check passed"))
	}
	b.WriteString("\n")

	return b.String()
}

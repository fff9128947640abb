package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/JulianKerignard/Roblox-MCP-sub000/internal/configloader"
	"github.com/JulianKerignard/Roblox-MCP-sub000/internal/logging"
	"github.com/JulianKerignard/Roblox-MCP-sub000/internal/ui/pretty"
	"github.com/JulianKerignard/Roblox-MCP-sub000/pkg/config"
	"github.com/JulianKerignard/Roblox-MCP-sub000/pkg/patch"
	"github.com/JulianKerignard/Roblox-MCP-sub000/pkg/validate"
)

// loadConfig resolves the effective configuration for a command, using
// the root --config flag when set.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		configPath = ""
	}

	result, err := configloader.Load(ctx, configloader.LoadOptions{
		ExplicitPath: configPath,
	})
	if err != nil {
		return nil, errors.Join(errors.New("failed to load configuration"), err)
	}

	logger := logging.Default()
	for _, warning := range result.Warnings {
		logger.Warn(warning)
	}
	if len(result.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", "files", result.LoadedFrom)
	}

	return result.Config, nil
}

// stylesFor builds the style set honoring the root --color flag.
func stylesFor(cmd *cobra.Command) *pretty.Styles {
	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}
	return pretty.NewStyles(pretty.IsColorEnabled(colorMode, cmd.OutOrStdout()))
}

// terminalWidth returns the width of the attached terminal, or fallback
// when output is not a terminal.
func terminalWidth(fallback int) int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return fallback
}

// displayPath shortens an absolute path to be relative to workDir when
// that makes it shorter.
func displayPath(workDir, path string) string {
	rel, err := filepath.Rel(workDir, path)
	if err != nil || len(rel) >= len(path) {
		return path
	}
	return rel
}

// sourceLines reads a file's lines for finding context. Returns nil when
// context is suppressed or the file cannot be read.
func sourceLines(path string, suppressed bool) []string {
	if suppressed {
		return nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	return patch.SplitLines(string(content))
}

// lineAt returns the 1-based line, or empty when out of range.
func lineAt(lines []string, n int) string {
	if n < 1 || n > len(lines) {
		return ""
	}
	return lines[n-1]
}

// printReportFindings writes a validation report's findings with source
// context taken from the candidate buffer.
func printReportFindings(out io.Writer, styles *pretty.Styles, path string, report *validate.Report, candidateLines []string, noContext bool) {
	findings := report.Findings()
	if len(findings) == 0 {
		return
	}
	fmt.Fprintln(out, styles.FormatFileHeader(path, len(findings)))
	for _, f := range findings {
		line := ""
		if !noContext {
			line = lineAt(candidateLines, f.Line)
		}
		fmt.Fprint(out, styles.FormatFinding(path, f, line))
	}
	fmt.Fprintln(out)
}

// commandContext returns the command's context, defaulting to Background.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

package cli

import (
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"

	"github.com/JulianKerignard/Roblox-MCP-sub000/internal/logging"
	"github.com/JulianKerignard/Roblox-MCP-sub000/pkg/fsutil"
	"github.com/JulianKerignard/Roblox-MCP-sub000/pkg/patch"
	"github.com/JulianKerignard/Roblox-MCP-sub000/pkg/validate"
)

type previewFlags struct {
	edit      editFlags
	noContext bool
	diffLines int
}

func newPreviewCommand() *cobra.Command {
	flags := &previewFlags{}

	cmd := &cobra.Command{
		Use:   "preview <file>",
		Short: "Simulate a line edit and report whether the result is well-formed",
		Long: `Preview applies a line edit to an in-memory copy of the file, validates
the result, and shows a unified diff of what would change. The file on
disk is never touched.

Examples:
  luaguard preview main.lua --op replace --start 10 --end 12 --text-file fix.lua
  luaguard preview init.luau --op insert --start 1 --text 'local M = {}'
  luaguard preview spawner.lua --op delete --start 40 --end 44`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreview(cmd, args[0], flags)
		},
	}

	addEditFlags(cmd, &flags.edit)
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "omit source context under findings")
	cmd.Flags().IntVar(&flags.diffLines, "diff-context", 3, "context lines around diff hunks")

	return cmd
}

func runPreview(cmd *cobra.Command, path string, flags *previewFlags) error {
	ctx := commandContext(cmd)
	logger := logging.Default()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	edit, err := flags.edit.toEdit(cmd.InOrStdin())
	if err != nil {
		return err
	}

	original, _, err := fsutil.ReadText(ctx, path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	candidate, err := patch.Simulate(original, edit)
	if err != nil {
		return err
	}
	report := validate.New(cfg).Check(candidate)

	logger.Debug("previewed edit",
		logging.FieldPath, path,
		logging.FieldEditOp, string(edit.Operation),
		logging.FieldStartLine, edit.StartLine,
	)

	styles := stylesFor(cmd)
	out := cmd.OutOrStdout()

	diff, err := unifiedDiff(path, original, candidate, flags.diffLines)
	if err != nil {
		return fmt.Errorf("compute diff: %w", err)
	}
	if diff == "" {
		fmt.Fprintln(out, styles.Dim.Render("No changes."))
	} else {
		fmt.Fprint(out, styles.FormatDiff(diff))
	}

	printReportFindings(out, styles, path, report, patch.SplitLines(candidate), flags.noContext)

	switch {
	case !report.Valid:
		fmt.Fprintln(out, styles.Failure.Render(
			fmt.Sprintf("Edit rejected: %d %s.", report.ErrorCount(),
				pluralize(report.ErrorCount(), "error", "errors"))))
		return ErrEditRejected
	case report.WarningCount() > 0:
		fmt.Fprintln(out, styles.Success.Render(
			fmt.Sprintf("Edit acceptable with %d %s.", report.WarningCount(),
				pluralize(report.WarningCount(), "warning", "warnings"))))
	default:
		fmt.Fprintln(out, styles.Success.Render("Edit acceptable."))
	}
	return nil
}

// unifiedDiff renders a unified diff between two buffer states, empty
// when the states are identical.
func unifiedDiff(path, before, after string, contextLines int) (string, error) {
	if before == after {
		return "", nil
	}
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: path,
		ToFile:   path + " (edited)",
		Context:  contextLines,
	})
}

func pluralize(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

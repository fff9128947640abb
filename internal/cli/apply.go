package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/JulianKerignard/Roblox-MCP-sub000/internal/logging"
	"github.com/JulianKerignard/Roblox-MCP-sub000/pkg/fsutil"
	"github.com/JulianKerignard/Roblox-MCP-sub000/pkg/patch"
	"github.com/JulianKerignard/Roblox-MCP-sub000/pkg/validate"
)

type applyFlags struct {
	edit      editFlags
	dryRun    bool
	autoFix   bool
	noBackup  bool
	noContext bool
}

func newApplyCommand() *cobra.Command {
	flags := &applyFlags{}

	cmd := &cobra.Command{
		Use:   "apply <file>",
		Short: "Validate a line edit and commit it to the file",
		Long: `Apply validates a line edit against the file and, when the result is
structurally well-formed, writes it to disk. The committed edit joins the
file's bounded undo history so it can be rolled back later.

An invalid result leaves the file untouched. With --auto-fix, a result
whose only problem is missing end keywords is repaired and the repaired
text is committed instead.

Examples:
  luaguard apply main.lua --op replace --start 10 --end 12 --text-file fix.lua
  luaguard apply init.luau --op delete --start 40 --end 44
  luaguard apply spawner.lua --op insert --start 1 --text 'local M = {}' --dry-run`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(cmd, args[0], flags)
		},
	}

	addEditFlags(cmd, &flags.edit)
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "validate and show the diff without writing")
	cmd.Flags().BoolVar(&flags.autoFix, "auto-fix", false,
		"commit the repaired text when missing ends are the only problem")
	cmd.Flags().BoolVar(&flags.noBackup, "no-backup", false, "skip the sidecar backup")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "omit source context under findings")

	return cmd
}

func runApply(cmd *cobra.Command, path string, flags *applyFlags) error {
	ctx := commandContext(cmd)
	logger := logging.Default()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("auto-fix") {
		cfg.AutoFix = flags.autoFix
	}
	if cmd.Flags().Changed("dry-run") {
		cfg.DryRun = flags.dryRun
	}

	edit, err := flags.edit.toEdit(cmd.InOrStdin())
	if err != nil {
		return err
	}

	original, state, err := fsutil.ReadText(ctx, path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	candidate, err := patch.Simulate(original, edit)
	if err != nil {
		return err
	}
	report := validate.New(cfg).Check(candidate)

	styles := stylesFor(cmd)
	out := cmd.OutOrStdout()

	// The committed text is the candidate, or the repaired candidate when
	// the repair succeeded and was requested.
	finalText := candidate
	autoFixed := false
	if !report.Valid && cfg.AutoFix && report.AutoFixed {
		finalText = report.FixedText
		autoFixed = true
	}

	printReportFindings(out, styles, path, report, patch.SplitLines(candidate), flags.noContext)

	if !report.Valid && !autoFixed {
		fmt.Fprintln(out, styles.Failure.Render(
			fmt.Sprintf("Edit rejected: %d %s. File unchanged.", report.ErrorCount(),
				pluralize(report.ErrorCount(), "error", "errors"))))
		return ErrEditRejected
	}

	if cfg.DryRun {
		diff, err := unifiedDiff(path, original, finalText, 3)
		if err != nil {
			return fmt.Errorf("compute diff: %w", err)
		}
		if diff == "" {
			fmt.Fprintln(out, styles.Dim.Render("No changes."))
		} else {
			fmt.Fprint(out, styles.FormatDiff(diff))
		}
		fmt.Fprintln(out, styles.Dim.Render("Dry run: file unchanged."))
		return nil
	}

	// Guard against the file changing between read and write.
	if changed, err := fsutil.Modified(ctx, state); err != nil {
		return fmt.Errorf("recheck %s: %w", path, err)
	} else if changed {
		return fmt.Errorf("%s changed on disk while validating, not writing", path)
	}

	if cfg.Backups.Enabled && !flags.noBackup {
		if created, err := fsutil.CreateBackup(ctx, path); err != nil {
			return fmt.Errorf("create backup: %w", err)
		} else if created {
			logger.Debug("created backup", logging.FieldPath, fsutil.BackupPath(path))
		}
	}

	if err := fsutil.WriteText(ctx, path, finalText, state.Mode); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	fileKey, err := fsutil.FileKey(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}
	store, histPath, err := openHistoryStore(cfg, workDir)
	if err != nil {
		return err
	}
	if autoFixed {
		store.RecordChange(fileKey, original, finalText, edit.Operation, edit.StartLine)
	} else {
		if err := store.RecordCommit(fileKey, original, edit); err != nil {
			return err
		}
	}
	if err := saveHistoryStore(ctx, store, histPath); err != nil {
		return err
	}

	logger.Debug("committed edit",
		logging.FieldPath, path,
		logging.FieldFileKey, fileKey,
		logging.FieldEditOp, string(edit.Operation),
		logging.FieldStartLine, edit.StartLine,
		logging.FieldAutoFix, autoFixed,
	)

	message := fmt.Sprintf("Applied %s at line %d to %s.", edit.Operation, edit.StartLine, path)
	if autoFixed {
		message += " Missing end keywords were repaired."
	}
	fmt.Fprintln(out, styles.Success.Render(message))
	return nil
}

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/JulianKerignard/Roblox-MCP-sub000/internal/logging"
	"github.com/JulianKerignard/Roblox-MCP-sub000/pkg/fsutil"
)

type rollbackFlags struct {
	steps int
	force bool
}

func newRollbackCommand() *cobra.Command {
	flags := &rollbackFlags{}

	cmd := &cobra.Command{
		Use:   "rollback <file>",
		Short: "Undo the most recent committed edits to a file",
		Long: `Rollback restores a file to its state before the newest committed edits.
Asking for more steps than the retained history fails without touching
the file or the history.

The file must match what the last commit produced. A file changed by
other means since then is refused unless --force is given.

Examples:
  luaguard rollback main.lua             # Undo the newest commit
  luaguard rollback main.lua --steps 3   # Undo the newest three commits`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRollback(cmd, args[0], flags)
		},
	}

	cmd.Flags().IntVar(&flags.steps, "steps", 1, "number of commits to undo")
	cmd.Flags().BoolVar(&flags.force, "force", false,
		"roll back even when the file changed outside luaguard")

	return cmd
}

func runRollback(cmd *cobra.Command, path string, flags *rollbackFlags) error {
	ctx := commandContext(cmd)
	logger := logging.Default()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}
	store, histPath, err := openHistoryStore(cfg, workDir)
	if err != nil {
		return err
	}

	fileKey, err := fsutil.FileKey(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}

	current, state, err := fsutil.ReadText(ctx, path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	if head, ok := store.Head(fileKey); ok && head != current && !flags.force {
		return fmt.Errorf("%s changed since its last commit, use --force to roll back anyway", path)
	}

	restored, err := store.Rollback(fileKey, flags.steps)
	if err != nil {
		return err
	}

	if err := fsutil.WriteText(ctx, path, restored, state.Mode); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := saveHistoryStore(ctx, store, histPath); err != nil {
		return err
	}

	logger.Debug("rolled back",
		logging.FieldPath, path,
		logging.FieldFileKey, fileKey,
		logging.FieldSteps, flags.steps,
	)

	styles := stylesFor(cmd)
	fmt.Fprintln(cmd.OutOrStdout(), styles.Success.Render(
		fmt.Sprintf("Rolled back %d %s on %s.", flags.steps,
			pluralize(flags.steps, "commit", "commits"), path)))
	return nil
}

package cli

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/JulianKerignard/Roblox-MCP-sub000/internal/ui/pretty"
	"github.com/JulianKerignard/Roblox-MCP-sub000/pkg/fsutil"
	"github.com/JulianKerignard/Roblox-MCP-sub000/pkg/history"
)

func newHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [file]",
		Short: "Show the retained undo history",
		Long: `History lists the committed edits retained for rollback. Without an
argument it summarizes every tracked file; with a file it lists that
file's entries, newest first.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return runHistory(cmd, path)
		},
	}
	return cmd
}

func runHistory(cmd *cobra.Command, path string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}
	store, _, err := openHistoryStore(cfg, workDir)
	if err != nil {
		return err
	}

	styles := stylesFor(cmd)
	out := cmd.OutOrStdout()

	if path == "" {
		state := store.ExportState()
		if len(state) == 0 {
			fmt.Fprintln(out, styles.Dim.Render("No undo history."))
			return nil
		}
		keys := make([]string, 0, len(state))
		for key := range state {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			n := len(state[key].Entries)
			fmt.Fprintf(out, "%s  %s\n",
				styles.FilePath.Render(displayPath(workDir, key)),
				styles.Dim.Render(fmt.Sprintf("%d %s", n, pluralize(n, "entry", "entries"))))
		}
		return nil
	}

	fileKey, err := fsutil.FileKey(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}

	entries := store.History(fileKey)
	if len(entries) == 0 {
		fmt.Fprintln(out, styles.Dim.Render(fmt.Sprintf("No undo history for %s.", path)))
		return nil
	}

	fmt.Fprintln(out, styles.FilePath.Render(displayPath(workDir, fileKey)))
	for i, entry := range entries {
		fmt.Fprint(out, formatHistoryEntry(styles, i, entry))
	}
	return nil
}

func formatHistoryEntry(styles *pretty.Styles, index int, entry *history.Entry) string {
	return fmt.Sprintf("  %s  %s %s at line %d  %s\n",
		styles.Dim.Render(fmt.Sprintf("#%d", index+1)),
		entry.Timestamp.Format("2006-01-02 15:04:05"),
		string(entry.Operation),
		entry.StartLine,
		styles.Dim.Render(fmt.Sprintf("(%d bytes retained)", entry.SizeCost)))
}

// Package cli provides the Cobra command structure for luaguard.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/JulianKerignard/Roblox-MCP-sub000/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root luaguard command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "luaguard",
		Short: "A structural edit guard for Lua and Luau source files",
		Long: `luaguard validates edits to Lua-family source files before they land.

It scans source content-aware (strings, comments, and long brackets never
confuse the analysis), checks that blocks and brackets stay balanced, and
can simulate a line edit against a file to decide whether the result would
be structurally well-formed. Committed edits keep a bounded undo history
so a bad change can be rolled back.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.AddCommand(newCheckCommand())
	rootCmd.AddCommand(newPreviewCommand())
	rootCmd.AddCommand(newApplyCommand())
	rootCmd.AddCommand(newRollbackCommand())
	rootCmd.AddCommand(newHistoryCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	return rootCmd
}

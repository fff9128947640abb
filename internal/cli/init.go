package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/JulianKerignard/Roblox-MCP-sub000/internal/logging"
)

const configFilePermissions = 0644

const configTemplate = `# luaguard configuration.
# Structural checks (unclosed blocks, bracket mismatches, unterminated
# strings) are always on; only style checks are configurable here.

checks:
  deprecated-api:
    enabled: true
    severity: warning
  naming-convention:
    enabled: true
    severity: warning

# Glob patterns to skip.
ignore:
  - "Packages/**"
  - "**/node_modules"

# Undo history retained for committed edits.
history:
  capacity: 5
  max_files: 256

# Sidecar backups written before each commit.
backups:
  enabled: true
`

type initFlags struct {
	force  bool
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a starter configuration file",
		Long: `Create a .luaguard.yml configuration file in the current directory with
the default settings written out, ready to customize.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runInit(flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing configuration file")
	cmd.Flags().StringVarP(&flags.output, "output", "o", ".luaguard.yml", "output file path")

	return cmd
}

func runInit(flags *initFlags) error {
	logger := logging.Default()

	absPath, err := filepath.Abs(flags.output)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return fmt.Errorf("file %q already exists; use --force to overwrite", flags.output)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, flags.output)
	}

	if err := os.WriteFile(absPath, []byte(configTemplate), configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, flags.output)
	return nil
}

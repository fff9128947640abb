package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/JulianKerignard/Roblox-MCP-sub000/internal/logging"
	"github.com/JulianKerignard/Roblox-MCP-sub000/pkg/analyze"
	"github.com/JulianKerignard/Roblox-MCP-sub000/pkg/config"
	"github.com/JulianKerignard/Roblox-MCP-sub000/pkg/runner"
	"github.com/JulianKerignard/Roblox-MCP-sub000/pkg/validate"
)

type checkFlags struct {
	format         string
	ignore         []string
	jobs           int
	strict         bool
	autoFix        bool
	detectContent  bool
	followSymlinks bool
	noContext      bool
	summaryOnly    bool
}

func newCheckCommand() *cobra.Command {
	flags := &checkFlags{}

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Check Lua files for structural problems",
		Long: `Check Lua and Luau files for structural problems.

By default, checks all .lua and .luau files in the current directory and
subdirectories. Specify paths to check specific files or directories.

Examples:
  luaguard check                   # Check current directory
  luaguard check src/              # Check a directory
  luaguard check main.lua          # Check a single file
  luaguard check --auto-fix        # Report whether missing ends are repairable
  luaguard check --format json     # Output as JSON for CI
  luaguard check --strict          # Treat warnings as failures`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "", "output format: text, json, summary")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to skip")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "parallel workers (0 = auto)")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "treat warnings as failures")
	cmd.Flags().BoolVar(&flags.autoFix, "auto-fix", false,
		"attempt the bounded missing-end repair on invalid files")
	cmd.Flags().BoolVar(&flags.detectContent, "detect-content", false,
		"also check extensionless files whose content looks like Lua")
	cmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", false,
		"traverse directory symlinks")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false,
		"omit source context under findings")
	cmd.Flags().BoolVar(&flags.summaryOnly, "summary-only", false,
		"print only the summary line")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string, flags *checkFlags) error {
	logger := logging.Default()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// Flags win over config file and environment.
	if cmd.Flags().Changed("format") {
		cfg.Format = config.OutputFormat(flags.format)
	}
	if cmd.Flags().Changed("jobs") {
		cfg.Jobs = flags.jobs
	}
	if cmd.Flags().Changed("strict") {
		cfg.Strict = flags.strict
	}
	if cmd.Flags().Changed("auto-fix") {
		cfg.AutoFix = flags.autoFix
	}
	cfg.Ignore = append(cfg.Ignore, flags.ignore...)

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	run := runner.New(validate.New(cfg))
	opts := runner.Options{
		Paths:           args,
		WorkingDir:      workDir,
		ExcludeGlobs:    cfg.Ignore,
		FollowSymlinks:  flags.followSymlinks,
		DetectByContent: flags.detectContent,
		Jobs:            cfg.Jobs,
		Config:          cfg,
	}

	logger.Debug("starting check run",
		logging.FieldPaths, opts.Paths,
		logging.FieldWorkingDir, opts.WorkingDir,
		logging.FieldJobs, opts.Jobs,
		logging.FieldAutoFix, cfg.AutoFix,
	)

	result, err := run.Run(commandContext(cmd), opts)
	if err != nil {
		return errors.Join(errors.New("check run failed"), err)
	}

	logger.Debug("check run finished",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesChecked, result.Stats.FilesChecked,
		logging.FieldErrorsTotal, result.Stats.ErrorsTotal,
		logging.FieldWarningsTotal, result.Stats.WarningsTotal,
	)

	if err := renderResult(cmd, result, workDir, flags, cfg.Format); err != nil {
		return err
	}

	switch ExitCodeFromResult(result, cfg.Strict) {
	case ExitCheckErrors:
		return ErrCheckFailed
	case ExitCheckWarnings:
		return ErrCheckWarnings
	}
	return nil
}

func renderResult(cmd *cobra.Command, result *runner.Result, workDir string, flags *checkFlags, format config.OutputFormat) error {
	out := cmd.OutOrStdout()

	switch format {
	case config.FormatJSON:
		return renderJSON(out, result, workDir)
	case config.FormatSummary:
		fmt.Fprint(out, stylesFor(cmd).FormatSummary(result.Stats))
		return nil
	default:
		renderText(cmd, result, workDir, flags)
		return nil
	}
}

func renderText(cmd *cobra.Command, result *runner.Result, workDir string, flags *checkFlags) {
	out := cmd.OutOrStdout()
	styles := stylesFor(cmd)

	if !flags.summaryOnly {
		for _, outcome := range result.Files {
			if outcome.Err != nil {
				fmt.Fprintf(out, "%s: %v\n", displayPath(workDir, outcome.Path), outcome.Err)
				continue
			}
			findings := outcome.Report.Findings()
			if len(findings) == 0 {
				continue
			}

			fmt.Fprintln(out, styles.FormatFileHeader(displayPath(workDir, outcome.Path), len(findings)))
			lines := sourceLines(outcome.Path, flags.noContext)
			for _, f := range findings {
				fmt.Fprint(out, styles.FormatFinding(displayPath(workDir, outcome.Path), f, lineAt(lines, f.Line)))
			}
			if outcome.Report.AutoFixed {
				fmt.Fprintln(out, "  "+styles.Success.Render("auto-fix available: appending missing end keywords restores balance"))
			}
			fmt.Fprintln(out)
		}
	}

	divider := min(terminalWidth(80), 80)
	fmt.Fprintln(out, styles.Dim.Render(strings.Repeat("─", divider)))
	fmt.Fprint(out, styles.FormatSummaryOneLine(result.Stats))
}

// jsonReport is the machine-readable shape of a run.
type jsonReport struct {
	Files []jsonFileReport `json:"files"`
	Stats runner.Stats     `json:"stats"`
}

type jsonFileReport struct {
	Path      string            `json:"path"`
	Valid     bool              `json:"valid"`
	AutoFixed bool              `json:"autoFixed,omitempty"`
	Findings  []analyze.Finding `json:"findings,omitempty"`
	Error     string            `json:"error,omitempty"`
}

func renderJSON(out io.Writer, result *runner.Result, workDir string) error {
	report := jsonReport{Stats: result.Stats, Files: make([]jsonFileReport, 0, len(result.Files))}
	for _, outcome := range result.Files {
		fr := jsonFileReport{Path: displayPath(workDir, outcome.Path)}
		if outcome.Err != nil {
			fr.Error = outcome.Err.Error()
		} else {
			fr.Valid = outcome.Report.Valid
			fr.AutoFixed = outcome.Report.AutoFixed
			fr.Findings = outcome.Report.Findings()
		}
		report.Files = append(report.Files, fr)
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

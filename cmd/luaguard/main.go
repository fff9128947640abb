// Package main is the entry point for the luaguard CLI.
package main

import (
	"errors"
	"os"

	"github.com/JulianKerignard/Roblox-MCP-sub000/internal/cli"
	"github.com/JulianKerignard/Roblox-MCP-sub000/internal/logging"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)

	if err := rootCmd.Execute(); err != nil {
		// Check and edit verdicts are signaled through sentinel errors;
		// only real failures are logged.
		if !errors.Is(err, cli.ErrCheckFailed) &&
			!errors.Is(err, cli.ErrCheckWarnings) &&
			!errors.Is(err, cli.ErrEditRejected) {
			logger := logging.Default()
			logger.Error("command failed", logging.FieldError, err)
		}
		return cli.ExitCode(err)
	}

	return cli.ExitSuccess
}

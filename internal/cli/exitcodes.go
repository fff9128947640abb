package cli

import (
	"errors"

	"github.com/JulianKerignard/Roblox-MCP-sub000/internal/configloader"
	"github.com/JulianKerignard/Roblox-MCP-sub000/pkg/fsutil"
	"github.com/JulianKerignard/Roblox-MCP-sub000/pkg/history"
	"github.com/JulianKerignard/Roblox-MCP-sub000/pkg/patch"
	"github.com/JulianKerignard/Roblox-MCP-sub000/pkg/runner"
)

// Exit codes for luaguard.
const (
	// ExitSuccess indicates no problems were found.
	ExitSuccess = 0

	// ExitCheckErrors indicates a check found errors or an edit was
	// rejected as structurally invalid.
	ExitCheckErrors = 1

	// ExitCheckWarnings indicates warnings in strict mode.
	ExitCheckWarnings = 2

	// ExitInvalidUsage indicates invalid command-line usage, including
	// out-of-range edits and over-deep rollbacks.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration problems.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O problems.
	ExitIOError = 74
)

// Sentinel errors carrying check outcomes out of RunE so that main can
// map them to exit codes.
var (
	// ErrCheckFailed means findings with error severity were reported.
	ErrCheckFailed = errors.New("check failed")

	// ErrCheckWarnings means warnings were reported under --strict.
	ErrCheckWarnings = errors.New("warnings reported")

	// ErrEditRejected means a simulated edit produced invalid structure.
	ErrEditRejected = errors.New("edit rejected")
)

// ExitCodeFromResult maps an aggregate run result to an exit code.
func ExitCodeFromResult(result *runner.Result, strict bool) int {
	if result == nil {
		return ExitSuccess
	}
	if result.Stats.ErrorsTotal > 0 || result.Stats.FilesErrored > 0 {
		return ExitCheckErrors
	}
	if strict && result.Stats.WarningsTotal > 0 {
		return ExitCheckWarnings
	}
	return ExitSuccess
}

// ExitCode maps a command error to an exit code. Contract violations
// (bad ranges, over-deep rollbacks) are usage errors; content problems
// carried by sentinels are check failures.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrCheckFailed), errors.Is(err, ErrEditRejected):
		return ExitCheckErrors
	case errors.Is(err, ErrCheckWarnings):
		return ExitCheckWarnings
	}

	var rangeErr *patch.RangeError
	if errors.As(err, &rangeErr) {
		return ExitInvalidUsage
	}
	var insuffErr *history.InsufficientHistoryError
	if errors.As(err, &insuffErr) {
		return ExitInvalidUsage
	}
	var configErr *configloader.ValidationError
	if errors.As(err, &configErr) {
		return ExitConfigError
	}

	if errors.Is(err, fsutil.ErrNotFound) ||
		errors.Is(err, fsutil.ErrPermissionDenied) ||
		errors.Is(err, fsutil.ErrIsDirectory) {
		return ExitIOError
	}
	return ExitInternalError
}

// Package runner orchestrates checking many source files concurrently.
package runner

import "github.com/JulianKerignard/Roblox-MCP-sub000/pkg/config"

// Options controls discovery and checking for a run.
type Options struct {
	// Paths are the user-specified files or directories to process.
	// Empty defaults to the current working directory.
	Paths []string

	// WorkingDir resolves relative Paths and glob patterns. Empty means
	// the process working directory.
	WorkingDir string

	// ExcludeGlobs skip matching files and directories, merged from
	// configuration and the command line.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// DetectByContent also picks up extensionless files whose content
	// classifies as Lua.
	DetectByContent bool

	// Jobs bounds concurrent workers. Zero or negative means one per CPU.
	Jobs int

	// Config is the resolved configuration for this run.
	Config *config.Config
}

// effectivePaths returns the paths to process, defaulting to ".".
func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}

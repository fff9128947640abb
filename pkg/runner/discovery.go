package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/JulianKerignard/Roblox-MCP-sub000/pkg/langdetect"
)

// Discover finds Lua source files under opts.Paths and returns them as a
// sorted, deduplicated list of absolute paths. Files named explicitly are
// taken on faith even without a Lua extension; walked files must match by
// extension, or by content when DetectByContent is set.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var files []string
	add := func(path string) {
		if _, ok := seen[path]; !ok {
			seen[path] = struct{}{}
			files = append(files, path)
		}
	}

	for _, inputPath := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		abs := inputPath
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(workDir, abs)
		}
		abs = filepath.Clean(abs)

		info, err := os.Stat(abs)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if info.IsDir() {
			walked, err := walkTree(ctx, abs, workDir, opts)
			if err != nil {
				return nil, err
			}
			for _, f := range walked {
				add(f)
			}
			continue
		}

		if !excluded(relTo(workDir, abs), opts.ExcludeGlobs) {
			add(abs)
		}
	}

	sort.Strings(files)
	return files, nil
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	abs, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve working directory: %w", err)
	}
	return abs, nil
}

// walkTree collects candidate files under root. Hidden entries are
// skipped, as are excluded directories and files.
func walkTree(ctx context.Context, root, workDir string, opts Options) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		rel := relTo(workDir, path)

		if entry.IsDir() {
			if path != root && strings.HasPrefix(entry.Name(), ".") {
				return filepath.SkipDir
			}
			if excluded(rel, opts.ExcludeGlobs) {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			target, evalErr := filepath.EvalSymlinks(path)
			if evalErr != nil {
				return nil
			}
			info, statErr := os.Stat(target)
			if statErr != nil {
				return nil
			}
			if info.IsDir() {
				if !opts.FollowSymlinks {
					return nil
				}
				// Walk the resolved target, then report its files under
				// the link path: a target outside the walked tree stays
				// reachable, and a target inside it keeps both names.
				sub, err := walkTree(ctx, target, workDir, opts)
				if err != nil {
					return err
				}
				for _, f := range sub {
					files = append(files, path+strings.TrimPrefix(f, target))
				}
				return nil
			}
		}

		if strings.HasPrefix(entry.Name(), ".") {
			return nil
		}
		if excluded(rel, opts.ExcludeGlobs) {
			return nil
		}

		if langdetect.HasLuaExtension(path) {
			files = append(files, path)
			return nil
		}
		if opts.DetectByContent && filepath.Ext(path) == "" {
			content, readErr := os.ReadFile(path)
			if readErr == nil && langdetect.ContentIsLua(content) {
				files = append(files, path)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	return files, nil
}

func relTo(workDir, path string) string {
	rel, err := filepath.Rel(workDir, path)
	if err != nil {
		return path
	}
	return rel
}

// excluded reports whether rel matches any exclude pattern. Patterns use
// filepath.Match syntax, with "dir/**" and "**/name" recursive forms.
func excluded(rel string, patterns []string) bool {
	rel = filepath.ToSlash(rel)
	for _, pattern := range patterns {
		if matchGlob(rel, filepath.ToSlash(pattern)) {
			return true
		}
	}
	return false
}

func matchGlob(path, pattern string) bool {
	if prefix, ok := strings.CutSuffix(pattern, "/**"); ok {
		return path == prefix || strings.HasPrefix(path, prefix+"/")
	}
	if suffix, ok := strings.CutPrefix(pattern, "**/"); ok {
		if matched, _ := filepath.Match(suffix, filepath.Base(path)); matched {
			return true
		}
		for _, part := range strings.Split(path, "/") {
			if matched, _ := filepath.Match(suffix, part); matched {
				return true
			}
		}
		return false
	}

	if matched, _ := filepath.Match(pattern, path); matched {
		return true
	}
	matched, _ := filepath.Match(pattern, filepath.Base(path))
	return matched
}

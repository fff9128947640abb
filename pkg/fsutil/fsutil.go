// Package fsutil provides the file system safety primitives used when
// committing edits: atomic writes, sidecar backups, external-modification
// detection, and canonical file keys for history tracking.
package fsutil

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Sentinel errors for categorization via errors.Is.
var (
	// ErrNotFound indicates the file does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrIsDirectory indicates the path is a directory, not a file.
	ErrIsDirectory = errors.New("path is a directory")

	// ErrNilState is returned when a nil FileState is passed.
	ErrNilState = errors.New("nil FileState")
)

// FileState captures a file's observed state when it was read. It is
// compared against the file later to detect external modification between
// validating an edit and committing it.
type FileState struct {
	// Path is the path the file was read from.
	Path string

	// Mode is the file's permission and mode bits.
	Mode os.FileMode

	// ModTime is the file's modification time.
	ModTime time.Time

	// Size is the file size in bytes.
	Size int64

	// Hash is the SHA-256 of the file content.
	Hash [32]byte
}

// ReadText reads a source file and returns its content with the state
// needed for modification detection.
func ReadText(ctx context.Context, path string) (string, *FileState, error) {
	if err := ctx.Err(); err != nil {
		return "", nil, fmt.Errorf("read %s: %w", path, err)
	}

	stat, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		if os.IsPermission(err) {
			return "", nil, fmt.Errorf("%w: %s", ErrPermissionDenied, path)
		}
		return "", nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if stat.IsDir() {
		return "", nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsPermission(err) {
			return "", nil, fmt.Errorf("%w: %s", ErrPermissionDenied, path)
		}
		return "", nil, fmt.Errorf("read %s: %w", path, err)
	}

	state := &FileState{
		Path:    path,
		Mode:    stat.Mode(),
		ModTime: stat.ModTime(),
		Size:    stat.Size(),
		Hash:    sha256.Sum256(content),
	}
	return string(content), state, nil
}

// Modified reports whether the file has changed since state was captured.
// A deleted file counts as modified. Mod time and size are checked first;
// when they match, the content is re-hashed so that same-size in-place
// rewrites are still caught.
func Modified(ctx context.Context, state *FileState) (bool, error) {
	if state == nil {
		return false, ErrNilState
	}
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("check modified: %w", err)
	}

	stat, err := os.Stat(state.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		return false, fmt.Errorf("stat %s: %w", state.Path, err)
	}

	if !stat.ModTime().Equal(state.ModTime) || stat.Size() != state.Size {
		return true, nil
	}

	content, err := os.ReadFile(state.Path)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", state.Path, err)
	}
	return sha256.Sum256(content) != state.Hash, nil
}

// FileKey canonicalizes a path for history tracking, so that the same
// file reached through different relative paths or symlinks shares one
// undo history. Symlink resolution is best effort; a path that cannot be
// resolved (for example, not yet created) still gets a stable absolute
// key.
func FileKey(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, nil
	}
	return filepath.Clean(abs), nil
}

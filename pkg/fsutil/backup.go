package fsutil

import (
	"context"
	"fmt"
	"os"
)

// BackupSuffix is appended to a file's path to form its sidecar backup.
const BackupSuffix = ".luaguard.bak"

// BackupPath returns the sidecar backup path for a source file.
func BackupPath(path string) string {
	return path + BackupSuffix
}

// CreateBackup writes a sidecar backup of path before its first commit.
// It is idempotent: an existing backup is never overwritten, so repeated
// commits keep the content the file had before any of them. It reports
// whether a backup was created.
func CreateBackup(ctx context.Context, path string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("create backup: %w", err)
	}

	backupPath := BackupPath(path)
	if _, err := os.Stat(backupPath); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat backup: %w", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read original: %w", err)
	}
	stat, err := os.Stat(path)
	if err != nil {
		return false, fmt.Errorf("stat original: %w", err)
	}

	if err := WriteText(ctx, backupPath, string(content), stat.Mode()); err != nil {
		return false, fmt.Errorf("write backup: %w", err)
	}
	return true, nil
}

// RestoreBackup replaces path's content with its sidecar backup. It
// reports whether a restore happened; a missing backup is not an error.
func RestoreBackup(ctx context.Context, path string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("restore backup: %w", err)
	}

	backupPath := BackupPath(path)
	content, err := os.ReadFile(backupPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read backup: %w", err)
	}
	stat, err := os.Stat(backupPath)
	if err != nil {
		return false, fmt.Errorf("stat backup: %w", err)
	}

	if err := WriteText(ctx, path, string(content), stat.Mode()); err != nil {
		return false, fmt.Errorf("restore backup: %w", err)
	}
	return true, nil
}

// RemoveBackup deletes path's sidecar backup if present.
func RemoveBackup(path string) (bool, error) {
	err := os.Remove(BackupPath(path))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("remove backup: %w", err)
	}
	return true, nil
}

// BackupExists reports whether path has a sidecar backup.
func BackupExists(path string) bool {
	_, err := os.Stat(BackupPath(path))
	return err == nil
}

package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/JulianKerignard/Roblox-MCP-sub000/pkg/config"
	"github.com/JulianKerignard/Roblox-MCP-sub000/pkg/fsutil"
	"github.com/JulianKerignard/Roblox-MCP-sub000/pkg/history"
)

// historyFileName is where committed-edit history persists between
// invocations, relative to the working directory.
const historyFileName = ".luaguard-history.json"

// openHistoryStore builds the undo store and loads persisted state from
// the history file if one exists. A missing file means a fresh store; a
// corrupt one is an error rather than silent data loss.
func openHistoryStore(cfg *config.Config, workDir string) (*history.Store, string, error) {
	store := history.NewStore(cfg.History.Capacity, cfg.History.MaxFiles)
	path := filepath.Join(workDir, historyFileName)

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return store, path, nil
		}
		return nil, "", fmt.Errorf("read history file: %w", err)
	}

	var state history.State
	if err := json.Unmarshal(content, &state); err != nil {
		return nil, "", fmt.Errorf("parse history file %s: %w", path, err)
	}
	store.ImportState(state)
	return store, path, nil
}

// saveHistoryStore persists the store next to the checked sources. An
// empty store removes the file instead of leaving an empty artifact.
func saveHistoryStore(ctx context.Context, store *history.Store, path string) error {
	state := store.ExportState()
	if len(state) == 0 {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove history file: %w", err)
		}
		return nil
	}

	content, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	if err := fsutil.WriteText(ctx, path, string(content)+"\n", 0600); err != nil {
		return fmt.Errorf("write history file: %w", err)
	}
	return nil
}

package history

import (
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/JulianKerignard/Roblox-MCP-sub000/pkg/config"
	"github.com/JulianKerignard/Roblox-MCP-sub000/pkg/patch"
)

// Entry is one committed edit retained for rollback.
type Entry struct {
	// Timestamp is when the commit was recorded.
	Timestamp time.Time `json:"timestamp"`

	// Operation is the committed edit's operation.
	Operation patch.Op `json:"operation"`

	// StartLine is the committed edit's first affected line.
	StartLine int `json:"startLine"`

	// Diff undoes the commit.
	Diff *ReverseDiff `json:"diff"`

	// SizeCost is the byte cost of retaining the diff.
	SizeCost int `json:"sizeCost"`
}

// InsufficientHistoryError reports a rollback deeper than the retained
// history for a file.
type InsufficientHistoryError struct {
	FileKey   string
	Requested int
	Available int
}

func (e *InsufficientHistoryError) Error() string {
	return fmt.Sprintf("history: %s has %d entr%s, cannot roll back %d",
		e.FileKey, e.Available, plural(e.Available, "y", "ies"), e.Requested)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// fileHistory holds the retained entries for one file, newest first,
// together with the text the newest entry produced.
type fileHistory struct {
	entries []*Entry
	head    string
}

// Store retains bounded per-file undo history. Each file keeps at most
// capacity entries; the oldest is evicted when a commit would exceed it.
// The set of tracked files is itself bounded by an LRU cache, so a
// long-running session cannot grow without limit.
//
// Store is not internally synchronized. Callers that share one across
// goroutines serialize access per file themselves, which they must do
// anyway to keep validate-then-commit pairs atomic.
type Store struct {
	capacity int
	files    *lru.Cache[string, *fileHistory]
}

// NewStore builds a store retaining up to capacity entries per file and
// tracking up to maxFiles files. Non-positive arguments fall back to the
// configured defaults.
func NewStore(capacity, maxFiles int) *Store {
	if capacity <= 0 {
		capacity = config.DefaultHistoryCapacity
	}
	if maxFiles <= 0 {
		maxFiles = config.DefaultHistoryMaxFiles
	}
	cache, err := lru.New[string, *fileHistory](maxFiles)
	if err != nil {
		// Reachable only with a non-positive size, which the guard
		// above rules out.
		panic(err)
	}
	return &Store{capacity: capacity, files: cache}
}

// Capacity returns the per-file entry bound.
func (s *Store) Capacity() int { return s.capacity }

// RecordCommit records that edit was applied to beforeText under fileKey.
// The stored entry can later roll the file back to beforeText. Edits that
// fail simulation are rejected and nothing is recorded.
func (s *Store) RecordCommit(fileKey, beforeText string, edit patch.Edit) error {
	afterText, err := patch.Simulate(beforeText, edit)
	if err != nil {
		return fmt.Errorf("record commit: %w", err)
	}
	s.RecordChange(fileKey, beforeText, afterText, edit.Operation, edit.StartLine)
	return nil
}

// RecordChange records a transition from beforeText to afterText whose
// final content did not come from edit simulation alone, such as a commit
// that accepted an automatic repair. The operation and start line are
// kept as entry metadata.
func (s *Store) RecordChange(fileKey, beforeText, afterText string, op patch.Op, startLine int) {
	diff := ComputeReverse(beforeText, afterText)
	entry := &Entry{
		Timestamp: time.Now(),
		Operation: op,
		StartLine: startLine,
		Diff:      diff,
		SizeCost:  diff.SizeCost(),
	}

	fh, ok := s.files.Get(fileKey)
	if !ok {
		fh = &fileHistory{}
	}

	fh.entries = append([]*Entry{entry}, fh.entries...)
	if len(fh.entries) > s.capacity {
		fh.entries = fh.entries[:s.capacity]
	}
	fh.head = afterText

	s.files.Add(fileKey, fh)
}

// Rollback undoes the newest steps commits for fileKey and returns the
// reconstructed text. Asking for more steps than the store retains fails
// with *InsufficientHistoryError and leaves the store unchanged.
func (s *Store) Rollback(fileKey string, steps int) (string, error) {
	if steps < 1 {
		steps = 1
	}

	fh, ok := s.files.Get(fileKey)
	if !ok || len(fh.entries) < steps {
		available := 0
		if ok {
			available = len(fh.entries)
		}
		return "", &InsufficientHistoryError{
			FileKey:   fileKey,
			Requested: steps,
			Available: available,
		}
	}

	text := fh.head
	for i := 0; i < steps; i++ {
		text = fh.entries[i].Diff.Apply(text)
	}

	fh.entries = fh.entries[steps:]
	fh.head = text
	s.files.Add(fileKey, fh)
	return text, nil
}

// Head returns the text the newest retained commit produced for fileKey.
func (s *Store) Head(fileKey string) (string, bool) {
	fh, ok := s.files.Get(fileKey)
	if !ok {
		return "", false
	}
	return fh.head, true
}

// History returns the retained entries for fileKey, newest first. The
// returned slice is a copy; mutating it does not affect the store.
func (s *Store) History(fileKey string) []*Entry {
	fh, ok := s.files.Get(fileKey)
	if !ok {
		return nil
	}
	out := make([]*Entry, len(fh.entries))
	copy(out, fh.entries)
	return out
}

// FileState is the serializable history of one file.
type FileState struct {
	// Head is the text the newest entry produced.
	Head string `json:"head"`

	// Entries are the retained commits, newest first.
	Entries []*Entry `json:"entries"`
}

// State is a serializable snapshot of the whole store, keyed by file key.
// It lets a short-lived process carry undo history across invocations.
type State map[string]FileState

// ExportState snapshots the store's retained history.
func (s *Store) ExportState() State {
	state := make(State, s.files.Len())
	for _, key := range s.files.Keys() {
		fh, ok := s.files.Peek(key)
		if !ok {
			continue
		}
		entries := make([]*Entry, len(fh.entries))
		copy(entries, fh.entries)
		state[key] = FileState{Head: fh.head, Entries: entries}
	}
	return state
}

// ImportState loads a snapshot, replacing any current history. Entries
// beyond the per-file capacity are dropped from the oldest end.
func (s *Store) ImportState(state State) {
	s.files.Purge()
	for key, fs := range state {
		entries := fs.Entries
		if len(entries) > s.capacity {
			entries = entries[:s.capacity]
		}
		s.files.Add(key, &fileHistory{entries: entries, head: fs.Head})
	}
}

// Tracked returns how many files currently have retained history.
func (s *Store) Tracked() int { return s.files.Len() }

// Forget drops all retained history for fileKey.
func (s *Store) Forget(fileKey string) { s.files.Remove(fileKey) }

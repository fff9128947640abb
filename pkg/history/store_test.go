package history

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JulianKerignard/Roblox-MCP-sub000/pkg/patch"
)

func TestStoreRecordAndRollback(t *testing.T) {
	t.Parallel()

	t.Run("single commit rolls back to before text", func(t *testing.T) {
		t.Parallel()

		s := NewStore(5, 16)
		before := "local a = 1\nreturn a\n"
		edit := patch.Edit{Operation: patch.OpInsert, StartLine: 2, NewText: "local b = 2"}

		require.NoError(t, s.RecordCommit("main.lua", before, edit))

		got, err := s.Rollback("main.lua", 1)
		require.NoError(t, err)
		assert.Equal(t, before, got)
		assert.Empty(t, s.History("main.lua"))
	})

	t.Run("multi-step rollback walks commits newest first", func(t *testing.T) {
		t.Parallel()

		s := NewStore(5, 16)
		v0 := "print(0)\n"
		require.NoError(t, s.RecordCommit("f.lua", v0, patch.Edit{
			Operation: patch.OpReplace, StartLine: 1, EndLine: 1, NewText: "print(1)",
		}))
		v1 := "print(1)\n"
		require.NoError(t, s.RecordCommit("f.lua", v1, patch.Edit{
			Operation: patch.OpInsert, StartLine: 2, NewText: "print(2)",
		}))

		got, err := s.Rollback("f.lua", 2)
		require.NoError(t, err)
		assert.Equal(t, v0, got)
	})

	t.Run("partial rollback leaves older entries usable", func(t *testing.T) {
		t.Parallel()

		s := NewStore(5, 16)
		v0 := "a\n"
		require.NoError(t, s.RecordCommit("f.lua", v0, patch.Edit{
			Operation: patch.OpInsert, StartLine: 2, NewText: "b",
		}))
		v1 := "a\nb\n"
		require.NoError(t, s.RecordCommit("f.lua", v1, patch.Edit{
			Operation: patch.OpInsert, StartLine: 3, NewText: "c",
		}))

		got, err := s.Rollback("f.lua", 1)
		require.NoError(t, err)
		assert.Equal(t, v1, got)
		require.Len(t, s.History("f.lua"), 1)

		got, err = s.Rollback("f.lua", 1)
		require.NoError(t, err)
		assert.Equal(t, v0, got)
	})

	t.Run("rejects edit that fails simulation", func(t *testing.T) {
		t.Parallel()

		s := NewStore(5, 16)
		err := s.RecordCommit("f.lua", "a\n", patch.Edit{
			Operation: patch.OpDelete, StartLine: 5, EndLine: 6,
		})
		var rangeErr *patch.RangeError
		require.ErrorAs(t, err, &rangeErr)
		assert.Empty(t, s.History("f.lua"))
	})
}

func TestStoreCapacityBound(t *testing.T) {
	t.Parallel()

	s := NewStore(3, 16)
	text := "x = 0\n"
	for i := 1; i <= 5; i++ {
		require.NoError(t, s.RecordCommit("f.lua", text, patch.Edit{
			Operation: patch.OpReplace,
			StartLine: 1,
			EndLine:   1,
			NewText:   fmt.Sprintf("x = %d", i),
		}))
		text = fmt.Sprintf("x = %d\n", i)
	}

	// Only the newest three commits survive.
	require.Len(t, s.History("f.lua"), 3)

	got, err := s.Rollback("f.lua", 3)
	require.NoError(t, err)
	assert.Equal(t, "x = 2\n", got)

	_, err = s.Rollback("f.lua", 1)
	var insuff *InsufficientHistoryError
	require.ErrorAs(t, err, &insuff)
}

func TestStoreInsufficientHistory(t *testing.T) {
	t.Parallel()

	s := NewStore(5, 16)
	require.NoError(t, s.RecordCommit("f.lua", "a\n", patch.Edit{
		Operation: patch.OpInsert, StartLine: 2, NewText: "b",
	}))

	_, err := s.Rollback("f.lua", 2)
	var insuff *InsufficientHistoryError
	require.ErrorAs(t, err, &insuff)
	assert.Equal(t, "f.lua", insuff.FileKey)
	assert.Equal(t, 2, insuff.Requested)
	assert.Equal(t, 1, insuff.Available)

	// The failed rollback consumed nothing.
	require.Len(t, s.History("f.lua"), 1)
	got, err := s.Rollback("f.lua", 1)
	require.NoError(t, err)
	assert.Equal(t, "a\n", got)
}

func TestStoreUnknownFile(t *testing.T) {
	t.Parallel()

	s := NewStore(5, 16)
	_, err := s.Rollback("missing.lua", 1)
	var insuff *InsufficientHistoryError
	require.ErrorAs(t, err, &insuff)
	assert.Zero(t, insuff.Available)
	assert.Nil(t, s.History("missing.lua"))
}

func TestStoreFileBound(t *testing.T) {
	t.Parallel()

	s := NewStore(5, 2)
	edit := patch.Edit{Operation: patch.OpInsert, StartLine: 1, NewText: "x"}
	require.NoError(t, s.RecordCommit("a.lua", "", edit))
	require.NoError(t, s.RecordCommit("b.lua", "", edit))
	require.NoError(t, s.RecordCommit("c.lua", "", edit))

	// The least recently used file was evicted to stay within the bound.
	assert.Equal(t, 2, s.Tracked())
	assert.Nil(t, s.History("a.lua"))
	require.NotNil(t, s.History("c.lua"))
}

func TestStoreHistoryMetadata(t *testing.T) {
	t.Parallel()

	s := NewStore(5, 16)
	require.NoError(t, s.RecordCommit("f.lua", "a\n", patch.Edit{
		Operation: patch.OpReplace, StartLine: 1, EndLine: 1, NewText: "b",
	}))

	entries := s.History("f.lua")
	require.Len(t, entries, 1)
	assert.Equal(t, patch.OpReplace, entries[0].Operation)
	assert.Equal(t, 1, entries[0].StartLine)
	assert.False(t, entries[0].Timestamp.IsZero())
	assert.Equal(t, len("a"), entries[0].SizeCost)
}

func TestStoreForget(t *testing.T) {
	t.Parallel()

	s := NewStore(5, 16)
	require.NoError(t, s.RecordCommit("f.lua", "a\n", patch.Edit{
		Operation: patch.OpInsert, StartLine: 2, NewText: "b",
	}))

	s.Forget("f.lua")
	assert.Nil(t, s.History("f.lua"))
	assert.Zero(t, s.Tracked())
}

func TestStoreStateRoundTrip(t *testing.T) {
	t.Parallel()

	s := NewStore(5, 16)
	require.NoError(t, s.RecordCommit("f.lua", "a\n", patch.Edit{
		Operation: patch.OpInsert, StartLine: 2, NewText: "b",
	}))
	require.NoError(t, s.RecordCommit("g.lua", "x\n", patch.Edit{
		Operation: patch.OpReplace, StartLine: 1, EndLine: 1, NewText: "y",
	}))

	restored := NewStore(5, 16)
	restored.ImportState(s.ExportState())

	assert.Equal(t, 2, restored.Tracked())
	got, err := restored.Rollback("f.lua", 1)
	require.NoError(t, err)
	assert.Equal(t, "a\n", got)
	got, err = restored.Rollback("g.lua", 1)
	require.NoError(t, err)
	assert.Equal(t, "x\n", got)
}

func TestStoreImportStateTrimsToCapacity(t *testing.T) {
	t.Parallel()

	s := NewStore(5, 16)
	text := "x = 0\n"
	for i := 1; i <= 4; i++ {
		require.NoError(t, s.RecordCommit("f.lua", text, patch.Edit{
			Operation: patch.OpReplace, StartLine: 1, EndLine: 1,
			NewText: fmt.Sprintf("x = %d", i),
		}))
		text = fmt.Sprintf("x = %d\n", i)
	}

	small := NewStore(2, 16)
	small.ImportState(s.ExportState())
	assert.Len(t, small.History("f.lua"), 2)

	got, err := small.Rollback("f.lua", 2)
	require.NoError(t, err)
	assert.Equal(t, "x = 2\n", got)
}

package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeReverseRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		before string
		after  string
	}{
		{
			name:   "insert line",
			before: "local a = 1\nreturn a\n",
			after:  "local a = 1\nlocal b = 2\nreturn a\n",
		},
		{
			name:   "delete line",
			before: "local a = 1\nprint(a)\nreturn a\n",
			after:  "local a = 1\nreturn a\n",
		},
		{
			name:   "replace line",
			before: "local a = 1\nreturn a\n",
			after:  "local a = 2\nreturn a\n",
		},
		{
			name:   "replace one with many",
			before: "print(1)\n",
			after:  "local x = 1\nprint(x)\nreturn x\n",
		},
		{
			name:   "delete everything",
			before: "a\nb\nc\n",
			after:  "",
		},
		{
			name:   "grow from empty",
			before: "",
			after:  "x = 1\n",
		},
		{
			name:   "no trailing newline preserved",
			before: "a\nb",
			after:  "a\nb\nc",
		},
		{
			name:   "disjoint changes",
			before: "one\ntwo\nthree\nfour\nfive\n",
			after:  "ONE\ntwo\nthree\nfour\nFIVE\nsix\n",
		},
		{
			name:   "identical",
			before: "same\n",
			after:  "same\n",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			diff := ComputeReverse(tt.before, tt.after)
			assert.Equal(t, tt.before, diff.Apply(tt.after))
		})
	}
}

func TestComputeReverseClassification(t *testing.T) {
	t.Parallel()

	t.Run("pure insertion yields additions only", func(t *testing.T) {
		t.Parallel()

		diff := ComputeReverse("a\nc\n", "a\nb\nc\n")
		assert.Equal(t, []int{2}, diff.Additions)
		assert.Empty(t, diff.Deletions)
		assert.Empty(t, diff.Modifications)
		assert.True(t, diff.TrailingNewline)
	})

	t.Run("pure deletion yields deletions only", func(t *testing.T) {
		t.Parallel()

		diff := ComputeReverse("a\nb\nc\n", "a\nc\n")
		require.Len(t, diff.Deletions, 1)
		assert.Equal(t, DeletedLine{Line: 2, Text: "b"}, diff.Deletions[0])
		assert.Empty(t, diff.Additions)
		assert.Empty(t, diff.Modifications)
	})

	t.Run("in-place change yields modification", func(t *testing.T) {
		t.Parallel()

		diff := ComputeReverse("a\nold\nc\n", "a\nnew\nc\n")
		require.Len(t, diff.Modifications, 1)
		assert.Equal(t, ModifiedLine{Line: 2, OldText: "old"}, diff.Modifications[0])
		assert.Empty(t, diff.Additions)
		assert.Empty(t, diff.Deletions)
	})

	t.Run("identical texts yield empty diff", func(t *testing.T) {
		t.Parallel()

		diff := ComputeReverse("a\nb\n", "a\nb\n")
		assert.True(t, diff.Empty())
		assert.Zero(t, diff.SizeCost())
	})
}

func TestReverseDiffSizeCost(t *testing.T) {
	t.Parallel()

	diff := ComputeReverse("ab\ncdef\n", "XY\n")
	// The old content of every removed or changed line is retained.
	assert.Equal(t, len("ab")+len("cdef"), diff.SizeCost())
}

package dyff_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/jcorbin/godyff/dyff"
)

func TestLineDiffSingleLineMatchIsDiscarded(t *testing.T) {
	hunk := newHunk(
		[]string{"alpha\n", "shared\n", "beta\n"},
		[]string{"gamma\n", "shared\n", "delta\n"},
	)
	tok := NewTokeniser()
	bm := NewBlockMaker(tok, hunk)

	lr := bm.LineDiff()
	for _, r := range lr {
		assert.False(t, r.Match, "a single matching line must be discarded by the 2-line threshold")
	}
}

func TestLineDiffMultiLineMatchIsKept(t *testing.T) {
	hunk := newHunk(
		[]string{"pre\n", "shared1\n", "shared2\n", "post-left\n"},
		[]string{"pre-changed\n", "shared1\n", "shared2\n", "post-right\n"},
	)
	tok := NewTokeniser()
	bm := NewBlockMaker(tok, hunk)

	lr := bm.LineDiff()
	require.NotEmpty(t, lr)

	var sawMatch bool
	for _, r := range lr {
		if r.Match {
			sawMatch = true
			// the matching run spans "shared1\nshared2\n" on both sides
			assert.Equal(t, r.Left.Len(), r.Right.Len())
		}
	}
	assert.True(t, sawMatch, "a 2+ line common run must survive as a Match range")
}

func TestLineDiffCoversFullWordSpace(t *testing.T) {
	hunk := newHunk(
		[]string{"a\n", "b\n", "c\n"},
		[]string{"x\n", "b\n", "d\n", "b\n"},
	)
	tok := NewTokeniser()
	bm := NewBlockMaker(tok, hunk)

	lr := bm.LineDiff()
	require.NotEmpty(t, lr)
	assert.Equal(t, 0, lr[0].Left.Start)
	assert.Equal(t, 0, lr[0].Right.Start)
	assert.Equal(t, bm.NumWords(Left), lr[len(lr)-1].Left.End)
	assert.Equal(t, bm.NumWords(Right), lr[len(lr)-1].Right.End)
}

func TestLineDiffNoCommonLinesYieldsSingleNonMatchRange(t *testing.T) {
	hunk := newHunk(
		[]string{"one\n", "two\n"},
		[]string{"three\n", "four\n"},
	)
	tok := NewTokeniser()
	bm := NewBlockMaker(tok, hunk)

	lr := bm.LineDiff()
	require.Len(t, lr, 1)
	assert.False(t, lr[0].Match)
	assert.Equal(t, Range{0, bm.NumWords(Left)}, lr[0].Left)
	assert.Equal(t, Range{0, bm.NumWords(Right)}, lr[0].Right)
}

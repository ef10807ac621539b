package dyff_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/jcorbin/godyff/dyff"
)

func TestPartEmpty(t *testing.T) {
	hunk := newHunk([]string{"a\n"}, []string{"a\n"})
	tok := NewTokeniser()
	bm := NewBlockMaker(tok, hunk)

	p := NewPart(bm, true, Range{0, 0}, Range{0, 0})
	assert.True(t, p.Empty())

	p2 := NewPart(bm, true, Range{0, 1}, Range{0, 0})
	assert.False(t, p2.Empty())
}

func TestPartInlineable(t *testing.T) {
	hunk := newHunk([]string{"one two\n"}, []string{"one two\n"})
	tok := NewTokeniser()
	bm := NewBlockMaker(tok, hunk)

	// "one two" without the trailing newline: single line on both sides.
	single := NewPart(bm, false, Range{0, 3}, Range{0, 3})
	assert.True(t, single.Inlineable())

	// Including the newline token makes it not inlineable.
	withNL := NewPart(bm, false, Range{0, 4}, Range{0, 4})
	assert.False(t, withNL.Inlineable())
}

func TestPartWholeLineSplitIsNoOp(t *testing.T) {
	hunk := newHunk([]string{"aa bb\n", "cc dd\n"}, []string{"xx yy\n", "zz ww\n"})
	tok := NewTokeniser()
	bm := NewBlockMaker(tok, hunk)

	p := NewPart(bm, false, Range{0, bm.NumWords(Left)}, Range{0, bm.NumWords(Right)})
	require.True(t, p.WholeLine())

	got := p.Split()
	require.Len(t, got, 1)
	assert.Equal(t, p, got[0])
}

func TestPartSplitAcrossLineBoundary(t *testing.T) {
	hunk := newHunk([]string{"aa bb\n", "cc dd\n"}, []string{"xx yy\n", "zz ww\n"})
	tok := NewTokeniser()
	bm := NewBlockMaker(tok, hunk)

	// Words 2..6 on both sides: partial first line (word "bb" + its
	// newline) through a partial second line ("cc "), crossing exactly one
	// line boundary (word index 4) with nothing left over for a middle
	// whole-line run.
	p := NewPart(bm, false, Range{2, 6}, Range{2, 6})
	require.False(t, p.WholeLine())

	got := p.Split()
	require.Len(t, got, 2)
	assert.Equal(t, Range{2, 4}, got[0].Slices[Left])
	assert.Equal(t, Range{2, 4}, got[0].Slices[Right])
	assert.Equal(t, Range{4, 6}, got[1].Slices[Left])
	assert.Equal(t, Range{4, 6}, got[1].Slices[Right])
}

func TestPartPartition(t *testing.T) {
	hunk := newHunk([]string{"aa bb cc\n"}, []string{"xx yy zz\n"})
	tok := NewTokeniser()
	bm := NewBlockMaker(tok, hunk)

	p := NewPart(bm, false, Range{0, bm.NumWords(Left)}, Range{0, bm.NumWords(Right)})
	head, tail := p.Partition(2, 2)
	assert.Equal(t, Range{0, 2}, head.Slices[Left])
	assert.Equal(t, Range{2, p.Slices[Left].End}, tail.Slices[Left])
	assert.Equal(t, p.Matches, head.Matches)
	assert.Equal(t, p.Matches, tail.Matches)
}

func TestPartMatchingIsNeverSplit(t *testing.T) {
	hunk := newHunk([]string{"aa\n", "bb\n"}, []string{"aa\n", "bb\n"})
	tok := NewTokeniser()
	bm := NewBlockMaker(tok, hunk)

	p := NewPart(bm, true, Range{1, 3}, Range{1, 3}) // mid first line through mid second line
	got := p.Split()
	require.Len(t, got, 1)
	assert.Equal(t, p, got[0])
}

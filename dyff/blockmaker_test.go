package dyff_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/jcorbin/godyff/dyff"
)

func newHunk(left, right []string) *HunkBuffer {
	h := &HunkBuffer{LineBase: [2]int{1, 1}}
	for _, l := range left {
		h.AppendLine(Left, []byte(l))
	}
	for _, l := range right {
		h.AppendLine(Right, []byte(l))
	}
	return h
}

func TestBlockMakerBasics(t *testing.T) {
	hunk := newHunk(
		[]string{"foo bar\n", "baz\n"},
		[]string{"foo qux\n"},
	)
	tok := NewTokeniser()
	bm := NewBlockMaker(tok, hunk)

	require.Equal(t, 2, bm.NumLines(Left))
	require.Equal(t, 1, bm.NumLines(Right))

	// "foo bar\n" -> foo, SPACE, bar, NEWLINE
	assert.Equal(t, 4, bm.FirstWordOfLine(Left, 1))
	assert.Equal(t, 6, bm.NumWords(Left))

	assert.Equal(t, 1, bm.GetLineno(Left, 0))
	assert.Equal(t, 2, bm.GetLineno(Left, 4))

	assert.Equal(t, []byte("foo"), bm.WordBytes(Left, 0))
	assert.Equal(t, NEWLINE, bm.Word(Left, 3))
}

func TestBlockMakerLineOfWordAndBoundary(t *testing.T) {
	hunk := newHunk([]string{"a b\n", "c\n"}, nil)
	tok := NewTokeniser()
	bm := NewBlockMaker(tok, hunk)

	assert.Equal(t, 0, bm.LineOfWord(Left, 0)) // "a"
	assert.Equal(t, 0, bm.LineOfWord(Left, 2)) // "b"
	assert.Equal(t, 1, bm.LineOfWord(Left, 4)) // "c"

	assert.True(t, bm.IsLineBoundary(Left, 0))
	assert.False(t, bm.IsLineBoundary(Left, 1))
	assert.True(t, bm.IsLineBoundary(Left, 4))
}

func TestBlockMakerLineTokenSharesIdsAcrossSidesAndHunks(t *testing.T) {
	tok := NewTokeniser()

	h1 := newHunk([]string{"same line\n"}, []string{"same line\n"})
	bm1 := NewBlockMaker(tok, h1)
	assert.Equal(t, bm1.LineToken(Left, 0), bm1.LineToken(Right, 0))

	h2 := newHunk([]string{"same line\n"}, nil)
	bm2 := NewBlockMaker(tok, h2)
	assert.Equal(t, bm1.LineToken(Left, 0), bm2.LineToken(Left, 0), "identical lines across hunks must share a token id via the persistent Tokeniser")
}

func TestSideOther(t *testing.T) {
	assert.Equal(t, Right, Left.Other())
	assert.Equal(t, Left, Right.Other())
}

func TestRangeEmptyAndLen(t *testing.T) {
	r := Range{Start: 3, End: 3}
	assert.True(t, r.Empty())
	assert.Equal(t, 0, r.Len())

	r2 := Range{Start: 3, End: 7}
	assert.False(t, r2.Empty())
	assert.Equal(t, 4, r2.Len())
}

func TestHunkBufferStripLastNewline(t *testing.T) {
	h := &HunkBuffer{}
	h.AppendLine(Left, []byte("no trailing newline"))
	h.StripLastNewline(Left)
	assert.Equal(t, []byte("no trailing newline"), h.Lines[Left][0])

	h.Reset()
	assert.Empty(t, h.Lines[Left])
}

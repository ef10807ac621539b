package dyff_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/jcorbin/godyff/dyff"
)

func renderHunk(t *testing.T, style Style, left, right []string) string {
	t.Helper()
	hunk := newHunk(left, right)
	tok := NewTokeniser()
	bm := NewBlockMaker(tok, hunk)
	blocks := SplitBlock(bm, BuildParts(bm))

	var buf bytes.Buffer
	rr := NewRenderer(style)
	require.NoError(t, rr.Render(&buf, bm, blocks))
	return buf.String()
}

func TestRenderContextMatchingLineIsWrittenOnce(t *testing.T) {
	style := Style{} // all styles empty, no line numbers/signs: bare content
	out := renderHunk(t, style, []string{"same line\n"}, []string{"same line\n"})
	assert.Equal(t, "same line\n", out)
}

func TestRenderInlineShowsBothSides(t *testing.T) {
	style := Style{
		Inline:             true,
		Diff:               [2]string{"<DEL>", "<INS>"},
		DiffMatchingInline: "",
		Reset:              "<RST>",
	}
	out := renderHunk(t, style, []string{"the quick fox\n"}, []string{"the slow fox\n"})
	assert.Contains(t, out, "<DEL>")
	assert.Contains(t, out, "<INS>")
	assert.Contains(t, out, "quick")
	assert.Contains(t, out, "slow")
	assert.Contains(t, out, "the")
	assert.Contains(t, out, "fox")
	// the deletion marker must precede "quick" and the insertion marker
	// must precede "slow".
	assert.Less(t, bytes.Index([]byte(out), []byte("<DEL>")), bytes.Index([]byte(out), []byte("quick")))
	assert.Less(t, bytes.Index([]byte(out), []byte("<INS>")), bytes.Index([]byte(out), []byte("slow")))
}

func TestRenderSideBySideFallsBackWhenNotInline(t *testing.T) {
	style := Style{
		Inline:          false,
		DiffNonMatching: [2]string{"<L>", "<R>"},
		DiffMatching:    [2]string{"<ML>", "<MR>"},
		DiffInsert:      [2]string{"<IL>", "<IR>"},
		Reset:           "<RST>",
	}
	out := renderHunk(t, style, []string{"alpha beta\n"}, []string{"gamma delta\n"})
	// total rewrite: left side content rendered with the left non-matching
	// style, right side with the right one, each side's own pass complete
	// before the other begins.
	assert.Contains(t, out, "alpha")
	assert.Contains(t, out, "beta")
	assert.Contains(t, out, "gamma")
	assert.Contains(t, out, "delta")
}

func TestStyleFormatLinenoOmitsZero(t *testing.T) {
	s := Style{Diff: [2]string{"L", "R"}, LinenoBar: "|"}
	out := s.FormatLineno(LineNoPair{3, 0}, "", "", "")
	assert.Contains(t, out, "3")
	assert.NotContains(t, out, "0")
}

func TestStyleWithOverrideUnknownName(t *testing.T) {
	s := DefaultStyle
	_, ok := s.WithOverride("not-a-real-field", "x")
	assert.False(t, ok)
}

func TestStyleWithOverrideKnownName(t *testing.T) {
	s := DefaultStyle
	got, ok := s.WithOverride("diff-delete", "CUSTOM")
	assert.True(t, ok)
	assert.Equal(t, "CUSTOM", got.Diff[0])
}

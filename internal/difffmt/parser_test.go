package difffmt_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/godyff/dyff"
	. "github.com/jcorbin/godyff/internal/difffmt"
)

// fakeRenderer records every hunk it is asked to render, without actually
// producing styled output, so tests can inspect the accumulated
// dyff.BlockMaker directly.
type fakeRenderer struct {
	calls []*dyff.BlockMaker
}

func (f *fakeRenderer) Render(w io.Writer, bm *dyff.BlockMaker, blocks []dyff.Block) error {
	f.calls = append(f.calls, bm)
	return nil
}

func TestParserAccumulatesOneHunkAndPassesThroughHeaders(t *testing.T) {
	input := strings.Join([]string{
		"diff --git a/x b/x",
		"index 1111111..2222222 100644",
		"--- a/x",
		"+++ b/x",
		"@@ -1,2 +1,2 @@",
		" same",
		"-old",
		"+new",
		"",
	}, "\n")

	var out bytes.Buffer
	fr := &fakeRenderer{}
	tok := dyff.NewTokeniser()
	p := NewParser(&out, tok, fr, Style{DiffHeader: "", Reset: ""})

	require.NoError(t, p.Run(strings.NewReader(input)))
	require.Len(t, fr.calls, 1)

	bm := fr.calls[0]
	assert.Equal(t, 2, bm.NumLines(dyff.Left))  // "same", "old"
	assert.Equal(t, 2, bm.NumLines(dyff.Right)) // "same", "new"

	assert.Contains(t, out.String(), "diff --git a/x b/x")
	assert.Contains(t, out.String(), "index 1111111..2222222 100644")
	assert.Contains(t, out.String(), "--- a/x")
	assert.Contains(t, out.String(), "+++ b/x")
	assert.Contains(t, out.String(), "@@ -1,2 +1,2 @@")
}

func TestParserLabelOverridesFileHeaders(t *testing.T) {
	input := strings.Join([]string{
		"--- a/orig.go",
		"+++ b/orig.go",
		"@@ -1 +1 @@",
		"-old",
		"+new",
		"",
	}, "\n")

	var out bytes.Buffer
	fr := &fakeRenderer{}
	tok := dyff.NewTokeniser()
	p := NewParser(&out, tok, fr, Style{})
	p.Labels[dyff.Left] = "left label"
	p.Labels[dyff.Right] = "right label"

	require.NoError(t, p.Run(strings.NewReader(input)))
	assert.Contains(t, out.String(), "--- left-label")
	assert.Contains(t, out.String(), "+++ right-label")
	assert.NotContains(t, out.String(), "a/orig.go")
}

func TestParserStripsNoNewlineMarker(t *testing.T) {
	input := strings.Join([]string{
		"@@ -1 +1 @@",
		"-old",
		"\\ No newline at end of file",
		"+new",
		"",
	}, "\n")

	var out bytes.Buffer
	fr := &fakeRenderer{}
	tok := dyff.NewTokeniser()
	p := NewParser(&out, tok, fr, Style{})

	require.NoError(t, p.Run(strings.NewReader(input)))
	require.Len(t, fr.calls, 1)
	bm := fr.calls[0]
	last := bm.LineBytes(dyff.Left, bm.NumLines(dyff.Left)-1)
	assert.False(t, bytes.HasSuffix(last, []byte("\n")), "the no-newline marker must strip the trailing newline from the preceding left-side line")
}

func TestParserSawInputReportsWhetherAnyLineWasRead(t *testing.T) {
	var out bytes.Buffer
	fr := &fakeRenderer{}
	tok := dyff.NewTokeniser()

	p := NewParser(&out, tok, fr, Style{})
	require.NoError(t, p.Run(strings.NewReader("")))
	assert.False(t, p.SawInput())

	p2 := NewParser(&out, tok, fr, Style{})
	require.NoError(t, p2.Run(strings.NewReader("hello\n")))
	assert.True(t, p2.SawInput())
}

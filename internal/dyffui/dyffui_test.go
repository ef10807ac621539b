package dyffui_test

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/jcorbin/godyff/internal/dyffui"
)

func TestHelpStripsMarkupToPlainText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Help(&buf))
	out := buf.String()

	assert.Contains(t, out, "godyff")
	assert.Contains(t, out, "--color")
	assert.NotContains(t, out, "<h1>")
	assert.NotContains(t, out, "<li>")
	assert.NotContains(t, out, "<")
}

func TestDriverFuncCallsThroughToFunction(t *testing.T) {
	var called bool
	d := DriverFunc(func(w io.Writer) error {
		called = true
		_, err := w.Write([]byte("ok"))
		return err
	})

	var buf bytes.Buffer
	require.NoError(t, Serve(&buf, d))
	assert.True(t, called)
	assert.Equal(t, "ok", buf.String())
}

func TestServePropagatesError(t *testing.T) {
	boom := errors.New("boom")
	d := DriverFunc(func(w io.Writer) error { return boom })
	assert.ErrorIs(t, Serve(bytes.NewBuffer(nil), d), boom)
}

package dyff_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/jcorbin/godyff/dyff"
)

func TestSplitWords(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   string
		out  []string
	}{
		{
			name: "plain words and space",
			in:   "a b c\n",
			out:  []string{"a", " ", "b", " ", "c", "\n"},
		},
		{
			name: "camel case splits on case transition",
			in:   "fooBarBaz\n",
			out:  []string{"foo", "Bar", "Baz", "\n"},
		},
		{
			name: "all caps identifier with trailing digits stays whole",
			in:   "HTTP2\n",
			out:  []string{"HTTP2", "\n"},
		},
		{
			name: "lowercase run stays whole",
			in:   "lowercase\n",
			out:  []string{"lowercase", "\n"},
		},
		{
			name: "digit run",
			in:   "x123y\n",
			out:  []string{"x", "123", "y", "\n"},
		},
		{
			name: "two byte operators",
			in:   "a != b == c\n",
			out:  []string{"a", " ", "!=", " ", "b", " ", "==", " ", "c", "\n"},
		},
		{
			name: "tab and punctuation are single bytes",
			in:   "a\t(b)\n",
			out:  []string{"a", "\t", "(", "b", ")", "\n"},
		},
		{
			name: "multibyte utf8 sequence is one word",
			in:   "café\n",
			out:  []string{"caf", "é", "\n"},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var got []string
			for _, w := range SplitWords([]byte(tc.in)) {
				got = append(got, string(w))
			}
			assert.Equal(t, tc.out, got)
		})
	}
}

func TestIsWhitespace(t *testing.T) {
	assert.True(t, IsWhitespace(SPACE))
	assert.True(t, IsWhitespace(TAB))
	assert.True(t, IsWhitespace(FORM_FEED))
	assert.True(t, IsWhitespace(CARRIAGE_RETURN))
	assert.False(t, IsWhitespace(NEWLINE))
}

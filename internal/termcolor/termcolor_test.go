package termcolor_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/jcorbin/godyff/internal/termcolor"
)

func TestResolveAlwaysAndNever(t *testing.T) {
	var buf bytes.Buffer
	assert.True(t, Resolve(Always, &buf))
	assert.False(t, Resolve(Never, &buf))
}

func TestResolveAutoOnNonTerminalWriter(t *testing.T) {
	var buf bytes.Buffer
	assert.False(t, Resolve(Auto, &buf), "a plain bytes.Buffer is never a colour terminal")
}

func TestIsColorTerminalFalseForNonFile(t *testing.T) {
	var buf bytes.Buffer
	assert.False(t, IsColorTerminal(&buf))
}

package scanio_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/jcorbin/godyff/internal/scanio"
)

func TestByteArenaTakeAndBytes(t *testing.T) {
	var arena ByteArena
	arena.Write([]byte("hello "))
	tok1 := arena.Take()
	arena.Write([]byte("world"))
	tok2 := arena.Take()

	assert.Equal(t, "hello ", tok1.Text())
	assert.Equal(t, "world", tok2.Text())
	assert.False(t, tok1.Empty())
}

func TestByteArenaResetInvalidatesTokens(t *testing.T) {
	var arena ByteArena
	arena.WriteString("data")
	tok := arena.Take()
	require.Equal(t, "data", tok.Text())

	arena.Reset()
	arena.WriteString("new")
	tok2 := arena.Take()
	assert.Equal(t, "new", tok2.Text())
}

func TestByteArenaTokenSlice(t *testing.T) {
	var arena ByteArena
	arena.WriteString("abcdef")
	tok := arena.Take()

	assert.Equal(t, "bcd", tok.Slice(1, 4).Text())
	assert.Equal(t, "cdef", tok.Slice(2, -1).Text())
}

func TestByteTokensPushAndGet(t *testing.T) {
	var tokens ByteTokens
	tokens.WriteString("foobar")
	tok := tokens.Take()
	tokens.Push(tok)

	require.Equal(t, 1, tokens.Len())
	assert.Equal(t, "foobar", tokens.Get(0).Text())
}

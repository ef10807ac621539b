// Package scanio provides the byte-arena-of-indices primitive used to store
// hunk content lines as they are read off a diff stream: internal/difffmt's
// Parser writes each content line's bytes into one shared ByteArena and
// keeps only a ByteArenaToken handle, so that a hunk with thousands of short
// lines doesn't pay for thousands of individually heap-allocated []byte
// copies, and so that dyff.BlockMaker (built from the resulting
// dyff.HunkBuffer) only ever borrows slices out of one backing buffer per
// hunk rather than owning scattered ones.
package scanio

import "fmt"

// ByteArena is an io.Writer-shaped byte buffer that hands out ByteArenaToken
// handles to the range most recently written into it. A zero ByteArena is
// ready to use.
type ByteArena struct {
	buf []byte
	cur int // offset of the first byte not yet claimed by a Take
}

// Write appends p to the arena's buffer. It never fails.
func (arena *ByteArena) Write(p []byte) (int, error) {
	arena.buf = append(arena.buf, p...)
	return len(p), nil
}

// WriteString appends s to the arena's buffer. It never fails.
func (arena *ByteArena) WriteString(s string) (int, error) {
	arena.buf = append(arena.buf, s...)
	return len(s), nil
}

// Take returns a token covering every byte written since the last Take (or
// since the arena was last Reset), and advances the claim cursor past it.
// Parser.storeLine calls Write then Take back to back for each hunk content
// line it accumulates.
func (arena *ByteArena) Take() (token ByteArenaToken) {
	token.arena = arena
	token.start = arena.cur
	token.end = len(arena.buf)
	arena.cur = token.end
	return token
}

// Reset discards every byte held by the arena, invalidating any token handed
// out by a prior Take. Parser calls this once per hunk, right after
// rendering it, so the arena doesn't grow unbounded across a long diff
// stream.
func (arena *ByteArena) Reset() {
	arena.buf = arena.buf[:0]
	arena.cur = 0
}

// byteRange is a half-open [start,end) span of offsets into a ByteArena's
// buffer.
type byteRange struct{ start, end int }

// ByteArenaToken is a handle to a byteRange within a particular ByteArena.
// It becomes invalid once that ByteArena is Reset.
type ByteArenaToken struct {
	byteRange
	arena *ByteArena
}

// Bytes returns the token's bytes, aliasing the arena's backing buffer. The
// caller must not retain the returned slice past the arena's next Reset;
// copy out of it first if a longer lifetime is needed. Parser's storeLine
// hands this straight to dyff.HunkBuffer.AppendLine.
func (token ByteArenaToken) Bytes() []byte {
	if token.arena == nil {
		return nil
	}
	if buf := token.arena.buf; token.start <= len(buf) && token.end <= len(buf) {
		return buf[token.start:token.end]
	}
	return nil
}

// Text returns a string copy of the token's bytes.
func (token ByteArenaToken) Text() string {
	if token.arena == nil {
		return ""
	}
	if buf := token.arena.buf; token.start <= len(buf) && token.end <= len(buf) {
		return string(buf[token.start:token.end])
	}
	return ""
}

// Empty reports whether the token covers zero bytes.
func (token ByteArenaToken) Empty() bool { return token.end == token.start }

// Slice returns a sub-token of the receiver, i and j relative to the token's
// own start (j may be negative to count back from the token's end, as in
// token[i:j]). It panics on a zero-valued token or an out-of-range result.
func (token ByteArenaToken) Slice(i, j int) ByteArenaToken {
	if token.arena == nil {
		panic("cannot slice a zero-valued scanio.ByteArenaToken")
	}
	if j < 0 {
		token.end = token.end + 1 + j
	} else {
		token.end = token.start + j
	}
	token.start += i
	if n := len(token.arena.buf); token.end < token.start ||
		token.start < 0 || token.start > n || token.end > n {
		panic(fmt.Sprintf(
			"scanio.ByteArenaToken.Slice(%v, %v) out of range [%v:%v] vs len %v",
			i, j, token.start, token.end, n))
	}
	return token
}

// ByteTokens pairs a ByteArena with an ordered collection of tokens taken
// from it, for a caller that wants to accumulate a whole sequence of
// arena-backed spans rather than one at a time, the way Parser's single
// per-hunk ByteArena field does.
type ByteTokens struct {
	ByteArena
	ranges []byteRange
}

// Len returns the number of tokens held.
func (tokens *ByteTokens) Len() int { return len(tokens.ranges) }

// Get returns the i-th token. It panics if i is out of range.
func (tokens *ByteTokens) Get(i int) ByteArenaToken {
	return ByteArenaToken{arena: &tokens.ByteArena, byteRange: tokens.ranges[i]}
}

// Push appends token to the collection. It panics if token belongs to a
// different ByteArena than the receiver's own.
func (tokens *ByteTokens) Push(token ByteArenaToken) {
	var rng byteRange
	if token.arena != nil {
		if token.arena != &tokens.ByteArena {
			panic("scanio.ByteTokens.Push given a token from a foreign arena")
		}
		rng = token.byteRange
	}
	tokens.ranges = append(tokens.ranges, rng)
}

// Package dyff implements the within-hunk alignment engine that underlies
// godyff's pretty diff rendering: tokenising hunk text into words, aligning
// those words line-by-line and then word-by-word, and assembling the result
// into a sequence of styled, line-numbered Blocks.
package dyff

import (
	"regexp"

	"github.com/fatih/camelcase"
)

// Token is a small integer identifier for an interned Word. Values below
// numReservedTokens are the whitespace classes; every other distinct Word
// encountered by a Tokeniser receives a fresh id in the order it was first
// seen - ids carry no meaning beyond that assignment order.
type Token int32

// Reserved token ids, in the order the specification fixes them.
const (
	NEWLINE Token = iota
	SPACE
	TAB
	FORM_FEED
	CARRIAGE_RETURN

	numReservedTokens
)

// IsWhitespace reports whether t is one of the reserved whitespace classes
// (SPACE, TAB, FORM_FEED, CARRIAGE_RETURN). NEWLINE is deliberately excluded:
// it delimits lines rather than filling them and is never treated as junk by
// the WordDiffer.
func IsWhitespace(t Token) bool {
	switch t {
	case SPACE, TAB, FORM_FEED, CARRIAGE_RETURN:
		return true
	default:
		return false
	}
}

// runRegexp finds the maximal runs that SplitWords then subdivides: an
// ALL-CAPS-plus-digits identifier, a generic letter run (further split below
// into CamelCase segments or kept whole), a digit run, a single whitespace
// byte, one of the two-byte operators, a UTF-8 multibyte sequence, a
// newline, or any other single byte. This ordering reproduces the priority
// list in the specification; the CamelCase/lowercase distinction within a
// letter run is resolved afterwards since regexp alone can't express "split
// on case transitions" as cleanly as camelcase.Split does.
var runRegexp = regexp.MustCompile(
	`[A-Z]+[0-9]+` +
		`|[A-Za-z]+` +
		`|[0-9]+` +
		`|[ \t\f\r]` +
		`|-=|!=|==|~=|\+=` +
		`|[^\x00-\x7F]` +
		`|\n` +
		`|.`,
)

var allCapsRegexp = regexp.MustCompile(`^[A-Z]+[0-9]*$`)

// SplitWords splits line into its constituent Words, applying the
// tokenisation priority order from the specification. The returned slices
// alias line and must not be retained past the next mutation of it.
func SplitWords(line []byte) [][]byte {
	runs := runRegexp.FindAll(line, -1)
	words := make([][]byte, 0, len(runs))
	for _, run := range runs {
		words = append(words, splitLetterRun(run)...)
	}
	return words
}

// splitLetterRun decides how a matched letter (or ALL-CAPS+digit) run
// divides into words: an ALL-CAPS run, with or without trailing digits (e.g.
// "HTTP2"), is kept whole as a single identifier token rather than being
// handed to camelcase.Split, which would otherwise peel the digit suffix off
// into its own word; a run with a case transition is divided into CamelCase
// segments via camelcase.Split, and a plain lowercase run is kept whole.
func splitLetterRun(run []byte) [][]byte {
	if !hasLetter(run) || allCapsRegexp.Match(run) || isLowerRun(run) {
		return [][]byte{run}
	}
	parts := camelcase.Split(string(run))
	words := make([][]byte, len(parts))
	for i, p := range parts {
		words[i] = []byte(p)
	}
	return words
}

func hasLetter(b []byte) bool {
	for _, c := range b {
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			return true
		}
	}
	return false
}

func isLowerRun(b []byte) bool {
	for _, c := range b {
		if c >= 'A' && c <= 'Z' {
			return false
		}
	}
	return true
}

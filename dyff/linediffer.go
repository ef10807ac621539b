package dyff

import "bytes"

// LineRange is one alternating step of a LineDiff result: either a coarse
// matching run of whole lines (Match true) or a non-matching run handed off
// to the WordDiffer (Match false). Left and Right are word-index ranges
// into the originating BlockMaker.
type LineRange struct {
	Left, Right Range
	Match       bool
}

// lineMatch is an internal line-index (not word-index) match, as produced
// by the recursive longest-matching-run search.
type lineMatch struct{ A, B, Size int }

// LineDiff runs the line-level pre-alignment described in the
// specification: a classic LCS over whole-line token ids, discarding
// single-line matches, followed by a post-filter that rejects line ranges
// which are really a block of re-indented identical lines. It returns the
// alternating matching/non-matching ranges covering the full word-index
// space of both sides.
func (bm *BlockMaker) LineDiff() []LineRange {
	aTok, bTok := bm.lineTokens[Left], bm.lineTokens[Right]

	var matches []lineMatch
	collectLineMatches(aTok, bTok, 0, len(aTok), 0, len(bTok), &matches)
	matches = rejectReindentedMatches(bm, matches)

	var out []LineRange
	doneA, doneB := 0, 0
	flushGap := func(ai, bi int) {
		if ai > doneA || bi > doneB {
			out = append(out, LineRange{
				Left:  Range{bm.FirstWordOfLine(Left, doneA), bm.FirstWordOfLine(Left, ai)},
				Right: Range{bm.FirstWordOfLine(Right, doneB), bm.FirstWordOfLine(Right, bi)},
			})
		}
	}
	for _, m := range matches {
		flushGap(m.A, m.B)
		out = append(out, LineRange{
			Left:  Range{bm.FirstWordOfLine(Left, m.A), bm.FirstWordOfLine(Left, m.A+m.Size)},
			Right: Range{bm.FirstWordOfLine(Right, m.B), bm.FirstWordOfLine(Right, m.B+m.Size)},
			Match: true,
		})
		doneA, doneB = m.A+m.Size, m.B+m.Size
	}
	flushGap(bm.NumLines(Left), bm.NumLines(Right))
	return out
}

// collectLineMatches implements the canonical "longest matching run"
// recursion: find the longest common run of line tokens in [alo,ahi) x
// [blo,bhi), discard it (and don't recurse through it at all) if its length
// is below the 2-line threshold, otherwise recurse on the prefix and
// suffix around it.
func collectLineMatches(a, b []Token, alo, ahi, blo, bhi int, out *[]lineMatch) {
	i, j, k := findLongestMatch(a, b, alo, ahi, blo, bhi)
	if k < 2 {
		return
	}
	collectLineMatches(a, b, alo, i, blo, j, out)
	*out = append(*out, lineMatch{i, j, k})
	collectLineMatches(a, b, i+k, ahi, j+k, bhi, out)
}

// findLongestMatch returns the longest common contiguous run of tokens
// between a[alo:ahi] and b[blo:bhi], preferring (as ties break naturally
// from the scan order) the match starting earliest in a, then in b.
func findLongestMatch(a, b []Token, alo, ahi, blo, bhi int) (besti, bestj, bestsize int) {
	b2j := make(map[Token][]int, bhi-blo)
	for j := blo; j < bhi; j++ {
		b2j[b[j]] = append(b2j[b[j]], j)
	}
	j2len := make(map[int]int, bhi-blo)
	for i := alo; i < ahi; i++ {
		newj2len := make(map[int]int, len(j2len)+1)
		for _, j := range b2j[a[i]] {
			k := j2len[j-1] + 1
			newj2len[j] = k
			if k > bestsize {
				besti, bestj, bestsize = i-k+1, j-k+1, k
			}
		}
		j2len = newj2len
	}
	return
}

// rejectReindentedMatches drops any interior matching line range whose
// lines are identical only incidentally to a surrounding re-indentation: a
// match not touching either boundary, all of whose lines on both sides are
// the same line after left-trimming whitespace, and whose trimmed line also
// equals both the line immediately before it on the left and the line
// immediately after it on the right, or the symmetric crossing - the
// signature of a block that was uniformly re-indented rather than truly
// unchanged.
func rejectReindentedMatches(bm *BlockMaker, matches []lineMatch) []lineMatch {
	if len(matches) == 0 {
		return matches
	}
	out := matches[:0:0]
	for _, m := range matches {
		if isReindentedMatch(bm, m) {
			continue
		}
		out = append(out, m)
	}
	return out
}

func isReindentedMatch(bm *BlockMaker, m lineMatch) bool {
	nA, nB := bm.NumLines(Left), bm.NumLines(Right)
	if m.A <= 0 || m.B <= 0 || m.A+m.Size >= nA || m.B+m.Size >= nB {
		return false
	}
	want := ltrim(bm.LineBytes(Left, m.A))
	for t := 0; t < m.Size; t++ {
		if !bytes.Equal(ltrim(bm.LineBytes(Left, m.A+t)), want) ||
			!bytes.Equal(ltrim(bm.LineBytes(Right, m.B+t)), want) {
			return false
		}
	}
	precedingLeft := ltrim(bm.LineBytes(Left, m.A-1))
	followingRight := ltrim(bm.LineBytes(Right, m.B+m.Size))
	precedingRight := ltrim(bm.LineBytes(Right, m.B-1))
	followingLeft := ltrim(bm.LineBytes(Left, m.A+m.Size))
	return (bytes.Equal(precedingLeft, want) && bytes.Equal(followingRight, want)) ||
		(bytes.Equal(precedingRight, want) && bytes.Equal(followingLeft, want))
}

func ltrim(b []byte) []byte {
	return bytes.TrimLeft(b, " \t")
}

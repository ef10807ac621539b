package dyff

import "sort"

// DiffMatch is a single accepted word-level match produced by WordDiffer,
// together with the metrics used to rank it against competing candidates.
type DiffMatch struct {
	Left, Right      Range
	Length           int // raw token count, pre-trim
	LineNoDist       int
	LineNoDistStrong bool
	NonWsLength      int // count of non-whitespace tokens after trimming
	CharLength       int // byte length of the trimmed run
}

// WordDiffer runs the word-level LCS described in the specification over
// each non-matching LineRange left by LineDiffer, threading a memo of
// previously committed line pairings (matchedLines) through the whole hunk
// so that later matches prefer line-number agreement with earlier ones.
type WordDiffer struct {
	bm          *BlockMaker
	leftToRight map[int]int // committed left line -> right line
	rightToLeft map[int]int // committed right line -> left line
	firstLineA  int
	firstLineB  int
}

// NewWordDiffer returns a WordDiffer over bm. firstLineA/firstLineB are the
// hunk's diagonal prior line bases, used by the weakest lineno_dist mode.
func NewWordDiffer(bm *BlockMaker) *WordDiffer {
	return &WordDiffer{
		bm:          bm,
		leftToRight: make(map[int]int),
		rightToLeft: make(map[int]int),
		firstLineA:  bm.LineBase(Left),
		firstLineB:  bm.LineBase(Right),
	}
}

// Diff runs the word LCS over the given non-matching word-index ranges and
// returns the accepted matches, sorted by left start, with adjacent
// touching matches fused.
func (wd *WordDiffer) Diff(left, right Range) []DiffMatch {
	var matches []DiffMatch
	wd.collect(left.Start, left.End, right.Start, right.End, &matches)
	sort.Slice(matches, func(i, j int) bool { return matches[i].Left.Start < matches[j].Left.Start })
	return fuseAdjacent(matches)
}

func fuseAdjacent(matches []DiffMatch) []DiffMatch {
	out := matches[:0:0]
	for _, m := range matches {
		if n := len(out); n > 0 && out[n-1].Left.End == m.Left.Start && out[n-1].Right.End == m.Right.Start {
			out[n-1].Left.End = m.Left.End
			out[n-1].Right.End = m.Right.End
			out[n-1].Length += m.Length
			out[n-1].NonWsLength += m.NonWsLength
			out[n-1].CharLength += m.CharLength
			continue
		}
		out = append(out, m)
	}
	return out
}

// collect recursively finds the best DiffMatch in [alo,ahi) x [blo,bhi) and
// splits around it, writing each accepted match into matchedLines so that
// later, sibling calls benefit from the line-number affinity it creates.
func (wd *WordDiffer) collect(alo, ahi, blo, bhi int, out *[]DiffMatch) {
	if alo >= ahi || blo >= bhi {
		return
	}
	m, ok := wd.bestMatch(alo, ahi, blo, bhi)
	if !ok {
		return
	}
	wd.collect(alo, m.Left.Start, blo, m.Right.Start, out)
	wd.commit(m)
	*out = append(*out, m)
	wd.collect(m.Left.End, ahi, m.Right.End, bhi, out)
}

// commit records the line pairing(s) spanned by a match into matchedLines.
func (wd *WordDiffer) commit(m DiffMatch) {
	a := wd.bm
	for w := m.Left.Start; w < m.Left.End; w++ {
		l := a.LineOfWord(Left, w)
		r := a.LineOfWord(Right, wd.correspondingRightWord(m, w))
		wd.leftToRight[l] = r
		wd.rightToLeft[r] = l
	}
}

func (wd *WordDiffer) correspondingRightWord(m DiffMatch, leftWord int) int {
	off := leftWord - m.Left.Start
	if w := m.Right.Start + off; w < m.Right.End {
		return w
	}
	return m.Right.End - 1
}

type wordCandidate struct {
	left, right, size int // raw (pre-trim) match
}

// bestMatch finds the winning DiffMatch in [alo,ahi) x [blo,bhi), applying
// the multi-candidate disambiguation rules when more than one raw match
// ties for best non-whitespace length.
func (wd *WordDiffer) bestMatch(alo, ahi, blo, bhi int) (DiffMatch, bool) {
	a, b := wd.bm.words[Left][alo:ahi], wd.bm.words[Right][blo:bhi]
	cands := rawLongestMatches(a, b, alo, blo)
	if len(cands) == 0 {
		return DiffMatch{}, false
	}

	toDiffMatch := func(c wordCandidate) (DiffMatch, bool) {
		return wd.toDiffMatch(c, alo, ahi, blo, bhi)
	}

	diffs := make([]DiffMatch, 0, len(cands))
	maxNonWs := 0
	for _, c := range cands {
		if dm, ok := toDiffMatch(c); ok {
			diffs = append(diffs, dm)
			if dm.NonWsLength > maxNonWs {
				maxNonWs = dm.NonWsLength
			}
		}
	}
	if len(diffs) == 0 {
		return DiffMatch{}, false
	}
	tied := diffs[:0]
	for _, d := range diffs {
		if d.NonWsLength == maxNonWs {
			tied = append(tied, d)
		}
	}
	diffs = tied
	if len(diffs) == 1 {
		return diffs[0], true
	}
	return wd.disambiguate(diffs, alo, ahi, blo, bhi)
}

// toDiffMatch extends a raw candidate through boundary junk (extendMatch) and
// separately trims leading/trailing whitespace off of that extended run
// (trimBoth) to measure it. The trimmed run is used only to compute the
// ranking metrics (NonWsLength, CharLength, the line-number-affinity anchor)
// and to reject a candidate that trims down to nothing but whitespace/
// newlines; the *emitted* DiffMatch.Left/Right is the extended range itself,
// since extend_match's whole purpose (per the specification's §4.4) is to
// grow the winning match back out over flanking junk so that plain
// whitespace context stays part of the matching Part instead of getting
// pulled back into the surrounding non-matching span.
func (wd *WordDiffer) toDiffMatch(c wordCandidate, alo, ahi, blo, bhi int) (DiffMatch, bool) {
	a, b := wd.bm.words[Left], wd.bm.words[Right]
	li, rj, size := extendMatch(a, b, alo, ahi, blo, bhi, c.left, c.right, c.size)
	tl, tr, tsize := trimBoth(a, b, li, rj, size)
	if tsize == 0 {
		return DiffMatch{}, false
	}
	if a[tl] == NEWLINE {
		tl++
		tr++
		tsize--
		if tsize == 0 {
			return DiffMatch{}, false
		}
	}
	nonWs := 0
	charLen := 0
	for i := 0; i < tsize; i++ {
		if !IsWhitespace(a[tl+i]) {
			nonWs++
		}
		charLen += len(wd.bm.WordBytes(Left, tl+i))
	}
	dist, strong := wd.lineNoDist(tl, tr)
	return DiffMatch{
		Left:             Range{li, li + size},
		Right:            Range{rj, rj + size},
		Length:           size,
		LineNoDist:       dist,
		LineNoDistStrong: strong,
		NonWsLength:      nonWs,
		CharLength:       charLen,
	}, true
}

// trimBoth strips whitespace tokens from both ends of the [li,li+size) /
// [rj,rj+size) run (they are equal token-for-token, so trimming one side in
// lockstep trims the other identically).
func trimBoth(a, b []Token, li, rj, size int) (int, int, int) {
	start, end := 0, size
	for start < end && IsWhitespace(a[li+start]) {
		start++
	}
	for end > start && IsWhitespace(a[li+end-1]) {
		end--
	}
	return li + start, rj + start, end - start
}

// lineNoDist implements the three-mode priority from the specification:
// prefer a previously committed left->right pairing, else a committed
// right->left pairing, else the diagonal prior.
func (wd *WordDiffer) lineNoDist(li, rj int) (dist int, strong bool) {
	leftLine := wd.bm.LineOfWord(Left, li)
	rightLine := wd.bm.LineOfWord(Right, rj)
	linenoA := wd.bm.GetLineno(Left, li)
	linenoB := wd.bm.GetLineno(Right, rj)
	if r, ok := wd.leftToRight[leftLine]; ok {
		want := wd.bm.GetLineno(Right, wd.bm.FirstWordOfLine(Right, r))
		return absInt(linenoB - want), true
	}
	if l, ok := wd.rightToLeft[rightLine]; ok {
		want := wd.bm.GetLineno(Left, wd.bm.FirstWordOfLine(Left, l))
		return absInt(linenoA - want), true
	}
	return absInt(linenoA - (linenoB + wd.firstLineA - wd.firstLineB)), false
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// rawLongestMatches returns every (left,right,size) triple achieving the
// maximal contiguous common run between a and b, using the classic
// junk-aware longest-match search (whitespace tokens excluded from the
// anchor index, matching the difflib find_longest_match algorithm this
// component is grounded on). aOff/bOff translate the returned indices back
// into the caller's absolute coordinate space.
func rawLongestMatches(a, b []Token, aOff, bOff int) []wordCandidate {
	b2j := make(map[Token][]int, len(b))
	for j, t := range b {
		if IsWhitespace(t) {
			continue
		}
		b2j[t] = append(b2j[t], j)
	}

	bestsize := 0
	j2len := make(map[int]int, len(b))
	for i := range a {
		newj2len := make(map[int]int, len(j2len)+1)
		for _, j := range b2j[a[i]] {
			k := j2len[j-1] + 1
			newj2len[j] = k
			if k > bestsize {
				bestsize = k
			}
		}
		j2len = newj2len
	}
	if bestsize == 0 {
		return nil
	}

	// Second pass collects every tie at bestsize.
	var out []wordCandidate
	j2len = make(map[int]int, len(b))
	for i := range a {
		newj2len := make(map[int]int, len(j2len)+1)
		for _, j := range b2j[a[i]] {
			k := j2len[j-1] + 1
			newj2len[j] = k
			if k == bestsize {
				out = append(out, wordCandidate{aOff + i - k + 1, bOff + j - k + 1, k})
			}
		}
		j2len = newj2len
	}
	return out
}

// extendMatch implements the backward/forward junk extension described in
// the specification: backward extension requires either a junk token or a
// newline that closes a blank line adjacent to another blank line;
// forward extension allows a newline or trailing whitespace.
func extendMatch(a, b []Token, alo, ahi, blo, bhi, besti, bestj, bestsize int) (int, int, int) {
	for besti > alo && bestj > blo && a[besti-1] == b[bestj-1] {
		tok := a[besti-1]
		blankAdjacent := tok == NEWLINE && besti-2 >= alo && a[besti-2] == NEWLINE
		if !IsWhitespace(tok) && !blankAdjacent {
			break
		}
		besti, bestj, bestsize = besti-1, bestj-1, bestsize+1
	}
	for besti+bestsize < ahi && bestj+bestsize < bhi && a[besti+bestsize] == b[bestj+bestsize] {
		tok := a[besti+bestsize]
		if !IsWhitespace(tok) && tok != NEWLINE {
			break
		}
		bestsize++
	}
	return besti, bestj, bestsize
}

// disambiguate resolves a tie among candidates that all share the maximal
// NonWsLength, following the specification's priority order.
func (wd *WordDiffer) disambiguate(diffs []DiffMatch, alo, ahi, blo, bhi int) (DiffMatch, bool) {
	best := bestByObjective(diffs)

	// 1. Unique (left_start, right_start) pair in both coordinates.
	if uniq := uniqueStartCandidates(diffs); len(uniq) > 0 {
		return bestByObjective(uniq), true
	}

	// 2. Strong line-number agreement (dist == 0).
	var strongZero []DiffMatch
	for _, d := range diffs {
		if d.LineNoDistStrong && d.LineNoDist == 0 {
			strongZero = append(strongZero, d)
		}
	}
	if len(strongZero) > 0 {
		return bestByObjective(strongZero), true
	}

	// 3. All candidates share a fixed left (or right) anchor: re-probe the
	// unshared side in non-overlapping sub-rectangles straddling the
	// center, falling back to the plain objective pick if nothing better
	// turns up.
	if allSameLeftStart(diffs) || allSameRightStart(diffs) {
		if dm, ok := wd.probeSharedAnchor(diffs, alo, ahi, blo, bhi); ok {
			return dm, true
		}
		return best, true
	}

	// 4. Recurse into the sub-rectangles bracketing the spread of
	// candidates, accepting the first non-newline-only result.
	mini, minj, maxi, maxj := spread(diffs)
	if dm, ok := wd.bestMatch(alo, mini, blo, minj); ok {
		return dm, true
	}
	if dm, ok := wd.bestMatch(maxi, ahi, maxj, bhi); ok {
		return dm, true
	}
	return best, true
}

func bestByObjective(diffs []DiffMatch) DiffMatch {
	best := diffs[0]
	for _, d := range diffs[1:] {
		if better(d, best) {
			best = d
		}
	}
	return best
}

// better reports whether d should replace best under the tie-break chain:
// maximise NonWsLength, then minimise LineNoDist, then maximise CharLength.
func better(d, best DiffMatch) bool {
	if d.NonWsLength != best.NonWsLength {
		return d.NonWsLength > best.NonWsLength
	}
	if d.LineNoDist != best.LineNoDist {
		return d.LineNoDist < best.LineNoDist
	}
	return d.CharLength > best.CharLength
}

func uniqueStartCandidates(diffs []DiffMatch) []DiffMatch {
	leftCount := make(map[int]int, len(diffs))
	rightCount := make(map[int]int, len(diffs))
	for _, d := range diffs {
		leftCount[d.Left.Start]++
		rightCount[d.Right.Start]++
	}
	var out []DiffMatch
	for _, d := range diffs {
		if leftCount[d.Left.Start] == 1 && rightCount[d.Right.Start] == 1 {
			out = append(out, d)
		}
	}
	return out
}

func allSameLeftStart(diffs []DiffMatch) bool {
	for _, d := range diffs[1:] {
		if d.Left.Start != diffs[0].Left.Start {
			return false
		}
	}
	return true
}

func allSameRightStart(diffs []DiffMatch) bool {
	for _, d := range diffs[1:] {
		if d.Right.Start != diffs[0].Right.Start {
			return false
		}
	}
	return true
}

func spread(diffs []DiffMatch) (mini, minj, maxi, maxj int) {
	mini, minj = diffs[0].Left.Start, diffs[0].Right.Start
	maxi, maxj = diffs[0].Left.End, diffs[0].Right.End
	for _, d := range diffs[1:] {
		if d.Left.Start < mini {
			mini = d.Left.Start
		}
		if d.Right.Start < minj {
			minj = d.Right.Start
		}
		if d.Left.End > maxi {
			maxi = d.Left.End
		}
		if d.Right.End > maxj {
			maxj = d.Right.End
		}
	}
	return
}

// probeSharedAnchor re-runs the search across the unshared side's
// non-overlapping sub-rectangles when every tied candidate shares the same
// start on the other side, accepting the first result that straddles the
// midpoint and isn't a bare newline.
func (wd *WordDiffer) probeSharedAnchor(diffs []DiffMatch, alo, ahi, blo, bhi int) (DiffMatch, bool) {
	midA, midB := (alo+ahi)/2, (blo+bhi)/2
	sameLeft := allSameLeftStart(diffs)
	for _, d := range diffs {
		var dm DiffMatch
		var ok bool
		if sameLeft {
			dm, ok = wd.bestMatch(alo, d.Left.Start, blo, d.Right.Start)
			if !ok {
				continue
			}
			if dm.Left.Start > midA || dm.Left.End < midA {
				continue
			}
		} else {
			dm, ok = wd.bestMatch(d.Left.End, ahi, d.Right.End, bhi)
			if !ok {
				continue
			}
			if dm.Right.Start > midB || dm.Right.End < midB {
				continue
			}
		}
		if isBareNewline(wd.bm, dm) {
			continue
		}
		return dm, true
	}
	return DiffMatch{}, false
}

func isBareNewline(bm *BlockMaker, dm DiffMatch) bool {
	return dm.Left.Len() == 1 && bm.Word(Left, dm.Left.Start) == NEWLINE
}

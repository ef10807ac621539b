package dyff

// BuildParts converts bm's line-level alignment into the flat sequence of
// matching/non-matching Parts that SplitBlock consumes, running the
// WordDiffer over every non-matching LineRange to find word-level alignment
// within it. This is the "block assembly from matches" step named in the
// specification's §4.4: sort accepted matches by left start (LineDiff and
// WordDiffer already emit in that order) and emit interleaved matching and
// non-matching Parts. Touching word matches within one non-matching range
// are already fused by WordDiffer.Diff; a line-level match and a word-level
// match that touch stay separate Parts, here and in SplitBlock.
func BuildParts(bm *BlockMaker) []Part {
	wd := NewWordDiffer(bm)
	var parts []Part
	for _, lr := range bm.LineDiff() {
		if lr.Match {
			parts = append(parts, NewPart(bm, true, lr.Left, lr.Right))
			continue
		}
		parts = append(parts, wordPartsForGap(bm, wd, lr.Left, lr.Right)...)
	}
	return parts
}

// wordPartsForGap runs the WordDiffer over one non-matching line-level range
// and emits Parts covering it fully: a non-matching Part for any uncovered
// span before each accepted match, the matching Part itself, and a trailing
// non-matching Part for anything left after the last match.
func wordPartsForGap(bm *BlockMaker, wd *WordDiffer, left, right Range) []Part {
	matches := wd.Diff(left, right)
	var out []Part
	doneL, doneR := left.Start, right.Start
	for _, m := range matches {
		if m.Left.Start > doneL || m.Right.Start > doneR {
			out = append(out, NewPart(bm, false, Range{doneL, m.Left.Start}, Range{doneR, m.Right.Start}))
		}
		out = append(out, NewPart(bm, true, m.Left, m.Right))
		doneL, doneR = m.Left.End, m.Right.End
	}
	if doneL < left.End || doneR < right.End {
		out = append(out, NewPart(bm, false, Range{doneL, left.End}, Range{doneR, right.End}))
	}
	return out
}

package dyff

// Part is a tagged span of words on both sides of a hunk: either a matching
// run (the same token sequence on both sides) or a non-matching run (one of
// which may be empty, denoting a pure insertion or deletion). Part never
// owns any bytes; it is only a pair of Ranges into its parent BlockMaker.
type Part struct {
	parent  *BlockMaker
	Matches bool
	Slices  [2]Range
}

// NewPart returns a Part over bm spanning left/right.
func NewPart(bm *BlockMaker, matches bool, left, right Range) Part {
	return Part{parent: bm, Matches: matches, Slices: [2]Range{left, right}}
}

// Get returns the Token slice for side.
func (p Part) Get(side Side) []Token {
	r := p.Slices[side]
	return p.parent.words[side][r.Start:r.End]
}

// Empty reports whether the Part spans no words on either side.
func (p Part) Empty() bool { return p.Slices[Left].Empty() && p.Slices[Right].Empty() }

// FirstLineno returns the displayed line number of the first word of side,
// or the line at the Part's anchor position if side is empty on this Part.
func (p Part) FirstLineno(side Side) int {
	bm := p.parent
	r := p.Slices[side]
	w := r.Start
	if r.Empty() {
		if w >= bm.NumWords(side) {
			w = bm.NumWords(side) - 1
		}
	}
	return bm.GetLineno(side, w)
}

// LastLineno returns the displayed line number of the last word of side.
func (p Part) LastLineno(side Side) int {
	bm := p.parent
	r := p.Slices[side]
	if r.Empty() {
		return p.FirstLineno(side)
	}
	return bm.GetLineno(side, r.End-1)
}

// StartsLine reports whether side's range begins exactly at a line start.
func (p Part) StartsLine(side Side) bool {
	return p.parent.IsLineBoundary(side, p.Slices[side].Start)
}

// EndsLine reports whether side's range ends exactly at a line boundary.
func (p Part) EndsLine(side Side) bool {
	return p.parent.IsLineBoundary(side, p.Slices[side].End)
}

// WholeLine reports whether the Part starts and ends a line on both sides.
func (p Part) WholeLine() bool {
	return p.StartsLine(Left) && p.EndsLine(Left) && p.StartsLine(Right) && p.EndsLine(Right)
}

// SingleLine reports whether side's first and last line numbers agree.
func (p Part) SingleLine(side Side) bool {
	return p.FirstLineno(side) == p.LastLineno(side)
}

// containsNewline reports whether side's range contains a NEWLINE token.
func (p Part) containsNewline(side Side) bool {
	for _, t := range p.Get(side) {
		if t == NEWLINE {
			return true
		}
	}
	return false
}

// Inlineable reports whether the Part can be rendered inline: single-line
// on both sides with no embedded newline token.
func (p Part) Inlineable() bool {
	return p.SingleLine(Left) && p.SingleLine(Right) &&
		!p.containsNewline(Left) && !p.containsNewline(Right)
}

// Partition splits p at the absolute word indices a (left) and b (right)
// into a head and tail Part, both carrying p's Matches flag.
func (p Part) Partition(a, b int) (head, tail Part) {
	head = Part{parent: p.parent, Matches: p.Matches, Slices: [2]Range{
		{p.Slices[Left].Start, a},
		{p.Slices[Right].Start, b},
	}}
	tail = Part{parent: p.parent, Matches: p.Matches, Slices: [2]Range{
		{a, p.Slices[Left].End},
		{b, p.Slices[Right].End},
	}}
	return head, tail
}

// PartitionFromStart splits p at offsets relative to each side's Start.
func (p Part) PartitionFromStart(leftOff, rightOff int) (head, tail Part) {
	return p.Partition(p.Slices[Left].Start+leftOff, p.Slices[Right].Start+rightOff)
}

// PartitionFromEnd splits p at offsets relative to each side's End.
func (p Part) PartitionFromEnd(leftOff, rightOff int) (head, tail Part) {
	return p.Partition(p.Slices[Left].End-leftOff, p.Slices[Right].End-rightOff)
}

// lineEndWord returns the end of the first line within r on side, bounded
// by r.End.
func lineEndWord(bm *BlockMaker, side Side, r Range) int {
	if r.Empty() {
		return r.Start
	}
	line := bm.LineOfWord(side, r.Start)
	end := bm.FirstWordOfLine(side, line+1)
	if end > r.End {
		end = r.End
	}
	return end
}

// lineStartWord returns the start of the last line within r on side,
// bounded by r.Start.
func lineStartWord(bm *BlockMaker, side Side, r Range) int {
	if r.Empty() {
		return r.Start
	}
	line := bm.LineOfWord(side, r.End-1)
	start := bm.FirstWordOfLine(side, line)
	if start < r.Start {
		start = r.Start
	}
	return start
}

func appendNonEmpty(parts ...Part) []Part {
	out := make([]Part, 0, len(parts))
	for _, p := range parts {
		if !p.Empty() {
			out = append(out, p)
		}
	}
	return out
}

// Split divides p into up to three Parts separating a head partial line, a
// run of full lines, and a tail partial line, per the rules in the
// specification. Whole-line parts and matching parts are returned
// unchanged: a matching run is already aligned and needs no further
// division for rendering purposes.
func (p Part) Split() []Part {
	if p.WholeLine() || p.Matches {
		return []Part{p}
	}

	bm := p.parent
	leftR, rightR := p.Slices[Left], p.Slices[Right]
	splitableLeft := leftR.Empty() || p.FirstLineno(Left) != p.LastLineno(Left)
	splitableRight := rightR.Empty() || p.FirstLineno(Right) != p.LastLineno(Right)

	switch {
	case splitableLeft && splitableRight:
		headEndL, headEndR := lineEndWord(bm, Left, leftR), lineEndWord(bm, Right, rightR)
		tailStartL, tailStartR := lineStartWord(bm, Left, leftR), lineStartWord(bm, Right, rightR)
		if headEndL > tailStartL || headEndR > tailStartR {
			return []Part{p}
		}
		head, rest := p.Partition(headEndL, headEndR)
		mid, tail := rest.Partition(tailStartL, tailStartR)
		return appendNonEmpty(head, mid, tail)

	case splitableLeft:
		return splitOneSided(bm, p, Left, Right)

	case splitableRight:
		return splitOneSided(bm, p, Right, Left)

	default:
		return []Part{p}
	}
}

// splitOneSided handles Split when only splitSide spans multiple lines (or
// is empty): the whole line on fixedSide is extended to cover the middle
// segment, matching the specification's "extend the non-splitable side to
// its whole slice before splitting" rule.
func splitOneSided(bm *BlockMaker, p Part, splitSide, fixedSide Side) []Part {
	r := p.Slices[splitSide]
	headEnd := lineEndWord(bm, splitSide, r)
	tailStart := lineStartWord(bm, splitSide, r)
	if headEnd >= tailStart {
		return []Part{p}
	}
	fixedR := p.Slices[fixedSide]

	head := Part{parent: bm, Matches: p.Matches}
	head.Slices[splitSide] = Range{r.Start, headEnd}
	head.Slices[fixedSide] = Range{fixedR.Start, fixedR.Start}

	mid := Part{parent: bm, Matches: p.Matches}
	mid.Slices[splitSide] = Range{headEnd, tailStart}
	mid.Slices[fixedSide] = fixedR

	tail := Part{parent: bm, Matches: p.Matches}
	tail.Slices[splitSide] = Range{tailStart, r.End}
	tail.Slices[fixedSide] = Range{fixedR.End, fixedR.End}

	return appendNonEmpty(head, mid, tail)
}

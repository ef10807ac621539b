package dyff

import (
	"bufio"
	"io"
)

// Renderer emits line-numbered, styled output from a sequence of Blocks,
// per the specification's §4.7. It is stateless beyond the Style it holds;
// every render call is independent.
type Renderer struct {
	Style Style
}

// NewRenderer returns a Renderer using the given Style.
func NewRenderer(style Style) *Renderer {
	return &Renderer{Style: style}
}

// Render writes blocks (all belonging to bm) to w.
func (rr *Renderer) Render(w io.Writer, bm *BlockMaker, blocks []Block) error {
	bw := bufio.NewWriter(w)
	for _, b := range blocks {
		if err := rr.renderBlock(bw, bm, b); err != nil {
			return err
		}
		if err := bw.Flush(); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func blockAllMatching(b Block) bool {
	for _, p := range b.Parts {
		if p.Empty() {
			continue
		}
		if !p.Matches {
			return false
		}
	}
	return true
}

func blockAllInlineable(b Block) bool {
	for _, p := range b.Parts {
		if p.Empty() {
			continue
		}
		if !p.Inlineable() {
			return false
		}
	}
	return true
}

func (rr *Renderer) renderBlock(w *bufio.Writer, bm *BlockMaker, b Block) error {
	if blockAllMatching(b) {
		return rr.renderContext(w, bm, b)
	}
	if rr.Style.Inline && (b.Score() >= Cutoff || blockAllInlineable(b)) {
		return rr.renderInline(w, bm, b)
	}
	return rr.renderSideBySide(w, bm, b)
}

// writeLinePrefix writes the line-number gutter (or nothing, if line
// numbers are disabled) ahead of a rendered line.
func (rr *Renderer) writeLinePrefix(w *bufio.Writer, left, right int) {
	if !rr.Style.LineNumbers {
		return
	}
	io.WriteString(w, rr.Style.FormatLineno(LineNoPair{left, right}, "", "", ""))
}

func (rr *Renderer) writeSign(w *bufio.Writer, idx int) {
	if !rr.Style.Signs {
		return
	}
	io.WriteString(w, rr.Style.Sign[idx])
}

// writeWord writes the bytes of word i on side, overlaying the trailing_ws
// style (per the specification's §4.7) when the word is whitespace that
// immediately precedes a newline; baseStyle is restored afterwards so the
// surrounding run's style keeps flowing.
func (rr *Renderer) writeWord(w *bufio.Writer, bm *BlockMaker, side Side, i int, baseStyle string) {
	tok := bm.Word(side, i)
	if IsWhitespace(tok) && i+1 < bm.NumWords(side) && bm.Word(side, i+1) == NEWLINE {
		io.WriteString(w, rr.Style.DiffTrailingWS)
		w.Write(bm.WordBytes(side, i))
		io.WriteString(w, baseStyle)
		return
	}
	w.Write(bm.WordBytes(side, i))
}

// renderContext renders an entirely-matching Block as single-column
// context: one line number pair per source line, signs suppressed to the
// context sign, content written once (the two sides are identical).
func (rr *Renderer) renderContext(w *bufio.Writer, bm *BlockMaker, b Block) error {
	atLineStart := true
	for _, p := range b.Parts {
		if p.Empty() {
			continue
		}
		r := p.Slices[Left]
		right := p.Slices[Right]
		for i := 0; i < r.Len(); i++ {
			if atLineStart {
				rr.writeLinePrefix(w, bm.GetLineno(Left, r.Start+i), bm.GetLineno(Right, right.Start+i))
				rr.writeSign(w, 2)
				io.WriteString(w, rr.Style.Context)
				atLineStart = false
			}
			tok := bm.Word(Left, r.Start+i)
			rr.writeWord(w, bm, Left, r.Start+i, rr.Style.Context)
			if tok == NEWLINE {
				io.WriteString(w, rr.Style.Reset)
				atLineStart = true
			}
		}
	}
	return nil
}

// renderInline walks parts once, writing deletions then insertions in
// sequence on the same visual line for non-matching parts, and only the
// left side (advancing both line numbers) for matching parts.
func (rr *Renderer) renderInline(w *bufio.Writer, bm *BlockMaker, b Block) error {
	atLineStart := true
	leftLine, rightLine := 0, 0
	haveLine := false
	for _, p := range b.Parts {
		if p.Empty() {
			continue
		}
		if !haveLine {
			leftLine = p.FirstLineno(Left)
			rightLine = p.FirstLineno(Right)
			haveLine = true
		}
		if atLineStart {
			rr.writeLinePrefix(w, leftLine, rightLine)
			atLineStart = false
		}
		if p.Matches {
			rr.writeSide(w, bm, Left, p.Slices[Left], rr.Style.DiffMatchingInline, &atLineStart, &leftLine, &rightLine, true)
			continue
		}
		if !p.Slices[Left].Empty() {
			rr.writeSide(w, bm, Left, p.Slices[Left], rr.Style.Diff[0], &atLineStart, &leftLine, &rightLine, false)
		}
		if !p.Slices[Right].Empty() {
			rr.writeSide(w, bm, Right, p.Slices[Right], rr.Style.Diff[1], &atLineStart, &leftLine, &rightLine, false)
		}
	}
	return nil
}

// writeSide writes r's tokens in style, advancing the corresponding line
// counter(s) on NEWLINE. When bothLines is true (a matching part rendered
// once), both leftLine and rightLine advance together.
func (rr *Renderer) writeSide(w *bufio.Writer, bm *BlockMaker, side Side, r Range, style string, atLineStart *bool, leftLine, rightLine *int, bothLines bool) {
	if r.Empty() {
		return
	}
	io.WriteString(w, style)
	for i := r.Start; i < r.End; i++ {
		rr.writeWord(w, bm, side, i, style)
		if bm.Word(side, i) == NEWLINE {
			io.WriteString(w, rr.Style.Reset)
			*atLineStart = true
			switch {
			case bothLines:
				*leftLine++
				*rightLine++
			case side == Left:
				*leftLine++
			default:
				*rightLine++
			}
			if i+1 < r.End {
				rr.writeLinePrefix(w, *leftLine, *rightLine)
				io.WriteString(w, style)
			}
		}
	}
	io.WriteString(w, rr.Style.Reset)
}

// renderSideBySide renders a mixed Block by looping over sides: for each
// side it writes every part's content on that side, skipping parts empty
// on that side, and marking where an insertion/deletion boundary falls.
func (rr *Renderer) renderSideBySide(w *bufio.Writer, bm *BlockMaker, b Block) error {
	// An insertion marker is only drawn when the block carries some real
	// change (score > 0); a zero-score block is already a pure
	// insertion/deletion and needs no extra boundary cue.
	markEligible := b.Score() > 0
	for _, side := range [2]Side{Left, Right} {
		atLineStart := true
		marker := false
		for _, p := range b.Parts {
			r := p.Slices[side]
			if r.Empty() {
				if !p.Empty() && markEligible {
					marker = true
				}
				continue
			}
			style := rr.Style.DiffNonMatching[int(side)]
			if p.Matches {
				style = rr.Style.DiffMatching[int(side)]
			}
			for i := r.Start; i < r.End; i++ {
				if atLineStart {
					other := LineNoPair{0, 0}
					other[side] = bm.GetLineno(side, i)
					rr.writeLinePrefix(w, other[Left], other[Right])
					rr.writeSign(w, int(side))
					io.WriteString(w, style)
					atLineStart = false
				}
				if marker {
					rr.writeInsertionMarker(w, bm, side, i, style)
					marker = false
				} else {
					rr.writeWord(w, bm, side, i, style)
				}
				if bm.Word(side, i) == NEWLINE {
					io.WriteString(w, rr.Style.Reset)
					atLineStart = true
					marker = false
				}
			}
		}
	}
	return nil
}

// writeInsertionMarker renders the first word following a part that was
// skipped because it was empty on this side: one byte in the insert style,
// then the style is restored and the remainder of the word is written
// normally, per the specification's side-by-side insertion-marker rule.
func (rr *Renderer) writeInsertionMarker(w *bufio.Writer, bm *BlockMaker, side Side, i int, style string) {
	word := bm.WordBytes(side, i)
	if len(word) <= 1 {
		io.WriteString(w, rr.Style.DiffInsert[side])
		w.Write(word)
		io.WriteString(w, style)
		return
	}
	io.WriteString(w, rr.Style.DiffInsert[side])
	w.Write(word[:1])
	io.WriteString(w, style)
	w.Write(word[1:])
}

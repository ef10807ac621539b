package dyff

// Side identifies which half of a diff a value belongs to: 0 is the
// original/left text, 1 is the modified/right text.
type Side int

// The two sides of a diff.
const (
	Left  Side = 0
	Right Side = 1
)

// Other returns the opposite Side.
func (s Side) Other() Side { return 1 - s }

// HunkBuffer is a pair of raw line sequences accumulated by the outer
// collaborator (the line-level state machine described in the
// specification's "external collaborator" section) as it reads a patch
// stream. It is filled once per hunk and then handed to NewBlockMaker,
// which is the only consumer of it; HunkBuffer itself has no other
// behaviour.
type HunkBuffer struct {
	Lines    [2][][]byte // raw line content, newline included except possibly the final line
	LineBase [2]int      // 0-based-to-1-based-style first line number of each side
}

// Reset clears the buffer for reuse across hunks.
func (h *HunkBuffer) Reset() {
	h.Lines[0] = h.Lines[0][:0]
	h.Lines[1] = h.Lines[1][:0]
	h.LineBase[0] = 0
	h.LineBase[1] = 0
}

// AppendLine appends a raw line (including its trailing newline, if any) to
// the given side.
func (h *HunkBuffer) AppendLine(side Side, line []byte) {
	h.Lines[side] = append(h.Lines[side], line)
}

// StripLastNewline removes a trailing newline byte from the most recently
// appended line on the given side, implementing the "\ No newline at end of
// file" marker's effect (specification §6).
func (h *HunkBuffer) StripLastNewline(side Side) {
	lines := h.Lines[side]
	if n := len(lines); n > 0 {
		if line := lines[n-1]; len(line) > 0 && line[len(line)-1] == '\n' {
			lines[n-1] = line[:len(line)-1]
		}
	}
}

// Range is a half-open span of word indices [Start, End) into a
// BlockMaker's per-side word vector. A zero-width Range (Start == End)
// denotes an empty side, used for pure insertions/deletions and shift
// anchors.
type Range struct{ Start, End int }

// Len returns the number of words spanned by the Range.
func (r Range) Len() int { return r.End - r.Start }

// Empty reports whether the Range spans no words.
func (r Range) Empty() bool { return r.Start >= r.End }

// BlockMaker materialises a HunkBuffer into per-side word vectors and the
// index structures that let Part/Block/Renderer translate word indices back
// into line numbers and bytes. Its lifetime bounds every Part/Block derived
// from it: those types hold only indices into the slices here, never owning
// copies, following the arena-of-indices pattern used throughout this
// codebase's scanio package.
type BlockMaker struct {
	tok *Tokeniser

	words      [2][]Token   // concatenation of every word's Token id, in order
	wordBytes  [2][][]byte  // word index -> raw bytes (aliases HunkBuffer lines)
	wordToLine [2][]int     // word index -> 0-based line index
	lineToWord [2][]int     // line index -> index of its first word; sentinel at len(lines)
	lineTokens [2][]Token   // line index -> Token id of the whole raw line (for LineDiffer)
	lineBase   [2]int       // LineBase carried over from the HunkBuffer
	lineBytes  [2][][]byte  // line index -> raw line bytes
}

// NewBlockMaker tokenises hunk using tok, populating all per-side indices.
// The returned BlockMaker aliases the byte slices in hunk; hunk must not be
// mutated or reused while the BlockMaker (or any Part/Block derived from it)
// is alive.
func NewBlockMaker(tok *Tokeniser, hunk *HunkBuffer) *BlockMaker {
	bm := &BlockMaker{tok: tok}
	for side := Left; side <= Right; side++ {
		lines := hunk.Lines[side]
		bm.lineBase[side] = hunk.LineBase[side]
		bm.lineBytes[side] = lines
		bm.lineToWord[side] = make([]int, 0, len(lines)+1)
		bm.lineTokens[side] = make([]Token, 0, len(lines))
		bm.wordToLine[side] = make([]int, 0, 4*len(lines))
		bm.words[side] = make([]Token, 0, 4*len(lines))
		bm.wordBytes[side] = make([][]byte, 0, 4*len(lines))

		for li, line := range lines {
			bm.lineToWord[side] = append(bm.lineToWord[side], len(bm.words[side]))
			bm.lineTokens[side] = append(bm.lineTokens[side], tok.Map(line))
			for _, word := range SplitWords(line) {
				bm.words[side] = append(bm.words[side], tok.Map(word))
				bm.wordBytes[side] = append(bm.wordBytes[side], word)
				bm.wordToLine[side] = append(bm.wordToLine[side], li)
			}
		}
		bm.lineToWord[side] = append(bm.lineToWord[side], len(bm.words[side]))
	}
	return bm
}

// NumWords returns the number of words on the given side.
func (bm *BlockMaker) NumWords(side Side) int { return len(bm.words[side]) }

// NumLines returns the number of lines on the given side.
func (bm *BlockMaker) NumLines(side Side) int { return len(bm.lineBytes[side]) }

// Word returns the Token id of the w-th word on side.
func (bm *BlockMaker) Word(side Side, w int) Token { return bm.words[side][w] }

// WordBytes returns the raw bytes of the w-th word on side.
func (bm *BlockMaker) WordBytes(side Side, w int) []byte { return bm.wordBytes[side][w] }

// LineToken returns the Token id assigned to the whole raw bytes of line l
// on side, used by LineDiffer to run LCS over entire lines.
func (bm *BlockMaker) LineToken(side Side, l int) Token { return bm.lineTokens[side][l] }

// LineBytes returns the raw bytes of line l on side.
func (bm *BlockMaker) LineBytes(side Side, l int) []byte { return bm.lineBytes[side][l] }

// LineOfWord returns the 0-based line index containing word w on side.
func (bm *BlockMaker) LineOfWord(side Side, w int) int { return bm.wordToLine[side][w] }

// FirstWordOfLine returns the index of the first word on line l of side.
// l may equal NumLines(side), in which case the sentinel NumWords(side) is
// returned.
func (bm *BlockMaker) FirstWordOfLine(side Side, l int) int { return bm.lineToWord[side][l] }

// GetLineno returns the displayed line number of word w on side: its
// 0-based line index plus the side's LineBase.
func (bm *BlockMaker) GetLineno(side Side, w int) int {
	return bm.wordToLine[side][w] + bm.lineBase[side]
}

// LineBase returns the first displayed line number of side.
func (bm *BlockMaker) LineBase(side Side) int { return bm.lineBase[side] }

// IsLineBoundary reports whether word index w sits exactly at the start of
// a line on side: either it is the very first word, the sentinel one past
// the last word, or the word preceding it belongs to an earlier line.
func (bm *BlockMaker) IsLineBoundary(side Side, w int) bool {
	if w <= 0 || w >= bm.NumWords(side) {
		return true
	}
	return bm.LineOfWord(side, w) != bm.LineOfWord(side, w-1)
}

// Tokeniser returns the BlockMaker's underlying Tokeniser.
func (bm *BlockMaker) Tokeniser() *Tokeniser { return bm.tok }

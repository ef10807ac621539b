// Package difffmt implements the "external collaborator" contracted by the
// core package's specification: a line-level state machine that classifies
// an input diff stream, accumulates hunk content into a dyff.HunkBuffer, and
// invokes the renderer once a hunk is complete. It never looks inside a
// hunk's content; that is entirely the core's job.
package difffmt

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"log"
	"regexp"
	"strconv"

	sanitizedanchorname "github.com/shurcooL/sanitized_anchor_name"

	"github.com/jcorbin/godyff/dyff"
	"github.com/jcorbin/godyff/internal/scanio"
)

type format int

const (
	formatNone format = iota
	formatUnified
	formatCombined
	formatTraditional
)

var (
	reUnifiedHeader     = regexp.MustCompile(`^@@ -(\d+)(?:,\d+)? \+(\d+)(?:,\d+)? @@`)
	reCombinedHeader    = regexp.MustCompile(`^@@@ -(\d+)(?:,\d+)? -\d+(?:,\d+)? \+(\d+)(?:,\d+)? @@@`)
	reTraditionalHeader = regexp.MustCompile(`^(\d+)(?:,\d+)?[acd](\d+)(?:,\d+)?$`)
	reFileHeader        = regexp.MustCompile(`^diff( -r| --recursive| --git| --cc)? `)
	reOldFile           = regexp.MustCompile(`^--- `)
	reNewFile           = regexp.MustCompile(`^\+\+\+ `)
	reIndex             = regexp.MustCompile(`^index `)
	reRename            = regexp.MustCompile(`^rename (from|to) `)
	reCommit            = regexp.MustCompile(`^commit [0-9a-fA-F]+`)
	reNoNewline         = regexp.MustCompile(`^\\ No newline at end of file`)
)

// ErrUnicodeInNumeric wraps a strconv failure parsing a header's captured
// line-number field, per the specification's error handling design.
type ErrUnicodeInNumeric struct {
	Field string
	Err   error
}

func (e *ErrUnicodeInNumeric) Error() string {
	return fmt.Sprintf("difffmt: invalid numeric field %q: %v", e.Field, e.Err)
}

// Unwrap exposes the underlying strconv.NumError for errors.As/Is.
func (e *ErrUnicodeInNumeric) Unwrap() error { return e.Err }

func parseLineNo(field []byte) (int, error) {
	n, err := strconv.Atoi(string(field))
	if err != nil {
		return 0, &ErrUnicodeInNumeric{Field: string(field), Err: err}
	}
	return n, nil
}

// Renderer is the subset of *dyff.Renderer's behaviour the Parser drives.
type Renderer interface {
	Render(w io.Writer, bm *dyff.BlockMaker, blocks []dyff.Block) error
}

// Style is the subset of dyff.Style the Parser needs to style a hunk header
// line, kept separate from Renderer so a Parser can be built before a full
// Style is resolved (e.g. while parsing --<style-name> overrides).
type Style struct {
	DiffHeader string
	Reset      string
}

// Parser is the line-level state machine of the specification's "outer
// framing" section: built as a bufio.Scanner driver in the style of the
// teacher's scandown.BlockStack.Scan, it classifies every input line,
// accumulates hunk content into a dyff.HunkBuffer, and invokes Renderer
// whenever a hunk ends.
type Parser struct {
	Out      io.Writer
	Tok      *dyff.Tokeniser
	Renderer Renderer
	Style    Style

	// Labels holds --label overrides for the old (index dyff.Left) and new
	// (index dyff.Right) file header lines; empty means "use the path the
	// diff stream itself supplied".
	Labels [2]string

	// Debug, when set, logs every line that matches no recognised pattern
	// (passed through unchanged regardless) instead of staying silent.
	Debug bool

	format   format
	inHunk   bool
	hunk     dyff.HunkBuffer
	lastSide dyff.Side
	sawInput bool

	// arena holds every content line appended to hunk since the last
	// flushHunk, in the arena-of-indices style used throughout this
	// codebase: BlockMaker (and everything built on it) only ever
	// borrows slices out of arena, never an owning copy.
	arena scanio.ByteArena
}

// NewParser returns a Parser writing rendered output to out.
func NewParser(out io.Writer, tok *dyff.Tokeniser, renderer Renderer, style Style) *Parser {
	return &Parser{Out: out, Tok: tok, Renderer: renderer, Style: style}
}

// SawInput reports whether any line was read, used by cmd/godyff to choose
// between exit codes 0 (no input) and 1 (input processed).
func (p *Parser) SawInput() bool { return p.sawInput }

// Run reads r line by line until EOF, classifying and dispatching each line,
// then flushes any trailing open hunk.
func (p *Parser) Run(r io.Reader) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for sc.Scan() {
		p.sawInput = true
		line := append(append([]byte(nil), sc.Bytes()...), '\n')
		if err := p.feed(line); err != nil {
			return err
		}
	}
	if err := scanio.ScanError(sc); err != nil {
		return err
	}
	return p.flushHunk()
}

func (p *Parser) feed(line []byte) error {
	text := bytes.TrimRight(line, "\n")

	if reNoNewline.Match(text) {
		p.hunk.StripLastNewline(p.lastSide)
		return nil
	}

	if m := reUnifiedHeader.FindSubmatch(text); m != nil {
		return p.startHunk(formatUnified, m[1], m[2], line)
	}
	if m := reCombinedHeader.FindSubmatch(text); m != nil {
		return p.startHunk(formatCombined, m[1], m[2], line)
	}
	if m := reTraditionalHeader.FindSubmatch(text); m != nil {
		return p.startHunk(formatTraditional, m[1], m[2], line)
	}

	if p.inHunk {
		if p.appendsToHunk(text) {
			return p.appendContentLine(line, text)
		}
		if err := p.flushHunk(); err != nil {
			return err
		}
	}

	switch {
	case reOldFile.Match(text):
		return p.writeFileHeader("--- ", p.Labels[dyff.Left], line)
	case reNewFile.Match(text):
		return p.writeFileHeader("+++ ", p.Labels[dyff.Right], line)
	case reFileHeader.Match(text), reIndex.Match(text), reRename.Match(text), reCommit.Match(text):
		_, err := p.Out.Write(line)
		return err
	default:
		// MalformedHeader: the pretty-printer is lenient, pass through
		// unchanged rather than erroring.
		if p.Debug {
			log.Printf("difffmt: unrecognised line: %q", text)
		}
		_, err := p.Out.Write(line)
		return err
	}
}

// writeFileHeader writes an old/new file header line, substituting label in
// place of the diff-supplied path when one was given on the CLI (--label).
// label is passed through sanitized_anchor_name so that arbitrary
// punctuation in a user-supplied label can't produce a header line this
// parser (or a downstream one re-reading godyff's own output) would fail to
// recognise.
func (p *Parser) writeFileHeader(prefix, label string, line []byte) error {
	if label == "" {
		_, err := p.Out.Write(line)
		return err
	}
	_, err := fmt.Fprintf(p.Out, "%s%s\n", prefix, sanitizedanchorname.Create(label))
	return err
}

func (p *Parser) startHunk(f format, leftField, rightField, headerLine []byte) error {
	if err := p.flushHunk(); err != nil {
		return err
	}
	left, err := parseLineNo(leftField)
	if err != nil {
		return err
	}
	right, err := parseLineNo(rightField)
	if err != nil {
		return err
	}
	p.format = f
	p.inHunk = true
	p.hunk.LineBase[dyff.Left] = left
	p.hunk.LineBase[dyff.Right] = right
	io.WriteString(p.Out, p.Style.DiffHeader)
	p.Out.Write(headerLine[:len(headerLine)-1])
	io.WriteString(p.Out, p.Style.Reset)
	p.Out.Write([]byte{'\n'})
	return nil
}

// appendsToHunk reports whether text is a recognised content line for the
// current hunk format, rather than the start of the next file's headers.
func (p *Parser) appendsToHunk(text []byte) bool {
	switch p.format {
	case formatUnified:
		if len(text) == 0 {
			return true
		}
		switch text[0] {
		case ' ', '-', '+':
			return true
		}
		return false
	case formatCombined:
		if len(text) < 2 {
			return true
		}
		for _, c := range text[:2] {
			switch c {
			case ' ', '-', '+':
			default:
				return false
			}
		}
		return true
	case formatTraditional:
		if bytes.Equal(text, []byte("---")) {
			return true
		}
		return len(text) >= 2 && (text[0] == '<' || text[0] == '>') && text[1] == ' '
	}
	return false
}

// storeLine copies content into the Parser's per-hunk byte arena and
// returns a token view over it, so that the BlockMaker/Part/Block chain
// built from the resulting HunkBuffer only ever borrows arena-owned bytes,
// never a slice into the scanner's own reused read buffer.
func (p *Parser) storeLine(content []byte) []byte {
	p.arena.Write(content)
	return p.arena.Take().Bytes()
}

func (p *Parser) appendContentLine(line, text []byte) error {
	switch p.format {
	case formatUnified:
		content := line
		if len(text) > 0 {
			content = line[1:]
		}
		content = p.storeLine(content)
		switch {
		case len(text) > 0 && text[0] == '-':
			p.hunk.AppendLine(dyff.Left, content)
			p.lastSide = dyff.Left
		case len(text) > 0 && text[0] == '+':
			p.hunk.AppendLine(dyff.Right, content)
			p.lastSide = dyff.Right
		default:
			p.hunk.AppendLine(dyff.Left, content)
			p.hunk.AppendLine(dyff.Right, content)
			p.lastSide = dyff.Right
		}

	case formatCombined:
		if len(text) < 2 {
			content := p.storeLine(line)
			p.hunk.AppendLine(dyff.Left, content)
			p.hunk.AppendLine(dyff.Right, content)
			p.lastSide = dyff.Right
			return nil
		}
		content := p.storeLine(line[2:])
		hasMinus := text[0] == '-' || text[1] == '-'
		hasPlus := text[0] == '+' || text[1] == '+'
		switch {
		case hasMinus:
			p.hunk.AppendLine(dyff.Left, content)
			p.lastSide = dyff.Left
		case hasPlus:
			p.hunk.AppendLine(dyff.Right, content)
			p.lastSide = dyff.Right
		default:
			p.hunk.AppendLine(dyff.Left, content)
			p.hunk.AppendLine(dyff.Right, content)
			p.lastSide = dyff.Right
		}

	case formatTraditional:
		if bytes.Equal(text, []byte("---")) {
			return nil
		}
		content := line
		if len(line) >= 2 {
			content = line[2:]
		}
		content = p.storeLine(content)
		if text[0] == '<' {
			p.hunk.AppendLine(dyff.Left, content)
			p.lastSide = dyff.Left
		} else {
			p.hunk.AppendLine(dyff.Right, content)
			p.lastSide = dyff.Right
		}
	}
	return nil
}

func (p *Parser) flushHunk() error {
	if !p.inHunk {
		return nil
	}
	p.inHunk = false
	defer p.hunk.Reset()
	defer p.arena.Reset()
	if len(p.hunk.Lines[dyff.Left]) == 0 && len(p.hunk.Lines[dyff.Right]) == 0 {
		return nil
	}
	bm := dyff.NewBlockMaker(p.Tok, &p.hunk)
	parts := dyff.BuildParts(bm)
	blocks := dyff.SplitBlock(bm, parts)
	return p.Renderer.Render(p.Out, bm, blocks)
}

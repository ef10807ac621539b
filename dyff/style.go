package dyff

import "fmt"

// Style is the flat palette of named ANSI SGR byte strings used by the
// Renderer, together with the handful of boolean rendering switches the
// specification's CLI surface exposes. Every field is independently
// overridable; there is no runtime evaluation of style strings beyond
// literal substitution.
type Style struct {
	LineNumbers bool
	Signs       bool
	ShowBoth    bool
	Inline      bool

	Reset string

	Header     string
	Context    string
	DiffHeader string

	Diff      [2]string // left (deletion), right (insertion)
	Sign      [3]string // left sign, right sign, context sign

	Lineno        string
	LinenoBar     string
	LinenoOurBar  string
	LinenoTheirBar string
	LinenoMergeBar string

	Filename       [3]string
	FilenameHeader [3]string
	FilenameSign   [3]string

	DiffMatching       [2]string
	DiffMatchingInline string
	DiffNonMatching    [2]string
	DiffInsert         [2]string
	DiffContext        string
	DiffTrailingWS     string
}

// DefaultStyle mirrors the named constants of the program this renderer is
// modelled on: a 256-colour dark palette with a distinct background tint
// per side so that deletions and insertions stay visually separable even
// without relying on the leading sign column.
var DefaultStyle = Style{
	LineNumbers: true,

	Reset:      "\x1b[0m",
	Header:     "\x1b[0;36m",
	Context:    "\x1b[0;1;33;48;5;236m",
	DiffHeader: "\x1b[1m",

	Diff: [2]string{"\x1b[0;31m", "\x1b[0;32m"},
	Sign: [3]string{"\x1b[0;31m-", "\x1b[0;32m+", " "},

	Lineno:         "\x1b[0;38;5;242m",
	LinenoBar:      "\x1b[0;38;5;242m▏",
	LinenoOurBar:   "\x1b[0;38;5;187m(",
	LinenoTheirBar: "\x1b[0;38;5;117m)",
	LinenoMergeBar: "\x1b[0;38;5;13;1m|",

	Filename:       [3]string{"\x1b[0;31m", "\x1b[0;32m", ""},
	FilenameHeader: [3]string{"\x1b[0;31m\x1b[1m\x1b[48;5;238m", "\x1b[0;32m\x1b[1m\x1b[48;5;238m", ""},
	FilenameSign:   [3]string{"\x1b[0;31m\x1b[48;5;238m\x1b[7m---\x1b[27m ", "\x1b[0;32m\x1b[48;5;238m\x1b[7m+++\x1b[27m ", "\x1b[48;5;238m\x1b[7m###\x1b[27m "},

	DiffMatching:       [2]string{"\x1b[0;38;2;220;190;210;48;2;35;20;20m", "\x1b[0;38;2;190;220;210;48;2;20;35;20m"},
	DiffMatchingInline: "\x1b[0;38;5;252m",
	DiffNonMatching:    [2]string{"\x1b[0;31m\x1b[1;48;2;80;30;30m", "\x1b[0;32m\x1b[1;48;2;25;80;25m"},
	DiffInsert:         [2]string{"\x1b[4:3:58:5:10m", "\x1b[4:3;58;5;9m"},
	DiffContext:        "\x1b[0;38;5;242m",
	DiffTrailingWS:      "\x1b[2;7m",
}

// WithOverride returns a copy of s with the named field replaced by value,
// supporting the CLI's `--<style-name>=<ANSI string>` flag. Names are
// hyphenated lower-case versions of the Style field groups (e.g.
// "diff-delete"); an unrecognised name
// is left for the caller to report.
func (s Style) WithOverride(name, value string) (Style, bool) {
	switch name {
	case "header":
		s.Header = value
	case "context":
		s.Context = value
	case "diff-header":
		s.DiffHeader = value
	case "diff-delete":
		s.Diff[0] = value
	case "diff-insert":
		s.Diff[1] = value
	case "lineno":
		s.Lineno = value
	case "lineno-bar":
		s.LinenoBar = value
	case "diff-matching-delete":
		s.DiffMatching[0] = value
	case "diff-matching-insert":
		s.DiffMatching[1] = value
	case "diff-matching-inline":
		s.DiffMatchingInline = value
	case "diff-non-matching-delete":
		s.DiffNonMatching[0] = value
	case "diff-non-matching-insert":
		s.DiffNonMatching[1] = value
	case "diff-context":
		s.DiffContext = value
	case "diff-trailing-ws":
		s.DiffTrailingWS = value
	default:
		return s, false
	}
	return s, true
}

// LineNoPair is the [left, right] displayed line-number pair passed to
// FormatLineno; a zero value on either side means "suppress".
type LineNoPair [2]int

// FormatLineno renders a line-number pair using left/right/bar style
// overrides (empty string selects the style's default), matching the
// "(L, R)" gutter format used throughout the renderer.
func (s Style) FormatLineno(nums LineNoPair, leftStyle, rightStyle, barStyle string) string {
	if leftStyle == "" {
		leftStyle = s.Diff[0]
	}
	if rightStyle == "" {
		rightStyle = s.Diff[1]
	}
	if barStyle == "" {
		barStyle = s.LinenoBar
	}
	left, right := "", ""
	if nums[0] != 0 {
		left = fmt.Sprintf("%d", nums[0])
	}
	if nums[1] != 0 {
		right = fmt.Sprintf("%d", nums[1])
	}
	return fmt.Sprintf("%s%-4s%s%s%-4s%s ", leftStyle, left, barStyle, rightStyle, right, barStyle)
}

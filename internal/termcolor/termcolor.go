// Package termcolor decides whether stdout is a colour-capable terminal for
// godyff's --color=auto and --inline=auto CLI flags, replacing a hand-rolled
// isatty check with the same termenv colour-profile detection the
// cogentcore-core example pulls in for its own terminal output.
package termcolor

import (
	"io"

	"github.com/muesli/termenv"
)

// Mode is one of the three settings accepted by --color/--inline.
type Mode string

// The three Mode values, matching spec.md §6's CLI surface literally.
const (
	Never  Mode = "never"
	Auto   Mode = "auto"
	Always Mode = "always"
)

// Resolve decides whether colour/inline output should be enabled for mode,
// given the writer output is destined for. Auto enables it only when w is a
// terminal with a usable colour profile.
func Resolve(mode Mode, w io.Writer) bool {
	switch mode {
	case Always:
		return true
	case Never:
		return false
	default:
		return IsColorTerminal(w)
	}
}

// IsColorTerminal reports whether w appears to be a colour-capable terminal,
// using termenv's environment- and output-based profile detection. termenv
// probes w's file descriptor when available (e.g. *os.File) and otherwise
// treats it as not a terminal.
func IsColorTerminal(w io.Writer) bool {
	out := termenv.NewOutput(w)
	return out.Profile != termenv.Ascii
}

// Package dyffui adapts the teacher's internal/socui request/response
// framing for godyff's single operation. Where socui.Request/Response drove
// a tree of named subcommands scanned out of free-form request text,
// godyff has exactly one operation (render a diff stream), so the driver
// collapses to a single Driver and a thin Serve wrapper kept only for
// naming continuity with the teacher's ServeUser convention.
package dyffui

import (
	"bytes"
	"html"
	"io"
	"regexp"
	"text/template"

	"github.com/russross/blackfriday"
)

// Driver is godyff's one operation: render whatever it was configured to
// render to w.
type Driver interface {
	Serve(w io.Writer) error
}

// DriverFunc adapts a plain function to Driver.
type DriverFunc func(w io.Writer) error

// Serve calls the receiver function pointer.
func (f DriverFunc) Serve(w io.Writer) error { return f(w) }

// Serve runs driver against w. This is deliberately thin: the teacher's
// socui.Request.Serve scanned request text into a command tree before
// dispatch; godyff has nothing to scan, so dispatch is direct.
func Serve(w io.Writer, driver Driver) error {
	return driver.Serve(w)
}

// helpTemplate is the Markdown-lite help screen source, executed as a
// template for parity with the teacher's cmd/soc/ui.go textServer (godyff's
// help has no template data, unlike the teacher's command-list help).
const helpTemplate = `# godyff

Usage: godyff [options] [file1 file2]

Re-renders a unified, combined, or traditional diff with ANSI colour, line
numbers, and intra-line word highlighting.

## Options

- --color={never,auto,always}
- --inline={never,auto,always}
- -N, --no-line-numbers
- -s, --signs
- --exact
- --filter <cmd>
- --label <L> (repeatable)
- --<style-name>=<ANSI string>
`

var reTag = regexp.MustCompile(`<[^>]*>`)

// Help renders the help screen to w as plain text: the Markdown-lite
// source above, executed as a template and then run through blackfriday's
// Markdown-to-HTML conversion, with the resulting tags stripped back out
// for terminal display (rather than hand-writing a Markdown-subset
// formatter, reusing the teacher's Markdown rendering dependency).
func Help(w io.Writer) error {
	tmpl := template.Must(template.New("help").Parse(helpTemplate))
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, nil); err != nil {
		return err
	}
	rendered := blackfriday.Run(buf.Bytes())
	text := html.UnescapeString(reTag.ReplaceAllString(string(rendered), ""))
	_, err := io.WriteString(w, text)
	return err
}

// Command godyff re-renders a diff stream with ANSI colour, line numbers,
// and intra-line word highlighting. See internal/dyffui.Help for the full
// usage text.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/google/renameio"
	"go.uber.org/multierr"

	"github.com/jcorbin/godyff/dyff"
	"github.com/jcorbin/godyff/internal/difffmt"
	"github.com/jcorbin/godyff/internal/dyffui"
	"github.com/jcorbin/godyff/internal/termcolor"
	"github.com/jcorbin/godyff/internal/textutil"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

var styleOverrideNames = []string{
	"header", "context", "diff-header", "diff-delete", "diff-insert",
	"lineno", "lineno-bar",
	"diff-matching-delete", "diff-matching-insert", "diff-matching-inline",
	"diff-non-matching-delete", "diff-non-matching-insert",
	"diff-context", "diff-trailing-ws",
}

// stringList implements flag.Value for a repeatable string flag (--label).
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }
func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// ErrChildProcess wraps a failure starting or waiting on the spawned diff
// process, per the specification's error handling design.
type ErrChildProcess struct {
	Cmd string
	Err error
}

func (e *ErrChildProcess) Error() string { return fmt.Sprintf("%s: %v", e.Cmd, e.Err) }
func (e *ErrChildProcess) Unwrap() error { return e.Err }

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) (exitCode int) {
	fs := flag.NewFlagSet("godyff", flag.ContinueOnError)
	fs.SetOutput(stderr)

	colorMode := fs.String("color", "auto", "colour output: never, auto, always")
	inlineMode := fs.String("inline", "auto", "inline word diffs: never, auto, always")
	noLineNumbers := fs.Bool("N", false, "suppress line numbers")
	fs.BoolVar(noLineNumbers, "no-line-numbers", false, "suppress line numbers")
	signs := fs.Bool("s", false, "show leading +/- sign columns")
	fs.BoolVar(signs, "signs", false, "show leading +/- sign columns")
	exact := fs.Bool("exact", false, "disable inline word-level highlighting")
	filterCmd := fs.String("filter", "", "pipe input through this command first (split into argv, run without a shell)")
	help := fs.Bool("h", false, "show usage")
	fs.BoolVar(help, "help", false, "show usage")
	debug := fs.Bool("debug", false, "log diagnostics for unrecognised input lines")

	var labels stringList
	fs.Var(&labels, "label", "override a/ or b/ file header (repeatable)")

	overrides := make(map[string]*string, len(styleOverrideNames))
	for _, name := range styleOverrideNames {
		overrides[name] = fs.String(name, "", "override the "+name+" ANSI style")
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *help {
		if err := dyffui.Help(stdout); err != nil {
			fmt.Fprintln(stderr, "godyff:", err)
			return 1
		}
		return 0
	}

	style := dyff.DefaultStyle
	style.LineNumbers = !*noLineNumbers
	style.Signs = *signs
	style.Inline = termcolor.Resolve(termcolor.Mode(*inlineMode), stdout) && !*exact
	for name, val := range overrides {
		if *val == "" {
			continue
		}
		s, ok := style.WithOverride(name, *val)
		if !ok {
			fmt.Fprintf(stderr, "godyff: unknown style override %q\n", name)
			return 2
		}
		style = s
	}
	useColor := termcolor.Resolve(termcolor.Mode(*colorMode), stdout)
	if !useColor {
		style = dyff.Style{LineNumbers: style.LineNumbers, Signs: style.Signs, Inline: style.Inline}
	}

	positional := fs.Args()

	var in io.Reader = stdin
	var cmd *exec.Cmd
	if len(positional) > 0 {
		diffArgs := append([]string{"-u"}, positional...)
		cmd = exec.Command("diff", diffArgs...)
		pipe, err := cmd.StdoutPipe()
		if err != nil {
			fmt.Fprintln(stderr, "godyff:", &ErrChildProcess{Cmd: "diff", Err: err})
			return 1
		}
		cmd.Stderr = stderr
		if err := cmd.Start(); err != nil {
			fmt.Fprintln(stderr, "godyff:", &ErrChildProcess{Cmd: "diff", Err: err})
			return 1
		}
		in = pipe
	}

	if *filterCmd != "" {
		if *debug {
			log.Printf("filter argv: %s", textutil.QuotedArgs(splitFilterArgs(*filterCmd)))
		}
		filtered, cleanup, err := runFilter(in, *filterCmd, stderr)
		if err != nil {
			fmt.Fprintln(stderr, "godyff:", err)
			if cmd != nil {
				_ = cmd.Wait()
			}
			return 1
		}
		defer cleanup()
		in = filtered
	}

	out := &textutil.ErrWriter{Writer: stdout}
	tok := dyff.NewTokeniser()
	renderer := dyff.NewRenderer(style)
	parser := difffmt.NewParser(out, tok, renderer, difffmt.Style{
		DiffHeader: style.DiffHeader,
		Reset:      style.Reset,
	})
	if len(labels) > 0 {
		parser.Labels[dyff.Left] = labels[0]
	}
	if len(labels) > 1 {
		parser.Labels[dyff.Right] = labels[1]
	}
	parser.Debug = *debug

	driver := dyffui.DriverFunc(func(w io.Writer) error { return parser.Run(in) })
	runErr := dyffui.Serve(out, driver)

	var waitErr error
	if cmd != nil {
		waitErr = cmd.Wait()
	}

	if out.Err != nil && isBrokenPipe(out.Err) {
		return 141
	}

	if err := multierr.Combine(runErr, out.Err); err != nil {
		fmt.Fprintln(stderr, "godyff:", err)
		return 1
	}

	if cmd != nil {
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			return exitErr.ExitCode()
		}
		if waitErr != nil {
			fmt.Fprintln(stderr, "godyff:", &ErrChildProcess{Cmd: "diff", Err: waitErr})
			return 1
		}
	}

	if !parser.SawInput() {
		return 0
	}
	return 1
}

func isBrokenPipe(err error) bool {
	var perr *os.SyscallError
	if errors.As(err, &perr) {
		return perr.Err == syscall.EPIPE
	}
	return errors.Is(err, syscall.EPIPE)
}

// runFilter pipes in through the user-supplied --filter command (split into
// argv by splitFilterArgs and run directly, without a shell), capturing
// its stdout into a temp file via renameio.TempFile (the teacher's atomic-rename idiom for stream writes) and returning a reader
// over the finished file, so filters that rewrite content can be read back
// cleanly after they exit rather than racing a pipe.
func runFilter(in io.Reader, filterCmd string, stderr io.Writer) (io.Reader, func(), error) {
	argv := splitFilterArgs(filterCmd)
	if len(argv) == 0 {
		return in, func() {}, nil
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin = in
	cmd.Stderr = stderr

	finalPath := filepath.Join(os.TempDir(), fmt.Sprintf("godyff-filter-%d", os.Getpid()))
	tmp, err := renameio.TempFile("", finalPath)
	if err != nil {
		return nil, nil, err
	}
	cmd.Stdout = tmp

	if err := cmd.Run(); err != nil {
		_ = tmp.Cleanup()
		return nil, nil, &ErrChildProcess{Cmd: filterCmd, Err: err}
	}
	if err := tmp.CloseAtomicallyReplace(); err != nil {
		return nil, nil, err
	}

	f, err := os.Open(finalPath)
	if err != nil {
		return nil, nil, err
	}
	return f, func() {
		_ = f.Close()
		_ = os.Remove(finalPath)
	}, nil
}

func splitFilterArgs(s string) []string {
	sc := bufio.NewScanner(strings.NewReader(s))
	sc.Split(textutil.ScanArgs)
	var args []string
	for sc.Scan() {
		args = append(args, textutil.UnquoteArg(sc.Text()))
	}
	return args
}

func init() {
	log.SetFlags(0)
	log.SetPrefix("godyff: ")
}

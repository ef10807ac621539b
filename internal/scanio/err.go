package scanio

// Scanner is the subset of bufio.Scanner's surface that difffmt.Parser.Run
// drives its line-reading loop through: Scan advances to the next token
// (here, the next input line) and reports whether one was found.
type Scanner interface {
	Scan() bool
	Bytes() []byte
}

// ErrScanner is implemented by a Scanner that can report why Scan stopped
// early. bufio.Scanner satisfies it; Parser.Run type-asserts to it via
// ScanError to distinguish clean EOF from an InputIO failure (per the
// specification's error handling design) without hard-coding bufio.Scanner
// as the only thing it can ever read from.
type ErrScanner interface {
	Scanner
	Err() error
}

// ScanError returns sc's terminal error, if it implements ErrScanner and has
// one, or nil otherwise (including when sc stopped at a clean EOF).
func ScanError(sc Scanner) error {
	if esc, ok := sc.(ErrScanner); ok {
		return esc.Err()
	}
	return nil
}

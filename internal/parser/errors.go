package parser

import "fmt"

// FormatError reports source text that does not match the expected shape,
// typically an amount or date field that fails to parse.
type FormatError struct {
	Field string
	Text  string
	Err   error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("malformed %s %q", e.Field, e.Text)
}

func (e *FormatError) Unwrap() error { return e.Err }

// OffsetError reports a positional read past the end of a page. Fixed
// offsets from a marker line can run out of lines when a transaction block
// is cut off by a page break.
type OffsetError struct {
	Index int
	Lines int
}

func (e *OffsetError) Error() string {
	return fmt.Sprintf("line offset %d out of range (page has %d lines)", e.Index, e.Lines)
}

// lineAt bounds-checks a positional read against the page.
func lineAt(lines []string, index int) (string, error) {
	if index < 0 || index >= len(lines) {
		return "", &OffsetError{Index: index, Lines: len(lines)}
	}
	return lines[index], nil
}

package header

import "fmt"

// ParseError reports a macro value that could not be parsed. It aborts the
// processing of the header it was found in.
type ParseError struct {
	Line  int
	Macro string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s: %v", e.Line, e.Macro, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

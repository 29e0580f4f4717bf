package urglog

import (
	"errors"
	"fmt"
)

var (
	ErrSourceUnavailable = errors.New("scan log source unavailable")
	ErrMalformedRecord   = errors.New("malformed scan record")
)

// ParseError reports the field that could not be decoded and the raw line
// it came from. It matches ErrMalformedRecord with errors.Is.
type ParseError struct {
	Line  int // 1-based line number
	Field string
	Text  string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("line %d: failed to parse %s: %v: %q", e.Line, e.Field, e.Err, e.Text)
	}
	return fmt.Sprintf("line %d: failed to parse %s: %q", e.Line, e.Field, e.Text)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrMalformedRecord }

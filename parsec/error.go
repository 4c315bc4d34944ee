package parsec

import (
	"errors"
	"fmt"
)

var (
	// ErrNoMatch is returned when a parser does not match its input at all.
	ErrNoMatch = errors.New("parser unmatched")
	// ErrTrailingInput is returned when a parser matched but left input behind.
	ErrTrailingInput = errors.New("unconsumed input")
)

// ParsecErr is the error returned by ParseAll. The combinators never build
// one; a failed parse is just a Result that is not Ok.
type ParsecErr struct {
	context string
	// Offset is the byte offset of the first unconsumed byte.
	Offset int
	inner  error
}

func (e *ParsecErr) Error() string {
	return fmt.Sprintf("%s at offset %d: %s", e.context, e.Offset, e.inner)
}

func (e *ParsecErr) Unwrap() error {
	return e.inner
}

// ParseAll runs p over s and requires it to consume everything.
func ParseAll[T any](p Parser[T], s string) (T, error) {
	var zero T
	v, rem, ok := Parse(p, s)
	if !ok {
		return zero, &ParsecErr{context: "parse failed", Offset: 0, inner: ErrNoMatch}
	}
	if !rem.Empty() {
		return zero, &ParsecErr{
			context: fmt.Sprintf("%q left over", preview(rem.String())),
			Offset:  rem.Offset(),
			inner:   ErrTrailingInput,
		}
	}
	return v, nil
}

func preview(s string) string {
	const limit = 16
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}

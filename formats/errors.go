package formats

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedType = errors.New("unsupported type")
	ErrTypeMismatch    = errors.New("type mismatch")
	ErrOutOfRange      = errors.New("integer out of range")
)

// DecodeErr wraps whatever went wrong while decoding or encoding with a short
// description of where it happened.
type DecodeErr struct {
	context string
	inner   error
}

func (e *DecodeErr) Error() string {
	return fmt.Sprintf("%s: %s", e.context, e.inner)
}

func (e *DecodeErr) Unwrap() error {
	return e.inner
}

func errorf(inner error, format string, args ...any) *DecodeErr {
	return &DecodeErr{context: fmt.Sprintf(format, args...), inner: inner}
}

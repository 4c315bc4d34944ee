// Package parsec is a small parser combinator library.
//
// A parser is a plain function from an Input to a Result. It either fails,
// consuming nothing, or succeeds with a value and the unconsumed rest of the
// input. Parsers hold no state between calls, so the same parser value can be
// shared and called from many goroutines at once.
//
// Failure carries no position or reason. Where a caller needs a Go error,
// ParseAll turns a failed or partial parse into one.
package parsec

// Parser is the one contract every parser in this package satisfies,
// primitive or composed.
type Parser[T any] func(in Input) Result[T]

// Predicate is a function that takes a rune and reports whether it satisfies some condition.
type Predicate func(r rune) bool

// Result is either a failure, which holds nothing, or a success holding the
// parsed value and the remaining input. On success the remainder is always a
// suffix of the input handed to the parser.
type Result[T any] struct {
	value T
	rem   Input
	ok    bool
}

func Success[T any](v T, rem Input) Result[T] {
	return Result[T]{value: v, rem: rem, ok: true}
}

func Failure[T any]() Result[T] {
	return Result[T]{}
}

// Ok reports whether the parser matched.
func (r Result[T]) Ok() bool {
	return r.ok
}

// Value is the parsed value. It is the zero value on failure.
func (r Result[T]) Value() T {
	return r.value
}

// Rem is the unconsumed input. It is the zero Input on failure.
func (r Result[T]) Rem() Input {
	return r.rem
}

// Get unpacks the result.
func (r Result[T]) Get() (T, Input, bool) {
	return r.value, r.rem, r.ok
}

// Parse runs p over the whole of s.
func Parse[T any](p Parser[T], s string) (T, Input, bool) {
	return p(NewInput(s)).Get()
}

package parsec

import (
	"strings"
	"unicode"
)

////////SIMPLE PARSERS

// IsA is the simplest parser, it checks if a rune matches the next rune in the input.
func IsA(c rune) Parser[rune] {
	return func(in Input) Result[rune] {
		if in.Empty() || in.Car() != c {
			return Failure[rune]()
		}
		return Success(c, in.Cdr())
	}
}

// OneOf returns a parser which checks if the next rune is any of the runes in set.
func OneOf(set string) Parser[rune] {
	return Satisfy(func(r rune) bool {
		return strings.ContainsRune(set, r)
	})
}

// NoneOf is the complete opposite of OneOf. It matches any rune that is not in set.
func NoneOf(set string) Parser[rune] {
	return Satisfy(func(r rune) bool {
		return !strings.ContainsRune(set, r)
	})
}

// Satisfy matches one rune for which pred returns true.
// Empty input fails before pred is ever called.
func Satisfy(pred Predicate) Parser[rune] {
	return func(in Input) Result[rune] {
		if in.Empty() {
			return Failure[rune]()
		}
		r := in.Car()
		if !pred(r) {
			return Failure[rune]()
		}
		return Success(r, in.Cdr())
	}
}

// Fail never matches. It is typed so that it composes with parsers of T.
func Fail[T any]() Parser[T] {
	return func(Input) Result[T] {
		return Failure[T]()
	}
}

// Digit matches a single ASCII decimal digit.
func Digit() Parser[rune] {
	return OneOf(digits)
}

// Letter matches a single unicode letter.
func Letter() Parser[rune] {
	return Satisfy(unicode.IsLetter)
}

// Take eats exactly n bytes and returns them as a string without copying.
// It fails if fewer than n bytes are left.
func Take(n int) Parser[string] {
	return func(in Input) Result[string] {
		if n < 0 || n > in.Len() {
			return Failure[string]()
		}
		return Success(in.Take(n).String(), in.Slice(n))
	}
}

// Tag matches the literal s.
func Tag(s string) Parser[string] {
	return func(in Input) Result[string] {
		if !strings.HasPrefix(in.String(), s) {
			return Failure[string]()
		}
		return Success(s, in.Slice(len(s)))
	}
}

// TakeWhile keeps eating runes while pred returns true. It never fails, an
// empty match gives the empty string.
func TakeWhile(pred Predicate) Parser[string] {
	return Recognize(FoldMany0(Satisfy(pred), struct{}{}, discard[rune]))
}

// Eof only matches the end of the input.
func Eof() Parser[struct{}] {
	return func(in Input) Result[struct{}] {
		if !in.Empty() {
			return Failure[struct{}]()
		}
		return Success(struct{}{}, in)
	}
}

func discard[T any](acc struct{}, _ T) struct{} {
	return acc
}

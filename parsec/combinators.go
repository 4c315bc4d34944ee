package parsec

import "github.com/bradfitz/iter"

// Map runs p and transforms its value with f. The remainder is left as p returned it.
func Map[T, U any](f func(T) U, p Parser[T]) Parser[U] {
	return func(in Input) Result[U] {
		r := p(in)
		if !r.ok {
			return Failure[U]()
		}
		return Success(f(r.value), r.rem)
	}
}

// Bind runs p and hands its value and remainder to f, which decides how parsing
// continues. This is what lets a grammar depend on a value it already parsed,
// e.g. a length prefix followed by that many bytes.
func Bind[T, U any](p Parser[T], f func(v T, rem Input) Result[U]) Parser[U] {
	return func(in Input) Result[U] {
		r := p(in)
		if !r.ok {
			return Failure[U]()
		}
		return f(r.value, r.rem)
	}
}

// Or tries p1 and, only if it fails, tries p2 on the same input.
// The first match wins; there is no longest match.
func Or[T any](p1, p2 Parser[T]) Parser[T] {
	return func(in Input) Result[T] {
		if r := p1(in); r.ok {
			return r
		}
		return p2(in)
	}
}

// Alt is Or over any number of alternatives, tried left to right.
// With no alternatives it never matches.
func Alt[T any](ps ...Parser[T]) Parser[T] {
	if len(ps) == 0 {
		return Fail[T]()
	}
	p := ps[0]
	for _, next := range ps[1:] {
		p = Or(p, next)
	}
	return p
}

// Combine runs p1 then p2 on what p1 left, and merges both values.
func Combine[T, U, V any](p1 Parser[T], p2 Parser[U], merge func(T, U) V) Parser[V] {
	return func(in Input) Result[V] {
		r1 := p1(in)
		if !r1.ok {
			return Failure[V]()
		}
		r2 := p2(r1.rem)
		if !r2.ok {
			return Failure[V]()
		}
		return Success(merge(r1.value, r2.value), r2.rem)
	}
}

// Terminated asks if p1 is followed immediately by p2, and keeps p1's value.
func Terminated[T, U any](p1 Parser[T], p2 Parser[U]) Parser[T] {
	return Combine(p1, p2, func(l T, _ U) T { return l })
}

// Preceded is like Terminated, only reversed: p1 must match first and p2's value is kept.
func Preceded[T, U any](p1 Parser[T], p2 Parser[U]) Parser[U] {
	return Combine(p1, p2, func(_ T, r U) U { return r })
}

// Delimited keeps the value of p and requires open before it and close after it.
func Delimited[O, T, C any](open Parser[O], p Parser[T], close Parser[C]) Parser[T] {
	return Preceded(open, Terminated(p, close))
}

/////REPETITIONS

// FoldMany0 applies p as many times as it matches, even zero, folding every
// value into an accumulator that starts at init. It stops at the first failure
// or when the input runs out, and never fails itself.
//
// p must consume input whenever it matches, otherwise FoldMany0 loops forever.
func FoldMany0[T, A any](p Parser[T], init A, f func(acc A, v T) A) Parser[A] {
	return func(in Input) Result[A] {
		acc, rem := fold(p, in, init, f)
		return Success(acc, rem)
	}
}

// FoldMany1 is like FoldMany0, but p must match at least once.
func FoldMany1[T, A any](p Parser[T], init A, f func(acc A, v T) A) Parser[A] {
	return func(in Input) Result[A] {
		first := p(in)
		if !first.ok {
			return Failure[A]()
		}
		acc, rem := fold(p, first.rem, f(init, first.value), f)
		return Success(acc, rem)
	}
}

func fold[T, A any](p Parser[T], in Input, acc A, f func(A, T) A) (A, Input) {
	for !in.Empty() {
		r := p(in)
		if !r.ok {
			break
		}
		acc = f(acc, r.value)
		in = r.rem
	}
	return acc, in
}

// Many0 collects every match of p into a slice. It never fails.
func Many0[T any](p Parser[T]) Parser[[]T] {
	return FoldMany0(p, []T(nil), appendTo[T])
}

// Many1 is like Many0, but must pass at least once.
func Many1[T any](p Parser[T]) Parser[[]T] {
	return FoldMany1(p, []T(nil), appendTo[T])
}

func appendTo[T any](acc []T, v T) []T {
	return append(acc, v)
}

// Count applies p exactly n times. If p fails before the n'th time, Count fails too.
func Count[T any](p Parser[T], n int) Parser[[]T] {
	if n < 0 {
		return Fail[[]T]()
	}
	return func(in Input) Result[[]T] {
		out := make([]T, 0, n)
		rem := in
		for range iter.N(n) {
			r := p(rem)
			if !r.ok {
				return Failure[[]T]()
			}
			out = append(out, r.value)
			rem = r.rem
		}
		return Success(out, rem)
	}
}

// SepBy0 matches zero or more p separated by sep. A trailing separator is
// left unconsumed.
func SepBy0[T, S any](p Parser[T], sep Parser[S]) Parser[[]T] {
	rest := Many0(Preceded(sep, p))
	return Opt(Combine(p, rest, func(first T, others []T) []T {
		return append([]T{first}, others...)
	}), []T(nil))
}

/////UTILITIES

// Pure matches without consuming anything and returns v.
func Pure[T any](v T) Parser[T] {
	return func(in Input) Result[T] {
		return Success(v, in)
	}
}

// Value replaces whatever p parsed with v.
func Value[T, U any](v U, p Parser[T]) Parser[U] {
	return Map(func(T) U { return v }, p)
}

// Opt makes p optional, def is returned when p does not match.
func Opt[T any](p Parser[T], def T) Parser[T] {
	return Or(p, Pure(def))
}

// Lazy defers building a parser until it runs. Recursive grammars use it to
// refer to a parser variable that is only assigned later.
func Lazy[T any](f func() Parser[T]) Parser[T] {
	return func(in Input) Result[T] {
		return f()(in)
	}
}

// Recognize returns the text p consumed instead of p's value, without copying.
func Recognize[T any](p Parser[T]) Parser[string] {
	return func(in Input) Result[string] {
		r := p(in)
		if !r.ok {
			return Failure[string]()
		}
		return Success(in.Take(in.Len()-r.rem.Len()).String(), r.rem)
	}
}

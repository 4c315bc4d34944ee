package parsec

import "golang.org/x/exp/constraints"

const (
	digits        = "0123456789"
	nonZeroDigits = "123456789"
)

// SkipWhitespace eats the longest run of spaces, tabs, newlines and carriage
// returns. It never fails; on input without leading whitespace it matches nothing.
func SkipWhitespace() Parser[struct{}] {
	ws := Alt(IsA(' '), IsA('\t'), IsA('\n'), IsA('\r'))
	return FoldMany0(ws, struct{}{}, discard[rune])
}

// Lexeme runs p and then skips any whitespace after it.
func Lexeme[T any](p Parser[T]) Parser[T] {
	return Terminated(p, SkipWhitespace())
}

// UnsignedInt parses a decimal integer that starts with a nonzero digit.
// "0" on its own, leading zeros and signs are not accepted.
func UnsignedInt() Parser[int] {
	return Natural[int]()
}

// Natural is UnsignedInt for any integer type. Values that do not fit in N wrap.
func Natural[N constraints.Integer]() Parser[N] {
	rest := OneOf(digits)
	return Bind(OneOf(nonZeroDigits), func(first rune, rem Input) Result[N] {
		return FoldMany0(rest, digitValue[N](first), func(acc N, d rune) N {
			return acc*10 + digitValue[N](d)
		})(rem)
	})
}

func digitValue[N constraints.Integer](d rune) N {
	return N(d - '0')
}

// QuotedString parses text between double quotes and returns it without the
// quotes. There are no escapes: the first '"' after the opening one closes the string.
// The returned string shares memory with the input.
func QuotedString() Parser[string] {
	quote := IsA('"')
	inner := Recognize(FoldMany0(NoneOf(`"`), struct{}{}, discard[rune]))
	return Preceded(quote, Terminated(inner, quote))
}

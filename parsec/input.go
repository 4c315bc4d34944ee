package parsec

import (
	"unicode/utf8"
	"unsafe"
)

// Input is an immutable view over a string. Offsets are byte offsets into the
// underlying buffer, elements are the runes decoded from it.
// Consuming input never changes a view, it returns a shorter one.
type Input struct {
	buf string
	off int
	end int
}

// NewInput returns a view over the whole of s.
func NewInput(s string) Input {
	return Input{buf: s, off: 0, end: len(s)}
}

// Len is the number of bytes left in the view.
func (in Input) Len() int {
	return in.end - in.off
}

func (in Input) Empty() bool {
	return in.off == in.end
}

// Offset is where the view starts in the original buffer.
func (in Input) Offset() int {
	return in.off
}

// Slice drops the first `from` bytes of the view.
// from must be in [0, Len()], anything else panics like an out of range string slice.
func (in Input) Slice(from int) Input {
	if from < 0 || from > in.Len() {
		panic("parsec: slice out of range")
	}
	return Input{buf: in.buf, off: in.off + from, end: in.end}
}

// Take returns the view of the first n bytes. The same bounds as Slice apply.
func (in Input) Take(n int) Input {
	if n < 0 || n > in.Len() {
		panic("parsec: take out of range")
	}
	return Input{buf: in.buf, off: in.off, end: in.off + n}
}

// Car returns the first rune without consuming it. It panics on empty input,
// callers must check Empty first.
func (in Input) Car() rune {
	r, _ := in.car()
	return r
}

// Cdr returns the remainder of the input once the first rune has been removed.
func (in Input) Cdr() Input {
	_, size := in.car()
	return in.Slice(size)
}

func (in Input) car() (rune, int) {
	if in.Empty() {
		panic("parsec: Car of empty input")
	}
	c := in.buf[in.off]
	if c < utf8.RuneSelf {
		return rune(c), 1
	}
	return utf8.DecodeRuneInString(in.buf[in.off:in.end])
}

// String returns the text of the view. It shares memory with the original buffer.
func (in Input) String() string {
	return in.buf[in.off:in.end]
}

// Equal reports whether both views denote the same offset and length into the
// same buffer. Views over two buffers holding the same text are not equal.
func (in Input) Equal(other Input) bool {
	return in.off == other.off && in.end == other.end &&
		len(in.buf) == len(other.buf) && unsafe.StringData(in.buf) == unsafe.StringData(other.buf)
}

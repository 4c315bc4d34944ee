package parsec

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

type outcome[T any] struct {
	Value T
	Rest  string
	Ok    bool
}

func run[T any](p Parser[T], s string) outcome[T] {
	v, rem, ok := Parse(p, s)
	if !ok {
		return outcome[T]{}
	}
	return outcome[T]{v, rem.String(), true}
}

func matched[T any](v T, rest string) outcome[T] {
	return outcome[T]{v, rest, true}
}

func checkAll[T any](t *testing.T, p Parser[T], tests map[string]outcome[T]) {
	t.Helper()
	for in, want := range tests {
		if diff := cmp.Diff(want, run(p, in)); diff != "" {
			t.Errorf("parsing %q produced wrong result (-want, +got):\n%s", in, diff)
		}
	}
}

func TestIsA(t *testing.T) {
	checkAll(t, IsA('a'), map[string]outcome[rune]{
		"abc": matched('a', "bc"),
		"def": {},
		"":    {},
		"a":   matched('a', ""),
	})
	checkAll(t, IsA('é'), map[string]outcome[rune]{
		"élan": matched('é', "lan"),
		"e":    {},
	})
}

func TestOneOfNoneOf(t *testing.T) {
	checkAll(t, OneOf("xyz"), map[string]outcome[rune]{
		"yes": matched('y', "es"),
		"abc": {},
		"":    {},
	})
	checkAll(t, NoneOf(`"`), map[string]outcome[rune]{
		`a"`: matched('a', `"`),
		`"a`: {},
		"":   {},
	})
}

func TestFail(t *testing.T) {
	checkAll(t, Fail[int](), map[string]outcome[int]{
		"":    {},
		"abc": {},
	})
}

func TestTagTakeEof(t *testing.T) {
	checkAll(t, Tag("let"), map[string]outcome[string]{
		"let x": matched("let", " x"),
		"le":    {},
		"":      {},
	})
	checkAll(t, Take(3), map[string]outcome[string]{
		"abcd": matched("abc", "d"),
		"ab":   {},
		"":     {},
	})
	checkAll(t, Eof(), map[string]outcome[struct{}]{
		"":  matched(struct{}{}, ""),
		"a": {},
	})
	checkAll(t, TakeWhile(func(r rune) bool { return r != ';' }), map[string]outcome[string]{
		"ab;c": matched("ab", ";c"),
		";":    matched("", ";"),
		"":     matched("", ""),
	})
}

func TestMap(t *testing.T) {
	double := Map(func(r rune) int { return 2 * int(r-'0') }, Digit())
	checkAll(t, double, map[string]outcome[int]{
		"4x": matched(8, "x"),
		"x4": {},
	})
}

func TestMapIdentityLaw(t *testing.T) {
	parsers := map[string]Parser[rune]{
		"IsA":    IsA('a'),
		"OneOf":  OneOf("ab"),
		"Letter": Letter(),
		"Fail":   Fail[rune](),
	}
	inputs := []string{"", "a", "abc", "ba", "1a"}
	for name, p := range parsers {
		id := Map(func(r rune) rune { return r }, p)
		for _, in := range inputs {
			if diff := cmp.Diff(run(p, in), run(id, in)); diff != "" {
				t.Errorf("%s: Map(identity) differs on %q (-want, +got):\n%s", name, in, diff)
			}
		}
	}
}

func TestBindMapConsistency(t *testing.T) {
	f := func(s string) int { return len(s) }
	p := QuotedString()
	viaBind := Bind(p, func(v string, rem Input) Result[int] {
		return Success(f(v), rem)
	})
	viaMap := Map(f, p)
	for _, in := range []string{`"abc"`, `"abc" tail`, `""`, `"open`, `x`, ``} {
		if diff := cmp.Diff(run(viaMap, in), run(viaBind, in)); diff != "" {
			t.Errorf("Bind and Map disagree on %q (-want, +got):\n%s", in, diff)
		}
	}
}

func TestBindValueDependent(t *testing.T) {
	// A digit n followed by exactly n letters.
	p := Bind(OneOf(digits), func(d rune, rem Input) Result[[]rune] {
		return Count(Letter(), int(d-'0'))(rem)
	})
	checkAll(t, p, map[string]outcome[[]rune]{
		"2abc": matched([]rune("ab"), "c"),
		"3ab":  {},
		"0ab":  matched([]rune{}, "ab"),
		"x":    {},
	})
}

func TestOrBacktracks(t *testing.T) {
	ab := Preceded(IsA('a'), IsA('b'))
	checkAll(t, Or(ab, IsA('a')), map[string]outcome[rune]{
		"abz": matched('b', "z"),
		"acz": matched('a', "cz"),
		"z":   {},
	})

	var seen Input
	spy := func(in Input) Result[rune] {
		seen = in
		return Failure[rune]()
	}
	in := NewInput("acz")
	if r := Or(ab, spy)(in); r.Ok() {
		t.Fatalf("Or(ab, spy) matched %q, want no match", in)
	}
	if diff := cmp.Diff(in, seen); diff != "" {
		t.Errorf("second alternative saw partially consumed input (-want, +got):\n%s", diff)
	}
}

func TestAlt(t *testing.T) {
	p := Alt(Tag("<="), Tag("<"), Tag("="))
	checkAll(t, p, map[string]outcome[string]{
		"<=1": matched("<=", "1"),
		"<1":  matched("<", "1"),
		"=1":  matched("=", "1"),
		">1":  {},
	})
	checkAll(t, Alt[string](), map[string]outcome[string]{"x": {}})
}

func TestSequencing(t *testing.T) {
	pair := Combine(Letter(), Digit(), func(l, d rune) string { return string([]rune{l, d}) })
	checkAll(t, pair, map[string]outcome[string]{
		"a1!": matched("a1", "!"),
		"aa":  {},
		"1a":  {},
	})
	checkAll(t, Terminated(Letter(), IsA(';')), map[string]outcome[rune]{
		"x;y": matched('x', "y"),
		"xy":  {},
	})
	checkAll(t, Preceded(IsA('$'), Letter()), map[string]outcome[rune]{
		"$x;": matched('x', ";"),
		"x":   {},
	})
	checkAll(t, Delimited(IsA('('), UnsignedInt(), IsA(')')), map[string]outcome[int]{
		"(12)": matched(12, ""),
		"(12":  {},
		"12)":  {},
	})
}

func TestFoldMany0NeverFails(t *testing.T) {
	count := func(acc int, _ rune) int { return acc + 1 }
	checkAll(t, FoldMany0(IsA('a'), 0, count), map[string]outcome[int]{
		"aaab": matched(3, "b"),
		"b":    matched(0, "b"),
		"":     matched(0, ""),
		"aaa":  matched(3, ""),
	})
	checkAll(t, FoldMany0(Fail[rune](), 7, count), map[string]outcome[int]{
		"":    matched(7, ""),
		"abc": matched(7, "abc"),
	})
}

func TestFoldMany1(t *testing.T) {
	count := func(acc int, _ rune) int { return acc + 1 }
	p := FoldMany1(IsA('a'), 0, count)
	checkAll(t, p, map[string]outcome[int]{
		"aaab": matched(3, "b"),
		"a":    matched(1, ""),
		"b":    {},
		"":     {},
	})
	// FoldMany1 fails exactly when its parser fails on the same input.
	for _, in := range []string{"", "a", "b", "ab", "ba"} {
		if got, want := p(NewInput(in)).Ok(), IsA('a')(NewInput(in)).Ok(); got != want {
			t.Errorf("FoldMany1 on %q: ok = %v, want %v", in, got, want)
		}
	}
}

func TestManyCollect(t *testing.T) {
	checkAll(t, Many0(Digit()), map[string]outcome[[]rune]{
		"12a": matched([]rune("12"), "a"),
		"a":   matched([]rune(nil), "a"),
	})
	checkAll(t, Many1(Digit()), map[string]outcome[[]rune]{
		"12a": matched([]rune("12"), "a"),
		"a":   {},
	})
	checkAll(t, SepBy0(UnsignedInt(), IsA(',')), map[string]outcome[[]int]{
		"1,22,3": matched([]int{1, 22, 3}, ""),
		"1,":     matched([]int{1}, ","),
		"x":      matched([]int(nil), "x"),
	})
}

func TestCount(t *testing.T) {
	checkAll(t, Count(Letter(), 2), map[string]outcome[[]rune]{
		"abc": matched([]rune("ab"), "c"),
		"a1":  {},
	})
	checkAll(t, Count(Letter(), -1), map[string]outcome[[]rune]{"abc": {}})
}

func TestOptValueRecognize(t *testing.T) {
	sign := Opt(Value(-1, IsA('-')), 1)
	checkAll(t, sign, map[string]outcome[int]{
		"-5": matched(-1, "5"),
		"5":  matched(1, "5"),
	})
	checkAll(t, Recognize(Many1(Letter())), map[string]outcome[string]{
		"abc123": matched("abc", "123"),
		"123":    {},
	})
}

func TestLazyRecursion(t *testing.T) {
	// nested := '(' nested* ')' , counting the pairs.
	var nested Parser[int]
	nested = Delimited(IsA('('),
		FoldMany0(Lazy(func() Parser[int] { return nested }), 1, func(acc, n int) int { return acc + n }),
		IsA(')'))
	checkAll(t, nested, map[string]outcome[int]{
		"()":       matched(1, ""),
		"(()())x":  matched(3, "x"),
		"((())":    {},
		"(()(()))": matched(4, ""),
	})
}

func TestSkipWhitespace(t *testing.T) {
	checkAll(t, SkipWhitespace(), map[string]outcome[struct{}]{
		"  \t  abc":   matched(struct{}{}, "abc"),
		"abc":         matched(struct{}{}, "abc"),
		"\r\n \n":     matched(struct{}{}, ""),
		"":            matched(struct{}{}, ""),
		"  \t  abc  ": matched(struct{}{}, "abc  "),
	})
	checkAll(t, Lexeme(Letter()), map[string]outcome[rune]{
		"a  b": matched('a', "b"),
	})
}

func TestUnsignedInt(t *testing.T) {
	checkAll(t, UnsignedInt(), map[string]outcome[int]{
		"1203":    matched(1203, ""),
		"0123":    {},
		"0":       {},
		"42abc":   matched(42, "abc"),
		"7":       matched(7, ""),
		"-1":      {},
		"":        {},
		"10 20":   matched(10, " 20"),
		"1000000": matched(1000000, ""),
	})
}

func TestNatural(t *testing.T) {
	checkAll(t, Natural[int64](), map[string]outcome[int64]{
		"9007199254740993": matched(int64(9007199254740993), ""),
	})
	checkAll(t, Natural[uint8](), map[string]outcome[uint8]{
		"255": matched(uint8(255), ""),
		"256": matched(uint8(0), ""),
	})
}

func TestQuotedString(t *testing.T) {
	checkAll(t, QuotedString(), map[string]outcome[string]{
		`"hello"`:       matched("hello", ""),
		`"unterminated`: {},
		`""`:            matched("", ""),
		`"a b" = c`:     matched("a b", " = c"),
		`hello"`:        {},
		`"héllo"x`:      matched("héllo", "x"),
		"":              {},
	})
}

func TestParsersDoNotMutateInput(t *testing.T) {
	parsers := map[string]Parser[string]{
		"QuotedString": QuotedString(),
		"Tag":          Tag("ab"),
		"Recognize":    Recognize(SkipWhitespace()),
		"Int":          Map(func(int) string { return "" }, UnsignedInt()),
	}
	for name, p := range parsers {
		for _, s := range []string{`"ab"c`, "ab", "  x", "12", ""} {
			in := NewInput(s)
			before := in
			p(in)
			if !in.Equal(before) {
				t.Errorf("%s changed its input %q", name, s)
			}
		}
	}
}

func TestRemainderIsSuffix(t *testing.T) {
	in := NewInput(`"key" = "value"`)
	r := Lexeme(QuotedString())(in)
	if !r.Ok() {
		t.Fatalf("Lexeme(QuotedString()) did not match %q", in)
	}
	if got, want := r.Rem().Offset()+r.Rem().Len(), in.Offset()+in.Len(); got != want {
		t.Errorf("remainder ends at %d, want %d", got, want)
	}
	if diff := cmp.Diff(`= "value"`, r.Rem().String()); diff != "" {
		t.Errorf("wrong remainder (-want, +got):\n%s", diff)
	}
}

func TestZeroProgressRepetition(t *testing.T) {
	// Repetition only terminates on its own for a parser that can match
	// without consuming when the input is already empty. On non-empty input
	// such a parser would make FoldMany0 loop forever; keeping parsers
	// consuming is up to the caller.
	r := FoldMany0(Pure('x'), 0, func(acc int, _ rune) int { return acc + 1 })(NewInput(""))
	if diff := cmp.Diff(matched(0, ""), outcome[int]{r.Value(), r.Rem().String(), r.Ok()}); diff != "" {
		t.Errorf("FoldMany0 over empty input (-want, +got):\n%s", diff)
	}
}

func TestConcurrentUse(t *testing.T) {
	p := Many0(Lexeme(UnsignedInt()))
	in := NewInput("1 22 333 4444")
	want := []int{1, 22, 333, 4444}

	var wg sync.WaitGroup
	errs := make(chan string, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, rem, ok := p(in).Get()
			if !ok || !rem.Empty() {
				errs <- "parse did not consume everything"
				return
			}
			if diff := cmp.Diff(want, v); diff != "" {
				errs <- diff
			}
		}()
	}
	wg.Wait()
	close(errs)
	for e := range errs {
		t.Error(e)
	}
}

func TestParseAll(t *testing.T) {
	v, err := ParseAll(UnsignedInt(), "1203")
	if err != nil {
		t.Fatalf("ParseAll(UnsignedInt(), %q) returned error: %v", "1203", err)
	}
	if v != 1203 {
		t.Errorf("ParseAll(UnsignedInt(), %q) = %d, want 1203", "1203", v)
	}

	if _, err := ParseAll(UnsignedInt(), "x"); !errors.Is(err, ErrNoMatch) {
		t.Errorf("ParseAll on no match returned %v, want ErrNoMatch", err)
	}

	_, err = ParseAll(UnsignedInt(), "12ab")
	if !errors.Is(err, ErrTrailingInput) {
		t.Fatalf("ParseAll with trailing input returned %v, want ErrTrailingInput", err)
	}
	var perr *ParsecErr
	if !errors.As(err, &perr) {
		t.Fatalf("ParseAll error is %T, want *ParsecErr", err)
	}
	if perr.Offset != 2 {
		t.Errorf("ParsecErr.Offset = %d, want 2", perr.Offset)
	}
}

func TestTrace(t *testing.T) {
	commonlog.Configure(0, nil)
	log := commonlog.GetLogger("parsec.test")
	checkAll(t, Trace(log, "int", UnsignedInt()), map[string]outcome[int]{
		"12 ": matched(12, " "),
		"x":   {},
	})
}

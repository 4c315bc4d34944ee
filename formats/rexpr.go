package formats

import (
	"io"
	"strings"
	"sync"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/OLUWAMUYIWA/parsec/parsec"
)

const tabSize = 4

// Rexpr is a nested set of quoted keys, each bound to either a quoted string
// or another Rexpr:
//
//	{
//	    "color" = "blue"
//	    "size" = {
//	        "width" = "10"
//	    }
//	}
type Rexpr struct {
	Entries map[string]RexprValue
}

// RexprValue holds either Text or, when Nested is non-nil, a nested Rexpr.
type RexprValue struct {
	Text   string
	Nested *Rexpr
}

type rexprEntry struct {
	key   string
	value RexprValue
}

// RexprParser parses one rexpr. Whitespace is allowed between all tokens and
// before the opening brace. When a key repeats, the first value is kept.
// Blocks nested more than maxDepth levels deep do not match.
func RexprParser() parsec.Parser[*Rexpr] {
	return parsec.Preceded(parsec.SkipWhitespace(), rexprAt(maxDepth))
}

func rexprAt(depth int) parsec.Parser[*Rexpr] {
	str := parsec.Lexeme(parsec.QuotedString())
	sym := func(c rune) parsec.Parser[rune] { return parsec.Lexeme(parsec.IsA(c)) }

	value := parsec.Map(func(s string) RexprValue { return RexprValue{Text: s} }, str)
	if depth > 1 {
		next := sync.OnceValue(func() parsec.Parser[*Rexpr] { return rexprAt(depth - 1) })
		value = parsec.Or(value,
			parsec.Map(func(r *Rexpr) RexprValue { return RexprValue{Nested: r} }, parsec.Lazy(next)))
	}
	kv := parsec.Combine(parsec.Terminated(str, sym('=')), value, func(k string, v RexprValue) rexprEntry {
		return rexprEntry{k, v}
	})
	return parsec.Map(newRexpr, parsec.Delimited(sym('{'), parsec.Many0(kv), sym('}')))
}

func newRexpr(es []rexprEntry) *Rexpr {
	r := &Rexpr{Entries: make(map[string]RexprValue, len(es))}
	for _, e := range es {
		if _, dup := r.Entries[e.key]; !dup {
			r.Entries[e.key] = e.value
		}
	}
	return r
}

// ParseRexpr parses s, which must hold exactly one rexpr.
func ParseRexpr(s string) (*Rexpr, error) {
	r, err := parsec.ParseAll(RexprParser(), s)
	if err != nil {
		return nil, errorf(err, "parsing rexpr")
	}
	return r, nil
}

// Print writes r with one entry per line, keys sorted, nested blocks indented
// by four spaces.
func (r *Rexpr) Print(w io.Writer) error {
	_, err := io.WriteString(w, r.String())
	return err
}

func (r *Rexpr) String() string {
	var b strings.Builder
	r.print(&b, 0)
	return b.String()
}

func (r *Rexpr) print(b *strings.Builder, indent int) {
	b.WriteString("{\n")
	keys := maps.Keys(r.Entries)
	slices.Sort(keys)
	for _, k := range keys {
		b.WriteString(strings.Repeat(" ", indent+tabSize))
		b.WriteString(`"` + k + `" = `)
		v := r.Entries[k]
		if v.Nested != nil {
			v.Nested.print(b, indent+tabSize)
		} else {
			b.WriteString(`"` + v.Text + "\"\n")
		}
	}
	b.WriteString(strings.Repeat(" ", indent))
	b.WriteString("}\n")
}

package formats

import (
	"io"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/OLUWAMUYIWA/parsec/parsec"
)

// maxDepth bounds how deeply lists and dictionaries may nest in a decoded value.
const maxDepth = 512

// BencInt parses a bencoded integer, e.g. "i-42e".
// Leading zeros, "-0" and values that do not fit in an int64 are rejected.
func BencInt() parsec.Parser[int64] {
	num := parsec.Or(
		parsec.Recognize(parsec.IsA('0')),
		parsec.Recognize(parsec.Preceded(parsec.Opt(parsec.IsA('-'), 0), decimal())),
	)
	checked := parsec.Bind(num, func(s string, rem parsec.Input) parsec.Result[int64] {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return parsec.Failure[int64]()
		}
		return parsec.Success(n, rem)
	})
	return parsec.Delimited(parsec.IsA('i'), checked, parsec.IsA('e'))
}

// BencStr parses a length prefixed byte string, e.g. "4:spam".
// The length counts bytes, not runes.
func BencStr() parsec.Parser[string] {
	length := parsec.Or(parsec.Recognize(parsec.IsA('0')), decimal())
	return parsec.Bind(parsec.Terminated(length, parsec.IsA(':')),
		func(s string, rem parsec.Input) parsec.Result[string] {
			n, err := strconv.Atoi(s)
			if err != nil || n > rem.Len() {
				return parsec.Failure[string]()
			}
			return parsec.Take(n)(rem)
		})
}

// decimal recognizes the digits of a number without leading zeros. The text
// is converted by the caller so that overflow is a failed match.
func decimal() parsec.Parser[string] {
	return parsec.Recognize(parsec.Preceded(
		parsec.OneOf("123456789"),
		parsec.TakeWhile(func(r rune) bool { return r >= '0' && r <= '9' }),
	))
}

// BencList parses a list of any bencoded values, e.g. "l4:spami3ee".
func BencList() parsec.Parser[[]any] {
	return listOf(valueAt(maxDepth - 1))
}

// BencDict parses a dictionary with byte string keys in strictly ascending order.
func BencDict() parsec.Parser[map[string]any] {
	return dictOf(valueAt(maxDepth - 1))
}

// BencValue parses any bencoded value. Integers decode to int64, strings to
// string, lists to []any and dictionaries to map[string]any. Lists and
// dictionaries nested more than maxDepth levels deep do not match.
func BencValue() parsec.Parser[any] {
	return valueAt(maxDepth)
}

// valueAt parses a value that may hold at most depth levels of lists and
// dictionaries. The next level is only built when a container is entered.
func valueAt(depth int) parsec.Parser[any] {
	scalars := []parsec.Parser[any]{toAny(BencInt()), toAny(BencStr())}
	if depth == 0 {
		return parsec.Alt(scalars...)
	}
	inner := parsec.Lazy(sync.OnceValue(func() parsec.Parser[any] { return valueAt(depth - 1) }))
	return parsec.Alt(append(scalars, toAny(listOf(inner)), toAny(dictOf(inner)))...)
}

func toAny[T any](p parsec.Parser[T]) parsec.Parser[any] {
	return parsec.Map(func(v T) any { return v }, p)
}

func listOf(value parsec.Parser[any]) parsec.Parser[[]any] {
	items := parsec.FoldMany0(value, []any{}, func(acc []any, v any) []any {
		return append(acc, v)
	})
	return parsec.Delimited(parsec.IsA('l'), items, parsec.IsA('e'))
}

type entry struct {
	key   string
	value any
}

func dictOf(value parsec.Parser[any]) parsec.Parser[map[string]any] {
	kv := parsec.Combine(BencStr(), value, func(k string, v any) entry {
		return entry{k, v}
	})
	entries := parsec.Delimited(parsec.IsA('d'), parsec.Many0(kv), parsec.IsA('e'))
	return parsec.Bind(entries, func(es []entry, rem parsec.Input) parsec.Result[map[string]any] {
		m := make(map[string]any, len(es))
		for i, e := range es {
			if i > 0 && es[i-1].key >= e.key {
				return parsec.Failure[map[string]any]()
			}
			m[e.key] = e.value
		}
		return parsec.Success(m, rem)
	})
}

// Decode parses one bencoded value that must span all of data.
func Decode(data []byte) (any, error) {
	v, err := parsec.ParseAll(BencValue(), string(data))
	if err != nil {
		return nil, errorf(err, "decoding bencode")
	}
	return v, nil
}

// Unmarshal decodes data and stores the result in the value pointed to by v.
// Struct fields are matched by their `benc` tag; fields without one are skipped.
func Unmarshal(data []byte, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return errorf(ErrUnsupportedType, "cannot decode into non-pointer %T", v)
	}
	decoded, err := Decode(data)
	if err != nil {
		return err
	}
	return assign(rv.Elem(), decoded, "")
}

type Decoder struct {
	r io.Reader
}

func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r}
}

// Decode reads the whole stream and unmarshals it into v.
func (d *Decoder) Decode(v any) error {
	data, err := io.ReadAll(d.r)
	if err != nil {
		return errorf(err, "reading bencode")
	}
	return Unmarshal(data, v)
}

// assign stores src, a value produced by BencValue, into dst. path names the
// location for error messages.
func assign(dst reflect.Value, src any, path string) error {
	mismatch := func() error {
		return errorf(ErrTypeMismatch, "cannot store %T in %s at %q", src, dst.Type(), path)
	}

	switch dst.Kind() {
	case reflect.Pointer:
		if dst.IsNil() {
			dst.Set(reflect.New(dst.Type().Elem()))
		}
		return assign(dst.Elem(), src, path)

	case reflect.Interface:
		if dst.NumMethod() != 0 {
			return errorf(ErrUnsupportedType, "cannot decode into %s at %q", dst.Type(), path)
		}
		dst.Set(reflect.ValueOf(src))

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, ok := src.(int64)
		if !ok || dst.OverflowInt(n) {
			return mismatch()
		}
		dst.SetInt(n)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, ok := src.(int64)
		if !ok || n < 0 || dst.OverflowUint(uint64(n)) {
			return mismatch()
		}
		dst.SetUint(uint64(n))

	case reflect.String:
		s, ok := src.(string)
		if !ok {
			return mismatch()
		}
		dst.SetString(strings.Clone(s))

	case reflect.Slice:
		if s, ok := src.(string); ok && dst.Type().Elem().Kind() == reflect.Uint8 {
			dst.SetBytes([]byte(s))
			return nil
		}
		items, ok := src.([]any)
		if !ok {
			return mismatch()
		}
		out := reflect.MakeSlice(dst.Type(), len(items), len(items))
		for i, item := range items {
			if err := assign(out.Index(i), item, path+"/"+strconv.Itoa(i)); err != nil {
				return err
			}
		}
		dst.Set(out)

	case reflect.Map:
		if dst.Type().Key().Kind() != reflect.String {
			return errorf(ErrUnsupportedType, "map key %s at %q", dst.Type().Key(), path)
		}
		dict, ok := src.(map[string]any)
		if !ok {
			return mismatch()
		}
		out := reflect.MakeMapWithSize(dst.Type(), len(dict))
		for k, item := range dict {
			elem := reflect.New(dst.Type().Elem()).Elem()
			if err := assign(elem, item, path+"/"+k); err != nil {
				return err
			}
			out.SetMapIndex(reflect.ValueOf(strings.Clone(k)).Convert(dst.Type().Key()), elem)
		}
		dst.Set(out)

	case reflect.Struct:
		dict, ok := src.(map[string]any)
		if !ok {
			return mismatch()
		}
		ty := dst.Type()
		for i := 0; i < ty.NumField(); i++ {
			name, _, ok := fieldTag(ty.Field(i))
			if !ok {
				continue
			}
			item, present := dict[name]
			if !present {
				continue
			}
			if err := assign(dst.Field(i), item, path+"/"+name); err != nil {
				return err
			}
		}

	default:
		return errorf(ErrUnsupportedType, "cannot decode into %s at %q", dst.Type(), path)
	}
	return nil
}

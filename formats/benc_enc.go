package formats

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"reflect"
	"strconv"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Encoder struct {
	w io.Writer
}

func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// Encode writes the bencoding of v to the underlying writer. Nothing is
// written if v cannot be encoded.
func (e *Encoder) Encode(v any) error {
	b, err := Marshal(v)
	if err != nil {
		return err
	}
	_, err = e.w.Write(b)
	return err
}

// Marshal returns the bencoding of v.
//
// Integers become "i<n>e", strings and byte slices "<len>:<bytes>", slices and
// arrays lists, and maps with string keys dictionaries with sorted keys.
// Unsigned values above math.MaxInt64 are rejected since Decode could not read
// them back. Structs become dictionaries of their `benc` tagged fields; a tag option
// "omitempty" drops the field when it holds its zero value.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := marshal(reflect.ValueOf(v), &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func marshal(v reflect.Value, w *bytes.Buffer) error {
	if !v.IsValid() {
		return errorf(ErrUnsupportedType, "cannot encode nil")
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return errorf(ErrUnsupportedType, "cannot encode nil %s", v.Type())
		}
		return marshal(v.Elem(), w)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		fmt.Fprintf(w, "i%de", v.Int())

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if v.Uint() > math.MaxInt64 {
			return errorf(ErrOutOfRange, "cannot encode %d as a signed 64 bit integer", v.Uint())
		}
		fmt.Fprintf(w, "i%de", v.Uint())

	case reflect.String:
		writeStr(w, v.String())

	case reflect.Slice, reflect.Array:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			b := make([]byte, v.Len())
			reflect.Copy(reflect.ValueOf(b), v)
			writeStr(w, string(b))
			return nil
		}
		w.WriteByte('l')
		for i := 0; i < v.Len(); i++ {
			if err := marshal(v.Index(i), w); err != nil {
				return err
			}
		}
		w.WriteByte('e')

	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return errorf(ErrUnsupportedType, "cannot encode map key %s", v.Type().Key())
		}
		keys := make([]string, 0, v.Len())
		for _, k := range v.MapKeys() {
			keys = append(keys, k.String())
		}
		slices.Sort(keys)
		w.WriteByte('d')
		for _, k := range keys {
			writeStr(w, k)
			if err := marshal(v.MapIndex(reflect.ValueOf(k).Convert(v.Type().Key())), w); err != nil {
				return err
			}
		}
		w.WriteByte('e')

	case reflect.Struct: // bencode has no structs, they go out as dictionaries
		fields := map[string]reflect.Value{}
		ty := v.Type()
		for i := 0; i < ty.NumField(); i++ {
			name, omitEmpty, ok := fieldTag(ty.Field(i))
			if !ok || (omitEmpty && v.Field(i).IsZero()) {
				continue
			}
			fields[name] = v.Field(i)
		}
		keys := maps.Keys(fields)
		slices.Sort(keys)
		w.WriteByte('d')
		for _, k := range keys {
			writeStr(w, k)
			if err := marshal(fields[k], w); err != nil {
				return err
			}
		}
		w.WriteByte('e')

	default:
		return errorf(ErrUnsupportedType, "cannot encode %s", v.Type())
	}
	return nil
}

func writeStr(w *bytes.Buffer, s string) {
	w.WriteString(strconv.Itoa(len(s)))
	w.WriteByte(':')
	w.WriteString(s)
}

// fieldTag reads the `benc:"name[,omitempty]"` tag of an exported field.
func fieldTag(f reflect.StructField) (name string, omitEmpty bool, ok bool) {
	if !f.IsExported() {
		return "", false, false
	}
	tag := f.Tag.Get("benc")
	if tag == "" || tag == "-" {
		return "", false, false
	}
	name, opts, _ := strings.Cut(tag, ",")
	return name, opts == "omitempty", true
}

package parsec

import "github.com/tliron/commonlog"

// Trace wraps p so that every call is logged at debug level under name.
// The result of p is passed through untouched.
func Trace[T any](log commonlog.Logger, name string, p Parser[T]) Parser[T] {
	return func(in Input) Result[T] {
		log.Debugf("%s: enter at offset %d", name, in.Offset())
		r := p(in)
		if !r.ok {
			log.Debugf("%s: no match at offset %d", name, in.Offset())
			return r
		}
		log.Debugf("%s: matched %d bytes, value %v", name, in.Len()-r.rem.Len(), r.value)
		return r
	}
}

package tagval

import (
	"errors"
	"fmt"
	"reflect"
	"unsafe"
)

// ErrInvalidCast is matched by every error reporting a retrieval whose
// requested type is incompatible with the content of the Value.
var ErrInvalidCast = errors.New("tagval: invalid cast")

// CastError describes a failed retrieval.
type CastError struct {
	From reflect.Type // nil when the Value was absent
	To   reflect.Type
}

func (e *CastError) Error() string {
	from := "<absent>"
	if e.From != nil {
		from = e.From.String()
	}
	return fmt.Sprintf("tagval: invalid cast from %s to %s", from, e.To)
}

func (e *CastError) Unwrap() error {
	return ErrInvalidCast
}

// TryGet returns the content of v as a T. On mismatch it returns the zero T
// and false.
//
// Scalars match only their exact type: a named enumeration does not satisfy
// a request for its underlying integer type, nor the reverse. A Nullable[U]
// request matches a U as well as the absent Value, which yields a null
// Nullable. A reference matches an identical type or an interface it
// implements, and a *B also matches a *A when B embeds A, yielding the address
// of the embedded A. Retrieving scalars and nullables never allocates.
func TryGet[T any](v Value) (T, bool) {
	var out T
	t := typeFor[T]()
	info := infoOf(t)
	switch info.class {
	case classScalar:
		if v.typ != t {
			return out, false
		}
		v.load(info.kind, unsafe.Pointer(&out))
		return out, true
	case classNullable:
		if v.kind == KindInvalid {
			return out, true
		}
		if v.typ != info.elem {
			return out, false
		}
		p := unsafe.Pointer(&out)
		v.load(info.kind, p)
		*(*bool)(unsafe.Add(p, info.validOffset)) = true
		return out, true
	}

	if !assignable(v, t, info) {
		return out, false
	}
	if v.kind != KindObject {
		// A scalar viewed through an interface has to be boxed.
		out, _ = v.Interface().(T)
		return out, true
	}
	if r, ok := v.ref.(T); ok {
		return r, true
	}
	base, ok := embedPath(v.typ, t).follow(reflect.ValueOf(v.ref).UnsafePointer())
	if !ok {
		return out, false
	}
	return reflect.NewAt(t.Elem(), base).Interface().(T), true
}

// assignable reports whether the content of v can be viewed as a t, where t
// is not a scalar or nullable type.
func assignable(v Value, t reflect.Type, info *typeInfo) bool {
	switch {
	case v.kind == KindInvalid:
		return false
	case v.kind != KindObject:
		return info.class == classInterface && v.typ.Implements(t)
	case v.typ == t:
		return true
	case info.class == classInterface:
		return v.typ.Implements(t)
	default:
		return embedPath(v.typ, t).ok
	}
}

// Get returns the content of v as a T, or the zero T and a *CastError.
func Get[T any](v Value) (T, error) {
	out, ok := TryGet[T](v)
	if !ok {
		return out, &CastError{From: v.typ, To: typeFor[T]()}
	}
	return out, nil
}

// MustGet is like Get but panics with a *CastError on mismatch.
func MustGet[T any](v Value) T {
	out, err := Get[T](v)
	if err != nil {
		panic(err)
	}
	return out
}

package tagval

import (
	"fmt"
	"reflect"
	"time"
	"unsafe"

	"github.com/rawbytedev/tagval/internal/common"
)

const cellSize = 16

// Value holds a single scalar, an object reference, or nothing at all.
//
// Scalars are copied into a fixed 16-byte cell and never boxed, so building a
// Value from a scalar and reading it back does not allocate. Anything that is
// not a scalar is kept by reference in ref and tagged with its dynamic type.
//
// The zero Value is absent: it has no type, and only a Nullable request can
// be satisfied by it. A Value is immutable, copies share the referenced
// object, and it is safe for concurrent use by multiple readers.
type Value struct {
	// typ is the logical type: the exact scalar type (including named
	// enumeration types) or the dynamic type of ref. Nil when absent.
	typ reflect.Type

	// ref holds the object for KindObject. For KindTime it holds the
	// *time.Location, which is part of the timestamp rather than an object.
	ref any

	// bits is the inline cell. Scalars narrower than 16 bytes occupy the
	// low addresses at their natural width; the remainder stays zero.
	bits [2]uint64

	kind Kind
}

// Kind returns the representation currently held by v.
func (v Value) Kind() Kind {
	return v.kind
}

// Type returns the logical type held by v, or nil when v is absent.
func (v Value) Type() reflect.Type {
	return v.typ
}

// IsValid reports whether v holds anything. It is false for the absent
// Value, including one built from a null Nullable or a nil reference.
func (v Value) IsValid() bool {
	return v.kind != KindInvalid
}

// Interface returns the content of v as an interface value, or nil when v
// is absent. Unlike TryGet, this boxes scalars and may allocate.
func (v Value) Interface() any {
	switch v.kind {
	case KindInvalid:
		return nil
	case KindObject:
		return v.ref
	case KindTime:
		return v.time()
	}
	p := reflect.New(v.typ)
	v.load(v.kind, p.UnsafePointer())
	return p.Elem().Interface()
}

func (v Value) String() string {
	if v.kind == KindInvalid {
		return "<absent>"
	}
	return fmt.Sprint(v.Interface())
}

// load copies the scalar of kind k out of the cell into p, which must point
// at a variable whose type has the layout of k.
func (v *Value) load(k Kind, p unsafe.Pointer) {
	switch k {
	case KindTime:
		*(*time.Time)(p) = v.time()
	case KindDecimal, KindOffsetTime:
		*(*[2]uint64)(p) = v.bits
	default:
		rk := k.reflectKind()
		common.StoreFixed(p, rk, common.LoadFixed(unsafe.Pointer(&v.bits), rk))
	}
}

func (v *Value) time() time.Time {
	loc, _ := v.ref.(*time.Location)
	if loc == nil {
		loc = time.UTC
	}
	return time.Unix(int64(v.bits[0]), int64(v.bits[1])).In(loc)
}

// timeValue stores t as Unix seconds and nanoseconds plus its location.
// The monotonic clock reading, if any, is dropped.
func timeValue(t time.Time) Value {
	return Value{
		typ:  timeType,
		ref:  t.Location(),
		bits: [2]uint64{uint64(t.Unix()), uint64(t.Nanosecond())},
		kind: KindTime,
	}
}

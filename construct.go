package tagval

import (
	"math"
	"reflect"
	"time"
	"unsafe"

	"github.com/rawbytedev/tagval/internal/common"
)

// Of returns a Value holding the scalar v. It never allocates.
func Of[T Scalar](v T) Value {
	t := typeFor[T]()
	info := infoOf(t)
	if info.kind == KindTime {
		return timeValue(*(*time.Time)(unsafe.Pointer(&v)))
	}
	val := Value{typ: t, kind: info.kind}
	*(*T)(unsafe.Pointer(&val.bits)) = v
	return val
}

// OfNullable returns the absent Value when n is null, and Of(n.V) otherwise.
func OfNullable[T Scalar](n Nullable[T]) Value {
	if !n.Valid {
		return Value{}
	}
	return Of(n.V)
}

// OfAny returns a Value holding x.
//
// A boxed scalar is copied into the cell and the box is not retained, so
// OfAny(any(int32(1))) and Of(int32(1)) are indistinguishable. A boxed
// Nullable collapses the same way OfNullable does. Nil, including a typed nil
// pointer, map, slice, channel or function, yields the absent Value. Anything
// else is kept by reference.
func OfAny(x any) Value {
	switch x := x.(type) {
	case nil:
		return Value{}
	case bool:
		return Of(x)
	case int8:
		return Of(x)
	case int16:
		return Of(x)
	case int32:
		return Of(x)
	case int64:
		return Of(x)
	case int:
		return Of(x)
	case uint8:
		return Of(x)
	case uint16:
		return Of(x)
	case uint32:
		return Of(x)
	case uint64:
		return Of(x)
	case uint:
		return Of(x)
	case uintptr:
		return Of(x)
	case Char:
		return Of(x)
	case float32:
		return Of(x)
	case float64:
		return Of(x)
	case Decimal:
		return Of(x)
	case OffsetTime:
		return Of(x)
	case time.Time:
		return Of(x)
	}

	t := reflect.TypeOf(x)
	switch info := infoOf(t); info.class {
	case classScalar:
		return unbox(t, info.kind, reflect.ValueOf(x))
	case classNullable:
		return x.(nullable).boxedValue()
	}
	if isNil(reflect.ValueOf(x)) {
		return Value{}
	}
	return Value{typ: t, ref: x, kind: KindObject}
}

// unbox copies a boxed named scalar (an enumeration, or a named bool or
// float) into the cell at the width of its underlying kind.
func unbox(t reflect.Type, k Kind, rv reflect.Value) Value {
	var raw uint64
	rk := rv.Kind()
	switch {
	case rk == reflect.Bool:
		if rv.Bool() {
			raw = 1
		}
	case common.IsInteger(rk):
		if common.IsSigned(rk) {
			raw = uint64(rv.Int())
		} else {
			raw = rv.Uint()
		}
	case rk == reflect.Float32:
		raw = uint64(math.Float32bits(float32(rv.Float())))
	case rk == reflect.Float64:
		raw = math.Float64bits(rv.Float())
	}
	val := Value{typ: t, kind: k}
	common.StoreFixed(unsafe.Pointer(&val.bits), rk, raw)
	return val
}

func isNil(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return rv.IsNil()
	}
	return false
}

// OfSegment returns a Value holding s by reference.
func OfSegment[T any](s Segment[T]) Value { return OfAny(s) }

// OfBytes returns a Value holding b by reference. A nil b is absent.
func OfBytes(b []byte) Value { return OfAny(b) }

// OfChars returns a Value holding c by reference. A nil c is absent.
func OfChars(c []Char) Value { return OfAny(c) }

func OfBool(v bool) Value             { return Of(v) }
func OfInt8(v int8) Value             { return Of(v) }
func OfInt16(v int16) Value           { return Of(v) }
func OfInt32(v int32) Value           { return Of(v) }
func OfInt64(v int64) Value           { return Of(v) }
func OfInt(v int) Value               { return Of(v) }
func OfUint8(v uint8) Value           { return Of(v) }
func OfUint16(v uint16) Value         { return Of(v) }
func OfUint32(v uint32) Value         { return Of(v) }
func OfUint64(v uint64) Value         { return Of(v) }
func OfUint(v uint) Value             { return Of(v) }
func OfUintptr(v uintptr) Value       { return Of(v) }
func OfChar(v Char) Value             { return Of(v) }
func OfFloat32(v float32) Value       { return Of(v) }
func OfFloat64(v float64) Value       { return Of(v) }
func OfDecimal(v Decimal) Value       { return Of(v) }
func OfTime(v time.Time) Value        { return Of(v) }
func OfOffsetTime(v OffsetTime) Value { return Of(v) }

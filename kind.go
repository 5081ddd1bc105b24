package tagval

import (
	"fmt"
	"reflect"
	"time"

	"github.com/rawbytedev/tagval/internal/common"
)

// Kind identifies the representation a Value currently uses. Every scalar
// kind occupies the inline cell; KindObject keeps a reference instead.
//
// Enumerations (named integer types) report the kind of their underlying
// integer; their logical type is still the named type.
type Kind uint8

const (
	KindInvalid Kind = iota // absent; the zero Value
	KindBool
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindInt
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindUint
	KindUintptr
	KindChar
	KindFloat32
	KindFloat64
	KindDecimal
	KindTime
	KindOffsetTime
	KindObject

	numKinds
)

var kindNames = [numKinds]string{
	KindInvalid:    "invalid",
	KindBool:       "bool",
	KindInt8:       "int8",
	KindInt16:      "int16",
	KindInt32:      "int32",
	KindInt64:      "int64",
	KindInt:        "int",
	KindUint8:      "uint8",
	KindUint16:     "uint16",
	KindUint32:     "uint32",
	KindUint64:     "uint64",
	KindUint:       "uint",
	KindUintptr:    "uintptr",
	KindChar:       "char",
	KindFloat32:    "float32",
	KindFloat64:    "float64",
	KindDecimal:    "decimal",
	KindTime:       "time",
	KindOffsetTime: "offset-time",
	KindObject:     "object",
}

func (k Kind) String() string {
	if k < numKinds {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// ParseKind returns the kind whose String form is s.
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), true
		}
	}
	return KindInvalid, false
}

// IsScalar reports whether values of kind k live in the inline cell.
func (k Kind) IsScalar() bool {
	return k > KindInvalid && k < KindObject
}

// Size returns the number of cell bytes that are meaningful for kind k.
// It is 0 for KindInvalid and KindObject.
func (k Kind) Size() int {
	switch k {
	case KindDecimal, KindOffsetTime, KindTime:
		return cellSize
	}
	if n := common.FixedSize(k.reflectKind()); n > 0 {
		return n
	}
	return 0
}

// Kinds returns every scalar kind in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, KindObject-1)
	for k := KindBool; k < KindObject; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// reflectKind maps fixed-width scalar kinds onto the reflect kind with the
// same memory layout.
func (k Kind) reflectKind() reflect.Kind {
	switch k {
	case KindBool:
		return reflect.Bool
	case KindInt8:
		return reflect.Int8
	case KindInt16:
		return reflect.Int16
	case KindInt32:
		return reflect.Int32
	case KindInt64:
		return reflect.Int64
	case KindInt:
		return reflect.Int
	case KindUint8:
		return reflect.Uint8
	case KindUint16, KindChar:
		return reflect.Uint16
	case KindUint32:
		return reflect.Uint32
	case KindUint64:
		return reflect.Uint64
	case KindUint:
		return reflect.Uint
	case KindUintptr:
		return reflect.Uintptr
	case KindFloat32:
		return reflect.Float32
	case KindFloat64:
		return reflect.Float64
	default:
		return reflect.Invalid
	}
}

// kindOf maps a reflect kind onto the scalar kind stored for it, or
// KindInvalid when the reflect kind has no inline representation.
func kindOf(rk reflect.Kind) Kind {
	if !common.IsFixedKind(rk) {
		return KindInvalid
	}
	switch rk {
	case reflect.Bool:
		return KindBool
	case reflect.Int8:
		return KindInt8
	case reflect.Int16:
		return KindInt16
	case reflect.Int32:
		return KindInt32
	case reflect.Int64:
		return KindInt64
	case reflect.Int:
		return KindInt
	case reflect.Uint8:
		return KindUint8
	case reflect.Uint16:
		return KindUint16
	case reflect.Uint32:
		return KindUint32
	case reflect.Uint64:
		return KindUint64
	case reflect.Uint:
		return KindUint
	case reflect.Uintptr:
		return KindUintptr
	case reflect.Float32:
		return KindFloat32
	case reflect.Float64:
		return KindFloat64
	default:
		return KindInvalid
	}
}

var (
	charType       = typeFor[Char]()
	decimalType    = typeFor[Decimal]()
	offsetTimeType = typeFor[OffsetTime]()
	timeType       = typeFor[time.Time]()
)

// typeFor is reflect.TypeFor without boxing a zero T.
func typeFor[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

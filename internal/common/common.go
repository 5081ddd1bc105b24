package common

import (
	"reflect"
	"unsafe"
)

// IsFixedKind reports whether k is a fixed-size primitive kind.
func IsFixedKind(k reflect.Kind) bool {
	switch k {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

// IsInteger reports whether k is a signed or unsigned integer kind.
func IsInteger(k reflect.Kind) bool {
	return IsSigned(k) || IsUnsigned(k)
}

// IsSigned reports whether k is a signed integer kind.
func IsSigned(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

// IsUnsigned reports whether k is an unsigned integer kind.
func IsUnsigned(k reflect.Kind) bool {
	switch k {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

// FixedSize returns the byte width for fixed-size primitive kinds, or -1.
func FixedSize(k reflect.Kind) int {
	switch k {
	case reflect.Bool, reflect.Int8, reflect.Uint8:
		return 1
	case reflect.Int16, reflect.Uint16:
		return 2
	case reflect.Int32, reflect.Uint32, reflect.Float32:
		return 4
	case reflect.Int64, reflect.Uint64, reflect.Float64:
		return 8
	case reflect.Int, reflect.Uint:
		return int(unsafe.Sizeof(int(0)))
	case reflect.Uintptr:
		return int(unsafe.Sizeof(uintptr(0)))
	default:
		return -1
	}
}

// StoreFixed writes the low FixedSize(k) bytes of bits to p in host byte order,
// so that reading p back as the Go type of kind k yields the original value.
// Floats are expected as their IEEE bit pattern.
func StoreFixed(p unsafe.Pointer, k reflect.Kind, bits uint64) {
	switch FixedSize(k) {
	case 1:
		*(*uint8)(p) = uint8(bits)
	case 2:
		*(*uint16)(p) = uint16(bits)
	case 4:
		*(*uint32)(p) = uint32(bits)
	case 8:
		*(*uint64)(p) = bits
	default:
		panic("common: not a fixed kind: " + k.String())
	}
}

// LoadFixed is the inverse of StoreFixed. Signed kinds are sign-extended.
func LoadFixed(p unsafe.Pointer, k reflect.Kind) uint64 {
	switch FixedSize(k) {
	case 1:
		if IsSigned(k) {
			return uint64(int64(*(*int8)(p)))
		}
		return uint64(*(*uint8)(p))
	case 2:
		if IsSigned(k) {
			return uint64(int64(*(*int16)(p)))
		}
		return uint64(*(*uint16)(p))
	case 4:
		if IsSigned(k) {
			return uint64(int64(*(*int32)(p)))
		}
		return uint64(*(*uint32)(p))
	case 8:
		return *(*uint64)(p)
	default:
		panic("common: not a fixed kind: " + k.String())
	}
}

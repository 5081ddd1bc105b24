package tagval

import (
	"math"
	"math/bits"
	"strconv"
)

const (
	// MaxDecimalScale is the largest number of fractional digits a Decimal
	// can carry.
	MaxDecimalScale = 28

	decimalSignMask  = 0x80000000
	decimalScaleMask = 0x00FF0000
	decimalScaleBit  = 16
)

// Decimal is a 128-bit base-10 floating point number: a 96-bit unsigned
// mantissa, a sign and a scale of 0 to 28 fractional digits. The value is
// (-1)^sign * mantissa / 10^scale.
//
// Two decimals with the same value but different scales (1.0 and 1.00)
// are distinct bit patterns and compare unequal with ==.
type Decimal struct {
	flags uint32 // sign in bit 31, scale in bits 16-23
	hi    uint32 // mantissa bits 64-95
	lo    uint64 // mantissa bits 0-63
}

// NewDecimal returns mantissa / 10^scale. It panics if scale exceeds
// MaxDecimalScale.
func NewDecimal(mantissa int64, scale uint8) Decimal {
	checkScale(scale)
	d := Decimal{flags: uint32(scale) << decimalScaleBit}
	if mantissa < 0 {
		d.flags |= decimalSignMask
		d.lo = uint64(-mantissa)
	} else {
		d.lo = uint64(mantissa)
	}
	return d
}

// DecimalFromParts assembles a Decimal from the three 32-bit words of its
// mantissa, low word first.
func DecimalFromParts(lo, mid, hi uint32, negative bool, scale uint8) Decimal {
	checkScale(scale)
	d := Decimal{
		flags: uint32(scale) << decimalScaleBit,
		hi:    hi,
		lo:    uint64(mid)<<32 | uint64(lo),
	}
	if negative {
		d.flags |= decimalSignMask
	}
	return d
}

func checkScale(scale uint8) {
	if scale > MaxDecimalScale {
		panic("tagval: decimal scale " + strconv.Itoa(int(scale)) + " out of range")
	}
}

// Scale returns the number of fractional digits.
func (d Decimal) Scale() uint8 {
	return uint8((d.flags & decimalScaleMask) >> decimalScaleBit)
}

// IsNegative reports whether the sign bit is set. Negative zero is negative.
func (d Decimal) IsNegative() bool {
	return d.flags&decimalSignMask != 0
}

// Parts returns the mantissa words, low word first.
func (d Decimal) Parts() (lo, mid, hi uint32) {
	return uint32(d.lo), uint32(d.lo >> 32), d.hi
}

// Float64 returns the nearest float64. Precision beyond 53 bits is lost.
func (d Decimal) Float64() float64 {
	f := float64(d.hi)*math.Exp2(64) + float64(d.lo)
	f /= math.Pow10(int(d.Scale()))
	if d.IsNegative() {
		f = -f
	}
	return f
}

func (d Decimal) String() string {
	// 96 bits is at most 29 digits; room for sign, point and leading zero.
	var buf [40]byte
	i := len(buf)
	hi, lo := uint64(d.hi), d.lo
	scale := int(d.Scale())
	digits := 0
	for hi != 0 || lo != 0 || digits <= scale {
		var r uint64
		hi, r = bits.Div64(0, hi, 10)
		lo, r = bits.Div64(r, lo, 10)
		i--
		buf[i] = byte('0' + r)
		digits++
		if digits == scale {
			i--
			buf[i] = '.'
		}
	}
	if d.IsNegative() {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

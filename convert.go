package tagval

import "time"

// The accessors below are explicit casts: each returns the content of v as
// the named type and panics with a *CastError when v holds anything else.
// Use TryGet or Get to probe without panicking, and MustGet[Nullable[T]]
// for nullable casts.

func (v Value) Bool() bool             { return MustGet[bool](v) }
func (v Value) Int8() int8             { return MustGet[int8](v) }
func (v Value) Int16() int16           { return MustGet[int16](v) }
func (v Value) Int32() int32           { return MustGet[int32](v) }
func (v Value) Int64() int64           { return MustGet[int64](v) }
func (v Value) Int() int               { return MustGet[int](v) }
func (v Value) Uint8() uint8           { return MustGet[uint8](v) }
func (v Value) Uint16() uint16         { return MustGet[uint16](v) }
func (v Value) Uint32() uint32         { return MustGet[uint32](v) }
func (v Value) Uint64() uint64         { return MustGet[uint64](v) }
func (v Value) Uint() uint             { return MustGet[uint](v) }
func (v Value) Uintptr() uintptr       { return MustGet[uintptr](v) }
func (v Value) Char() Char             { return MustGet[Char](v) }
func (v Value) Float32() float32       { return MustGet[float32](v) }
func (v Value) Float64() float64       { return MustGet[float64](v) }
func (v Value) Decimal() Decimal       { return MustGet[Decimal](v) }
func (v Value) Time() time.Time        { return MustGet[time.Time](v) }
func (v Value) OffsetTime() OffsetTime { return MustGet[OffsetTime](v) }
func (v Value) Bytes() []byte          { return MustGet[[]byte](v) }
func (v Value) Chars() []Char          { return MustGet[[]Char](v) }

// Package tagval provides Value, a fixed-size tagged union that holds one
// scalar (bool, sized integers, Char, floats, Decimal, time.Time, OffsetTime
// or any enumeration over an integer), nothing at all, or a reference to an
// arbitrary object.
//
// Scalars are written into an inline 16-byte cell instead of being boxed,
// so a round trip through Of and TryGet does not touch the heap. A boxed
// scalar handed to OfAny is unboxed into the cell as well.
//
// Retrieval is typed and strict. Scalars must be requested by their exact
// type; references follow Go assignability, extended so that a pointer to a
// struct can be viewed as a pointer to a struct it embeds:
//
//	v := tagval.Of(int32(42))
//	n, ok := tagval.TryGet[int32](v)                 // 42, true
//	_, ok = tagval.TryGet[int64](v)                  // 0, false
//	m, _ := tagval.Get[tagval.Nullable[int32]](v)    // {42 true}
//
// A null Nullable and a nil reference both produce the absent Value, which
// only satisfies Nullable requests.
package tagval

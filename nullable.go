package tagval

// Nullable is a scalar that may be missing. The zero value is null.
//
// A Value never stores a null Nullable: constructing from one yields the
// absent Value, and a valid one is stored as its plain scalar.
type Nullable[T Scalar] struct {
	V     T
	Valid bool
}

// Some returns a valid Nullable holding v.
func Some[T Scalar](v T) Nullable[T] {
	return Nullable[T]{V: v, Valid: true}
}

// Get returns the scalar and whether it is present.
func (n Nullable[T]) Get() (T, bool) {
	return n.V, n.Valid
}

func (n Nullable[T]) boxedValue() Value {
	return OfNullable(n)
}

// nullable is implemented by every Nullable instantiation. It lets OfAny
// collapse a boxed Nullable without knowing T.
type nullable interface {
	boxedValue() Value
}

package tagval

import (
	"fmt"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Color int32

const (
	Red Color = iota
	Green
	Blue
)

func TestConstructBool(t *testing.T) {
	v := Of(true)
	require.Equal(t, reflect.TypeOf(true), v.Type())
	require.Equal(t, KindBool, v.Kind())

	b, ok := TryGet[bool](v)
	require.True(t, ok)
	require.True(t, b)

	n, ok := TryGet[Nullable[bool]](v)
	require.True(t, ok)
	require.Equal(t, Some(true), n)
}

func TestConstructNullNullable(t *testing.T) {
	v := OfNullable(Nullable[int32]{})
	require.False(t, v.IsValid())
	require.Nil(t, v.Type())
	require.Equal(t, KindInvalid, v.Kind())
	require.Equal(t, Value{}, v)

	n, ok := TryGet[Nullable[int32]](v)
	require.True(t, ok)
	require.False(t, n.Valid)

	_, ok = TryGet[int32](v)
	require.False(t, ok)
	_, err := Get[int32](v)
	require.ErrorIs(t, err, ErrInvalidCast)
}

func TestConstructBoxedScalar(t *testing.T) {
	var boxed any = 42
	v := OfAny(boxed)
	require.Equal(t, reflect.TypeOf(0), v.Type())
	require.Equal(t, KindInt, v.Kind())
	require.Nil(t, v.ref, "the box must not be retained")

	n, err := Get[int](v)
	require.NoError(t, err)
	require.Equal(t, 42, n)
}

func TestBytesAreNotSegments(t *testing.T) {
	v := OfBytes(make([]byte, 10))
	_, err := Get[Segment[byte]](v)
	require.ErrorIs(t, err, ErrInvalidCast)
	require.Panics(t, func() { MustGet[Segment[byte]](v) })
}

func TestDerivedRetrievedAsBase(t *testing.T) {
	d := &derived{base: base{w: 2, h: 3}, name: "d"}
	v := OfAny(d)

	b, err := Get[*base](v)
	require.NoError(t, err)
	require.Same(t, &d.base, b)

	_, ok := TryGet[*leaf](v)
	require.False(t, ok)
}

func TestAbsentValue(t *testing.T) {
	var v Value
	require.False(t, v.IsValid())
	require.Nil(t, v.Type())
	require.Nil(t, v.Interface())
	require.Equal(t, "<absent>", v.String())

	for _, fn := range []func() bool{
		func() bool { _, ok := TryGet[bool](v); return ok },
		func() bool { _, ok := TryGet[any](v); return ok },
		func() bool { _, ok := TryGet[[]byte](v); return ok },
		func() bool { _, ok := TryGet[*base](v); return ok },
		func() bool { _, ok := TryGet[Color](v); return ok },
	} {
		require.False(t, fn())
	}
	_, ok := TryGet[Nullable[Color]](v)
	require.True(t, ok)
}

func TestNullableRequests(t *testing.T) {
	v := Of(int16(-7))

	n, ok := TryGet[Nullable[int16]](v)
	require.True(t, ok)
	require.Equal(t, Some(int16(-7)), n)

	_, ok = TryGet[Nullable[int32]](v)
	require.False(t, ok)

	// A valid nullable is stored as its plain scalar.
	require.Equal(t, v, OfNullable(Some(int16(-7))))

	ts := time.Date(2024, time.March, 9, 12, 30, 0, 500, time.UTC)
	nt, ok := TryGet[Nullable[time.Time]](Of(ts))
	require.True(t, ok)
	require.True(t, nt.Valid)
	require.True(t, ts.Equal(nt.V))
}

func TestEnumIdentity(t *testing.T) {
	v := Of(Blue)
	require.Equal(t, KindInt32, v.Kind())
	require.Equal(t, reflect.TypeOf(Blue), v.Type())

	c, ok := TryGet[Color](v)
	require.True(t, ok)
	require.Equal(t, Blue, c)

	_, ok = TryGet[int32](v)
	require.False(t, ok, "an enumeration is not its underlying type")
	_, ok = TryGet[Color](Of(int32(2)))
	require.False(t, ok)

	n, ok := TryGet[Nullable[Color]](v)
	require.True(t, ok)
	require.Equal(t, Some(Blue), n)
	_, ok = TryGet[Nullable[int32]](v)
	require.False(t, ok)
}

func TestBoxedNullableCollapses(t *testing.T) {
	require.Equal(t, Value{}, OfAny(Nullable[float64]{}))
	require.Equal(t, Of(2.5), OfAny(Some(2.5)))
	require.Equal(t, Of(Green), OfAny(Some(Green)))
}

func TestCastError(t *testing.T) {
	_, err := Get[int64](Of(int32(1)))
	require.ErrorIs(t, err, ErrInvalidCast)

	var ce *CastError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, reflect.TypeOf(int32(0)), ce.From)
	assert.Equal(t, reflect.TypeOf(int64(0)), ce.To)
	assert.EqualError(t, err, "tagval: invalid cast from int32 to int64")

	_, err = Get[string](Value{})
	assert.EqualError(t, err, "tagval: invalid cast from <absent> to string")

	require.PanicsWithError(t, "tagval: invalid cast from int32 to int64", func() {
		MustGet[int64](Of(int32(1)))
	})
}

func TestTryGetReturnsZeroOnMismatch(t *testing.T) {
	v := Of(uint32(0xFFFFFFFF))
	n, ok := TryGet[uint64](v)
	require.False(t, ok)
	require.Zero(t, n)

	d, ok := TryGet[Decimal](v)
	require.False(t, ok)
	require.Equal(t, Decimal{}, d)
}

func TestExplicitCasts(t *testing.T) {
	ts := time.Unix(1_700_000_000, 42).UTC()
	ot := NewOffsetTime(1_700_000_000, 0, 2*time.Hour)
	dec := NewDecimal(1999, 2)
	buf := []byte("abc")
	chars := CharsOf("héllo")

	assert.Equal(t, true, OfBool(true).Bool())
	assert.Equal(t, int8(-8), OfInt8(-8).Int8())
	assert.Equal(t, int16(-16), OfInt16(-16).Int16())
	assert.Equal(t, int32(-32), OfInt32(-32).Int32())
	assert.Equal(t, int64(-64), OfInt64(-64).Int64())
	assert.Equal(t, -1, OfInt(-1).Int())
	assert.Equal(t, uint8(8), OfUint8(8).Uint8())
	assert.Equal(t, uint16(16), OfUint16(16).Uint16())
	assert.Equal(t, uint32(32), OfUint32(32).Uint32())
	assert.Equal(t, uint64(64), OfUint64(64).Uint64())
	assert.Equal(t, uint(1), OfUint(1).Uint())
	assert.Equal(t, uintptr(0xdead), OfUintptr(0xdead).Uintptr())
	assert.Equal(t, Char('Z'), OfChar('Z').Char())
	assert.Equal(t, float32(1.5), OfFloat32(1.5).Float32())
	assert.Equal(t, 2.25, OfFloat64(2.25).Float64())
	assert.Equal(t, dec, OfDecimal(dec).Decimal())
	assert.True(t, ts.Equal(OfTime(ts).Time()))
	assert.Equal(t, ot, OfOffsetTime(ot).OffsetTime())
	assert.Equal(t, buf, OfBytes(buf).Bytes())
	assert.Equal(t, chars, OfChars(chars).Chars())

	assert.Panics(t, func() { OfInt8(1).Uint8() })
	assert.Panics(t, func() { Value{}.Bool() })
	assert.Panics(t, func() { OfInt32(1).Int64() })
}

func TestInterface(t *testing.T) {
	assert.Equal(t, any(int16(3)), Of(int16(3)).Interface())
	assert.Equal(t, any(Blue), Of(Blue).Interface())
	assert.Equal(t, any(NewDecimal(5, 1)), Of(NewDecimal(5, 1)).Interface())

	ts := time.Date(1999, time.December, 31, 23, 59, 59, 0, time.UTC)
	got, ok := Of(ts).Interface().(time.Time)
	require.True(t, ok)
	assert.True(t, ts.Equal(got))

	d := &derived{}
	assert.Same(t, d, OfAny(d).Interface())
}

func TestString(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{Value{}, "<absent>"},
		{Of(true), "true"},
		{Of(int32(-5)), "-5"},
		{Of(Char('x')), "x"},
		{Of(NewDecimal(125, 2)), "1.25"},
		{Of(1.5), "1.5"},
		{Of(Green), "1"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.v.String())
	}
	assert.Equal(t, "<absent>", fmt.Sprint(Value{}))
}

func TestRepeatedRetrievalIsStable(t *testing.T) {
	v := Of(NewDecimal(-31415, 4))
	before := v
	first := MustGet[Decimal](v)
	for i := 0; i < 100; i++ {
		got, ok := TryGet[Decimal](v)
		require.True(t, ok)
		require.Equal(t, first, got)
		_, ok = TryGet[int64](v)
		require.False(t, ok)
	}
	require.Equal(t, before, v)
}

func TestConcurrentReaders(t *testing.T) {
	shared := OfAny(&derived{base: base{w: 1, h: 1}})
	scalar := Of(uint64(1 << 40))

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				if _, err := Get[*base](shared); err != nil {
					errs <- err
					return
				}
				if n, err := Get[uint64](scalar); err != nil || n != 1<<40 {
					errs <- fmt.Errorf("got %d, %v", n, err)
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

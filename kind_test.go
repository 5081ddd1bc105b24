package tagval

import (
	"reflect"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKinds(t *testing.T) {
	kinds := Kinds()
	require.Len(t, kinds, 18)
	for _, k := range kinds {
		assert.True(t, k.IsScalar(), k.String())
		assert.Positive(t, k.Size(), k.String())
		assert.LessOrEqual(t, k.Size(), cellSize, k.String())
	}
	assert.False(t, KindInvalid.IsScalar())
	assert.False(t, KindObject.IsScalar())
	assert.Zero(t, KindObject.Size())
	assert.Zero(t, KindInvalid.Size())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "offset-time", KindOffsetTime.String())
	assert.Equal(t, "char", KindChar.String())
	assert.Equal(t, "object", KindObject.String())
	assert.Equal(t, "Kind(200)", Kind(200).String())
}

func TestKindSizes(t *testing.T) {
	assert.Equal(t, 1, KindBool.Size())
	assert.Equal(t, 2, KindChar.Size())
	assert.Equal(t, 4, KindFloat32.Size())
	assert.Equal(t, int(unsafe.Sizeof(uintptr(0))), KindUintptr.Size())
	assert.Equal(t, int(unsafe.Sizeof(Decimal{})), KindDecimal.Size())
	assert.Equal(t, int(unsafe.Sizeof(OffsetTime{})), KindOffsetTime.Size())
}

func TestCellFitsEveryScalar(t *testing.T) {
	var v Value
	require.Equal(t, uintptr(cellSize), unsafe.Sizeof(v.bits))
	assert.LessOrEqual(t, unsafe.Sizeof(Decimal{}), unsafe.Sizeof(v.bits))
	assert.LessOrEqual(t, unsafe.Sizeof(OffsetTime{}), unsafe.Sizeof(v.bits))
}

func TestCharString(t *testing.T) {
	assert.Equal(t, "é", Char('é').String())
	assert.Equal(t, "\uFFFD", Char(0xDC00).String())
	assert.Equal(t, []Char{'h', 'i'}, CharsOf("hi"))
	assert.Len(t, CharsOf("\U0001F600"), 2)
}

func TestParseKind(t *testing.T) {
	for _, k := range append(Kinds(), KindObject) {
		got, ok := ParseKind(k.String())
		require.True(t, ok, k.String())
		require.Equal(t, k, got)
	}
	_, ok := ParseKind("string")
	require.False(t, ok)
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindUintptr, kindOf(reflect.Uintptr))
	assert.Equal(t, KindFloat32, kindOf(reflect.Float32))
	for _, rk := range []reflect.Kind{reflect.String, reflect.Struct, reflect.Complex128, reflect.Pointer} {
		assert.Equal(t, KindInvalid, kindOf(rk), rk.String())
	}
	for _, k := range Kinds() {
		if rk := k.reflectKind(); rk != reflect.Invalid && k != KindChar {
			assert.Equal(t, k, kindOf(rk), k.String())
		}
	}
}

package optional

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eqInt(a, b int) bool { return a == b }

func TestRuntimeMode(t *testing.T) {
	o := None[int]()
	assert.True(t, o.IsEmpty())
	assert.Equal(t, 0, o.Size())
	assert.Equal(t, 2, o.GetOr(2))
	assert.Nil(t, o.Slice())

	o.Set(42)
	assert.False(t, o.IsEmpty())
	assert.Equal(t, 1, o.Size())
	assert.Equal(t, 42, o.Front())
	assert.Equal(t, 42, o.GetOr(2))
	assert.Equal(t, []int{42}, o.Slice())

	*o.FrontRef() = 10
	assert.Equal(t, 10, o.Front())

	o.Clear()
	assert.True(t, o.IsEmpty())
	assert.Equal(t, 0, o.Front())
	assert.Nil(t, o.FrontRef())

	o.Set(11)
	assert.Equal(t, []int{11}, o.Slice())
}

func TestFullMode(t *testing.T) {
	o := New(ModeFull, 42)
	assert.False(t, o.IsEmpty())
	assert.Equal(t, 1, o.Size())
	assert.Equal(t, 42, o.Front())
	assert.Equal(t, 42, o.GetOr(2))

	z := Empty[int](ModeFull)
	assert.False(t, z.IsEmpty())
	assert.Equal(t, 1, z.Size())
	assert.Equal(t, 0, z.Front())
	assert.Equal(t, 0, z.GetOr(2))

	o.Clear()
	assert.Equal(t, 1, o.Size())
	assert.Equal(t, 0, o.Front())
}

func TestEmptyMode(t *testing.T) {
	o := New(ModeEmpty, 42)
	assert.True(t, o.IsEmpty())
	assert.Equal(t, 0, o.Size())
	assert.Equal(t, 0, o.Front())
	assert.Equal(t, 2, o.GetOr(2))
	assert.Nil(t, o.Slice())

	o.Set(7)
	assert.True(t, o.IsEmpty())
}

func TestEqual(t *testing.T) {
	assert.True(t, Some(3).Equal(Some(3), eqInt))
	assert.False(t, Some(3).Equal(Some(4), eqInt))
	assert.False(t, Some(3).Equal(None[int](), eqInt))
	assert.True(t, None[int]().Equal(None[int](), eqInt))

	// Empty-mode options always compare equal.
	assert.True(t, New(ModeEmpty, 1).Equal(New(ModeEmpty, 2), eqInt))
}

func TestConvert(t *testing.T) {
	o := Convert(Some(3), func(v int) float64 { return float64(v) })
	assert.Equal(t, ModeRuntime, o.Mode())
	assert.Equal(t, 3.0, o.Front())

	e := Convert(None[int](), func(v int) float64 { return float64(v) })
	assert.True(t, e.IsEmpty())

	f := Convert(New(ModeFull, 3), func(v int) float64 { return float64(v) })
	assert.Equal(t, ModeFull, f.Mode())
	assert.Equal(t, 3.0, f.Front())
}

func TestModeOf(t *testing.T) {
	assert.Equal(t, ModeFull, ModeOf(true))
	assert.Equal(t, ModeEmpty, ModeOf(false))
}

func roundTrip(t *testing.T, o Option[int32]) Option[int32] {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, o.Serialize(&buf, BinaryEncode[int32]))
	got, err := Deserialize(&buf, o.Mode(), BinaryDecode[int32])
	require.NoError(t, err)
	return got
}

func TestSerializeRoundTrip(t *testing.T) {
	eq := func(a, b int32) bool { return a == b }

	full := roundTrip(t, Some[int32](42))
	assert.True(t, Some[int32](42).Equal(full, eq))

	empty := roundTrip(t, None[int32]())
	assert.True(t, None[int32]().Equal(empty, eq))

	pinnedFull := roundTrip(t, New[int32](ModeFull, 7))
	assert.Equal(t, int32(7), pinnedFull.Front())

	// ModeEmpty writes no bytes at all.
	var buf bytes.Buffer
	require.NoError(t, New[int32](ModeEmpty, 7).Serialize(&buf, BinaryEncode[int32]))
	assert.Zero(t, buf.Len())
}

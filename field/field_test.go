package field

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstant(t *testing.T) {
	f := Constant(7)
	assert.Equal(t, 7, f.Def())
	assert.Equal(t, 7, f.At(0))
	assert.Equal(t, 7, f.At(1000))
	assert.Empty(t, f.Ids())
}

func TestMake(t *testing.T) {
	f := Make([]Device{1, 2, 3}, []float64{2, 4, 6, 8})
	assert.Equal(t, 2.0, f.Def())
	assert.Equal(t, 2.0, f.At(0))
	assert.Equal(t, 4.0, f.At(1))
	assert.Equal(t, 6.0, f.At(2))
	assert.Equal(t, 8.0, f.At(3))
	assert.Equal(t, 2.0, f.At(4))
	assert.Equal(t, []Device{1, 2, 3}, f.Ids())
}

func TestMakePanics(t *testing.T) {
	assert.Panics(t, func() { Make([]Device{1}, []int{1}) })
	assert.Panics(t, func() { Make([]Device{2, 1}, []int{0, 1, 2}) })
	assert.Panics(t, func() { Make([]Device{1, 1}, []int{0, 1, 2}) })
}

func TestEqual(t *testing.T) {
	a := Make([]Device{1, 2}, []int{5, 1, 2})
	b := Make([]Device{1, 2}, []int{5, 1, 2})
	assert.True(t, Equal(a, b))

	// An explicit entry equal to the default matches a missing entry.
	c := Make([]Device{1, 2, 3}, []int{5, 1, 2, 5})
	assert.True(t, Equal(a, c))

	assert.False(t, Equal(a, Make([]Device{1, 2}, []int{5, 1, 3})))
	assert.False(t, Equal(a, Constant(5)))
	assert.False(t, Equal(a, Make([]Device{1, 2}, []int{4, 1, 2})))
}

func TestMap2AlignsDomains(t *testing.T) {
	a := Make([]Device{1, 3}, []int{1, 10, 30})
	b := Make([]Device{2, 3}, []int{2, 200, 300})
	r := Map2(func(x, y int) int { return x + y }, a, b)
	assert.Equal(t, 3, r.Def())
	assert.Equal(t, 12, r.At(1))   // 10 + default 2
	assert.Equal(t, 201, r.At(2))  // default 1 + 200
	assert.Equal(t, 330, r.At(3))  // 30 + 300
	assert.Equal(t, 3, r.At(99))   // defaults
	assert.Equal(t, []Device{1, 2, 3}, r.Ids())
}

func TestMap1Map3Map4(t *testing.T) {
	a := Make([]Device{1}, []int{1, 2})
	neg := Map1(func(x int) int { return -x }, a)
	assert.True(t, Equal(neg, Make([]Device{1}, []int{-1, -2})))

	r3 := Map3(func(x, y, z int) int { return x + y + z }, a, Constant(10), Constant(100))
	assert.True(t, Equal(r3, Make([]Device{1}, []int{111, 112})))

	r4 := Map4(func(x, y, z, w int) int { return x + y + z + w }, a, a, a, Constant(1))
	assert.True(t, Equal(r4, Make([]Device{1}, []int{4, 7})))
}

func TestFold(t *testing.T) {
	f := Make([]Device{1, 2, 3}, []float64{2, 4, 6, 8})
	sum := func(a, b float64) float64 { return a + b }

	assert.Equal(t, 12.0, Fold(sum, f, []Device{0, 1, 2}))
	assert.Equal(t, 18.0, Fold(sum, f, []Device{1, 2, 3}))
	assert.Equal(t, 2.0, Fold(sum, f, nil))
	assert.Equal(t, 8.0, Fold(sum, f, []Device{3}))
}

func TestFoldExcl(t *testing.T) {
	f := Make([]Device{1, 2, 3}, []float64{2, 4, 6, 8})
	sum := func(a, b float64) float64 { return a + b }

	assert.Equal(t, 11.0, FoldExcl(sum, f, 5, []Device{0, 1, 2}, 2))
	assert.Equal(t, 17.0, FoldExcl(sum, f, 5, []Device{0, 1, 2}, 9))
	assert.Equal(t, 5.0, FoldExcl(sum, f, 5, []Device{2}, 2))
}

func TestFoldOrder(t *testing.T) {
	f := Make([]Device{1, 2}, []int{0, 1, 2})
	// Right-to-left: op(At(0), op(At(1), At(2))).
	got := Fold(func(a, b int) int { return a*10 + b }, f, []Device{0, 1, 2})
	assert.Equal(t, 0*10+(1*10+2), got)
}

func TestString(t *testing.T) {
	assert.Equal(t, "field(7)", Constant(7).String())
	assert.Equal(t, "field(2; 1:4, 2:6)", Make([]Device{1, 2}, []int{2, 4, 6}).String())
}

func encInt32(w io.Writer, v int32) error { return binary.Write(w, binary.LittleEndian, v) }

func decInt32(r io.Reader) (int32, error) {
	var v int32
	err := binary.Read(r, binary.LittleEndian, &v)
	return v, err
}

func TestSerializeRoundTrip(t *testing.T) {
	for _, f := range []Field[int32]{
		Constant[int32](9),
		Make([]Device{1, 5}, []int32{3, -1, 7}),
	} {
		var buf bytes.Buffer
		require.NoError(t, f.Serialize(&buf, encInt32))
		got, err := Deserialize(&buf, decInt32)
		require.NoError(t, err)
		assert.True(t, Equal(f, got))
		assert.Equal(t, f.Ids(), got.Ids())
	}
}

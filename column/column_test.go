package column

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScalarSlice(t *testing.T) {
	c := NewScalar([]int32{10, 20, 30, 40, 50})
	s := c.Slice(1, 4)
	require.Equal(t, 3, s.Length())
	for i := 0; i < s.Length(); i++ {
		require.Equal(t, c.Get(1+i), s.Get(i))
	}
}

func TestArrayGetAndSlice(t *testing.T) {
	inner := NewScalar([]int8{1, 2, 3})
	arr := NewArray([]uint64{2, 2, 3}, inner)
	require.Equal(t, []int8{1, 2}, arr.Get(0))
	require.Equal(t, []int8{}, arr.Get(1))
	require.Equal(t, []int8{3}, arr.Get(2))

	sliced := arr.Slice(1, 3)
	require.Equal(t, arr.Get(1), sliced.Get(0))
	require.Equal(t, arr.Get(2), sliced.Get(1))
}

func TestNullableGet(t *testing.T) {
	inner := NewStringColumn([]string{"a", "", "c"})
	n := NewNullable([]bool{false, true, false}, inner)
	require.Equal(t, "a", n.Get(0))
	require.Nil(t, n.Get(1))
	require.Equal(t, "c", n.Get(2))
}

func TestVariantGet(t *testing.T) {
	strGroup := NewStringColumn([]string{"hi"})
	intGroup := NewScalar([]int64{7})
	v := NewVariant([]uint8{0, 1, NullDiscriminator}, []Column{strGroup, intGroup}, []uint32{0, 0, 0})
	require.Equal(t, "hi", v.Get(0))
	require.Equal(t, int64(7), v.Get(1))
	require.Nil(t, v.Get(2))
}

func TestTupleNamedAndUnnamed(t *testing.T) {
	named := NewTuple([]TupleField{
		{Name: "id", Col: NewScalar([]uint32{1, 2})},
		{Name: "name", Col: NewStringColumn([]string{"a", "b"})},
	}, true, 2)
	require.Equal(t, map[string]any{"id": uint32(1), "name": "a"}, named.Get(0))

	unnamed := NewTuple([]TupleField{
		{Col: NewScalar([]uint8{1, 2})},
		{Col: NewStringColumn([]string{"x", "y"})},
	}, false, 2)
	require.Equal(t, []any{uint8(1), "x"}, unnamed.Get(0))
}

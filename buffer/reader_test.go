package buffer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReaderPrimitivesRoundTrip(t *testing.T) {
	w := NewWriter(0)
	w.WriteU8(0xAB)
	w.WriteBool(true)
	w.WriteU16LE(0x1234)
	w.WriteU32LE(0xdeadbeef)
	w.WriteI32LE(-7)
	w.WriteU64LE(0x0102030405060708)
	w.WriteI64LE(-123456789)
	w.WriteF32LE(3.5)
	w.WriteF64LE(2.718281828)
	w.WriteVarint(300)
	w.WriteString("hello")

	r := NewReader(w.Bytes())

	u8, err := r.ReadU8()
	require.NoError(t, err)
	require.Equal(t, uint8(0xAB), u8)

	b, err := r.ReadBool()
	require.NoError(t, err)
	require.True(t, b)

	u16, err := r.ReadU16LE()
	require.NoError(t, err)
	require.Equal(t, uint16(0x1234), u16)

	u32, err := r.ReadU32LE()
	require.NoError(t, err)
	require.Equal(t, uint32(0xdeadbeef), u32)

	i32, err := r.ReadI32LE()
	require.NoError(t, err)
	require.Equal(t, int32(-7), i32)

	u64, err := r.ReadU64LE()
	require.NoError(t, err)
	require.Equal(t, uint64(0x0102030405060708), u64)

	i64, err := r.ReadI64LE()
	require.NoError(t, err)
	require.Equal(t, int64(-123456789), i64)

	f32, err := r.ReadF32LE()
	require.NoError(t, err)
	require.Equal(t, float32(3.5), f32)

	f64, err := r.ReadF64LE()
	require.NoError(t, err)
	require.Equal(t, 2.718281828, f64)

	v, err := r.ReadVarInt()
	require.NoError(t, err)
	require.Equal(t, uint64(300), v)

	s, err := r.ReadString()
	require.NoError(t, err)
	require.Equal(t, "hello", s)

	require.Equal(t, 0, r.Len())
}

func TestReaderUnderflow(t *testing.T) {
	r := NewReader([]byte{0x01})
	_, err := r.ReadU32LE()
	require.ErrorIs(t, err, ErrBufferUnderflow)
}

func TestVarIntMultiByte(t *testing.T) {
	cases := []uint64{0, 1, 127, 128, 300, 1 << 32, 1<<63 - 1}
	for _, c := range cases {
		w := NewWriter(0)
		w.WriteVarint(c)
		r := NewReader(w.Bytes())
		got, err := r.ReadVarInt()
		require.NoError(t, err)
		require.Equal(t, c, got)
		require.Equal(t, VarIntSize(c), len(w.Bytes()))
	}
}

func TestReadTypedArrayZeroCopy(t *testing.T) {
	w := NewWriter(0)
	values := []uint32{1, 2, 3, 4}
	WriteTypedArray(w, values)
	r := NewReader(w.Bytes())
	got, err := ReadTypedArray[uint32](r, 4)
	require.NoError(t, err)
	require.Equal(t, values, got)
}

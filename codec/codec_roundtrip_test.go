package codec_test

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/launix-de/chwire/block"
	"github.com/launix-de/chwire/buffer"
	"github.com/launix-de/chwire/codec"
	"github.com/launix-de/chwire/column"
)

// roundTrip encodes one field through a real block (so kind tree and
// any prefix bytes are exercised exactly as the wire format requires)
// and decodes it back, returning the materialized rows for that field.
func roundTrip(t *testing.T, typeString string, values []any) []any {
	t.Helper()
	c, err := codec.GetCodec(typeString)
	require.NoError(t, err)
	col, err := c.FromValues(values)
	require.NoError(t, err)

	schema := []block.Field{{Name: "v", Type: typeString}}
	data, err := block.EncodeBlock(schema, []column.Column{col}, len(values))
	require.NoError(t, err)

	b, err := block.DecodeBlock(buffer.NewReader(data), block.Options{})
	require.NoError(t, err)
	require.Equal(t, len(values), b.Rows)

	rows := block.ToArrayRows(b)
	out := make([]any, len(rows))
	for i, r := range rows {
		out[i] = r[0]
	}
	return out
}

func TestNullableRoundTrip(t *testing.T) {
	got := roundTrip(t, "Nullable(Int32)", []any{int32(1), nil, int32(3)})
	require.Equal(t, int32(1), got[0])
	require.Nil(t, got[1])
	require.Equal(t, int32(3), got[2])
}

func TestArrayRoundTrip(t *testing.T) {
	got := roundTrip(t, "Array(String)", []any{[]any{"a", "b"}, []any{}})
	require.Equal(t, []string{"a", "b"}, got[0])
	require.Equal(t, []string{}, got[1])
}

func TestMapRoundTrip(t *testing.T) {
	got := roundTrip(t, "Map(String,UInt32)", []any{
		map[string]any{"x": uint32(1), "y": uint32(2)},
	})
	require.Len(t, got, 1)
}

func TestTupleRoundTrip(t *testing.T) {
	got := roundTrip(t, "Tuple(id UInt32,name String)", []any{
		[]any{uint32(7), "alice"},
	})
	require.Len(t, got, 1)
}

func TestLowCardinalityRoundTrip(t *testing.T) {
	got := roundTrip(t, "LowCardinality(String)", []any{"red", "green", "red", "red", "blue"})
	require.Equal(t, []any{"red", "green", "red", "red", "blue"}, got)
}

func TestVariantRoundTrip(t *testing.T) {
	got := roundTrip(t, "Variant(String,Int64)", []any{
		codec.VariantValue{Tag: 0, Value: "hi"},
		codec.VariantValue{Tag: 1, Value: int64(42)},
	})
	require.Len(t, got, 2)
}

func TestDynamicRoundTrip(t *testing.T) {
	got := roundTrip(t, "Dynamic", []any{int64(1), "two", true})
	require.Len(t, got, 3)
}

func TestJSONRoundTrip(t *testing.T) {
	got := roundTrip(t, "JSON", []any{
		map[string]any{"a": int64(1), "b": "x"},
		map[string]any{"a": int64(2)},
	})
	require.Len(t, got, 2)
}

func TestUUIDRoundTrip(t *testing.T) {
	got := roundTrip(t, "UUID", []any{"f47ac10b-58cc-4372-a567-0e02b2c3d479"})
	require.Len(t, got[0], 16)
}

func TestDecimalRoundTrip(t *testing.T) {
	got := roundTrip(t, "Decimal(18,4)", []any{"12.3400"})
	require.NotEmpty(t, got[0])
}

func TestBigIntRoundTrip(t *testing.T) {
	got := roundTrip(t, "Int128", []any{"170141183460469231731687303715884105727"})
	require.NotEmpty(t, got[0])
}

func TestEnumRoundTrip(t *testing.T) {
	got := roundTrip(t, "Enum8('a' = 1, 'b' = 2)", []any{"a", "b", "a"})
	require.Equal(t, []any{int8(1), int8(2), int8(1)}, got)
}

func TestIPRoundTrip(t *testing.T) {
	got := roundTrip(t, "IPv4", []any{"192.168.0.1"})
	require.Equal(t, netip.MustParseAddr("192.168.0.1"), got[0])
}

func TestFixedStringRoundTrip(t *testing.T) {
	got := roundTrip(t, "FixedString(4)", []any{"ab"})
	require.Equal(t, []byte("ab\x00\x00"), got[0])
}

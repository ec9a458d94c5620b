package block

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/launix-de/chwire/buffer"
	"github.com/launix-de/chwire/codec"
	"github.com/launix-de/chwire/column"
)

func TestEncodeDecodeBlockRoundTrip(t *testing.T) {
	schema := []Field{
		{Name: "id", Type: "UInt32"},
		{Name: "name", Type: "String"},
		{Name: "tags", Type: "Array(String)"},
	}
	idCodec, err := codec.GetCodec("UInt32")
	require.NoError(t, err)
	nameCodec, err := codec.GetCodec("String")
	require.NoError(t, err)
	tagsCodec, err := codec.GetCodec("Array(String)")
	require.NoError(t, err)

	idCol, err := idCodec.FromValues([]any{uint32(1), uint32(2)})
	require.NoError(t, err)
	nameCol, err := nameCodec.FromValues([]any{"alice", "bob"})
	require.NoError(t, err)
	tagsCol, err := tagsCodec.FromValues([]any{[]any{"a", "b"}, []any{}})
	require.NoError(t, err)

	data, err := EncodeBlock(schema, []column.Column{idCol, nameCol, tagsCol}, 2)
	require.NoError(t, err)

	b, err := DecodeBlock(buffer.NewReader(data), Options{})
	require.NoError(t, err)
	require.Equal(t, 2, b.Rows)
	rows := AsRows(b)
	require.Equal(t, uint32(1), rows[0]["id"])
	require.Equal(t, "alice", rows[0]["name"])
	require.Equal(t, []string{"a", "b"}, rows[0]["tags"])
}

func TestDecodeAllMergesMultipleBlocks(t *testing.T) {
	schema := []Field{{Name: "v", Type: "Int32"}}
	c, err := codec.GetCodec("Int32")
	require.NoError(t, err)

	col1, err := c.FromValues([]any{int32(1), int32(2)})
	require.NoError(t, err)
	col2, err := c.FromValues([]any{int32(3)})
	require.NoError(t, err)

	data1, err := EncodeBlock(schema, []column.Column{col1}, 2)
	require.NoError(t, err)
	data2, err := EncodeBlock(schema, []column.Column{col2}, 1)
	require.NoError(t, err)

	var buf bytes.Buffer
	buf.Write(data1)
	buf.Write(data2)

	merged, err := DecodeAll(&buf, Options{})
	require.NoError(t, err)
	require.Equal(t, 3, merged.Rows)
	rows := ToArrayRows(merged)
	require.Equal(t, int32(1), rows[0][0])
	require.Equal(t, int32(3), rows[2][0])
}

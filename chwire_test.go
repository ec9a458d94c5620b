package chwire

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/launix-de/chwire/column"
)

func TestEncodeDecodeBlockPublicAPI(t *testing.T) {
	codec1, err := GetCodec("UInt32")
	require.NoError(t, err)
	codec2, err := GetCodec("String")
	require.NoError(t, err)

	idCol, err := codec1.FromValues([]any{uint32(10), uint32(20)})
	require.NoError(t, err)
	nameCol, err := codec2.FromValues([]any{"x", "y"})
	require.NoError(t, err)

	schema := []Field{{Name: "id", Type: "UInt32"}, {Name: "name", Type: "String"}}
	data, err := EncodeBlock(schema, []column.Column{idCol, nameCol}, 2)
	require.NoError(t, err)

	b, err := DecodeAll(bytes.NewReader(data), Options{})
	require.NoError(t, err)
	rows := AsRows(b)
	require.Equal(t, uint32(10), rows[0]["id"])
	require.Equal(t, "y", rows[1]["name"])
}

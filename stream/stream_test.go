package stream

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/launix-de/chwire/block"
)

func TestStreamEncodeDecodeRoundTrip(t *testing.T) {
	schema := []block.Field{
		{Name: "id", Type: "UInt32"},
		{Name: "name", Type: "String"},
	}
	enc := NewEncoder(schema)

	rows := make(chan []any, 4)
	rows <- []any{uint32(1), "a"}
	rows <- []any{uint32(2), "b"}
	close(rows)

	chunkCh := make(chan []byte, 8)
	for data := range enc.StreamEncode(rows, 1) {
		chunkCh <- data
	}
	close(chunkCh)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	blocks, errs := Decode(ctx, chunkCh, block.Options{})
	var got []block.Block
	for b := range blocks {
		got = append(got, b)
	}
	require.NoError(t, <-errs)
	require.Len(t, got, 2)
	require.Equal(t, uint32(1), block.AsRows(got[0])[0]["id"])
}

func TestStreamEncodeDecodePartialChunks(t *testing.T) {
	schema := []block.Field{{Name: "v", Type: "Int64"}}
	enc := NewEncoder(schema)

	rows := make(chan []any, 1)
	rows <- []any{int64(42)}
	close(rows)

	var full []byte
	for data := range enc.StreamEncode(rows, 16) {
		full = append(full, data...)
	}

	chunkCh := make(chan []byte)
	go func() {
		defer close(chunkCh)
		for _, b := range full {
			chunkCh <- []byte{b}
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	blocks, errs := Decode(ctx, chunkCh, block.Options{})
	var got []block.Block
	for b := range blocks {
		got = append(got, b)
	}
	require.NoError(t, <-errs)
	require.Len(t, got, 1)
	require.Equal(t, int64(42), block.AsRows(got[0])[0]["v"])
}

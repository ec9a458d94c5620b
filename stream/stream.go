/*
Copyright (C) 2026  Carl-Philip Hänsch

	This program is free software: you can redistribute it and/or modify
	it under the terms of the GNU General Public License as published by
	the Free Software Foundation, either version 3 of the License, or
	(at your option) any later version.

	This program is distributed in the hope that it will be useful,
	but WITHOUT ANY WARRANTY; without even the implied warranty of
	MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
	GNU General Public License for more details.

	You should have received a copy of the GNU General Public License
	along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

// Package stream is the chunked front end over package block: Decode
// pulls arbitrarily-sized byte chunks (as they arrive off a socket or
// file tail) and yields whole Blocks as soon as enough bytes have
// accumulated to decode one, buffering partial blocks across chunk
// boundaries rather than requiring the whole stream up front the way
// block.DecodeAll does.
package stream

import (
	"context"
	"errors"
	"io"

	"github.com/launix-de/chwire/block"
	"github.com/launix-de/chwire/buffer"
	"github.com/launix-de/chwire/codec"
	"github.com/launix-de/chwire/column"
	"github.com/launix-de/chwire/compress"
)

// DefaultBlockSize is StreamEncode's block row-count default when the
// caller passes <= 0.
const DefaultBlockSize = 65536

// Encoder batches row-oriented values into blocks against a fixed
// schema, the streaming counterpart of block.EncodeBlock.
type Encoder struct {
	Schema []block.Field
}

// NewEncoder constructs an Encoder for schema.
func NewEncoder(schema []block.Field) *Encoder { return &Encoder{Schema: schema} }

// StreamEncode batches rows into blocks of blockSize (DefaultBlockSize
// when blockSize <= 0), emitting one wire-encoded block per batch plus a
// final end-of-stream marker chunk once rows closes. A batch that fails
// to encode (a field codec rejecting a row's value) is dropped silently
// from the output — callers that need per-row error visibility should
// build columns themselves and call block.EncodeBlock directly.
func (e *Encoder) StreamEncode(rows <-chan []any, blockSize int) <-chan []byte {
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}
	out := make(chan []byte)
	go func() {
		defer close(out)
		batch := make([][]any, 0, blockSize)
		flush := func() {
			if len(batch) == 0 {
				return
			}
			data, err := e.encodeBatch(batch)
			batch = batch[:0]
			if err != nil {
				return
			}
			out <- data
		}
		for row := range rows {
			batch = append(batch, row)
			if len(batch) >= blockSize {
				flush()
			}
		}
		flush()
		w := buffer.NewWriter(2)
		block.WriteEndMarker(w)
		out <- w.Bytes()
	}()
	return out
}

func (e *Encoder) encodeBatch(rows [][]any) ([]byte, error) {
	cols := make([]column.Column, len(e.Schema))
	for fi, f := range e.Schema {
		c, err := codec.GetCodec(f.Type)
		if err != nil {
			return nil, err
		}
		values := make([]any, len(rows))
		for ri, row := range rows {
			values[ri] = row[fi]
		}
		col, err := c.FromValues(values)
		if err != nil {
			return nil, err
		}
		cols[fi] = col
	}
	return block.EncodeBlock(e.Schema, cols, len(rows))
}

// Decode consumes byte chunks from chunks (of any size — a full block,
// a network read's worth, or a single byte) and emits each Block on the
// returned channel as soon as its bytes are complete, buffering across
// chunk boundaries when a block's declared length exceeds what has
// arrived so far. End-marker blocks are consumed without emitting
// anything. Both channels close once chunks closes or ctx is
// canceled; a non-nil value on the error channel always precedes that
// channel's close.
func Decode(ctx context.Context, chunks <-chan []byte, opts block.Options) (<-chan block.Block, <-chan error) {
	out := make(chan block.Block)
	errs := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errs)
		var pending []byte
		for {
			for {
				if len(pending) == 0 {
					break
				}
				r := buffer.NewReader(pending)
				b, err := block.DecodeBlock(r, opts)
				if errors.Is(err, buffer.ErrBufferUnderflow) {
					break
				}
				if errors.Is(err, io.EOF) {
					// End marker: consume it, emit nothing, keep reading.
					pending = pending[len(pending)-r.Len():]
					continue
				}
				if err != nil {
					errs <- err
					return
				}
				consumed := len(pending) - r.Len()
				pending = pending[consumed:]
				select {
				case out <- b:
				case <-ctx.Done():
					errs <- ctx.Err()
					return
				}
			}
			select {
			case chunk, ok := <-chunks:
				if !ok {
					return
				}
				pending = append(pending, chunk...)
			case <-ctx.Done():
				errs <- ctx.Err()
				return
			}
		}
	}()
	return out, errs
}

// DecodeCompressed composes f.Unwrap with Decode for a compressed Native
// stream: r carries compression-framed bytes (e.g. an LZ4-framed file),
// f removes the framing, and the decompressed bytes are fed to Decode
// exactly as if they had arrived off the wire uncompressed. Core Decode
// and Encoder never import package compress themselves; this is the one
// seam a caller plugs a Framer into.
func DecodeCompressed(r io.Reader, f compress.Framer, opts block.Options) (<-chan block.Block, <-chan error) {
	ctx := context.Background()
	plain := f.Unwrap(r)
	chunks := make(chan []byte)
	go func() {
		defer close(chunks)
		buf := make([]byte, 64*1024)
		for {
			n, err := plain.Read(buf)
			if n > 0 {
				chunk := make([]byte, n)
				copy(chunk, buf[:n])
				select {
				case chunks <- chunk:
				case <-ctx.Done():
					return
				}
			}
			if err != nil {
				return
			}
		}
	}()
	return Decode(ctx, chunks, opts)
}

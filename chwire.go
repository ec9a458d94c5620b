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

// Package chwire is the client-side encoder/decoder for the Native
// columnar wire format: parse a type string, get a codec, and either
// build a block in one call (EncodeBlock/DecodeAll) or push/pull it
// through the chunked streaming front end (StreamEncode/Decode). This
// file is the one public entry point callers outside this module should
// import; packages buffer/types/column/codec/block/stream/table/compress
// are implementation detail reachable for anyone who wants finer control.
package chwire

import (
	"context"
	"io"

	"github.com/launix-de/chwire/block"
	"github.com/launix-de/chwire/codec"
	"github.com/launix-de/chwire/column"
	"github.com/launix-de/chwire/stream"
)

// Field, Block and Row are re-exported from package block so callers
// never need to import it directly for the common case.
type (
	Field = block.Field
	Block = block.Block
	Row   = block.Row
)

// Options configures decode-side behavior (currently just Map's
// materialized shape); re-exported from package block.
type Options = block.Options

// Variant is the explicit tagged value build-mode callers use for a
// Variant column's row instead of relying on ambiguous type inference;
// re-exported from package codec.
type Variant = codec.VariantValue

// EncodeBlock serializes schema/cols/rows as one self-describing Native
// block.
func EncodeBlock(schema []Field, cols []column.Column, rows int) ([]byte, error) {
	return block.EncodeBlock(schema, cols, rows)
}

// DecodeAll reads every block from r and merges them into one logical
// Block.
func DecodeAll(r io.Reader, opts Options) (Block, error) {
	return block.DecodeAll(r, opts)
}

// AsRows materializes b into one map per row.
func AsRows(b Block) []Row { return block.AsRows(b) }

// ToArrayRows materializes b into one []any per row, in field
// declaration order.
func ToArrayRows(b Block) [][]any { return block.ToArrayRows(b) }

// GetCodec parses typeString and returns its (memoized) codec tree.
func GetCodec(typeString string) (codec.Codec, error) { return codec.GetCodec(typeString) }

// Encoder batches rows into wire-encoded blocks against a fixed schema;
// re-exported from package stream.
type Encoder = stream.Encoder

// NewEncoder constructs an Encoder for schema.
func NewEncoder(schema []Field) *Encoder { return stream.NewEncoder(schema) }

// Decode pulls byte chunks and yields decoded Blocks as soon as each one
// completes, buffering across chunk boundaries.
func Decode(ctx context.Context, chunks <-chan []byte, opts Options) (<-chan Block, <-chan error) {
	return stream.Decode(ctx, chunks, opts)
}

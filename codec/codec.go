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

// Package codec holds one implementation per Native data type, all sharing
// one contract: encode a Column to bytes, decode bytes+row-count back into
// a Column, build a Column from loose values, and (for the handful of
// types that carry one) read/write a one-time per-column-per-block prefix
// plus the recursive serialization-kind tree.
//
// Codecs must be safe to share read-only through the process-wide cache.
// Dynamic and Json would naturally want a mutable "learned schema" field —
// instead their per-block state is returned as a PrefixState value from
// ReadPrefix and threaded explicitly through DecodeDense, so the codec
// struct itself never mutates after construction.
package codec

import "github.com/launix-de/chwire/buffer"
import "github.com/launix-de/chwire/column"

// PrefixState is the opaque, per-column-per-block metadata a codec reads
// once before its payload. Scalar codecs have none and never produce or
// consume one.
type PrefixState interface{}

// Builder is the append-only construction side of a codec: Append takes
// one row-oriented loose value at a time, Finish seals the column into an
// immutable Column.
type Builder interface {
	Append(v any) error
	Finish() column.Column
}

// Codec is the per-type contract every Native data type implements.
type Codec interface {
	// TypeString returns the canonical wire type string for this codec
	// instance, e.g. "Nullable(String)".
	TypeString() string

	// Encode serializes col's full payload (not its prefix or kind
	// bytes). sizeHint, when > 0, pre-sizes the output writer.
	Encode(col column.Column, sizeHint int) ([]byte, error)

	// DecodeDense consumes exactly the dense payload for rows rows and
	// returns the materialized Column. prefix is whatever ReadPrefix
	// returned for this column in this block (nil if the codec has no
	// prefix). kind is this codec's own already-resolved kind node,
	// carried through only so composite codecs (Array, Map, Tuple,
	// Nullable, Variant) can recurse into Decode for each structural
	// child with that child's kind subtree; leaf codecs ignore it, and
	// Dynamic/Json decode their members with a nil kind (dense).
	DecodeDense(r *buffer.Reader, rows int, prefix PrefixState, kind *KindNode) (column.Column, error)

	// FromValues builds a Column from row-oriented loose values (the
	// build-mode entry point used by the table sugar).
	FromValues(values []any) (column.Column, error)

	// Builder returns an append-only builder, pre-sized when sizeHint>0.
	Builder(sizeHint int) Builder

	// ZeroValue is the type's default/placeholder, used behind null
	// flags and to prefill sparse runs before scatter.
	ZeroValue() any

	// EstimateSize returns an upper-ish estimate of Encode's output size
	// for rows rows, used to pre-size writers.
	EstimateSize(rows int) int
}

// Prefixed is implemented by codecs that emit a one-time metadata header
// before their payload: Nullable, Array, Map, Tuple (each by delegation),
// LowCardinality, Variant, Dynamic, Json.
type Prefixed interface {
	WritePrefix(w *buffer.Writer, col column.Column) error
	ReadPrefix(r *buffer.Reader) (PrefixState, error)
	// DefaultPrefix returns the prefix state a Builder/FromValues-built
	// column implies, used when encoding data that was never decoded
	// from a prefix in the first place (e.g. Variant's BASIC mode=0).
	DefaultPrefix() PrefixState
}

// KindTree is implemented by every codec: ReadKinds consumes the
// recursive one-byte-per-node serialization kind tree in structural
// order; WriteKinds always emits Dense at every node, since this
// implementation never encodes Sparse, only reconstructs it on decode.
type KindTree interface {
	ReadKinds(r *buffer.Reader) (*KindNode, error)
	WriteKinds(w *buffer.Writer)
}

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

package codec

import (
	"fmt"
	"reflect"

	"github.com/launix-de/chwire/buffer"
	"github.com/launix-de/chwire/column"
)

// ArrayCodec writes cumulative UInt64 end-offsets followed by the
// flattened inner payload for the whole array span, the same
// offset-table-over-flat-data shape used for variable-length string
// chunks, generalized to an arbitrary inner codec.
type ArrayCodec struct {
	inner Codec
}

func NewArrayCodec(inner Codec) Codec { return &ArrayCodec{inner: inner} }

func (c *ArrayCodec) TypeString() string { return "Array(" + c.inner.TypeString() + ")" }

func (c *ArrayCodec) Encode(col column.Column, sizeHint int) ([]byte, error) {
	arr, ok := col.(*column.Array)
	if !ok {
		return nil, ErrWrongValueType
	}
	w := buffer.NewWriter(sizeHint)
	buffer.WriteTypedArray(w, arr.Offsets)
	total := 0
	if len(arr.Offsets) > 0 {
		total = int(arr.Offsets[len(arr.Offsets)-1])
	}
	payload, err := c.inner.Encode(arr.Inner.Slice(0, total), sizeHint)
	if err != nil {
		return nil, err
	}
	w.WriteBytes(payload)
	return w.Bytes(), nil
}

func (c *ArrayCodec) DecodeDense(r *buffer.Reader, rows int, prefix PrefixState, kind *KindNode) (column.Column, error) {
	offsets, err := buffer.ReadTypedArray[uint64](r, rows)
	if err != nil {
		return nil, err
	}
	total := 0
	if rows > 0 {
		total = int(offsets[rows-1])
	}
	var innerKind *KindNode
	if kind != nil && len(kind.Children) == 1 {
		innerKind = kind.Children[0]
	}
	inner, err := Decode(c.inner, r, total, prefix, innerKind)
	if err != nil {
		return nil, err
	}
	return column.NewArray(offsets, inner), nil
}

func (c *ArrayCodec) FromValues(values []any) (column.Column, error) {
	offsets := make([]uint64, len(values))
	var flat []any
	var cumulative uint64
	for i, v := range values {
		items, err := toSlice(v)
		if err != nil {
			return nil, err
		}
		flat = append(flat, items...)
		cumulative += uint64(len(items))
		offsets[i] = cumulative
	}
	inner, err := c.inner.FromValues(flat)
	if err != nil {
		return nil, err
	}
	return column.NewArray(offsets, inner), nil
}

// toSlice reflects a loose []T (any concrete element type) into []any so
// Array/Map's build path can accept values of whatever type the caller's
// inner element codec actually expects.
func toSlice(v any) ([]any, error) {
	if v == nil {
		return nil, nil
	}
	if s, ok := v.([]any); ok {
		return s, nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, fmt.Errorf("%w: expected array/slice value, got %T", ErrWrongValueType, v)
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, nil
}

func (c *ArrayCodec) Builder(sizeHint int) Builder {
	return &arrayBuilder{inner: c.inner, innerBuilder: c.inner.Builder(sizeHint), offsets: make([]uint64, 0, sizeHint)}
}

func (c *ArrayCodec) ZeroValue() any { return []any{} }

func (c *ArrayCodec) EstimateSize(rows int) int { return rows*8 + c.inner.EstimateSize(rows) }

func (c *ArrayCodec) ReadKinds(r *buffer.Reader) (*KindNode, error) {
	if kt, ok := c.inner.(KindTree); ok {
		return readWrappedKinds(r, kt)
	}
	return readLeafKinds(r)
}

func (c *ArrayCodec) WriteKinds(w *buffer.Writer) {
	if kt, ok := c.inner.(KindTree); ok {
		writeWrappedKinds(w, kt)
		return
	}
	writeLeafKinds(w)
}

func (c *ArrayCodec) WritePrefix(w *buffer.Writer, col column.Column) error {
	if p, ok := c.inner.(Prefixed); ok {
		arr, ok2 := col.(*column.Array)
		if !ok2 {
			return ErrWrongValueType
		}
		return p.WritePrefix(w, arr.Inner)
	}
	return nil
}

func (c *ArrayCodec) ReadPrefix(r *buffer.Reader) (PrefixState, error) {
	if p, ok := c.inner.(Prefixed); ok {
		return p.ReadPrefix(r)
	}
	return nil, nil
}

func (c *ArrayCodec) DefaultPrefix() PrefixState {
	if p, ok := c.inner.(Prefixed); ok {
		return p.DefaultPrefix()
	}
	return nil
}

type arrayBuilder struct {
	inner        Codec
	innerBuilder Builder
	offsets      []uint64
	cumulative   uint64
}

func (b *arrayBuilder) Append(v any) error {
	items, err := toSlice(v)
	if err != nil {
		return err
	}
	for _, item := range items {
		if err := b.innerBuilder.Append(item); err != nil {
			return err
		}
	}
	b.cumulative += uint64(len(items))
	b.offsets = append(b.offsets, b.cumulative)
	return nil
}

func (b *arrayBuilder) Finish() column.Column {
	return column.NewArray(b.offsets, b.innerBuilder.Finish())
}

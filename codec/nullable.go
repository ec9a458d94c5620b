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
	"github.com/launix-de/chwire/buffer"
	"github.com/launix-de/chwire/column"
)

// NullableCodec writes a one-byte-per-row null map followed by the inner
// codec's dense payload for every row (null rows carry the inner
// ZeroValue, never omitted). It delegates its own Prefixed
// methods straight through to the inner codec when the inner codec has
// one, since Nullable itself carries no metadata of its own.
type NullableCodec struct {
	inner Codec
}

func NewNullableCodec(inner Codec) Codec { return &NullableCodec{inner: inner} }

func (c *NullableCodec) TypeString() string { return "Nullable(" + c.inner.TypeString() + ")" }

func (c *NullableCodec) Encode(col column.Column, sizeHint int) ([]byte, error) {
	n, ok := col.(*column.Nullable)
	if !ok {
		return nil, ErrWrongValueType
	}
	w := buffer.NewWriter(sizeHint)
	for _, isNull := range n.Nulls {
		w.WriteBool(isNull)
	}
	payload, err := c.inner.Encode(n.Inner, sizeHint)
	if err != nil {
		return nil, err
	}
	w.WriteBytes(payload)
	return w.Bytes(), nil
}

func (c *NullableCodec) DecodeDense(r *buffer.Reader, rows int, prefix PrefixState, kind *KindNode) (column.Column, error) {
	nulls := make([]bool, rows)
	for i := 0; i < rows; i++ {
		b, err := r.ReadBool()
		if err != nil {
			return nil, err
		}
		nulls[i] = b
	}
	var innerKind *KindNode
	if kind != nil && len(kind.Children) == 1 {
		innerKind = kind.Children[0]
	}
	inner, err := Decode(c.inner, r, rows, prefix, innerKind)
	if err != nil {
		return nil, err
	}
	return column.NewNullable(nulls, inner), nil
}

func (c *NullableCodec) FromValues(values []any) (column.Column, error) {
	nulls := make([]bool, len(values))
	innerValues := make([]any, len(values))
	zero := c.inner.ZeroValue()
	for i, v := range values {
		if v == nil {
			nulls[i] = true
			innerValues[i] = zero
			continue
		}
		innerValues[i] = v
	}
	inner, err := c.inner.FromValues(innerValues)
	if err != nil {
		return nil, err
	}
	return column.NewNullable(nulls, inner), nil
}

func (c *NullableCodec) Builder(sizeHint int) Builder {
	return &nullableBuilder{inner: c.inner, innerBuilder: c.inner.Builder(sizeHint), nulls: make([]bool, 0, sizeHint)}
}

func (c *NullableCodec) ZeroValue() any { return nil }

func (c *NullableCodec) EstimateSize(rows int) int { return rows + c.inner.EstimateSize(rows) }

func (c *NullableCodec) ReadKinds(r *buffer.Reader) (*KindNode, error) {
	if kt, ok := c.inner.(KindTree); ok {
		return readWrappedKinds(r, kt)
	}
	return readLeafKinds(r)
}

func (c *NullableCodec) WriteKinds(w *buffer.Writer) {
	if kt, ok := c.inner.(KindTree); ok {
		writeWrappedKinds(w, kt)
		return
	}
	writeLeafKinds(w)
}

func (c *NullableCodec) WritePrefix(w *buffer.Writer, col column.Column) error {
	if p, ok := c.inner.(Prefixed); ok {
		n, ok2 := col.(*column.Nullable)
		if !ok2 {
			return ErrWrongValueType
		}
		return p.WritePrefix(w, n.Inner)
	}
	return nil
}

func (c *NullableCodec) ReadPrefix(r *buffer.Reader) (PrefixState, error) {
	if p, ok := c.inner.(Prefixed); ok {
		return p.ReadPrefix(r)
	}
	return nil, nil
}

func (c *NullableCodec) DefaultPrefix() PrefixState {
	if p, ok := c.inner.(Prefixed); ok {
		return p.DefaultPrefix()
	}
	return nil
}

type nullableBuilder struct {
	inner        Codec
	innerBuilder Builder
	nulls        []bool
}

func (b *nullableBuilder) Append(v any) error {
	if v == nil {
		b.nulls = append(b.nulls, true)
		return b.innerBuilder.Append(b.inner.ZeroValue())
	}
	b.nulls = append(b.nulls, false)
	return b.innerBuilder.Append(v)
}

func (b *nullableBuilder) Finish() column.Column {
	return column.NewNullable(b.nulls, b.innerBuilder.Finish())
}

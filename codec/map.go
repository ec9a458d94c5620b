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

// MapCodec is wire-identical to ArrayCodec's offset framing but with two
// flattened inner payloads (keys, then values) sharing one offset table.
// asArray controls only the in-memory Get() shape (column.KV slice vs
// map[any]any), never the wire bytes.
type MapCodec struct {
	key, value Codec
	asArray    bool
}

func NewMapCodec(key, value Codec, asArray bool) Codec {
	return &MapCodec{key: key, value: value, asArray: asArray}
}

func (c *MapCodec) TypeString() string {
	return "Map(" + c.key.TypeString() + "," + c.value.TypeString() + ")"
}

func (c *MapCodec) Encode(col column.Column, sizeHint int) ([]byte, error) {
	m, ok := col.(*column.Map)
	if !ok {
		return nil, ErrWrongValueType
	}
	w := buffer.NewWriter(sizeHint)
	buffer.WriteTypedArray(w, m.Offsets)
	total := 0
	if len(m.Offsets) > 0 {
		total = int(m.Offsets[len(m.Offsets)-1])
	}
	keys, err := c.key.Encode(m.Keys.Slice(0, total), sizeHint)
	if err != nil {
		return nil, err
	}
	values, err := c.value.Encode(m.Values.Slice(0, total), sizeHint)
	if err != nil {
		return nil, err
	}
	w.WriteBytes(keys)
	w.WriteBytes(values)
	return w.Bytes(), nil
}

func (c *MapCodec) DecodeDense(r *buffer.Reader, rows int, prefix PrefixState, kind *KindNode) (column.Column, error) {
	offsets, err := buffer.ReadTypedArray[uint64](r, rows)
	if err != nil {
		return nil, err
	}
	total := 0
	if rows > 0 {
		total = int(offsets[rows-1])
	}
	mp, _ := prefix.(*MapPrefix)
	var keyPrefix, valuePrefix PrefixState
	var keyKind, valueKind *KindNode
	if mp != nil {
		keyPrefix, valuePrefix = mp.Key, mp.Value
	}
	if kind != nil && len(kind.Children) == 2 {
		keyKind, valueKind = kind.Children[0], kind.Children[1]
	}
	keys, err := Decode(c.key, r, total, keyPrefix, keyKind)
	if err != nil {
		return nil, err
	}
	values, err := Decode(c.value, r, total, valuePrefix, valueKind)
	if err != nil {
		return nil, err
	}
	return column.NewMap(offsets, keys, values, c.asArray), nil
}

func (c *MapCodec) FromValues(values []any) (column.Column, error) {
	offsets := make([]uint64, len(values))
	var flatKeys, flatValues []any
	var cumulative uint64
	for i, v := range values {
		pairs, err := toKVSlice(v)
		if err != nil {
			return nil, err
		}
		for _, kv := range pairs {
			flatKeys = append(flatKeys, kv.Key)
			flatValues = append(flatValues, kv.Value)
		}
		cumulative += uint64(len(pairs))
		offsets[i] = cumulative
	}
	keys, err := c.key.FromValues(flatKeys)
	if err != nil {
		return nil, err
	}
	vals, err := c.value.FromValues(flatValues)
	if err != nil {
		return nil, err
	}
	return column.NewMap(offsets, keys, vals, c.asArray), nil
}

func toKVSlice(v any) ([]column.KV, error) {
	switch m := v.(type) {
	case []column.KV:
		return m, nil
	case map[any]any:
		out := make([]column.KV, 0, len(m))
		for k, val := range m {
			out = append(out, column.KV{Key: k, Value: val})
		}
		return out, nil
	case map[string]any:
		out := make([]column.KV, 0, len(m))
		for k, val := range m {
			out = append(out, column.KV{Key: k, Value: val})
		}
		return out, nil
	default:
		return nil, ErrWrongValueType
	}
}

func (c *MapCodec) Builder(sizeHint int) Builder {
	return &mapBuilder{
		codec:       c,
		keyBuilder:  c.key.Builder(sizeHint),
		valBuilder:  c.value.Builder(sizeHint),
		offsets:     make([]uint64, 0, sizeHint),
	}
}

func (c *MapCodec) ZeroValue() any { return map[any]any{} }

func (c *MapCodec) EstimateSize(rows int) int {
	return rows*8 + c.key.EstimateSize(rows) + c.value.EstimateSize(rows)
}

func (c *MapCodec) ReadKinds(r *buffer.Reader) (*KindNode, error) {
	kt, ok1 := c.key.(KindTree)
	vt, ok2 := c.value.(KindTree)
	if ok1 && ok2 {
		return readMultiKinds(r, []KindTree{kt, vt})
	}
	return readLeafKinds(r)
}

func (c *MapCodec) WriteKinds(w *buffer.Writer) {
	kt, ok1 := c.key.(KindTree)
	vt, ok2 := c.value.(KindTree)
	if ok1 && ok2 {
		writeMultiKinds(w, []KindTree{kt, vt})
		return
	}
	writeLeafKinds(w)
}

// MapPrefix carries the key and value sides' own prefix states.
type MapPrefix struct {
	Key, Value PrefixState
}

func (c *MapCodec) WritePrefix(w *buffer.Writer, col column.Column) error {
	m, ok := col.(*column.Map)
	if !ok {
		return ErrWrongValueType
	}
	if p, ok := c.key.(Prefixed); ok {
		if err := p.WritePrefix(w, m.Keys); err != nil {
			return err
		}
	}
	if p, ok := c.value.(Prefixed); ok {
		if err := p.WritePrefix(w, m.Values); err != nil {
			return err
		}
	}
	return nil
}

func (c *MapCodec) ReadPrefix(r *buffer.Reader) (PrefixState, error) {
	mp := &MapPrefix{}
	if p, ok := c.key.(Prefixed); ok {
		kp, err := p.ReadPrefix(r)
		if err != nil {
			return nil, err
		}
		mp.Key = kp
	}
	if p, ok := c.value.(Prefixed); ok {
		vp, err := p.ReadPrefix(r)
		if err != nil {
			return nil, err
		}
		mp.Value = vp
	}
	return mp, nil
}

func (c *MapCodec) DefaultPrefix() PrefixState {
	mp := &MapPrefix{}
	if p, ok := c.key.(Prefixed); ok {
		mp.Key = p.DefaultPrefix()
	}
	if p, ok := c.value.(Prefixed); ok {
		mp.Value = p.DefaultPrefix()
	}
	return mp
}

type mapBuilder struct {
	codec      *MapCodec
	keyBuilder Builder
	valBuilder Builder
	offsets    []uint64
	cumulative uint64
}

func (b *mapBuilder) Append(v any) error {
	pairs, err := toKVSlice(v)
	if err != nil {
		return err
	}
	for _, kv := range pairs {
		if err := b.keyBuilder.Append(kv.Key); err != nil {
			return err
		}
		if err := b.valBuilder.Append(kv.Value); err != nil {
			return err
		}
	}
	b.cumulative += uint64(len(pairs))
	b.offsets = append(b.offsets, b.cumulative)
	return nil
}

func (b *mapBuilder) Finish() column.Column {
	return column.NewMap(b.offsets, b.keyBuilder.Finish(), b.valBuilder.Finish(), b.codec.asArray)
}

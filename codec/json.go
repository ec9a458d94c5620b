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
	"github.com/google/btree"

	"github.com/launix-de/chwire/buffer"
	"github.com/launix-de/chwire/column"
)

// JSONPrefix is the per-block learned path set: a sorted, deduplicated
// list of flat object paths this block's rows actually used, each backed
// by a Dynamic column of the block's full row count.
type JSONPrefix struct {
	Paths         []string
	ChildPrefixes []PrefixState // one DynamicPrefix per path
}

// JSONCodec stores an object column as one Dynamic column per distinct
// flat path observed across the block, rather than a nested tree —
// absent paths decode as null in that row rather than being omitted,
// so every path column has exactly the block's row count.
type JSONCodec struct {
	dynamic Codec // the Dynamic codec every path column uses
}

func NewJSONCodec() Codec { return &JSONCodec{dynamic: NewDynamicCodec(0)} }

func (c *JSONCodec) TypeString() string { return "JSON" }

func (c *JSONCodec) Encode(col column.Column, sizeHint int) ([]byte, error) {
	j, ok := col.(*column.Json)
	if !ok {
		return nil, ErrWrongValueType
	}
	w := buffer.NewWriter(sizeHint)
	for gi := range j.Paths {
		payload, err := c.dynamic.Encode(j.Columns[gi], sizeHint)
		if err != nil {
			return nil, err
		}
		w.WriteBytes(payload)
	}
	return w.Bytes(), nil
}

func (c *JSONCodec) DecodeDense(r *buffer.Reader, rows int, prefix PrefixState, kind *KindNode) (column.Column, error) {
	jp, ok := prefix.(*JSONPrefix)
	if !ok || jp == nil {
		return nil, ErrInvalidDiscriminator
	}
	columns := make([]column.Column, len(jp.Paths))
	for gi := range jp.Paths {
		var childPrefix PrefixState
		if gi < len(jp.ChildPrefixes) {
			childPrefix = jp.ChildPrefixes[gi]
		}
		var pathKind *KindNode
		if kind != nil && len(kind.Children) == len(jp.Paths) {
			pathKind = kind.Children[gi]
		}
		col, err := Decode(c.dynamic, r, rows, childPrefix, pathKind)
		if err != nil {
			return nil, err
		}
		columns[gi] = col
	}
	return column.NewJson(jp.Paths, columns, rows), nil
}

func (c *JSONCodec) FromValues(values []any) (column.Column, error) {
	pathSet := btree.NewG(32, func(a, b string) bool { return a < b })
	rows := make([]map[string]any, len(values))
	for i, v := range values {
		m, ok := v.(map[string]any)
		if !ok {
			return nil, ErrWrongValueType
		}
		rows[i] = m
		for p := range m {
			pathSet.ReplaceOrInsert(p)
		}
	}
	paths := make([]string, 0, pathSet.Len())
	pathSet.Ascend(func(p string) bool {
		paths = append(paths, p)
		return true
	})

	columns := make([]column.Column, len(paths))
	for pi, p := range paths {
		colValues := make([]any, len(rows))
		for ri, m := range rows {
			colValues[ri] = m[p] // nil when absent
		}
		col, err := c.dynamic.FromValues(colValues)
		if err != nil {
			return nil, err
		}
		columns[pi] = col
	}
	return column.NewJson(paths, columns, len(values)), nil
}

func (c *JSONCodec) Builder(sizeHint int) Builder {
	return &jsonBuilder{codec: c, sizeHint: sizeHint}
}

func (c *JSONCodec) ZeroValue() any { return map[string]any{} }

func (c *JSONCodec) EstimateSize(rows int) int { return rows * 16 }

func (c *JSONCodec) ReadKinds(r *buffer.Reader) (*KindNode, error) { return readLeafKinds(r) }
func (c *JSONCodec) WriteKinds(w *buffer.Writer)                   { writeLeafKinds(w) }

func (c *JSONCodec) WritePrefix(w *buffer.Writer, col column.Column) error {
	j, ok := col.(*column.Json)
	if !ok {
		return ErrWrongValueType
	}
	w.WriteU64LE(3)
	w.WriteVarint(uint64(len(j.Paths)))
	for _, p := range j.Paths {
		w.WriteString(p)
	}
	dynamicPrefixed := c.dynamic.(Prefixed)
	for _, col := range j.Columns {
		if err := dynamicPrefixed.WritePrefix(w, col); err != nil {
			return err
		}
	}
	return nil
}

func (c *JSONCodec) ReadPrefix(r *buffer.Reader) (PrefixState, error) {
	version, err := r.ReadU64LE()
	if err != nil {
		return nil, err
	}
	if version != 3 {
		return nil, ErrUnsupportedVersion
	}
	n, err := r.ReadVarInt()
	if err != nil {
		return nil, err
	}
	paths := make([]string, n)
	for i := range paths {
		p, err := r.ReadString()
		if err != nil {
			return nil, err
		}
		paths[i] = p
	}
	dynamicPrefixed := c.dynamic.(Prefixed)
	childPrefixes := make([]PrefixState, n)
	for i := range paths {
		cp, err := dynamicPrefixed.ReadPrefix(r)
		if err != nil {
			return nil, err
		}
		childPrefixes[i] = cp
	}
	return &JSONPrefix{Paths: paths, ChildPrefixes: childPrefixes}, nil
}

func (c *JSONCodec) DefaultPrefix() PrefixState { return &JSONPrefix{} }

type jsonBuilder struct {
	codec    *JSONCodec
	sizeHint int
	rows     []map[string]any
}

func (b *jsonBuilder) Append(v any) error {
	m, ok := v.(map[string]any)
	if !ok {
		return ErrWrongValueType
	}
	b.rows = append(b.rows, m)
	return nil
}

func (b *jsonBuilder) Finish() column.Column {
	values := make([]any, len(b.rows))
	for i, m := range b.rows {
		values[i] = m
	}
	col, err := b.codec.FromValues(values)
	if err != nil {
		return column.NewJson(nil, nil, len(b.rows))
	}
	return col
}

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

	"github.com/launix-de/chwire/buffer"
	"github.com/launix-de/chwire/column"
)

// TupleCodec writes one field's full dense payload after another, in
// declaration order, with no length prefix (every field has the same row
// count as the tuple itself).
type TupleCodec struct {
	names  []string // "" for unnamed elements
	fields []Codec
	named  bool
}

func NewTupleCodec(names []string, fields []Codec, named bool) Codec {
	return &TupleCodec{names: names, fields: fields, named: named}
}

func (c *TupleCodec) TypeString() string {
	s := "Tuple("
	for i, f := range c.fields {
		if i > 0 {
			s += ","
		}
		if c.named && c.names[i] != "" {
			s += c.names[i] + " "
		}
		s += f.TypeString()
	}
	return s + ")"
}

func (c *TupleCodec) Encode(col column.Column, sizeHint int) ([]byte, error) {
	t, ok := col.(*column.Tuple)
	if !ok {
		return nil, ErrWrongValueType
	}
	w := buffer.NewWriter(sizeHint)
	for i, field := range c.fields {
		payload, err := field.Encode(t.Fields[i].Col, sizeHint)
		if err != nil {
			return nil, err
		}
		w.WriteBytes(payload)
	}
	return w.Bytes(), nil
}

func (c *TupleCodec) DecodeDense(r *buffer.Reader, rows int, prefix PrefixState, kind *KindNode) (column.Column, error) {
	tp, _ := prefix.(*TuplePrefix)
	fields := make([]column.TupleField, len(c.fields))
	for i, field := range c.fields {
		var fp PrefixState
		var fk *KindNode
		if tp != nil {
			fp = tp.Fields[i]
		}
		if kind != nil && len(kind.Children) == len(c.fields) {
			fk = kind.Children[i]
		}
		col, err := Decode(field, r, rows, fp, fk)
		if err != nil {
			return nil, err
		}
		fields[i] = column.TupleField{Name: c.names[i], Col: col}
	}
	return column.NewTuple(fields, c.named, rows), nil
}

func (c *TupleCodec) FromValues(values []any) (column.Column, error) {
	fields := make([]column.TupleField, len(c.fields))
	for i, field := range c.fields {
		fieldValues := make([]any, len(values))
		for row, v := range values {
			elem, err := c.element(v, i)
			if err != nil {
				return nil, err
			}
			fieldValues[row] = elem
		}
		col, err := field.FromValues(fieldValues)
		if err != nil {
			return nil, err
		}
		fields[i] = column.TupleField{Name: c.names[i], Col: col}
	}
	return column.NewTuple(fields, c.named, len(values)), nil
}

func (c *TupleCodec) element(v any, idx int) (any, error) {
	switch row := v.(type) {
	case []any:
		if idx >= len(row) {
			return nil, fmt.Errorf("%w: tuple row has %d elements, need %d", ErrWrongValueType, len(row), idx+1)
		}
		return row[idx], nil
	case map[string]any:
		return row[c.names[idx]], nil
	default:
		return nil, fmt.Errorf("%w: expected tuple row ([]any or map[string]any), got %T", ErrWrongValueType, v)
	}
}

func (c *TupleCodec) Builder(sizeHint int) Builder {
	builders := make([]Builder, len(c.fields))
	for i, f := range c.fields {
		builders[i] = f.Builder(sizeHint)
	}
	return &tupleBuilder{codec: c, builders: builders}
}

func (c *TupleCodec) ZeroValue() any {
	if c.named {
		return map[string]any{}
	}
	return make([]any, len(c.fields))
}

func (c *TupleCodec) EstimateSize(rows int) int {
	total := 0
	for _, f := range c.fields {
		total += f.EstimateSize(rows)
	}
	return total
}

func (c *TupleCodec) kindTrees() ([]KindTree, bool) {
	kts := make([]KindTree, len(c.fields))
	for i, f := range c.fields {
		kt, ok := f.(KindTree)
		if !ok {
			return nil, false
		}
		kts[i] = kt
	}
	return kts, true
}

func (c *TupleCodec) ReadKinds(r *buffer.Reader) (*KindNode, error) {
	if kts, ok := c.kindTrees(); ok {
		return readMultiKinds(r, kts)
	}
	return readLeafKinds(r)
}

func (c *TupleCodec) WriteKinds(w *buffer.Writer) {
	if kts, ok := c.kindTrees(); ok {
		writeMultiKinds(w, kts)
		return
	}
	writeLeafKinds(w)
}

// TuplePrefix carries each field's own prefix state, in field order.
type TuplePrefix struct {
	Fields []PrefixState
}

func (c *TupleCodec) WritePrefix(w *buffer.Writer, col column.Column) error {
	t, ok := col.(*column.Tuple)
	if !ok {
		return ErrWrongValueType
	}
	for i, field := range c.fields {
		if p, ok := field.(Prefixed); ok {
			if err := p.WritePrefix(w, t.Fields[i].Col); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *TupleCodec) ReadPrefix(r *buffer.Reader) (PrefixState, error) {
	tp := &TuplePrefix{Fields: make([]PrefixState, len(c.fields))}
	for i, field := range c.fields {
		if p, ok := field.(Prefixed); ok {
			fp, err := p.ReadPrefix(r)
			if err != nil {
				return nil, err
			}
			tp.Fields[i] = fp
		}
	}
	return tp, nil
}

func (c *TupleCodec) DefaultPrefix() PrefixState {
	tp := &TuplePrefix{Fields: make([]PrefixState, len(c.fields))}
	for i, field := range c.fields {
		if p, ok := field.(Prefixed); ok {
			tp.Fields[i] = p.DefaultPrefix()
		}
	}
	return tp
}

type tupleBuilder struct {
	codec    *TupleCodec
	builders []Builder
}

func (b *tupleBuilder) Append(v any) error {
	for i, fb := range b.builders {
		elem, err := b.codec.element(v, i)
		if err != nil {
			return err
		}
		if err := fb.Append(elem); err != nil {
			return err
		}
	}
	return nil
}

func (b *tupleBuilder) Finish() column.Column {
	fields := make([]column.TupleField, len(b.builders))
	for i, fb := range b.builders {
		fields[i] = column.TupleField{Name: b.codec.names[i], Col: fb.Finish()}
	}
	rows := 0
	if len(fields) > 0 {
		rows = fields[0].Col.Length()
	}
	return column.NewTuple(fields, b.codec.named, rows)
}

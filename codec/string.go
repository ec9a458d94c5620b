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

// StringCodec stores a varint length followed by raw bytes per row.
type StringCodec struct{}

func NewStringCodec() Codec { return StringCodec{} }

func (StringCodec) TypeString() string { return "String" }

func (StringCodec) Encode(col column.Column, sizeHint int) ([]byte, error) {
	sc, ok := col.(*column.StringColumn)
	if !ok {
		return nil, ErrWrongValueType
	}
	w := buffer.NewWriter(sizeHint)
	for _, s := range sc.Values {
		w.WriteString(s)
	}
	return w.Bytes(), nil
}

func (StringCodec) DecodeDense(r *buffer.Reader, rows int, _ PrefixState, _ *KindNode) (column.Column, error) {
	out := make([]string, rows)
	for i := 0; i < rows; i++ {
		s, err := r.ReadString()
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return column.NewStringColumn(out), nil
}

func (StringCodec) FromValues(values []any) (column.Column, error) {
	out := make([]string, len(values))
	for i, v := range values {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%w: expected string, got %T", ErrWrongValueType, v)
		}
		out[i] = s
	}
	return column.NewStringColumn(out), nil
}

func (StringCodec) Builder(sizeHint int) Builder {
	return &stringBuilder{values: make([]string, 0, sizeHint)}
}

func (StringCodec) ZeroValue() any { return "" }

func (StringCodec) EstimateSize(rows int) int { return rows * 2 }

func (StringCodec) ReadKinds(r *buffer.Reader) (*KindNode, error) { return readLeafKinds(r) }
func (StringCodec) WriteKinds(w *buffer.Writer)                   { writeLeafKinds(w) }

type stringBuilder struct{ values []string }

func (b *stringBuilder) Append(v any) error {
	s, ok := v.(string)
	if !ok {
		return fmt.Errorf("%w: expected string, got %T", ErrWrongValueType, v)
	}
	b.values = append(b.values, s)
	return nil
}

func (b *stringBuilder) Finish() column.Column { return column.NewStringColumn(b.values) }

// FixedStringCodec stores exactly N raw bytes per row with no length
// prefix, zero-padded on encode; decode returns the full N bytes
// untrimmed, since a NUL is valid FixedString content, not a terminator.
type FixedStringCodec struct{ N int }

func NewFixedStringCodec(n int) Codec { return FixedStringCodec{N: n} }

func (c FixedStringCodec) TypeString() string { return fmt.Sprintf("FixedString(%d)", c.N) }

func (c FixedStringCodec) Encode(col column.Column, sizeHint int) ([]byte, error) {
	sc, ok := col.(*column.BytesColumn)
	if !ok {
		return nil, ErrWrongValueType
	}
	w := buffer.NewWriter(sizeHint)
	for _, b := range sc.Values {
		if len(b) > c.N {
			return nil, fmt.Errorf("%w: value longer than FixedString(%d)", ErrWrongValueType, c.N)
		}
		w.WriteBytes(b)
		for i := len(b); i < c.N; i++ {
			w.WriteU8(0)
		}
	}
	return w.Bytes(), nil
}

func (c FixedStringCodec) DecodeDense(r *buffer.Reader, rows int, _ PrefixState, _ *KindNode) (column.Column, error) {
	out := make([][]byte, rows)
	for i := 0; i < rows; i++ {
		b, err := r.ReadBytes(c.N)
		if err != nil {
			return nil, err
		}
		out[i] = b
	}
	return column.NewBytesColumn(out), nil
}

func (c FixedStringCodec) FromValues(values []any) (column.Column, error) {
	out := make([][]byte, len(values))
	for i, v := range values {
		switch b := v.(type) {
		case []byte:
			out[i] = b
		case string:
			out[i] = []byte(b)
		default:
			return nil, fmt.Errorf("%w: expected []byte or string, got %T", ErrWrongValueType, v)
		}
		if len(out[i]) > c.N {
			return nil, fmt.Errorf("%w: value longer than FixedString(%d)", ErrWrongValueType, c.N)
		}
	}
	return column.NewBytesColumn(out), nil
}

func (c FixedStringCodec) Builder(sizeHint int) Builder {
	return &fixedStringBuilder{n: c.N, values: make([][]byte, 0, sizeHint)}
}

func (c FixedStringCodec) ZeroValue() any { return make([]byte, c.N) }

func (c FixedStringCodec) EstimateSize(rows int) int { return rows * c.N }

func (c FixedStringCodec) ReadKinds(r *buffer.Reader) (*KindNode, error) { return readLeafKinds(r) }
func (c FixedStringCodec) WriteKinds(w *buffer.Writer)                   { writeLeafKinds(w) }

type fixedStringBuilder struct {
	n      int
	values [][]byte
}

func (b *fixedStringBuilder) Append(v any) error {
	switch s := v.(type) {
	case []byte:
		if len(s) > b.n {
			return fmt.Errorf("%w: value longer than FixedString(%d)", ErrWrongValueType, b.n)
		}
		b.values = append(b.values, s)
	case string:
		if len(s) > b.n {
			return fmt.Errorf("%w: value longer than FixedString(%d)", ErrWrongValueType, b.n)
		}
		b.values = append(b.values, []byte(s))
	default:
		return fmt.Errorf("%w: expected []byte or string, got %T", ErrWrongValueType, v)
	}
	return nil
}

func (b *fixedStringBuilder) Finish() column.Column { return column.NewBytesColumn(b.values) }

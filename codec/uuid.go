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

	"github.com/google/uuid"

	"github.com/launix-de/chwire/buffer"
	"github.com/launix-de/chwire/column"
)

// UUIDCodec stores 16 raw bytes per row in RFC 4122 byte order, using
// google/uuid for the string<->bytes conversion at the FromValues/build
// boundary rather than hand-rolling a parser.
type UUIDCodec struct{}

func NewUUIDCodec() Codec { return UUIDCodec{} }

func (UUIDCodec) TypeString() string { return "UUID" }

func (UUIDCodec) Encode(col column.Column, sizeHint int) ([]byte, error) {
	sc, ok := col.(*column.BytesColumn)
	if !ok {
		return nil, ErrWrongValueType
	}
	w := buffer.NewWriter(sizeHint)
	for _, b := range sc.Values {
		if len(b) != 16 {
			return nil, fmt.Errorf("%w: UUID value must be 16 bytes", ErrWrongValueType)
		}
		w.WriteBytes(b)
	}
	return w.Bytes(), nil
}

func (UUIDCodec) DecodeDense(r *buffer.Reader, rows int, _ PrefixState, _ *KindNode) (column.Column, error) {
	out := make([][]byte, rows)
	for i := 0; i < rows; i++ {
		b, err := r.ReadBytes(16)
		if err != nil {
			return nil, err
		}
		out[i] = b
	}
	return column.NewBytesColumn(out), nil
}

func (UUIDCodec) FromValues(values []any) (column.Column, error) {
	out := make([][]byte, len(values))
	for i, v := range values {
		b, err := uuidBytes(v)
		if err != nil {
			return nil, err
		}
		out[i] = b
	}
	return column.NewBytesColumn(out), nil
}

func (UUIDCodec) Builder(sizeHint int) Builder {
	return &uuidBuilder{values: make([][]byte, 0, sizeHint)}
}

func (UUIDCodec) ZeroValue() any { return make([]byte, 16) }

func (UUIDCodec) EstimateSize(rows int) int { return rows * 16 }

func (UUIDCodec) ReadKinds(r *buffer.Reader) (*KindNode, error) { return readLeafKinds(r) }
func (UUIDCodec) WriteKinds(w *buffer.Writer)                   { writeLeafKinds(w) }

func uuidBytes(v any) ([]byte, error) {
	switch u := v.(type) {
	case uuid.UUID:
		cp := u
		return cp[:], nil
	case [16]byte:
		cp := u
		return cp[:], nil
	case []byte:
		if len(u) != 16 {
			return nil, fmt.Errorf("%w: UUID value must be 16 bytes", ErrWrongValueType)
		}
		return u, nil
	case string:
		parsed, err := uuid.Parse(u)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrWrongValueType, err)
		}
		return parsed[:], nil
	default:
		return nil, fmt.Errorf("%w: expected UUID, got %T", ErrWrongValueType, v)
	}
}

type uuidBuilder struct{ values [][]byte }

func (b *uuidBuilder) Append(v any) error {
	bs, err := uuidBytes(v)
	if err != nil {
		return err
	}
	b.values = append(b.values, bs)
	return nil
}

func (b *uuidBuilder) Finish() column.Column { return column.NewBytesColumn(b.values) }

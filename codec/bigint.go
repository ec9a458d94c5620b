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
	"math/big"

	"github.com/launix-de/chwire/buffer"
	"github.com/launix-de/chwire/column"
	"github.com/launix-de/chwire/types"
)

// BigIntCodec stores Int128/Int256/UInt128/UInt256 as fixed-width
// little-endian two's-complement byte arrays (types.BigIntToLE/LEToBigInt),
// keeping the in-memory Column a flat BytesColumn so no row allocates
// beyond its own width byte slice.
type BigIntCodec struct {
	typeString string
	width      int
	signed     bool
}

func NewInt128Codec() Codec  { return BigIntCodec{typeString: "Int128", width: 16, signed: true} }
func NewInt256Codec() Codec  { return BigIntCodec{typeString: "Int256", width: 32, signed: true} }
func NewUInt128Codec() Codec { return BigIntCodec{typeString: "UInt128", width: 16, signed: false} }
func NewUInt256Codec() Codec { return BigIntCodec{typeString: "UInt256", width: 32, signed: false} }

func (c BigIntCodec) TypeString() string { return c.typeString }

func (c BigIntCodec) Encode(col column.Column, sizeHint int) ([]byte, error) {
	sc, ok := col.(*column.BytesColumn)
	if !ok {
		return nil, ErrWrongValueType
	}
	w := buffer.NewWriter(sizeHint)
	for _, b := range sc.Values {
		if len(b) != c.width {
			return nil, fmt.Errorf("%w: expected %d-byte value", ErrWrongValueType, c.width)
		}
		w.WriteBytes(b)
	}
	return w.Bytes(), nil
}

func (c BigIntCodec) DecodeDense(r *buffer.Reader, rows int, _ PrefixState, _ *KindNode) (column.Column, error) {
	out := make([][]byte, rows)
	for i := 0; i < rows; i++ {
		b, err := r.ReadBytes(c.width)
		if err != nil {
			return nil, err
		}
		out[i] = b
	}
	return column.NewBytesColumn(out), nil
}

func (c BigIntCodec) FromValues(values []any) (column.Column, error) {
	out := make([][]byte, len(values))
	for i, v := range values {
		bi, err := c.toBigInt(v)
		if err != nil {
			return nil, err
		}
		out[i] = types.BigIntToLE(bi, c.width)
	}
	return column.NewBytesColumn(out), nil
}

func (c BigIntCodec) toBigInt(v any) (*big.Int, error) {
	switch n := v.(type) {
	case *big.Int:
		return n, nil
	case int64:
		return big.NewInt(n), nil
	case int:
		return big.NewInt(int64(n)), nil
	case string:
		bi, ok := new(big.Int).SetString(n, 10)
		if !ok {
			return nil, fmt.Errorf("%w: invalid integer literal %q", ErrWrongValueType, n)
		}
		return bi, nil
	default:
		return nil, fmt.Errorf("%w: expected big integer, got %T", ErrWrongValueType, v)
	}
}

func (c BigIntCodec) Builder(sizeHint int) Builder {
	return &bigIntBuilder{codec: c, values: make([][]byte, 0, sizeHint)}
}

func (c BigIntCodec) ZeroValue() any { return make([]byte, c.width) }

func (c BigIntCodec) EstimateSize(rows int) int { return rows * c.width }

func (c BigIntCodec) ReadKinds(r *buffer.Reader) (*KindNode, error) { return readLeafKinds(r) }
func (c BigIntCodec) WriteKinds(w *buffer.Writer)                   { writeLeafKinds(w) }

type bigIntBuilder struct {
	codec  BigIntCodec
	values [][]byte
}

func (b *bigIntBuilder) Append(v any) error {
	bi, err := b.codec.toBigInt(v)
	if err != nil {
		return err
	}
	b.values = append(b.values, types.BigIntToLE(bi, b.codec.width))
	return nil
}

func (b *bigIntBuilder) Finish() column.Column { return column.NewBytesColumn(b.values) }

// BigIntValue decodes a stored little-endian byte array back into a
// *big.Int, honoring signedness — used by sugar layers that want the
// logical integer back out of a decoded BytesColumn row.
func BigIntValue(signed bool, wire []byte) *big.Int {
	if signed {
		return types.LEToBigInt(wire)
	}
	return types.LEToBigUint(wire)
}

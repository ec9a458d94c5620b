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

	"github.com/shopspring/decimal"

	"github.com/launix-de/chwire/buffer"
	"github.com/launix-de/chwire/column"
	"github.com/launix-de/chwire/types"
)

// DecimalCodec stores Decimal(P,S) (and its Decimal32/64/128/256(S)
// sugar forms) as a scaled two's-complement little-endian integer whose
// width is chosen from P per types.DecimalWidth, grounded on the
// teacher's fixed-point handling in storage/storage-decimal.go. Values
// round-trip as precision-preserving strings via shopspring/decimal
// rather than float64, so scale never gets silently rounded.
type DecimalCodec struct {
	typeString string
	precision  int
	scale      int
	width      int
}

func NewDecimalCodec(typeString string, precision, scale int) Codec {
	return DecimalCodec{
		typeString: typeString,
		precision:  precision,
		scale:      scale,
		width:      types.DecimalWidth(precision),
	}
}

func (c DecimalCodec) TypeString() string { return c.typeString }

func (c DecimalCodec) Encode(col column.Column, sizeHint int) ([]byte, error) {
	sc, ok := col.(*column.BytesColumn)
	if !ok {
		return nil, ErrWrongValueType
	}
	w := buffer.NewWriter(sizeHint)
	for _, b := range sc.Values {
		if len(b) != c.width {
			return nil, fmt.Errorf("%w: expected %d-byte decimal storage", ErrWrongValueType, c.width)
		}
		w.WriteBytes(b)
	}
	return w.Bytes(), nil
}

func (c DecimalCodec) DecodeDense(r *buffer.Reader, rows int, _ PrefixState, _ *KindNode) (column.Column, error) {
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

func (c DecimalCodec) FromValues(values []any) (column.Column, error) {
	out := make([][]byte, len(values))
	for i, v := range values {
		stored, err := c.toStored(v)
		if err != nil {
			return nil, err
		}
		out[i] = types.BigIntToLE(stored, c.width)
	}
	return column.NewBytesColumn(out), nil
}

func (c DecimalCodec) toStored(v any) (*big.Int, error) {
	switch n := v.(type) {
	case string:
		return types.DecimalFromString(n, c.scale)
	case decimal.Decimal:
		return n.Shift(int32(c.scale)).BigInt(), nil
	case float64:
		return decimal.NewFromFloat(n).Shift(int32(c.scale)).BigInt(), nil
	case *big.Int:
		return n, nil
	default:
		return nil, fmt.Errorf("%w: expected decimal string, got %T", ErrWrongValueType, v)
	}
}

func (c DecimalCodec) Builder(sizeHint int) Builder {
	return &decimalBuilder{codec: c, values: make([][]byte, 0, sizeHint)}
}

func (c DecimalCodec) ZeroValue() any { return make([]byte, c.width) }

func (c DecimalCodec) EstimateSize(rows int) int { return rows * c.width }

func (c DecimalCodec) ReadKinds(r *buffer.Reader) (*KindNode, error) { return readLeafKinds(r) }
func (c DecimalCodec) WriteKinds(w *buffer.Writer)                   { writeLeafKinds(w) }

// String renders a decoded row value (the []byte a DecodeDense/FromValues
// BytesColumn yields) as a precision-preserving decimal string.
func (c DecimalCodec) String(wire []byte) string {
	return types.DecimalToString(types.LEToBigInt(wire), c.scale)
}

type decimalBuilder struct {
	codec  DecimalCodec
	values [][]byte
}

func (b *decimalBuilder) Append(v any) error {
	stored, err := b.codec.toStored(v)
	if err != nil {
		return err
	}
	b.values = append(b.values, types.BigIntToLE(stored, b.codec.width))
	return nil
}

func (b *decimalBuilder) Finish() column.Column { return column.NewBytesColumn(b.values) }

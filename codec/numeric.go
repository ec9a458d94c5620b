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
	"unsafe"

	"github.com/launix-de/chwire/buffer"
	"github.com/launix-de/chwire/column"
)

// NumericCodec is the codec for every fixed-width scalar that round-trips
// through a typed-array reinterpretation, using Go generics for one
// implementation shared across widths instead of a hand copy per type.
// UInt8..Float64, Bool, Date, Date32, DateTime and DateTime64's underlying
// tick storage are all one instantiation of this codec over a different T.
type NumericCodec[T any] struct {
	typeString string
	elemWidth  int
	toT        func(any) (T, error)
}

func newNumericCodec[T any](typeString string, toT func(any) (T, error)) *NumericCodec[T] {
	var zero T
	return &NumericCodec[T]{typeString: typeString, elemWidth: int(unsafe.Sizeof(zero)), toT: toT}
}

func (c *NumericCodec[T]) TypeString() string { return c.typeString }

func (c *NumericCodec[T]) Encode(col column.Column, sizeHint int) ([]byte, error) {
	sc, ok := col.(*column.Scalar[T])
	if !ok {
		return nil, ErrWrongValueType
	}
	w := buffer.NewWriter(sizeHint)
	buffer.WriteTypedArray(w, sc.Values)
	return w.Bytes(), nil
}

func (c *NumericCodec[T]) DecodeDense(r *buffer.Reader, rows int, _ PrefixState, _ *KindNode) (column.Column, error) {
	vals, err := buffer.ReadTypedArray[T](r, rows)
	if err != nil {
		return nil, err
	}
	return column.NewScalar(vals), nil
}

func (c *NumericCodec[T]) FromValues(values []any) (column.Column, error) {
	out := make([]T, len(values))
	for i, v := range values {
		t, err := c.toT(v)
		if err != nil {
			return nil, err
		}
		out[i] = t
	}
	return column.NewScalar(out), nil
}

func (c *NumericCodec[T]) Builder(sizeHint int) Builder {
	return &numericBuilder[T]{conv: c.toT, values: make([]T, 0, sizeHint)}
}

func (c *NumericCodec[T]) ZeroValue() any {
	var zero T
	return zero
}

func (c *NumericCodec[T]) EstimateSize(rows int) int { return rows * c.elemWidth }

func (c *NumericCodec[T]) ReadKinds(r *buffer.Reader) (*KindNode, error) { return readLeafKinds(r) }
func (c *NumericCodec[T]) WriteKinds(w *buffer.Writer)                   { writeLeafKinds(w) }

type numericBuilder[T any] struct {
	conv   func(any) (T, error)
	values []T
}

func (b *numericBuilder[T]) Append(v any) error {
	t, err := b.conv(v)
	if err != nil {
		return err
	}
	b.values = append(b.values, t)
	return nil
}

func (b *numericBuilder[T]) Finish() column.Column { return column.NewScalar(b.values) }

// The conv* helpers below accept the small set of loose-value shapes a
// build-mode caller plausibly hands in: the exact Go type, any other
// integer width (widened/narrowed), or float64 (the type JSON-sourced
// values decode to).

func convUint[T ~uint8 | ~uint16 | ~uint32 | ~uint64](v any) (T, error) {
	switch n := v.(type) {
	case T:
		return n, nil
	case int:
		return T(n), nil
	case int8:
		return T(n), nil
	case int16:
		return T(n), nil
	case int32:
		return T(n), nil
	case int64:
		return T(n), nil
	case uint:
		return T(n), nil
	case uint8:
		return T(n), nil
	case uint16:
		return T(n), nil
	case uint32:
		return T(n), nil
	case uint64:
		return T(n), nil
	case float64:
		return T(n), nil
	default:
		var zero T
		return zero, fmt.Errorf("%w: expected unsigned integer, got %T", ErrWrongValueType, v)
	}
}

func convInt[T ~int8 | ~int16 | ~int32 | ~int64](v any) (T, error) {
	switch n := v.(type) {
	case T:
		return n, nil
	case int:
		return T(n), nil
	case int8:
		return T(n), nil
	case int16:
		return T(n), nil
	case int32:
		return T(n), nil
	case int64:
		return T(n), nil
	case uint:
		return T(n), nil
	case uint8:
		return T(n), nil
	case uint16:
		return T(n), nil
	case uint32:
		return T(n), nil
	case uint64:
		return T(n), nil
	case float64:
		return T(n), nil
	default:
		var zero T
		return zero, fmt.Errorf("%w: expected signed integer, got %T", ErrWrongValueType, v)
	}
}

func convFloat[T ~float32 | ~float64](v any) (T, error) {
	switch n := v.(type) {
	case T:
		return n, nil
	case float32:
		return T(n), nil
	case float64:
		return T(n), nil
	case int:
		return T(n), nil
	case int64:
		return T(n), nil
	default:
		var zero T
		return zero, fmt.Errorf("%w: expected float, got %T", ErrWrongValueType, v)
	}
}

func convBool(v any) (uint8, error) {
	switch n := v.(type) {
	case bool:
		if n {
			return 1, nil
		}
		return 0, nil
	case uint8:
		return n, nil
	default:
		return 0, fmt.Errorf("%w: expected bool, got %T", ErrWrongValueType, v)
	}
}

// NewUInt8Codec and its siblings construct the codec instances the
// factory registers for every plain numeric wire type name.
func NewUInt8Codec() Codec  { return newNumericCodec[uint8]("UInt8", convUint[uint8]) }
func NewUInt16Codec() Codec { return newNumericCodec[uint16]("UInt16", convUint[uint16]) }
func NewUInt32Codec() Codec { return newNumericCodec[uint32]("UInt32", convUint[uint32]) }
func NewUInt64Codec() Codec { return newNumericCodec[uint64]("UInt64", convUint[uint64]) }
func NewInt8Codec() Codec   { return newNumericCodec[int8]("Int8", convInt[int8]) }
func NewInt16Codec() Codec  { return newNumericCodec[int16]("Int16", convInt[int16]) }
func NewInt32Codec() Codec  { return newNumericCodec[int32]("Int32", convInt[int32]) }
func NewInt64Codec() Codec  { return newNumericCodec[int64]("Int64", convInt[int64]) }

func NewFloat32Codec() Codec { return newNumericCodec[float32]("Float32", convFloat[float32]) }
func NewFloat64Codec() Codec { return newNumericCodec[float64]("Float64", convFloat[float64]) }

// NewBoolCodec stores Bool as a one-byte uint8 typed array: Native's Bool
// wire representation is bytewise identical to UInt8.
func NewBoolCodec() Codec { return newNumericCodec[uint8]("Bool", convBool) }

// NewDateCodec stores Date as days-since-epoch in a uint16, covering
// 1970-01-01..2149-06-06.
func NewDateCodec() Codec { return newNumericCodec[uint16]("Date", convUint[uint16]) }

// NewDate32Codec stores Date32 as a signed day offset from the epoch,
// widening Date's range to cover dates before 1970.
func NewDate32Codec() Codec { return newNumericCodec[int32]("Date32", convInt[int32]) }

// NewDateTimeCodec stores DateTime as unix seconds in a uint32.
func NewDateTimeCodec() Codec { return newNumericCodec[uint32]("DateTime", convUint[uint32]) }

// NewDateTime64Codec stores DateTime64(scale) as signed ticks of
// 10^-scale seconds since the epoch in an int64; typeString carries the
// scale argument back out verbatim so round-tripping through the factory
// cache reproduces the exact original type string.
func NewDateTime64Codec(typeString string) Codec {
	return newNumericCodec[int64](typeString, convInt[int64])
}

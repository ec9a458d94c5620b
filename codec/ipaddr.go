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
	"net/netip"

	"github.com/launix-de/chwire/buffer"
	"github.com/launix-de/chwire/column"
	"github.com/launix-de/chwire/types"
)

// IPv4Codec stores a netip.Addr in the reversed 4-byte wire form (spec
// §4.C, types.EncodeIPv4/DecodeIPv4).
type IPv4Codec struct{}

func NewIPv4Codec() Codec { return IPv4Codec{} }

func (IPv4Codec) TypeString() string { return "IPv4" }

func (IPv4Codec) Encode(col column.Column, sizeHint int) ([]byte, error) {
	sc, ok := col.(*column.Scalar[netip.Addr])
	if !ok {
		return nil, ErrWrongValueType
	}
	w := buffer.NewWriter(sizeHint)
	for _, a := range sc.Values {
		wire, err := types.EncodeIPv4(a)
		if err != nil {
			return nil, err
		}
		w.WriteBytes(wire[:])
	}
	return w.Bytes(), nil
}

func (IPv4Codec) DecodeDense(r *buffer.Reader, rows int, _ PrefixState, _ *KindNode) (column.Column, error) {
	out := make([]netip.Addr, rows)
	for i := 0; i < rows; i++ {
		b, err := r.ReadBytes(4)
		if err != nil {
			return nil, err
		}
		out[i] = types.DecodeIPv4([4]byte{b[0], b[1], b[2], b[3]})
	}
	return column.NewScalar(out), nil
}

func (IPv4Codec) FromValues(values []any) (column.Column, error) {
	out := make([]netip.Addr, len(values))
	for i, v := range values {
		a, err := toAddr(v)
		if err != nil {
			return nil, err
		}
		out[i] = a
	}
	return column.NewScalar(out), nil
}

func (IPv4Codec) Builder(sizeHint int) Builder {
	return &addrBuilder{values: make([]netip.Addr, 0, sizeHint)}
}

func (IPv4Codec) ZeroValue() any { return netip.Addr{} }

func (IPv4Codec) EstimateSize(rows int) int { return rows * 4 }

func (IPv4Codec) ReadKinds(r *buffer.Reader) (*KindNode, error) { return readLeafKinds(r) }
func (IPv4Codec) WriteKinds(w *buffer.Writer)                   { writeLeafKinds(w) }

// IPv6Codec stores a netip.Addr as its raw 16-byte form.
type IPv6Codec struct{}

func NewIPv6Codec() Codec { return IPv6Codec{} }

func (IPv6Codec) TypeString() string { return "IPv6" }

func (IPv6Codec) Encode(col column.Column, sizeHint int) ([]byte, error) {
	sc, ok := col.(*column.Scalar[netip.Addr])
	if !ok {
		return nil, ErrWrongValueType
	}
	w := buffer.NewWriter(sizeHint)
	for _, a := range sc.Values {
		wire, err := types.EncodeIPv6(a)
		if err != nil {
			return nil, err
		}
		w.WriteBytes(wire[:])
	}
	return w.Bytes(), nil
}

func (IPv6Codec) DecodeDense(r *buffer.Reader, rows int, _ PrefixState, _ *KindNode) (column.Column, error) {
	out := make([]netip.Addr, rows)
	for i := 0; i < rows; i++ {
		b, err := r.ReadBytes(16)
		if err != nil {
			return nil, err
		}
		var wire [16]byte
		copy(wire[:], b)
		out[i] = types.DecodeIPv6(wire)
	}
	return column.NewScalar(out), nil
}

func (IPv6Codec) FromValues(values []any) (column.Column, error) {
	out := make([]netip.Addr, len(values))
	for i, v := range values {
		a, err := toAddr(v)
		if err != nil {
			return nil, err
		}
		out[i] = a
	}
	return column.NewScalar(out), nil
}

func (IPv6Codec) Builder(sizeHint int) Builder {
	return &addrBuilder{values: make([]netip.Addr, 0, sizeHint)}
}

func (IPv6Codec) ZeroValue() any { return netip.Addr{} }

func (IPv6Codec) EstimateSize(rows int) int { return rows * 16 }

func (IPv6Codec) ReadKinds(r *buffer.Reader) (*KindNode, error) { return readLeafKinds(r) }
func (IPv6Codec) WriteKinds(w *buffer.Writer)                   { writeLeafKinds(w) }

func toAddr(v any) (netip.Addr, error) {
	switch a := v.(type) {
	case netip.Addr:
		return a, nil
	case string:
		parsed, err := netip.ParseAddr(a)
		if err != nil {
			return netip.Addr{}, fmt.Errorf("%w: %v", ErrWrongValueType, err)
		}
		return parsed, nil
	default:
		return netip.Addr{}, fmt.Errorf("%w: expected IP address, got %T", ErrWrongValueType, v)
	}
}

type addrBuilder struct{ values []netip.Addr }

func (b *addrBuilder) Append(v any) error {
	a, err := toAddr(v)
	if err != nil {
		return err
	}
	b.values = append(b.values, a)
	return nil
}

func (b *addrBuilder) Finish() column.Column { return column.NewScalar(b.values) }

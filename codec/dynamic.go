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

// DynamicPrefix is the per-block learned schema a Dynamic column carries:
// the deduplicated member type strings this particular block actually
// used, in first-seen order, plus each member's own prefix state. It is
// produced fresh by ReadPrefix on every call rather than cached on the
// codec, which is what lets one process-wide DynamicCodec instance
// safely serve concurrent decodes of blocks with different learned
// schemas.
type DynamicPrefix struct {
	Types         []string
	Codecs        []Codec
	ChildPrefixes []PrefixState
}

// DynamicCodec implements Native's open-ended Dynamic type: unlike
// Variant, its member list is not part of the type string at all — it is
// discovered per block and carried in the prefix. maxTypes bounds how
// many distinct types a single block may introduce (0 means unbounded),
// mirroring the server-side "max_dynamic_types"-style cap other Native
// implementations expose.
type DynamicCodec struct {
	maxTypes int
}

func NewDynamicCodec(maxTypes int) Codec { return &DynamicCodec{maxTypes: maxTypes} }

func (c *DynamicCodec) TypeString() string {
	if c.maxTypes > 0 {
		return fmt.Sprintf("Dynamic(max_types=%d)", c.maxTypes)
	}
	return "Dynamic"
}

// discriminatorWidth picks the narrowest discriminator width that can
// address k member types plus one null marker: k+1 <= 256 -> byte,
// <= 65536 -> 16-bit, else 32-bit.
func discriminatorWidth(k int) int {
	switch {
	case k+1 <= 1<<8:
		return 1
	case k+1 <= 1<<16:
		return 2
	default:
		return 4
	}
}

func writeNarrowDiscriminators(w *buffer.Writer, discriminators []uint32, width int) {
	switch width {
	case 1:
		narrow := make([]uint8, len(discriminators))
		for i, v := range discriminators {
			narrow[i] = uint8(v)
		}
		buffer.WriteTypedArray(w, narrow)
	case 2:
		narrow := make([]uint16, len(discriminators))
		for i, v := range discriminators {
			narrow[i] = uint16(v)
		}
		buffer.WriteTypedArray(w, narrow)
	default:
		buffer.WriteTypedArray(w, discriminators)
	}
}

func readNarrowDiscriminators(r *buffer.Reader, rows, width int) ([]uint32, error) {
	switch width {
	case 1:
		narrow, err := buffer.ReadTypedArray[uint8](r, rows)
		if err != nil {
			return nil, err
		}
		out := make([]uint32, rows)
		for i, v := range narrow {
			out[i] = uint32(v)
		}
		return out, nil
	case 2:
		narrow, err := buffer.ReadTypedArray[uint16](r, rows)
		if err != nil {
			return nil, err
		}
		out := make([]uint32, rows)
		for i, v := range narrow {
			out[i] = uint32(v)
		}
		return out, nil
	default:
		return buffer.ReadTypedArray[uint32](r, rows)
	}
}

func (c *DynamicCodec) Encode(col column.Column, sizeHint int) ([]byte, error) {
	d, ok := col.(*column.Dynamic)
	if !ok {
		return nil, ErrWrongValueType
	}
	w := buffer.NewWriter(sizeHint)
	writeNarrowDiscriminators(w, d.Discriminators, discriminatorWidth(len(d.Types)))
	for gi, typeString := range d.Types {
		codec, err := GetCodec(typeString)
		if err != nil {
			return nil, err
		}
		payload, err := codec.Encode(d.Groups[gi], sizeHint)
		if err != nil {
			return nil, err
		}
		w.WriteBytes(payload)
	}
	return w.Bytes(), nil
}

func (c *DynamicCodec) DecodeDense(r *buffer.Reader, rows int, prefix PrefixState, kind *KindNode) (column.Column, error) {
	dp, ok := prefix.(*DynamicPrefix)
	if !ok || dp == nil {
		return nil, ErrInvalidDiscriminator
	}
	discriminators, err := readNarrowDiscriminators(r, rows, discriminatorWidth(len(dp.Types)))
	if err != nil {
		return nil, err
	}
	counts := make([]int, len(dp.Types))
	for _, d := range discriminators {
		if int(d) < len(counts) {
			counts[d]++
		}
	}
	groups := make([]column.Column, len(dp.Types))
	for gi, codec := range dp.Codecs {
		var childPrefix PrefixState
		if gi < len(dp.ChildPrefixes) {
			childPrefix = dp.ChildPrefixes[gi]
		}
		var groupKind *KindNode
		if kind != nil && len(kind.Children) == len(dp.Types) {
			groupKind = kind.Children[gi]
		}
		g, err := Decode(codec, r, counts[gi], childPrefix, groupKind)
		if err != nil {
			return nil, err
		}
		groups[gi] = g
	}
	index := make([]uint32, rows)
	cursor := make([]uint32, len(dp.Types))
	for i, d := range discriminators {
		if int(d) >= len(dp.Types) {
			continue
		}
		index[i] = cursor[d]
		cursor[d]++
	}
	return column.NewDynamic(dp.Types, discriminators, groups, index), nil
}

func (c *DynamicCodec) FromValues(values []any) (column.Column, error) {
	b := c.Builder(len(values)).(*dynamicBuilder)
	for _, v := range values {
		if err := b.Append(v); err != nil {
			return nil, err
		}
	}
	return b.Finish(), nil
}

func (c *DynamicCodec) Builder(sizeHint int) Builder {
	return &dynamicBuilder{codec: c, sizeHint: sizeHint, typeIndex: map[string]int{}}
}

func (c *DynamicCodec) ZeroValue() any { return nil }

func (c *DynamicCodec) EstimateSize(rows int) int { return rows * 6 }

// ReadKinds/WriteKinds: the kind subtree's arity depends on the
// per-block learned type count, which ReadKinds alone cannot see (that
// comes from the prefix, read separately). Dynamic's own node therefore
// has no fixed children here; block/stream assembly reads Dynamic's kind
// byte as a leaf and relies on the prefix-carried codecs for recursion
// inside DecodeDense instead of a kind subtree.
func (c *DynamicCodec) ReadKinds(r *buffer.Reader) (*KindNode, error) { return readLeafKinds(r) }
func (c *DynamicCodec) WriteKinds(w *buffer.Writer)                   { writeLeafKinds(w) }

func (c *DynamicCodec) WritePrefix(w *buffer.Writer, col column.Column) error {
	d, ok := col.(*column.Dynamic)
	if !ok {
		return ErrWrongValueType
	}
	w.WriteU64LE(3)
	w.WriteVarint(uint64(len(d.Types)))
	for _, t := range d.Types {
		w.WriteString(t)
	}
	for gi, t := range d.Types {
		cd, err := GetCodec(t)
		if err != nil {
			return err
		}
		if p, ok := cd.(Prefixed); ok {
			if err := p.WritePrefix(w, d.Groups[gi]); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *DynamicCodec) ReadPrefix(r *buffer.Reader) (PrefixState, error) {
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
	if c.maxTypes > 0 && int(n) > c.maxTypes {
		return nil, ErrNotYetSupported
	}
	types := make([]string, n)
	codecs := make([]Codec, n)
	for i := range types {
		t, err := r.ReadString()
		if err != nil {
			return nil, err
		}
		types[i] = t
		cd, err := GetCodec(t)
		if err != nil {
			return nil, err
		}
		codecs[i] = cd
	}
	childPrefixes := make([]PrefixState, n)
	for i, cd := range codecs {
		if p, ok := cd.(Prefixed); ok {
			cp, err := p.ReadPrefix(r)
			if err != nil {
				return nil, err
			}
			childPrefixes[i] = cp
		}
	}
	return &DynamicPrefix{Types: types, Codecs: codecs, ChildPrefixes: childPrefixes}, nil
}

func (c *DynamicCodec) DefaultPrefix() PrefixState {
	return &DynamicPrefix{}
}

type dynamicBuilder struct {
	codec       *DynamicCodec
	sizeHint    int
	types       []string
	typeIndex   map[string]int
	groupValues [][]any
	tags        []int
}

func (b *dynamicBuilder) Append(v any) error {
	if v == nil {
		b.tags = append(b.tags, -1)
		return nil
	}
	typeString, err := inferDynamicType(v)
	if err != nil {
		return err
	}
	idx, ok := b.typeIndex[typeString]
	if !ok {
		if b.codec.maxTypes > 0 && len(b.types) >= b.codec.maxTypes {
			return ErrNotYetSupported
		}
		idx = len(b.types)
		b.typeIndex[typeString] = idx
		b.types = append(b.types, typeString)
		b.groupValues = append(b.groupValues, make([]any, 0, b.sizeHint))
	}
	b.groupValues[idx] = append(b.groupValues[idx], v)
	b.tags = append(b.tags, idx)
	return nil
}

// inferDynamicType maps a loose Go value to its Native type string. Any
// value shape this table doesn't recognize is rejected with
// ErrAmbiguousDynamicValue rather than silently coerced to String.
func inferDynamicType(v any) (string, error) {
	switch v.(type) {
	case string:
		return "String", nil
	case bool:
		return "Bool", nil
	case int8:
		return "Int8", nil
	case int16:
		return "Int16", nil
	case int32:
		return "Int32", nil
	case int64, int:
		return "Int64", nil
	case uint8:
		return "UInt8", nil
	case uint16:
		return "UInt16", nil
	case uint32:
		return "UInt32", nil
	case uint64, uint:
		return "UInt64", nil
	case float32:
		return "Float32", nil
	case float64:
		return "Float64", nil
	default:
		return "", fmt.Errorf("%w: %T", ErrAmbiguousDynamicValue, v)
	}
}

func (b *dynamicBuilder) Finish() column.Column {
	groups := make([]column.Column, len(b.types))
	cursor := make([]uint32, len(b.types))
	discriminators := make([]uint32, len(b.tags))
	index := make([]uint32, len(b.tags))
	for i, tag := range b.tags {
		if tag < 0 {
			discriminators[i] = uint32(len(b.types))
			continue
		}
		discriminators[i] = uint32(tag)
		index[i] = cursor[tag]
		cursor[tag]++
	}
	for gi, typeString := range b.types {
		cd, err := GetCodec(typeString)
		if err != nil {
			continue
		}
		col, err := cd.FromValues(b.groupValues[gi])
		if err != nil {
			col, _ = cd.FromValues(nil)
		}
		groups[gi] = col
	}
	return column.NewDynamic(b.types, discriminators, groups, index)
}

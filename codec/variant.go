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

// VariantPrefix carries the wire serialization mode this block used:
// BASIC (0, the only mode this implementation encodes or decodes) or
// COMPACT (1, rejected with ErrUnsupportedVariantMode).
type VariantPrefix struct {
	Mode uint64
}

// VariantCodec is a tagged union over a fixed, ordered list of
// alternative codecs: one discriminator byte per row (NullDiscriminator
// for a row with no value) followed by each alternative's full dense
// payload, back to back in declaration order, holding exactly the rows
// that chose it. The discriminator-plus-grouped-payload layout
// generalizes a recid-over-groups split (default vs. overridden) to k
// declared alternatives.
type VariantCodec struct {
	alts []Codec
}

func NewVariantCodec(alts []Codec) Codec { return &VariantCodec{alts: alts} }

func (c *VariantCodec) TypeString() string {
	s := "Variant("
	for i, a := range c.alts {
		if i > 0 {
			s += ","
		}
		s += a.TypeString()
	}
	return s + ")"
}

func (c *VariantCodec) Encode(col column.Column, sizeHint int) ([]byte, error) {
	v, ok := col.(*column.Variant)
	if !ok {
		return nil, ErrWrongValueType
	}
	w := buffer.NewWriter(sizeHint)
	for _, d := range v.Discriminators {
		w.WriteU8(d)
	}
	for gi, group := range c.alts {
		payload, err := group.Encode(v.Groups[gi], sizeHint)
		if err != nil {
			return nil, err
		}
		w.WriteBytes(payload)
	}
	return w.Bytes(), nil
}

func (c *VariantCodec) DecodeDense(r *buffer.Reader, rows int, prefix PrefixState, kind *KindNode) (column.Column, error) {
	vp, _ := prefix.(*VariantPrefix)
	if vp != nil && vp.Mode != 0 {
		return nil, ErrUnsupportedVariantMode
	}
	discriminators := make([]uint8, rows)
	counts := make([]int, len(c.alts))
	for i := 0; i < rows; i++ {
		d, err := r.ReadU8()
		if err != nil {
			return nil, err
		}
		discriminators[i] = d
		if int(d) < len(counts) {
			counts[d]++
		}
	}
	groups := make([]column.Column, len(c.alts))
	for gi, alt := range c.alts {
		var altKind *KindNode
		if kind != nil && len(kind.Children) == len(c.alts) {
			altKind = kind.Children[gi]
		}
		g, err := Decode(alt, r, counts[gi], nil, altKind)
		if err != nil {
			return nil, err
		}
		groups[gi] = g
	}
	index := make([]uint32, rows)
	cursor := make([]uint32, len(c.alts))
	for i, d := range discriminators {
		if int(d) >= len(c.alts) {
			continue
		}
		index[i] = cursor[d]
		cursor[d]++
	}
	return column.NewVariant(discriminators, groups, index), nil
}

func (c *VariantCodec) FromValues(values []any) (column.Column, error) {
	b := c.Builder(len(values)).(*variantBuilder)
	for _, v := range values {
		if err := b.Append(v); err != nil {
			return nil, err
		}
	}
	return b.Finish(), nil
}

func (c *VariantCodec) Builder(sizeHint int) Builder {
	groupValues := make([][]any, len(c.alts))
	return &variantBuilder{codec: c, groupValues: groupValues, sizeHint: sizeHint}
}

func (c *VariantCodec) ZeroValue() any { return nil }

func (c *VariantCodec) EstimateSize(rows int) int {
	total := rows
	for _, a := range c.alts {
		total += a.EstimateSize(rows / len(c.alts))
	}
	return total
}

func (c *VariantCodec) altKindTrees() ([]KindTree, bool) {
	kts := make([]KindTree, len(c.alts))
	for i, a := range c.alts {
		kt, ok := a.(KindTree)
		if !ok {
			return nil, false
		}
		kts[i] = kt
	}
	return kts, true
}

func (c *VariantCodec) ReadKinds(r *buffer.Reader) (*KindNode, error) {
	if kts, ok := c.altKindTrees(); ok {
		return readMultiKinds(r, kts)
	}
	return readLeafKinds(r)
}

func (c *VariantCodec) WriteKinds(w *buffer.Writer) {
	if kts, ok := c.altKindTrees(); ok {
		writeMultiKinds(w, kts)
		return
	}
	writeLeafKinds(w)
}

func (c *VariantCodec) WritePrefix(w *buffer.Writer, col column.Column) error {
	w.WriteVarint(0) // BASIC mode: this module never proposes COMPACT
	return nil
}

func (c *VariantCodec) ReadPrefix(r *buffer.Reader) (PrefixState, error) {
	mode, err := r.ReadVarInt()
	if err != nil {
		return nil, err
	}
	return &VariantPrefix{Mode: mode}, nil
}

func (c *VariantCodec) DefaultPrefix() PrefixState { return &VariantPrefix{Mode: 0} }

// variantBuilder buckets each appended value by which alternative codec
// accepts it first (declaration order), matching the public API's
// preference for an explicit chwire.Variant{Tag,Value} over ambiguous
// inference.
type variantBuilder struct {
	codec       *VariantCodec
	groupValues [][]any
	tags        []int // per-row chosen alternative index, or -1 for null
	sizeHint    int
}

// VariantValue is the explicit tagged value the public API asks callers
// to use for build-mode Variant rows instead of relying on type-guessing
// heuristics.
type VariantValue struct {
	Tag   int
	Value any
}

func (b *variantBuilder) Append(v any) error {
	if v == nil {
		b.tags = append(b.tags, -1)
		return nil
	}
	if vv, ok := v.(VariantValue); ok {
		if vv.Tag < 0 || vv.Tag >= len(b.codec.alts) {
			return ErrInvalidDiscriminator
		}
		if b.groupValues[vv.Tag] == nil {
			b.groupValues[vv.Tag] = make([]any, 0, b.sizeHint)
		}
		b.groupValues[vv.Tag] = append(b.groupValues[vv.Tag], vv.Value)
		b.tags = append(b.tags, vv.Tag)
		return nil
	}
	// Fallback heuristic: try each alternative's FromValues on a
	// single-element probe and take the first that accepts the value.
	// Ambiguous/ill-typed loose values should go through VariantValue
	// instead of relying on this.
	for i, alt := range b.codec.alts {
		if _, err := alt.FromValues([]any{v}); err == nil {
			if b.groupValues[i] == nil {
				b.groupValues[i] = make([]any, 0, b.sizeHint)
			}
			b.groupValues[i] = append(b.groupValues[i], v)
			b.tags = append(b.tags, i)
			return nil
		}
	}
	return ErrWrongValueType
}

func (b *variantBuilder) Finish() column.Column {
	groups := make([]column.Column, len(b.codec.alts))
	cursor := make([]uint32, len(b.codec.alts))
	discriminators := make([]uint8, len(b.tags))
	index := make([]uint32, len(b.tags))
	for i, tag := range b.tags {
		if tag < 0 {
			discriminators[i] = column.NullDiscriminator
			continue
		}
		discriminators[i] = uint8(tag)
		index[i] = cursor[tag]
		cursor[tag]++
	}
	for gi, alt := range b.codec.alts {
		col, err := alt.FromValues(b.groupValues[gi])
		if err != nil {
			col, _ = alt.FromValues(nil)
		}
		groups[gi] = col
	}
	return column.NewVariant(discriminators, groups, index)
}

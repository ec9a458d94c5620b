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

package column

// NullDiscriminator is the Variant discriminator byte that marks a null
// row.
const NullDiscriminator = 0xFF

// Variant is a tagged-union column: a discriminator per row plus one
// monotype group column per declared alternative, with a precomputed
// intra-group index so Get is O(1). The discriminator-plus-group-index
// layout generalizes a recid bookkeeping scheme from "sparse vs default"
// to "which of k groups".
type Variant struct {
	Discriminators []uint8
	Groups         []Column // len(Groups) == number of declared alternatives
	Index          []uint32 // Index[i] = position of row i within Groups[Discriminators[i]]
}

func NewVariant(discriminators []uint8, groups []Column, index []uint32) *Variant {
	return &Variant{Discriminators: discriminators, Groups: groups, Index: index}
}

func (c *Variant) Length() int { return len(c.Discriminators) }

func (c *Variant) Get(i int) any {
	d := c.Discriminators[i]
	if d == NullDiscriminator {
		return nil
	}
	return c.Groups[d].Get(int(c.Index[i]))
}

func (c *Variant) Slice(start, end int) Column {
	return &Variant{
		Discriminators: c.Discriminators[start:end],
		Groups:         c.Groups,
		Index:          c.Index[start:end],
	}
}

func (c *Variant) Materialize() any { return MaterializeRows(c) }

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

import "sort"

// Concat joins several same-typed columns end to end without copying
// their backing data, the merge strategy DecodeAll uses to stitch one
// field's per-block columns into a single logical column.
type Concat struct {
	Parts   []Column
	offsets []int // cumulative row count after each part
}

func NewConcat(parts []Column) *Concat {
	offsets := make([]int, len(parts))
	total := 0
	for i, p := range parts {
		total += p.Length()
		offsets[i] = total
	}
	return &Concat{Parts: parts, offsets: offsets}
}

func (c *Concat) Length() int {
	if len(c.offsets) == 0 {
		return 0
	}
	return c.offsets[len(c.offsets)-1]
}

func (c *Concat) locate(i int) (part int, offset int) {
	part = sort.SearchInts(c.offsets, i+1)
	if part == 0 {
		return 0, i
	}
	return part, i - c.offsets[part-1]
}

func (c *Concat) Get(i int) any {
	part, offset := c.locate(i)
	return c.Parts[part].Get(offset)
}

func (c *Concat) Slice(start, end int) Column {
	parts := make([]Column, 0, len(c.Parts))
	for i := start; i < end; {
		part, offset := c.locate(i)
		partLen := c.Parts[part].Length()
		take := partLen - offset
		if remain := end - i; take > remain {
			take = remain
		}
		parts = append(parts, c.Parts[part].Slice(offset, offset+take))
		i += take
	}
	return NewConcat(parts)
}

func (c *Concat) Materialize() any { return MaterializeRows(c) }

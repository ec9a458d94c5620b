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

// Dynamic carries its own learned list of member type strings alongside
// the discriminated groups. A discriminator equal to len(Types) marks a
// null row. The wire discriminator width (u8/u16/u32) is a prefix-time
// decision (codec concern); in memory it is always normalized to uint32.
type Dynamic struct {
	Types          []string
	Discriminators []uint32
	Groups         []Column
	Index          []uint32
}

func NewDynamic(types []string, discriminators []uint32, groups []Column, index []uint32) *Dynamic {
	return &Dynamic{Types: types, Discriminators: discriminators, Groups: groups, Index: index}
}

func (c *Dynamic) Length() int { return len(c.Discriminators) }

func (c *Dynamic) Get(i int) any {
	d := c.Discriminators[i]
	if int(d) == len(c.Types) {
		return nil
	}
	return c.Groups[d].Get(int(c.Index[i]))
}

func (c *Dynamic) Slice(start, end int) Column {
	return &Dynamic{
		Types:          c.Types,
		Discriminators: c.Discriminators[start:end],
		Groups:         c.Groups,
		Index:          c.Index[start:end],
	}
}

func (c *Dynamic) Materialize() any { return MaterializeRows(c) }

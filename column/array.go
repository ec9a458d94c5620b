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

// Array holds cumulative end-offsets into a shared inner column. lowBound
// is the inner start position of this view's first row — it lets Slice
// share Offsets/Inner without rebasing, the same trick a bit-cursor-style
// view uses to avoid copying on every access.
type Array struct {
	Offsets  []uint64
	lowBound uint64
	Inner    Column
}

// NewArray builds a freshly decoded/built Array column: offsets are
// absolute positions into inner starting at 0.
func NewArray(offsets []uint64, inner Column) *Array {
	return &Array{Offsets: offsets, Inner: inner}
}

func (c *Array) Length() int { return len(c.Offsets) }

func (c *Array) start(i int) uint64 {
	if i == 0 {
		return c.lowBound
	}
	return c.Offsets[i-1]
}

func (c *Array) Get(i int) any {
	s, e := c.start(i), c.Offsets[i]
	return c.Inner.Slice(int(s), int(e)).Materialize()
}

func (c *Array) Slice(start, end int) Column {
	lb := c.lowBound
	if start > 0 {
		lb = c.Offsets[start-1]
	}
	return &Array{Offsets: c.Offsets[start:end], lowBound: lb, Inner: c.Inner}
}

func (c *Array) Materialize() any { return MaterializeRows(c) }

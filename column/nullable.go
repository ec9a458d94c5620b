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

// Nullable wraps an inner column with a per-row null flag. Inner holds a
// type-default placeholder at null positions; Get returns nil
// at those positions regardless of what the placeholder is.
type Nullable struct {
	Nulls []bool
	Inner Column
}

func NewNullable(nulls []bool, inner Column) *Nullable {
	return &Nullable{Nulls: nulls, Inner: inner}
}

func (c *Nullable) Length() int { return len(c.Nulls) }

func (c *Nullable) Get(i int) any {
	if c.Nulls[i] {
		return nil
	}
	return c.Inner.Get(i)
}

func (c *Nullable) Slice(start, end int) Column {
	return &Nullable{Nulls: c.Nulls[start:end], Inner: c.Inner.Slice(start, end)}
}

func (c *Nullable) Materialize() any { return MaterializeRows(c) }

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

// StringColumn holds variable-length String values, one per row.
type StringColumn struct {
	Values []string
}

func NewStringColumn(values []string) *StringColumn { return &StringColumn{Values: values} }

func (c *StringColumn) Length() int   { return len(c.Values) }
func (c *StringColumn) Get(i int) any { return c.Values[i] }
func (c *StringColumn) Slice(start, end int) Column {
	return &StringColumn{Values: c.Values[start:end]}
}
func (c *StringColumn) Materialize() any {
	out := make([]string, len(c.Values))
	copy(out, c.Values)
	return out
}

// BytesColumn holds variable-length raw byte values, one per row (used by
// codecs whose logical value is binary rather than text).
type BytesColumn struct {
	Values [][]byte
}

func NewBytesColumn(values [][]byte) *BytesColumn { return &BytesColumn{Values: values} }

func (c *BytesColumn) Length() int   { return len(c.Values) }
func (c *BytesColumn) Get(i int) any { return c.Values[i] }
func (c *BytesColumn) Slice(start, end int) Column {
	return &BytesColumn{Values: c.Values[start:end]}
}
func (c *BytesColumn) Materialize() any {
	out := make([][]byte, len(c.Values))
	copy(out, c.Values)
	return out
}

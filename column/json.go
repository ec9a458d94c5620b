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

// Json is a path-indexed column: an ordered, sorted, unique list of flat
// object paths, each backed by its own Dynamic column of equal length.
// Paths absent from a given row's input object decode as null in that
// row's Dynamic column rather than being omitted.
type Json struct {
	Paths   []string
	Columns []Column // one Dynamic per path, same order as Paths
	rows    int
}

func NewJson(paths []string, columns []Column, rows int) *Json {
	return &Json{Paths: paths, Columns: columns, rows: rows}
}

func (c *Json) Length() int { return c.rows }

func (c *Json) Get(i int) any {
	m := make(map[string]any, len(c.Paths))
	for idx, p := range c.Paths {
		if v := c.Columns[idx].Get(i); v != nil {
			m[p] = v
		}
	}
	return m
}

func (c *Json) Slice(start, end int) Column {
	cols := make([]Column, len(c.Columns))
	for i, col := range c.Columns {
		cols[i] = col.Slice(start, end)
	}
	return &Json{Paths: c.Paths, Columns: cols, rows: end - start}
}

func (c *Json) Materialize() any { return MaterializeRows(c) }

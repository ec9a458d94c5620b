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

// TupleField is one element of a Tuple column: its declared name (empty
// for unnamed tuples) and its backing column.
type TupleField struct {
	Name string
	Col  Column
}

// Tuple holds one column per declared element, all sharing the tuple's
// row count. Nested(...) is expanded to Array(Tuple(...)) at
// codec-construction time; there is no separate Nested column type.
type Tuple struct {
	Fields []TupleField
	Named  bool
	rows   int
}

func NewTuple(fields []TupleField, named bool, rows int) *Tuple {
	return &Tuple{Fields: fields, Named: named, rows: rows}
}

func (c *Tuple) Length() int { return c.rows }

func (c *Tuple) Get(i int) any {
	if c.Named {
		m := make(map[string]any, len(c.Fields))
		for _, f := range c.Fields {
			m[f.Name] = f.Col.Get(i)
		}
		return m
	}
	arr := make([]any, len(c.Fields))
	for idx, f := range c.Fields {
		arr[idx] = f.Col.Get(i)
	}
	return arr
}

func (c *Tuple) Slice(start, end int) Column {
	fields := make([]TupleField, len(c.Fields))
	for idx, f := range c.Fields {
		fields[idx] = TupleField{Name: f.Name, Col: f.Col.Slice(start, end)}
	}
	return &Tuple{Fields: fields, Named: c.Named, rows: end - start}
}

func (c *Tuple) Materialize() any { return MaterializeRows(c) }

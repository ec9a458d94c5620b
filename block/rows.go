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

package block

// Row is one materialized record: field name to its decoded value.
type Row map[string]any

// AsRows materializes b into one map per row, the row-oriented shape
// most application code wants.
func AsRows(b Block) []Row {
	rows := make([]Row, b.Rows)
	for i := range rows {
		row := make(Row, len(b.Fields))
		for fi, f := range b.Fields {
			row[f.Name] = b.Columns[fi].Get(i)
		}
		rows[i] = row
	}
	return rows
}

// ToArrayRows materializes b into one []any per row, in field
// declaration order, for callers that want positional rather than named
// access.
func ToArrayRows(b Block) [][]any {
	rows := make([][]any, b.Rows)
	for i := range rows {
		row := make([]any, len(b.Fields))
		for fi := range b.Fields {
			row[fi] = b.Columns[fi].Get(i)
		}
		rows[i] = row
	}
	return rows
}

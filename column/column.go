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

// Package column implements the lazy columnar data model: one struct per
// Column variant (Scalar, StringColumn, BytesColumn, Nullable, Array, Map,
// Tuple, Variant, Dynamic, Json, LowCardinality, Concat), all sharing the Length/Get/Slice/Materialize contract.
// Every Column here owns its backing vectors exclusively; Slice shares
// read-only backing arrays rather than copying, the same ownership model
// a raw bit-packed buffer chunk uses for its storage.
package column

// Column is the abstract container every codec decodes into and every
// builder produces. Implementations must satisfy:
//   - Length() is constant after construction (no mutation after Finish).
//   - Get(i) is defined for 0 <= i < Length().
//   - Slice(start,end) returns a new Column of length end-start with the
//     same per-row semantics as the parent.
//   - Materialize() recursively resolves lazy children into owned plain
//     Go values: a typed slice ([]T, []string, [][]byte) for Scalar,
//     StringColumn and BytesColumn, and a []any of per-row values for
//     every other variant.
type Column interface {
	Length() int
	Get(i int) any
	Slice(start, end int) Column
	Materialize() any
}

// MaterializeRows is the default Materialize() implementation shared by
// every column variant except Scalar, StringColumn and BytesColumn: a plain row-ordered Go slice of each row's own
// (already-materialized) value.
func MaterializeRows(c Column) any {
	n := c.Length()
	out := make([]any, n)
	for i := 0; i < n; i++ {
		out[i] = c.Get(i)
	}
	return out
}

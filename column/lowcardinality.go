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

// LowCardinality holds a deduplicated dictionary plus a per-row index
// into it, normalized to uint64 in memory regardless of the narrower
// width the codec chose on the wire.
type LowCardinality struct {
	Dict  Column
	Index []uint64
}

func NewLowCardinality(dict Column, index []uint64) *LowCardinality {
	return &LowCardinality{Dict: dict, Index: index}
}

func (c *LowCardinality) Length() int { return len(c.Index) }

func (c *LowCardinality) Get(i int) any { return c.Dict.Get(int(c.Index[i])) }

func (c *LowCardinality) Slice(start, end int) Column {
	return &LowCardinality{Dict: c.Dict, Index: c.Index[start:end]}
}

func (c *LowCardinality) Materialize() any { return MaterializeRows(c) }

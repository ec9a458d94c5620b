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

// KV is one key/value pair of a materialized Map row when AsArray is set
// (preserves duplicate keys and ordering, per the mapAsArray option).
type KV struct {
	Key   any
	Value any
}

// Map has identical offset framing to Array but two inner columns (keys,
// values) sharing the same offsets.
type Map struct {
	Offsets  []uint64
	lowBound uint64
	Keys     Column
	Values   Column
	AsArray  bool
}

func NewMap(offsets []uint64, keys, values Column, asArray bool) *Map {
	return &Map{Offsets: offsets, Keys: keys, Values: values, AsArray: asArray}
}

func (c *Map) Length() int { return len(c.Offsets) }

func (c *Map) start(i int) uint64 {
	if i == 0 {
		return c.lowBound
	}
	return c.Offsets[i-1]
}

func (c *Map) Get(i int) any {
	s, e := c.start(i), c.Offsets[i]
	n := int(e - s)
	pairs := make([]KV, n)
	for j := 0; j < n; j++ {
		idx := int(s) + j
		pairs[j] = KV{Key: c.Keys.Get(idx), Value: c.Values.Get(idx)}
	}
	if c.AsArray {
		return pairs
	}
	m := make(map[any]any, n)
	for _, p := range pairs {
		m[p.Key] = p.Value
	}
	return m
}

func (c *Map) Slice(start, end int) Column {
	lb := c.lowBound
	if start > 0 {
		lb = c.Offsets[start-1]
	}
	return &Map{Offsets: c.Offsets[start:end], lowBound: lb, Keys: c.Keys, Values: c.Values, AsArray: c.AsArray}
}

func (c *Map) Materialize() any { return MaterializeRows(c) }

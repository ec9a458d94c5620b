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

// Scalar is a fixed-width typed-array column: numerics, Bool, Date,
// DateTime, DateTime64, Enum codes, IPv4/IPv6 (UUID and Int128/256 are
// held in a BytesColumn instead). Slicing
// shares the backing array, a zero-copy typed-array reinterpretation.
type Scalar[T any] struct {
	Values []T
}

// NewScalar wraps values as a Column without copying.
func NewScalar[T any](values []T) *Scalar[T] {
	return &Scalar[T]{Values: values}
}

func (c *Scalar[T]) Length() int { return len(c.Values) }

func (c *Scalar[T]) Get(i int) any { return c.Values[i] }

func (c *Scalar[T]) Slice(start, end int) Column {
	return &Scalar[T]{Values: c.Values[start:end]}
}

func (c *Scalar[T]) Materialize() any {
	out := make([]T, len(c.Values))
	copy(out, c.Values)
	return out
}

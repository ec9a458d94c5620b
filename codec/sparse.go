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

package codec

import "github.com/launix-de/chwire/buffer"
import "github.com/launix-de/chwire/column"

// endOfGranuleFlag marks a gap varint whose top bit is set: the remaining
// bits give the count of trailing default rows that close the granule
// with no following value.
const endOfGranuleFlag = uint64(1) << 63

// SparseResumeState holds the fields needed to carry a sparse run across
// a granule boundary. Nothing in this package reads or writes it:
// decodeSparse starts every call from a fresh run, so a granule split
// across blocks is not resumed.
type SparseResumeState struct {
	TrailingDefaults      uint64
	HasValueAfterDefaults bool
}

// Decode is the single dispatch point used by every caller (block reader,
// streaming reader): it reads this column's kind byte via kind, then
// either hands off straight to c.DecodeDense (KindDense) or walks the
// sparse gap-varint stream and scatters decoded values into a
// defaulted-then-overwritten Column (KindSparse). A nil kind (a child
// with no kind subtree of its own, such as a Dynamic member or a JSON
// path) decodes as dense. Per-type codecs never need to know about
// sparseness themselves.
func Decode(c Codec, r *buffer.Reader, rows int, prefix PrefixState, kind *KindNode) (column.Column, error) {
	if kind == nil {
		return c.DecodeDense(r, rows, prefix, nil)
	}
	switch kind.Kind {
	case KindDense:
		return c.DecodeDense(r, rows, prefix, kind)
	case KindSparse:
		return decodeSparse(c, r, rows, prefix, kind)
	default:
		return nil, ErrInvalidDiscriminator
	}
}

// decodeSparse reconstructs a full-length column from a Native sparse
// stream: a sequence of LEB128 gap varints, each either a plain gap
// (rows-until-next-value) followed implicitly by one dense value, or
// (when its top bit is set) a final run of trailing default rows with no
// value following. Non-default positions are collected, their values
// decoded once as a single dense run of that count, then scattered back
// to their original row indexes; default positions keep the codec's
// ZeroValue.
func decodeSparse(c Codec, r *buffer.Reader, rows int, prefix PrefixState, kind *KindNode) (column.Column, error) {
	positions := make([]int, 0, rows)
	row := 0
	for row < rows {
		gap, err := r.ReadVarInt()
		if err != nil {
			return nil, err
		}
		if gap&endOfGranuleFlag != 0 {
			trailing := int(gap &^ endOfGranuleFlag)
			row += trailing
			if row != rows {
				return nil, ErrLengthMismatch
			}
			break
		}
		row += int(gap)
		if row >= rows {
			return nil, ErrLengthMismatch
		}
		positions = append(positions, row)
		row++
	}

	values, err := c.DecodeDense(r, len(positions), prefix, kind)
	if err != nil {
		return nil, err
	}

	out := make([]any, rows)
	zero := c.ZeroValue()
	for i := range out {
		out[i] = zero
	}
	for i, pos := range positions {
		out[pos] = values.Get(i)
	}
	return c.FromValues(out)
}

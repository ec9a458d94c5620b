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

// Package compress is an optional framed-compression seam: packages codec
// and block never import it, and package stream uses it only in
// DecodeCompressed. A caller that wants compressed blocks on the wire
// writes EncodeBlock's output through a Framer's Wrap, and reads them
// back with stream.DecodeCompressed.
package compress

import (
	"io"

	"github.com/pierrec/lz4/v4"
)

// Framer wraps/unwraps a raw byte stream through a general-purpose block
// compressor.
type Framer interface {
	Wrap(w io.Writer) io.WriteCloser
	Unwrap(r io.Reader) io.Reader
}

// LZ4 adapts github.com/pierrec/lz4/v4's streaming API to Framer.
type LZ4 struct{}

func (LZ4) Wrap(w io.Writer) io.WriteCloser { return lz4.NewWriter(w) }

func (LZ4) Unwrap(r io.Reader) io.Reader { return lz4.NewReader(r) }

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

package buffer

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// Writer is a grow-on-write output buffer. Composite codecs pre-size child
// writers from Codec.EstimateSize so the common case never reallocates.
type Writer struct {
	buf []byte
}

// NewWriter allocates a writer with sizeHint bytes of initial capacity.
func NewWriter(sizeHint int) *Writer {
	if sizeHint < 0 {
		sizeHint = 0
	}
	return &Writer{buf: make([]byte, 0, sizeHint)}
}

// Bytes returns the tight final slice written so far.
func (w *Writer) Bytes() []byte { return w.buf }

// Len returns the number of bytes written so far.
func (w *Writer) Len() int { return len(w.buf) }

// WriteU8 appends a single byte.
func (w *Writer) WriteU8(v uint8) { w.buf = append(w.buf, v) }

// WriteBool appends a one-byte boolean.
func (w *Writer) WriteBool(v bool) {
	if v {
		w.WriteU8(1)
	} else {
		w.WriteU8(0)
	}
}

// WriteU16LE appends a 2-byte little-endian unsigned integer.
func (w *Writer) WriteU16LE(v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

// WriteU32LE appends a 4-byte little-endian unsigned integer.
func (w *Writer) WriteU32LE(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

// WriteI32LE appends a 4-byte little-endian signed integer.
func (w *Writer) WriteI32LE(v int32) { w.WriteU32LE(uint32(v)) }

// WriteU64LE appends an 8-byte little-endian unsigned integer.
func (w *Writer) WriteU64LE(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

// WriteI64LE appends an 8-byte little-endian signed integer.
func (w *Writer) WriteI64LE(v int64) { w.WriteU64LE(uint64(v)) }

// WriteF32LE appends a 4-byte little-endian IEEE-754 float.
func (w *Writer) WriteF32LE(v float32) { w.WriteU32LE(math.Float32bits(v)) }

// WriteF64LE appends an 8-byte little-endian IEEE-754 float.
func (w *Writer) WriteF64LE(v float64) { w.WriteU64LE(math.Float64bits(v)) }

// WriteVarint appends u as unsigned LEB128.
func (w *Writer) WriteVarint(u uint64) {
	for u >= 0x80 {
		w.buf = append(w.buf, byte(u)|0x80)
		u >>= 7
	}
	w.buf = append(w.buf, byte(u))
}

// WriteString appends a varint length prefix followed by the UTF-8 bytes.
func (w *Writer) WriteString(s string) {
	w.WriteVarint(uint64(len(s)))
	w.buf = append(w.buf, s...)
}

// WriteBytes appends raw bytes with no length prefix.
func (w *Writer) WriteBytes(b []byte) { w.buf = append(w.buf, b...) }

// WriteTypedArray appends n elements of a native typed buffer by
// reinterpreting it as raw little-endian bytes without per-element
// conversion, the encode-side counterpart of ReadTypedArray.
func WriteTypedArray[T any](w *Writer, values []T) {
	if len(values) == 0 {
		return
	}
	var zero T
	elemWidth := int(unsafe.Sizeof(zero))
	raw := unsafe.Slice((*byte)(unsafe.Pointer(&values[0])), elemWidth*len(values))
	w.buf = append(w.buf, raw...)
}

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

package types

import "math/big"

// Int128/Int256/UInt128/UInt256 are two's-complement little-endian byte
// arrays, the wire representation of the matching scalar types. They are
// kept as fixed-size arrays rather than math/big.Int so a column
// of them is a flat, zero-copy byte buffer on the wire.
type Int128 [16]byte
type UInt128 [16]byte
type Int256 [32]byte
type UInt256 [32]byte

// BigIntToLE encodes v as a little-endian two's-complement byte array of
// the given width, truncating/sign-extending as needed.
func BigIntToLE(v *big.Int, width int) []byte {
	out := make([]byte, width)
	if v.Sign() >= 0 {
		b := v.Bytes() // big-endian magnitude
		for i := 0; i < len(b) && i < width; i++ {
			out[i] = b[len(b)-1-i]
		}
		return out
	}
	// two's complement of the magnitude
	mag := new(big.Int).Neg(v)
	b := mag.Bytes()
	be := make([]byte, width)
	for i := 0; i < len(b) && i < width; i++ {
		be[width-1-i] = b[len(b)-1-i]
	}
	carry := 1
	for i := width - 1; i >= 0; i-- {
		b := int(^be[i]&0xff) + carry
		out[width-1-i] = byte(b)
		carry = b >> 8
	}
	return out
}

// LEToBigInt decodes a little-endian two's-complement byte array into a
// signed big.Int.
func LEToBigInt(le []byte) *big.Int {
	width := len(le)
	negative := width > 0 && le[width-1]&0x80 != 0
	be := make([]byte, width)
	for i := 0; i < width; i++ {
		be[i] = le[width-1-i]
	}
	v := new(big.Int).SetBytes(be)
	if !negative {
		return v
	}
	// v currently holds the two's-complement bit pattern as an unsigned
	// magnitude; subtract 2^(8*width) to recover the signed value.
	mod := new(big.Int).Lsh(big.NewInt(1), uint(8*width))
	return v.Sub(v, mod)
}

// LEToBigUint decodes a little-endian byte array into an unsigned big.Int.
func LEToBigUint(le []byte) *big.Int {
	width := len(le)
	be := make([]byte, width)
	for i := 0; i < width; i++ {
		be[i] = le[width-1-i]
	}
	return new(big.Int).SetBytes(be)
}

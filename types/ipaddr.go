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

import (
	"fmt"
	"net/netip"
)

// net/netip is the stdlib's address type, used here rather than a
// third-party library since no IP-parsing dependency fits this surface
// (see DESIGN.md).

// EncodeIPv4 packs a 4-byte IPv4 address into its wire form: the dotted
// A.B.C.D octets, reversed, so the 4 wire bytes equal the little-endian
// encoding of the network-byte-order uint32 address.
func EncodeIPv4(addr netip.Addr) ([4]byte, error) {
	if !addr.Is4() {
		return [4]byte{}, fmt.Errorf("types: %s is not an IPv4 address", addr)
	}
	a := addr.As4()
	return [4]byte{a[3], a[2], a[1], a[0]}, nil
}

// DecodeIPv4 reverses EncodeIPv4.
func DecodeIPv4(wire [4]byte) netip.Addr {
	return netip.AddrFrom4([4]byte{wire[3], wire[2], wire[1], wire[0]})
}

// EncodeIPv6 returns the raw 16-byte representation.
func EncodeIPv6(addr netip.Addr) ([16]byte, error) {
	if !addr.Is6() {
		return [16]byte{}, fmt.Errorf("types: %s is not an IPv6 address", addr)
	}
	return addr.As16(), nil
}

// DecodeIPv6 builds an Addr from its raw 16-byte wire form.
func DecodeIPv6(wire [16]byte) netip.Addr {
	return netip.AddrFrom16(wire)
}

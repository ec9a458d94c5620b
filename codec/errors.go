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

import "errors"

// Sentinel errors returned by codec operations. Buffer underflow is
// re-exported from buffer so callers never need to import both packages
// just to call errors.Is.
var (
	ErrUnknownType             = errors.New("codec: unknown type")
	ErrUnsupportedVersion      = errors.New("codec: unsupported version")
	ErrInvalidDiscriminator    = errors.New("codec: invalid discriminator")
	ErrLengthMismatch          = errors.New("codec: length mismatch")
	ErrNotYetSupported         = errors.New("codec: not yet supported")
	ErrAmbiguousDynamicValue   = errors.New("codec: ambiguous value for Dynamic type inference")
	ErrUnsupportedVariantMode  = errors.New("codec: unsupported Variant serialization mode")
	ErrWrongValueType          = errors.New("codec: value does not match column type")
)

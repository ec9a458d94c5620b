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
	"math/big"

	"github.com/shopspring/decimal"
)

// Decimal(P,S) is stored on the wire as a scaled integer: real_value =
// stored_int / 10^S. pow10 is a precomputed lookup table of 10^n for the
// scale exponents Native actually uses (0..76, covering Decimal256's
// maximum precision), kept as big.Int since Decimal128/256 stored integers
// exceed int64/float64 range.
var pow10 [77]*big.Int

func init() {
	ten := big.NewInt(10)
	pow10[0] = big.NewInt(1)
	for i := 1; i < len(pow10); i++ {
		pow10[i] = new(big.Int).Mul(pow10[i-1], ten)
	}
}

// Pow10 returns 10^scale as a big.Int, panicking if scale is out of the
// supported Decimal256 range — callers validate scale against precision
// before calling this.
func Pow10(scale int) *big.Int {
	return pow10[scale]
}

// DecimalWidth returns the wire width in bytes for a Decimal(P,S) given its
// precision P, using the 4/8/16/32 byte tiers (Decimal32/64/128/256).
func DecimalWidth(precision int) int {
	switch {
	case precision <= 9:
		return 4
	case precision <= 18:
		return 8
	case precision <= 38:
		return 16
	default:
		return 32
	}
}

// DecimalToString renders a scaled integer value as a precision-preserving
// decimal string, e.g. StoredInt=12345, scale=2 -> "123.45". Uses
// shopspring/decimal so trailing zeros and sign are handled without float
// rounding.
func DecimalToString(stored *big.Int, scale int) string {
	return decimal.NewFromBigInt(stored, int32(-scale)).String()
}

// DecimalFromString parses a precision-preserving decimal string into its
// scaled integer representation at the given scale.
func DecimalFromString(s string, scale int) (*big.Int, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, err
	}
	scaled := d.Shift(int32(scale))
	return scaled.BigInt(), nil
}

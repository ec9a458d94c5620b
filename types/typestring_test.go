package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseTypeRoundTrip(t *testing.T) {
	cases := []string{
		"UInt8",
		"String",
		"Nullable(String)",
		"Array(Int8)",
		"Array(Array(UInt32))",
		"Map(String,UInt32)",
		"Tuple(UInt8,String)",
		"Tuple(a UInt8,b String)",
		"LowCardinality(String)",
		"Variant(String,Int64)",
		"Decimal(18,4)",
		"DateTime64(3)",
		"FixedString(16)",
		"Nullable(Array(Tuple(id UInt32,name String)))",
	}
	for _, s := range cases {
		ty, err := ParseType(s)
		require.NoError(t, err, s)
		require.Equal(t, s, ty.String(), s)
	}
}

func TestParseTypeMalformed(t *testing.T) {
	_, err := ParseType("Array(UInt8")
	require.Error(t, err)
	_, err = ParseType("Map(String)")
	require.Error(t, err)
}

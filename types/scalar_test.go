package types

import (
	"math/big"
	"net/netip"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBigIntRoundTrip(t *testing.T) {
	cases := []string{"0", "1", "-1", "170141183460469231731687303715884105727", "-170141183460469231731687303715884105728"}
	for _, c := range cases {
		v := new(big.Int)
		v.SetString(c, 10)
		le := BigIntToLE(v, 16)
		got := LEToBigInt(le)
		require.Equal(t, v.String(), got.String(), c)
	}
}

func TestDecimalStringRoundTrip(t *testing.T) {
	stored, err := DecimalFromString("123.45", 2)
	require.NoError(t, err)
	require.Equal(t, "12345", stored.String())
	require.Equal(t, "123.45", DecimalToString(stored, 2))
}

func TestIPv4RoundTrip(t *testing.T) {
	addr := netip.MustParseAddr("192.168.1.1")
	wire, err := EncodeIPv4(addr)
	require.NoError(t, err)
	require.Equal(t, [4]byte{1, 1, 168, 192}, wire)
	require.Equal(t, addr, DecodeIPv4(wire))
}

func TestIPv6RoundTrip(t *testing.T) {
	addr := netip.MustParseAddr("::1")
	wire, err := EncodeIPv6(addr)
	require.NoError(t, err)
	require.Equal(t, addr, DecodeIPv6(wire))
}

package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHeaderPackUnpack(t *testing.T) {
	cases := []struct {
		name string
		h    Header
		want uint32
	}{
		{"free block", Header{Size: 24}, 24},
		{"allocated", Header{Size: 32, Allocated: true}, 32 | 0x1},
		{"prev allocated", Header{Size: 4096, PrevAllocated: true}, 4096 | 0x2},
		{"both flags", Header{Size: 8, Allocated: true, PrevAllocated: true}, 8 | 0x3},
		{"epilogue", Header{Size: 0, Allocated: true, PrevAllocated: true}, 0x3},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, tc.h.Pack())
			require.Equal(t, tc.h, Unpack(tc.want))
		})
	}
}

func TestHeaderRoundTripThroughBuffer(t *testing.T) {
	buf := make([]byte, 16)
	h := Header{Size: 1024, Allocated: true}

	PutHeader(buf, 4, h)
	require.Equal(t, h, ReadHeader(buf, 4))

	// Neighboring words must stay untouched.
	require.Equal(t, uint32(0), ReadU32(buf, 0))
	require.Equal(t, uint32(0), ReadU32(buf, 8))
}

func TestAlign8(t *testing.T) {
	cases := []struct {
		in, want int64
	}{
		{0, 0},
		{1, 8},
		{7, 8},
		{8, 8},
		{9, 16},
		{24, 24},
		{4095, 4096},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, Align8(tc.in), "Align8(%d)", tc.in)
	}

	require.True(t, Aligned8(16))
	require.False(t, Aligned8(12))
}

func TestEncodingRoundTrip(t *testing.T) {
	buf := make([]byte, 12)

	PutU32(buf, 0, 0xDEADBEEF)
	require.Equal(t, uint32(0xDEADBEEF), ReadU32(buf, 0))
	// Little-endian layout.
	require.Equal(t, byte(0xEF), buf[0])

	PutU64(buf, 4, 0x0102030405060708)
	require.Equal(t, uint64(0x0102030405060708), ReadU64(buf, 4))
}

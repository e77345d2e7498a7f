package blake2b

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	// Source: BLAKE2 Section 2.8
	demoParamBytes = "402001010000000000000000000000000000000000000000000000000000000055555555555555555555555555555555eeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee"
)

func TestParameterBlockInit(t *testing.T) {
	params := &parameterBlock{
		fanout:          1,
		depth:           1,
		KeyLength:       32,
		DigestSize:      64,
		Salt:            []byte{0x55, 0x55, 0x55, 0x55, 0x55, 0x55, 0x55, 0x55, 0x55, 0x55, 0x55, 0x55, 0x55, 0x55, 0x55, 0x55},
		Personalization: []byte{0xee, 0xee, 0xee, 0xee, 0xee, 0xee, 0xee, 0xee, 0xee, 0xee, 0xee, 0xee, 0xee, 0xee, 0xee, 0xee},
	}

	packedBytes := params.Marshal()
	expectedBytes, err := hex.DecodeString(demoParamBytes)
	require.NoError(t, err)
	require.Equal(t, expectedBytes, packedBytes)

	digest := initFromParams(params)
	require.Equal(t, IV0^uint64(0x01012040), digest.h[0])
}

func TestNew(t *testing.T) {
	_, err := New(nil, nil, nil, 32)
	require.NoError(t, err)
}

func TestRFC7693Vectors(t *testing.T) {
	cases := []struct {
		name   string
		input  []byte
		expect string
	}{
		{
			name:  "empty",
			input: nil,
			expect: "786a02f742015903c6c6fd852552d272912f4740e15847618a86e217f71f541" +
				"9d25e1031afee585313896444934eb04b903a685b1448b755d56f701afe9be2ce",
		},
		{
			name:  "abc",
			input: []byte("abc"),
			expect: "ba80a53f981c4d0d6a2797b69f12f6e94c212f14685ac4b74b12bb6fdbffa2d" +
				"17d87c5392aab792dc252d5de4533cc9518d38aa8dbf1925ab92386edd4009923",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d, err := New(nil, nil, nil, MaxOutput)
			require.NoError(t, err)
			_, err = d.Write(tc.input)
			require.NoError(t, err)
			hexDigest, err := d.HexDigest()
			require.NoError(t, err)
			require.Equal(t, tc.expect, hexDigest)
		})
	}
}

func TestBlockBoundaryStreaming(t *testing.T) {
	// 257 bytes of 0xAA fed as chunks of {1,127,1,127,1}, RFC edge case
	// for the strict "more than BlockSize pending" rule in Write.
	data := make([]byte, 257)
	for i := range data {
		data[i] = 0xAA
	}

	chunked, err := New(nil, nil, nil, 32)
	require.NoError(t, err)
	offsets := []int{1, 127, 1, 127, 1}
	pos := 0
	for _, n := range offsets {
		_, err := chunked.Write(data[pos : pos+n])
		require.NoError(t, err)
		pos += n
	}
	require.Equal(t, len(data), pos)
	chunkedDigest, err := chunked.Finalize()
	require.NoError(t, err)

	oneShot, err := New(nil, nil, nil, 32)
	require.NoError(t, err)
	_, err = oneShot.Write(data)
	require.NoError(t, err)
	oneShotDigest, err := oneShot.Finalize()
	require.NoError(t, err)

	require.Equal(t, oneShotDigest, chunkedDigest)
}

func TestKeyedMACRoundTrip(t *testing.T) {
	msg := []byte("This is a message to authenticate")
	key := []byte("secret_authentication_key_2024")

	d1, err := New(key, nil, nil, 32)
	require.NoError(t, err)
	_, err = d1.Write(msg)
	require.NoError(t, err)
	h1, err := d1.Finalize()
	require.NoError(t, err)

	d2, err := New(key, nil, nil, 32)
	require.NoError(t, err)
	_, err = d2.Write(msg)
	require.NoError(t, err)
	h2, err := d2.Finalize()
	require.NoError(t, err)

	require.Equal(t, h1, h2)

	flippedKey := make([]byte, len(key))
	copy(flippedKey, key)
	flippedKey[0] ^= 0x01

	d3, err := New(flippedKey, nil, nil, 32)
	require.NoError(t, err)
	_, err = d3.Write(msg)
	require.NoError(t, err)
	h3, err := d3.Finalize()
	require.NoError(t, err)

	require.NotEqual(t, h1, h3)

	diffBits := 0
	for i := range h1 {
		diffBits += popcount(h1[i] ^ h3[i])
	}
	require.GreaterOrEqual(t, diffBits, 40, "expected avalanche: >=40 of 256 bits to differ")
}

func TestChunkingIndependence(t *testing.T) {
	data := []byte("the quick brown fox jumps over the lazy dog, repeated for padding purposes")

	whole, err := New(nil, nil, nil, 64)
	require.NoError(t, err)
	_, err = whole.Write(data)
	require.NoError(t, err)
	wholeDigest, err := whole.Finalize()
	require.NoError(t, err)

	partitions := [][]int{{1, len(data) - 1}, {len(data)}, {0, len(data)}}
	for _, lens := range partitions {
		d, err := New(nil, nil, nil, 64)
		require.NoError(t, err)
		pos := 0
		for _, n := range lens {
			_, err := d.Write(data[pos : pos+n])
			require.NoError(t, err)
			pos += n
		}
		got, err := d.Finalize()
		require.NoError(t, err)
		require.Equal(t, wholeDigest, got)
	}
}

func TestFinalizeIdempotent(t *testing.T) {
	d, err := New(nil, nil, nil, 32)
	require.NoError(t, err)
	_, err = d.Write([]byte("idempotence"))
	require.NoError(t, err)

	first, err := d.Finalize()
	require.NoError(t, err)
	second, err := d.Finalize()
	require.NoError(t, err)
	require.Equal(t, first, second)

	_, err = d.Write([]byte("more"))
	require.ErrorIs(t, err, ErrFinalized)
}

func TestDigestSizeChangesWholeOutput(t *testing.T) {
	data := []byte("non-truncation check")

	d64, err := New(nil, nil, nil, 64)
	require.NoError(t, err)
	_, err = d64.Write(data)
	require.NoError(t, err)
	full, err := d64.Finalize()
	require.NoError(t, err)

	d32, err := New(nil, nil, nil, 32)
	require.NoError(t, err)
	_, err = d32.Write(data)
	require.NoError(t, err)
	truncated, err := d32.Finalize()
	require.NoError(t, err)

	require.NotEqual(t, full[:32], truncated)
}

func TestParameterRangeErrors(t *testing.T) {
	_, err := New(nil, nil, nil, 0)
	require.Error(t, err)

	_, err = New(nil, nil, nil, MaxOutput+1)
	require.Error(t, err)

	_, err = New(nil, make([]byte, SaltLength+1), nil, 32)
	require.Error(t, err)

	_, err = New(nil, nil, make([]byte, SeparatorLength+1), 32)
	require.Error(t, err)

	_, err = New(make([]byte, KeyLength+1), nil, nil, 32)
	require.Error(t, err)
}

func popcount(b byte) int {
	n := 0
	for b != 0 {
		n += int(b & 1)
		b >>= 1
	}
	return n
}

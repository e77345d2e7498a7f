package blake2

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOneShotMatchesIncremental(t *testing.T) {
	data := []byte("one-shot must equal new+update+finalize")

	oneShot, err := Blake2b(data, 32, nil, nil, nil)
	require.NoError(t, err)

	h, err := NewBlake2b(32, nil, nil, nil)
	require.NoError(t, err)
	require.NoError(t, h.Update(data))
	incremental, err := h.Finalize()
	require.NoError(t, err)

	require.Equal(t, oneShot, incremental)
}

func TestDeterminism(t *testing.T) {
	data := []byte("same input, same parameters, same output")
	a, err := Blake2s(data, 32, nil, nil, nil)
	require.NoError(t, err)
	b, err := Blake2s(data, 32, nil, nil, nil)
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestVerifyPassAndFail(t *testing.T) {
	data := []byte("verify me")
	digest, err := Blake2b(data, 32, nil, nil, nil)
	require.NoError(t, err)

	expected := hexString(digest)

	ok, err := Verify(Blake2bAlgorithm, data, 32, nil, nil, nil, expected)
	require.NoError(t, err)
	require.True(t, ok)

	// Case-insensitivity and stripped separators.
	spaced := insertSeparators(strings.ToUpper(expected))
	ok, err = Verify(Blake2bAlgorithm, data, 32, nil, nil, nil, spaced)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = Verify(Blake2bAlgorithm, data, 32, nil, nil, nil, flipLastNibble(expected))
	require.NoError(t, err)
	require.False(t, ok)
}

func TestVerifyUnknownAlgorithm(t *testing.T) {
	_, err := Verify(Algorithm("blake3"), []byte("x"), 32, nil, nil, nil, "00")
	require.Error(t, err)
}

func hexString(b []byte) string {
	const hexdigits = "0123456789abcdef"
	out := make([]byte, len(b)*2)
	for i, c := range b {
		out[i*2] = hexdigits[c>>4]
		out[i*2+1] = hexdigits[c&0x0f]
	}
	return string(out)
}

func insertSeparators(hex string) string {
	out := make([]byte, 0, len(hex)*2)
	for i, c := range []byte(hex) {
		if i > 0 && i%2 == 0 {
			out = append(out, ':')
		}
		out = append(out, c)
	}
	return " " + string(out) + " "
}

func flipLastNibble(hex string) string {
	b := []byte(hex)
	last := b[len(b)-1]
	if last == '0' {
		b[len(b)-1] = '1'
	} else {
		b[len(b)-1] = '0'
	}
	return string(b)
}

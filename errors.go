package blake2

import (
	"encoding/hex"
	"fmt"
)

// errUnknownAlgorithm reports an Algorithm value Verify doesn't recognize.
func errUnknownAlgorithm(alg Algorithm) error {
	return fmt.Errorf("blake2: unknown algorithm %q", string(alg))
}

// decodeHex decodes a hex string, stripping the spaces and colons that
// sha256sum-style tools and copy-pasted fingerprints commonly include.
func decodeHex(s string) ([]byte, error) {
	cleaned := stripHexSeparators(s)
	return hex.DecodeString(cleaned)
}

func stripHexSeparators(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ' ', ':':
			continue
		default:
			out = append(out, s[i])
		}
	}
	return string(out)
}

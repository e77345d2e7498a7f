package blake2

import (
	"crypto/subtle"
	"strings"

	"github.com/daemonX10/blake2/blake2b"
	"github.com/daemonX10/blake2/blake2s"
)

// Hasher is the incremental interface shared by both BLAKE2 variants. A
// Hasher is not safe for concurrent mutation: Update and Finalize require
// exclusive access to a single instance. Distinct instances share nothing
// mutable and may be used fully in parallel.
type Hasher interface {
	// Update appends chunk to the hasher's pending input. The hasher copies
	// chunk into its own buffer; the caller's memory is not retained.
	Update(chunk []byte) error
	// Finalize pads and compresses any pending input and returns the
	// digest. It is idempotent: later calls return the same bytes without
	// recomputing, and never error.
	Finalize() ([]byte, error)
	// HexDigest returns the lower-case hex encoding of Finalize().
	HexDigest() (string, error)
	// Size reports the configured digest length in bytes.
	Size() int
}

// NewBlake2b constructs a BLAKE2b hasher. key, salt, and personalization are
// all optional (nil or empty). digestSize must be in [1, 64].
func NewBlake2b(digestSize int, key, salt, personalization []byte) (Hasher, error) {
	d, err := blake2b.New(key, salt, personalization, digestSize)
	if err != nil {
		// Returned explicitly (rather than the naked *Digest) so the
		// interface value is a true nil, not a non-nil interface wrapping
		// a nil *blake2b.Digest.
		return nil, err
	}
	return d, nil
}

// NewBlake2s constructs a BLAKE2s hasher. key, salt, and personalization are
// all optional (nil or empty). digestSize must be in [1, 32].
func NewBlake2s(digestSize int, key, salt, personalization []byte) (Hasher, error) {
	d, err := blake2s.New(key, salt, personalization, digestSize)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// Blake2b computes the one-shot BLAKE2b digest of data with the given
// parameters. It is equivalent to constructing a Hasher, calling Update
// once, and calling Finalize.
func Blake2b(data []byte, digestSize int, key, salt, personalization []byte) ([]byte, error) {
	h, err := NewBlake2b(digestSize, key, salt, personalization)
	if err != nil {
		return nil, err
	}
	if err := h.Update(data); err != nil {
		return nil, err
	}
	return h.Finalize()
}

// Blake2s computes the one-shot BLAKE2s digest of data with the given
// parameters. It is equivalent to constructing a Hasher, calling Update
// once, and calling Finalize.
func Blake2s(data []byte, digestSize int, key, salt, personalization []byte) ([]byte, error) {
	h, err := NewBlake2s(digestSize, key, salt, personalization)
	if err != nil {
		return nil, err
	}
	if err := h.Update(data); err != nil {
		return nil, err
	}
	return h.Finalize()
}

// Algorithm selects a BLAKE2 variant for the facade-level Verify helper.
type Algorithm string

const (
	Blake2bAlgorithm Algorithm = "blake2b"
	Blake2sAlgorithm Algorithm = "blake2s"
)

// Verify recomputes the hash of data with the given parameters and compares
// it to expectedHex, a caller-supplied hex string. The comparison runs in
// constant time over the decoded bytes so that early-exit timing cannot
// leak information about the expected value; it is case-insensitive on the
// hex encoding.
func Verify(alg Algorithm, data []byte, digestSize int, key, salt, personalization []byte, expectedHex string) (bool, error) {
	var actual []byte
	var err error

	switch alg {
	case Blake2bAlgorithm:
		actual, err = Blake2b(data, digestSize, key, salt, personalization)
	case Blake2sAlgorithm:
		actual, err = Blake2s(data, digestSize, key, salt, personalization)
	default:
		return false, errUnknownAlgorithm(alg)
	}
	if err != nil {
		return false, err
	}

	expected, err := decodeHex(strings.ToLower(expectedHex))
	if err != nil {
		return false, err
	}

	return constantTimeEqual(actual, expected), nil
}

// constantTimeEqual reports whether a and b hold the same bytes, comparing
// in constant time. Unequal lengths are rejected cheaply up front (the
// length itself is not secret), but once lengths match, every byte pair is
// compared regardless of earlier mismatches.
func constantTimeEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare(a, b) == 1
}

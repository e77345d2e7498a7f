// Package blake2s implements the BLAKE2s secure hashing algorithm with
// support for salting, personalization, and keyed hashing (MAC). BLAKE2s is
// optimized for 8- to 32-bit platforms and produces digests of any size
// between 1 and 32 bytes, as defined in RFC 7693.
package blake2s

import (
	"errors"
	"math/bits"
)

// The constant values will be different for other BLAKE2 variants. These are
// appropriate for BLAKE2s.
const (
	KeyLength = 32
	// The maximum number of bytes to produce.
	MaxOutput = 32
	// Max size of the salt, in bytes
	SaltLength = 8
	// Max size of the personalization string, in bytes
	SeparatorLength = 8
	// Number of G function rounds for BLAKE2s.
	RoundCount = 10
	// Size of a block buffer in bytes
	BlockSize = 64

	// Initialization vector for BLAKE2s
	IV0 uint32 = 0x6a09e667
	IV1 uint32 = 0xbb67ae85
	IV2 uint32 = 0x3c6ef372
	IV3 uint32 = 0xa54ff53a
	IV4 uint32 = 0x510e527f
	IV5 uint32 = 0x9b05688c
	IV6 uint32 = 0x1f83d9ab
	IV7 uint32 = 0x5be0cd19
)

// ErrFinalized is returned by Write/Update when the digest has already been
// finalized. Once a Digest is finalized it becomes read-only.
var ErrFinalized = errors.New("blake2s: hasher already finalized")

// SIGMA is the lookup table of permutations of 0...15 used by the BLAKE2s
// round function.
var SIGMA = [RoundCount][16]byte{
	{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15},
	{14, 10, 4, 8, 9, 15, 13, 6, 1, 12, 0, 2, 11, 7, 5, 3},
	{11, 8, 12, 0, 5, 2, 15, 13, 10, 14, 3, 6, 7, 1, 9, 4},
	{7, 9, 3, 1, 13, 12, 11, 14, 2, 6, 5, 10, 4, 0, 15, 8},
	{9, 0, 5, 7, 2, 4, 10, 15, 14, 1, 11, 12, 6, 8, 3, 13},
	{2, 12, 6, 10, 0, 11, 8, 3, 4, 13, 7, 5, 15, 14, 1, 9},
	{12, 5, 1, 15, 14, 13, 4, 10, 0, 7, 6, 3, 9, 2, 8, 11},
	{13, 11, 7, 14, 12, 1, 3, 9, 5, 0, 15, 4, 8, 6, 2, 10},
	{6, 15, 14, 9, 11, 3, 0, 8, 12, 2, 13, 7, 1, 4, 10, 5},
	{10, 2, 8, 4, 7, 6, 1, 5, 15, 11, 9, 14, 3, 12, 13, 0},
}

// These are the user-visible parameters of a BLAKE2 hash instance. The
// parameter block is XOR'd with the IV at the beginning of the hash.
// Currently we only support sequential mode, so many of these values will be
// hardcoded to a default. They are nevertheless defined for clarity.
type parameterBlock struct {
	DigestSize      byte   // 0
	KeyLength       byte   // 1
	fanout          byte   // 2
	depth           byte   // 3
	leafLength      uint32 // 4-7
	nodeOffset      uint32 // 8-11
	xofLength       uint16 // 12-13
	nodeDepth       byte   // 14
	innerLength     byte   // 15
	Salt            []byte // 16-23
	Personalization []byte // 24-31
}

// Marshal packs a BLAKE2s parameter block into its 32-byte wire layout.
func (p *parameterBlock) Marshal() []byte {
	buf := make([]byte, 32)
	buf[0] = p.DigestSize
	buf[1] = p.KeyLength
	buf[2] = p.fanout
	buf[3] = p.depth
	putU32LE(buf[4:], p.leafLength)
	putU32LE(buf[8:], p.nodeOffset)
	putU16LE(buf[12:], p.xofLength)
	buf[14] = p.nodeDepth
	buf[15] = p.innerLength
	copy(buf[16:], p.Salt)
	copy(buf[24:], p.Personalization)
	return buf
}

// Digest represents the internal state of the BLAKE2s algorithm.
type Digest struct {
	h      [8]uint32
	t0, t1 uint32
	f0, f1 uint32

	buf    [BlockSize]byte
	offset int // current offset inside the block

	// size is the number of bytes Sum/Finalize will return. Since BLAKE2
	// output length is dynamic, so is this.
	size int

	finalized bool
	digest    [MaxOutput]byte
}

// After this function is called, the parameterBlock can be discarded.
func initFromParams(p *parameterBlock) *Digest {
	paramBytes := p.Marshal()

	h0 := IV0 ^ u32LE(paramBytes[0:4])
	h1 := IV1 ^ u32LE(paramBytes[4:8])
	h2 := IV2 ^ u32LE(paramBytes[8:12])
	h3 := IV3 ^ u32LE(paramBytes[12:16])
	h4 := IV4 ^ u32LE(paramBytes[16:20])
	h5 := IV5 ^ u32LE(paramBytes[20:24])
	h6 := IV6 ^ u32LE(paramBytes[24:28])
	h7 := IV7 ^ u32LE(paramBytes[28:32])

	d := &Digest{
		h:    [8]uint32{h0, h1, h2, h3, h4, h5, h6, h7},
		size: int(p.DigestSize),
	}

	return d
}

// compress runs one application of F over the state held at h, mixing in
// the pending block buf and the counter/final-flag words t0,t1,f0,f1.
func (d *Digest) compress() {
	var m [16]uint32
	for i := 0; i < 16; i++ {
		m[i] = u32LE(d.buf[i*4 : i*4+4])
	}

	v := [16]uint32{
		d.h[0], d.h[1], d.h[2], d.h[3],
		d.h[4], d.h[5], d.h[6], d.h[7],
		IV0, IV1, IV2, IV3,
		IV4 ^ d.t0, IV5 ^ d.t1, IV6 ^ d.f0, IV7 ^ d.f1,
	}

	for round := 0; round < RoundCount; round++ {
		s := &SIGMA[round]
		g(&v, 0, 4, 8, 12, m[s[0]], m[s[1]])
		g(&v, 1, 5, 9, 13, m[s[2]], m[s[3]])
		g(&v, 2, 6, 10, 14, m[s[4]], m[s[5]])
		g(&v, 3, 7, 11, 15, m[s[6]], m[s[7]])
		g(&v, 0, 5, 10, 15, m[s[8]], m[s[9]])
		g(&v, 1, 6, 11, 12, m[s[10]], m[s[11]])
		g(&v, 2, 7, 8, 13, m[s[12]], m[s[13]])
		g(&v, 3, 4, 9, 14, m[s[14]], m[s[15]])
	}

	for i := 0; i < 8; i++ {
		d.h[i] = d.h[i] ^ v[i] ^ v[i+8]
	}
}

// g is the BLAKE2s quarter-round mixing function. It mutates the working
// vector in place at indices a, b, c, d with message words x, y.
func g(v *[16]uint32, a, b, c, d int, x, y uint32) {
	v[a] = v[a] + v[b] + x
	v[d] = bits.RotateLeft32(v[d]^v[a], -16)
	v[c] = v[c] + v[d]
	v[b] = bits.RotateLeft32(v[b]^v[c], -12)
	v[a] = v[a] + v[b] + y
	v[d] = bits.RotateLeft32(v[d]^v[a], -8)
	v[c] = v[c] + v[d]
	v[b] = bits.RotateLeft32(v[b]^v[c], -7)
}

// finalizeInto computes the final chaining value as if the pending buffer
// were the last block, without mutating d beyond caching the result and
// setting the finalized flag. Calling it twice returns the cached digest.
func (d *Digest) finalizeInto() []byte {
	if d.finalized {
		return d.digest[:d.size]
	}

	dCopy := *d

	for i := dCopy.offset; i < BlockSize; i++ {
		dCopy.buf[i] = 0
	}

	dCopy.t0 += uint32(d.offset)
	if dCopy.t0 < uint32(d.offset) {
		dCopy.t1++
	}
	dCopy.f0 = 0xFFFFFFFF

	dCopy.compress()

	for i := 0; i < d.size; i++ {
		shift := uint(8 * (i % 4))
		d.digest[i] = byte((dCopy.h[i/4] >> shift) & 0xFF)
	}

	d.finalized = true
	return d.digest[:d.size]
}

// New constructs a new BLAKE2s Digest with the provided configuration. key,
// salt, and personalization are all optional (nil or empty).
func New(key, salt, personalization []byte, outputBytes int) (*Digest, error) {
	params := &parameterBlock{
		fanout: 1, // sequential mode
		depth:  1, // sequential mode
	}

	if outputBytes <= 0 {
		return nil, errors.New("blake2s: asked for negative or zero output")
	}
	if outputBytes > MaxOutput {
		return nil, errors.New("blake2s: asked for too much output")
	}
	params.DigestSize = byte(outputBytes & 0xFF)

	if key != nil {
		if len(key) > KeyLength {
			return nil, errors.New("blake2s: key too large")
		}
		params.KeyLength = byte(len(key) & 0xFF)
	}

	params.Salt = make([]byte, SaltLength)
	if salt != nil {
		if len(salt) > SaltLength {
			return nil, errors.New("blake2s: salt too large")
		}
		copy(params.Salt, salt)
	}

	params.Personalization = make([]byte, SeparatorLength)
	if personalization != nil {
		if len(personalization) > SeparatorLength {
			return nil, errors.New("blake2s: personalization string too large")
		}
		copy(params.Personalization, personalization)
	}

	digest := initFromParams(params)

	if len(key) > 0 {
		var keyBuf [BlockSize]byte
		copy(keyBuf[:], key)
		if _, err := digest.Write(keyBuf[:]); err != nil {
			return nil, err
		}
	}

	return digest, nil
}

// Write adds more data to the running hash. It returns ErrFinalized if the
// digest has already been finalized.
func (d *Digest) Write(input []byte) (n int, err error) {
	if d.finalized {
		return 0, ErrFinalized
	}

	bytesWritten := 0

	for bytesWritten < len(input) {
		freeBytes := BlockSize - d.offset
		inputLeft := len(input) - bytesWritten

		if inputLeft <= freeBytes {
			newOffset := d.offset + inputLeft
			copy(d.buf[d.offset:newOffset], input[bytesWritten:])
			d.offset = newOffset
			return bytesWritten + inputLeft, nil
		}

		copy(d.buf[d.offset:], input[bytesWritten:bytesWritten+freeBytes])

		d.t0 += BlockSize
		if d.t0 < BlockSize {
			d.t1++
		}

		d.compress()

		bytesWritten += freeBytes
		d.offset = 0
	}

	return bytesWritten, nil
}

// Update is an alias for Write that reports errors without the io.Writer
// byte-count noise.
func (d *Digest) Update(input []byte) error {
	_, err := d.Write(input)
	return err
}

// Finalize pads and compresses the pending buffer as the final block and
// returns the digest. It is idempotent: subsequent calls return the same
// cached bytes without recomputing.
func (d *Digest) Finalize() ([]byte, error) {
	out := d.finalizeInto()
	cp := make([]byte, len(out))
	copy(cp, out)
	return cp, nil
}

// HexDigest returns the lower-case hexadecimal encoding of Finalize().
func (d *Digest) HexDigest() (string, error) {
	out, err := d.Finalize()
	if err != nil {
		return "", err
	}
	return hexEncode(out), nil
}

// Sum appends the current hash to b and returns the resulting slice. It is
// provided for hash.Hash compatibility and mirrors Finalize's output.
func (d *Digest) Sum(b []byte) []byte {
	return append(b, d.finalizeInto()...)
}

// Reset always panics. BLAKE2 cannot be reset in
// place without retaining the original key, salt, and personalization, so
// this is unsupported; construct a new Digest via New instead.
func (d *Digest) Reset() {
	panic("blake2s: Digest cannot be reset without stored construction parameters")
}

// Size returns the digest output size in bytes.
func (d *Digest) Size() int { return d.size }

// BlockSize returns the hash's underlying block size.
func (d *Digest) BlockSize() int { return BlockSize }

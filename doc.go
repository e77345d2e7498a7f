// Package blake2 implements the BLAKE2s and BLAKE2b secure hashing algorithms
// with support for salting, personalization, and keyed hashing (MAC), as
// defined in RFC 7693. BLAKE2s is optimized for 8- to 32-bit platforms and
// produces digests of any size between 1 and 32 bytes. BLAKE2b is optimized
// for 64-bit platforms and produces digests of any size between 1 and 64
// bytes.
//
// The one-shot and incremental entry points in this package are thin
// wrappers over the blake2b and blake2s subpackages, which hold the actual
// compression engines.
package blake2

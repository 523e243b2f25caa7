// Package hash wraps xxHash64 for dictionary keys and frame checksums.
package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// Checksum computes the xxHash64 of b.
func Checksum(b []byte) uint64 {
	return xxhash.Sum64(b)
}

// Digest accumulates a checksum over several byte slices.
type Digest struct {
	d *xxhash.Digest
}

// NewDigest returns an empty digest.
func NewDigest() Digest {
	return Digest{d: xxhash.New()}
}

// Write adds b to the digest.
func (d Digest) Write(b []byte) {
	_, _ = d.d.Write(b)
}

// Sum64 returns the checksum of everything written so far.
func (d Digest) Sum64() uint64 {
	return d.d.Sum64()
}

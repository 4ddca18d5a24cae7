// Package hash fingerprints recovered payloads for batch manifests.
package hash

import (
	"encoding/hex"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/zeebo/blake3"
)

// Digest is a 32-byte BLAKE3 digest.
type Digest [32]byte

// String returns the digest as lowercase hex.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// MarshalText implements encoding.TextMarshaler.
func (d Digest) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// ID computes the xxHash64 of data. It is a fast content id for spotting identical
// recovered files across machines, not a security property.
func ID(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// IDString formats an ID as 16 hex digits.
func IDString(id uint64) string {
	return fmt.Sprintf("%016x", id)
}

// Sum computes the BLAKE3 digest of data.
func Sum(data []byte) Digest {
	return blake3.Sum256(data)
}

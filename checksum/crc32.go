// Package checksum implements the integrity check of MAM containers.
//
// The embedded value is a standard CRC-32 (ISO-3309, reflected polynomial 0xEDB88320) as
// produced by zlib and binascii.crc32. It is computed over three consecutive feeds into one
// running accumulator:
//
//  1. the 8 raw header bytes as read,
//  2. four zero bytes standing in for the checksum field,
//  3. the compressed payload that follows the checksum field.
package checksum

import (
	"hash"
	"hash/crc32"

	"github.com/arloliu/mam/section"
)

var zeroChecksumField [section.ChecksumSize]byte

// CRC32 is a running CRC-32 accumulator. The zero value is not usable; use New.
type CRC32 struct {
	h hash.Hash32
}

// New returns an accumulator seeded with the empty-input CRC.
func New() *CRC32 {
	return &CRC32{h: crc32.NewIEEE()}
}

// Write feeds p into the accumulator. It never returns an error.
func (c *CRC32) Write(p []byte) (int, error) {
	return c.h.Write(p)
}

// Sum32 returns the checksum of everything written so far.
func (c *CRC32) Sum32() uint32 {
	return c.h.Sum32()
}

// Reset restores the accumulator to its initial state.
func (c *CRC32) Reset() {
	c.h.Reset()
}

// Compute returns the checksum a producer embeds for the given header and payload.
//
// Parameters:
//   - header: The 8 raw header bytes (signature and declared size)
//   - payload: The compressed payload following the checksum field
//
// Returns:
//   - uint32: CRC-32 over header, a zeroed checksum field and payload
func Compute(header []byte, payload []byte) uint32 {
	c := New()
	_, _ = c.Write(header)
	_, _ = c.Write(zeroChecksumField[:])
	_, _ = c.Write(payload)

	return c.Sum32()
}

package section

import "github.com/arloliu/mam/format"

// Signature is the packed first word of a container.
//
// Bit layout (little-endian uint32):
//   - Bits 0-23: magic number, must be 0x4D414D ("MAM")
//   - Bits 24-27: algorithm selector (Windows COMPRESSION_FORMAT_* value)
//   - Bits 28-31: checksum flag, non-zero means a CRC-32 follows the header
type Signature uint32

// NewSignature builds a signature for the given algorithm. When withChecksum is set the
// checksum flag nibble is 0x8, matching what the Windows producer writes.
func NewSignature(alg format.Algorithm, withChecksum bool) Signature {
	sig := Signature(MagicMAM) | Signature(uint32(alg&format.AlgorithmMask)<<AlgorithmShift)
	if withChecksum {
		sig |= Signature(uint32(0x8) << ChecksumFlagShift)
	}

	return sig
}

// Magic returns the magic number from bits 0-23.
func (s Signature) Magic() uint32 {
	return uint32(s) & MagicMask
}

// IsValidMagic checks if the magic number identifies a MAM container.
func (s Signature) IsValidMagic() bool {
	return s.Magic() == MagicMAM
}

// Algorithm returns the algorithm selector from bits 24-27.
func (s Signature) Algorithm() format.Algorithm {
	return format.Algorithm((uint32(s) & AlgorithmMask) >> AlgorithmShift)
}

// ChecksumFlag returns the raw checksum flag from bits 28-31.
func (s Signature) ChecksumFlag() uint8 {
	return uint8((uint32(s) & ChecksumFlagMask) >> ChecksumFlagShift)
}

// HasChecksum reports whether a CRC-32 follows the header.
func (s Signature) HasChecksum() bool {
	return s.ChecksumFlag() != 0
}

package section

import "github.com/arloliu/mam/format"

const (
	// Signature bit masks
	MagicMask        = 0x00FFFFFF // Mask for magic number (bits 0-23)
	AlgorithmMask    = 0x0F000000 // Mask for algorithm selector (bits 24-27)
	ChecksumFlagMask = 0xF0000000 // Mask for checksum flag (bits 28-31)

	AlgorithmShift    = 24 // Bit offset of the algorithm selector
	ChecksumFlagShift = 28 // Bit offset of the checksum flag

	// MagicMAM is the expected value of the magic bits ("MAM" little-endian).
	MagicMAM = format.Magic
)

// offset and section sizes in the container
const (
	HeaderSize             = 8                         // fixed header size in bytes: signature + declared size
	ChecksumSize           = 4                         // embedded CRC-32 size in bytes
	SignatureOffset        = 0                         // byte offset of the signature word
	DecompressedSizeOffset = 4                         // byte offset of the declared decompressed size
	ChecksumOffset         = HeaderSize                // byte offset of the embedded checksum, when present
	PayloadOffsetPlain     = HeaderSize                // payload start without checksum
	PayloadOffsetChecked   = HeaderSize + ChecksumSize // payload start with checksum
)

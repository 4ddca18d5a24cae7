// Package section defines the low-level binary structures and constants of the MAM container.
//
// This package provides the fixed-layout prefix every container starts with: the packed
// signature word and the declared decompressed size. It only parses and serializes; it
// never verifies checksums or touches the compressed payload.
//
// # Container Structure
//
//	┌─────────────────────────────────────────────────────────┐
//	│ Signature (4 bytes)                                     │
//	│  - Magic "MAM", algorithm selector, checksum flag       │
//	├─────────────────────────────────────────────────────────┤
//	│ Declared decompressed size (4 bytes)                    │
//	├─────────────────────────────────────────────────────────┤
//	│ CRC-32 (4 bytes, only when the checksum flag is set)    │
//	├─────────────────────────────────────────────────────────┤
//	│ Compressed payload (variable)                           │
//	└─────────────────────────────────────────────────────────┘
//
// All multi-byte values are little-endian.
//
// # Signature Format
//
//	Bits   | Field         | Description
//	-------|---------------|-----------------------------------------------
//	0-23   | Magic         | 0x4D414D, the bytes "MAM" on disk
//	24-27  | Algorithm     | Windows COMPRESSION_FORMAT_* selector
//	28-31  | Checksum flag | Non-zero when a CRC-32 follows the header
//
// The magic is checked before any other field is interpreted. A file whose first word
// does not carry it is reported as errs.ErrNotThisFormat, never as a damaged container,
// so callers can tell foreign files (such as uncompressed prefetch files written by
// Windows 7 and 8) apart from corrupt ones.
//
// # Usage Examples
//
// Parsing a container prefix:
//
//	header, err := section.ParseHeader(data)
//	if err != nil {
//	    return err
//	}
//	payload := data[header.PayloadOffset():]
//
// Building a header:
//
//	header := section.NewHeader(format.AlgorithmXpressHuffman, true, uint32(len(plain)))
//	buf := header.Bytes()
//
// # Thread Safety
//
// All types in this package are immutable value types and are safe for concurrent use.
package section

package checksum

import (
	"fmt"

	"github.com/arloliu/mam/endian"
	"github.com/arloliu/mam/errs"
	"github.com/arloliu/mam/section"
)

// ReadEmbedded consumes the embedded checksum at the start of rest.
//
// Parameters:
//   - rest: Container bytes following the 8-byte header
//
// Returns:
//   - uint32: The embedded (expected) checksum
//   - []byte: The compressed payload after the checksum field
//   - error: ErrTruncatedHeader if fewer than 4 bytes remain
func ReadEmbedded(rest []byte) (uint32, []byte, error) {
	if len(rest) < section.ChecksumSize {
		return 0, nil, fmt.Errorf("%w: checksum field needs %d bytes, got %d",
			errs.ErrTruncatedHeader, section.ChecksumSize, len(rest))
	}

	embedded := endian.GetLittleEndianEngine().Uint32(rest)

	return embedded, rest[section.ChecksumSize:], nil
}

// Verify recomputes the checksum and compares it with the embedded value.
//
// Parameters:
//   - header: The 8 raw header bytes
//   - expected: The checksum embedded in the container
//   - payload: The compressed payload
//
// Returns:
//   - error: *errs.IntegrityError on mismatch, nil otherwise
func Verify(header []byte, expected uint32, payload []byte) error {
	computed := Compute(header, payload)
	if computed != expected {
		return &errs.IntegrityError{Expected: expected, Computed: computed}
	}

	return nil
}

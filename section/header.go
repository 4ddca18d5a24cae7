package section

import (
	"fmt"

	"github.com/arloliu/mam/endian"
	"github.com/arloliu/mam/errs"
	"github.com/arloliu/mam/format"
)

// Header represents the fixed-size header at the start of a MAM container.
//
// A Header is immutable once parsed; DecompressedSize is only an allocation hint and is
// validated against the bytes actually produced after decompression.
type Header struct {
	// Signature packs magic, algorithm selector and checksum flag.
	Signature Signature // byte offset 0-3
	// DecompressedSize is the size the producer declared for the recovered payload.
	DecompressedSize uint32 // byte offset 4-7
}

// NewHeader creates a header for a payload of the given decompressed size.
func NewHeader(alg format.Algorithm, withChecksum bool, decompressedSize uint32) Header {
	return Header{
		Signature:        NewSignature(alg, withChecksum),
		DecompressedSize: decompressedSize,
	}
}

// Parse parses the header from a byte slice.
//
// The magic number is validated before any other field is interpreted, so a foreign file
// is always reported as errs.ErrNotThisFormat rather than as a malformed container.
//
// Parameters:
//   - data: Byte slice containing header (must be exactly 8 bytes)
//
// Returns:
//   - error: ErrInvalidHeaderSize if data is not 8 bytes, ErrNotThisFormat on magic mismatch
func (h *Header) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return errs.ErrInvalidHeaderSize
	}

	engine := endian.GetLittleEndianEngine()

	sig := Signature(engine.Uint32(data[SignatureOffset:]))
	if !sig.IsValidMagic() {
		return fmt.Errorf("%w: magic 0x%06x", errs.ErrNotThisFormat, sig.Magic())
	}

	h.Signature = sig
	h.DecompressedSize = engine.Uint32(data[DecompressedSizeOffset:])

	return nil
}

// Bytes serializes the Header into a byte slice.
func (h Header) Bytes() []byte {
	engine := endian.GetLittleEndianEngine()

	b := make([]byte, 0, HeaderSize)
	b = engine.AppendUint32(b, uint32(h.Signature))
	b = engine.AppendUint32(b, h.DecompressedSize)

	return b
}

// Algorithm returns the algorithm selector.
func (h Header) Algorithm() format.Algorithm {
	return h.Signature.Algorithm()
}

// HasChecksum reports whether the container carries an embedded CRC-32.
func (h Header) HasChecksum() bool {
	return h.Signature.HasChecksum()
}

// PayloadOffset returns the byte offset where the compressed payload starts.
func (h Header) PayloadOffset() int {
	if h.HasChecksum() {
		return PayloadOffsetChecked
	}

	return PayloadOffsetPlain
}

// ParseHeader parses a Header from the start of a container.
//
// Parameters:
//   - data: Byte slice holding the container (must be at least 8 bytes)
//
// Returns:
//   - Header: Parsed header struct
//   - error: ErrTruncatedHeader if fewer than 8 bytes are available, ErrNotThisFormat on magic mismatch
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, fmt.Errorf("%w: got %d bytes, need %d", errs.ErrTruncatedHeader, len(data), HeaderSize)
	}

	h := Header{}
	if err := h.Parse(data[:HeaderSize]); err != nil {
		return Header{}, err
	}

	return h, nil
}

// IsContainer reports whether data starts with a MAM signature.
func IsContainer(data []byte) bool {
	if len(data) < HeaderSize {
		return false
	}

	sig := Signature(endian.GetLittleEndianEngine().Uint32(data[SignatureOffset:]))

	return sig.IsValidMagic()
}

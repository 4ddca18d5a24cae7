// Package errs defines the error values returned while decoding MAM containers.
//
// Terminal conditions are exposed both as sentinel errors (for errors.Is) and, where
// the failure carries diagnostic data, as typed errors (for errors.As):
//
//	result, err := decoder.Decode(data)
//	var integrity *errs.IntegrityError
//	switch {
//	case errors.Is(err, errs.ErrNotThisFormat):
//	    // not a MAM container, batch callers may skip it
//	case errors.As(err, &integrity):
//	    fmt.Printf("crc %08x != %08x\n", integrity.Computed, integrity.Expected)
//	}
package errs

import (
	"errors"
	"fmt"

	"github.com/arloliu/mam/format"
)

var (
	// ErrTruncatedHeader is returned when fewer bytes than the fixed container prefix are available.
	ErrTruncatedHeader = errors.New("truncated container header")
	// ErrInvalidHeaderSize is returned by Header.Parse when the slice is not exactly one header long.
	ErrInvalidHeaderSize = errors.New("invalid header size")
	// ErrNotThisFormat is returned when the signature magic is not "MAM".
	ErrNotThisFormat = errors.New("not a MAM container")
	// ErrIntegrityMismatch is returned when the embedded CRC-32 does not match the computed one.
	ErrIntegrityMismatch = errors.New("container checksum mismatch")
	// ErrUnsupportedAlgorithm is returned for selectors outside the supported set or unavailable at runtime.
	ErrUnsupportedAlgorithm = errors.New("unsupported compression algorithm")
	// ErrDecompressionFailed is returned when the decompression service reports a failure status.
	ErrDecompressionFailed = errors.New("decompression failed")
	// ErrSizeMismatch marks the soft warning raised when the produced size differs from the declared size.
	ErrSizeMismatch = errors.New("decompressed size differs from declared size")
	// ErrPlatformUnavailable is returned when a platform-bound decompression service is requested on an
	// operating system that does not provide it.
	ErrPlatformUnavailable = errors.New("platform decompression service unavailable")
	// ErrOutputCollision is returned by the batch writer when two inputs would be written to the same file.
	ErrOutputCollision = errors.New("output name already used by another input")
	// ErrContainerTooLarge is returned by the encoder when the plaintext does not fit the 32-bit size field.
	ErrContainerTooLarge = errors.New("plaintext exceeds container size limit")
)

// IntegrityError reports a checksum mismatch. Expected is the value embedded in the
// container, Computed is the value recomputed over header, zeroed checksum field and payload.
type IntegrityError struct {
	Expected uint32
	Computed uint32
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("%s: expected %08x, computed %08x", ErrIntegrityMismatch, e.Expected, e.Computed)
}

func (e *IntegrityError) Is(target error) bool {
	return target == ErrIntegrityMismatch
}

// UnsupportedAlgorithmError reports a selector that cannot be decoded. Err is set when the
// selector is known but the decompression service could not provide it.
type UnsupportedAlgorithmError struct {
	Selector format.Algorithm
	Err      error
}

func (e *UnsupportedAlgorithmError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s (selector %d): %v", ErrUnsupportedAlgorithm, e.Selector, uint8(e.Selector), e.Err)
	}

	return fmt.Sprintf("%s: selector %d", ErrUnsupportedAlgorithm, uint8(e.Selector))
}

func (e *UnsupportedAlgorithmError) Is(target error) bool {
	return target == ErrUnsupportedAlgorithm
}

func (e *UnsupportedAlgorithmError) Unwrap() error {
	return e.Err
}

// DecompressionError carries the status code reported by the decompression service.
type DecompressionError struct {
	Algorithm format.Algorithm
	Status    uint32
	Err       error
}

func (e *DecompressionError) Error() string {
	return fmt.Sprintf("%s (%s): status 0x%08x", ErrDecompressionFailed, e.Algorithm, e.Status)
}

func (e *DecompressionError) Is(target error) bool {
	return target == ErrDecompressionFailed
}

func (e *DecompressionError) Unwrap() error {
	return e.Err
}

// SizeMismatch is a soft warning: the payload decoded successfully but produced a
// different number of bytes than the header declared.
type SizeMismatch struct {
	Declared uint32
	Actual   uint32
}

func (w SizeMismatch) Error() string {
	return fmt.Sprintf("%s: declared %d, produced %d", ErrSizeMismatch, w.Declared, w.Actual)
}

func (w SizeMismatch) Is(target error) bool {
	return target == ErrSizeMismatch
}

package compress

import (
	"bytes"

	"github.com/arloliu/mam/format"
)

// Stored is the variant for selector 0: the payload is the plaintext.
type Stored struct{}

var _ Variant = (*Stored)(nil)

// NewStored creates the stored (uncompressed) variant.
func NewStored() Stored {
	return Stored{}
}

// Algorithm returns format.AlgorithmNone.
func (Stored) Algorithm() format.Algorithm {
	return format.AlgorithmNone
}

// WorkspaceSize returns 0; copying needs no scratch space.
func (Stored) WorkspaceSize() int {
	return 0
}

// Compress returns a copy of data.
func (Stored) Compress(data []byte) ([]byte, error) {
	return bytes.Clone(data), nil
}

// DecompressTo copies as much of src as fits into dst.
func (Stored) DecompressTo(dst, src, _ []byte) (int, error) {
	return copy(dst, src), nil
}

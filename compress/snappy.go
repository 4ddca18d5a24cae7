package compress

import (
	"bytes"
	"fmt"
	"io"

	"github.com/golang/snappy"
)

// SnappyCompressor writes recovered files in the Snappy framing format (.sz).
type SnappyCompressor struct{}

var _ Codec = (*SnappyCompressor)(nil)

// NewSnappyCompressor creates a new Snappy compressor.
func NewSnappyCompressor() SnappyCompressor {
	return SnappyCompressor{}
}

// Compress compresses data as a framed Snappy stream.
func (c SnappyCompressor) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := snappy.NewBufferedWriter(&buf)

	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("snappy compression failed: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("snappy compression failed: %w", err)
	}

	return buf.Bytes(), nil
}

// Decompress decodes a framed Snappy stream.
func (c SnappyCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	out, err := io.ReadAll(snappy.NewReader(bytes.NewReader(data)))
	if err != nil {
		return nil, fmt.Errorf("snappy decompression failed: %w", err)
	}

	return out, nil
}

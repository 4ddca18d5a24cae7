package batch

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/arloliu/mam/compress"
	"github.com/arloliu/mam/format"
	"github.com/arloliu/mam/internal/collision"
)

// Writer places recovered files in an output directory, optionally compressed.
//
// Each file keeps the base name of its input, plus the codec extension when output
// compression is enabled. The first input to produce a name keeps it; later inputs
// with the same base name fail with errs.ErrOutputCollision.
type Writer struct {
	dir         string
	compression format.CompressionType
	codec       compress.Codec
	claims      *collision.Tracker
}

// NewWriter creates dir if needed and returns a Writer into it.
func NewWriter(dir string, compression format.CompressionType) (*Writer, error) {
	codec, err := compress.CreateCodec(compression, "output")
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	return &Writer{
		dir:         dir,
		compression: compression,
		codec:       codec,
		claims:      collision.NewTracker(),
	}, nil
}

// Dir returns the output directory.
func (w *Writer) Dir() string {
	return w.dir
}

// Target returns the output path for input.
func (w *Writer) Target(input string) string {
	return filepath.Join(w.dir, filepath.Base(input)+w.compression.Extension())
}

// Write encodes data with the output codec and stores it under the name derived from
// input. The file appears under its final name only once fully written.
func (w *Writer) Write(input string, data []byte) (string, int, error) {
	target := w.Target(input)
	if err := w.claims.Claim(target, input); err != nil {
		return "", 0, err
	}

	encoded, err := w.codec.Compress(data)
	if err != nil {
		return "", 0, fmt.Errorf("compress output: %w", err)
	}

	tmp, err := os.CreateTemp(w.dir, ".mam-*")
	if err != nil {
		return "", 0, err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(encoded); err != nil {
		tmp.Close()
		return "", 0, err
	}
	if err := tmp.Close(); err != nil {
		return "", 0, err
	}

	if err := os.Rename(tmp.Name(), target); err != nil {
		return "", 0, err
	}

	return target, len(encoded), nil
}

// Collisions returns the number of inputs refused because their output name was taken.
func (w *Writer) Collisions() int {
	return w.claims.Collisions()
}

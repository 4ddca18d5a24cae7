package format

import (
	"fmt"
	"strings"
)

type (
	Algorithm       uint8
	CompressionType uint8
)

// Magic is the 24-bit family identifier stored in the low bits of every container signature ("MAM").
const Magic uint32 = 0x004D414D

// Algorithm selectors follow the Windows COMPRESSION_FORMAT_* numbering used by the producer.
const (
	AlgorithmNone          Algorithm = 0x0 // AlgorithmNone represents a stored (uncompressed) payload.
	AlgorithmDefault       Algorithm = 0x1 // AlgorithmDefault is reserved by the platform and never decodable.
	AlgorithmLZNT1         Algorithm = 0x2 // AlgorithmLZNT1 represents LZNT1 compression.
	AlgorithmXpress        Algorithm = 0x3 // AlgorithmXpress represents plain LZ77 Xpress compression.
	AlgorithmXpressHuffman Algorithm = 0x4 // AlgorithmXpressHuffman represents LZ77+Huffman Xpress compression.

	// AlgorithmMask masks the 4-bit selector field.
	AlgorithmMask Algorithm = 0x0F
)

const (
	CompressionNone   CompressionType = 0x1 // CompressionNone writes recovered files as-is.
	CompressionZstd   CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2     CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4    CompressionType = 0x4 // CompressionLZ4 represents LZ4 frame compression.
	CompressionSnappy CompressionType = 0x5 // CompressionSnappy represents framed Snappy compression.
)

var supportedAlgorithms = map[Algorithm]struct{}{
	AlgorithmNone:          {},
	AlgorithmLZNT1:         {},
	AlgorithmXpress:        {},
	AlgorithmXpressHuffman: {},
}

// SupportedAlgorithms returns the closed set of selectors this module can decode, in ascending order.
func SupportedAlgorithms() []Algorithm {
	return []Algorithm{AlgorithmNone, AlgorithmLZNT1, AlgorithmXpress, AlgorithmXpressHuffman}
}

// IsSupported reports whether the selector names a decodable variant.
func (a Algorithm) IsSupported() bool {
	_, ok := supportedAlgorithms[a]
	return ok
}

func (a Algorithm) String() string {
	switch a {
	case AlgorithmNone:
		return "None"
	case AlgorithmDefault:
		return "Default"
	case AlgorithmLZNT1:
		return "LZNT1"
	case AlgorithmXpress:
		return "Xpress"
	case AlgorithmXpressHuffman:
		return "XpressHuffman"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(a))
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	case CompressionSnappy:
		return "Snappy"
	default:
		return "Unknown"
	}
}

// Extension returns the file name suffix used for files written with this codec.
func (c CompressionType) Extension() string {
	switch c {
	case CompressionZstd:
		return ".zst"
	case CompressionS2:
		return ".s2"
	case CompressionLZ4:
		return ".lz4"
	case CompressionSnappy:
		return ".sz"
	default:
		return ""
	}
}

// ParseCompressionType maps a case-insensitive codec name to its CompressionType.
// An empty name selects CompressionNone.
func ParseCompressionType(name string) (CompressionType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return CompressionNone, nil
	case "zstd":
		return CompressionZstd, nil
	case "s2":
		return CompressionS2, nil
	case "lz4":
		return CompressionLZ4, nil
	case "snappy":
		return CompressionSnappy, nil
	default:
		return 0, fmt.Errorf("unknown output compression %q", name)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (c CompressionType) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(c.String())), nil
}

// UnmarshalText implements encoding.TextUnmarshaler so codec names can appear in config files.
func (c *CompressionType) UnmarshalText(text []byte) error {
	ct, err := ParseCompressionType(string(text))
	if err != nil {
		return err
	}
	*c = ct

	return nil
}

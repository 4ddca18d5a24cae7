package compress

import (
	"fmt"

	"github.com/arloliu/mam/format"
)

// Compressor compresses a complete buffer and returns a newly allocated result.
//
// Memory management:
//   - Returned slice is owned by the caller
//   - Input slice is not modified
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor reverses a Compressor for self-describing formats whose output size is
// recorded in the compressed stream itself.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
//
// Codecs keyed by format.CompressionType are used when writing recovered files; they are
// never involved in decoding a container.
type Codec interface {
	Compressor
	Decompressor
}

// Variant is one of the container's algorithm variants.
//
// Unlike Codec, a variant decompresses into a caller-provided buffer whose size is known
// up front (the container header declares it), using caller-provided scratch space.
//
// Thread Safety: Variant implementations hold no state and are safe for concurrent use as
// long as each call receives its own dst and workspace.
type Variant interface {
	Compressor

	// Algorithm returns the selector this variant decodes.
	Algorithm() format.Algorithm

	// WorkspaceSize returns the scratch space DecompressTo needs, in bytes.
	WorkspaceSize() int

	// DecompressTo decodes src into dst and returns the number of bytes produced.
	//
	// Decoding stops once dst is full. A malformed stream returns StatusBadCompressionBuffer
	// together with the number of bytes produced so far.
	DecompressTo(dst, src, workspace []byte) (int, error)
}

var builtinVariants = map[format.Algorithm]Variant{
	format.AlgorithmNone:          NewStored(),
	format.AlgorithmLZNT1:         NewLZNT1(),
	format.AlgorithmXpress:        NewXpress(),
	format.AlgorithmXpressHuffman: NewXpressHuffman(),
}

// GetVariant retrieves the built-in Variant for the specified algorithm selector.
func GetVariant(alg format.Algorithm) (Variant, error) {
	if v, ok := builtinVariants[alg]; ok {
		return v, nil
	}

	return nil, fmt.Errorf("unsupported algorithm: %s", alg)
}

// CreateCodec is a factory function that creates an output Codec for the specified compression type.
//
// Parameters:
//   - compressionType: Type of compression (None, Zstd, S2, LZ4 or Snappy)
//   - target: Description of target usage (for error messages)
//
// Returns:
//   - Codec: Codec instance for the specified type
//   - error: Invalid compression type error
func CreateCodec(compressionType format.CompressionType, target string) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	case format.CompressionSnappy:
		return NewSnappyCompressor(), nil
	default:
		return nil, fmt.Errorf("invalid %s compression: %s", target, compressionType)
	}
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone:   NewNoOpCompressor(),
	format.CompressionZstd:   NewZstdCompressor(),
	format.CompressionS2:     NewS2Compressor(),
	format.CompressionLZ4:    NewLZ4Compressor(),
	format.CompressionSnappy: NewSnappyCompressor(),
}

// GetCodec retrieves a built-in output Codec for the specified compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
}

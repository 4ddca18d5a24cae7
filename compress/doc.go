// Package compress implements the compression variants a MAM container can carry and
// the Service the container decoder calls through to decode them.
//
// # Variants
//
// Each supported selector has a pure-Go Variant:
//
//   - Stored (selector 0): the payload is the plaintext
//   - LZNT1 (selector 2): 4 KiB chunks of flag-byte led LZ77 tokens
//   - Xpress (selector 3): LZ77 tokens under 32-bit flag words
//   - XpressHuffman (selector 4): 64 KiB blocks of canonical Huffman coded LZ77 symbols
//
// Every variant also compresses, so that conforming containers can be produced for
// tests and tooling. Compressed output is valid but not byte-identical to what Windows
// produces for the same input.
//
// # Service
//
// The container decoder never calls a variant directly. It goes through a Service,
// which mirrors the platform primitive pair of a workspace size query followed by a
// decompress call into a buffer of known size:
//
//	svc := compress.NewService()
//	size, err := svc.WorkspaceSize(format.AlgorithmXpressHuffman)
//	if err != nil {
//	    return err // capability unavailable
//	}
//	n, err := svc.Decompress(format.AlgorithmXpressHuffman, dst, payload, make([]byte, size))
//
// NewService is available everywhere. On Windows, NewNtdllService binds the same
// operations to RtlGetCompressionWorkSpaceSize and RtlDecompressBufferEx. Failures are
// reported as a Status, the NTSTATUS value the platform would have returned.
//
// # Output Codecs
//
// Codec implementations recompress recovered files on their way to disk:
//
//   - None: files are written unchanged
//   - Zstd: standard .zst frames (klauspost/compress/zstd)
//   - S2: S2 streams (klauspost/compress/s2)
//   - LZ4: LZ4 frames (pierrec/lz4)
//   - Snappy: Snappy framed streams (golang/snappy)
//
// All of them produce self-describing output that the usual command-line tools can open.
//
// # Thread Safety
//
// Variants, services and codecs are stateless and safe for concurrent use. A workspace
// must not be shared between concurrent Decompress calls.
package compress

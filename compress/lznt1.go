package compress

import (
	"math/bits"

	"github.com/arloliu/mam/endian"
	"github.com/arloliu/mam/format"
)

// LZNT1 chunk header layout (little-endian uint16):
//   - Bits 0-11: chunk data size minus one
//   - Bits 12-14: signature, always 0b011
//   - Bit 15: set when the chunk data is compressed
const (
	lznt1ChunkSize      = 4096
	lznt1SizeMask       = 0x0FFF
	lznt1Signature      = 0x3000
	lznt1CompressedFlag = 0x8000
	lznt1MinOffsetBits  = 4
)

// LZNT1 is the variant for selector 2.
//
// The stream is a sequence of chunks, each expanding to at most 4 KiB. Compressed chunks
// hold groups of eight tokens led by a flag byte; a set flag bit marks a 16-bit back
// reference whose split between offset and length bits depends on how far into the
// chunk the decoder is. A zero chunk header ends the stream.
type LZNT1 struct{}

var _ Variant = (*LZNT1)(nil)

// NewLZNT1 creates the LZNT1 variant.
func NewLZNT1() LZNT1 {
	return LZNT1{}
}

// Algorithm returns format.AlgorithmLZNT1.
func (LZNT1) Algorithm() format.Algorithm {
	return format.AlgorithmLZNT1
}

// WorkspaceSize returns 0; chunks are decoded in place in dst.
func (LZNT1) WorkspaceSize() int {
	return 0
}

// lznt1OffsetBits returns how many of a token's 16 bits encode the offset when the
// decoder has already produced pos bytes of the current chunk.
func lznt1OffsetBits(pos int) int {
	if pos <= 1<<lznt1MinOffsetBits {
		return lznt1MinOffsetBits
	}

	return bits.Len(uint(pos - 1))
}

// DecompressTo decodes an LZNT1 stream into dst.
func (LZNT1) DecompressTo(dst, src, _ []byte) (int, error) {
	engine := endian.GetLittleEndianEngine()

	in, out := 0, 0
	for out < len(dst) && in+2 <= len(src) {
		header := engine.Uint16(src[in:])
		if header == 0 {
			break
		}
		in += 2

		size := int(header&lznt1SizeMask) + 1
		if in+size > len(src) {
			return out, StatusBadCompressionBuffer
		}
		data := src[in : in+size]
		in += size

		chunkStart := out
		chunkEnd := min(chunkStart+lznt1ChunkSize, len(dst))

		if header&lznt1CompressedFlag == 0 {
			out += copy(dst[out:chunkEnd], data)
		} else {
			n, err := lznt1DecodeChunk(dst[chunkStart:chunkEnd], data, chunkEnd == len(dst))
			out += n
			if err != nil {
				return out, err
			}
		}

		// A short chunk followed by another one leaves a zero-filled hole up to the
		// next chunk boundary.
		if out < chunkEnd && in+2 <= len(src) && engine.Uint16(src[in:]) != 0 {
			clear(dst[out:chunkEnd])
			out = chunkEnd
		}
	}

	return out, nil
}

// lznt1DecodeChunk decodes one compressed chunk into window. When window is the tail of
// the caller's buffer (atCapacity), running out of room ends decoding quietly; otherwise a
// chunk that expands beyond 4 KiB is malformed.
func lznt1DecodeChunk(window, data []byte, atCapacity bool) (int, error) {
	engine := endian.GetLittleEndianEngine()

	full := func(o int) (int, error) {
		if atCapacity {
			return o, nil
		}

		return o, StatusBadCompressionBuffer
	}

	o, i := 0, 0
	for i < len(data) {
		flags := data[i]
		i++

		for bit := 0; bit < 8 && i < len(data); bit++ {
			if o >= len(window) {
				return full(o)
			}

			if flags&(1<<bit) == 0 {
				window[o] = data[i]
				o++
				i++

				continue
			}

			if i+2 > len(data) {
				return o, StatusBadCompressionBuffer
			}
			token := engine.Uint16(data[i:])
			i += 2

			offsetBits := lznt1OffsetBits(o)
			offset := int(token>>(16-offsetBits)) + 1
			length := int(token&(0xFFFF>>offsetBits)) + minMatch
			if offset > o {
				return o, StatusBadCompressionBuffer
			}

			for k := 0; k < length; k++ {
				if o >= len(window) {
					return full(o)
				}
				window[o] = window[o-offset]
				o++
			}
		}
	}

	return o, nil
}

// Compress encodes data as an LZNT1 stream terminated by a zero chunk header.
func (LZNT1) Compress(data []byte) ([]byte, error) {
	engine := endian.GetLittleEndianEngine()

	out := make([]byte, 0, len(data)+len(data)/8+16)
	body := make([]byte, 0, lznt1ChunkSize+lznt1ChunkSize/8+2)
	mf := newMatchFinder(nil)

	for start := 0; start < len(data); start += lznt1ChunkSize {
		chunk := data[start:min(start+lznt1ChunkSize, len(data))]
		mf.reset(chunk)
		body = lznt1CompressChunk(body[:0], chunk, mf)

		if len(body) < len(chunk) && len(body) <= lznt1ChunkSize {
			out = engine.AppendUint16(out, uint16(lznt1CompressedFlag|lznt1Signature|(len(body)-1)))
			out = append(out, body...)

			continue
		}

		out = engine.AppendUint16(out, uint16(lznt1Signature|(len(chunk)-1)))
		out = append(out, chunk...)
	}

	return engine.AppendUint16(out, 0), nil
}

func lznt1CompressChunk(body, chunk []byte, mf *matchFinder) []byte {
	engine := endian.GetLittleEndianEngine()

	p := 0
	for p < len(chunk) {
		flagPos := len(body)
		body = append(body, 0)

		var flags byte
		for bit := 0; bit < 8 && p < len(chunk); bit++ {
			length, offset := 0, 0
			if p > 0 {
				offsetBits := lznt1OffsetBits(p)
				maxLen := min(int(0xFFFF)>>offsetBits+minMatch, len(chunk)-p)
				length, offset = mf.find(p, 0, p, maxLen)
			}

			if length == 0 {
				body = append(body, chunk[p])
				mf.insert(p)
				p++

				continue
			}

			offsetBits := lznt1OffsetBits(p)
			token := uint16(offset-1)<<(16-offsetBits) | uint16(length-minMatch)
			body = engine.AppendUint16(body, token)
			flags |= 1 << bit

			mf.insertRange(p, p+length)
			p += length
		}

		body[flagPos] = flags
	}

	return body
}

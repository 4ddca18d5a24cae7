package compress

import (
	"math/bits"

	"github.com/arloliu/mam/endian"
	"github.com/arloliu/mam/format"
)

const (
	xhBlockSize     = 64 * 1024
	xhSymbols       = 512
	xhTableBytes    = xhSymbols / 2
	xhEndOfStream   = 256
	xhLengthNibble  = 15
	xhLengthByte    = 255
	xhMaxOffset     = 1<<16 - 1
	xhMaxMatchExtra = 1<<16 - 1
	xhWorkspaceSize = xhSymbols + 2*huffTableSize
)

// XpressHuffman is the variant for selector 4, the format prefetch files use in
// practice.
//
// Output is produced in 64 KiB blocks. Each block starts with 256 bytes packing the
// 4-bit code lengths of 512 symbols: 256 literals and 256 match symbols that combine
// a length nibble with the bit width of the offset. The code bits that follow are
// read as 16-bit little-endian words, with extended lengths stored as raw bytes
// between them.
type XpressHuffman struct{}

var _ Variant = (*XpressHuffman)(nil)

// NewXpressHuffman creates the Xpress Huffman variant.
func NewXpressHuffman() XpressHuffman {
	return XpressHuffman{}
}

// Algorithm returns format.AlgorithmXpressHuffman.
func (XpressHuffman) Algorithm() format.Algorithm {
	return format.AlgorithmXpressHuffman
}

// WorkspaceSize returns the scratch needed for one block's code lengths and its
// 15-bit decode table.
func (XpressHuffman) WorkspaceSize() int {
	return xhWorkspaceSize
}

// DecompressTo decodes an Xpress Huffman stream into dst. workspace must hold at
// least WorkspaceSize bytes.
func (XpressHuffman) DecompressTo(dst, src, workspace []byte) (int, error) {
	if len(workspace) < xhWorkspaceSize {
		return 0, StatusBufferTooSmall
	}

	engine := endian.GetLittleEndianEngine()
	lengths := workspace[:xhSymbols]
	table := workspace[xhSymbols:xhWorkspaceSize]

	var r bitReader
	in, out := 0, 0
	for out < len(dst) && in < len(src) {
		if in+xhTableBytes+4 > len(src) {
			return out, StatusBadCompressionBuffer
		}

		for i, b := range src[in : in+xhTableBytes] {
			lengths[2*i] = b & 0x0F
			lengths[2*i+1] = b >> 4
		}
		if err := buildDecodeTable(table, lengths); err != nil {
			return out, err
		}

		r.reset(src, in+xhTableBytes)
		blockEnd := min(out+xhBlockSize, len(dst))

		for out < blockEnd {
			sym := int(engine.Uint16(table[2*r.peek15():]))
			if sym == huffInvalidSymbol {
				return out, StatusBadCompressionBuffer
			}
			r.consume(int(lengths[sym]))

			if sym < xhEndOfStream {
				dst[out] = byte(sym)
				out++

				continue
			}

			if sym == xhEndOfStream && r.pos >= len(src) {
				return out, nil
			}

			sym -= xhEndOfStream
			length := sym & 0x0F
			offsetBits := sym >> 4

			if length == xhLengthNibble {
				if r.pos >= len(src) {
					return out, StatusBadCompressionBuffer
				}
				length = int(src[r.pos])
				r.pos++

				if length == xhLengthByte {
					if r.pos+2 > len(src) {
						return out, StatusBadCompressionBuffer
					}
					length = int(engine.Uint16(src[r.pos:]))
					r.pos += 2

					if length < xhLengthNibble {
						return out, StatusBadCompressionBuffer
					}
					length -= xhLengthNibble
				}
				length += xhLengthNibble
			}
			length += minMatch

			offset := 1<<offsetBits | int(r.readBits(offsetBits))
			if offset > out {
				return out, StatusBadCompressionBuffer
			}

			end := min(out+length, len(dst))
			for ; out < end; out++ {
				dst[out] = dst[out-offset]
			}
		}

		in = r.pos
	}

	return out, nil
}

// Compress encodes data as an Xpress Huffman stream. The end-of-stream symbol goes
// in the block that ends short of 64 KiB, which is an extra empty block when the
// input length is a multiple of the block size.
func (XpressHuffman) Compress(data []byte) ([]byte, error) {
	out := make([]byte, 0, len(data)+len(data)/8+xhTableBytes+16)
	mf := newMatchFinder(data)

	var (
		tokens  []lzToken
		freq    [xhSymbols]uint32
		lengths [xhSymbols]byte
		codes   [xhSymbols]uint16
		w       bitWriter
	)

	for start := 0; start <= len(data); start += xhBlockSize {
		end := min(start+xhBlockSize, len(data))
		last := start+xhBlockSize > len(data)

		tokens = xhTokenize(tokens[:0], mf, data, start, end)

		clear(freq[:])
		freq[xhEndOfStream]++
		for _, t := range tokens {
			freq[t.symbol()]++
		}

		buildCodeLengths(freq[:], huffMaxCodeLength, lengths[:])
		canonicalCodes(lengths[:], codes[:])

		for i := 0; i < xhTableBytes; i++ {
			out = append(out, lengths[2*i]|lengths[2*i+1]<<4)
		}

		w.reset(out)
		for _, t := range tokens {
			sym := t.symbol()
			w.writeBits(uint32(codes[sym]), int(lengths[sym]))
			if t.length == 0 {
				continue
			}

			extra := int(t.length) - minMatch
			if extra >= xhLengthNibble {
				if rest := extra - xhLengthNibble; rest < xhLengthByte {
					w.writeByte(byte(rest))
				} else {
					w.writeByte(xhLengthByte)
					w.writeUint16(uint16(extra))
				}
			}

			offsetBits := bits.Len32(uint32(t.offset)) - 1
			w.writeBits(uint32(t.offset)&(1<<offsetBits-1), offsetBits)
		}

		if last {
			w.writeBits(uint32(codes[xhEndOfStream]), int(lengths[xhEndOfStream]))
		}
		out = w.flush()
	}

	return out, nil
}

// lzToken is a literal when length is zero, otherwise a back reference.
type lzToken struct {
	length int32
	offset int32
	lit    byte
}

func (t lzToken) symbol() int {
	if t.length == 0 {
		return int(t.lit)
	}

	extra := min(int(t.length)-minMatch, xhLengthNibble)
	offsetBits := bits.Len32(uint32(t.offset)) - 1

	return xhEndOfStream + offsetBits<<4 + extra
}

// xhTokenize parses data[start:end] into tokens. Matches may reach back into earlier
// blocks but never run past end.
func xhTokenize(tokens []lzToken, mf *matchFinder, data []byte, start, end int) []lzToken {
	p := start
	for p < end {
		length, offset := mf.find(p, 0, xhMaxOffset, min(end-p, xhMaxMatchExtra+minMatch))

		// Symbol 256 doubles as the end-of-stream marker, so the one match that would
		// encode to it is emitted as a literal instead.
		if length == minMatch && offset == 1 {
			length = 0
		}

		if length == 0 {
			tokens = append(tokens, lzToken{lit: data[p]})
			mf.insert(p)
			p++

			continue
		}

		tokens = append(tokens, lzToken{length: int32(length), offset: int32(offset)})
		mf.insertRange(p, p+length)
		p += length
	}

	return tokens
}

package compress

import (
	"math"

	"github.com/arloliu/mam/endian"
	"github.com/arloliu/mam/format"
)

const (
	xpressMaxOffset   = 1 << 13
	xpressFlagBits    = 32
	xpressNibbleLimit = 15
	xpressByteLimit   = 255
	xpressShortLength = 7
)

// Xpress is the variant for selector 3 (plain LZ77 Xpress).
//
// Tokens are governed by 32-bit flag words read most significant bit first. A clear bit
// is a literal byte, a set bit a 16-bit match token holding a 13-bit offset and a 3-bit
// length. Longer lengths continue in a half-byte shared between two matches, then a
// byte, then a 16-bit and finally a 32-bit field.
type Xpress struct{}

var _ Variant = (*Xpress)(nil)

// NewXpress creates the plain Xpress variant.
func NewXpress() Xpress {
	return Xpress{}
}

// Algorithm returns format.AlgorithmXpress.
func (Xpress) Algorithm() format.Algorithm {
	return format.AlgorithmXpress
}

// WorkspaceSize returns 0; Xpress decodes without tables.
func (Xpress) WorkspaceSize() int {
	return 0
}

// DecompressTo decodes a plain Xpress stream into dst.
func (Xpress) DecompressTo(dst, src, _ []byte) (int, error) {
	engine := endian.GetLittleEndianEngine()

	var flags uint32
	flagCount := 0
	halfByte := -1

	in, out := 0, 0
	for out < len(dst) {
		if flagCount == 0 {
			if in+4 > len(src) {
				break
			}
			flags = engine.Uint32(src[in:])
			in += 4
			flagCount = xpressFlagBits
		}
		flagCount--

		if flags&(1<<flagCount) == 0 {
			if in >= len(src) {
				break
			}
			dst[out] = src[in]
			out++
			in++

			continue
		}

		// A match flag with no input left is the end-of-stream marker.
		if in == len(src) {
			break
		}
		if in+2 > len(src) {
			return out, StatusBadCompressionBuffer
		}
		token := engine.Uint16(src[in:])
		in += 2

		offset := int(token>>3) + 1
		length := int(token & 7)

		if length == xpressShortLength {
			if halfByte < 0 {
				if in >= len(src) {
					return out, StatusBadCompressionBuffer
				}
				length = int(src[in] & 0x0F)
				halfByte = in
				in++
			} else {
				length = int(src[halfByte] >> 4)
				halfByte = -1
			}

			if length == xpressNibbleLimit {
				if in >= len(src) {
					return out, StatusBadCompressionBuffer
				}
				length = int(src[in])
				in++

				if length == xpressByteLimit {
					if in+2 > len(src) {
						return out, StatusBadCompressionBuffer
					}
					length = int(engine.Uint16(src[in:]))
					in += 2

					if length == 0 {
						if in+4 > len(src) {
							return out, StatusBadCompressionBuffer
						}
						length = int(engine.Uint32(src[in:]))
						in += 4
					}

					if length < xpressNibbleLimit+xpressShortLength {
						return out, StatusBadCompressionBuffer
					}
					length -= xpressNibbleLimit + xpressShortLength
				}
				length += xpressNibbleLimit
			}
			length += xpressShortLength
		}
		length += minMatch

		if offset > out {
			return out, StatusBadCompressionBuffer
		}

		end := min(out+length, len(dst))
		for ; out < end; out++ {
			dst[out] = dst[out-offset]
		}
	}

	return out, nil
}

// xpressWriter appends literals and matches under 32-bit flag words.
type xpressWriter struct {
	out      []byte
	flags    uint32
	count    int
	flagPos  int
	halfByte int
}

func newXpressWriter(capacity int) *xpressWriter {
	w := &xpressWriter{out: make([]byte, 4, capacity), halfByte: -1}

	return w
}

func (w *xpressWriter) flag(bit uint32) {
	w.flags = w.flags<<1 | bit
	w.count++

	if w.count == xpressFlagBits {
		endian.GetLittleEndianEngine().PutUint32(w.out[w.flagPos:], w.flags)
		w.flagPos = len(w.out)
		w.out = append(w.out, 0, 0, 0, 0)
		w.flags, w.count = 0, 0
	}
}

func (w *xpressWriter) literal(b byte) {
	w.out = append(w.out, b)
	w.flag(0)
}

func (w *xpressWriter) match(length, offset int) {
	engine := endian.GetLittleEndianEngine()

	l := length - minMatch
	token := uint16(offset-1) << 3

	if l < xpressShortLength {
		w.out = engine.AppendUint16(w.out, token|uint16(l))
		w.flag(1)

		return
	}

	w.out = engine.AppendUint16(w.out, token|xpressShortLength)

	l -= xpressShortLength
	nibble := byte(min(l, xpressNibbleLimit))
	if w.halfByte < 0 {
		w.halfByte = len(w.out)
		w.out = append(w.out, nibble)
	} else {
		w.out[w.halfByte] |= nibble << 4
		w.halfByte = -1
	}

	if l >= xpressNibbleLimit {
		l -= xpressNibbleLimit
		if l < xpressByteLimit {
			w.out = append(w.out, byte(l))
		} else {
			w.out = append(w.out, xpressByteLimit)
			total := length - minMatch
			if total <= math.MaxUint16 {
				w.out = engine.AppendUint16(w.out, uint16(total))
			} else {
				w.out = engine.AppendUint16(w.out, 0)
				w.out = engine.AppendUint32(w.out, uint32(total))
			}
		}
	}

	w.flag(1)
}

// finish sets every unused flag bit, which the decoder reads as the end marker.
func (w *xpressWriter) finish() []byte {
	remaining := xpressFlagBits - w.count
	flags := uint32(uint64(w.flags)<<remaining | (uint64(1)<<remaining - 1))
	endian.GetLittleEndianEngine().PutUint32(w.out[w.flagPos:], flags)

	return w.out
}

// Compress encodes data as a plain Xpress stream.
func (Xpress) Compress(data []byte) ([]byte, error) {
	w := newXpressWriter(len(data) + len(data)/8 + 8)
	mf := newMatchFinder(data)

	p := 0
	for p < len(data) {
		length, offset := mf.find(p, 0, xpressMaxOffset, len(data)-p)
		if length == 0 {
			w.literal(data[p])
			mf.insert(p)
			p++

			continue
		}

		w.match(length, offset)
		mf.insertRange(p, p+length)
		p += length
	}

	return w.finish(), nil
}

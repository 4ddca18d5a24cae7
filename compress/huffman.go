package compress

import (
	"cmp"
	"slices"

	"github.com/arloliu/mam/endian"
)

const (
	huffMaxCodeLength = 15
	huffTableBits     = 15
	huffTableSize     = 1 << huffTableBits
	huffInvalidSymbol = 0xFFFF
)

// buildDecodeTable fills table, a huffTableSize entry array of little-endian uint16
// symbols, from canonical code lengths. Entries no code reaches are marked invalid.
func buildDecodeTable(table []byte, lengths []byte) error {
	engine := endian.GetLittleEndianEngine()

	pos := 0
	for l := 1; l <= huffMaxCodeLength; l++ {
		span := 1 << (huffTableBits - l)
		for sym, symLen := range lengths {
			if int(symLen) != l {
				continue
			}
			if pos+span > huffTableSize {
				return StatusBadCompressionBuffer
			}

			for end := pos + span; pos < end; pos++ {
				engine.PutUint16(table[2*pos:], uint16(sym))
			}
		}
	}

	for ; pos < huffTableSize; pos++ {
		engine.PutUint16(table[2*pos:], huffInvalidSymbol)
	}

	return nil
}

// buildCodeLengths computes Huffman code lengths no longer than maxBits for freq. Symbols
// with zero frequency get length 0; a lone symbol gets length 1.
func buildCodeLengths(freq []uint32, maxBits int, lengths []byte) {
	f := slices.Clone(freq)
	for !tryCodeLengths(f, maxBits, lengths) {
		// Flatten the distribution until the tree fits. All ones always fits.
		for i := range f {
			if f[i] > 0 {
				f[i] = f[i]>>1 | 1
			}
		}
	}
}

func tryCodeLengths(freq []uint32, maxBits int, lengths []byte) bool {
	clear(lengths)

	syms := make([]int, 0, len(freq))
	for sym, f := range freq {
		if f > 0 {
			syms = append(syms, sym)
		}
	}

	n := len(syms)
	switch n {
	case 0:
		return true
	case 1:
		lengths[syms[0]] = 1
		return true
	}

	slices.SortStableFunc(syms, func(a, b int) int {
		return cmp.Compare(freq[a], freq[b])
	})

	// Two-queue construction: leaves sorted by weight, internal nodes created in
	// non-decreasing weight order.
	weight := make([]uint64, 2*n-1)
	parent := make([]int, 2*n-1)
	for i, sym := range syms {
		weight[i] = uint64(freq[sym])
	}

	leaf, inner, next := 0, n, n
	pick := func() int {
		if leaf < n && (inner >= next || weight[leaf] <= weight[inner]) {
			leaf++
			return leaf - 1
		}
		inner++

		return inner - 1
	}

	for ; next < 2*n-1; next++ {
		a, b := pick(), pick()
		weight[next] = weight[a] + weight[b]
		parent[a], parent[b] = next, next
	}

	depth := make([]int, 2*n-1)
	for i := 2*n - 3; i >= 0; i-- {
		depth[i] = depth[parent[i]] + 1
	}

	for i, sym := range syms {
		if depth[i] > maxBits {
			return false
		}
		lengths[sym] = byte(depth[i])
	}

	return true
}

// canonicalCodes assigns canonical codes to lengths: shorter codes first, ties broken by
// symbol order. This is the same order buildDecodeTable lays the table out in.
func canonicalCodes(lengths []byte, codes []uint16) {
	var count [huffMaxCodeLength + 1]int
	for _, l := range lengths {
		count[l]++
	}
	count[0] = 0

	var next [huffMaxCodeLength + 1]int
	code := 0
	for l := 1; l <= huffMaxCodeLength; l++ {
		code = (code + count[l-1]) << 1
		next[l] = code
	}

	for sym, l := range lengths {
		if l == 0 {
			codes[sym] = 0
			continue
		}
		codes[sym] = uint16(next[l])
		next[l]++
	}
}

// bitWriter produces the interleaved stream the Huffman decoder expects: 16-bit
// little-endian words of code bits, most significant bit first, with raw bytes appended
// in between. Two word slots are always reserved ahead of the raw bytes, mirroring the
// decoder's 32-bit lookahead.
type bitWriter struct {
	out       []byte
	bitbuf    uint32
	bitcount  int
	nextBits  int
	nextBits2 int
}

func (w *bitWriter) reset(out []byte) {
	w.bitbuf, w.bitcount = 0, 0
	w.nextBits = len(out)
	w.nextBits2 = len(out) + 2
	w.out = append(out, 0, 0, 0, 0)
}

// writeBits appends the low n bits of v. n must not exceed 16.
func (w *bitWriter) writeBits(v uint32, n int) {
	w.bitbuf = w.bitbuf<<n | v
	w.bitcount += n

	if w.bitcount > 16 {
		w.bitcount -= 16
		endian.GetLittleEndianEngine().PutUint16(w.out[w.nextBits:], uint16(w.bitbuf>>w.bitcount))
		w.nextBits = w.nextBits2
		w.nextBits2 = len(w.out)
		w.out = append(w.out, 0, 0)
	}
}

func (w *bitWriter) writeByte(b byte) {
	w.out = append(w.out, b)
}

func (w *bitWriter) writeUint16(v uint16) {
	w.out = endian.GetLittleEndianEngine().AppendUint16(w.out, v)
}

// flush pads pending bits to a full word and returns the output.
func (w *bitWriter) flush() []byte {
	engine := endian.GetLittleEndianEngine()
	engine.PutUint16(w.out[w.nextBits:], uint16(w.bitbuf<<(16-w.bitcount)))
	engine.PutUint16(w.out[w.nextBits2:], 0)

	return w.out
}

// bitReader is the decoder side of bitWriter.
type bitReader struct {
	src   []byte
	pos   int
	bits  uint32
	extra int
}

func (r *bitReader) word() uint32 {
	if r.pos+2 > len(r.src) {
		r.pos = len(r.src)
		return 0
	}
	v := endian.GetLittleEndianEngine().Uint16(r.src[r.pos:])
	r.pos += 2

	return uint32(v)
}

func (r *bitReader) reset(src []byte, pos int) {
	r.src, r.pos = src, pos
	r.bits = r.word() << 16
	r.bits |= r.word()
	r.extra = 16
}

func (r *bitReader) peek15() uint32 {
	return r.bits >> (32 - huffTableBits)
}

func (r *bitReader) consume(n int) {
	r.bits <<= n
	r.extra -= n
	if r.extra < 0 {
		r.bits |= r.word() << -r.extra
		r.extra += 16
	}
}

func (r *bitReader) readBits(n int) uint32 {
	if n == 0 {
		return 0
	}
	v := r.bits >> (32 - n)
	r.consume(n)

	return v
}

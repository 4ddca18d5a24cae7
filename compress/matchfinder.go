package compress

const (
	minMatch      = 3
	mfHashBits    = 15
	mfHashSize    = 1 << mfHashBits
	mfMaxChain    = 64
	mfNiceLength  = 258
	mfNoCandidate = -1
)

// matchFinder is a hash-chain LZ77 match finder shared by the variant encoders.
//
// It indexes 3-byte prefixes of src; positions must be inserted in increasing order.
type matchFinder struct {
	src  []byte
	head []int32
	prev []int32
}

func newMatchFinder(src []byte) *matchFinder {
	mf := &matchFinder{head: make([]int32, mfHashSize)}
	mf.reset(src)

	return mf
}

// reset forgets every indexed position and starts over on src.
func (mf *matchFinder) reset(src []byte) {
	mf.src = src
	for i := range mf.head {
		mf.head[i] = mfNoCandidate
	}

	if cap(mf.prev) < len(src) {
		mf.prev = make([]int32, len(src))
	}
	mf.prev = mf.prev[:len(src)]
}

func (mf *matchFinder) hash(pos int) uint32 {
	v := uint32(mf.src[pos])<<16 | uint32(mf.src[pos+1])<<8 | uint32(mf.src[pos+2])
	return (v * 2654435761) >> (32 - mfHashBits)
}

// insert indexes pos. Positions too close to the end to start a match are ignored.
func (mf *matchFinder) insert(pos int) {
	if pos+minMatch > len(mf.src) {
		return
	}

	h := mf.hash(pos)
	mf.prev[pos] = mf.head[h]
	mf.head[h] = int32(pos)
}

// insertRange indexes every position in [from, to).
func (mf *matchFinder) insertRange(from, to int) {
	for p := from; p < to; p++ {
		mf.insert(p)
	}
}

// find returns the longest match for pos whose source starts at or after lowest, lies at
// most maxOffset bytes back, and whose length does not exceed maxLen. A zero length means
// no match of at least minMatch bytes exists.
func (mf *matchFinder) find(pos, lowest, maxOffset, maxLen int) (length, offset int) {
	if maxLen < minMatch || pos+minMatch > len(mf.src) {
		return 0, 0
	}

	src := mf.src
	cand := int(mf.head[mf.hash(pos)])

	for chain := 0; cand != mfNoCandidate && chain < mfMaxChain; chain++ {
		dist := pos - cand
		if dist > maxOffset || cand < lowest {
			break
		}

		if src[cand+length] == src[pos+length] {
			n := 0
			for n < maxLen && src[cand+n] == src[pos+n] {
				n++
			}
			if n > length {
				length, offset = n, dist
				if n >= maxLen || n >= mfNiceLength {
					break
				}
			}
		}

		cand = int(mf.prev[cand])
	}

	if length < minMatch {
		return 0, 0
	}

	return length, offset
}

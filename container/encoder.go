package container

import (
	"bytes"
	"fmt"
	"math"

	"github.com/arloliu/mam/checksum"
	"github.com/arloliu/mam/compress"
	"github.com/arloliu/mam/endian"
	"github.com/arloliu/mam/errs"
	"github.com/arloliu/mam/format"
	"github.com/arloliu/mam/internal/options"
	"github.com/arloliu/mam/internal/pool"
	"github.com/arloliu/mam/section"
)

// Encoder produces containers a Decoder accepts. It is used to build fixtures and
// for round-trip tooling; Windows itself only ever reads what it wrote.
type Encoder struct {
	alg        format.Algorithm
	checksum   bool
	compressor compress.Compressor
}

// NewEncoder creates an Encoder for alg, which must be a supported selector.
func NewEncoder(alg format.Algorithm, opts ...EncoderOption) (*Encoder, error) {
	e := &Encoder{alg: alg, checksum: true}

	if alg.IsSupported() {
		v, err := compress.GetVariant(alg)
		if err != nil {
			return nil, err
		}
		e.compressor = v
	}

	if err := options.Apply(e, opts...); err != nil {
		return nil, err
	}

	if e.compressor == nil {
		return nil, &errs.UnsupportedAlgorithmError{Selector: alg}
	}

	return e, nil
}

// Algorithm returns the selector written into every container.
func (e *Encoder) Algorithm() format.Algorithm {
	return e.alg
}

// Encode compresses plaintext and wraps it in a container.
//
// Returns:
//   - []byte: The container, owned by the caller
//   - error: errs.ErrContainerTooLarge if plaintext does not fit the 32-bit size field,
//     or the compressor's error
func (e *Encoder) Encode(plaintext []byte) ([]byte, error) {
	if uint64(len(plaintext)) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %d bytes", errs.ErrContainerTooLarge, len(plaintext))
	}

	payload, err := e.compressor.Compress(plaintext)
	if err != nil {
		return nil, fmt.Errorf("compress %s payload: %w", e.alg, err)
	}

	header := section.NewHeader(e.alg, e.checksum, uint32(len(plaintext))).Bytes()

	buf := pool.GetContainerBuffer()
	defer pool.PutContainerBuffer(buf)

	buf.Grow(section.PayloadOffsetChecked + len(payload))
	_, _ = buf.Write(header)
	if e.checksum {
		crc := checksum.Compute(header, payload)
		_, _ = buf.Write(endian.GetLittleEndianEngine().AppendUint32(nil, crc))
	}
	_, _ = buf.Write(payload)

	return bytes.Clone(buf.Bytes()), nil
}

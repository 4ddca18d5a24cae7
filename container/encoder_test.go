package container

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/mam/checksum"
	"github.com/arloliu/mam/compress"
	"github.com/arloliu/mam/errs"
	"github.com/arloliu/mam/format"
	"github.com/arloliu/mam/section"
)

func TestEncoder_Layout(t *testing.T) {
	enc, err := NewEncoder(format.AlgorithmLZNT1, WithCompressor(fixedCompressor(lznt1Scenario)))
	require.NoError(t, err)
	require.Equal(t, format.AlgorithmLZNT1, enc.Algorithm())

	data, err := enc.Encode(lznt1Plaintext)
	require.NoError(t, err)

	header := []byte{0x4D, 0x41, 0x4D, 0x82, 0x10, 0x00, 0x00, 0x00}
	crc := checksum.Compute(header, lznt1Scenario)

	require.Equal(t, header, data[:8])
	require.Equal(t, []byte{byte(crc), byte(crc >> 8), byte(crc >> 16), byte(crc >> 24)}, data[8:12])
	require.Equal(t, lznt1Scenario, data[12:])
}

func TestEncoder_WithoutChecksum(t *testing.T) {
	enc, err := NewEncoder(format.AlgorithmLZNT1, WithChecksum(false), WithCompressor(fixedCompressor(lznt1Scenario)))
	require.NoError(t, err)

	data, err := enc.Encode(lznt1Plaintext)
	require.NoError(t, err)
	require.Equal(t, []byte{0x4D, 0x41, 0x4D, 0x02, 0x10, 0x00, 0x00, 0x00}, data[:8])
	require.Equal(t, lznt1Scenario, data[section.PayloadOffsetPlain:])
}

func TestEncoder_Errors(t *testing.T) {
	_, err := NewEncoder(format.AlgorithmDefault)
	require.ErrorIs(t, err, errs.ErrUnsupportedAlgorithm)

	_, err = NewEncoder(format.AlgorithmXpress, WithCompressor(nil))
	require.Error(t, err)

	boom := errors.New("boom")
	enc, err := NewEncoder(format.AlgorithmXpress, WithCompressor(failingCompressor{boom}))
	require.NoError(t, err)

	_, err = enc.Encode([]byte("x"))
	require.ErrorIs(t, err, boom)
}

func TestEncoder_OutputIsOwned(t *testing.T) {
	enc, err := NewEncoder(format.AlgorithmNone)
	require.NoError(t, err)

	first, err := enc.Encode([]byte("first"))
	require.NoError(t, err)
	_, err = enc.Encode([]byte("second"))
	require.NoError(t, err)

	res, err := DecodeContainer(first)
	require.NoError(t, err)
	require.Equal(t, "first", string(res))
}

type fixedCompressor []byte

func (c fixedCompressor) Compress([]byte) ([]byte, error) {
	return []byte(c), nil
}

type failingCompressor struct{ err error }

func (c failingCompressor) Compress([]byte) ([]byte, error) {
	return nil, c.err
}

var (
	_ compress.Compressor = fixedCompressor(nil)
	_ compress.Compressor = failingCompressor{}
)

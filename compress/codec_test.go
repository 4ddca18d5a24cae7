package compress

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/mam/format"
)

func outputTypes() []format.CompressionType {
	return []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
		format.CompressionSnappy,
	}
}

func TestCodecs_RoundTrip(t *testing.T) {
	for _, ct := range outputTypes() {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		for _, s := range samples() {
			t.Run(ct.String()+"/"+s.name, func(t *testing.T) {
				compressed, err := codec.Compress(s.data)
				require.NoError(t, err)

				got, err := codec.Decompress(compressed)
				require.NoError(t, err)
				require.Equal(t, len(s.data), len(got))
				if len(s.data) > 0 {
					require.Equal(t, s.data, got)
				}
			})
		}
	}
}

func TestCodecs_Shrink(t *testing.T) {
	data := samples()[6].data

	for _, ct := range outputTypes()[1:] {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		compressed, err := codec.Compress(data)
		require.NoError(t, err)
		require.Less(t, len(compressed), len(data)/2, "%s", ct)
	}
}

func TestCodecs_RejectGarbage(t *testing.T) {
	garbage := []byte("this is not a compressed stream at all, not even close")

	for _, ct := range outputTypes()[1:] {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		_, err = codec.Decompress(garbage)
		require.Error(t, err, "%s", ct)
	}
}

func TestCreateCodec(t *testing.T) {
	for _, ct := range outputTypes() {
		codec, err := CreateCodec(ct, "output")
		require.NoError(t, err)
		require.NotNil(t, codec)
	}

	_, err := CreateCodec(format.CompressionType(0x7F), "output")
	require.ErrorContains(t, err, "invalid output compression")

	_, err = GetCodec(format.CompressionType(0))
	require.Error(t, err)
}

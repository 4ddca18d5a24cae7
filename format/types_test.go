package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAlgorithm_IsSupported(t *testing.T) {
	for sel := 0; sel < 16; sel++ {
		alg := Algorithm(sel)
		switch alg {
		case AlgorithmNone, AlgorithmLZNT1, AlgorithmXpress, AlgorithmXpressHuffman:
			require.True(t, alg.IsSupported(), "selector %d", sel)
		default:
			require.False(t, alg.IsSupported(), "selector %d", sel)
		}
	}

	require.Len(t, SupportedAlgorithms(), 4)
}

func TestAlgorithm_String(t *testing.T) {
	require.Equal(t, "LZNT1", AlgorithmLZNT1.String())
	require.Equal(t, "XpressHuffman", AlgorithmXpressHuffman.String())
	require.Equal(t, "Unknown(9)", Algorithm(9).String())
}

func TestParseCompressionType(t *testing.T) {
	tests := []struct {
		name string
		want CompressionType
		ext  string
	}{
		{"", CompressionNone, ""},
		{"none", CompressionNone, ""},
		{"ZSTD", CompressionZstd, ".zst"},
		{"s2", CompressionS2, ".s2"},
		{" lz4 ", CompressionLZ4, ".lz4"},
		{"snappy", CompressionSnappy, ".sz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCompressionType(tt.name)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.Equal(t, tt.ext, got.Extension())
		})
	}

	_, err := ParseCompressionType("brotli")
	require.Error(t, err)
}

func TestCompressionType_TextRoundTrip(t *testing.T) {
	text, err := CompressionZstd.MarshalText()
	require.NoError(t, err)
	require.Equal(t, "zstd", string(text))

	var ct CompressionType
	require.NoError(t, ct.UnmarshalText([]byte("lz4")))
	require.Equal(t, CompressionLZ4, ct)
	require.Error(t, ct.UnmarshalText([]byte("bogus")))
}

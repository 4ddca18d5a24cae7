package compress

import (
	"testing"

	"github.com/arloliu/mam/format"
)

func BenchmarkVariant_DecompressTo(b *testing.B) {
	data := samples()[6].data

	for _, alg := range format.SupportedAlgorithms() {
		v, err := GetVariant(alg)
		if err != nil {
			b.Fatal(err)
		}
		payload, err := v.Compress(data)
		if err != nil {
			b.Fatal(err)
		}

		dst := make([]byte, len(data))
		workspace := make([]byte, v.WorkspaceSize())

		b.Run(alg.String(), func(b *testing.B) {
			b.SetBytes(int64(len(data)))
			b.ReportAllocs()
			b.ResetTimer()

			for b.Loop() {
				if _, err := v.DecompressTo(dst, payload, workspace); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkVariant_Compress(b *testing.B) {
	data := samples()[6].data

	for _, alg := range format.SupportedAlgorithms() {
		v, err := GetVariant(alg)
		if err != nil {
			b.Fatal(err)
		}

		b.Run(alg.String(), func(b *testing.B) {
			b.SetBytes(int64(len(data)))
			b.ResetTimer()

			for b.Loop() {
				if _, err := v.Compress(data); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkCodec_Compress(b *testing.B) {
	data := samples()[6].data

	for _, ct := range outputTypes() {
		codec, err := GetCodec(ct)
		if err != nil {
			b.Fatal(err)
		}

		b.Run(ct.String(), func(b *testing.B) {
			b.SetBytes(int64(len(data)))
			b.ResetTimer()

			for b.Loop() {
				if _, err := codec.Compress(data); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

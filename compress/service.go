package compress

import "github.com/arloliu/mam/format"

// Service is the decompression capability the container decoder calls through.
//
// It mirrors the platform primitive pair the container producer was designed around:
// a workspace size query followed by a decompress call into a buffer of known size.
// Any implementation (pure Go, platform binding or test double) satisfies the same contract:
//
//   - WorkspaceSize fails when the algorithm cannot be provided in this environment.
//   - Decompress never writes beyond len(dst) and reports the number of bytes produced.
//   - Failures carry a Status (see StatusOf) and are not interpreted further by the caller.
//
// Implementations must not share a workspace between concurrent calls; the caller hands a
// fresh workspace to every Decompress call.
type Service interface {
	WorkspaceSize(alg format.Algorithm) (int, error)
	Decompress(alg format.Algorithm, dst, src, workspace []byte) (int, error)
}

// NativeService is the pure-Go Service backed by the built-in variants.
type NativeService struct {
	variants map[format.Algorithm]Variant
}

var _ Service = (*NativeService)(nil)

// NewService returns a Service over the given variants. With no arguments every built-in
// variant is available.
func NewService(variants ...Variant) *NativeService {
	s := &NativeService{variants: make(map[format.Algorithm]Variant)}
	if len(variants) == 0 {
		for alg, v := range builtinVariants {
			s.variants[alg] = v
		}

		return s
	}

	for _, v := range variants {
		s.variants[v.Algorithm()] = v
	}

	return s
}

// WorkspaceSize returns the scratch size required by alg, or StatusUnsupportedCompression.
func (s *NativeService) WorkspaceSize(alg format.Algorithm) (int, error) {
	v, ok := s.variants[alg]
	if !ok {
		return 0, StatusUnsupportedCompression
	}

	return v.WorkspaceSize(), nil
}

// Decompress decodes src into dst using the variant registered for alg.
func (s *NativeService) Decompress(alg format.Algorithm, dst, src, workspace []byte) (int, error) {
	v, ok := s.variants[alg]
	if !ok {
		return 0, StatusUnsupportedCompression
	}

	if len(workspace) < v.WorkspaceSize() {
		return 0, StatusBufferTooSmall
	}

	return v.DecompressTo(dst, src, workspace)
}

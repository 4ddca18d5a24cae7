package container

import (
	"github.com/arloliu/mam/compress"
	"github.com/arloliu/mam/errs"
	"github.com/arloliu/mam/format"
	"github.com/arloliu/mam/internal/pool"
)

// dispatch decompresses payload with the variant named by alg.
//
// The output buffer is allocated at the declared size and the workspace is sized by
// asking the service. When the service produces a different number of bytes than
// declared the result is trimmed to what was produced and a errs.SizeMismatch warning
// is returned alongside it.
func dispatch(svc compress.Service, alg format.Algorithm, payload []byte, declared uint32) ([]byte, error, error) {
	if !alg.IsSupported() {
		return nil, nil, &errs.UnsupportedAlgorithmError{Selector: alg}
	}

	size, err := svc.WorkspaceSize(alg)
	if err != nil {
		return nil, nil, &errs.UnsupportedAlgorithmError{Selector: alg, Err: err}
	}

	workspace, release := pool.GetWorkspace(size)
	defer release()

	dst := make([]byte, declared)

	n, err := svc.Decompress(alg, dst, payload, workspace)
	if err != nil {
		return nil, nil, &errs.DecompressionError{
			Algorithm: alg,
			Status:    uint32(compress.StatusOf(err)),
			Err:       err,
		}
	}

	if n < 0 || n > len(dst) {
		return nil, nil, &errs.DecompressionError{
			Algorithm: alg,
			Status:    uint32(compress.StatusBufferTooSmall),
		}
	}

	if uint32(n) != declared {
		return dst[:n], errs.SizeMismatch{Declared: declared, Actual: uint32(n)}, nil
	}

	return dst, nil, nil
}

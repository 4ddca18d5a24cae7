package errs

import "errors"

// Kind classifies a decode outcome. It is stable across runs and is used as a
// metrics label and in batch manifests.
type Kind string

const (
	KindNone                 Kind = ""
	KindTruncatedHeader      Kind = "truncated_header"
	KindNotThisFormat        Kind = "not_this_format"
	KindIntegrityMismatch    Kind = "integrity_mismatch"
	KindUnsupportedAlgorithm Kind = "unsupported_algorithm"
	KindDecompressionFailed  Kind = "decompression_failed"
	KindOutputCollision      Kind = "output_collision"
	KindOther                Kind = "other"
)

// Classify maps err to its Kind. A nil error is KindNone.
func Classify(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrTruncatedHeader), errors.Is(err, ErrInvalidHeaderSize):
		return KindTruncatedHeader
	case errors.Is(err, ErrNotThisFormat):
		return KindNotThisFormat
	case errors.Is(err, ErrIntegrityMismatch):
		return KindIntegrityMismatch
	case errors.Is(err, ErrUnsupportedAlgorithm):
		return KindUnsupportedAlgorithm
	case errors.Is(err, ErrDecompressionFailed):
		return KindDecompressionFailed
	case errors.Is(err, ErrOutputCollision):
		return KindOutputCollision
	default:
		return KindOther
	}
}

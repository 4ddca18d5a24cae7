package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/mam/format"
)

func TestIntegrityError(t *testing.T) {
	var err error = &IntegrityError{Expected: 0xFFFFFFFF, Computed: 0x1234ABCD}

	require.ErrorIs(t, err, ErrIntegrityMismatch)
	require.Contains(t, err.Error(), "ffffffff")
	require.Contains(t, err.Error(), "1234abcd")

	wrapped := fmt.Errorf("file.pf: %w", err)
	var target *IntegrityError
	require.ErrorAs(t, wrapped, &target)
	require.Equal(t, uint32(0xFFFFFFFF), target.Expected)
}

func TestUnsupportedAlgorithmError(t *testing.T) {
	cause := errors.New("no such procedure")
	err := &UnsupportedAlgorithmError{Selector: format.AlgorithmXpressHuffman, Err: cause}

	require.ErrorIs(t, err, ErrUnsupportedAlgorithm)
	require.ErrorIs(t, err, cause)
	require.Contains(t, err.Error(), "XpressHuffman")

	bare := &UnsupportedAlgorithmError{Selector: 9}
	require.Contains(t, bare.Error(), "selector 9")
}

func TestDecompressionError(t *testing.T) {
	err := &DecompressionError{Algorithm: format.AlgorithmLZNT1, Status: 0xC0000242}

	require.ErrorIs(t, err, ErrDecompressionFailed)
	require.Contains(t, err.Error(), "0xc0000242")
}

func TestSizeMismatch(t *testing.T) {
	w := SizeMismatch{Declared: 16, Actual: 12}

	require.ErrorIs(t, w, ErrSizeMismatch)
	require.Contains(t, w.Error(), "declared 16")
}

func TestClassify(t *testing.T) {
	tests := []struct {
		err  error
		want Kind
	}{
		{nil, KindNone},
		{ErrTruncatedHeader, KindTruncatedHeader},
		{fmt.Errorf("x: %w", ErrNotThisFormat), KindNotThisFormat},
		{&IntegrityError{}, KindIntegrityMismatch},
		{&UnsupportedAlgorithmError{Selector: 1}, KindUnsupportedAlgorithm},
		{&DecompressionError{}, KindDecompressionFailed},
		{fmt.Errorf("write: %w", ErrOutputCollision), KindOutputCollision},
		{errors.New("disk on fire"), KindOther},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, Classify(tt.err), "%v", tt.err)
	}
}

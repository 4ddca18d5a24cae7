//go:build !windows

package compress

import (
	"github.com/arloliu/mam/errs"
	"github.com/arloliu/mam/format"
)

// NtdllService is only available on Windows.
type NtdllService struct{}

var _ Service = (*NtdllService)(nil)

// NewNtdllService always fails outside Windows.
func NewNtdllService() (*NtdllService, error) {
	return nil, errs.ErrPlatformUnavailable
}

// WorkspaceSize reports every algorithm as unsupported.
func (s *NtdllService) WorkspaceSize(format.Algorithm) (int, error) {
	return 0, StatusUnsupportedCompression
}

// Decompress reports every algorithm as unsupported.
func (s *NtdllService) Decompress(format.Algorithm, []byte, []byte, []byte) (int, error) {
	return 0, StatusUnsupportedCompression
}

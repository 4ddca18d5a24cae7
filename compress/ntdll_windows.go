//go:build windows

package compress

import (
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/arloliu/mam/format"
)

var (
	modntdll = windows.NewLazySystemDLL("ntdll.dll")

	procRtlGetCompressionWorkSpaceSize = modntdll.NewProc("RtlGetCompressionWorkSpaceSize")
	procRtlDecompressBufferEx          = modntdll.NewProc("RtlDecompressBufferEx")
)

// NtdllService is the Service backed by the operating system's own decompressor.
//
// Selector 0 never reaches ntdll, which does not accept it; it is copied like the
// native service does.
type NtdllService struct {
	stored Stored
}

var _ Service = (*NtdllService)(nil)

// NewNtdllService binds the ntdll compression procedures. It fails when either
// procedure cannot be found, which is the case on Windows versions before 8.
func NewNtdllService() (*NtdllService, error) {
	if err := procRtlGetCompressionWorkSpaceSize.Find(); err != nil {
		return nil, err
	}
	if err := procRtlDecompressBufferEx.Find(); err != nil {
		return nil, err
	}

	return &NtdllService{stored: NewStored()}, nil
}

// WorkspaceSize asks ntdll for the fragment workspace size of alg.
func (s *NtdllService) WorkspaceSize(alg format.Algorithm) (int, error) {
	if alg == format.AlgorithmNone {
		return 0, nil
	}

	var bufferSize, fragmentSize uint32
	r, _, _ := procRtlGetCompressionWorkSpaceSize.Call(
		uintptr(alg),
		uintptr(unsafe.Pointer(&bufferSize)),
		uintptr(unsafe.Pointer(&fragmentSize)),
	)
	if status := Status(r); status != StatusSuccess {
		return 0, status
	}

	return int(fragmentSize), nil
}

// Decompress calls RtlDecompressBufferEx.
func (s *NtdllService) Decompress(alg format.Algorithm, dst, src, workspace []byte) (int, error) {
	if alg == format.AlgorithmNone {
		return s.stored.DecompressTo(dst, src, workspace)
	}
	if len(dst) == 0 {
		return 0, nil
	}
	if len(src) == 0 {
		return 0, StatusBadCompressionBuffer
	}

	var ws uintptr
	if len(workspace) > 0 {
		ws = uintptr(unsafe.Pointer(&workspace[0]))
	}

	var final uint32
	r, _, _ := procRtlDecompressBufferEx.Call(
		uintptr(alg),
		uintptr(unsafe.Pointer(&dst[0])),
		uintptr(uint32(len(dst))),
		uintptr(unsafe.Pointer(&src[0])),
		uintptr(uint32(len(src))),
		uintptr(unsafe.Pointer(&final)),
		ws,
	)
	if status := Status(r); status != StatusSuccess {
		return int(final), status
	}

	return int(final), nil
}

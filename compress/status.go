package compress

import (
	"errors"
	"fmt"
)

// Status is an NTSTATUS-style result code reported by a decompression service.
//
// Zero means success. Failure codes are surfaced to callers unchanged so that diagnostics
// match what the platform primitive would have reported for the same input.
type Status uint32

const (
	StatusSuccess                Status = 0x00000000
	StatusUnsuccessful           Status = 0xC0000001
	StatusInvalidParameter       Status = 0xC000000D
	StatusBufferTooSmall         Status = 0xC0000023
	StatusBadCompressionBuffer   Status = 0xC0000242
	StatusUnsupportedCompression Status = 0xC000025F
)

var _ error = StatusSuccess

func (s Status) Error() string {
	return fmt.Sprintf("status 0x%08x (%s)", uint32(s), s.name())
}

func (s Status) name() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusUnsuccessful:
		return "unsuccessful"
	case StatusInvalidParameter:
		return "invalid parameter"
	case StatusBufferTooSmall:
		return "buffer too small"
	case StatusBadCompressionBuffer:
		return "bad compression buffer"
	case StatusUnsupportedCompression:
		return "unsupported compression"
	default:
		return "unknown"
	}
}

// StatusOf extracts the Status carried by err. A nil error is StatusSuccess and an
// error without a status is reported as StatusUnsuccessful.
func StatusOf(err error) Status {
	if err == nil {
		return StatusSuccess
	}

	var s Status
	if errors.As(err, &s) {
		return s
	}

	return StatusUnsuccessful
}

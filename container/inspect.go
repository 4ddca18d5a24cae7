package container

import (
	"github.com/arloliu/mam/checksum"
	"github.com/arloliu/mam/format"
	"github.com/arloliu/mam/section"
)

// Info is a header-level view of a container. Nothing is decompressed or verified to
// produce it.
type Info struct {
	Header       section.Header
	Algorithm    format.Algorithm
	Supported    bool
	HasChecksum  bool
	Embedded     uint32 // embedded CRC-32, zero when HasChecksum is false
	DeclaredSize uint32
	PayloadSize  int
}

// Inspect parses the container prefix of data.
func Inspect(data []byte) (Info, error) {
	header, err := section.ParseHeader(data)
	if err != nil {
		return Info{}, err
	}

	info := Info{
		Header:       header,
		Algorithm:    header.Algorithm(),
		Supported:    header.Algorithm().IsSupported(),
		HasChecksum:  header.HasChecksum(),
		DeclaredSize: header.DecompressedSize,
	}

	payload := data[section.HeaderSize:]
	if info.HasChecksum {
		embedded, rest, err := checksum.ReadEmbedded(payload)
		if err != nil {
			return Info{}, err
		}
		info.Embedded = embedded
		payload = rest
	}
	info.PayloadSize = len(payload)

	return info, nil
}

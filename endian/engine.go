// Package endian provides the byte order engine used for every fixed-layout field in
// the MAM container and in the compressed streams it carries.
//
// All multi-byte integers in the container (signature, declared size, checksum) and in
// the LZNT1/Xpress streams (chunk headers, flag words, bit words) are little-endian,
// independent of the host:
//
//	engine := endian.GetLittleEndianEngine()
//	signature := engine.Uint32(data[0:4])
//	buf = engine.AppendUint32(buf, checksum)
//
// # Thread Safety
//
// The returned EndianEngine is immutable and stateless and safe for concurrent use.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary so one
// value can both read fixed fields and append them to a growing buffer.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// IsLittleEndian reports whether engine is the little-endian engine.
func IsLittleEndian(engine EndianEngine) bool {
	return engine == binary.LittleEndian
}

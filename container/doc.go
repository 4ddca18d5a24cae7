// Package container decodes MAM containers, the compressed wrapper Windows 10 and later
// put around prefetch (.pf) files.
//
// # Wire Format
//
// All fields are little-endian:
//
//	offset  size  field
//	0       4     signature: [checksum flag:4][algorithm:4][magic "MAM":24]
//	4       4     declared decompressed size
//	8       4     CRC-32, present only when the checksum flag is non-zero
//	8/12    ...   compressed payload
//
// The CRC-32 (IEEE) covers the 8 header bytes, four zero bytes in place of the
// checksum field, then the payload.
//
// # Decoding
//
// Decoder.Decode runs parsing, verification and decompression in that order and
// reports the path it took through the state machine in Result.States. Failures are
// typed (see package errs) and never come with partial output. A decompressed size
// that differs from the declared one is not a failure: the produced bytes are
// returned with an errs.SizeMismatch warning.
//
// Decompression is delegated to a compress.Service, which makes the pure-Go decoders,
// the Windows ntdll binding and test doubles interchangeable:
//
//	svc, err := compress.NewNtdllService()
//	if err != nil {
//		return err
//	}
//	dec, _ := container.NewDecoder(container.WithService(svc))
//
// # Encoding
//
// Encoder builds containers with any supported variant and is mostly useful for
// fixtures; decoders are the point of this package.
package container

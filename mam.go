// Package mam decodes MAM containers, the compressed wrapper Windows 10 and later
// write around prefetch (.pf) files.
//
// A container is an 8-byte header (signature and declared size), an optional CRC-32
// and a payload compressed with one of the Windows compression formats. This module
// recovers the original prefetch file so that parsers expecting the uncompressed
// "SCCA" layout can read it.
//
// # Core Features
//
//   - Header parsing that tells foreign files apart from damaged containers
//   - CRC-32 verification before any decompression happens
//   - Pure-Go LZNT1, Xpress and Xpress Huffman decoders, usable on any platform
//   - Optional binding to the Windows ntdll decompressor
//   - Typed errors for every failure, and a soft warning when the produced size differs
//     from the declared one
//
// # Basic Usage
//
// Decoding a prefetch file:
//
//	data, _ := os.ReadFile(`C:\Windows\Prefetch\CMD.EXE-4A81B364.pf`)
//	plain, err := mam.DecodeContainer(data)
//	switch {
//	case errors.Is(err, errs.ErrNotThisFormat):
//	    // an uncompressed Windows 7/8 prefetch file, use data as-is
//	case err != nil:
//	    return err
//	}
//
// Decoding with warnings and state details:
//
//	res, err := mam.Decode(data)
//	for _, w := range res.Warnings {
//	    log.Println(w)
//	}
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the container package.
// For custom decompression services, observers or encoding options, use the container
// and compress packages directly. The mamdecomp command decodes whole directories.
package mam

import (
	"github.com/arloliu/mam/container"
	"github.com/arloliu/mam/format"
	"github.com/arloliu/mam/section"
)

// Version is the module release reported by the command-line tool.
const Version = "0.3.0"

// Decode decodes one container with the pure-Go decompression service.
//
// Parameters:
//   - data: The complete container
//   - opts: Decoder options, such as container.WithService or container.WithObserver
//
// Returns:
//   - container.Result: Header, recovered data, warnings and the states visited
//   - error: A typed error from package errs
func Decode(data []byte, opts ...container.DecoderOption) (container.Result, error) {
	dec, err := container.NewDecoder(opts...)
	if err != nil {
		return container.Result{}, err
	}

	return dec.Decode(data)
}

// DecodeContainer decodes one container and returns the recovered payload.
func DecodeContainer(data []byte) ([]byte, error) {
	return container.DecodeContainer(data)
}

// Encode wraps plaintext in a container compressed with alg. A CRC-32 is embedded
// unless container.WithChecksum(false) is given.
//
// Example:
//
//	data, err := mam.Encode(format.AlgorithmXpressHuffman, plain)
func Encode(alg format.Algorithm, plaintext []byte, opts ...container.EncoderOption) ([]byte, error) {
	enc, err := container.NewEncoder(alg, opts...)
	if err != nil {
		return nil, err
	}

	return enc.Encode(plaintext)
}

// IsContainer reports whether data starts with a MAM signature.
func IsContainer(data []byte) bool {
	return section.IsContainer(data)
}

package container

import (
	"errors"

	"github.com/arloliu/mam/compress"
	"github.com/arloliu/mam/internal/options"
)

// DecoderOption configures a Decoder.
type DecoderOption = options.Option[*Decoder]

// WithService sets the decompression service. The default is the pure-Go service over
// every built-in variant.
func WithService(svc compress.Service) DecoderOption {
	return options.New(func(d *Decoder) error {
		if svc == nil {
			return errors.New("decompression service must not be nil")
		}
		d.svc = svc

		return nil
	})
}

// WithObserver installs instrumentation callbacks.
func WithObserver(obs Observer) DecoderOption {
	return options.NoError(func(d *Decoder) {
		if obs == nil {
			obs = nopObserver{}
		}
		d.observer = obs
	})
}

// EncoderOption configures an Encoder.
type EncoderOption = options.Option[*Encoder]

// WithChecksum controls whether the encoder embeds a CRC-32. It is enabled by default.
func WithChecksum(enabled bool) EncoderOption {
	return options.NoError(func(e *Encoder) {
		e.checksum = enabled
	})
}

// WithCompressor replaces the built-in compressor for the encoder's algorithm. It is
// meant for producing payloads the built-in encoders never emit, such as hand-made
// fixtures.
func WithCompressor(c compress.Compressor) EncoderOption {
	return options.New(func(e *Encoder) error {
		if c == nil {
			return errors.New("compressor must not be nil")
		}
		e.compressor = c

		return nil
	})
}

package container

import (
	"github.com/arloliu/mam/checksum"
	"github.com/arloliu/mam/compress"
	"github.com/arloliu/mam/internal/options"
	"github.com/arloliu/mam/section"
)

// Decoder turns container bytes into the recovered payload.
//
// A Decoder holds no per-decode state and is safe for concurrent use, provided the
// Observer it was given is.
type Decoder struct {
	svc      compress.Service
	observer Observer
}

// NewDecoder creates a Decoder.
//
// Example:
//
//	dec, err := container.NewDecoder(container.WithService(svc))
//	if err != nil {
//		return err
//	}
//	res, err := dec.Decode(data)
func NewDecoder(opts ...DecoderOption) (*Decoder, error) {
	d := &Decoder{
		svc:      compress.NewService(),
		observer: nopObserver{},
	}

	if err := options.Apply(d, opts...); err != nil {
		return nil, err
	}

	return d, nil
}

// Decode runs the full pipeline over one container: parse the header, verify the
// embedded checksum when present, then decompress.
//
// Every failure is returned as a typed error from package errs; Result.Data is nil in
// that case and Result.States ends with StateFailed. Decoding identical bytes twice
// yields identical results.
func (d *Decoder) Decode(data []byte) (Result, error) {
	run := &decodeRun{observer: d.observer}
	run.res.States = []State{StateStart}

	header, err := section.ParseHeader(data)
	if err != nil {
		return run.fail(err)
	}
	run.res.Header = header
	run.enter(StateHeaderParsed)

	payload := data[section.HeaderSize:]
	if header.HasChecksum() {
		d.observer.OnVerify()

		expected, rest, err := checksum.ReadEmbedded(payload)
		if err != nil {
			return run.fail(err)
		}
		if err := checksum.Verify(data[:section.HeaderSize], expected, rest); err != nil {
			return run.fail(err)
		}

		payload = rest
		run.enter(StateIntegrityChecked)
	} else {
		run.enter(StateIntegritySkipped)
	}

	out, warning, err := dispatch(d.svc, header.Algorithm(), payload, header.DecompressedSize)
	if err != nil {
		return run.fail(err)
	}
	if warning != nil {
		run.res.Warnings = append(run.res.Warnings, warning)
	}
	run.enter(StateDecompressed)

	run.res.Data = out
	run.enter(StateDone)

	return run.res, nil
}

// decodeRun tracks the states visited by one Decode call.
type decodeRun struct {
	observer Observer
	res      Result
}

func (r *decodeRun) enter(to State) {
	from := r.res.Final()
	r.res.States = append(r.res.States, to)
	r.observer.OnTransition(from, to)
}

func (r *decodeRun) fail(err error) (Result, error) {
	r.enter(StateFailed)
	r.res.Data = nil

	return r.res, err
}

var defaultDecoder, _ = NewDecoder()

// DecodeContainer decodes data with the pure-Go service and returns the recovered
// payload. Soft warnings are dropped; use a Decoder to see them.
func DecodeContainer(data []byte) ([]byte, error) {
	res, err := defaultDecoder.Decode(data)
	if err != nil {
		return nil, err
	}

	return res.Data, nil
}

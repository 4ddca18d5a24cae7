package container

import "github.com/arloliu/mam/section"

// Result is the outcome of one decode.
type Result struct {
	// Header is the parsed header. It is the zero value when parsing failed.
	Header section.Header
	// Data holds the recovered payload. It is nil whenever Decode returns an error.
	Data []byte
	// Warnings lists soft conditions that did not stop decoding, such as
	// errs.SizeMismatch.
	Warnings []error
	// States is the path taken through the state machine, starting with StateStart
	// and ending in StateDone or StateFailed.
	States []State
}

// Final returns the last state reached.
func (r Result) Final() State {
	if len(r.States) == 0 {
		return StateStart
	}

	return r.States[len(r.States)-1]
}

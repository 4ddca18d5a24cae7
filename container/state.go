package container

import "fmt"

// State is a step of the decode state machine.
//
//	Start -> HeaderParsed -> (IntegrityChecked | IntegritySkipped) -> Decompressed -> Done
//
// Failed is reachable from every state and, like Done, is terminal. No state is
// entered twice during one decode.
type State uint8

const (
	StateStart State = iota
	StateHeaderParsed
	StateIntegrityChecked
	StateIntegritySkipped
	StateDecompressed
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "Start"
	case StateHeaderParsed:
		return "HeaderParsed"
	case StateIntegrityChecked:
		return "IntegrityChecked"
	case StateIntegritySkipped:
		return "IntegritySkipped"
	case StateDecompressed:
		return "Decompressed"
	case StateDone:
		return "Done"
	case StateFailed:
		return "Failed"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// Terminal reports whether no further transition can follow s.
func (s State) Terminal() bool {
	return s == StateDone || s == StateFailed
}

// Observer receives instrumentation callbacks from a Decoder. Callbacks run
// synchronously on the decoding goroutine; implementations shared between concurrent
// decodes must synchronize themselves.
type Observer interface {
	// OnTransition is called for every state change, including the final one.
	OnTransition(from, to State)
	// OnVerify is called each time the integrity verifier runs.
	OnVerify()
}

type nopObserver struct{}

func (nopObserver) OnTransition(State, State) {}
func (nopObserver) OnVerify()                 {}

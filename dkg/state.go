package dkg

import "github.com/drand/kyber"

// Status is the DKG session's tagged-variant state (spec §3).
type Status uint32

const (
	Sharing Status = iota
	Dealt
	Success
)

func (s Status) String() string {
	switch s {
	case Sharing:
		return "Sharing"
	case Dealt:
		return "Dealt"
	case Success:
		return "Success"
	default:
		return "Unknown"
	}
}

// State is the session's current position in the state machine. Transitions
// are monotone forward only (spec §3).
type State struct {
	Status      Status
	Accumulated uint32
	Block       uint64
	FinalKey    kyber.Point // set only once Status == Success
}

package dkg

import (
	"github.com/drand/kyber"

	"github.com/pvdkg/pvdkg/pvss"
)

// Message is the tagged variant exchanged through the ordering oracle (spec
// §6.2). Exhaustive matching over its two variants must be preserved in any
// reimplementation (spec §9).
type Message interface {
	isDKGMessage()
}

// Deal carries one dealer's PVSS transcript.
type Deal struct {
	PVSS *pvss.Transcript
}

func (Deal) isDKGMessage() {}

// Aggregate carries a point-wise aggregated transcript together with the
// sender's claimed final key, for the receiver to cross-check against its
// own locally derived value.
type Aggregate struct {
	VSS      *pvss.Transcript
	FinalKey kyber.Point
}

func (Aggregate) isDKGMessage() {}

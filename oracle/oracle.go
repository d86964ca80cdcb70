// Package oracle defines the boundary between the DKG core and the
// totally-ordered, authenticated message delivery spec §6.1 assumes an
// external ordering oracle provides. The core never dials out to a
// transport itself, matching the teacher's separation of its DKG state
// machine (core/dkg) from its gRPC network layer: this package is the
// integration seam, not a transport implementation.
package oracle

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/pvdkg/pvdkg/dkg"
	"github.com/pvdkg/pvdkg/key"
)

// Envelope is one ordered, authenticated delivery from the oracle: a
// sender the oracle has already authenticated, and the message it sent
// (spec §6.1 — "it does not itself perform signature verification; sender
// identity is trusted as provided"). ID is an opaque handle a concrete
// oracle integration can use for acknowledgement or dedup bookkeeping; the
// core never inspects it.
type Envelope struct {
	ID     uuid.UUID
	Sender key.Validator
	Msg    dkg.Message
}

// NewEnvelope wraps a message for delivery, minting a fresh opaque ID.
func NewEnvelope(sender key.Validator, msg dkg.Message) Envelope {
	return Envelope{ID: uuid.New(), Sender: sender, Msg: msg}
}

// Source is the minimal contract a concrete ordering-oracle integration
// must satisfy: deliver the next envelope in the oracle's total order, or
// report that none remain for this session yet. Implementations live
// outside this module (spec §1's out-of-scope list: "on-chain consensus...
// peer-to-peer transport").
type Source interface {
	Next(ctx context.Context) (Envelope, error)
}

// Drive pulls envelopes from src until it is exhausted or ctx is
// cancelled, applying the verify-then-apply pattern spec §4.3/§7 mandates:
// a failed VerifyMessage is grounds to skip ApplyMessage and continue with
// the next envelope rather than abort the whole session.
func Drive(ctx context.Context, session *dkg.Session, src Source) error {
	for {
		env, err := src.Next(ctx)
		if errors.Is(err, ErrExhausted) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := session.VerifyMessage(env.Sender, env.Msg); err != nil {
			continue
		}
		if err := session.ApplyMessage(env.Sender, env.Msg); err != nil {
			continue
		}
	}
}

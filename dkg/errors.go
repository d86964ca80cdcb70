package dkg

import "errors"

// Error kinds from spec §7, each owned by the component that raises it.
var (
	ErrInvalidParameters       = errors.New("dkg: invalid parameters")
	ErrUnknownSender           = errors.New("dkg: message sender is not a known validator")
	ErrDuplicateDealer         = errors.New("dkg: sender already has a stored transcript")
	ErrInsufficientAggregation = errors.New("dkg: aggregate has fewer than threshold verified shares")
	ErrWrongFinalKey           = errors.New("dkg: aggregate's declared final key does not match the locally derived one")
	ErrStateGuard              = errors.New("dkg: operation not permitted in the current state")
)

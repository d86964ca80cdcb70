package refresh

import "errors"

// ErrInsufficientUpdates is returned when fewer share updates than the
// threshold are supplied to a recovery reconstruction (spec §4.7, §7).
var ErrInsufficientUpdates = errors.New("refresh: insufficient share updates for threshold")

// ErrDuplicateUpdate is returned when two supplied updates carry the same
// validator index.
var ErrDuplicateUpdate = errors.New("refresh: duplicate update index")

// ErrRecoveredShareVerificationFailed is returned when a recovered share
// does not fit the dealer-committed polynomial (spec §4.7, §7).
var ErrRecoveredShareVerificationFailed = errors.New("refresh: recovered share failed verification against aggregate commitments")

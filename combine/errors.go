package combine

import "errors"

// ErrInsufficientShares is returned when fewer shares than the threshold
// are supplied to a combine operation (spec §4.6, §7).
var ErrInsufficientShares = errors.New("combine: insufficient shares for threshold")

// ErrDuplicateShare is returned when two supplied shares carry the same
// validator index.
var ErrDuplicateShare = errors.New("combine: duplicate share index")

// ErrShareVerificationFailed is returned by VerifyAndUnseal when at least
// one share fails decryption.VerifyShare (spec §7). The individual
// failures are not reported.
var ErrShareVerificationFailed = errors.New("combine: one or more shares failed verification")

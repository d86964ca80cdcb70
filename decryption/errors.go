package decryption

import "errors"

// ErrDecryptionShareVerificationFailed is returned when the post-hoc check
// of spec §4.5 fails (spec §7).
var ErrDecryptionShareVerificationFailed = errors.New("decryption: share verification failed")

// ErrInvalidIndex is returned when a validator index falls outside the
// evaluation domain, or a commitments vector has the wrong length.
var ErrInvalidIndex = errors.New("decryption: invalid validator index")

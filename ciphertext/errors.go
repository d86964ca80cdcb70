package ciphertext

import "errors"

// ErrCiphertextVerificationFailed is returned when the pairing check for
// ciphertext well-formedness fails (spec §4.4, §7).
var ErrCiphertextVerificationFailed = errors.New("ciphertext: well-formedness check failed")

// ErrPlaintextVerificationFailed is returned when the DEM's AEAD
// authentication tag fails to verify during Open (spec §7).
var ErrPlaintextVerificationFailed = errors.New("ciphertext: plaintext authentication failed")

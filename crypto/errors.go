package crypto

import "errors"

// ErrHashToCurveError is raised when the underlying hash-to-curve primitive
// fails or is unavailable for the configured scheme (spec §7).
var ErrHashToCurveError = errors.New("crypto: hash-to-curve primitive failed")

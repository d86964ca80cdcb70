// Package combine reconstructs the shared KEM secret from t decryption
// shares and unseals the ciphertext (spec §4.6). Lagrange interpolation at
// zero is grounded on the teacher's bls/tbls.go threshold signature
// recovery (itself built on kyber/share.RecoverCommit); this package
// generalizes the same pattern from G1/G2 signature shares to GT KEM
// shares.
package combine

import (
	"github.com/drand/kyber"

	"github.com/pvdkg/pvdkg/crypto"
)

// LagrangeCoefficients computes the weight each of points contributes to
// the value at zero of the polynomial interpolated through them (spec
// §4.6, "combine"): the threshold-reconstruction special case of
// crypto.LagrangeCoefficientsAt.
func LagrangeCoefficients(scheme *crypto.Scheme, points []kyber.Scalar) []kyber.Scalar {
	zero := scheme.G1.Scalar().Zero()
	return crypto.LagrangeCoefficientsAt(scheme.G1, points, zero)
}

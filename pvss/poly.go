package pvss

import (
	"crypto/cipher"

	"github.com/drand/kyber"
)

// samplePolynomial builds a degree-(t-1) polynomial over F with coefficient
// 0 fixed to secret and the rest drawn uniformly from rng, as spec §4.2
// step 2 requires.
func samplePolynomial(scalarGroup kyber.Group, t int, secret kyber.Scalar, rng cipher.Stream) []kyber.Scalar {
	coeffs := make([]kyber.Scalar, t)
	coeffs[0] = secret
	for i := 1; i < t; i++ {
		coeffs[i] = scalarGroup.Scalar().Pick(rng)
	}
	return coeffs
}

// SampleZeroHolePolynomialAt builds a degree-(t-1) polynomial δ with every
// coefficient but one drawn uniformly from rng, and the remaining one
// (coefficient 0) solved for so that δ(xr) = 0 (spec §4.7's "choose random
// polynomial δ ... with δ(x_r) = 0", mirroring
// prepare_share_updates_for_recovery's per-target zero-holing). xr = 0 is
// the proactive-refresh special case, matching SampleZeroHolePolynomial.
func SampleZeroHolePolynomialAt(scalarGroup kyber.Group, t int, xr kyber.Scalar, rng cipher.Stream) []kyber.Scalar {
	coeffs := make([]kyber.Scalar, t)
	for i := 1; i < t; i++ {
		coeffs[i] = scalarGroup.Scalar().Pick(rng)
	}

	acc := scalarGroup.Scalar().Zero()
	xrPow := scalarGroup.Scalar().One()
	for i := 1; i < t; i++ {
		xrPow = scalarGroup.Scalar().Mul(xrPow, xr)
		term := scalarGroup.Scalar().Mul(coeffs[i], xrPow)
		acc = scalarGroup.Scalar().Add(acc, term)
	}
	coeffs[0] = scalarGroup.Scalar().Neg(acc)
	return coeffs
}

// SampleZeroHolePolynomial builds a degree-(t-1) polynomial with its
// constant term fixed to zero, used by the proactive-refresh protocol
// (spec §4.7) to perturb every share without moving the joint secret they
// interpolate to. The xr=0 special case of SampleZeroHolePolynomialAt.
func SampleZeroHolePolynomial(scalarGroup kyber.Group, t int, rng cipher.Stream) []kyber.Scalar {
	return SampleZeroHolePolynomialAt(scalarGroup, t, scalarGroup.Scalar().Zero(), rng)
}

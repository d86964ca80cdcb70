// Package refresh implements proactive share rotation and single-share
// recovery at an arbitrary evaluation point without changing the joint
// public key (spec §4.7). Zero-hole polynomial refresh is grounded on the
// teacher's resharing support in core/dkg (preserving a group's public key
// across a membership change); recovery-at-a-point reuses the Lagrange
// machinery of the combine package, generalized from reconstruction at zero
// to reconstruction at an arbitrary point.
package refresh

import (
	"crypto/cipher"

	"github.com/drand/kyber"

	"github.com/pvdkg/pvdkg/crypto"
	"github.com/pvdkg/pvdkg/pvss"
)

// ShareUpdates is one party's refresh contribution: a zero-hole polynomial
// δ (δ(xr)=0; with xr = 0 the joint secret is unchanged) evaluated at
// every validator's domain point and lifted into G2, mirroring how a PVSS
// transcript's Shares vector is built (spec §4.7 step 1).
type ShareUpdates struct {
	Updates []kyber.Point // G2, Updates[i] = h · δ(ωⁱ)
}

// PrepareShareUpdates samples a fresh degree-(threshold-1) polynomial δ
// with δ(xr) = 0 and evaluates it across domain, producing one additive
// update per validator position (spec §4.7/§6.4
// `prepare_share_updates(domain_points, h, x_r, threshold, rng)`). xr = 0
// is the proactive-refresh special case (spec §4.7 "share refresh
// variant"); xr = some ωⁱ or an arbitrary point targets recovery/onboarding
// at that point. rng must be cryptographically secure (spec §5).
func PrepareShareUpdates(scheme *crypto.Scheme, domain *crypto.EvaluationDomain, threshold int, xr kyber.Scalar, rng cipher.Stream) (*ShareUpdates, error) {
	coeffs := pvss.SampleZeroHolePolynomialAt(scheme.G1, threshold, xr, rng)
	values := domain.EvaluateOverDomain(coeffs, scheme.G1)

	updates := make([]kyber.Point, domain.N)
	for i, v := range values {
		updates[i] = scheme.G2.Point().Mul(v, scheme.H)
	}
	return &ShareUpdates{Updates: updates}, nil
}

// UpdateShareForRecovery folds one proactive update into an existing
// private key share, producing the refreshed share the validator holds
// going forward (spec §4.7 step 2). Since δ(xr)=0, the updated shares still
// interpolate to the old value at xr. Only updates prepared with xr = 0
// leave the joint public key unchanged; for any other xr, δ(0) is in
// general non-zero.
func UpdateShareForRecovery(scheme *crypto.Scheme, oldShare kyber.Point, update kyber.Point) kyber.Point {
	return scheme.G2.Point().Add(oldShare, update)
}

// RecoverShareFromUpdatedPrivateShares reconstructs the private key share
// at an arbitrary evaluation point (typically a new or rejoining
// validator's position) from t refreshed shares at existing domain points,
// via Lagrange interpolation evaluated at the target point rather than at
// zero (spec §4.7 step 3). It does not reveal the joint secret: the
// combiner's zero-point reconstruction and this arbitrary-point
// reconstruction share the same interpolation machinery but are never
// invoked together on overlapping inputs in normal operation.
func RecoverShareFromUpdatedPrivateShares(
	scheme *crypto.Scheme,
	threshold int,
	contributingPoints []kyber.Scalar,
	contributingShares []kyber.Point,
	targetPoint kyber.Scalar,
) (kyber.Point, error) {
	if len(contributingPoints) != len(contributingShares) {
		return nil, ErrDuplicateUpdate
	}
	if len(contributingPoints) < threshold {
		return nil, ErrInsufficientUpdates
	}
	for i := 0; i < len(contributingPoints); i++ {
		for j := i + 1; j < len(contributingPoints); j++ {
			if contributingPoints[i].Equal(contributingPoints[j]) {
				return nil, ErrDuplicateUpdate
			}
		}
	}

	coeffs := crypto.LagrangeCoefficientsAt(scheme.G1, contributingPoints, targetPoint)

	acc := scheme.G2.Point().Null()
	for i, share := range contributingShares {
		term := scheme.G2.Point().Mul(coeffs[i], share)
		acc = scheme.G2.Point().Add(acc, term)
	}
	return acc, nil
}

// VerifyRecoveredShare checks that a recovered private key share fits the
// dealer-committed polynomial (spec §4.7: "Verify by checking it fits the
// committed polynomial (pairing against the aggregate commitments)"). It
// Lagrange-interpolates the aggregate G1 commitments at the same
// contributing points and target point used to recover the share — the
// commitments themselves are untouched by refresh, only private shares
// move — then checks e(commitmentAtXr, h) == e(g, recovered).
func VerifyRecoveredShare(
	scheme *crypto.Scheme,
	contributingPoints []kyber.Scalar,
	contributingCommitments []kyber.Point,
	xr kyber.Scalar,
	recovered kyber.Point,
) error {
	if len(contributingPoints) != len(contributingCommitments) {
		return ErrDuplicateUpdate
	}
	coeffs := crypto.LagrangeCoefficientsAt(scheme.G1, contributingPoints, xr)

	commitmentAtXr := scheme.G1.Point().Null()
	for i, c := range contributingCommitments {
		term := scheme.G1.Point().Mul(coeffs[i], c)
		commitmentAtXr = scheme.G1.Point().Add(commitmentAtXr, term)
	}

	lhs := scheme.Pair(commitmentAtXr, scheme.H)
	rhs := scheme.Pair(scheme.G, recovered)
	if !lhs.Equal(rhs) {
		return ErrRecoveredShareVerificationFailed
	}
	return nil
}

package crypto

import (
	"errors"
	"math/big"

	"github.com/drand/kyber"
)

// ErrNotPowerOfTwo is returned when a caller asks for a domain size that is
// not a power of two (spec §4.1 hard precondition).
var ErrNotPowerOfTwo = errors.New("crypto: shares_num must be a power of two")

// frModulus is the order of the BLS12-381 scalar field F.
var frModulus, _ = new(big.Int).SetString(
	"52435875175126190479447740508185965837690552500527637822603658699938581184513", 10)

// frRootOfUnity is a primitive 2^32-th root of unity of F, the same constant
// used across the BLS12-381 ecosystem (arkworks, zcash) to build radix-2
// evaluation domains.
var frRootOfUnity, _ = new(big.Int).SetString(
	"10238227357739495823651030575849232062558860180284477541189508159991286009131", 10)

const frTwoAdicity = 32

// EvaluationDomain is the radix-2 multiplicative subgroup Ω of size N used
// as the set of share-index evaluation points (spec §4.1). Validator at
// position i is assigned domain point ωⁱ.
type EvaluationDomain struct {
	N        int
	Omega    kyber.Scalar
	OmegaInv kyber.Scalar
	Points   []kyber.Scalar // Points[i] = ω^i
}

// NewEvaluationDomain builds Ω for a scalar field F (taken from the
// scheme's G1 group, which shares its scalar field with G2/GT in a pairing
// suite). N must be a power of two.
func NewEvaluationDomain(scheme *Scheme, n int) (*EvaluationDomain, error) {
	if n <= 0 || n&(n-1) != 0 {
		return nil, ErrNotPowerOfTwo
	}

	k := bitLen(n) - 1
	if k > frTwoAdicity {
		return nil, ErrNotPowerOfTwo
	}

	// ω = rootOfUnity^(2^(32-k)) is a generator of the order-N subgroup.
	exp := new(big.Int).Lsh(big.NewInt(1), uint(frTwoAdicity-k))
	omegaBig := new(big.Int).Exp(frRootOfUnity, exp, frModulus)

	omega, err := scalarFromBigInt(scheme.G1, omegaBig)
	if err != nil {
		return nil, err
	}
	omegaInv := scheme.G1.Scalar().Inv(omega)

	points := make([]kyber.Scalar, n)
	points[0] = scheme.G1.Scalar().One()
	for i := 1; i < n; i++ {
		points[i] = scheme.G1.Scalar().Mul(points[i-1], omega)
	}

	return &EvaluationDomain{
		N:        n,
		Omega:    omega,
		OmegaInv: omegaInv,
		Points:   points,
	}, nil
}

// scalarFromBigInt encodes n into the canonical scalar representation of
// group's scalar field, sized to the scalar's marshaled width.
func scalarFromBigInt(group kyber.Group, n *big.Int) (kyber.Scalar, error) {
	s := group.Scalar()
	width := s.MarshalSize()
	buf := make([]byte, width)
	n.FillBytes(buf)
	if err := s.UnmarshalBinary(buf); err != nil {
		return nil, err
	}
	return s, nil
}

// LagrangeCoefficientsAt computes, for each point in points, the weight
// λ_i(at) = Π_{j≠i} (at-points[j]) / (points[i]-points[j]) assigning
// points[i]'s share its contribution to the value at `at` of the unique
// degree-(len(points)-1) polynomial passing through all the given points.
// Reconstruction at the identity point (spec §4.6's combine) is the
// len(points) = threshold, at = 0 special case; share recovery at a new
// evaluation point (spec §4.7) uses an arbitrary at.
func LagrangeCoefficientsAt(scalarGroup kyber.Group, points []kyber.Scalar, at kyber.Scalar) []kyber.Scalar {
	coeffs := make([]kyber.Scalar, len(points))
	for i, xi := range points {
		num := scalarGroup.Scalar().One()
		den := scalarGroup.Scalar().One()
		for j, xj := range points {
			if i == j {
				continue
			}
			diff := scalarGroup.Scalar().Sub(at, xj)
			num = scalarGroup.Scalar().Mul(num, diff)
			diff = scalarGroup.Scalar().Sub(xi, xj)
			den = scalarGroup.Scalar().Mul(den, diff)
		}
		denInv := scalarGroup.Scalar().Inv(den)
		coeffs[i] = scalarGroup.Scalar().Mul(num, denInv)
	}
	return coeffs
}

func bitLen(n int) int {
	l := 0
	for n > 0 {
		n >>= 1
		l++
	}
	return l
}

// EvalPolynomial evaluates a polynomial given by its coefficients (lowest
// degree first) at a scalar point x via Horner's method.
func EvalPolynomial(coeffs []kyber.Scalar, x kyber.Scalar, scalarGroup kyber.Group) kyber.Scalar {
	acc := scalarGroup.Scalar().Zero()
	for i := len(coeffs) - 1; i >= 0; i-- {
		acc = scalarGroup.Scalar().Mul(acc, x)
		acc = scalarGroup.Scalar().Add(acc, coeffs[i])
	}
	return acc
}

// EvaluateOverDomain evaluates coeffs at every point of the domain. This is
// the "evaluate f over Ω" step of spec §4.2 step 3; for the shares_num this
// module targets (tens of validators) a direct Horner evaluation per point
// is simpler than and observably equivalent to a radix-2 FFT, at O(N·t)
// instead of O(N log N).
func (d *EvaluationDomain) EvaluateOverDomain(coeffs []kyber.Scalar, scalarGroup kyber.Group) []kyber.Scalar {
	values := make([]kyber.Scalar, d.N)
	for i, point := range d.Points {
		values[i] = EvalPolynomial(coeffs, point, scalarGroup)
	}
	return values
}

// InverseDFTPoints interpolates a length-N sequence of group elements taken
// at the domain points back into polynomial coefficients (lowest degree
// first), via the standard inverse-DFT formula
//
//	coeff[j] = (1/N) * Σ_i values[i] · ω^{-ij}
//
// Used by the optimistic-verification degree check (§4.2) and by final-key
// derivation (§4.2, §9). Like EvaluateOverDomain this is the direct O(N²)
// form rather than a radix-2 inverse FFT.
func (d *EvaluationDomain) InverseDFTPoints(values []kyber.Point, scalarGroup kyber.Group) ([]kyber.Point, error) {
	if len(values) != d.N {
		return nil, ErrNotPowerOfTwo
	}

	nInv := scalarGroup.Scalar().SetInt64(int64(d.N))
	nInv = scalarGroup.Scalar().Inv(nInv)

	coeffs := make([]kyber.Point, d.N)
	for j := 0; j < d.N; j++ {
		acc := values[0].Clone().Mul(nInv, values[0])
		exponent := scalarGroup.Scalar().One()
		omegaInvJ := d.omegaPow(d.OmegaInv, j, scalarGroup)
		for i := 1; i < d.N; i++ {
			exponent = scalarGroup.Scalar().Mul(exponent, omegaInvJ)
			term := values[i].Clone().Mul(scalarGroup.Scalar().Mul(exponent, nInv), values[i])
			acc = acc.Clone().Add(acc, term)
		}
		coeffs[j] = acc
	}
	return coeffs, nil
}

func (d *EvaluationDomain) omegaPow(base kyber.Scalar, exp int, scalarGroup kyber.Group) kyber.Scalar {
	acc := scalarGroup.Scalar().One()
	b := base.Clone()
	e := exp
	for e > 0 {
		if e&1 == 1 {
			acc = scalarGroup.Scalar().Mul(acc, b)
		}
		b = scalarGroup.Scalar().Mul(b, b)
		e >>= 1
	}
	return acc
}

package combine

import (
	"context"

	"github.com/drand/kyber"
	"golang.org/x/sync/errgroup"

	"github.com/pvdkg/pvdkg/ciphertext"
	"github.com/pvdkg/pvdkg/crypto"
	"github.com/pvdkg/pvdkg/decryption"
)

// Combine reconstructs the GT shared secret S from simple-variant
// decryption shares via Lagrange interpolation at zero (spec §4.6,
// "combine").
func Combine(scheme *crypto.Scheme, threshold int, shares []*decryption.DecryptionShare) (kyber.Point, error) {
	if len(shares) < threshold {
		return nil, ErrInsufficientShares
	}
	points, err := domainPoints(shares)
	if err != nil {
		return nil, err
	}
	coeffs := LagrangeCoefficients(scheme, points)

	acc := scheme.GT.Point().Null()
	for i, s := range shares {
		term := scheme.GT.Point().Mul(coeffs[i], s.Share)
		acc = scheme.GT.Point().Add(acc, term)
	}
	return acc, nil
}

// CombineFast reconstructs S from fast-variant shares, folding the
// Lagrange-weighted, domain-point-rescaled shares into a single G2
// accumulator and spending exactly one pairing against U (spec §4.6, fast
// variant) instead of one pairing per share.
func CombineFast(scheme *crypto.Scheme, threshold int, u kyber.Point, shares []*decryption.DecryptionShareFast) (kyber.Point, error) {
	if len(shares) < threshold {
		return nil, ErrInsufficientShares
	}
	points := make([]kyber.Scalar, len(shares))
	for i, s := range shares {
		points[i] = s.DomainPoint
	}
	if err := checkDuplicates(points); err != nil {
		return nil, err
	}
	coeffs := LagrangeCoefficients(scheme, points)

	acc := scheme.G2.Point().Null()
	for i, s := range shares {
		// Undo the domain-point-inverse scaling applied at share creation
		// time, then apply this share's Lagrange weight.
		weight := scheme.G1.Scalar().Mul(coeffs[i], s.DomainPoint)
		term := scheme.G2.Point().Mul(weight, s.FastShare)
		acc = scheme.G2.Point().Add(acc, term)
	}
	return scheme.Pair(u, acc), nil
}

// CombinePrecomputed reconstructs S from precomputed-variant shares, which
// arrive already scaled by their Lagrange coefficient: combining is then a
// plain sum (spec §4.6, combine_precomputed).
func CombinePrecomputed(scheme *crypto.Scheme, threshold int, shares []*decryption.DecryptionSharePrecomputed) (kyber.Point, error) {
	if len(shares) < threshold {
		return nil, ErrInsufficientShares
	}
	points := make([]kyber.Scalar, len(shares))
	for i, s := range shares {
		points[i] = s.DomainPoint
	}
	if err := checkDuplicates(points); err != nil {
		return nil, err
	}

	acc := scheme.GT.Point().Null()
	for _, s := range shares {
		acc = scheme.GT.Point().Add(acc, s.Share)
	}
	return acc, nil
}

// VerifyAndUnseal concurrently verifies every share against its public
// context (spec §4.5), then — only if all pass — reconstructs S and
// unseals ct. Concurrency follows the teacher's pattern of fanning out
// independent pairing checks with an errgroup rather than a sequential
// loop.
func VerifyAndUnseal(
	scheme *crypto.Scheme,
	threshold int,
	publics []decryption.PublicDecryptionContext,
	u kyber.Point,
	shares []*decryption.DecryptionShare,
	ct *ciphertext.Ciphertext,
	aad []byte,
) ([]byte, error) {
	if len(shares) < threshold {
		return nil, ErrInsufficientShares
	}
	byIndex := make(map[int]*decryption.PublicDecryptionContext, len(publics))
	for i := range publics {
		byIndex[publics[i].Index] = &publics[i]
	}

	g, _ := errgroup.WithContext(context.Background())
	for _, s := range shares {
		s := s
		pub, ok := byIndex[s.Index]
		if !ok {
			return nil, ErrDuplicateShare
		}
		g.Go(func() error {
			return decryption.VerifyShare(scheme, pub, u, s)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, ErrShareVerificationFailed
	}

	secret, err := Combine(scheme, threshold, shares)
	if err != nil {
		return nil, err
	}
	return ciphertext.Open(scheme, ct, aad, secret)
}

func domainPoints(shares []*decryption.DecryptionShare) ([]kyber.Scalar, error) {
	points := make([]kyber.Scalar, len(shares))
	for i, s := range shares {
		points[i] = s.DomainPoint
	}
	if err := checkDuplicates(points); err != nil {
		return nil, err
	}
	return points, nil
}

func checkDuplicates(points []kyber.Scalar) error {
	for i := 0; i < len(points); i++ {
		for j := i + 1; j < len(points); j++ {
			if points[i].Equal(points[j]) {
				return ErrDuplicateShare
			}
		}
	}
	return nil
}

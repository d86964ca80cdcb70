package decryption

import (
	"github.com/drand/kyber"

	"github.com/pvdkg/pvdkg/ciphertext"
	"github.com/pvdkg/pvdkg/crypto"
)

// DecryptionShare is the "simple" variant of spec §4.5: the raw GT pairing
// value, plus a checksum validators publish so the share's blinding can be
// checked without revealing PrivateKeyShare.
type DecryptionShare struct {
	Index       int
	DomainPoint kyber.Scalar
	Share       kyber.Point // GT, = e(U, PrivateKeyShare)
	Checksum    kyber.Point // G1, = U · Blinding
}

// CreateShareSimple computes validator ctx's decryption share for ct,
// rejecting malformed ciphertexts before spending a pairing on them (spec
// §4.5 step 1).
func CreateShareSimple(scheme *crypto.Scheme, ctx *PrivateDecryptionContext, ct *ciphertext.Ciphertext, aad []byte) (*DecryptionShare, error) {
	if err := ciphertext.CheckValidity(scheme, ct, aad); err != nil {
		return nil, err
	}

	share := scheme.Pair(ct.U, ctx.PrivateKeyShare)
	checksum := scheme.G1.Point().Mul(ctx.Blinding, ct.U)

	return &DecryptionShare{
		Index:       ctx.Index,
		DomainPoint: ctx.DomainPoint,
		Share:       share,
		Checksum:    checksum,
	}, nil
}

// DecryptionShareFast is the "fast" variant: the share stays in G2, scaled
// by the inverse of the validator's domain point, so the combiner can fold
// every share into a single G2 accumulator and spend one multi-pairing
// instead of N individual ones (spec §4.5, fast variant).
type DecryptionShareFast struct {
	Index       int
	DomainPoint kyber.Scalar
	FastShare   kyber.Point // G2, = PrivateKeyShare · DomainPoint⁻¹
}

// CreateShareFast computes validator ctx's fast-variant share for ct.
func CreateShareFast(scheme *crypto.Scheme, ctx *PrivateDecryptionContext, ct *ciphertext.Ciphertext, aad []byte) (*DecryptionShareFast, error) {
	if err := ciphertext.CheckValidity(scheme, ct, aad); err != nil {
		return nil, err
	}

	domainInv := scheme.G1.Scalar().Inv(ctx.DomainPoint)
	fastShare := scheme.G2.Point().Mul(domainInv, ctx.PrivateKeyShare)

	return &DecryptionShareFast{
		Index:       ctx.Index,
		DomainPoint: ctx.DomainPoint,
		FastShare:   fastShare,
	}, nil
}

// CreateSharesFast batches CreateShareFast across many ciphertexts sharing
// the same aad, avoiding the well-formedness check's repeated hash-to-curve
// work being interleaved with unrelated validator bookkeeping. This is the
// batching entry point noted as a supplemented feature: a validator
// servicing many concurrent decryption requests for the same session calls
// this once instead of looping CreateShareFast itself.
func CreateSharesFast(scheme *crypto.Scheme, ctx *PrivateDecryptionContext, cts []*ciphertext.Ciphertext, aad []byte) ([]*DecryptionShareFast, error) {
	out := make([]*DecryptionShareFast, len(cts))
	for i, ct := range cts {
		share, err := CreateShareFast(scheme, ctx, ct, aad)
		if err != nil {
			return nil, err
		}
		out[i] = share
	}
	return out, nil
}

// DecryptionSharePrecomputed is the "precomputed" variant: the validator
// already knows the Lagrange coefficient it will be combined with, so it
// raises its share to that exponent before publishing, leaving the combiner
// a product of GT points rather than an interpolation (spec §4.6,
// combine_precomputed).
type DecryptionSharePrecomputed struct {
	Index       int
	DomainPoint kyber.Scalar
	Share       kyber.Point // GT, = e(U, PrivateKeyShare)^lagrangeCoeff
}

// CreateSharePrecomputed computes validator ctx's precomputed-variant share,
// pre-scaling by a Lagrange coefficient the combiner supplies out of band.
func CreateSharePrecomputed(
	scheme *crypto.Scheme,
	ctx *PrivateDecryptionContext,
	ct *ciphertext.Ciphertext,
	aad []byte,
	lagrangeCoeff kyber.Scalar,
) (*DecryptionSharePrecomputed, error) {
	simple, err := CreateShareSimple(scheme, ctx, ct, aad)
	if err != nil {
		return nil, err
	}

	scaled := scheme.GT.Point().Mul(lagrangeCoeff, simple.Share)
	return &DecryptionSharePrecomputed{
		Index:       ctx.Index,
		DomainPoint: ctx.DomainPoint,
		Share:       scaled,
	}, nil
}

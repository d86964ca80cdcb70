// Package decryption builds per-validator decryption contexts and shares
// from an aggregated PVSS transcript (spec §4.5). It is grounded on the
// teacher's share/dpvss.go style of per-index "public commitment, private
// share" pairing, generalized from Shamir shares to PVSS-encrypted,
// pairing-verifiable ones, and on the blinding/checksum bookkeeping pattern
// in the pack's pschlump/kyber pvss.go decryption-share reference file.
package decryption

import (
	"crypto/cipher"

	"github.com/drand/kyber"

	"github.com/pvdkg/pvdkg/crypto"
	"github.com/pvdkg/pvdkg/key"
)

// PublicDecryptionContext is the publicly known half of validator i's
// decryption material (spec §3): the PVSS commitment to its share, the
// blinded key share it published, and the public image of its blinding
// scalar. Every validator in a session shares the same slice of these.
type PublicDecryptionContext struct {
	Index           int
	DomainPoint     kyber.Scalar
	PublicKeyShare  kyber.Point // G1, = commitments_agg[Index]
	BlindedKeyShare kyber.Point // G2, = PrivateKeyShare · Blinding
	ValidatorPubKey kyber.Point // G2, = h · Blinding
}

// PrivateDecryptionContext is validator i's private view: its unwrapped PVSS
// share, the blinding it generated, and a read-only handle to the cohort's
// public contexts (spec §9 Open Question #2: private material and the
// shared public vector are kept in separate, differently-owned structs).
type PrivateDecryptionContext struct {
	Index           int
	DomainPoint     kyber.Scalar
	PrivateKeyShare kyber.Point // G2, = h · f(ωⁱ)
	Blinding        kyber.Scalar
	BlindedKeyShare kyber.Point // G2, = PrivateKeyShare · Blinding
	Public          []PublicDecryptionContext
}

// NewPrivateDecryptionContext unwraps validator index's PVSS-encrypted share
// from the aggregated transcript using its own session keypair, then
// generates a fresh blinding scalar (spec §9 Open Question #3: the session
// keypair is what PVSS-encrypted the share in the first place, so unwrapping
// it is what "decrypting" a stored share means here). rng must be
// cryptographically secure (spec §5).
func NewPrivateDecryptionContext(
	scheme *crypto.Scheme,
	domain *crypto.EvaluationDomain,
	index int,
	keypair key.Keypair,
	aggregatedShare kyber.Point, // shares_agg[index] from the final aggregate transcript
	rng cipher.Stream,
) (*PrivateDecryptionContext, error) {
	if index < 0 || index >= domain.N {
		return nil, ErrInvalidIndex
	}

	skInv := scheme.G1.Scalar().Inv(keypair.Secret)
	privateKeyShare := scheme.G2.Point().Mul(skInv, aggregatedShare)

	blinding := scheme.G1.Scalar().Pick(rng)
	blindedKeyShare := scheme.G2.Point().Mul(blinding, privateKeyShare)

	return &PrivateDecryptionContext{
		Index:           index,
		DomainPoint:     domain.Points[index],
		PrivateKeyShare: privateKeyShare,
		Blinding:        blinding,
		BlindedKeyShare: blindedKeyShare,
	}, nil
}

// BuildPublicContexts assembles the cohort-wide public context vector from
// each validator's aggregate commitment and published blinding material.
// Callers attach the returned slice to every PrivateDecryptionContext.Public.
func BuildPublicContexts(
	scheme *crypto.Scheme,
	domain *crypto.EvaluationDomain,
	commitmentsAgg []kyber.Point, // commitments_agg from the final aggregate transcript
	private []*PrivateDecryptionContext,
) ([]PublicDecryptionContext, error) {
	if len(commitmentsAgg) != domain.N {
		return nil, ErrInvalidIndex
	}

	byIndex := make(map[int]*PrivateDecryptionContext, len(private))
	for _, p := range private {
		byIndex[p.Index] = p
	}

	out := make([]PublicDecryptionContext, len(private))
	for i, p := range private {
		out[i] = PublicDecryptionContext{
			Index:           p.Index,
			DomainPoint:     p.DomainPoint,
			PublicKeyShare:  commitmentsAgg[p.Index],
			BlindedKeyShare: p.BlindedKeyShare,
			ValidatorPubKey: scheme.G2.Point().Mul(p.Blinding, scheme.H),
		}
	}
	return out, nil
}

package e2e

import (
	"github.com/drand/kyber"
	"github.com/drand/kyber/util/random"

	"github.com/pvdkg/pvdkg/ciphertext"
	"github.com/pvdkg/pvdkg/combine"
	"github.com/pvdkg/pvdkg/decryption"
)

// indexRange returns [start, start+count).
func indexRange(start, count int) []int {
	out := make([]int, count)
	for i := range out {
		out[i] = start + i
	}
	return out
}

// combineAtIndices builds a PrivateDecryptionContext directly from each
// already-unwrapped private key share (bypassing the PVSS-unwrap step,
// since recovered/refreshed shares in S6 never went through it), produces
// a simple-variant decryption share per index, and combines them.
func combineAtIndices(c cohort, ct *ciphertext.Ciphertext, aad []byte, indices []int, shares []kyber.Point) (kyber.Point, error) {
	decryptionShares := make([]*decryption.DecryptionShare, len(indices))
	for k, idx := range indices {
		blinding := c.scheme.G1.Scalar().Pick(random.New())
		ctx := &decryption.PrivateDecryptionContext{
			Index:           idx,
			DomainPoint:     c.domain.Points[idx],
			PrivateKeyShare: shares[k],
			Blinding:        blinding,
			BlindedKeyShare: c.scheme.G2.Point().Mul(blinding, shares[k]),
		}
		share, err := decryption.CreateShareSimple(c.scheme, ctx, ct, aad)
		if err != nil {
			return nil, err
		}
		decryptionShares[k] = share
	}
	return combine.Combine(c.scheme, c.params.Threshold, decryptionShares)
}
